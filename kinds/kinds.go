package kinds

const (
	length   = 64
	idLength = 8
	depthMax = length / idLength
	idMask   = (1 << idLength) - 1
)

// Bases returns the base ids at each level (beyond the first)
// by shifting and masking.
func Bases(kind uint64) [depthMax]uint64 {
	var bases [depthMax]uint64
	for i := 1; i < depthMax; i++ {
		bases[i-1] = (kind >> (idLength * i)) & idMask
	}
	return bases
}

// Kind builds a kind value from an id and the bases it specializes.
func Kind(id uint64, bases ...uint64) uint64 {
	id = id & idMask
	ids := make(map[uint64]struct{})

	for _, base := range bases {
		for j := 0; j < depthMax; j++ {
			baseId := (base >> (idLength * j)) & idMask
			if baseId == 0 {
				break
			}
			if _, ok := ids[baseId]; !ok {
				ids[baseId] = struct{}{}
				id |= baseId << (idLength * len(ids))
			}
		}
	}
	return id
}

// IsKind reports whether kind matches any of the given bases,
// directly or through a base it specializes.
func IsKind(kind uint64, bases ...uint64) bool {
	for _, base := range bases {
		baseId := base & idMask
		if kind == baseId {
			return true
		}
		for i := 0; i < depthMax; i++ {
			currentId := (kind >> (idLength * i)) & idMask
			if currentId == baseId {
				return true
			}
		}
	}
	return false
}

// Effect kinds classify the deferred work a reduction schedules. Reducer
// kinds classify how a definition's transition behavior was resolved.
var (
	Null   = Kind(0)
	Effect = Kind(1)

	None        = Kind(2, Effect)
	Run         = Kind(3, Effect)
	Emit        = Kind(4, Effect)
	Group       = Kind(5, Effect)
	Merge       = Kind(6, Group)
	Concat      = Kind(7, Group)
	Cancellable = Kind(8, Effect)
	Cancel      = Kind(9, Effect)
	Debounce    = Kind(10, Cancellable)

	Reducer   = Kind(11)
	Primitive = Kind(12, Reducer)
	Composite = Kind(13, Reducer)
)
