package reducer

import (
	"github.com/stateflow/go-reducer/kinds"
)

var (
	kindPrimitive = kinds.Primitive
	kindComposite = kinds.Composite
)

// Component is implemented by combinator reducers that expose their
// composite structure. Tooling such as pkg/plantuml walks it to render the
// composition tree; dispatch never consults it.
type Component interface {
	ComponentName() string
	Components() []any
}

// Kinded reports how a reducer's transition behavior was resolved, using the
// classification in the kinds package.
type Kinded interface {
	Kind() uint64
}

func (ReduceFunc[S, A]) Kind() uint64 {
	return kindPrimitive
}
