package reducer

import (
	"fmt"
)

// Scope embeds a child feature into a parent's state and action spaces.
// state locates the child's state within the parent's; extract pulls a child
// action out of a parent action (reporting false when the action is not for
// this child, which is a no-op); embed lifts the child's effect actions back
// into the parent's action type.
func Scope[PS, PA, CS, CA any](
	state func(*PS) *CS,
	extract func(PA) (CA, bool),
	embed func(CA) PA,
	child Reducer[CS, CA],
) Reducer[PS, PA] {
	return &scoped[PS, PA, CS, CA]{
		state:   state,
		extract: extract,
		embed:   embed,
		child:   child,
	}
}

type scoped[PS, PA, CS, CA any] struct {
	state   func(*PS) *CS
	extract func(PA) (CA, bool)
	embed   func(CA) PA
	child   Reducer[CS, CA]
}

func (s *scoped[PS, PA, CS, CA]) Reduce(parent *PS, action PA) Effect[PA] {
	childAction, ok := s.extract(action)
	if !ok {
		return None[PA]()
	}
	effect := s.child.Reduce(s.state(parent), childAction)
	return Map(effect, s.embed)
}

func (s *scoped[PS, PA, CS, CA]) ComponentName() string {
	return fmt.Sprintf("Scope[%T]", s.child)
}

func (s *scoped[PS, PA, CS, CA]) Components() []any {
	return []any{s.child}
}

func (s *scoped[PS, PA, CS, CA]) Kind() uint64 {
	return kindComposite
}

// Optional runs the child only while the pointer state is non-nil. Actions
// arriving while the state is absent are no-ops; this is the expected way to
// host a feature that can be torn down.
func Optional[S, A any](child Reducer[S, A]) Reducer[*S, A] {
	return optional[S, A]{child: child}
}

type optional[S, A any] struct {
	child Reducer[S, A]
}

func (o optional[S, A]) Reduce(state **S, action A) Effect[A] {
	if state == nil || *state == nil {
		return None[A]()
	}
	return o.child.Reduce(*state, action)
}

func (o optional[S, A]) ComponentName() string {
	return fmt.Sprintf("Optional[%T]", o.child)
}

func (o optional[S, A]) Components() []any {
	return []any{o.child}
}

func (o optional[S, A]) Kind() uint64 {
	return kindComposite
}

// ForEach routes an indexed action to one element of a slice of child
// states. elements returns the live slice (the child mutates an element in
// place); extract yields the element index alongside the child action. An
// index out of range is a no-op: the action was produced for an element that
// has since been removed.
func ForEach[PS, PA, CS, CA any](
	elements func(*PS) []CS,
	extract func(PA) (int, CA, bool),
	embed func(int, CA) PA,
	child Reducer[CS, CA],
) Reducer[PS, PA] {
	return &forEach[PS, PA, CS, CA]{
		elements: elements,
		extract:  extract,
		embed:    embed,
		child:    child,
	}
}

type forEach[PS, PA, CS, CA any] struct {
	elements func(*PS) []CS
	extract  func(PA) (int, CA, bool)
	embed    func(int, CA) PA
	child    Reducer[CS, CA]
}

func (f *forEach[PS, PA, CS, CA]) Reduce(parent *PS, action PA) Effect[PA] {
	index, childAction, ok := f.extract(action)
	if !ok {
		return None[PA]()
	}
	children := f.elements(parent)
	if index < 0 || index >= len(children) {
		return None[PA]()
	}
	effect := f.child.Reduce(&children[index], childAction)
	return Map(effect, func(childAction CA) PA {
		return f.embed(index, childAction)
	})
}

func (f *forEach[PS, PA, CS, CA]) ComponentName() string {
	return fmt.Sprintf("ForEach[%T]", f.child)
}

func (f *forEach[PS, PA, CS, CA]) Components() []any {
	return []any{f.child}
}

func (f *forEach[PS, PA, CS, CA]) Kind() uint64 {
	return kindComposite
}
