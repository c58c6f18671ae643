// Package reducer is the reduction core of a unidirectional state runtime:
// given the current state and an incoming action it computes the next state
// in place and returns an [Effect] describing any deferred follow-up work.
//
// A reducer definition conforms in one of two ways. A primitive definition
// implements [Reducer] directly (or is a [ReduceFunc]). A composite
// definition implements [Composite] instead, declaring its behavior as an
// ordered tree of child reducers built with [Combine], [Scope] and friends.
// [From] resolves either style into the uniform contract once, at wiring
// time; a definition supplying both facets dispatches only through its own
// Reduce, and its body stays inert.
package reducer

import (
	"fmt"
	"log/slog"
)

// Reducer is the uniform transition contract. Reduce has exclusive mutable
// access to state for the duration of the call; state mutation is the only
// permitted synchronous side effect, and any work with external consequences
// must be described by the returned effect. Unrecognized actions are no-ops
// returning the empty effect, never an error.
type Reducer[S, A any] interface {
	Reduce(state *S, action A) Effect[A]
}

// Body is a naming convenience for declaring composite bodies whose State
// and Action match the enclosing reducer:
//
//	func (f Feature) Body() reducer.Body[FeatureState, FeatureAction] { ... }
type Body[S, A any] = Reducer[S, A]

// Composite is the conformance for definitions whose transition behavior is
// derived from a declared body rather than implemented directly. The body is
// re-evaluated on every reduction, so it may be built from the definition's
// own fields.
type Composite[S, A any] interface {
	Body() Body[S, A]
}

// ReduceFunc adapts an ordinary transition function to the Reducer contract.
type ReduceFunc[S, A any] func(state *S, action A) Effect[A]

func (f ReduceFunc[S, A]) Reduce(state *S, action A) Effect[A] {
	return f(state, action)
}

// From resolves a reducer definition into the uniform contract. A definition
// implementing Reduce is used as is; one implementing only Body is wrapped so
// that reducing through it forwards to the body's own Reduce unchanged. When
// a definition implements both, Reduce wins unconditionally — the body is
// never consulted for dispatch. Resolution happens here, once, so dispatch
// itself carries no type inspection.
//
// A definition implementing neither facet is a wiring bug: From fails
// immediately rather than producing a reducer that silently does nothing.
func From[S, A any](definition any) Reducer[S, A] {
	switch definition := definition.(type) {
	case Reducer[S, A]:
		return definition
	case Composite[S, A]:
		return body[S, A]{definition: definition}
	}
	slog.Error("definition implements neither Reduce nor Body", "type", fmt.Sprintf("%T", definition))
	panic(fmt.Errorf("reducer: %T implements neither Reduce nor Body for this State/Action pair", definition))
}

// body forwards the transition operation to the declared composite body.
type body[S, A any] struct {
	definition Composite[S, A]
}

func (b body[S, A]) Reduce(state *S, action A) Effect[A] {
	return b.definition.Body().Reduce(state, action)
}

func (b body[S, A]) ComponentName() string {
	return fmt.Sprintf("%T", b.definition)
}

func (b body[S, A]) Components() []any {
	return []any{b.definition.Body()}
}

func (b body[S, A]) Kind() uint64 {
	return kindComposite
}

// NoBody is the designated body of a definition that implements Reduce
// directly. It exists so such definitions still have a type-checkable Body
// association; it carries no behavior, and reducing through it is a
// programming error by whoever wired the reducer, surfaced immediately and
// unconditionally. Callers must invoke Reduce, never the body.
type NoBody[S, A any] struct{}

func (NoBody[S, A]) Reduce(state *S, action A) Effect[A] {
	slog.Error("NoBody invoked as a transition source")
	panic(fmt.Errorf("reducer: NoBody has no derivable behavior; implement Reduce on the enclosing definition and invoke it instead of its body"))
}
