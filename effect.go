package reducer

import (
	"context"
	"time"

	"github.com/stateflow/go-reducer/clock"
	"github.com/stateflow/go-reducer/kinds"
)

// Send feeds actions produced by deferred work back into the runtime.
type Send[A any] func(action A)

// Effect is an immutable description of deferred work that eventually
// yields zero or more actions of type A. Reductions return effects instead
// of performing I/O inline; the store (or any custom engine, via Perform)
// interprets them afterwards.
type Effect[A any] struct {
	kind           uint64
	actions        []A
	children       []Effect[A]
	op             func(ctx context.Context, send Send[A])
	id             any
	cancelInFlight bool
	duration       time.Duration
	clock          clock.Clock
}

// Kind returns the effect's classification. The zero Effect is None.
func (effect Effect[A]) Kind() uint64 {
	if effect.kind == 0 {
		return kinds.None
	}
	return effect.kind
}

// IsNone reports whether the effect describes no work.
func (effect Effect[A]) IsNone() bool {
	return kinds.IsKind(effect.Kind(), kinds.None)
}

// CancellationID returns the identity a Cancellable or Cancel effect was
// tagged with, or nil.
func (effect Effect[A]) CancellationID() any {
	return effect.id
}

// None returns the empty effect.
func None[A any]() Effect[A] {
	return Effect[A]{kind: kinds.None}
}

// Run wraps deferred work. The operation runs outside of any reduction,
// reports resulting actions through send, and must stop when ctx is done.
func Run[A any](op func(ctx context.Context, send Send[A])) Effect[A] {
	return Effect[A]{kind: kinds.Run, op: op}
}

// Emit returns an effect that feeds the given actions straight back into
// the runtime, in order.
func Emit[A any](actions ...A) Effect[A] {
	if len(actions) == 0 {
		return None[A]()
	}
	return Effect[A]{kind: kinds.Emit, actions: actions}
}

// Merge aggregates effects whose work may run concurrently.
func Merge[A any](effects ...Effect[A]) Effect[A] {
	effects = compact(effects)
	switch len(effects) {
	case 0:
		return None[A]()
	case 1:
		return effects[0]
	}
	return Effect[A]{kind: kinds.Merge, children: effects}
}

// Concat aggregates effects whose work runs one after another, each
// completing before the next starts.
func Concat[A any](effects ...Effect[A]) Effect[A] {
	effects = compact(effects)
	switch len(effects) {
	case 0:
		return None[A]()
	case 1:
		return effects[0]
	}
	return Effect[A]{kind: kinds.Concat, children: effects}
}

func compact[A any](effects []Effect[A]) []Effect[A] {
	out := make([]Effect[A], 0, len(effects))
	for _, effect := range effects {
		if !effect.IsNone() {
			out = append(out, effect)
		}
	}
	return out
}

// Cancellable tags the effect's work with a cancellation identity. When
// cancelInFlight is true, work already running under the same identity is
// cancelled before this work starts.
func Cancellable[A any](effect Effect[A], id any, cancelInFlight bool) Effect[A] {
	if effect.IsNone() {
		return effect
	}
	return Effect[A]{
		kind:           kinds.Cancellable,
		children:       []Effect[A]{effect},
		id:             id,
		cancelInFlight: cancelInFlight,
	}
}

// Cancel stops all in-flight work registered under id.
func Cancel[A any](id any) Effect[A] {
	return Effect[A]{kind: kinds.Cancel, id: id}
}

// Debounce delays the effect's work by d, cancelling any in-flight work
// under the same identity. Only the last of a burst survives the delay.
// A nil clock defers to the executing engine: the store's configured clock,
// or the wall clock under Perform.
func Debounce[A any](effect Effect[A], id any, d time.Duration, c clock.Clock) Effect[A] {
	if effect.IsNone() {
		return effect
	}
	return Effect[A]{
		kind:           kinds.Debounce,
		children:       []Effect[A]{effect},
		id:             id,
		cancelInFlight: true,
		duration:       d,
		clock:          c,
	}
}

// Map transports an effect into another action space. Scoping combinators
// use it to lift child effects into the parent's action type; structure,
// ordering, and cancellation identity are preserved.
func Map[A, B any](effect Effect[A], f func(A) B) Effect[B] {
	kind := effect.Kind()
	switch {
	case kinds.IsKind(kind, kinds.None):
		return None[B]()
	case kinds.IsKind(kind, kinds.Emit):
		actions := make([]B, len(effect.actions))
		for i, action := range effect.actions {
			actions[i] = f(action)
		}
		return Effect[B]{kind: kind, actions: actions}
	case kinds.IsKind(kind, kinds.Run):
		op := effect.op
		return Effect[B]{kind: kind, op: func(ctx context.Context, send Send[B]) {
			op(ctx, func(action A) { send(f(action)) })
		}}
	case kinds.IsKind(kind, kinds.Cancel):
		return Effect[B]{kind: kind, id: effect.id}
	default:
		// Group and Cancellable (including Debounce) carry children.
		children := make([]Effect[B], len(effect.children))
		for i, child := range effect.children {
			children[i] = Map(child, f)
		}
		return Effect[B]{
			kind:           kind,
			children:       children,
			id:             effect.id,
			cancelInFlight: effect.cancelInFlight,
			duration:       effect.duration,
			clock:          effect.clock,
		}
	}
}

// Perform executes the described work synchronously, in declared order,
// reporting actions through send. It is the minimal effect engine: custom
// runtimes can build on it, and the deterministic test harness uses it
// directly. Cancellation identities are ignored (there is no registry);
// debounce delays are honored against the effect's clock.
func (effect Effect[A]) Perform(ctx context.Context, send Send[A]) {
	kind := effect.Kind()
	switch {
	case kinds.IsKind(kind, kinds.None), kinds.IsKind(kind, kinds.Cancel):
	case kinds.IsKind(kind, kinds.Emit):
		for _, action := range effect.actions {
			send(action)
		}
	case kinds.IsKind(kind, kinds.Run):
		effect.op(ctx, send)
	case kinds.IsKind(kind, kinds.Debounce):
		c := effect.clock
		if c == nil {
			c = clock.Make()
		}
		select {
		case <-ctx.Done():
			return
		case <-c.After(effect.duration):
		}
		effect.children[0].Perform(ctx, send)
	case kinds.IsKind(kind, kinds.Cancellable):
		effect.children[0].Perform(ctx, send)
	default:
		for _, child := range effect.children {
			child.Perform(ctx, send)
		}
	}
}
