package reducer

import (
	"fmt"
)

// Combine runs the given reducers in declared order against the same state.
// Every child's Reduce executes exactly once per action, each seeing the
// mutations of the children before it; their effects are merged into one
// aggregate. Panics from a child propagate to the caller unchanged.
//
// Combine is the ordered sequence consumed as a composite body:
//
//	func (f Feature) Body() reducer.Body[State, Action] {
//		return reducer.Combine(childA, childB, f.extraLogic())
//	}
func Combine[S, A any](reducers ...Reducer[S, A]) Reducer[S, A] {
	return combined[S, A](reducers)
}

type combined[S, A any] []Reducer[S, A]

func (c combined[S, A]) Reduce(state *S, action A) Effect[A] {
	effects := make([]Effect[A], 0, len(c))
	for _, r := range c {
		effects = append(effects, r.Reduce(state, action))
	}
	return Merge(effects...)
}

func (c combined[S, A]) ComponentName() string {
	return "Combine"
}

func (c combined[S, A]) Components() []any {
	components := make([]any, len(c))
	for i, r := range c {
		components[i] = r
	}
	return components
}

func (c combined[S, A]) Kind() uint64 {
	return kindComposite
}

// Empty returns a reducer that leaves state untouched and schedules no work.
func Empty[S, A any]() Reducer[S, A] {
	return ReduceFunc[S, A](func(*S, A) Effect[A] {
		return None[A]()
	})
}

// Named tags a reducer with a diagnostic name used by logging and the
// PlantUML dump. Dispatch is unaffected.
func Named[S, A any](name string, r Reducer[S, A]) Reducer[S, A] {
	return named[S, A]{name: name, Reducer: r}
}

type named[S, A any] struct {
	name string
	Reducer[S, A]
}

func (n named[S, A]) ComponentName() string {
	return n.name
}

func (n named[S, A]) Components() []any {
	if _, ok := n.Reducer.(Component); ok {
		return []any{n.Reducer}
	}
	return nil
}

func (n named[S, A]) String() string {
	return fmt.Sprintf("reducer.Named(%s)", n.name)
}
