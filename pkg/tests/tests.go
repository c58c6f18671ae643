// Package tests provides a deterministic harness for reducer definitions:
// actions are reduced synchronously, effects are performed inline via
// Effect.Perform, and the actions they emit are reduced before the next
// step's assertion. No store and no goroutines are involved, so harness
// runs are fully reproducible. Effects whose operations spawn their own
// goroutines are outside its scope; exercise those against a Store.
package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stateflow/go-reducer"
)

// Step is one action applied by Run together with the state expected once
// the action and everything its effects emitted have been reduced.
type Step[S, A any] struct {
	Action A
	Expect S
}

// feedbackLimit bounds effect-emitted action feedback per step, so a
// definition whose effects emit forever fails the test instead of hanging.
const feedbackLimit = 1000

// Run drives a reducer definition through the steps in order and returns
// the final state.
func Run[S, A any](t *testing.T, definition any, initial S, steps ...Step[S, A]) S {
	t.Helper()
	r := reducer.From[S, A](definition)
	state := initial
	for i, step := range steps {
		Apply(t, r, &state, step.Action)
		require.Equalf(t, step.Expect, state, "state after step %d (%T)", i+1, step.Action)
	}
	return state
}

// Apply reduces one action and synchronously performs the resulting effect,
// feeding emitted actions back in FIFO order until none remain.
func Apply[S, A any](t *testing.T, r reducer.Reducer[S, A], state *S, action A) {
	t.Helper()
	pending := []A{action}
	for iterations := 0; len(pending) > 0; iterations++ {
		require.Less(t, iterations, feedbackLimit, "effect feedback did not settle")
		next := pending[0]
		pending = pending[1:]
		effect := r.Reduce(state, next)
		effect.Perform(context.Background(), func(emitted A) {
			pending = append(pending, emitted)
		})
	}
}
