package tests_test

import (
	"context"
	"testing"

	"github.com/stateflow/go-reducer"
	"github.com/stateflow/go-reducer/pkg/tests"
)

type echoState struct {
	sent   int
	echoed int
}

type echoAction int

const (
	say echoAction = iota
	echo
)

func TestRunDrainsEffectFeedback(t *testing.T) {
	r := reducer.ReduceFunc[echoState, echoAction](func(state *echoState, action echoAction) reducer.Effect[echoAction] {
		switch action {
		case say:
			state.sent++
			return reducer.Run(func(ctx context.Context, send reducer.Send[echoAction]) {
				send(echo)
			})
		case echo:
			state.echoed++
		}
		return reducer.None[echoAction]()
	})
	final := tests.Run(t, r, echoState{},
		tests.Step[echoState, echoAction]{Action: say, Expect: echoState{sent: 1, echoed: 1}},
		tests.Step[echoState, echoAction]{Action: say, Expect: echoState{sent: 2, echoed: 2}},
	)
	if final.echoed != 2 {
		t.Errorf("expected final state returned, got %+v", final)
	}
}

func TestApplyOrdersFeedbackFIFO(t *testing.T) {
	var order []echoAction
	r := reducer.ReduceFunc[int, echoAction](func(state *int, action echoAction) reducer.Effect[echoAction] {
		order = append(order, action)
		if action == say && *state == 0 {
			*state = 1
			return reducer.Emit(echo, echo)
		}
		return reducer.None[echoAction]()
	})
	state := 0
	tests.Apply[int, echoAction](t, r, &state, say)
	if len(order) != 3 || order[0] != say || order[1] != echo || order[2] != echo {
		t.Errorf("expected say then both echoes in order, got %v", order)
	}
}
