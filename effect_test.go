package reducer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stateflow/go-reducer"
	"github.com/stateflow/go-reducer/clock"
	"github.com/stateflow/go-reducer/kinds"
)

func TestEffectZeroValueIsNone(t *testing.T) {
	var effect reducer.Effect[int]
	if !effect.IsNone() {
		t.Error("the zero Effect must be None")
	}
	if effect.Kind() != kinds.None {
		t.Errorf("expected kind None, got %d", effect.Kind())
	}
}

func TestEmitEmptyIsNone(t *testing.T) {
	if !reducer.Emit[int]().IsNone() {
		t.Error("Emit with no actions must be None")
	}
}

func TestMergeCompacts(t *testing.T) {
	single := reducer.Emit(1)
	if got := reducer.Merge(reducer.None[int](), single, reducer.None[int]()); got.Kind() != kinds.Emit {
		t.Errorf("Merge around a single effect must collapse to it, got kind %d", got.Kind())
	}
	if !reducer.Merge[int]().IsNone() {
		t.Error("Merge of nothing must be None")
	}
	merged := reducer.Merge(reducer.Emit(1), reducer.Emit(2))
	if !kinds.IsKind(merged.Kind(), kinds.Merge) {
		t.Errorf("expected Merge kind, got %d", merged.Kind())
	}
	if !kinds.IsKind(merged.Kind(), kinds.Group) {
		t.Error("Merge must classify as a Group")
	}
}

func TestConcatPreservesOrder(t *testing.T) {
	effect := reducer.Concat(reducer.Emit(1), reducer.Emit(2), reducer.Emit(3))
	var got []int
	effect.Perform(context.Background(), func(action int) {
		got = append(got, action)
	})
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestRunPerform(t *testing.T) {
	effect := reducer.Run(func(ctx context.Context, send reducer.Send[string]) {
		send("done")
	})
	var got []string
	effect.Perform(context.Background(), func(action string) {
		got = append(got, action)
	})
	if len(got) != 1 || got[0] != "done" {
		t.Errorf("expected [done], got %v", got)
	}
}

func TestMapEmit(t *testing.T) {
	effect := reducer.Map(reducer.Emit(1, 2), func(n int) string {
		if n == 1 {
			return "one"
		}
		return "two"
	})
	var got []string
	effect.Perform(context.Background(), func(action string) {
		got = append(got, action)
	})
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("expected [one two], got %v", got)
	}
}

func TestMapPreservesStructure(t *testing.T) {
	inner := reducer.Merge(
		reducer.Emit(1),
		reducer.Run(func(ctx context.Context, send reducer.Send[int]) { send(2) }),
	)
	tagged := reducer.Cancellable(inner, "token", true)
	mapped := reducer.Map(tagged, func(n int) int { return n * 10 })
	if mapped.Kind() != tagged.Kind() {
		t.Errorf("Map changed the kind: %d vs %d", mapped.Kind(), tagged.Kind())
	}
	if mapped.CancellationID() != "token" {
		t.Errorf("Map dropped the cancellation identity, got %v", mapped.CancellationID())
	}
	var got []int
	mapped.Perform(context.Background(), func(action int) {
		got = append(got, action)
	})
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("expected [10 20], got %v", got)
	}
}

func TestMapCancel(t *testing.T) {
	mapped := reducer.Map(reducer.Cancel[int]("token"), func(n int) string { return "" })
	if !kinds.IsKind(mapped.Kind(), kinds.Cancel) {
		t.Errorf("expected Cancel kind, got %d", mapped.Kind())
	}
	if mapped.CancellationID() != "token" {
		t.Errorf("expected identity to survive Map, got %v", mapped.CancellationID())
	}
}

func TestCancellableOfNoneIsNone(t *testing.T) {
	if !reducer.Cancellable(reducer.None[int](), "token", false).IsNone() {
		t.Error("Cancellable must not wrap the empty effect")
	}
}

func TestDebounceKind(t *testing.T) {
	effect := reducer.Debounce(reducer.Emit(1), "token", time.Second, clock.NewFake())
	if !kinds.IsKind(effect.Kind(), kinds.Debounce) {
		t.Errorf("expected Debounce kind, got %d", effect.Kind())
	}
	if !kinds.IsKind(effect.Kind(), kinds.Cancellable) {
		t.Error("Debounce must classify as Cancellable")
	}
}

func TestPerformHonorsDebounceClock(t *testing.T) {
	fake := clock.NewFake()
	effect := reducer.Debounce(reducer.Emit("fired"), "token", time.Second, fake)
	done := make(chan []string, 1)
	go func() {
		var got []string
		effect.Perform(context.Background(), func(action string) {
			got = append(got, action)
		})
		done <- got
	}()
	for fake.Pending() == 0 {
		time.Sleep(time.Millisecond)
	}
	fake.Advance(time.Second)
	select {
	case got := <-done:
		if len(got) != 1 || got[0] != "fired" {
			t.Errorf("expected [fired], got %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced Perform did not complete after Advance")
	}
}

func TestPerformDebounceCancelledByContext(t *testing.T) {
	fake := clock.NewFake()
	ctx, cancel := context.WithCancel(context.Background())
	effect := reducer.Debounce(reducer.Emit("fired"), "token", time.Second, fake)
	done := make(chan int, 1)
	go func() {
		count := 0
		effect.Perform(ctx, func(string) { count++ })
		done <- count
	}()
	for fake.Pending() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case count := <-done:
		if count != 0 {
			t.Errorf("cancelled debounce still emitted %d actions", count)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled Perform did not return")
	}
}
