package reducer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/stateflow/go-reducer/clock"
	"github.com/stateflow/go-reducer/kinds"
	"github.com/stateflow/go-reducer/pkg/set"
	"github.com/stateflow/go-reducer/pkg/telemetry"
	"github.com/stateflow/go-reducer/queue"
)

type subcontext = context.Context

// Store owns a State instance and drives repeated reductions against it.
// Reductions are serialized: exactly one goroutine drains the action queue
// at a time, so Reduce always holds exclusive access to the state. Effects
// run outside the drain loop and report back through Send.
type Store[S, A any] struct {
	subcontext
	cancel     context.CancelFunc
	id         string
	reducer    Reducer[S, A]
	queue      *queue.Queue[A]
	processing atomic.Bool

	stateMu sync.RWMutex
	state   S

	cancelMu      sync.Mutex
	cancellations map[any]set.Set[*cancellation]

	logger *slog.Logger
	tracer trace.Tracer
	clock  clock.Clock
}

type cancellation struct {
	cancel context.CancelFunc
}

type options struct {
	logger *slog.Logger
	tracer trace.Tracer
	clock  clock.Clock
}

type Option func(*options)

// WithLogger routes the store's debug logging to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer records one span per drained action on the given tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithClock substitutes the clock used by debounced effects.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// New builds a store around a reducer definition, resolving it through
// [From] (and panicking, like From, when the definition conforms to
// neither facet).
func New[S, A any](ctx context.Context, initial S, definition any, opts ...Option) *Store[S, A] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = telemetry.NewProvider().Tracer("go-reducer")
	}
	if o.clock == nil {
		o.clock = clock.Make()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Store[S, A]{
		subcontext:    ctx,
		cancel:        cancel,
		id:            uuid.NewString(),
		reducer:       From[S, A](definition),
		queue:         queue.New[A](),
		state:         initial,
		cancellations: map[any]set.Set[*cancellation]{},
		logger:        o.logger,
		tracer:        o.tracer,
		clock:         o.clock,
	}
}

// ID returns the store's instance id, as carried on its logs and spans.
func (s *Store[S, A]) ID() string {
	return s.id
}

// State returns a snapshot of the current state.
func (s *Store[S, A]) State() S {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Send enqueues an action and drains the queue unless another goroutine
// already is. Safe to call from anywhere, including effect operations; a
// send that loses the drain race leaves its action for the current drainer.
func (s *Store[S, A]) Send(action A) {
	s.queue.Push(action)
	s.drain()
}

func (s *Store[S, A]) drain() {
	for {
		if !s.processing.CompareAndSwap(false, true) {
			return
		}
		for {
			action, ok := s.queue.Pop()
			if !ok {
				break
			}
			s.step(action)
		}
		s.processing.Store(false)
		// An action pushed between the last Pop and the flag release would
		// otherwise be stranded; re-check and try to claim the drain again.
		if s.queue.Len() == 0 {
			return
		}
	}
}

func (s *Store[S, A]) step(action A) {
	_, span := s.tracer.Start(s.subcontext, "reduce",
		trace.WithAttributes(telemetry.StoreID(s.id), telemetry.Action(action)))
	s.stateMu.Lock()
	effect := s.reducer.Reduce(&s.state, action)
	s.stateMu.Unlock()
	span.End()
	s.logger.Debug("store.step",
		slog.String("store", s.id),
		slog.String("effect", kindName(effect.Kind())),
	)
	s.execute(effect)
}

// execute hands an effect to the engine without blocking the drain loop.
// Emit and Cancel complete synchronously; everything else moves to its own
// goroutine.
func (s *Store[S, A]) execute(effect Effect[A]) {
	kind := effect.Kind()
	switch {
	case kinds.IsKind(kind, kinds.None):
	case kinds.IsKind(kind, kinds.Emit):
		for _, action := range effect.actions {
			s.queue.Push(action)
		}
	case kinds.IsKind(kind, kinds.Cancel):
		s.cancelAll(effect.id)
	default:
		go s.run(s.subcontext, effect)
	}
}

// run interprets an effect synchronously. It is always called off the drain
// goroutine, so emitted actions re-enter through Send.
func (s *Store[S, A]) run(ctx context.Context, effect Effect[A]) {
	kind := effect.Kind()
	switch {
	case kinds.IsKind(kind, kinds.None):
	case kinds.IsKind(kind, kinds.Emit):
		for _, action := range effect.actions {
			s.Send(action)
		}
	case kinds.IsKind(kind, kinds.Run):
		effect.op(ctx, s.Send)
	case kinds.IsKind(kind, kinds.Merge):
		var wg sync.WaitGroup
		for _, child := range effect.children {
			wg.Add(1)
			go func(child Effect[A]) {
				defer wg.Done()
				s.run(ctx, child)
			}(child)
		}
		wg.Wait()
	case kinds.IsKind(kind, kinds.Concat):
		for _, child := range effect.children {
			if ctx.Err() != nil {
				return
			}
			s.run(ctx, child)
		}
	case kinds.IsKind(kind, kinds.Cancel):
		s.cancelAll(effect.id)
	case kinds.IsKind(kind, kinds.Cancellable):
		if effect.cancelInFlight {
			s.cancelAll(effect.id)
		}
		ctx, cancel := context.WithCancel(ctx)
		handle := &cancellation{cancel: cancel}
		s.register(effect.id, handle)
		defer s.unregister(effect.id, handle)
		defer cancel()
		if kinds.IsKind(kind, kinds.Debounce) {
			c := effect.clock
			if c == nil {
				c = s.clock
			}
			select {
			case <-ctx.Done():
				return
			case <-c.After(effect.duration):
			}
		}
		s.run(ctx, effect.children[0])
	}
}

func (s *Store[S, A]) register(id any, handle *cancellation) {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	handles, ok := s.cancellations[id]
	if !ok {
		handles = set.New[*cancellation]()
		s.cancellations[id] = handles
	}
	handles.Add(handle)
}

func (s *Store[S, A]) unregister(id any, handle *cancellation) {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	handles, ok := s.cancellations[id]
	if !ok {
		return
	}
	handles.Remove(handle)
	if handles.Size() == 0 {
		delete(s.cancellations, id)
	}
}

func (s *Store[S, A]) cancelAll(id any) {
	s.cancelMu.Lock()
	handles := s.cancellations[id]
	delete(s.cancellations, id)
	s.cancelMu.Unlock()
	if handles == nil {
		return
	}
	for handle := range handles.Items() {
		handle.cancel()
	}
}

// Close cancels the store context and all in-flight effect work. Actions
// still queued are dropped; Send after Close is a no-op for effects (their
// contexts are already done) though reduction itself still runs.
func (s *Store[S, A]) Close() {
	s.cancelMu.Lock()
	ids := make([]any, 0, len(s.cancellations))
	for id := range s.cancellations {
		ids = append(ids, id)
	}
	s.cancelMu.Unlock()
	for _, id := range ids {
		s.cancelAll(id)
	}
	s.cancel()
}
