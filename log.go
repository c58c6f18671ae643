package reducer

import (
	"fmt"
	"log/slog"

	"github.com/stateflow/go-reducer/kinds"
)

// Log wraps a reducer with structured logging of every reduction: the action
// type and the kind of effect it produced, at debug level.
func Log[S, A any](r Reducer[S, A], logger *slog.Logger) Reducer[S, A] {
	if logger == nil {
		logger = slog.Default()
	}
	return &logged[S, A]{reducer: r, logger: logger}
}

type logged[S, A any] struct {
	reducer Reducer[S, A]
	logger  *slog.Logger
}

func (l *logged[S, A]) Reduce(state *S, action A) Effect[A] {
	effect := l.reducer.Reduce(state, action)
	l.logger.Debug("reduce",
		slog.String("action", fmt.Sprintf("%T", action)),
		slog.String("effect", kindName(effect.Kind())),
	)
	return effect
}

func (l *logged[S, A]) ComponentName() string {
	return fmt.Sprintf("Log[%T]", l.reducer)
}

func (l *logged[S, A]) Components() []any {
	return []any{l.reducer}
}

func kindName(kind uint64) string {
	switch {
	case kinds.IsKind(kind, kinds.None):
		return "none"
	case kinds.IsKind(kind, kinds.Emit):
		return "emit"
	case kinds.IsKind(kind, kinds.Run):
		return "run"
	case kinds.IsKind(kind, kinds.Debounce):
		return "debounce"
	case kinds.IsKind(kind, kinds.Cancellable):
		return "cancellable"
	case kinds.IsKind(kind, kinds.Merge):
		return "merge"
	case kinds.IsKind(kind, kinds.Concat):
		return "concat"
	case kinds.IsKind(kind, kinds.Cancel):
		return "cancel"
	}
	return "unknown"
}
