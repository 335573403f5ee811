// Package notify holds fire-and-forget message sinks used to report sync
// outcomes.
package notify

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/semester/internal/domain"
)

// Notifier receives user-facing messages. Implementations must not block
// for long and never return errors.
type Notifier interface {
	Notify(ctx context.Context, message string, level domain.NotifyLevel)
}

// NoopNotifier drops every message.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string, domain.NotifyLevel) {}

// LogNotifier writes messages to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, message string, level domain.NotifyLevel) {
	n.logger.Log(ctx, slogLevel(level), message, "notify_level", string(level))
}

func slogLevel(level domain.NotifyLevel) slog.Level {
	switch level {
	case domain.NotifyError:
		return slog.LevelError
	case domain.NotifyWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Multi fans a message out to every non-nil notifier in order.
type Multi []Notifier

func NewMulti(notifiers ...Notifier) Multi {
	out := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m Multi) Notify(ctx context.Context, message string, level domain.NotifyLevel) {
	for _, n := range m {
		n.Notify(ctx, message, level)
	}
}
