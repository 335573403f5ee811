package lms

import (
	"log/slog"

	"github.com/alexanderramin/semester/internal/domain"
)

// CallEvent records metadata about a single provider operation.
type CallEvent struct {
	Provider   domain.Provider
	Op         Op
	LatencyMs  int64
	Pages      int
	Attempts   int
	StatusCode int
	Success    bool
	ErrorCode  string
}

// Observer receives events about provider calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"provider", event.Provider,
		"op", event.Op,
		"latency_ms", event.LatencyMs,
		"pages", event.Pages,
		"attempts", event.Attempts,
	}
	if event.Success {
		o.logger.Info("lms_call", attrs...)
		return
	}
	attrs = append(attrs, "status", event.StatusCode, "error_code", event.ErrorCode)
	o.logger.Warn("lms_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
