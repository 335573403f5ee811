package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/semester/internal/domain"
)

// Notification is one message captured by RecordingNotifier.
type Notification struct {
	Message string
	Level   domain.NotifyLevel
}

// RecordingNotifier keeps every notification it receives. Safe for
// concurrent use.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *RecordingNotifier) Notify(_ context.Context, message string, level domain.NotifyLevel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Notification{Message: message, Level: level})
}

// Sent returns a copy of the recorded notifications.
func (r *RecordingNotifier) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

// Levels returns the level of each notification in order.
func (r *RecordingNotifier) Levels() []domain.NotifyLevel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.NotifyLevel, len(r.sent))
	for i, n := range r.sent {
		out[i] = n.Level
	}
	return out
}
