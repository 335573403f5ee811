package cli

import (
	"context"
	"io"
	"sync"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/domain"
)

// TerminalNotifier prints notifications as styled lines. While held, lines
// are queued so they do not interleave with a running spinner.
type TerminalNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	held    bool
	pending []string
}

func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{w: w}
}

func (n *TerminalNotifier) Notify(_ context.Context, message string, level domain.NotifyLevel) {
	line := formatter.NotifyMarker(level) + " " + message + "\n"

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.held {
		n.pending = append(n.pending, line)
		return
	}
	_, _ = io.WriteString(n.w, line)
}

// Hold queues notifications until Release. Safe on a nil notifier.
func (n *TerminalNotifier) Hold() {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.held = true
	n.mu.Unlock()
}

// Release prints queued notifications and stops queueing.
func (n *TerminalNotifier) Release() {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.held = false
	for _, line := range n.pending {
		_, _ = io.WriteString(n.w, line)
	}
	n.pending = nil
}
