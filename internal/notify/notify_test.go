package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alexanderramin/semester/internal/domain"
	"github.com/alexanderramin/semester/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLogNotifier_MapsLevels(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	n.Notify(context.Background(), "synced", domain.NotifySuccess)
	n.Notify(context.Background(), "partial", domain.NotifyWarning)
	n.Notify(context.Background(), "broken", domain.NotifyError)

	out := buf.String()
	assert.NotContains(t, out, "synced", "success is info and below the handler level")
	assert.Contains(t, out, "level=WARN msg=partial")
	assert.Contains(t, out, "level=ERROR msg=broken")
	assert.Contains(t, out, "notify_level=error")
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	a := &testutil.RecordingNotifier{}
	b := &testutil.RecordingNotifier{}
	m := NewMulti(a, nil, b, NoopNotifier{})

	m.Notify(context.Background(), "hello", domain.NotifyInfo)

	assert.Len(t, m, 3)
	assert.Equal(t, []testutil.Notification{{Message: "hello", Level: domain.NotifyInfo}}, a.Sent())
	assert.Equal(t, a.Sent(), b.Sent())
}
