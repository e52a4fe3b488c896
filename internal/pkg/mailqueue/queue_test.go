package mailqueue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	sent     []string
	failures int // fail this many sends before succeeding
	calls    int
}

func (s *recordingSender) Send(to, subject, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *recordingSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *recordingSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestEnqueueDelivers(t *testing.T) {
	sender := &recordingSender{}
	q := New(sender, Config{Workers: 2, Buffer: 10}, discardLogger())
	defer q.Shutdown(context.Background())

	id, err := q.Enqueue(Job{Type: "welcome", To: "jane@example.com", Subject: "hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	waitFor(t, func() bool { return sender.sentCount() == 1 })
	assert.Equal(t, []string{"jane@example.com"}, sender.sent)
}

func TestEnqueueFullQueue(t *testing.T) {
	// No workers draining: buffer of 1 fills after one job.
	sender := &recordingSender{failures: 1000}
	q := New(sender, Config{Workers: 1, Buffer: 1}, discardLogger())
	defer q.Shutdown(context.Background())

	// First two may be absorbed by buffer + an idle worker; keep
	// pushing until rejection.
	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = q.Enqueue(Job{Type: "welcome", To: "x@example.com"})
		if lastErr != nil {
			break
		}
	}
	assert.ErrorIs(t, lastErr, ErrQueueFull)
}

func TestRetryThenSuccess(t *testing.T) {
	sender := &recordingSender{failures: 2}
	q := New(sender, Config{Workers: 1, Buffer: 10}, discardLogger())
	defer q.Shutdown(context.Background())

	_, err := q.Enqueue(Job{Type: "attendance", To: "jane@example.com"})
	require.NoError(t, err)

	// Two failures back off 1s and 2s before the third attempt lands.
	waitFor(t, func() bool { return sender.sentCount() == 1 })
	assert.Equal(t, 3, sender.callCount())
}

func TestEnqueueAfterShutdown(t *testing.T) {
	sender := &recordingSender{}
	q := New(sender, Config{Workers: 1, Buffer: 10}, discardLogger())
	require.NoError(t, q.Shutdown(context.Background()))

	_, err := q.Enqueue(Job{Type: "welcome", To: "x@example.com"})
	assert.ErrorIs(t, err, ErrQueueClosed)
}
