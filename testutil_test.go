package auxcallback

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/require"
)

// stepClock advances by step every time it is read.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Unix(1700000000, 0), step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// recordingSink collects reported messages.
type recordingSink struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (s *recordingSink) ReportError(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return s.err
}

func (s *recordingSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// callLog records the order callbacks were invoked in.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) Callback(name string) Callback {
	return VoidFunc(func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.calls = append(l.calls, name)
		return nil
	})
}

func (l *callLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func newTestLogger(buf *bytes.Buffer) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(buf),
			stumpy.WithTimeField(``),
		),
		stumpy.L.WithLevel(logiface.LevelDebug),
	).Logger()
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	registry, err := NewRegistry(WithCapacity(1024))
	require.NoError(t, err)
	engine, err := NewEngine(registry, opts...)
	require.NoError(t, err)
	return engine
}

func mustSend(t *testing.T, r *Registry, id string, cb Callback) {
	t.Helper()
	require.True(t, r.SenderByIDInsert(id).TrySend(cb), "channel %q full", id)
}
