package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomify-backend/service"
)

// streamRecorder is a flushable response writer safe to read while the
// handler under test is still streaming into it.
type streamRecorder struct {
	mu      sync.Mutex
	header  http.Header
	status  int
	body    strings.Builder
	flushed chan struct{}
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{
		header:  make(http.Header),
		flushed: make(chan struct{}, 1),
	}
}

func (w *streamRecorder) Header() http.Header { return w.header }

func (w *streamRecorder) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = code
}

func (w *streamRecorder) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.Write(p)
}

func (w *streamRecorder) Flush() {
	select {
	case w.flushed <- struct{}{}:
	default:
	}
}

func (w *streamRecorder) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *streamRecorder) Body() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.String()
}

func waitFlush(t *testing.T, rec *streamRecorder) {
	t.Helper()
	select {
	case <-rec.flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a streamed event")
	}
}

func TestWatchStreamsSnapshots(t *testing.T) {
	repo := newMemorySuggestionRepo()
	suggestions := service.NewSuggestionService(repo)
	ctrl := NewSuggestionController(suggestions, nil)

	require.NoError(t, suggestions.SaveAccepted(context.Background(), "watcher", []map[string]string{
		{"dress_color": "Navy"},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/suggestions/watch?user_id=watcher", nil).WithContext(ctx)
	rec := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		ctrl.Watch(rec, req)
		close(done)
	}()

	// First frame is the snapshot at connect time.
	waitFlush(t, rec)
	assert.Contains(t, rec.Body(), "data: ")
	assert.Contains(t, rec.Body(), "Navy")

	// A save after connecting pushes a fresh snapshot.
	require.NoError(t, suggestions.SaveAccepted(context.Background(), "watcher", []map[string]string{
		{"dress_color": "Black"},
	}))
	waitFlush(t, rec)
	assert.Contains(t, rec.Body(), "Black")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after client disconnect")
	}

	assert.Equal(t, http.StatusOK, rec.Status())
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}

func TestWatchRequiresUser(t *testing.T) {
	repo := newMemorySuggestionRepo()
	ctrl := NewSuggestionController(service.NewSuggestionService(repo), nil)

	req := httptest.NewRequest(http.MethodGet, "/suggestions/watch", nil)
	rec := httptest.NewRecorder()
	ctrl.Watch(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_id is required")
}
