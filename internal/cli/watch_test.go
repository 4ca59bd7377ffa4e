package cli

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tmplpatch/internal/logging"
)

const testDebounce = 50 * time.Millisecond

type watchHarness struct {
	events   chan fsnotify.Event
	errs     chan error
	rendered chan struct{}
	done     chan error
	cancel   context.CancelFunc
}

func startWatcher(t *testing.T, render func(context.Context) error, paths ...string) *watchHarness {
	t.Helper()

	h := &watchHarness{
		events:   make(chan fsnotify.Event),
		errs:     make(chan error),
		rendered: make(chan struct{}, 16),
		done:     make(chan error, 1),
	}
	if render == nil {
		render = func(context.Context) error { return nil }
	}
	wrapped := func(ctx context.Context) error {
		err := render(ctx)
		h.rendered <- struct{}{}
		return err
	}

	logger := logging.NewWithWriter(io.Discard, "debug")
	w := newWatcher(logger, testDebounce, wrapped, paths...)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- w.run(ctx, h.events, h.errs) }()

	t.Cleanup(cancel)
	return h
}

func (h *watchHarness) expectRender(t *testing.T) {
	t.Helper()
	select {
	case <-h.rendered:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a render")
	}
}

func (h *watchHarness) expectNoRender(t *testing.T) {
	t.Helper()
	select {
	case <-h.rendered:
		t.Fatal("unexpected render")
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "mail.html")
	h := startWatcher(t, nil, target)

	for range 3 {
		h.events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	}

	h.expectRender(t)
	h.expectNoRender(t)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := startWatcher(t, nil, filepath.Join(dir, "mail.html"))

	h.events <- fsnotify.Event{Name: filepath.Join(dir, "other.html"), Op: fsnotify.Write}
	h.expectNoRender(t)
}

func TestWatcher_WatchesEditFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	edits := filepath.Join(dir, "edits.yaml")
	h := startWatcher(t, nil, filepath.Join(dir, "mail.html"), edits)

	h.events <- fsnotify.Event{Name: edits, Op: fsnotify.Create}
	h.expectRender(t)
}

func TestWatcher_RenderErrorKeepsWatching(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "mail.html")
	calls := 0
	h := startWatcher(t, func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("broken template")
		}
		return nil
	}, target)

	h.events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	h.expectRender(t)

	h.errs <- errors.New("queue overflow")

	h.events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	h.expectRender(t)
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, nil, filepath.Join(t.TempDir(), "mail.html"))
	h.cancel()

	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_StopsWhenEventsClose(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, nil, filepath.Join(t.TempDir(), "mail.html"))
	close(h.events)

	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "mail.html")
	w := newWatcher(logging.NewWithWriter(io.Discard, "info"), testDebounce, nil, target, "")

	assert.True(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Remove}))
	assert.Len(t, w.targets, 1)
	assert.Equal(t, []string{filepath.Dir(target)}, w.dirs())
}
