package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	reasons []string
	calls   chan string
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan string, 64)}
}

func (r *recorder) build(_ context.Context, reason string) error {
	r.mu.Lock()
	r.reasons = append(r.reasons, reason)
	r.mu.Unlock()
	r.calls <- reason
	return nil
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q rebuild", want)
		}
	}
}

func startWatcher(t *testing.T, opts Options, build BuildFunc) *Watcher {
	t.Helper()
	w, err := New(opts, build)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Give Run a moment to register the roots.
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestNew_RequiresBuild(t *testing.T) {
	_, err := New(Options{}, nil)
	require.Error(t, err)
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	w := startWatcher(t, Options{Roots: []string{root}, Debounce: 50 * time.Millisecond}, rec.build)

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.md"), []byte("# Hi"), 0o600))
	waitFor(t, rec.calls, ReasonChange)
	require.GreaterOrEqual(t, w.Builds(), int64(1))
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Options{Roots: []string{root}, Debounce: 300 * time.Millisecond}, rec.build)

	for i := range 5 {
		name := filepath.Join(root, "page.md")
		require.NoError(t, os.WriteFile(name, []byte{byte('a' + i)}, 0o600))
		time.Sleep(20 * time.Millisecond)
	}
	waitFor(t, rec.calls, ReasonChange)

	select {
	case <-rec.calls:
		t.Fatal("burst of writes caused more than one rebuild")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, Options{Roots: []string{root}, Debounce: 50 * time.Millisecond}, rec.build)

	sub := filepath.Join(root, "guide")
	require.NoError(t, os.Mkdir(sub, 0o750))
	waitFor(t, rec.calls, ReasonChange)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "intro.md"), []byte("text"), 0o600))
	waitFor(t, rec.calls, ReasonChange)
}

func TestWatcher_IgnoresOutputAndHidden(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "public")
	require.NoError(t, os.Mkdir(out, 0o750))

	rec := newRecorder()
	startWatcher(t, Options{Roots: []string{root}, Ignore: []string{out}, Debounce: 50 * time.Millisecond}, rec.build)

	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("<p>x</p>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".swap"), []byte("x"), 0o600))

	select {
	case reason := <-rec.calls:
		t.Fatalf("unexpected rebuild %q", reason)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_MissingRootIsIgnored(t *testing.T) {
	rec := newRecorder()
	startWatcher(t, Options{Roots: []string{filepath.Join(t.TempDir(), "missing")}}, rec.build)
}

func TestWatcher_ScheduledRebuildsNeverOverlap(t *testing.T) {
	var active, maxActive atomic.Int32
	calls := make(chan string, 64)
	build := func(_ context.Context, reason string) error {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(120 * time.Millisecond)
		active.Add(-1)
		calls <- reason
		return nil
	}

	root := t.TempDir()
	startWatcher(t, Options{Roots: []string{root}, Debounce: 10 * time.Millisecond, Interval: 50 * time.Millisecond}, build)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0o600))
	waitFor(t, calls, ReasonSchedule)
	waitFor(t, calls, ReasonSchedule)

	require.Equal(t, int32(1), maxActive.Load())
}
