// Package watch rebuilds a site when its sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Trigger reasons passed to BuildFunc.
const (
	ReasonChange   = "change"
	ReasonSchedule = "schedule"
)

// BuildFunc performs one rebuild. Errors are logged and do not stop watching.
type BuildFunc func(ctx context.Context, reason string) error

// Options configures a Watcher.
type Options struct {
	// Roots are watched recursively. Missing roots are ignored.
	Roots []string
	// Ignore lists directories whose events never trigger a rebuild, such as
	// the output directory when it lives below a root.
	Ignore []string
	// Debounce is the quiet period after the last change before rebuilding.
	Debounce time.Duration
	// Interval enables periodic full rebuilds when positive.
	Interval time.Duration
}

// Watcher serializes rebuilds triggered by file changes and by schedule;
// two builds never run at the same time.
type Watcher struct {
	opts     Options
	build    BuildFunc
	fsw      *fsnotify.Watcher
	schedule chan struct{}
	ignore   []string
	builds   atomic.Int64
}

// New creates a watcher. Call Run to start it.
func New(opts Options, build BuildFunc) (*Watcher, error) {
	if build == nil {
		return nil, errors.New("watch: build function is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		opts:     opts,
		build:    build,
		fsw:      fsw,
		schedule: make(chan struct{}, 1),
	}
	for _, dir := range opts.Ignore {
		abs, err := filepath.Abs(dir)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to resolve ignored path: %w", err)
		}
		w.ignore = append(w.ignore, abs)
	}
	return w, nil
}

// Builds returns the number of rebuilds run so far.
func (w *Watcher) Builds() int64 { return w.builds.Load() }

// Run watches until ctx is canceled. It always closes the underlying
// file watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	for _, root := range w.opts.Roots {
		if err := w.addRecursive(root); err != nil {
			return err
		}
	}

	if w.opts.Interval > 0 {
		sched, err := newScheduler(w.opts.Interval, w.requestScheduled)
		if err != nil {
			return err
		}
		defer sched.stop()
	}

	slog.Info("Watching for changes",
		slog.Any("roots", w.opts.Roots),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("interval", w.opts.Interval))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Stop()
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			w.rebuild(ctx, ReasonChange)

		case <-w.schedule:
			w.rebuild(ctx, ReasonSchedule)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	w.builds.Add(1)
	start := time.Now()
	if err := w.build(ctx, reason); err != nil {
		slog.Error("Rebuild failed", logfields.Event(reason), logfields.Error(err))
		return
	}
	slog.Info("Rebuild completed", logfields.Event(reason),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

// requestScheduled queues a scheduled rebuild unless one is already pending.
func (w *Watcher) requestScheduled() {
	select {
	case w.schedule <- struct{}{}:
	default:
	}
}

// relevant filters out events that must not cause a rebuild, and starts
// watching directories created under a root.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if w.ignored(event.Name) || isHidden(event.Name) {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
		}
	}
	return true
}

func (w *Watcher) addRecursive(root string) error {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Watch root does not exist", logfields.Path(root))
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (isHidden(path) || w.ignored(path)) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		rel, err := filepath.Rel(dir, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// isHidden reports editor swap files and dot entries.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
