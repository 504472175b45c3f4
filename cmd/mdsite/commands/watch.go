package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory; overrides output.directory"`
	Debounce time.Duration `help:"Quiet period before rebuilding; overrides watch.debounce"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, g, cfg)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, cfg *config.Config) error {
	var reg *prom.Registry
	if cfg.Metrics.Enabled {
		reg = prom.NewRegistry()
	}
	pub := newPublisher(cfg, (&BuildCmd{Output: w.Output}).options(cfg), reg)
	opts := pub.Options()

	if reg != nil && cfg.Metrics.Listen != "" {
		srv, err := metrics.Listen(cfg.Metrics.Listen, reg)
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Serve(ctx); err != nil {
				slog.Error("Metrics endpoint stopped", logfields.Error(err))
			}
		}()
	}

	build := func(ctx context.Context, _ string) error {
		report, err := pub.Build(ctx)
		if err != nil {
			return err
		}
		printReport(g.Stdout, report)
		return nil
	}

	// A failing initial build is reported but does not stop watching.
	if err := build(ctx, "initial"); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	debounce := cfg.Watch.DebounceDuration()
	if w.Debounce > 0 {
		debounce = w.Debounce
	}

	watcher, err := watch.New(watch.Options{
		Roots:    []string{opts.ContentDir, opts.StaticDir},
		Ignore:   []string{opts.OutputDir},
		Debounce: debounce,
		Interval: cfg.Watch.RebuildEvery(),
	}, build)
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	slog.Info("Watch stopped", slog.Int64("rebuilds", watcher.Builds()))
	return nil
}
