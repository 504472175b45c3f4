package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/publish"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output     string `short:"o" help:"Output directory; overrides output.directory"`
	Clean      bool   `help:"Remove the output directory before building"`
	CheckLinks bool   `name:"check-links" help:"Fail when a rendered page links to a missing local file"`
	Manifest   bool   `help:"Write manifest.yaml into the output directory"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub := newPublisher(cfg, b.options(cfg), nil)
	report, err := pub.Build(ctx)
	if err != nil {
		return err
	}
	printReport(g.Stdout, report)
	return nil
}

// options applies flag overrides on top of the configuration.
func (b *BuildCmd) options(cfg *config.Config) publish.Options {
	opts := publish.OptionsFromConfig(cfg)
	if b.Output != "" {
		opts.OutputDir = b.Output
	}
	opts.Clean = opts.Clean || b.Clean
	opts.CheckLinks = opts.CheckLinks || b.CheckLinks
	opts.Manifest = opts.Manifest || b.Manifest
	return opts
}

// newPublisher wires the Prometheus recorder when metrics are enabled. reg
// may be nil, in which case a private registry is used.
func newPublisher(cfg *config.Config, opts publish.Options, reg *prom.Registry) *publish.Publisher {
	pub := publish.NewPublisher(opts)
	if cfg.Metrics.Enabled {
		if reg == nil {
			reg = prom.NewRegistry()
		}
		pub.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}
	return pub
}

func printReport(w io.Writer, r *publish.Report) {
	_, _ = fmt.Fprintf(w, "Built %d page%s (%d skipped, %d static file%s) in %s\n",
		len(r.Pages), plural(len(r.Pages)), len(r.Skipped), r.StaticFiles, plural(r.StaticFiles),
		r.Duration.Round(time.Millisecond))
	if r.Links != nil {
		_, _ = fmt.Fprintf(w, "Checked %d link%s on %d page%s\n",
			r.Links.Links, plural(r.Links.Links), r.Links.Pages, plural(r.Links.Pages))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
