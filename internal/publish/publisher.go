// Package publish renders a content tree of Markdown pages into a static
// site: it cleans the output directory, copies static assets, renders every
// page and optionally writes a manifest and checks links.
package publish

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/linkcheck"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/observability"
)

// Stage names used in logs and metrics.
const (
	StageClean    = "clean"
	StageStatic   = "static"
	StagePages    = "pages"
	StageManifest = "manifest"
	StageLinks    = "links"
)

// Report is the outcome of a successful Build.
type Report struct {
	BuildID     string
	StaticFiles int
	Pages       []PageResult
	Skipped     []SkippedResult
	Pruned      []string // outputs of an earlier build removed because their source is gone
	Links       *linkcheck.Report
	Duration    time.Duration
}

// Publisher builds a site from Options.
type Publisher struct {
	opts     Options
	recorder metrics.Recorder
	now      func() time.Time
}

// NewPublisher returns a publisher using the no-op metrics recorder.
func NewPublisher(opts Options) *Publisher {
	opts.normalize()
	return &Publisher{opts: opts, recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder sets the metrics recorder.
func (p *Publisher) WithRecorder(r metrics.Recorder) *Publisher {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	p.recorder = r
	return p
}

// Options returns the normalized options.
func (p *Publisher) Options() Options { return p.opts }

// Build runs every stage in order. The first failing stage aborts the run;
// pages already written stay on disk, but no partial file is written for the
// page that failed.
func (p *Publisher) Build(ctx context.Context) (*Report, error) {
	start := p.now()
	report := &Report{BuildID: observability.NewBuildID()}
	ctx = observability.WithBuildID(ctx, report.BuildID)

	observability.InfoContext(ctx, "Build started",
		logfields.Path(p.opts.ContentDir), logfields.Output(p.opts.OutputDir))

	err := p.run(ctx, report)
	report.Duration = p.now().Sub(start)
	p.recorder.ObserveBuildDuration(report.Duration)

	if err != nil {
		outcome := metrics.BuildOutcomeFailed
		if ctx.Err() != nil {
			outcome = metrics.BuildOutcomeCanceled
		}
		p.recorder.IncBuildOutcome(outcome)
		observability.ErrorContext(ctx, "Build failed", logfields.Error(err))
		return nil, err
	}

	outcome := metrics.BuildOutcomeSuccess
	if len(report.Skipped) > 0 {
		outcome = metrics.BuildOutcomeWarning
	}
	p.recorder.IncBuildOutcome(outcome)
	observability.InfoContext(ctx, "Build completed",
		logfields.Pages(len(report.Pages)),
		logfields.Skipped(len(report.Skipped)),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (p *Publisher) run(ctx context.Context, report *Report) error {
	if _, err := os.Stat(p.opts.ContentDir); err != nil {
		return derrors.FileSystemError("stat", p.opts.ContentDir, err)
	}
	if err := p.opts.checkOutput(); err != nil {
		return derrors.ValidationFailed("output.directory", err.Error())
	}

	if err := os.MkdirAll(p.opts.OutputDir, 0o750); err != nil {
		return derrors.FileSystemError("mkdir", p.opts.OutputDir, err)
	}

	stages := []struct {
		name    string
		enabled bool
		fn      func(context.Context, *Report) error
	}{
		{StageClean, p.opts.Clean, p.clean},
		{StageStatic, p.opts.StaticDir != "", p.copyStatic},
		{StagePages, true, p.renderPages},
		{StageManifest, p.opts.Manifest, p.writeManifest},
		{StageLinks, p.opts.CheckLinks, p.checkLinks},
	}

	for _, st := range stages {
		if !st.enabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			p.recorder.IncStageResult(st.name, metrics.ResultCanceled)
			return err
		}

		stageCtx := observability.WithStage(ctx, st.name)
		began := p.now()
		err := st.fn(stageCtx, report)
		elapsed := p.now().Sub(began)
		p.recorder.ObserveStageDuration(st.name, elapsed)

		if err != nil {
			p.recorder.IncStageResult(st.name, metrics.ResultFatal)
			if _, ok := derrors.As(err); ok {
				return err
			}
			return derrors.PublishFailed(st.name, err)
		}
		p.recorder.IncStageResult(st.name, metrics.ResultSuccess)
		observability.DebugContext(stageCtx, "Stage completed",
			logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	}
	return nil
}

func (p *Publisher) clean(_ context.Context, _ *Report) error {
	if err := os.RemoveAll(p.opts.OutputDir); err != nil {
		return derrors.FileSystemError("remove", p.opts.OutputDir, err)
	}
	if err := os.MkdirAll(p.opts.OutputDir, 0o750); err != nil {
		return derrors.FileSystemError("mkdir", p.opts.OutputDir, err)
	}
	return nil
}

func (p *Publisher) copyStatic(ctx context.Context, report *Report) error {
	info, err := os.Stat(p.opts.StaticDir)
	if os.IsNotExist(err) {
		observability.DebugContext(ctx, "No static directory", logfields.Path(p.opts.StaticDir))
		return nil
	}
	if err != nil {
		return derrors.FileSystemError("stat", p.opts.StaticDir, err)
	}
	if !info.IsDir() {
		return derrors.ValidationFailed("static_dir", p.opts.StaticDir+" is not a directory")
	}

	n, err := copyDir(p.opts.StaticDir, p.opts.OutputDir)
	report.StaticFiles = n
	if err != nil {
		return derrors.FileSystemError("copy", p.opts.StaticDir, err)
	}
	observability.InfoContext(ctx, "Static files copied", slog.Int("files", n), logfields.Path(p.opts.StaticDir))
	return nil
}

func (p *Publisher) renderPages(ctx context.Context, report *Report) error {
	sources, err := p.sources()
	if err != nil {
		return derrors.FileSystemError("walk", p.opts.ContentDir, err)
	}

	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.publishPage(ctx, rel, report); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) publishPage(ctx context.Context, rel string, report *Report) error {
	pageCtx := observability.WithPage(ctx, filepath.ToSlash(rel))
	began := p.now()

	page, err := p.renderPage(rel)
	if err != nil {
		p.recorder.IncPageResult(metrics.ResultFatal)
		return err
	}
	if page.skipped != "" {
		p.recorder.IncPageResult(metrics.ResultSkipped)
		report.Skipped = append(report.Skipped, SkippedResult{Source: filepath.ToSlash(rel), Reason: page.skipped})
		observability.WarnContext(pageCtx, "Page skipped", logfields.Event(page.skipped))
		return nil
	}

	out := filepath.Join(p.opts.OutputDir, filepath.FromSlash(page.result.Output))
	if err := writeFile(out, []byte(page.html)); err != nil {
		p.recorder.IncPageResult(metrics.ResultFatal)
		return derrors.FileSystemError("write", out, err)
	}

	for kind, n := range page.result.Blocks {
		p.recorder.AddBlocks(kind, n)
	}
	p.recorder.IncPageResult(metrics.ResultSuccess)
	p.recorder.ObservePageDuration(p.now().Sub(began))
	report.Pages = append(report.Pages, page.result)

	observability.DebugContext(pageCtx, "Page rendered", logfields.Output(page.result.Output))
	return nil
}

// sources lists Markdown files below the content directory in lexical
// order, relative to it. Hidden files and directories are ignored.
func (p *Publisher) sources() ([]string, error) {
	var out []string
	root := p.opts.ContentDir
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	return out, err
}

func (p *Publisher) writeManifest(ctx context.Context, report *Report) error {
	if err := p.pruneStale(ctx, report); err != nil {
		return err
	}

	m := &Manifest{
		BuildID:     report.BuildID,
		GeneratedAt: p.now().UTC(),
		StaticFiles: report.StaticFiles,
		Pages:       report.Pages,
		Skipped:     report.Skipped,
	}
	if err := writeManifest(p.opts.OutputDir, m); err != nil {
		return err
	}
	observability.DebugContext(ctx, "Manifest written", logfields.Output(ManifestFile))
	return nil
}

// pruneStale removes pages listed in the previous manifest that this run no
// longer produces, such as deleted sources or pages turned into drafts.
func (p *Publisher) pruneStale(ctx context.Context, report *Report) error {
	prev, err := ReadManifest(p.opts.OutputDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			observability.WarnContext(ctx, "Ignoring unreadable previous manifest", logfields.Error(err))
		}
		return nil
	}

	current := make(map[string]bool, len(report.Pages))
	for _, page := range report.Pages {
		current[page.Output] = true
	}
	for _, page := range prev.Pages {
		if current[page.Output] {
			continue
		}
		target := filepath.Join(p.opts.OutputDir, filepath.FromSlash(page.Output))
		if !isWithin(target, p.opts.OutputDir) {
			continue
		}
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return derrors.FileSystemError("remove", target, err)
		}
		report.Pruned = append(report.Pruned, page.Output)
		observability.InfoContext(ctx, "Removed stale page", logfields.Output(page.Output))
	}
	return nil
}

func (p *Publisher) checkLinks(ctx context.Context, report *Report) error {
	lr, err := linkcheck.NewChecker(p.opts.OutputDir, p.opts.Extension).Check(ctx)
	if err != nil {
		return err
	}
	report.Links = lr
	for _, b := range lr.Broken {
		observability.WarnContext(ctx, "Broken link",
			logfields.File(b.Page), logfields.Path(b.URL), logfields.Output(b.Target))
	}
	if !lr.OK() {
		return derrors.LinksBroken(len(lr.Broken))
	}
	return nil
}
