package commands

import (
	"fmt"
	"os"

	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Path   string `arg:"" optional:"" help:"File or directory to lint; defaults to content_dir"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet  bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
}

func (l *LintCmd) Run(g *Global, root *CLI) error {
	path := l.Path
	if path == "" {
		cfg, err := root.loadConfig(g)
		if err != nil {
			return err
		}
		path = cfg.ContentDir
	}

	if _, err := os.Stat(path); err != nil {
		return derrors.FileSystemError("stat", path, err)
	}

	linter := lint.NewLinter(&lint.Config{Quiet: l.Quiet, Format: l.Format})
	result, err := linter.LintPath(path)
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	if err := lint.NewFormatter(l.Format).Format(g.Stdout, result, path); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if result.HasErrors() {
		return derrors.LintFailed(result.ErrorCount())
	}
	return nil
}
