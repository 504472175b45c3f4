// Package commands holds the kong command tree of the mdsite binary.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/internal/config"
	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/observability"
)

// Global carries the process streams so commands can be driven from tests.
type Global struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns a Global bound to the process streams.
func NewGlobal() *Global {
	return &Global{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"mdsite.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Render a Markdown document to HTML"`
	Tree   TreeCmd   `cmd:"" help:"Print the HTML node tree of a Markdown document"`
	Build  BuildCmd  `cmd:"" help:"Publish the content directory as a static site"`
	Watch  WatchCmd  `cmd:"" help:"Build, then rebuild whenever sources change"`
	Lint   LintCmd   `cmd:"" help:"Report Markdown the renderer does not support"`
}

// AfterApply runs after flag parsing; set up logging from the flags alone.
// Commands that read the configuration refine it in loadConfig.
func (c *CLI) AfterApply(g *Global) error {
	c.setLogger(g, string(config.LogLevelInfo), string(config.LogFormatText))
	return nil
}

func (c *CLI) setLogger(g *Global, level, format string) {
	lvl := observability.ParseLevel(level)
	if c.Verbose {
		lvl = slog.LevelDebug
	}
	if c.LogFormat != "" {
		format = string(config.NormalizeLogFormat(c.LogFormat))
	}
	slog.SetDefault(observability.NewLogger(g.Stderr, lvl, format))
}

// loadConfig reads the configuration file and applies its logging section.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, derrors.ConfigNotFound(c.Config)
		}
		return nil, derrors.ConfigInvalid(c.Config, err)
	}
	c.setLogger(g, string(cfg.Logging.Level), string(cfg.Logging.Format))
	return cfg, nil
}
