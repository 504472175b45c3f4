package publish

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/config"
)

// Options describes one publish run.
type Options struct {
	ContentDir string
	StaticDir  string // optional; a missing directory is skipped
	OutputDir  string
	Extension  string // rendered page extension with leading dot
	Clean      bool   // remove OutputDir before writing
	Manifest   bool   // write manifest.yaml into OutputDir
	CheckLinks bool   // verify local links after rendering
}

// OptionsFromConfig maps the site configuration onto publish options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ContentDir: cfg.ContentDir,
		StaticDir:  cfg.StaticDir,
		OutputDir:  cfg.Output.Directory,
		Extension:  cfg.Output.Extension,
		Clean:      cfg.Output.Clean,
		Manifest:   cfg.Output.Manifest,
		CheckLinks: cfg.Links.Check,
	}
}

func (o *Options) normalize() {
	if o.Extension == "" {
		o.Extension = ".html"
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
}

// checkOutput refuses output directories that would destroy sources when
// cleaned or be copied into themselves: the filesystem root, any directory
// equal to or containing the content or static tree, and any directory
// nested inside one of them.
func (o *Options) checkOutput() error {
	out, err := filepath.Abs(o.OutputDir)
	if err != nil {
		return err
	}
	if out == filepath.Dir(out) {
		return fmt.Errorf("output directory %q is a filesystem root", o.OutputDir)
	}
	for _, src := range []string{o.ContentDir, o.StaticDir} {
		if src == "" {
			continue
		}
		abs, err := filepath.Abs(src)
		if err != nil {
			return err
		}
		if isWithin(abs, out) {
			return fmt.Errorf("output directory %q contains source directory %q", o.OutputDir, src)
		}
		if isWithin(out, abs) {
			return fmt.Errorf("output directory %q is inside source directory %q", o.OutputDir, src)
		}
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
