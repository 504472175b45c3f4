package commands

import (
	"io"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File   string `arg:"" optional:"" help:"Markdown file to render; reads stdin when omitted or '-'"`
	Output string `short:"o" help:"Write HTML to this file instead of stdout"`
}

func (r *RenderCmd) Run(g *Global) error {
	src, name, err := readSource(g, r.File)
	if err != nil {
		return err
	}

	root, err := markdown.ParseDocument(src)
	if err != nil {
		return derrors.RenderFailed(name, err)
	}

	if r.Output == "" {
		return writeHTML(g.Stdout, root, name)
	}

	f, err := os.OpenFile(filepath.Clean(r.Output), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) //nolint:gosec // rendered HTML is world readable
	if err != nil {
		return derrors.FileSystemError("write", r.Output, err)
	}
	if err := writeHTML(f, root, name); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return derrors.FileSystemError("write", r.Output, err)
	}
	return nil
}

// writeHTML serializes root followed by a newline.
func writeHTML(w io.Writer, root *htmlnode.Node, name string) error {
	if _, err := root.WriteTo(w); err != nil {
		return derrors.RenderFailed(name, err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	File string `arg:"" optional:"" help:"Markdown file to inspect; reads stdin when omitted or '-'"`
}

func (t *TreeCmd) Run(g *Global) error {
	src, name, err := readSource(g, t.File)
	if err != nil {
		return err
	}

	root, err := markdown.ParseDocument(src)
	if err != nil {
		return derrors.RenderFailed(name, err)
	}
	_, err = io.WriteString(g.Stdout, root.Outline())
	return err
}

// readSource returns the document text and a display name for errors.
func readSource(g *Global, file string) (string, string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(g.Stdin)
		if err != nil {
			return "", "", derrors.FileSystemError("read", "<stdin>", err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", derrors.FileSystemError("read", file, err)
	}
	return string(data), file, nil
}
