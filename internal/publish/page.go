package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/mdsite/internal/blocks"
	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// PageResult describes one rendered page.
type PageResult struct {
	Source      string         `yaml:"source"`
	Output      string         `yaml:"output"`
	Title       string         `yaml:"title,omitempty"`
	Fingerprint string         `yaml:"fingerprint"`
	Blocks      map[string]int `yaml:"blocks"`
}

// Skip reasons.
const (
	SkipDraft = "draft"
	SkipEmpty = "empty"
)

// SkippedResult is a page that was deliberately not rendered.
type SkippedResult struct {
	Source string `yaml:"source"`
	Reason string `yaml:"reason"`
}

// renderedPage is the outcome of rendering a single source file.
type renderedPage struct {
	result  PageResult
	html    string
	skipped string
}

// renderPage reads and renders the page at rel below the content directory.
// Nothing is written.
func (p *Publisher) renderPage(rel string) (*renderedPage, error) {
	src := filepath.Join(p.opts.ContentDir, rel)
	content, err := os.ReadFile(filepath.Clean(src))
	if err != nil {
		return nil, derrors.FileSystemError("read", src, err)
	}

	slashRel := filepath.ToSlash(rel)
	meta, fm, body, err := frontmatter.Read(content)
	if err != nil {
		return nil, derrors.FrontmatterInvalid(slashRel, err)
	}
	if meta.Draft {
		return &renderedPage{skipped: SkipDraft}, nil
	}

	text := norm.NFC.String(string(body))
	doc, err := markdown.Parse(text)
	if err != nil {
		if isEmptyDocument(err) {
			return &renderedPage{skipped: SkipEmpty}, nil
		}
		return nil, derrors.RenderFailed(slashRel, err)
	}
	html, err := doc.HTML()
	if err != nil {
		return nil, derrors.RenderFailed(slashRel, err)
	}

	counts := make(map[string]int)
	for kind, n := range doc.KindCounts() {
		counts[kind.String()] = n
	}

	title := meta.Title
	if title == "" {
		title = firstHeading(doc.Blocks)
	}

	return &renderedPage{
		html: html,
		result: PageResult{
			Source:      slashRel,
			Output:      strings.TrimSuffix(slashRel, filepath.Ext(slashRel)) + p.opts.Extension,
			Title:       title,
			Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fm), "\n"), text),
			Blocks:      counts,
		},
	}, nil
}

func isEmptyDocument(err error) bool {
	var be *markdown.BuildError
	return errors.As(err, &be) && be.BlockIndex == markdown.DocumentLevel && be.Kind == htmlnode.EmptyContainer
}

func firstHeading(bs []blocks.Block) string {
	for _, b := range bs {
		if b.Kind == blocks.Heading {
			line, _, _ := strings.Cut(b.Text[b.Level+1:], "\n")
			return strings.TrimSpace(line)
		}
	}
	return ""
}
