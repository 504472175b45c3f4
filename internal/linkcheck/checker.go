// Package linkcheck verifies that relative links in a rendered site resolve
// to files in the output tree.
package linkcheck

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Broken is a local link whose target does not exist.
type Broken struct {
	Page   string // page path relative to the site root, slash separated
	URL    string
	Tag    string
	Text   string
	Target string // resolved target relative to the site root
}

func (b Broken) String() string {
	return fmt.Sprintf("%s: %s %q -> %s not found", b.Page, b.Tag, b.URL, b.Target)
}

// Report summarises one check run.
type Report struct {
	Pages  int
	Links  int
	Broken []Broken
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Checker walks a rendered site.
type Checker struct {
	root string
	ext  string
}

// NewChecker returns a checker for the site under root whose pages use the
// given file extension (".html" when empty).
func NewChecker(root, ext string) *Checker {
	if ext == "" {
		ext = ".html"
	}
	return &Checker{root: root, ext: ext}
}

// Check parses every page under the root and resolves its local links.
func (c *Checker) Check(ctx context.Context) (*Report, error) {
	report := &Report{}
	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != c.ext {
			return nil
		}
		return c.checkPage(p, report)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(report.Broken, func(i, j int) bool {
		return report.Broken[i].Page < report.Broken[j].Page
	})
	return report, nil
}

func (c *Checker) checkPage(file string, report *Report) error {
	rel, err := filepath.Rel(c.root, file)
	if err != nil {
		return err
	}
	page := filepath.ToSlash(rel)

	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	links, err := ExtractLinks(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", page, err)
	}

	report.Pages++
	for _, link := range links {
		if !IsLocal(link.URL) {
			continue
		}
		report.Links++
		target, ok := c.resolve(page, link.URL)
		if !ok {
			report.Broken = append(report.Broken, Broken{
				Page: page, URL: link.URL, Tag: link.Tag, Text: link.Text, Target: target,
			})
		}
	}
	return nil
}

// resolve maps a link on page to a site-relative target and reports whether
// it exists. Directory targets resolve to their index page.
func (c *Checker) resolve(page, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return link, false
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		p = u.Path
	}

	var target string
	if strings.HasPrefix(p, "/") {
		target = path.Clean(strings.TrimPrefix(p, "/"))
	} else {
		target = path.Join(path.Dir(page), p)
	}
	if target == ".." || strings.HasPrefix(target, "../") {
		return target, false
	}

	full := filepath.Join(c.root, filepath.FromSlash(target))
	info, err := os.Stat(full)
	switch {
	case err == nil && !info.IsDir():
		return target, true
	case err == nil:
		_, err = os.Stat(filepath.Join(full, "index"+c.ext))
		return target, err == nil
	default:
		return target, false
	}
}
