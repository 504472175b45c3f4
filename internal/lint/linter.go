package lint

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/mdsite/internal/blocks"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// Linter reports Markdown constructs that mdsite renders differently from
// CommonMark, and pages it cannot render at all.
type Linter struct {
	cfg *Config
	md  goldmark.Markdown
}

// NewLinter creates a new linter with the given configuration.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	return &Linter{
		cfg: cfg,
		md:  goldmark.New(goldmark.WithExtensions(extension.Table, extension.Footnote)),
	}
}

// LintPath lints all Markdown files in the given path (file or directory).
func (l *Linter) LintPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}}
	if info.IsDir() {
		err = l.lintDirectory(path, result)
	} else {
		result.FilesTotal = 1
		err = l.lintFile(path, result)
	}
	sortIssues(result.Issues)
	return result, err
}

// lintDirectory recursively lints all Markdown files in a directory.
func (l *Linter) lintDirectory(dirPath string, result *Result) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and files
		if path != dirPath && d.Name()[0] == '.' {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() || !IsDocFile(path) {
			return nil
		}

		result.FilesTotal++
		return l.lintFile(path, result)
	})
}

func (l *Linter) lintFile(path string, result *Result) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, issue := range l.LintSource(path, content) {
		if l.cfg.Quiet && issue.Severity != SeverityError {
			continue
		}
		result.Issues = append(result.Issues, issue)
	}
	return nil
}

// LintSource lints one page held in memory. path is only used for reporting.
func (l *Linter) LintSource(path string, content []byte) []Issue {
	fm, body, had, err := frontmatter.Split(content)
	if err != nil {
		return []Issue{{FilePath: path, Severity: SeverityError, Rule: RuleFrontmatter, Message: err.Error(), Line: 1}}
	}
	if had {
		if _, err := frontmatter.Parse(fm); err != nil {
			return []Issue{{FilePath: path, Severity: SeverityError, Rule: RuleFrontmatter, Message: err.Error(), Line: 2}}
		}
	}
	offset := bytes.Count(content[:len(content)-len(body)], []byte("\n"))
	// Pages are published in NFC; lint what will be rendered.
	body = norm.NFC.Bytes(body)

	issues := l.checkCommonMark(path, body, offset)
	if issue, ok := checkDialect(path, body, offset); ok {
		issues = append(issues, issue)
	}
	return issues
}

func (l *Linter) checkCommonMark(path string, body []byte, offset int) []Issue {
	root := l.md.Parser().Parse(text.NewReader(body))

	var issues []Issue
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		for _, rule := range nodeRules {
			msg, ok := rule.check(n, body)
			if !ok {
				continue
			}
			line := lineOf(n, body)
			if line > 0 {
				line += offset
			}
			issues = append(issues, Issue{
				FilePath: path,
				Severity: rule.severity,
				Rule:     rule.name,
				Message:  msg,
				Line:     line,
			})
		}
		return gmast.WalkContinue, nil
	})
	return issues
}

// checkDialect runs the real renderer so that failures are reported with the
// line of the offending block.
func checkDialect(path string, body []byte, offset int) (Issue, bool) {
	_, err := markdown.Parse(string(body))
	if err == nil {
		return Issue{}, false
	}

	issue := Issue{FilePath: path, Severity: SeverityError, Rule: RuleDialect, Message: err.Error()}

	var be *markdown.BuildError
	if errors.As(err, &be) && be.BlockIndex == markdown.DocumentLevel && be.Kind == htmlnode.EmptyContainer {
		issue.Severity = SeverityWarning
		issue.Rule = RuleEmptyDocument
		issue.Message = "page has no content and will be skipped"
		return issue, true
	}

	if idx, ok := markdown.BlockIndexOf(err); ok && idx >= 0 {
		if starts := blocks.StartLines(string(body)); idx < len(starts) {
			issue.Line = starts[idx] + offset
		}
		issue.Message = fmt.Sprintf("cannot render: %v", err)
	}
	return issue, true
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].FilePath != issues[j].FilePath {
			return issues[i].FilePath < issues[j].FilePath
		}
		return issues[i].Line < issues[j].Line
	})
}
