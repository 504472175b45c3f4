package lint

import "path/filepath"

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityWarning marks constructs that render, but not as CommonMark would.
	SeverityWarning Severity = iota + 1
	// SeverityError marks content mdsite cannot render.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single linting problem found in a file.
type Issue struct {
	FilePath string   // Path as given to the linter
	Severity Severity // Issue severity level
	Rule     string   // Rule identifier (e.g., "nested-list")
	Message  string   // Brief description of the issue
	Line     int      // Line number (0 if file-level issue)
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue
	FilesTotal int // Total files scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string
}

// IsDocFile returns true if the file is a Markdown page.
func IsDocFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}
