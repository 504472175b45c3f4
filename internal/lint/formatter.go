package lint

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, path string) error
}

// TextFormatter prints one issue per line in file:line form.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, path string) error {
	if _, err := fmt.Fprintf(w, "Linting %s\n", path); err != nil {
		return err
	}
	for _, issue := range result.Issues {
		loc := issue.FilePath
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
		}
		if _, err := fmt.Fprintf(w, "%s: %s [%s] %s\n", loc, issue.Severity, issue.Rule, issue.Message); err != nil {
			return err
		}
	}

	errorCount := result.ErrorCount()
	warningCount := result.WarningCount()
	_, err := fmt.Fprintf(w, "%d file%s scanned, %d error%s, %d warning%s\n",
		result.FilesTotal, pluralize(result.FilesTotal),
		errorCount, pluralize(errorCount),
		warningCount, pluralize(warningCount))
	return err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Path         string      `json:"path"`
	FilesTotal   int         `json:"files_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	FilePath string `json:"file_path"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, path string) error {
	output := JSONOutput{
		Path:         path,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			FilePath: issue.FilePath,
			Severity: issue.Severity.String(),
			Rule:     issue.Rule,
			Message:  issue.Message,
			Line:     issue.Line,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
