package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if se, ok := As(err); ok {
		return a.exitCodeFromSiteError(se)
	}

	return 1
}

// exitCodeFromSiteError maps SiteError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromSiteError(err *SiteError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryParse:
		return 3 // Malformed document
	case CategoryLint:
		return 4 // Lint findings
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryBuild, CategoryFileSystem:
		return 11 // Build error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if se, ok := As(err); ok {
		return a.formatSiteError(se)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatSiteError formats a SiteError for display.
func (a *CLIErrorAdapter) formatSiteError(err *SiteError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	case CategoryParse, CategoryBuild:
		if file, ok := err.Context["file"]; ok && err.Cause != nil {
			return fmt.Sprintf("%s: %v: %v", err.Category, file, err.Cause)
		}
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(a.out, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if se, ok := As(err); ok {
		return se.Category == CategoryInternal ||
			se.Category == CategoryRuntime
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if se, ok := As(err); ok {
		level := a.slogLevelFromSeverity(se.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(se.Category)),
		}
		for k, v := range se.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if se.Cause != nil {
			attrs = append(attrs, slog.String("cause", se.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, se.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts SiteError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
