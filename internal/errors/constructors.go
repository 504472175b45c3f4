package errors

import (
	stderrors "errors"

	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *SiteError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Document errors

// RenderFailed classifies a markdown failure: inline parse failures are parse
// errors, tree invariant violations are build errors. Build errors also record
// whether the violation concerns tree structure or leaf content.
func RenderFailed(file string, cause error) *SiteError {
	category := CategoryInternal
	var pe *markdown.ParseError
	var be *markdown.BuildError
	switch {
	case stderrors.As(cause, &pe):
		category = CategoryParse
	case stderrors.As(cause, &be):
		category = CategoryBuild
	}

	e := Wrap(cause, category, SeverityFatal, "render failed").WithContext("file", file)
	if idx, ok := markdown.BlockIndexOf(cause); ok {
		e.WithContext("block", idx)
	}
	var ne *htmlnode.BuildError
	if stderrors.As(cause, &ne) {
		violation := "content"
		if ne.IsStructural() {
			violation = "structure"
		}
		e.WithContext("violation", violation)
	}
	return e
}

func FrontmatterInvalid(file string, cause error) *SiteError {
	return Wrap(cause, CategoryParse, SeverityFatal, "frontmatter invalid").
		WithContext("file", file)
}

// Publish errors

func PublishFailed(stage string, cause error) *SiteError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "publish failed").
		WithContext("stage", stage)
}

func FileSystemError(operation, path string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func LinksBroken(count int) *SiteError {
	return New(CategoryBuild, SeverityError, "broken links found").
		WithContext("broken", count)
}

func LintFailed(count int) *SiteError {
	return New(CategoryLint, SeverityError, "lint found errors").
		WithContext("errors", count)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
