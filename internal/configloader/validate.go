package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/qstripper/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "text.wrap").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// minWrap is the narrowest wrap column accepted; anything smaller cannot hold a tab stop.
const minWrap = 8

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Export.To != "" && !cfg.Export.To.IsValid() {
		result.fail("export.to", cfg.Export.To,
			"invalid export format %q; must be one of: text, markdown, json", cfg.Export.To)
	}
	if cfg.Text.Wrap < 0 || (cfg.Text.Wrap > 0 && cfg.Text.Wrap < minWrap) {
		result.fail("text.wrap", cfg.Text.Wrap, "wrap must be 0 (off) or at least %d", minWrap)
	}
	if cfg.Text.Tabs != "" && !cfg.Text.Tabs.IsValid() {
		result.fail("text.tabs", cfg.Text.Tabs, "invalid tab mode %q; must be one of: tab, spaces", cfg.Text.Tabs)
	}
	if cfg.Text.TabWidth < 1 {
		result.fail("text.tab_width", cfg.Text.TabWidth, "tab_width must be >= 1")
	}
	if cfg.Decode.Italic != "" && !cfg.Decode.Italic.IsValid() {
		result.fail("decode.italic", cfg.Decode.Italic,
			"invalid italic mode %q; must be one of: auto, on, off", cfg.Decode.Italic)
	}
	if cfg.Report != "" && !cfg.Report.IsValid() {
		result.fail("report", cfg.Report, "invalid report format %q; must be one of: text, json, summary", cfg.Report)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern")
		}
	}

	if cfg.DryRun && cfg.Export.Overwrite {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "export.overwrite",
			Value:   true,
			Message: "overwrite has no effect with dry-run",
		})
	}

	return result
}
