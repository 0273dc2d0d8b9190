package status

import (
	"fmt"

	"github.com/fatih/color"
)

// FileFormatter defines how per-file rewrite outcomes should be formatted
type FileFormatter interface {
	// FormatFileResult formats the outcome of rewriting one file
	FormatFileResult(path string, matches int, modified bool) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileResult formats a per-file outcome with color and match count
func (f *DefaultFileFormatter) FormatFileResult(path string, matches int, modified bool) string {
	if modified {
		return fmt.Sprintf("%s %s (%d %s)",
			color.New(color.FgGreen).Sprint("⟳ rewrote"),
			path, matches, pluralize("match", matches))
	}
	return fmt.Sprintf("%s %s",
		color.New(color.FgYellow).Sprint("- unchanged"),
		path)
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "es"
}
