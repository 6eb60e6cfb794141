package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/resume-analyzer/internal/extract"
)

const (
	NoFilesMessage       = "No files uploaded."
	NoJobTitleMessage    = "Please enter a job title."
	InvalidCountMessage  = "Invalid number of files."
	CancelledMessage     = "Operation cancelled."
	UnsupportedMessage   = "Unsupported file type. Please use PDF or CSV files."
	formUnsupportedBlock = "Unsupported file type"
)

// Divider separates results in both front ends.
var Divider = strings.Repeat("-", 50)

// GuardMessage maps a batch-level validation error to the text shown to the user.
func GuardMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoFiles):
		return NoFilesMessage
	case errors.Is(err, ErrNoJobTitle):
		return NoJobTitleMessage
	default:
		return ""
	}
}

// ErrorMessage is the user-facing text of a failed result, without prefixes.
// Path or name prefixes added while wrapping sentinel errors are dropped.
func (r Result) ErrorMessage() string {
	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, ErrNotFound):
		return fmt.Sprintf("File %s not found.", r.File)
	case errors.Is(r.Err, extract.ErrUnsupported):
		return UnsupportedMessage
	default:
		return strings.TrimPrefix(r.Err.Error(), "extract: ")
	}
}

// TerminalText is what the terminal driver prints under the per-file header.
func (r Result) TerminalText() string {
	switch {
	case r.Err == nil:
		return r.Analysis
	case errors.Is(r.Err, ErrNotFound), errors.Is(r.Err, extract.ErrUnsupported):
		return r.ErrorMessage()
	default:
		return fmt.Sprintf("Error processing %s: %s", r.File, r.ErrorMessage())
	}
}

// TerminalHeader precedes TerminalText.
func TerminalHeader(path, jobTitle string) string {
	return fmt.Sprintf("\nAnalysis for %s (Job: %s):", path, jobTitle)
}

// FormBlock renders one result for the web form.
func (r Result) FormBlock() string {
	switch {
	case r.Err == nil:
		return fmt.Sprintf("Resume %d (%s):\n%s", r.Index, r.File, r.Analysis)
	case errors.Is(r.Err, extract.ErrUnsupported):
		return fmt.Sprintf("Resume %d: %s", r.Index, formUnsupportedBlock)
	default:
		return fmt.Sprintf("Resume %d: Error - %s", r.Index, r.ErrorMessage())
	}
}

// FormReport joins all blocks under a divider line.
func FormReport(results []Result) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, r.FormBlock())
	}
	return "\n\n" + Divider + "\n" + strings.Join(blocks, "\n\n")
}
