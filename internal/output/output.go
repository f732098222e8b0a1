package output

import (
	"fmt"
	"io"

	"github.com/dshills/gitfluff/internal/lint"
)

// Report is the result of one lint run over one or more messages.
type Report struct {
	Tool                 string   `json:"tool"`
	Version              string   `json:"version"`
	Write                bool     `json:"write"`
	ExitNonzeroOnRewrite bool     `json:"exitNonzeroOnRewrite"`
	Results              []Result `json:"results"`
}

// Result is the outcome for a single message.
type Result struct {
	Source    string       `json:"source"`
	Subject   string       `json:"subject,omitempty"`
	Author    string       `json:"author,omitempty"`
	Outcome   lint.Outcome `json:"outcome"`
	Rewritten bool         `json:"rewritten"`
}

// Violations returns the findings that decide pass or fail: those of the
// rewritten text when writing, otherwise those of the original.
func (r Result) Violations(write bool) []string {
	if write {
		return r.Outcome.ViolationsAfter
	}
	return r.Outcome.ViolationsBefore
}

// Warnings returns the advisories matching Violations.
func (r Result) Warnings(write bool) []string {
	if write {
		return r.Outcome.WarningsAfter
	}
	return r.Outcome.WarningsBefore
}

// Failed reports whether r should produce a non-zero exit status.
func (r Result) Failed(write, exitOnRewrite bool) bool {
	if !r.Outcome.Passed(write) {
		return true
	}
	return write && exitOnRewrite && r.Rewritten
}

// Failed reports whether any result failed.
func (rep *Report) Failed() bool {
	for _, r := range rep.Results {
		if r.Failed(rep.Write, rep.ExitNonzeroOnRewrite) {
			return true
		}
	}
	return false
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// Formats lists the accepted --format values.
var Formats = []string{"text", "json", "markdown"}

// GetWriter returns a writer for the specified format. color only affects
// the text format.
func GetWriter(format string, color bool) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{Color: color}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
