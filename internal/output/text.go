package output

import (
	"fmt"
	"io"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

const rewriteNotice = "commit message was rewritten; please re-run the commit to review changes"

// TextWriter prints one "gitfluff: <level>: <message>" line per finding.
// When the report holds several messages each line is prefixed with the
// message source.
type TextWriter struct {
	Color bool
}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	multi := len(report.Results) > 1

	for _, r := range report.Results {
		prefix := ""
		if multi {
			prefix = r.Source + ": "
		}
		out := r.Outcome

		for _, v := range out.ViolationsBefore {
			t.line(ew, "error", ansiRed, prefix+v)
		}
		for _, v := range r.Warnings(report.Write) {
			t.line(ew, "warning", ansiYellow, prefix+v)
		}
		for _, s := range out.CleanupSummaries {
			if report.Write {
				t.line(ew, "info", ansiCyan, prefix+"applied cleanup: "+s)
			} else {
				t.line(ew, "info", ansiCyan, prefix+"cleanup available: "+s)
			}
		}
		// the rewrite introduced new problems
		if report.Write && len(out.ViolationsBefore) == 0 {
			for _, v := range out.ViolationsAfter {
				t.line(ew, "error", ansiRed, prefix+v)
			}
		}
		if report.Write && report.ExitNonzeroOnRewrite && r.Rewritten && len(out.ViolationsAfter) == 0 {
			t.line(ew, "info", ansiCyan, prefix+rewriteNotice)
		}
	}
	return ew.err
}

func (t *TextWriter) line(ew *errWriter, level, color, msg string) {
	if t.Color {
		ew.printf("gitfluff: %s%s%s: %s\n", color, level, ansiReset, msg)
		return
	}
	ew.printf("gitfluff: %s: %s\n", level, msg)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
