package output

import (
	"io"
	"strings"
)

// MarkdownWriter outputs a CI-comment-friendly summary table followed by a
// collapsible section for every message with findings.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	failed := 0
	for _, r := range report.Results {
		if r.Failed(report.Write, report.ExitNonzeroOnRewrite) {
			failed++
		}
	}

	ew.printf("## gitfluff\n\n")
	ew.printf("%d message(s) checked, %d failed.\n\n", len(report.Results), failed)
	if len(report.Results) == 0 {
		return ew.err
	}

	ew.printf("| Source | Subject | Status | Violations | Warnings | Cleanups |\n")
	ew.printf("|--------|---------|--------|------------|----------|----------|\n")
	for _, r := range report.Results {
		ew.printf("| `%s` | %s | %s | %d | %d | %d |\n",
			r.Source,
			mdEscape(r.Subject),
			mdStatus(r, report),
			len(r.Violations(report.Write)),
			len(r.Warnings(report.Write)),
			len(r.Outcome.CleanupSummaries),
		)
	}
	ew.printf("\n")

	for _, r := range report.Results {
		violations := r.Violations(report.Write)
		warnings := r.Warnings(report.Write)
		if len(violations)+len(warnings)+len(r.Outcome.CleanupSummaries) == 0 {
			continue
		}

		summary := mdEscape(r.Subject)
		if r.Author != "" {
			summary += " by " + mdEscape(r.Author)
		}
		ew.printf("<details>\n<summary><code>%s</code> %s</summary>\n\n", r.Source, summary)
		for _, v := range violations {
			ew.printf("- :x: %s\n", v)
		}
		for _, v := range warnings {
			ew.printf("- :warning: %s\n", v)
		}
		verb := "cleanup available"
		if report.Write {
			verb = "applied cleanup"
		}
		for _, s := range r.Outcome.CleanupSummaries {
			ew.printf("- :broom: %s: %s\n", verb, s)
		}
		ew.printf("\n</details>\n\n")
	}
	return ew.err
}

func mdStatus(r Result, report *Report) string {
	if r.Failed(report.Write, report.ExitNonzeroOnRewrite) {
		return ":x: fail"
	}
	if len(r.Warnings(report.Write)) > 0 {
		return ":warning: pass"
	}
	return ":white_check_mark: pass"
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "<", "&lt;", ">", "&gt;").Replace(s)
}
