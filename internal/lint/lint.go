package lint

import "strings"

// Lint validates message, rewrites it with the cleanup rules and optional
// autofix, and validates the rewritten text again. It performs no I/O and
// does not modify opts.
func Lint(message string, opts *Options) Outcome {
	if opts == nil {
		opts = &Options{}
	}

	violationsBefore, warningsBefore := Evaluate(message, opts)
	cleaned, summaries := Rewrite(message, opts)
	violationsAfter, warningsAfter := Evaluate(cleaned, opts)

	return Outcome{
		ViolationsBefore: nonNil(violationsBefore),
		ViolationsAfter:  nonNil(violationsAfter),
		WarningsBefore:   warningsBefore,
		WarningsAfter:    warningsAfter,
		Cleaned:          cleaned,
		CleanupSummaries: summaries,
	}
}

// Evaluate runs every validator over message. An empty header yields a
// single violation and suppresses all other checks.
func Evaluate(message string, opts *Options) (violations, warnings []string) {
	text := normalizeNewlines(message)
	msg, _ := parse(text)

	header := strings.TrimSpace(msg.Header)
	if header == "" {
		return []string{msgHeaderEmpty}, nil
	}

	var out findings
	for _, rule := range opts.Excludes {
		if rule.Regex.MatchString(text) {
			out.violations = append(out.violations, rule.violation())
		}
	}
	out.violations = append(out.violations, checkHeader(header, opts)...)
	checkBody(msg, opts, &out)

	return out.violations, out.warnings
}

// Rewrite applies the cleanup rules in order followed by autofix when it
// is enabled.
func Rewrite(message string, opts *Options) (string, []string) {
	text, summaries := ApplyCleanup(message, opts.Cleanups)
	if opts.Autofix {
		fixed, more := Autofix(text, opts.EnforceSpec)
		text = fixed
		summaries = append(summaries, more...)
	}
	return text, summaries
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
