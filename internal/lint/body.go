package lint

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	msgSingleLine       = "Commit message must be a single line"
	msgBodyMissing      = "Commit message must include a body after a blank line"
	msgBodyNoBlank      = "Commit message body must begin with a blank line after the description"
	msgBodySeparation   = "Commit message body must be separated from the header by a blank line"
	msgFooterSeparation = "Commit message footer must be preceded by a blank line"
	msgFooterTokenEmpty = "Commit message footer token must not be empty"
	msgBreakingSpelling = `BREAKING CHANGE footer token must be spelled "BREAKING CHANGE" or "BREAKING-CHANGE"`
	msgBreakingEmpty    = "BREAKING CHANGE footer must include a description"
)

// findings collects violations and warnings separately.
type findings struct {
	violations []string
	warnings   []string
}

func (f *findings) add(sev Severity, msg string) {
	if sev == SeverityViolation {
		f.violations = append(f.violations, msg)
		return
	}
	f.warnings = append(f.warnings, msg)
}

// checkBody applies the body policy and, under structural enforcement, the
// separation and footer rules.
func checkBody(msg Message, opts *Options, out *findings) {
	hasBody := msg.HasBody()
	separatorReported := false

	switch opts.BodyPolicy {
	case BodySingleLine:
		if hasBody || len(msg.Footers) > 0 {
			out.add(SeverityViolation, msgSingleLine)
		}
	case BodyRequire:
		if !hasBody {
			out.add(SeverityViolation, msgBodyMissing)
		} else if !msg.BlankAfterHeader {
			out.add(SeverityViolation, msgBodyNoBlank)
			separatorReported = true
		}
	}

	if !opts.EnforceSpec {
		return
	}

	if hasBody && !msg.BlankAfterHeader && !separatorReported {
		out.add(opts.SeparationSeverity, msgBodySeparation)
	}
	if len(msg.Footers) > 0 && !msg.BlankBeforeFooter {
		out.add(opts.SeparationSeverity, msgFooterSeparation)
	}
	for _, v := range checkFooters(msg.Footers) {
		out.add(SeverityViolation, v)
	}
}

func checkFooters(footers []Footer) []string {
	var violations []string
	for _, f := range footers {
		switch {
		case f.Token == "":
			violations = append(violations, msgFooterTokenEmpty)
		case IsBreakingToken(f.Token):
			if f.Token != "BREAKING CHANGE" && f.Token != "BREAKING-CHANGE" {
				violations = append(violations, msgBreakingSpelling)
			}
			if isBlank(f.Value) {
				violations = append(violations, msgBreakingEmpty)
			}
		case strings.IndexFunc(f.Token, unicode.IsSpace) >= 0:
			violations = append(violations, fmt.Sprintf("Commit message footer token `%s` must not contain whitespace", f.Token))
		case !isTokenWord(f.Token):
			violations = append(violations, fmt.Sprintf("Commit message footer token `%s` must only contain letters, digits, and hyphens", f.Token))
		}
	}
	return violations
}
