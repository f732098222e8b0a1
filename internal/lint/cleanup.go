package lint

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	fixLineEndings     = "Normalize line endings to LF"
	fixTrailingSpace   = "Trim trailing whitespace"
	fixEdgeBlankLines  = "Trim leading and trailing blank lines"
	fixCollapseBlanks  = "Collapse consecutive blank lines"
	fixHeaderSeparator = "Insert blank line between header and body"
	fixFooterSeparator = "Insert blank line before footer"
)

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// ApplyCleanup runs rules in order, each replacing every match across the
// whole text. A summary is recorded for each rule that changed the text.
func ApplyCleanup(text string, rules []CleanupRule) (string, []string) {
	var summaries []string
	for _, rule := range rules {
		next := rule.Regex.ReplaceAllLiteralString(text, rule.Replace)
		if next == text {
			continue
		}
		summaries = append(summaries, rule.summary())
		text = next
	}
	return text, summaries
}

// Autofix normalizes whitespace and, when enforceSpec is set, inserts the
// blank separator lines the conventional layout requires. Applying it to
// its own output changes nothing.
func Autofix(text string, enforceSpec bool) (string, []string) {
	var summaries []string
	step := func(summary string, fn func(string) string) {
		if next := fn(text); next != text {
			summaries = append(summaries, summary)
			text = next
		}
	}

	step(fixLineEndings, normalizeNewlines)
	step(fixTrailingSpace, trimLineEnds)
	step(fixEdgeBlankLines, trimEdgeBlankLines)
	step(fixCollapseBlanks, func(s string) string {
		return excessBlankLines.ReplaceAllLiteralString(s, "\n\n")
	})
	if enforceSpec {
		step(fixHeaderSeparator, separateHeader)
		step(fixFooterSeparator, separateFooter)
	}
	return text, summaries
}

func trimLineEnds(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// trimEdgeBlankLines drops blank lines at both ends but keeps a single
// final newline if the text had one.
func trimEdgeBlankLines(s string) string {
	trimmed := strings.Trim(s, "\n")
	if trimmed != "" && strings.HasSuffix(s, "\n") {
		trimmed += "\n"
	}
	return trimmed
}

func separateHeader(s string) string {
	header, rest, found := strings.Cut(s, "\n")
	if !found || rest == "" || strings.HasPrefix(rest, "\n") {
		return s
	}
	return header + "\n\n" + rest
}

func separateFooter(s string) string {
	_, footerLine := parse(s)
	if footerLine < 2 {
		return s
	}
	lines := strings.Split(s, "\n")
	if lines[footerLine-1] == "" {
		return s
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:footerLine]...)
	out = append(out, "")
	out = append(out, lines[footerLine:]...)
	return strings.Join(out, "\n")
}
