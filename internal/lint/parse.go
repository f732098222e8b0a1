package lint

import "strings"

// Parse splits a raw commit message into header, body, and footers.
// Both "\n" and "\r\n" line endings are accepted.
func Parse(text string) Message {
	msg, _ := parse(normalizeNewlines(text))
	return msg
}

// parse also returns the line number, counting the header as line 0, at
// which the footer block starts, or -1 when there is none.
func parse(text string) (Message, int) {
	header, rest, found := strings.Cut(text, "\n")

	msg := Message{Header: header}
	if !found {
		return msg, -1
	}

	lines := trimTrailingBlank(strings.Split(rest, "\n"))
	if len(lines) == 0 {
		return msg, -1
	}
	msg.BlankAfterHeader = isBlank(lines[0])

	body := lines
	footerLine := -1
	if start := footerStart(lines); start >= 0 {
		if footers, ok := parseFooters(lines[start:]); ok {
			msg.Footers = footers
			msg.BlankBeforeFooter = start > 0 && isBlank(lines[start-1])
			body = lines[:start]
			footerLine = start + 1
		}
	}
	msg.Body = trimBlankEdges(body)
	return msg, footerLine
}

// footerStart scans backward from the last line and returns the index of
// the topmost footer line in the trailing paragraph, or -1.
//
// Lines below a footer line that are not footers themselves are wrapped
// continuations. A blank line ends the search once a footer line has been
// seen. Before that, a blank line is only crossed when every line below it
// is indented, since only indented text can continue a footer value across
// a paragraph break.
func footerStart(lines []string) int {
	start := -1
	indentedOnly := true
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		switch {
		case isBlank(line):
			if start >= 0 || !indentedOnly {
				return start
			}
		case IsFooterLine(line):
			start = i
		default:
			if start < 0 && !isIndented(line) {
				indentedOnly = false
			}
		}
	}
	return start
}

// parseFooters reads a footer block top to bottom. A block that does not
// open with a footer line is rejected so it can be treated as body.
func parseFooters(block []string) ([]Footer, bool) {
	var footers []Footer
	for _, line := range block {
		if token, value, ok := SplitFooter(line); ok {
			footers = append(footers, Footer{Token: token, Value: value})
			continue
		}
		if len(footers) == 0 {
			return nil, false
		}
		last := &footers[len(footers)-1]
		last.Value += "\n" + line
	}
	return footers, len(footers) > 0
}

// IsFooterLine reports whether line has the "TOKEN: VALUE" or
// "TOKEN #VALUE" shape with an acceptable token.
func IsFooterLine(line string) bool {
	_, _, ok := SplitFooter(line)
	return ok
}

// SplitFooter splits a footer line into token and value. For the "#" form
// the value keeps its leading "#".
func SplitFooter(line string) (token, value string, ok bool) {
	if i := strings.IndexByte(line, ':'); i > 0 {
		if i == len(line)-1 || line[i+1] == ' ' || line[i+1] == '\t' {
			if tok := line[:i]; isFooterToken(tok) {
				return tok, strings.TrimSpace(line[i+1:]), true
			}
		}
	}
	if i := strings.Index(line, " #"); i > 0 {
		if tok := line[:i]; isFooterToken(tok) {
			return tok, strings.TrimRight(line[i+1:], " \t"), true
		}
	}
	return "", "", false
}

// IsBreakingToken reports whether token names a breaking change in any
// spelling: hyphens are treated as spaces and case is ignored.
func IsBreakingToken(token string) bool {
	return strings.EqualFold(strings.ReplaceAll(token, "-", " "), "BREAKING CHANGE")
}

func isFooterToken(token string) bool {
	if token == "" {
		return false
	}
	return IsBreakingToken(token) || isTokenWord(token)
}

// isTokenWord reports whether s is made only of ASCII letters, digits, and
// hyphens.
func isTokenWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && isBlank(lines[end-1]) {
		end--
	}
	return lines[:end]
}

func trimBlankEdges(lines []string) []string {
	lines = trimTrailingBlank(lines)
	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	if start == len(lines) {
		return nil
	}
	return lines[start:]
}
