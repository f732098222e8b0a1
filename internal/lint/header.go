package lint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	msgHeaderEmpty     = "Commit message header must not be empty"
	msgPatternMismatch = "Commit message does not match required pattern"
	msgHeaderGrammar   = "Commit message header must follow `type(scope)!: description`"
	msgHeaderSeparator = `Commit message header must use ": " between type and description`
	msgDescEmpty       = "Commit message description must not be empty"
	msgDescPeriod      = "Commit message description must not end with a period"
	msgSubjectCase     = "Commit message subject must not be sentence-case, start-case, pascal-case, upper-case"
)

// The scope group is greedy like the conventional preset pattern, so
// nested parentheses such as "feat(api(v2)): ..." stay inside the scope.
var conventionalHeader = regexp.MustCompile(`^(\w+)(?:\((.*)\))?(!)?:(.*)$`)

// HeaderParts is the conventional decomposition of a header line.
type HeaderParts struct {
	Type        string
	Scope       string
	HasScope    bool
	Breaking    bool
	Description string

	// Spaced is false when text follows the colon without a space.
	Spaced bool
}

// SplitHeader decomposes header as `type(scope)!: description`. ok is
// false when the header does not have that shape at all.
func SplitHeader(header string) (HeaderParts, bool) {
	m := conventionalHeader.FindStringSubmatchIndex(header)
	if m == nil {
		return HeaderParts{}, false
	}
	rest := header[m[8]:m[9]]
	parts := HeaderParts{
		Type:        header[m[2]:m[3]],
		HasScope:    m[4] >= 0,
		Breaking:    m[6] >= 0,
		Description: strings.TrimSpace(rest),
		Spaced:      rest == "" || rest[0] == ' ' || rest[0] == '\t',
	}
	if parts.HasScope {
		parts.Scope = header[m[4]:m[5]]
	}
	return parts, true
}

// checkHeader validates a non-empty, trimmed header line.
func checkHeader(header string, opts *Options) []string {
	var violations []string

	patternFailed := false
	if opts.Header != nil && !opts.Header.Regex.MatchString(header) {
		violations = append(violations, opts.Header.message())
		patternFailed = true
	}

	if !opts.EnforceSpec {
		return violations
	}

	parts, ok := SplitHeader(header)
	if !ok {
		// the configured pattern already explained the mismatch
		if !patternFailed {
			violations = append(violations, msgHeaderGrammar)
		}
		return violations
	}
	if !parts.Spaced && !patternFailed {
		violations = append(violations, msgHeaderSeparator)
	}
	if parts.Description == "" {
		return append(violations, msgDescEmpty)
	}
	if strings.HasSuffix(parts.Description, ".") {
		violations = append(violations, msgDescPeriod)
	}
	if HasForbiddenCase(parts.Description) {
		violations = append(violations, msgSubjectCase)
	}
	return violations
}

func (p *HeaderPattern) message() string {
	if p.Description != "" {
		return p.Description
	}
	return msgPatternMismatch
}

// HasForbiddenCase reports whether subject is sentence-case, start-case,
// pascal-case, or upper-case, checked in that order.
func HasForbiddenCase(subject string) bool {
	for _, pred := range []func(string) bool{IsSentenceCase, IsStartCase, IsPascalCase, IsUpperCase} {
		if pred(subject) {
			return true
		}
	}
	return false
}

// IsUpperCase reports whether s has letters and none of them is lowercase.
func IsUpperCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// IsPascalCase reports whether s is a single word that starts with an
// uppercase letter and also contains lowercase letters, e.g. "AddLogin".
func IsPascalCase(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	if !startsUpper(s) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

// IsSentenceCase reports whether s has at least two words, the first
// capitalized and the rest entirely free of uppercase letters.
func IsSentenceCase(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 || !isCapitalized(words[0]) {
		return false
	}
	for _, w := range words[1:] {
		if strings.IndexFunc(w, unicode.IsUpper) >= 0 {
			return false
		}
	}
	return true
}

// IsStartCase reports whether s has at least two words and every word is
// capitalized.
func IsStartCase(s string) bool {
	words := strings.Fields(s)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if !isCapitalized(w) {
			return false
		}
	}
	return true
}

// isCapitalized: uppercase first letter, no uppercase after it.
func isCapitalized(word string) bool {
	if !startsUpper(word) {
		return false
	}
	for i, r := range word {
		if i > 0 && unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func startsUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsUpper(r)
}
