package lint

import "regexp"

// HeaderPattern is a compiled regex the first line of a message must match.
type HeaderPattern struct {
	Regex       *regexp.Regexp
	Description string
}

// ExcludeRule rejects any message whose full text matches Regex.
type ExcludeRule struct {
	Regex   *regexp.Regexp
	Message string
	Pattern string
}

// CleanupRule rewrites every match of Regex with the literal Replace text.
type CleanupRule struct {
	Regex       *regexp.Regexp
	Replace     string
	Description string
	Pattern     string
}

// BodyPolicy controls what may follow the header.
type BodyPolicy int

const (
	BodyAny BodyPolicy = iota
	BodySingleLine
	BodyRequire
)

func (p BodyPolicy) String() string {
	switch p {
	case BodySingleLine:
		return "single-line"
	case BodyRequire:
		return "require-body"
	default:
		return "any"
	}
}

func (p BodyPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Severity selects whether a structural finding blocks the message.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityViolation
)

func (s Severity) String() string {
	if s == SeverityViolation {
		return "error"
	}
	return "warning"
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Options is the fully resolved rule set for a lint run. It is never
// mutated by Lint and may be shared between goroutines.
type Options struct {
	Header      *HeaderPattern
	Excludes    []ExcludeRule
	Cleanups    []CleanupRule
	BodyPolicy  BodyPolicy
	EnforceSpec bool
	Autofix     bool

	// SeparationSeverity applies to missing blank lines before the body
	// and before the footer block when EnforceSpec is set.
	SeparationSeverity Severity
}

// Footer is a single trailer entry such as "Refs: 123". Value keeps
// continuation lines joined with "\n".
type Footer struct {
	Token string `json:"token"`
	Value string `json:"value"`
}

// Message is the structural split of a commit message.
type Message struct {
	Header  string
	Body    []string
	Footers []Footer

	// BlankAfterHeader reports whether a blank line separates the header
	// from whatever follows it.
	BlankAfterHeader bool
	// BlankBeforeFooter reports whether the footer block is preceded by a
	// blank line. Only meaningful when Footers is non-empty.
	BlankBeforeFooter bool
}

// HasBody reports whether the body holds any non-blank line.
func (m Message) HasBody() bool {
	for _, line := range m.Body {
		if !isBlank(line) {
			return true
		}
	}
	return false
}

// Outcome is the result of one Lint call.
type Outcome struct {
	ViolationsBefore []string `json:"violationsBefore"`
	ViolationsAfter  []string `json:"violationsAfter"`
	WarningsBefore   []string `json:"warningsBefore,omitempty"`
	WarningsAfter    []string `json:"warningsAfter,omitempty"`
	Cleaned          string   `json:"cleanedMessage"`
	CleanupSummaries []string `json:"cleanupSummaries,omitempty"`
}

// Passed reports whether the message is acceptable. When afterRewrite is
// true the rewritten text is judged instead of the original.
func (o Outcome) Passed(afterRewrite bool) bool {
	if afterRewrite {
		return len(o.ViolationsAfter) == 0
	}
	return len(o.ViolationsBefore) == 0
}
