package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasePredicates(t *testing.T) {
	tests := []struct {
		subject  string
		sentence bool
		start    bool
		pascal   bool
		upper    bool
	}{
		{"add login", false, false, false, false},
		{"Add login", true, false, false, false},
		{"Add Login Page", false, true, false, false},
		{"AddLogin", false, false, true, false},
		{"Add", false, false, true, false},
		{"ADD LOGIN", false, false, false, true},
		{"ADD", false, false, false, true},
		{"Add OAuth support", false, false, false, false},
		{"use OAuth for sso", false, false, false, false},
		{"123", false, false, false, false},
		{"API v2", false, false, false, false},
		{"Élan vital", true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.sentence, IsSentenceCase(tt.subject), "sentence-case")
			assert.Equal(t, tt.start, IsStartCase(tt.subject), "start-case")
			assert.Equal(t, tt.pascal, IsPascalCase(tt.subject), "pascal-case")
			assert.Equal(t, tt.upper, IsUpperCase(tt.subject), "upper-case")
			assert.Equal(t, tt.sentence || tt.start || tt.pascal || tt.upper, HasForbiddenCase(tt.subject))
		})
	}
}

func TestSplitHeader(t *testing.T) {
	parts, ok := SplitHeader("feat(parser)!: add pipes")
	require.True(t, ok)
	assert.Equal(t, "feat", parts.Type)
	assert.Equal(t, "parser", parts.Scope)
	assert.True(t, parts.HasScope)
	assert.True(t, parts.Breaking)
	assert.Equal(t, "add pipes", parts.Description)
	assert.True(t, parts.Spaced)

	parts, ok = SplitHeader("fix:crash")
	require.True(t, ok)
	assert.False(t, parts.HasScope)
	assert.False(t, parts.Spaced)
	assert.Equal(t, "crash", parts.Description)

	parts, ok = SplitHeader("feat(api(v2)): add endpoint")
	require.True(t, ok)
	assert.Equal(t, "api(v2)", parts.Scope)
	assert.Equal(t, "add endpoint", parts.Description)
	assert.True(t, parts.Spaced)

	_, ok = SplitHeader("not conventional at all")
	assert.False(t, ok)
}

func TestCheckHeader_Spec(t *testing.T) {
	opts := &Options{EnforceSpec: true}

	tests := []struct {
		header string
		want   []string
	}{
		{"feat: add login", nil},
		{"feat(api)!: drop v1", nil},
		{"feat:", []string{msgDescEmpty}},
		{"feat:add login", []string{msgHeaderSeparator}},
		{"feat: add login.", []string{msgDescPeriod}},
		{"feat: Add login", []string{msgSubjectCase}},
		{"feat: ADD LOGIN.", []string{msgDescPeriod, msgSubjectCase}},
		{"update stuff", []string{msgHeaderGrammar}},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, checkHeader(tt.header, opts))
		})
	}
}

func TestCheckHeader_PatternMismatchSuppressesGrammar(t *testing.T) {
	pattern, err := CompileHeader(`^(feat|fix): .+$`, "Use feat or fix")
	require.NoError(t, err)

	opts := &Options{Header: pattern, EnforceSpec: true}
	assert.Equal(t, []string{"Use feat or fix"}, checkHeader("update stuff", opts))

	opts.EnforceSpec = false
	assert.Empty(t, checkHeader("feat: Add Login", opts))
}

func TestCheckHeader_PatternMismatchSuppressesSeparator(t *testing.T) {
	pattern, err := CompileHeader(`^(\w+)(\((.*)\))?(!)?: (.+)$`, "Conventional header")
	require.NoError(t, err)

	opts := &Options{Header: pattern, EnforceSpec: true}
	assert.Equal(t, []string{"Conventional header"}, checkHeader("feat:add login", opts))
	assert.Empty(t, checkHeader("feat(api(v2)): add endpoint", opts))
}

func TestCheckHeader_DefaultPatternMessage(t *testing.T) {
	pattern, err := CompileHeader(`^feat: .+$`, "")
	require.NoError(t, err)

	got := checkHeader("fix: nope", &Options{Header: pattern})
	assert.Equal(t, []string{msgPatternMismatch}, got)
}
