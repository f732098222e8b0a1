package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBody_SingleLine(t *testing.T) {
	opts := &Options{BodyPolicy: BodySingleLine}

	var out findings
	checkBody(Parse("feat: header\n\nbody line"), opts, &out)
	assert.Equal(t, []string{msgSingleLine}, out.violations)

	out = findings{}
	checkBody(Parse("feat: header\n\n\n"), opts, &out)
	assert.Empty(t, out.violations)

	out = findings{}
	checkBody(Parse("feat: header\n\nRefs: 1"), opts, &out)
	assert.Equal(t, []string{msgSingleLine}, out.violations)
}

func TestCheckBody_RequireBody(t *testing.T) {
	opts := &Options{BodyPolicy: BodyRequire, EnforceSpec: true}

	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"missing", "feat: header\n", []string{msgBodyMissing}},
		{"footer only", "feat: header\n\nRefs: 1", []string{msgBodyMissing}},
		{"present", "feat: header\n\nbody", nil},
		{"no blank line", "feat: header\nbody", []string{msgBodyNoBlank}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out findings
			checkBody(Parse(tt.message), opts, &out)
			assert.Equal(t, tt.want, out.violations)
			assert.Empty(t, out.warnings)
		})
	}
}

func TestCheckBody_SeparationSeverity(t *testing.T) {
	msg := Parse("feat: add x\nbody text\nRefs: 1")

	var out findings
	checkBody(msg, &Options{EnforceSpec: true}, &out)
	assert.Empty(t, out.violations)
	assert.Equal(t, []string{msgBodySeparation, msgFooterSeparation}, out.warnings)

	out = findings{}
	checkBody(msg, &Options{EnforceSpec: true, SeparationSeverity: SeverityViolation}, &out)
	assert.Equal(t, []string{msgBodySeparation, msgFooterSeparation}, out.violations)
	assert.Empty(t, out.warnings)

	out = findings{}
	checkBody(msg, &Options{}, &out)
	assert.Empty(t, out.violations)
	assert.Empty(t, out.warnings)
}

func TestCheckFooters(t *testing.T) {
	tests := []struct {
		name    string
		footers []Footer
		want    []string
	}{
		{"valid", []Footer{{Token: "Refs", Value: "1"}, {Token: "BREAKING-CHANGE", Value: "x"}}, nil},
		{"empty token", []Footer{{Token: "", Value: "x"}}, []string{msgFooterTokenEmpty}},
		{"breaking empty", []Footer{{Token: "BREAKING CHANGE", Value: "  "}}, []string{msgBreakingEmpty}},
		{"breaking lowercase", []Footer{{Token: "breaking change", Value: "x"}}, []string{msgBreakingSpelling}},
		{
			"whitespace token",
			[]Footer{{Token: "Reviewed by", Value: "x"}},
			[]string{"Commit message footer token `Reviewed by` must not contain whitespace"},
		},
		{
			"bad characters",
			[]Footer{{Token: "Refs_", Value: "x"}},
			[]string{"Commit message footer token `Refs_` must only contain letters, digits, and hyphens"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkFooters(tt.footers))
		})
	}
}
