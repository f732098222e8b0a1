package preset

import (
	"errors"
	"testing"

	"github.com/dshills/gitfluff/internal/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		policy   lint.BodyPolicy
		enforced bool
	}{
		{"conventional", "conventional", lint.BodyAny, true},
		{"default", "conventional", lint.BodyAny, true},
		{"Conventional", "conventional", lint.BodyAny, true},
		{"conventional-body", "conventional-body", lint.BodyRequire, true},
		{"conventional_detailed", "conventional-body", lint.BodyRequire, true},
		{"conventional-with-body", "conventional-body", lint.BodyRequire, true},
		{"simple", "simple", lint.BodySingleLine, false},
		{"SIMPLE-SINGLE-LINE", "simple", lint.BodySingleLine, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
			assert.Equal(t, tt.policy, p.BodyPolicy)
			assert.Equal(t, tt.enforced, p.EnforceSpec)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("angular")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPreset))
	assert.Equal(t, "unknown preset `angular`", err.Error())
}

func TestPatternsCompile(t *testing.T) {
	for _, p := range All() {
		hp, err := lint.CompileHeader(p.Pattern, p.Description)
		require.NoError(t, err, p.Name)
		assert.NotNil(t, hp.Regex)
	}
}

func TestConventionalPattern(t *testing.T) {
	p, err := Resolve(Default)
	require.NoError(t, err)
	hp, err := lint.CompileHeader(p.Pattern, p.Description)
	require.NoError(t, err)

	assert.True(t, hp.Regex.MatchString("feat(parser)!: support pipes"))
	assert.True(t, hp.Regex.MatchString("fix: crash"))
	assert.False(t, hp.Regex.MatchString(": missing type"))
	assert.False(t, hp.Regex.MatchString("feat:no space"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"conventional", "conventional-body", "simple"}, Names())
}

func conventionalOptions(t *testing.T) *lint.Options {
	t.Helper()
	p, err := Resolve(Default)
	require.NoError(t, err)
	hp, err := lint.CompileHeader(p.Pattern, p.Description)
	require.NoError(t, err)
	return &lint.Options{Header: hp, BodyPolicy: p.BodyPolicy, EnforceSpec: p.EnforceSpec}
}

func TestConventionalLint_NestedScope(t *testing.T) {
	outcome := lint.Lint("feat(api(v2)): add endpoint", conventionalOptions(t))
	assert.Empty(t, outcome.ViolationsBefore)
}

func TestConventionalLint_MissingSpaceReportedOnce(t *testing.T) {
	opts := conventionalOptions(t)
	outcome := lint.Lint("feat:add login", opts)
	assert.Equal(t, []string{opts.Header.Description}, outcome.ViolationsBefore)
}
