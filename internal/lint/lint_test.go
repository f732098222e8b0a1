package lint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_EmptyMessage(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n"} {
		outcome := Lint(input, &Options{EnforceSpec: true, BodyPolicy: BodyRequire})
		assert.Equal(t, []string{msgHeaderEmpty}, outcome.ViolationsBefore, "input %q", input)
		assert.Empty(t, outcome.WarningsBefore)
	}
}

func TestLint_NilOptions(t *testing.T) {
	outcome := Lint("anything goes", nil)

	assert.NotNil(t, outcome.ViolationsBefore)
	assert.NotNil(t, outcome.ViolationsAfter)
	assert.Empty(t, outcome.ViolationsBefore)
	assert.Equal(t, "anything goes", outcome.Cleaned)
	assert.True(t, outcome.Passed(false))
}

func TestLint_ExcludeOnly(t *testing.T) {
	rule, err := CompileExclude(`(?i)wip`, "WIP commits disallowed")
	require.NoError(t, err)

	outcome := Lint("WIP: quick fix", &Options{Excludes: []ExcludeRule{rule}})

	assert.Equal(t, []string{"WIP commits disallowed"}, outcome.ViolationsBefore)
	assert.False(t, outcome.Passed(false))
}

func TestLint_ExcludeSeesWholeMessage(t *testing.T) {
	rule, err := CompileExclude(`(?m)^Co-Authored-By: Bot`, "")
	require.NoError(t, err)

	outcome := Lint("feat: x\r\n\r\nCo-Authored-By: Bot <bot@example.com>\r\n", &Options{Excludes: []ExcludeRule{rule}})

	assert.Equal(t, []string{"Commit message matches excluded pattern `(?m)^Co-Authored-By: Bot`"}, outcome.ViolationsBefore)
}

func TestLint_CleanupRewrite(t *testing.T) {
	rule := mustCleanup(t, `\s+$`, "", "Trim trailing whitespace")

	outcome := Lint("feat: demo   \n", &Options{Cleanups: []CleanupRule{rule}})

	assert.Equal(t, "feat: demo", outcome.Cleaned)
	assert.Equal(t, []string{"Trim trailing whitespace"}, outcome.CleanupSummaries)
	assert.Empty(t, outcome.ViolationsAfter)
}

func TestLint_CleanupFixesViolation(t *testing.T) {
	exclude, err := CompileExclude(`(?m)^Signed-off-by: robot`, "no robots")
	require.NoError(t, err)
	cleanup := mustCleanup(t, `(?m)^Signed-off-by: robot.*\n?`, "", "Drop robot sign-off")

	opts := &Options{Excludes: []ExcludeRule{exclude}, Cleanups: []CleanupRule{cleanup}}
	outcome := Lint("fix: bug\n\nSigned-off-by: robot <r@example.com>\n", opts)

	assert.Equal(t, []string{"no robots"}, outcome.ViolationsBefore)
	assert.Empty(t, outcome.ViolationsAfter)
	assert.Equal(t, "fix: bug\n\n", outcome.Cleaned)
	assert.False(t, outcome.Passed(false))
	assert.True(t, outcome.Passed(true))
}

func TestLint_BreakingChangeWithoutDescription(t *testing.T) {
	outcome := Lint("feat!: add api\n\nBREAKING CHANGE: ", &Options{EnforceSpec: true})

	assert.Contains(t, outcome.ViolationsBefore, msgBreakingEmpty)
}

func TestLint_ConventionalMessagePasses(t *testing.T) {
	pattern, err := CompileHeader(`^(?P<type>\w+)(\((?P<scope>.*)\))?(?P<breaking>!)?: (?P<description>.+)$`, "")
	require.NoError(t, err)

	outcome := Lint(
		"feat(parser): support pipes\n\nAdd parsing for foo | bar\n\nRefs: 123",
		&Options{Header: pattern, EnforceSpec: true},
	)

	assert.Empty(t, outcome.ViolationsBefore)
	assert.Empty(t, outcome.WarningsBefore)
}

func TestLint_SingleLine(t *testing.T) {
	opts := &Options{BodyPolicy: BodySingleLine}

	assert.Contains(t, Lint("feat: header\n\nbody line", opts).ViolationsBefore, msgSingleLine)
	assert.Empty(t, Lint("feat: header\n\n\n", opts).ViolationsBefore)
}

func TestLint_SeparationWarningsDoNotBlock(t *testing.T) {
	input := "feat: add x\nbody text"

	outcome := Lint(input, &Options{EnforceSpec: true})
	assert.Empty(t, outcome.ViolationsBefore)
	assert.Equal(t, []string{msgBodySeparation}, outcome.WarningsBefore)
	assert.True(t, outcome.Passed(false))

	outcome = Lint(input, &Options{EnforceSpec: true, SeparationSeverity: SeverityViolation})
	assert.Equal(t, []string{msgBodySeparation}, outcome.ViolationsBefore)
	assert.False(t, outcome.Passed(false))
}

func TestLint_AutofixClearsSeparationFindings(t *testing.T) {
	opts := &Options{EnforceSpec: true, Autofix: true}

	outcome := Lint("feat: add x  \r\nbody text\nRefs: 1\n\n\n", opts)

	assert.Equal(t, []string{msgBodySeparation, msgFooterSeparation}, outcome.WarningsBefore)
	assert.Empty(t, outcome.WarningsAfter)
	assert.Empty(t, outcome.ViolationsAfter)
	assert.Equal(t, "feat: add x\n\nbody text\n\nRefs: 1\n", outcome.Cleaned)
	assert.Equal(t, []string{
		fixLineEndings,
		fixTrailingSpace,
		fixEdgeBlankLines,
		fixHeaderSeparator,
		fixFooterSeparator,
	}, outcome.CleanupSummaries)
}

func TestLint_RewriteIdempotent(t *testing.T) {
	opts := &Options{
		Cleanups:    []CleanupRule{mustCleanup(t, `\s+$`, "", "")},
		EnforceSpec: true,
		Autofix:     true,
	}

	for _, input := range []string{
		"feat: demo   \n",
		"  \n\nfeat: x\r\n\r\n\r\nbody  \r\n",
		"feat!: y\n\n\n\nBREAKING CHANGE: z\n   cont  \n\n",
		"feat: x\nbody\nRefs: 1",
	} {
		first := Lint(input, opts)
		second := Lint(first.Cleaned, opts)
		assert.Equal(t, first.Cleaned, second.Cleaned, "input %q", input)
		assert.Empty(t, second.CleanupSummaries, "input %q", input)
	}
}

func TestLint_ConcurrentUse(t *testing.T) {
	exclude, err := CompileExclude(`(?i)\bwip\b`, "")
	require.NoError(t, err)
	opts := &Options{
		Excludes:    []ExcludeRule{exclude},
		Cleanups:    []CleanupRule{mustCleanup(t, `\s+$`, "", "")},
		EnforceSpec: true,
		Autofix:     true,
	}
	want := Lint("feat: add x\nbody  \n", opts)

	var wg sync.WaitGroup
	results := make([]Outcome, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Lint("feat: add x\nbody  \n", opts)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
