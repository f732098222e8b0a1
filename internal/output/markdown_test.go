package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/gitfluff/internal/lint"
)

func TestMarkdownWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, &Report{}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0 message(s) checked, 0 failed.") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "| Source |") {
		t.Error("table should be omitted with no results")
	}
}

func TestMarkdownWriter_Table(t *testing.T) {
	report := &Report{Results: []Result{
		{Source: "abc1234", Subject: "feat: a|b", Outcome: lint.Outcome{
			ViolationsBefore: []string{"Commit body is required"},
		}},
		{Source: "def5678", Subject: "fix: ok", Author: "Dev <dev@example.com>", Outcome: lint.Outcome{
			WarningsBefore: []string{"Footer block should be preceded by a blank line"},
		}},
		{Source: "0123456", Subject: "docs: fine"},
	}}

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"3 message(s) checked, 1 failed.",
		"| `abc1234` | feat: a\\|b | :x: fail | 1 | 0 | 0 |",
		"| `def5678` | fix: ok | :warning: pass | 0 | 1 | 0 |",
		"| `0123456` | docs: fine | :white_check_mark: pass | 0 | 0 | 0 |",
		"- :x: Commit body is required",
		"<summary><code>def5678</code> fix: ok by Dev &lt;dev@example.com&gt;</summary>",
		"- :warning: Footer block should be preceded by a blank line",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if got := strings.Count(out, "<details>"); got != 2 {
		t.Errorf("details sections = %d, want 2", got)
	}
}
