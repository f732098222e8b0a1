package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const series = `From 1f2e3d4c5b6a79880000000000000000000000ab Mon Sep 17 00:00:00 2001
From: Dev <dev@example.com>
Date: Mon, 1 Jan 2024 00:00:00 +0000
Subject: [PATCH 1/3] feat(parser): support pipes
Content-Type: text/plain; charset=UTF-8
Content-Transfer-Encoding: 8bit

Add parsing for foo | bar

Refs: 123
---
 parser.go | 2 +-
 1 file changed, 1 insertion(+), 1 deletion(-)

diff --git a/parser.go b/parser.go
index 0000000..1111111 100644
--- a/parser.go
+++ b/parser.go
@@ -1 +1 @@
-old
+new
--
2.43.0

From 2f2e3d4c5b6a79880000000000000000000000ab Mon Sep 17 00:00:00 2001
From: =?UTF-8?q?J=C3=B6rg?= <jorg@example.com>
Date: Mon, 1 Jan 2024 00:01:00 +0000
Subject: =?UTF-8?q?[PATCH_2/3]_fix:_caf=C3=A9_crash?=
Content-Type: text/plain; charset=UTF-8

---
 cafe.go | 1 +
 1 file changed, 1 insertion(+)

From 3f2e3d4c5b6a79880000000000000000000000ab Mon Sep 17 00:00:00 2001
From: Dev <dev@example.com>
Date: Mon, 1 Jan 2024 00:02:00 +0000
Subject: [PATCH v2 3/3] =?ISO-8859-15?q?docs:_r=E9sum=E9?=
Content-Type: text/plain; charset=ISO-8859-1
Content-Transfer-Encoding: quoted-printable

Document the r=E9sum=E9 export.
---
 README | 1 +
`

func TestReadSeries(t *testing.T) {
	patches, err := ReadSeries(strings.NewReader(series))
	require.NoError(t, err)
	require.Len(t, patches, 3)

	assert.Equal(t, 1, patches[0].Index)
	assert.Equal(t, "feat(parser): support pipes", patches[0].Subject)
	assert.Equal(t, "feat(parser): support pipes\n\nAdd parsing for foo | bar\n\nRefs: 123\n", patches[0].Message)
	assert.Equal(t, "Dev <dev@example.com>", patches[0].From)

	assert.Equal(t, "fix: café crash", patches[1].Subject)
	assert.Equal(t, "fix: café crash\n", patches[1].Message)
	assert.Equal(t, "Jörg <jorg@example.com>", patches[1].From)

	assert.Equal(t, "docs: résumé", patches[2].Subject)
	assert.Equal(t, "docs: résumé\n\nDocument the résumé export.\n", patches[2].Message)
}

func TestReadSeries_Empty(t *testing.T) {
	patches, err := ReadSeries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestSubjectPrefix(t *testing.T) {
	tests := map[string]string{
		"[PATCH] fix: a":               "fix: a",
		"[PATCH v3 02/10] fix: a":      "fix: a",
		"[RFC][PATCH 1/2] feat: b":     "feat: b",
		"feat: keep [brackets] inside": "feat: keep [brackets] inside",
	}
	for in, want := range tests {
		assert.Equal(t, want, strings.TrimSpace(subjectPrefix.ReplaceAllString(in, "")), in)
	}
}
