// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/sfcname/services/sfcname/transform"
)

func TestDiff(t *testing.T) {
	before := "<script setup>\nconst x = 1\n</script>\n"
	after := "<script setup>\ndefineOptions({ name: \"A\" });\n\nconst x = 1\n</script>\n"

	out, err := Diff("/src/A.vue", before, after)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "--- a/src/A.vue\n")
	assert.Contains(t, text, "+++ b/src/A.vue\n")
	assert.Contains(t, text, "@@ -1,3 +1,5 @@")
	assert.Contains(t, text, "\n <script setup>\n+defineOptions({ name: \"A\" });\n+\n const x = 1\n </script>\n")

	parsed, err := diff.ParseFileDiff(out)
	require.NoError(t, err)
	require.Len(t, parsed.Hunks, 1)
	assert.EqualValues(t, 3, parsed.Hunks[0].OrigLines)
	assert.EqualValues(t, 5, parsed.Hunks[0].NewLines)
}

func TestDiff_Equal(t *testing.T) {
	out, err := Diff("A.vue", "same", "same")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d\n", i+1)
	}
	return lines
}

func TestDiff_ContextWindow(t *testing.T) {
	lines := numbered(20)
	before := strings.Join(lines, "")
	after := strings.Join(lines[:10], "") + "inserted\n" + strings.Join(lines[10:], "")

	got := hunks(splitLines(before), splitLines(after))
	require.Len(t, got, 1)
	assert.EqualValues(t, 8, got[0].OrigStartLine)
	assert.EqualValues(t, 6, got[0].OrigLines)
	assert.EqualValues(t, 8, got[0].NewStartLine)
	assert.EqualValues(t, 7, got[0].NewLines)
	assert.Equal(t, " line 8\n line 9\n line 10\n+inserted\n line 11\n line 12\n line 13\n", string(got[0].Body))
}

func TestDiff_SeparateHunks(t *testing.T) {
	lines := numbered(30)
	edited := append([]string(nil), lines...)
	edited[2] = "changed 3\n"
	edited[25] = "changed 26\n"

	out, err := Diff("A.vue", strings.Join(lines, ""), strings.Join(edited, ""))
	require.NoError(t, err)

	parsed, err := diff.ParseFileDiff(out)
	require.NoError(t, err)
	require.Len(t, parsed.Hunks, 2)
	assert.EqualValues(t, 1, parsed.Hunks[0].OrigStartLine)
	assert.EqualValues(t, 6, parsed.Hunks[0].OrigLines)
	assert.EqualValues(t, 23, parsed.Hunks[1].OrigStartLine)
	assert.EqualValues(t, 7, parsed.Hunks[1].OrigLines)
	assert.Contains(t, string(out), "-line 3\n+changed 3\n")
}

func TestDiff_FromEmpty(t *testing.T) {
	got := hunks(nil, []string{"a\n"})
	require.Len(t, got, 1)
	assert.EqualValues(t, 0, got[0].OrigStartLine)
	assert.EqualValues(t, 0, got[0].OrigLines)
	assert.EqualValues(t, 1, got[0].NewStartLine)
	assert.Equal(t, "+a\n", string(got[0].Body))
}

func TestDiff_NoTrailingNewline(t *testing.T) {
	out, err := Diff("A.vue", "<script setup>defineOptions();</script>", `<script setup>defineOptions({ name: "A" });</script>`)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "-<script setup>defineOptions();</script>\n"+noNewline)
	assert.Contains(t, text, "+<script setup>defineOptions({ name: \"A\" });</script>\n"+noNewline)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a\n", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a\n", "\n"}, splitLines("a\n\n"))
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.File("src/A.vue", &transform.Result{Changed: true, Name: "A", Reason: transform.ReasonInjected})
	p.File("src/B.vue", &transform.Result{Reason: transform.ReasonHasName})
	p.Error("src/C.vue", errors.New("boom"))
	p.Summary()

	out := buf.String()
	assert.Contains(t, out, "named src/A.vue A\n")
	assert.NotContains(t, out, "src/B.vue")
	assert.Contains(t, out, "error src/C.vue: boom\n")
	assert.Contains(t, out, "1 named, 1 unchanged, 1 failed")
	assert.Equal(t, 1, p.Changed())
	assert.Equal(t, 1, p.Failed())
}

func TestPrinter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.File("src/B.vue", &transform.Result{Reason: transform.ReasonHasName})
	p.File("src/D.vue", &transform.Result{Reason: transform.ReasonNoScriptSetup})
	p.Summary()

	out := buf.String()
	assert.Contains(t, out, "src/B.vue (has_name)")
	assert.Contains(t, out, "has_name")
	assert.Contains(t, out, "no_script_setup")
	assert.Less(t, strings.Index(out, "  has_name"), strings.Index(out, "  no_script_setup"))
}
