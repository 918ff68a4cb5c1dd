// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report renders transform results for people: unified diffs and a
// per-file summary.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// ContextLines is the number of unchanged lines shown around a change.
const ContextLines = 3

const noNewline = "\\ No newline at end of file\n"

// Diff renders the change from before to after as a unified diff.
//
// Description:
//
//	Lines are matched with difflib and grouped into hunks with
//	ContextLines of context; the hunks are printed with go-diff. Returns
//	nil when the texts are equal.
//
// Inputs:
//
//	fileID - Shown in the ---/+++ header as a/fileID and b/fileID.
//	before - Original text.
//	after  - Transformed text.
func Diff(fileID, before, after string) ([]byte, error) {
	if before == after {
		return nil, nil
	}

	fd := &diff.FileDiff{
		OrigName: "a/" + strings.TrimPrefix(fileID, "/"),
		NewName:  "b/" + strings.TrimPrefix(fileID, "/"),
		Hunks:    hunks(splitLines(before), splitLines(after)),
	}

	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return nil, fmt.Errorf("printing diff for %s: %w", fileID, err)
	}
	return out, nil
}

// hunks converts difflib's grouped opcodes into go-diff hunks.
func hunks(a, b []string) []*diff.Hunk {
	groups := difflib.NewMatcher(a, b).GetGroupedOpCodes(ContextLines)

	out := make([]*diff.Hunk, 0, len(groups))
	for _, group := range groups {
		first, last := group[0], group[len(group)-1]

		var body bytes.Buffer
		for _, op := range group {
			switch op.Tag {
			case 'e':
				writeLines(&body, ' ', a[op.I1:op.I2])
			case 'd':
				writeLines(&body, '-', a[op.I1:op.I2])
			case 'i':
				writeLines(&body, '+', b[op.J1:op.J2])
			case 'r':
				writeLines(&body, '-', a[op.I1:op.I2])
				writeLines(&body, '+', b[op.J1:op.J2])
			}
		}

		out = append(out, &diff.Hunk{
			OrigStartLine: rangeStart(first.I1, last.I2),
			OrigLines:     int32(last.I2 - first.I1),
			NewStartLine:  rangeStart(first.J1, last.J2),
			NewLines:      int32(last.J2 - first.J1),
			Body:          body.Bytes(),
		})
	}
	return out
}

// rangeStart returns the one-based start line of a hunk range. An empty
// range starts at the line before it.
func rangeStart(start, stop int) int32 {
	if stop == start {
		return int32(start)
	}
	return int32(start + 1)
}

func writeLines(buf *bytes.Buffer, marker byte, lines []string) {
	for _, line := range lines {
		buf.WriteByte(marker)
		buf.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			buf.WriteByte('\n')
			buf.WriteString(noNewline)
		}
	}
}

// splitLines splits s after each newline. A trailing line without a
// newline is kept; an empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
