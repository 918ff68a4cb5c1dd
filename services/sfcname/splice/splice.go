// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package splice applies insert-only edits to a document and records how
// positions in the result map back to the original.
package splice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOffsetOutOfRange is returned for an edit outside [0, len(original)].
	ErrOffsetOutOfRange = errors.New("edit offset out of range")

	// ErrUnsortedEdits is returned when edit offsets decrease.
	ErrUnsortedEdits = errors.New("edits must be sorted by offset")
)

// Edit inserts Text immediately before byte Offset of the original text.
type Edit struct {
	Offset int
	Text   string
}

// Result is the spliced document.
type Result struct {
	Text string
	Map  *PositionMap
}

// Apply inserts edits into original.
//
// Description:
//
//	Edits must be sorted by Offset; several edits at the same offset are
//	inserted in the order given. Every byte of original appears in the
//	result unchanged and in order. Zero edits returns the original text
//	with an identity map.
//
// Outputs:
//
//	*Result - The new text and its position map.
//	error   - ErrOffsetOutOfRange or ErrUnsortedEdits (wrapped).
//
// Thread Safety: Safe for concurrent use (pure function).
func Apply(original string, edits []Edit) (*Result, error) {
	last := 0
	for i, e := range edits {
		if e.Offset < 0 || e.Offset > len(original) {
			return nil, fmt.Errorf("%w: edit %d at %d, length %d", ErrOffsetOutOfRange, i, e.Offset, len(original))
		}
		if e.Offset < last {
			return nil, fmt.Errorf("%w: edit %d at %d after %d", ErrUnsortedEdits, i, e.Offset, last)
		}
		last = e.Offset
	}

	var b strings.Builder
	size := len(original)
	for _, e := range edits {
		size += len(e.Text)
	}
	b.Grow(size)

	pm := &PositionMap{original: original}
	cursor := 0

	copyTo := func(end int) {
		if end == cursor {
			return
		}
		pm.segments = append(pm.segments, segment{
			genStart:  b.Len(),
			genEnd:    b.Len() + end - cursor,
			origStart: cursor,
		})
		b.WriteString(original[cursor:end])
		cursor = end
	}

	for _, e := range edits {
		copyTo(e.Offset)
		if e.Text == "" {
			continue
		}
		pm.segments = append(pm.segments, segment{
			genStart:  b.Len(),
			genEnd:    b.Len() + len(e.Text),
			origStart: e.Offset,
			inserted:  true,
		})
		b.WriteString(e.Text)
	}
	copyTo(len(original))

	pm.generated = b.String()
	return &Result{Text: pm.generated, Map: pm}, nil
}
