// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package splice

import "sort"

// segment is a contiguous run of generated bytes. Copied segments map
// byte-for-byte onto original[origStart:]; inserted segments have no
// original counterpart and remember the offset they were inserted at.
type segment struct {
	genStart  int
	genEnd    int
	origStart int
	inserted  bool
}

// PositionMap translates byte offsets between a spliced document and the
// original it was produced from.
//
// Thread Safety: Immutable after Apply returns; safe for concurrent use.
type PositionMap struct {
	original  string
	generated string
	segments  []segment
}

// ToOriginal maps a byte offset in the generated text to the original.
//
// Outputs:
//
//	int  - The original offset. For inserted text this is the insertion
//	       point.
//	bool - False when offset falls inside inserted text or out of range.
func (m *PositionMap) ToOriginal(offset int) (int, bool) {
	if offset < 0 || offset > len(m.generated) {
		return 0, false
	}
	if offset == len(m.generated) {
		return len(m.original), true
	}

	i := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].genEnd > offset
	})
	if i == len(m.segments) {
		return 0, false
	}

	seg := m.segments[i]
	if seg.inserted {
		return seg.origStart, false
	}
	return seg.origStart + offset - seg.genStart, true
}

// ToGenerated maps a byte offset in the original text to the generated
// text. Text inserted at an offset lands before the original byte there.
func (m *PositionMap) ToGenerated(offset int) (int, bool) {
	if offset < 0 || offset > len(m.original) {
		return 0, false
	}
	if offset == len(m.original) {
		return len(m.generated), true
	}

	for _, seg := range m.segments {
		if seg.inserted {
			continue
		}
		if offset >= seg.origStart && offset < seg.origStart+seg.genEnd-seg.genStart {
			return seg.genStart + offset - seg.origStart, true
		}
	}
	return 0, false
}

// InsertedBytes returns the total number of bytes added by the splice.
func (m *PositionMap) InsertedBytes() int {
	return len(m.generated) - len(m.original)
}
