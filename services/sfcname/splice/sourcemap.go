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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf16"

	"github.com/neelance/sourcemap"
)

// SourceMapVersion is the only source map revision produced.
const SourceMapVersion = 3

// SourceMap is a Source Map revision 3 document.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON encodes the source map.
func (s *SourceMap) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// SourceMap renders m as a Source Map v3 document for source.
//
// Description:
//
//	Emits a high-resolution map: every character copied from the original
//	gets its own segment, so a consumer can resolve any column. Inserted
//	text is left unmapped and newlines carry no segment. Columns are
//	counted in UTF-16 code units as the format requires.
//
// Inputs:
//
//	source         - Name recorded in "sources", usually the file id.
//	includeContent - Embed the original text as "sourcesContent".
//
// Outputs:
//
//	*SourceMap - The document.
//	error      - Non-nil only if the mappings could not be encoded.
func (m *PositionMap) SourceMap(source string, includeContent bool) (*SourceMap, error) {
	mappings, err := encodeMappings(source, m.mappings(source))
	if err != nil {
		return nil, err
	}

	sm := &SourceMap{
		Version:  SourceMapVersion,
		Sources:  []string{source},
		Names:    []string{},
		Mappings: mappings,
	}
	if includeContent {
		sm.SourcesContent = []string{m.original}
	}
	return sm, nil
}

// mappings lists one segment per copied character, ordered by generated
// position. Lines are one-based and columns zero-based, as the encoder
// expects.
func (m *PositionMap) mappings(source string) []*sourcemap.Mapping {
	orig := newLineIndex(m.original)

	var out []*sourcemap.Mapping
	genLine, genCol := 0, 0

	for _, seg := range m.segments {
		text := m.generated[seg.genStart:seg.genEnd]
		if seg.inserted {
			genLine, genCol = advance(genLine, genCol, text)
			continue
		}

		origLine, origCol := orig.locate(seg.origStart)
		for _, r := range text {
			if r == '\n' {
				genLine, genCol = genLine+1, 0
				origLine, origCol = origLine+1, 0
				continue
			}
			out = append(out, &sourcemap.Mapping{
				GeneratedLine:   genLine + 1,
				GeneratedColumn: genCol,
				OriginalFile:    source,
				OriginalLine:    origLine + 1,
				OriginalColumn:  origCol,
			})
			w := utf16.RuneLen(r)
			genCol += w
			origCol += w
		}
	}

	return out
}

// encodeMappings runs the segments through the VLQ encoder and returns the
// resulting "mappings" field.
func encodeMappings(source string, mappings []*sourcemap.Mapping) (string, error) {
	if len(mappings) == 0 {
		return "", nil
	}

	enc := &sourcemap.Map{Version: SourceMapVersion, Sources: []string{source}}
	for _, mapping := range mappings {
		enc.AddMapping(mapping)
	}

	var buf bytes.Buffer
	if err := enc.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("encoding source map: %w", err)
	}

	var out struct {
		Mappings string `json:"mappings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		return "", fmt.Errorf("encoding source map: %w", err)
	}
	return out.Mappings, nil
}

// advance moves a zero-based line and UTF-16 column past text.
func advance(line, col int, text string) (int, int) {
	for _, r := range text {
		if r == '\n' {
			line, col = line+1, 0
			continue
		}
		col += utf16.RuneLen(r)
	}
	return line, col
}

// lineIndex resolves byte offsets to zero-based line and UTF-16 column.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{text: text, starts: starts}
}

func (li lineIndex) locate(offset int) (line, col int) {
	line = sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	for _, r := range li.text[li.starts[line]:offset] {
		col += utf16.RuneLen(r)
	}
	return line, col
}
