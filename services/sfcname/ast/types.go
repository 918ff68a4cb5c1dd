// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast parses component script blocks into tree-sitter syntax trees.
package ast

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	// DefaultMaxFileSize is the largest script block the parser accepts.
	DefaultMaxFileSize = 2 * 1024 * 1024

	// WarnFileSize is the size above which a parse is logged as unusually large.
	WarnFileSize = 256 * 1024
)

var (
	// ErrSyntax signals that the script could not be parsed cleanly.
	// Callers treat it as a terminal "abstain" outcome, not a failure.
	ErrSyntax = errors.New("script contains syntax errors")

	// ErrUnsupportedLanguage is returned for a lang tag with no grammar.
	ErrUnsupportedLanguage = errors.New("unsupported script language")

	// ErrFileTooLarge is returned when content exceeds the configured limit.
	ErrFileTooLarge = errors.New("script too large")

	// ErrInvalidContent is returned when content is not valid UTF-8.
	ErrInvalidContent = errors.New("script is not valid UTF-8")
)

// Language identifies the grammar used to parse a script block.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

// ResolveLanguage maps a component script lang attribute to a grammar.
//
// Description:
//
//	An empty tag means plain JavaScript. Recognized tags are js, mjs, cjs,
//	jsx, ts, mts, cts and tsx, compared case-insensitively.
//
// Outputs:
//
//	Language - The grammar to use.
//	error    - ErrUnsupportedLanguage (wrapped) for anything else.
func ResolveLanguage(lang string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "js", "mjs", "cjs", "jsx", "javascript":
		return LanguageJavaScript, nil
	case "ts", "mts", "cts", "typescript":
		return LanguageTypeScript, nil
	case "tsx":
		return LanguageTSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
}

// Span is a half-open byte range [Start, End) into the parsed text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// SpanOf returns the byte range of n.
func SpanOf(n *sitter.Node) Span {
	if n == nil {
		return Span{}
	}
	return Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// SyntaxTree is a parsed script block.
//
// Description:
//
//	Wraps a tree-sitter tree together with the exact bytes it was parsed
//	from, so node byte ranges can be resolved back to text. A SyntaxTree
//	is never mutated after Parse returns it.
//
// Thread Safety: Not safe for concurrent use. Owned by a single
// locate-and-plan operation; call Close when done.
type SyntaxTree struct {
	tree     *sitter.Tree
	content  []byte
	language Language
}

// Root returns the program node.
func (t *SyntaxTree) Root() *sitter.Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return t.tree.RootNode()
}

// Content returns the source bytes the tree was parsed from.
func (t *SyntaxTree) Content() []byte {
	return t.content
}

// Language returns the grammar used for the tree.
func (t *SyntaxTree) Language() Language {
	return t.language
}

// Text returns the source text covered by n.
func (t *SyntaxTree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.content)
}

// Close releases the underlying tree-sitter tree. Safe to call more than once.
func (t *SyntaxTree) Close() {
	if t == nil || t.tree == nil {
		return
	}
	t.tree.Close()
	t.tree = nil
}
