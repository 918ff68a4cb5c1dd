// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ScriptParserOption configures a ScriptParser instance.
type ScriptParserOption func(*ScriptParser)

// WithMaxFileSize sets the maximum script size the parser will accept.
// Non-positive values are ignored.
func WithMaxFileSize(bytes int) ScriptParserOption {
	return func(p *ScriptParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) ScriptParserOption {
	return func(p *ScriptParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// ScriptParser parses component script blocks with tree-sitter.
//
// Description:
//
//	Selects the javascript, typescript or tsx grammar from the Language and
//	returns a SyntaxTree whose nodes carry byte ranges into the input. A
//	tree containing any ERROR or MISSING node is reported as ErrSyntax so
//	callers never reason over a recovered, guessed tree.
//
// Thread Safety:
//
//	ScriptParser is safe for concurrent use. Each Parse call creates its own
//	tree-sitter parser instance.
//
// Example:
//
//	parser := NewScriptParser()
//	tree, err := parser.Parse(ctx, []byte("defineOptions({})"), LanguageTypeScript)
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ScriptParser struct {
	maxFileSize int
	logger      *slog.Logger
}

// NewScriptParser creates a ScriptParser with the given options.
func NewScriptParser(opts ...ScriptParserOption) *ScriptParser {
	p := &ScriptParser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses content with the grammar for lang.
//
// Inputs:
//
//	ctx     - Context for cancellation. Checked before and after parsing.
//	content - Script block text. Must be valid UTF-8.
//	lang    - Grammar selector, usually from ResolveLanguage.
//
// Outputs:
//
//	*SyntaxTree - The parsed tree. The caller must Close it.
//	error       - ErrSyntax when the tree contains errors,
//	              ErrUnsupportedLanguage, ErrFileTooLarge, ErrInvalidContent,
//	              or a context error. All are wrapped.
func (p *ScriptParser) Parse(ctx context.Context, content []byte, lang Language) (*SyntaxTree, error) {
	ctx, span := startParseSpan(ctx, lang, len(content))
	defer span.End()

	start := time.Now()

	if err := ctx.Err(); err != nil {
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	grammar, err := grammarFor(lang)
	if err != nil {
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, err
	}

	if len(content) > p.maxFileSize {
		err := fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, err
	}

	if len(content) > WarnFileSize {
		p.logger.Warn("parsing large script block",
			slog.String("language", string(lang)),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		err := fmt.Errorf("%w", ErrInvalidContent)
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}

	st := &SyntaxTree{tree: tree, content: content, language: lang}

	if err := ctx.Err(); err != nil {
		st.Close()
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	root := st.Root()
	if root == nil || root.HasError() {
		st.Close()
		err := fmt.Errorf("%w (%s)", ErrSyntax, lang)
		recordParse(ctx, span, lang, time.Since(start), err)
		return nil, err
	}

	recordParse(ctx, span, lang, time.Since(start), nil)
	return st, nil
}

func grammarFor(lang Language) (*sitter.Language, error) {
	switch lang {
	case LanguageJavaScript:
		return javascript.GetLanguage(), nil
	case LanguageTypeScript:
		return typescript.GetLanguage(), nil
	case LanguageTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
}
