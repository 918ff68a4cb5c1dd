// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package transform injects a component name into the <script setup> block
// of a single-file component.
package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AleutianAI/sfcname/services/sfcname/ast"
	"github.com/AleutianAI/sfcname/services/sfcname/config"
	"github.com/AleutianAI/sfcname/services/sfcname/naming"
	"github.com/AleutianAI/sfcname/services/sfcname/patch"
	"github.com/AleutianAI/sfcname/services/sfcname/sfc"
	"github.com/AleutianAI/sfcname/services/sfcname/splice"
)

// ErrMissingFileID is returned when Transform is called without a file id.
var ErrMissingFileID = errors.New("missing file id")

// Reason explains why a file came out unchanged, or that it changed.
type Reason string

const (
	ReasonInjected      Reason = "injected"
	ReasonNotComponent  Reason = "not_component"
	ReasonExcluded      Reason = "excluded"
	ReasonNotIncluded   Reason = "not_included"
	ReasonNoScriptSetup Reason = "no_script_setup"
	ReasonExternalSrc   Reason = "external_src"
	ReasonParseFailed   Reason = "parse_failed"
	ReasonHasName       Reason = "has_name"
	ReasonNonObjectArg  Reason = "non_object_arg"
)

// Result is the outcome of one Transform call.
//
// When Changed is false, Code is the input text and Map and Positions are
// nil. Name and Shape are filled in as far as processing got.
type Result struct {
	Changed   bool
	Code      string
	Map       *splice.SourceMap
	Positions *splice.PositionMap
	Name      string
	Shape     patch.Shape
	Reason    Reason
}

// Classified reports whether the script setup block parsed and Shape holds
// its defineOptions classification.
func (r *Result) Classified() bool {
	switch r.Reason {
	case ReasonInjected, ReasonHasName, ReasonNonObjectArg:
		return true
	default:
		return false
	}
}

func unchanged(code string, reason Reason) *Result {
	return &Result{Code: code, Reason: reason}
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithParser sets the script parser. Defaults to ast.NewScriptParser().
func WithParser(p *ast.ScriptParser) Option {
	return func(t *Transformer) {
		t.parser = p
	}
}

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// Transformer runs the name injection pipeline.
//
// Thread Safety: Safe for concurrent use. Each call works on its own
// inputs; the parser creates a fresh tree-sitter parser per call.
type Transformer struct {
	parser *ast.ScriptParser
	logger *slog.Logger
}

// New creates a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.parser == nil {
		t.parser = ast.NewScriptParser(ast.WithLogger(t.logger))
	}
	return t
}

// Transform injects a component name into one file.
//
// Description:
//
//	Files are processed only when the id ends in .vue and passes the
//	config filters. The component name is derived from the id, the
//	top-level <script setup> block is parsed, the first top-level
//	defineOptions call is classified and at most one insertion is
//	spliced into the file. Every other outcome leaves the file
//	byte-identical. A script that does not parse is skipped, not
//	reported.
//
// Inputs:
//
//	ctx    - Context for cancellation and tracing.
//	fileID - The file identifier, usually an absolute path. Required.
//	code   - The full component file text.
//	cfg    - Filters and name casing. Use config.Default() for defaults.
//
// Outputs:
//
//	*Result - The outcome. Never nil when error is nil.
//	error   - ErrMissingFileID, naming.ErrEmptyName or
//	          ast.ErrUnsupportedLanguage (wrapped) for caller mistakes,
//	          or a context error.
//
// Thread Safety: Safe for concurrent use.
func (t *Transformer) Transform(ctx context.Context, fileID, code string, cfg config.Config) (res *Result, err error) {
	ctx, span := startTransformSpan(ctx, fileID, len(code))
	defer span.End()

	start := time.Now()
	defer func() {
		recordTransform(span, res, err, time.Since(start))
	}()

	if fileID == "" {
		return nil, ErrMissingFileID
	}
	if !strings.HasSuffix(fileID, naming.ComponentExt) {
		return unchanged(code, ReasonNotComponent), nil
	}
	if cfg.Exclude().Any(fileID) {
		return unchanged(code, ReasonExcluded), nil
	}
	if !cfg.Include().Any(fileID) {
		return unchanged(code, ReasonNotIncluded), nil
	}

	logger := t.logger.With(slog.String("file", fileID))

	name, err := naming.Derive(fileID, cfg.NameCase())
	if err != nil {
		return nil, fmt.Errorf("deriving name for %s: %w", fileID, err)
	}

	desc, err := sfc.Parse(ctx, []byte(code), fileID)
	if err != nil {
		return nil, fmt.Errorf("reading blocks of %s: %w", fileID, err)
	}
	for _, w := range desc.Warnings {
		logger.Warn("component structure", slog.String("warning", w))
	}

	block := desc.ScriptSetup
	if block == nil {
		logger.Debug("no script setup block")
		return &Result{Code: code, Name: name, Reason: ReasonNoScriptSetup}, nil
	}
	if block.External() {
		logger.Debug("script setup loads external source", slog.String("src", block.Src))
		return &Result{Code: code, Name: name, Reason: ReasonExternalSrc}, nil
	}

	lang, err := ast.ResolveLanguage(block.Lang)
	if err != nil {
		return nil, fmt.Errorf("script setup of %s: %w", fileID, err)
	}

	tree, err := t.parser.Parse(ctx, []byte(block.Content), lang)
	if err != nil {
		if abstainsOnParse(err) {
			logger.Debug("script setup did not parse, skipping",
				slog.String("language", string(lang)),
				slog.String("error", err.Error()),
			)
			return &Result{Code: code, Name: name, Reason: ReasonParseFailed}, nil
		}
		return nil, fmt.Errorf("parsing script setup of %s: %w", fileID, err)
	}
	match := patch.Locate(tree)
	tree.Close()

	if match.Count > 1 {
		logger.Warn("multiple defineOptions calls, using the first",
			slog.Int("count", match.Count),
		)
	}

	ins := patch.Plan(match, name)
	if ins == nil {
		reason := ReasonHasName
		if match.Shape == patch.ShapeNonObjectArg {
			reason = ReasonNonObjectArg
		}
		logger.Debug("name not injected", slog.String("shape", match.Shape.String()))
		return &Result{Code: code, Name: name, Shape: match.Shape, Reason: reason}, nil
	}

	out, err := splice.Apply(code, []splice.Edit{{Offset: block.Start + ins.Offset, Text: ins.Text}})
	if err != nil {
		return nil, fmt.Errorf("splicing %s: %w", fileID, err)
	}

	sm, err := out.Map.SourceMap(fileID, true)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fileID, err)
	}

	logger.Debug("component name injected",
		slog.String("name", name),
		slog.String("shape", match.Shape.String()),
	)

	return &Result{
		Changed:   true,
		Code:      out.Text,
		Map:       sm,
		Positions: out.Map,
		Name:      name,
		Shape:     match.Shape,
		Reason:    ReasonInjected,
	}, nil
}

// abstainsOnParse reports whether a parse error means "leave the file
// alone" rather than a failure to surface.
func abstainsOnParse(err error) bool {
	return errors.Is(err, ast.ErrSyntax) ||
		errors.Is(err, ast.ErrFileTooLarge) ||
		errors.Is(err, ast.ErrInvalidContent)
}
