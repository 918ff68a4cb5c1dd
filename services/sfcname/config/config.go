// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config holds the options that decide which files get a component
// name and how that name is cased.
package config

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/sfcname/services/sfcname/naming"
)

// ErrInvalidConfig is returned for malformed filters or option values.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// DefaultInclude matches every .vue file.
	DefaultInclude = `re:/\.vue$/i`

	// DefaultExclude skips installed packages.
	DefaultExclude = `re:/\/node_modules\//i`
)

var (
	defaultInclude = Matchers{MustMatcher(DefaultInclude)}
	defaultExclude = Matchers{MustMatcher(DefaultExclude)}
)

// =============================================================================
// Config
// =============================================================================

// Config is the resolved option set for one transform.
//
// Description:
//
//	Built through New or FileConfig.Build. A filter list that was never set
//	falls back to its default; an explicitly empty list stays empty, so
//	WithExclude() with no patterns turns the node_modules guard off.
//
// Thread Safety: Immutable after construction; safe for concurrent use.
type Config struct {
	include  Matchers
	exclude  Matchers
	nameCase naming.Case
}

// Option configures a Config.
type Option func(*builder) error

type builder struct {
	include    Matchers
	exclude    Matchers
	includeSet bool
	excludeSet bool
	nameCase   naming.Case
}

// WithInclude replaces the include patterns.
func WithInclude(patterns ...string) Option {
	return func(b *builder) error {
		ms, err := ParseMatchers(patterns)
		if err != nil {
			return err
		}
		b.include, b.includeSet = ms, true
		return nil
	}
}

// WithExclude replaces the exclude patterns.
func WithExclude(patterns ...string) Option {
	return func(b *builder) error {
		ms, err := ParseMatchers(patterns)
		if err != nil {
			return err
		}
		b.exclude, b.excludeSet = ms, true
		return nil
	}
}

// WithNameCase sets the casing applied to derived names.
func WithNameCase(c naming.Case) Option {
	return func(b *builder) error {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown name case %q", ErrInvalidConfig, c)
		}
		b.nameCase = c
		return nil
	}
}

// New builds a Config, applying defaults for anything not set.
//
// Outputs:
//
//	Config - The resolved options.
//	error  - Wraps ErrInvalidConfig when an option is malformed.
func New(opts ...Option) (Config, error) {
	b := builder{nameCase: naming.CasePascal}
	for _, opt := range opts {
		if err := opt(&b); err != nil {
			return Config{}, err
		}
	}
	if !b.includeSet {
		b.include = defaultInclude
	}
	if !b.excludeSet {
		b.exclude = defaultExclude
	}
	return Config{include: b.include, exclude: b.exclude, nameCase: b.nameCase}, nil
}

// Default returns the zero-option Config.
func Default() Config {
	return Config{include: defaultInclude, exclude: defaultExclude, nameCase: naming.CasePascal}
}

// Include returns the include filters.
func (c Config) Include() Matchers { return c.include }

// Exclude returns the exclude filters.
func (c Config) Exclude() Matchers { return c.exclude }

// NameCase returns the casing for derived names. A zero Config reports
// pascal.
func (c Config) NameCase() naming.Case {
	if c.nameCase == "" {
		return naming.CasePascal
	}
	return c.nameCase
}

// Allows reports whether id passes the filters. Exclude is checked first.
// A zero Config has no include filters and allows nothing; use Default.
func (c Config) Allows(id string) bool {
	if c.exclude.Any(id) {
		return false
	}
	return c.include.Any(id)
}
