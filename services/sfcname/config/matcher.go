// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern evaluation. Patterns come from user
// config and regexp2 backtracks.
const matchTimeout = 100 * time.Millisecond

// RegexPrefix marks a pattern as a regular expression literal.
const RegexPrefix = "re:"

// Matcher tests file ids for include and exclude filters.
//
// Description:
//
//	A pattern written as re:/body/flags is compiled as an ECMAScript
//	regular expression, so filters can be copied from a bundler config
//	by prefixing them. Supported flags are i, m and s; g, u and y are
//	accepted and ignored. Every other pattern, including path-shaped ones
//	such as "/src/", matches as a plain substring of the file id.
//
// Thread Safety: Immutable; safe for concurrent use.
type Matcher struct {
	source string
	re     *regexp2.Regexp
}

// ParseMatcher compiles a filter pattern.
//
// Outputs:
//
//	Matcher - The compiled matcher.
//	error   - Wraps ErrInvalidConfig when the pattern is empty, or when a
//	          re: pattern is not a /body/flags literal, has an unknown
//	          flag, or does not compile.
func ParseMatcher(pattern string) (Matcher, error) {
	if pattern == "" {
		return Matcher{}, fmt.Errorf("%w: empty pattern", ErrInvalidConfig)
	}

	literal, isRegex := strings.CutPrefix(pattern, RegexPrefix)
	if !isRegex {
		return Matcher{source: pattern}, nil
	}

	body, flags, ok := splitRegexLiteral(literal)
	if !ok {
		return Matcher{}, fmt.Errorf("%w: pattern %s: expected %s/body/flags", ErrInvalidConfig, pattern, RegexPrefix)
	}

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'g', 'u', 'y':
		default:
			return Matcher{}, fmt.Errorf("%w: pattern %s: unknown flag %q", ErrInvalidConfig, pattern, f)
		}
	}

	re, err := regexp2.Compile(body, opts)
	if err != nil {
		return Matcher{}, fmt.Errorf("%w: pattern %s: %v", ErrInvalidConfig, pattern, err)
	}
	re.MatchTimeout = matchTimeout

	return Matcher{source: pattern, re: re}, nil
}

// MustMatcher is ParseMatcher for patterns known at compile time.
func MustMatcher(pattern string) Matcher {
	m, err := ParseMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func splitRegexLiteral(literal string) (body, flags string, ok bool) {
	if len(literal) < 2 || literal[0] != '/' {
		return "", "", false
	}
	end := strings.LastIndexByte(literal, '/')
	if end == 0 {
		return "", "", false
	}
	return literal[1:end], literal[end+1:], true
}

// Match reports whether id matches. A regex that times out counts as no
// match.
func (m Matcher) Match(id string) bool {
	if m.re == nil {
		return m.source != "" && strings.Contains(id, m.source)
	}
	ok, err := m.re.MatchString(id)
	return err == nil && ok
}

// IsRegex reports whether the pattern was a re: literal.
func (m Matcher) IsRegex() bool {
	return m.re != nil
}

// String returns the pattern as written.
func (m Matcher) String() string {
	return m.source
}

// Matchers is an ordered filter list.
type Matchers []Matcher

// Any reports whether any matcher matches id.
func (ms Matchers) Any(id string) bool {
	for _, m := range ms {
		if m.Match(id) {
			return true
		}
	}
	return false
}

// Strings returns the patterns as written.
func (ms Matchers) Strings() []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

// ParseMatchers compiles every pattern, failing on the first bad one.
func ParseMatchers(patterns []string) (Matchers, error) {
	out := make(Matchers, 0, len(patterns))
	for _, p := range patterns {
		m, err := ParseMatcher(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
