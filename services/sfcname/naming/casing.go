// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case selects the identifier formatting applied to a derived component name.
type Case string

const (
	// CasePascal formats names as PascalCase ("UserCard"). This is the default.
	CasePascal Case = "pascal"

	// CaseCamel formats names as camelCase ("userCard").
	CaseCamel Case = "camel"

	// CaseKebab formats names as kebab-case ("user-card").
	CaseKebab Case = "kebab"
)

// ParseCase maps a case name to a Case.
//
// Empty or unrecognized values resolve to CasePascal. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseCase(s string) Case {
	switch Case(strings.ToLower(strings.TrimSpace(s))) {
	case CaseCamel:
		return CaseCamel
	case CaseKebab:
		return CaseKebab
	default:
		return CasePascal
	}
}

// Valid reports whether c is one of the three known cases.
func (c Case) Valid() bool {
	return c == CasePascal || c == CaseCamel || c == CaseKebab
}

// Apply formats segment according to c. Unknown cases behave like CasePascal.
func (c Case) Apply(segment string) string {
	switch c {
	case CaseCamel:
		return Camel(segment)
	case CaseKebab:
		return Kebab(segment)
	default:
		return Pascal(segment)
	}
}

// Pascal converts s to PascalCase. Each word keeps its inner casing, so
// acronyms survive ("XMLHttp-client" -> "XMLHttpClient").
func Pascal(s string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Camel converts s to camelCase. The first word is lowercased entirely.
func Camel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}

	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	b.WriteString(lower.String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Kebab converts s to kebab-case.
func Kebab(s string) string {
	words := Words(s)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "-")
}

// Words splits an identifier-ish string into words.
//
// Description:
//
//	Any rune that is neither a letter nor a digit separates words, so
//	snake_case, kebab-case, dotted and space separated input all split.
//	A case change from lower (or digit) to upper starts a new word, and an
//	upper-case run followed by a lower-case letter ends before its last
//	rune ("HTMLParser" -> "HTML", "Parser").
//
// Examples:
//
//	Words("toggle-switch") // ["toggle", "switch"]
//	Words("UserCard")      // ["User", "Card"]
//	Words("user2Card")     // ["user2", "Card"]
func Words(s string) []string {
	var words []string
	current := make([]rune, 0, len(s))

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			if len(current) > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					flush()
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					flush()
				}
			}
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	return words
}
