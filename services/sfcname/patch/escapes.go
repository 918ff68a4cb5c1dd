// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package patch

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringValue decodes a quoted string literal, so 'name', "name" and
// 'na\u006de' all yield name.
func stringValue(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	return decodeEscapes(lit[1:len(lit)-1], true)
}

// decodeEscapes resolves backslash escapes. Identifiers only admit unicode
// escapes; string literals admit the full set, including line
// continuations. A malformed escape is kept as written.
func decodeEscapes(s string, literal bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		esc := s[i+1]
		if esc == 'u' {
			if r, n, ok := unicodeEscape(s[i+2:]); ok {
				b.WriteRune(r)
				i += 2 + n
				continue
			}
		}
		if !literal {
			b.WriteByte(s[i])
			i++
			continue
		}

		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+4 <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteByte('x')
		case '\n':
		case '\r':
			if i+2 < len(s) && s[i+2] == '\n' {
				i++
			}
		default:
			r, size := utf8.DecodeRuneInString(s[i+1:])
			if r != '\u2028' && r != '\u2029' {
				b.WriteString(s[i+1 : i+1+size])
			}
			i += 1 + size
			continue
		}
		i += 2
	}

	return b.String()
}

// unicodeEscape parses the part of a \u escape after the "u": either four
// hex digits or a braced code point.
func unicodeEscape(s string) (r rune, n int, ok bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}

	if len(s) < 4 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), 4, true
}
