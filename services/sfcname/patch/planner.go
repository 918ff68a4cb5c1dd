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
	"fmt"
	"strconv"
)

// Insertion inserts Text immediately before byte Offset of the original
// script text. It never removes or replaces existing bytes.
type Insertion struct {
	Text   string
	Offset int
}

// Plan decides the edit that gives the component a name.
//
// Description:
//
//	One rule per shape:
//
//	  ShapeAbsent           insert a full options statement at offset 0
//	  ShapeEmptyCall        insert an object just inside the closing paren
//	  ShapeObjectArgNoName  insert a name property right after the opening brace
//	  ShapeObjectArgHasName no edit, an existing name always wins
//	  ShapeNonObjectArg     no edit, the argument cannot be extended safely
//
//	Offsets are relative to the script text the Match was computed from.
//
// Inputs:
//
//	m    - Result of Locate.
//	name - Component name; written as a double-quoted string literal.
//
// Outputs:
//
//	*Insertion - The edit, or nil when the script must stay unchanged.
//
// Thread Safety: Safe for concurrent use (pure function).
func Plan(m Match, name string) *Insertion {
	lit := strconv.Quote(name)

	switch m.Shape {
	case ShapeAbsent:
		return &Insertion{
			Text:   fmt.Sprintf("\n%s({ name: %s });\n", OptionsCallee, lit),
			Offset: 0,
		}
	case ShapeEmptyCall:
		return &Insertion{
			Text:   fmt.Sprintf("{ name: %s }", lit),
			Offset: m.Call.End - 1,
		}
	case ShapeObjectArgNoName:
		return &Insertion{
			Text:   fmt.Sprintf("name: %s,", lit),
			Offset: m.Arg.Start + 1,
		}
	default:
		return nil
	}
}
