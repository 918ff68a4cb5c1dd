// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package patch finds the component options call in a script and plans the
// single insertion that gives the component a name.
package patch

import "github.com/AleutianAI/sfcname/services/sfcname/ast"

// OptionsCallee is the compile-time macro that carries component options.
const OptionsCallee = "defineOptions"

// Shape classifies the top-level options call of a script.
type Shape int

const (
	// ShapeAbsent means no top-level options call exists.
	ShapeAbsent Shape = iota

	// ShapeEmptyCall means the call has no arguments.
	ShapeEmptyCall

	// ShapeObjectArgNoName means the first argument is an object literal
	// without a "name" property.
	ShapeObjectArgNoName

	// ShapeObjectArgHasName means the first argument is an object literal
	// that already declares "name".
	ShapeObjectArgHasName

	// ShapeNonObjectArg means the first argument is not an object literal.
	ShapeNonObjectArg
)

var shapeNames = [...]string{
	ShapeAbsent:           "absent",
	ShapeEmptyCall:        "empty_call",
	ShapeObjectArgNoName:  "object_arg_no_name",
	ShapeObjectArgHasName: "object_arg_has_name",
	ShapeNonObjectArg:     "non_object_arg",
}

// String returns a label-safe name for s.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// Match is the result of locating the options call.
//
// Call and Arg are byte ranges into the script text the tree was parsed
// from. Call is zero for ShapeAbsent; Arg is set only for the two object
// shapes and ShapeNonObjectArg. Count is the number of top-level options
// calls seen; only the first one is classified.
type Match struct {
	Shape Shape
	Call  ast.Span
	Arg   ast.Span
	Count int
}
