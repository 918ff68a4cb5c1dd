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

// Tree-sitter node types shared by the javascript, typescript and tsx grammars.
//
// Reference: https://github.com/tree-sitter/tree-sitter-javascript
const (
	NodeProgram             = "program"
	NodeExpressionStatement = "expression_statement"
	NodeCallExpression      = "call_expression"
	NodeArguments           = "arguments"
	NodeIdentifier          = "identifier"
	NodeComment             = "comment"

	// Object literal and its members.
	NodeObject                      = "object"
	NodePair                        = "pair"
	NodeMethodDefinition            = "method_definition"
	NodeShorthandPropertyIdentifier = "shorthand_property_identifier"
	NodeSpreadElement               = "spread_element"

	// Property keys.
	NodePropertyIdentifier   = "property_identifier"
	NodeString               = "string"
	NodeComputedPropertyName = "computed_property_name"
)

// Field names used with Node.ChildByFieldName.
const (
	FieldFunction      = "function"
	FieldArguments     = "arguments"
	FieldOptionalChain = "optional_chain"
	FieldKey           = "key"
	FieldName          = "name"
)

// Call expression structure reference
//
// program
// └── expression_statement
//     └── call_expression
//         ├── function: identifier            defineOptions
//         ├── type_arguments (typescript only)
//         └── arguments: arguments
//             ├── (
//             ├── object
//             │   ├── {
//             │   ├── pair
//             │   │   ├── key: property_identifier | string | computed_property_name
//             │   │   └── value: ...
//             │   ├── shorthand_property_identifier
//             │   ├── method_definition (name: property_identifier)
//             │   ├── spread_element
//             │   └── }
//             └── )
