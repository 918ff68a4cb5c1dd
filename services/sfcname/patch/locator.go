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
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/sfcname/services/sfcname/ast"
)

// nameKey is the option property that carries the component name.
const nameKey = "name"

// Locate classifies the options call of a parsed script.
//
// Description:
//
//	Only the program's direct statements are scanned. A statement counts
//	when it is an expression statement whose expression is a plain (not
//	optional-chained) call of the identifier OptionsCallee with a
//	parenthesized argument list. Calls nested in functions, blocks,
//	conditionals or other expressions never count. The first matching
//	statement is classified; later ones are only counted in Match.Count.
//
//	When the call has arguments, the first one decides the shape. An
//	object literal is searched for a direct property whose key is the
//	identifier or string literal "name" (pairs, shorthand properties and
//	methods/accessors). Computed keys never match.
//
// Inputs:
//
//	tree - A successfully parsed script. A nil tree yields ShapeAbsent.
//
// Outputs:
//
//	Match - Always valid; absence is a shape, not an error.
//
// Thread Safety: Safe for concurrent use on distinct trees.
func Locate(tree *ast.SyntaxTree) Match {
	m := Match{Shape: ShapeAbsent}

	root := tree.Root()
	if root == nil {
		return m
	}
	content := tree.Content()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		call := optionsCall(root.NamedChild(i), content)
		if call == nil {
			continue
		}
		m.Count++
		if m.Count == 1 {
			classifyCall(call, content, &m)
		}
	}

	return m
}

// optionsCall returns the call expression of stmt if stmt is a bare
// OptionsCallee(...) statement.
func optionsCall(stmt *sitter.Node, content []byte) *sitter.Node {
	if stmt == nil || stmt.Type() != ast.NodeExpressionStatement {
		return nil
	}

	expr := firstNamedChild(stmt)
	if expr == nil || expr.Type() != ast.NodeCallExpression {
		return nil
	}
	if expr.ChildByFieldName(ast.FieldOptionalChain) != nil {
		return nil
	}

	callee := expr.ChildByFieldName(ast.FieldFunction)
	if callee == nil || callee.Type() != ast.NodeIdentifier || callee.Content(content) != OptionsCallee {
		return nil
	}

	args := expr.ChildByFieldName(ast.FieldArguments)
	if args == nil || args.Type() != ast.NodeArguments {
		return nil
	}

	return expr
}

func classifyCall(call *sitter.Node, content []byte, m *Match) {
	m.Call = ast.SpanOf(call)

	args := namedChildren(call.ChildByFieldName(ast.FieldArguments))
	if len(args) == 0 {
		m.Shape = ShapeEmptyCall
		return
	}

	arg := args[0]
	m.Arg = ast.SpanOf(arg)

	switch {
	case arg.Type() != ast.NodeObject:
		m.Shape = ShapeNonObjectArg
	case hasNameProperty(arg, content):
		m.Shape = ShapeObjectArgHasName
	default:
		m.Shape = ShapeObjectArgNoName
	}
}

func hasNameProperty(obj *sitter.Node, content []byte) bool {
	for _, prop := range namedChildren(obj) {
		switch prop.Type() {
		case ast.NodePair:
			if isNameKey(prop.ChildByFieldName(ast.FieldKey), content) {
				return true
			}
		case ast.NodeMethodDefinition:
			if isNameKey(prop.ChildByFieldName(ast.FieldName), content) {
				return true
			}
		case ast.NodeShorthandPropertyIdentifier:
			if decodeEscapes(prop.Content(content), false) == nameKey {
				return true
			}
		}
	}
	return false
}

func isNameKey(key *sitter.Node, content []byte) bool {
	if key == nil {
		return false
	}
	switch key.Type() {
	case ast.NodePropertyIdentifier:
		return decodeEscapes(key.Content(content), false) == nameKey
	case ast.NodeString:
		return stringValue(key.Content(content)) == nameKey
	default:
		return false
	}
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == ast.NodeComment {
			continue
		}
		children = append(children, child)
	}
	return children
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if children := namedChildren(n); len(children) > 0 {
		return children[0]
	}
	return nil
}
