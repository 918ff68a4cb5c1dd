// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sfc

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
)

// HTML tree-sitter node types used to find script elements.
const (
	htmlNodeScriptElement        = "script_element"
	htmlNodeStartTag             = "start_tag"
	htmlNodeEndTag               = "end_tag"
	htmlNodeAttribute            = "attribute"
	htmlNodeAttributeName        = "attribute_name"
	htmlNodeAttributeValue       = "attribute_value"
	htmlNodeQuotedAttributeValue = "quoted_attribute_value"
	htmlNodeRawText              = "raw_text"
	htmlNodeERROR                = "ERROR"
)

// Parse finds the top-level script blocks of a component file.
//
// Description:
//
//	Parses source with the tree-sitter HTML grammar and inspects the
//	document's direct children (and the children of top-level ERROR nodes,
//	which tree-sitter emits around template markup it cannot fully
//	understand). Script elements nested inside other elements are ignored.
//	Template or style syntax problems are not errors: only the script
//	blocks matter here.
//
// Inputs:
//
//	ctx      - Context for cancellation.
//	source   - The whole component file.
//	filename - Recorded on the Descriptor for diagnostics.
//
// Outputs:
//
//	*Descriptor - Never nil on success.
//	error       - Non-nil only when tree-sitter fails or ctx is done.
//
// Thread Safety: Safe for concurrent use. Each call creates its own parser.
func Parse(ctx context.Context, source []byte, filename string) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sfc parse canceled: %w", err)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(html.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	desc := &Descriptor{Filename: filename}

	root := tree.RootNode()
	if root == nil {
		return desc, nil
	}

	for _, node := range topLevelScripts(root) {
		block := readBlock(node, source)
		if block.Setup {
			if desc.ScriptSetup != nil {
				desc.Warnings = append(desc.Warnings, "duplicate <script setup> ignored")
				continue
			}
			desc.ScriptSetup = block
			continue
		}
		if desc.Script != nil {
			desc.Warnings = append(desc.Warnings, "duplicate <script> ignored")
			continue
		}
		desc.Script = block
	}

	return desc, nil
}

func topLevelScripts(root *sitter.Node) []*sitter.Node {
	var scripts []*sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case htmlNodeScriptElement:
			scripts = append(scripts, child)
		case htmlNodeERROR:
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if gc := child.NamedChild(j); gc.Type() == htmlNodeScriptElement {
					scripts = append(scripts, gc)
				}
			}
		}
	}
	return scripts
}

func readBlock(node *sitter.Node, source []byte) *Block {
	block := &Block{Attrs: make(map[string]string)}

	var startTag, endTag, raw *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case htmlNodeStartTag:
			startTag = child
		case htmlNodeEndTag:
			endTag = child
		case htmlNodeRawText:
			raw = child
		}
	}

	if startTag != nil {
		readAttributes(startTag, source, block.Attrs)
	}

	switch {
	case raw != nil:
		block.Start = int(raw.StartByte())
		block.End = int(raw.EndByte())
	case startTag != nil:
		block.Start = int(startTag.EndByte())
		block.End = block.Start
		if endTag != nil {
			block.End = int(endTag.StartByte())
		}
	default:
		block.Start = int(node.StartByte())
		block.End = block.Start
	}
	block.Content = string(source[block.Start:block.End])

	_, block.Setup = block.Attrs["setup"]
	block.Lang = block.Attrs["lang"]
	block.Src = block.Attrs["src"]

	return block
}

// readAttributes collects attributes by lowercased name. Valueless
// attributes such as "setup" map to the empty string.
func readAttributes(tag *sitter.Node, source []byte, attrs map[string]string) {
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		attr := tag.NamedChild(i)
		if attr.Type() != htmlNodeAttribute {
			continue
		}

		var name, value string
		for j := 0; j < int(attr.NamedChildCount()); j++ {
			part := attr.NamedChild(j)
			switch part.Type() {
			case htmlNodeAttributeName:
				name = strings.ToLower(part.Content(source))
			case htmlNodeAttributeValue:
				value = part.Content(source)
			case htmlNodeQuotedAttributeValue:
				for k := 0; k < int(part.NamedChildCount()); k++ {
					if v := part.NamedChild(k); v.Type() == htmlNodeAttributeValue {
						value = v.Content(source)
					}
				}
			}
		}

		if name == "" {
			continue
		}
		if _, seen := attrs[name]; !seen {
			attrs[name] = value
		}
	}
}
