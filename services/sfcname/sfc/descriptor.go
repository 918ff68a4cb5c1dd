// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sfc locates the script blocks of a single-file component.
package sfc

// Block is one top-level <script> element of a component file.
//
// Start and End are absolute byte offsets of Content within the whole
// file, so Content == source[Start:End]. An empty element has
// Start == End, positioned right after the opening tag.
type Block struct {
	Content string
	Lang    string
	Setup   bool
	Src     string
	Attrs   map[string]string
	Start   int
	End     int
}

// External reports whether the block loads its code from a src attribute.
func (b *Block) External() bool {
	return b.Src != ""
}

// Descriptor lists the script blocks found in a component file.
//
// Warnings collects non-fatal structural problems such as a duplicate
// <script setup>; the first occurrence of each kind is kept.
type Descriptor struct {
	Filename    string
	Script      *Block
	ScriptSetup *Block
	Warnings    []string
}
