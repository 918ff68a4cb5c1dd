// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package naming derives component names from component file paths.
package naming

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ComponentExt is the extension stripped from component file names.
const ComponentExt = ".vue"

// indexBase is the file base name that defers to the enclosing directory.
const indexBase = "index"

// ErrEmptyName indicates a path from which no component name can be derived.
var ErrEmptyName = errors.New("empty component name")

// Derive computes the component name for filePath.
//
// Description:
//
//	Takes the base name of filePath without ComponentExt. If that base is
//	"index" (any casing) the enclosing directory name is used instead, which
//	covers the ComponentName/index.vue layout. The chosen segment is then
//	formatted with c.
//
// Inputs:
//
//	filePath - Component file path or bundler module id. Backslashes are
//	           treated as separators.
//	c        - Casing to apply. Unknown values behave like CasePascal.
//
// Outputs:
//
//	string - The component name, never empty on success.
//	error  - ErrEmptyName (wrapped) when the base name, the parent directory
//	         of an index file, or the formatted result is empty.
//
// Example:
//
//	name, _ := Derive("components/UserCard/index.vue", CasePascal) // "UserCard"
//	name, _ = Derive("widgets/toggle-switch.vue", CaseKebab)       // "toggle-switch"
//
// Thread Safety: Safe for concurrent use (pure function).
func Derive(filePath string, c Case) (string, error) {
	p := strings.ReplaceAll(filePath, `\`, "/")

	segment := strings.TrimSuffix(path.Base(p), ComponentExt)
	if strings.EqualFold(segment, indexBase) {
		segment = path.Base(path.Dir(p))
	}

	if segment == "" || segment == "." || segment == "/" {
		return "", fmt.Errorf("%w: no usable segment in %q", ErrEmptyName, filePath)
	}

	name := c.Apply(segment)
	if name == "" {
		return "", fmt.Errorf("%w: segment %q formats to nothing", ErrEmptyName, segment)
	}

	return name, nil
}
