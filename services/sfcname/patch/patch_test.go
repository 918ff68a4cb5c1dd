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
	"context"
	"testing"

	"github.com/AleutianAI/sfcname/services/sfcname/ast"
)

// =============================================================================
// Test Helpers
// =============================================================================

func locate(t *testing.T, src string, lang ast.Language) Match {
	t.Helper()

	tree, err := ast.NewScriptParser().Parse(context.Background(), []byte(src), lang)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	defer tree.Close()

	return Locate(tree)
}

func apply(src string, ins *Insertion) string {
	if ins == nil {
		return src
	}
	return src[:ins.Offset] + ins.Text + src[ins.Offset:]
}

// =============================================================================
// Locate
// =============================================================================

func TestLocate_Shapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Shape
	}{
		{"no call", "const x = 1;", ShapeAbsent},
		{"empty script", "", ShapeAbsent},
		{"empty call", "defineOptions();", ShapeEmptyCall},
		{"empty call with comment", "defineOptions(/* later */)", ShapeEmptyCall},
		{"unrelated property", "defineOptions({ inheritAttrs: false })", ShapeObjectArgNoName},
		{"empty object", "defineOptions({})", ShapeObjectArgNoName},
		{"object with comment only", "defineOptions({ /* todo */ })", ShapeObjectArgNoName},
		{"identifier key", `defineOptions({ name: "Foo" })`, ShapeObjectArgHasName},
		{"single quoted key", `defineOptions({ 'name': 'Foo' })`, ShapeObjectArgHasName},
		{"double quoted key", `defineOptions({ "name": 'Foo' })`, ShapeObjectArgHasName},
		{"unicode escaped key", `defineOptions({ 'na\u006de': 'Foo' })`, ShapeObjectArgHasName},
		{"braced unicode escaped key", `defineOptions({ "\u{6e}ame": 'Foo' })`, ShapeObjectArgHasName},
		{"hex escaped key", `defineOptions({ 'n\x61me': 'Foo' })`, ShapeObjectArgHasName},
		{"identity escaped key", `defineOptions({ 'n\ame': 'Foo' })`, ShapeObjectArgHasName},
		{"escape spelling another key", `defineOptions({ 'name\u0073': 'Foo' })`, ShapeObjectArgNoName},
		{"shorthand", "const name = 'Foo'; defineOptions({ name })", ShapeObjectArgHasName},
		{"method", "defineOptions({ name() { return 'Foo' } })", ShapeObjectArgHasName},
		{"getter", "defineOptions({ get name() { return 'Foo' } })", ShapeObjectArgHasName},
		{"name after others", "defineOptions({ inheritAttrs: false, name: 'Foo' })", ShapeObjectArgHasName},
		{"computed key", `defineOptions({ ["name"]: "Foo" })`, ShapeObjectArgNoName},
		{"nested name only", "defineOptions({ meta: { name: 'Foo' } })", ShapeObjectArgNoName},
		{"spread inside object", "defineOptions({ ...base })", ShapeObjectArgNoName},
		{"identifier argument", "defineOptions(options)", ShapeNonObjectArg},
		{"spread argument", "defineOptions(...options)", ShapeNonObjectArg},
		{"call argument", "defineOptions(makeOptions())", ShapeNonObjectArg},
		{"first argument decides", "defineOptions(options, { name: 'x' })", ShapeNonObjectArg},
		{"member callee", "vue.defineOptions({})", ShapeAbsent},
		{"optional call", "defineOptions?.({})", ShapeAbsent},
		{"other callee", "defineProps({})", ShapeAbsent},
		{"inside function", "function setup() { defineOptions({}) }", ShapeAbsent},
		{"inside block", "{ defineOptions({}) }", ShapeAbsent},
		{"inside conditional", "if (dev) defineOptions({})", ShapeAbsent},
		{"assigned result", "const o = defineOptions({})", ShapeAbsent},
		{"parenthesized", "(defineOptions({}))", ShapeAbsent},
		{"tagged template", "defineOptions`x`", ShapeAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := locate(t, tt.src, ast.LanguageJavaScript)
			if m.Shape != tt.want {
				t.Errorf("shape for %q: expected %s, got %s", tt.src, tt.want, m.Shape)
			}
		})
	}
}

func TestLocate_Spans(t *testing.T) {
	src := "const a = 1;\ndefineOptions({ inheritAttrs: false });\n"
	m := locate(t, src, ast.LanguageJavaScript)

	if m.Shape != ShapeObjectArgNoName {
		t.Fatalf("expected %s, got %s", ShapeObjectArgNoName, m.Shape)
	}
	if got := src[m.Call.Start:m.Call.End]; got != "defineOptions({ inheritAttrs: false })" {
		t.Errorf("unexpected call span %q", got)
	}
	if got := src[m.Arg.Start:m.Arg.End]; got != "{ inheritAttrs: false }" {
		t.Errorf("unexpected argument span %q", got)
	}
	if m.Count != 1 {
		t.Errorf("expected count 1, got %d", m.Count)
	}
}

func TestLocate_FirstMatchWins(t *testing.T) {
	src := "defineOptions({ inheritAttrs: false })\ndefineOptions({ name: 'Second' })\n"
	m := locate(t, src, ast.LanguageJavaScript)

	if m.Shape != ShapeObjectArgNoName {
		t.Errorf("expected the first call to decide, got %s", m.Shape)
	}
	if m.Count != 2 {
		t.Errorf("expected count 2, got %d", m.Count)
	}
	if m.Call.Start != 0 {
		t.Errorf("expected first call at 0, got %d", m.Call.Start)
	}
}

func TestLocate_TypeScript(t *testing.T) {
	src := "interface Opts { inheritAttrs?: boolean }\ndefineOptions<Opts>({ inheritAttrs: false })\n"
	m := locate(t, src, ast.LanguageTypeScript)

	if m.Shape != ShapeObjectArgNoName {
		t.Errorf("expected %s, got %s", ShapeObjectArgNoName, m.Shape)
	}
	if got := src[m.Arg.Start:m.Arg.End]; got != "{ inheritAttrs: false }" {
		t.Errorf("unexpected argument span %q", got)
	}

	m = locate(t, "defineOptions({ name: 'A' } as const)", ast.LanguageTypeScript)
	if m.Shape != ShapeNonObjectArg {
		t.Errorf("expected %s for an as-expression, got %s", ShapeNonObjectArg, m.Shape)
	}
}

func TestLocate_NilTree(t *testing.T) {
	if got := Locate(nil).Shape; got != ShapeAbsent {
		t.Errorf("expected %s, got %s", ShapeAbsent, got)
	}
}

// =============================================================================
// Escapes
// =============================================================================

func TestStringValue(t *testing.T) {
	tests := []struct {
		lit  string
		want string
	}{
		{`'name'`, "name"},
		{`"name"`, "name"},
		{`''`, ""},
		{`'na\u006de'`, "name"},
		{`'\u{1F600}'`, "\U0001F600"},
		{`'n\x61me'`, "name"},
		{`'a\nb\tc'`, "a\nb\tc"},
		{`'it\'s'`, "it's"},
		{`'a\\b'`, `a\b`},
		{"'na\\\nme'", "name"},
		{"'na\\\r\nme'", "name"},
		{`'\q'`, "q"},
		{`'\u00'`, "u00"},
		{`'\xZZ'`, "xZZ"},
		{`'\u{110000}'`, "u{110000}"},
		{`'end\'`, `end\`},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			if got := stringValue(tt.lit); got != tt.want {
				t.Errorf("stringValue(%s): expected %q, got %q", tt.lit, tt.want, got)
			}
		})
	}
}

func TestDecodeEscapes_Identifier(t *testing.T) {
	if got := decodeEscapes(`na\u006de`, false); got != "name" {
		t.Errorf("expected unicode escape to decode, got %q", got)
	}
	if got := decodeEscapes(`\u{6e}ame`, false); got != "name" {
		t.Errorf("expected braced escape to decode, got %q", got)
	}
	if got := decodeEscapes(`n\x61me`, false); got != `n\x61me` {
		t.Errorf("identifiers only admit unicode escapes, got %q", got)
	}
	if got := decodeEscapes("plain", false); got != "plain" {
		t.Errorf("expected plain identifier unchanged, got %q", got)
	}
}

// =============================================================================
// Plan
// =============================================================================

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		result string
	}{
		{
			name:   "absent",
			src:    "const x = 1;",
			result: "\ndefineOptions({ name: \"UserCard\" });\nconst x = 1;",
		},
		{
			name:   "empty call",
			src:    "defineOptions();",
			result: `defineOptions({ name: "UserCard" });`,
		},
		{
			name:   "unrelated property",
			src:    "defineOptions({ inheritAttrs: false })",
			result: `defineOptions({name: "UserCard", inheritAttrs: false })`,
		},
		{
			name:   "empty object",
			src:    "defineOptions({})",
			result: `defineOptions({name: "UserCard",})`,
		},
		{
			name:   "existing name",
			src:    `defineOptions({ name: "Foo" })`,
			result: `defineOptions({ name: "Foo" })`,
		},
		{
			name:   "existing escaped name",
			src:    `defineOptions({ 'na\u006de': "Foo" })`,
			result: `defineOptions({ 'na\u006de': "Foo" })`,
		},
		{
			name:   "non object",
			src:    "defineOptions(options)",
			result: "defineOptions(options)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := locate(t, tt.src, ast.LanguageJavaScript)
			if got := apply(tt.src, Plan(m, "UserCard")); got != tt.result {
				t.Errorf("expected %q, got %q", tt.result, got)
			}
		})
	}
}

func TestPlan_NoEditShapes(t *testing.T) {
	if ins := Plan(Match{Shape: ShapeObjectArgHasName}, "A"); ins != nil {
		t.Errorf("expected no insertion for a named object, got %+v", ins)
	}
	if ins := Plan(Match{Shape: ShapeNonObjectArg}, "A"); ins != nil {
		t.Errorf("expected no insertion for a non-object argument, got %+v", ins)
	}
}

func TestPlan_QuotesName(t *testing.T) {
	ins := Plan(Match{Shape: ShapeAbsent}, `we"ird`)
	if ins == nil {
		t.Fatal("expected an insertion")
	}
	if want := "\ndefineOptions({ name: \"we\\\"ird\" });\n"; ins.Text != want {
		t.Errorf("expected %q, got %q", want, ins.Text)
	}
}

func TestPlan_Idempotent(t *testing.T) {
	sources := []string{
		"const x = 1;",
		"",
		"defineOptions();",
		"defineOptions(  )",
		"defineOptions({})",
		"defineOptions({\n  inheritAttrs: false,\n})\n",
		"import { ref } from 'vue'\nconst open = ref(false)\ndefineOptions({ inheritAttrs: false })\n",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			once := apply(src, Plan(locate(t, src, ast.LanguageJavaScript), "ToggleSwitch"))

			m := locate(t, once, ast.LanguageJavaScript)
			if m.Shape != ShapeObjectArgHasName {
				t.Fatalf("after one pass %q: expected %s, got %s", once, ShapeObjectArgHasName, m.Shape)
			}
			if m.Count != 1 {
				t.Errorf("expected a single call after one pass, got %d", m.Count)
			}

			if twice := apply(once, Plan(m, "ToggleSwitch")); twice != once {
				t.Errorf("second pass changed the source:\n%q\n%q", once, twice)
			}
		})
	}
}

func TestShape_String(t *testing.T) {
	tests := map[Shape]string{
		ShapeAbsent:       "absent",
		ShapeNonObjectArg: "non_object_arg",
		Shape(42):         "unknown",
	}
	for shape, want := range tests {
		if got := shape.String(); got != want {
			t.Errorf("Shape(%d).String(): expected %q, got %q", int(shape), want, got)
		}
	}
}
