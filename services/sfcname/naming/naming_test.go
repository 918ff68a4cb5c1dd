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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"toggle-switch", []string{"toggle", "switch"}},
		{"UserCard", []string{"User", "Card"}},
		{"userCard", []string{"user", "Card"}},
		{"HTMLParser", []string{"HTML", "Parser"}},
		{"user_card.item list", []string{"user", "card", "item", "list"}},
		{"user2Card", []string{"user2", "Card"}},
		{"--", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestCase_Apply(t *testing.T) {
	tests := []struct {
		in     string
		pascal string
		camel  string
		kebab  string
	}{
		{"toggle-switch", "ToggleSwitch", "toggleSwitch", "toggle-switch"},
		{"UserCard", "UserCard", "userCard", "user-card"},
		{"user_profile", "UserProfile", "userProfile", "user-profile"},
		{"button", "Button", "button", "button"},
		{"HTMLParser", "HTMLParser", "htmlParser", "html-parser"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, CasePascal.Apply(tt.in))
			assert.Equal(t, tt.camel, CaseCamel.Apply(tt.in))
			assert.Equal(t, tt.kebab, CaseKebab.Apply(tt.in))
		})
	}
}

func TestParseCase(t *testing.T) {
	assert.Equal(t, CasePascal, ParseCase(""))
	assert.Equal(t, CasePascal, ParseCase("snake"))
	assert.Equal(t, CaseCamel, ParseCase("camel"))
	assert.Equal(t, CaseKebab, ParseCase(" Kebab "))
	assert.Equal(t, "AB", Case("shouty").Apply("a-b"))
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		path string
		c    Case
		want string
	}{
		{"index uses parent dir", "components/UserCard/index.vue", CasePascal, "UserCard"},
		{"index is case-insensitive", "src/user-card/Index.vue", CasePascal, "UserCard"},
		{"plain file kebab", "widgets/toggle-switch.vue", CaseKebab, "toggle-switch"},
		{"plain file camel", "/abs/src/ToggleSwitch.vue", CaseCamel, "toggleSwitch"},
		{"windows separators", `C:\app\src\nav-bar\index.vue`, CasePascal, "NavBar"},
		{"no extension", "src/Modal", CasePascal, "Modal"},
		{"index-like name", "src/indexer.vue", CasePascal, "Indexer"},
		{"relative index", "UserCard/index.vue", CasePascal, "UserCard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Derive(tt.path, tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerive_Degenerate(t *testing.T) {
	for _, p := range []string{"", ".vue", "src/.vue", "index.vue", "/index.vue", "src/---.vue"} {
		t.Run(p, func(t *testing.T) {
			_, err := Derive(p, CasePascal)
			if !errors.Is(err, ErrEmptyName) {
				t.Fatalf("Derive(%q) error = %v, want ErrEmptyName", p, err)
			}
		})
	}
}

func TestDerive_Properties(t *testing.T) {
	segment := rapid.StringMatching(`[a-z][a-z0-9]{0,6}(-[a-z][a-z0-9]{0,6}){0,3}`)

	rapid.Check(t, func(t *rapid.T) {
		dir := segment.Draw(t, "dir")
		base := segment.Filter(func(s string) bool { return s != indexBase }).Draw(t, "base")
		c := rapid.SampledFrom([]Case{CasePascal, CaseCamel, CaseKebab}).Draw(t, "case")

		got, err := Derive("src/"+dir+"/"+base+ComponentExt, c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.Apply(base) {
			t.Fatalf("plain file: got %q, want %q", got, c.Apply(base))
		}

		got, err = Derive("src/"+dir+"/index"+ComponentExt, c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.Apply(dir) {
			t.Fatalf("index file: got %q, want %q", got, c.Apply(dir))
		}
	})
}
