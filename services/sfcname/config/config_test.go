// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/sfcname/services/sfcname/naming"
)

// =============================================================================
// Matcher
// =============================================================================

func TestParseMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		id      string
		want    bool
		regex   bool
	}{
		{DefaultInclude, "src/App.vue", true, true},
		{DefaultInclude, "src/App.VUE", true, true},
		{DefaultInclude, "src/App.vue?vue&type=style", false, true},
		{DefaultExclude, "/repo/node_modules/lib/Button.vue", true, true},
		{DefaultExclude, "/repo/src/Button.vue", false, true},
		{`re:/\/legacy\//`, "src/legacy/Old.vue", true, true},
		{`re:/^SRC/`, "src/App.vue", false, true},
		{`re:/^SRC/i`, "src/App.vue", true, true},
		{"widgets/", "src/widgets/Toggle.vue", true, false},
		{"widgets/", "src/widget/Toggle.vue", false, false},
		{"/", "src/App.vue", true, false},
		{"/components/Foo.vue", "/app/src/components/Foo.vue", true, false},
		{"/components/Foo.vue", "/app/src/components/Bar.vue", false, false},
		{"/src/", "/app/src/A.vue", true, false},
		{"/src/", "/app/mysrc/A.vue", false, false},
		{`/\.vue$/i`, "/app/A.vue", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.id, func(t *testing.T) {
			m, err := ParseMatcher(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.id))
			assert.Equal(t, tt.regex, m.IsRegex())
			assert.Equal(t, tt.pattern, m.String())
		})
	}
}

func TestParseMatcher_Errors(t *testing.T) {
	for _, pattern := range []string{"", "re:/a/x", "re:/(unclosed/", "re:", "re:plain", "re:/"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := ParseMatcher(pattern)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMatchers(t *testing.T) {
	ms, err := ParseMatchers([]string{"pages/", `re:/\.vue$/`})
	require.NoError(t, err)

	assert.True(t, ms.Any("src/pages/Home.ts"))
	assert.True(t, ms.Any("src/App.vue"))
	assert.False(t, ms.Any("src/main.ts"))
	assert.False(t, Matchers(nil).Any("src/App.vue"))
	assert.Equal(t, []string{"pages/", `re:/\.vue$/`}, ms.Strings())

	_, err = ParseMatchers([]string{"ok", ""})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// =============================================================================
// Config
// =============================================================================

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, naming.CasePascal, cfg.NameCase())
	assert.Equal(t, []string{DefaultInclude}, cfg.Include().Strings())
	assert.Equal(t, []string{DefaultExclude}, cfg.Exclude().Strings())

	assert.True(t, cfg.Allows("src/components/UserCard/index.vue"))
	assert.False(t, cfg.Allows("/app/node_modules/ui/Button.vue"))
	assert.True(t, cfg.Allows("node_modules/ui/Button.vue"), "the exclude needs a slash before node_modules")
	assert.False(t, cfg.Allows("src/main.ts"))

	assert.Equal(t, Default(), cfg)
}

func TestNew_Options(t *testing.T) {
	cfg, err := New(
		WithInclude("components/"),
		WithExclude(`re:/legacy/i`),
		WithNameCase(naming.CaseKebab),
	)
	require.NoError(t, err)

	assert.Equal(t, naming.CaseKebab, cfg.NameCase())
	assert.True(t, cfg.Allows("src/components/Card.vue"))
	assert.False(t, cfg.Allows("src/components/Legacy/Card.vue"))
	assert.False(t, cfg.Allows("src/pages/Home.vue"))
}

func TestNew_ExcludeBeforeInclude(t *testing.T) {
	cfg, err := New(WithInclude("Card"), WithExclude("Card"))
	require.NoError(t, err)
	assert.False(t, cfg.Allows("Card.vue"))
}

func TestNew_EmptyExcludeDisablesGuard(t *testing.T) {
	cfg, err := New(WithExclude())
	require.NoError(t, err)
	assert.True(t, cfg.Allows("node_modules/ui/Button.vue"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(WithNameCase("shouty"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(WithInclude("/a/q"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestZeroConfig(t *testing.T) {
	var cfg Config
	assert.Equal(t, naming.CasePascal, cfg.NameCase())
	assert.False(t, cfg.Allows("App.vue"))
}

// =============================================================================
// FileConfig
// =============================================================================

func TestFileConfig_Build(t *testing.T) {
	t.Run("zero value uses defaults", func(t *testing.T) {
		cfg, err := FileConfig{}.Build()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("name case normalized", func(t *testing.T) {
		cfg, err := FileConfig{NameCase: " Camel "}.Build()
		require.NoError(t, err)
		assert.Equal(t, naming.CaseCamel, cfg.NameCase())
	})

	t.Run("unknown name case", func(t *testing.T) {
		_, err := FileConfig{NameCase: "snake"}.Build()
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "NameCase")
		assert.Contains(t, err.Error(), "snake")
	})

	t.Run("empty pattern", func(t *testing.T) {
		_, err := FileConfig{Include: []string{""}}.Build()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("explicit empty exclude", func(t *testing.T) {
		cfg, err := FileConfig{Exclude: []string{}}.Build()
		require.NoError(t, err)
		assert.Empty(t, cfg.Exclude())
		assert.True(t, cfg.Allows("node_modules/x/A.vue"))
	})
}

func TestFileConfig_Merge(t *testing.T) {
	base := FileConfig{Include: []string{"a"}, NameCase: "kebab"}
	merged := base.Merge(FileConfig{Exclude: []string{"b"}, NameCase: "camel"})

	assert.Equal(t, []string{"a"}, merged.Include)
	assert.Equal(t, []string{"b"}, merged.Exclude)
	assert.Equal(t, "camel", merged.NameCase)
	assert.Equal(t, "kebab", base.NameCase)
}

func TestLoadBytes(t *testing.T) {
	fc, err := LoadBytes([]byte(`
include:
  - 're:/\.vue$/'
  - /src/
exclude: []
name_case: kebab
`))
	require.NoError(t, err)
	assert.Equal(t, []string{`re:/\.vue$/`, "/src/"}, fc.Include)
	assert.NotNil(t, fc.Exclude)
	assert.Empty(t, fc.Exclude)
	assert.Equal(t, "kebab", fc.NameCase)

	_, err = LoadBytes([]byte("include: [unterminated"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadBytes(make([]byte, MaxFileSize+1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		fc, err := Load(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, fc)
	})

	t.Run("empty path", func(t *testing.T) {
		fc, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, fc)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "sfcname.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name_case: camel\n"), 0o600))

		fc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "camel", fc.NameCase)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name_case: [\n"), 0o600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
