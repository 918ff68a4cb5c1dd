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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/sfcname/services/sfcname/naming"
)

// MaxFileSize caps the size of a config file.
const MaxFileSize = 64 * 1024

var validate = validator.New(validator.WithRequiredStructEnabled())

// FileConfig is the serialized option set, read from YAML on disk or from
// the JSON body of a transform request.
//
// A nil slice means "use the default"; an empty slice means "no filters".
type FileConfig struct {
	// Include lists patterns a file id must match. re:/body/flags or substring.
	Include []string `yaml:"include" json:"include,omitempty" validate:"omitempty,dive,required"`

	// Exclude lists patterns that skip a file id. Checked before Include.
	Exclude []string `yaml:"exclude" json:"exclude,omitempty" validate:"omitempty,dive,required"`

	// NameCase is pascal, camel or kebab. Empty means pascal.
	NameCase string `yaml:"name_case" json:"name_case,omitempty" validate:"omitempty,oneof=pascal camel kebab"`
}

// Build validates fc and resolves it into a Config.
//
// Outputs:
//
//	Config - The resolved options.
//	error  - Wraps ErrInvalidConfig on any validation failure.
func (fc FileConfig) Build() (Config, error) {
	fc.NameCase = strings.ToLower(strings.TrimSpace(fc.NameCase))

	if err := validate.Struct(fc); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, describeValidation(err))
	}

	var opts []Option
	if fc.Include != nil {
		opts = append(opts, WithInclude(fc.Include...))
	}
	if fc.Exclude != nil {
		opts = append(opts, WithExclude(fc.Exclude...))
	}
	opts = append(opts, WithNameCase(naming.ParseCase(fc.NameCase)))

	return New(opts...)
}

// Merge overlays the fields set in other onto fc.
func (fc FileConfig) Merge(other FileConfig) FileConfig {
	if other.Include != nil {
		fc.Include = other.Include
	}
	if other.Exclude != nil {
		fc.Exclude = other.Exclude
	}
	if other.NameCase != "" {
		fc.NameCase = other.NameCase
	}
	return fc
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value()))
		case "required":
			parts = append(parts, fmt.Sprintf("%s must not be empty", fe.Namespace()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// LoadBytes parses YAML config data.
func LoadBytes(data []byte) (FileConfig, error) {
	var fc FileConfig
	if len(data) > MaxFileSize {
		return fc, fmt.Errorf("%w: config exceeds maximum size (%d > %d)", ErrInvalidConfig, len(data), MaxFileSize)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("%w: parsing YAML: %v", ErrInvalidConfig, err)
	}
	return fc, nil
}

// Load reads a YAML config file.
//
// Description:
//
//	A missing file is not an error; the zero FileConfig is returned so
//	every option takes its default.
//
// Inputs:
//
//	path - Config file path. Empty means no file.
//
// Outputs:
//
//	FileConfig - The parsed options.
//	error      - Non-nil if the file exists but cannot be read or parsed.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", slog.String("path", path))
		return FileConfig{}, nil
	}
	if err != nil {
		return FileConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	fc, err := LoadBytes(data)
	if err != nil {
		return FileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}

	slog.Debug("config loaded",
		slog.String("path", path),
		slog.Int("include", len(fc.Include)),
		slog.Int("exclude", len(fc.Exclude)),
		slog.String("name_case", fc.NameCase),
	)
	return fc, nil
}
