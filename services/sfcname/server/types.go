// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package server

import (
	"github.com/AleutianAI/sfcname/services/sfcname/config"
	"github.com/AleutianAI/sfcname/services/sfcname/splice"
)

// TransformRequest is the body of POST /v1/sfcname/transform.
type TransformRequest struct {
	// FileID identifies the component, usually its path. Required.
	FileID string `json:"file_id" binding:"required"`

	// Code is the full component file text.
	Code string `json:"code"`

	// Config overrides the server's options for this request. Fields left
	// out keep the server value.
	Config *config.FileConfig `json:"config,omitempty"`
}

// TransformResponse is the result of a transform.
type TransformResponse struct {
	// Changed is true when a name was injected.
	Changed bool `json:"changed"`

	// Code is the output text. Equal to the request code when unchanged.
	Code string `json:"code"`

	// Map is the Source Map v3 for the edit. Omitted when unchanged.
	Map *splice.SourceMap `json:"map,omitempty"`

	// Name is the derived component name, when one was derived.
	Name string `json:"name,omitempty"`

	// Shape is the classified defineOptions shape, when the script parsed.
	Shape string `json:"shape,omitempty"`

	// Reason says why the file did or did not change.
	Reason string `json:"reason"`
}

// HealthResponse is returned by GET /v1/sfcname/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}
