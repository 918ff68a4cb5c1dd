// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package server exposes the transform over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/sfcname/services/sfcname/ast"
	"github.com/AleutianAI/sfcname/services/sfcname/config"
	"github.com/AleutianAI/sfcname/services/sfcname/naming"
	"github.com/AleutianAI/sfcname/services/sfcname/transform"
)

// MaxRequestBytes caps the size of a transform request body.
const MaxRequestBytes = 4 << 20

// Handlers serves the sfcname endpoints.
//
// Thread Safety: Safe for concurrent use.
type Handlers struct {
	transformer *transform.Transformer
	base        config.FileConfig
	version     string
}

// NewHandlers creates the handlers.
//
// Inputs:
//
//	t       - The transformer. Must not be nil.
//	base    - Server-wide options; a request's config is merged over it.
//	version - Reported by the health endpoint. May be empty.
func NewHandlers(t *transform.Transformer, base config.FileConfig, version string) *Handlers {
	return &Handlers{transformer: t, base: base, version: version}
}

// HandleTransform injects a component name into the posted file.
//
// Request Body:
//
//	TransformRequest
//
// Response:
//
//	200 OK: TransformResponse (changed or not)
//	400 Bad Request: Malformed body, missing file_id or invalid config
//	413 Request Entity Too Large: Body exceeds MaxRequestBytes
//	422 Unprocessable Entity: Unsupported script language or no usable name
//	500 Internal Server Error: Anything else
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleTransform(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleTransform")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBytes)

	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:     "request body too large",
				Code:      "REQUEST_TOO_LARGE",
				RequestID: requestID,
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid request: " + err.Error(),
			Code:      "INVALID_REQUEST",
			RequestID: requestID,
		})
		return
	}

	fc := h.base
	if req.Config != nil {
		fc = fc.Merge(*req.Config)
	}
	cfg, err := fc.Build()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     err.Error(),
			Code:      "INVALID_CONFIG",
			RequestID: requestID,
		})
		return
	}

	res, err := h.transformer.Transform(c.Request.Context(), req.FileID, req.Code, cfg)
	if err != nil {
		status, code := classifyError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("transform failed",
				slog.String("file", req.FileID),
				slog.String("error", err.Error()),
			)
		}
		c.JSON(status, ErrorResponse{
			Error:     err.Error(),
			Code:      code,
			RequestID: requestID,
		})
		return
	}

	resp := TransformResponse{
		Changed: res.Changed,
		Code:    res.Code,
		Map:     res.Map,
		Name:    res.Name,
		Reason:  string(res.Reason),
	}
	if res.Classified() {
		resp.Shape = res.Shape.String()
	}

	logger.Debug("transform complete",
		slog.String("file", req.FileID),
		slog.Bool("changed", res.Changed),
		slog.String("reason", string(res.Reason)),
	)

	c.JSON(http.StatusOK, resp)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, transform.ErrMissingFileID):
		return http.StatusBadRequest, "MISSING_FILE_ID"
	case errors.Is(err, ast.ErrUnsupportedLanguage), errors.Is(err, naming.ErrEmptyName):
		return http.StatusUnprocessableEntity, "INPUT_MALFORMED"
	default:
		return http.StatusInternalServerError, "TRANSFORM_FAILED"
	}
}

// HandleHealth reports liveness.
//
// Response:
//
//	200 OK: HealthResponse
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}
