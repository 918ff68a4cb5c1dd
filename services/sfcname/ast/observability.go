// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// astTracerName is the OTel tracer name for script parsing.
const astTracerName = "sfcname.ast"

var (
	// parseDuration measures script parse latency.
	//
	// Labels:
	//   - language: "javascript", "typescript", "tsx"
	//   - status: "success", "syntax_error", "error"
	parseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sfcname",
			Subsystem: "ast",
			Name:      "parse_duration_seconds",
			Help:      "Duration of script block parses in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"language", "status"},
	)
)

func startParseSpan(ctx context.Context, lang Language, size int) (context.Context, trace.Span) {
	return otel.Tracer(astTracerName).Start(ctx, "ast.ScriptParser.Parse",
		trace.WithAttributes(
			attribute.String("language", string(lang)),
			attribute.Int("size_bytes", size),
		),
	)
}

// recordParse records metrics and span status for a finished parse.
// A syntax error is an expected outcome and does not mark the span failed.
func recordParse(_ context.Context, span trace.Span, lang Language, d time.Duration, err error) {
	status := parseStatus(err)
	parseDuration.WithLabelValues(string(lang), status).Observe(d.Seconds())

	span.SetAttributes(attribute.String("status", status))
	if err != nil && status == "error" {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func parseStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSyntax):
		return "syntax_error"
	default:
		return "error"
	}
}
