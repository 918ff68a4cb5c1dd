// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package transform

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "sfcname.transform"

const outcomeError = "error"

var (
	// transformTotal counts files by outcome.
	//
	// Labels:
	//   - outcome: a Reason value, or "error"
	transformTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfcname",
			Subsystem: "transform",
			Name:      "total",
			Help:      "Files processed by outcome.",
		},
		[]string{"outcome"},
	)

	// shapeTotal counts classified defineOptions shapes.
	shapeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfcname",
			Subsystem: "transform",
			Name:      "shape_total",
			Help:      "Script setup blocks by defineOptions shape.",
		},
		[]string{"shape"},
	)

	transformDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sfcname",
			Subsystem: "transform",
			Name:      "duration_seconds",
			Help:      "End-to-end duration of a single file transform.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

func startTransformSpan(ctx context.Context, fileID string, size int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "transform.Transformer.Transform",
		trace.WithAttributes(
			attribute.String("file", fileID),
			attribute.Int("size_bytes", size),
		),
	)
}

func recordTransform(span trace.Span, res *Result, err error, d time.Duration) {
	transformDuration.Observe(d.Seconds())

	if err != nil {
		transformTotal.WithLabelValues(outcomeError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	transformTotal.WithLabelValues(string(res.Reason)).Inc()
	span.SetAttributes(
		attribute.String("outcome", string(res.Reason)),
		attribute.Bool("changed", res.Changed),
	)
	if res.Name != "" {
		span.SetAttributes(attribute.String("name", res.Name))
	}
	if res.Classified() {
		shapeTotal.WithLabelValues(res.Shape.String()).Inc()
		span.SetAttributes(attribute.String("shape", res.Shape.String()))
	}
}
