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
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

// ServiceName is the otelgin server name.
const ServiceName = "sfcname"

// RegisterRoutes registers all sfcname routes with the router.
//
// Description:
//
//	Registers all /v1/sfcname/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	POST /v1/sfcname/transform - Inject a component name into one file
//	GET  /v1/sfcname/health - Health check
//
// Example:
//
//	handlers := server.NewHandlers(transform.New(), config.FileConfig{}, "")
//
//	v1 := router.Group("/v1")
//	server.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	sfcname := rg.Group("/sfcname")
	{
		sfcname.POST("/transform", handlers.HandleTransform)
		sfcname.GET("/health", handlers.HandleHealth)
	}
}

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// RateLimit is the sustained requests per second allowed on /v1.
	// Zero or negative disables limiting.
	RateLimit float64

	// Burst is the limiter bucket size. Defaults to 1 when limiting.
	Burst int

	// Debug enables gin's request logger.
	Debug bool
}

// NewRouter builds the HTTP engine with middleware, routes and /metrics.
func NewRouter(handlers *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(ServiceName))
	router.Use(RequestIDMiddleware())
	if cfg.Debug {
		router.Use(gin.Logger())
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	if cfg.RateLimit > 0 {
		burst := max(cfg.Burst, 1)
		v1.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}
	RegisterRoutes(v1, handlers)

	return router
}
