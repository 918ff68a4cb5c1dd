// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/sfcname/services/sfcname/server"
)

type serveOptions struct {
	addr  string
	rate  float64
	burst int
	debug bool
}

func newServeCmd(a *app) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform over HTTP",
		Long: `Starts an HTTP server with:

  POST /v1/sfcname/transform  {file_id, code, config?} -> {changed, code, map}
  GET  /v1/sfcname/health
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", ":8080", "listen address")
	f.Float64Var(&opts.rate, "rate", 0, "sustained requests per second on /v1 (0 disables limiting)")
	f.IntVar(&opts.burst, "burst", 20, "request burst allowed above --rate")
	f.BoolVar(&opts.debug, "debug", false, "enable gin debug mode and request logging")

	return cmd
}

func (a *app) serve(ctx context.Context, opts serveOptions) error {
	if opts.debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := server.NewHandlers(a.transformer(), a.fileCfg, version)
	router := server.NewRouter(handlers, server.RouterConfig{
		RateLimit: opts.rate,
		Burst:     opts.burst,
		Debug:     opts.debug,
	})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("starting sfcname server", slog.String("address", opts.addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down sfcname server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
