// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command sfcname injects component names into Vue single-file components.
//
// Usage:
//
//	sfcname run [paths...]     Name every component under paths
//	sfcname watch [paths...]   Re-run on every saved component
//	sfcname serve              Serve the transform over HTTP
//	sfcname name <path>        Print the name derived for a path
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/sfcname/services/sfcname/config"
	"github.com/AleutianAI/sfcname/services/sfcname/naming"
	"github.com/AleutianAI/sfcname/services/sfcname/transform"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// DefaultConfigFile is read from the working directory when --config is
// not given. A missing file means defaults.
const DefaultConfigFile = "sfcname.yaml"

const shutdownTimeout = 5 * time.Second

// app holds the global flags and the state resolved from them before any
// subcommand runs.
type app struct {
	configPath string
	nameCase   string
	include    []string
	exclude    []string
	logLevel   string
	logFormat  string
	trace      bool

	logger   *slog.Logger
	fileCfg  config.FileConfig
	cfg      config.Config
	shutdown func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sfcname",
		Short: "Inject component names into Vue single-file components",
		Long: `sfcname derives a component name from each .vue file path and adds it to
the defineOptions call of the <script setup> block, creating the call when
there is none. Files that already declare a name are left untouched.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", DefaultConfigFile, "YAML config file; a missing file means defaults")
	pf.StringVar(&a.nameCase, "name-case", "", "name casing: pascal, camel or kebab (overrides config)")
	pf.StringArrayVar(&a.include, "include", nil, "include pattern, substring or re:/regex/flags; repeatable (overrides config)")
	pf.StringArrayVar(&a.exclude, "exclude", nil, "exclude pattern, substring or re:/regex/flags; repeatable (overrides config)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	pf.BoolVar(&a.trace, "trace", false, "write OpenTelemetry spans to stderr")

	root.AddCommand(
		newNameCmd(a),
		newRunCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup configures logging, resolves the config and starts tracing.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	slog.SetDefault(logger)

	fc, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("name-case") {
		fc.NameCase = a.nameCase
	}
	if flags.Changed("include") {
		fc.Include = a.include
	}
	if flags.Changed("exclude") {
		fc.Exclude = a.exclude
	}

	cfg, err := fc.Build()
	if err != nil {
		return err
	}
	a.fileCfg, a.cfg = fc, cfg

	if a.trace {
		shutdown, err := setupTracing(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("starting tracing: %w", err)
		}
		a.shutdown = shutdown
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), shutdownTimeout)
	defer cancel()
	return a.shutdown(ctx)
}

func (a *app) transformer() *transform.Transformer {
	return transform.New(transform.WithLogger(a.logger))
}

func newNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <path>",
		Short: "Print the component name derived from a file path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := naming.Derive(args[0], a.cfg.NameCase())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
}
