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
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/sfcname/services/sfcname/config"
	"github.com/AleutianAI/sfcname/services/sfcname/naming"
	"github.com/AleutianAI/sfcname/services/sfcname/report"
	"github.com/AleutianAI/sfcname/services/sfcname/transform"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

type watchOptions struct {
	initial  bool
	debounce time.Duration
}

func newWatchCmd(a *app) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rewrite components in place whenever they are saved",
		Long: `Watches the given directories (default ".") and names each component as
it is created or saved. Rewritten files trigger one more event, which is a
no-op because a named component is left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return a.watch(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.initial, "initial", true, "process every component once before watching")
	f.DurationVar(&opts.debounce, "debounce", DefaultDebounce, "quiet period before a changed file is processed")

	return cmd
}

func (a *app) watch(ctx context.Context, out io.Writer, paths []string, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if err := watchTree(watcher, abs, a.cfg); err != nil {
			return err
		}
	}

	t := a.transformer()
	printer := report.NewPrinter(out, false)

	if opts.initial {
		files, err := collectFiles(paths, a.cfg)
		if err != nil {
			return err
		}
		for _, path := range files {
			a.rewrite(ctx, t, printer, path)
		}
	}

	a.logger.Info("watching for changes", slog.Int("roots", len(paths)))

	d := newDebouncer(opts.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			printer.Summary()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			a.handleEvent(watcher, d, ev)

		case path := <-d.ready:
			d.forget(path)
			a.rewrite(ctx, t, printer, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watch error", slog.String("error", err.Error()))
		}
	}
}

func (a *app) handleEvent(watcher *fsnotify.Watcher, d *debouncer, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := watchTree(watcher, ev.Name, a.cfg); err != nil {
				a.logger.Warn("cannot watch new directory",
					slog.String("path", ev.Name),
					slog.String("error", err.Error()),
				)
			}
			return
		}
	}

	if strings.HasSuffix(ev.Name, naming.ComponentExt) && a.cfg.Allows(filepath.ToSlash(ev.Name)) {
		d.touch(ev.Name)
	}
}

// rewrite transforms one file and writes it back when it changed.
func (a *app) rewrite(ctx context.Context, t *transform.Transformer, printer *report.Printer, path string) {
	r := processFile(ctx, t, a.cfg, path)
	if r.err != nil {
		printer.Error(path, r.err)
		return
	}
	if !r.res.Changed {
		a.logger.Debug("unchanged", slog.String("file", path), slog.String("reason", string(r.res.Reason)))
		return
	}
	if err := emit(io.Discard, r, runOptions{write: true}); err != nil {
		printer.Error(path, err)
		return
	}
	printer.File(path, r.res)
}

// watchTree adds root and every non-skipped directory below it.
func watchTree(watcher *fsnotify.Watcher, root string, cfg config.Config) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(path, d.Name(), cfg) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// debouncer delivers a path on ready once no new touch has arrived for the
// quiet period. Pending deliveries are dropped after stop.
type debouncer struct {
	quiet  time.Duration
	ready  chan string
	done   chan struct{}
	timers map[string]*time.Timer
}

func newDebouncer(quiet time.Duration) *debouncer {
	return &debouncer{
		quiet:  quiet,
		ready:  make(chan string, 64),
		done:   make(chan struct{}),
		timers: make(map[string]*time.Timer),
	}
}

// touch and forget must be called from a single goroutine.
func (d *debouncer) touch(path string) {
	if t, ok := d.timers[path]; ok {
		t.Reset(d.quiet)
		return
	}
	d.timers[path] = time.AfterFunc(d.quiet, func() {
		select {
		case d.ready <- path:
		case <-d.done:
		}
	})
}

// forget drops the timer of a delivered path.
func (d *debouncer) forget(path string) {
	delete(d.timers, path)
}

func (d *debouncer) stop() {
	close(d.done)
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}
