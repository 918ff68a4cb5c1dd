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
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/sfcname/services/sfcname/config"
	"github.com/AleutianAI/sfcname/services/sfcname/naming"
	"github.com/AleutianAI/sfcname/services/sfcname/report"
	"github.com/AleutianAI/sfcname/services/sfcname/transform"
)

// errCheckFailed is returned by run --check when a file would change.
var errCheckFailed = errors.New("some components are missing a name")

type runOptions struct {
	write     bool
	diff      bool
	sourcemap bool
	check     bool
	verbose   bool
	jobs      int
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Name every component under the given files or directories",
		Long: `Walks the given paths (default ".") and transforms every .vue file that
passes the include and exclude filters. Nothing is written unless --write
is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return a.run(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.write, "write", "w", false, "rewrite changed files in place")
	f.BoolVarP(&opts.diff, "diff", "d", false, "print a unified diff for each changed file")
	f.BoolVar(&opts.sourcemap, "sourcemap", false, "write a .map sidecar next to each rewritten file")
	f.BoolVar(&opts.check, "check", false, "exit non-zero if any file would change")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "list unchanged files and a per-reason summary")
	f.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "files processed in parallel")

	return cmd
}

// fileResult is the outcome for one collected file.
type fileResult struct {
	path     string
	original string
	mode     fs.FileMode
	res      *transform.Result
	err      error
}

func (a *app) run(ctx context.Context, out io.Writer, paths []string, opts runOptions) error {
	files, err := collectFiles(paths, a.cfg)
	if err != nil {
		return err
	}
	a.logger.Debug("collected components", slog.Int("files", len(files)))

	results, err := processFiles(ctx, a.transformer(), a.cfg, files, opts.jobs)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(out, opts.verbose)
	for _, r := range results {
		if r.err != nil {
			printer.Error(r.path, r.err)
			continue
		}
		if r.res.Changed {
			if err := emit(out, r, opts); err != nil {
				printer.Error(r.path, err)
				continue
			}
		}
		printer.File(r.path, r.res)
	}
	printer.Summary()

	if n := printer.Failed(); n > 0 {
		return fmt.Errorf("%d file(s) failed", n)
	}
	if opts.check && printer.Changed() > 0 {
		return errCheckFailed
	}
	return nil
}

// emit prints the diff and writes the file and source map for a changed
// result, as requested by opts.
func emit(out io.Writer, r fileResult, opts runOptions) error {
	if opts.diff {
		d, err := report.Diff(r.path, r.original, r.res.Code)
		if err != nil {
			return err
		}
		if _, err := out.Write(d); err != nil {
			return err
		}
	}
	if !opts.write {
		return nil
	}

	if err := os.WriteFile(r.path, []byte(r.res.Code), r.mode.Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", r.path, err)
	}
	if opts.sourcemap {
		sm := *r.res.Map
		sm.File = filepath.Base(r.path)
		data, err := sm.JSON()
		if err != nil {
			return fmt.Errorf("encoding source map for %s: %w", r.path, err)
		}
		if err := os.WriteFile(r.path+".map", data, 0o644); err != nil {
			return fmt.Errorf("writing source map for %s: %w", r.path, err)
		}
	}
	return nil
}

// collectFiles expands paths into absolute component file paths.
//
// Description:
//
//	Directories are walked recursively. Hidden directories and any
//	directory the exclude filters match are skipped without descending.
//	Files named explicitly are kept even when filtered so the transform
//	can report why they were skipped.
func collectFiles(paths []string, cfg config.Config) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(abs)
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != abs && skipDir(path, d.Name(), cfg) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), naming.ComponentExt) && cfg.Allows(filepath.ToSlash(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}
	return files, nil
}

func skipDir(path, name string, cfg config.Config) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return cfg.Exclude().Any(filepath.ToSlash(path) + "/")
}

// processFiles reads and transforms files with at most jobs in flight.
// Per-file failures are recorded in the result; only cancellation aborts.
func processFiles(ctx context.Context, t *transform.Transformer, cfg config.Config, files []string, jobs int) ([]fileResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(gctx, t, cfg, path)
			if errors.Is(results[i].err, context.Canceled) {
				return results[i].err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func processFile(ctx context.Context, t *transform.Transformer, cfg config.Config, path string) fileResult {
	r := fileResult{path: path}

	info, err := os.Stat(path)
	if err != nil {
		r.err = err
		return r
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.err = err
		return r
	}
	r.original, r.mode = string(data), info.Mode()

	r.res, r.err = t.Transform(ctx, filepath.ToSlash(path), r.original, cfg)
	return r
}
