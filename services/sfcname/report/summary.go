// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/sfcname/services/sfcname/transform"
)

var (
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

// Printer writes one line per processed file and a closing summary.
//
// Thread Safety: Safe for concurrent use; lines are written whole.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	color   bool
	verbose bool

	changed int
	skipped int
	failed  int
	reasons map[transform.Reason]int
}

// NewPrinter creates a Printer. Color is enabled only when w is a terminal.
// When verbose is false, unchanged files are counted but not listed.
func NewPrinter(w io.Writer, verbose bool) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{w: w, color: color, verbose: verbose, reasons: make(map[transform.Reason]int)}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// File records the outcome for one file.
func (p *Printer) File(fileID string, res *transform.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reasons[res.Reason]++
	if res.Changed {
		p.changed++
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.style(changedStyle, "named"),
			fileID,
			p.style(nameStyle, res.Name),
		)
		return
	}

	p.skipped++
	if p.verbose {
		fmt.Fprintf(p.w, "%s %s (%s)\n", p.style(skippedStyle, "skip "), fileID, res.Reason)
	}
}

// Error records a failed file.
func (p *Printer) Error(fileID string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failed++
	fmt.Fprintf(p.w, "%s %s: %v\n", p.style(errorStyle, "error"), fileID, err)
}

// Changed returns the number of files that were or would be rewritten.
func (p *Printer) Changed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.changed
}

// Failed returns the number of files that returned an error.
func (p *Printer) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// Summary writes the totals line, followed by a per-reason breakdown when
// verbose.
func (p *Printer) Summary() {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "%s %d named, %d unchanged, %d failed\n",
		p.style(headerStyle, "sfcname:"), p.changed, p.skipped, p.failed)

	if !p.verbose {
		return
	}
	reasons := make([]string, 0, len(p.reasons))
	for r := range p.reasons {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(p.w, "  %-16s %d\n", r, p.reasons[transform.Reason(r)])
	}
}
