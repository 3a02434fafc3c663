package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level controls how much the reporter prints
type Level int

const (
	LevelQuiet Level = iota
	LevelNormal
	LevelVerbose
)

// Reporter provides structured, colorized CLI output
type Reporter struct {
	level  Level
	out    io.Writer
	errOut io.Writer

	section *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	dim     *color.Color
}

// NewReporter creates a reporter writing to stdout/stderr
func NewReporter(level Level) *Reporter {
	return &Reporter{
		level:   level,
		out:     os.Stdout,
		errOut:  os.Stderr,
		section: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
}

// SetOutput redirects both output streams, for tests
func (r *Reporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// Section prints a bold heading
func (r *Reporter) Section(title string) {
	if r.level < LevelNormal {
		return
	}
	r.section.Fprintf(r.out, "=== %s ===\n", title)
}

// Info prints an informational line
func (r *Reporter) Info(format string, args ...any) {
	if r.level < LevelNormal {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Success prints a green result line
func (r *Reporter) Success(format string, args ...any) {
	if r.level < LevelNormal {
		return
	}
	r.success.Fprintf(r.out, "✓ "+format+"\n", args...)
}

// Warn prints a yellow warning line
func (r *Reporter) Warn(format string, args ...any) {
	if r.level < LevelNormal {
		return
	}
	r.warn.Fprintf(r.out, "! "+format+"\n", args...)
}

// Error prints a red error line; shown even when quiet
func (r *Reporter) Error(format string, args ...any) {
	r.fail.Fprintf(r.errOut, "✗ "+format+"\n", args...)
}

// List prints an indented list item
func (r *Reporter) List(format string, args ...any) {
	if r.level < LevelNormal {
		return
	}
	fmt.Fprintf(r.out, "  - "+format+"\n", args...)
}

// Debug prints a dim line in verbose mode only
func (r *Reporter) Debug(format string, args ...any) {
	if r.level < LevelVerbose {
		return
	}
	r.dim.Fprintf(r.out, format+"\n", args...)
}
