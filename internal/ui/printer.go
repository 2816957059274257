// Package ui handles binget's terminal output contract: all human-readable
// progress and diagnostics go to the error stream, reserving the output
// stream strictly for single-value machine-readable results so the tool
// composes in scripts.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

var (
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
)

// Printer writes run output. Progress, warnings, and errors go to Err;
// machine-readable results go to Out.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
	Debug bool
}

// New returns a Printer bound to the process streams.
func New(quiet, debug bool) *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, Quiet: quiet, Debug: debug}
}

// Infof prints a progress line unless quiet.
func (p *Printer) Infof(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Err, format+"\n", args...)
}

// Debugf prints a diagnostic trace line when debug is enabled. Debug output
// is never silenced by quiet.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.Debug {
		return
	}
	fmt.Fprintln(p.Err, dimStyle.Render(fmt.Sprintf("debug: "+format, args...)))
}

// Warnf prints a warning. Warnings are shown even in quiet mode.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.Err, warnStyle.Render("warning: ")+fmt.Sprintf(format, args...))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.Err, errorStyle.Render("error: ")+fmt.Sprintf(format, args...))
}

// Successf prints a success line unless quiet.
func (p *Printer) Successf(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Err, okStyle.Render(fmt.Sprintf(format, args...)))
}

// Resultf prints a machine-readable value to the output stream. This is the
// only method that writes to Out.
func (p *Printer) Resultf(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// AssetTable renders a list of asset names as a table on the error stream,
// used as remediation context when a filtering pass comes up empty.
func (p *Printer) AssetTable(title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(p.Err, title)

	tbl := table.New("#", "ASSET").
		WithWriter(p.Err).
		WithHeaderFormatter(func(format string, vals ...any) string {
			return headStyle.Render(fmt.Sprintf(format, vals...))
		})
	for i, name := range names {
		tbl.AddRow(i+1, name)
	}
	tbl.Print()
}
