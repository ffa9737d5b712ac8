package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/parsekit/parsekit/internal/jsparser"
	"github.com/parsekit/parsekit/internal/logger"
	"github.com/parsekit/parsekit/internal/semantic"
)

// colors mirrors evanw-esbuild's logger.Colors set; reporter picks between
// this and an all-empty zero value depending on the resolved color mode.
type colors struct {
	reset, bold, dim, red, yellow, cyan string
}

var ansiColors = colors{
	reset:  "\033[0m",
	bold:   "\033[1m",
	dim:    "\033[2m",
	red:    "\033[31m",
	yellow: "\033[33m",
	cyan:   "\033[36m",
}

type reporter struct {
	w      io.Writer
	c      colors
	width  int
}

// newReporter resolves the color mode (config, defaulting to "auto") and
// probes the terminal once for width, the way cmd/esbuild's
// OutputOptionsForArgs resolves its own UseColor enum once per run rather
// than per message.
func newReporter(w io.Writer) *reporter {
	r := &reporter{w: w}

	useColor := false
	switch cfg.Color {
	case "always":
		useColor = true
	case "never":
		useColor = false
	default:
		if f, ok := w.(*os.File); ok {
			useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	if useColor {
		r.c = ansiColors
	}

	if f, ok := w.(*os.File); ok {
		r.width = terminalWidth(f.Fd())
	}
	return r
}

func (r *reporter) reportFile(path, contents string, diags []logger.Diagnostic) {
	for _, d := range diags {
		r.reportOne(path, contents, d)
	}
}

func (r *reporter) reportOne(path, contents string, d logger.Diagnostic) {
	sevColor, sevWord := r.c.red, "error"
	switch d.Severity {
	case logger.SeverityWarning:
		sevColor, sevWord = r.c.yellow, "warning"
	case logger.SeverityAdvice:
		sevColor, sevWord = r.c.cyan, "advice"
	}

	loc := ""
	if len(d.Labels) > 0 {
		line, col := lineAndColumn(contents, d.Labels[0].Span.Start)
		loc = fmt.Sprintf("%s:%d:%d: ", path, line, col)
	}

	code := ""
	if d.Code != "" {
		code = fmt.Sprintf(" [%s]", d.Code)
	}

	fmt.Fprintf(r.w, "%s%s%s%s%s:%s %s\n",
		r.c.bold, loc, r.c.reset, sevColor, sevWord, r.c.reset, d.Message+code)

	if d.Help != "" {
		fmt.Fprintf(r.w, "%s  help: %s%s\n", r.c.dim, d.Help, r.c.reset)
	}
}

// reportSummary prints the one-line "N statements, M symbols, ..." recap
// SPEC_FULL.md §2 asks the CLI for. model is nil when parsing failed
// before semantic analysis ran.
func (r *reporter) reportSummary(path string, res jsparser.Result, model *semantic.Model) {
	line := fmt.Sprintf("%s: %d top-level statement(s)", path, len(res.Program.Body))
	if model != nil {
		line += fmt.Sprintf(", %d scope(s), %d symbol(s), %d reference(s)",
			len(model.Scopes), len(model.Symbols), len(model.References))
		if len(model.CFGs) > 0 {
			line += fmt.Sprintf(", %d function CFG(s)", len(model.CFGs))
		}
	}
	if r.width > 0 && len(line) > r.width {
		line = line[:r.width-1] + "…"
	}
	fmt.Fprintln(r.w, line)
}

// lineAndColumn converts a byte offset into 1-based line/column numbers,
// the way a diagnostic needs to be anchored to something a human can find
// in their editor. Rendering is the CLI's job, not the core's — the core
// only ever hands back byte offsets (spec §6.2).
func lineAndColumn(contents string, offset uint32) (line, col int) {
	line = 1
	col = 1
	for i := 0; i < int(offset) && i < len(contents); i++ {
		if contents[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
