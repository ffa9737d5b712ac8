// Package logger implements the diagnostic contract of spec §6.2: a plain
// data representation of compiler messages with no rendering behavior.
// It is grounded directly on evanw-esbuild's internal/logger/logger.go
// (Msg/MsgData/Log shape) — the teacher carries no external logging
// library because its diagnostic type already matches this contract, and
// we keep that choice (see DESIGN.md).
package logger

import (
	"sort"

	"github.com/parsekit/parsekit/internal/source"
)

// Severity mirrors spec §6.2's three-valued severity.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityAdvice
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityAdvice:
		return "advice"
	default:
		return "unknown"
	}
}

// Label attaches optional text to a span within a diagnostic, per spec §6.2.
type Label struct {
	Span source.Span
	Text string
}

// Diagnostic is one compiler message. The core never renders one to text —
// that is a downstream collaborator's job (spec §7); the core only ever
// produces and collects these.
type Diagnostic struct {
	Severity Severity
	Message  string
	Labels   []Label
	Help     string
	Code     string
}

// Sink collects diagnostics produced while parsing or analyzing one file.
// It is not safe for concurrent use; the parser/semantic builder for one
// file is single-threaded (spec §5), so each owns its own Sink.
type Sink struct {
	diagnostics []Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) add(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

func (s *Sink) Error(span source.Span, message string) {
	s.add(Diagnostic{Severity: SeverityError, Message: message, Labels: []Label{{Span: span}}})
}

func (s *Sink) ErrorWithCode(span source.Span, code, message string) {
	s.add(Diagnostic{Severity: SeverityError, Message: message, Code: code, Labels: []Label{{Span: span}}})
}

func (s *Sink) ErrorWithHelp(span source.Span, message, help string) {
	s.add(Diagnostic{Severity: SeverityError, Message: message, Help: help, Labels: []Label{{Span: span}}})
}

func (s *Sink) Warning(span source.Span, message string) {
	s.add(Diagnostic{Severity: SeverityWarning, Message: message, Labels: []Label{{Span: span}}})
}

func (s *Sink) Advice(span source.Span, message string) {
	s.add(Diagnostic{Severity: SeverityAdvice, Message: message, Labels: []Label{{Span: span}}})
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns all recorded diagnostics, sorted by the start of
// their first label (stable, for deterministic output — spec §8.2's
// determinism obligation extends to diagnostics, not just the AST).
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := firstSpanStart(out[i]), firstSpanStart(out[j])
		if ai != aj {
			return ai < aj
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

func firstSpanStart(d Diagnostic) uint32 {
	if len(d.Labels) == 0 {
		return 0
	}
	return d.Labels[0].Span.Start
}
