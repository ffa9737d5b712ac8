package jsast

import "github.com/parsekit/parsekit/internal/source"

// Comment is one trivia entry. Comments are never first-class AST nodes
// (spec §1 Non-goals, §3.3): they live in their own ordered side table,
// returned by the parser alongside the Program.
type Comment struct {
	Span    source.Span
	Text    string // without the delimiters
	IsBlock bool
}

// Program is the root of one parsed file.
type Program struct {
	Span       source.Span
	Body       []Stmt
	Scope      ScopeId // the program-level scope; always ScopeId(0) once semantic analysis has run
	HasUseStrict bool   // a top-level "use strict" directive was present
	SourceHash uint64   // for cache invalidation by downstream consumers; not used by the core itself
}
