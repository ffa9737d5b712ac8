// Package jsast implements C5: the AST data model for ECMAScript,
// TypeScript, and JSX. It is grounded on evanw-esbuild's internal/js_ast
// package: a closed sum of node categories, each a tagged union expressed
// as a Go interface with unexported marker methods (Expr{Span,Data}/E,
// Stmt{Span,Data}/S, Binding{Span,Data}/B), which is the idiomatic way to
// encode a sum type without runtime reflection in Go.
//
// Every node carries a source.Span (spec §3.2). BindingIdentifier and
// IdentifierReference carry SymbolId/ReferenceId slots that the semantic
// builder (internal/semantic) fills in a later pass; unlike the teacher,
// which binds symbols during a single combined parse+bind pass, this core
// keeps parsing and semantic analysis as two separate passes per spec
// §4.5 ("One traversal of the program" run by the semantic builder, given
// an already-complete Program).
package jsast

import "math"

// SymbolId identifies a declared binding: a dense index, starting at 0,
// into the semantic model's symbol table. The zero value is a valid id;
// InvalidSymbolId marks a slot that names no symbol, and IsValid tests
// for it.
type SymbolId uint32

const InvalidSymbolId SymbolId = math.MaxUint32

func (id SymbolId) IsValid() bool { return id != InvalidSymbolId }

// ReferenceId identifies one resolved (or deliberately unresolved) use of
// an identifier.
type ReferenceId uint32

const InvalidReferenceId ReferenceId = math.MaxUint32

func (id ReferenceId) IsValid() bool { return id != InvalidReferenceId }

// ScopeId identifies a lexical scope.
type ScopeId uint32

const InvalidScopeId ScopeId = math.MaxUint32

func (id ScopeId) IsValid() bool { return id != InvalidScopeId }
