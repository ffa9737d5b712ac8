package visit

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/semantic"
	"github.com/parsekit/parsekit/internal/source"
)

// SymbolFactory is the symbol-creation API spec §4.6 asks the mutable walk
// to expose: "access to a symbol-creation API that allocates fresh symbols
// and wires them into the correct scope," for a transformer that
// introduces a binding the original source never had (a temp variable
// hoisted out of an expression, a synthesized loop counter). It wraps
// semantic.Model.CreateSymbol rather than reimplementing scope-binding,
// since declareIn/newFacetBinding stay unexported to keep that logic in
// one place.
type SymbolFactory struct {
	model *semantic.Model
}

// NewSymbolFactory binds a factory to the semantic model produced for the
// same Program a WalkMut call is rewriting. Mismatching the two (creating
// symbols against a Model built from a different Program) produces
// out-of-range ScopeIds the caller will see as a panic on first use, the
// same failure mode as indexing past the end of any other slice-backed
// table here.
func NewSymbolFactory(model *semantic.Model) *SymbolFactory {
	return &SymbolFactory{model: model}
}

// CreateSymbol allocates a fresh symbol in scope and returns its id, for
// a visitor that has just introduced a new binding while rewriting the
// tree (e.g. naming the temporary it moved an expression into). decl
// should point at the span of the syntax the caller is about to splice
// in, so later diagnostics referencing the symbol have somewhere to
// point.
func (f *SymbolFactory) CreateSymbol(scope jsast.ScopeId, name jsast.Atom, decl source.Span, flags semantic.SymbolFlags) jsast.SymbolId {
	return f.model.CreateSymbol(scope, name, decl, flags)
}

// CreateSymbolInCurrentScope is CreateSymbol convenience for callers
// driving a MutVisitor: it reads the enclosing scope off ctx rather than
// requiring the caller to track it separately, matching spec §4.6's
// framing of the symbol-creation API as part of the same walk that
// exposes "the current ScopeId."
func (f *SymbolFactory) CreateSymbolInCurrentScope(ctx *Ctx, name jsast.Atom, decl source.Span, flags semantic.SymbolFlags) jsast.SymbolId {
	return f.CreateSymbol(ctx.Scope(), name, decl, flags)
}
