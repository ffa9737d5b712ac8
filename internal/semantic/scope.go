// Package semantic implements C7: the one-pass semantic builder that turns
// a jsast.Program into scope, symbol, reference, module, const-enum, and
// per-function CFG tables (spec §3.4-§3.7, §4.5). It is grounded on
// evanw-esbuild's internal/js_ast Scope/Symbol/Ref triple and
// internal/js_parser's scope-push/pop and binding/resolution passes,
// generalized to run as its own pass over an already-parsed jsast.Program
// rather than interleaved with parsing (see internal/jsast's package doc
// for why the two passes are split here).
package semantic

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/source"
)

// ScopeKind mirrors js_ast.ScopeKind's categories, trimmed to the ones
// spec §3.4 names explicitly (program/function/block/class/catch/with/for).
type ScopeKind uint8

const (
	ScopeProgram ScopeKind = iota
	ScopeFunctionArgs
	ScopeFunctionBody
	ScopeBlock
	ScopeClass
	ScopeCatch
	ScopeWith
	ScopeFor
	ScopeLabel
)

// StopsHoisting reports whether a "var" or function declaration searching
// for its hoist target stops climbing at this scope kind, matching
// js_ast.ScopeKind.StopsHoisting's ScopeEntry/FunctionArgs/FunctionBody cutoffs.
func (k ScopeKind) StopsHoisting() bool {
	return k == ScopeProgram || k == ScopeFunctionArgs || k == ScopeFunctionBody
}

// Scope is one node of the scope tree (spec §3.4). Bindings is the
// block's own name→binding map; var-scopes additionally receive hoisted
// var/function bindings from nested blocks during the build. Each name has
// one slot per facet (spec §3.4: "a name may resolve against either facet
// independently") so e.g. an "interface Foo" and a "const Foo" in the same
// scope coexist instead of colliding.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeId
	Children []ScopeId
	Bindings map[string]*FacetBinding
	Strict   bool
	IsTop    bool
}

// FacetBinding holds up to one symbol per facet for a single name within
// one scope.
type FacetBinding struct {
	Value jsast.SymbolId
	Type  jsast.SymbolId
}

func newFacetBinding() *FacetBinding {
	return &FacetBinding{Value: jsast.InvalidSymbolId, Type: jsast.InvalidSymbolId}
}

func (fb *FacetBinding) Get(f Facet) jsast.SymbolId {
	if f == FacetType {
		return fb.Type
	}
	return fb.Value
}

func (fb *FacetBinding) Set(f Facet, id jsast.SymbolId) {
	if f == FacetType {
		fb.Type = id
	} else {
		fb.Value = id
	}
}

// ScopeId re-exports jsast.ScopeId so callers of this package rarely need
// to import jsast just to name an id.
type ScopeId = jsast.ScopeId

// SymbolFlags classifies how a binding was introduced (spec §3.4's
// "flags (var/let/const/function/class/import/export/enum-member/
// ambient/type-only/...)"), grounded on js_ast.SymbolKind's enumeration.
type SymbolFlags uint16

const (
	SymbolNone SymbolFlags = 0
	SymbolVar  SymbolFlags = 1 << iota
	SymbolLet
	SymbolConst
	SymbolFunction
	SymbolClass
	SymbolImport
	SymbolExport
	SymbolEnumMember
	SymbolAmbient
	SymbolTypeOnly
	SymbolParameter
	SymbolCatchParam
	SymbolLabelFlag
	SymbolNamespace
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// Facet distinguishes the value-namespace and type-namespace a TypeScript
// name can independently occupy (spec §3.4: "a name may resolve against
// either facet independently").
type Facet uint8

const (
	FacetValue Facet = 1 << iota
	FacetType
)

func (fl SymbolFlags) DefaultFacet() Facet {
	if fl.Has(SymbolTypeOnly) {
		return FacetType
	}
	return FacetValue
}

// Symbol is one declared binding (spec §3.4).
type Symbol struct {
	Name       jsast.Atom
	Decl       source.Span
	Flags      SymbolFlags
	Scope      ScopeId
	References []jsast.ReferenceId
}

// ReferenceFlags classifies how an IdentifierReference is used.
type ReferenceFlags uint8

const (
	RefRead ReferenceFlags = 1 << iota
	RefWrite
	RefTypeOnly
)

func (f ReferenceFlags) IsReadWrite() bool { return f&(RefRead|RefWrite) == RefRead|RefWrite }

// Reference is one resolved (or deliberately unresolved) identifier use.
type Reference struct {
	Name    jsast.Atom
	Span    source.Span
	Scope   ScopeId
	Flags   ReferenceFlags
	Symbol  jsast.SymbolId // InvalidSymbolId if unresolved (spec §3.4: "treated as global")
}
