package semantic

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/source"
)

// Model is the semantic builder's complete output: the scope tree, the
// symbol and reference tables, the module record, the const-enum table,
// and one CFG per function (spec §3.4-§3.7). All cross-references between
// tables go through the dense integer ids in internal/jsast rather than
// pointers, so the whole model can be copied or serialized cheaply.
type Model struct {
	Scopes      []Scope
	Symbols     []Symbol
	References  []Reference
	Module      ModuleRecord
	ConstEnums  ConstEnumTable
	CFGs        []*CFG
}

// ScopeOf returns the scope record for id.
func (m *Model) ScopeOf(id ScopeId) *Scope { return &m.Scopes[id] }

// SymbolOf returns the symbol record for id.
func (m *Model) SymbolOf(id jsast.SymbolId) *Symbol { return &m.Symbols[id] }

// ReferenceOf returns the reference record for id.
func (m *Model) ReferenceOf(id jsast.ReferenceId) *Reference { return &m.References[id] }

// CreateSymbol allocates a fresh symbol and wires it into scope's binding
// table, for downstream transformers that introduce new bindings (spec
// §4.6: "access to a symbol-creation API that allocates fresh symbols and
// wires them into the correct scope"). Unlike the builder's own
// declareIn, this never raises a redeclaration diagnostic — a transformer
// asking for a new binding is expected to have already picked a name that
// doesn't collide (e.g. by consulting LookupBinding itself), and silently
// overwriting the existing slot is the right behavior for the "rename to
// make room" case the mutable walk exists for.
func (m *Model) CreateSymbol(scope ScopeId, name jsast.Atom, decl source.Span, flags SymbolFlags) jsast.SymbolId {
	facet := flags.DefaultFacet()
	sc := &m.Scopes[scope]
	key := name.String()
	fb, exists := sc.Bindings[key]
	if !exists {
		fb = newFacetBinding()
		sc.Bindings[key] = fb
	}
	id := jsast.SymbolId(len(m.Symbols))
	m.Symbols = append(m.Symbols, Symbol{Name: name, Decl: decl, Flags: flags, Scope: scope})
	fb.Set(facet, id)
	return id
}

// LookupBinding walks from scope upward through parents, stopping at the
// first scope with a name/facet binding, and reports its SymbolId. Used
// both by reference resolution (spec §4.5 step 5, "compatible facet: value
// vs type") and by tooling that wants to answer "what does this name mean
// here" without re-running the whole resolution pass.
func (m *Model) LookupBinding(scope ScopeId, name string, facet Facet) (jsast.SymbolId, bool) {
	for {
		sc := &m.Scopes[scope]
		if fb, ok := sc.Bindings[name]; ok {
			if id := fb.Get(facet); id.IsValid() {
				return id, true
			}
		}
		if sc.Parent == jsast.InvalidScopeId || sc.Parent == scope {
			return jsast.InvalidSymbolId, false
		}
		scope = sc.Parent
	}
}
