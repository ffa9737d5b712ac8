package semantic

import (
	"fmt"

	"github.com/parsekit/parsekit/internal/arena"
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/logger"
	"github.com/parsekit/parsekit/internal/source"
)

// builder carries the mutable state of one semantic build: the model
// under construction and a stack of currently-open scopes. It is
// single-use, mirroring jsparser.Parser's single-use-per-file shape.
type builder struct {
	arena *arena.Arena
	sink  *logger.Sink
	opts  Options
	model *Model

	scopeStack []ScopeId

	// fnStack tracks the nearest enclosing function for the "arguments"
	// synthesis and for attaching per-function CFGs to the right Fn node.
	fnStack []*jsast.Fn

	collectedCFGs []*CFG
}

// Build runs the one-pass semantic builder over program (spec §4.5) and
// returns the populated Model. Diagnostics (conflicting declarations,
// unresolved references reported as advice) are recorded into sink. The
// arena is used only to intern a handful of synthesized names (e.g. the
// implicit "arguments" binding); the model's own tables are plain Go
// slices/maps rather than arena-resident, since a Model commonly outlives
// the one-file arena that produced its Program (see DESIGN.md).
func Build(a *arena.Arena, sink *logger.Sink, program *jsast.Program, opts Options) *Model {
	b := &builder{arena: a, sink: sink, opts: opts, model: &Model{}}

	root := b.pushScope(ScopeProgram, program.HasUseStrict)
	b.model.Scopes[root].IsTop = true
	program.Scope = root

	for i := range program.Body {
		b.bindStmt(&program.Body[i])
	}
	b.popScope()

	b.resolveReferences()
	b.model.Module = buildModuleRecord(b.model, program)
	b.model.ConstEnums = evaluateConstEnums(program, b.model)
	if opts.BuildCFG {
		b.model.CFGs = b.collectedCFGs
	}
	return b.model
}

// pushScope opens a new scope whose parent is the current top of stack
// (or InvalidScopeId for the very first call) and returns its id.
func (b *builder) pushScope(kind ScopeKind, strict bool) ScopeId {
	parent := jsast.InvalidScopeId
	if len(b.scopeStack) > 0 {
		parent = b.scopeStack[len(b.scopeStack)-1]
		strict = strict || b.model.Scopes[parent].Strict
	}
	id := ScopeId(len(b.model.Scopes))
	b.model.Scopes = append(b.model.Scopes, Scope{
		Kind:     kind,
		Parent:   parent,
		Bindings: make(map[string]*FacetBinding),
		Strict:   strict,
	})
	if parent.IsValid() {
		b.model.Scopes[parent].Children = append(b.model.Scopes[parent].Children, id)
	}
	b.scopeStack = append(b.scopeStack, id)
	return id
}

func (b *builder) popScope() {
	b.scopeStack = b.scopeStack[:len(b.scopeStack)-1]
}

func (b *builder) currentScope() ScopeId {
	return b.scopeStack[len(b.scopeStack)-1]
}

// hoistTarget returns the nearest enclosing scope that stops hoisting
// (spec §3.4: "var and function-declaration bindings hoist to the
// nearest var-scope"), walking outward from the current scope.
func (b *builder) hoistTarget() ScopeId {
	for i := len(b.scopeStack) - 1; i >= 0; i-- {
		id := b.scopeStack[i]
		if b.model.Scopes[id].Kind.StopsHoisting() {
			return id
		}
	}
	return b.scopeStack[0]
}

// declareHoisted binds name into the nearest var-scope (var and function
// declarations).
func (b *builder) declareHoisted(name jsast.Atom, span source.Span, flags SymbolFlags) jsast.SymbolId {
	return b.declareIn(b.hoistTarget(), name, span, flags)
}

// declareLexical binds name into the current block scope (let, const,
// class, TS type alias/interface/enum).
func (b *builder) declareLexical(name jsast.Atom, span source.Span, flags SymbolFlags) jsast.SymbolId {
	return b.declareIn(b.currentScope(), name, span, flags)
}

func (b *builder) declareIn(scope ScopeId, name jsast.Atom, span source.Span, flags SymbolFlags) jsast.SymbolId {
	if name.IsEmpty() {
		return jsast.InvalidSymbolId
	}
	facet := flags.DefaultFacet()
	sc := &b.model.Scopes[scope]
	key := name.String()
	fb, exists := sc.Bindings[key]
	if !exists {
		fb = newFacetBinding()
		sc.Bindings[key] = fb
	}

	if existing := fb.Get(facet); existing.IsValid() {
		existingSym := &b.model.Symbols[existing]
		bothHoistable := isHoistable(flags) && isHoistable(existingSym.Flags)
		if bothHoistable {
			existingSym.Flags |= flags
			return existing
		}
		b.sink.ErrorWithHelp(span,
			fmt.Sprintf("cannot redeclare %q in this scope", key),
			fmt.Sprintf("%q was already declared here", key))
		b.sink.Advice(existingSym.Decl, fmt.Sprintf("previous declaration of %q", key))
		existingSym.Flags |= flags
		return existing
	}

	id := jsast.SymbolId(len(b.model.Symbols))
	b.model.Symbols = append(b.model.Symbols, Symbol{Name: name, Decl: span, Flags: flags, Scope: scope})
	fb.Set(facet, id)
	return id
}

func isHoistable(f SymbolFlags) bool {
	return f.Has(SymbolVar) || f.Has(SymbolFunction)
}

// recordReference appends a pending reference (spec §4.5 step 4) and
// returns its id. Resolution happens once, after the whole program has
// been walked (resolveReferences), so declarations anywhere in an
// enclosing function are visible to references that textually precede
// them — the same hoisting behavior JS itself has for var/function.
func (b *builder) recordReference(name jsast.Atom, span source.Span, flags ReferenceFlags) jsast.ReferenceId {
	id := jsast.ReferenceId(len(b.model.References))
	b.model.References = append(b.model.References, Reference{
		Name:   name,
		Span:   span,
		Scope:  b.currentScope(),
		Flags:  flags,
		Symbol: jsast.InvalidSymbolId,
	})
	return id
}

func (b *builder) resolveReferences() {
	for i := range b.model.References {
		r := &b.model.References[i]
		facet := FacetValue
		if r.Flags&RefTypeOnly != 0 {
			facet = FacetType
		}
		sym, ok := b.model.LookupBinding(r.Scope, r.Name.String(), facet)
		if !ok {
			if b.opts.SuggestSimilarNames {
				b.adviseUnresolved(r)
			}
			continue
		}
		r.Symbol = sym
		b.model.Symbols[sym].References = append(b.model.Symbols[sym].References, jsast.ReferenceId(i))
	}
}

func (b *builder) adviseUnresolved(r *Reference) {
	candidates := b.namesInScope(r.Scope)
	if match, ok := suggestName(r.Name.String(), candidates); ok {
		b.sink.Advice(r.Span, fmt.Sprintf("%q is not declared; did you mean %q?", r.Name.String(), match))
	}
}

// namesInScope collects every binding name visible from scope, walking up
// through parents, for use as fuzzy-match candidates.
func (b *builder) namesInScope(scope ScopeId) []string {
	var names []string
	seen := make(map[string]bool)
	for {
		sc := &b.model.Scopes[scope]
		for name := range sc.Bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		if sc.Parent == jsast.InvalidScopeId || sc.Parent == scope {
			return names
		}
		scope = sc.Parent
	}
}
