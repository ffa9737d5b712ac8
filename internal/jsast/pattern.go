package jsast

import "github.com/parsekit/parsekit/internal/source"

// Binding is a declaration-position pattern: the left-hand side of a
// variable declarator, a function parameter, or a catch clause parameter.
// Assignment-position patterns (the LHS of a plain "=" when not declaring
// anything new) are NOT a separate Binding form — per spec §3.3's note
// that "dual assignment-target patterns mirror the binding forms", we
// reuse EArray/EObject/EIdentifier/EDot/EIndex directly as the teacher
// does (see js_parser's toAssignTarget-style reclassification, §4.4.3's
// cover-grammar note); this keeps the four binding kinds below as the only
// closed sum for patterns, matching spec's "Patterns" bullet list exactly
// (binding-identifier, array-pattern, object-pattern, assignment-pattern)
// while assignment-pattern's "has a default" shape is folded into
// ArrayBindingItem/ObjectBindingProperty rather than needing its own node.
type Binding struct {
	Span source.Span
	Data B
}

type B interface{ isBinding() }

func (*BMissing) isBinding()    {}
func (*BIdentifier) isBinding() {}
func (*BArray) isBinding()      {}
func (*BObject) isBinding()     {}

// BMissing is a hole in an array pattern, e.g. the middle slot of "[a, , b]".
type BMissing struct{}

type BIdentifier struct {
	Name   Atom
	Symbol SymbolId
}

type ArrayBindingItem struct {
	Binding Binding
	Default Expr // nil if no default
}

type BArray struct {
	Items   []ArrayBindingItem
	HasRest bool // true iff the last Items entry is the "...rest" element
}

type ObjectBindingProperty struct {
	Span       source.Span
	Key        Expr // nil when IsRest
	IsComputed bool
	Value      Binding
	Default    Expr // nil if no default
	IsRest     bool
}

type BObject struct {
	Properties []ObjectBindingProperty
}

// Param is a formal parameter: a binding plus TypeScript modifiers and
// decorators (spec §3.3 "Members ... formal parameters (with defaults,
// rest, TS modifiers)").
type ParamModifier uint8

const (
	ParamModifierNone ParamModifier = 0
	ParamModifierPublic ParamModifier = 1 << iota
	ParamModifierPrivate
	ParamModifierProtected
	ParamModifierReadonly
	ParamModifierOverride
)

func (m ParamModifier) Has(flag ParamModifier) bool { return m&flag != 0 }

// IsParameterProperty reports whether this is a TS constructor parameter
// property, i.e. it additionally declares a class field of the same name.
func (m ParamModifier) IsParameterProperty() bool {
	return m.Has(ParamModifierPublic) || m.Has(ParamModifierPrivate) || m.Has(ParamModifierProtected)
}

type Param struct {
	Span       source.Span
	Decorators []Expr
	Binding    Binding
	Default    Expr // nil if none
	Type       TSType
	IsRest     bool
	Modifiers  ParamModifier
	Optional   bool // "x?: T"
}
