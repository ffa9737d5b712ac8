package jsast

import "github.com/parsekit/parsekit/internal/source"

// PropertyKind distinguishes the shapes an object-literal or class member
// can take (spec §3.3 "Members ... object properties (shorthand, computed,
// method, spread)" and "class bodies (methods, properties, accessors,
// constructors)"). One Property/ClassMember struct with a Kind discriminant
// is the teacher's design (internal/js_ast.Property) and avoids a node
// type per permutation of {method,getter,setter,field} x {static,computed}.
type PropertyKind uint8

const (
	PropertyInit PropertyKind = iota // "a: 1", or shorthand "a" when WasShorthand
	PropertyMethod
	PropertyGet
	PropertySet
	PropertySpread      // "...rest" inside an object literal
	PropertyClassStaticBlock
)

type Property struct {
	Span            source.Span
	Kind            PropertyKind
	Key             Expr // nil for PropertyClassStaticBlock
	IsComputed      bool
	Value           Expr // method/accessor function value, or field initializer; nil for plain shorthand w/o default
	WasShorthand    bool
	IsStatic        bool // class members only
	Decorators      []Expr
	Modifiers       ParamModifier // class members only: accessibility + readonly + override
	IsAbstract      bool
	Optional        bool   // "x?: T" class field / interface-like optionality
	Definite        bool   // "x!: T" definite assignment assertion
	Type            TSType // class field / parameter property type annotation
	StaticBlock     []Stmt // valid iff Kind == PropertyClassStaticBlock
	StaticBlockScope ScopeId
}

type Fn struct {
	Name        *NamedSlot // nil for anonymous function expressions
	Params      []Param
	Body        FnBody
	IsAsync     bool
	IsGenerator bool
	ArgumentsSymbol SymbolId // "arguments" binding synthesized for non-arrow functions
	ArgsScope   ScopeId
	BodyScope   ScopeId
	ReturnType  TSType
	TypeParams  []TSTypeParam
}

// NamedSlot pairs a declared name with the symbol slot the semantic
// builder fills for it — used for function/class declaration and
// expression names, which both need a span distinct from the whole node.
type NamedSlot struct {
	Name   Atom
	Span   source.Span
	Symbol SymbolId
}

type FnBody struct {
	Span source.Span
	Body []Stmt
}

type Class struct {
	Name       *NamedSlot
	Extends    Expr // nil if no "extends"
	Implements []TSType
	Members    []Property
	Decorators []Expr
	TypeParams []TSTypeParam
	SuperTypeArguments []TSType
	Scope      ScopeId // class-name + class-body scope
}

// --- JSX ---

type JSXAttribute struct {
	Span   source.Span
	Name   Atom // may contain ":" for namespaced attrs, e.g. "xml:lang"
	Value  Expr // nil for boolean shorthand ("disabled"); *EJSXElement-wrapped or EString or an expression-container Expr otherwise
	Spread Expr // non-nil for "{...props}"; Name/Value are unused in that case
}

type JSXOpeningElement struct {
	Span       source.Span
	Name       Expr // EIdentifier, EDot chain (A.B.C), or a namespaced identifier
	Attributes []JSXAttribute
	TypeArguments []TSType
}

type JSXClosingElement struct {
	Span source.Span
	Name Expr
}
