package jsast

import "github.com/parsekit/parsekit/internal/source"

// TSType is the type-annotation sum. The core parses these into AST nodes
// (spec §4.4.3: "type annotations, type parameters, type arguments") but
// never checks or infers them — the one exception is const-enum member
// evaluation (spec §3.7/§4.5.1), which only ever needs Expr, not TSType.
// A nil TSType interface value means "no annotation was written".
type TSType interface{ isTSType() }

func (*TSKeyword) isTSType()         {}
func (*TSTypeReference) isTSType()   {}
func (*TSUnionType) isTSType()       {}
func (*TSIntersectionType) isTSType() {}
func (*TSArrayType) isTSType()       {}
func (*TSTupleType) isTSType()       {}
func (*TSFunctionType) isTSType()    {}
func (*TSConstructorType) isTSType() {}
func (*TSTypeLiteral) isTSType()     {}
func (*TSLiteralType) isTSType()     {}
func (*TSParenthesizedType) isTSType() {}
func (*TSTypeOperator) isTSType()    {}
func (*TSIndexedAccessType) isTSType() {}
func (*TSConditionalType) isTSType() {}
func (*TSMappedType) isTSType()      {}
func (*TSImportType) isTSType()      {}
func (*TSInferType) isTSType()       {}

// TSKeywordKind enumerates the built-in predefined type keywords.
type TSKeywordKind uint8

const (
	TSAny TSKeywordKind = iota
	TSUnknown
	TSNever
	TSVoid
	TSUndefined
	TSNull
	TSBoolean
	TSNumber
	TSString
	TSBigInt
	TSSymbol
	TSObjectKeyword
	TSThisType
)

type TSKeyword struct {
	Span source.Span
	Kind TSKeywordKind
}

type TSTypeReference struct {
	Span          source.Span
	Name          Atom // dotted names are flattened to "A.B.C" by the parser
	TypeArguments []TSType
}

type TSUnionType struct{ Types []TSType }
type TSIntersectionType struct{ Types []TSType }
type TSArrayType struct{ Element TSType }
type TSTupleType struct {
	Elements []TSType
	HasRest  bool
}

type TSFunctionType struct {
	Params     []Param
	ReturnType TSType
	TypeParams []TSTypeParam
}

type TSConstructorType struct {
	Params     []Param
	ReturnType TSType
	TypeParams []TSTypeParam
	IsAbstract bool
}

type TSTypeLiteralMember struct {
	Span       source.Span
	Key        Expr
	IsComputed bool
	Type       TSType
	Optional   bool
	Readonly   bool
	IsMethod   bool
	Params     []Param // valid iff IsMethod, or this is a call/construct signature (Key == nil)
	IsIndexSignature bool
	IsCallSignature  bool
}

type TSTypeLiteral struct{ Members []TSTypeLiteralMember }

// TSLiteralType covers "type X = 'a' | 1 | true" members.
type TSLiteralType struct{ Value Expr }

type TSParenthesizedType struct{ Type TSType }

type TSTypeOperatorKind uint8

const (
	TSOperatorKeyof TSTypeOperatorKind = iota
	TSOperatorUnique
	TSOperatorReadonly
)

type TSTypeOperator struct {
	Op   TSTypeOperatorKind
	Type TSType
}

type TSIndexedAccessType struct {
	Object TSType
	Index  TSType
}

type TSConditionalType struct {
	CheckType   TSType
	ExtendsType TSType
	TrueType    TSType
	FalseType   TSType
}

type TSMappedType struct {
	TypeParam    TSTypeParam
	Constraint   TSType
	NameType     TSType // "as" clause remapping, nil if absent
	ValueType    TSType
	Optional     int8 // 0 none, 1 "+?", -1 "-?"
	ReadonlyMark int8 // 0 none, 1 "+readonly", -1 "-readonly"
}

type TSImportType struct {
	Source        string
	QualifierName Atom // "" if importing the module's default/namespace directly
	TypeArguments []TSType
}

type TSInferType struct{ TypeParam TSTypeParam }

type TSTypeParam struct {
	Span       source.Span
	Name       Atom
	Symbol     SymbolId
	Constraint TSType
	Default    TSType
	Modifiers  ParamModifier // "in"/"out" variance annotations reuse the readonly-like modifier bitset
}
