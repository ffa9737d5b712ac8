package jsast

import "github.com/parsekit/parsekit/internal/source"

// Stmt mirrors Expr: a span plus a tagged-union payload.
type Stmt struct {
	Span source.Span
	Data S
}

type S interface{ isStmt() }

func (*SBlock) isStmt()            {}
func (*SEmpty) isStmt()            {}
func (*SDebugger) isStmt()         {}
func (*SDirective) isStmt()        {}
func (*SExpr) isStmt()             {}
func (*SIf) isStmt()               {}
func (*SFor) isStmt()              {}
func (*SForIn) isStmt()            {}
func (*SForOf) isStmt()            {}
func (*SWhile) isStmt()            {}
func (*SDoWhile) isStmt()          {}
func (*SWith) isStmt()             {}
func (*SSwitch) isStmt()           {}
func (*SBreak) isStmt()            {}
func (*SContinue) isStmt()         {}
func (*SReturn) isStmt()           {}
func (*SThrow) isStmt()            {}
func (*STry) isStmt()              {}
func (*SLabel) isStmt()            {}
func (*SVariableDeclaration) isStmt() {}
func (*SFunction) isStmt()         {}
func (*SClass) isStmt()            {}
func (*SImport) isStmt()           {}
func (*SExportNamed) isStmt()      {}
func (*SExportDefault) isStmt()    {}
func (*SExportAll) isStmt()        {}
func (*SExportAssign) isStmt()     {} // TS "export = expr"

// TypeScript-only declarations.
func (*STSEnum) isStmt()          {}
func (*STSModule) isStmt()        {} // namespace/module
func (*STSInterface) isStmt()     {}
func (*STSTypeAlias) isStmt()     {}
func (*STSImportEquals) isStmt()  {}

type SBlock struct {
	Body  []Stmt
	Scope ScopeId
}

type SEmpty struct{}
type SDebugger struct{}

// SDirective is a directive-prologue entry, e.g. "use strict". The parser
// recognizes these only while scanning the directive prologue (spec
// §4.4.3); once recognized they are still ordinary statements in the body
// so printers/traversals don't need a special case.
type SDirective struct {
	Value string // without quotes
}

type SExpr struct{ Value Expr }

type SIf struct {
	Test Expr
	Yes  Stmt
	No   Stmt // nil if there is no "else"
}

type SFor struct {
	Init   Stmt // *SVariableDeclaration, *SExpr, or nil
	Test   Expr // nil if omitted
	Update Expr // nil if omitted
	Body   Stmt
	Scope  ScopeId
}

type SForIn struct {
	Decl  Stmt // *SVariableDeclaration (single declarator) or *SExpr (assignment target)
	Value Expr
	Body  Stmt
	Scope ScopeId // the per-iteration scope introduced by "for (let x in y)"
}

type SForOf struct {
	Decl    Stmt
	Value   Expr
	Body    Stmt
	IsAwait bool
	Scope   ScopeId
}

type SWhile struct {
	Test Expr
	Body Stmt
}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

// SWith is parsed but never resolves references inside it statically
// (spec §8.3): "with (o) { x }" leaves "x" unresolved.
type SWith struct {
	Object Expr
	Body   Stmt
	Scope  ScopeId
}

type SwitchCase struct {
	Test *Expr // nil for "default"
	Body []Stmt
}

type SSwitch struct {
	Discriminant Expr
	Cases        []SwitchCase
	Scope        ScopeId
}

type SBreak struct{ Label Atom }    // Label.IsEmpty() if unlabeled
type SContinue struct{ Label Atom } // Label.IsEmpty() if unlabeled

type SReturn struct{ Value Expr } // nil if bare "return"
type SThrow struct{ Value Expr }

type CatchClause struct {
	Param *Binding // nil for "catch {}" (optional catch binding)
	Body  SBlock
	Scope ScopeId
}

type STry struct {
	Body    SBlock
	Catch   *CatchClause
	Finally *SBlock
}

type SLabel struct {
	Name Atom
	Body Stmt
}

// DeclarationKind distinguishes var/let/const. TypeScript enums and
// namespaces have statement kinds of their own, and an ambient
// ("declare") variable keeps its var/let/const kind.
type DeclarationKind uint8

const (
	DeclVar DeclarationKind = iota
	DeclLet
	DeclConst
)

type VariableDeclarator struct {
	Span    source.Span
	Binding Binding
	Init    Expr // nil if omitted (only legal for "var"/"let", never "const")
	TSType  TSType // nil if no type annotation
}

type SVariableDeclaration struct {
	Kind         DeclarationKind
	Declarators  []VariableDeclarator
	IsTSDeclare  bool // "declare const x: number"
	IsExported   bool // "export const x = 1"
}

type SFunction struct {
	Fn         Fn
	IsDefault  bool // printed/consulted by "export default function() {}"
	IsExported bool // "export function f() {}"
}

type SClass struct {
	Class      Class
	IsDefault  bool
	IsExported bool
}

// --- modules ---

type ImportSpecifier struct {
	Span      source.Span
	Imported  Atom // name in the module being imported from; "default" or "*" for those forms
	Local     Atom
	Symbol    SymbolId
	IsTypeOnly bool
}

type SImport struct {
	Default   *ImportSpecifier // "import x from 'm'"
	Namespace *ImportSpecifier // "import * as ns from 'm'"
	Named     []ImportSpecifier
	Source    string
	IsTypeOnly bool // "import type {T} from 'm'"
}

type ExportSpecifier struct {
	Span       source.Span
	Local      Atom
	Exported   Atom
	IsTypeOnly bool
}

// SExportNamed covers both "export {a, b}" (Source == "") and
// "export {a, b} from 'm'" (re-export, Source != "").
type SExportNamed struct {
	Specifiers []ExportSpecifier
	Source     string // "" if this is not a re-export
	IsTypeOnly bool
}

// SExportDefault covers "export default <expr>" and
// "export default function/class ...".
type SExportDefault struct {
	Value Stmt // *SFunction, *SClass, or *SExpr wrapping any other expression
}

type SExportAll struct {
	Source string
	As     Atom // "" for "export * from 'm'"; set for "export * as ns from 'm'"
}

// SExportAssign is TypeScript's "export = expr", mutually exclusive with
// ES module export forms in the same file.
type SExportAssign struct{ Value Expr }

// STSImportEquals is "import x = require('m')" or "import x = A.B.C".
type STSImportEquals struct {
	Local         Atom
	Symbol        SymbolId
	IsRequireCall bool
	Source        string // valid when IsRequireCall
	Reference     Expr   // valid when !IsRequireCall: a (possibly dotted) identifier expression
}

// --- TypeScript declarations ---

type EnumMember struct {
	Span        source.Span
	Name        Atom
	Initializer Expr // nil if omitted
}

type STSEnum struct {
	Name      Atom
	Symbol    SymbolId
	IsConst   bool
	Members   []EnumMember
	IsExported bool
}

type STSModule struct {
	Name       Atom // dotted namespaces are split into nested STSModule by the parser
	Symbol     SymbolId
	Body       []Stmt
	IsGlobal   bool // "declare global { ... }"
	Scope      ScopeId
	IsExported bool
}

type TSInterfaceMember struct {
	Span       source.Span
	Key        Expr
	IsComputed bool
	Type       TSType
	Optional   bool
	Readonly   bool
	IsMethod   bool
	Params     []Param
}

type STSInterface struct {
	Name       Atom
	Symbol     SymbolId
	TypeParams []TSTypeParam
	Extends    []TSType
	Members    []TSInterfaceMember
	IsExported bool
}

type STSTypeAlias struct {
	Name       Atom
	Symbol     SymbolId
	TypeParams []TSTypeParam
	Type       TSType
	IsExported bool
}
