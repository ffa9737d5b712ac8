package semantic

import (
	"unicode"

	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/source"
)

// bindStmt is the statement half of the single pass spec §4.5 describes:
// push a scope on every scope-introducing node, declare bindings into the
// right scope, and record (but do not yet resolve) every identifier use.
func (b *builder) bindStmt(s *jsast.Stmt) {
	switch n := s.Data.(type) {
	case *jsast.SBlock:
		scope := b.pushScope(ScopeBlock, false)
		n.Scope = scope
		for i := range n.Body {
			b.bindStmt(&n.Body[i])
		}
		b.popScope()

	case *jsast.SEmpty, *jsast.SDebugger, *jsast.SDirective:
		// no children

	case *jsast.SExpr:
		b.bindExpr(&n.Value)

	case *jsast.SIf:
		b.bindExpr(&n.Test)
		b.bindStmt(&n.Yes)
		if n.No.Data != nil {
			b.bindStmt(&n.No)
		}

	case *jsast.SFor:
		scope := b.pushScope(ScopeFor, false)
		n.Scope = scope
		if n.Init.Data != nil {
			b.bindStmt(&n.Init)
		}
		if n.Test.Data != nil {
			b.bindExpr(&n.Test)
		}
		if n.Update.Data != nil {
			b.bindExpr(&n.Update)
		}
		b.bindStmt(&n.Body)
		b.popScope()

	case *jsast.SForIn:
		scope := b.pushScope(ScopeFor, false)
		n.Scope = scope
		b.bindStmt(&n.Decl)
		b.bindExpr(&n.Value)
		b.bindStmt(&n.Body)
		b.popScope()

	case *jsast.SForOf:
		scope := b.pushScope(ScopeFor, false)
		n.Scope = scope
		b.bindStmt(&n.Decl)
		b.bindExpr(&n.Value)
		b.bindStmt(&n.Body)
		b.popScope()

	case *jsast.SWhile:
		b.bindExpr(&n.Test)
		b.bindStmt(&n.Body)

	case *jsast.SDoWhile:
		b.bindStmt(&n.Body)
		b.bindExpr(&n.Test)

	case *jsast.SWith:
		b.bindExpr(&n.Object)
		scope := b.pushScope(ScopeWith, false)
		n.Scope = scope
		b.bindStmt(&n.Body)
		b.popScope()

	case *jsast.SSwitch:
		b.bindExpr(&n.Discriminant)
		scope := b.pushScope(ScopeBlock, false)
		n.Scope = scope
		for i := range n.Cases {
			c := &n.Cases[i]
			if c.Test != nil {
				b.bindExpr(c.Test)
			}
			for j := range c.Body {
				b.bindStmt(&c.Body[j])
			}
		}
		b.popScope()

	case *jsast.SBreak, *jsast.SContinue:
		// Labels live in their own namespace (spec §3.4 names no label
		// facet); not modeled as a symbol/reference pair here.

	case *jsast.SReturn:
		if n.Value.Data != nil {
			b.bindExpr(&n.Value)
		}

	case *jsast.SThrow:
		b.bindExpr(&n.Value)

	case *jsast.STry:
		b.bindBlockBody(&n.Body)
		if n.Catch != nil {
			catchScope := b.pushScope(ScopeCatch, false)
			n.Catch.Scope = catchScope
			if n.Catch.Param != nil {
				b.bindBindingDeclare(n.Catch.Param, SymbolCatchParam)
			}
			b.bindBlockBody(&n.Catch.Body)
			b.popScope()
		}
		if n.Finally != nil {
			b.bindBlockBody(n.Finally)
		}

	case *jsast.SLabel:
		b.bindStmt(&n.Body)

	case *jsast.SVariableDeclaration:
		flags := declKindFlags(n.Kind)
		if n.IsTSDeclare {
			flags |= SymbolAmbient
		}
		for i := range n.Declarators {
			d := &n.Declarators[i]
			b.bindBindingDeclare(&d.Binding, flags)
			if d.Init.Data != nil {
				b.bindExpr(&d.Init)
			}
		}

	case *jsast.SFunction:
		b.declareFunctionName(&n.Fn, SymbolFunction)
		b.bindFunction(&n.Fn, true)

	case *jsast.SClass:
		if n.Class.Name != nil {
			id := b.declareLexical(n.Class.Name.Name, n.Class.Name.Span, SymbolClass)
			n.Class.Name.Symbol = id
		}
		b.bindClass(&n.Class, true)

	case *jsast.SImport:
		b.bindImport(n)

	case *jsast.SExportNamed:
		// Local symbols are marked exported while building the module
		// record (spec §3.5), which runs after this whole pass so
		// hoisted/later declarations are already visible.

	case *jsast.SExportDefault:
		b.bindStmt(&n.Value)

	case *jsast.SExportAll:
		// No local binding introduced.

	case *jsast.SExportAssign:
		b.bindExpr(&n.Value)

	case *jsast.STSEnum:
		b.bindTSEnum(n, s.Span)

	case *jsast.STSModule:
		b.bindTSModule(n, s.Span)

	case *jsast.STSInterface:
		b.bindTSInterface(n, s.Span)

	case *jsast.STSTypeAlias:
		b.bindTSTypeAlias(n, s.Span)

	case *jsast.STSImportEquals:
		b.bindImportEquals(n, s.Span)
	}
}

// bindBlockBody binds the statements of an SBlock value without treating
// it as a standalone Stmt, since STry's Body/Finally fields are plain
// SBlock values rather than Stmt wrappers.
func (b *builder) bindBlockBody(blk *jsast.SBlock) {
	scope := b.pushScope(ScopeBlock, false)
	blk.Scope = scope
	for i := range blk.Body {
		b.bindStmt(&blk.Body[i])
	}
	b.popScope()
}

func declKindFlags(kind jsast.DeclarationKind) SymbolFlags {
	switch kind {
	case jsast.DeclVar:
		return SymbolVar
	case jsast.DeclConst:
		return SymbolConst
	default:
		return SymbolLet
	}
}

// --- bindings (declaration-position patterns) ---

func (b *builder) bindBindingDeclare(bind *jsast.Binding, flags SymbolFlags) {
	if bind == nil || bind.Data == nil {
		return
	}
	switch n := bind.Data.(type) {
	case *jsast.BIdentifier:
		var id jsast.SymbolId
		if isHoistable(flags) {
			id = b.declareHoisted(n.Name, bind.Span, flags)
		} else {
			id = b.declareLexical(n.Name, bind.Span, flags)
		}
		n.Symbol = id

	case *jsast.BArray:
		for i := range n.Items {
			item := &n.Items[i]
			b.bindBindingDeclare(&item.Binding, flags)
			if item.Default.Data != nil {
				b.bindExpr(&item.Default)
			}
		}

	case *jsast.BObject:
		for i := range n.Properties {
			p := &n.Properties[i]
			if p.IsComputed && p.Key.Data != nil {
				b.bindExpr(&p.Key)
			}
			b.bindBindingDeclare(&p.Value, flags)
			if p.Default.Data != nil {
				b.bindExpr(&p.Default)
			}
		}

	case *jsast.BMissing:
		// array-pattern hole, nothing to declare
	}
}

// --- expressions ---

func (b *builder) bindExpr(e *jsast.Expr) { b.bindExprFlags(e, RefRead) }

func (b *builder) bindExprFlags(e *jsast.Expr, flags ReferenceFlags) {
	if e == nil || e.Data == nil {
		return
	}
	switch n := e.Data.(type) {
	case *jsast.EIdentifier:
		n.Reference = b.recordReference(n.Name, e.Span, flags)

	case *jsast.EArray:
		for i := range n.Items {
			b.bindExpr(&n.Items[i])
		}

	case *jsast.EObject:
		for i := range n.Properties {
			b.bindProperty(&n.Properties[i])
		}

	case *jsast.ESpread:
		b.bindExprFlags(&n.Value, flags)

	case *jsast.EUnary:
		if n.Op.AssignTarget() == jsast.AssignTargetUpdate {
			b.bindExprFlags(&n.Value, RefRead|RefWrite)
		} else {
			b.bindExpr(&n.Value)
		}

	case *jsast.EBinary:
		switch n.Op.AssignTarget() {
		case jsast.AssignTargetReplace:
			b.bindExprFlags(&n.Left, RefWrite)
		case jsast.AssignTargetUpdate:
			b.bindExprFlags(&n.Left, RefRead|RefWrite)
		default:
			b.bindExpr(&n.Left)
		}
		b.bindExpr(&n.Right)

	case *jsast.EConditional:
		b.bindExpr(&n.Test)
		b.bindExpr(&n.Yes)
		b.bindExpr(&n.No)

	case *jsast.ESequence:
		for i := range n.Expressions {
			b.bindExpr(&n.Expressions[i])
		}

	case *jsast.EDot:
		b.bindExpr(&n.Target)

	case *jsast.EIndex:
		b.bindExpr(&n.Target)
		b.bindExpr(&n.Index)

	case *jsast.EPrivateIn:
		b.bindExpr(&n.Object)

	case *jsast.ECall:
		b.bindExpr(&n.Target)
		for i := range n.Args {
			b.bindExpr(&n.Args[i])
		}

	case *jsast.ENew:
		b.bindExpr(&n.Target)
		for i := range n.Args {
			b.bindExpr(&n.Args[i])
		}

	case *jsast.EChain:
		b.bindExpr(&n.Expression)

	case *jsast.EAwait:
		b.bindExpr(&n.Value)

	case *jsast.EYield:
		if n.Value.Data != nil {
			b.bindExpr(&n.Value)
		}

	case *jsast.ETemplate:
		for i := range n.Parts {
			b.bindExpr(&n.Parts[i].Value)
		}

	case *jsast.ETaggedTemplate:
		b.bindExpr(&n.Tag)
		for i := range n.Template.Parts {
			b.bindExpr(&n.Template.Parts[i].Value)
		}

	case *jsast.EArrowFunction:
		b.bindArrowFunction(n)

	case *jsast.EFunction:
		b.bindFunction(&n.Fn, false)

	case *jsast.EClass:
		b.bindClass(&n.Class, false)

	case *jsast.EImportCall:
		b.bindExpr(&n.Source)
		if n.Options.Data != nil {
			b.bindExpr(&n.Options)
		}

	case *jsast.EJSXElement:
		b.bindJSXName(&n.Opening.Name)
		for i := range n.Opening.Attributes {
			b.bindJSXAttribute(&n.Opening.Attributes[i])
		}
		for i := range n.Children {
			b.bindExpr(&n.Children[i])
		}

	case *jsast.EJSXFragment:
		for i := range n.Children {
			b.bindExpr(&n.Children[i])
		}

	case *jsast.EAs:
		b.bindExpr(&n.Expression)

	case *jsast.ESatisfies:
		b.bindExpr(&n.Expression)

	case *jsast.ETypeAssertion:
		b.bindExpr(&n.Expression)

	case *jsast.ENonNull:
		b.bindExpr(&n.Expression)

	case *jsast.EInstantiation:
		b.bindExpr(&n.Expression)

		// Remaining kinds (ENull, EUndefined, EBoolean, ENumber, EBigInt,
		// EString, ERegExp, EThis, ESuper, ENewTarget, EImportMeta,
		// EMissing, EPrivateIdentifier, EJSXText) carry no children.
	}
}

// bindJSXName treats a JSX element name as an identifier reference only
// when it denotes a user component (capitalized or a dotted member
// chain); a bare lowercase name is an intrinsic tag ("div", "span") with
// no binding of its own.
func (b *builder) bindJSXName(e *jsast.Expr) {
	if ident, ok := e.Data.(*jsast.EIdentifier); ok {
		name := ident.Name.String()
		if len(name) > 0 && unicode.IsLower(rune(name[0])) {
			return
		}
	}
	b.bindExpr(e)
}

func (b *builder) bindJSXAttribute(a *jsast.JSXAttribute) {
	if a.Spread.Data != nil {
		b.bindExpr(&a.Spread)
		return
	}
	if a.Value.Data != nil {
		b.bindExpr(&a.Value)
	}
}

func (b *builder) bindProperty(p *jsast.Property) {
	for i := range p.Decorators {
		b.bindExpr(&p.Decorators[i])
	}
	switch p.Kind {
	case jsast.PropertyClassStaticBlock:
		scope := b.pushScope(ScopeBlock, false)
		p.StaticBlockScope = scope
		for i := range p.StaticBlock {
			b.bindStmt(&p.StaticBlock[i])
		}
		b.popScope()

	case jsast.PropertySpread:
		b.bindExpr(&p.Value)

	case jsast.PropertyMethod, jsast.PropertyGet, jsast.PropertySet:
		if p.IsComputed && p.Key.Data != nil {
			b.bindExpr(&p.Key)
		}
		if fn, ok := p.Value.Data.(*jsast.EFunction); ok {
			b.bindFunction(&fn.Fn, false)
		}

	default: // PropertyInit
		if p.IsComputed {
			b.bindExpr(&p.Key)
		}
		if p.Value.Data != nil {
			b.bindExpr(&p.Value)
		}
	}
}

// --- functions / arrows / classes ---

func (b *builder) declareFunctionName(fn *jsast.Fn, flags SymbolFlags) {
	if fn.Name == nil {
		return
	}
	fn.Name.Symbol = b.declareHoisted(fn.Name.Name, fn.Name.Span, flags)
}

func (b *builder) bindFunction(fn *jsast.Fn, isDeclaration bool) {
	argsScope := b.pushScope(ScopeFunctionArgs, false)
	fn.ArgsScope = argsScope

	if !isDeclaration && fn.Name != nil {
		fn.Name.Symbol = b.declareLexical(fn.Name.Name, fn.Name.Span, SymbolFunction)
	}
	for i := range fn.TypeParams {
		fn.TypeParams[i].Symbol = b.declareLexical(fn.TypeParams[i].Name, fn.TypeParams[i].Span, SymbolTypeOnly)
	}
	for i := range fn.Params {
		b.bindParam(&fn.Params[i])
	}
	fn.ArgumentsSymbol = b.declareLexical(b.arena.Intern("arguments"), source.Span{}, SymbolVar)

	b.fnStack = append(b.fnStack, fn)
	bodyScope := b.pushScope(ScopeFunctionBody, false)
	fn.BodyScope = bodyScope
	for i := range fn.Body.Body {
		b.bindStmt(&fn.Body.Body[i])
	}
	if b.opts.BuildCFG {
		b.collectedCFGs = append(b.collectedCFGs, buildCFG(fn))
	}
	b.popScope()
	b.fnStack = b.fnStack[:len(b.fnStack)-1]
	b.popScope()
}

func (b *builder) bindArrowFunction(fn *jsast.EArrowFunction) {
	b.pushScope(ScopeFunctionArgs, false)
	for i := range fn.Params {
		b.bindParam(&fn.Params[i])
	}
	b.pushScope(ScopeFunctionBody, false)
	if fn.PreferExpr {
		b.bindExpr(&fn.ExprBody)
	} else {
		for i := range fn.Body.Body {
			b.bindStmt(&fn.Body.Body[i])
		}
	}
	b.popScope()
	b.popScope()
}

func (b *builder) bindParam(p *jsast.Param) {
	for i := range p.Decorators {
		b.bindExpr(&p.Decorators[i])
	}
	b.bindBindingDeclare(&p.Binding, SymbolParameter)
	if p.Default.Data != nil {
		b.bindExpr(&p.Default)
	}
}

func (b *builder) bindClass(cls *jsast.Class, nameAlreadyDeclaredOuter bool) {
	for i := range cls.Decorators {
		b.bindExpr(&cls.Decorators[i])
	}
	if cls.Extends.Data != nil {
		b.bindExpr(&cls.Extends)
	}
	scope := b.pushScope(ScopeClass, true)
	cls.Scope = scope
	if !nameAlreadyDeclaredOuter && cls.Name != nil {
		cls.Name.Symbol = b.declareLexical(cls.Name.Name, cls.Name.Span, SymbolClass)
	}
	for i := range cls.TypeParams {
		cls.TypeParams[i].Symbol = b.declareLexical(cls.TypeParams[i].Name, cls.TypeParams[i].Span, SymbolTypeOnly)
	}
	for i := range cls.Members {
		b.bindProperty(&cls.Members[i])
	}
	b.popScope()
}

// --- modules ---

func (b *builder) bindImport(n *jsast.SImport) {
	declare := func(spec *jsast.ImportSpecifier) {
		flags := SymbolImport
		if n.IsTypeOnly || spec.IsTypeOnly {
			flags |= SymbolTypeOnly
		}
		spec.Symbol = b.declareLexical(spec.Local, spec.Span, flags)
	}
	if n.Default != nil {
		declare(n.Default)
	}
	if n.Namespace != nil {
		declare(n.Namespace)
	}
	for i := range n.Named {
		declare(&n.Named[i])
	}
}

func (b *builder) bindImportEquals(n *jsast.STSImportEquals, span source.Span) {
	n.Symbol = b.declareLexical(n.Local, span, SymbolImport)
	if !n.IsRequireCall && n.Reference.Data != nil {
		b.bindExpr(&n.Reference)
	}
}

// --- TypeScript declarations ---

func (b *builder) bindTSEnum(n *jsast.STSEnum, span source.Span) {
	flags := SymbolFlags(0)
	if n.IsConst {
		flags |= SymbolConst
	}
	n.Symbol = b.declareLexical(n.Name, span, flags)
	for i := range n.Members {
		if n.Members[i].Initializer.Data != nil {
			b.bindExpr(&n.Members[i].Initializer)
		}
	}
}

func (b *builder) bindTSModule(n *jsast.STSModule, span source.Span) {
	if !n.IsGlobal {
		n.Symbol = b.declareLexical(n.Name, span, SymbolNamespace)
	}
	scope := b.pushScope(ScopeBlock, false)
	n.Scope = scope
	for i := range n.Body {
		b.bindStmt(&n.Body[i])
	}
	b.popScope()
}

func (b *builder) bindTSInterface(n *jsast.STSInterface, span source.Span) {
	n.Symbol = b.declareLexical(n.Name, span, SymbolTypeOnly)
	if len(n.TypeParams) > 0 || hasComputedMember(n.Members) {
		b.pushScope(ScopeBlock, false)
		for i := range n.TypeParams {
			n.TypeParams[i].Symbol = b.declareLexical(n.TypeParams[i].Name, n.TypeParams[i].Span, SymbolTypeOnly)
		}
		for i := range n.Members {
			if n.Members[i].IsComputed {
				b.bindExpr(&n.Members[i].Key)
			}
		}
		b.popScope()
	}
}

func hasComputedMember(members []jsast.TSInterfaceMember) bool {
	for _, m := range members {
		if m.IsComputed {
			return true
		}
	}
	return false
}

func (b *builder) bindTSTypeAlias(n *jsast.STSTypeAlias, span source.Span) {
	n.Symbol = b.declareLexical(n.Name, span, SymbolTypeOnly)
	if len(n.TypeParams) == 0 {
		return
	}
	b.pushScope(ScopeBlock, false)
	for i := range n.TypeParams {
		n.TypeParams[i].Symbol = b.declareLexical(n.TypeParams[i].Name, n.TypeParams[i].Span, SymbolTypeOnly)
	}
	b.popScope()
}
