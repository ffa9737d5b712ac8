package visit

import "github.com/parsekit/parsekit/internal/jsast"

// Action is returned by MutVisitor.Enter to control descent into a node's
// children (spec §4.6: the mutable walk supports skipping children from
// inside the enter callback; the immutable Walk has no such mechanism).
type Action uint8

const (
	// Continue descends into node's children as usual.
	Continue Action = iota
	// SkipChildren visits node's Leave callback (if any) without ever
	// calling Enter/Leave for its children — the move_expression use case
	// is to swap a child out from under a node a caller is about to
	// rebuild wholesale, where descending further would be wasted work.
	SkipChildren
)

// MutVisitor drives WalkMut. Enter is called on the way down; if it
// returns SkipChildren, none of node's children are visited and Leave is
// called immediately. Leave is always called once Enter has been, paired
// depth-first exactly like the immutable Walk's enter/leave convention.
type MutVisitor interface {
	Enter(ctx *Ctx, node Node) Action
	Leave(ctx *Ctx, node Node)
}

// Ctx is threaded through one WalkMut call. It carries the ancestor stack
// (spec §4.6: "exposes ... an ancestor stack"), the ScopeId the walk is
// currently inside (spec: "scope-aware iteration exposing the current
// ScopeId"), and the move-expression primitive.
type Ctx struct {
	ancestors []Node
	scopes    []jsast.ScopeId
}

// Ancestors returns the chain of nodes currently being descended through,
// innermost last. The slice is owned by the walk; callers that need to
// keep it past the current callback must copy it.
func (c *Ctx) Ancestors() []Node { return c.ancestors }

// Parent returns the immediate ancestor of the node currently being
// visited, or nil at the program root.
func (c *Ctx) Parent() Node {
	if len(c.ancestors) == 0 {
		return nil
	}
	return c.ancestors[len(c.ancestors)-1]
}

// Scope reports the ScopeId enclosing the node currently being visited.
func (c *Ctx) Scope() jsast.ScopeId {
	if len(c.scopes) == 0 {
		return jsast.InvalidScopeId
	}
	return c.scopes[len(c.scopes)-1]
}

func (c *Ctx) push(n Node)            { c.ancestors = append(c.ancestors, n) }
func (c *Ctx) pop()                   { c.ancestors = c.ancestors[:len(c.ancestors)-1] }
func (c *Ctx) pushScope(s jsast.ScopeId) { c.scopes = append(c.scopes, s) }
func (c *Ctx) popScope()              { c.scopes = c.scopes[:len(c.scopes)-1] }

// MoveExpression swaps the expression at slot out of the tree with a
// cheap *jsast.EMissing sentinel and returns the original value by copy
// (spec §4.6/§9 "move semantics"). Ownership of the returned Expr passes
// to the caller, who is responsible for re-inserting it (or a replacement
// built from it) somewhere else in the tree — WalkMut never does this on
// its own, since it has no way to know where the caller wants it to end
// up.
func (c *Ctx) MoveExpression(slot *jsast.Expr) jsast.Expr {
	old := *slot
	*slot = jsast.Expr{Span: old.Span, Data: &jsast.EMissing{}}
	return old
}

// WalkMut traverses program exactly like Walk, except each node is
// offered to v.Enter before its children and v.Leave after, with the
// ancestor stack and enclosing ScopeId available through ctx at every
// step, and Enter able to return SkipChildren to prune a subtree.
func WalkMut(program *jsast.Program, v MutVisitor) {
	ctx := &Ctx{}
	ctx.pushScope(program.Scope)
	mwalk(ctx, v, program)
	ctx.popScope()
}

func mwalk(ctx *Ctx, v MutVisitor, n Node) {
	if v.Enter(ctx, n) == SkipChildren {
		v.Leave(ctx, n)
		return
	}
	ctx.push(n)
	switch x := n.(type) {
	case *jsast.Program:
		mwalkStmtList(ctx, v, x.Body)
	case *jsast.Stmt:
		mwalkStmt(ctx, v, x)
	case *jsast.Expr:
		mwalkExpr(ctx, v, x)
	case *jsast.Binding:
		mwalkBinding(ctx, v, x)
	case *jsast.Property:
		mwalkProperty(ctx, v, x)
	case *jsast.Param:
		mwalkParam(ctx, v, x)
	case *jsast.Fn:
		mwalkFn(ctx, v, x)
	case *jsast.Class:
		mwalkClass(ctx, v, x)
	case *jsast.SwitchCase:
		if x.Test != nil {
			mwalk(ctx, v, x.Test)
		}
		mwalkStmtList(ctx, v, x.Body)
	case *jsast.CatchClause:
		ctx.pushScope(x.Scope)
		if x.Param != nil {
			mwalk(ctx, v, x.Param)
		}
		mwalkStmtList(ctx, v, x.Body.Body)
		ctx.popScope()
	case *jsast.VariableDeclarator:
		mwalk(ctx, v, &x.Binding)
		if x.Init.Data != nil {
			mwalk(ctx, v, &x.Init)
		}
	case *jsast.ArrayBindingItem:
		mwalk(ctx, v, &x.Binding)
		if x.Default.Data != nil {
			mwalk(ctx, v, &x.Default)
		}
	case *jsast.ObjectBindingProperty:
		if x.Key.Data != nil {
			mwalk(ctx, v, &x.Key)
		}
		mwalk(ctx, v, &x.Value)
		if x.Default.Data != nil {
			mwalk(ctx, v, &x.Default)
		}
	case *jsast.JSXAttribute:
		if x.Value.Data != nil {
			mwalk(ctx, v, &x.Value)
		}
		if x.Spread.Data != nil {
			mwalk(ctx, v, &x.Spread)
		}
	case *jsast.JSXOpeningElement:
		mwalk(ctx, v, &x.Name)
		for i := range x.Attributes {
			mwalk(ctx, v, &x.Attributes[i])
		}
	case *jsast.JSXClosingElement:
		mwalk(ctx, v, &x.Name)
	case *jsast.TemplatePart:
		mwalk(ctx, v, &x.Value)
	case *jsast.EnumMember:
		if x.Initializer.Data != nil {
			mwalk(ctx, v, &x.Initializer)
		}
	case *jsast.TSInterfaceMember:
		if x.Key.Data != nil {
			mwalk(ctx, v, &x.Key)
		}
		for i := range x.Params {
			mwalk(ctx, v, &x.Params[i])
		}
	}
	ctx.pop()
	v.Leave(ctx, n)
}

func mwalkStmtList(ctx *Ctx, v MutVisitor, list []jsast.Stmt) {
	for i := range list {
		mwalk(ctx, v, &list[i])
	}
}

func mwalkExprList(ctx *Ctx, v MutVisitor, list []jsast.Expr) {
	for i := range list {
		mwalk(ctx, v, &list[i])
	}
}

func mwalkParamList(ctx *Ctx, v MutVisitor, list []jsast.Param) {
	for i := range list {
		mwalk(ctx, v, &list[i])
	}
}

func mwalkFn(ctx *Ctx, v MutVisitor, fn *jsast.Fn) {
	ctx.pushScope(fn.ArgsScope)
	mwalkParamList(ctx, v, fn.Params)
	ctx.popScope()
	ctx.pushScope(fn.BodyScope)
	mwalkStmtList(ctx, v, fn.Body.Body)
	ctx.popScope()
}

func mwalkClass(ctx *Ctx, v MutVisitor, c *jsast.Class) {
	if c.Extends.Data != nil {
		mwalk(ctx, v, &c.Extends)
	}
	for i := range c.Decorators {
		mwalk(ctx, v, &c.Decorators[i])
	}
	ctx.pushScope(c.Scope)
	for i := range c.Members {
		mwalk(ctx, v, &c.Members[i])
	}
	ctx.popScope()
}

func mwalkProperty(ctx *Ctx, v MutVisitor, p *jsast.Property) {
	if p.Key.Data != nil {
		mwalk(ctx, v, &p.Key)
	}
	for i := range p.Decorators {
		mwalk(ctx, v, &p.Decorators[i])
	}
	if p.Value.Data != nil {
		mwalk(ctx, v, &p.Value)
	}
	if p.Kind == jsast.PropertyClassStaticBlock {
		ctx.pushScope(p.StaticBlockScope)
		mwalkStmtList(ctx, v, p.StaticBlock)
		ctx.popScope()
	}
}

func mwalkBinding(ctx *Ctx, v MutVisitor, b *jsast.Binding) {
	switch n := b.Data.(type) {
	case *jsast.BArray:
		for i := range n.Items {
			mwalk(ctx, v, &n.Items[i])
		}
	case *jsast.BObject:
		for i := range n.Properties {
			mwalk(ctx, v, &n.Properties[i])
		}
	}
}

func mwalkParam(ctx *Ctx, v MutVisitor, p *jsast.Param) {
	for i := range p.Decorators {
		mwalk(ctx, v, &p.Decorators[i])
	}
	mwalk(ctx, v, &p.Binding)
	if p.Default.Data != nil {
		mwalk(ctx, v, &p.Default)
	}
}

func mwalkStmt(ctx *Ctx, v MutVisitor, s *jsast.Stmt) {
	switch n := s.Data.(type) {
	case *jsast.SBlock:
		ctx.pushScope(n.Scope)
		mwalkStmtList(ctx, v, n.Body)
		ctx.popScope()
	case *jsast.SExpr:
		mwalk(ctx, v, &n.Value)
	case *jsast.SIf:
		mwalk(ctx, v, &n.Test)
		mwalk(ctx, v, &n.Yes)
		if n.No.Data != nil {
			mwalk(ctx, v, &n.No)
		}
	case *jsast.SFor:
		ctx.pushScope(n.Scope)
		if n.Init.Data != nil {
			mwalk(ctx, v, &n.Init)
		}
		if n.Test.Data != nil {
			mwalk(ctx, v, &n.Test)
		}
		if n.Update.Data != nil {
			mwalk(ctx, v, &n.Update)
		}
		mwalk(ctx, v, &n.Body)
		ctx.popScope()
	case *jsast.SForIn:
		ctx.pushScope(n.Scope)
		mwalk(ctx, v, &n.Decl)
		mwalk(ctx, v, &n.Value)
		mwalk(ctx, v, &n.Body)
		ctx.popScope()
	case *jsast.SForOf:
		ctx.pushScope(n.Scope)
		mwalk(ctx, v, &n.Decl)
		mwalk(ctx, v, &n.Value)
		mwalk(ctx, v, &n.Body)
		ctx.popScope()
	case *jsast.SWhile:
		mwalk(ctx, v, &n.Test)
		mwalk(ctx, v, &n.Body)
	case *jsast.SDoWhile:
		mwalk(ctx, v, &n.Body)
		mwalk(ctx, v, &n.Test)
	case *jsast.SWith:
		ctx.pushScope(n.Scope)
		mwalk(ctx, v, &n.Object)
		mwalk(ctx, v, &n.Body)
		ctx.popScope()
	case *jsast.SSwitch:
		mwalk(ctx, v, &n.Discriminant)
		ctx.pushScope(n.Scope)
		for i := range n.Cases {
			mwalk(ctx, v, &n.Cases[i])
		}
		ctx.popScope()
	case *jsast.SReturn:
		if n.Value.Data != nil {
			mwalk(ctx, v, &n.Value)
		}
	case *jsast.SThrow:
		mwalk(ctx, v, &n.Value)
	case *jsast.STry:
		mwalkStmtList(ctx, v, n.Body.Body)
		if n.Catch != nil {
			mwalk(ctx, v, n.Catch)
		}
		if n.Finally != nil {
			mwalkStmtList(ctx, v, n.Finally.Body)
		}
	case *jsast.SLabel:
		mwalk(ctx, v, &n.Body)
	case *jsast.SVariableDeclaration:
		for i := range n.Declarators {
			mwalk(ctx, v, &n.Declarators[i])
		}
	case *jsast.SFunction:
		mwalk(ctx, v, &n.Fn)
	case *jsast.SClass:
		mwalk(ctx, v, &n.Class)
	case *jsast.SExportDefault:
		mwalk(ctx, v, &n.Value)
	case *jsast.SExportAssign:
		mwalk(ctx, v, &n.Value)
	case *jsast.STSImportEquals:
		if n.Reference.Data != nil {
			mwalk(ctx, v, &n.Reference)
		}
	case *jsast.STSEnum:
		for i := range n.Members {
			mwalk(ctx, v, &n.Members[i])
		}
	case *jsast.STSModule:
		ctx.pushScope(n.Scope)
		mwalkStmtList(ctx, v, n.Body)
		ctx.popScope()
	case *jsast.STSInterface:
		for i := range n.Members {
			mwalk(ctx, v, &n.Members[i])
		}
	}
}

func mwalkExpr(ctx *Ctx, v MutVisitor, e *jsast.Expr) {
	switch n := e.Data.(type) {
	case *jsast.EDot:
		mwalk(ctx, v, &n.Target)
	case *jsast.EIndex:
		mwalk(ctx, v, &n.Target)
		mwalk(ctx, v, &n.Index)
	case *jsast.EPrivateIn:
		mwalk(ctx, v, &n.Object)
	case *jsast.ECall:
		mwalk(ctx, v, &n.Target)
		mwalkExprList(ctx, v, n.Args)
	case *jsast.ENew:
		mwalk(ctx, v, &n.Target)
		mwalkExprList(ctx, v, n.Args)
	case *jsast.EChain:
		mwalk(ctx, v, &n.Expression)
	case *jsast.EUnary:
		mwalk(ctx, v, &n.Value)
	case *jsast.EBinary:
		mwalk(ctx, v, &n.Left)
		mwalk(ctx, v, &n.Right)
	case *jsast.EConditional:
		mwalk(ctx, v, &n.Test)
		mwalk(ctx, v, &n.Yes)
		mwalk(ctx, v, &n.No)
	case *jsast.ESequence:
		mwalkExprList(ctx, v, n.Expressions)
	case *jsast.EAwait:
		mwalk(ctx, v, &n.Value)
	case *jsast.EYield:
		if n.Value.Data != nil {
			mwalk(ctx, v, &n.Value)
		}
	case *jsast.EArray:
		mwalkExprList(ctx, v, n.Items)
	case *jsast.EObject:
		for i := range n.Properties {
			mwalk(ctx, v, &n.Properties[i])
		}
	case *jsast.ESpread:
		mwalk(ctx, v, &n.Value)
	case *jsast.EArrowFunction:
		mwalkParamList(ctx, v, n.Params)
		if n.PreferExpr {
			mwalk(ctx, v, &n.ExprBody)
		} else {
			mwalkStmtList(ctx, v, n.Body.Body)
		}
	case *jsast.EFunction:
		mwalk(ctx, v, &n.Fn)
	case *jsast.EClass:
		mwalk(ctx, v, &n.Class)
	case *jsast.EImportCall:
		mwalk(ctx, v, &n.Source)
		if n.Options.Data != nil {
			mwalk(ctx, v, &n.Options)
		}
	case *jsast.EJSXElement:
		mwalk(ctx, v, &n.Opening)
		if n.Closing != nil {
			mwalk(ctx, v, n.Closing)
		}
		mwalkExprList(ctx, v, n.Children)
	case *jsast.EJSXFragment:
		mwalkExprList(ctx, v, n.Children)
	case *jsast.ETemplate:
		for i := range n.Parts {
			mwalk(ctx, v, &n.Parts[i])
		}
	case *jsast.ETaggedTemplate:
		mwalk(ctx, v, &n.Tag)
		for i := range n.Template.Parts {
			mwalk(ctx, v, &n.Template.Parts[i])
		}
	case *jsast.EAs:
		mwalk(ctx, v, &n.Expression)
	case *jsast.ESatisfies:
		mwalk(ctx, v, &n.Expression)
	case *jsast.ETypeAssertion:
		mwalk(ctx, v, &n.Expression)
	case *jsast.ENonNull:
		mwalk(ctx, v, &n.Expression)
	case *jsast.EInstantiation:
		mwalk(ctx, v, &n.Expression)
	}
}
