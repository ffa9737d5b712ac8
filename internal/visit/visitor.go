// Package visit implements C8, the traversal framework spec §4.6 asks
// downstream tooling (a formatter, linter, minifier, or transformer) to
// drive: an immutable Walk for read-only consumers, an ancestor-aware
// WalkMut for consumers that rewrite the tree in place, and a
// symbol-creation API for transformers that introduce new bindings.
//
// Walk's shape is grounded directly on go/ast.Walk/ast.Visitor rather than
// on one enter_X/leave_X method pair per AST node kind: a single
// Visit(Node) (w Visitor) method, type-switched internally by Walk, with
// go/ast's own convention of calling v.Visit(nil) once a node's children
// have all been visited to signal "leaving" that node. A ~60-node AST
// makes a hand-written method-per-kind interface unwieldy in Go; the
// single-method interface is what the standard library itself reaches for
// at this scale.
package visit

import "github.com/parsekit/parsekit/internal/jsast"

// Node is the traversal token passed to Visitor.Visit. Every AST value
// Walk descends into implements it; type-switch on the concrete pointer
// type to recover the node, exactly as callers of go/ast.Walk type-switch
// on ast.Node.
type Node interface{ aNode() }

func (*jsast.Program) aNode()               {}
func (*jsast.Stmt) aNode()                  {}
func (*jsast.Expr) aNode()                  {}
func (*jsast.Binding) aNode()               {}
func (*jsast.Property) aNode()              {}
func (*jsast.Param) aNode()                 {}
func (*jsast.Fn) aNode()                    {}
func (*jsast.Class) aNode()                 {}
func (*jsast.SwitchCase) aNode()            {}
func (*jsast.CatchClause) aNode()           {}
func (*jsast.VariableDeclarator) aNode()    {}
func (*jsast.ArrayBindingItem) aNode()      {}
func (*jsast.ObjectBindingProperty) aNode() {}
func (*jsast.JSXAttribute) aNode()          {}
func (*jsast.JSXOpeningElement) aNode()     {}
func (*jsast.JSXClosingElement) aNode()     {}
func (*jsast.TemplatePart) aNode()          {}
func (*jsast.EnumMember) aNode()            {}
func (*jsast.TSInterfaceMember) aNode()     {}

// Visitor's Visit is called with a non-nil node on entry to each node
// Walk descends into. If Visit returns a non-nil Visitor w, Walk uses w
// to visit the node's children, then calls w.Visit(nil) once they're all
// done (the "leave" signal). Returning nil from Visit on entry skips the
// node's children entirely — Walk never calls Visit(nil) for a node whose
// entry call returned nil.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses program in depth-first pre/post order, calling v.Visit
// on every statement, expression, binding, and declaration-shaped node it
// reaches. It is total: every reachable node is visited exactly once on
// the way in and, if the entry call didn't return nil, exactly once on
// the way out. There is no way to cancel a Walk from inside a callback
// (spec §4.6: "non-terminable from inside callbacks"); a visitor that
// wants to stop early should track its own "done" flag and make Visit a
// no-op once set.
func Walk(program *jsast.Program, v Visitor) {
	if v = v.Visit(program); v == nil {
		return
	}
	walkStmtList(v, program.Body)
	v.Visit(nil)
}

func walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}
	switch x := n.(type) {
	case *jsast.Stmt:
		walkStmt(v, x)
	case *jsast.Expr:
		walkExpr(v, x)
	case *jsast.Binding:
		walkBinding(v, x)
	case *jsast.Property:
		walkProperty(v, x)
	case *jsast.Param:
		walkParam(v, x)
	case *jsast.Fn:
		walkFn(v, x)
	case *jsast.Class:
		walkClass(v, x)
	case *jsast.SwitchCase:
		if x.Test != nil {
			walk(v, x.Test)
		}
		walkStmtList(v, x.Body)
	case *jsast.CatchClause:
		if x.Param != nil {
			walk(v, x.Param)
		}
		walkStmtList(v, x.Body.Body)
	case *jsast.VariableDeclarator:
		walk(v, &x.Binding)
		if x.Init.Data != nil {
			walk(v, &x.Init)
		}
		walkTSType(v, x.TSType)
	case *jsast.ArrayBindingItem:
		walk(v, &x.Binding)
		if x.Default.Data != nil {
			walk(v, &x.Default)
		}
	case *jsast.ObjectBindingProperty:
		if x.Key.Data != nil {
			walk(v, &x.Key)
		}
		walk(v, &x.Value)
		if x.Default.Data != nil {
			walk(v, &x.Default)
		}
	case *jsast.JSXAttribute:
		if x.Value.Data != nil {
			walk(v, &x.Value)
		}
		if x.Spread.Data != nil {
			walk(v, &x.Spread)
		}
	case *jsast.JSXOpeningElement:
		walk(v, &x.Name)
		for i := range x.Attributes {
			walk(v, &x.Attributes[i])
		}
	case *jsast.JSXClosingElement:
		walk(v, &x.Name)
	case *jsast.TemplatePart:
		walk(v, &x.Value)
	case *jsast.EnumMember:
		if x.Initializer.Data != nil {
			walk(v, &x.Initializer)
		}
	case *jsast.TSInterfaceMember:
		if x.Key.Data != nil {
			walk(v, &x.Key)
		}
		for i := range x.Params {
			walk(v, &x.Params[i])
		}
		walkTSType(v, x.Type)
	}
	v.Visit(nil)
}

func walkStmtList(v Visitor, list []jsast.Stmt) {
	for i := range list {
		walk(v, &list[i])
	}
}

func walkExprList(v Visitor, list []jsast.Expr) {
	for i := range list {
		walk(v, &list[i])
	}
}

func walkParamList(v Visitor, list []jsast.Param) {
	for i := range list {
		walk(v, &list[i])
	}
}

func walkFn(v Visitor, fn *jsast.Fn) {
	walkParamList(v, fn.Params)
	walkStmtList(v, fn.Body.Body)
	walkTSType(v, fn.ReturnType)
	walkTypeParamList(v, fn.TypeParams)
}

func walkClass(v Visitor, c *jsast.Class) {
	if c.Extends.Data != nil {
		walk(v, &c.Extends)
	}
	for i := range c.Decorators {
		walk(v, &c.Decorators[i])
	}
	for i := range c.Members {
		walk(v, &c.Members[i])
	}
	walkTypeParamList(v, c.TypeParams)
	for _, ta := range c.SuperTypeArguments {
		walkTSType(v, ta)
	}
	for _, impl := range c.Implements {
		walkTSType(v, impl)
	}
}

func walkProperty(v Visitor, p *jsast.Property) {
	if p.Key.Data != nil {
		walk(v, &p.Key)
	}
	for i := range p.Decorators {
		walk(v, &p.Decorators[i])
	}
	if p.Value.Data != nil {
		walk(v, &p.Value)
	}
	if p.Kind == jsast.PropertyClassStaticBlock {
		walkStmtList(v, p.StaticBlock)
	}
	walkTSType(v, p.Type)
}

func walkBinding(v Visitor, b *jsast.Binding) {
	switch n := b.Data.(type) {
	case *jsast.BArray:
		for i := range n.Items {
			walk(v, &n.Items[i])
		}
	case *jsast.BObject:
		for i := range n.Properties {
			walk(v, &n.Properties[i])
		}
	}
}

func walkParam(v Visitor, p *jsast.Param) {
	for i := range p.Decorators {
		walk(v, &p.Decorators[i])
	}
	walk(v, &p.Binding)
	if p.Default.Data != nil {
		walk(v, &p.Default)
	}
	walkTSType(v, p.Type)
}

func walkStmt(v Visitor, s *jsast.Stmt) {
	switch n := s.Data.(type) {
	case *jsast.SBlock:
		walkStmtList(v, n.Body)
	case *jsast.SExpr:
		walk(v, &n.Value)
	case *jsast.SIf:
		walk(v, &n.Test)
		walk(v, &n.Yes)
		if n.No.Data != nil {
			walk(v, &n.No)
		}
	case *jsast.SFor:
		if n.Init.Data != nil {
			walk(v, &n.Init)
		}
		if n.Test.Data != nil {
			walk(v, &n.Test)
		}
		if n.Update.Data != nil {
			walk(v, &n.Update)
		}
		walk(v, &n.Body)
	case *jsast.SForIn:
		walk(v, &n.Decl)
		walk(v, &n.Value)
		walk(v, &n.Body)
	case *jsast.SForOf:
		walk(v, &n.Decl)
		walk(v, &n.Value)
		walk(v, &n.Body)
	case *jsast.SWhile:
		walk(v, &n.Test)
		walk(v, &n.Body)
	case *jsast.SDoWhile:
		walk(v, &n.Body)
		walk(v, &n.Test)
	case *jsast.SWith:
		walk(v, &n.Object)
		walk(v, &n.Body)
	case *jsast.SSwitch:
		walk(v, &n.Discriminant)
		for i := range n.Cases {
			walk(v, &n.Cases[i])
		}
	case *jsast.SReturn:
		if n.Value.Data != nil {
			walk(v, &n.Value)
		}
	case *jsast.SThrow:
		walk(v, &n.Value)
	case *jsast.STry:
		walkStmtList(v, n.Body.Body)
		if n.Catch != nil {
			walk(v, n.Catch)
		}
		if n.Finally != nil {
			walkStmtList(v, n.Finally.Body)
		}
	case *jsast.SLabel:
		walk(v, &n.Body)
	case *jsast.SVariableDeclaration:
		for i := range n.Declarators {
			walk(v, &n.Declarators[i])
		}
	case *jsast.SFunction:
		walk(v, &n.Fn)
	case *jsast.SClass:
		walk(v, &n.Class)
	case *jsast.SExportDefault:
		walk(v, &n.Value)
	case *jsast.SExportAssign:
		walk(v, &n.Value)
	case *jsast.STSImportEquals:
		if n.Reference.Data != nil {
			walk(v, &n.Reference)
		}
	case *jsast.STSEnum:
		for i := range n.Members {
			walk(v, &n.Members[i])
		}
	case *jsast.STSModule:
		walkStmtList(v, n.Body)
	case *jsast.STSInterface:
		for i := range n.Members {
			walk(v, &n.Members[i])
		}
		for _, ext := range n.Extends {
			walkTSType(v, ext)
		}
		walkTypeParamList(v, n.TypeParams)
	case *jsast.STSTypeAlias:
		walkTSType(v, n.Type)
		walkTypeParamList(v, n.TypeParams)
	}
}

func walkExpr(v Visitor, e *jsast.Expr) {
	switch n := e.Data.(type) {
	case *jsast.EDot:
		walk(v, &n.Target)
	case *jsast.EIndex:
		walk(v, &n.Target)
		walk(v, &n.Index)
	case *jsast.EPrivateIn:
		walk(v, &n.Object)
	case *jsast.ECall:
		walk(v, &n.Target)
		walkExprList(v, n.Args)
	case *jsast.ENew:
		walk(v, &n.Target)
		walkExprList(v, n.Args)
	case *jsast.EChain:
		walk(v, &n.Expression)
	case *jsast.EUnary:
		walk(v, &n.Value)
	case *jsast.EBinary:
		walk(v, &n.Left)
		walk(v, &n.Right)
	case *jsast.EConditional:
		walk(v, &n.Test)
		walk(v, &n.Yes)
		walk(v, &n.No)
	case *jsast.ESequence:
		walkExprList(v, n.Expressions)
	case *jsast.EAwait:
		walk(v, &n.Value)
	case *jsast.EYield:
		if n.Value.Data != nil {
			walk(v, &n.Value)
		}
	case *jsast.EArray:
		walkExprList(v, n.Items)
	case *jsast.EObject:
		for i := range n.Properties {
			walk(v, &n.Properties[i])
		}
	case *jsast.ESpread:
		walk(v, &n.Value)
	case *jsast.EArrowFunction:
		walkParamList(v, n.Params)
		if n.PreferExpr {
			walk(v, &n.ExprBody)
		} else {
			walkStmtList(v, n.Body.Body)
		}
	case *jsast.EFunction:
		walk(v, &n.Fn)
	case *jsast.EClass:
		walk(v, &n.Class)
	case *jsast.EImportCall:
		walk(v, &n.Source)
		if n.Options.Data != nil {
			walk(v, &n.Options)
		}
	case *jsast.EJSXElement:
		walk(v, &n.Opening)
		if n.Closing != nil {
			walk(v, n.Closing)
		}
		walkExprList(v, n.Children)
	case *jsast.EJSXFragment:
		walkExprList(v, n.Children)
	case *jsast.ETemplate:
		for i := range n.Parts {
			walk(v, &n.Parts[i])
		}
	case *jsast.ETaggedTemplate:
		walk(v, &n.Tag)
		for i := range n.Template.Parts {
			walk(v, &n.Template.Parts[i])
		}
	case *jsast.EAs:
		walk(v, &n.Expression)
		walkTSType(v, n.Type)
	case *jsast.ESatisfies:
		walk(v, &n.Expression)
		walkTSType(v, n.Type)
	case *jsast.ETypeAssertion:
		walk(v, &n.Expression)
		walkTSType(v, n.Type)
	case *jsast.ENonNull:
		walk(v, &n.Expression)
	case *jsast.EInstantiation:
		walk(v, &n.Expression)
		for _, ta := range n.TypeArguments {
			walkTSType(v, ta)
		}
	}
}
