package jsparser

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jslexer"
	"github.com/parsekit/parsekit/internal/source"
)

// parseExpr parses a full expression including the comma operator.
func (p *Parser) parseExpr() jsast.Expr {
	return p.parseExprAtLevel(jsast.LComma)
}

// parseAssignExpr parses one assignment-level expression (no top-level
// comma), the level used inside argument lists, array/object literals,
// and default values.
func (p *Parser) parseAssignExpr() jsast.Expr {
	return p.parseExprAtLevel(jsast.LAssign)
}

func (p *Parser) parseExprAtLevel(level jsast.L) jsast.Expr {
	left := p.parsePrefixExpr(level)
	left = p.parseSuffixExpr(left, level)
	if level <= jsast.LComma {
		if p.is(jslexer.TComma) {
			exprs := []jsast.Expr{left}
			start := left.Span
			for p.is(jslexer.TComma) {
				p.next()
				exprs = append(exprs, p.parseExprAtLevel(jsast.LAssign))
			}
			left = jsast.Expr{Span: p.at(start), Data: &jsast.ESequence{Expressions: exprs}}
		}
	}
	return left
}

// parsePrefixExpr parses a primary expression together with any prefix
// operators (unary, update, await, yield, new).
func (p *Parser) parsePrefixExpr(level jsast.L) jsast.Expr {
	start := p.span()
	switch p.tok() {
	case jslexer.TPlus:
		p.next()
		return p.wrapUnary(start, jsast.UnOpPos, p.parsePrefixExpr(jsast.LPrefix))
	case jslexer.TMinus:
		p.next()
		return p.wrapUnary(start, jsast.UnOpNeg, p.parsePrefixExpr(jsast.LPrefix))
	case jslexer.TTilde:
		p.next()
		return p.wrapUnary(start, jsast.UnOpCpl, p.parsePrefixExpr(jsast.LPrefix))
	case jslexer.TExclamation:
		p.next()
		return p.wrapUnary(start, jsast.UnOpNot, p.parsePrefixExpr(jsast.LPrefix))
	case jslexer.TPlusPlus:
		p.next()
		return p.wrapUnary(start, jsast.UnOpPreInc, p.parsePrefixExpr(jsast.LPrefix))
	case jslexer.TMinusMinus:
		p.next()
		return p.wrapUnary(start, jsast.UnOpPreDec, p.parsePrefixExpr(jsast.LPrefix))
	case jslexer.TIdentifier:
		switch p.raw() {
		case "typeof":
			p.next()
			return p.wrapUnary(start, jsast.UnOpTypeof, p.parsePrefixExpr(jsast.LPrefix))
		case "void":
			p.next()
			return p.wrapUnary(start, jsast.UnOpVoid, p.parsePrefixExpr(jsast.LPrefix))
		case "delete":
			p.next()
			return p.wrapUnary(start, jsast.UnOpDelete, p.parsePrefixExpr(jsast.LPrefix))
		case "await":
			p.next()
			return jsast.Expr{Span: p.at(start), Data: &jsast.EAwait{Value: p.parsePrefixExpr(jsast.LPrefix)}}
		case "yield":
			p.next()
			isStar := false
			if p.is(jslexer.TAsterisk) {
				isStar = true
				p.next()
			}
			var value jsast.Expr
			if p.canStartYieldOperand() {
				value = p.parseAssignExpr()
			}
			return jsast.Expr{Span: p.at(start), Data: &jsast.EYield{Value: value, IsStar: isStar}}
		}
	case jslexer.TNew:
		return p.parseNewExpr(start)
	}
	return p.parsePrimaryExpr()
}

func (p *Parser) wrapUnary(start source.Span, op jsast.OpCode, value jsast.Expr) jsast.Expr {
	return jsast.Expr{Span: p.at(start), Data: &jsast.EUnary{Op: op, Value: value}}
}

// canStartYieldOperand approximates "yield" being a bare keyword vs.
// "yield <expr>" by checking whether the following token could begin an
// expression; a statement terminator means the yield is bare.
func (p *Parser) canStartYieldOperand() bool {
	switch p.tok() {
	case jslexer.TSemicolon, jslexer.TCloseBrace, jslexer.TCloseParen, jslexer.TCloseBracket,
		jslexer.TComma, jslexer.TColon, jslexer.TEndOfFile:
		return false
	}
	return !p.lex.HasNewlineBefore
}

func (p *Parser) parseNewExpr(start source.Span) jsast.Expr {
	p.next() // "new"
	if p.is(jslexer.TDot) {
		p.next()
		p.identifierName() // "target"
		return jsast.Expr{Span: p.at(start), Data: &jsast.ENewTarget{}}
	}
	target := p.parsePrefixExpr(jsast.LMember)
	target = p.parseSuffixExpr(target, jsast.LNew)
	var args []jsast.Expr
	if p.is(jslexer.TOpenParen) {
		args = p.parseArgs()
	}
	return jsast.Expr{Span: p.at(start), Data: &jsast.ENew{Target: target, Args: args}}
}

func (p *Parser) parseArgs() []jsast.Expr {
	p.expect(jslexer.TOpenParen, "'('")
	var args []jsast.Expr
	for !p.is(jslexer.TCloseParen) && !p.is(jslexer.TEndOfFile) {
		itemStart := p.span()
		if p.is(jslexer.TDotDotDot) {
			p.next()
			args = append(args, jsast.Expr{Span: p.at(itemStart), Data: &jsast.ESpread{Value: p.parseAssignExpr()}})
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if !p.is(jslexer.TCloseParen) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	return args
}

// parsePrimaryExpr parses literals, identifiers, parenthesized/arrow
// covers, array/object literals, templates, and class/function
// expressions — everything that doesn't start with a prefix operator.
func (p *Parser) parsePrimaryExpr() jsast.Expr {
	start := p.span()
	switch p.tok() {
	case jslexer.TNumericLiteral:
		v := p.lex.Number
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.ENumber{Value: v}}
	case jslexer.TBigIntLiteral:
		v := p.lex.BigIntText
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EBigInt{Value: v}}
	case jslexer.TStringLiteral:
		v, raw := p.lex.StringValue, p.lex.StringRaw
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EString{Value: v, Raw: raw}}
	case jslexer.TNoSubstitutionTemplateLiteral:
		head, headRaw := p.lex.StringValue, p.lex.StringRaw
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.ETemplate{HeadCooked: head, HeadRaw: headRaw}}
	case jslexer.TTemplateHead:
		return p.parseTemplate(start)
	case jslexer.TTrue:
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EBoolean{Value: true}}
	case jslexer.TFalse:
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EBoolean{Value: false}}
	case jslexer.TNull:
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.ENull{}}
	case jslexer.TThis:
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EThis{}}
	case jslexer.TSuper:
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.ESuper{}}
	case jslexer.TFunction:
		return p.parseFunctionExpr(start, false)
	case jslexer.TClass:
		return p.parseClassExpr(start)
	case jslexer.TOpenBracket:
		return p.parseArrayExpr(start)
	case jslexer.TOpenBrace:
		return p.parseObjectExpr(start)
	case jslexer.TOpenParen:
		return p.parseParenOrArrow(start)
	case jslexer.TSlash, jslexer.TSlashEquals:
		p.lex.RescanSlashAsRegExp()
		pattern, flags := p.lex.RegexPattern, p.lex.RegexFlags
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.ERegExp{Pattern: pattern, Flags: flags}}
	case jslexer.TLessThan:
		if p.sourceTypeIsJSX() {
			return p.parseJSXElementOrFragment(start)
		}
		return p.parseTypeAssertion(start)
	case jslexer.TPrivateIdentifier:
		name := "#" + p.lex.Identifier
		p.next()
		if p.isIdentLike("in") {
			p.next()
			obj := p.parseExprAtLevel(jsast.LCompare)
			return jsast.Expr{Span: p.at(start), Data: &jsast.EPrivateIn{Name: p.intern(name), Object: obj}}
		}
		p.failHere("unexpected private identifier")
		return jsast.Expr{Span: p.at(start), Data: &jsast.EMissing{}}
	case jslexer.TImport:
		return p.parseImportExpr(start)
	case jslexer.TIdentifier:
		name := p.raw()
		if name == "async" {
			if af, ok := p.tryParseAsyncExpr(start); ok {
				return af
			}
		}
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EIdentifier{Name: p.intern(name), Reference: jsast.InvalidReferenceId}}
	default:
		p.failHere("unexpected token in expression")
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EMissing{}}
	}
}

func (p *Parser) sourceTypeIsJSX() bool {
	return p.sourceType.IsJSX()
}

func (p *Parser) parseImportExpr(start source.Span) jsast.Expr {
	p.next() // "import"
	if p.is(jslexer.TDot) {
		p.next()
		p.identifierName() // "meta"
		return jsast.Expr{Span: p.at(start), Data: &jsast.EImportMeta{}}
	}
	p.expect(jslexer.TOpenParen, "'('")
	src := p.parseAssignExpr()
	var opts jsast.Expr
	if p.is(jslexer.TComma) {
		p.next()
		if !p.is(jslexer.TCloseParen) {
			opts = p.parseAssignExpr()
			if p.is(jslexer.TComma) {
				p.next()
			}
		}
	}
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	return jsast.Expr{Span: p.at(start), Data: &jsast.EImportCall{Source: src, Options: opts}}
}

func (p *Parser) parseTemplate(start source.Span) jsast.Expr {
	head, headRaw := p.lex.StringValue, p.lex.StringRaw
	var parts []jsast.TemplatePart
	for {
		p.next() // consume head/middle, now inside "${ ... }"
		value := p.parseExpr()
		p.expectOrRecover(jslexer.TCloseBrace, "'}'")
		p.lex.ScanTemplateContinuation()
		tok := p.tok()
		tailCooked, tailRaw, tailSpan := p.lex.StringValue, p.lex.StringRaw, p.lex.Span
		parts = append(parts, jsast.TemplatePart{Value: value, TailCooked: tailCooked, TailRaw: tailRaw, TailSpan: tailSpan})
		if tok == jslexer.TTemplateTail {
			p.next()
			break
		}
	}
	return jsast.Expr{Span: p.at(start), Data: &jsast.ETemplate{HeadCooked: head, HeadRaw: headRaw, Parts: parts}}
}

func (p *Parser) parseArrayExpr(start source.Span) jsast.Expr {
	p.next()
	var items []jsast.Expr
	for !p.is(jslexer.TCloseBracket) && !p.is(jslexer.TEndOfFile) {
		itemStart := p.span()
		if p.is(jslexer.TComma) {
			items = append(items, jsast.Expr{Span: p.span(), Data: &jsast.EMissing{}})
			p.next()
			continue
		}
		if p.is(jslexer.TDotDotDot) {
			p.next()
			items = append(items, jsast.Expr{Span: p.at(itemStart), Data: &jsast.ESpread{Value: p.parseAssignExpr()}})
		} else {
			items = append(items, p.parseAssignExpr())
		}
		if !p.is(jslexer.TCloseBracket) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TCloseBracket, "']'")
	return jsast.Expr{Span: p.at(start), Data: &jsast.EArray{Items: items}}
}

func (p *Parser) parseObjectExpr(start source.Span) jsast.Expr {
	p.next()
	var props []jsast.Property
	for !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) {
		props = append(props, p.parseObjectProperty())
		if !p.is(jslexer.TCloseBrace) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	return jsast.Expr{Span: p.at(start), Data: &jsast.EObject{Properties: props}}
}

func (p *Parser) parseObjectProperty() jsast.Property {
	start := p.span()
	if p.is(jslexer.TDotDotDot) {
		p.next()
		return jsast.Property{Span: p.at(start), Kind: jsast.PropertySpread, Value: p.parseAssignExpr()}
	}

	isAsync, isGenerator := false, false
	kind := jsast.PropertyInit
	if p.isIdentLike("async") {
		save := *p.lex
		p.next()
		if !p.is(jslexer.TColon) && !p.is(jslexer.TOpenParen) && !p.is(jslexer.TComma) && !p.is(jslexer.TCloseBrace) {
			isAsync = true
		} else {
			*p.lex = save
		}
	}
	if p.is(jslexer.TAsterisk) {
		isGenerator = true
		p.next()
	}
	if p.isIdentLike("get") || p.isIdentLike("set") {
		which := p.raw()
		save := *p.lex
		p.next()
		if !p.is(jslexer.TColon) && !p.is(jslexer.TOpenParen) && !p.is(jslexer.TComma) && !p.is(jslexer.TCloseBrace) {
			if which == "get" {
				kind = jsast.PropertyGet
			} else {
				kind = jsast.PropertySet
			}
			key, computed := p.parsePropertyKey()
			fn := p.parseMethodTail(isAsync, isGenerator)
			return jsast.Property{Span: p.at(start), Kind: kind, Key: key, IsComputed: computed, Value: jsast.Expr{Data: &jsast.EFunction{Fn: fn}}}
		}
		*p.lex = save
	}

	key, computed := p.parsePropertyKey()

	switch {
	case p.is(jslexer.TOpenParen):
		fn := p.parseMethodTail(isAsync, isGenerator)
		return jsast.Property{Span: p.at(start), Kind: jsast.PropertyMethod, Key: key, IsComputed: computed, Value: jsast.Expr{Data: &jsast.EFunction{Fn: fn}}}
	case p.is(jslexer.TColon):
		p.next()
		return jsast.Property{Span: p.at(start), Kind: jsast.PropertyInit, Key: key, IsComputed: computed, Value: p.parseAssignExpr()}
	case p.is(jslexer.TEquals):
		// Cover-grammar default, valid only when this object literal is
		// later reinterpreted as a destructuring pattern.
		p.next()
		def := p.parseAssignExpr()
		ident, _ := key.Data.(*jsast.EIdentifier)
		value := jsast.Expr{Span: key.Span, Data: &jsast.EIdentifier{Name: ident.Name, Reference: jsast.InvalidReferenceId}}
		return jsast.Property{
			Span: p.at(start), Kind: jsast.PropertyInit, Key: key, WasShorthand: true,
			Value: jsast.Expr{Span: p.at(start), Data: &jsast.EBinary{Op: jsast.BinOpAssign, Left: value, Right: def}},
		}
	default:
		return jsast.Property{Span: p.at(start), Kind: jsast.PropertyInit, Key: key, WasShorthand: true, Value: key}
	}
}

func (p *Parser) parseMethodTail(isAsync, isGenerator bool) jsast.Fn {
	params := p.parseParams()
	body := p.parseFnBody()
	return jsast.Fn{Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator}
}

func (p *Parser) parseParams() []jsast.Param {
	p.expect(jslexer.TOpenParen, "'('")
	var params []jsast.Param
	for !p.is(jslexer.TCloseParen) && !p.is(jslexer.TEndOfFile) {
		paramStart := p.span()
		isRest := false
		if p.is(jslexer.TDotDotDot) {
			isRest = true
			p.next()
		}
		binding := p.parseBinding()
		var def jsast.Expr
		if p.is(jslexer.TEquals) {
			p.next()
			def = p.parseAssignExpr()
		}
		params = append(params, jsast.Param{Span: p.at(paramStart), Binding: binding, Default: def, IsRest: isRest})
		if !p.is(jslexer.TCloseParen) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	return params
}

func (p *Parser) parseFnBody() jsast.FnBody {
	start := p.span()
	p.expect(jslexer.TOpenBrace, "'{'")
	body := p.parseStmtList(jslexer.TCloseBrace)
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	return jsast.FnBody{Span: p.at(start), Body: body}
}

func (p *Parser) parseFunctionExpr(start source.Span, isAsync bool) jsast.Expr {
	p.next() // "function"
	isGenerator := false
	if p.is(jslexer.TAsterisk) {
		isGenerator = true
		p.next()
	}
	var name *jsast.NamedSlot
	if p.is(jslexer.TIdentifier) {
		nameStart := p.span()
		n := p.raw()
		p.next()
		name = &jsast.NamedSlot{Name: p.intern(n), Span: nameStart}
	}
	params := p.parseParams()
	body := p.parseFnBody()
	return jsast.Expr{Span: p.at(start), Data: &jsast.EFunction{Fn: jsast.Fn{
		Name: name, Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator,
	}}}
}

// tryParseAsyncExpr handles "async function", "async (params) =>", and
// "async ident =>"; returns ok=false if "async" turns out to be a plain
// identifier reference instead.
func (p *Parser) tryParseAsyncExpr(start source.Span) (jsast.Expr, bool) {
	save := *p.lex
	p.next() // consume "async"
	if p.lex.HasNewlineBefore {
		*p.lex = save
		return jsast.Expr{}, false
	}
	if p.is(jslexer.TFunction) {
		return p.parseFunctionExpr(start, true), true
	}
	if p.is(jslexer.TIdentifier) && !p.lex.HasNewlineBefore {
		name := p.raw()
		nameSpan := p.span()
		save2 := *p.lex
		p.next()
		if p.is(jslexer.TEqualsGreaterThan) && !p.lex.HasNewlineBefore {
			p.next()
			param := jsast.Param{Span: nameSpan, Binding: jsast.Binding{Span: nameSpan, Data: &jsast.BIdentifier{Name: p.intern(name)}}}
			return p.finishArrowBody(start, []jsast.Param{param}, true), true
		}
		*p.lex = save2
	}
	if p.is(jslexer.TOpenParen) {
		arrow := p.parseParenOrArrow(start)
		if af, ok := arrow.Data.(*jsast.EArrowFunction); ok {
			af.IsAsync = true
			return arrow, true
		}
		// It parsed as a parenthesized expression, not an arrow: "async"
		// was a call target, e.g. "async(x)". Rebuild as a call.
		return jsast.Expr{Span: p.at(start), Data: &jsast.ECall{
			Target: jsast.Expr{Span: start, Data: &jsast.EIdentifier{Name: p.intern("async"), Reference: jsast.InvalidReferenceId}},
			Args:   []jsast.Expr{arrow},
		}}, true
	}
	*p.lex = save
	return jsast.Expr{}, false
}

func (p *Parser) parseParenOrArrow(start source.Span) jsast.Expr {
	p.next() // "("
	if p.is(jslexer.TCloseParen) {
		p.next()
		if p.is(jslexer.TEqualsGreaterThan) {
			p.next()
			return p.finishArrowBody(start, nil, false)
		}
		p.failHere("unexpected empty parentheses")
		return jsast.Expr{Span: p.at(start), Data: &jsast.EMissing{}}
	}

	var items []jsast.Expr
	sawRest := false
	for {
		itemStart := p.span()
		if p.is(jslexer.TDotDotDot) {
			p.next()
			items = append(items, jsast.Expr{Span: p.at(itemStart), Data: &jsast.ESpread{Value: p.parseAssignExpr()}})
			sawRest = true
		} else {
			items = append(items, p.parseAssignExpr())
		}
		if p.is(jslexer.TComma) {
			p.next()
			if p.is(jslexer.TCloseParen) {
				break
			}
			continue
		}
		break
	}
	p.expectOrRecover(jslexer.TCloseParen, "')'")

	if p.is(jslexer.TEqualsGreaterThan) && !p.lex.HasNewlineBefore {
		p.next()
		params := make([]jsast.Param, len(items))
		for i, it := range items {
			params[i] = p.exprToParam(it)
		}
		return p.finishArrowBody(start, params, false)
	}

	if sawRest {
		p.failHere("unexpected rest element in parenthesized expression")
	}
	if len(items) == 1 {
		e := items[0]
		e.Span = p.at(start)
		if arr, ok := e.Data.(*jsast.EArray); ok {
			arr.IsParenthesized = true
		} else if obj, ok := e.Data.(*jsast.EObject); ok {
			obj.IsParenthesized = true
		}
		return e
	}
	return jsast.Expr{Span: p.at(start), Data: &jsast.ESequence{Expressions: items}}
}

func (p *Parser) finishArrowBody(start source.Span, params []jsast.Param, isAsync bool) jsast.Expr {
	if p.is(jslexer.TOpenBrace) {
		body := p.parseFnBody()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EArrowFunction{Params: params, Body: body, IsAsync: isAsync}}
	}
	exprBody := p.parseAssignExpr()
	return jsast.Expr{Span: p.at(start), Data: &jsast.EArrowFunction{Params: params, ExprBody: exprBody, PreferExpr: true, IsAsync: isAsync}}
}

// exprToParam reclassifies an already-parsed expression from inside a
// parenthesized cover grammar as a formal parameter (spec §4.4.3's
// cover-grammar note): identifiers, destructuring literals, defaults
// ("=" at the top), and rest ("..." already stripped by the caller into
// an ESpread) all convert directly since they share their shape with the
// binding forms already.
func (p *Parser) exprToParam(e jsast.Expr) jsast.Param {
	if spread, ok := e.Data.(*jsast.ESpread); ok {
		return jsast.Param{Span: e.Span, Binding: p.exprToBinding(spread.Value), IsRest: true}
	}
	if bin, ok := e.Data.(*jsast.EBinary); ok && bin.Op == jsast.BinOpAssign {
		return jsast.Param{Span: e.Span, Binding: p.exprToBinding(bin.Left), Default: bin.Right}
	}
	return jsast.Param{Span: e.Span, Binding: p.exprToBinding(e)}
}

// exprToBinding converts an expression parsed under the assignment-target
// cover grammar into a declaration-position Binding.
func (p *Parser) exprToBinding(e jsast.Expr) jsast.Binding {
	switch d := e.Data.(type) {
	case *jsast.EIdentifier:
		return jsast.Binding{Span: e.Span, Data: &jsast.BIdentifier{Name: d.Name}}
	case *jsast.EArray:
		items := make([]jsast.ArrayBindingItem, len(d.Items))
		hasRest := false
		for i, it := range d.Items {
			if _, ok := it.Data.(*jsast.EMissing); ok {
				items[i] = jsast.ArrayBindingItem{Binding: jsast.Binding{Span: it.Span, Data: &jsast.BMissing{}}}
				continue
			}
			if sp, ok := it.Data.(*jsast.ESpread); ok {
				hasRest = true
				items[i] = jsast.ArrayBindingItem{Binding: p.exprToBinding(sp.Value)}
				continue
			}
			if bin, ok := it.Data.(*jsast.EBinary); ok && bin.Op == jsast.BinOpAssign {
				items[i] = jsast.ArrayBindingItem{Binding: p.exprToBinding(bin.Left), Default: bin.Right}
				continue
			}
			items[i] = jsast.ArrayBindingItem{Binding: p.exprToBinding(it)}
		}
		return jsast.Binding{Span: e.Span, Data: &jsast.BArray{Items: items, HasRest: hasRest}}
	case *jsast.EObject:
		props := make([]jsast.ObjectBindingProperty, len(d.Properties))
		for i, prop := range d.Properties {
			if prop.Kind == jsast.PropertySpread {
				props[i] = jsast.ObjectBindingProperty{Span: prop.Span, IsRest: true, Value: p.exprToBinding(prop.Value)}
				continue
			}
			value := prop.Value
			var def jsast.Expr
			if bin, ok := value.Data.(*jsast.EBinary); ok && bin.Op == jsast.BinOpAssign {
				def = bin.Right
				value = bin.Left
			}
			props[i] = jsast.ObjectBindingProperty{
				Span: prop.Span, Key: prop.Key, IsComputed: prop.IsComputed,
				Value: p.exprToBinding(value), Default: def,
			}
		}
		return jsast.Binding{Span: e.Span, Data: &jsast.BObject{Properties: props}}
	default:
		p.fail(e.Span, "invalid destructuring target")
		return jsast.Binding{Span: e.Span, Data: &jsast.BMissing{}}
	}
}

// parseSuffixExpr runs the Pratt loop for postfix/binary/member/call
// operators, stopping once it meets an operator that doesn't bind at
// least as tightly as level.
func (p *Parser) parseSuffixExpr(left jsast.Expr, level jsast.L) jsast.Expr {
	optionalChainStart := -1
	for {
		switch p.tok() {
		case jslexer.TDot:
			if jsast.LMember < level {
				return left
			}
			p.next()
			nameSpan := p.span()
			name := p.identifierName()
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EDot{Target: left, Name: p.intern(name), NameSpan: nameSpan}}

		case jslexer.TQuestionDot:
			if jsast.LMember < level {
				return left
			}
			if optionalChainStart < 0 {
				optionalChainStart = int(left.Span.Start)
			}
			p.next()
			switch p.tok() {
			case jslexer.TOpenParen:
				args := p.parseArgs()
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ECall{Target: left, Args: args, Optional: true}}
			case jslexer.TOpenBracket:
				p.next()
				idx := p.parseExpr()
				p.expectOrRecover(jslexer.TCloseBracket, "']'")
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EIndex{Target: left, Index: idx, Optional: true}}
			default:
				nameSpan := p.span()
				name := p.identifierName()
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EDot{Target: left, Name: p.intern(name), NameSpan: nameSpan, Optional: true}}
			}

		case jslexer.TOpenBracket:
			if jsast.LMember < level {
				return left
			}
			p.next()
			idx := p.parseExpr()
			p.expectOrRecover(jslexer.TCloseBracket, "']'")
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EIndex{Target: left, Index: idx}}

		case jslexer.TOpenParen:
			if jsast.LCall < level {
				return left
			}
			args := p.parseArgs()
			isDirectEval := false
			if ident, ok := left.Data.(*jsast.EIdentifier); ok && ident.Name.String() == "eval" {
				isDirectEval = true
			}
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ECall{Target: left, Args: args, IsDirectEval: isDirectEval}}

		case jslexer.TNoSubstitutionTemplateLiteral, jslexer.TTemplateHead:
			if jsast.LMember < level {
				return left
			}
			tpl := p.parsePrimaryExpr()
			tplExpr, _ := tpl.Data.(*jsast.ETemplate)
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ETaggedTemplate{Tag: left, Template: *tplExpr}}

		case jslexer.TPlusPlus:
			if jsast.LPostfix < level || p.lex.HasNewlineBefore {
				return left
			}
			p.next()
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EUnary{Op: jsast.UnOpPostInc, Value: left}}

		case jslexer.TMinusMinus:
			if jsast.LPostfix < level || p.lex.HasNewlineBefore {
				return left
			}
			p.next()
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EUnary{Op: jsast.UnOpPostDec, Value: left}}

		case jslexer.TExclamation:
			// TypeScript non-null assertion "!": only postfix, never the
			// binary "!=" family at this point since those are two tokens.
			if jsast.LPostfix < level || p.lex.HasNewlineBefore {
				return left
			}
			p.next()
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ENonNull{Expression: left}}

		case jslexer.TIdentifier:
			switch p.raw() {
			case "in":
				if p.noIn || jsast.LCompare < level {
					return left
				}
				p.next()
				right := p.parseExprAtLevel(jsast.LCompare + 1)
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EBinary{Op: jsast.BinOpIn, Left: left, Right: right}}
				continue
			case "instanceof":
				if jsast.LCompare < level {
					return left
				}
				p.next()
				right := p.parseExprAtLevel(jsast.LCompare + 1)
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EBinary{Op: jsast.BinOpInstanceof, Left: left, Right: right}}
				continue
			case "as":
				if p.lex.HasNewlineBefore {
					return left
				}
				p.next()
				if p.isIdentLike("const") {
					p.next()
					left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EAs{Expression: left, Type: &jsast.TSKeyword{Kind: jsast.TSAny}}}
					continue
				}
				t := p.parseType()
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EAs{Expression: left, Type: t}}
				continue
			case "satisfies":
				if p.lex.HasNewlineBefore {
					return left
				}
				p.next()
				t := p.parseType()
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ESatisfies{Expression: left, Type: t}}
				continue
			}
			return p.parseBinaryOrReturn(left, level)

		default:
			return p.parseBinaryOrReturn(left, level)
		}

		if optionalChainStart >= 0 {
			left = jsast.Expr{Span: left.Span, Data: &jsast.EChain{Expression: left}}
			// Only the outermost wrap should stick; re-enter the loop by
			// unwrapping immediately so further member ops attach to the
			// inner expression while the final result stays wrapped once.
			inner := left.Data.(*jsast.EChain).Expression
			left = p.continueChain(inner, level, optionalChainStart)
			return left
		}
	}
}

// continueChain keeps parsing member/call operators after the first
// "?." in a chain, then wraps the whole thing in a single EChain per
// spec §3.3, matching how acorn/ESTree flatten a chain into one wrapper
// regardless of how many "?." appear inside it.
func (p *Parser) continueChain(left jsast.Expr, level jsast.L, chainStart int) jsast.Expr {
	for {
		switch p.tok() {
		case jslexer.TDot:
			p.next()
			nameSpan := p.span()
			name := p.identifierName()
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EDot{Target: left, Name: p.intern(name), NameSpan: nameSpan}}
		case jslexer.TQuestionDot:
			p.next()
			switch p.tok() {
			case jslexer.TOpenParen:
				args := p.parseArgs()
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ECall{Target: left, Args: args, Optional: true}}
			case jslexer.TOpenBracket:
				p.next()
				idx := p.parseExpr()
				p.expectOrRecover(jslexer.TCloseBracket, "']'")
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EIndex{Target: left, Index: idx, Optional: true}}
			default:
				nameSpan := p.span()
				name := p.identifierName()
				left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EDot{Target: left, Name: p.intern(name), NameSpan: nameSpan, Optional: true}}
			}
		case jslexer.TOpenBracket:
			p.next()
			idx := p.parseExpr()
			p.expectOrRecover(jslexer.TCloseBracket, "']'")
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EIndex{Target: left, Index: idx}}
		case jslexer.TOpenParen:
			args := p.parseArgs()
			left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.ECall{Target: left, Args: args}}
		default:
			wrapped := jsast.Expr{Span: left.Span, Data: &jsast.EChain{Expression: left}}
			return p.parseSuffixExpr(wrapped, level)
		}
	}
}

// parseBinaryOrReturn handles every punctuation-based binary and
// assignment operator via a standard precedence-climbing loop.
func (p *Parser) parseBinaryOrReturn(left jsast.Expr, level jsast.L) jsast.Expr {
	for {
		if p.is(jslexer.TQuestion) {
			if jsast.LConditional < level {
				return left
			}
			p.next()
			yes := p.parseAssignExpr()
			p.expectOrRecover(jslexer.TColon, "':'")
			no := p.parseExprAtLevel(jsast.LAssign)
			return jsast.Expr{Span: p.at(left.Span), Data: &jsast.EConditional{Test: left, Yes: yes, No: no}}
		}
		op, ok := punctuatorBinOp(p.tok())
		if !ok {
			return left
		}
		prec := op.Precedence()
		if prec < level {
			return left
		}
		p.next()
		var right jsast.Expr
		if op.IsRightAssociativeBinary() {
			right = p.parseExprAtLevel(prec)
		} else {
			right = p.parseExprAtLevel(prec + 1)
		}
		left = jsast.Expr{Span: p.at(left.Span), Data: &jsast.EBinary{Op: op, Left: left, Right: right}}
	}
}

func punctuatorBinOp(t jslexer.T) (jsast.OpCode, bool) {
	switch t {
	case jslexer.TPlus:
		return jsast.BinOpAdd, true
	case jslexer.TMinus:
		return jsast.BinOpSub, true
	case jslexer.TAsterisk:
		return jsast.BinOpMul, true
	case jslexer.TSlash:
		return jsast.BinOpDiv, true
	case jslexer.TPercent:
		return jsast.BinOpRem, true
	case jslexer.TAsteriskAsterisk:
		return jsast.BinOpPow, true
	case jslexer.TLessThan:
		return jsast.BinOpLt, true
	case jslexer.TLessThanEquals:
		return jsast.BinOpLe, true
	case jslexer.TGreaterThan:
		return jsast.BinOpGt, true
	case jslexer.TGreaterThanEquals:
		return jsast.BinOpGe, true
	case jslexer.TLessThanLessThan:
		return jsast.BinOpShl, true
	case jslexer.TGreaterThanGreaterThan:
		return jsast.BinOpShr, true
	case jslexer.TGreaterThanGreaterThanGreaterThan:
		return jsast.BinOpUShr, true
	case jslexer.TEqualsEquals:
		return jsast.BinOpLooseEq, true
	case jslexer.TExclamationEquals:
		return jsast.BinOpLooseNe, true
	case jslexer.TEqualsEqualsEquals:
		return jsast.BinOpStrictEq, true
	case jslexer.TExclamationEqualsEquals:
		return jsast.BinOpStrictNe, true
	case jslexer.TBar:
		return jsast.BinOpBitwiseOr, true
	case jslexer.TAmpersand:
		return jsast.BinOpBitwiseAnd, true
	case jslexer.TCaret:
		return jsast.BinOpBitwiseXor, true
	case jslexer.TBarBar:
		return jsast.BinOpLogicalOr, true
	case jslexer.TAmpersandAmpersand:
		return jsast.BinOpLogicalAnd, true
	case jslexer.TQuestionQuestion:
		return jsast.BinOpNullishCoalescing, true
	case jslexer.TEquals:
		return jsast.BinOpAssign, true
	case jslexer.TPlusEquals:
		return jsast.BinOpAddAssign, true
	case jslexer.TMinusEquals:
		return jsast.BinOpSubAssign, true
	case jslexer.TAsteriskEquals:
		return jsast.BinOpMulAssign, true
	case jslexer.TSlashEquals:
		return jsast.BinOpDivAssign, true
	case jslexer.TPercentEquals:
		return jsast.BinOpRemAssign, true
	case jslexer.TAsteriskAsteriskEquals:
		return jsast.BinOpPowAssign, true
	case jslexer.TLessThanLessThanEquals:
		return jsast.BinOpShlAssign, true
	case jslexer.TGreaterThanGreaterThanEquals:
		return jsast.BinOpShrAssign, true
	case jslexer.TGreaterThanGreaterThanGreaterThanEquals:
		return jsast.BinOpUShrAssign, true
	case jslexer.TBarEquals:
		return jsast.BinOpBitwiseOrAssign, true
	case jslexer.TAmpersandEquals:
		return jsast.BinOpBitwiseAndAssign, true
	case jslexer.TCaretEquals:
		return jsast.BinOpBitwiseXorAssign, true
	case jslexer.TBarBarEquals:
		return jsast.BinOpLogicalOrAssign, true
	case jslexer.TAmpersandAmpersandEquals:
		return jsast.BinOpLogicalAndAssign, true
	case jslexer.TQuestionQuestionEquals:
		return jsast.BinOpNullishCoalescingAssign, true
	case jslexer.TQuestion:
		return 0, false // handled by parseBinaryOrReturn's conditional branch, not this table
	}
	return 0, false
}
