package jsparser

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jslexer"
	"github.com/parsekit/parsekit/internal/source"
)

// parseStmtList parses statements until it meets `end` (TCloseBrace for a
// block, TEndOfFile for a program), recognizing the directive prologue
// (spec §4.4.3) at the head of the list.
func (p *Parser) parseStmtList(end jslexer.T) []jsast.Stmt {
	var body []jsast.Stmt
	inPrologue := true
	for !p.is(end) && !p.is(jslexer.TEndOfFile) {
		before := p.panicDepth
		stmt, isStringExprStmt, directiveValue := p.parseStmtTrackingDirective()
		if inPrologue && isStringExprStmt {
			body = append(body, jsast.Stmt{Span: stmt.Span, Data: &jsast.SDirective{Value: directiveValue}})
		} else {
			inPrologue = false
			body = append(body, stmt)
		}
		if p.panicDepth > before && p.panicDepth <= maxConsecutiveErrors {
			p.synchronizeStatement()
		}
	}
	return body
}

// parseStmtTrackingDirective is parseStmt plus the extra bookkeeping
// needed to recognize a bare string-literal expression statement as a
// directive-prologue entry.
func (p *Parser) parseStmtTrackingDirective() (jsast.Stmt, bool, string) {
	if p.is(jslexer.TStringLiteral) {
		start := p.span()
		raw := p.lex.StringRaw
		value := p.lex.StringValue
		checkpoint := *p.lex
		p.next()
		if p.is(jslexer.TSemicolon) || p.lex.HasNewlineBefore || p.is(jslexer.TCloseBrace) || p.is(jslexer.TEndOfFile) {
			p.consumeSemicolon()
			return jsast.Stmt{Span: p.at(start)}, true, value
		}
		*p.lex = checkpoint
		_ = raw
	}
	return p.parseStmt(), false, ""
}

func (p *Parser) consumeSemicolon() {
	if p.is(jslexer.TSemicolon) {
		p.next()
		return
	}
	// Automatic Semicolon Insertion (spec §4.4.3): a newline before the
	// next token, a "}", or end of input all implicitly terminate the
	// statement.
	if p.lex.HasNewlineBefore || p.is(jslexer.TCloseBrace) || p.is(jslexer.TEndOfFile) {
		return
	}
	p.failHere("expected ';'")
}

func (p *Parser) parseStmt() jsast.Stmt {
	start := p.span()
	switch p.tok() {
	case jslexer.TOpenBrace:
		return p.parseBlockStmt()
	case jslexer.TSemicolon:
		p.next()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SEmpty{}}
	case jslexer.TIf:
		return p.parseIfStmt(start)
	case jslexer.TFor:
		return p.parseForStmt(start)
	case jslexer.TWhile:
		p.next()
		p.expect(jslexer.TOpenParen, "'('")
		test := p.parseExpr()
		p.expectOrRecover(jslexer.TCloseParen, "')'")
		body := p.parseStmt()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SWhile{Test: test, Body: body}}
	case jslexer.TDo:
		p.next()
		body := p.parseStmt()
		p.expect(jslexer.TWhile, "'while'")
		p.expect(jslexer.TOpenParen, "'('")
		test := p.parseExpr()
		p.expectOrRecover(jslexer.TCloseParen, "')'")
		if p.is(jslexer.TSemicolon) {
			p.next()
		}
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SDoWhile{Body: body, Test: test}}
	case jslexer.TWith:
		p.next()
		p.expect(jslexer.TOpenParen, "'('")
		obj := p.parseExpr()
		p.expectOrRecover(jslexer.TCloseParen, "')'")
		body := p.parseStmt()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SWith{Object: obj, Body: body}}
	case jslexer.TSwitch:
		return p.parseSwitchStmt(start)
	case jslexer.TBreak:
		p.next()
		label := p.optionalLabel()
		p.consumeSemicolon()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SBreak{Label: label}}
	case jslexer.TContinue:
		p.next()
		label := p.optionalLabel()
		p.consumeSemicolon()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SContinue{Label: label}}
	case jslexer.TReturn:
		p.next()
		var value jsast.Expr
		if !p.is(jslexer.TSemicolon) && !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) && !p.lex.HasNewlineBefore {
			value = p.parseExpr()
		}
		p.consumeSemicolon()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SReturn{Value: value}}
	case jslexer.TThrow:
		p.next()
		value := p.parseExpr()
		p.consumeSemicolon()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SThrow{Value: value}}
	case jslexer.TTry:
		return p.parseTryStmt(start)
	case jslexer.TDebugger:
		p.next()
		p.consumeSemicolon()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SDebugger{}}
	case jslexer.TVar:
		decl := p.parseVariableDeclaration(jsast.DeclVar)
		p.consumeSemicolon()
		return jsast.Stmt{Span: p.at(start), Data: decl}
	case jslexer.TFunction:
		return p.parseFunctionDecl(start, false)
	case jslexer.TClass:
		class := p.parseClassTail()
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SClass{Class: class}}
	case jslexer.TImport:
		return p.parseImportStmt(start)
	case jslexer.TExport:
		return p.parseExportStmt(start)
	case jslexer.TIdentifier:
		switch p.raw() {
		case "let", "const":
			if p.raw() == "const" && p.nextIsIdentLike("enum") {
				p.next() // "const"
				return p.parseEnumDecl(start, true)
			}
			if p.canStartDeclarationAfterLetConst() {
				kind := jsast.DeclLet
				if p.raw() == "const" {
					kind = jsast.DeclConst
				}
				decl := p.parseVariableDeclaration(kind)
				p.consumeSemicolon()
				return jsast.Stmt{Span: p.at(start), Data: decl}
			}
		case "async":
			save := *p.lex
			p.next()
			if p.is(jslexer.TFunction) && !p.lex.HasNewlineBefore {
				return p.parseFunctionDecl(start, true)
			}
			*p.lex = save
		case "interface":
			return p.parseInterfaceDecl(start)
		case "type":
			if stmt, ok := p.tryParseTypeAliasDecl(start); ok {
				return stmt
			}
		case "enum":
			return p.parseEnumDecl(start, false)
		case "namespace", "module":
			if stmt, ok := p.tryParseModuleDecl(start); ok {
				return stmt
			}
		case "declare":
			return p.parseDeclareStmt(start)
		case "abstract":
			save := *p.lex
			p.next()
			if p.is(jslexer.TClass) {
				class := p.parseClassTail()
				return jsast.Stmt{Span: p.at(start), Data: &jsast.SClass{Class: class}}
			}
			*p.lex = save
		}

		// A labeled statement: "ident: stmt". Disambiguated from a bare
		// expression statement by lookahead for ":" (spec §3.3 Labels).
		name := p.raw()
		save := *p.lex
		p.next()
		if p.is(jslexer.TColon) {
			p.next()
			body := p.parseStmt()
			return jsast.Stmt{Span: p.at(start), Data: &jsast.SLabel{Name: p.intern(name), Body: body}}
		}
		*p.lex = save
	}

	expr := p.parseExpr()
	p.consumeSemicolon()
	return jsast.Stmt{Span: p.at(start), Data: &jsast.SExpr{Value: expr}}
}

// canStartDeclarationAfterLetConst disambiguates "let x = 1" (a
// declaration) from "let" used as a plain identifier reference, e.g.
// "let = 1" in sloppy mode or "let.foo()".
func (p *Parser) canStartDeclarationAfterLetConst() bool {
	save := *p.lex
	defer func() { *p.lex = save }()
	p.next()
	switch p.tok() {
	case jslexer.TIdentifier, jslexer.TOpenBracket, jslexer.TOpenBrace:
		return true
	}
	return false
}

// nextIsIdentLike reports whether the token after the current one is the
// identifier word, without permanently consuming anything.
func (p *Parser) nextIsIdentLike(word string) bool {
	save := *p.lex
	defer func() { *p.lex = save }()
	p.next()
	return p.isIdentLike(word)
}

func (p *Parser) optionalLabel() jsast.Atom {
	if p.tok() == jslexer.TIdentifier && !p.lex.HasNewlineBefore {
		name := p.raw()
		p.next()
		return p.intern(name)
	}
	return jsast.Atom{}
}

func (p *Parser) parseBlockStmt() jsast.Stmt {
	start := p.span()
	p.next()
	body := p.parseStmtList(jslexer.TCloseBrace)
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	return jsast.Stmt{Span: p.at(start), Data: &jsast.SBlock{Body: body}}
}

func (p *Parser) parseIfStmt(start source.Span) jsast.Stmt {
	p.next()
	p.expect(jslexer.TOpenParen, "'('")
	test := p.parseExpr()
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	yes := p.parseStmt()
	var no jsast.Stmt
	hasElse := false
	if p.is(jslexer.TElse) {
		hasElse = true
		p.next()
		no = p.parseStmt()
	}
	data := &jsast.SIf{Test: test, Yes: yes}
	if hasElse {
		data.No = no
	}
	return jsast.Stmt{Span: p.at(start), Data: data}
}

// parseVariableDeclaration parses "var|let|const" and its declarator
// list, stopping before the trailing semicolon so for-loop heads can
// reuse it without consuming one.
func (p *Parser) parseVariableDeclaration(kind jsast.DeclarationKind) *jsast.SVariableDeclaration {
	p.next() // "var"/"let"/"const"
	var decls []jsast.VariableDeclarator
	for {
		declStart := p.span()
		binding := p.parseBinding()
		var typ jsast.TSType
		if p.is(jslexer.TColon) {
			p.next()
			typ = p.parseType()
		}
		var init jsast.Expr
		if p.is(jslexer.TEquals) {
			p.next()
			init = p.parseAssignExpr()
		}
		decls = append(decls, jsast.VariableDeclarator{Span: p.at(declStart), Binding: binding, Init: init, TSType: typ})
		if !p.is(jslexer.TComma) {
			break
		}
		p.next()
	}
	return &jsast.SVariableDeclaration{Kind: kind, Declarators: decls}
}

func (p *Parser) parseForStmt(start source.Span) jsast.Stmt {
	p.next()
	isAwait := false
	if p.isIdentLike("await") {
		isAwait = true
		p.next()
	}
	p.expect(jslexer.TOpenParen, "'('")

	var init jsast.Stmt
	if p.is(jslexer.TSemicolon) {
		// no init
	} else if p.is(jslexer.TVar) || ((p.isIdentLike("let") || p.isIdentLike("const")) && p.canStartDeclarationAfterLetConst()) {
		kind := jsast.DeclVar
		switch {
		case p.isIdentLike("let"):
			kind = jsast.DeclLet
		case p.isIdentLike("const"):
			kind = jsast.DeclConst
		}
		declStart := p.span()
		decl := p.parseVariableDeclaration(kind)
		init = jsast.Stmt{Span: p.at(declStart), Data: decl}
		if p.isIdentLike("in") || p.isIdentLike("of") {
			return p.parseForInOfTail(start, init, isAwait)
		}
	} else {
		declStart := p.span()
		expr := p.parseExprNoIn()
		init = jsast.Stmt{Span: p.at(declStart), Data: &jsast.SExpr{Value: expr}}
		if p.isIdentLike("in") || p.isIdentLike("of") {
			return p.parseForInOfTail(start, init, isAwait)
		}
	}

	p.expectOrRecover(jslexer.TSemicolon, "';'")
	var test jsast.Expr
	if !p.is(jslexer.TSemicolon) {
		test = p.parseExpr()
	}
	p.expectOrRecover(jslexer.TSemicolon, "';'")
	var update jsast.Expr
	if !p.is(jslexer.TCloseParen) {
		update = p.parseExpr()
	}
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	body := p.parseStmt()
	return jsast.Stmt{Span: p.at(start), Data: &jsast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

// parseExprNoIn parses a for-head init expression with a bare "in" kept
// out of the grammar (the classic ExpressionNoIn production), so
// "for (x in y)" is read as for-in rather than a relational expression.
func (p *Parser) parseExprNoIn() jsast.Expr {
	p.noIn = true
	defer func() { p.noIn = false }()
	return p.parseExpr()
}

func (p *Parser) parseForInOfTail(start source.Span, init jsast.Stmt, isAwait bool) jsast.Stmt {
	isOf := p.isIdentLike("of")
	p.next() // "in"/"of"
	value := p.parseAssignExpr()
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	body := p.parseStmt()
	if isOf {
		return jsast.Stmt{Span: p.at(start), Data: &jsast.SForOf{Decl: init, Value: value, Body: body, IsAwait: isAwait}}
	}
	return jsast.Stmt{Span: p.at(start), Data: &jsast.SForIn{Decl: init, Value: value, Body: body}}
}

func (p *Parser) parseSwitchStmt(start source.Span) jsast.Stmt {
	p.next()
	p.expect(jslexer.TOpenParen, "'('")
	disc := p.parseExpr()
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	p.expect(jslexer.TOpenBrace, "'{'")
	var cases []jsast.SwitchCase
	for !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) {
		var test *jsast.Expr
		if p.is(jslexer.TDefault) {
			p.next()
		} else {
			p.expect(jslexer.TCase, "'case'")
			e := p.parseExpr()
			test = &e
		}
		p.expectOrRecover(jslexer.TColon, "':'")
		var body []jsast.Stmt
		for !p.is(jslexer.TCase) && !p.is(jslexer.TDefault) && !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, jsast.SwitchCase{Test: test, Body: body})
	}
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	return jsast.Stmt{Span: p.at(start), Data: &jsast.SSwitch{Discriminant: disc, Cases: cases}}
}

func (p *Parser) parseTryStmt(start source.Span) jsast.Stmt {
	p.next()
	p.expect(jslexer.TOpenBrace, "'{'")
	bodyStmts := p.parseStmtList(jslexer.TCloseBrace)
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	body := jsast.SBlock{Body: bodyStmts}

	var catch *jsast.CatchClause
	if p.is(jslexer.TCatch) {
		p.next()
		var param *jsast.Binding
		if p.is(jslexer.TOpenParen) {
			p.next()
			b := p.parseBinding()
			if p.is(jslexer.TColon) {
				p.next()
				p.parseType()
			}
			param = &b
			p.expectOrRecover(jslexer.TCloseParen, "')'")
		}
		p.expect(jslexer.TOpenBrace, "'{'")
		catchBody := p.parseStmtList(jslexer.TCloseBrace)
		p.expectOrRecover(jslexer.TCloseBrace, "'}'")
		catch = &jsast.CatchClause{Param: param, Body: jsast.SBlock{Body: catchBody}}
	}

	var finally *jsast.SBlock
	if p.is(jslexer.TFinally) {
		p.next()
		p.expect(jslexer.TOpenBrace, "'{'")
		finallyBody := p.parseStmtList(jslexer.TCloseBrace)
		p.expectOrRecover(jslexer.TCloseBrace, "'}'")
		finally = &jsast.SBlock{Body: finallyBody}
	}

	if catch == nil && finally == nil {
		p.failHere("missing catch or finally after try block")
	}
	return jsast.Stmt{Span: p.at(start), Data: &jsast.STry{Body: body, Catch: catch, Finally: finally}}
}

func (p *Parser) parseFunctionDecl(start source.Span, isAsync bool) jsast.Stmt {
	p.next() // "function"
	isGenerator := false
	if p.is(jslexer.TAsterisk) {
		isGenerator = true
		p.next()
	}
	var name *jsast.NamedSlot
	if p.tok() == jslexer.TIdentifier {
		nameStart := p.span()
		n := p.raw()
		p.next()
		name = &jsast.NamedSlot{Name: p.intern(n), Span: nameStart}
	}
	typeParams := p.tryParseTypeParams()
	params := p.parseTypedParams()
	var ret jsast.TSType
	if p.is(jslexer.TColon) {
		p.next()
		ret = p.parseType()
	}
	var body jsast.FnBody
	if p.is(jslexer.TOpenBrace) {
		body = p.parseFnBody()
	} else {
		p.consumeSemicolon() // overload signature, ambient, or "declare function"
	}
	return jsast.Stmt{Span: p.at(start), Data: &jsast.SFunction{Fn: jsast.Fn{
		Name: name, Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator, ReturnType: ret, TypeParams: typeParams,
	}}}
}
