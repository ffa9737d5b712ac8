package jsparser

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jslexer"
	"github.com/parsekit/parsekit/internal/source"
)

func (p *Parser) parseClassExpr(start source.Span) jsast.Expr {
	class := p.parseClassTail()
	return jsast.Expr{Span: p.at(start), Data: &jsast.EClass{Class: class}}
}

// parseClassTail parses everything after the "class" keyword: optional
// name, type parameters, extends/implements, and the member list. Shared
// by class expressions, class declarations, and "export default class".
func (p *Parser) parseClassTail() jsast.Class {
	p.next() // "class"
	var name *jsast.NamedSlot
	if p.tok() == jslexer.TIdentifier {
		nameStart := p.span()
		n := p.raw()
		p.next()
		name = &jsast.NamedSlot{Name: p.intern(n), Span: nameStart}
	}
	typeParams := p.tryParseTypeParams()

	var extends jsast.Expr
	var superTypeArgs []jsast.TSType
	if p.is(jslexer.TExtends) {
		p.next()
		extends = p.parseExprAtLevel(jsast.LCall)
		if p.is(jslexer.TLessThan) {
			superTypeArgs = p.parseTypeArguments()
		}
	}
	var implements []jsast.TSType
	if p.isIdentLike("implements") {
		p.next()
		implements = append(implements, p.parseType())
		for p.is(jslexer.TComma) {
			p.next()
			implements = append(implements, p.parseType())
		}
	}

	p.expect(jslexer.TOpenBrace, "'{'")
	var members []jsast.Property
	for !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) {
		if p.is(jslexer.TSemicolon) {
			p.next()
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")

	return jsast.Class{
		Name: name, Extends: extends, Implements: implements, Members: members,
		TypeParams: typeParams, SuperTypeArguments: superTypeArgs,
	}
}

func (p *Parser) parseClassMember() jsast.Property {
	start := p.span()
	var decorators []jsast.Expr
	for p.is(jslexer.TAt) {
		p.next()
		decorators = append(decorators, p.parseExprAtLevel(jsast.LCall))
	}

	var modifiers jsast.ParamModifier
	isStatic, isAbstract, isAsync, isGenerator := false, false, false, false

	for p.tok() == jslexer.TIdentifier {
		word := p.raw()
		var flag jsast.ParamModifier
		switch word {
		case "public":
			flag = jsast.ParamModifierPublic
		case "private":
			flag = jsast.ParamModifierPrivate
		case "protected":
			flag = jsast.ParamModifierProtected
		case "readonly":
			flag = jsast.ParamModifierReadonly
		case "override":
			flag = jsast.ParamModifierOverride
		case "static":
			save := *p.lex
			p.next()
			if p.is(jslexer.TOpenParen) || p.is(jslexer.TEquals) {
				*p.lex = save
				goto doneModifiers
			}
			if p.is(jslexer.TOpenBrace) {
				blockStart := start
				p.next()
				body := p.parseStmtList(jslexer.TCloseBrace)
				p.expectOrRecover(jslexer.TCloseBrace, "'}'")
				return jsast.Property{Span: p.at(blockStart), Kind: jsast.PropertyClassStaticBlock, StaticBlock: body}
			}
			isStatic = true
			continue
		case "abstract":
			isAbstract = true
			p.next()
			continue
		case "async":
			save := *p.lex
			p.next()
			if p.is(jslexer.TOpenParen) || p.is(jslexer.TEquals) || p.lex.HasNewlineBefore {
				*p.lex = save
				goto doneModifiers
			}
			isAsync = true
			continue
		default:
			goto doneModifiers
		}
		{
			save := *p.lex
			p.next()
			if p.is(jslexer.TOpenParen) || p.is(jslexer.TEquals) || p.is(jslexer.TColon) || p.is(jslexer.TSemicolon) {
				*p.lex = save
				goto doneModifiers
			}
			modifiers |= flag
		}
	}
doneModifiers:

	if p.is(jslexer.TAsterisk) {
		isGenerator = true
		p.next()
	}

	kind := jsast.PropertyInit
	if p.isIdentLike("get") || p.isIdentLike("set") {
		which := p.raw()
		save := *p.lex
		p.next()
		if !p.is(jslexer.TOpenParen) && !p.is(jslexer.TEquals) && !p.is(jslexer.TSemicolon) && !p.is(jslexer.TColon) {
			if which == "get" {
				kind = jsast.PropertyGet
			} else {
				kind = jsast.PropertySet
			}
			key, computed := p.parsePropertyKey()
			fn := p.parseMethodTailTyped(isAsync, isGenerator)
			return jsast.Property{
				Span: p.at(start), Kind: kind, Key: key, IsComputed: computed, IsStatic: isStatic,
				Decorators: decorators, Modifiers: modifiers, IsAbstract: isAbstract,
				Value: jsast.Expr{Data: &jsast.EFunction{Fn: fn}},
			}
		}
		*p.lex = save
	}

	key, computed := p.parsePropertyKey()
	optional := false
	if p.is(jslexer.TQuestion) {
		optional = true
		p.next()
	}
	definite := false
	if p.is(jslexer.TExclamation) {
		definite = true
		p.next()
	}

	if p.is(jslexer.TOpenParen) || p.is(jslexer.TLessThan) {
		fn := p.parseMethodTailTyped(isAsync, isGenerator)
		return jsast.Property{
			Span: p.at(start), Kind: jsast.PropertyMethod, Key: key, IsComputed: computed, IsStatic: isStatic,
			Decorators: decorators, Modifiers: modifiers, IsAbstract: isAbstract, Optional: optional,
			Value: jsast.Expr{Data: &jsast.EFunction{Fn: fn}},
		}
	}

	var typ jsast.TSType
	if p.is(jslexer.TColon) {
		p.next()
		typ = p.parseType()
	}
	var value jsast.Expr
	if p.is(jslexer.TEquals) {
		p.next()
		value = p.parseAssignExpr()
	}
	p.consumeSemicolon()
	return jsast.Property{
		Span: p.at(start), Kind: jsast.PropertyInit, Key: key, IsComputed: computed, IsStatic: isStatic,
		Decorators: decorators, Modifiers: modifiers, IsAbstract: isAbstract, Optional: optional,
		Definite: definite, Type: typ, Value: value,
	}
}

func (p *Parser) parseMethodTailTyped(isAsync, isGenerator bool) jsast.Fn {
	typeParams := p.tryParseTypeParams()
	params := p.parseTypedParams()
	var ret jsast.TSType
	if p.is(jslexer.TColon) {
		p.next()
		ret = p.parseType()
	}
	if p.is(jslexer.TOpenBrace) {
		body := p.parseFnBody()
		return jsast.Fn{Params: params, Body: body, IsAsync: isAsync, IsGenerator: isGenerator, ReturnType: ret, TypeParams: typeParams}
	}
	// Abstract/overload/ambient signature: no body.
	p.consumeSemicolon()
	return jsast.Fn{Params: params, IsAsync: isAsync, IsGenerator: isGenerator, ReturnType: ret, TypeParams: typeParams}
}
