package jsparser

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jslexer"
	"github.com/parsekit/parsekit/internal/source"
)

// parseType parses a TypeScript type annotation. The core only ever
// stores these as TSType trees — it never checks or infers them (spec
// §3.7, §4.4.3's note that TS syntax is "parsed, not type-checked").
func (p *Parser) parseType() jsast.TSType {
	return p.parseConditionalType()
}

func (p *Parser) parseConditionalType() jsast.TSType {
	check := p.parseUnionType()
	if p.is(jslexer.TExtends) {
		p.next()
		extends := p.parseUnionType()
		p.expectOrRecover(jslexer.TQuestion, "'?'")
		trueType := p.parseType()
		p.expectOrRecover(jslexer.TColon, "':'")
		falseType := p.parseType()
		return &jsast.TSConditionalType{CheckType: check, ExtendsType: extends, TrueType: trueType, FalseType: falseType}
	}
	return check
}

func (p *Parser) parseUnionType() jsast.TSType {
	if p.is(jslexer.TBar) {
		p.next()
	}
	first := p.parseIntersectionType()
	if !p.is(jslexer.TBar) {
		return first
	}
	types := []jsast.TSType{first}
	for p.is(jslexer.TBar) {
		p.next()
		types = append(types, p.parseIntersectionType())
	}
	return &jsast.TSUnionType{Types: types}
}

func (p *Parser) parseIntersectionType() jsast.TSType {
	if p.is(jslexer.TAmpersand) {
		p.next()
	}
	first := p.parseTypeOperatorOrPostfix()
	if !p.is(jslexer.TAmpersand) {
		return first
	}
	types := []jsast.TSType{first}
	for p.is(jslexer.TAmpersand) {
		p.next()
		types = append(types, p.parseTypeOperatorOrPostfix())
	}
	return &jsast.TSIntersectionType{Types: types}
}

func (p *Parser) parseTypeOperatorOrPostfix() jsast.TSType {
	if p.tok() == jslexer.TIdentifier {
		switch p.raw() {
		case "keyof":
			p.next()
			return &jsast.TSTypeOperator{Op: jsast.TSOperatorKeyof, Type: p.parseTypeOperatorOrPostfix()}
		case "unique":
			p.next()
			return &jsast.TSTypeOperator{Op: jsast.TSOperatorUnique, Type: p.parseTypeOperatorOrPostfix()}
		case "readonly":
			p.next()
			return &jsast.TSTypeOperator{Op: jsast.TSOperatorReadonly, Type: p.parseTypeOperatorOrPostfix()}
		case "infer":
			p.next()
			nameSpan := p.span()
			name := p.identifierName()
			return &jsast.TSInferType{TypeParam: jsast.TSTypeParam{Span: nameSpan, Name: p.intern(name)}}
		}
	}
	return p.parsePostfixType()
}

func (p *Parser) parsePostfixType() jsast.TSType {
	t := p.parsePrimaryType()
	for {
		if p.is(jslexer.TOpenBracket) && !p.lex.HasNewlineBefore {
			p.next()
			if p.is(jslexer.TCloseBracket) {
				p.next()
				t = &jsast.TSArrayType{Element: t}
				continue
			}
			index := p.parseType()
			p.expectOrRecover(jslexer.TCloseBracket, "']'")
			t = &jsast.TSIndexedAccessType{Object: t, Index: index}
			continue
		}
		return t
	}
}

func (p *Parser) parsePrimaryType() jsast.TSType {
	start := p.span()
	switch p.tok() {
	case jslexer.TOpenParen:
		if p.looksLikeFunctionTypeParams() {
			return p.parseFunctionOrConstructorType(false)
		}
		p.next()
		inner := p.parseType()
		p.expectOrRecover(jslexer.TCloseParen, "')'")
		return &jsast.TSParenthesizedType{Type: inner}
	case jslexer.TOpenBracket:
		p.next()
		var elems []jsast.TSType
		hasRest := false
		for !p.is(jslexer.TCloseBracket) && !p.is(jslexer.TEndOfFile) {
			if p.is(jslexer.TDotDotDot) {
				p.next()
				hasRest = true
			}
			elems = append(elems, p.parseType())
			if !p.is(jslexer.TCloseBracket) {
				p.expectOrRecover(jslexer.TComma, "','")
			}
		}
		p.expectOrRecover(jslexer.TCloseBracket, "']'")
		return &jsast.TSTupleType{Elements: elems, HasRest: hasRest}
	case jslexer.TOpenBrace:
		return p.parseTypeLiteral()
	case jslexer.TStringLiteral:
		v, raw := p.lex.StringValue, p.lex.StringRaw
		p.next()
		return &jsast.TSLiteralType{Value: jsast.Expr{Span: p.at(start), Data: &jsast.EString{Value: v, Raw: raw}}}
	case jslexer.TNumericLiteral:
		v := p.lex.Number
		p.next()
		return &jsast.TSLiteralType{Value: jsast.Expr{Span: p.at(start), Data: &jsast.ENumber{Value: v}}}
	case jslexer.TMinus:
		p.next()
		v := p.lex.Number
		p.expect(jslexer.TNumericLiteral, "a number")
		return &jsast.TSLiteralType{Value: jsast.Expr{Span: p.at(start), Data: &jsast.ENumber{Value: -v}}}
	case jslexer.TTrue:
		p.next()
		return &jsast.TSLiteralType{Value: jsast.Expr{Data: &jsast.EBoolean{Value: true}}}
	case jslexer.TFalse:
		p.next()
		return &jsast.TSLiteralType{Value: jsast.Expr{Data: &jsast.EBoolean{Value: false}}}
	case jslexer.TNew:
		p.next()
		return p.parseFunctionOrConstructorType(true)
	case jslexer.TImport:
		return p.parseImportType()
	case jslexer.TIdentifier, jslexer.TNull, jslexer.TThis:
		switch p.raw() {
		case "abstract":
			save := *p.lex
			p.next()
			if p.is(jslexer.TNew) {
				p.next()
				t := p.parseFunctionOrConstructorType(true)
				if ct, ok := t.(*jsast.TSConstructorType); ok {
					ct.IsAbstract = true
				}
				return t
			}
			*p.lex = save
		}
		return p.parseTypeReferenceOrKeyword(start)
	default:
		p.failHere("expected a type")
		p.next()
		return &jsast.TSKeyword{Span: p.at(start), Kind: jsast.TSAny}
	}
}

// looksLikeFunctionTypeParams disambiguates "(x: T) => R" from a
// parenthesized type "(A | B)" by scanning ahead with a restorable
// snapshot, since Lexer holds only plain value fields and copies cleanly.
func (p *Parser) looksLikeFunctionTypeParams() bool {
	save := *p.lex
	defer func() { *p.lex = save }()
	p.next() // "("
	if p.is(jslexer.TCloseParen) {
		p.next()
		return p.is(jslexer.TEqualsGreaterThan)
	}
	depth := 1
	for depth > 0 {
		switch p.tok() {
		case jslexer.TOpenParen:
			depth++
		case jslexer.TCloseParen:
			depth--
		case jslexer.TEndOfFile:
			return false
		}
		p.next()
	}
	return p.is(jslexer.TEqualsGreaterThan)
}

func (p *Parser) parseFunctionOrConstructorType(isConstructor bool) jsast.TSType {
	typeParams := p.tryParseTypeParams()
	params := p.parseTypedParams()
	p.expectOrRecover(jslexer.TEqualsGreaterThan, "'=>'")
	ret := p.parseType()
	if isConstructor {
		return &jsast.TSConstructorType{Params: params, ReturnType: ret, TypeParams: typeParams}
	}
	return &jsast.TSFunctionType{Params: params, ReturnType: ret, TypeParams: typeParams}
}

// parseTypedParams parses a parameter list that carries type annotations,
// used by function-type and method-signature positions (as opposed to
// parseParams, used by function/arrow bodies).
func (p *Parser) parseTypedParams() []jsast.Param {
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
		optional := false
		if p.is(jslexer.TQuestion) {
			optional = true
			p.next()
		}
		var typ jsast.TSType
		if p.is(jslexer.TColon) {
			p.next()
			typ = p.parseType()
		}
		var def jsast.Expr
		if p.is(jslexer.TEquals) {
			p.next()
			def = p.parseAssignExpr()
		}
		params = append(params, jsast.Param{
			Span: p.at(paramStart), Binding: binding, Default: def, Type: typ, IsRest: isRest, Optional: optional,
		})
		if !p.is(jslexer.TCloseParen) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	return params
}

func (p *Parser) parseTypeLiteral() jsast.TSType {
	p.expect(jslexer.TOpenBrace, "'{'")
	var members []jsast.TSTypeLiteralMember
	for !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) {
		members = append(members, p.parseTypeLiteralMember())
		if p.is(jslexer.TComma) || p.is(jslexer.TSemicolon) {
			p.next()
		}
	}
	p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	return &jsast.TSTypeLiteral{Members: members}
}

func (p *Parser) parseTypeLiteralMember() jsast.TSTypeLiteralMember {
	start := p.span()
	if p.is(jslexer.TOpenBracket) {
		// Index signature: "[key: string]: T".
		save := *p.lex
		p.next()
		if p.tok() == jslexer.TIdentifier {
			p.next()
			if p.is(jslexer.TColon) {
				p.next()
				p.parseType() // key type, not retained separately
				p.expectOrRecover(jslexer.TCloseBracket, "']'")
				p.expectOrRecover(jslexer.TColon, "':'")
				valueType := p.parseType()
				return jsast.TSTypeLiteralMember{Span: p.at(start), Type: valueType, IsIndexSignature: true}
			}
		}
		*p.lex = save
	}
	if p.is(jslexer.TOpenParen) || p.is(jslexer.TLessThan) {
		p.tryParseTypeParams() // a generic call signature's type parameters are not retained
		params := p.parseTypedParams()
		var ret jsast.TSType
		if p.is(jslexer.TColon) {
			p.next()
			ret = p.parseType()
		}
		return jsast.TSTypeLiteralMember{Span: p.at(start), IsCallSignature: true, Params: withReturnAsParam(params, ret), Type: ret}
	}
	readonly := false
	if p.isIdentLike("readonly") {
		save := *p.lex
		p.next()
		if p.is(jslexer.TColon) || p.is(jslexer.TQuestion) {
			*p.lex = save
		} else {
			readonly = true
		}
	}
	key, computed := p.parsePropertyKey()
	if p.is(jslexer.TOpenParen) {
		params := p.parseTypedParams()
		var ret jsast.TSType
		if p.is(jslexer.TColon) {
			p.next()
			ret = p.parseType()
		}
		return jsast.TSTypeLiteralMember{Span: p.at(start), Key: key, IsComputed: computed, IsMethod: true, Params: params, Type: ret}
	}
	optional := false
	if p.is(jslexer.TQuestion) {
		optional = true
		p.next()
	}
	var typ jsast.TSType
	if p.is(jslexer.TColon) {
		p.next()
		typ = p.parseType()
	}
	return jsast.TSTypeLiteralMember{Span: p.at(start), Key: key, IsComputed: computed, Type: typ, Optional: optional, Readonly: readonly}
}

func withReturnAsParam(params []jsast.Param, _ jsast.TSType) []jsast.Param { return params }

func (p *Parser) parseImportType() jsast.TSType {
	p.next() // "import"
	p.expect(jslexer.TOpenParen, "'('")
	src := p.lex.StringValue
	p.expect(jslexer.TStringLiteral, "a module specifier")
	p.expectOrRecover(jslexer.TCloseParen, "')'")
	qualifier := ""
	if p.is(jslexer.TDot) {
		p.next()
		qualifier = p.identifierName()
	}
	var typeArgs []jsast.TSType
	if p.is(jslexer.TLessThan) {
		typeArgs = p.parseTypeArguments()
	}
	return &jsast.TSImportType{Source: src, QualifierName: p.intern(qualifier), TypeArguments: typeArgs}
}

func (p *Parser) parseTypeReferenceOrKeyword(start source.Span) jsast.TSType {
	name := p.identifierName()
	if kw, ok := tsKeywordKinds[name]; ok {
		return &jsast.TSKeyword{Span: p.at(start), Kind: kw}
	}
	for p.is(jslexer.TDot) {
		p.next()
		name = name + "." + p.identifierName()
	}
	var typeArgs []jsast.TSType
	if p.is(jslexer.TLessThan) {
		typeArgs = p.parseTypeArguments()
	}
	return &jsast.TSTypeReference{Span: p.at(start), Name: p.intern(name), TypeArguments: typeArgs}
}

var tsKeywordKinds = map[string]jsast.TSKeywordKind{
	"any": jsast.TSAny, "unknown": jsast.TSUnknown, "never": jsast.TSNever,
	"void": jsast.TSVoid, "undefined": jsast.TSUndefined, "null": jsast.TSNull,
	"boolean": jsast.TSBoolean, "number": jsast.TSNumber, "string": jsast.TSString,
	"bigint": jsast.TSBigInt, "symbol": jsast.TSSymbol, "object": jsast.TSObjectKeyword,
	"this": jsast.TSThisType,
}

// parseTypeArguments parses "<T, U>" in a type-reference or instantiation
// position, always starting with the lexer positioned on "<".
func (p *Parser) parseTypeArguments() []jsast.TSType {
	p.expect(jslexer.TLessThan, "'<'")
	var args []jsast.TSType
	for !p.is(jslexer.TGreaterThan) && !p.is(jslexer.TEndOfFile) {
		args = append(args, p.parseType())
		if !p.is(jslexer.TGreaterThan) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TGreaterThan, "'>'")
	return args
}

// tryParseTypeParams parses "<T extends X = Y, ...>" if present.
func (p *Parser) tryParseTypeParams() []jsast.TSTypeParam {
	if !p.is(jslexer.TLessThan) {
		return nil
	}
	p.next()
	var params []jsast.TSTypeParam
	for !p.is(jslexer.TGreaterThan) && !p.is(jslexer.TEndOfFile) {
		start := p.span()
		name := p.identifierName()
		var constraint, def jsast.TSType
		if p.is(jslexer.TExtends) {
			p.next()
			constraint = p.parseType()
		}
		if p.is(jslexer.TEquals) {
			p.next()
			def = p.parseType()
		}
		params = append(params, jsast.TSTypeParam{Span: p.at(start), Name: p.intern(name), Constraint: constraint, Default: def})
		if !p.is(jslexer.TGreaterThan) {
			p.expectOrRecover(jslexer.TComma, "','")
		}
	}
	p.expectOrRecover(jslexer.TGreaterThan, "'>'")
	return params
}

// parseTypeAssertion handles the legacy "<T>expr" cast form.
func (p *Parser) parseTypeAssertion(start source.Span) jsast.Expr {
	p.next() // "<"
	t := p.parseType()
	p.expectOrRecover(jslexer.TGreaterThan, "'>'")
	value := p.parsePrefixExpr(jsast.LPrefix)
	return jsast.Expr{Span: p.at(start), Data: &jsast.ETypeAssertion{Expression: value, Type: t}}
}
