package jsparser

import (
	"strings"

	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jslexer"
	"github.com/parsekit/parsekit/internal/source"
)

// parseJSXElementOrFragment parses "<Name ...attrs>children</Name>",
// "<Name .../>", or "<>children</>". Unlike plain-expression grammar,
// JSX text content is read directly from the source between tags rather
// than through the token lexer (spec §3.3's note that JSX text is its
// own leaf node, EJSXText).
func (p *Parser) parseJSXElementOrFragment(start source.Span) jsast.Expr {
	p.next() // "<"
	if p.is(jslexer.TGreaterThan) {
		p.next()
		children := p.parseJSXChildren()
		p.expectJSXClosing("")
		return jsast.Expr{Span: p.at(start), Data: &jsast.EJSXFragment{Children: children}}
	}

	name := p.parseJSXName()
	var attrs []jsast.JSXAttribute
	for !p.is(jslexer.TSlash) && !p.is(jslexer.TGreaterThan) && !p.is(jslexer.TEndOfFile) {
		attrs = append(attrs, p.parseJSXAttribute())
	}
	var typeArgs []jsast.TSType
	opening := jsast.JSXOpeningElement{Span: p.at(start), Name: name, Attributes: attrs, TypeArguments: typeArgs}

	if p.is(jslexer.TSlash) {
		p.next()
		p.expectOrRecover(jslexer.TGreaterThan, "'>'")
		return jsast.Expr{Span: p.at(start), Data: &jsast.EJSXElement{Opening: opening}}
	}
	p.expectOrRecover(jslexer.TGreaterThan, "'>'")

	children := p.parseJSXChildren()
	closeName := p.expectJSXClosing(jsxNameString(name))
	closing := &jsast.JSXClosingElement{Name: closeName}
	return jsast.Expr{Span: p.at(start), Data: &jsast.EJSXElement{Opening: opening, Closing: closing, Children: children}}
}

func jsxNameString(e jsast.Expr) string {
	switch d := e.Data.(type) {
	case *jsast.EIdentifier:
		return d.Name.String()
	case *jsast.EDot:
		return jsxNameString(d.Target) + "." + d.Name.String()
	}
	return ""
}

// parseJSXName reads a (possibly dotted or namespaced) tag/attribute name
// directly from identifier tokens joined by "." or ":".
func (p *Parser) parseJSXName() jsast.Expr {
	start := p.span()
	name := p.identifierName()
	for p.is(jslexer.TMinus) {
		p.next()
		name += "-" + p.identifierName()
	}
	e := jsast.Expr{Span: p.at(start), Data: &jsast.EIdentifier{Name: p.intern(name), Reference: jsast.InvalidReferenceId}}
	for p.is(jslexer.TDot) {
		p.next()
		part := p.identifierName()
		e = jsast.Expr{Span: p.at(start), Data: &jsast.EDot{Target: e, Name: p.intern(part)}}
	}
	return e
}

func (p *Parser) parseJSXAttribute() jsast.JSXAttribute {
	start := p.span()
	if p.is(jslexer.TOpenBrace) {
		p.next()
		p.expectOrRecover(jslexer.TDotDotDot, "'...'")
		value := p.parseAssignExpr()
		p.expectOrRecover(jslexer.TCloseBrace, "'}'")
		return jsast.JSXAttribute{Span: p.at(start), Spread: value}
	}
	name := p.identifierName()
	if p.is(jslexer.TColon) {
		p.next()
		name += ":" + p.identifierName()
	}
	if !p.is(jslexer.TEquals) {
		return jsast.JSXAttribute{Span: p.at(start), Name: p.intern(name)}
	}
	p.next()
	var value jsast.Expr
	switch p.tok() {
	case jslexer.TStringLiteral:
		v, raw := p.lex.StringValue, p.lex.StringRaw
		valSpan := p.span()
		p.next()
		value = jsast.Expr{Span: valSpan, Data: &jsast.EString{Value: v, Raw: raw}}
	case jslexer.TOpenBrace:
		p.next()
		value = p.parseAssignExpr()
		p.expectOrRecover(jslexer.TCloseBrace, "'}'")
	case jslexer.TLessThan:
		value = p.parseJSXElementOrFragment(p.span())
	default:
		p.failHere("expected a JSX attribute value")
	}
	return jsast.JSXAttribute{Span: p.at(start), Name: p.intern(name), Value: value}
}

// parseJSXChildren scans raw source text for text runs, "{...}"
// expression containers, and nested elements, stopping just before the
// "</" (or EOF) that closes the current element.
func (p *Parser) parseJSXChildren() []jsast.Expr {
	var children []jsast.Expr
	for {
		text, hitOpenBrace, hitLt, hitClose := p.scanJSXText()
		if text != "" {
			children = append(children, jsast.Expr{Data: &jsast.EJSXText{Raw: text}})
		}
		switch {
		case hitClose:
			return children
		case hitOpenBrace:
			p.next() // now positioned after "{" as a real token
			if p.is(jslexer.TCloseBrace) {
				p.next()
				continue
			}
			if p.is(jslexer.TDotDotDot) {
				p.next()
				value := p.parseAssignExpr()
				p.expectOrRecover(jslexer.TCloseBrace, "'}'")
				children = append(children, jsast.Expr{Data: &jsast.ESpread{Value: value}})
				continue
			}
			value := p.parseAssignExpr()
			p.expectOrRecover(jslexer.TCloseBrace, "'}'")
			children = append(children, value)
		case hitLt:
			p.next() // now positioned after "<" as a real token, but we want parseJSXElementOrFragment to see it
			start := source.Span{Start: p.lex.Span.Start - 1, End: p.lex.Span.Start - 1}
			children = append(children, p.parseJSXElementOrFragmentAfterLt(start))
		default:
			return children
		}
	}
}

// parseJSXElementOrFragmentAfterLt continues parsing an element/fragment
// whose leading "<" was already consumed by the raw-text scanner above
// (JSX children scanning can't route through the ordinary lexer, which
// doesn't know "<" can start a child element mid-text).
func (p *Parser) parseJSXElementOrFragmentAfterLt(start source.Span) jsast.Expr {
	if p.is(jslexer.TGreaterThan) {
		p.next()
		children := p.parseJSXChildren()
		p.expectJSXClosing("")
		return jsast.Expr{Span: p.at(start), Data: &jsast.EJSXFragment{Children: children}}
	}
	name := p.parseJSXName()
	var attrs []jsast.JSXAttribute
	for !p.is(jslexer.TSlash) && !p.is(jslexer.TGreaterThan) && !p.is(jslexer.TEndOfFile) {
		attrs = append(attrs, p.parseJSXAttribute())
	}
	opening := jsast.JSXOpeningElement{Span: p.at(start), Name: name, Attributes: attrs}
	if p.is(jslexer.TSlash) {
		p.next()
		p.expectOrRecover(jslexer.TGreaterThan, "'>'")
		return jsast.Expr{Span: p.at(start), Data: &jsast.EJSXElement{Opening: opening}}
	}
	p.expectOrRecover(jslexer.TGreaterThan, "'>'")
	children := p.parseJSXChildren()
	closeName := p.expectJSXClosing(jsxNameString(name))
	return jsast.Expr{Span: p.at(start), Data: &jsast.EJSXElement{Opening: opening, Closing: &jsast.JSXClosingElement{Name: closeName}, Children: children}}
}

// scanJSXText reads raw bytes directly from the source until it meets
// "{", "<", or "</", resyncing the lexer at that byte offset afterward.
// This bypasses token scanning entirely because JSX text has none of
// ordinary JS's lexical structure (no escapes, no comments, whitespace is
// significant).
func (p *Parser) scanJSXText() (text string, hitOpenBrace, hitLt, hitClose bool) {
	src := p.currentSource()
	pos := int(p.lex.Span.Start)
	start := pos
	for pos < len(src) {
		c := src[pos]
		if c == '{' {
			p.resyncLexerTo(pos)
			return src[start:pos], true, false, false
		}
		if c == '<' {
			if pos+1 < len(src) && src[pos+1] == '/' {
				p.resyncLexerTo(pos + 2)
				return src[start:pos], false, false, true
			}
			p.resyncLexerTo(pos)
			return src[start:pos], false, true, false
		}
		pos++
	}
	p.resyncLexerTo(pos)
	return src[start:pos], false, false, false
}

func (p *Parser) currentSource() string { return p.src }

// resyncLexerTo repositions the lexer to scan starting at byte offset pos
// and primes it with one token, used after the raw JSX-text scan above
// moved the read position without going through Next.
func (p *Parser) resyncLexerTo(pos int) {
	p.lex.ResetPosition(pos)
	p.collectPendingComments()
	p.lex.Next()
}

// expectJSXClosing consumes the rest of a "</Name>" (the "</" itself was
// already consumed by scanJSXText) and checks the name matches, when a
// name is expected (wantName == "" for fragments).
func (p *Parser) expectJSXClosing(wantName string) jsast.Expr {
	if p.is(jslexer.TGreaterThan) {
		p.next()
		return jsast.Expr{}
	}
	name := p.parseJSXName()
	if wantName != "" && jsxNameString(name) != wantName && !strings.Contains(wantName, ".") {
		p.failHere("mismatched JSX closing tag, expected </%s>", wantName)
	}
	p.expectOrRecover(jslexer.TGreaterThan, "'>'")
	return name
}
