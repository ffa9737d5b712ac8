package jsparser

import (
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jslexer"
)

// parseBinding parses a declaration-position pattern: identifier, array
// pattern, or object pattern (spec §3.3 Patterns). Used for variable
// declarators, catch params, and (after cover-grammar conversion) function
// parameters.
func (p *Parser) parseBinding() jsast.Binding {
	start := p.span()
	switch p.tok() {
	case jslexer.TOpenBracket:
		p.next()
		var items []jsast.ArrayBindingItem
		hasRest := false
		for !p.is(jslexer.TCloseBracket) && !p.is(jslexer.TEndOfFile) {
			if p.is(jslexer.TComma) {
				items = append(items, jsast.ArrayBindingItem{Binding: jsast.Binding{Data: &jsast.BMissing{}}})
				p.next()
				continue
			}
			if p.is(jslexer.TDotDotDot) {
				p.next()
				hasRest = true
				items = append(items, jsast.ArrayBindingItem{Binding: p.parseBinding()})
			} else {
				b := p.parseBinding()
				var def jsast.Expr
				if p.is(jslexer.TEquals) {
					p.next()
					def = p.parseAssignExpr()
				}
				items = append(items, jsast.ArrayBindingItem{Binding: b, Default: def})
			}
			if !p.is(jslexer.TCloseBracket) {
				p.expectOrRecover(jslexer.TComma, "','")
			}
		}
		p.expectOrRecover(jslexer.TCloseBracket, "']'")
		return jsast.Binding{Span: p.at(start), Data: &jsast.BArray{Items: items, HasRest: hasRest}}

	case jslexer.TOpenBrace:
		p.next()
		var props []jsast.ObjectBindingProperty
		for !p.is(jslexer.TCloseBrace) && !p.is(jslexer.TEndOfFile) {
			propStart := p.span()
			if p.is(jslexer.TDotDotDot) {
				p.next()
				value := p.parseBinding()
				props = append(props, jsast.ObjectBindingProperty{Span: p.at(propStart), Value: value, IsRest: true})
			} else {
				key, computed := p.parsePropertyKey()
				var value jsast.Binding
				if p.is(jslexer.TColon) {
					p.next()
					value = p.parseBinding()
				} else if ident, ok := key.Data.(*jsast.EIdentifier); ok {
					value = jsast.Binding{Span: key.Span, Data: &jsast.BIdentifier{Name: ident.Name}}
				} else {
					p.failHere("expected binding")
					value = jsast.Binding{Data: &jsast.BMissing{}}
				}
				var def jsast.Expr
				if p.is(jslexer.TEquals) {
					p.next()
					def = p.parseAssignExpr()
				}
				props = append(props, jsast.ObjectBindingProperty{
					Span: p.at(propStart), Key: key, IsComputed: computed, Value: value, Default: def,
				})
			}
			if !p.is(jslexer.TCloseBrace) {
				p.expectOrRecover(jslexer.TComma, "','")
			}
		}
		p.expectOrRecover(jslexer.TCloseBrace, "'}'")
		return jsast.Binding{Span: p.at(start), Data: &jsast.BObject{Properties: props}}

	case jslexer.TIdentifier:
		name := p.raw()
		p.next()
		return jsast.Binding{Span: p.at(start), Data: &jsast.BIdentifier{Name: p.intern(name)}}

	default:
		p.failHere("expected a binding pattern")
		p.next()
		return jsast.Binding{Span: p.at(start), Data: &jsast.BMissing{}}
	}
}

func (p *Parser) intern(s string) jsast.Atom {
	return p.arena.Intern(s)
}

// parsePropertyKey parses the key of an object literal, binding pattern,
// or class member: an identifier, string, number, or computed expression.
func (p *Parser) parsePropertyKey() (jsast.Expr, bool) {
	start := p.span()
	switch p.tok() {
	case jslexer.TOpenBracket:
		p.next()
		e := p.parseAssignExpr()
		p.expectOrRecover(jslexer.TCloseBracket, "']'")
		return e, true
	case jslexer.TStringLiteral:
		v := p.lex.StringValue
		raw := p.lex.StringRaw
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EString{Value: v, Raw: raw}}, false
	case jslexer.TNumericLiteral:
		v := p.lex.Number
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.ENumber{Value: v}}, false
	case jslexer.TPrivateIdentifier:
		name := "#" + p.lex.Identifier
		p.next()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EPrivateIdentifier{Name: p.intern(name)}}, false
	default:
		name := p.identifierName()
		return jsast.Expr{Span: p.at(start), Data: &jsast.EIdentifier{Name: p.intern(name), Reference: jsast.InvalidReferenceId}}, false
	}
}

// identifierName accepts any identifier, including reserved words used as
// property names / contextual keywords, consistent with how member and
// object-literal keys are unrestricted in the grammar.
func (p *Parser) identifierName() string {
	if p.tok() == jslexer.TIdentifier || p.tok() >= jslexer.TBreak {
		name := p.raw()
		p.next()
		return name
	}
	p.failHere("expected an identifier")
	name := p.raw()
	p.next()
	return name
}
