package query

import "fmt"

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ tokenType) (token, error) {
	tok := p.next()
	if tok.typ != typ {
		return tok, p.errorf(tok, "expected %s, got %s", typ, describe(tok))
	}
	return tok, nil
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok token) string {
	if tok.val != "" {
		return fmt.Sprintf("%s %q", tok.typ, tok.val)
	}
	return tok.typ.String()
}

func (p *parser) parseExpr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []node{first}
	for p.peek().typ == tokOr {
		p.next()
		term, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &orNode{terms: terms}, nil
}

func (p *parser) parseAnd() (node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []node{first}
	for p.peek().typ == tokAnd {
		p.next()
		term, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &andNode{terms: terms}, nil
}

func (p *parser) parseUnary() (node, error) {
	switch p.peek().typ {
	case tokNot:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notNode{inner: inner}, nil
	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return p.parseTest()
	}
}

func (p *parser) parseTest() (node, error) {
	lhs := p.next()
	n := &compareNode{}
	switch lhs.typ {
	case tokIdent:
		attr, ok := lookupAttribute(lhs.val)
		if !ok {
			return nil, p.errorf(lhs, "unknown template attribute %q", lhs.val)
		}
		n.attr = &attr
	case tokContext:
		n.ctxKey = lhs.val
	default:
		return nil, p.errorf(lhs, "expected attribute or context reference, got %s", describe(lhs))
	}

	op := p.next()
	switch op.typ {
	case tokEq, tokIn:
	case tokNeq:
		n.negate = true
	default:
		return nil, p.errorf(op, "expected comparison operator, got %s", describe(op))
	}
	n.op = op.val

	rhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, isList := rhs.(listOperand); op.typ == tokIn && !isList {
		return nil, p.errorf(op, "'in' requires a list value")
	}
	n.rhs = rhs
	return n, nil
}

func (p *parser) parseValue() (operand, error) {
	tok := p.next()
	switch tok.typ {
	case tokIdent, tokString:
		return literal{val: tok.val}, nil
	case tokContext:
		return contextRef{key: tok.val}, nil
	case tokLBracket:
		var items []operand
		for {
			item, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if _, nested := item.(listOperand); nested {
				return nil, p.errorf(tok, "nested lists are not supported")
			}
			items = append(items, item)
			sep := p.next()
			if sep.typ == tokRBracket {
				return listOperand{items: items}, nil
			}
			if sep.typ != tokComma {
				return nil, p.errorf(sep, "expected ',' or ']', got %s", describe(sep))
			}
		}
	default:
		return nil, p.errorf(tok, "expected value, got %s", describe(tok))
	}
}
