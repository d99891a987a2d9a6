package shape

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Parser: recursive descent parser for the shape notation
// ---------------------------------------------------------------------------

// ParseError is a parse failure with source position.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type parser struct {
	lexer    *Lexer
	curToken Token
}

// Parse reads a single shape expression from src. The expression must be a
// constructor or array at the top level; trailing input is an error.
func Parse(src string) (Expr, error) {
	p := &parser{lexer: NewLexer(src)}
	p.nextToken()

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != TokenEOF {
		return nil, p.errorf("unexpected %s after expression", p.curToken.Type)
	}
	return e, nil
}

func (p *parser) nextToken() {
	p.curToken = p.lexer.NextToken()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Line: p.curToken.Line,
		Col:  p.curToken.Col,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseExpr() (Expr, error) {
	switch p.curToken.Type {
	case TokenLParen:
		return p.parseCtor()
	case TokenLBracket:
		return p.parseArray()
	default:
		return nil, p.errorf("expected ( or [, got %s", p.curToken.Type)
	}
}

func (p *parser) parseCtor() (Expr, error) {
	p.nextToken() // consume (

	if p.curToken.Type != TokenCtor {
		return nil, p.errorf("expected constructor tag C<n>, got %s", p.curToken.Type)
	}
	tag, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		return nil, p.errorf("bad constructor tag %q", p.curToken.Literal)
	}
	p.nextToken()

	c := &Ctor{Tag: tag}
	for p.curToken.Type != TokenRParen {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		c.Fields = append(c.Fields, f)
	}
	p.nextToken() // consume )
	return c, nil
}

func (p *parser) parseArray() (Expr, error) {
	p.nextToken() // consume [

	a := &Array{}
	for p.curToken.Type != TokenRBracket {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		a.Elems = append(a.Elems, f)
	}
	p.nextToken() // consume ]
	return a, nil
}

func (p *parser) parseField() (Field, error) {
	switch p.curToken.Type {
	case TokenLParen:
		return p.parseCtor()
	case TokenLBracket:
		return p.parseArray()
	case TokenIdent:
		k, err := kindFromName(p.curToken.Literal)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		p.nextToken()
		return &Leaf{Kind: k}, nil
	case TokenHole:
		k := KindUnresolved
		if p.curToken.Literal != "" {
			var err error
			k, err = kindFromName(p.curToken.Literal)
			if err != nil {
				return nil, p.errorf("%v", err)
			}
		}
		p.nextToken()
		return &Hole{Kind: k}, nil
	case TokenEOF:
		return nil, p.errorf("unexpected end of input in field list")
	default:
		return nil, p.errorf("unexpected %s in field list", p.curToken.Type)
	}
}
