package shape

import (
	"fmt"
	"unicode"
)

// ---------------------------------------------------------------------------
// Lexer: tokenizer for the textual shape notation
// ---------------------------------------------------------------------------
//
// The notation is deliberately small:
//
//	(C7 int ? ?float)    constructor with tag 7 and three fields
//	[float float]        homogeneous array
//	int | float | box    known leaf of that kind
//	? ?int ?float ?box   hole, optionally with a declared kind
//
// Commas count as whitespace so field lists read naturally either way.

// TokenType identifies a lexical token class.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenCtor  // C<digits>; Literal holds the digits
	TokenIdent // int, float, box
	TokenHole  // ?; Literal holds the optional kind name
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenCtor:
		return "CTOR"
	case TokenIdent:
		return "IDENT"
	case TokenHole:
		return "HOLE"
	default:
		return "?"
	}
}

// Token is a single lexical token with source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-based
	Col     int // 1-based
}

// Lexer tokenizes shape notation source text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current character
	line    int
	col     int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == ',' {
		l.readChar()
	}
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Line: l.line, Col: l.col}
	switch {
	case l.ch == 0:
		tok.Type = TokenEOF
	case l.ch == '(':
		tok.Type = TokenLParen
		l.readChar()
	case l.ch == ')':
		tok.Type = TokenRParen
		l.readChar()
	case l.ch == '[':
		tok.Type = TokenLBracket
		l.readChar()
	case l.ch == ']':
		tok.Type = TokenRBracket
		l.readChar()
	case l.ch == '?':
		l.readChar()
		tok.Type = TokenHole
		if isLetter(l.ch) {
			tok.Literal = l.readName()
		}
	case l.ch == 'C' && isDigit(l.peek()):
		l.readChar()
		tok.Type = TokenCtor
		tok.Literal = l.readDigits()
	case isLetter(l.ch):
		tok.Type = TokenIdent
		tok.Literal = l.readName()
	default:
		tok.Type = TokenIllegal
		tok.Literal = string(l.ch)
		l.readChar()
	}
	return tok
}

func (l *Lexer) peek() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readName() string {
	start := l.pos
	for isLetter(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readDigits() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isLetter(ch byte) bool {
	return ch < 0x80 && unicode.IsLower(rune(ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// kindFromName maps a kind name in the notation to its Kind.
func kindFromName(name string) (Kind, error) {
	switch name {
	case "box":
		return KindBoxed, nil
	case "int":
		return KindScalar, nil
	case "float":
		return KindFloat, nil
	default:
		return KindUnresolved, fmt.Errorf("unknown kind %q", name)
	}
}
