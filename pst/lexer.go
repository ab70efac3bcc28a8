package pst

import (
	"strings"
)

// TokenKind is the kind of a lexical unit of PSTricks code.
type TokenKind uint8

const (
	TokCommand TokenKind = iota // \name, Value is the name
	TokBrace                    // {...}, Value is the content
	TokBracket                  // [...]
	TokParen                    // (...)
	TokText                     // any other run of characters
)

func (k TokenKind) String() string {
	switch k {
	case TokCommand:
		return "command"
	case TokBrace:
		return "brace"
	case TokBracket:
		return "bracket"
	case TokParen:
		return "paren"
	default:
		return "text"
	}
}

// Token is a lexical unit. Delimited tokens hold their content
// without the delimiters, comments removed.
type Token struct {
	Kind  TokenKind
	Value string
	Star  bool // for commands followed by '*'
	Line  int
}

type lexer struct {
	src  string
	pos  int
	line int
}

// Tokenize splits src into tokens, skipping blanks and comments.
// Unbalanced braces are reported as a *HardError.
func Tokenize(src string) ([]Token, error) { return tokenize(src, 1) }

func tokenize(src string, line int) ([]Token, error) {
	l := lexer{src: src, line: line}
	var out []Token
	for {
		l.skipBlanks()
		if l.pos >= len(l.src) {
			return out, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
	}
	return c
}

func (l *lexer) skipComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func (l *lexer) skipBlanks() {
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case isBlank(c):
			l.advance()
		case c == '%':
			l.skipComment()
		default:
			return
		}
	}
}

func (l *lexer) next() (Token, error) {
	line := l.line
	switch c := l.src[l.pos]; c {
	case '\\':
		return l.command(), nil
	case '{':
		content, ok := l.delimited('{', '}')
		if !ok {
			return Token{}, &HardError{Line: line, Err: ErrUnbalanced}
		}
		return Token{Kind: TokBrace, Value: content, Line: line}, nil
	case '}':
		return Token{}, &HardError{Line: line, Err: ErrUnbalanced}
	case '[', '(':
		kind, closing := TokBracket, byte(']')
		if c == '(' {
			kind, closing = TokParen, ')'
		}
		start, startLine := l.pos, l.line
		content, ok := l.delimited(c, closing)
		if !ok {
			// a lone opening delimiter is plain text
			l.pos, l.line = start+1, startLine
			return Token{Kind: TokText, Value: string(c), Line: line}, nil
		}
		return Token{Kind: kind, Value: content, Line: line}, nil
	}
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isBlank(c) || strings.IndexByte(`\{}[(%`, c) >= 0 {
			break
		}
		l.advance()
	}
	return Token{Kind: TokText, Value: l.src[start:l.pos], Line: line}, nil
}

// command reads a control word or a control symbol.
func (l *lexer) command() Token {
	line := l.line
	l.advance() // backslash
	start := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start { // control symbol, such as \\ or \%
		if l.pos < len(l.src) {
			l.advance()
		}
		return Token{Kind: TokText, Value: l.src[start-1 : l.pos], Line: line}
	}
	tok := Token{Kind: TokCommand, Value: l.src[start:l.pos], Line: line}
	if l.pos < len(l.src) && l.src[l.pos] == '*' {
		tok.Star = true
		l.pos++
	}
	return tok
}

// delimited reads a group opened by the current character, honouring
// nesting and escaped characters, and returns its content.
func (l *lexer) delimited(open, closing byte) (string, bool) {
	var sb strings.Builder
	l.advance()
	depth := 1
	for l.pos < len(l.src) {
		c := l.advance()
		switch c {
		case '\\':
			sb.WriteByte(c)
			if l.pos < len(l.src) {
				sb.WriteByte(l.advance())
			}
			continue
		case '%':
			l.skipComment()
			continue
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return sb.String(), true
			}
		}
		sb.WriteByte(c)
	}
	return "", false
}
