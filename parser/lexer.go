package parser

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// Lex converts source text into a flat, ordered sequence of tokens.
// The first malformed character sequence aborts lexing with a *LexError.
func Lex(src string) ([]Token, error) {
	lx := newLexer(src)
	var tokens []Token
	for {
		tok, err := lx.nextToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		line:   1,
		column: 1,
	}
}

type runeState struct {
	pos    int
	line   int
	column int
}

func (lx *lexer) mark() runeState {
	return runeState{
		pos:    lx.pos,
		line:   lx.line,
		column: lx.column,
	}
}

func (lx *lexer) restore(state runeState) {
	lx.pos = state.pos
	lx.line = state.line
	lx.column = state.column
}

func (lx *lexer) readRune() (rune, runeState, error) {
	state := lx.mark()
	if lx.pos >= len(lx.src) {
		return 0, state, io.EOF
	}
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if r == utf8.RuneError && w == 1 {
		return 0, state, lx.errorf(state, "invalid UTF-8 encoding at byte %d", lx.pos)
	}
	lx.pos += w
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r, state, nil
}

// peekRune returns the rune n positions ahead without consuming anything.
func (lx *lexer) peekRune(n int) (rune, bool) {
	pos := lx.pos
	var r rune
	for i := 0; i <= n; i++ {
		if pos >= len(lx.src) {
			return 0, false
		}
		var w int
		r, w = utf8.DecodeRuneInString(lx.src[pos:])
		pos += w
	}
	return r, true
}

func (lx *lexer) skipWhitespace() {
	for {
		r, ok := lx.peekRune(0)
		if !ok || !isWhitespace(r) {
			return
		}
		lx.readRune()
	}
}

func (lx *lexer) nextToken() (Token, error) {
	lx.skipWhitespace()

	start := lx.mark()
	r, _, err := lx.readRune()
	if err != nil {
		return Token{}, err
	}

	switch {
	case (r == '+' || r == '-') && lx.digitAhead(0):
		return lx.scanNumber(start)
	case isSymbolic(r):
		lx.scanSymbolic()
		return lx.token(Operator, start), nil
	case unicode.IsLetter(r):
		if err := lx.scanIdentifier(); err != nil {
			return Token{}, err
		}
		return lx.token(Identifier, start), nil
	case isDigit(r):
		return lx.scanNumber(start)
	case r == '"':
		if err := lx.scanString(start); err != nil {
			return Token{}, err
		}
		return lx.token(String, start), nil
	default:
		return lx.token(Operator, start), nil
	}
}

func (lx *lexer) token(kind Kind, start runeState) Token {
	return Token{
		Kind: kind,
		Text: lx.src[start.pos:lx.pos],
		Pos:  positionFromState(start),
	}
}

func (lx *lexer) digitAhead(n int) bool {
	r, ok := lx.peekRune(n)
	return ok && isDigit(r)
}

func (lx *lexer) scanIdentifier() error {
	for {
		r, ok := lx.peekRune(0)
		if !ok || !isIdentifierPart(r) {
			return nil
		}
		if _, _, err := lx.readRune(); err != nil {
			return err
		}
	}
}

// scanSymbolic consumes a run of operator characters. The run stops in
// front of a sign that begins a number literal.
func (lx *lexer) scanSymbolic() {
	for {
		r, ok := lx.peekRune(0)
		if !ok || !isSymbolic(r) {
			return
		}
		if (r == '+' || r == '-') && lx.digitAhead(1) {
			return
		}
		lx.readRune()
	}
}

func (lx *lexer) scanNumber(start runeState) (Token, error) {
	lx.skipDigits()
	dot := lx.mark()
	if r, ok := lx.peekRune(0); ok && r == '.' {
		lx.readRune()
		if lx.digitAhead(0) {
			lx.skipDigits()
			return lx.token(Decimal, start), nil
		}
		lx.restore(dot)
	}
	return lx.token(Integer, start), nil
}

func (lx *lexer) skipDigits() {
	for lx.digitAhead(0) {
		lx.readRune()
	}
}

func (lx *lexer) scanString(start runeState) error {
	for {
		r, state, err := lx.readRune()
		if err == io.EOF {
			return lx.incompletef(start, "unterminated string literal")
		}
		if err != nil {
			return err
		}
		switch r {
		case '"':
			return nil
		case '\\':
			esc, _, err := lx.readRune()
			if err == io.EOF {
				return lx.incompletef(start, "unterminated string literal")
			}
			if err != nil {
				return err
			}
			if _, ok := escapes[esc]; !ok {
				return lx.errorf(state, "unknown escape sequence \\%c", esc)
			}
		}
	}
}

// escapes maps the character following a backslash to the decoded rune.
var escapes = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'r':  '\r',
	'n':  '\n',
	't':  '\t',
	'b':  '\b',
}

func (lx *lexer) errorf(state runeState, format string, args ...interface{}) error {
	return &LexError{
		Pos: positionFromState(state),
		Msg: fmt.Sprintf(format, args...),
	}
}

func (lx *lexer) incompletef(state runeState, format string, args ...interface{}) error {
	return &LexError{
		Pos:        positionFromState(state),
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: true,
	}
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierPart(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}

func isSymbolic(r rune) bool {
	switch r {
	case '+', '-', '*', '/', ':', '!', '?', '<', '>', '=':
		return true
	}
	return false
}

func positionFromState(state runeState) Position {
	return Position{
		Offset: state.pos,
		Line:   state.line,
		Column: state.column,
	}
}
