package parser

import (
	"fmt"
	"math/big"
	"strings"
)

// Parse builds an untyped Source tree from a token sequence.
// The first grammar violation aborts the parse with a *ParseError.
func Parse(tokens []Token) (*Source, error) {
	p := &parser{tokens: tokens}
	return p.parseSource()
}

type parser struct {
	tokens []Token
	index  int
}

func (p *parser) atEnd() bool {
	return p.index >= len(p.tokens)
}

func (p *parser) curr() Token {
	if p.atEnd() {
		return Token{Pos: p.endPos()}
	}
	return p.tokens[p.index]
}

// peekIs reports whether the token n positions ahead has the given kind and text.
func (p *parser) peekIs(n int, kind Kind, text string) bool {
	i := p.index + n
	return i < len(p.tokens) && p.tokens[i].Is(kind, text)
}

func (p *parser) advance() Token {
	tok := p.curr()
	if !p.atEnd() {
		p.index++
	}
	return tok
}

func (p *parser) isOperator(text string) bool {
	return p.peekIs(0, Operator, text)
}

func (p *parser) isKeyword(text string) bool {
	return p.peekIs(0, Identifier, text)
}

func (p *parser) expectOperator(text string) (Token, error) {
	if !p.isOperator(text) {
		return Token{}, p.errorf("expected %q, found %s", text, p.describe())
	}
	return p.advance(), nil
}

func (p *parser) expectKeyword(text string) (Token, error) {
	if !p.isKeyword(text) {
		return Token{}, p.errorf("expected %s, found %s", text, p.describe())
	}
	return p.advance(), nil
}

// expectName consumes an identifier that is not a reserved word.
func (p *parser) expectName(what string) (Token, error) {
	tok := p.curr()
	if p.atEnd() || tok.Kind != Identifier || isKeyword(tok.Text) {
		return Token{}, p.errorf("expected %s, found %s", what, p.describe())
	}
	return p.advance(), nil
}

func (p *parser) skipSemicolons() {
	for p.isOperator(";") {
		p.advance()
	}
}

func (p *parser) parseSource() (*Source, error) {
	src := &Source{}
	p.skipSemicolons()
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		src.Stmts = append(src.Stmts, stmt)
		p.skipSemicolons()
	}
	return src, nil
}

// parseBlock reads statements until one of the closing keywords.
// The closing keyword itself is left for the caller.
func (p *parser) parseBlock(closers ...string) ([]Stmt, error) {
	var stmts []Stmt
	p.skipSemicolons()
	for {
		if p.atEnd() {
			return nil, p.errorf("expected %s, found end of input", strings.Join(closers, " or "))
		}
		for _, closer := range closers {
			if p.isKeyword(closer) {
				return stmts, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipSemicolons()
	}
}

func (p *parser) parseStatement() (Stmt, error) {
	switch {
	case p.isKeyword(keywordLet):
		return p.parseDeclaration()
	case p.isKeyword(keywordIf):
		return p.parseIf()
	case p.isKeyword(keywordWhile):
		return p.parseWhile()
	case p.curr().Kind == Identifier && !isKeyword(p.curr().Text) && p.peekIs(1, Operator, "="):
		return p.parseAssignment()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ExprStmt{
			Expr: expr,
			Posn: expr.Pos(),
		}, nil
	}
}

func (p *parser) parseDeclaration() (Stmt, error) {
	letTok := p.advance()
	nameTok, err := p.expectName("variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator(":"); err != nil {
		return nil, err
	}
	typeTok, err := p.expectName("type name")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.isOperator("=") {
		p.advance()
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return &DeclStmt{
		Name:     nameTok.Text,
		TypeName: typeTok.Text,
		Init:     init,
		Posn:     letTok.Pos,
	}, nil
}

func (p *parser) parseAssignment() (Stmt, error) {
	nameTok := p.advance()
	p.advance() // =
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{
		Name: nameTok.Text,
		Expr: value,
		Posn: nameTok.Pos,
	}, nil
}

func (p *parser) parseIf() (Stmt, error) {
	ifTok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(keywordThen); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock(keywordElse, keywordEnd)
	if err != nil {
		return nil, err
	}
	var elseBlock []Stmt
	if p.isKeyword(keywordElse) {
		p.advance()
		elseBlock, err = p.parseBlock(keywordEnd)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKeyword(keywordEnd); err != nil {
		return nil, err
	}
	return &IfStmt{
		Cond: cond,
		Then: thenBlock,
		Else: elseBlock,
		Posn: ifTok.Pos,
	}, nil
}

func (p *parser) parseWhile() (Stmt, error) {
	whileTok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(keywordDo); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(keywordEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(keywordEnd); err != nil {
		return nil, err
	}
	return &WhileStmt{
		Cond: cond,
		Body: body,
		Posn: whileTok.Pos,
	}, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseEquality()
}

func (p *parser) parseEquality() (Expr, error) {
	return p.parseBinary(p.parseAdditive, "==", "!=")
}

func (p *parser) parseAdditive() (Expr, error) {
	return p.parseBinary(p.parseMultiplicative, "+", "-")
}

func (p *parser) parseMultiplicative() (Expr, error) {
	return p.parseBinary(p.parsePrimary, "*", "/")
}

// parseBinary parses one left-associative precedence tier whose operands
// come from the next tier up.
func (p *parser) parseBinary(operand func() (Expr, error), ops ...string) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		opTok, ok := p.matchOperator(ops...)
		if !ok {
			if !p.atExpressionEnd() {
				return nil, p.errorf("expected operator or end of expression, found %s", p.describe())
			}
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:    opTok.Text,
			Left:  left,
			Right: right,
			Posn:  opTok.Pos,
		}
	}
}

// atExpressionEnd reports whether the current token may follow a complete
// expression: a terminator, a binary operator of any tier, or the start of
// the next statement.
func (p *parser) atExpressionEnd() bool {
	if p.atEnd() {
		return true
	}
	tok := p.curr()
	switch tok.Kind {
	case Operator:
		switch tok.Text {
		case ";", ")", ",", "==", "!=", "+", "-", "*", "/":
			return true
		}
	case Identifier:
		switch tok.Text {
		case keywordDo, keywordThen, keywordElse, keywordEnd, keywordLet, keywordIf, keywordWhile:
			return true
		}
		return !isKeyword(tok.Text) && p.peekIs(1, Operator, "=")
	}
	return false
}

func (p *parser) matchOperator(ops ...string) (Token, bool) {
	for _, op := range ops {
		if p.isOperator(op) {
			return p.advance(), true
		}
	}
	return Token{}, false
}

func (p *parser) parsePrimary() (Expr, error) {
	if p.atEnd() {
		return nil, p.errorf("expected expression, found end of input")
	}
	tok := p.curr()
	switch tok.Kind {
	case Identifier:
		switch {
		case tok.Text == keywordTrue || tok.Text == keywordFalse:
			p.advance()
			return &LiteralExpr{Value: tok.Text == keywordTrue, Posn: tok.Pos}, nil
		case isKeyword(tok.Text):
			return nil, p.errorf("unexpected %s in expression", tok.Text)
		case p.peekIs(1, Operator, "("):
			return p.parseCall()
		default:
			p.advance()
			return &VariableExpr{Name: tok.Text, Posn: tok.Pos}, nil
		}
	case Integer:
		value, ok := new(big.Int).SetString(tok.Text, 10)
		if !ok {
			return nil, p.errorf("invalid integer literal %q", tok.Text)
		}
		p.advance()
		return &LiteralExpr{Value: value, Posn: tok.Pos}, nil
	case Decimal:
		value, ok := new(big.Rat).SetString(tok.Text)
		if !ok {
			return nil, p.errorf("invalid decimal literal %q", tok.Text)
		}
		p.advance()
		return &LiteralExpr{Value: value, Posn: tok.Pos}, nil
	case String:
		p.advance()
		return &LiteralExpr{Value: unquote(tok.Text), Posn: tok.Pos}, nil
	case Operator:
		if tok.Text == "(" {
			return p.parseGroup()
		}
	}
	return nil, p.errorf("unexpected %s in expression", p.describe())
}

func (p *parser) parseGroup() (Expr, error) {
	openTok := p.advance()
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	return &GroupExpr{
		Inner: inner,
		Posn:  openTok.Pos,
	}, nil
}

func (p *parser) parseCall() (Expr, error) {
	nameTok := p.advance()
	p.advance() // (
	var args []Expr
	if !p.isOperator(")") {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.isOperator(",") {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	return &FunctionExpr{
		Name: nameTok.Text,
		Args: args,
		Posn: nameTok.Pos,
	}, nil
}

// unquote strips the surrounding quotes of a lexed string token and
// decodes its escape sequences.
func unquote(text string) string {
	body := text[1 : len(text)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var builder strings.Builder
	escaped := false
	for _, r := range body {
		if escaped {
			builder.WriteRune(escapes[r])
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func (p *parser) describe() string {
	if p.atEnd() {
		return "end of input"
	}
	tok := p.curr()
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Pos:        p.curr().Pos,
		Index:      p.index,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: p.atEnd(),
	}
}

func (p *parser) endPos() Position {
	if len(p.tokens) == 0 {
		return Position{Line: 1, Column: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	pos := last.Pos
	for _, r := range last.Text {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	pos.Offset += len(last.Text)
	return pos
}
