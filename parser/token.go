package parser

// Kind enumerates lexical categories recognised by the lexer.
type Kind int

const (
	Identifier Kind = iota
	Integer
	Decimal
	String
	Operator
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case String:
		return "string"
	case Operator:
		return "operator"
	default:
		return "unknown"
	}
}

// Position tracks a source location.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

// Token is a single lexical unit produced by the lexer. Text is exactly
// the consumed substring of the source.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// Offset returns the byte offset of the token's first character.
func (t Token) Offset() int {
	return t.Pos.Offset
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Reserved words. Keywords are lexed as identifiers and recognised by the parser.
const (
	keywordLet   = "LET"
	keywordIf    = "IF"
	keywordThen  = "THEN"
	keywordElse  = "ELSE"
	keywordEnd   = "END"
	keywordWhile = "WHILE"
	keywordDo    = "DO"
	keywordTrue  = "TRUE"
	keywordFalse = "FALSE"
)

func isKeyword(text string) bool {
	switch text {
	case keywordLet, keywordIf, keywordThen, keywordElse, keywordEnd,
		keywordWhile, keywordDo, keywordTrue, keywordFalse:
		return true
	}
	return false
}
