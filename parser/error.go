package parser

import (
	"errors"
	"fmt"
)

// LexError reports a malformed character sequence.
type LexError struct {
	Pos        Position
	Msg        string
	Incomplete bool // input ended before the token was finished
}

func (e *LexError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("input:%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// ParseError reports a token sequence that does not match the grammar.
type ParseError struct {
	Pos        Position
	Index      int // index of the offending token; len(tokens) at end of input
	Msg        string
	Incomplete bool // input ended while a rule still required tokens
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("input:%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// IsIncomplete reports whether the supplied error was caused by input
// ending too early, so that more input could complete it.
func IsIncomplete(err error) bool {
	var lerr *LexError
	if errors.As(err, &lerr) {
		return lerr.Incomplete
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}
