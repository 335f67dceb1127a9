package analyzer

import (
	"fmt"

	"github.com/sergev/plc/parser"
)

// Error reports a grammatically valid program that violates a typing or
// declaration rule.
type Error struct {
	Pos parser.Position // zero when the error is not tied to a node
	Msg string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("input:%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func errorf(pos parser.Position, format string, args ...interface{}) *Error {
	return &Error{
		Pos: pos,
		Msg: fmt.Sprintf(format, args...),
	}
}
