package compiler

import (
	"bytes"

	"github.com/sergev/plc/analyzer"
	"github.com/sergev/plc/generator"
	"github.com/sergev/plc/lang"
	"github.com/sergev/plc/parser"
)

// Session compiles a program one input at a time. Each input is analyzed
// after all previously accepted statements, so later inputs can refer to
// variables declared earlier.
type Session struct {
	opts    Options
	history []parser.Stmt
}

// NewSession returns an empty session.
func NewSession(opts Options) *Session {
	return &Session{opts: opts}
}

// Add compiles src in the context of the accepted history and returns the
// Java statements it produced. On error the session is left unchanged.
func (s *Session) Add(src string) (string, error) {
	tree, err := parser.ParseString(src)
	if err != nil {
		return "", err
	}
	stmts := make([]parser.Stmt, 0, len(s.history)+len(tree.Stmts))
	stmts = append(stmts, s.history...)
	stmts = append(stmts, tree.Stmts...)

	checked, err := analyzer.New(lang.NewScope(), s.opts.Library).Analyze(&parser.Source{Stmts: stmts})
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := generator.New(&out, s.opts.Generator).GenerateStatements(checked.Stmts[len(s.history):]); err != nil {
		return "", err
	}
	s.history = stmts
	return out.String(), nil
}

// Len returns the number of accepted statements.
func (s *Session) Len() int {
	return len(s.history)
}

// Program compiles the accepted history as a complete program.
func (s *Session) Program() (string, error) {
	checked, err := analyzer.New(lang.NewScope(), s.opts.Library).Analyze(&parser.Source{Stmts: s.history})
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := generator.New(&out, s.opts.Generator).Generate(checked); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Reset forgets all accepted statements.
func (s *Session) Reset() {
	s.history = nil
}
