package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sergev/plc/compiler"
	"github.com/sergev/plc/parser"
	"github.com/sergev/plc/sexpr"
)

var emitStages = map[string]compiler.Stage{
	"tokens": compiler.StageLex,
	"ast":    compiler.StageParse,
	"typed":  compiler.StageAnalyze,
	"java":   compiler.StageGenerate,
}

func emitStage(mode string) (compiler.Stage, error) {
	stage, ok := emitStages[mode]
	if !ok {
		return 0, fmt.Errorf("unknown --emit value %q (want tokens, ast, typed or java)", mode)
	}
	return stage, nil
}

func emit(w io.Writer, mode string, res *compiler.Result) error {
	var err error
	switch mode {
	case "tokens":
		err = writeTokens(w, res.Tokens)
	case "ast":
		_, err = io.WriteString(w, sexpr.Format(res.Source))
	case "typed":
		_, err = io.WriteString(w, sexpr.FormatTyped(res.Typed))
	case "java":
		_, err = io.WriteString(w, res.Output)
	default:
		_, err = emitStage(mode)
	}
	return err
}

// errWriter keeps the first write error; later writes are skipped.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func writeTokens(w io.Writer, tokens []parser.Token) error {
	ew := &errWriter{w: w}
	table := tablewriter.NewWriter(ew)
	table.SetHeader([]string{"Kind", "Text", "Position"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, tok := range tokens {
		table.Append([]string{
			strings.ToUpper(tok.Kind.String()),
			tok.Text,
			fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Column),
		})
	}
	table.Render()
	return ew.err
}
