// Package compiler runs the full pipeline: lex, parse, analyze and
// generate Java.
package compiler

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/plc/analyzer"
	"github.com/sergev/plc/generator"
	"github.com/sergev/plc/lang"
	"github.com/sergev/plc/parser"
	"github.com/sergev/plc/typed"
)

// Stage names the last pipeline stage a compilation runs.
type Stage int

const (
	StageGenerate Stage = iota // run the whole pipeline
	StageLex
	StageParse
	StageAnalyze
)

// Options configure a compilation.
type Options struct {
	Generator generator.Options
	Library   *lang.Library // nil means the standard library
	StopAfter Stage
}

// DefaultOptions returns options with the default generator settings and
// the standard library.
func DefaultOptions() Options {
	return Options{Generator: generator.DefaultOptions()}
}

// Result holds the output of every stage of a successful compilation.
// Fields for stages after Options.StopAfter are left empty.
type Result struct {
	Tokens []parser.Token
	Source *parser.Source
	Typed  *typed.Source
	Output string
}

// Compile translates one compilation unit. The first error from any stage
// is returned and no output is produced.
func Compile(src string, opts Options) (*Result, error) {
	res := &Result{}
	var err error
	if res.Tokens, err = parser.Lex(src); err != nil {
		return nil, err
	}
	if opts.StopAfter == StageLex {
		return res, nil
	}
	if res.Source, err = parser.Parse(res.Tokens); err != nil {
		return nil, err
	}
	if opts.StopAfter == StageParse {
		return res, nil
	}
	if res.Typed, err = analyzer.New(lang.NewScope(), opts.Library).Analyze(res.Source); err != nil {
		return nil, err
	}
	if opts.StopAfter == StageAnalyze {
		return res, nil
	}
	var out bytes.Buffer
	if err := generator.New(&out, opts.Generator).Generate(res.Typed); err != nil {
		return nil, err
	}
	res.Output = out.String()
	return res, nil
}

// CompileReader consumes all of r and compiles it.
func CompileReader(r io.Reader, opts Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Compile(string(data), opts)
}

// CompileFile loads and compiles a source file, allowing a #! first line.
func CompileFile(path string, opts Options) (*Result, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return nil, err
	}
	return Compile(string(data), opts)
}

// readFileSkippingShebang blanks out a leading #! line. The newline is
// kept so reported line numbers match the file.
func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}
