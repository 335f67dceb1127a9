// Package generator emits Java source for a typed syntax tree.
package generator

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sergev/plc/typed"
)

// Options control the shape of the generated program.
type Options struct {
	ClassName string // name of the wrapper class
	Indent    int    // spaces per indentation level
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		ClassName: "Main",
		Indent:    4,
	}
}

// Generator writes Java source to an io.Writer. The first write error is
// kept and reported by Generate; later writes are skipped.
type Generator struct {
	w      io.Writer
	opts   Options
	indent string
	depth  int
	err    error
}

// New returns a generator writing to w.
func New(w io.Writer, opts Options) *Generator {
	if opts.ClassName == "" {
		opts.ClassName = DefaultOptions().ClassName
	}
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	return &Generator{
		w:      w,
		opts:   opts,
		indent: strings.Repeat(" ", opts.Indent),
	}
}

// String renders a complete program.
func String(src *typed.Source, opts Options) string {
	var buf bytes.Buffer
	New(&buf, opts).Generate(src)
	return buf.String()
}

// Generate writes src wrapped in a class with a main method.
func (g *Generator) Generate(src *typed.Source) error {
	g.line("public class %s {", g.opts.ClassName)
	g.blank()
	g.depth++
	g.line("public static void main(String[] args) {")
	g.depth++
	g.stmts(src.Stmts)
	g.depth--
	g.line("}")
	g.depth--
	g.blank()
	g.line("}")
	return g.err
}

// GenerateStatements writes stmts at the top indentation level without
// the surrounding class.
func (g *Generator) GenerateStatements(stmts []typed.Stmt) error {
	g.stmts(stmts)
	return g.err
}

func (g *Generator) line(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, strings.Repeat(g.indent, g.depth)+format+"\n", args...)
}

func (g *Generator) blank() {
	if g.err != nil {
		return
	}
	_, g.err = io.WriteString(g.w, "\n")
}

func (g *Generator) stmts(stmts []typed.Stmt) {
	for _, stmt := range stmts {
		g.stmt(stmt)
	}
}

func (g *Generator) block(stmts []typed.Stmt) {
	g.depth++
	g.stmts(stmts)
	g.depth--
}

func (g *Generator) stmt(stmt typed.Stmt) {
	switch s := stmt.(type) {
	case *typed.ExprStmt:
		g.line("%s;", Expr(s.Expr))
	case *typed.DeclStmt:
		if s.Init == nil {
			g.line("%s %s;", s.Typ.Java(), s.Name)
		} else {
			g.line("%s %s = %s;", s.Typ.Java(), s.Name, Expr(s.Init))
		}
	case *typed.AssignStmt:
		g.line("%s = %s;", s.Name, Expr(s.Expr))
	case *typed.IfStmt:
		g.line("if (%s) {", Expr(s.Cond))
		g.block(s.Then)
		if len(s.Else) > 0 {
			g.line("} else {")
			g.block(s.Else)
		}
		g.line("}")
	case *typed.WhileStmt:
		g.line("while (%s) {", Expr(s.Cond))
		g.block(s.Body)
		g.line("}")
	default:
		panic(fmt.Sprintf("generator: unexpected statement %T", stmt))
	}
}

// Expr renders a typed expression as Java source.
func Expr(expr typed.Expr) string {
	switch e := expr.(type) {
	case *typed.LiteralExpr:
		return literal(e.Value)
	case *typed.GroupExpr:
		return "(" + Expr(e.Inner) + ")"
	case *typed.BinaryExpr:
		return Expr(e.Left) + " " + e.Op + " " + Expr(e.Right)
	case *typed.VariableExpr:
		return e.Name
	case *typed.FunctionExpr:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Expr(arg)
		}
		return e.Func.Java + "(" + strings.Join(args, ", ") + ")"
	default:
		panic(fmt.Sprintf("generator: unexpected expression %T", expr))
	}
}

func literal(value interface{}) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	case string:
		return `"` + javaEscaper.Replace(v) + `"`
	default:
		panic(fmt.Sprintf("generator: unexpected literal %T", value))
	}
}

var javaEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
)
