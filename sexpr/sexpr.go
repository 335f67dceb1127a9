// Package sexpr renders syntax trees as S-expressions, one top-level
// statement per line.
package sexpr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/sergev/plc/lang"
	"github.com/sergev/plc/parser"
	"github.com/sergev/plc/typed"
)

// Value is either an atom or a list of values.
type Value struct {
	Atom   string
	Items  []Value
	isList bool
}

// Atom returns an atom value.
func Atom(text string) Value {
	return Value{Atom: text}
}

// List returns a list of the given values.
func List(items ...Value) Value {
	return Value{Items: items, isList: true}
}

// IsList reports whether v is a list.
func (v Value) IsList() bool {
	return v.isList
}

func (v Value) String() string {
	if !v.isList {
		return v.Atom
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range v.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Format renders an untyped tree.
func Format(src *parser.Source) string {
	return lines(len(src.Stmts), func(i int) Value { return FromStmt(src.Stmts[i]) })
}

// FormatTyped renders a typed tree with every expression wrapped in a
// (the TYPE expr) form.
func FormatTyped(src *typed.Source) string {
	return lines(len(src.Stmts), func(i int) Value { return FromTypedStmt(src.Stmts[i]) })
}

func lines(n int, stmt func(int) Value) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(stmt(i).String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FromStmt converts an untyped statement.
func FromStmt(stmt parser.Stmt) Value {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		return List(Atom("expr"), FromExpr(s.Expr))
	case *parser.DeclStmt:
		if s.Init == nil {
			return List(Atom("let"), Atom(s.Name), Atom(s.TypeName))
		}
		return List(Atom("let"), Atom(s.Name), Atom(s.TypeName), FromExpr(s.Init))
	case *parser.AssignStmt:
		return List(Atom("set"), Atom(s.Name), FromExpr(s.Expr))
	case *parser.IfStmt:
		return List(Atom("if"), FromExpr(s.Cond), block("then", s.Then, FromStmt), block("else", s.Else, FromStmt))
	case *parser.WhileStmt:
		return List(Atom("while"), FromExpr(s.Cond), block("do", s.Body, FromStmt))
	default:
		panic(fmt.Sprintf("sexpr: unexpected statement %T", stmt))
	}
}

// FromExpr converts an untyped expression.
func FromExpr(expr parser.Expr) Value {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return Atom(literal(e.Value))
	case *parser.GroupExpr:
		return List(Atom("group"), FromExpr(e.Inner))
	case *parser.BinaryExpr:
		return List(Atom(e.Op), FromExpr(e.Left), FromExpr(e.Right))
	case *parser.VariableExpr:
		return Atom(e.Name)
	case *parser.FunctionExpr:
		items := []Value{Atom("call"), Atom(e.Name)}
		for _, arg := range e.Args {
			items = append(items, FromExpr(arg))
		}
		return List(items...)
	default:
		panic(fmt.Sprintf("sexpr: unexpected expression %T", expr))
	}
}

// FromTypedStmt converts a typed statement.
func FromTypedStmt(stmt typed.Stmt) Value {
	switch s := stmt.(type) {
	case *typed.ExprStmt:
		return List(Atom("expr"), FromTypedExpr(s.Expr))
	case *typed.DeclStmt:
		if s.Init == nil {
			return List(Atom("let"), Atom(s.Name), Atom(s.Typ.Name()))
		}
		return List(Atom("let"), Atom(s.Name), Atom(s.Typ.Name()), FromTypedExpr(s.Init))
	case *typed.AssignStmt:
		return List(Atom("set"), Atom(s.Name), FromTypedExpr(s.Expr))
	case *typed.IfStmt:
		return List(Atom("if"), FromTypedExpr(s.Cond), block("then", s.Then, FromTypedStmt), block("else", s.Else, FromTypedStmt))
	case *typed.WhileStmt:
		return List(Atom("while"), FromTypedExpr(s.Cond), block("do", s.Body, FromTypedStmt))
	default:
		panic(fmt.Sprintf("sexpr: unexpected statement %T", stmt))
	}
}

// FromTypedExpr converts a typed expression.
func FromTypedExpr(expr typed.Expr) Value {
	var v Value
	switch e := expr.(type) {
	case *typed.LiteralExpr:
		v = Atom(literal(e.Value))
	case *typed.GroupExpr:
		v = List(Atom("group"), FromTypedExpr(e.Inner))
	case *typed.BinaryExpr:
		v = List(Atom(e.Op), FromTypedExpr(e.Left), FromTypedExpr(e.Right))
	case *typed.VariableExpr:
		v = Atom(e.Name)
	case *typed.FunctionExpr:
		items := []Value{Atom("call"), Atom(e.Func.Name)}
		for _, arg := range e.Args {
			items = append(items, FromTypedExpr(arg))
		}
		v = List(items...)
	default:
		panic(fmt.Sprintf("sexpr: unexpected expression %T", expr))
	}
	return the(expr.Type(), v)
}

func the(t lang.Type, v Value) Value {
	return List(Atom("the"), Atom(t.Name()), v)
}

func block[S any](head string, stmts []S, conv func(S) Value) Value {
	items := []Value{Atom(head)}
	for _, stmt := range stmts {
		items = append(items, conv(stmt))
	}
	return List(items...)
}

func literal(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case *big.Int:
		return v.String()
	case *big.Rat:
		if v.IsInt() {
			return v.Num().String() + ".0"
		}
		f, _ := v.Float64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eInN") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}
