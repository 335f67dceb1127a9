// Package analyzer checks an untyped syntax tree against the type system
// and rewrites it into a typed tree.
package analyzer

import (
	"math"
	"math/big"

	"github.com/sergev/plc/lang"
	"github.com/sergev/plc/parser"
	"github.com/sergev/plc/typed"
)

// smallestNormal is the least positive normal float64.
const smallestNormal = 0x1p-1022

// Analyzer owns one scope for the duration of a compilation. The untyped
// input tree is never modified.
type Analyzer struct {
	scope *lang.Scope
	lib   *lang.Library
}

// New returns an analyzer defining variables in scope and resolving calls
// against lib. A nil scope starts from an empty root scope; a nil lib
// means the standard library.
func New(scope *lang.Scope, lib *lang.Library) *Analyzer {
	if scope == nil {
		scope = lang.NewScope()
	}
	if lib == nil {
		lib = lang.StandardLibrary()
	}
	return &Analyzer{scope: scope, lib: lib}
}

// Analyze checks src in the given scope against the standard library.
func Analyze(src *parser.Source, scope *lang.Scope) (*typed.Source, error) {
	return New(scope, nil).Analyze(src)
}

// Scope returns the scope the analyzer defines variables in.
func (a *Analyzer) Scope() *lang.Scope {
	return a.scope
}

// Analyze rewrites src into a typed tree, stopping at the first error.
func (a *Analyzer) Analyze(src *parser.Source) (*typed.Source, error) {
	stmts, err := a.analyzeStmts(src.Stmts)
	if err != nil {
		return nil, err
	}
	return &typed.Source{Stmts: stmts}, nil
}

// CheckAssignable reports whether a value of type source may be stored
// into storage of type target.
func CheckAssignable(source, target lang.Type) error {
	if lang.Assignable(source, target) {
		return nil
	}
	return &Error{Msg: "cannot assign " + source.Name() + " to " + target.Name()}
}

func (a *Analyzer) analyzeStmts(stmts []parser.Stmt) ([]typed.Stmt, error) {
	var out []typed.Stmt
	for _, stmt := range stmts {
		checked, err := a.analyzeStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, checked)
	}
	return out, nil
}

func (a *Analyzer) analyzeStmt(stmt parser.Stmt) (typed.Stmt, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		expr, err := a.analyzeExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		return &typed.ExprStmt{Expr: expr, Posn: s.Posn}, nil
	case *parser.DeclStmt:
		return a.analyzeDecl(s)
	case *parser.AssignStmt:
		return a.analyzeAssign(s)
	case *parser.IfStmt:
		cond, err := a.analyzeCondition(s.Cond)
		if err != nil {
			return nil, err
		}
		thenBlock, err := a.analyzeStmts(s.Then)
		if err != nil {
			return nil, err
		}
		elseBlock, err := a.analyzeStmts(s.Else)
		if err != nil {
			return nil, err
		}
		return &typed.IfStmt{Cond: cond, Then: thenBlock, Else: elseBlock, Posn: s.Posn}, nil
	case *parser.WhileStmt:
		cond, err := a.analyzeCondition(s.Cond)
		if err != nil {
			return nil, err
		}
		body, err := a.analyzeStmts(s.Body)
		if err != nil {
			return nil, err
		}
		return &typed.WhileStmt{Cond: cond, Body: body, Posn: s.Posn}, nil
	default:
		return nil, errorf(stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func (a *Analyzer) analyzeDecl(s *parser.DeclStmt) (typed.Stmt, error) {
	typ, ok := lang.LookupType(s.TypeName)
	if !ok {
		return nil, errorf(s.Posn, "unknown type %s", s.TypeName)
	}
	if typ == lang.Void {
		return nil, errorf(s.Posn, "variable %s cannot have type VOID", s.Name)
	}
	if lang.IsJavaReserved(s.Name) {
		return nil, errorf(s.Posn, "variable name %s is reserved in Java", s.Name)
	}
	var init typed.Expr
	if s.Init != nil {
		expr, err := a.analyzeExpr(s.Init)
		if err != nil {
			return nil, err
		}
		if err := CheckAssignable(expr.Type(), typ); err != nil {
			return nil, errorf(s.Posn, "variable %s: %v", s.Name, err)
		}
		init = expr
	}
	if err := a.scope.Define(s.Name, typ); err != nil {
		return nil, errorf(s.Posn, "%v", err)
	}
	return &typed.DeclStmt{Name: s.Name, Typ: typ, Init: init, Posn: s.Posn}, nil
}

func (a *Analyzer) analyzeAssign(s *parser.AssignStmt) (typed.Stmt, error) {
	typ, err := a.scope.Lookup(s.Name)
	if err != nil {
		return nil, errorf(s.Posn, "%v", err)
	}
	expr, err := a.analyzeExpr(s.Expr)
	if err != nil {
		return nil, err
	}
	if err := CheckAssignable(expr.Type(), typ); err != nil {
		return nil, errorf(s.Posn, "variable %s: %v", s.Name, err)
	}
	return &typed.AssignStmt{Name: s.Name, Expr: expr, Posn: s.Posn}, nil
}

func (a *Analyzer) analyzeCondition(cond parser.Expr) (typed.Expr, error) {
	expr, err := a.analyzeExpr(cond)
	if err != nil {
		return nil, err
	}
	if expr.Type() != lang.Boolean {
		return nil, errorf(cond.Pos(), "condition must be BOOLEAN, found %s", expr.Type())
	}
	return expr, nil
}

func (a *Analyzer) analyzeExpr(expr parser.Expr) (typed.Expr, error) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return analyzeLiteral(e)
	case *parser.GroupExpr:
		inner, err := a.analyzeExpr(e.Inner)
		if err != nil {
			return nil, err
		}
		return &typed.GroupExpr{Inner: inner, Typ: inner.Type(), Posn: e.Posn}, nil
	case *parser.BinaryExpr:
		return a.analyzeBinary(e)
	case *parser.VariableExpr:
		typ, err := a.scope.Lookup(e.Name)
		if err != nil {
			return nil, errorf(e.Posn, "%v", err)
		}
		return &typed.VariableExpr{Name: e.Name, Typ: typ, Posn: e.Posn}, nil
	case *parser.FunctionExpr:
		return a.analyzeCall(e)
	default:
		return nil, errorf(expr.Pos(), "unsupported expression %T", expr)
	}
}

func analyzeLiteral(e *parser.LiteralExpr) (typed.Expr, error) {
	literal := func(value interface{}, typ lang.Type) (typed.Expr, error) {
		return &typed.LiteralExpr{Value: value, Typ: typ, Posn: e.Posn}, nil
	}
	switch v := e.Value.(type) {
	case bool:
		return literal(v, lang.Boolean)
	case string:
		return literal(v, lang.String)
	case *big.Int:
		if !v.IsInt64() || v.Int64() < math.MinInt32 || v.Int64() > math.MaxInt32 {
			return nil, errorf(e.Posn, "integer literal %s overflows INTEGER", v)
		}
		return literal(int32(v.Int64()), lang.Integer)
	case *big.Rat:
		f, _ := v.Float64()
		if math.IsInf(f, 0) {
			return nil, errorf(e.Posn, "decimal literal overflows DECIMAL")
		}
		if v.Sign() != 0 && math.Abs(f) < smallestNormal {
			return nil, errorf(e.Posn, "decimal literal underflows DECIMAL")
		}
		return literal(f, lang.Decimal)
	default:
		return nil, errorf(e.Posn, "unsupported literal value %T", e.Value)
	}
}

func (a *Analyzer) analyzeBinary(e *parser.BinaryExpr) (typed.Expr, error) {
	left, err := a.analyzeExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.analyzeExpr(e.Right)
	if err != nil {
		return nil, err
	}
	typ, err := binaryType(e, left.Type(), right.Type())
	if err != nil {
		return nil, err
	}
	return &typed.BinaryExpr{Op: e.Op, Left: left, Right: right, Typ: typ, Posn: e.Posn}, nil
}

// binaryType computes the result type of an operator applied to operands
// of the given types.
func binaryType(e *parser.BinaryExpr, left, right lang.Type) (lang.Type, error) {
	switch e.Op {
	case "==", "!=":
		return lang.Boolean, nil
	case "+", "-", "*", "/":
	default:
		return lang.Invalid, errorf(e.Posn, "unknown operator %s", e.Op)
	}
	for _, operand := range []lang.Type{left, right} {
		if operand == lang.Boolean || operand == lang.Void {
			return lang.Invalid, errorf(e.Posn, "operator %s cannot be applied to %s", e.Op, operand)
		}
	}
	if left == lang.String || right == lang.String {
		if e.Op != "+" {
			return lang.Invalid, errorf(e.Posn, "operator %s cannot be applied to STRING", e.Op)
		}
		return lang.String, nil
	}
	for _, operand := range []lang.Type{left, right} {
		if !operand.IsNumeric() {
			return lang.Invalid, errorf(e.Posn, "operator %s cannot be applied to %s", e.Op, operand)
		}
	}
	if left == lang.Decimal || right == lang.Decimal {
		return lang.Decimal, nil
	}
	return lang.Integer, nil
}

func (a *Analyzer) analyzeCall(e *parser.FunctionExpr) (typed.Expr, error) {
	fn, ok := a.lib.Lookup(e.Name)
	if !ok {
		return nil, errorf(e.Posn, "function %s is not defined", e.Name)
	}
	if len(e.Args) != fn.Arity() {
		return nil, errorf(e.Posn, "function %s expects %d argument(s), found %d", e.Name, fn.Arity(), len(e.Args))
	}
	var args []typed.Expr
	for i, arg := range e.Args {
		checked, err := a.analyzeExpr(arg)
		if err != nil {
			return nil, err
		}
		if err := CheckAssignable(checked.Type(), fn.Params[i]); err != nil {
			return nil, errorf(arg.Pos(), "argument %d of %s: %v", i+1, e.Name, err)
		}
		args = append(args, checked)
	}
	return &typed.FunctionExpr{Func: fn, Args: args, Posn: e.Posn}, nil
}
