// Package typed defines the type-annotated syntax tree produced by the
// analyzer. Every expression carries its resolved semantic type.
package typed

import (
	"github.com/sergev/plc/lang"
	"github.com/sergev/plc/parser"
)

// Source is the root of an analyzed compilation unit.
type Source struct {
	Stmts []Stmt
}

// Stmt represents an analyzed statement.
type Stmt interface {
	Pos() parser.Position
	stmtNode()
}

// Expr represents an analyzed expression.
type Expr interface {
	Pos() parser.Position
	Type() lang.Type
	exprNode()
}

// ExprStmt evaluates an expression and discards its value.
type ExprStmt struct {
	Expr Expr
	Posn parser.Position
}

func (s *ExprStmt) Pos() parser.Position { return s.Posn }
func (*ExprStmt) stmtNode()              {}

// DeclStmt declares a variable of a resolved type.
type DeclStmt struct {
	Name string
	Typ  lang.Type
	Init Expr // may be nil
	Posn parser.Position
}

func (s *DeclStmt) Pos() parser.Position { return s.Posn }
func (*DeclStmt) stmtNode()              {}

// AssignStmt stores a value into a declared variable.
type AssignStmt struct {
	Name string
	Expr Expr
	Posn parser.Position
}

func (s *AssignStmt) Pos() parser.Position { return s.Posn }
func (*AssignStmt) stmtNode()              {}

// IfStmt has a BOOLEAN condition.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Posn parser.Position
}

func (s *IfStmt) Pos() parser.Position { return s.Posn }
func (*IfStmt) stmtNode()              {}

// WhileStmt has a BOOLEAN condition.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
	Posn parser.Position
}

func (s *WhileStmt) Pos() parser.Position { return s.Posn }
func (*WhileStmt) stmtNode()              {}

// LiteralExpr holds a range-checked constant: bool, int32, float64 or string.
type LiteralExpr struct {
	Value interface{}
	Typ   lang.Type
	Posn  parser.Position
}

func (e *LiteralExpr) Pos() parser.Position { return e.Posn }
func (e *LiteralExpr) Type() lang.Type      { return e.Typ }
func (*LiteralExpr) exprNode()              {}

// GroupExpr is a parenthesised expression.
type GroupExpr struct {
	Inner Expr
	Typ   lang.Type
	Posn  parser.Position
}

func (e *GroupExpr) Pos() parser.Position { return e.Posn }
func (e *GroupExpr) Type() lang.Type      { return e.Typ }
func (*GroupExpr) exprNode()              {}

// BinaryExpr represents infix operator application.
type BinaryExpr struct {
	Op          string
	Left, Right Expr
	Typ         lang.Type
	Posn        parser.Position
}

func (e *BinaryExpr) Pos() parser.Position { return e.Posn }
func (e *BinaryExpr) Type() lang.Type      { return e.Typ }
func (*BinaryExpr) exprNode()              {}

// VariableExpr refers to a declared variable.
type VariableExpr struct {
	Name string
	Typ  lang.Type
	Posn parser.Position
}

func (e *VariableExpr) Pos() parser.Position { return e.Posn }
func (e *VariableExpr) Type() lang.Type      { return e.Typ }
func (*VariableExpr) exprNode()              {}

// FunctionExpr calls a resolved library function.
type FunctionExpr struct {
	Func lang.Function
	Args []Expr
	Posn parser.Position
}

func (e *FunctionExpr) Pos() parser.Position { return e.Posn }
func (e *FunctionExpr) Type() lang.Type      { return e.Func.Result }
func (*FunctionExpr) exprNode()              {}
