package parser

// Node represents any AST node with a source position.
type Node interface {
	Pos() Position
}

// Source is the root of a parsed compilation unit.
type Source struct {
	Stmts []Stmt
}

// Stmt represents a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression.
type Expr interface {
	Node
	exprNode()
}

// ExprStmt evaluates an expression and discards its value.
type ExprStmt struct {
	Expr Expr
	Posn Position
}

func (s *ExprStmt) Pos() Position { return s.Posn }
func (*ExprStmt) stmtNode()       {}

// DeclStmt introduces a variable of a named type, optionally initialised.
type DeclStmt struct {
	Name     string
	TypeName string
	Init     Expr // may be nil
	Posn     Position
}

func (s *DeclStmt) Pos() Position { return s.Posn }
func (*DeclStmt) stmtNode()       {}

// AssignStmt stores a new value into an existing variable.
type AssignStmt struct {
	Name string
	Expr Expr
	Posn Position
}

func (s *AssignStmt) Pos() Position { return s.Posn }
func (*AssignStmt) stmtNode()       {}

// IfStmt conditionally executes one of two statement blocks.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // may be empty
	Posn Position
}

func (s *IfStmt) Pos() Position { return s.Posn }
func (*IfStmt) stmtNode()       {}

// WhileStmt repeats its body while the condition holds.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
	Posn Position
}

func (s *WhileStmt) Pos() Position { return s.Posn }
func (*WhileStmt) stmtNode()       {}

// LiteralExpr holds a constant. Value is one of bool, *big.Int,
// *big.Rat or string; numeric range checks are left to the analyzer.
type LiteralExpr struct {
	Value interface{}
	Posn  Position
}

func (e *LiteralExpr) Pos() Position { return e.Posn }
func (*LiteralExpr) exprNode()       {}

// GroupExpr is a parenthesised expression.
type GroupExpr struct {
	Inner Expr
	Posn  Position
}

func (e *GroupExpr) Pos() Position { return e.Posn }
func (*GroupExpr) exprNode()       {}

// BinaryExpr represents infix operator application.
type BinaryExpr struct {
	Op          string
	Left, Right Expr
	Posn        Position
}

func (e *BinaryExpr) Pos() Position { return e.Posn }
func (*BinaryExpr) exprNode()       {}

// VariableExpr refers to a declared variable.
type VariableExpr struct {
	Name string
	Posn Position
}

func (e *VariableExpr) Pos() Position { return e.Posn }
func (*VariableExpr) exprNode()       {}

// FunctionExpr calls a named function.
type FunctionExpr struct {
	Name string
	Args []Expr
	Posn Position
}

func (e *FunctionExpr) Pos() Position { return e.Posn }
func (*FunctionExpr) exprNode()       {}
