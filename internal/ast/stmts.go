package ast

import "github.com/c2llvm/c2llvm/internal/lexer"

// CompoundStmt is a `{ ... }` block. It exclusively owns its
// statement list.
type CompoundStmt struct {
	Statements []Stmt
	span       lexer.Span
}

func NewCompoundStmt(stmts []Stmt, span lexer.Span) *CompoundStmt {
	return &CompoundStmt{Statements: stmts, span: span}
}
func (s *CompoundStmt) Span() lexer.Span { return s.span }
func (*CompoundStmt) stmtNode()          {}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	X    Expr
	span lexer.Span
}

func NewExprStmt(x Expr, span lexer.Span) *ExprStmt { return &ExprStmt{X: x, span: span} }
func (s *ExprStmt) Span() lexer.Span                { return s.span }
func (*ExprStmt) stmtNode()                         {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct{ span lexer.Span }

func NewEmptyStmt(span lexer.Span) *EmptyStmt { return &EmptyStmt{span: span} }
func (s *EmptyStmt) Span() lexer.Span         { return s.span }
func (*EmptyStmt) stmtNode()                  {}

// IfStmt is `if (Cond) Then [else Else]`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	span lexer.Span
}

func NewIfStmt(cond Expr, then, els Stmt, span lexer.Span) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els, span: span}
}
func (s *IfStmt) Span() lexer.Span { return s.span }
func (*IfStmt) stmtNode()          {}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	span lexer.Span
}

func NewWhileStmt(cond Expr, body Stmt, span lexer.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, span: span}
}
func (s *WhileStmt) Span() lexer.Span { return s.span }
func (*WhileStmt) stmtNode()          {}

// ForStmt is `for (Init; Cond; Update) Body`. Init, Cond, and Update
// may each be nil.
type ForStmt struct {
	Init   Stmt // a VarDecl/ArrayDecl, an ExprStmt, or a CompoundStmt of several declarators
	Cond   Expr
	Update Expr
	Body   Stmt
	span   lexer.Span
}

func NewForStmt(init Stmt, cond, update Expr, body Stmt, span lexer.Span) *ForStmt {
	return &ForStmt{Init: init, Cond: cond, Update: update, Body: body, span: span}
}
func (s *ForStmt) Span() lexer.Span { return s.span }
func (*ForStmt) stmtNode()          {}

// DoWhileStmt is `do Body while (Cond);`.
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
	span lexer.Span
}

func NewDoWhileStmt(body Stmt, cond Expr, span lexer.Span) *DoWhileStmt {
	return &DoWhileStmt{Body: body, Cond: cond, span: span}
}
func (s *DoWhileStmt) Span() lexer.Span { return s.span }
func (*DoWhileStmt) stmtNode()          {}

// CaseLabel is one `case Value:` or the `default:` label inside a
// switch body, recorded in declaration order.
type CaseLabel struct {
	Value     Expr // nil for default
	IsDefault bool
}

// SwitchStmt is `switch (X) Body`. The case/default labels
// themselves appear as CaseStmt/DefaultStmt nodes inside Body; Cases
// records them in declaration order for the emitter's simplified
// lowering.
type SwitchStmt struct {
	X     Expr
	Body  Stmt
	Cases []CaseLabel
	span  lexer.Span
}

func NewSwitchStmt(x Expr, body Stmt, cases []CaseLabel, span lexer.Span) *SwitchStmt {
	return &SwitchStmt{X: x, Body: body, Cases: cases, span: span}
}
func (s *SwitchStmt) Span() lexer.Span { return s.span }
func (*SwitchStmt) stmtNode()          {}

// CaseStmt is `case Value: Stmt`.
type CaseStmt struct {
	Value Expr
	Stmt  Stmt
	span  lexer.Span
}

func NewCaseStmt(value Expr, stmt Stmt, span lexer.Span) *CaseStmt {
	return &CaseStmt{Value: value, Stmt: stmt, span: span}
}
func (s *CaseStmt) Span() lexer.Span { return s.span }
func (*CaseStmt) stmtNode()          {}

// DefaultStmt is `default: Stmt`.
type DefaultStmt struct {
	Stmt Stmt
	span lexer.Span
}

func NewDefaultStmt(stmt Stmt, span lexer.Span) *DefaultStmt {
	return &DefaultStmt{Stmt: stmt, span: span}
}
func (s *DefaultStmt) Span() lexer.Span { return s.span }
func (*DefaultStmt) stmtNode()          {}

// BreakStmt is `break;`.
type BreakStmt struct{ span lexer.Span }

func NewBreakStmt(span lexer.Span) *BreakStmt { return &BreakStmt{span: span} }
func (s *BreakStmt) Span() lexer.Span         { return s.span }
func (*BreakStmt) stmtNode()                  {}

// ContinueStmt is `continue;`.
type ContinueStmt struct{ span lexer.Span }

func NewContinueStmt(span lexer.Span) *ContinueStmt { return &ContinueStmt{span: span} }
func (s *ContinueStmt) Span() lexer.Span            { return s.span }
func (*ContinueStmt) stmtNode()                     {}

// GotoStmt is `goto Label;`.
type GotoStmt struct {
	Label string
	span  lexer.Span
}

func NewGotoStmt(label string, span lexer.Span) *GotoStmt { return &GotoStmt{Label: label, span: span} }
func (s *GotoStmt) Span() lexer.Span                      { return s.span }
func (*GotoStmt) stmtNode()                               {}

// LabelStmt is `Label: Stmt`.
type LabelStmt struct {
	Label string
	Stmt  Stmt
	span  lexer.Span
}

func NewLabelStmt(label string, stmt Stmt, span lexer.Span) *LabelStmt {
	return &LabelStmt{Label: label, Stmt: stmt, span: span}
}
func (s *LabelStmt) Span() lexer.Span { return s.span }
func (*LabelStmt) stmtNode()          {}

// ReturnStmt is `return [Value];`.
type ReturnStmt struct {
	Value Expr // nil for a bare `return;`
	span  lexer.Span
}

func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}
func (s *ReturnStmt) Span() lexer.Span { return s.span }
func (*ReturnStmt) stmtNode()          {}
