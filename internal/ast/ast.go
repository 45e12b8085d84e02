// Package ast defines the tagged-variant tree the front end produces
// and the semantic pass and IR emitter consume. Go has no
// native sum type, so the
// sum is encoded as a family of marker interfaces (Node/Expr/Stmt/Decl)
// implemented by concrete structs, with an exhaustive type switch at
// every traversal site in internal/sema and internal/irgen.
package ast

import (
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/types"
)

// Node is any AST node with a source span.
type Node interface {
	Span() lexer.Span
}

// Expr is an expression node. Every concrete Expr carries a
// ResolvedType field, populated by internal/sema, that
// internal/irgen trusts without re-deriving.
type Expr interface {
	Node
	exprNode()
	Type() *types.Type
	SetType(*types.Type)
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level (or block-scoped) declaration.
type Decl interface {
	Node
	declNode()
}

// exprBase factors out the span + resolved-type bookkeeping shared by
// every expression node.
type exprBase struct {
	span lexer.Span
	typ  *types.Type
}

func (e *exprBase) Span() lexer.Span    { return e.span }
func (e *exprBase) Type() *types.Type   { return e.typ }
func (e *exprBase) SetType(t *types.Type) { e.typ = t }
func (*exprBase) exprNode()             {}

// Program is the root node: the translation unit's ordered list of
// top-level declarations.
type Program struct {
	Decls []Decl
	span  lexer.Span
}

func NewProgram(decls []Decl, span lexer.Span) *Program { return &Program{Decls: decls, span: span} }
func (p *Program) Span() lexer.Span                     { return p.span }

// FunctionDecl is a function declaration or definition.
type FunctionDecl struct {
	Name       string
	ReturnType *types.Type
	Params     []*Param
	Variadic   bool
	Body       *CompoundStmt // nil for a declaration without a body
	Storage    types.StorageClass
	span       lexer.Span
}

func (f *FunctionDecl) Span() lexer.Span { return f.span }
func (*FunctionDecl) declNode()          {}

func NewFunctionDecl(name string, ret *types.Type, params []*Param, variadic bool, body *CompoundStmt, storage types.StorageClass, span lexer.Span) *FunctionDecl {
	return &FunctionDecl{Name: name, ReturnType: ret, Params: params, Variadic: variadic, Body: body, Storage: storage, span: span}
}

// Param is a function parameter.
type Param struct {
	Name string
	Type *types.Type
	span lexer.Span
}

func NewParam(name string, t *types.Type, span lexer.Span) *Param { return &Param{Name: name, Type: t, span: span} }
func (p *Param) Span() lexer.Span                                 { return p.span }
