package ast

import (
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/types"
)

// VarDecl is a scalar/pointer/struct-by-value variable declaration,
// optionally with an initializer.
type VarDecl struct {
	Name    string
	Type    *types.Type
	Init    Expr
	Storage types.StorageClass
	span    lexer.Span
}

func NewVarDecl(name string, t *types.Type, init Expr, storage types.StorageClass, span lexer.Span) *VarDecl {
	return &VarDecl{Name: name, Type: t, Init: init, Storage: storage, span: span}
}
func (d *VarDecl) Span() lexer.Span { return d.span }
func (*VarDecl) declNode()          {}
func (*VarDecl) stmtNode()          {}

// ArrayDecl is an array declaration, fixed-size or VLA.
type ArrayDecl struct {
	Name    string
	Elem    *types.Type
	Size    Expr // nil for an unsized array parameter decay
	IsVLA   bool
	Storage types.StorageClass
	span    lexer.Span
}

func NewArrayDecl(name string, elem *types.Type, size Expr, isVLA bool, storage types.StorageClass, span lexer.Span) *ArrayDecl {
	return &ArrayDecl{Name: name, Elem: elem, Size: size, IsVLA: isVLA, Storage: storage, span: span}
}
func (d *ArrayDecl) Span() lexer.Span { return d.span }
func (*ArrayDecl) declNode()          {}
func (*ArrayDecl) stmtNode()          {}

// MemberDecl is one struct/union field.
type MemberDecl struct {
	Name string
	Type *types.Type
}

// StructDecl declares (or defines) a struct tag.
type StructDecl struct {
	Name         string
	Members      []MemberDecl
	IsDefinition bool
	span         lexer.Span
}

func NewStructDecl(name string, members []MemberDecl, isDefinition bool, span lexer.Span) *StructDecl {
	return &StructDecl{Name: name, Members: members, IsDefinition: isDefinition, span: span}
}
func (d *StructDecl) Span() lexer.Span { return d.span }
func (*StructDecl) declNode()          {}
func (*StructDecl) stmtNode()          {}

// UnionDecl declares (or defines) a union tag.
type UnionDecl struct {
	Name         string
	Members      []MemberDecl
	IsDefinition bool
	span         lexer.Span
}

func NewUnionDecl(name string, members []MemberDecl, isDefinition bool, span lexer.Span) *UnionDecl {
	return &UnionDecl{Name: name, Members: members, IsDefinition: isDefinition, span: span}
}
func (d *UnionDecl) Span() lexer.Span { return d.span }
func (*UnionDecl) declNode()          {}
func (*UnionDecl) stmtNode()          {}

// EnumConstant is one `name [= expr]` entry in an enum declaration.
type EnumConstant struct {
	Name      string
	ValueExpr Expr // nil for auto-incrementing entries
}

// EnumDecl declares (or defines) an enum tag.
type EnumDecl struct {
	Name         string
	Constants    []EnumConstant
	IsDefinition bool
	span         lexer.Span
}

func NewEnumDecl(name string, constants []EnumConstant, isDefinition bool, span lexer.Span) *EnumDecl {
	return &EnumDecl{Name: name, Constants: constants, IsDefinition: isDefinition, span: span}
}
func (d *EnumDecl) Span() lexer.Span { return d.span }
func (*EnumDecl) declNode()          {}
func (*EnumDecl) stmtNode()          {}

// TypedefDecl binds a name to a type.
type TypedefDecl struct {
	Name string
	Type *types.Type
	span lexer.Span
}

func NewTypedefDecl(name string, t *types.Type, span lexer.Span) *TypedefDecl {
	return &TypedefDecl{Name: name, Type: t, span: span}
}
func (d *TypedefDecl) Span() lexer.Span { return d.span }
func (*TypedefDecl) declNode()          {}
func (*TypedefDecl) stmtNode()          {}
