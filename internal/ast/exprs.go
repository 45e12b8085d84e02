package ast

import (
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/types"
)

// BinaryOpKind enumerates the binary operators.
type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLAnd
	OpLOr
	OpBAnd
	OpBOr
	OpBXor
	OpShl
	OpShr
)

// IsComparison reports whether op yields a boolean result.
func (op BinaryOpKind) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsLogical reports whether op is a short-circuit logical operator.
func (op BinaryOpKind) IsLogical() bool { return op == OpLAnd || op == OpLOr }

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind int

const (
	OpNeg UnaryOpKind = iota
	OpNot
	OpBNot
)

// IncDecKind distinguishes the four increment/decrement forms.
type IncDecKind int

const (
	PreInc IncDecKind = iota
	PostInc
	PreDec
	PostDec
)

// Ident is an identifier reference.
type Ident struct {
	Name string
	exprBase
}

func NewIdent(name string, span lexer.Span) *Ident { return &Ident{Name: name, exprBase: exprBase{span: span}} }

// IntLiteral is an integer constant.
type IntLiteral struct {
	Value int64
	exprBase
}

func NewIntLiteral(v int64, span lexer.Span) *IntLiteral {
	return &IntLiteral{Value: v, exprBase: exprBase{span: span, typ: types.Int.Clone()}}
}

// CharLiteral is a character constant.
type CharLiteral struct {
	Value byte
	exprBase
}

func NewCharLiteral(v byte, span lexer.Span) *CharLiteral {
	return &CharLiteral{Value: v, exprBase: exprBase{span: span, typ: types.Char.Clone()}}
}

// StringLiteral is a string constant; Content holds the decoded bytes
// (escapes already resolved by the lexer), without the trailing NUL.
type StringLiteral struct {
	Content string
	exprBase
}

func NewStringLiteral(content string, span lexer.Span) *StringLiteral {
	return &StringLiteral{Content: content, exprBase: exprBase{span: span, typ: types.PointerTo(types.Char)}}
}

// CallExpr is a function call `Callee(Args...)`.
type CallExpr struct {
	Callee string
	Args   []Expr
	exprBase
}

func NewCallExpr(callee string, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, exprBase: exprBase{span: span}}
}

// BinaryExpr is `Left Op Right`.
type BinaryExpr struct {
	Op          BinaryOpKind
	Left, Right Expr
	exprBase
}

func NewBinaryExpr(op BinaryOpKind, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, exprBase: exprBase{span: span}}
}

// UnaryExpr is `Op Operand` for -, !, ~.
type UnaryExpr struct {
	Op      UnaryOpKind
	Operand Expr
	exprBase
}

func NewUnaryExpr(op UnaryOpKind, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, exprBase: exprBase{span: span}}
}

// IncDecExpr is a pre/post increment/decrement applied to an lvalue.
type IncDecExpr struct {
	Kind    IncDecKind
	Operand Expr
	exprBase
}

func NewIncDecExpr(kind IncDecKind, operand Expr, span lexer.Span) *IncDecExpr {
	return &IncDecExpr{Kind: kind, Operand: operand, exprBase: exprBase{span: span}}
}

// AssignExpr is `Target = Value` or, when Op is non-nil, a compound
// assignment `Target Op= Value`.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Op     *BinaryOpKind // nil for simple `=`
	exprBase
}

func NewAssignExpr(target, value Expr, op *BinaryOpKind, span lexer.Span) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, Op: op, exprBase: exprBase{span: span}}
}

// ConditionalExpr is `Cond ? Then : Else`.
type ConditionalExpr struct {
	Cond, Then, Else Expr
	exprBase
}

func NewConditionalExpr(cond, then, els Expr, span lexer.Span) *ConditionalExpr {
	return &ConditionalExpr{Cond: cond, Then: then, Else: els, exprBase: exprBase{span: span}}
}

// CastExpr is `(TargetType) X`.
type CastExpr struct {
	TargetType *types.Type
	X          Expr
	exprBase
}

func NewCastExpr(target *types.Type, x Expr, span lexer.Span) *CastExpr {
	return &CastExpr{TargetType: target, X: x, exprBase: exprBase{span: span, typ: target.Clone()}}
}

// SizeofExpr is `sizeof X` (operand form).
type SizeofExpr struct {
	X Expr
	exprBase
}

func NewSizeofExpr(x Expr, span lexer.Span) *SizeofExpr {
	return &SizeofExpr{X: x, exprBase: exprBase{span: span, typ: types.SizeT.Clone()}}
}

// SizeofType is `sizeof(Type)` (type form).
type SizeofType struct {
	Target *types.Type
	exprBase
}

func NewSizeofType(target *types.Type, span lexer.Span) *SizeofType {
	return &SizeofType{Target: target, exprBase: exprBase{span: span, typ: types.SizeT.Clone()}}
}

// AddressOfExpr is `&Operand`.
type AddressOfExpr struct {
	Operand Expr
	exprBase
}

func NewAddressOfExpr(operand Expr, span lexer.Span) *AddressOfExpr {
	return &AddressOfExpr{Operand: operand, exprBase: exprBase{span: span}}
}

// DereferenceExpr is `*Operand`.
type DereferenceExpr struct {
	Operand Expr
	exprBase
}

func NewDereferenceExpr(operand Expr, span lexer.Span) *DereferenceExpr {
	return &DereferenceExpr{Operand: operand, exprBase: exprBase{span: span}}
}

// ArrayAccessExpr is `Array[Index]`.
type ArrayAccessExpr struct {
	Array, Index Expr
	exprBase
}

func NewArrayAccessExpr(array, index Expr, span lexer.Span) *ArrayAccessExpr {
	return &ArrayAccessExpr{Array: array, Index: index, exprBase: exprBase{span: span}}
}

// MemberAccessExpr is `Object.Member`.
type MemberAccessExpr struct {
	Object Expr
	Member string
	exprBase
}

func NewMemberAccessExpr(object Expr, member string, span lexer.Span) *MemberAccessExpr {
	return &MemberAccessExpr{Object: object, Member: member, exprBase: exprBase{span: span}}
}

// PtrMemberAccessExpr is `Object->Member`.
type PtrMemberAccessExpr struct {
	Object Expr
	Member string
	exprBase
}

func NewPtrMemberAccessExpr(object Expr, member string, span lexer.Span) *PtrMemberAccessExpr {
	return &PtrMemberAccessExpr{Object: object, Member: member, exprBase: exprBase{span: span}}
}

// InitializerListExpr is a brace-enclosed initializer list.
type InitializerListExpr struct {
	Values []Expr
	exprBase
}

func NewInitializerListExpr(values []Expr, span lexer.Span) *InitializerListExpr {
	return &InitializerListExpr{Values: values, exprBase: exprBase{span: span}}
}
