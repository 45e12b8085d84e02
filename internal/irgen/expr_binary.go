package irgen

import (
	"fmt"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/types"
)

// genBinary lowers a binary expression: short-circuit
// operators get their own control-flow lowering, pointer arithmetic
// gets GEP-based lowering, everything else goes through the usual
// arithmetic conversions before a single instruction.
func (g *Generator) genBinary(x *ast.BinaryExpr) operand {
	if x.Op.IsLogical() {
		return g.genLogical(x)
	}
	left := g.genExpr(x.Left)
	right := g.genExpr(x.Right)

	if left.typ.PointerLevel > 0 || right.typ.PointerLevel > 0 {
		return g.genPointerArith(x.Op, left, right)
	}

	common := types.UsualArithmeticConversions(left.typ, right.typ)
	l := g.coerce(left, common)
	r := g.coerce(right, common)
	return g.emitBinaryOp(x.Op, l, r, common)
}

// emitBinaryOp emits one arithmetic/bitwise/comparison instruction
// over two operands already converted to a common type.
func (g *Generator) emitBinaryOp(op ast.BinaryOpKind, l, r operand, common *types.Type) operand {
	ll := llvmType(common)
	isFloat := types.IsFloatingBase(common)
	isUnsigned := types.IsUnsigned(common)

	if op.IsComparison() {
		cmpOp := "icmp"
		if isFloat {
			cmpOp = "fcmp"
		}
		cond := comparisonCond(op, isFloat, isUnsigned)
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = %s %s %s %s, %s", tmp, cmpOp, cond, ll, l.text, r.text))
		ext := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = zext i1 %s to i32", ext, tmp))
		return operand{text: ext, typ: types.Int.Clone()}
	}

	var instr string
	switch op {
	case ast.OpAdd:
		instr = pick(isFloat, "fadd", "add")
	case ast.OpSub:
		instr = pick(isFloat, "fsub", "sub")
	case ast.OpMul:
		instr = pick(isFloat, "fmul", "mul")
	case ast.OpDiv:
		instr = pick(isFloat, "fdiv", pick(isUnsigned, "udiv", "sdiv"))
	case ast.OpMod:
		instr = pick(isFloat, "frem", pick(isUnsigned, "urem", "srem"))
	case ast.OpBAnd:
		instr = "and"
	case ast.OpBOr:
		instr = "or"
	case ast.OpBXor:
		instr = "xor"
	case ast.OpShl:
		instr = "shl"
	case ast.OpShr:
		instr = pick(isUnsigned, "lshr", "ashr")
	}
	tmp := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = %s %s %s, %s", tmp, instr, ll, l.text, r.text))
	return operand{text: tmp, typ: common}
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func comparisonCond(op ast.BinaryOpKind, isFloat, isUnsigned bool) string {
	switch op {
	case ast.OpEq:
		return pick(isFloat, "oeq", "eq")
	case ast.OpNe:
		return pick(isFloat, "one", "ne")
	case ast.OpLt:
		return pick(isFloat, "olt", pick(isUnsigned, "ult", "slt"))
	case ast.OpLe:
		return pick(isFloat, "ole", pick(isUnsigned, "ule", "sle"))
	case ast.OpGt:
		return pick(isFloat, "ogt", pick(isUnsigned, "ugt", "sgt"))
	case ast.OpGe:
		return pick(isFloat, "oge", pick(isUnsigned, "uge", "sge"))
	}
	return "eq"
}

// genPointerArith implements pointer-arithmetic note:
// pointer + integer and integer + pointer lower to a single GEP;
// pointer - pointer lowers to a byte difference divided by the
// pointee's size; pointer - integer negates the index into a GEP.
func (g *Generator) genPointerArith(op ast.BinaryOpKind, left, right operand) operand {
	if op == ast.OpAdd {
		ptr, idx := left, right
		if ptr.typ.PointerLevel == 0 {
			ptr, idx = right, left
		}
		elemT := types.ElementType(ptr.typ)
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s %s, i32 %s", tmp, llvmType(elemT), llvmType(ptr.typ), ptr.text, idx.text))
		return operand{text: tmp, typ: ptr.typ}
	}

	// op == OpSub
	if left.typ.PointerLevel > 0 && right.typ.PointerLevel > 0 {
		elemSize := types.Sizeof(types.ElementType(left.typ), nil)
		lInt := g.coerce(left, types.Long.Clone())
		rInt := g.coerce(right, types.Long.Clone())
		diff := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = sub i64 %s, %s", diff, lInt.text, rInt.text))
		result := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = sdiv i64 %s, %d", result, diff, elemSize))
		return operand{text: result, typ: types.Long.Clone()}
	}

	elemT := types.ElementType(left.typ)
	negIdx := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = sub i32 0, %s", negIdx, right.text))
	tmp := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s %s, i32 %s", tmp, llvmType(elemT), llvmType(left.typ), left.text, negIdx))
	return operand{text: tmp, typ: left.typ}
}

// genLogical implements short-circuit && and || via the merge-through-
// a-stack-slot pattern: the
// right operand is only evaluated, and so only side-effects, when the
// left operand doesn't already decide the result.
func (g *Generator) genLogical(x *ast.BinaryExpr) operand {
	lhs := g.toBool(g.genExpr(x.Left))
	slot := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = alloca i1", slot))

	rhsLbl := g.nextLabel("logic_rhs")
	shortLbl := g.nextLabel("logic_short")
	endLbl := g.nextLabel("logic_end")

	if x.Op == ast.OpLAnd {
		g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", lhs.text, rhsLbl, shortLbl))
		g.emitLabel(shortLbl)
		g.emit(fmt.Sprintf("  store i1 false, i1* %s", slot))
		if !g.terminated {
			g.emit(fmt.Sprintf("  br label %%%s", endLbl))
		}
	} else {
		g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", lhs.text, shortLbl, rhsLbl))
		g.emitLabel(shortLbl)
		g.emit(fmt.Sprintf("  store i1 true, i1* %s", slot))
		if !g.terminated {
			g.emit(fmt.Sprintf("  br label %%%s", endLbl))
		}
	}

	g.emitLabel(rhsLbl)
	rhs := g.toBool(g.genExpr(x.Right))
	g.emit(fmt.Sprintf("  store i1 %s, i1* %s", rhs.text, slot))
	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", endLbl))
	}

	g.emitLabel(endLbl)
	loaded := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = load i1, i1* %s", loaded, slot))
	ext := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = zext i1 %s to i32", ext, loaded))
	return operand{text: ext, typ: types.Int.Clone()}
}
