package irgen

import (
	"fmt"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/types"
)

func (g *Generator) genUnary(x *ast.UnaryExpr) operand {
	val := g.genExpr(x.Operand)
	switch x.Op {
	case ast.OpNeg:
		tmp := g.nextTemp()
		if types.IsFloatingBase(val.typ) {
			g.emit(fmt.Sprintf("  %s = fneg %s %s", tmp, llvmType(val.typ), val.text))
		} else {
			g.emit(fmt.Sprintf("  %s = sub %s 0, %s", tmp, llvmType(val.typ), val.text))
		}
		return operand{text: tmp, typ: val.typ}

	case ast.OpNot:
		b := g.toBool(val)
		inv := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = xor i1 %s, true", inv, b.text))
		ext := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = zext i1 %s to i32", ext, inv))
		return operand{text: ext, typ: types.Int.Clone()}

	case ast.OpBNot:
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = xor %s %s, -1", tmp, llvmType(val.typ), val.text))
		return operand{text: tmp, typ: val.typ}
	}
	return val
}

// genIncDec implements pre/post increment-decrement:
// load, adjust by one (a GEP step for pointers), store back, and
// yield either the adjusted value (pre-) or the original (post-).
func (g *Generator) genIncDec(x *ast.IncDecExpr) operand {
	addr, typ := g.genLValueAddr(x.Operand)
	cur := g.loadFrom(addr, typ)

	step := 1
	if x.Kind == ast.PreDec || x.Kind == ast.PostDec {
		step = -1
	}

	var updated operand
	if typ.PointerLevel > 0 {
		elemT := types.ElementType(typ)
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s %s, i32 %d", tmp, llvmType(elemT), llvmType(typ), cur.text, step))
		updated = operand{text: tmp, typ: typ}
	} else if types.IsFloatingBase(typ) {
		tmp := g.nextTemp()
		delta := "1.0"
		if step < 0 {
			delta = "-1.0"
		}
		g.emit(fmt.Sprintf("  %s = fadd %s %s, %s", tmp, llvmType(typ), cur.text, delta))
		updated = operand{text: tmp, typ: typ}
	} else {
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = add %s %s, %d", tmp, llvmType(typ), cur.text, step))
		updated = operand{text: tmp, typ: typ}
	}

	g.emit(fmt.Sprintf("  store %s %s, %s* %s", llvmType(typ), updated.text, llvmType(typ), addr))
	if x.Kind == ast.PreInc || x.Kind == ast.PreDec {
		return updated
	}
	return cur
}

// genAssign implements assignment rule: simple `=` stores
// the coerced value directly; a compound `op=` reads-modifies-writes
// through the same address.
func (g *Generator) genAssign(x *ast.AssignExpr) operand {
	addr, typ := g.genLValueAddr(x.Target)
	rhs := g.genExpr(x.Value)

	var newVal operand
	if x.Op == nil {
		newVal = g.coerce(rhs, typ)
	} else if typ.PointerLevel > 0 && (*x.Op == ast.OpAdd || *x.Op == ast.OpSub) {
		cur := g.loadFrom(addr, typ)
		newVal = g.genPointerArith(*x.Op, cur, rhs)
	} else {
		cur := g.loadFrom(addr, typ)
		common := types.UsualArithmeticConversions(typ, rhs.typ)
		l := g.coerce(cur, common)
		r := g.coerce(rhs, common)
		newVal = g.coerce(g.emitBinaryOp(*x.Op, l, r, common), typ)
	}

	g.emit(fmt.Sprintf("  store %s %s, %s* %s", llvmType(typ), newVal.text, llvmType(typ), addr))
	return operand{text: newVal.text, typ: typ}
}

// genConditional implements `?:` with the same merge-through-a-stack-
// slot pattern as short-circuit && / ||.
func (g *Generator) genConditional(x *ast.ConditionalExpr) operand {
	cond := g.toBool(g.genExpr(x.Cond))
	resultType := x.Type()

	thenLbl := g.nextLabel("cond_then")
	elseLbl := g.nextLabel("cond_else")
	endLbl := g.nextLabel("cond_end")

	slot := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = alloca %s", slot, llvmType(resultType)))
	g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", cond.text, thenLbl, elseLbl))

	g.emitLabel(thenLbl)
	thenVal := g.coerce(g.genExpr(x.Then), resultType)
	if !g.terminated {
		g.emit(fmt.Sprintf("  store %s %s, %s* %s", llvmType(resultType), thenVal.text, llvmType(resultType), slot))
		g.emit(fmt.Sprintf("  br label %%%s", endLbl))
	}

	g.emitLabel(elseLbl)
	elseVal := g.coerce(g.genExpr(x.Else), resultType)
	if !g.terminated {
		g.emit(fmt.Sprintf("  store %s %s, %s* %s", llvmType(resultType), elseVal.text, llvmType(resultType), slot))
		g.emit(fmt.Sprintf("  br label %%%s", endLbl))
	}

	g.emitLabel(endLbl)
	return g.loadFrom(slot, resultType)
}

func (g *Generator) genCast(x *ast.CastExpr) operand {
	val := g.genExpr(x.X)
	return g.coerce(val, x.TargetType)
}
