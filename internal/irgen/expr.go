package irgen

import (
	"fmt"
	"strconv"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/types"
)

// genExpr dispatches one expression to its emission routine and
// returns the SSA value (or constant) it evaluates to. Every node's ResolvedType has already been set by
// the checker; genExpr trusts it rather than re-deriving it.
func (g *Generator) genExpr(e ast.Expr) operand {
	switch x := e.(type) {
	case *ast.Ident:
		return g.genIdent(x)
	case *ast.IntLiteral:
		return operand{text: strconv.FormatInt(x.Value, 10), typ: x.Type()}
	case *ast.CharLiteral:
		return operand{text: strconv.Itoa(int(x.Value)), typ: x.Type()}
	case *ast.StringLiteral:
		return g.genStringLiteral(x)
	case *ast.CallExpr:
		return g.genCall(x)
	case *ast.BinaryExpr:
		return g.genBinary(x)
	case *ast.UnaryExpr:
		return g.genUnary(x)
	case *ast.IncDecExpr:
		return g.genIncDec(x)
	case *ast.AssignExpr:
		return g.genAssign(x)
	case *ast.ConditionalExpr:
		return g.genConditional(x)
	case *ast.CastExpr:
		return g.genCast(x)
	case *ast.SizeofExpr:
		return g.genSizeofExpr(x)
	case *ast.SizeofType:
		return g.genSizeofType(x)
	case *ast.AddressOfExpr:
		return g.genAddressOf(x)
	case *ast.DereferenceExpr:
		return g.genDereference(x)
	case *ast.ArrayAccessExpr:
		return g.genArrayAccess(x)
	case *ast.MemberAccessExpr:
		return g.genMemberAccess(x)
	case *ast.PtrMemberAccessExpr:
		return g.genPtrMemberAccess(x)
	case *ast.InitializerListExpr:
		return g.genInitializerList(x)
	}
	return operand{text: "0", typ: types.Int.Clone()}
}

// loadFrom reads the value stored at addr. An array-typed slot decays
// to a pointer to its first element rather than being loaded whole
//.
func (g *Generator) loadFrom(addr string, typ *types.Type) operand {
	if typ.IsArray {
		elemT := types.ElementType(typ)
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s* %s, i32 0, i32 0", tmp, llvmType(typ), llvmType(typ), addr))
		return operand{text: tmp, typ: types.PointerTo(elemT)}
	}
	tmp := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = load %s, %s* %s", tmp, llvmType(typ), llvmType(typ), addr))
	return operand{text: tmp, typ: typ}
}

// toBool reduces an arithmetic or pointer operand to the i1 a branch
// condition needs.
func (g *Generator) toBool(op operand) operand {
	if op.typ != nil && op.typ.BaseName == "_Bool" && op.typ.PointerLevel == 0 && !op.typ.IsArray {
		return op
	}
	ll := llvmType(op.typ)
	tmp := g.nextTemp()
	switch {
	case op.typ != nil && types.IsFloatingBase(op.typ):
		g.emit(fmt.Sprintf("  %s = fcmp one %s %s, 0.0", tmp, ll, op.text))
	case op.typ != nil && op.typ.PointerLevel > 0:
		g.emit(fmt.Sprintf("  %s = icmp ne %s %s, null", tmp, ll, op.text))
	default:
		g.emit(fmt.Sprintf("  %s = icmp ne %s %s, 0", tmp, ll, op.text))
	}
	return operand{text: tmp, typ: types.Bool.Clone()}
}

// coerce implements the compiler's implicit/explicit conversion rules
//: same representation is a no-op retag,
// otherwise the right LLVM conversion instruction (sext/zext/trunc,
// sitofp/uitofp/fptosi/fptoui, fpext/fptrunc, ptrtoint/inttoptr,
// bitcast) is emitted.
func (g *Generator) coerce(op operand, target *types.Type) operand {
	if target == nil || op.typ == nil {
		return op
	}
	from := op.typ
	if types.Compatible(from, target) {
		return operand{text: op.text, typ: target}
	}
	fromLL, toLL := llvmType(from), llvmType(target)
	if fromLL == toLL {
		return operand{text: op.text, typ: target}
	}

	switch {
	case from.PointerLevel > 0 && target.PointerLevel > 0:
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = bitcast %s %s to %s", tmp, fromLL, op.text, toLL))
		return operand{text: tmp, typ: target}

	case from.PointerLevel > 0 && types.IsIntegerBase(target):
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = ptrtoint %s %s to %s", tmp, fromLL, op.text, toLL))
		return operand{text: tmp, typ: target}

	case types.IsIntegerBase(from) && target.PointerLevel > 0:
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = inttoptr %s %s to %s", tmp, fromLL, op.text, toLL))
		return operand{text: tmp, typ: target}

	case types.IsFloatingBase(from) && types.IsIntegerBase(target):
		tmp := g.nextTemp()
		instr := "fptosi"
		if types.IsUnsigned(target) {
			instr = "fptoui"
		}
		g.emit(fmt.Sprintf("  %s = %s %s %s to %s", tmp, instr, fromLL, op.text, toLL))
		return operand{text: tmp, typ: target}

	case types.IsIntegerBase(from) && types.IsFloatingBase(target):
		tmp := g.nextTemp()
		instr := "sitofp"
		if types.IsUnsigned(from) {
			instr = "uitofp"
		}
		g.emit(fmt.Sprintf("  %s = %s %s %s to %s", tmp, instr, fromLL, op.text, toLL))
		return operand{text: tmp, typ: target}

	case from.BaseName == "float" && target.BaseName == "double":
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = fpext float %s to double", tmp, op.text))
		return operand{text: tmp, typ: target}

	case from.BaseName == "double" && target.BaseName == "float":
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = fptrunc double %s to float", tmp, op.text))
		return operand{text: tmp, typ: target}

	case types.IsIntegerBase(from) && types.IsIntegerBase(target):
		fromSize, toSize := types.Sizeof(from, nil), types.Sizeof(target, nil)
		// _Bool is i1 in the IR, narrower than every other integer type.
		if from.BaseName == "_Bool" {
			fromSize = 0
		}
		if target.BaseName == "_Bool" {
			toSize = 0
		}
		if fromSize == toSize {
			return operand{text: op.text, typ: target}
		}
		tmp := g.nextTemp()
		if toSize > fromSize {
			instr := "sext"
			if types.IsUnsigned(from) {
				instr = "zext"
			}
			g.emit(fmt.Sprintf("  %s = %s %s %s to %s", tmp, instr, fromLL, op.text, toLL))
		} else {
			g.emit(fmt.Sprintf("  %s = trunc %s %s to %s", tmp, fromLL, op.text, toLL))
		}
		return operand{text: tmp, typ: target}
	}
	return operand{text: op.text, typ: target}
}
