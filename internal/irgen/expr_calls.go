package irgen

import (
	"fmt"
	"strings"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/types"
)

// genCall lowers a call expression: declared parameter
// types widen each argument exactly like an assignment; arguments
// past the declared parameter list (a variadic call) get the default
// argument promotions instead (integer promotion, float -> double).
func (g *Generator) genCall(x *ast.CallExpr) operand {
	sym := g.table.FindSymbol(x.Callee)

	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		val := g.genExpr(a)
		var target *types.Type
		if sym != nil && i < len(sym.Params) {
			target = sym.Params[i].Type
		} else {
			target = defaultArgumentPromotion(val.typ)
		}
		val = g.coerce(val, target)
		args[i] = fmt.Sprintf("%s %s", llvmType(target), val.text)
	}

	retType := types.Int.Clone()
	if sym != nil {
		retType = sym.Type
	}

	callee := fmt.Sprintf("%s @%s(%s)", llvmType(retType), x.Callee, strings.Join(args, ", "))
	if sym != nil && sym.Variadic {
		fixed := make([]string, len(sym.Params))
		for i, p := range sym.Params {
			fixed[i] = llvmType(p.Type)
		}
		fixed = append(fixed, "...")
		callee = fmt.Sprintf("%s (%s) @%s(%s)", llvmType(retType), strings.Join(fixed, ", "), x.Callee, strings.Join(args, ", "))
	}
	call := "call " + callee

	if types.IsVoid(retType) {
		g.emit("  " + call)
		return operand{text: "", typ: retType}
	}
	tmp := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = %s", tmp, call))
	return operand{text: tmp, typ: retType}
}

func defaultArgumentPromotion(t *types.Type) *types.Type {
	if t == nil {
		return types.Int.Clone()
	}
	if t.BaseName == "float" && t.PointerLevel == 0 {
		return types.Double.Clone()
	}
	if types.IsIntegerBase(t) {
		return types.PromoteInteger(t)
	}
	return t
}
