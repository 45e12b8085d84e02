package irgen

import (
	"fmt"
	"strings"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// genFunction emits one function definition: the define line, a fresh scope with one alloca+store
// per parameter, the body, and an implicit return if the body did not
// already terminate itself.
func (g *Generator) genFunction(fn *ast.FunctionDecl) {
	sym := g.table.FindSymbol(fn.Name)
	if sym == nil {
		return // registered in genExternDeclarations; absence means a prior error
	}

	g.tempCounter = 0
	g.labelCounter = 0
	g.terminated = false
	g.currentFunctionName = fn.Name
	g.currentReturnType = sym.Type

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s %%%s", llvmType(sym.Params[i].Type), p.Name)
	}
	if fn.Variadic {
		params = append(params, "...")
	}
	g.emitAlways(fmt.Sprintf("define %s @%s(%s) {", llvmType(sym.Type), fn.Name, strings.Join(params, ", ")))
	g.emitAlways("entry:")

	g.table.BeginFunction(fn.Name)
	g.table.EnterScope()
	for i, p := range fn.Params {
		paramSym, ok := g.table.AddSymbol(p.Name, symtab.KindVariable, sym.Params[i].Type)
		if !ok {
			continue
		}
		paramSym.IsParameter = true
		addr := paramSym.LLVMName + ".addr"
		paramSym.LLVMName = addr // accesses to the parameter load/store through its .addr slot
		g.emitAlways(fmt.Sprintf("  %%%s = alloca %s", addr, llvmType(sym.Params[i].Type)))
		g.emitAlways(fmt.Sprintf("  store %s %%%s, %s* %%%s", llvmType(sym.Params[i].Type), p.Name, llvmType(sym.Params[i].Type), addr))
	}

	g.genStmt(fn.Body)

	if !g.terminated {
		if types.IsVoid(sym.Type) {
			g.emitAlways("  ret void")
		} else {
			g.emitAlways(fmt.Sprintf("  ret %s %s", llvmType(sym.Type), zeroValue(sym.Type)))
		}
	}
	g.table.ExitScope()
	g.emitAlways("}")
	g.emitAlways("")

	g.currentFunctionName = ""
	g.currentReturnType = nil
}

func zeroValue(t *types.Type) string {
	if t.PointerLevel > 0 {
		return "null"
	}
	return "0"
}
