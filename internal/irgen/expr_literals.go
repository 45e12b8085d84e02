package irgen

import (
	"fmt"
	"strconv"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

func (g *Generator) genIdent(x *ast.Ident) operand {
	sym := g.table.FindSymbol(x.Name)
	if sym == nil {
		g.errorf(diag.CodeUndeclaredIdentifier, "undeclared identifier %q", x.Name)
		return operand{text: "0", typ: types.Int.Clone()}
	}
	switch sym.Kind {
	case symtab.KindFunction:
		return operand{text: "@" + sym.LLVMName, typ: sym.Type}
	case symtab.KindEnumConstant:
		return operand{text: strconv.Itoa(sym.EnumValue), typ: types.Int.Clone()}
	}

	if sym.Type.IsArray && sym.Type.IsVLA {
		elemT := types.ElementType(sym.Type)
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = load %s*, %s** %%%s", tmp, llvmType(elemT), llvmType(elemT), sym.LLVMName))
		return operand{text: tmp, typ: types.PointerTo(elemT)}
	}
	return g.loadFrom("%"+sym.LLVMName, sym.Type)
}

// genStringLiteral interns the literal and evaluates to a pointer to
// its first byte.
func (g *Generator) genStringLiteral(x *ast.StringLiteral) operand {
	name := g.pool.intern(x.Content)
	length := len(x.Content) + 1
	tmp := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = getelementptr inbounds [%d x i8], [%d x i8]* %s, i32 0, i32 0", tmp, length, length, name))
	return operand{text: tmp, typ: types.PointerTo(types.Char)}
}

// genSizeofExpr never evaluates its operand (C's sizeof is a
// compile-time operator); it only reads the resolved type the checker
// already attached.
func (g *Generator) genSizeofExpr(x *ast.SizeofExpr) operand {
	resolved := g.withLayout(x.X.Type())
	size := types.Sizeof(resolved, nil)
	return operand{text: strconv.Itoa(size), typ: types.SizeT.Clone()}
}

func (g *Generator) genSizeofType(x *ast.SizeofType) operand {
	resolved := g.withLayout(x.Target)
	size := types.Sizeof(resolved, nil)
	return operand{text: strconv.Itoa(size), typ: types.SizeT.Clone()}
}
