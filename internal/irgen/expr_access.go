package irgen

import (
	"fmt"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// genLValueAddr resolves e's storage address without loading its
// value, for use as an assignment target or the operand of unary &
//.
func (g *Generator) genLValueAddr(e ast.Expr) (string, *types.Type) {
	switch x := e.(type) {
	case *ast.Ident:
		sym := g.table.FindSymbol(x.Name)
		if sym == nil {
			g.errorf(diag.CodeUndeclaredIdentifier, "undeclared identifier %q", x.Name)
			return "%0", types.Int.Clone()
		}
		return "%" + sym.LLVMName, sym.Type
	case *ast.DereferenceExpr:
		val := g.genExpr(x.Operand)
		return val.text, types.Deref(val.typ)
	case *ast.ArrayAccessExpr:
		return g.genArrayElemAddr(x)
	case *ast.MemberAccessExpr:
		return g.genMemberAddr(x)
	case *ast.PtrMemberAccessExpr:
		return g.genPtrMemberAddr(x)
	}
	val := g.genExpr(e)
	return val.text, val.typ
}

func (g *Generator) genArrayElemAddr(x *ast.ArrayAccessExpr) (string, *types.Type) {
	arrT := x.Array.Type()
	idx := g.genExpr(x.Index)

	if arrT != nil && arrT.IsArray && !arrT.IsVLA {
		addr, typ := g.genLValueAddr(x.Array)
		elemT := types.ElementType(typ)
		tmp := g.nextTemp()
		g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s* %s, i32 0, i32 %s", tmp, llvmType(typ), llvmType(typ), addr, idx.text))
		return tmp, elemT
	}

	ptr := g.genExpr(x.Array)
	elemT := types.ElementType(ptr.typ)
	tmp := g.nextTemp()
	g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s %s, i32 %s", tmp, llvmType(elemT), llvmType(ptr.typ), ptr.text, idx.text))
	return tmp, elemT
}

func (g *Generator) genMemberAddr(x *ast.MemberAccessExpr) (string, *types.Type) {
	addr, baseType := g.genLValueAddr(x.Object)
	return g.memberAddrFrom(addr, baseType, x.Member)
}

func (g *Generator) genPtrMemberAddr(x *ast.PtrMemberAccessExpr) (string, *types.Type) {
	ptr := g.genExpr(x.Object)
	baseType := types.Deref(ptr.typ)
	return g.memberAddrFrom(ptr.text, baseType, x.Member)
}

func (g *Generator) memberAddrFrom(addr string, baseType *types.Type, member string) (string, *types.Type) {
	tagSym := g.resolveAggregateTag(baseType)
	if tagSym == nil {
		return addr, baseType
	}
	idx := indexOfMember(tagSym, member)
	memberSym := tagSym.Members[idx]
	tmp := g.nextTemp()
	if baseType.IsUnion {
		g.emit(fmt.Sprintf("  %s = bitcast %s* %s to %s*", tmp, llvmType(baseType), addr, llvmType(memberSym.Type)))
	} else {
		g.emit(fmt.Sprintf("  %s = getelementptr inbounds %s, %s* %s, i32 0, i32 %d", tmp, llvmType(baseType), llvmType(baseType), addr, idx))
	}
	return tmp, memberSym.Type
}

func indexOfMember(tagSym *symtab.Symbol, name string) int {
	for i, m := range tagSym.Members {
		if m.Name == name {
			return i
		}
	}
	return 0
}

func (g *Generator) genAddressOf(x *ast.AddressOfExpr) operand {
	addr, typ := g.genLValueAddr(x.Operand)
	return operand{text: addr, typ: types.PointerTo(typ)}
}

func (g *Generator) genDereference(x *ast.DereferenceExpr) operand {
	val := g.genExpr(x.Operand)
	elemT := types.Deref(val.typ)
	return g.loadFrom(val.text, elemT)
}

func (g *Generator) genArrayAccess(x *ast.ArrayAccessExpr) operand {
	addr, typ := g.genArrayElemAddr(x)
	return g.loadFrom(addr, typ)
}

func (g *Generator) genMemberAccess(x *ast.MemberAccessExpr) operand {
	addr, typ := g.genMemberAddr(x)
	return g.loadFrom(addr, typ)
}

func (g *Generator) genPtrMemberAccess(x *ast.PtrMemberAccessExpr) operand {
	addr, typ := g.genPtrMemberAddr(x)
	return g.loadFrom(addr, typ)
}

// genInitializerList evaluates each element for its side effects and
// yields the last one; full brace-initializer lowering belongs to the
// declaration-level codegen this reduced front end does not drive.
func (g *Generator) genInitializerList(x *ast.InitializerListExpr) operand {
	var last operand
	for _, v := range x.Values {
		last = g.genExpr(v)
	}
	return last
}
