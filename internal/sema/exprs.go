package sema

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// checkExpr implements get_expression_type: it resolves
// e's operands recursively, stamps e.SetType with the resolved type,
// and records any diagnostic the node's shape calls for. The
// resolved type is always returned for convenience, but callers that
// only need the side effect may ignore it.
func (c *Checker) checkExpr(e ast.Expr) *types.Type {
	switch x := e.(type) {
	case *ast.IntLiteral, *ast.CharLiteral, *ast.StringLiteral:
		return e.Type() // pre-typed by the AST constructor

	case *ast.Ident:
		return c.checkIdent(x)

	case *ast.CallExpr:
		return c.checkCall(x)

	case *ast.BinaryExpr:
		return c.checkBinary(x)

	case *ast.UnaryExpr:
		return c.checkUnary(x)

	case *ast.IncDecExpr:
		opT := c.checkExpr(x.Operand)
		if !c.isLvalue(x.Operand) {
			c.errorf(x.Span(), diag.CodeBadLvalue, "increment/decrement target is not an lvalue")
		}
		x.SetType(opT)
		return opT

	case *ast.AssignExpr:
		return c.checkAssign(x)

	case *ast.ConditionalExpr:
		return c.checkConditional(x)

	case *ast.CastExpr:
		c.checkExpr(x.X)
		x.SetType(c.withLayout(x.TargetType))
		return x.Type()

	case *ast.SizeofExpr:
		c.checkExpr(x.X)
		return x.Type()

	case *ast.SizeofType:
		return x.Type()

	case *ast.AddressOfExpr:
		return c.checkAddressOf(x)

	case *ast.DereferenceExpr:
		return c.checkDereference(x)

	case *ast.ArrayAccessExpr:
		return c.checkArrayAccess(x)

	case *ast.MemberAccessExpr:
		return c.checkMemberAccess(x)

	case *ast.PtrMemberAccessExpr:
		return c.checkPtrMemberAccess(x)

	case *ast.InitializerListExpr:
		for _, v := range x.Values {
			c.checkExpr(v)
		}
		return x.Type()
	}
	return types.Int.Clone()
}

func (c *Checker) checkIdent(x *ast.Ident) *types.Type {
	sym := c.Table.FindSymbol(x.Name)
	if sym == nil {
		c.errorf(x.Span(), diag.CodeUndeclaredIdentifier, "undeclared identifier %q", x.Name)
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	t := sym.Type.Clone()
	x.SetType(t)
	return t
}

func (c *Checker) checkCall(x *ast.CallExpr) *types.Type {
	sym := c.Table.FindSymbol(x.Callee)
	for _, a := range x.Args {
		c.checkExpr(a)
	}
	if sym == nil || sym.Kind != symtab.KindFunction {
		c.errorf(x.Span(), diag.CodeUndeclaredIdentifier, "call to undeclared function %q", x.Callee)
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	if !sym.Variadic && len(x.Args) != len(sym.Params) {
		c.errorf(x.Span(), diag.CodeArityMismatch, "function %q expects %d argument(s), got %d", x.Callee, len(sym.Params), len(x.Args))
	} else if sym.Variadic && len(x.Args) < len(sym.Params) {
		c.errorf(x.Span(), diag.CodeArityMismatch, "function %q expects at least %d argument(s), got %d", x.Callee, len(sym.Params), len(x.Args))
	}
	for i, a := range x.Args {
		if i >= len(sym.Params) {
			break
		}
		want := sym.Params[i].Type
		got := types.Decay(a.Type())
		if !types.CanConvertTo(got, want) {
			typeMismatch(c, a.Span(), "call argument", want, got)
		}
	}
	ret := sym.Type.Clone()
	ret.IsFunction = false
	ret.Sig = nil
	x.SetType(ret)
	return ret
}

func (c *Checker) checkBinary(x *ast.BinaryExpr) *types.Type {
	lt := c.checkExpr(x.Left)
	rt := c.checkExpr(x.Right)

	if x.Op.IsLogical() {
		x.SetType(types.Bool.Clone())
		return x.Type()
	}

	if types.IsPointer(lt) || types.IsPointer(rt) || lt.IsArray || rt.IsArray {
		result := c.checkPointerArithmetic(x, lt, rt)
		x.SetType(result)
		return result
	}

	if x.Op.IsComparison() {
		x.SetType(types.Bool.Clone())
		return x.Type()
	}

	result := types.UsualArithmeticConversions(lt, rt)
	x.SetType(result)
	return result
}

func (c *Checker) checkPointerArithmetic(x *ast.BinaryExpr, lt, rt *types.Type) *types.Type {
	lp, rp := types.IsPointer(lt) || lt.IsArray, types.IsPointer(rt) || rt.IsArray
	switch {
	case x.Op.IsComparison():
		return types.Bool.Clone()
	case x.Op == ast.OpSub && lp && rp:
		return types.Int.Clone()
	case lp:
		return types.Decay(lt)
	case rp:
		return types.Decay(rt)
	default:
		return types.UsualArithmeticConversions(lt, rt)
	}
}

func (c *Checker) checkUnary(x *ast.UnaryExpr) *types.Type {
	opT := c.checkExpr(x.Operand)
	var result *types.Type
	switch x.Op {
	case ast.OpNot:
		result = types.Bool.Clone()
	default:
		result = opT
	}
	x.SetType(result)
	return result
}

func (c *Checker) checkAssign(x *ast.AssignExpr) *types.Type {
	lt := c.checkExpr(x.Target)
	rt := c.checkExpr(x.Value)
	if !c.isLvalue(x.Target) {
		c.errorf(x.Span(), diag.CodeBadLvalue, "assignment target is not an lvalue")
	}
	if !types.CanConvertTo(types.Decay(rt), lt) {
		typeMismatch(c, x.Span(), "assignment", lt, rt)
	}
	x.SetType(lt)
	return lt
}

// checkConditional implements reconciliation rule: float
// beats everything; else if the branches are compatible use that
// type; else (pointer/array mismatch) fall back to the true branch's
// pointer type.
func (c *Checker) checkConditional(x *ast.ConditionalExpr) *types.Type {
	c.checkExpr(x.Cond)
	tt := c.checkExpr(x.Then)
	et := c.checkExpr(x.Else)

	var result *types.Type
	switch {
	case tt.BaseName == "double" || et.BaseName == "double" || tt.BaseName == "float" || et.BaseName == "float":
		result = types.Double.Clone()
	case types.Compatible(tt, et):
		result = tt.Clone()
	default:
		result = types.Decay(tt)
	}
	x.SetType(result)
	return result
}

func (c *Checker) checkAddressOf(x *ast.AddressOfExpr) *types.Type {
	opT := c.checkExpr(x.Operand)
	if !c.isLvalue(x.Operand) {
		c.errorf(x.Span(), diag.CodeBadLvalue, "operand of & is not an lvalue")
	}
	result := types.PointerTo(opT)
	x.SetType(result)
	return result
}

func (c *Checker) checkDereference(x *ast.DereferenceExpr) *types.Type {
	opT := c.checkExpr(x.Operand)
	if !types.IsPointer(opT) && !opT.IsArray {
		c.errorf(x.Span(), diag.CodeBadLvalue, "cannot dereference non-pointer type %s", opT.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	result := types.Deref(types.Decay(opT))
	x.SetType(result)
	return result
}

func (c *Checker) checkArrayAccess(x *ast.ArrayAccessExpr) *types.Type {
	arrT := c.checkExpr(x.Array)
	c.checkExpr(x.Index)
	if !arrT.IsArray && !types.IsPointer(arrT) {
		c.errorf(x.Span(), diag.CodeBadLvalue, "subscripted value is not an array or pointer")
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	result := types.Deref(types.Decay(arrT))
	x.SetType(result)
	return result
}

func (c *Checker) checkMemberAccess(x *ast.MemberAccessExpr) *types.Type {
	objT := c.checkExpr(x.Object)
	if !objT.IsStruct && !objT.IsUnion {
		c.errorf(x.Span(), diag.CodeBadMemberAccess, "member reference base type %s is not a struct or union", objT.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	return c.resolveMemberType(x, objT)
}

func (c *Checker) checkPtrMemberAccess(x *ast.PtrMemberAccessExpr) *types.Type {
	objT := c.checkExpr(x.Object)
	if !types.IsPointer(objT) || !(types.Deref(objT).IsStruct || types.Deref(objT).IsUnion) {
		c.errorf(x.Span(), diag.CodeBadMemberAccess, "member reference base type %s is not pointer to struct/union", objT.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	pointee := types.Deref(objT)
	return c.resolveMemberTypePtr(x, pointee)
}

func (c *Checker) resolveMemberType(x *ast.MemberAccessExpr, objT *types.Type) *types.Type {
	tagSym := c.resolveAggregateTag(objT)
	if tagSym == nil {
		c.errorf(x.Span(), diag.CodeBadMemberAccess, "incomplete type %s", objT.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	member := c.Table.FindStructMember(tagSym, x.Member)
	if member == nil {
		c.errorf(x.Span(), diag.CodeBadMemberAccess, "no member named %q in %s", x.Member, objT.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	result := member.Type.Clone()
	x.SetType(result)
	return result
}

func (c *Checker) resolveMemberTypePtr(x *ast.PtrMemberAccessExpr, pointee *types.Type) *types.Type {
	tagSym := c.resolveAggregateTag(pointee)
	if tagSym == nil {
		c.errorf(x.Span(), diag.CodeBadMemberAccess, "incomplete type %s", pointee.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	member := c.Table.FindStructMember(tagSym, x.Member)
	if member == nil {
		c.errorf(x.Span(), diag.CodeBadMemberAccess, "no member named %q in %s", x.Member, pointee.String())
		x.SetType(types.Int.Clone())
		return x.Type()
	}
	result := member.Type.Clone()
	x.SetType(result)
	return result
}

// isLvalue reports whether e designates an addressable object (spec
// §7's "bad lvalue" check): identifiers, dereferences, array
// accesses, and member accesses are lvalues; everything else is not.
func (c *Checker) isLvalue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.DereferenceExpr, *ast.ArrayAccessExpr, *ast.MemberAccessExpr, *ast.PtrMemberAccessExpr:
		return true
	}
	return false
}
