package sema

import (
	"testing"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
	"github.com/stretchr/testify/require"
)

var sp = lexer.Span{}

func TestUndeclaredIdentifierReported(t *testing.T) {
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewReturnStmt(ast.NewIdent("missing", sp), sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.True(t, bag.HasErrors())
}

func TestRedeclarationInSameScopeReported(t *testing.T) {
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("x", types.Int.Clone(), nil, types.StorageNone, sp),
		ast.NewVarDecl("x", types.Int.Clone(), nil, types.StorageNone, sp),
		ast.NewReturnStmt(ast.NewIntLiteral(0, sp), sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.Equal(t, 1, bag.ErrorCount())
}

func TestShadowingInNestedScopeAllowed(t *testing.T) {
	inner := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("x", types.Double.Clone(), nil, types.StorageNone, sp),
	}, sp)
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("x", types.Int.Clone(), nil, types.StorageNone, sp),
		inner,
		ast.NewReturnStmt(ast.NewIntLiteral(0, sp), sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.False(t, bag.HasErrors())
}

func TestBreakOutsideLoopReported(t *testing.T) {
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewBreakStmt(sp),
		ast.NewReturnStmt(ast.NewIntLiteral(0, sp), sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.True(t, bag.HasErrors())
}

func TestBreakInsideWhileAllowed(t *testing.T) {
	loopBody := ast.NewCompoundStmt([]ast.Stmt{ast.NewBreakStmt(sp)}, sp)
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewWhileStmt(ast.NewIntLiteral(1, sp), loopBody, sp),
		ast.NewReturnStmt(ast.NewIntLiteral(0, sp), sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.False(t, bag.HasErrors())
}

func TestUnresolvedGotoReported(t *testing.T) {
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewGotoStmt("nowhere", sp),
		ast.NewReturnStmt(ast.NewIntLiteral(0, sp), sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.True(t, bag.HasErrors())
}

func TestStructMemberAccessResolvesType(t *testing.T) {
	members := []ast.MemberDecl{
		{Name: "a", Type: types.Char.Clone()},
		{Name: "b", Type: types.Int.Clone()},
	}
	structDecl := ast.NewStructDecl("S", members, true, sp)

	sType := &types.Type{BaseName: "S", IsStruct: true}
	varDecl := ast.NewVarDecl("v", sType, nil, types.StorageNone, sp)
	access := ast.NewMemberAccessExpr(ast.NewIdent("v", sp), "b", sp)
	body := ast.NewCompoundStmt([]ast.Stmt{
		varDecl,
		ast.NewReturnStmt(access, sp),
	}, sp)
	fn := ast.NewFunctionDecl("main", types.Int.Clone(), nil, false, body, types.StorageNone, sp)
	prog := ast.NewProgram([]ast.Decl{structDecl, fn}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.False(t, bag.HasErrors())
	require.Equal(t, "int", access.Type().BaseName)
}

func TestSizeofStructIsConstantFoldable(t *testing.T) {
	members := []ast.MemberDecl{
		{Name: "a", Type: types.Char.Clone()},
		{Name: "b", Type: types.Int.Clone()},
		{Name: "c", Type: types.Char.Clone()},
	}
	structDecl := ast.NewStructDecl("S", members, true, sp)
	prog := ast.NewProgram([]ast.Decl{structDecl}, sp)

	c := NewChecker()
	bag := c.Check(prog)
	require.False(t, bag.HasErrors())

	sym := c.Table.FindSymbol(tagKey(symtab.KindStruct, "S"))
	require.NotNil(t, sym)
	require.Equal(t, 12, sym.Size)
}
