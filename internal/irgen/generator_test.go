package irgen

import (
	"strings"
	"testing"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/sema"
	"github.com/c2llvm/c2llvm/internal/types"
	"github.com/stretchr/testify/require"
)

func zero() lexer.Span { return lexer.Span{} }

// check runs the checker over prog (so every expression carries a
// resolved type) and fails the test if it reports any error, since
// the generator trusts a clean checker pass.
func check(t *testing.T, prog *ast.Program) {
	t.Helper()
	c := sema.NewChecker()
	bag := c.Check(prog)
	require.False(t, bag.HasErrors(), "unexpected sema errors: %+v", bag.Diagnostics)
}

func generate(t *testing.T, prog *ast.Program) string {
	t.Helper()
	check(t, prog)
	g := NewGenerator()
	ir, diags := g.Generate(prog)
	require.Empty(t, diags)
	return ir
}

// TestPowerOfTwoFunction exercises loop control flow, simple
// assignments, and a returned arithmetic result.
func TestPowerOfTwoFunction(t *testing.T) {
	// int power_of_two(int n) {
	//   int result = 1;
	//   int i = 0;
	//   while (i < n) { result = result * 2; i = i + 1; }
	//   return result;
	// }
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("result", types.Int.Clone(), ast.NewIntLiteral(1, zero()), types.StorageNone, zero()),
		ast.NewVarDecl("i", types.Int.Clone(), ast.NewIntLiteral(0, zero()), types.StorageNone, zero()),
		ast.NewWhileStmt(
			ast.NewBinaryExpr(ast.OpLt, ast.NewIdent("i", zero()), ast.NewIdent("n", zero()), zero()),
			ast.NewCompoundStmt([]ast.Stmt{
				ast.NewExprStmt(ast.NewAssignExpr(
					ast.NewIdent("result", zero()),
					ast.NewBinaryExpr(ast.OpMul, ast.NewIdent("result", zero()), ast.NewIntLiteral(2, zero()), zero()),
					nil, zero()), zero()),
				ast.NewExprStmt(ast.NewAssignExpr(
					ast.NewIdent("i", zero()),
					ast.NewBinaryExpr(ast.OpAdd, ast.NewIdent("i", zero()), ast.NewIntLiteral(1, zero()), zero()),
					nil, zero()), zero()),
			}, zero()),
			zero(),
		),
		ast.NewReturnStmt(ast.NewIdent("result", zero()), zero()),
	}, zero())
	fn := ast.NewFunctionDecl("power_of_two", types.Int.Clone(),
		[]*ast.Param{ast.NewParam("n", types.Int.Clone(), zero())}, false, body, types.StorageNone, zero())
	prog := ast.NewProgram([]ast.Decl{fn}, zero())

	ir := generate(t, prog)
	require.Contains(t, ir, "define i32 @power_of_two(i32 %n)")
	require.Contains(t, ir, "while_cond")
	require.Contains(t, ir, "icmp slt i32")
	require.Contains(t, ir, "mul i32")
	require.Contains(t, ir, "ret i32")
}

// TestArraySumFunction exercises indexing through a pointer parameter
// via GEP, and loop accumulation.
func TestArraySumFunction(t *testing.T) {
	// int array_sum(int *arr, int n) {
	//   int total = 0;
	//   int i = 0;
	//   while (i < n) { total = total + arr[i]; i = i + 1; }
	//   return total;
	// }
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("total", types.Int.Clone(), ast.NewIntLiteral(0, zero()), types.StorageNone, zero()),
		ast.NewVarDecl("i", types.Int.Clone(), ast.NewIntLiteral(0, zero()), types.StorageNone, zero()),
		ast.NewWhileStmt(
			ast.NewBinaryExpr(ast.OpLt, ast.NewIdent("i", zero()), ast.NewIdent("n", zero()), zero()),
			ast.NewCompoundStmt([]ast.Stmt{
				ast.NewExprStmt(ast.NewAssignExpr(
					ast.NewIdent("total", zero()),
					ast.NewBinaryExpr(ast.OpAdd, ast.NewIdent("total", zero()),
						ast.NewArrayAccessExpr(ast.NewIdent("arr", zero()), ast.NewIdent("i", zero()), zero()), zero()),
					nil, zero()), zero()),
				ast.NewExprStmt(ast.NewAssignExpr(
					ast.NewIdent("i", zero()),
					ast.NewBinaryExpr(ast.OpAdd, ast.NewIdent("i", zero()), ast.NewIntLiteral(1, zero()), zero()),
					nil, zero()), zero()),
			}, zero()),
			zero(),
		),
		ast.NewReturnStmt(ast.NewIdent("total", zero()), zero()),
	}, zero())
	fn := ast.NewFunctionDecl("array_sum", types.Int.Clone(),
		[]*ast.Param{
			ast.NewParam("arr", types.PointerTo(types.Int), zero()),
			ast.NewParam("n", types.Int.Clone(), zero()),
		}, false, body, types.StorageNone, zero())
	prog := ast.NewProgram([]ast.Decl{fn}, zero())

	ir := generate(t, prog)
	require.Contains(t, ir, "getelementptr inbounds i32, i32*")
	require.Contains(t, ir, "ret i32")
}

// TestPointerDereferenceFunction exercises unary *.
func TestPointerDereferenceFunction(t *testing.T) {
	// int deref(int *p) { return *p; }
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewReturnStmt(ast.NewDereferenceExpr(ast.NewIdent("p", zero()), zero()), zero()),
	}, zero())
	fn := ast.NewFunctionDecl("deref", types.Int.Clone(),
		[]*ast.Param{ast.NewParam("p", types.PointerTo(types.Int), zero())}, false, body, types.StorageNone, zero())
	prog := ast.NewProgram([]ast.Decl{fn}, zero())

	ir := generate(t, prog)
	require.Contains(t, ir, "load i32, i32*")
	require.Contains(t, ir, "ret i32")
}

// TestShortCircuitOrSideEffect exercises the || lowering: the right
// operand's call must appear only inside the not-short-circuited
// branch, never unconditionally at the top of the function.
func TestShortCircuitOrSideEffect(t *testing.T) {
	// int has_side_effect(); // declared, not defined
	// int check(int a) { return a == 0 || has_side_effect(); }
	decl := ast.NewFunctionDecl("has_side_effect", types.Int.Clone(), nil, false, nil, types.StorageNone, zero())
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewReturnStmt(ast.NewBinaryExpr(ast.OpLOr,
			ast.NewBinaryExpr(ast.OpEq, ast.NewIdent("a", zero()), ast.NewIntLiteral(0, zero()), zero()),
			ast.NewCallExpr("has_side_effect", nil, zero()),
			zero(),
		), zero()),
	}, zero())
	fn := ast.NewFunctionDecl("check", types.Int.Clone(),
		[]*ast.Param{ast.NewParam("a", types.Int.Clone(), zero())}, false, body, types.StorageNone, zero())
	prog := ast.NewProgram([]ast.Decl{decl, fn}, zero())

	ir := generate(t, prog)
	require.Contains(t, ir, "logic_rhs")
	require.Contains(t, ir, "call i32 @has_side_effect()")
	lines := strings.Split(ir, "\n")
	sawCheckDefine := false
	sawRHSLabel := false
	for _, l := range lines {
		if strings.Contains(l, "define i32 @check") {
			sawCheckDefine = true
		}
		if sawCheckDefine && strings.HasPrefix(strings.TrimSpace(l), "logic_rhs") {
			sawRHSLabel = true
		}
		if sawCheckDefine && !sawRHSLabel && strings.Contains(l, "call i32 @has_side_effect()") {
			t.Fatalf("call to has_side_effect emitted before its guarding label: %s", l)
		}
	}
}

// TestStructLayoutSizeof exercises struct member layout and sizeof
// folding to a constant: char,
// int, char should size to 12 with 4-byte struct alignment.
func TestStructLayoutSizeof(t *testing.T) {
	members := []ast.MemberDecl{
		{Name: "a", Type: types.Char.Clone()},
		{Name: "b", Type: types.Int.Clone()},
		{Name: "c", Type: types.Char.Clone()},
	}
	structDecl := ast.NewStructDecl("S", members, true, zero())
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewReturnStmt(ast.NewSizeofType(&types.Type{BaseName: "S", IsStruct: true}, zero()), zero()),
	}, zero())
	fn := ast.NewFunctionDecl("struct_size", types.SizeT.Clone(), nil, false, body, types.StorageNone, zero())
	prog := ast.NewProgram([]ast.Decl{structDecl, fn}, zero())

	ir := generate(t, prog)
	require.Contains(t, ir, "%struct.S = type { i8, i32, i8 }")
	require.Contains(t, ir, "ret i64 12")
}

// TestBreakOutOfNestedLoop exercises break targeting only its
// immediately enclosing loop.
func TestBreakOutOfNestedLoop(t *testing.T) {
	// int find(int limit) {
	//   int i = 0;
	//   while (i < limit) {
	//     int j = 0;
	//     while (j < limit) {
	//       if (j == i) break;
	//       j = j + 1;
	//     }
	//     i = i + 1;
	//   }
	//   return i;
	// }
	innerBody := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewIfStmt(
			ast.NewBinaryExpr(ast.OpEq, ast.NewIdent("j", zero()), ast.NewIdent("i", zero()), zero()),
			ast.NewBreakStmt(zero()), nil, zero(),
		),
		ast.NewExprStmt(ast.NewAssignExpr(
			ast.NewIdent("j", zero()),
			ast.NewBinaryExpr(ast.OpAdd, ast.NewIdent("j", zero()), ast.NewIntLiteral(1, zero()), zero()),
			nil, zero()), zero()),
	}, zero())
	outerBody := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("j", types.Int.Clone(), ast.NewIntLiteral(0, zero()), types.StorageNone, zero()),
		ast.NewWhileStmt(ast.NewBinaryExpr(ast.OpLt, ast.NewIdent("j", zero()), ast.NewIdent("limit", zero()), zero()), innerBody, zero()),
		ast.NewExprStmt(ast.NewAssignExpr(
			ast.NewIdent("i", zero()),
			ast.NewBinaryExpr(ast.OpAdd, ast.NewIdent("i", zero()), ast.NewIntLiteral(1, zero()), zero()),
			nil, zero()), zero()),
	}, zero())
	body := ast.NewCompoundStmt([]ast.Stmt{
		ast.NewVarDecl("i", types.Int.Clone(), ast.NewIntLiteral(0, zero()), types.StorageNone, zero()),
		ast.NewWhileStmt(ast.NewBinaryExpr(ast.OpLt, ast.NewIdent("i", zero()), ast.NewIdent("limit", zero()), zero()), outerBody, zero()),
		ast.NewReturnStmt(ast.NewIdent("i", zero()), zero()),
	}, zero())
	fn := ast.NewFunctionDecl("find", types.Int.Clone(),
		[]*ast.Param{ast.NewParam("limit", types.Int.Clone(), zero())}, false, body, types.StorageNone, zero())
	prog := ast.NewProgram([]ast.Decl{fn}, zero())

	ir := generate(t, prog)
	// Two independent while loops, each with its own end label
	// definition (a line starting with the label name).
	require.Equal(t, 2, strings.Count(ir, "\nwhile_end"))
}
