package sema

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// checkFunctionBody type-checks one function definition: parameters
// are bound in a fresh scope, the body is walked statement by
// statement, and any goto left unresolved at the end is reported
//.
func (c *Checker) checkFunctionBody(fn *ast.FunctionDecl) {
	c.returnType = fn.ReturnType
	c.Table.BeginFunction(fn.Name)
	c.Table.EnterScope()
	for _, p := range fn.Params {
		pt := c.withLayout(types.Decay(p.Type))
		sym, ok := c.Table.AddSymbol(p.Name, symtab.KindVariable, pt)
		if !ok {
			c.errorf(p.Span(), diag.CodeRedeclaration, "redeclaration of parameter %q", p.Name)
			continue
		}
		sym.IsParameter = true
	}
	c.checkStmt(fn.Body)
	for _, lbl := range c.Table.UndefinedLabels() {
		c.errorf(fn.Body.Span(), diag.CodeUnresolvedGoto, "label %q is never defined", lbl.Name)
	}
	c.Table.ExitScope()
	c.returnType = nil
}

func (c *Checker) checkVarDeclStmt(x *ast.VarDecl) {
	resolved := c.withLayout(x.Type)
	sym, ok := c.Table.AddSymbol(x.Name, symtab.KindVariable, resolved)
	if !ok {
		c.errorf(x.Span(), diag.CodeRedeclaration, "redeclaration of %q", x.Name)
		return
	}
	sym.IsStatic = x.Storage == types.StorageStatic
	sym.IsExtern = x.Storage == types.StorageExtern
	if x.Init != nil {
		initT := c.checkExpr(x.Init)
		if !types.CanConvertTo(types.Decay(initT), resolved) {
			typeMismatch(c, x.Span(), "initializer", resolved, initT)
		}
	}
}

func (c *Checker) checkArrayDeclStmt(x *ast.ArrayDecl) {
	arrType := c.withLayout(x.Elem).Clone()
	arrType.IsArray = true
	arrType.IsVLA = x.IsVLA
	if x.Size != nil {
		c.checkExpr(x.Size)
		if v, ok := c.evalConstInt(x.Size); ok && !x.IsVLA {
			arrType.ArraySize = v
			arrType.HasArrSize = true
		}
	}
	sym, ok := c.Table.AddSymbol(x.Name, symtab.KindVariable, arrType)
	if !ok {
		c.errorf(x.Span(), diag.CodeRedeclaration, "redeclaration of %q", x.Name)
		return
	}
	sym.IsStatic = x.Storage == types.StorageStatic
	sym.IsExtern = x.Storage == types.StorageExtern
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch x := s.(type) {
	case *ast.CompoundStmt:
		c.Table.EnterScope()
		for _, inner := range x.Statements {
			c.checkStmt(inner)
		}
		c.Table.ExitScope()

	case *ast.VarDecl:
		c.checkVarDeclStmt(x)

	case *ast.ArrayDecl:
		c.checkArrayDeclStmt(x)

	case *ast.StructDecl, *ast.UnionDecl, *ast.EnumDecl, *ast.TypedefDecl:
		// Block-scoped tag and typedef declarations are parsed but
		// skipped here: they are not registered, so only file-scope
		// ones can be referred to.

	case *ast.ExprStmt:
		if x.X != nil {
			c.checkExpr(x.X)
		}

	case *ast.EmptyStmt:

	case *ast.IfStmt:
		c.checkExpr(x.Cond)
		c.checkStmt(x.Then)
		if x.Else != nil {
			c.checkStmt(x.Else)
		}

	case *ast.WhileStmt:
		c.checkExpr(x.Cond)
		c.loopDepth++
		c.checkStmt(x.Body)
		c.loopDepth--

	case *ast.ForStmt:
		c.Table.EnterScope()
		if x.Init != nil {
			c.checkStmt(x.Init)
		}
		if x.Cond != nil {
			c.checkExpr(x.Cond)
		}
		if x.Update != nil {
			c.checkExpr(x.Update)
		}
		c.loopDepth++
		c.checkStmt(x.Body)
		c.loopDepth--
		c.Table.ExitScope()

	case *ast.DoWhileStmt:
		c.loopDepth++
		c.checkStmt(x.Body)
		c.loopDepth--
		c.checkExpr(x.Cond)

	case *ast.SwitchStmt:
		c.checkExpr(x.X)
		c.switchDepth++
		c.checkStmt(x.Body)
		c.switchDepth--

	case *ast.CaseStmt:
		c.checkExpr(x.Value)
		c.checkStmt(x.Stmt)

	case *ast.DefaultStmt:
		c.checkStmt(x.Stmt)

	case *ast.BreakStmt:
		if c.loopDepth == 0 && c.switchDepth == 0 {
			c.errorf(x.Span(), diag.CodeMissingBreakContinue, "break statement not within a loop or switch")
		}

	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.errorf(x.Span(), diag.CodeMissingBreakContinue, "continue statement not within a loop")
		}

	case *ast.GotoStmt:
		c.Table.AddLabel(x.Label, false)

	case *ast.LabelStmt:
		c.Table.AddLabel(x.Label, true)
		c.checkStmt(x.Stmt)

	case *ast.ReturnStmt:
		if x.Value != nil {
			vt := c.checkExpr(x.Value)
			if c.returnType != nil && !types.IsVoid(vt) && !types.IsVoid(c.returnType) {
				if !types.CanConvertTo(types.Decay(vt), c.returnType) {
					typeMismatch(c, x.Span(), "return value", c.returnType, vt)
				}
			}
		}
	}
}
