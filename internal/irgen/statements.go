package irgen

import (
	"fmt"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// genStmt dispatches one statement to its emission routine.
func (g *Generator) genStmt(s ast.Stmt) {
	switch x := s.(type) {
	case *ast.CompoundStmt:
		g.table.EnterScope()
		for _, inner := range x.Statements {
			g.genStmt(inner)
		}
		g.table.ExitScope()

	case *ast.VarDecl:
		g.genLocalVarDecl(x)

	case *ast.ArrayDecl:
		g.genLocalArrayDecl(x)

	case *ast.StructDecl, *ast.UnionDecl, *ast.EnumDecl, *ast.TypedefDecl:
		// Block-scoped tag and typedef declarations are parsed but not
		// registered or emitted here; only file-scope ones are.

	case *ast.ExprStmt:
		if x.X != nil {
			g.genExpr(x.X)
		}

	case *ast.EmptyStmt:

	case *ast.IfStmt:
		g.genIf(x)

	case *ast.WhileStmt:
		g.genWhile(x)

	case *ast.ForStmt:
		g.genFor(x)

	case *ast.DoWhileStmt:
		g.genDoWhile(x)

	case *ast.SwitchStmt:
		g.genSwitch(x)

	case *ast.BreakStmt:
		if lbl, ok := g.currentBreakLabel(); ok {
			g.emit(fmt.Sprintf("  br label %%%s", lbl))
			g.terminated = true
		} else {
			g.errorf(diag.CodeMissingBreakContinue, "break statement not within a loop or switch")
		}

	case *ast.ContinueStmt:
		if lbl, ok := g.currentContinueLabel(); ok {
			g.emit(fmt.Sprintf("  br label %%%s", lbl))
			g.terminated = true
		} else {
			g.errorf(diag.CodeMissingBreakContinue, "continue statement not within a loop")
		}

	case *ast.GotoStmt:
		target := g.table.AddLabel(x.Label, false)
		g.emit(fmt.Sprintf("  br label %%%s", target.LLVMName))
		g.terminated = true

	case *ast.LabelStmt:
		target := g.table.AddLabel(x.Label, true)
		if !g.terminated {
			g.emit(fmt.Sprintf("  br label %%%s", target.LLVMName))
		}
		g.emitLabel(target.LLVMName)
		g.genStmt(x.Stmt)

	case *ast.ReturnStmt:
		g.genReturn(x)
	}
}

func (g *Generator) genLocalVarDecl(x *ast.VarDecl) {
	resolved := g.withLayout(x.Type)
	sym, ok := g.table.AddSymbol(x.Name, symtab.KindVariable, resolved)
	if !ok {
		return
	}
	sym.IsStatic = x.Storage == types.StorageStatic
	sym.IsExtern = x.Storage == types.StorageExtern
	lt := llvmType(resolved)
	g.emit(fmt.Sprintf("  %%%s = alloca %s", sym.LLVMName, lt))
	if x.Init != nil {
		val := g.genExpr(x.Init)
		val = g.coerce(val, resolved)
		g.emit(fmt.Sprintf("  store %s %s, %s* %%%s", lt, val.text, lt, sym.LLVMName))
	}
}

func (g *Generator) genLocalArrayDecl(x *ast.ArrayDecl) {
	arrType := g.withLayout(x.Elem).Clone()
	arrType.IsArray = true
	arrType.IsVLA = x.IsVLA

	sym, ok := g.table.AddSymbol(x.Name, symtab.KindVariable, arrType)
	if !ok {
		return
	}
	sym.IsStatic = x.Storage == types.StorageStatic
	sym.IsExtern = x.Storage == types.StorageExtern

	if x.IsVLA {
		sizeOperand := g.genExpr(x.Size)
		elemT := llvmType(types.ElementType(arrType))
		dataSlot := sym.LLVMName + ".data"
		g.emit(fmt.Sprintf("  %%%s = alloca %s, i32 %s", dataSlot, elemT, sizeOperand.text))
		g.emit(fmt.Sprintf("  %%%s = alloca %s*", sym.LLVMName, elemT))
		g.emit(fmt.Sprintf("  store %s* %%%s, %s** %%%s", elemT, dataSlot, elemT, sym.LLVMName))
		return
	}
	if x.Size != nil {
		if v, ok := evalConstInt(x.Size); ok {
			arrType.ArraySize = v
			arrType.HasArrSize = true
		}
	}
	g.emit(fmt.Sprintf("  %%%s = alloca %s", sym.LLVMName, llvmType(arrType)))
}

// genIf lowers an if statement: evaluate condition, convert to
// i1, branch to then/else (or end if no else). Each arm runs in its
// own scope; the end label is printed only if at least one arm falls
// through to it.
func (g *Generator) genIf(x *ast.IfStmt) {
	cond := g.toBool(g.genExpr(x.Cond))
	thenLbl := g.nextLabel("if_then")
	var elseLbl string
	if x.Else != nil {
		elseLbl = g.nextLabel("if_else")
	}
	endLbl := g.nextLabel("if_end")

	target := endLbl
	if x.Else != nil {
		target = elseLbl
	}
	g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", cond.text, thenLbl, target))

	g.emitLabel(thenLbl)
	g.genStmt(x.Then)
	thenTerminated := g.terminated
	if !thenTerminated {
		g.emit(fmt.Sprintf("  br label %%%s", endLbl))
	}

	elseTerminated := false
	if x.Else != nil {
		g.emitLabel(elseLbl)
		g.genStmt(x.Else)
		elseTerminated = g.terminated
		if !elseTerminated {
			g.emit(fmt.Sprintf("  br label %%%s", endLbl))
		}
	}

	if thenTerminated && x.Else != nil && elseTerminated {
		g.terminated = true
		return
	}
	g.emitLabel(endLbl)
}

// genWhile lowers a while loop.
func (g *Generator) genWhile(x *ast.WhileStmt) {
	condLbl := g.nextLabel("while_cond")
	bodyLbl := g.nextLabel("while_body")
	endLbl := g.nextLabel("while_end")

	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", condLbl))
	}
	g.emitLabel(condLbl)
	cond := g.toBool(g.genExpr(x.Cond))
	g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", cond.text, bodyLbl, endLbl))

	g.emitLabel(bodyLbl)
	g.pushLoopLabels(endLbl, condLbl)
	g.genStmt(x.Body)
	g.popLoopLabels()
	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", condLbl))
	}
	g.emitLabel(endLbl)
}

// genFor lowers a for loop: continue targets the update
// label, and the init clause runs in an outer scope so declarations
// there are visible in cond/update/body. A missing condition is
// always-true (the supplemented for(;;) handling).
func (g *Generator) genFor(x *ast.ForStmt) {
	g.table.EnterScope()
	if x.Init != nil {
		g.genStmt(x.Init)
	}

	condLbl := g.nextLabel("for_cond")
	bodyLbl := g.nextLabel("for_body")
	updateLbl := g.nextLabel("for_update")
	endLbl := g.nextLabel("for_end")

	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", condLbl))
	}
	g.emitLabel(condLbl)
	if x.Cond != nil {
		cond := g.toBool(g.genExpr(x.Cond))
		g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", cond.text, bodyLbl, endLbl))
	} else {
		g.emit(fmt.Sprintf("  br label %%%s", bodyLbl))
	}

	g.emitLabel(bodyLbl)
	g.pushLoopLabels(endLbl, updateLbl)
	g.genStmt(x.Body)
	g.popLoopLabels()
	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", updateLbl))
	}

	g.emitLabel(updateLbl)
	if x.Update != nil {
		g.genExpr(x.Update)
	}
	g.emit(fmt.Sprintf("  br label %%%s", condLbl))

	g.emitLabel(endLbl)
	g.table.ExitScope()
}

// genDoWhile lowers a do-while loop: the body runs
// unconditionally before the condition is tested.
func (g *Generator) genDoWhile(x *ast.DoWhileStmt) {
	bodyLbl := g.nextLabel("do_body")
	condLbl := g.nextLabel("do_cond")
	endLbl := g.nextLabel("do_end")

	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", bodyLbl))
	}
	g.emitLabel(bodyLbl)
	g.pushLoopLabels(endLbl, condLbl)
	g.genStmt(x.Body)
	g.popLoopLabels()
	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", condLbl))
	}

	g.emitLabel(condLbl)
	cond := g.toBool(g.genExpr(x.Cond))
	g.emit(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s", cond.text, bodyLbl, endLbl))

	g.emitLabel(endLbl)
}

// genSwitch implements a simplified switch lowering:
// the switch expression is evaluated (for its side effects) and
// control routes unconditionally into the first case/default label;
// case bodies fall through to the next label exactly as C's
// fallthrough semantics dictate unless a break intervenes.
func (g *Generator) genSwitch(x *ast.SwitchStmt) {
	g.genExpr(x.X)
	endLbl := g.nextLabel("switch_end")

	labels := make([]string, len(x.Cases))
	for i, cs := range x.Cases {
		if cs.IsDefault {
			labels[i] = g.nextLabel("switch_default")
		} else {
			labels[i] = g.nextLabel("switch_case")
		}
	}

	stmts := flattenBody(x.Body)
	idx := 0
	if len(labels) > 0 && !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", labels[0]))
	}

	g.pushBreakOnly(endLbl)
	for _, st := range stmts {
		switch cs := st.(type) {
		case *ast.CaseStmt:
			if !g.terminated {
				g.emit(fmt.Sprintf("  br label %%%s", labels[idx]))
			}
			g.emitLabel(labels[idx])
			idx++
			g.genStmt(cs.Stmt)
		case *ast.DefaultStmt:
			if !g.terminated {
				g.emit(fmt.Sprintf("  br label %%%s", labels[idx]))
			}
			g.emitLabel(labels[idx])
			idx++
			g.genStmt(cs.Stmt)
		default:
			g.genStmt(st)
		}
	}
	g.popBreakOnly()

	if !g.terminated {
		g.emit(fmt.Sprintf("  br label %%%s", endLbl))
	}
	g.emitLabel(endLbl)
}

func flattenBody(s ast.Stmt) []ast.Stmt {
	if cs, ok := s.(*ast.CompoundStmt); ok {
		return cs.Statements
	}
	return []ast.Stmt{s}
}

// genReturn lowers a return statement.
func (g *Generator) genReturn(x *ast.ReturnStmt) {
	if x.Value == nil {
		g.emit("  ret void")
		g.terminated = true
		return
	}
	val := g.genExpr(x.Value)
	val = g.coerce(val, g.currentReturnType)
	g.emit(fmt.Sprintf("  ret %s %s", llvmType(g.currentReturnType), val.text))
	g.terminated = true
}
