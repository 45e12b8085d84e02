package sema

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// withLayout returns t, or — when t is a by-value struct/union type —
// a clone carrying the tag's already-computed size/alignment, so that
// a struct embedded by value inside a later struct sizes correctly
// without internal/types needing a back-reference into the symbol
// table.
func (c *Checker) withLayout(t *types.Type) *types.Type {
	if t == nil || t.PointerLevel > 0 || t.IsArray {
		return t
	}
	if !t.IsStruct && !t.IsUnion {
		return t
	}
	tagSym := c.resolveAggregateTag(t)
	if tagSym == nil {
		return t
	}
	cp := t.Clone()
	cp.HasResolvedLayout = true
	cp.ResolvedSize = tagSym.Size
	cp.ResolvedAlign = tagSym.Alignment
	return cp
}

// registerTypeDefinitions is the program-level type-definition pass
//: struct/union/enum tags are registered and
// laid out in source order, so a later aggregate that embeds an
// earlier one by value sees its resolved size.
func (c *Checker) registerTypeDefinitions(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			c.registerAggregate(symtab.KindStruct, decl.Name, decl.Members, decl.IsDefinition, decl.Span())
		case *ast.UnionDecl:
			c.registerAggregate(symtab.KindUnion, decl.Name, decl.Members, decl.IsDefinition, decl.Span())
		case *ast.EnumDecl:
			c.registerEnum(decl)
		case *ast.TypedefDecl:
			resolved := c.withLayout(decl.Type)
			if sym, ok := c.Table.AddSymbol(decl.Name, symtab.KindTypedef, resolved); !ok {
				c.errorf(decl.Span(), diag.CodeRedeclaration, "redeclaration of typedef %q", decl.Name)
			} else {
				sym.Type = resolved
			}
		}
	}
}

func (c *Checker) registerAggregate(kind symtab.Kind, name string, members []ast.MemberDecl, isDefinition bool, span lexer.Span) {
	if !isDefinition {
		return
	}
	baseType := &types.Type{BaseName: name, IsStruct: kind == symtab.KindStruct, IsUnion: kind == symtab.KindUnion}
	structSym := &symtab.Symbol{Name: tagKey(kind, name), Kind: kind, Type: baseType}
	if !c.Table.AddSymbolNamed(structSym) {
		c.errorf(span, diag.CodeRedeclaration, "redeclaration of tag %q", name)
		return
	}
	for _, m := range members {
		memberType := c.withLayout(m.Type)
		c.Table.AddStructMember(structSym, &symtab.Symbol{Name: m.Name, Type: memberType, Kind: symtab.KindVariable})
	}
	c.Table.FinalizeLayout(structSym)
}

func (c *Checker) registerEnum(decl *ast.EnumDecl) {
	if !decl.IsDefinition {
		return
	}
	if decl.Name != "" {
		tagSym := &symtab.Symbol{Name: tagKey(symtab.KindEnum, decl.Name), Kind: symtab.KindEnum, Type: &types.Type{BaseName: decl.Name, IsEnum: true}, Size: 4, Alignment: 4}
		c.Table.AddSymbolNamed(tagSym)
	}
	next := 0
	for _, ec := range decl.Constants {
		value := next
		if ec.ValueExpr != nil {
			if v, ok := c.evalConstInt(ec.ValueExpr); ok {
				value = v
			}
		}
		if _, ok := c.Table.AddEnumConstant(ec.Name, value); !ok {
			c.errorf(decl.Span(), diag.CodeRedeclaration, "redeclaration of enum constant %q", ec.Name)
		}
		next = value + 1
	}
}

// evalConstInt folds the small class of constant integer expressions
// C allows in an enumerator (int/char literals, unary - and ~, and +/-/*
// between two already-foldable operands). Anything else is reported
// as unfoldable and the caller falls back to auto-increment.
func (c *Checker) evalConstInt(e ast.Expr) (int, bool) {
	switch x := e.(type) {
	case *ast.IntLiteral:
		return int(x.Value), true
	case *ast.CharLiteral:
		return int(x.Value), true
	case *ast.UnaryExpr:
		v, ok := c.evalConstInt(x.Operand)
		if !ok {
			return 0, false
		}
		switch x.Op {
		case ast.OpNeg:
			return -v, true
		case ast.OpBNot:
			return ^v, true
		}
		return 0, false
	case *ast.BinaryExpr:
		l, ok1 := c.evalConstInt(x.Left)
		r, ok2 := c.evalConstInt(x.Right)
		if !ok1 || !ok2 {
			return 0, false
		}
		switch x.Op {
		case ast.OpAdd:
			return l + r, true
		case ast.OpSub:
			return l - r, true
		case ast.OpMul:
			return l * r, true
		}
	}
	return 0, false
}

// registerDeclarations is the program-level extern-declaration pass
// plus global-variable registration: function
// signatures and globals must all be visible before any function body
// is type-checked, since C allows forward and mutually recursive
// calls.
func (c *Checker) registerDeclarations(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FunctionDecl:
			c.registerFunction(decl)
		case *ast.VarDecl:
			c.registerGlobalVar(decl)
		case *ast.ArrayDecl:
			c.registerGlobalArray(decl)
		}
	}
}

func (c *Checker) registerFunction(decl *ast.FunctionDecl) {
	if existing := c.Table.FindSymbol(decl.Name); existing != nil {
		if existing.Kind == symtab.KindFunction {
			if decl.Body != nil {
				existing.Defined = true
			}
			return
		}
		c.errorf(decl.Span(), diag.CodeRedeclaration, "redeclaration of %q as a different kind of symbol", decl.Name)
		return
	}
	retType := c.withLayout(decl.ReturnType)
	sig := &types.Signature{Variadic: decl.Variadic}
	paramSyms := make([]*symtab.Symbol, len(decl.Params))
	for i, p := range decl.Params {
		pt := c.withLayout(types.Decay(p.Type))
		sig.Params = append(sig.Params, pt)
		paramSyms[i] = &symtab.Symbol{Name: p.Name, Type: pt, Kind: symtab.KindVariable, IsParameter: true}
	}
	fnType := retType.Clone()
	fnType.IsFunction = true
	fnType.Sig = sig
	sym, ok := c.Table.AddSymbol(decl.Name, symtab.KindFunction, fnType)
	if !ok {
		c.errorf(decl.Span(), diag.CodeRedeclaration, "redeclaration of function %q", decl.Name)
		return
	}
	sym.Params = paramSyms
	sym.Variadic = decl.Variadic
	sym.Defined = decl.Body != nil
	sym.IsExtern = decl.Body == nil
}

func (c *Checker) registerGlobalVar(decl *ast.VarDecl) {
	resolved := c.withLayout(decl.Type)
	sym, ok := c.Table.AddSymbol(decl.Name, symtab.KindVariable, resolved)
	if !ok {
		c.errorf(decl.Span(), diag.CodeRedeclaration, "redeclaration of %q", decl.Name)
		return
	}
	sym.IsExtern = decl.Storage == types.StorageExtern
	sym.IsStatic = decl.Storage == types.StorageStatic
	if decl.Init != nil {
		c.checkExpr(decl.Init)
		if !types.CanConvertTo(decl.Init.Type(), resolved) {
			typeMismatch(c, decl.Span(), "global initializer", resolved, decl.Init.Type())
		}
	}
}

func (c *Checker) registerGlobalArray(decl *ast.ArrayDecl) {
	arrType := c.withLayout(decl.Elem).Clone()
	arrType.IsArray = true
	arrType.IsVLA = decl.IsVLA
	if decl.Size != nil {
		if v, ok := c.evalConstInt(decl.Size); ok {
			arrType.ArraySize = v
			arrType.HasArrSize = true
		}
	}
	sym, ok := c.Table.AddSymbol(decl.Name, symtab.KindVariable, arrType)
	if !ok {
		c.errorf(decl.Span(), diag.CodeRedeclaration, "redeclaration of %q", decl.Name)
		return
	}
	sym.IsExtern = decl.Storage == types.StorageExtern
	sym.IsStatic = decl.Storage == types.StorageStatic
}
