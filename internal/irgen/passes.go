package irgen

import (
	"fmt"
	"strings"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// withLayout mirrors sema's helper of the same name: a by-value
// struct/union type is stamped with its tag's already-computed
// size/alignment before being handed to a symbol, so a later
// aggregate that embeds this one by value sizes correctly.
func (g *Generator) withLayout(t *types.Type) *types.Type {
	if t == nil || t.PointerLevel > 0 || t.IsArray {
		return t
	}
	if !t.IsStruct && !t.IsUnion {
		return t
	}
	tagSym := g.resolveAggregateTag(t)
	if tagSym == nil {
		return t
	}
	cp := t.Clone()
	cp.HasResolvedLayout = true
	cp.ResolvedSize = tagSym.Size
	cp.ResolvedAlign = tagSym.Alignment
	return cp
}

func tagKey(kind symtab.Kind, name string) string {
	switch kind {
	case symtab.KindStruct:
		return "struct#" + name
	case symtab.KindUnion:
		return "union#" + name
	case symtab.KindEnum:
		return "enum#" + name
	default:
		return name
	}
}

func (g *Generator) resolveAggregateTag(t *types.Type) *symtab.Symbol {
	if t == nil {
		return nil
	}
	switch {
	case t.IsStruct:
		return g.table.FindSymbol(tagKey(symtab.KindStruct, t.BaseName))
	case t.IsUnion:
		return g.table.FindSymbol(tagKey(symtab.KindUnion, t.BaseName))
	}
	return nil
}

// genTypeDefinitions is program-level pass 1: register
// struct/union tags, lay them out, and emit their LLVM type lines in
// source order.
func (g *Generator) genTypeDefinitions(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			g.genAggregate(symtab.KindStruct, decl.Name, decl.Members, decl.IsDefinition)
		case *ast.UnionDecl:
			g.genAggregate(symtab.KindUnion, decl.Name, decl.Members, decl.IsDefinition)
		case *ast.EnumDecl:
			g.genEnum(decl)
		case *ast.TypedefDecl:
			resolved := g.withLayout(decl.Type)
			if sym, ok := g.table.AddSymbol(decl.Name, symtab.KindTypedef, resolved); ok {
				sym.Type = resolved
			}
		}
	}
}

func (g *Generator) genAggregate(kind symtab.Kind, name string, members []ast.MemberDecl, isDefinition bool) {
	if !isDefinition {
		return
	}
	baseType := &types.Type{BaseName: name, IsStruct: kind == symtab.KindStruct, IsUnion: kind == symtab.KindUnion}
	structSym := &symtab.Symbol{Name: tagKey(kind, name), Kind: kind, Type: baseType}
	if !g.table.AddSymbolNamed(structSym) {
		return
	}
	fieldTypes := make([]string, len(members))
	var largest *types.Type
	largestSize := -1
	for i, m := range members {
		memberType := g.withLayout(m.Type)
		g.table.AddStructMember(structSym, &symtab.Symbol{Name: m.Name, Type: memberType, Kind: symtab.KindVariable})
		fieldTypes[i] = llvmType(memberType)
		if s := types.Sizeof(memberType, nil); s > largestSize {
			largestSize = s
			largest = memberType
		}
	}
	g.table.FinalizeLayout(structSym)

	keyword := "%struct." + name
	body := strings.Join(fieldTypes, ", ")
	if kind == symtab.KindUnion {
		keyword = "%union." + name
		// A union's LLVM type carries only its largest member, wrapped
		// in a single-field struct, so the type's own size matches
		// types.UnionLayout's max-member-size bookkeeping instead of
		// the sum every member would otherwise imply.
		body = "i8"
		if largest != nil {
			body = llvmType(largest)
		}
	}
	g.emitGlobal(fmt.Sprintf("%s = type { %s }", keyword, body))
}

func (g *Generator) genEnum(decl *ast.EnumDecl) {
	if !decl.IsDefinition {
		return
	}
	if decl.Name != "" {
		tagSym := &symtab.Symbol{Name: tagKey(symtab.KindEnum, decl.Name), Kind: symtab.KindEnum, Type: &types.Type{BaseName: decl.Name, IsEnum: true}, Size: 4, Alignment: 4}
		g.table.AddSymbolNamed(tagSym)
	}
	next := 0
	for _, ec := range decl.Constants {
		value := next
		if ec.ValueExpr != nil {
			if v, ok := evalConstInt(ec.ValueExpr); ok {
				value = v
			}
		}
		g.table.AddEnumConstant(ec.Name, value)
		next = value + 1
	}
}

// evalConstInt folds the same small constant-expression grammar
// sema.evalConstInt accepts, for enumerator values.
func evalConstInt(e ast.Expr) (int, bool) {
	switch x := e.(type) {
	case *ast.IntLiteral:
		return int(x.Value), true
	case *ast.CharLiteral:
		return int(x.Value), true
	case *ast.UnaryExpr:
		v, ok := evalConstInt(x.Operand)
		if !ok {
			return 0, false
		}
		switch x.Op {
		case ast.OpNeg:
			return -v, true
		case ast.OpBNot:
			return ^v, true
		}
	case *ast.BinaryExpr:
		l, ok1 := evalConstInt(x.Left)
		r, ok2 := evalConstInt(x.Right)
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

// genExternDeclarations is program-level pass 2: register every
// function's signature (so forward and mutually recursive calls
// resolve) and emit a `declare` line for each one without a body.
func (g *Generator) genExternDeclarations(prog *ast.Program) {
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if existing := g.table.FindSymbol(fn.Name); existing != nil {
			if fn.Body != nil {
				existing.Defined = true
			}
			continue
		}
		retType := g.withLayout(fn.ReturnType)
		sig := &types.Signature{Variadic: fn.Variadic}
		paramSyms := make([]*symtab.Symbol, len(fn.Params))
		paramTypes := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			pt := g.withLayout(types.Decay(p.Type))
			sig.Params = append(sig.Params, pt)
			paramSyms[i] = &symtab.Symbol{Name: p.Name, Type: pt, Kind: symtab.KindVariable, IsParameter: true}
			paramTypes[i] = llvmType(pt)
		}
		fnType := retType.Clone()
		fnType.IsFunction = true
		fnType.Sig = sig
		sym, ok := g.table.AddSymbol(fn.Name, symtab.KindFunction, fnType)
		if !ok {
			continue
		}
		sym.Params = paramSyms
		sym.Variadic = fn.Variadic
		sym.Defined = fn.Body != nil
		sym.IsExtern = fn.Body == nil

		if fn.Body == nil {
			params := paramTypes
			if fn.Variadic {
				params = append(append([]string{}, paramTypes...), "...")
			}
			g.emitGlobal(fmt.Sprintf("declare %s @%s(%s)", llvmType(retType), fn.Name, strings.Join(params, ", ")))
		}
	}
}

// genDefinitions is program-level pass 3: emit global variables and
// function definitions in source order.
func (g *Generator) genDefinitions(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.VarDecl:
			g.genGlobalVar(decl)
		case *ast.ArrayDecl:
			g.genGlobalArray(decl)
		case *ast.FunctionDecl:
			if decl.Body != nil {
				g.genFunction(decl)
			}
		}
	}
}
