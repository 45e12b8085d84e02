// Package sema implements the semantic/type-resolution pass of
// : it walks the AST once, resolves identifiers against a
// symtab.Table, populates every expression's resolved type
// (get_expression_type, ), and records every error kind
// lists as a diag.Diagnostic. internal/irgen trusts that an
// expression's Type() is already populated and never re-derives it.
package sema

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// Checker is the semantic-pass driver. One Checker serves exactly one
// translation unit; it owns the symtab.Table built for that
// compilation.
type Checker struct {
	Table *symtab.Table
	bag   *diag.Bag

	returnType *types.Type
	loopDepth  int
	switchDepth int
}

// NewChecker creates a checker over a fresh symbol table.
func NewChecker() *Checker {
	return &Checker{Table: symtab.New(), bag: &diag.Bag{}}
}

// Check walks prog, resolving every expression's type and identifier
// reference, and returns the accumulated diagnostics.
func (c *Checker) Check(prog *ast.Program) *diag.Bag {
	c.registerTypeDefinitions(prog)
	c.registerDeclarations(prog)
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Body != nil {
			c.checkFunctionBody(fn)
		}
	}
	return c.bag
}

func (c *Checker) errorf(span lexer.Span, code diag.Code, format string, args ...any) {
	c.bag.Errorf(diag.StageSema, code, toDiagSpan(span), format, args...)
}

func toDiagSpan(s lexer.Span) diag.Span {
	return diag.Span{Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}

// tagKey builds the symtab lookup key for a struct/union/enum tag.
// Tags live in their own namespace from ordinary identifiers (C's
// separate tag namespace), so `struct S` and a variable `S` do not
// collide.
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

// resolveAggregateTag looks up the tag symbol for a struct/union-typed
// types.Type, regardless of how deep its pointer/array wrapping goes.
func (c *Checker) resolveAggregateTag(t *types.Type) *symtab.Symbol {
	if t == nil {
		return nil
	}
	switch {
	case t.IsStruct:
		return c.Table.FindSymbol(tagKey(symtab.KindStruct, t.BaseName))
	case t.IsUnion:
		return c.Table.FindSymbol(tagKey(symtab.KindUnion, t.BaseName))
	}
	return nil
}

func typeMismatch(c *Checker, span lexer.Span, context string, want, got *types.Type) {
	c.errorf(span, diag.CodeTypeMismatch, "%s: cannot convert %s to %s", context, got.String(), want.String())
}
