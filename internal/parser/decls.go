package parser

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/types"
)

// parseTopLevelDecl parses one top-level item: a function definition
// or declaration, a global variable/array declaration (possibly
// several comma-separated declarators sharing one specifier list), a
// standalone struct/union/enum definition, or a typedef. It may return
// more than one ast.Decl when the specifier list itself defines a tag.
func (p *Parser) parseTopLevelDecl() []ast.Decl {
	start := p.curTok.Span
	if !p.isTypeStart() {
		p.errorf(diag.CodeParserUnexpectedToken, "expected a declaration")
		p.syncTo(lexer.Semicolon, lexer.RBrace)
		if p.at(lexer.Semicolon) {
			p.next()
		}
		return nil
	}

	spec := p.parseSpecifiers()
	pending := p.drainPending()

	if spec.isTypedefDecl {
		d := p.parseDeclarator(spec.base)
		p.typedefs[d.name] = true
		p.expect(lexer.Semicolon, "';' after typedef")
		return append(pending, ast.NewTypedefDecl(d.name, finishDeclaratorType(d), start))
	}

	// A bare `struct S { ... };` with no declarator: the tag
	// definition collected above is itself the whole declaration.
	if p.at(lexer.Semicolon) {
		p.next()
		return pending
	}

	d := p.parseDeclarator(spec.base)

	if d.isFunc {
		if p.at(lexer.LBrace) {
			body := p.parseCompoundStmt()
			fn := ast.NewFunctionDecl(d.name, spec.base, d.params, d.variadic, body, spec.storage, start)
			return append(pending, fn)
		}
		p.expect(lexer.Semicolon, "';' after function declaration")
		fn := ast.NewFunctionDecl(d.name, spec.base, d.params, d.variadic, nil, spec.storage, start)
		return append(pending, fn)
	}

	decls := pending
	decls = append(decls, p.finishVarOrArrayDecl(d, spec))
	for p.at(lexer.Comma) {
		p.next()
		nd := p.parseDeclarator(spec.base)
		decls = append(decls, p.finishVarOrArrayDecl(nd, spec))
	}
	p.expect(lexer.Semicolon, "';' after declaration")
	return decls
}

// finishDeclaratorType merges a declarator's array-ness (ignoring
// function-ness, which never applies to a typedef target in this
// subset) onto its already pointer-merged type.
func finishDeclaratorType(d declarator) *types.Type {
	if !d.isArray {
		return d.typ
	}
	t := d.typ.Clone()
	t.IsArray = true
	t.IsVLA = d.isVLA
	return t
}

// finishVarOrArrayDecl turns a parsed declarator into the matching
// ast.Decl: ArrayDecl when the declarator had a `[...]` suffix, VarDecl
// otherwise (with an optional `= initializer`).
func (p *Parser) finishVarOrArrayDecl(d declarator, spec specifiers) ast.Decl {
	if d.isArray {
		decl := ast.NewArrayDecl(d.name, d.typ, d.arrSize, d.isVLA, spec.storage, d.span)
		if p.at(lexer.Assign) {
			// Array initializer lists are parsed for syntax but not
			// lowered; ast.ArrayDecl has no slot to carry one.
			p.next()
			p.parseAssignment()
		}
		return decl
	}
	var init ast.Expr
	if p.at(lexer.Assign) {
		p.next()
		init = p.parseAssignment()
	}
	return ast.NewVarDecl(d.name, d.typ, init, spec.storage, d.span)
}
