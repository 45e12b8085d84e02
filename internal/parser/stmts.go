package parser

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/lexer"
)

// parseCompoundStmt parses a `{ ... }` block. Each block item may
// expand to more than one statement (a comma-separated declaration
// list), so the block's own statement slice is built by appending
// parseBlockItem's results rather than one node per iteration.
func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	start := p.curTok.Span
	p.expect(lexer.LBrace, "'{'")
	var stmts []ast.Stmt
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		before := p.curTok
		stmts = append(stmts, p.parseBlockItem()...)
		if p.curTok == before {
			p.next()
		}
	}
	p.expect(lexer.RBrace, "'}'")
	return ast.NewCompoundStmt(stmts, start)
}

func (p *Parser) parseBlockItem() []ast.Stmt {
	if p.isTypeStart() {
		return p.parseLocalDecl()
	}
	return []ast.Stmt{p.parseStmt()}
}

// parseLocalDecl handles a declaration appearing as a statement:
// typedefs, comma-separated variable/array declarators, and any
// struct/union/enum tag definition folded into the specifier list.
func (p *Parser) parseLocalDecl() []ast.Stmt {
	start := p.curTok.Span
	spec := p.parseSpecifiers()
	pending := p.drainPending()
	stmts := make([]ast.Stmt, 0, len(pending)+1)
	for _, d := range pending {
		stmts = append(stmts, d.(ast.Stmt))
	}

	if spec.isTypedefDecl {
		d := p.parseDeclarator(spec.base)
		p.typedefs[d.name] = true
		p.expect(lexer.Semicolon, "';' after typedef")
		return append(stmts, ast.NewTypedefDecl(d.name, finishDeclaratorType(d), start))
	}

	if p.at(lexer.Semicolon) {
		p.next()
		return stmts
	}

	d := p.parseDeclarator(spec.base)
	stmts = append(stmts, p.finishVarOrArrayDecl(d, spec).(ast.Stmt))
	for p.at(lexer.Comma) {
		p.next()
		nd := p.parseDeclarator(spec.base)
		stmts = append(stmts, p.finishVarOrArrayDecl(nd, spec).(ast.Stmt))
	}
	p.expect(lexer.Semicolon, "';' after declaration")
	return stmts
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Kind {
	case lexer.LBrace:
		return p.parseCompoundStmt()
	case lexer.Semicolon:
		span := p.curTok.Span
		p.next()
		return ast.NewEmptyStmt(span)
	case lexer.KwIf:
		return p.parseIfStmt()
	case lexer.KwWhile:
		return p.parseWhileStmt()
	case lexer.KwFor:
		return p.parseForStmt()
	case lexer.KwDo:
		return p.parseDoWhileStmt()
	case lexer.KwSwitch:
		return p.parseSwitchStmt()
	case lexer.KwCase:
		return p.parseCaseStmt()
	case lexer.KwDefault:
		return p.parseDefaultStmt()
	case lexer.KwBreak:
		span := p.curTok.Span
		p.next()
		p.expect(lexer.Semicolon, "';' after break")
		return ast.NewBreakStmt(span)
	case lexer.KwContinue:
		span := p.curTok.Span
		p.next()
		p.expect(lexer.Semicolon, "';' after continue")
		return ast.NewContinueStmt(span)
	case lexer.KwGoto:
		span := p.curTok.Span
		p.next()
		label := p.curTok.Literal
		p.expect(lexer.Ident, "label name")
		p.expect(lexer.Semicolon, "';' after goto")
		return ast.NewGotoStmt(label, span)
	case lexer.KwReturn:
		return p.parseReturnStmt()
	case lexer.Ident:
		if p.peekAt(lexer.Colon) {
			return p.parseLabelStmt()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'if'
	p.expect(lexer.LParen, "'(' after if")
	cond := p.parseExpr()
	p.expect(lexer.RParen, "')' after if condition")
	then := p.parseStmt()
	var els ast.Stmt
	if p.at(lexer.KwElse) {
		p.next()
		els = p.parseStmt()
	}
	return ast.NewIfStmt(cond, then, els, start)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'while'
	p.expect(lexer.LParen, "'(' after while")
	cond := p.parseExpr()
	p.expect(lexer.RParen, "')' after while condition")
	body := p.parseStmt()
	return ast.NewWhileStmt(cond, body, start)
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'for'
	p.expect(lexer.LParen, "'(' after for")

	var init ast.Stmt
	if p.at(lexer.Semicolon) {
		p.next()
	} else if p.isTypeStart() {
		items := p.parseLocalDecl()
		if len(items) == 1 {
			init = items[0]
		} else if len(items) > 1 {
			init = ast.NewCompoundStmt(items, items[0].Span())
		}
	} else {
		x := p.parseExpr()
		init = ast.NewExprStmt(x, x.Span())
		p.expect(lexer.Semicolon, "';' after for-init")
	}

	var cond ast.Expr
	if !p.at(lexer.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(lexer.Semicolon, "';' after for-condition")

	var update ast.Expr
	if !p.at(lexer.RParen) {
		update = p.parseExpr()
	}
	p.expect(lexer.RParen, "')' after for-clauses")

	body := p.parseStmt()
	return ast.NewForStmt(init, cond, update, body, start)
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'do'
	body := p.parseStmt()
	p.expect(lexer.KwWhile, "'while' after do-body")
	p.expect(lexer.LParen, "'(' after while")
	cond := p.parseExpr()
	p.expect(lexer.RParen, "')' after do-while condition")
	p.expect(lexer.Semicolon, "';' after do-while")
	return ast.NewDoWhileStmt(body, cond, start)
}

// parseSwitchStmt parses `switch (X) Body`, collecting its case/default
// labels in source order for the generator's simplified lowering.
func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'switch'
	p.expect(lexer.LParen, "'(' after switch")
	x := p.parseExpr()
	p.expect(lexer.RParen, "')' after switch expression")
	body := p.parseStmt()
	cases := collectCaseLabels(body)
	return ast.NewSwitchStmt(x, body, cases, start)
}

func collectCaseLabels(s ast.Stmt) []ast.CaseLabel {
	var labels []ast.CaseLabel
	var walk func(ast.Stmt)
	walk = func(s ast.Stmt) {
		switch x := s.(type) {
		case *ast.CompoundStmt:
			for _, inner := range x.Statements {
				walk(inner)
			}
		case *ast.CaseStmt:
			labels = append(labels, ast.CaseLabel{Value: x.Value})
			walk(x.Stmt)
		case *ast.DefaultStmt:
			labels = append(labels, ast.CaseLabel{IsDefault: true})
			walk(x.Stmt)
		}
	}
	walk(s)
	return labels
}

func (p *Parser) parseCaseStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'case'
	value := p.parseConditional()
	p.expect(lexer.Colon, "':' after case value")
	stmt := p.parseLabelBody()
	return ast.NewCaseStmt(value, stmt, start)
}

func (p *Parser) parseDefaultStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'default'
	p.expect(lexer.Colon, "':' after default")
	stmt := p.parseLabelBody()
	return ast.NewDefaultStmt(stmt, start)
}

// parseLabelBody parses the single statement a case/default label
// attaches to (an empty statement when the label is immediately
// followed by another label or the closing brace, so `case 1: case 2:
// stmt;`-style fallthrough chains parse). Any further statements after
// that one are ordinary siblings in the enclosing switch body, which
// is how internal/irgen's flattened switch lowering expects to find
// them.
func (p *Parser) parseLabelBody() ast.Stmt {
	if p.at(lexer.KwCase) || p.at(lexer.KwDefault) || p.at(lexer.RBrace) {
		return ast.NewEmptyStmt(p.curTok.Span)
	}
	return p.parseStmt()
}

func (p *Parser) parseLabelStmt() ast.Stmt {
	start := p.curTok.Span
	label := p.curTok.Literal
	p.next() // identifier
	p.next() // ':'
	stmt := p.parseStmt()
	return ast.NewLabelStmt(label, stmt, start)
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span
	p.next() // 'return'
	var value ast.Expr
	if !p.at(lexer.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(lexer.Semicolon, "';' after return")
	return ast.NewReturnStmt(value, start)
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curTok.Span
	x := p.parseExpr()
	p.expect(lexer.Semicolon, "';' after expression")
	return ast.NewExprStmt(x, start)
}
