package parser

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/types"
)

// parseExpr is the expression entry point used wherever a single
// expression (not a declaration) is expected.
func (p *Parser) parseExpr() ast.Expr { return p.parseAssignment() }

var compoundAssignOps = map[lexer.TokenKind]ast.BinaryOpKind{
	lexer.PlusAssign:    ast.OpAdd,
	lexer.MinusAssign:   ast.OpSub,
	lexer.StarAssign:    ast.OpMul,
	lexer.SlashAssign:   ast.OpDiv,
	lexer.PercentAssign: ast.OpMod,
	lexer.AmpAssign:     ast.OpBAnd,
	lexer.PipeAssign:    ast.OpBOr,
	lexer.CaretAssign:   ast.OpBXor,
	lexer.ShlAssign:     ast.OpShl,
	lexer.ShrAssign:     ast.OpShr,
}

// parseAssignment handles `=` and the compound-assignment operators,
// right-associatively, falling through to the ternary conditional for
// anything that isn't followed by an assignment operator.
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseConditional()

	if p.at(lexer.Assign) {
		start := left.Span()
		p.next()
		value := p.parseAssignment()
		return ast.NewAssignExpr(left, value, nil, start)
	}
	if op, ok := compoundAssignOps[p.curTok.Kind]; ok {
		start := left.Span()
		p.next()
		value := p.parseAssignment()
		o := op
		return ast.NewAssignExpr(left, value, &o, start)
	}
	return left
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseLogicalOr()
	if !p.at(lexer.Question) {
		return cond
	}
	start := cond.Span()
	p.next()
	then := p.parseExpr()
	p.expect(lexer.Colon, "':' in conditional expression")
	els := p.parseConditional()
	return ast.NewConditionalExpr(cond, then, els, start)
}

// parseLeftAssoc chains one precedence tier: next parses the
// tighter-binding level, and ops lists the token kinds this tier
// accepts, left-associatively.
func (p *Parser) parseLeftAssoc(ops map[lexer.TokenKind]ast.BinaryOpKind, next func() ast.Expr) ast.Expr {
	left := next()
	for {
		op, ok := ops[p.curTok.Kind]
		if !ok {
			return left
		}
		start := left.Span()
		p.next()
		right := next()
		left = ast.NewBinaryExpr(op, left, right, start)
	}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{lexer.OrOr: ast.OpLOr}, p.parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{lexer.AndAnd: ast.OpLAnd}, p.parseBitOr)
}

func (p *Parser) parseBitOr() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{lexer.Pipe: ast.OpBOr}, p.parseBitXor)
}

func (p *Parser) parseBitXor() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{lexer.Caret: ast.OpBXor}, p.parseBitAnd)
}

func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{lexer.Amp: ast.OpBAnd}, p.parseEquality)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{
		lexer.Eq: ast.OpEq, lexer.Ne: ast.OpNe,
	}, p.parseRelational)
}

func (p *Parser) parseRelational() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{
		lexer.Lt: ast.OpLt, lexer.Le: ast.OpLe, lexer.Gt: ast.OpGt, lexer.Ge: ast.OpGe,
	}, p.parseShift)
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{
		lexer.Shl: ast.OpShl, lexer.Shr: ast.OpShr,
	}, p.parseAdditive)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{
		lexer.Plus: ast.OpAdd, lexer.Minus: ast.OpSub,
	}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseLeftAssoc(map[lexer.TokenKind]ast.BinaryOpKind{
		lexer.Star: ast.OpMul, lexer.Slash: ast.OpDiv, lexer.Percent: ast.OpMod,
	}, p.parseUnary)
}

// parseUnary handles prefix operators, casts, sizeof, and pre-inc/dec,
// falling through to parsePostfix for everything else.
func (p *Parser) parseUnary() ast.Expr {
	start := p.curTok.Span
	switch p.curTok.Kind {
	case lexer.Minus:
		p.next()
		return ast.NewUnaryExpr(ast.OpNeg, p.parseUnary(), start)
	case lexer.Bang:
		p.next()
		return ast.NewUnaryExpr(ast.OpNot, p.parseUnary(), start)
	case lexer.Tilde:
		p.next()
		return ast.NewUnaryExpr(ast.OpBNot, p.parseUnary(), start)
	case lexer.Amp:
		p.next()
		return ast.NewAddressOfExpr(p.parseUnary(), start)
	case lexer.Star:
		p.next()
		return ast.NewDereferenceExpr(p.parseUnary(), start)
	case lexer.Inc:
		p.next()
		return ast.NewIncDecExpr(ast.PreInc, p.parseUnary(), start)
	case lexer.Dec:
		p.next()
		return ast.NewIncDecExpr(ast.PreDec, p.parseUnary(), start)
	case lexer.KwSizeof:
		return p.parseSizeof()
	case lexer.LParen:
		if p.peekIsTypeStart() {
			p.next() // consume '('
			spec := p.parseSpecifiers()
			target := p.parseAbstractTypeSuffix(spec.base)
			p.expect(lexer.RParen, "')' after cast type")
			return ast.NewCastExpr(target, p.parseUnary(), start)
		}
	}
	return p.parsePostfix()
}

// peekIsTypeStart reports whether the token after the current '(' can
// begin a type-name, used to disambiguate a cast from a parenthesized
// expression.
func (p *Parser) peekIsTypeStart() bool {
	switch p.peekTok.Kind {
	case lexer.KwVoid, lexer.KwBool, lexer.KwChar, lexer.KwShort, lexer.KwInt,
		lexer.KwLong, lexer.KwFloat, lexer.KwDouble, lexer.KwSigned, lexer.KwUnsigned,
		lexer.KwStruct, lexer.KwUnion, lexer.KwEnum,
		lexer.KwConst, lexer.KwVolatile, lexer.KwRestrict:
		return true
	case lexer.Ident:
		return p.typedefs[p.peekTok.Literal]
	}
	return false
}

// parseAbstractTypeSuffix reads the `*`/`[]` suffix of a cast or
// sizeof type-name, which never carries a declared identifier:
// `(int *)`, `(char[4])`, `(struct Point *)`.
func (p *Parser) parseAbstractTypeSuffix(base *types.Type) *types.Type {
	t := base
	for p.at(lexer.Star) {
		t = types.MergeDeclarator(t, 1)
		p.next()
	}
	if p.at(lexer.LBracket) {
		p.next()
		if !p.at(lexer.RBracket) {
			p.parseExpr()
		}
		p.expect(lexer.RBracket, "']'")
		arr := t.Clone()
		arr.IsArray = true
		t = arr
	}
	return t
}

func (p *Parser) parseSizeof() ast.Expr {
	start := p.curTok.Span
	p.next() // 'sizeof'
	if p.at(lexer.LParen) && p.peekIsTypeStart() {
		p.next() // consume '('
		spec := p.parseSpecifiers()
		target := p.parseAbstractTypeSuffix(spec.base)
		p.expect(lexer.RParen, "')' after sizeof type")
		return ast.NewSizeofType(target, start)
	}
	x := p.parseUnary()
	return ast.NewSizeofExpr(x, start)
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		start := x.Span()
		switch p.curTok.Kind {
		case lexer.LBracket:
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.RBracket, "']'")
			x = ast.NewArrayAccessExpr(x, idx, start)
		case lexer.Dot:
			p.next()
			name := p.curTok.Literal
			p.expect(lexer.Ident, "member name after '.'")
			x = ast.NewMemberAccessExpr(x, name, start)
		case lexer.Arrow:
			p.next()
			name := p.curTok.Literal
			p.expect(lexer.Ident, "member name after '->'")
			x = ast.NewPtrMemberAccessExpr(x, name, start)
		case lexer.Inc:
			p.next()
			x = ast.NewIncDecExpr(ast.PostInc, x, start)
		case lexer.Dec:
			p.next()
			x = ast.NewIncDecExpr(ast.PostDec, x, start)
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.curTok.Span
	switch p.curTok.Kind {
	case lexer.Ident:
		name := p.curTok.Literal
		p.next()
		if p.at(lexer.LParen) {
			return p.parseCallExpr(name, start)
		}
		return ast.NewIdent(name, start)
	case lexer.IntLiteral:
		v := p.curTok.IntVal
		p.next()
		return ast.NewIntLiteral(v, start)
	case lexer.CharLiteral:
		v := byte(p.curTok.IntVal)
		p.next()
		return ast.NewCharLiteral(v, start)
	case lexer.StringLiteral:
		s := p.curTok.Literal
		p.next()
		return ast.NewStringLiteral(s, start)
	case lexer.LParen:
		p.next()
		x := p.parseExpr()
		p.expect(lexer.RParen, "')'")
		return x
	case lexer.LBrace:
		return p.parseInitializerList()
	}
	p.errorf(diag.CodeParserUnexpectedToken, "expected an expression")
	p.next()
	return ast.NewIntLiteral(0, start)
}

func (p *Parser) parseCallExpr(callee string, start lexer.Span) ast.Expr {
	p.next() // consume '('
	var args []ast.Expr
	if !p.at(lexer.RParen) {
		args = append(args, p.parseAssignment())
		for p.at(lexer.Comma) {
			p.next()
			args = append(args, p.parseAssignment())
		}
	}
	p.expect(lexer.RParen, "')' after call arguments")
	return ast.NewCallExpr(callee, args, start)
}

func (p *Parser) parseInitializerList() ast.Expr {
	start := p.curTok.Span
	p.next() // consume '{'
	var values []ast.Expr
	if !p.at(lexer.RBrace) {
		values = append(values, p.parseAssignment())
		for p.at(lexer.Comma) {
			p.next()
			if p.at(lexer.RBrace) {
				break
			}
			values = append(values, p.parseAssignment())
		}
	}
	p.expect(lexer.RBrace, "'}' to close initializer list")
	return ast.NewInitializerListExpr(values, start)
}
