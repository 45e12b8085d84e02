package parser

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/lexer"
	"github.com/c2llvm/c2llvm/internal/types"
)

// isTypeStart reports whether curTok could begin a declaration's type
// specifier: a builtin type keyword, a storage-class/qualifier
// keyword, struct/union/enum, or an identifier already known to name
// a typedef.
func (p *Parser) isTypeStart() bool {
	switch p.curTok.Kind {
	case lexer.KwVoid, lexer.KwBool, lexer.KwChar, lexer.KwShort, lexer.KwInt,
		lexer.KwLong, lexer.KwFloat, lexer.KwDouble, lexer.KwSigned, lexer.KwUnsigned,
		lexer.KwStruct, lexer.KwUnion, lexer.KwEnum,
		lexer.KwConst, lexer.KwVolatile, lexer.KwRestrict,
		lexer.KwStatic, lexer.KwExtern, lexer.KwAuto, lexer.KwRegister, lexer.KwTypedef:
		return true
	case lexer.Ident:
		return p.typedefs[p.curTok.Literal]
	}
	return false
}

// specifiers is the accumulated result of scanning a declaration's
// type specifier list, before any declarator (pointer/array/function
// suffix) is applied.
type specifiers struct {
	base    *types.Type
	storage types.StorageClass
	isTypedefDecl bool
}

// parseSpecifiers consumes storage-class keywords, qualifiers, and the
// base-type keywords or struct/union/enum/typedef-name specifier,
// following merge_declaration_specifiers' separation of "what kind of
// thing is this" from "how many pointers/arrays wrap it".
func (p *Parser) parseSpecifiers() specifiers {
	var sawSigned, sawUnsigned, sawShort, sawLong, sawChar, sawInt, sawFloat, sawDouble, sawVoid, sawBool bool
	storage := types.StorageNone
	var tagType *types.Type

loop:
	for {
		switch p.curTok.Kind {
		case lexer.KwStatic:
			storage = types.StorageStatic
			p.next()
		case lexer.KwExtern:
			storage = types.StorageExtern
			p.next()
		case lexer.KwAuto:
			storage = types.StorageAuto
			p.next()
		case lexer.KwRegister:
			storage = types.StorageRegister
			p.next()
		case lexer.KwTypedef:
			storage = types.StorageTypedef
			p.next()
		case lexer.KwConst, lexer.KwVolatile, lexer.KwRestrict:
			p.next()
		case lexer.KwVoid:
			sawVoid = true
			p.next()
		case lexer.KwBool:
			sawBool = true
			p.next()
		case lexer.KwChar:
			sawChar = true
			p.next()
		case lexer.KwShort:
			sawShort = true
			p.next()
		case lexer.KwInt:
			sawInt = true
			p.next()
		case lexer.KwLong:
			sawLong = true
			p.next()
		case lexer.KwFloat:
			sawFloat = true
			p.next()
		case lexer.KwDouble:
			sawDouble = true
			p.next()
		case lexer.KwSigned:
			sawSigned = true
			p.next()
		case lexer.KwUnsigned:
			sawUnsigned = true
			p.next()
		case lexer.KwStruct, lexer.KwUnion, lexer.KwEnum:
			tagType = p.parseTagSpecifier()
			break loop
		case lexer.Ident:
			if p.typedefs[p.curTok.Literal] {
				tagType = types.Basic(p.curTok.Literal)
				p.next()
				break loop
			}
			break loop
		default:
			break loop
		}
	}

	var base *types.Type
	switch {
	case tagType != nil:
		base = tagType
	case sawVoid:
		base = types.Void.Clone()
	case sawBool:
		base = types.Bool.Clone()
	case sawChar:
		if sawUnsigned {
			base = types.Basic("unsigned char")
		} else if sawSigned {
			base = types.Basic("signed char")
		} else {
			base = types.Char.Clone()
		}
	case sawShort:
		if sawUnsigned {
			base = types.Basic("unsigned short")
		} else {
			base = types.Short.Clone()
		}
	case sawLong:
		if sawUnsigned {
			base = types.Basic("unsigned long")
		} else {
			base = types.Long.Clone()
		}
	case sawFloat:
		base = types.Float.Clone()
	case sawDouble:
		base = types.Double.Clone()
	case sawUnsigned:
		base = types.Basic("unsigned int")
	case sawInt:
		base = types.Int.Clone()
	default:
		p.errorf(diag.CodeParserExpectedType, "expected a type specifier")
		base = types.Int.Clone()
	}

	return specifiers{base: base, storage: storage, isTypedefDecl: storage == types.StorageTypedef}
}

// parseTagSpecifier parses `struct Name [{ members }]` (and the union
// / enum equivalents). When a body follows, it also records the
// definition as a pending top-level declaration via p.pendingDecls so
// that a single declaration statement like `struct Point { ... } p;`
// both defines the tag and declares the variable.
func (p *Parser) parseTagSpecifier() *types.Type {
	switch p.curTok.Kind {
	case lexer.KwStruct:
		return p.parseAggregateSpecifier(true)
	case lexer.KwUnion:
		return p.parseAggregateSpecifier(false)
	default:
		return p.parseEnumSpecifier()
	}
}

func (p *Parser) parseAggregateSpecifier(isStruct bool) *types.Type {
	start := p.curTok.Span
	p.next() // consume struct/union
	name := ""
	if p.at(lexer.Ident) {
		name = p.curTok.Literal
		p.next()
	}
	if !p.at(lexer.LBrace) {
		t := types.Basic(name)
		t.IsStruct = isStruct
		t.IsUnion = !isStruct
		return t
	}
	p.next() // consume '{'
	var members []ast.MemberDecl
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		spec := p.parseSpecifiers()
		for {
			decl := p.parseDeclarator(spec.base)
			members = append(members, ast.MemberDecl{Name: decl.name, Type: decl.typ})
			if p.at(lexer.Comma) {
				p.next()
				continue
			}
			break
		}
		p.expect(lexer.Semicolon, "';' after member declaration")
	}
	p.expect(lexer.RBrace, "'}' to close struct/union body")
	if isStruct {
		p.pendingDecls = append(p.pendingDecls, ast.NewStructDecl(name, members, true, start))
	} else {
		p.pendingDecls = append(p.pendingDecls, ast.NewUnionDecl(name, members, true, start))
	}
	if isStruct {
		t := types.Basic(name)
		t.IsStruct = true
		return t
	}
	t := types.Basic(name)
	t.IsUnion = true
	return t
}

func (p *Parser) parseEnumSpecifier() *types.Type {
	start := p.curTok.Span
	p.next() // consume 'enum'
	name := ""
	if p.at(lexer.Ident) {
		name = p.curTok.Literal
		p.next()
	}
	if !p.at(lexer.LBrace) {
		t := types.Basic(name)
		t.IsEnum = true
		return t
	}
	p.next() // consume '{'
	var constants []ast.EnumConstant
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		if !p.at(lexer.Ident) {
			break
		}
		cname := p.curTok.Literal
		p.next()
		var valueExpr ast.Expr
		if p.at(lexer.Assign) {
			p.next()
			valueExpr = p.parseConditional()
		}
		constants = append(constants, ast.EnumConstant{Name: cname, ValueExpr: valueExpr})
		if p.at(lexer.Comma) {
			p.next()
			continue
		}
		break
	}
	p.expect(lexer.RBrace, "'}' to close enum body")
	p.pendingDecls = append(p.pendingDecls, ast.NewEnumDecl(name, constants, true, start))
	t := types.Basic(name)
	t.IsEnum = true
	return t
}

// declarator is the parser's own intermediate declarator value (name,
// pointer level, array-ness, function-ness), merged against a
// specifier's base type via types.MergeDeclarator, following
// original_source/src/ast.h's declarator_t shape.
type declarator struct {
	name     string
	typ      *types.Type
	span     lexer.Span
	isArray  bool
	arrSize  ast.Expr
	isVLA    bool
	isFunc   bool
	params   []*ast.Param
	variadic bool
}

// parseDeclarator reads `*`-pointer prefixes, the declared name, and a
// trailing `[...]` or `(...)` suffix, then merges the pointer depth
// into base (spec's "(added) Declarator resolution").
func (p *Parser) parseDeclarator(base *types.Type) declarator {
	start := p.curTok.Span
	ptr := 0
	for p.at(lexer.Star) {
		ptr++
		p.next()
	}
	name := ""
	if p.at(lexer.Ident) {
		name = p.curTok.Literal
		p.next()
	} else {
		p.errorf(diag.CodeParserUnexpectedToken, "expected declarator name")
	}
	merged := types.MergeDeclarator(base, ptr)

	d := declarator{name: name, typ: merged, span: start}

	switch {
	case p.at(lexer.LBracket):
		p.next()
		d.isArray = true
		if !p.at(lexer.RBracket) {
			d.arrSize = p.parseExpr()
			if _, ok := d.arrSize.(*ast.IntLiteral); !ok {
				d.isVLA = true
			}
		}
		p.expect(lexer.RBracket, "']'")
	case p.at(lexer.LParen):
		p.next()
		d.isFunc = true
		d.params, d.variadic = p.parseParamList()
		p.expect(lexer.RParen, "')'")
	}
	return d
}

// parseParamList parses a function declarator's parameter list,
// `(void)` and an empty `()` both meaning zero parameters, and a
// trailing `, ...` marking the function variadic.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	var params []*ast.Param
	if p.at(lexer.RParen) {
		return params, false
	}
	if p.at(lexer.KwVoid) && p.peekAt(lexer.RParen) {
		p.next()
		return params, false
	}
	variadic := false
	for {
		if p.curTok.Kind == lexer.Dot {
			// '...' is lexed as three separate Dot tokens by this
			// lexer's punctuation scanner; consume all three.
			p.next()
			if p.at(lexer.Dot) {
				p.next()
			}
			if p.at(lexer.Dot) {
				p.next()
			}
			variadic = true
			break
		}
		spec := p.parseSpecifiers()
		d := p.parseDeclarator(spec.base)
		pt := d.typ
		if d.isArray {
			pt = types.PointerTo(types.ElementType(d.typ))
		}
		params = append(params, ast.NewParam(d.name, pt, d.span))
		if p.at(lexer.Comma) {
			p.next()
			continue
		}
		break
	}
	return params, variadic
}
