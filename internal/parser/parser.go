// Package parser implements a hand-written recursive-descent parser
// for the C subset described by internal/ast: it turns a token stream
// from internal/lexer directly into internal/ast nodes, with no
// separate concrete syntax tree, using a curTok/peekTok lookahead window, an
// append-only diagnostics accumulator, and panic-free error recovery
// that lets ParseProgram always return a best-effort tree).
package parser

import (
	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/lexer"
)

// Parser holds the token lookahead window and the typedef-name set
// needed to disambiguate `Ident Ident` as a declaration instead of an
// expression statement (the parser has no symbol table of its own, so
// it tracks this one narrow slice of what internal/sema would
// otherwise resolve).
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	filename string
	bag      *diag.Bag

	typedefs map[string]bool

	// pendingDecls accumulates struct/union/enum definitions parsed
	// out of a specifier list (`struct Point { ... } origin;`) so the
	// caller can splice them into the declaration list ahead of
	// whatever declarator follows.
	pendingDecls []ast.Decl
}

// drainPending returns and clears any tag definitions collected while
// parsing the most recent specifier list.
func (p *Parser) drainPending() []ast.Decl {
	pending := p.pendingDecls
	p.pendingDecls = nil
	return pending
}

// New creates a parser over source, attributing diagnostics to filename.
func New(source, filename string) *Parser {
	p := &Parser{
		lx:       lexer.New(source),
		filename: filename,
		bag:      &diag.Bag{},
		typedefs: make(map[string]bool),
	}
	p.next()
	p.next()
	return p
}

// Diagnostics returns every parse error accumulated so far.
func (p *Parser) Diagnostics() *diag.Bag { return p.bag }

func (p *Parser) next() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.Next()
}

func (p *Parser) at(k lexer.TokenKind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekAt(k lexer.TokenKind) bool { return p.peekTok.Kind == k }

// expect advances past curTok if it matches k, else records a
// diagnostic and leaves curTok in place for the caller's recovery.
func (p *Parser) expect(k lexer.TokenKind, what string) bool {
	if p.curTok.Kind == k {
		p.next()
		return true
	}
	p.errorf(diag.CodeParserUnexpectedToken, "expected %s", what)
	return false
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	p.bag.Errorf(diag.StageParser, code, diag.Span{
		Filename: p.filename,
		Line:     p.curTok.Span.Line,
		Column:   p.curTok.Span.Column,
		Start:    p.curTok.Span.Start,
		End:      p.curTok.Span.End,
	}, format, args...)
}

// syncTo skips tokens until one in kinds (inclusive) or EOF, so a
// malformed declaration doesn't cascade into spurious errors for the
// rest of the file.
func (p *Parser) syncTo(kinds ...lexer.TokenKind) {
	for !p.at(lexer.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.next()
	}
}

// ParseProgram parses a full translation unit.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.curTok.Span
	var decls []ast.Decl
	for !p.at(lexer.EOF) {
		before := p.curTok
		ds := p.parseTopLevelDecl()
		decls = append(decls, ds...)
		if p.curTok == before {
			// parseTopLevelDecl made no progress; force one token so
			// the loop always terminates.
			p.next()
		}
	}
	return ast.NewProgram(decls, start)
}
