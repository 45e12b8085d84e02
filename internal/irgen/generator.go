// Package irgen is the LLVM IR emitter: a recursive tree walk over
// internal/ast producing textual SSA-form LLVM IR. It trusts that
// internal/sema has already populated every expression's resolved
// type and never re-derives it; it builds its own internal/symtab.Table
// as it walks so that each symbol's unique IR name and layout are
// available at the point of use. A strings.Builder-backed Generator
// exposes emit/emitGlobal/nextTemp/nextLabel helpers to the rest of the
// package.
package irgen

import (
	"fmt"
	"strings"

	"github.com/c2llvm/c2llvm/internal/ast"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/symtab"
	"github.com/c2llvm/c2llvm/internal/types"
)

// Generator is the per-compilation emission context. It
// is never shared across compilations.
type Generator struct {
	table *symtab.Table
	pool  *stringPool
	bag   *diag.Bag

	out         strings.Builder
	globalDecls strings.Builder

	tempCounter  int
	labelCounter int

	// terminated mirrors basic-block state machine: while
	// true, emit() is a no-op until a label definition clears it.
	terminated bool

	breakLabels    []string
	continueLabels []string

	currentFunctionName string
	currentReturnType   *types.Type

	// ForceEmit mirrors the CLI's -f flag. Generate does not read it:
	// emission is always best-effort, every pass runs, and problems
	// found mid-emission are returned as diagnostics.
	ForceEmit bool
}

// NewGenerator creates an emitter with a fresh, empty symbol table.
func NewGenerator() *Generator {
	return &Generator{
		table: symtab.New(),
		pool:  newStringPool(),
		bag:   &diag.Bag{},
	}
}

// operand is the result of emitting an expression: either a literal
// text (an integer constant, "null", or a previously emitted `%tN`)
// together with its LLVM-level type.
type operand struct {
	text string
	typ  *types.Type
}

func (g *Generator) errorf(code diag.Code, format string, args ...any) {
	g.bag.Errorf(diag.StageIRGen, code, diag.Span{}, format, args...)
}

// Generate runs the four program-level passes of and
// returns the emitted IR text alongside any diagnostics raised during
// best-effort emission.
func (g *Generator) Generate(prog *ast.Program) (string, []diag.Diagnostic) {
	g.genTypeDefinitions(prog)
	g.genExternDeclarations(prog)
	g.genDefinitions(prog)
	g.genStringPool()

	var final strings.Builder
	final.WriteString(g.globalDecls.String())
	final.WriteString(g.out.String())
	return final.String(), g.bag.Diagnostics
}

// emit appends one instruction/statement line to the current
// function's body, unless the current basic block is terminated
//.
func (g *Generator) emit(line string) {
	if g.terminated {
		return
	}
	g.out.WriteString(line)
	g.out.WriteByte('\n')
}

// emitAlways bypasses the terminated check, for label definitions
// and the two structural lines (function open/close) that must
// always appear.
func (g *Generator) emitAlways(line string) {
	g.out.WriteString(line)
	g.out.WriteByte('\n')
}

// emitGlobal appends a module-level line (struct/union type, global
// variable, extern declaration) outside any function body.
func (g *Generator) emitGlobal(line string) {
	g.globalDecls.WriteString(line)
	g.globalDecls.WriteByte('\n')
}

// emitLabel prints a label definition and clears the terminated flag
//.
func (g *Generator) emitLabel(name string) {
	g.emitAlways(name + ":")
	g.terminated = false
}

// nextTemp allocates a fresh SSA temporary name, `%t<n>`.
func (g *Generator) nextTemp() string {
	g.tempCounter++
	return fmt.Sprintf("%%t%d", g.tempCounter)
}

// nextLabel allocates a construct-prefixed, uniquely numbered label
// name, e.g. "if_then3", "while_cond2".
func (g *Generator) nextLabel(prefix string) string {
	g.labelCounter++
	return fmt.Sprintf("%s%d", prefix, g.labelCounter)
}

// pushLoopLabels registers the break/continue targets for a loop
// construct; pushBreakOnly registers just a break target, for a
// switch (which does not establish a continue target of its own).
func (g *Generator) pushLoopLabels(breakLbl, continueLbl string) {
	g.breakLabels = append(g.breakLabels, breakLbl)
	g.continueLabels = append(g.continueLabels, continueLbl)
}

func (g *Generator) popLoopLabels() {
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]
	g.continueLabels = g.continueLabels[:len(g.continueLabels)-1]
}

func (g *Generator) pushBreakOnly(breakLbl string) {
	g.breakLabels = append(g.breakLabels, breakLbl)
}

func (g *Generator) popBreakOnly() {
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]
}

func (g *Generator) currentBreakLabel() (string, bool) {
	if len(g.breakLabels) == 0 {
		return "", false
	}
	return g.breakLabels[len(g.breakLabels)-1], true
}

func (g *Generator) currentContinueLabel() (string, bool) {
	if len(g.continueLabels) == 0 {
		return "", false
	}
	return g.continueLabels[len(g.continueLabels)-1], true
}
