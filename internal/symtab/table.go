package symtab

import (
	"fmt"

	"github.com/c2llvm/c2llvm/internal/types"
)

// Table is the scope stack for one translation unit's compilation.
// Every compilation owns an independent Table.
type Table struct {
	current *scope
	global  *scope

	scopeCounter int
	tempCounter  int
	labelCounter int
	stringID     int

	globalCounters map[string]int
	localCounters  map[string]int // keyed by "<function>.<name>.<level>"

	currentFunction string
	labels          map[string]*Symbol
}

// New creates a table with an empty global scope already pushed.
func New() *Table {
	g := newScope(0, nil)
	return &Table{
		current:        g,
		global:         g,
		globalCounters: make(map[string]int),
		localCounters:  make(map[string]int),
	}
}

// EnterScope pushes a fresh frame.
func (t *Table) EnterScope() {
	t.scopeCounter++
	t.current = newScope(t.current.level+1, t.current)
}

// ExitScope pops the top frame, freeing every symbol it contained.
func (t *Table) ExitScope() {
	if t.current == t.global {
		return
	}
	popped := t.current
	t.current = popped.parent
	popped.free()
}

// ScopeLevel returns the current nesting depth (0 = global).
func (t *Table) ScopeLevel() int { return t.current.level }

// CurrentFunction returns the function name set by BeginFunction.
func (t *Table) CurrentFunction() string { return t.currentFunction }

// AddSymbol allocates a symbol bound to name in the current scope. It
// returns (nil, false) if name is already bound in the CURRENT scope
//.
func (t *Table) AddSymbol(name string, kind Kind, typ *types.Type) (*Symbol, bool) {
	if t.current.lookupLocal(name) != nil {
		return nil, false
	}
	sym := &Symbol{
		Name:       name,
		Kind:       kind,
		Type:       typ,
		ScopeLevel: t.current.level,
		IsGlobal:   t.current == t.global,
	}
	sym.LLVMName = t.generateUniqueName(name, sym.IsGlobal)
	if kind == KindVariable && typ != nil {
		sym.Size = types.Sizeof(typ, nil)
		sym.Alignment = types.Alignof(typ, nil)
	}
	t.current.insert(sym)
	return sym, true
}

// AddSymbolNamed inserts a pre-built symbol as is, without giving it
// an IR name through generateUniqueName (used for struct/union/enum
// tag symbols).
func (t *Table) AddSymbolNamed(sym *Symbol) bool {
	if t.current.lookupLocal(sym.Name) != nil {
		return false
	}
	sym.ScopeLevel = t.current.level
	t.current.insert(sym)
	return true
}

// FindSymbol walks from the current scope to the global scope,
// returning the first match.
func (t *Table) FindSymbol(name string) *Symbol {
	for s := t.current; s != nil; s = s.parent {
		if sym := s.lookupLocal(name); sym != nil {
			return sym
		}
	}
	return nil
}

// generateUniqueName builds a collision-free IR name:
// "global.<name>.<counter>" for globals, and
// "<function>.<name>.<scope_level>.<counter>" for function-scope
// variables.
func (t *Table) generateUniqueName(name string, isGlobal bool) string {
	if isGlobal {
		t.globalCounters[name]++
		return fmt.Sprintf("global.%s.%d", name, t.globalCounters[name])
	}
	key := fmt.Sprintf("%s.%s.%d", t.currentFunction, name, t.current.level)
	t.localCounters[key]++
	return fmt.Sprintf("%s.%s.%d.%d", t.currentFunction, name, t.current.level, t.localCounters[key])
}

// NextTemp returns the next SSA temporary number.
func (t *Table) NextTemp() int {
	t.tempCounter++
	return t.tempCounter
}

// NextLabel returns the next raw label counter value; callers prefix
// it with a construct-specific name (if_then, while_cond, ...).
func (t *Table) NextLabel() int {
	t.labelCounter++
	return t.labelCounter
}

// NextStringID returns the next string-literal pool id.
func (t *Table) NextStringID() int {
	id := t.stringID
	t.stringID++
	return id
}
