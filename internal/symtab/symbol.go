// Package symtab implements the lexical scope stack and symbol table
// described in and §4.2: hash-bucketed scopes, unique
// IR name generation, struct/union member layout, and goto-label
// bookkeeping.
package symtab

import "github.com/c2llvm/c2llvm/internal/types"

// Kind enumerates the symbol kinds lists.
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
	KindTypedef
	KindStruct
	KindUnion
	KindEnum
	KindEnumConstant
	KindLabel
)

// Symbol is one entry in the table: a variable, function, typedef,
// struct/union/enum tag, enum constant, or label.
type Symbol struct {
	Name       string
	LLVMName   string
	Kind       Kind
	Type       *types.Type
	ScopeLevel int

	IsGlobal    bool
	IsParameter bool
	IsStatic    bool
	IsExtern    bool

	Size      int
	Alignment int
	Offset    int

	// Members holds the ordered field list for struct/union symbols.
	Members       []*Symbol
	MemberOffsets []int

	// EnumValue holds the numeric value for an enum-constant symbol.
	EnumValue int

	// Params/Variadic describe a function symbol's signature.
	Params   []*Symbol
	Variadic bool
	Defined  bool // function has a body, vs. a bare declaration

	// LabelDefined tracks whether a goto-target label has been seen
	// at its definition point yet.
	LabelDefined bool

	next *Symbol // hash-bucket chain link
}
