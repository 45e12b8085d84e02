// Package types implements the type descriptor model described by
// the compiler's front end: base types, pointer levels, array
// dimensions, struct/union/enum tags and function signatures, plus
// the size/alignment and conversion math the rest of the compiler
// depends on.
package types

import (
	"strconv"
	"strings"
)

// StorageClass is one of the C storage-class specifiers.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageAuto
	StorageRegister
	StorageStatic
	StorageExtern
	StorageTypedef
)

func (s StorageClass) String() string {
	switch s {
	case StorageAuto:
		return "auto"
	case StorageRegister:
		return "register"
	case StorageStatic:
		return "static"
	case StorageExtern:
		return "extern"
	case StorageTypedef:
		return "typedef"
	default:
		return "none"
	}
}

// Qualifier is a bitset over the C type qualifiers.
type Qualifier int

const (
	QualNone     Qualifier = 0
	QualConst    Qualifier = 1 << iota
	QualVolatile
	QualRestrict
)

// Signature carries the parameter types and variadic flag for a
// function type.
type Signature struct {
	Params   []*Type
	Variadic bool
}

// Clone returns a deep copy of the signature.
func (s *Signature) Clone() *Signature {
	if s == nil {
		return nil
	}
	params := make([]*Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Clone()
	}
	return &Signature{Params: params, Variadic: s.Variadic}
}

// Type is the type descriptor described in It is a flat
// struct rather than an interface hierarchy: the C subset's type
// algebra is a small fixed product of fields, and every site that
// hands out a type (identifier lookup, get_expression_type, sizeof)
// must hand out an owned copy, never an alias into a symbol's type.
type Type struct {
	// BaseName is one of the builtin keywords ("void", "_Bool",
	// "char", "short", "int", "long", "float", "double",
	// "unsigned char", "unsigned short", "unsigned int", "unsigned
	// long") or the tag name of a struct/union/enum.
	BaseName string

	PointerLevel int

	IsArray    bool
	IsVLA      bool
	ArraySize  int  // compile-time element count, valid when IsArray && !IsVLA
	HasArrSize bool // ArraySize was resolved to a constant

	IsStruct   bool
	IsUnion    bool
	IsEnum     bool
	IsFunction bool

	IsIncomplete bool

	Storage    StorageClass
	Qualifiers Qualifier

	Sig *Signature // non-nil only when IsFunction

	// ResolvedSize/ResolvedAlign cache the outcome of the layout
	// algorithm for struct/union-typed values. internal/types
	// has no notion of a tag->member-table binding (that lives in
	// internal/symtab), so symtab stamps the cache in as soon as a
	// struct/union tag's member list is known, which lets Sizeof/Alignof
	// compute correct nested sizes without a back-reference to the
	// symbol table.
	HasResolvedLayout bool
	ResolvedSize      int
	ResolvedAlign     int
}

// WithResolvedLayout returns a copy of t carrying a cached size/alignment.
func (t *Type) WithResolvedLayout(size, alignment int) *Type {
	cp := t.Clone()
	cp.HasResolvedLayout = true
	cp.ResolvedSize = size
	cp.ResolvedAlign = alignment
	return cp
}

// Clone returns a deep, independently owned copy of t.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Sig = t.Sig.Clone()
	return &cp
}

// Basic constructs an unqualified, non-pointer scalar type.
func Basic(name string) *Type {
	return &Type{BaseName: name}
}

var (
	Void   = Basic("void")
	Bool   = Basic("_Bool")
	Char   = Basic("char")
	Short  = Basic("short")
	Int    = Basic("int")
	Long   = Basic("long")
	Float  = Basic("float")
	Double = Basic("double")
	// SizeT is the type sizeof expressions evaluate to.
	SizeT = Basic("unsigned long")
)

// PointerTo returns a pointer to a copy of elem.
func PointerTo(elem *Type) *Type {
	t := elem.Clone()
	t.PointerLevel++
	return t
}

// Deref returns the pointee type, assuming t.PointerLevel > 0.
func Deref(t *Type) *Type {
	cp := t.Clone()
	if cp.PointerLevel > 0 {
		cp.PointerLevel--
	}
	if cp.PointerLevel == 0 {
		cp.IsArray = false
		cp.IsVLA = false
	}
	return cp
}

// IsPointer reports whether t is a pointer (pointer level takes
// priority over every other flag, per invariant).
func IsPointer(t *Type) bool { return t.PointerLevel > 0 }

// IsVoid reports whether t names void with no pointer/array decoration.
func IsVoid(t *Type) bool {
	return t.BaseName == "void" && t.PointerLevel == 0 && !t.IsArray
}

// IsIntegerBase reports whether the base name alone (ignoring
// pointer/array) is an integer arithmetic type.
func IsIntegerBase(t *Type) bool {
	if t.PointerLevel > 0 || t.IsArray || t.IsStruct || t.IsUnion || t.IsFunction {
		return false
	}
	if t.IsEnum {
		return true
	}
	switch t.BaseName {
	case "_Bool", "char", "signed char", "unsigned char",
		"short", "unsigned short",
		"int", "unsigned int", "unsigned",
		"long", "unsigned long":
		return true
	}
	return false
}

// IsFloatingBase reports whether the base name is float or double.
func IsFloatingBase(t *Type) bool {
	if t.PointerLevel > 0 || t.IsArray {
		return false
	}
	return t.BaseName == "float" || t.BaseName == "double"
}

// IsArithmetic reports whether t participates in arithmetic
// conversions (integer or floating, scalar).
func IsArithmetic(t *Type) bool {
	return IsIntegerBase(t) || IsFloatingBase(t)
}

// IsUnsigned reports whether an integer base type is unsigned.
func IsUnsigned(t *Type) bool {
	return strings.HasPrefix(t.BaseName, "unsigned") || t.BaseName == "_Bool"
}

// ElementType returns the element type of an array or pointer type
// (one array/pointer level removed), used for array indexing and
// pointer arithmetic.
func ElementType(t *Type) *Type {
	if t.PointerLevel > 0 {
		return Deref(t)
	}
	cp := t.Clone()
	cp.IsArray = false
	cp.IsVLA = false
	cp.HasArrSize = false
	return cp
}

// String renders a human-readable type name, used in diagnostics.
func (t *Type) String() string {
	var b strings.Builder
	b.WriteString(t.BaseName)
	for i := 0; i < t.PointerLevel; i++ {
		b.WriteByte('*')
	}
	if t.IsArray {
		if t.HasArrSize {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(t.ArraySize))
			b.WriteString("]")
		} else {
			b.WriteString("[]")
		}
	}
	return b.String()
}
