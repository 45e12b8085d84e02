package types

// Compatible implements the type-compatibility check:
// identical pointer level, identical array flag, identical base-name,
// and identical kind flags.
func Compatible(a, b *Type) bool {
	if a.PointerLevel != b.PointerLevel {
		return false
	}
	if a.IsArray != b.IsArray {
		return false
	}
	if a.BaseName != b.BaseName {
		return false
	}
	return a.IsStruct == b.IsStruct && a.IsUnion == b.IsUnion &&
		a.IsEnum == b.IsEnum && a.IsFunction == b.IsFunction
}

// CanConvertTo implements the implicit-conversion contract:
//   - identical base and pointer level
//   - any arithmetic-to-arithmetic
//   - any pointer-to-void* and vice versa
//   - pointer-to-pointer with identical pointee
//   - array-to-pointer decay for identical element type
func CanConvertTo(from, to *Type) bool {
	if Compatible(from, to) {
		return true
	}
	if IsArithmetic(from) && IsArithmetic(to) {
		return true
	}
	if IsPointer(from) && IsPointer(to) {
		if IsVoid(ptrBase(to)) || IsVoid(ptrBase(from)) {
			return true
		}
		return Compatible(Deref(from), Deref(to))
	}
	if from.IsArray && IsPointer(to) {
		return Compatible(ElementType(from), Deref(to))
	}
	return false
}

// ptrBase strips exactly one pointer level, for void* detection:
// void* yields void, while void** yields void* (it is "pointer to
// void*", not "pointer to void").
func ptrBase(t *Type) *Type {
	cp := t.Clone()
	cp.PointerLevel--
	return cp
}

// PromoteInteger implements integer promotion: any
// integer type narrower than int becomes int; _Bool, char, short and
// enums all promote.
func PromoteInteger(t *Type) *Type {
	if t.PointerLevel > 0 || t.IsArray {
		return t.Clone()
	}
	if t.IsEnum {
		return Int.Clone()
	}
	switch t.BaseName {
	case "_Bool", "char", "signed char", "unsigned char", "short", "unsigned short":
		return Int.Clone()
	default:
		return t.Clone()
	}
}

// UsualArithmeticConversions implements the usual arithmetic
// conversions: the integer case is fully specified
// (long beats int), the floating case is tag-tracked only (double
// beats float beats integer).
func UsualArithmeticConversions(a, b *Type) *Type {
	if a.BaseName == "double" || b.BaseName == "double" {
		return Double.Clone()
	}
	if a.BaseName == "float" || b.BaseName == "float" {
		return Float.Clone()
	}
	pa, pb := PromoteInteger(a), PromoteInteger(b)
	if pa.BaseName == "long" || pb.BaseName == "long" ||
		pa.BaseName == "unsigned long" || pb.BaseName == "unsigned long" {
		if IsUnsigned(pa) || IsUnsigned(pb) {
			return Basic("unsigned long")
		}
		return Long.Clone()
	}
	if IsUnsigned(pa) || IsUnsigned(pb) {
		return Basic("unsigned int")
	}
	return Int.Clone()
}
