package types

// Member describes one struct/union field for layout purposes. The
// symtab package owns the authoritative member list on a struct/union
// symbol; this lightweight view is what the layout algorithm consumes
// so that internal/types has no dependency on internal/symtab.
type Member struct {
	Name string
	Type *Type
}

// Sizeof returns the size in bytes of t. Aggregate sizes (struct,
// union) must be supplied via members because internal/types does not
// itself track tag->member bindings; callers pass nil for non-aggregate
// types.
func Sizeof(t *Type, members []Member) int {
	if t.PointerLevel > 0 {
		return 8
	}
	if t.IsArray {
		if t.IsVLA || !t.HasArrSize {
			return 8 // VLA/unknown-length arrays are pointer-sized for storage
		}
		elem := ElementType(t)
		return Sizeof(elem, nil) * t.ArraySize
	}
	if t.IsStruct || t.IsUnion {
		if t.HasResolvedLayout {
			return t.ResolvedSize
		}
		if t.IsStruct {
			size, _ := StructLayout(members)
			return size
		}
		size, _ := UnionLayout(members)
		return size
	}
	if t.IsEnum {
		return 4
	}
	return basicSize(t.BaseName)
}

// Alignof returns the alignment in bytes of t.
func Alignof(t *Type, members []Member) int {
	if t.PointerLevel > 0 {
		return 8
	}
	if t.IsArray {
		if t.IsVLA || !t.HasArrSize {
			return 8
		}
		return Alignof(ElementType(t), nil)
	}
	if t.IsStruct || t.IsUnion {
		if t.HasResolvedLayout {
			return t.ResolvedAlign
		}
		if t.IsStruct {
			_, align := StructLayout(members)
			return align
		}
		_, align := UnionLayout(members)
		return align
	}
	if t.IsEnum {
		return 4
	}
	return basicSize(t.BaseName)
}

func basicSize(base string) int {
	switch base {
	case "_Bool", "char", "signed char", "unsigned char":
		return 1
	case "short", "unsigned short":
		return 2
	case "int", "unsigned int", "unsigned", "float":
		return 4
	case "long", "unsigned long", "double":
		return 8
	default:
		return 0
	}
}

// align rounds offset up to the next multiple of alignment.
func align(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}

// MemberOffsets is the declaration-order result of StructLayout: the
// byte offset assigned to each member, parallel to the members slice.
type MemberOffsets []int

// StructLayout computes a struct's size and alignment following
// declaration order: each member is placed at the next offset that is
// a multiple of its own alignment, and the struct's final size is
// rounded up to its own alignment (the maximum member alignment). A
// zero-member struct has size 0, alignment 1.
func StructLayout(members []Member) (size, alignment int) {
	offsets, size, alignment := StructOffsets(members)
	_ = offsets
	return size, alignment
}

// StructOffsets computes per-member offsets alongside the struct's
// total size and alignment.
func StructOffsets(members []Member) (offsets MemberOffsets, size, alignment int) {
	if len(members) == 0 {
		return nil, 0, 1
	}
	offsets = make(MemberOffsets, len(members))
	offset := 0
	maxAlign := 1
	for i, m := range members {
		ma := Alignof(m.Type, nil)
		if ma > maxAlign {
			maxAlign = ma
		}
		offset = align(offset, ma)
		offsets[i] = offset
		offset += Sizeof(m.Type, nil)
	}
	size = align(offset, maxAlign)
	return offsets, size, maxAlign
}

// UnionLayout computes a union's size (max member size rounded to max
// member alignment) and alignment (max member alignment). Every
// member has offset 0.
func UnionLayout(members []Member) (size, alignment int) {
	if len(members) == 0 {
		return 0, 1
	}
	maxSize := 0
	maxAlign := 1
	for _, m := range members {
		if s := Sizeof(m.Type, nil); s > maxSize {
			maxSize = s
		}
		if a := Alignof(m.Type, nil); a > maxAlign {
			maxAlign = a
		}
	}
	return align(maxSize, maxAlign), maxAlign
}
