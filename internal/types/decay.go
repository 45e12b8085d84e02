package types

// Decay implements array-to-pointer decay: an array-typed expression,
// used anywhere other than as the operand of sizeof or unary &, is
// treated as a pointer to its first element.
func Decay(t *Type) *Type {
	if !t.IsArray {
		return t.Clone()
	}
	elem := ElementType(t)
	return PointerTo(elem)
}
