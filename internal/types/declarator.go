package types

// MergeDeclarator combines a declaration's base-type specifier with the
// pointer depth collected while walking a declarator (`int *a`, `int
// **b`, ...), following `original_source/src/ast.h`'s
// merge_declaration_specifiers contract: the declarator only ever adds
// pointer indirection on top of the base type the specifier parsed.
// Array-ness and function-ness are layered on separately by the parser
// once the declarator's name and trailing suffix are known.
func MergeDeclarator(base *Type, pointerLevel int) *Type {
	t := base.Clone()
	t.PointerLevel += pointerLevel
	return t
}
