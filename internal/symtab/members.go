package symtab

import "github.com/c2llvm/c2llvm/internal/types"

// AddStructMember appends member to structSym's field list and
// recomputes the aggregate's size, alignment, and per-member offsets
// using the declaration-order layout algorithm.
// Call it once per member, in declaration order, then call
// FinalizeLayout once the member list is complete.
func (t *Table) AddStructMember(structSym *Symbol, member *Symbol) {
	structSym.Members = append(structSym.Members, member)
	t.FinalizeLayout(structSym)
}

// FinalizeLayout computes size/alignment/offsets for a struct or union
// symbol from its accumulated Members, and stamps the resolved layout
// onto structSym.Type so that any outer aggregate embedding this one
// by value can size itself without re-walking the member list (see
// types.Type.HasResolvedLayout).
func (t *Table) FinalizeLayout(structSym *Symbol) {
	members := make([]types.Member, len(structSym.Members))
	for i, m := range structSym.Members {
		members[i] = types.Member{Name: m.Name, Type: m.Type}
	}

	var size, alignment int
	if structSym.Kind == KindUnion {
		size, alignment = types.UnionLayout(members)
		structSym.MemberOffsets = make([]int, len(members))
	} else {
		offsets, sz, al := types.StructOffsets(members)
		structSym.MemberOffsets = offsets
		size, alignment = sz, al
	}
	structSym.Size = size
	structSym.Alignment = alignment
	for i, m := range structSym.Members {
		m.Offset = structSym.MemberOffsets[i]
	}
	if structSym.Type != nil {
		structSym.Type = structSym.Type.WithResolvedLayout(size, alignment)
	}
}

// FindStructMember linearly scans structSym's member list for name
//.
func (t *Table) FindStructMember(structSym *Symbol, name string) *Symbol {
	for _, m := range structSym.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AddEnumConstant binds name to value as a global enum-constant symbol.
func (t *Table) AddEnumConstant(name string, value int) (*Symbol, bool) {
	sym, ok := t.AddSymbol(name, KindEnumConstant, types.Int.Clone())
	if !ok {
		return nil, false
	}
	sym.EnumValue = value
	return sym, true
}
