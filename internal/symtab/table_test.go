package symtab

import (
	"testing"

	"github.com/c2llvm/c2llvm/internal/types"
	"github.com/stretchr/testify/require"
)

func TestAddSymbolRejectsRedeclarationInSameScope(t *testing.T) {
	tab := New()
	_, ok := tab.AddSymbol("x", KindVariable, types.Int.Clone())
	require.True(t, ok)

	_, ok = tab.AddSymbol("x", KindVariable, types.Int.Clone())
	require.False(t, ok)
}

func TestAddSymbolAllowsShadowingInNestedScope(t *testing.T) {
	tab := New()
	outer, ok := tab.AddSymbol("x", KindVariable, types.Int.Clone())
	require.True(t, ok)

	tab.EnterScope()
	inner, ok := tab.AddSymbol("x", KindVariable, types.Double.Clone())
	require.True(t, ok)
	require.NotEqual(t, outer.LLVMName, inner.LLVMName)

	found := tab.FindSymbol("x")
	require.Same(t, inner, found)

	tab.ExitScope()
	found = tab.FindSymbol("x")
	require.Same(t, outer, found)
}

func TestExitScopeFreesInnerSymbol(t *testing.T) {
	tab := New()
	tab.AddSymbol("x", KindVariable, types.Int.Clone())
	tab.EnterScope()
	tab.AddSymbol("y", KindVariable, types.Int.Clone())
	require.NotNil(t, tab.FindSymbol("y"))
	tab.ExitScope()
	require.Nil(t, tab.FindSymbol("y"))
	require.NotNil(t, tab.FindSymbol("x"))
}

func TestGlobalUniqueNaming(t *testing.T) {
	tab := New()
	a, _ := tab.AddSymbol("counter", KindVariable, types.Int.Clone())
	require.Equal(t, "global.counter.1", a.LLVMName)

	tab.EnterScope()
	tab.AddSymbol("counter", KindVariable, types.Int.Clone())
	tab.ExitScope()

	b, _ := tab.AddSymbol("another", KindVariable, types.Int.Clone())
	require.Equal(t, "global.another.1", b.LLVMName)
}

func TestLocalUniqueNamingIncludesFunctionAndLevel(t *testing.T) {
	tab := New()
	tab.BeginFunction("main")
	tab.EnterScope()
	sym, _ := tab.AddSymbol("i", KindVariable, types.Int.Clone())
	require.Equal(t, "main.i.1.1", sym.LLVMName)
	tab.ExitScope()
}

func TestStructLayoutViaFinalizeLayout(t *testing.T) {
	tab := New()
	structSym := &Symbol{Name: "Point", Kind: KindStruct, Type: &types.Type{BaseName: "Point", IsStruct: true}}
	tab.AddStructMember(structSym, &Symbol{Name: "x", Type: types.Char.Clone()})
	tab.AddStructMember(structSym, &Symbol{Name: "y", Type: types.Int.Clone()})
	tab.AddStructMember(structSym, &Symbol{Name: "z", Type: types.Char.Clone()})
	tab.FinalizeLayout(structSym)

	require.Equal(t, []int{0, 4, 8}, structSym.MemberOffsets)
	require.Equal(t, 12, structSym.Size)
	require.Equal(t, 4, structSym.Alignment)
	require.True(t, structSym.Type.HasResolvedLayout)
	require.Equal(t, 12, structSym.Type.ResolvedSize)

	member := tab.FindStructMember(structSym, "y")
	require.NotNil(t, member)
	require.Equal(t, 4, member.Offset)
	require.Nil(t, tab.FindStructMember(structSym, "nope"))
}

func TestNestedStructSizingUsesResolvedLayout(t *testing.T) {
	tab := New()
	inner := &Symbol{Name: "Inner", Kind: KindStruct, Type: &types.Type{BaseName: "Inner", IsStruct: true}}
	tab.AddStructMember(inner, &Symbol{Name: "a", Type: types.Int.Clone()})
	tab.AddStructMember(inner, &Symbol{Name: "b", Type: types.Char.Clone()})
	tab.FinalizeLayout(inner)
	require.Equal(t, 8, inner.Size)

	outer := &Symbol{Name: "Outer", Kind: KindStruct, Type: &types.Type{BaseName: "Outer", IsStruct: true}}
	tab.AddStructMember(outer, &Symbol{Name: "head", Type: types.Char.Clone()})
	tab.AddStructMember(outer, &Symbol{Name: "nested", Type: inner.Type})
	tab.FinalizeLayout(outer)

	require.Equal(t, 4, outer.MemberOffsets[1])
	require.Equal(t, 12, outer.Size)
}

func TestAddEnumConstant(t *testing.T) {
	tab := New()
	sym, ok := tab.AddEnumConstant("RED", 0)
	require.True(t, ok)
	require.Equal(t, 0, sym.EnumValue)
	require.Equal(t, KindEnumConstant, sym.Kind)
}

func TestLabelsForwardReferenceAndUndefined(t *testing.T) {
	tab := New()
	tab.BeginFunction("f")

	ref := tab.AddLabel("done", false)
	require.False(t, ref.LabelDefined)
	require.Len(t, tab.UndefinedLabels(), 1)

	def := tab.AddLabel("done", true)
	require.Same(t, ref, def)
	require.True(t, def.LabelDefined)
	require.Empty(t, tab.UndefinedLabels())

	require.Same(t, def, tab.FindLabel("done"))
}

func TestBeginFunctionResetsLabels(t *testing.T) {
	tab := New()
	tab.BeginFunction("f")
	tab.AddLabel("loop", true)
	tab.BeginFunction("g")
	require.Nil(t, tab.FindLabel("loop"))
}

func TestNextTempAndLabelCountersMonotonic(t *testing.T) {
	tab := New()
	require.Equal(t, 1, tab.NextTemp())
	require.Equal(t, 2, tab.NextTemp())
	require.Equal(t, 1, tab.NextLabel())
	require.Equal(t, 2, tab.NextLabel())
}
