package irgen

import (
	"strconv"
	"strings"

	"github.com/c2llvm/c2llvm/internal/types"
)

// llvmType renders t as the LLVM textual type type-name
// mapping prescribes: basic types map to their fixed-width integer or
// float keyword, struct/union tags map to "%struct.<tag>"/"%union.<tag>",
// enums map to i32, and each pointer level appends one "*".
func llvmType(t *types.Type) string {
	base := llvmBaseType(t)
	if t.PointerLevel > 0 {
		return base + strings.Repeat("*", t.PointerLevel)
	}
	if t.IsArray && t.HasArrSize && !t.IsVLA {
		elem := types.ElementType(t)
		return "[" + strconv.Itoa(t.ArraySize) + " x " + llvmType(elem) + "]"
	}
	return base
}

func llvmBaseType(t *types.Type) string {
	switch {
	case t.IsStruct:
		return "%struct." + t.BaseName
	case t.IsUnion:
		return "%union." + t.BaseName
	case t.IsEnum:
		return "i32"
	}
	switch t.BaseName {
	case "void":
		return "void"
	case "_Bool":
		return "i1"
	case "char", "signed char", "unsigned char":
		return "i8"
	case "short", "unsigned short":
		return "i16"
	case "int", "unsigned int", "unsigned":
		return "i32"
	case "long", "unsigned long":
		return "i64"
	case "float":
		return "float"
	case "double":
		return "double"
	default:
		return "i32"
	}
}
