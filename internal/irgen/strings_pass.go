package irgen

import "fmt"

// genStringPool is program-level pass 4: append the
// deduplicated string-literal constants collected while emitting
// expressions.
func (g *Generator) genStringPool() {
	for _, entry := range g.pool.order {
		length := len(entry.content) + 1 // + trailing NUL
		g.emitGlobal(fmt.Sprintf("@.str%d = private unnamed_addr constant [%d x i8] c\"%s\"", entry.id, length, escapeString(entry.content)))
	}
}
