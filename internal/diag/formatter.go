package diag

import (
	"fmt"
	"io"
)

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// Format renders a single diagnostic the way a command-line compiler
// does: "file:line:col: severity: message".
func (d Diagnostic) Format() string {
	file := d.Span.Filename
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, d.Span.Line, d.Span.Column, d.Severity, d.Message)
}

// WriteTo writes every diagnostic in the bag to w, one per line.
func (b *Bag) WriteTo(w io.Writer) {
	for _, d := range b.Diagnostics {
		fmt.Fprintln(w, d.Format())
	}
}
