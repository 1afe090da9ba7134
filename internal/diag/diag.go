// Package diag formats scan and parse errors for display on the command
// line: a one-line `Error in <file>:<line>:<col>` header, the offending
// source line, and a caret pointing at the column, following the teacher's
// internal/errors.CompilerError formatter.
package diag

import (
	"fmt"
	"strings"

	"github.com/scarvalhojr/coolc/pkg/token"
)

// Diagnostic is a renderable compiler error: a message tied to a source
// position, with the source text available for caret rendering.
type Diagnostic struct {
	Message string
	Pos     token.Position
	Source  string
}

// New builds a Diagnostic from any error carrying a token.Position; use it
// to wrap *lexer.Error / *parser.Error without diag depending on either
// package.
func New(message string, pos token.Position, source string) *Diagnostic {
	return &Diagnostic{Message: message, Pos: pos, Source: source}
}

// Format renders the diagnostic as a header line, the offending source
// line, and a caret line pointing at the column.
func (d *Diagnostic) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error in %s:%d:%d\n", d.Pos.Filename, d.Pos.Line, d.Pos.Column)
	if line, ok := sourceLine(d.Source, d.Pos.Line); ok {
		lineNumStr := fmt.Sprintf("%d", d.Pos.Line)
		fmt.Fprintf(&sb, "%4s | %s\n", lineNumStr, line)
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", max(len(lineNumStr), 4)+3+col-1))
		sb.WriteString("^\n")
	}
	sb.WriteString(d.Message)
	return sb.String()
}

func sourceLine(source string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}
