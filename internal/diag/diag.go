// Package diag formats buric's compiler diagnostics: single-line
// strings for the library's compile() contract (spec.md §6), plus a
// richer caret-pointing rendering adapted from the teacher's
// CompilerError formatter for CLI use.
package diag

import (
	"fmt"
	"strings"

	"github.com/burilang/buric/internal/source"
)

// Kind classifies which pipeline stage raised a Diagnostic.
type Kind int

const (
	// Parse is a grammar mismatch; Message names the farthest position
	// the parser reached before failing.
	Parse Kind = iota
	// Type is an unsatisfiable constraint found during inference.
	Type
	// Codegen is an internal invariant violation: a bug class, not a
	// user error, surfaced with a stable message (spec.md §7).
	Codegen
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "Parse"
	case Type:
		return "Type"
	case Codegen:
		return "Codegen"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single compilation failure: the stage it came from,
// the position it occurred at, the message, and (optionally) the
// source text and file name needed to render a source-context view.
type Diagnostic struct {
	Kind    Kind
	Pos     source.Position
	Message string
	Source  string
	File    string
}

// New builds a Diagnostic for the given stage, position, and message.
func New(kind Kind, pos source.Position, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: message}
}

// WithSource attaches the original source text and file name, enabling
// Format to render a caret-pointing context view.
func (d *Diagnostic) WithSource(src, file string) *Diagnostic {
	d.Source = src
	d.File = file
	return d
}

// Error implements the error interface. For Parse diagnostics this is
// exactly the "Parsing Error: " + message form spec.md §6 mandates;
// for Type and Codegen diagnostics it is the free-form message alone.
func (d *Diagnostic) Error() string {
	if d.Kind == Parse {
		return "Parsing Error: " + d.Message
	}
	return d.Message
}

// Format renders the diagnostic with a source line and caret pointing
// at the failing column, the way the teacher's CompilerError does. It
// is never required by compile()'s contract but is useful for a CLI.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", d.Kind, d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s error at line %d:%d\n", d.Kind, d.Pos.Line, d.Pos.Column)
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteByte('^')
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(d.Error())
	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
