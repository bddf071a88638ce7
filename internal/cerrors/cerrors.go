// Package cerrors formats pipeline errors for display, grounded on the
// teacher's internal/errors package: a source-line-plus-caret
// diagnostic tagged with which pipeline stage produced it.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/mohamedagwa1/fekra/internal/lexer"
)

// Stage names one of the five error-taxonomy categories in spec.md §7.
type Stage string

const (
	Lexical   Stage = "Lexical"
	Syntactic Stage = "Syntactic"
	Semantic  Stage = "Semantic"
	Lowering  Stage = "IR/Lowering"
	Runtime   Stage = "Runtime"
)

// CompilerError wraps a stage-specific error with the source text so it
// can be rendered with a caret pointing at the offending position.
type CompilerError struct {
	Stage   Stage
	Message string
	Source  string
	Pos     lexer.Position
}

// New wraps message as a CompilerError for the given stage and position.
func New(stage Stage, message string, pos lexer.Position, source string) *CompilerError {
	return &CompilerError{Stage: stage, Message: message, Pos: pos, Source: source}
}

func (e *CompilerError) Error() string {
	return e.Format()
}

// Format renders "<stage>: <detail>" followed by the offending source
// line and a caret, per spec.md §6's `{ error: "<kind>: <detail>" }` shape.
func (e *CompilerError) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s (at %d:%d)", e.Stage, e.Message, e.Pos.Line, e.Pos.Column))

	if line := e.sourceLine(e.Pos.Line); line != "" {
		sb.WriteString("\n")
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		sb.WriteString("^")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
