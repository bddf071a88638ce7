// Package ir lowers an AST into the linear three-address intermediate
// representation described in spec.md §3/§4.4.
package ir

import (
	"fmt"
	"strings"
)

// Op tags an Instruction's shape. Per the Open Question decided in
// SPEC_FULL.md §9, the IR is a structured tagged record dispatched on
// Op rather than a string re-parsed downstream — String still renders
// the canonical textual form of spec.md §3 for debugging/interop.
type Op int

const (
	// Assign is a plain copy: `target = value`.
	Assign Op = iota
	// Binary computes `target = left op right`.
	Binary
	// Call computes `target = call callee(args...)`.
	Call
	// Label marks a branch target: `label:`.
	Label
	// Goto is an unconditional jump: `goto label`.
	Goto
	// IfGoto branches when cond is non-zero: `if cond goto label`.
	IfGoto
	// IfNotGoto branches when cond is zero: `if not cond goto label`.
	IfNotGoto
	// FunctionStart opens a function body: `function name(params) {`.
	FunctionStart
	// FunctionEnd closes a function body: `}`.
	FunctionEnd
	// Return yields a value from the current function: `return value`.
	Return
	// Print emits a value to the output sink: `print value`.
	Print
)

// Instruction is one line of IR. Not every field is meaningful for
// every Op — see the comment on each Op constant for which fields it
// uses.
type Instruction struct {
	Op       Op
	Target   string   // Assign, Binary, Call: assignment target
	Value    string   // Assign, Return, Print: the value operand
	Left     string   // Binary: left operand
	Right    string   // Binary: right operand
	Operator string   // Binary: +, -, *, /, comparison, or logical operator
	Callee   string   // Call: function name
	Args     []string // Call: argument values, left-to-right
	Cond     string   // IfGoto, IfNotGoto: condition value
	Lbl      string   // Label, Goto, IfGoto, IfNotGoto: label name
	FuncName string   // FunctionStart: function name
	Params   []string // FunctionStart: parameter names
}

// String renders the instruction in the canonical textual form spec.md
// §3 lists, the same shape the source pipeline emits.
func (i Instruction) String() string {
	switch i.Op {
	case Assign:
		return fmt.Sprintf("%s = %s", i.Target, i.Value)
	case Binary:
		return fmt.Sprintf("%s = %s %s %s", i.Target, i.Left, i.Operator, i.Right)
	case Call:
		return fmt.Sprintf("%s = call %s(%s)", i.Target, i.Callee, strings.Join(i.Args, ", "))
	case Label:
		return fmt.Sprintf("%s:", i.Lbl)
	case Goto:
		return fmt.Sprintf("goto %s", i.Lbl)
	case IfGoto:
		return fmt.Sprintf("if %s goto %s", i.Cond, i.Lbl)
	case IfNotGoto:
		return fmt.Sprintf("if not %s goto %s", i.Cond, i.Lbl)
	case FunctionStart:
		return fmt.Sprintf("function %s(%s) {", i.FuncName, strings.Join(i.Params, ", "))
	case FunctionEnd:
		return "}"
	case Return:
		return fmt.Sprintf("return %s", i.Value)
	case Print:
		return fmt.Sprintf("print %s", i.Value)
	default:
		return fmt.Sprintf("<unknown ir.Op %d>", i.Op)
	}
}
