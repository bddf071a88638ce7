package target

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/ir"
)

var comparisonOps = map[string]OpCode{
	"===": COMPARE_EQ,
	"==":  COMPARE_EQ,
	"!==": COMPARE_NE,
	"!=":  COMPARE_NE,
	">":   COMPARE_GT,
	"<":   COMPARE_LT,
	">=":  COMPARE_GTE,
	"<=":  COMPARE_LTE,
}

var arithOps = map[string]OpCode{
	"+": ADD,
	"-": SUB,
	"*": MUL,
	"/": DIV,
}

var logicalOps = map[string]OpCode{
	"&&": LOGICAL_AND,
	"||": LOGICAL_OR,
}

// Generator lowers IR into a flat Instruction stream. Unlike
// original_source/target_code_generator.py, which re-parses each IR
// line's text to decide what to emit, Generate dispatches by switching
// on ir.Instruction.Op directly — the structured-IR redesign spec.md
// §9 calls for, which removes the substring-matching hazard entirely
// rather than just hiding it.
type Generator struct {
	code []Instruction
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers src into a VM instruction stream.
func Generate(src []ir.Instruction) ([]Instruction, error) {
	g := NewGenerator()
	for _, instr := range src {
		if err := g.lower(instr); err != nil {
			return nil, err
		}
	}
	return g.code, nil
}

func (g *Generator) emit(op OpCode, arg string) {
	g.code = append(g.code, Instruction{Op: op, Arg: arg})
}

func (g *Generator) lower(instr ir.Instruction) error {
	switch instr.Op {
	case ir.Print:
		g.emit(PUSH, instr.Value)
		g.emit(PRINT, "")

	case ir.FunctionEnd:
		g.emit(FUNC_END, "")

	case ir.FunctionStart:
		g.emit(FUNC_DEFINE, instr.FuncName)
		for _, p := range instr.Params {
			g.emit(PARAM, p)
		}
		g.emit(FUNC_START, "")

	case ir.Call:
		for _, arg := range instr.Args {
			g.emit(PUSH, arg)
		}
		g.emit(CALL, instr.Callee)
		g.emit(STORE, instr.Target)

	case ir.Return:
		g.emit(PUSH, instr.Value)
		g.emit(RETURN, "")

	case ir.Assign:
		g.emit(PUSH, instr.Value)
		g.emit(STORE, instr.Target)

	case ir.Binary:
		g.emit(PUSH, instr.Left)
		g.emit(PUSH, instr.Right)
		op, err := g.binaryOpCode(instr.Operator)
		if err != nil {
			return err
		}
		g.emit(op, "")
		g.emit(STORE, instr.Target)

	case ir.IfNotGoto:
		g.emit(PUSH, instr.Cond)
		g.emit(JUMP_IF_FALSE, instr.Lbl)

	case ir.IfGoto:
		g.emit(PUSH, instr.Cond)
		g.emit(JUMP_IF_TRUE, instr.Lbl)

	case ir.Goto:
		g.emit(JUMP, instr.Lbl)

	case ir.Label:
		g.emit(LABEL, instr.Lbl)

	default:
		return fmt.Errorf("target: unreachable ir.Op %d", instr.Op)
	}
	return nil
}

func (g *Generator) binaryOpCode(operator string) (OpCode, error) {
	if op, ok := comparisonOps[operator]; ok {
		return op, nil
	}
	if op, ok := arithOps[operator]; ok {
		return op, nil
	}
	if op, ok := logicalOps[operator]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("target: unrecognized binary operator %q", operator)
}

// Disassemble renders a flat instruction stream back to spec.md §3's
// textual opcode form, one instruction per line, for the CLI's
// --dump flags and for parity with the source pipeline's target_code
// artifact. Grounded on the teacher's disasm.go being a separate file
// from the generator it disassembles.
func Disassemble(code []Instruction) string {
	out := ""
	for _, instr := range code {
		out += instr.String() + "\n"
	}
	return out
}
