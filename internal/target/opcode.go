// Package target lowers the IR into the flat stack-machine instruction
// stream the VM executes, per spec.md §4.6/§3.
package target

import "fmt"

// OpCode identifies a VM instruction. Grounded on the teacher's
// `// Stack: [a] -> [b]` doc-comment convention (internal/bytecode/instruction.go),
// scaled down to the flat opcode list spec.md §3 enumerates.
type OpCode byte

const (
	// PUSH pushes a literal, identifier value, or string onto the stack.
	// Stack: [] -> [v]
	PUSH OpCode = iota

	// STORE pops one value and writes it to memory under Arg.
	// Stack: [v] -> []
	STORE

	// ADD pops b then a, pushes a + b.
	// Stack: [a, b] -> [a+b]
	ADD
	// SUB pops b then a, pushes a - b.
	// Stack: [a, b] -> [a-b]
	SUB
	// MUL pops b then a, pushes a * b.
	// Stack: [a, b] -> [a*b]
	MUL
	// DIV pops b then a, pushes a / b. Division by zero is a RuntimeError.
	// Stack: [a, b] -> [a/b]
	DIV

	// COMPARE_GT pops b then a, pushes 1 if a > b else 0.
	// Stack: [a, b] -> [a>b]
	COMPARE_GT
	// COMPARE_LT pops b then a, pushes 1 if a < b else 0.
	// Stack: [a, b] -> [a<b]
	COMPARE_LT
	// COMPARE_EQ pops b then a, pushes 1 if a == b else 0.
	// Stack: [a, b] -> [a==b]
	COMPARE_EQ
	// COMPARE_NE pops b then a, pushes 1 if a != b else 0.
	// Stack: [a, b] -> [a!=b]
	COMPARE_NE
	// COMPARE_GTE pops b then a, pushes 1 if a >= b else 0.
	// Stack: [a, b] -> [a>=b]
	COMPARE_GTE
	// COMPARE_LTE pops b then a, pushes 1 if a <= b else 0.
	// Stack: [a, b] -> [a<=b]
	COMPARE_LTE

	// LOGICAL_AND pops b then a, pushes 1 if both nonzero else 0. Both
	// sides are always pushed beforehand — no short-circuiting (SPEC_FULL.md §9).
	// Stack: [a, b] -> [a&&b]
	LOGICAL_AND
	// LOGICAL_OR pops b then a, pushes 1 if either nonzero else 0.
	// Stack: [a, b] -> [a||b]
	LOGICAL_OR

	// PRINT pops one value and appends it to the output sequence.
	// Stack: [v] -> []
	PRINT

	// JUMP sets PC to the label's instruction index unconditionally.
	// Stack: [] -> []
	JUMP
	// JUMP_IF_TRUE pops one value; jumps if it is nonzero.
	// Stack: [v] -> []
	JUMP_IF_TRUE
	// JUMP_IF_FALSE pops one value; jumps if it is zero.
	// Stack: [v] -> []
	JUMP_IF_FALSE

	// LABEL is a no-op at execution time; it only exists as a jump target.
	// Stack: [] -> []
	LABEL

	// FUNC_DEFINE records Arg's entry point as PC+1 and fast-forwards to
	// the matching FUNC_END, so the body is not executed in line.
	// Stack: [] -> []
	FUNC_DEFINE
	// PARAM pops one value from the bottom of the arguments the caller
	// pushed and binds it to Arg in memory (FIFO over the pushed block).
	// Stack: [v, ...] -> [...]
	PARAM
	// FUNC_START marks the first executable instruction of a function body.
	// Stack: [] -> []
	FUNC_START
	// FUNC_END pops the return address off the call stack, if any.
	// Stack: [] -> []
	FUNC_END

	// CALL pushes the current PC on the call stack and jumps to Arg's entry.
	// Stack: [] -> []
	CALL
	// RETURN pops the return address off the call stack. It does not
	// itself touch the return value — the preceding `return v`'s PUSH
	// already put it on the stack for the caller's STORE to consume.
	// Stack: [] -> []
	RETURN
)

var opCodeNames = map[OpCode]string{
	PUSH:            "PUSH",
	STORE:           "STORE",
	ADD:             "ADD",
	SUB:             "SUB",
	MUL:             "MUL",
	DIV:             "DIV",
	COMPARE_GT:      "COMPARE_GT",
	COMPARE_LT:      "COMPARE_LT",
	COMPARE_EQ:      "COMPARE_EQ",
	COMPARE_NE:      "COMPARE_NE",
	COMPARE_GTE:     "COMPARE_GTE",
	COMPARE_LTE:     "COMPARE_LTE",
	LOGICAL_AND:     "LOGICAL_AND",
	LOGICAL_OR:      "LOGICAL_OR",
	PRINT:           "PRINT",
	JUMP:            "JUMP",
	JUMP_IF_TRUE:    "JUMP_IF_TRUE",
	JUMP_IF_FALSE:   "JUMP_IF_FALSE",
	LABEL:           "LABEL",
	FUNC_DEFINE:     "FUNC_DEFINE",
	PARAM:           "PARAM",
	FUNC_START:      "FUNC_START",
	FUNC_END:        "FUNC_END",
	CALL:            "CALL",
	RETURN:          "RETURN",
}

func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", byte(op))
}

// Instruction is one VM instruction: an opcode plus its single textual
// argument (empty when the opcode takes none), per spec.md §3.
type Instruction struct {
	Op  OpCode
	Arg string
}

func (i Instruction) String() string {
	if i.Arg == "" {
		return i.Op.String()
	}
	return fmt.Sprintf("%s %s", i.Op, i.Arg)
}
