package vm

import (
	"strconv"
	"strings"

	"github.com/mohamedagwa1/fekra/internal/target"
)

// VM holds all execution state for one run. Per spec.md §9's decided
// Open Question, memory stays a single flat map rather than per-call
// frames — this is bug-for-bug parity with original_source/virtual_machine.py,
// which lets a function's parameters and locals leak into the caller's
// scope and across recursive calls. A proper reimplementation would
// give every call its own frame; this one deliberately does not, and
// DESIGN.md records why.
type VM struct {
	stack  []Value
	memory map[string]Value

	callStack []int
	labels    map[string]int
	funcs     map[string]int
	funcEnds  map[int]int

	output []Value
}

// New creates a VM with empty stack, memory, and call stack.
func New() *VM {
	return &VM{memory: make(map[string]Value)}
}

// Run executes code in full and returns the ordered PRINT output.
// A fresh VM should be used per run — per spec.md §5, no component is
// safe for concurrent reuse.
func Run(code []target.Instruction) ([]Value, error) {
	v := New()
	return v.run(code)
}

func (v *VM) push(val Value) {
	v.stack = append(v.stack, val)
}

func (v *VM) pop(pc int) (Value, error) {
	if len(v.stack) == 0 {
		return Value{}, newRuntimeError(pc, "operand stack underflow")
	}
	top := len(v.stack) - 1
	val := v.stack[top]
	v.stack = v.stack[:top]
	return val, nil
}

// popBottom removes and returns the value at the bottom of the operand
// stack, implementing PARAM's FIFO binding order (spec.md §9 decision 3).
func (v *VM) popBottom(pc int) (Value, error) {
	if len(v.stack) == 0 {
		return Value{}, newRuntimeError(pc, "operand stack underflow")
	}
	val := v.stack[0]
	v.stack = v.stack[1:]
	return val, nil
}

func (v *VM) buildTables(code []target.Instruction) {
	v.labels = make(map[string]int)
	v.funcs = make(map[string]int)
	v.funcEnds = make(map[int]int)

	for i, instr := range code {
		if instr.Op == target.LABEL {
			v.labels[instr.Arg] = i
		}
	}

	for i, instr := range code {
		if instr.Op != target.FUNC_DEFINE {
			continue
		}
		v.funcs[instr.Arg] = i + 1
		depth := 0
	findEnd:
		for j := i; j < len(code); j++ {
			switch code[j].Op {
			case target.FUNC_DEFINE:
				depth++
			case target.FUNC_END:
				depth--
				if depth == 0 {
					v.funcEnds[i] = j
					break findEnd
				}
			}
		}
	}
}

func (v *VM) run(code []target.Instruction) ([]Value, error) {
	v.buildTables(code)

	pc := 0
	for pc >= 0 && pc < len(code) {
		instr := code[pc]
		next, err := v.step(code, pc, instr)
		if err != nil {
			return nil, err
		}
		pc = next + 1
	}
	return v.output, nil
}

// step executes one instruction and returns the PC the main loop
// should resume at before its unconditional +1 — i.e. return pc
// unless a jump, call, or return redirects control flow.
func (v *VM) step(code []target.Instruction, pc int, instr target.Instruction) (int, error) {
	switch instr.Op {
	case target.PUSH:
		val, err := v.resolvePush(instr.Arg)
		if err != nil {
			return 0, newRuntimeError(pc, "%s", err)
		}
		v.push(val)

	case target.STORE:
		val, err := v.pop(pc)
		if err != nil {
			return 0, err
		}
		v.memory[instr.Arg] = val

	case target.ADD, target.SUB, target.MUL, target.DIV:
		return pc, v.execArith(pc, instr.Op)

	case target.COMPARE_GT, target.COMPARE_LT, target.COMPARE_EQ,
		target.COMPARE_NE, target.COMPARE_GTE, target.COMPARE_LTE:
		return pc, v.execCompare(pc, instr.Op)

	case target.LOGICAL_AND, target.LOGICAL_OR:
		return pc, v.execLogical(pc, instr.Op)

	case target.PRINT:
		val, err := v.pop(pc)
		if err != nil {
			return 0, err
		}
		v.output = append(v.output, val)

	case target.JUMP:
		dest, err := v.resolveLabel(pc, instr.Arg)
		if err != nil {
			return 0, err
		}
		return dest - 1, nil

	case target.JUMP_IF_TRUE:
		val, err := v.pop(pc)
		if err != nil {
			return 0, err
		}
		if val.truthy() {
			t, err := v.resolveLabel(pc, instr.Arg)
			if err != nil {
				return 0, err
			}
			return t - 1, nil
		}

	case target.JUMP_IF_FALSE:
		val, err := v.pop(pc)
		if err != nil {
			return 0, err
		}
		if !val.truthy() {
			t, err := v.resolveLabel(pc, instr.Arg)
			if err != nil {
				return 0, err
			}
			return t - 1, nil
		}

	case target.LABEL:
		// no-op at execution time

	case target.FUNC_DEFINE:
		end, ok := v.funcEnds[pc]
		if !ok {
			return 0, newRuntimeError(pc, "FUNC_END missing for function %q", instr.Arg)
		}
		return end, nil

	case target.PARAM:
		val, err := v.popBottom(pc)
		if err != nil {
			return 0, err
		}
		v.memory[instr.Arg] = val

	case target.FUNC_START:
		// no-op: marks the first body instruction

	case target.FUNC_END:
		if len(v.callStack) > 0 {
			top := len(v.callStack) - 1
			ret := v.callStack[top]
			v.callStack = v.callStack[:top]
			return ret, nil
		}

	case target.CALL:
		entry, ok := v.funcs[instr.Arg]
		if !ok {
			return 0, newRuntimeError(pc, "call into undefined function %q", instr.Arg)
		}
		v.callStack = append(v.callStack, pc)
		return entry - 1, nil

	case target.RETURN:
		if len(v.callStack) > 0 {
			top := len(v.callStack) - 1
			ret := v.callStack[top]
			v.callStack = v.callStack[:top]
			return ret, nil
		}

	default:
		return 0, newRuntimeError(pc, "unknown opcode %s", instr.Op)
	}

	return pc, nil
}

func (v *VM) resolveLabel(pc int, name string) (int, error) {
	idx, ok := v.labels[name]
	if !ok {
		return 0, newRuntimeError(pc, "unknown jump label %q", name)
	}
	return idx, nil
}

// resolvePush implements spec.md §4.7's PUSH rule: a quoted literal
// yields its interior string; an identifier known in memory yields its
// bound value; a numeric lexeme yields an int or float; anything else
// is an undefined identifier.
func (v *VM) resolvePush(arg string) (Value, error) {
	if s, ok := stripQuotes(arg); ok {
		return StringValue(s), nil
	}
	if val, ok := v.memory[arg]; ok {
		return val, nil
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return IntValue(n), nil
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return FloatValue(f), nil
	}
	return Value{}, newRuntimeError(0, "undefined identifier %q", arg)
}

func stripQuotes(s string) (string, bool) {
	if len(s) >= 6 && strings.HasPrefix(s, `"""`) && strings.HasSuffix(s, `"""`) {
		return s[3 : len(s)-3], true
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1], true
	}
	return "", false
}
