// Package optimizer implements the semantics-preserving IR-to-IR pass
// described at interface level in spec.md §4.5.
package optimizer

import (
	"strconv"

	"github.com/mohamedagwa1/fekra/internal/ir"
)

// Optimize runs constant folding, dead-store elimination, and common
// subexpression elimination over code, in that order — the same three
// passes original_source/optimizer.py names, re-expressed over the
// structured ir.Instruction tag instead of substring matching on
// rendered text. Every Print, Return, Call, Label, Goto, IfGoto, and
// IfNotGoto instruction is treated as a side-effecting anchor and is
// never removed or reordered, per spec.md §4.5's contract — this is
// stricter than the original pass, which could drop an unused `t =
// call f(...)` line and silently lose the call's side effect.
func Optimize(code []ir.Instruction) []ir.Instruction {
	code = foldConstants(code)
	code = eliminateDeadStores(code)
	code = eliminateCommonSubexpressions(code)
	return code
}

var arithOps = map[string]func(a, b int64) (int64, bool){
	"+": func(a, b int64) (int64, bool) { return a + b, true },
	"-": func(a, b int64) (int64, bool) { return a - b, true },
	"*": func(a, b int64) (int64, bool) { return a * b, true },
	"/": func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	},
}

// foldConstants replaces `t = L op R` with `t = result` wherever L and
// R are both integer literals and op is one of + - * /. Division by
// zero is left unfolded so it still fails at runtime, matching the
// VM's own division-by-zero check (spec.md §4.7).
func foldConstants(code []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(code))
	for i, instr := range code {
		out[i] = instr
		if instr.Op != ir.Binary {
			continue
		}
		fn, ok := arithOps[instr.Operator]
		if !ok {
			continue
		}
		left, lerr := strconv.ParseInt(instr.Left, 10, 64)
		right, rerr := strconv.ParseInt(instr.Right, 10, 64)
		if lerr != nil || rerr != nil {
			continue
		}
		result, ok := fn(left, right)
		if !ok {
			continue
		}
		out[i] = ir.Instruction{Op: ir.Assign, Target: instr.Target, Value: strconv.FormatInt(result, 10)}
	}
	return out
}

// eliminateDeadStores drops Assign/Binary instructions whose target is
// never read by any instruction in code. Reads are collected over the
// whole list first, since a loop body or a function body can read a
// name from a position before the store that writes it. Call, Print,
// Return, Label, Goto, IfGoto, and IfNotGoto instructions are always
// kept regardless of whether their defined temp (if any) is read,
// since they carry side effects beyond producing a value.
func eliminateDeadStores(code []ir.Instruction) []ir.Instruction {
	used := make(map[string]bool)
	kept := make([]ir.Instruction, 0, len(code))

	for _, instr := range code {
		used[instr.Value] = true
		used[instr.Left], used[instr.Right], used[instr.Cond] = true, true, true
		for _, a := range instr.Args {
			used[a] = true
		}
	}

	for i := len(code) - 1; i >= 0; i-- {
		instr := code[i]
		switch instr.Op {
		case ir.Assign:
			if !used[instr.Target] {
				continue
			}
			used[instr.Value] = true
		case ir.Binary:
			if !used[instr.Target] {
				continue
			}
			used[instr.Left] = true
			used[instr.Right] = true
		case ir.Call:
			for _, a := range instr.Args {
				used[a] = true
			}
		case ir.IfGoto, ir.IfNotGoto:
			used[instr.Cond] = true
		case ir.Print, ir.Return:
			used[instr.Value] = true
		}
		kept = append(kept, instr)
	}

	// kept was built back-to-front; reverse it into program order.
	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}
	return kept
}

type exprKey struct {
	left, op, right string
}

// eliminateCommonSubexpressions replaces a Binary instruction with a
// plain Assign when an earlier instruction already computed the exact
// same (left, op, right) triple, reusing its target. The cache is
// invalidated for any expression mentioning a variable as soon as that
// variable is redefined, and cleared entirely at a Call or any control-
// flow instruction, since a call or a jump may have changed state the
// simple original pass didn't account for.
func eliminateCommonSubexpressions(code []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(code))
	cache := make(map[exprKey]string)

	invalidate := func(name string) {
		for k := range cache {
			if k.left == name || k.right == name {
				delete(cache, k)
			}
		}
	}

	for i, instr := range code {
		switch instr.Op {
		case ir.Binary:
			key := exprKey{instr.Left, instr.Operator, instr.Right}
			if existing, ok := cache[key]; ok {
				out[i] = ir.Instruction{Op: ir.Assign, Target: instr.Target, Value: existing}
			} else {
				cache[key] = instr.Target
				out[i] = instr
			}
			invalidate(instr.Target)
		case ir.Assign:
			invalidate(instr.Target)
			out[i] = instr
		case ir.Call:
			invalidate(instr.Target)
			cache = make(map[exprKey]string)
			out[i] = instr
		default:
			cache = make(map[exprKey]string)
			out[i] = instr
		}
	}
	return out
}
