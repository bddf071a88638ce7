package vm

import "github.com/mohamedagwa1/fekra/internal/target"

// execArith pops b then a, applies op, and pushes the result. String
// concatenation is accepted for ADD (neither spec.md nor the source
// pipeline distinguishes "+" from string concatenation at this layer);
// every other combination of non-numeric operands is a type mismatch.
func (v *VM) execArith(pc int, op target.OpCode) error {
	b, err := v.pop(pc)
	if err != nil {
		return err
	}
	a, err := v.pop(pc)
	if err != nil {
		return err
	}

	if op == target.ADD && a.Kind == StringKind && b.Kind == StringKind {
		v.push(StringValue(a.Str + b.Str))
		return nil
	}
	if !a.numeric() || !b.numeric() {
		return newRuntimeError(pc, "arithmetic operator applied to non-numeric operand")
	}

	if op == target.DIV && b.asFloat() == 0 {
		return newRuntimeError(pc, "division by zero")
	}

	if a.Kind == IntKind && b.Kind == IntKind {
		switch op {
		case target.ADD:
			v.push(IntValue(a.Int + b.Int))
		case target.SUB:
			v.push(IntValue(a.Int - b.Int))
		case target.MUL:
			v.push(IntValue(a.Int * b.Int))
		case target.DIV:
			v.push(IntValue(a.Int / b.Int))
		}
		return nil
	}

	af, bf := a.asFloat(), b.asFloat()
	switch op {
	case target.ADD:
		v.push(FloatValue(af + bf))
	case target.SUB:
		v.push(FloatValue(af - bf))
	case target.MUL:
		v.push(FloatValue(af * bf))
	case target.DIV:
		v.push(FloatValue(af / bf))
	}
	return nil
}

// execCompare pops b then a and pushes 1 or 0, per spec.md §4.7. Two
// numeric operands compare numerically (coerced to float64 if either
// is a float); two strings compare lexicographically; mixed kinds are
// a type mismatch.
func (v *VM) execCompare(pc int, op target.OpCode) error {
	b, err := v.pop(pc)
	if err != nil {
		return err
	}
	a, err := v.pop(pc)
	if err != nil {
		return err
	}

	var result bool
	switch {
	case a.numeric() && b.numeric():
		af, bf := a.asFloat(), b.asFloat()
		result = compareOrdered(op, af < bf, af == bf, af > bf)
	case a.Kind == StringKind && b.Kind == StringKind:
		result = compareOrdered(op, a.Str < b.Str, a.Str == b.Str, a.Str > b.Str)
	default:
		return newRuntimeError(pc, "comparison operator applied to mismatched operand kinds")
	}

	v.push(boolValue(result))
	return nil
}

func compareOrdered(op target.OpCode, lt, eq, gt bool) bool {
	switch op {
	case target.COMPARE_GT:
		return gt
	case target.COMPARE_LT:
		return lt
	case target.COMPARE_EQ:
		return eq
	case target.COMPARE_NE:
		return !eq
	case target.COMPARE_GTE:
		return gt || eq
	case target.COMPARE_LTE:
		return lt || eq
	default:
		return false
	}
}

// execLogical pops b then a and pushes 1 or 0, treating both operands
// strictly by truthiness — there is no short-circuiting at this layer,
// since the IR generator already lowered both sides unconditionally
// (SPEC_FULL.md §9 decision 6).
func (v *VM) execLogical(pc int, op target.OpCode) error {
	b, err := v.pop(pc)
	if err != nil {
		return err
	}
	a, err := v.pop(pc)
	if err != nil {
		return err
	}

	var result bool
	switch op {
	case target.LOGICAL_AND:
		result = a.truthy() && b.truthy()
	case target.LOGICAL_OR:
		result = a.truthy() || b.truthy()
	}
	v.push(boolValue(result))
	return nil
}

func boolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}
