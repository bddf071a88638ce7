package vm

import (
	"testing"

	"github.com/mohamedagwa1/fekra/internal/target"
)

func TestRunComparisonMismatchedKindsIsRuntimeError(t *testing.T) {
	code := []target.Instruction{
		{Op: target.PUSH, Arg: "1"},
		{Op: target.PUSH, Arg: `"واحد"`},
		{Op: target.COMPARE_EQ},
	}
	_, err := Run(code)
	if err == nil {
		t.Fatal("expected an error comparing a number against a string")
	}
}

func TestRunArithmeticOnNonNumericOperandIsRuntimeError(t *testing.T) {
	code := []target.Instruction{
		{Op: target.PUSH, Arg: `"نص"`},
		{Op: target.PUSH, Arg: "1"},
		{Op: target.SUB},
	}
	_, err := Run(code)
	if err == nil {
		t.Fatal("expected an error subtracting a string operand")
	}
}

func TestRunFloatArithmeticPromotesFromMixedOperands(t *testing.T) {
	code := []target.Instruction{
		{Op: target.PUSH, Arg: "5"},
		{Op: target.PUSH, Arg: "2.5"},
		{Op: target.ADD},
		{Op: target.PRINT},
	}
	out, err := Run(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].String() != "7.5" {
		t.Fatalf("expected 7.5, got %s", out[0].String())
	}
}
