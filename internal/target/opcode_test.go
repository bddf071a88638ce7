package target

import "testing"

func TestInstructionStringWithAndWithoutArg(t *testing.T) {
	withArg := Instruction{Op: PUSH, Arg: "5"}
	if withArg.String() != "PUSH 5" {
		t.Fatalf("expected %q, got %q", "PUSH 5", withArg.String())
	}
	noArg := Instruction{Op: PRINT}
	if noArg.String() != "PRINT" {
		t.Fatalf("expected %q, got %q", "PRINT", noArg.String())
	}
}

func TestOpCodeStringForUnknownValue(t *testing.T) {
	var unknown OpCode = 255
	got := unknown.String()
	if got != "OpCode(255)" {
		t.Fatalf("expected fallback rendering, got %q", got)
	}
}
