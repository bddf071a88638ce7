package ir

import (
	"testing"

	"github.com/mohamedagwa1/fekra/internal/lexer"
	"github.com/mohamedagwa1/fekra/internal/parser"
)

func generate(t *testing.T, src string) []Instruction {
	t.Helper()
	tokens, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Generate(prog)
}

func TestGenerateVariableDeclDefaultsToZero(t *testing.T) {
	code := generate(t, `عرف س ؟`)
	if len(code) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(code))
	}
	if code[0].Op != Assign || code[0].Target != "س" || code[0].Value != "0" {
		t.Fatalf("expected س = 0, got %s", code[0].String())
	}
}

func TestGenerateReturnWithoutValueDefaultsToZero(t *testing.T) {
	code := generate(t, `دالة و () { اعد () ؟ }`)
	var foundReturn bool
	for _, instr := range code {
		if instr.Op == Return {
			foundReturn = true
			if instr.Value != "0" {
				t.Fatalf("expected bare return to default to 0, got %q", instr.Value)
			}
		}
	}
	if !foundReturn {
		t.Fatal("expected a Return instruction")
	}
}

func TestGenerateIfLowersToLabelsAndGotos(t *testing.T) {
	code := generate(t, `لو (1 > 0) { عرض (1) ؟ }`)

	var ops []Op
	for _, instr := range code {
		ops = append(ops, instr.Op)
	}
	want := []Op{Binary, Assign, IfGoto, Goto, Label, Print, Label}
	if len(ops) != len(want) {
		t.Fatalf("expected %d instructions, got %d: %v", len(want), len(ops), ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("instruction[%d]: expected op %d, got %d", i, want[i], ops[i])
		}
	}
}

func TestGenerateWhileLowersConditionCheckBeforeBody(t *testing.T) {
	code := generate(t, `بينما (1 > 0) { عرض (1) ؟ }`)

	if code[0].Op != Label {
		t.Fatalf("expected a loop-top label first, got %s", code[0].String())
	}
	var sawIfNotGoto bool
	for _, instr := range code {
		if instr.Op == IfNotGoto {
			sawIfNotGoto = true
		}
	}
	if !sawIfNotGoto {
		t.Fatal("expected an IfNotGoto instruction guarding the loop body")
	}
	last := code[len(code)-1]
	if last.Op != Label {
		t.Fatalf("expected the loop to end on its exit label, got %s", last.String())
	}
}

func TestGenerateFunctionDeclEmitsStartAndEnd(t *testing.T) {
	code := generate(t, `دالة جمع (أ, ب) { اعد (أ + ب) ؟ }`)

	if code[0].Op != FunctionStart || code[0].FuncName != "جمع" {
		t.Fatalf("expected FunctionStart جمع, got %s", code[0].String())
	}
	if len(code[0].Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(code[0].Params))
	}
	last := code[len(code)-1]
	if last.Op != FunctionEnd {
		t.Fatalf("expected FunctionEnd as the last instruction, got %s", last.String())
	}
}

func TestGenerateLogicalExpressionLowersLikeBinary(t *testing.T) {
	code := generate(t, `عرف س = 1 && 0 ؟`)

	var sawBinaryWithLogicalOp bool
	for _, instr := range code {
		if instr.Op == Binary && instr.Operator == "&&" {
			sawBinaryWithLogicalOp = true
		}
	}
	if !sawBinaryWithLogicalOp {
		t.Fatal("expected && to lower through the same Binary instruction shape as arithmetic")
	}
}

func TestGenerateFunctionCallStatementDiscardsItsTemp(t *testing.T) {
	code := generate(t, `دالة و () { اعد () ؟ } و () ؟`)

	var calls int
	for _, instr := range code {
		if instr.Op == Call {
			calls++
		}
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 Call instruction, got %d", calls)
	}
}
