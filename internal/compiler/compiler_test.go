package compiler

import (
	"testing"

	"github.com/mohamedagwa1/fekra/internal/cerrors"
)

func outputStrings(t *testing.T, result *Result) []string {
	t.Helper()
	out := make([]string, 0, len(result.Output))
	for _, v := range result.Output {
		out = append(out, v.String())
	}
	return out
}

func TestCompileAndRunArithmeticAndPrint(t *testing.T) {
	result, err := CompileAndRun(`عرف س = 2 + 3 * 4 ؟ عرض (س) ؟`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 1 || got[0] != "14" {
		t.Fatalf("expected [14], got %v", got)
	}
}

func TestCompileAndRunIfTrueBranch(t *testing.T) {
	result, err := CompileAndRun(`عرف س = 5 ؟ لو (س > 1) { عرض (س) ؟ }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 1 || got[0] != "5" {
		t.Fatalf("expected [5], got %v", got)
	}
}

func TestCompileAndRunWhileInitiallyFalseNeverRuns(t *testing.T) {
	result, err := CompileAndRun(`عرف س = 0 ؟ بينما (س > 0) { عرض (س) ؟ }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 0 {
		t.Fatalf("expected no output, got %v", got)
	}
}

func TestCompileAndRunWhileLoopCounts(t *testing.T) {
	src := `عرف س = 0 ؟ بينما (س < 3) { عرض (س) ؟ س = س + 1 ؟ }`
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	want := []string{"0", "1", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestCompileAndRunRecursiveFunction runs a recursive call chain to
// completion. Because the VM keeps a single flat memory map (vm.VM's
// doc comment), each recursive call rebinds the same "ن" slot; by the
// time an outer frame evaluates "ن * فاكتوريل(ن - 1)", its right operand
// has already run and left ن bound to 1, so every level multiplies
// 1 * 1 and the printed result is 1.
func TestCompileAndRunRecursiveFunction(t *testing.T) {
	src := `
دالة فاكتوريل (ن) {
  لو (ن < 2) {
    اعد (1) ؟
  }
  اعد (ن * فاكتوريل(ن - 1)) ؟
}
عرض (فاكتوريل(5)) ؟
`
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestCompileAndRunStringWithEscapedQuote(t *testing.T) {
	src := `عرض ("قال \"مرحبا\"") ؟`
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 1 {
		t.Fatalf("expected 1 line of output, got %v", got)
	}
}

func TestCompileAndRunEmptyProgramProducesNoOutput(t *testing.T) {
	result, err := CompileAndRun(``)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Output) != 0 {
		t.Fatalf("expected no output, got %v", result.Output)
	}
}

func TestCompileAndRunCommentBeforeStatement(t *testing.T) {
	src := "// مرحبا\nعرض (1) ؟"
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected [1], got %v", got)
	}
}

// TestCompileAndRunShadowingAcrossNestedScopes checks the semantic
// analyzer's compile-time shadowing rule (a redeclared "س" in the
// nested block is not an error), not lexical scoping at runtime. The
// VM has a single flat memory map (vm.VM's doc comment, DESIGN.md's
// decided Open Question), so the inner assignment overwrites the same
// slot the outer declaration wrote: both PRINT statements observe 2.
func TestCompileAndRunShadowingAcrossNestedScopes(t *testing.T) {
	src := `عرف س = 1 ؟ لو (1 > 0) { عرف س = 2 ؟ عرض (س) ؟ } عرض (س) ؟`
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	want := []string{"2", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestCompileAndRunParameterLeaksAcrossCallBoundary demonstrates the
// other half of the flat-memory hazard documented on vm.VM: a
// function's parameter binding is a write into the same global
// memory map the caller uses, so it leaks into the caller's scope
// once the call returns.
func TestCompileAndRunParameterLeaksAcrossCallBoundary(t *testing.T) {
	src := `
دالة تعيين (ن) {
  اعد (0) ؟
}
عرف ن = 99 ؟
تعيين(1) ؟
عرض (ن) ؟
`
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	want := []string{"1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCompileAndRunLexicalErrorIsTaggedLexical(t *testing.T) {
	_, err := CompileAndRun(`عرف س = @ ؟`)
	if err == nil {
		t.Fatal("expected a lexical error")
	}
	cerr, ok := err.(*cerrors.CompilerError)
	if !ok {
		t.Fatalf("expected *cerrors.CompilerError, got %T", err)
	}
	if cerr.Stage != cerrors.Lexical {
		t.Fatalf("expected Lexical stage, got %s", cerr.Stage)
	}
}

func TestCompileAndRunSyntaxErrorIsTaggedSyntactic(t *testing.T) {
	_, err := CompileAndRun(`عرف س = 1`)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	cerr := err.(*cerrors.CompilerError)
	if cerr.Stage != cerrors.Syntactic {
		t.Fatalf("expected Syntactic stage, got %s", cerr.Stage)
	}
}

func TestCompileAndRunSemanticErrorIsTaggedSemantic(t *testing.T) {
	_, err := CompileAndRun(`عرض (س) ؟`)
	if err == nil {
		t.Fatal("expected a semantic error")
	}
	cerr := err.(*cerrors.CompilerError)
	if cerr.Stage != cerrors.Semantic {
		t.Fatalf("expected Semantic stage, got %s", cerr.Stage)
	}
}

func TestCompileAndRunDivisionByZeroIsTaggedRuntime(t *testing.T) {
	_, err := CompileAndRun(`عرض (1 / 0) ؟`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	cerr := err.(*cerrors.CompilerError)
	if cerr.Stage != cerrors.Runtime {
		t.Fatalf("expected Runtime stage, got %s", cerr.Stage)
	}
}

func TestCompileAndRunNestedIf(t *testing.T) {
	src := `لو (1 > 0) { لو (2 > 1) { عرض (99) ؟ } }`
	result, err := CompileAndRun(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outputStrings(t, result)
	if len(got) != 1 || got[0] != "99" {
		t.Fatalf("expected [99], got %v", got)
	}
}
