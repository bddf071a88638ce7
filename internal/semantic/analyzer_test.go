package semantic

import (
	"testing"

	"github.com/mohamedagwa1/fekra/internal/lexer"
	"github.com/mohamedagwa1/fekra/internal/parser"
)

func analyzeSource(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Analyze(prog)
}

func TestAnalyzeValidProgram(t *testing.T) {
	src := `عرف س = 1 ؟ لو (س > 0) { عرض (س) ؟ }`
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeUndeclaredVariableFails(t *testing.T) {
	err := analyzeSource(t, `عرض (س) ؟`)
	if err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Fatalf("expected *SemanticError, got %T", err)
	}
}

func TestAnalyzeRedeclarationInSameScopeFails(t *testing.T) {
	err := analyzeSource(t, `عرف س = 1 ؟ عرف س = 2 ؟`)
	if err == nil {
		t.Fatal("expected an error for redeclaring س")
	}
}

func TestAnalyzeShadowingInNestedBlockSucceeds(t *testing.T) {
	src := `عرف س = 1 ؟ لو (س > 0) { عرف س = 2 ؟ عرض (س) ؟ }`
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("unexpected error shadowing across block scope: %v", err)
	}
}

func TestAnalyzeRecursiveFunctionResolves(t *testing.T) {
	src := `دالة فاكتوريل (ن) { اعد (فاكتوريل (ن)) ؟ }`
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeUndeclaredFunctionCallFails(t *testing.T) {
	err := analyzeSource(t, `مجهول (1) ؟`)
	if err == nil {
		t.Fatal("expected an error calling an undeclared function")
	}
}

func TestAnalyzeParamsScopedToFunctionBody(t *testing.T) {
	err := analyzeSource(t, `دالة و (أ) { اعد (أ) ؟ } عرض (أ) ؟`)
	if err == nil {
		t.Fatal("expected an error: param أ must not leak outside the function body")
	}
}
