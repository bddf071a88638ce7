package cerrors

import (
	"strings"
	"testing"

	"github.com/mohamedagwa1/fekra/internal/lexer"
)

func TestFormatIncludesStageMessageAndPosition(t *testing.T) {
	err := New(Semantic, "variable \"س\" not declared", lexer.Position{Line: 2, Column: 5}, "عرف ص ؟\nعرض (س) ؟")
	out := err.Error()

	if !strings.Contains(out, "Semantic:") {
		t.Fatalf("expected stage prefix in output, got %q", out)
	}
	if !strings.Contains(out, "2:5") {
		t.Fatalf("expected position in output, got %q", out)
	}
	if !strings.Contains(out, "عرض (س) ؟") {
		t.Fatalf("expected the offending source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret in output, got %q", out)
	}
}

func TestFormatWithoutSourceOmitsSourceLine(t *testing.T) {
	err := New(Runtime, "division by zero", lexer.Position{}, "")
	out := err.Error()
	if strings.Contains(out, "^") {
		t.Fatalf("expected no caret when no source is available, got %q", out)
	}
}

func TestFormatOutOfRangeLineIsOmitted(t *testing.T) {
	err := New(Lexical, "bad char", lexer.Position{Line: 99, Column: 1}, "عرف ص ؟")
	out := err.Error()
	if strings.Contains(out, "^") {
		t.Fatalf("expected no caret for an out-of-range line, got %q", out)
	}
}
