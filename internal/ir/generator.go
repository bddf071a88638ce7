package ir

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/ast"
)

// Generator walks an AST and emits a flat Instruction list, tracking
// two monotonic counters exactly as spec.md §4.4 describes: temp_counter
// for value slots, label_counter for branch targets. Grounded on
// original_source/intermediate_code_generator.py, but it emits
// structured Instructions instead of interpolated text lines.
type Generator struct {
	code         []Instruction
	tempCounter  int
	labelCounter int
}

// NewGenerator creates a Generator with both counters at zero.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) newTemp() string {
	g.tempCounter++
	return fmt.Sprintf("t%d", g.tempCounter)
}

func (g *Generator) newLabel() string {
	g.labelCounter++
	return fmt.Sprintf("L%d", g.labelCounter)
}

// Generate lowers prog and returns its IR.
func Generate(prog *ast.Program) []Instruction {
	g := NewGenerator()
	g.visitStatements(prog.Body)
	return g.code
}

func (g *Generator) emit(instr Instruction) {
	g.code = append(g.code, instr)
}

func (g *Generator) visitStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		g.visitStatement(s)
	}
}

func (g *Generator) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		value := "0"
		if s.Init != nil {
			value = g.visitExpression(s.Init)
		}
		g.emit(Instruction{Op: Assign, Target: s.Id.Name, Value: value})

	case *ast.Assignment:
		value := g.visitExpression(s.Value)
		g.emit(Instruction{Op: Assign, Target: s.Id.Name, Value: value})

	case *ast.IfStatement:
		g.lowerIf(s)

	case *ast.WhileStatement:
		g.lowerWhile(s)

	case *ast.FunctionDeclaration:
		g.lowerFunctionDecl(s)

	case *ast.ReturnStatement:
		value := "0"
		if s.Value != nil {
			value = g.visitExpression(s.Value)
		}
		g.emit(Instruction{Op: Return, Value: value})

	case *ast.PrintStatement:
		value := g.visitExpression(s.Expression)
		g.emit(Instruction{Op: Print, Value: value})

	case *ast.FunctionCall:
		// A call used as a statement still lowers to a temp-producing
		// Call instruction; the temp is simply never read again.
		g.visitExpression(s)
	}
}

func (g *Generator) lowerIf(s *ast.IfStatement) {
	cond := g.visitExpression(s.Test)
	tc := g.newTemp()
	g.emit(Instruction{Op: Assign, Target: tc, Value: cond})

	trueLabel := g.newLabel()
	endLabel := g.newLabel()
	g.emit(Instruction{Op: IfGoto, Cond: tc, Lbl: trueLabel})
	g.emit(Instruction{Op: Goto, Lbl: endLabel})
	g.emit(Instruction{Op: Label, Lbl: trueLabel})
	g.visitStatements(s.Consequent)
	g.emit(Instruction{Op: Label, Lbl: endLabel})
}

func (g *Generator) lowerWhile(s *ast.WhileStatement) {
	condLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit(Instruction{Op: Label, Lbl: condLabel})
	cond := g.visitExpression(s.Test)
	tc := g.newTemp()
	g.emit(Instruction{Op: Assign, Target: tc, Value: cond})
	g.emit(Instruction{Op: IfNotGoto, Cond: tc, Lbl: endLabel})

	g.visitStatements(s.Body)

	g.emit(Instruction{Op: Goto, Lbl: condLabel})
	g.emit(Instruction{Op: Label, Lbl: endLabel})
}

func (g *Generator) lowerFunctionDecl(s *ast.FunctionDeclaration) {
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.Name)
	}
	g.emit(Instruction{Op: FunctionStart, FuncName: s.Name.Name, Params: params})
	g.visitStatements(s.Body)
	g.emit(Instruction{Op: FunctionEnd})
}

// visitExpression lowers expr and returns a value reference: a fresh
// temp name, a literal's printable text, or an identifier's name.
func (g *Generator) visitExpression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.String()

	case *ast.Identifier:
		return e.Name

	case *ast.BinaryExpression:
		left := g.visitExpression(e.Left)
		right := g.visitExpression(e.Right)
		t := g.newTemp()
		g.emit(Instruction{Op: Binary, Target: t, Left: left, Operator: e.Operator, Right: right})
		return t

	case *ast.LogicalExpression:
		// Lowered identically to BinaryExpression: the source grammar
		// never short-circuits (SPEC_FULL.md §9 decision 6).
		left := g.visitExpression(e.Left)
		right := g.visitExpression(e.Right)
		t := g.newTemp()
		g.emit(Instruction{Op: Binary, Target: t, Left: left, Operator: e.Operator, Right: right})
		return t

	case *ast.FunctionCall:
		args := make([]string, 0, len(e.Arguments))
		for _, a := range e.Arguments {
			args = append(args, g.visitExpression(a))
		}
		t := g.newTemp()
		g.emit(Instruction{Op: Call, Target: t, Callee: e.Callee.Name, Args: args})
		return t

	default:
		panic(fmt.Sprintf("ir: unreachable AST expression type %T", expr))
	}
}
