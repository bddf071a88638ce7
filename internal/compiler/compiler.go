// Package compiler wires the pipeline stages together, grounded on
// original_source/main.py's stage-by-stage wiring (minus the Flask
// HTTP layer in original_source/app.py, which is out of scope —
// spec.md §1's Non-goal on transport).
package compiler

import (
	"github.com/mohamedagwa1/fekra/internal/ast"
	"github.com/mohamedagwa1/fekra/internal/cerrors"
	"github.com/mohamedagwa1/fekra/internal/ir"
	"github.com/mohamedagwa1/fekra/internal/lexer"
	"github.com/mohamedagwa1/fekra/internal/optimizer"
	"github.com/mohamedagwa1/fekra/internal/parser"
	"github.com/mohamedagwa1/fekra/internal/semantic"
	"github.com/mohamedagwa1/fekra/internal/target"
	"github.com/mohamedagwa1/fekra/internal/vm"
)

// Result is the conceptual entry point's return shape from spec.md §6:
// every intermediate artifact plus the VM's printed output.
type Result struct {
	Tokens []lexer.Token
	AST    *ast.Program
	IR     []ir.Instruction
	Target []target.Instruction
	Output []vm.Value
}

// CompileAndRun lexes, parses, analyzes, lowers, optimizes, lowers
// again to stack code, and executes source — returning the first
// stage error encountered, wrapped with its taxonomy Stage (spec.md §7),
// or the full Result on success. Unlike original_source/main.py, the
// optimizer's output is what actually reaches the target generator
// (SPEC_FULL.md §4.5 — the source pipeline computes it and then
// discards it).
func CompileAndRun(source string) (*Result, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		lexErr := err.(*lexer.LexError)
		return nil, cerrors.New(cerrors.Lexical, lexErr.Message, lexErr.Pos, source)
	}

	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		parseErr := err.(*parser.ParseError)
		return nil, cerrors.New(cerrors.Syntactic, parseErr.Message, parseErr.Pos, source)
	}

	if err := semantic.Analyze(prog); err != nil {
		semErr := err.(*semantic.SemanticError)
		return nil, cerrors.New(cerrors.Semantic, semErr.Message, semErr.Pos, source)
	}

	irCode := ir.Generate(prog)
	irCode = optimizer.Optimize(irCode)

	targetCode, err := target.Generate(irCode)
	if err != nil {
		return nil, cerrors.New(cerrors.Lowering, err.Error(), lexer.Position{}, source)
	}

	output, err := vm.Run(targetCode)
	if err != nil {
		runErr := err.(*vm.RuntimeError)
		return nil, cerrors.New(cerrors.Runtime, runErr.Message, lexer.Position{}, source)
	}

	return &Result{
		Tokens: tokens,
		AST:    prog,
		IR:     irCode,
		Target: targetCode,
		Output: output,
	}, nil
}
