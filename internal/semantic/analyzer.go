package semantic

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/ast"
	"github.com/mohamedagwa1/fekra/internal/lexer"
)

// SemanticError is the Semantic member of the error taxonomy in
// spec.md §7: redeclaration of a name already bound in the current
// scope, or use of a name that was never declared in any enclosing
// scope.
type SemanticError struct {
	Message string
	Pos     lexer.Position
}

func (e *SemanticError) Error() string {
	return e.Message
}

// Analyzer walks a Program, enforcing spec.md §4.3's scoping rules.
// Unlike the original Python analyzer — which silently `pass`es on any
// AST node type it doesn't recognize — every node type is handled
// explicitly, and the first SemanticError found aborts the walk
// (spec.md §7: a stage's output must be error-free before the next
// stage runs).
type Analyzer struct {
	scope *SymbolTable
}

// NewAnalyzer creates an Analyzer with a fresh top-level scope.
func NewAnalyzer() *Analyzer {
	return &Analyzer{scope: NewSymbolTable()}
}

// Analyze walks prog and returns the first semantic error encountered,
// if any.
func Analyze(prog *ast.Program) error {
	a := NewAnalyzer()
	return a.analyzeStatements(prog.Body)
}

func (a *Analyzer) analyzeStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		if s.Init != nil {
			if err := a.analyzeExpression(s.Init); err != nil {
				return err
			}
		}
		if !a.scope.Define(s.Id.Name) {
			return &SemanticError{
				Message: fmt.Sprintf("variable %q already declared in this scope at %s", s.Id.Name, s.Pos()),
				Pos:     s.Pos(),
			}
		}
		return nil

	case *ast.Assignment:
		if _, ok := a.scope.Resolve(s.Id.Name); !ok {
			return &SemanticError{
				Message: fmt.Sprintf("variable %q not declared at %s", s.Id.Name, s.Pos()),
				Pos:     s.Pos(),
			}
		}
		return a.analyzeExpression(s.Value)

	case *ast.IfStatement:
		if err := a.analyzeExpression(s.Test); err != nil {
			return err
		}
		return a.analyzeScopedBlock(s.Consequent)

	case *ast.WhileStatement:
		if err := a.analyzeExpression(s.Test); err != nil {
			return err
		}
		return a.analyzeScopedBlock(s.Body)

	case *ast.FunctionDeclaration:
		// Defined in the enclosing scope before the body is walked so
		// recursive calls resolve, per spec.md §4.3.
		if !a.scope.Define(s.Name.Name) {
			return &SemanticError{
				Message: fmt.Sprintf("function %q already declared in this scope at %s", s.Name.Name, s.Pos()),
				Pos:     s.Pos(),
			}
		}
		outer := a.scope
		a.scope = NewEnclosedSymbolTable(outer)
		defer func() { a.scope = outer }()
		for _, param := range s.Params {
			if !a.scope.Define(param.Name) {
				return &SemanticError{
					Message: fmt.Sprintf("parameter %q already declared at %s", param.Name, param.Pos()),
					Pos:     param.Pos(),
				}
			}
		}
		return a.analyzeStatements(s.Body)

	case *ast.ReturnStatement:
		if s.Value != nil {
			return a.analyzeExpression(s.Value)
		}
		return nil

	case *ast.PrintStatement:
		return a.analyzeExpression(s.Expression)

	case *ast.FunctionCall:
		return a.analyzeExpression(s)

	default:
		return &SemanticError{
			Message: fmt.Sprintf("unhandled statement type %T at %s", stmt, stmt.Pos()),
			Pos:     stmt.Pos(),
		}
	}
}

func (a *Analyzer) analyzeScopedBlock(body []ast.Statement) error {
	outer := a.scope
	a.scope = NewEnclosedSymbolTable(outer)
	defer func() { a.scope = outer }()
	return a.analyzeStatements(body)
}

func (a *Analyzer) analyzeExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Literal:
		return nil

	case *ast.Identifier:
		if _, ok := a.scope.Resolve(e.Name); !ok {
			return &SemanticError{
				Message: fmt.Sprintf("variable %q not declared at %s", e.Name, e.Pos()),
				Pos:     e.Pos(),
			}
		}
		return nil

	case *ast.BinaryExpression:
		if err := a.analyzeExpression(e.Left); err != nil {
			return err
		}
		return a.analyzeExpression(e.Right)

	case *ast.LogicalExpression:
		if err := a.analyzeExpression(e.Left); err != nil {
			return err
		}
		return a.analyzeExpression(e.Right)

	case *ast.FunctionCall:
		if _, ok := a.scope.Resolve(e.Callee.Name); !ok {
			return &SemanticError{
				Message: fmt.Sprintf("function %q not declared at %s", e.Callee.Name, e.Pos()),
				Pos:     e.Pos(),
			}
		}
		for _, arg := range e.Arguments {
			if err := a.analyzeExpression(arg); err != nil {
				return err
			}
		}
		return nil

	default:
		return &SemanticError{
			Message: fmt.Sprintf("unhandled expression type %T at %s", expr, expr.Pos()),
			Pos:     expr.Pos(),
		}
	}
}
