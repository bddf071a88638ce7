// Package ast defines the Abstract Syntax Tree node types produced by
// the parser, per the variants enumerated in spec.md §3.
//
// The tree is a plain tagged sum: one struct per node kind, children
// owned by their parent, no back-pointers — per the Design Note in
// spec.md §9 on the AST's shape.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mohamedagwa1/fekra/internal/lexer"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	Pos() lexer.Position
	String() string
}

// Statement is implemented by AST nodes that appear in a statement
// list (Program body, If/While/Function bodies).
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by AST nodes that produce a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered sequence of top-level
// statements, per spec.md §3.
type Program struct {
	Body []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Body {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier names a variable or function.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// LiteralKind distinguishes the two scalar literal forms spec.md §3
// allows at parse time (numeric decoded to an integer, string kept
// with its surrounding quotes).
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	StringLiteral
)

// Literal is a constant value: an integer decoded from the NUMBER
// token, or a string retaining the surrounding quotes from the STRING
// token (the VM strips them at PUSH time, per spec.md §4.2).
type Literal struct {
	Token lexer.Token
	Str   string // includes surrounding quotes when Kind == StringLiteral
	Int   int64
	Kind  LiteralKind
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string {
	if l.Kind == StringLiteral {
		return l.Str
	}
	return fmt.Sprintf("%d", l.Int)
}

// BinaryExpression covers both arithmetic (+ - * /) and comparison
// (== != < <= > >= === !==) operators, per spec.md §3.
type BinaryExpression struct {
	Left     Expression
	Right    Expression
	Token    lexer.Token
	Operator string
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// LogicalExpression covers && and ||, per spec.md §3. Kept distinct
// from BinaryExpression; the IR generator has its own case for it,
// though it lowers it to the same ir.Binary shape, so the target
// generator only ever sees that ir.Binary instruction.
type LogicalExpression struct {
	Left     Expression
	Right    Expression
	Token    lexer.Token
	Operator string
}

func (l *LogicalExpression) expressionNode()      {}
func (l *LogicalExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LogicalExpression) Pos() lexer.Position  { return l.Token.Pos }
func (l *LogicalExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left.String(), l.Operator, l.Right.String())
}

// FunctionCall is usable both as an Expression (inside a larger
// expression) and as a Statement (a bare call followed by an optional
// terminator), per spec.md §3 and §4.2.
type FunctionCall struct {
	Callee    *Identifier
	Token     lexer.Token
	Arguments []Expression
}

func (f *FunctionCall) expressionNode()      {}
func (f *FunctionCall) statementNode()       {}
func (f *FunctionCall) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionCall) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionCall) String() string {
	args := make([]string, 0, len(f.Arguments))
	for _, a := range f.Arguments {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", f.Callee.Name, strings.Join(args, ", "))
}

// VariableDecl declares a new binding, optionally initialized; an
// omitted initializer defaults to 0 at IR-generation time (spec.md §4.4).
type VariableDecl struct {
	Init  Expression // nil when absent
	Id    *Identifier
	Token lexer.Token
}

func (v *VariableDecl) statementNode()       {}
func (v *VariableDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDecl) Pos() lexer.Position  { return v.Token.Pos }
func (v *VariableDecl) String() string {
	if v.Init != nil {
		return fmt.Sprintf("عرف %s = %s؟", v.Id.Name, v.Init.String())
	}
	return fmt.Sprintf("عرف %s؟", v.Id.Name)
}

// Assignment rebinds an already-declared identifier.
type Assignment struct {
	Value Expression
	Id    *Identifier
	Token lexer.Token
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s؟", a.Id.Name, a.Value.String())
}

// IfStatement has no else clause — the source grammar never grew one
// (spec.md §9's "Undocumented else" note).
type IfStatement struct {
	Test       Expression
	Token      lexer.Token
	Consequent []Statement
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString(fmt.Sprintf("لو (%s) {\n", i.Test.String()))
	for _, s := range i.Consequent {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// WhileStatement loops while Test is non-zero.
type WhileStatement struct {
	Test  Expression
	Token lexer.Token
	Body  []Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString(fmt.Sprintf("بينما (%s) {\n", w.Test.String()))
	for _, s := range w.Body {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// FunctionDeclaration declares a named function with positional
// parameters and a statement-list body.
type FunctionDeclaration struct {
	Name   *Identifier
	Token  lexer.Token
	Params []*Identifier
	Body   []Statement
}

func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDeclaration) String() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Name)
	}
	var out bytes.Buffer
	out.WriteString(fmt.Sprintf("دالة %s(%s) {\n", f.Name.Name, strings.Join(params, ", ")))
	for _, s := range f.Body {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStatement optionally carries a value; a bare "اعد ( ) ؟"
// has a nil Value (spec.md §3), which the IR generator lowers to
// `return 0`.
type ReturnStatement struct {
	Value Expression // nil when absent
	Token lexer.Token
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value != nil {
		return fmt.Sprintf("اعد (%s)؟", r.Value.String())
	}
	return "اعد ()؟"
}

// PrintStatement prints the value of a single expression.
type PrintStatement struct {
	Expression Expression
	Token      lexer.Token
}

func (p *PrintStatement) statementNode()       {}
func (p *PrintStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStatement) Pos() lexer.Position  { return p.Token.Pos }
func (p *PrintStatement) String() string {
	return fmt.Sprintf("عرض (%s)؟", p.Expression.String())
}
