// Package parser implements the recursive-descent parser described in
// spec.md §4.2, turning a token stream into an *ast.Program.
package parser

import (
	"fmt"
	"strconv"

	"github.com/mohamedagwa1/fekra/internal/ast"
	"github.com/mohamedagwa1/fekra/internal/lexer"
)

// ParseError is the Syntactic member of the error taxonomy in
// spec.md §7: an unexpected token, an unexpected EOF, or a missing
// terminator. All of them are fatal to parsing, per spec.md §4.2.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parser consumes a pre-lexed token slice (comments already filtered
// out by lexer.Lex). Grounded on the teacher's recursive-descent
// shape — one method per grammar production — but, unlike the
// teacher's error-accumulating parser, the first ParseError aborts
// parsing immediately, matching spec.md §4.2/§7.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over tokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) current() (lexer.Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return lexer.Token{}, false
}

func (p *Parser) peekAt(offset int) (lexer.Token, bool) {
	idx := p.pos + offset
	if idx < len(p.tokens) {
		return p.tokens[idx], true
	}
	return lexer.Token{}, false
}

func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) unexpectedEOF() error {
	pos := lexer.Position{Line: 1, Column: 1}
	if len(p.tokens) > 0 {
		pos = p.tokens[len(p.tokens)-1].Pos
	}
	return &ParseError{Message: "unexpected end of input", Pos: pos}
}

// expect consumes the current token if it has the given type,
// otherwise returns a ParseError naming what was expected and found.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	tok, ok := p.current()
	if !ok {
		return lexer.Token{}, p.unexpectedEOF()
	}
	if tok.Type != t {
		return lexer.Token{}, &ParseError{
			Message: fmt.Sprintf("expected %s at %s, got %s %q", t, tok.Pos, tok.Type, tok.Literal),
			Pos:     tok.Pos,
		}
	}
	p.advance()
	return tok, nil
}

// expectKeyword consumes the current token if it is the KEYWORD tok
// with the given literal.
func (p *Parser) expectKeyword(literal string) (lexer.Token, error) {
	tok, ok := p.current()
	if !ok {
		return lexer.Token{}, p.unexpectedEOF()
	}
	if tok.Type != lexer.KEYWORD || tok.Literal != literal {
		return lexer.Token{}, &ParseError{
			Message: fmt.Sprintf("expected keyword %q at %s, got %s %q", literal, tok.Pos, tok.Type, tok.Literal),
			Pos:     tok.Pos,
		}
	}
	p.advance()
	return tok, nil
}

func (p *Parser) isKeyword(literal string) bool {
	tok, ok := p.current()
	return ok && tok.Type == lexer.KEYWORD && tok.Literal == literal
}

func (p *Parser) isOperator(literal string) bool {
	tok, ok := p.current()
	return ok && tok.Type == lexer.OPERATOR && tok.Literal == literal
}

func (p *Parser) isType(t lexer.TokenType) bool {
	tok, ok := p.current()
	return ok && tok.Type == t
}

// ParseProgram parses the whole token stream into a Program, per
// spec.md §4.2's "Top level is a sequence of statements."
func ParseProgram(tokens []lexer.Token) (*ast.Program, error) {
	p := New(tokens)
	prog := &ast.Program{}
	for {
		if _, ok := p.current(); !ok {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.unexpectedEOF()
	}

	if tok.Type == lexer.KEYWORD {
		switch tok.Literal {
		case "عرف":
			return p.parseVariableDecl()
		case "لو":
			return p.parseIfStatement()
		case "بينما":
			return p.parseWhileStatement()
		case "دالة":
			return p.parseFunctionDecl()
		case "عرض":
			return p.parsePrintStatement()
		case "اعد":
			return p.parseReturnStatement()
		}
	}

	if tok.Type == lexer.IDENT {
		next, hasNext := p.peekAt(1)
		if hasNext && next.Type == lexer.OPERATOR && next.Literal == "=" {
			return p.parseAssignment()
		}
		if hasNext && next.Type == lexer.LPAREN {
			return p.parseFunctionCallStatement()
		}
	}

	return nil, &ParseError{
		Message: fmt.Sprintf("unexpected token %s %q at %s", tok.Type, tok.Literal, tok.Pos),
		Pos:     tok.Pos,
	}
}

func (p *Parser) parseVariableDecl() (ast.Statement, error) {
	kw, err := p.expectKeyword("عرف")
	if err != nil {
		return nil, err
	}
	idTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDecl{Token: kw, Id: &ast.Identifier{Token: idTok, Name: idTok.Literal}}

	if p.isOperator("=") {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}

	if _, err := p.expect(lexer.TERMINATOR); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	idTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOperatorEquals(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TERMINATOR); err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: idTok, Id: &ast.Identifier{Token: idTok, Name: idTok.Literal}, Value: value}, nil
}

func (p *Parser) expectOperatorEquals() (lexer.Token, error) {
	tok, ok := p.current()
	if !ok {
		return lexer.Token{}, p.unexpectedEOF()
	}
	if tok.Type != lexer.OPERATOR || tok.Literal != "=" {
		return lexer.Token{}, &ParseError{
			Message: fmt.Sprintf("expected '=' at %s, got %s %q", tok.Pos, tok.Type, tok.Literal),
			Pos:     tok.Pos,
		}
	}
	p.advance()
	return tok, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.isType(lexer.RBRACE) {
		if _, ok := p.current(); !ok {
			return nil, p.unexpectedEOF()
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	kw, err := p.expectKeyword("لو")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.IfStatement{Token: kw, Test: test, Consequent: body}, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	kw, err := p.expectKeyword("بينما")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: kw, Test: test, Body: body}, nil
}

func (p *Parser) parseFunctionDecl() (ast.Statement, error) {
	kw, err := p.expectKeyword("دالة")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Identifier
	if p.isType(lexer.IDENT) {
		first, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Identifier{Token: first, Name: first.Literal})
		for p.isType(lexer.COMMA) {
			p.advance()
			tok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Identifier{Token: tok, Name: tok.Literal})
		}
	}

	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{
		Token:  kw,
		Name:   &ast.Identifier{Token: nameTok, Name: nameTok.Literal},
		Params: params,
		Body:   body,
	}, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	kw, err := p.expectKeyword("عرض")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TERMINATOR); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Token: kw, Expression: expr}, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	kw, err := p.expectKeyword("اعد")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var value ast.Expression
	if !p.isType(lexer.RPAREN) {
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TERMINATOR); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Token: kw, Value: value}, nil
}

func (p *Parser) parseFunctionCallStatement() (ast.Statement, error) {
	call, err := p.parseFunctionCallExpr()
	if err != nil {
		return nil, err
	}
	// The terminator is optional for a call used as a statement,
	// per spec.md §4.2.
	if p.isType(lexer.TERMINATOR) {
		p.advance()
	}
	return call, nil
}

func (p *Parser) parseFunctionCallExpr() (*ast.FunctionCall, error) {
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.isType(lexer.RPAREN) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.isType(lexer.COMMA) {
			p.advance()
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{
		Token:     nameTok,
		Callee:    &ast.Identifier{Token: nameTok, Name: nameTok.Literal},
		Arguments: args,
	}, nil
}

// parseExpression is the grammar's entry point: spec.md §4.2's
// `logical` production.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseLogical()
}

var logicalOps = map[string]bool{"&&": true, "||": true}

func (p *Parser) parseLogical() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.current()
		if !ok || tok.Type != lexer.OPERATOR || !logicalOps[tok.Literal] {
			break
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	for p.isType(lexer.COMPARISON_OP) {
		tok, _ := p.current()
		p.advance()
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
	}
	return left, nil
}

var arithOps = map[string]bool{"+": true, "-": true}
var termOps = map[string]bool{"*": true, "/": true}

func (p *Parser) parseArith() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.current()
		if !ok || tok.Type != lexer.OPERATOR || !arithOps[tok.Literal] {
			break
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.current()
		if !ok || tok.Type != lexer.OPERATOR || !termOps[tok.Literal] {
			break
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.unexpectedEOF()
	}

	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("invalid number literal %q at %s", tok.Literal, tok.Pos), Pos: tok.Pos}
		}
		return &ast.Literal{Token: tok, Kind: ast.IntLiteral, Int: n}, nil
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.StringLiteral, Str: tok.Literal}, nil
	case lexer.IDENT:
		next, hasNext := p.peekAt(1)
		if hasNext && next.Type == lexer.LPAREN {
			return p.parseFunctionCallExpr()
		}
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}, nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, &ParseError{
		Message: fmt.Sprintf("unexpected token %s %q at %s", tok.Type, tok.Literal, tok.Pos),
		Pos:     tok.Pos,
	}
}
