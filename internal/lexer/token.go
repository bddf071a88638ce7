// Package lexer turns Fekra source text into a token stream.
package lexer

import "fmt"

// TokenType identifies the lexical category of a Token.
type TokenType int

// Token type constants, grouped the way spec.md §3 groups them.
const (
	ILLEGAL TokenType = iota
	EOF

	COMMENT

	IDENT
	NUMBER
	STRING

	KEYWORD

	COMPARISON_OP
	OPERATOR

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA

	TERMINATOR
)

var tokenTypeNames = map[TokenType]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	COMMENT:       "COMMENT",
	IDENT:         "IDENTIFIER",
	NUMBER:        "NUMBER",
	STRING:        "STRING",
	KEYWORD:       "KEYWORD",
	COMPARISON_OP: "COMPARISON_OP",
	OPERATOR:      "OPERATOR",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	LBRACE:        "LBRACE",
	RBRACE:        "RBRACE",
	COMMA:         "COMMA",
	TERMINATOR:    "TERMINATOR",
}

// String renders the token type's name, e.g. for diagnostics.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position locates a token in the source text. Column and Line are
// 1-indexed; Offset is a 0-indexed rune (not byte) offset into the source.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a tagged (kind, lexeme) pair. Literal preserves the exact
// source bytes, including surrounding quotes for string literals.
type Token struct {
	Literal string
	Type    TokenType
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// Keywords maps each recognized keyword lexeme to its meaning, in the
// order spec.md §4.1's recognition rule 2 lists them.
var Keywords = map[string]string{
	"عرف":   "declare",
	"لو":    "if",
	"بينما": "while",
	"دالة":  "function",
	"عرض":   "print",
	"اعد":   "return",
}

// IsKeyword reports whether literal is a recognized keyword lexeme.
func IsKeyword(literal string) bool {
	_, ok := Keywords[literal]
	return ok
}
