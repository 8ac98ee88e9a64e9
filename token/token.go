// Package token defines the classified lexemes produced by the lexer.
//
// A Token's kind is derived from its text alone, so two tokens with the same
// lexeme are interchangeable for lookups even when they sit at different
// positions.
package token

import (
	"fmt"
	"regexp"
	"slices"
)

// Kind classifies a lexeme.
type Kind int

const (
	Identifier Kind = iota
	Keyword

	// Constants
	Int
	Float
	Double
	Symbol // character literal
	String
	Bool

	// Operators
	Assign
	Additive
	Multiplicative
	Logical
	Comparison
	IncDec
	Not
	Ref
	OtherAssign // *= /= += -= %=

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	SingleQuote
	DoubleQuote

	Unknown

	// EOF is never produced by the lexer. The parser synthesizes it past the
	// last token.
	EOF
)

var kindNames = [...]string{
	Identifier:     "Identifier",
	Keyword:        "Keyword",
	Int:            "Int Constant",
	Float:          "Float Constant",
	Double:         "Double Constant",
	Symbol:         "Symbol Constant",
	String:         "String Constant",
	Bool:           "Bool Constant",
	Assign:         "Assign Operator",
	Additive:       "Additive Operator",
	Multiplicative: "Multiplicative Operator",
	Logical:        "Logical Operator",
	Comparison:     "Comparison Operator",
	IncDec:         "IncDec Operator",
	Not:            "Not Operator",
	Ref:            "Ref Operator",
	OtherAssign:    "Other Operator",
	LParen:         "Left Paren",
	RParen:         "Right Paren",
	LBrace:         "Left Brace",
	RBrace:         "Right Brace",
	LBracket:       "Left Bracket",
	RBracket:       "Right Bracket",
	Comma:          "Comma",
	Colon:          "Colon",
	Semicolon:      "Semicolon",
	SingleQuote:    "Single Quote",
	DoubleQuote:    "Double Quote",
	Unknown:        "Unknown",
	EOF:            "EOF",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsConstant reports whether k is one of the literal kinds.
func (k Kind) IsConstant() bool {
	return k >= Int && k <= Bool
}

// IsBinaryOperator reports whether k may join two operands.
func (k Kind) IsBinaryOperator() bool {
	switch k {
	case Additive, Multiplicative, Logical, Comparison:
		return true
	}
	return false
}

// IsQuote reports whether k is a stray quote character.
func (k Kind) IsQuote() bool {
	return k == SingleQuote || k == DoubleQuote
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q in the source.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

type Token struct {
	Lexeme string
	Pos    Position
	Kind   Kind
}

// New classifies lexeme and returns the token.
func New(lexeme string, pos Position) Token {
	return Token{Lexeme: lexeme, Pos: pos, Kind: Classify(lexeme)}
}

// Equal compares tokens by lexeme only.
func (t Token) Equal(other Token) bool {
	return t.Lexeme == other.Lexeme
}

func (t Token) String() string {
	return fmt.Sprintf("%q (%s) at %s", t.Lexeme, t.Kind, t.Pos)
}

// Unique drops every token whose lexeme was already seen, keeping the first
// occurrence.
func Unique(tokens []Token) []Token {
	seen := make(map[string]bool, len(tokens))
	var out []Token
	for _, tok := range tokens {
		if seen[tok.Lexeme] {
			continue
		}
		seen[tok.Lexeme] = true
		out = append(out, tok)
	}
	return out
}

var Keywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "int",
	"long", "register", "return", "short", "signed", "unsigned", "sizeof",
	"static", "struct", "switch", "typedef", "union", "void", "volatile",
	"while",
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	return slices.Contains(Keywords, word)
}

type pattern struct {
	re   *regexp.Regexp
	kind Kind
}

// Order matters: numeric literals go from most to least specific, operators
// are tried before punctuation.
var patterns = []pattern{
	{regexp.MustCompile(`^-?\d+$`), Int},
	{regexp.MustCompile(`^-?\d+(?:\.\d+)?[fF]?$`), Float},
	{regexp.MustCompile(`^-?\d+(?:\.\d+)?[dD]?$`), Double},
	{regexp.MustCompile(`^"[^"]*"$`), String},
	{regexp.MustCompile(`^'[^']'$`), Symbol},
	{regexp.MustCompile(`^(?:true|false)$`), Bool},
	{regexp.MustCompile(`^[a-zA-Z_]\w*$`), Identifier},
	{regexp.MustCompile(`^=$`), Assign},
	{regexp.MustCompile(`^[+\-]$`), Additive},
	{regexp.MustCompile(`^[*/%]$`), Multiplicative},
	{regexp.MustCompile(`^(?:==|!=|<=|>=|<|>)$`), Comparison},
	{regexp.MustCompile(`^(?:\+\+|--)$`), IncDec},
	{regexp.MustCompile(`^(?:\*=|/=|\+=|-=|%=)$`), OtherAssign},
	{regexp.MustCompile(`^(?:&&|\|\|)$`), Logical},
}

var punctuation = map[string]Kind{
	"!": Not,
	"&": Ref,
	",": Comma,
	":": Colon,
	";": Semicolon,
	"'": SingleQuote,
	`"`: DoubleQuote,
	"(": LParen,
	")": RParen,
	"{": LBrace,
	"}": RBrace,
	"[": LBracket,
	"]": RBracket,
}

// Classify returns the kind of a single trimmed lexeme.
func Classify(lexeme string) Kind {
	for _, p := range patterns {
		if !p.re.MatchString(lexeme) {
			continue
		}
		if p.kind == Identifier && IsKeyword(lexeme) {
			return Keyword
		}
		return p.kind
	}
	if kind, ok := punctuation[lexeme]; ok {
		return kind
	}
	return Unknown
}
