package ast

import (
	"strings"

	"github.com/strager/cfront/token"
)

// Type is a type specifier: optional sign, optional length, required base.
type Type struct {
	Sign   *token.Token // signed, unsigned
	Length *token.Token // short, long
	Base   token.Token  // int, long, short, float, double, char
}

// NewType returns a type with only a base specifier.
func NewType(base string) *Type {
	return &Type{Base: token.Token{Lexeme: base, Kind: token.Keyword}}
}

func (t *Type) Pos() token.Position {
	switch {
	case t.Sign != nil:
		return t.Sign.Pos
	case t.Length != nil:
		return t.Length.Pos
	}
	return t.Base.Pos
}

// BaseName is the base specifier's text.
func (t *Type) BaseName() string { return t.Base.Lexeme }

// String renders the specifier as written, e.g. "unsigned long int".
func (t *Type) String() string {
	var parts []string
	if t.Sign != nil {
		parts = append(parts, t.Sign.Lexeme)
	}
	if t.Length != nil {
		parts = append(parts, t.Length.Lexeme)
	}
	parts = append(parts, t.Base.Lexeme)
	return strings.Join(parts, " ")
}

// Equal compares every specifier by text. A nil Type is void and only equals
// another nil Type.
func (t *Type) Equal(u *Type) bool {
	if t == nil || u == nil {
		return t == u
	}
	return optLexeme(t.Sign) == optLexeme(u.Sign) &&
		optLexeme(t.Length) == optLexeme(u.Length) &&
		t.Base.Lexeme == u.Base.Lexeme
}

func optLexeme(tok *token.Token) string {
	if tok == nil {
		return ""
	}
	return tok.Lexeme
}
