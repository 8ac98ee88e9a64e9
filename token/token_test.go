package token

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		lexeme string
		kind   Kind
	}{
		{"42", Int},
		{"-7", Int},
		{"1.5", Float},
		{"2f", Float},
		{"2.25F", Float},
		{"1.5d", Double},
		{"3D", Double},
		{`"hello world"`, String},
		{"'a'", Symbol},
		{"true", Bool},
		{"false", Bool},
		{"main", Identifier},
		{"_tmp1", Identifier},
		{"int", Keyword},
		{"unsigned", Keyword},
		{"void", Keyword},
		{"=", Assign},
		{"+", Additive},
		{"-", Additive},
		{"*", Multiplicative},
		{"%", Multiplicative},
		{"<=", Comparison},
		{"!=", Comparison},
		{">", Comparison},
		{"++", IncDec},
		{"--", IncDec},
		{"+=", OtherAssign},
		{"&&", Logical},
		{"||", Logical},
		{"!", Not},
		{"&", Ref},
		{",", Comma},
		{":", Colon},
		{";", Semicolon},
		{"'", SingleQuote},
		{`"`, DoubleQuote},
		{"(", LParen},
		{")", RParen},
		{"{", LBrace},
		{"}", RBrace},
		{"[", LBracket},
		{"]", RBracket},
		{"@", Unknown},
		{"x-1", Unknown},
		{"'ab'", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			be.Equal(t, Classify(tt.lexeme), tt.kind)
		})
	}
}

func TestKindPredicates(t *testing.T) {
	be.True(t, Int.IsConstant())
	be.True(t, Bool.IsConstant())
	be.True(t, !Identifier.IsConstant())
	be.True(t, !Assign.IsConstant())

	be.True(t, Additive.IsBinaryOperator())
	be.True(t, Logical.IsBinaryOperator())
	be.True(t, !IncDec.IsBinaryOperator())
	be.True(t, !Assign.IsBinaryOperator())

	be.True(t, SingleQuote.IsQuote())
	be.True(t, !Symbol.IsQuote())
}

func TestTokenEqualityIgnoresPosition(t *testing.T) {
	a := New("x", Position{1, 5})
	b := New("x", Position{7, 2})
	c := New("y", Position{1, 5})
	be.True(t, a.Equal(b))
	be.True(t, !a.Equal(c))
}

func TestUnique(t *testing.T) {
	tokens := []Token{
		New("int", Position{1, 1}),
		New("x", Position{1, 5}),
		New("int", Position{2, 1}),
		New(";", Position{1, 6}),
		New("x", Position{2, 5}),
	}
	unique := Unique(tokens)
	be.Equal(t, len(unique), 3)
	be.Equal(t, unique[0].Lexeme, "int")
	be.Equal(t, unique[0].Pos, Position{1, 1})
	be.Equal(t, unique[1].Lexeme, "x")
	be.Equal(t, unique[2].Lexeme, ";")
}

func TestPosition(t *testing.T) {
	be.Equal(t, Position{3, 14}.String(), "3:14")
	be.True(t, Position{1, 9}.Before(Position{2, 1}))
	be.True(t, Position{2, 1}.Before(Position{2, 3}))
	be.True(t, !Position{2, 3}.Before(Position{2, 3}))
}

func TestKindString(t *testing.T) {
	be.Equal(t, Int.String(), "Int Constant")
	be.Equal(t, LBrace.String(), "Left Brace")
	be.Equal(t, Kind(999).String(), "Kind(999)")
}
