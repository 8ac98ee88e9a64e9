package sema

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/lexer"
	"github.com/strager/cfront/parser"
	"github.com/strager/cfront/token"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Analyze(src)
	be.Err(t, err, nil)
	prog, err := parser.Parse(tokens)
	be.Err(t, err, nil)
	return prog
}

func TestCheckAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfront.sema")
	defer teardown()

	tests := []struct {
		name string
		src  string
	}{
		{"minimal", "int main() { return 0; }"},
		{"call earlier function", "int add(int a, int b) { return a + b; } int main() { int x = add(1, 2); return x; }"},
		{"for loop", "int f() { int s = 0; for (int i = 0; i < 10; i++) { s = s + i; } return s; }"},
		{"sibling blocks reuse names", "int f(int x) { if (x < 1) { int y = 1; } else { int y = 2; } return x; }"},
		{"while and do", "int f() { int n = 3; while (n > 0) { n = n - 1; } do { n++; } while (n < 3); return n; }"},
		{"switch", "int f(int x) { switch (x) { case 1: x = 2; break; default: x = 3; } return x; }"},
		{"void call statement", "void log(int v) { return v; } int main() { log(1); return 0; }"},
		{"float double char", "double f(char c, float g) { double d = 2.5d; c = 'x'; g = 1.5f; return d; }"},
		{"pointer", "int f() { int a = 1; int *p = &a; return *p; }"},
		{"typedef", "int f() { typedef int size; return 0; }"},
		{"negated condition", "int f(int x) { if (!(x < 1)) { return 1; } return 0; }"},
		{"assignment initializes", "int f() { int x; x = 2; return x; }"},
		{"short and long", "long f(short s) { long l = 5; short t = s; return l; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Err(t, Check(parse(t, tt.src)), nil)
		})
	}
}

func TestCheckRuleViolations(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    error
		message string
	}{
		{
			name:    "missing return",
			src:     "int f() { int x = 1; }",
			want:    ErrNoReturn,
			message: "function f() has no return statements",
		},
		{
			name: "missing return before type errors",
			src:  "int f() { double x = 5; }",
			want: ErrNoReturn,
		},
		{
			name: "nested return does not count",
			src:  "int f() { { return 1; } }",
			want: ErrNoReturn,
		},
		{
			name:    "duplicate declaration",
			src:     "int f() { int x = 1; int x = 2; return x; }",
			want:    ErrAlreadyDefined,
			message: "variable x is already defined at position 1:26",
		},
		{
			name: "duplicate declaration before initializer",
			src:  "int f() { int x = 1; int x = 2.5d; return x; }",
			want: ErrAlreadyDefined,
		},
		{
			name: "shadowing an outer frame",
			src:  "int f(int x) { { int x = 1; } return x; }",
			want: ErrAlreadyDefined,
		},
		{
			name: "for variable clashes",
			src:  "int f() { int i = 0; for (int i = 0; i < 3; i++) { } return i; }",
			want: ErrAlreadyDefined,
		},
		{
			name:    "duplicate parameter",
			src:     "int f(int a, int a) { return a; }",
			want:    ErrAlreadyDefined,
			message: "parameter a is already defined at position 1:18",
		},
		{
			name:    "arity",
			src:     "int g(int a) { return a; } int f() { return g(); }",
			want:    ErrArity,
			message: "wrong number of arguments to g(): got 0, want 1",
		},
		{
			name: "redefined function",
			src:  "int f() { return 0; } int f() { return 1; }",
			want: ErrRedefinedFunction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(parse(t, tt.src))
			be.Err(t, err, tt.want)
			if tt.message != "" {
				be.Equal(t, err.Error(), tt.message)
			}
		})
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		required string
		found    string
		pos      token.Position
	}{
		{
			name:     "integer constant for double",
			src:      "int f() { double x = 5; return x; }",
			required: "double",
			found:    "5",
			pos:      token.Position{Line: 1, Column: 22},
		},
		{
			name:     "char argument for int parameter",
			src:      "int g(int a) { return a; } int f() { return g('c'); }",
			required: "int",
			found:    "'c'",
			pos:      token.Position{Line: 1, Column: 47},
		},
		{
			name:     "call return type",
			src:      "double g() { return 1.5d; } int f() { return g(); }",
			required: "int",
			found:    "double",
			pos:      token.Position{Line: 1, Column: 46},
		},
		{
			name:     "void call in typed position",
			src:      "void g() { return 0; } int f() { int x = g(); return x; }",
			required: "int",
			found:    "void",
			pos:      token.Position{Line: 1, Column: 42},
		},
		{
			name:     "comparison outside condition",
			src:      "int f(int a) { int b = a < 1; return b; }",
			required: "int",
			found:    "Comparison Operator",
			pos:      token.Position{Line: 1, Column: 26},
		},
		{
			name:     "variable of another base",
			src:      "int f(double d) { int x = d; return x; }",
			required: "int",
			found:    "double d",
			pos:      token.Position{Line: 1, Column: 27},
		},
		{
			name:     "return type",
			src:      "char f() { return 1; }",
			required: "char",
			found:    "1",
			pos:      token.Position{Line: 1, Column: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(parse(t, tt.src))
			var mismatch *TypeMismatchError
			be.True(t, errors.As(err, &mismatch))
			be.Equal(t, mismatch.Required.String(), tt.required)
			be.Equal(t, mismatch.Found, tt.found)
			be.Equal(t, mismatch.Pos, tt.pos)
		})
	}
}

func TestCheckTypeMismatchMessage(t *testing.T) {
	err := Check(parse(t, "int f() { double x = 5; return x; }"))
	be.Equal(t, err.Error(), "required double, but found 5 at position 1:22")
}

func TestCheckNotDefined(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		ident string
	}{
		{"undefined call", "int f() { return g(); }", "g()"},
		{"recursion", "int f() { return f(); }", "f()"},
		{"forward reference", "int f() { return g(); } int g() { return 0; }", "g()"},
		{"undefined assignment target", "int f() { x = 1; return 0; }", "x"},
		{"address of undefined", "int f() { int *p = &q; return 0; }", "q"},
		{"out of scope after block", "int f() { { int y = 1; } return y; }", "y"},
		{"out of scope after for", "int f() { for (int i = 0; i < 3; i++) { } return i; }", "i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(parse(t, tt.src))
			var notDefined *NotDefinedError
			be.True(t, errors.As(err, &notDefined))
			be.Equal(t, notDefined.Name, tt.ident)
		})
	}
}

func TestCheckNotInitialized(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"return", "int f() { int x; return x; }"},
		{"condition", "int f() { int x; if (x < 1) { return 1; } return 0; }"},
		{"increment", "int f() { int x; x++; return 0; }"},
		{"argument", "int g(int a) { return a; } int f() { int x; return g(x); }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(parse(t, tt.src))
			var notInit *NotInitializedError
			be.True(t, errors.As(err, &notInit))
			be.Equal(t, notInit.Name, "x")
		})
	}
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		base   string
		lexeme string
		kind   token.Kind
	}{
		{"char", "' '", token.Symbol},
		{"int", "0", token.Int},
		{"long", "0", token.Int},
		{"short", "0", token.Int},
		{"float", "0f", token.Float},
		{"double", "0d", token.Double},
	}
	for _, tt := range tests {
		c, err := DefaultValue(ast.NewType(tt.base))
		be.Err(t, err, nil)
		be.Equal(t, c.Tok.Lexeme, tt.lexeme)
		be.Equal(t, c.Tok.Kind, tt.kind)
	}

	_, err := DefaultValue(ast.NewType("bool"))
	be.Err(t, err, ErrIllegalType)
}

type recordingStore struct {
	depth, maxDepth int
	declared        []string
	assigned        []string
}

func (s *recordingStore) PushFrame() {
	s.depth++
	s.maxDepth = max(s.maxDepth, s.depth)
}

func (s *recordingStore) PopFrame() { s.depth-- }

func (s *recordingStore) Declare(fn *ast.Function, sym *Symbol) error {
	s.declared = append(s.declared, fn.Name.Lexeme+"."+sym.String())
	return nil
}

func (s *recordingStore) Assign(sym *Symbol) {
	s.assigned = append(s.assigned, sym.String())
}

func TestWalkerReportsToStore(t *testing.T) {
	store := &recordingStore{}
	w := NewWalker(store)
	err := w.Walk(parse(t, "int g(char c) { return 1; } int f() { int x; for (int i = 0; i < 2; i++) { x = 7; } return x; }"))
	be.Err(t, err, nil)

	be.Equal(t, store.depth, 0)
	be.Equal(t, store.maxDepth, 2)
	be.Equal(t, store.declared, []string{"g.char c = ' '", "f.int x", "f.int i = 0"})
	be.Equal(t, store.assigned, []string{"int x = 7"})
	be.Equal(t, len(w.Functions()), 2)
	be.Equal(t, w.Functions()[1].Name.Lexeme, "f")
}
