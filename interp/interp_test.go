package interp

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/lexer"
	"github.com/strager/cfront/parser"
	"github.com/strager/cfront/sema"
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

func TestExecuteMinimal(t *testing.T) {
	in := New()
	be.Err(t, in.Execute(parse(t, "int main() { return 0; }")), nil)
	be.Equal(t, len(in.Slots()), 0)
}

func TestExecuteMaterializesSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfront.interp")
	defer teardown()

	prog := parse(t, `
int add(int a, int b) {
  return a + b;
}

int main() {
  int x = add(1, 2);
  double d;
  char c = 'q';
  for (int i = 0; i < 3; i++) {
    d = 2.5d;
  }
  return x;
}`)

	in := New()
	be.Err(t, in.Execute(prog), nil)
	be.Equal(t, in.Slots(), []Slot{
		{Function: "add", Name: "a", Type: "int", Value: "0", Depth: 1},
		{Function: "add", Name: "b", Type: "int", Value: "0", Depth: 1},
		{Function: "main", Name: "x", Type: "int", Value: "0", Depth: 1},
		{Function: "main", Name: "d", Type: "double", Value: "0d", Depth: 1},
		{Function: "main", Name: "c", Type: "char", Value: "'q'", Depth: 1},
		{Function: "main", Name: "i", Type: "int", Value: "0", Depth: 2},
	})
	be.Equal(t, in.live(), 0)
}

func TestExecutePointerSlots(t *testing.T) {
	in := New()
	be.Err(t, in.Execute(parse(t, "int f() { int a = 4; int *p = &a; return *p; }")), nil)
	slots := in.Slots()
	be.Equal(t, len(slots), 2)
	be.Equal(t, slots[1].Name, "p")
	be.Equal(t, slots[1].Value, "0")
}

func TestExecuteAssignmentKeepsSlot(t *testing.T) {
	in := New()
	err := in.Execute(parse(t, "int main() { int x = 5; char c; x = 6; c = 'z'; x = x - 1; return x; }"))
	be.Err(t, err, nil)
	be.Equal(t, in.Slots(), []Slot{
		{Function: "main", Name: "x", Type: "int", Value: "5", Depth: 1},
		{Function: "main", Name: "c", Type: "char", Value: "' '", Depth: 1},
	})
}

func TestDeclareIllegalType(t *testing.T) {
	in := New()
	in.PushFrame()
	fn := &ast.Function{Name: token.New("f", token.Position{Line: 1, Column: 5})}
	err := in.Declare(fn, &sema.Symbol{Type: ast.NewType("bool"), Name: "b"})
	be.Err(t, err, sema.ErrIllegalType)
	be.Equal(t, len(in.Slots()), 0)
}

func TestSlotString(t *testing.T) {
	s := Slot{Function: "main", Name: "u", Type: "unsigned long int", Value: "0", Depth: 2}
	be.Equal(t, s.String(), "main u unsigned long int 0 2")
}

func TestExecuteFailsLikeCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not initialized", "int f() { int x; return x; }"},
		{"duplicate", "int f() { int x = 1; int x = 2; return x; }"},
		{"type mismatch", "int f() { double x = 5; return x; }"},
		{"undefined call", "int f() { return f(); }"},
		{"missing return", "int f() { int x = 1; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.src)
			checkErr := sema.Check(prog)
			execErr := Execute(prog)
			be.True(t, checkErr != nil)
			be.Equal(t, execErr.Error(), checkErr.Error())
		})
	}
}

func TestExecuteReportsTypedErrors(t *testing.T) {
	err := Execute(parse(t, "int f() { int x; return x; }"))
	var notInit *sema.NotInitializedError
	be.True(t, errors.As(err, &notInit))
	be.Equal(t, notInit.Name, "x")
}

func TestExecuteStartsFresh(t *testing.T) {
	prog := parse(t, "int f() { return 0; } int main() { return f(); }")
	be.Err(t, Execute(prog), nil)
	be.Err(t, Execute(prog), nil)
}
