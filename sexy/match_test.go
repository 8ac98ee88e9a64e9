package sexy

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	n, err := Parse(input)
	be.Err(t, err, nil)
	return n
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		actual  string
	}{
		{"equal atoms", "x", "x"},
		{"equal lists", `(binary "+" 1 2)`, `(binary "+" 1 2)`},
		{"wildcard atom", `(binary "+" _ 2)`, `(binary "+" 1 2)`},
		{"wildcard list", `(binary "+" _ 2)`, `(binary "+" (var "x") 2)`},
		{"wildcard root", "_", `(program (func "f"))`},
		{"trailing ellipsis", `(block (decl ...) ...)`, `(block (decl (type "int") (var "x")) (return 0))`},
		{"ellipsis matches nothing", `(block ... (return 0))`, `(block (return 0))`},
		{"leading ellipsis", `(block ... (return 0))`, `(block (expr 1) (expr 2) (return 0))`},
		{"middle ellipsis", `(call "f" 1 ... 4)`, `(call "f" 1 2 3 4)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Err(t, Match(mustParse(t, tt.pattern), mustParse(t, tt.actual)), nil)
		})
	}
}

func TestMatchMismatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		actual  string
		path    string
	}{
		{"different atoms", "x", "y", "root"},
		{"atom against list", "x", "(x)", "root"},
		{"string against symbol", `"x"`, "x", "root"},
		{"nested item", `(binary "+" 1 (var "y"))`, `(binary "+" 1 (var "x"))`, "root[3][1]"},
		{"too few items", `(call "f" 1 2)`, `(call "f" 1)`, "root"},
		{"too many items", `(call "f" 1)`, `(call "f" 1 2)`, "root"},
		{"ellipsis cannot skip a required tail", `(block ... (return 1))`, `(block (return 0))`, "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Match(mustParse(t, tt.pattern), mustParse(t, tt.actual))
			var mismatch *MismatchError
			be.True(t, errors.As(err, &mismatch))
			be.Equal(t, mismatch.Path, tt.path)
		})
	}
}

func TestMismatchErrorMessage(t *testing.T) {
	err := Match(mustParse(t, `(var "x")`), mustParse(t, `(var "y")`))
	be.Err(t, err, `at root[1]: expected "x", got "y"`)
}
