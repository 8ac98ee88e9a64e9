package sema

import (
	"fmt"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/token"
)

// constantKinds maps a base specifier to the only constant kind it accepts.
var constantKinds = map[string]token.Kind{
	"int":    token.Int,
	"long":   token.Int,
	"short":  token.Int,
	"double": token.Double,
	"float":  token.Float,
	"char":   token.Symbol,
}

// checkExpr checks that x can produce a value of type t.
func (w *Walker) checkExpr(t *ast.Type, x ast.Expr) error {
	switch x := x.(type) {
	case *ast.Constant:
		return checkConstant(t, x)
	case *ast.Variable:
		return w.checkVariable(t, x)
	case *ast.Call:
		return w.checkCall(t, x)
	case *ast.Binary:
		if err := w.checkExpr(t, x.Left); err != nil {
			return err
		}
		if err := w.checkExpr(t, x.Right); err != nil {
			return err
		}
		if (x.Kind == ast.Logical || x.Kind == ast.Compare) && t.BaseName() != "bool" {
			return &TypeMismatchError{Required: t, Found: x.Op.Kind.String(), Pos: x.Op.Pos}
		}
		return nil
	case *ast.Unary:
		if t.BaseName() != "bool" {
			return &TypeMismatchError{Required: t, Found: x.Op.Kind.String(), Pos: x.Op.Pos}
		}
		return w.checkExpr(t, x.X)
	case *ast.Prefix:
		return w.checkVariable(t, x.Var)
	case *ast.Postfix:
		return w.checkVariable(t, x.Var)
	case *ast.Conditional:
		return w.checkExpr(t, x.X)
	}
	return fmt.Errorf("unexpected expression %T", x)
}

func checkConstant(t *ast.Type, c *ast.Constant) error {
	want, ok := constantKinds[t.BaseName()]
	if ok && c.Tok.Kind != want {
		return &TypeMismatchError{Required: t, Found: c.Tok.Lexeme, Pos: c.Tok.Pos}
	}
	return nil
}

// checkVariable requires v to be defined, initialized and of t's base type.
func (w *Walker) checkVariable(t *ast.Type, v *ast.Variable) error {
	sym, err := w.read(v)
	if err != nil {
		return err
	}
	if sym.Type.BaseName() != t.BaseName() {
		return &TypeMismatchError{Required: t, Found: sym.Type.String() + " " + sym.Name, Pos: v.Pos()}
	}
	return nil
}

// read resolves v for a use that needs its value.
func (w *Walker) read(v *ast.Variable) (*Symbol, error) {
	sym := w.scopes.lookup(v.Name())
	if sym == nil {
		return nil, &NotDefinedError{Name: v.Name(), Pos: v.Pos()}
	}
	if !sym.Initialized() {
		return nil, &NotInitializedError{Name: v.Name(), Pos: v.Pos()}
	}
	return sym, nil
}

// checkCall requires the callee to be checked already and to return exactly
// t. A nil t accepts any return type.
func (w *Walker) checkCall(t *ast.Type, c *ast.Call) error {
	fn := w.function(c.Name.Lexeme)
	if fn == nil {
		return &NotDefinedError{Name: c.Name.Lexeme + "()", Pos: c.Pos()}
	}
	if t != nil && !t.Equal(fn.ReturnType) {
		found := "void"
		if fn.ReturnType != nil {
			found = fn.ReturnType.String()
		}
		return &TypeMismatchError{Required: t, Found: found, Pos: c.Pos()}
	}
	if len(c.Args) != len(fn.Params) {
		return fmt.Errorf("%w to %s(): got %d, want %d", ErrArity, c.Name.Lexeme, len(c.Args), len(fn.Params))
	}
	for i, arg := range c.Args {
		if err := w.checkExpr(fn.Params[i].Type, arg.X); err != nil {
			return err
		}
	}
	return nil
}

// checkUntyped checks x where any value will do: names must resolve and be
// initialized, calls must name a checked function.
func (w *Walker) checkUntyped(x ast.Expr) error {
	switch x := x.(type) {
	case *ast.Constant:
		return nil
	case *ast.Variable:
		_, err := w.read(x)
		return err
	case *ast.Call:
		return w.checkCall(nil, x)
	case *ast.Binary:
		if err := w.checkUntyped(x.Left); err != nil {
			return err
		}
		return w.checkUntyped(x.Right)
	case *ast.Unary:
		return w.checkUntyped(x.X)
	case *ast.Prefix:
		_, err := w.read(x.Var)
		return err
	case *ast.Postfix:
		_, err := w.read(x.Var)
		return err
	case *ast.Conditional:
		return w.checkUntyped(x.X)
	}
	return fmt.Errorf("unexpected expression %T", x)
}

// checkCondition checks the condition of an if, for, while or do statement.
// Comparison operands may be of any type; logical operands are conditions
// themselves.
func (w *Walker) checkCondition(c *ast.Conditional) error {
	return w.checkTruth(c.X)
}

func (w *Walker) checkTruth(x ast.Expr) error {
	switch x := x.(type) {
	case *ast.Binary:
		if x.Kind == ast.Logical {
			if err := w.checkTruth(x.Left); err != nil {
				return err
			}
			return w.checkTruth(x.Right)
		}
	case *ast.Unary:
		return w.checkTruth(x.X)
	}
	return w.checkUntyped(x)
}
