package sema

import (
	"errors"
	"fmt"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/token"
)

// Rule violations. They are wrapped with the offending name, so test with
// errors.Is.
var (
	ErrAlreadyDefined    = errors.New("already defined")
	ErrAmbiguous         = errors.New("defined in more than one scope")
	ErrNoReturn          = errors.New("no return statements")
	ErrArity             = errors.New("wrong number of arguments")
	ErrIllegalType       = errors.New("illegal type")
	ErrRedefinedFunction = errors.New("function is already defined")
)

// NotDefinedError reports a variable or function that is not in scope.
// Function names carry a "()" suffix.
type NotDefinedError struct {
	Name string
	Pos  token.Position
}

func (e *NotDefinedError) Error() string {
	return fmt.Sprintf("%s is not defined at position %s", e.Name, e.Pos)
}

// NotInitializedError reports a read of a variable that holds no value.
type NotInitializedError struct {
	Name string
	Pos  token.Position
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("variable %s is not initialized at position %s", e.Name, e.Pos)
}

// TypeMismatchError reports a value whose type disagrees with Required.
// Found describes the value: a constant's text, a variable's declared type, a
// function's return type or an operator kind.
type TypeMismatchError struct {
	Required *ast.Type
	Found    string
	Pos      token.Position
}

func (e *TypeMismatchError) Error() string {
	required := "void"
	if e.Required != nil {
		required = e.Required.String()
	}
	return fmt.Sprintf("required %s, but found %s at position %s", required, e.Found, e.Pos)
}
