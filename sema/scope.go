package sema

import (
	"fmt"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/token"
)

// Symbol is a variable in scope. Value is nil until the variable is
// initialized; parameters always start with their type's default.
type Symbol struct {
	Type  *ast.Type
	Name  string
	Value *ast.Constant
}

// Initialized reports whether the symbol holds a value.
func (s *Symbol) Initialized() bool { return s.Value != nil }

func (s *Symbol) String() string {
	if s.Value == nil {
		return s.Type.String() + " " + s.Name
	}
	return s.Type.String() + " " + s.Name + " = " + s.Value.Tok.Lexeme
}

var defaults = map[string]string{
	"char":   "' '",
	"int":    "0",
	"long":   "0",
	"short":  "0",
	"float":  "0f",
	"double": "0d",
}

// DefaultValue is the constant a variable of type t holds before anything is
// assigned to it.
func DefaultValue(t *ast.Type) (*ast.Constant, error) {
	lexeme, ok := defaults[t.BaseName()]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrIllegalType, t)
	}
	return &ast.Constant{Tok: token.New(lexeme, t.Pos())}, nil
}

// frame holds the symbols of one scope, unique by name.
type frame struct {
	symbols []*Symbol
}

func (f *frame) find(name string) *Symbol {
	for _, sym := range f.symbols {
		if sym.Name == name {
			return sym
		}
	}
	return nil
}

// scopes is the stack of active frames, innermost last.
type scopes struct {
	frames []*frame
}

func (s *scopes) push() { s.frames = append(s.frames, &frame{}) }

func (s *scopes) pop() *frame {
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

func (s *scopes) depth() int { return len(s.frames) }

func (s *scopes) add(sym *Symbol) {
	top := s.frames[len(s.frames)-1]
	top.symbols = append(top.symbols, sym)
}

// lookup returns the innermost symbol named name, or nil.
func (s *scopes) lookup(name string) *Symbol {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if sym := s.frames[i].find(name); sym != nil {
			return sym
		}
	}
	return nil
}

// lookupForAssign insists that exactly one active frame holds name.
func (s *scopes) lookupForAssign(v *ast.Variable) (*Symbol, error) {
	var found *Symbol
	for _, f := range s.frames {
		sym := f.find(v.Name())
		if sym == nil {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("variable %s is %w", v.Name(), ErrAmbiguous)
		}
		found = sym
	}
	if found == nil {
		return nil, &NotDefinedError{Name: v.Name(), Pos: v.Pos()}
	}
	return found, nil
}
