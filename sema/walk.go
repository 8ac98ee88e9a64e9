// Package sema checks scoping and typing of a parsed program.
//
// One walk serves both the checker and the executor. The walk keeps a stack
// of scope frames and a table of functions that have been fully checked, and
// stops at the first violation. A Store watches the walk: Check passes none,
// while the executor passes one that materializes every declared variable.
//
// Scopes: a function body shares the frame holding the parameters. A for
// loop gets one frame for its init declarations and body. Every other block
// (nested braces, if/while/do bodies, case and default bodies) gets its own.
// A name may be declared only once across all active frames.
//
// Functions enter the table only after their body checks, so a call to a
// function defined later, or to the function itself, is undefined.
package sema

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/strager/cfront/ast"
)

func tracer() tracing.Trace {
	return tracing.Select("cfront.sema")
}

// Store receives the walk's effects on variables.
type Store interface {
	// PushFrame and PopFrame bracket every scope.
	PushFrame()
	PopFrame()
	// Declare is called when sym enters the innermost frame of fn.
	Declare(fn *ast.Function, sym *Symbol) error
	// Assign is called after an assignment to sym was checked.
	Assign(sym *Symbol)
}

type nopStore struct{}

func (nopStore) PushFrame()                           {}
func (nopStore) PopFrame()                            {}
func (nopStore) Declare(*ast.Function, *Symbol) error { return nil }
func (nopStore) Assign(*Symbol)                       {}

// Walker walks one program. It is not reusable.
type Walker struct {
	store     Store
	scopes    scopes
	functions []*ast.Function
	fn        *ast.Function // function being walked
}

// NewWalker returns a walker reporting to store, which may be nil.
func NewWalker(store Store) *Walker {
	if store == nil {
		store = nopStore{}
	}
	return &Walker{store: store}
}

// Check reports the first scoping or typing error in prog.
func Check(prog *ast.Program) error {
	return NewWalker(nil).Walk(prog)
}

// Walk visits every function in order.
func (w *Walker) Walk(prog *ast.Program) error {
	for _, fn := range prog.Functions {
		if err := w.walkFunction(fn); err != nil {
			tracer().Errorf("%v", err)
			return err
		}
	}
	tracer().Infof("checked %d functions", len(prog.Functions))
	return nil
}

// Functions returns the function table in the order functions were checked.
func (w *Walker) Functions() []*ast.Function { return w.functions }

func (w *Walker) function(name string) *ast.Function {
	for _, fn := range w.functions {
		if fn.Name.Lexeme == name {
			return fn
		}
	}
	return nil
}

func (w *Walker) walkFunction(fn *ast.Function) error {
	if len(fn.Returns()) == 0 {
		return fmt.Errorf("function %s has %w", fn, ErrNoReturn)
	}
	tracer().Debugf("enter function %s", fn)
	w.fn = fn

	w.push()
	for _, p := range fn.Params {
		if w.scopes.lookup(p.Name.Lexeme) != nil {
			return fmt.Errorf("parameter %s is %w at position %s", p.Name.Lexeme, ErrAlreadyDefined, p.Name.Pos)
		}
		value, err := DefaultValue(p.Type)
		if err != nil {
			return err
		}
		if err := w.define(&Symbol{Type: p.Type, Name: p.Name.Lexeme, Value: value}); err != nil {
			return err
		}
	}
	if err := w.walkStmts(fn.Body.Stmts); err != nil {
		return err
	}
	w.pop()

	if w.function(fn.Name.Lexeme) != nil {
		return fmt.Errorf("%s: %w", fn.Name.Lexeme, ErrRedefinedFunction)
	}
	w.functions = append(w.functions, fn)
	tracer().Debugf("leave function %s", fn)
	return nil
}

func (w *Walker) push() {
	w.scopes.push()
	w.store.PushFrame()
	tracer().Debugf("push frame %d", w.scopes.depth())
}

func (w *Walker) pop() {
	tracer().Debugf("pop frame %d", w.scopes.depth())
	w.scopes.pop()
	w.store.PopFrame()
}

func (w *Walker) define(sym *Symbol) error {
	w.scopes.add(sym)
	return w.store.Declare(w.fn, sym)
}

// walkBlock walks stmts in a fresh frame.
func (w *Walker) walkBlock(stmts []ast.Stmt) error {
	w.push()
	if err := w.walkStmts(stmts); err != nil {
		return err
	}
	w.pop()
	return nil
}

func (w *Walker) walkStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := w.walkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Declaration:
		return w.declare(s)
	case *ast.TypedefDeclaration, *ast.Break:
		return nil
	case *ast.Compound:
		return w.walkBlock(s.Stmts)
	case *ast.If:
		if err := w.checkCondition(s.Cond); err != nil {
			return err
		}
		if err := w.walkBlock(s.Then.Stmts); err != nil {
			return err
		}
		if s.Else != nil {
			return w.walkBlock(s.Else.Stmts)
		}
		return nil
	case *ast.Switch:
		if err := w.checkUntyped(s.Tag); err != nil {
			return err
		}
		for _, c := range s.Cases {
			if err := w.walkBlock(c.Body); err != nil {
				return err
			}
		}
		if s.Default != nil {
			return w.walkBlock(s.Default.Body)
		}
		return nil
	case *ast.Case:
		return w.walkBlock(s.Body)
	case *ast.Default:
		return w.walkBlock(s.Body)
	case *ast.For:
		return w.walkFor(s)
	case *ast.While:
		if err := w.checkCondition(s.Cond); err != nil {
			return err
		}
		return w.walkBlock(s.Body.Stmts)
	case *ast.DoWhile:
		if err := w.walkBlock(s.Body.Stmts); err != nil {
			return err
		}
		return w.checkCondition(s.Cond)
	case *ast.Return:
		if w.fn.ReturnType == nil {
			return w.checkUntyped(s.Result)
		}
		return w.checkExpr(w.fn.ReturnType, s.Result)
	case *ast.ExprStmt:
		return w.checkUntyped(s.X)
	case *ast.Assignment:
		return w.assign(s)
	}
	return fmt.Errorf("unexpected statement %T", s)
}

func (w *Walker) walkFor(s *ast.For) error {
	w.push()
	if err := w.declare(s.Init); err != nil {
		return err
	}
	if err := w.checkCondition(s.Cond); err != nil {
		return err
	}
	if err := w.checkUntyped(s.Post); err != nil {
		return err
	}
	if err := w.walkStmts(s.Body.Stmts); err != nil {
		return err
	}
	w.pop()
	return nil
}

// declare checks each declarator and adds it to the innermost frame. A name
// clashes with every active frame, not just the innermost.
func (w *Walker) declare(decl *ast.Declaration) error {
	for _, d := range decl.Declarators {
		name := d.Ident()
		if w.scopes.lookup(name.Lexeme) != nil {
			return fmt.Errorf("variable %s is %w at position %s", name.Lexeme, ErrAlreadyDefined, name.Pos)
		}
		sym := &Symbol{Type: decl.Type, Name: name.Lexeme}
		switch init := d.Initializer().(type) {
		case nil:
		case *ast.ExprInit:
			if err := w.checkExpr(decl.Type, init.X); err != nil {
				return err
			}
			value, err := valueOf(decl.Type, init.X)
			if err != nil {
				return err
			}
			sym.Value = value
		case *ast.AddrInit:
			if w.scopes.lookup(init.Var.Name()) == nil {
				return &NotDefinedError{Name: init.Var.Name(), Pos: init.Var.Pos()}
			}
			value, err := DefaultValue(decl.Type)
			if err != nil {
				return err
			}
			sym.Value = value
		}
		if err := w.define(sym); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) assign(s *ast.Assignment) error {
	sym, err := w.scopes.lookupForAssign(s.Target)
	if err != nil {
		return err
	}
	if err := w.checkExpr(sym.Type, s.Value); err != nil {
		return err
	}
	value, err := valueOf(sym.Type, s.Value)
	if err != nil {
		return err
	}
	sym.Value = value
	w.store.Assign(sym)
	return nil
}

// valueOf is the value a variable of type t holds after being given x.
// Only constants are known; anything else leaves the type's default.
func valueOf(t *ast.Type, x ast.Expr) (*ast.Constant, error) {
	if c, ok := x.(*ast.Constant); ok {
		return c, nil
	}
	return DefaultValue(t)
}
