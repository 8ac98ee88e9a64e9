// Package interp executes a checked program.
//
// Execution replays the semantic walk against a live store of variable slots.
// Every declared variable, parameters included, gets a slot holding the
// constant it was initialized with, or its type's default. Assignments are
// re-validated but never change a slot. Arithmetic is not evaluated and
// nothing is printed; a program either runs to completion or fails with the
// same errors sema.Check reports.
package interp

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/sema"
)

func tracer() tracing.Trace {
	return tracing.Select("cfront.interp")
}

// Slot is one materialized variable. Value is fixed when the slot is
// created: the initializer if it is a constant, otherwise the type default.
type Slot struct {
	Function string
	Name     string
	Type     string
	Value    string
	Depth    int // frame depth within the function, 1 for parameters
}

// String renders the slot as "function name type value depth".
func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s %s %d", s.Function, s.Name, s.Type, s.Value, s.Depth)
}

// Interpreter owns the slot store for one execution.
type Interpreter struct {
	frames [][]*Slot // live slots, innermost frame last
	slots  []*Slot   // every slot ever created, in creation order
	bySym  map[*sema.Symbol]*Slot
}

var _ sema.Store = (*Interpreter)(nil)

func New() *Interpreter {
	return &Interpreter{bySym: make(map[*sema.Symbol]*Slot)}
}

// Execute runs prog with a fresh interpreter.
func Execute(prog *ast.Program) error {
	return New().Execute(prog)
}

// Execute walks prog, materializing slots as variables come into scope.
func (in *Interpreter) Execute(prog *ast.Program) error {
	if err := sema.NewWalker(in).Walk(prog); err != nil {
		tracer().Errorf("execution failed: %v", err)
		return err
	}
	tracer().Infof("executed %d functions, %d slots", len(prog.Functions), len(in.slots))
	return nil
}

// Slots returns a copy of every slot created so far, in creation order.
func (in *Interpreter) Slots() []Slot {
	out := make([]Slot, len(in.slots))
	for i, s := range in.slots {
		out[i] = *s
	}
	return out
}

// live returns the number of slots in scope.
func (in *Interpreter) live() int {
	n := 0
	for _, f := range in.frames {
		n += len(f)
	}
	return n
}

func (in *Interpreter) PushFrame() {
	in.frames = append(in.frames, nil)
}

func (in *Interpreter) PopFrame() {
	top := in.frames[len(in.frames)-1]
	in.frames = in.frames[:len(in.frames)-1]
	for _, s := range top {
		tracer().Debugf("release %s.%s = %s", s.Function, s.Name, s.Value)
	}
}

func (in *Interpreter) Declare(fn *ast.Function, sym *sema.Symbol) error {
	value := sym.Value
	if value == nil {
		var err error
		if value, err = sema.DefaultValue(sym.Type); err != nil {
			return err
		}
	}
	slot := &Slot{
		Function: fn.Name.Lexeme,
		Name:     sym.Name,
		Type:     sym.Type.String(),
		Value:    value.Tok.Lexeme,
		Depth:    len(in.frames),
	}
	in.frames[len(in.frames)-1] = append(in.frames[len(in.frames)-1], slot)
	in.slots = append(in.slots, slot)
	in.bySym[sym] = slot
	tracer().Debugf("materialize %s.%s = %s", slot.Function, slot.Name, slot.Value)
	return nil
}

// Assign leaves the slot as declared.
func (in *Interpreter) Assign(sym *sema.Symbol) {
	if slot, ok := in.bySym[sym]; ok {
		tracer().Debugf("assign %s.%s, slot keeps %s", slot.Function, slot.Name, slot.Value)
	}
}
