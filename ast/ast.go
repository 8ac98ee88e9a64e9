// Package ast defines the syntax tree produced by the parser.
//
// The node set is closed: every statement, expression, declarator and
// initializer type carries an unexported marker method, so only this package
// can add variants. Consumers switch on the concrete type.
//
//	Program
//	  Function (Param, Type)
//	Stmt
//	  Declaration, TypedefDeclaration, Compound, If, Switch, Case, Default,
//	  For, While, DoWhile, Return, Break, ExprStmt, Assignment
//	Declarator
//	  VarDeclarator, PointerDeclarator
//	Initializer
//	  ExprInit, AddrInit
//	Expr
//	  Constant, Variable, Conditional, Binary, Unary, Postfix, Prefix, Call
//
// Nodes are built once by the parser and never modified.
package ast

import (
	"strings"

	"github.com/strager/cfront/token"
)

// Node is implemented by every tree node.
type Node interface {
	Pos() token.Position
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Declarator interface {
	Node
	// Ident is the declared name.
	Ident() token.Token
	// Initializer returns the initializer, or nil.
	Initializer() Initializer
	declaratorNode()
}

type Initializer interface {
	Node
	initializerNode()
}

type Program struct {
	Functions []*Function
}

func (p *Program) Pos() token.Position {
	if len(p.Functions) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Functions[0].Pos()
}

// Function is a function definition. ReturnType is nil for void.
type Function struct {
	ReturnType *Type
	Name       token.Token
	Params     []*Param
	Body       *Compound
}

func (f *Function) Pos() token.Position { return f.Name.Pos }

// String renders the signature, e.g. "add(int a, int b)".
func (f *Function) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.Type.String()+" "+p.Name.Lexeme)
	}
	return f.Name.Lexeme + "(" + strings.Join(params, ", ") + ")"
}

// Returns lists the return statements directly in the body, ignoring nested
// blocks.
func (f *Function) Returns() []*Return {
	var returns []*Return
	for _, stmt := range f.Body.Stmts {
		if r, ok := stmt.(*Return); ok {
			returns = append(returns, r)
		}
	}
	return returns
}

type Param struct {
	Type *Type
	Name token.Token
}

func (p *Param) Pos() token.Position { return p.Type.Pos() }

// Argument is one actual argument of a call.
type Argument struct {
	X Expr
}

func (a *Argument) Pos() token.Position { return a.X.Pos() }

type (
	Declaration struct {
		Type        *Type
		Declarators []Declarator
	}

	TypedefDeclaration struct {
		Keyword token.Token
		Type    *Type
		Name    token.Token
	}

	// Compound is a braced statement list with its own scope.
	Compound struct {
		Lbrace token.Token
		Stmts  []Stmt
	}

	If struct {
		Keyword token.Token
		Cond    *Conditional
		Then    *Compound
		Else    *Compound // or nil
	}

	Switch struct {
		Keyword token.Token
		Tag     Expr
		Cases   []*Case
		Default *Default // or nil
	}

	Case struct {
		Keyword token.Token
		Label   *Constant
		Body    []Stmt
	}

	Default struct {
		Keyword token.Token
		Body    []Stmt
	}

	For struct {
		Keyword token.Token
		Init    *Declaration
		Cond    *Conditional
		Post    Expr
		Body    *Compound
	}

	While struct {
		Keyword token.Token
		Cond    *Conditional
		Body    *Compound
	}

	DoWhile struct {
		Keyword token.Token
		Body    *Compound
		Cond    *Conditional
	}

	Return struct {
		Keyword token.Token
		Result  Expr
	}

	Break struct {
		Keyword token.Token
	}

	ExprStmt struct {
		X Expr
	}

	Assignment struct {
		Target *Variable
		Value  Expr
	}
)

func (s *Declaration) Pos() token.Position        { return s.Type.Pos() }
func (s *TypedefDeclaration) Pos() token.Position { return s.Keyword.Pos }
func (s *Compound) Pos() token.Position           { return s.Lbrace.Pos }
func (s *If) Pos() token.Position                 { return s.Keyword.Pos }
func (s *Switch) Pos() token.Position             { return s.Keyword.Pos }
func (s *Case) Pos() token.Position               { return s.Keyword.Pos }
func (s *Default) Pos() token.Position            { return s.Keyword.Pos }
func (s *For) Pos() token.Position                { return s.Keyword.Pos }
func (s *While) Pos() token.Position              { return s.Keyword.Pos }
func (s *DoWhile) Pos() token.Position            { return s.Keyword.Pos }
func (s *Return) Pos() token.Position             { return s.Keyword.Pos }
func (s *Break) Pos() token.Position              { return s.Keyword.Pos }
func (s *ExprStmt) Pos() token.Position           { return s.X.Pos() }
func (s *Assignment) Pos() token.Position         { return s.Target.Pos() }

func (*Declaration) stmtNode()        {}
func (*TypedefDeclaration) stmtNode() {}
func (*Compound) stmtNode()           {}
func (*If) stmtNode()                 {}
func (*Switch) stmtNode()             {}
func (*Case) stmtNode()               {}
func (*Default) stmtNode()            {}
func (*For) stmtNode()                {}
func (*While) stmtNode()              {}
func (*DoWhile) stmtNode()            {}
func (*Return) stmtNode()             {}
func (*Break) stmtNode()              {}
func (*ExprStmt) stmtNode()           {}
func (*Assignment) stmtNode()         {}

type (
	VarDeclarator struct {
		Name token.Token
		Init Initializer // or nil
	}

	// PointerDeclarator is `*name`. It is checked like a plain variable.
	PointerDeclarator struct {
		Star token.Token
		Var  *Variable
		Init Initializer // or nil
	}

	ExprInit struct {
		X Expr
	}

	// AddrInit is `&name`.
	AddrInit struct {
		Amp token.Token
		Var *Variable
	}
)

func (d *VarDeclarator) Pos() token.Position      { return d.Name.Pos }
func (d *VarDeclarator) Ident() token.Token       { return d.Name }
func (d *VarDeclarator) Initializer() Initializer { return d.Init }
func (*VarDeclarator) declaratorNode()            {}

func (d *PointerDeclarator) Pos() token.Position      { return d.Star.Pos }
func (d *PointerDeclarator) Ident() token.Token       { return d.Var.Tok }
func (d *PointerDeclarator) Initializer() Initializer { return d.Init }
func (*PointerDeclarator) declaratorNode()            {}

func (i *ExprInit) Pos() token.Position { return i.X.Pos() }
func (*ExprInit) initializerNode()      {}

func (i *AddrInit) Pos() token.Position { return i.Amp.Pos }
func (*AddrInit) initializerNode()      {}

// BinaryKind is picked from the operator's token kind.
type BinaryKind int

const (
	Additive BinaryKind = iota
	Multiply
	Compare
	Logical
)

func (k BinaryKind) String() string {
	switch k {
	case Additive:
		return "additive"
	case Multiply:
		return "multiply"
	case Compare:
		return "compare"
	case Logical:
		return "logical"
	}
	return "binary"
}

type (
	Constant struct {
		Tok token.Token
	}

	Variable struct {
		Tok token.Token
	}

	// Conditional wraps the condition of an if, for, while or do statement.
	Conditional struct {
		X Expr
	}

	Binary struct {
		Kind  BinaryKind
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// Unary is the logical negation `!x`.
	Unary struct {
		Op token.Token
		X  Expr
	}

	Postfix struct {
		Var *Variable
		Op  token.Token
	}

	Prefix struct {
		Op  token.Token
		Var *Variable
	}

	Call struct {
		Name token.Token
		Args []*Argument
	}
)

func (e *Constant) Pos() token.Position    { return e.Tok.Pos }
func (e *Variable) Pos() token.Position    { return e.Tok.Pos }
func (e *Conditional) Pos() token.Position { return e.X.Pos() }
func (e *Binary) Pos() token.Position      { return e.Left.Pos() }
func (e *Unary) Pos() token.Position       { return e.Op.Pos }
func (e *Postfix) Pos() token.Position     { return e.Var.Pos() }
func (e *Prefix) Pos() token.Position      { return e.Op.Pos }
func (e *Call) Pos() token.Position        { return e.Name.Pos }

func (*Constant) exprNode()    {}
func (*Variable) exprNode()    {}
func (*Conditional) exprNode() {}
func (*Binary) exprNode()      {}
func (*Unary) exprNode()       {}
func (*Postfix) exprNode()     {}
func (*Prefix) exprNode()      {}
func (*Call) exprNode()        {}

// Name is the referenced variable's name.
func (e *Variable) Name() string { return e.Tok.Lexeme }
