package ast

import (
	"strings"

	"github.com/strager/cfront/token"
)

// SExpr renders a node as an s-expression, e.g.
//
//	(func "main" (type "int") (params) (block (return 0)))
//
// Integer constants print bare; every other constant prints as (const "text").
func SExpr(node Node) string {
	var b strings.Builder
	writeSExpr(&b, node)
	return b.String()
}

func writeSExpr(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Program:
		b.WriteString("(program")
		for _, fn := range n.Functions {
			b.WriteByte(' ')
			writeSExpr(b, fn)
		}
		b.WriteByte(')')
	case *Function:
		b.WriteString("(func " + quote(n.Name.Lexeme) + " ")
		writeType(b, n.ReturnType)
		b.WriteString(" (params")
		for _, p := range n.Params {
			b.WriteString(" (param ")
			writeType(b, p.Type)
			b.WriteString(" " + quote(p.Name.Lexeme) + ")")
		}
		b.WriteString(") ")
		writeSExpr(b, n.Body)
		b.WriteByte(')')

	case *Declaration:
		b.WriteString("(decl ")
		writeType(b, n.Type)
		for _, d := range n.Declarators {
			b.WriteByte(' ')
			writeSExpr(b, d)
		}
		b.WriteByte(')')
	case *TypedefDeclaration:
		b.WriteString("(typedef ")
		writeType(b, n.Type)
		b.WriteString(" " + quote(n.Name.Lexeme) + ")")
	case *Compound:
		b.WriteString("(block")
		writeList(b, n.Stmts)
		b.WriteByte(')')
	case *If:
		b.WriteString("(if ")
		writeSExpr(b, n.Cond)
		b.WriteByte(' ')
		writeSExpr(b, n.Then)
		if n.Else != nil {
			b.WriteByte(' ')
			writeSExpr(b, n.Else)
		}
		b.WriteByte(')')
	case *Switch:
		b.WriteString("(switch ")
		writeSExpr(b, n.Tag)
		for _, c := range n.Cases {
			b.WriteByte(' ')
			writeSExpr(b, c)
		}
		if n.Default != nil {
			b.WriteByte(' ')
			writeSExpr(b, n.Default)
		}
		b.WriteByte(')')
	case *Case:
		b.WriteString("(case ")
		writeSExpr(b, n.Label)
		writeList(b, n.Body)
		b.WriteByte(')')
	case *Default:
		b.WriteString("(default")
		writeList(b, n.Body)
		b.WriteByte(')')
	case *For:
		b.WriteString("(for ")
		writeSExpr(b, n.Init)
		b.WriteByte(' ')
		writeSExpr(b, n.Cond)
		b.WriteByte(' ')
		writeSExpr(b, n.Post)
		b.WriteByte(' ')
		writeSExpr(b, n.Body)
		b.WriteByte(')')
	case *While:
		b.WriteString("(while ")
		writeSExpr(b, n.Cond)
		b.WriteByte(' ')
		writeSExpr(b, n.Body)
		b.WriteByte(')')
	case *DoWhile:
		b.WriteString("(do ")
		writeSExpr(b, n.Body)
		b.WriteByte(' ')
		writeSExpr(b, n.Cond)
		b.WriteByte(')')
	case *Return:
		b.WriteString("(return ")
		writeSExpr(b, n.Result)
		b.WriteByte(')')
	case *Break:
		b.WriteString("(break)")
	case *ExprStmt:
		b.WriteString("(expr ")
		writeSExpr(b, n.X)
		b.WriteByte(')')
	case *Assignment:
		b.WriteString("(assign " + quote(n.Target.Name()) + " ")
		writeSExpr(b, n.Value)
		b.WriteByte(')')

	case *VarDeclarator:
		b.WriteString("(var " + quote(n.Name.Lexeme))
		writeInit(b, n.Init)
		b.WriteByte(')')
	case *PointerDeclarator:
		b.WriteString("(ptr " + quote(n.Var.Name()))
		writeInit(b, n.Init)
		b.WriteByte(')')
	case *ExprInit:
		writeSExpr(b, n.X)
	case *AddrInit:
		b.WriteString("(addr " + quote(n.Var.Name()) + ")")

	case *Constant:
		if n.Tok.Kind == token.Int {
			b.WriteString(n.Tok.Lexeme)
		} else {
			b.WriteString("(const " + quote(n.Tok.Lexeme) + ")")
		}
	case *Variable:
		b.WriteString("(var " + quote(n.Name()) + ")")
	case *Conditional:
		b.WriteString("(cond ")
		writeSExpr(b, n.X)
		b.WriteByte(')')
	case *Binary:
		b.WriteString("(binary " + quote(n.Op.Lexeme) + " ")
		writeSExpr(b, n.Left)
		b.WriteByte(' ')
		writeSExpr(b, n.Right)
		b.WriteByte(')')
	case *Unary:
		b.WriteString("(unary " + quote(n.Op.Lexeme) + " ")
		writeSExpr(b, n.X)
		b.WriteByte(')')
	case *Postfix:
		b.WriteString("(postfix " + quote(n.Op.Lexeme) + " ")
		writeSExpr(b, n.Var)
		b.WriteByte(')')
	case *Prefix:
		b.WriteString("(prefix " + quote(n.Op.Lexeme) + " ")
		writeSExpr(b, n.Var)
		b.WriteByte(')')
	case *Call:
		b.WriteString("(call " + quote(n.Name.Lexeme))
		for _, arg := range n.Args {
			b.WriteByte(' ')
			writeSExpr(b, arg.X)
		}
		b.WriteByte(')')
	case nil:
		b.WriteString("()")
	}
}

func writeList(b *strings.Builder, stmts []Stmt) {
	for _, s := range stmts {
		b.WriteByte(' ')
		writeSExpr(b, s)
	}
}

func writeInit(b *strings.Builder, init Initializer) {
	if init == nil {
		return
	}
	b.WriteByte(' ')
	writeSExpr(b, init)
}

func writeType(b *strings.Builder, t *Type) {
	if t == nil {
		b.WriteString("void")
		return
	}
	b.WriteString("(type " + quote(t.String()) + ")")
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
