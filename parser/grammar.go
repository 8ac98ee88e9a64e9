package parser

import (
	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/token"
)

func (p *parser) parseFunction() (*ast.Function, error) {
	var ret *ast.Type
	if p.isLexeme("void") {
		p.next()
	} else {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ret = t
	}
	name, err := p.expectKind(token.Identifier, "name of function")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return &ast.Function{ReturnType: ret, Name: name, Params: params, Body: body}, nil
}

func (p *parser) parseParams() ([]*ast.Param, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for !p.isKind(token.RParen) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expectKind(token.Identifier, "name of parameter")
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{Type: t, Name: name})
		if !p.isKind(token.RParen) {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	p.next()
	return params, nil
}

// keyword returns a rule consuming one of the given keywords.
func (p *parser) keyword(label string, words ...string) func() (token.Token, error) {
	return func() (token.Token, error) {
		for _, w := range words {
			if p.isLexeme(w) {
				return p.next(), nil
			}
		}
		return token.Token{}, p.errorf(label)
	}
}

// parseType reads [signed|unsigned] [short|long] base. A length modifier with
// no base after it is itself the base: "long x" is a long.
func (p *parser) parseType() (*ast.Type, error) {
	t := &ast.Type{}
	sign, ok, err := optional(p, p.keyword("type modifier", "unsigned", "signed"))
	if err != nil {
		return nil, err
	}
	if ok {
		t.Sign = &sign
	}

	length, ok, err := optional(p, p.keyword("memory modifier", "short", "long"))
	if err != nil {
		return nil, err
	}
	if !ok {
		base, err := p.keyword("type", "float", "double", "char", "int", "long")()
		if err != nil {
			return nil, err
		}
		t.Base = base
		return t, nil
	}

	at := p.pos
	base, ok, err := optional(p, p.keyword("type", "float", "double", "char", "int", "long"))
	if err != nil {
		return nil, err
	}
	if !ok {
		t.Base = length
		return t, nil
	}
	switch {
	case length.Lexeme == "short" && base.Lexeme != "int":
		return nil, p.fail(at, "after 'short' can be only 'int'")
	case length.Lexeme == "long" && (base.Lexeme == "float" || base.Lexeme == "char"):
		return nil, p.fail(at, "'long' and '%s' can't be in type specifier", base.Lexeme)
	}
	t.Length = &length
	t.Base = base
	return t, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	return firstOf(p, "statement",
		stmt(p.parseTypedef),
		stmt(p.parseCompound),
		stmt(p.parseIf),
		stmt(p.parseSwitch),
		stmt(p.parseFor),
		stmt(p.parseWhile),
		stmt(p.parseDoWhile),
		stmt(p.parseReturn),
		stmt(p.parseDeclaration),
		stmt(p.parseAssignment),
		stmt(p.parseExprStmt),
	)
}

func (p *parser) parseCompound() (*ast.Compound, error) {
	lbrace, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	block := &ast.Compound{Lbrace: lbrace}
	for {
		s, ok, err := optional(p, p.parseStatement)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		block.Stmts = append(block.Stmts, s)
	}
	if _, err := p.expectKind(token.RBrace, "statement or '}'"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *parser) parseTypedef() (*ast.TypedefDeclaration, error) {
	kw, err := p.expect("typedef")
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(token.Identifier, "name of type")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.TypedefDeclaration{Keyword: kw, Type: t, Name: name}, nil
}

func (p *parser) parseIf() (*ast.If, error) {
	kw, err := p.expect("if")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	els, _, err := optional(p, func() (*ast.Compound, error) {
		if _, err := p.expect("else"); err != nil {
			return nil, err
		}
		return p.parseCompound()
	})
	if err != nil {
		return nil, err
	}
	return &ast.If{Keyword: kw, Cond: cond, Then: then, Else: els}, nil
}

// parseCondition reads a parenthesized condition.
func (p *parser) parseCondition() (*ast.Conditional, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseConditionExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseConditionExpr accepts only expressions that produce a truth value.
func (p *parser) parseConditionExpr() (*ast.Conditional, error) {
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case *ast.Binary:
		if x.Kind == ast.Logical || x.Kind == ast.Compare {
			return &ast.Conditional{X: x}, nil
		}
	case *ast.Constant, *ast.Unary:
		return &ast.Conditional{X: x}, nil
	}
	return nil, p.errorf("condition")
}

func (p *parser) parseSwitch() (*ast.Switch, error) {
	kw, err := p.expect("switch")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	tag, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	lbrace := p.pos
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}

	label := func() (ast.Stmt, error) {
		return firstOf(p, "'case' or 'default'", stmt(p.parseCase), stmt(p.parseDefault))
	}
	first, err := label()
	if err != nil {
		return nil, err
	}
	labels := []ast.Stmt{first}
	for {
		l, ok, err := optional(p, label)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		labels = append(labels, l)
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}

	sw := &ast.Switch{Keyword: kw, Tag: tag}
	for _, l := range labels {
		switch l := l.(type) {
		case *ast.Case:
			sw.Cases = append(sw.Cases, l)
		case *ast.Default:
			if sw.Default != nil {
				return nil, p.fail(lbrace, "switch statement must contain only one 'default'")
			}
			sw.Default = l
		}
	}
	return sw, nil
}

func (p *parser) parseCase() (*ast.Case, error) {
	kw, err := p.expect("case")
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if !tok.Kind.IsConstant() {
		return nil, p.errorf("constant")
	}
	p.next()
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	body, err := p.parseLabelBody()
	if err != nil {
		return nil, err
	}
	return &ast.Case{Keyword: kw, Label: &ast.Constant{Tok: tok}, Body: body}, nil
}

func (p *parser) parseDefault() (*ast.Default, error) {
	kw, err := p.expect("default")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	body, err := p.parseLabelBody()
	if err != nil {
		return nil, err
	}
	return &ast.Default{Keyword: kw, Body: body}, nil
}

// parseLabelBody reads statements up to the next label or the closing brace.
// Only here may a statement be a break.
func (p *parser) parseLabelBody() ([]ast.Stmt, error) {
	var body []ast.Stmt
	for !p.isLexeme("case") && !p.isLexeme("default") && !p.isKind(token.RBrace) {
		s, err := firstOf(p, "statement or 'break'", p.parseStatement, stmt(p.parseBreak))
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	return body, nil
}

func (p *parser) parseBreak() (*ast.Break, error) {
	kw, err := p.expect("break")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.Break{Keyword: kw}, nil
}

func (p *parser) parseFor() (*ast.For, error) {
	kw, err := p.expect("for")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	init, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseConditionExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	post, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return &ast.For{Keyword: kw, Init: init, Cond: cond, Post: post, Body: body}, nil
}

func (p *parser) parseWhile() (*ast.While, error) {
	kw, err := p.expect("while")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return &ast.While{Keyword: kw, Cond: cond, Body: body}, nil
}

func (p *parser) parseDoWhile() (*ast.DoWhile, error) {
	kw, err := p.expect("do")
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("while"); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.DoWhile{Keyword: kw, Body: body, Cond: cond}, nil
}

func (p *parser) parseReturn() (*ast.Return, error) {
	kw, err := p.expect("return")
	if err != nil {
		return nil, err
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.Return{Keyword: kw, Result: x}, nil
}

func (p *parser) parseAssignment() (*ast.Assignment, error) {
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.Assign, "assign operator"); err != nil {
		return nil, err
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.Assignment{Target: target, Value: x}, nil
}

func (p *parser) parseExprStmt() (*ast.ExprStmt, error) {
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

func (p *parser) parseDeclaration() (*ast.Declaration, error) {
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	decl := &ast.Declaration{Type: t}
	for {
		d, err := firstOf(p, "declarator",
			declarator(p.parseVarDeclarator),
			declarator(p.parsePointerDeclarator),
		)
		if err != nil {
			return nil, err
		}
		decl.Declarators = append(decl.Declarators, d)
		if !p.isKind(token.Comma) {
			break
		}
		p.next()
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *parser) parseVarDeclarator() (*ast.VarDeclarator, error) {
	name, err := p.expectKind(token.Identifier, "name of variable")
	if err != nil {
		return nil, err
	}
	init, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	return &ast.VarDeclarator{Name: name, Init: init}, nil
}

func (p *parser) parsePointerDeclarator() (*ast.PointerDeclarator, error) {
	star, err := p.expect("*")
	if err != nil {
		return nil, err
	}
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	init, err := p.parseInitializer()
	if err != nil {
		return nil, err
	}
	return &ast.PointerDeclarator{Star: star, Var: v, Init: init}, nil
}

// parseInitializer reads "= init" if present, returning nil otherwise.
func (p *parser) parseInitializer() (ast.Initializer, error) {
	if !p.isKind(token.Assign) {
		return nil, nil
	}
	p.next()
	return firstOf(p, "initializer",
		initializer(p.parseAddrInit),
		initializer(func() (*ast.ExprInit, error) {
			x, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.ExprInit{X: x}, nil
		}),
	)
}

func (p *parser) parseAddrInit() (*ast.AddrInit, error) {
	amp, err := p.expectKind(token.Ref, "'&'")
	if err != nil {
		return nil, err
	}
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	return &ast.AddrInit{Amp: amp, Var: v}, nil
}
