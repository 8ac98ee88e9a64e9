package parser

import (
	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/token"
)

// precedence of each binary operator. Higher binds tighter.
var precedence = map[string]int{
	"*": 10, "/": 10, "%": 10,
	"+": 9, "-": 9,
	"<": 7, "<=": 7, ">": 7, ">=": 7,
	"==": 6, "!=": 6,
	"&&": 2,
	"||": 1,
}

func binaryKind(op token.Kind) ast.BinaryKind {
	switch op {
	case token.Multiplicative:
		return ast.Multiply
	case token.Logical:
		return ast.Logical
	case token.Comparison:
		return ast.Compare
	}
	return ast.Additive
}

func (p *parser) atBinaryOperator() bool {
	return p.peek().Kind.IsBinaryOperator()
}

// parseExpression folds binary operators left to right, letting a tighter
// operator on the right claim its operands first.
func (p *parser) parseExpression() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.atBinaryOperator() {
		left, err = p.parseBinary(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseBinary consumes one operator and its right operand. While the next
// operator outranks this one, the right operand absorbs it.
func (p *parser) parseBinary(left ast.Expr) (ast.Expr, error) {
	op := p.next()
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	prec := precedence[op.Lexeme]
	for p.atBinaryOperator() && precedence[p.peek().Lexeme] > prec {
		right, err = p.parseBinary(right)
		if err != nil {
			return nil, err
		}
	}
	return &ast.Binary{Kind: binaryKind(op.Kind), Left: left, Op: op, Right: right}, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	return firstOf(p, "primary expression",
		expr(p.parseConstant),
		expr(p.parseCall),
		p.parseParenthesized,
		expr(p.parsePostfix),
		expr(p.parseVariable),
		expr(p.parsePrefix),
		expr(p.parseNot),
		expr(p.parseReference),
		expr(p.parseDereference),
	)
}

func (p *parser) parseConstant() (*ast.Constant, error) {
	tok := p.peek()
	if !tok.Kind.IsConstant() {
		return nil, p.errorf("constant")
	}
	p.next()
	return &ast.Constant{Tok: tok}, nil
}

func (p *parser) parseVariable() (*ast.Variable, error) {
	tok, err := p.expectKind(token.Identifier, "name of variable")
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Tok: tok}, nil
}

func (p *parser) parseCall() (*ast.Call, error) {
	name, err := p.expectKind(token.Identifier, "name of function")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	call := &ast.Call{Name: name}
	if !p.isKind(token.RParen) {
		for {
			x, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, &ast.Argument{X: x})
			if !p.isKind(token.Comma) {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *parser) parseParenthesized() (ast.Expr, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return x, nil
}

func (p *parser) parsePostfix() (*ast.Postfix, error) {
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	op, err := p.expectKind(token.IncDec, "postfix operator")
	if err != nil {
		return nil, err
	}
	return &ast.Postfix{Var: v, Op: op}, nil
}

func (p *parser) parsePrefix() (*ast.Prefix, error) {
	op, err := p.expectKind(token.IncDec, "prefix operator")
	if err != nil {
		return nil, err
	}
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	return &ast.Prefix{Op: op, Var: v}, nil
}

func (p *parser) parseNot() (*ast.Unary, error) {
	op, err := p.expectKind(token.Not, "'!'")
	if err != nil {
		return nil, err
	}
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, X: x}, nil
}

// parseReference reads &name. Addresses are not modeled, so it yields the
// variable itself.
func (p *parser) parseReference() (*ast.Variable, error) {
	if _, err := p.expectKind(token.Ref, "'&'"); err != nil {
		return nil, err
	}
	return p.parseVariable()
}

// parseDereference reads *name and, like parseReference, yields the variable.
func (p *parser) parseDereference() (*ast.Variable, error) {
	if _, err := p.expect("*"); err != nil {
		return nil, err
	}
	return p.parseVariable()
}
