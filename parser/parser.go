// Package parser builds an ast.Program from a token sequence.
//
// The parser is recursive descent with backtracking. Grammar rules are plain
// methods that consume tokens and return an *Error on the first mismatch.
// Two combinators glue them together:
//
//   - firstOf tries alternatives in order from the same position and, when
//     all of them fail, reports the failure that got furthest into the input.
//   - optional tries one rule and yields "absent" when it failed on its very
//     first token. A failure deeper in the rule is a real syntax error and
//     propagates.
//
// Both combinators snapshot and restore the cursor themselves.
package parser

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/token"
)

func tracer() tracing.Trace {
	return tracing.Select("cfront.parser")
}

// Error is a syntax error. Either Expected names what the rule wanted in
// place of Found, or Message describes a rule violation at Found.
type Error struct {
	Expected string
	Found    token.Token
	Message  string

	offset int // index of Found in the token sequence
}

func (e *Error) Error() string {
	found := e.Found.Lexeme
	if e.Found.Kind == token.EOF {
		found = "end of input"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s at position %s", e.Message, e.Found.Pos)
	}
	return fmt.Sprintf("expected %s, found '%s' at position %s", e.Expected, found, e.Found.Pos)
}

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse parses function definitions until the tokens run out.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := &parser{tokens: tokens}
	prog := &ast.Program{}
	for !p.atEOF() {
		fn, err := p.parseFunction()
		if err != nil {
			tracer().Errorf("%v", err)
			return nil, err
		}
		tracer().Debugf("parsed function %s", fn)
		prog.Functions = append(prog.Functions, fn)
	}
	tracer().Infof("parsed %d functions", len(prog.Functions))
	return prog, nil
}

// ParseExpression parses tokens as a single expression.
func ParseExpression(tokens []token.Token) (ast.Expr, error) {
	p := &parser{tokens: tokens}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("end of expression")
	}
	return x, nil
}

func (p *parser) atEOF() bool { return p.pos >= len(p.tokens) }

// peek returns the current token, or an EOF token placed at the last token's
// position once the input is exhausted.
func (p *parser) peek() token.Token {
	if !p.atEOF() {
		return p.tokens[p.pos]
	}
	eof := token.Token{Kind: token.EOF, Pos: token.Position{Line: 1, Column: 1}}
	if n := len(p.tokens); n > 0 {
		eof.Pos = p.tokens[n-1].Pos
	}
	return eof
}

func (p *parser) next() token.Token {
	tok := p.peek()
	if !p.atEOF() {
		p.pos++
	}
	return tok
}

func (p *parser) isKind(kind token.Kind) bool { return p.peek().Kind == kind }

func (p *parser) isLexeme(lexeme string) bool {
	tok := p.peek()
	return tok.Kind != token.EOF && tok.Lexeme == lexeme
}

// errorf reports that the current token is not what was expected.
func (p *parser) errorf(expected string) *Error {
	return &Error{Expected: expected, Found: p.peek(), offset: p.pos}
}

// fail reports a rule violation at the token with index at.
func (p *parser) fail(at int, format string, args ...any) *Error {
	saved := p.pos
	p.pos = at
	found := p.peek()
	p.pos = saved
	return &Error{Message: fmt.Sprintf(format, args...), Found: found, offset: at}
}

// expect consumes a token with the given text.
func (p *parser) expect(lexeme string) (token.Token, error) {
	if !p.isLexeme(lexeme) {
		return token.Token{}, p.errorf("'" + lexeme + "'")
	}
	return p.next(), nil
}

// expectKind consumes a token of the given kind.
func (p *parser) expectKind(kind token.Kind, expected string) (token.Token, error) {
	if !p.isKind(kind) {
		return token.Token{}, p.errorf(expected)
	}
	return p.next(), nil
}

// firstOf returns the result of the first alternative that succeeds. When all
// fail, the error from the alternative that got furthest wins. Ties go to the
// earlier one, and a failure no further than the start is reported as label.
func firstOf[T any](p *parser, label string, alts ...func() (T, error)) (T, error) {
	start := p.pos
	best := p.errorf(label)
	for _, alt := range alts {
		x, err := alt()
		if err == nil {
			return x, nil
		}
		p.pos = start
		perr, ok := err.(*Error)
		if !ok {
			var zero T
			return zero, err
		}
		if perr.offset > best.offset {
			best = perr
		}
	}
	tracer().Debugf("no %s at %s: %v", label, p.peek().Pos, best)
	var zero T
	return zero, best
}

// optional runs rule and reports whether it matched. A failure on the rule's
// first token restores the cursor and is not an error.
func optional[T any](p *parser, rule func() (T, error)) (T, bool, error) {
	start := p.pos
	x, err := rule()
	if err == nil {
		return x, true, nil
	}
	if perr, ok := err.(*Error); ok && perr.offset <= start {
		p.pos = start
		var zero T
		return zero, false, nil
	}
	var zero T
	return zero, false, err
}

// stmt, expr and declarator widen a rule's concrete node type so it can sit
// in a firstOf list next to its siblings.

func stmt[S ast.Stmt](rule func() (S, error)) func() (ast.Stmt, error) {
	return func() (ast.Stmt, error) {
		s, err := rule()
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func expr[E ast.Expr](rule func() (E, error)) func() (ast.Expr, error) {
	return func() (ast.Expr, error) {
		x, err := rule()
		if err != nil {
			return nil, err
		}
		return x, nil
	}
}

func declarator[D ast.Declarator](rule func() (D, error)) func() (ast.Declarator, error) {
	return func() (ast.Declarator, error) {
		d, err := rule()
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

func initializer[I ast.Initializer](rule func() (I, error)) func() (ast.Initializer, error) {
	return func() (ast.Initializer, error) {
		i, err := rule()
		if err != nil {
			return nil, err
		}
		return i, nil
	}
}
