// Package lexer splits source text into classified tokens.
package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/strager/cfront/token"
)

func tracer() tracing.Trace {
	return tracing.Select("cfront.lexer")
}

// Alternatives are tried left to right at each offset: quoted literals, the
// two-character operators, single operator characters, word runs, then
// punctuation.
var tokenRegexp = regexp.MustCompile(
	`"([^"]*)"|'[^']'|\+\+|--|==|!=|<=|>=|\|\||&&|[=+\-*/%&^|<>!~?]|[\w."'-]+|[()\[\]{};:,.` + "`" + `]`)

// Error is a lexical error: an unknown lexeme or a stray quote.
type Error struct {
	Token token.Token
}

func (e *Error) Error() string {
	if e.Token.Kind.IsQuote() {
		return fmt.Sprintf("unclosed quote %s at position %s", e.Token.Lexeme, e.Token.Pos)
	}
	return fmt.Sprintf("unknown token '%s' at position %s", e.Token.Lexeme, e.Token.Pos)
}

// Tokenize never fails. Unknown lexemes come back as token.Unknown and are
// reported by Check. Characters no pattern accepts become Unknown tokens too,
// one per run of non-space characters.
func Tokenize(src string) []token.Token {
	var tokens []token.Token
	emit := func(start, end int) {
		line := strings.Count(src[:start], "\n") + 1
		column := start - strings.LastIndexByte(src[:start], '\n')
		lexeme := strings.TrimSpace(src[start:end])
		tokens = append(tokens, token.New(lexeme, token.Position{Line: line, Column: column}))
	}
	gap := func(start, end int) {
		for i := start; i < end; {
			if isSpace(src[i]) {
				i++
				continue
			}
			j := i
			for j < end && !isSpace(src[j]) {
				j++
			}
			emit(i, j)
			i = j
		}
	}

	prev := 0
	for _, m := range tokenRegexp.FindAllStringIndex(src, -1) {
		gap(prev, m[0])
		emit(m[0], m[1])
		prev = m[1]
	}
	gap(prev, len(src))

	tracer().Debugf("tokenized %d bytes into %d tokens", len(src), len(tokens))
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Check returns an error for the first unknown token or stray quote.
func Check(tokens []token.Token) error {
	for _, tok := range tokens {
		if tok.Kind == token.Unknown || tok.Kind.IsQuote() {
			return &Error{Token: tok}
		}
	}
	return nil
}

// Analyze tokenizes src and checks the result.
func Analyze(src string) ([]token.Token, error) {
	tokens := Tokenize(src)
	if err := Check(tokens); err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	return tokens, nil
}
