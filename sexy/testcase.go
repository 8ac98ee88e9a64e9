package sexy

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language of a test's input fence.
type InputType string

const (
	InputTypeExpr    InputType = "c-expr"
	InputTypeProgram InputType = "c-program"
)

// AssertionType is the language of an assertion fence.
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeTokens       AssertionType = "tokens"
	AssertionTypeCompileError AssertionType = "compile-error"
	AssertionTypeSlots        AssertionType = "slots"
)

// assertionsFor lists the assertions each kind of input accepts. Only whole
// programs reach the executor, so only they have slots.
var assertionsFor = map[InputType][]AssertionType{
	InputTypeExpr:    {AssertionTypeAST, AssertionTypeTokens, AssertionTypeCompileError},
	InputTypeProgram: {AssertionTypeAST, AssertionTypeTokens, AssertionTypeCompileError, AssertionTypeSlots},
}

// Assertion is one expectation about a test's input.
type Assertion struct {
	Type       AssertionType
	Content    string
	ParsedSexy *Node // ast assertions only
	Line       int
}

// TestCase is a "Test: name" heading with its input and assertions.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
	Line       int
}

// ExtractError points at the markdown line a test case went wrong on.
type ExtractError struct {
	Line int
	Test string // empty outside of a test
	Msg  string
}

func (e *ExtractError) Error() string {
	if e.Test == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: test '%s': %s", e.Line, e.Test, e.Msg)
}

const testPrefix = "Test: "

// ExtractTestCases returns the test cases of a markdown document in order.
//
// A test starts at a heading whose text begins with "Test: " and runs until
// the next such heading. Other headings, prose and fences without a language
// are ignored. Any other fence must be an input or assertion fence inside a
// test.
func ExtractTestCases(markdown string) ([]TestCase, error) {
	x := &extractor{src: []byte(markdown)}
	doc := goldmark.DefaultParser().Parse(text.NewReader(x.src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var err error
		switch n := n.(type) {
		case *ast.Heading:
			err = x.heading(n)
		case *ast.FencedCodeBlock:
			err = x.fence(n)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := x.finish(); err != nil {
		return nil, err
	}
	return x.cases, nil
}

type extractor struct {
	src   []byte
	cur   *TestCase
	cases []TestCase
}

func (x *extractor) errorf(line int, format string, args ...any) error {
	e := &ExtractError{Line: line, Msg: fmt.Sprintf(format, args...)}
	if x.cur != nil {
		e.Test = x.cur.Name
	}
	return e
}

func (x *extractor) heading(h *ast.Heading) error {
	name, ok := strings.CutPrefix(x.text(h.Lines()), testPrefix)
	if !ok {
		return nil
	}
	if err := x.finish(); err != nil {
		return err
	}
	x.cur = &TestCase{Name: strings.TrimSpace(name), Line: x.line(h)}
	return nil
}

func (x *extractor) fence(f *ast.FencedCodeBlock) error {
	lang := string(f.Language(x.src))
	if lang == "" {
		return nil
	}
	line := x.line(f)
	_, isInput := assertionsFor[InputType(lang)]
	isAssertion := slices.Contains(assertionsFor[InputTypeProgram], AssertionType(lang))
	switch {
	case !isInput && !isAssertion:
		return x.errorf(line, "unknown fence language '%s'", lang)
	case x.cur == nil:
		return x.errorf(line, "%s fence outside of a test", lang)
	}

	body := strings.TrimRight(x.text(f.Lines()), "\n")
	if isInput {
		if x.cur.InputType != "" {
			return x.errorf(line, "more than one input fence")
		}
		x.cur.InputType = InputType(lang)
		x.cur.Input = body
		return nil
	}

	a := Assertion{Type: AssertionType(lang), Content: body, Line: line}
	if a.Type == AssertionTypeAST {
		pattern, err := Parse(body)
		if err != nil {
			return x.errorf(line, "bad ast pattern: %v", err)
		}
		a.ParsedSexy = pattern
	}
	x.cur.Assertions = append(x.cur.Assertions, a)
	return nil
}

// finish validates the open test case and moves it to the results.
func (x *extractor) finish() error {
	tc := x.cur
	if tc == nil {
		return nil
	}
	if tc.InputType == "" || strings.TrimSpace(tc.Input) == "" {
		return x.errorf(tc.Line, "no input fence")
	}
	if len(tc.Assertions) == 0 {
		return x.errorf(tc.Line, "no assertion fences")
	}
	for _, a := range tc.Assertions {
		if !slices.Contains(assertionsFor[tc.InputType], a.Type) {
			return x.errorf(a.Line, "%s cannot be asserted on %s input", a.Type, tc.InputType)
		}
		if a.Type == AssertionTypeCompileError && strings.TrimSpace(a.Content) == "" {
			return x.errorf(a.Line, "empty compile-error fence")
		}
	}
	x.cases = append(x.cases, *tc)
	x.cur = nil
	return nil
}

func (x *extractor) text(lines *text.Segments) string {
	var b bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(x.src))
	}
	return b.String()
}

// line is the 1-based line of n: the opening fence line for fences, the
// first content line otherwise.
func (x *extractor) line(n ast.Node) int {
	offset := 0
	if f, ok := n.(*ast.FencedCodeBlock); ok && f.Info != nil {
		offset = f.Info.Segment.Start
	} else if n.Lines().Len() > 0 {
		offset = n.Lines().At(0).Start
	}
	return bytes.Count(x.src[:offset], []byte("\n")) + 1
}
