// Package sexy reads the s-expressions used as tree patterns in the markdown
// test corpus, matches trees against them, and extracts the test cases.
package sexy

import (
	"fmt"
	"strings"
)

// NodeType tells which kind of datum a Node is.
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

// Node is one datum. Atoms keep their text, lists their items.
type Node struct {
	Type  NodeType
	Text  string
	Items []*Node
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// String prints n in the form Parse reads back.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Type {
	case NodeString:
		b.WriteByte('"')
		quoter.WriteString(b, n.Text)
		b.WriteByte('"')
	case NodeEllipsis:
		b.WriteString("...")
	case NodeList:
		b.WriteByte('(')
		for i, item := range n.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			item.write(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString(n.Text)
	}
}

// SyntaxError is malformed s-expression text. Offset is in bytes.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Parse reads exactly one datum from input. Whitespace and comments, which
// run from ';' to the end of the line, may surround it.
func Parse(input string) (*Node, error) {
	r := &reader{src: input}
	n, err := r.datum()
	if err != nil {
		return nil, err
	}
	r.skip()
	if !r.eof() {
		return nil, r.errorf("trailing input after datum")
	}
	return n, nil
}

type reader struct {
	src string
	pos int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

// at returns the byte i positions ahead, or 0 past the end.
func (r *reader) at(i int) byte {
	if r.pos+i >= len(r.src) {
		return 0
	}
	return r.src[r.pos+i]
}

func (r *reader) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: r.pos, Msg: fmt.Sprintf(format, args...)}
}

func (r *reader) skip() {
	for !r.eof() {
		switch r.at(0) {
		case ' ', '\t', '\n', '\r':
			r.pos++
		case ';':
			for !r.eof() && r.at(0) != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) datum() (*Node, error) {
	r.skip()
	if r.eof() {
		return nil, r.errorf("unexpected end of input")
	}
	c := r.at(0)
	isSign := c == '+' || c == '-'
	switch {
	case c == '(':
		return r.list()
	case c == '"':
		return r.str()
	case strings.HasPrefix(r.src[r.pos:], "..."):
		r.pos += 3
		return &Node{Type: NodeEllipsis}, nil
	case isDigit(c), isSign && isDigit(r.at(1)):
		return &Node{Type: NodeInteger, Text: r.run(isDigit)}, nil
	case isSymbolStart(c), isSign:
		return &Node{Type: NodeSymbol, Text: r.run(isSymbolChar)}, nil
	}
	return nil, r.errorf("unexpected character %q", c)
}

// run takes the current byte and every following byte accepted by more.
func (r *reader) run(more func(byte) bool) string {
	start := r.pos
	r.pos++
	for !r.eof() && more(r.at(0)) {
		r.pos++
	}
	return r.src[start:r.pos]
}

func (r *reader) list() (*Node, error) {
	open := r.pos
	r.pos++
	list := &Node{Type: NodeList, Items: []*Node{}}
	for {
		r.skip()
		if r.eof() {
			return nil, &SyntaxError{Offset: open, Msg: "unclosed '('"}
		}
		if r.at(0) == ')' {
			r.pos++
			return list, nil
		}
		item, err := r.datum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
}

// str reads a quoted string. Only \" and \\ are escapes.
func (r *reader) str() (*Node, error) {
	open := r.pos
	r.pos++
	var b strings.Builder
	for !r.eof() {
		c := r.at(0)
		r.pos++
		switch c {
		case '"':
			return &Node{Type: NodeString, Text: b.String()}, nil
		case '\\':
			if r.eof() {
				continue
			}
			esc := r.at(0)
			if esc != '"' && esc != '\\' {
				return nil, r.errorf("invalid escape \\%c", esc)
			}
			b.WriteByte(esc)
			r.pos++
		default:
			b.WriteByte(c)
		}
	}
	return nil, &SyntaxError{Offset: open, Msg: "unterminated string"}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool {
	u := c &^ 0x20
	return 'A' <= u && u <= 'Z'
}

// isSymbolStart allows '_' so a lone underscore can serve as a wildcard.
func isSymbolStart(c byte) bool { return isLetter(c) || c == '_' }

func isSymbolChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}
