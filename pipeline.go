package main

import (
	"fmt"
	"os"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/interp"
	"github.com/strager/cfront/lexer"
	"github.com/strager/cfront/parser"
	"github.com/strager/cfront/sema"
	"github.com/strager/cfront/token"
)

// unit is one source file taken through the front end.
type unit struct {
	Tokens  []token.Token
	Program *ast.Program
}

func readSource(filename string) (string, error) {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(sourceBytes), nil
}

// parseSource tokenizes and parses src. No semantic checks are run.
func parseSource(src string) (*unit, error) {
	tokens, err := lexer.Analyze(src)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	return &unit{Tokens: tokens, Program: prog}, nil
}

// checkSource runs every stage up to and including the semantic check.
func checkSource(src string) (*unit, error) {
	u, err := parseSource(src)
	if err != nil {
		return nil, err
	}
	if err := sema.Check(u.Program); err != nil {
		return nil, err
	}
	return u, nil
}

// runSource checks src and then executes it, returning the slots the
// executor materialized.
func runSource(src string) ([]interp.Slot, error) {
	u, err := checkSource(src)
	if err != nil {
		return nil, err
	}
	in := interp.New()
	if err := in.Execute(u.Program); err != nil {
		return nil, err
	}
	return in.Slots(), nil
}

func tokenTable(tokens []token.Token) *consoleTable {
	table := newConsoleTable("#", "Lexeme", "Kind", "Position")
	for i, tok := range tokens {
		table.AddRow(i+1, tok.Lexeme, tok.Kind, tok.Pos)
	}
	return table
}

func slotTable(slots []interp.Slot) *consoleTable {
	table := newConsoleTable("Function", "Name", "Type", "Value", "Depth")
	for _, s := range slots {
		table.AddRow(s.Function, s.Name, s.Type, s.Value, s.Depth)
	}
	return table
}
