package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestConsoleTable(t *testing.T) {
	table := newConsoleTable("#", "Lexeme", "Kind")
	table.AddRow(1, "int", "Keyword")
	table.AddRow(2, "main", "Identifier")

	want := "" +
		"+---+--------+------------+\n" +
		"| # | Lexeme | Kind       |\n" +
		"+---+--------+------------+\n" +
		"| 1 | int    | Keyword    |\n" +
		"| 2 | main   | Identifier |\n" +
		"+---+--------+------------+"
	be.Equal(t, table.String(), want)
}

func TestConsoleTableEmpty(t *testing.T) {
	table := newConsoleTable("a")
	be.Equal(t, table.String(), "+---+\n| a |\n+---+\n+---+")
}

func TestConsoleTableShortRow(t *testing.T) {
	table := newConsoleTable("a", "b")
	table.AddRow("xyz")
	be.Equal(t, table.String(), ""+
		"+-----+---+\n"+
		"| a   | b |\n"+
		"+-----+---+\n"+
		"| xyz |   |\n"+
		"+-----+---+")
}
