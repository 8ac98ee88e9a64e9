package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/lexer"
	"github.com/strager/cfront/token"
)

const defaultInput = "input.c"

func showUsage() {
	fmt.Fprintf(os.Stderr, `cfront - a front end for a small subset of C

Usage:
    cfront [-trace level] <command> [arguments]

Commands:
    check [file]    Parse and check a C file
    run [file]      Check a C file and execute it
    tokens [file]   Print the token table of a C file
    ast [file]      Print the syntax tree of a C file
    help            Show this help message

The file defaults to %s in the current directory.

Examples:
    cfront check
    cfront run -v testdata/input.c
    cfront tokens -unique input.c
    cfront -trace debug ast -pretty input.c

Use "cfront <command> -h" for more information about a command.
`, defaultInput)
}

// fail reports err the way every subcommand does and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// parseCommand parses args with fs and returns the input file name.
func parseCommand(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	switch fs.NArg() {
	case 0:
		return defaultInput
	case 1:
		return fs.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one file argument\n")
		fs.Usage()
		os.Exit(1)
		return ""
	}
}

func commandUsage(fs *flag.FlagSet, usage, summary string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: cfront %s\n", usage)
		fmt.Fprintf(os.Stderr, "%s\n\n", summary)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = commandUsage(fs, "check [-v] [file]", "Parse and check a C file")
	filename := parseCommand(fs, args)

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}
	src, err := readSource(filename)
	if err != nil {
		fail(err)
	}
	u, err := checkSource(src)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		for _, fn := range u.Program.Functions {
			fmt.Printf("  %s\n", fn)
		}
	}
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Print the materialized variable slots")
	fs.Usage = commandUsage(fs, "run [-v] [file]", "Check a C file and execute it")
	filename := parseCommand(fs, args)

	src, err := readSource(filename)
	if err != nil {
		fail(err)
	}
	slots, err := runSource(src)
	if err != nil {
		fail(err)
	}

	if *verbose {
		fmt.Println(slotTable(slots))
	}
}

func tokensCommand(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	unique := fs.Bool("unique", false, "List each lexeme once")
	fs.Usage = commandUsage(fs, "tokens [-unique] [file]", "Print the token table of a C file")
	filename := parseCommand(fs, args)

	src, err := readSource(filename)
	if err != nil {
		fail(err)
	}
	tokens, err := lexer.Analyze(src)
	if err != nil {
		fail(err)
	}
	if *unique {
		tokens = token.Unique(tokens)
	}
	fmt.Println(tokenTable(tokens))
}

func astCommand(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	asGo := fs.Bool("pretty", false, "Dump the tree as Go values instead of an s-expression")
	fs.Usage = commandUsage(fs, "ast [-pretty] [file]", "Print the syntax tree of a C file")
	filename := parseCommand(fs, args)

	src, err := readSource(filename)
	if err != nil {
		fail(err)
	}
	u, err := parseSource(src)
	if err != nil {
		fail(err)
	}
	if *asGo {
		fmt.Printf("%# v\n", pretty.Formatter(u.Program))
		return
	}
	fmt.Println(ast.SExpr(u.Program))
}

// setupTracing routes every tracer to a Go standard logger at level.
func setupTracing(level string) {
	if level == "" {
		return
	}
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("cfront").SetTraceLevel(tracing.TraceLevelFromString(level))
}

func main() {
	global := flag.NewFlagSet("cfront", flag.ExitOnError)
	traceLevel := global.String("trace", "", "Trace level: error, info or debug")
	global.Usage = showUsage
	if err := global.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if global.NArg() < 1 {
		showUsage()
		os.Exit(1)
	}
	setupTracing(*traceLevel)

	command := global.Arg(0)
	args := global.Args()[1:]

	switch command {
	case "check":
		checkCommand(args)
	case "run":
		runCommand(args)
	case "tokens":
		tokensCommand(args)
	case "ast":
		astCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
