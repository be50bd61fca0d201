/*
Package main is the entry point for the Mirrow interpreter.

It runs in one of two modes: given a file argument, it compiles and
executes one ".n" source file, optionally with --debug tracing; given
no file argument, it starts the interactive REPL from internal/repl.
Unlike the host project's main.go, there is no "server <port>" TCP mode
(see DESIGN.md's "Dropped/trimmed teacher code").
*/
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/compiler"
	"github.com/mirrow-lang/mirrow/internal/repl"
	"github.com/mirrow-lang/mirrow/internal/stdlib"
	"github.com/mirrow-lang/mirrow/lexer"
	"github.com/mirrow-lang/mirrow/parser"
	"github.com/mirrow-lang/mirrow/vm"
)

var (
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
	cyanColor  = color.New(color.FgCyan)
)

const (
	version = "v1.0.0"
	author  = "mirrow-lang"
	line    = "----------------------------------------------------------------"
	banner  = `
  __  __ _
 |  \/  (_)_ __ _ __ _____      __
 | |\/| | | '__| '__/ _ \ \ /\ / /
 | |  | | | |  | | | (_) \ V  V /
 |_|  |_|_|_|  |_|  \___/ \_/\_/
`
	prompt = "mirrow >>> "
)

func main() {
	args := os.Args[1:]
	debug := false
	var fileArgs []string
	for _, a := range args {
		switch a {
		case "--debug":
			debug = true
		case "-h", "--help":
			showHelp()
			os.Exit(0)
		case "-V", "--version":
			showVersion()
			os.Exit(0)
		default:
			fileArgs = append(fileArgs, a)
		}
	}

	if len(fileArgs) == 0 {
		r := repl.New(banner, version, author, line, prompt)
		r.Start(os.Stdout)
		return
	}

	if len(fileArgs) > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one source file")
		os.Exit(1)
	}

	runFile(fileArgs[0], debug)
}

func showHelp() {
	cyanColor.Println("Mirrow - a dynamically typed scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	greenColor.Println("  mirrow [--debug] <file.n>   Run a Mirrow source file")
	greenColor.Println("  mirrow                      Start the interactive REPL")
	greenColor.Println("  mirrow -h, --help           Display this help message")
	greenColor.Println("  mirrow -V, --version        Display version information")
	cyanColor.Println("")
	cyanColor.Println("DEBUG:")
	greenColor.Println("  --debug prints, in order: source, tokens, AST, bytecode, execution trace")
}

func showVersion() {
	cyanColor.Printf("Mirrow %s\n", version)
}

// runFile implements the file-mode pipeline spec.md §6 requires: a
// strict ".n" extension check, then lex -> parse -> compile -> run,
// stopping at the first stage that fails and reporting that stage's
// errors as "Error:"-prefixed messages on stderr with a non-zero exit,
// or a "✅"-prefixed success message otherwise. An internal panic is
// recovered and reported the same way.
func runFile(path string, debug bool) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(os.Stderr, "Error: %v\n", r)
			os.Exit(1)
		}
	}()

	if !strings.HasSuffix(path, ".n") {
		fmt.Fprintln(os.Stderr, "Error: File must have .n extension")
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	src := string(source)

	if debug {
		fmt.Println("==== source ====")
		fmt.Println(src)
	}

	if debug {
		fmt.Println("==== tokens ====")
		dbgLex := lexer.NewLexer(src)
		for {
			tok := dbgLex.NextToken()
			fmt.Println(tok.String())
			if tok.Type == lexer.EOF {
				break
			}
		}
	}

	p := parser.NewParser(lexer.NewLexer(src))
	program := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, e := range p.Errors {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
		os.Exit(1)
	}

	if debug {
		fmt.Println("==== ast ====")
		fmt.Print(ast.Dump(program))
	}

	compiled, errs := compiler.Compile(program)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
		os.Exit(1)
	}

	if debug {
		fmt.Println("==== bytecode ====")
		dumpBytecode(compiled)
	}

	v := vm.New(compiled, stdlib.Registry(), os.Stdout)
	if debug {
		fmt.Println("==== trace ====")
		v.SetTrace(os.Stdout)
	}

	result, err := v.Run()
	if err != nil {
		redColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result != nil {
		greenColor.Printf("✅ %s\n", result.ToString())
	}
}

func dumpBytecode(prog *bytecode.Program) {
	dumpFunction(prog.Main)
	for _, fn := range prog.Functions {
		dumpFunction(fn)
	}
}

func dumpFunction(fn *bytecode.Function) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s(%s):\n", fn.Name, strings.Join(fn.Params, ", "))
	for i, ins := range fn.Body() {
		fmt.Fprintf(&buf, "  %4d  %-20s int=%-6d str=%-10s str2=%-10s\n",
			i, ins.Op.Name(), ins.Int, ins.Str, ins.Str2)
	}
	fmt.Print(buf.String())
}
