/*
Package repl implements Mirrow's interactive Read-Eval-Print Loop,
grounded in repl/repl.go: a readline-backed prompt, a colored banner,
the `.exit` sentinel, and per-line panic recovery so one bad line never
crashes the session — rewritten against the lexer/parser/compiler/vm
pipeline instead of the host project's parser/eval.Evaluator, and
against a persistent vm.Session (vm/session.go) in place of the host
project's persistent eval.Evaluator so `let` bindings survive from one
line to the next.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/mirrow-lang/mirrow/compiler"
	"github.com/mirrow-lang/mirrow/internal/stdlib"
	"github.com/mirrow-lang/mirrow/lexer"
	"github.com/mirrow-lang/mirrow/parser"
	"github.com/mirrow-lang/mirrow/vm"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the banner/version/prompt text printed at startup,
// exactly the fields repl.Repl carries.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

func New(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt}
}

func (r *Repl) printBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Mirrow!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the loop until '.exit' or EOF (Ctrl+D).
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	session := vm.NewSession(stdlib.Registry(), writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.executeWithRecovery(writer, line, session)
	}
}

// executeWithRecovery parses, compiles and runs one line against the
// session's persistent environment, reporting lexical/syntactic/
// compile/runtime errors in red and a successful result in yellow —
// unlike file-mode execution, the loop continues after any error.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, session *vm.Session) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	p := parser.NewParser(lexer.NewLexer(line))
	program := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, e := range p.Errors {
			redColor.Fprintf(writer, "%s\n", e)
		}
		return
	}

	compiled, errs := compiler.Compile(program)
	if len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(writer, "%s\n", e)
		}
		return
	}

	result, err := session.Run(compiled)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
		return
	}
	if result != nil {
		yellowColor.Fprintf(writer, "%s\n", result.ToString())
	}
}
