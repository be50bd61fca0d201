/*
The IO module: print/println/printf (grounded in std/common.go's
identically named builtins, generalized from a Go-Mix-wide global
function to a namespaced module member per spec.md §6) plus read_line
and the file-handle operations restored from file/file.go as a
supplemented feature (SPEC_FULL.md §3 — spec.md's Non-goals never
exclude file access).
*/
package stdlib

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/vm"
)

func ioModule() *vm.Module {
	return &vm.Module{
		Name: "IO",
		Members: map[string]vm.NativeFunc{
			"print":     ioPrint,
			"println":   ioPrintln,
			"printf":    ioPrintf,
			"read_line": ioReadLine,
			"fopen":     fileOpen,
			"fclose":    fileClose,
			"fread":     fileRead,
			"fwrite":    fileWrite,
			"fseek":     fileSeek,
			"ftell":     fileTell,
		},
	}
}

func ioPrint(rt vm.Runtime, args []object.Value) (object.Value, error) {
	fmt.Fprint(rt.Stdout(), joinArgs(args))
	return &object.Nil{}, nil
}

func ioPrintln(rt vm.Runtime, args []object.Value) (object.Value, error) {
	fmt.Fprintln(rt.Stdout(), joinArgs(args))
	return &object.Nil{}, nil
}

func joinArgs(args []object.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToString()
	}
	return strings.Join(parts, " ")
}

func ioPrintf(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return wrongArgCount("printf", 1, len(args))
	}
	format, ok := args[0].(*object.String)
	if !ok {
		return argTypeError("printf", 0, object.StringType, args[0].GetType())
	}
	rest := make([]interface{}, len(args)-1)
	for i, a := range args[1:] {
		rest[i] = extractGo(a)
	}
	fmt.Fprintf(rt.Stdout(), format.Value, rest...)
	return &object.Nil{}, nil
}

var stdinReader = bufio.NewReader(os.Stdin)

func ioReadLine(rt vm.Runtime, args []object.Value) (object.Value, error) {
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return createError("read_line: %v", err)
	}
	return rt.Alloc(&object.String{Value: strings.TrimRight(line, "\r\n")}), nil
}

func fileOpen(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("fopen", 2, len(args))
	}
	path := args[0].ToString()
	mode := args[1].ToString()

	var flag int
	switch mode {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+":
		flag = os.O_RDWR
	case "w+":
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	default:
		return createError("fopen: invalid mode %q", mode)
	}

	handle, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return createError("fopen: %v", err)
	}
	return &object.File{Handle: handle, Path: path}, nil
}

func asFile(name string, v object.Value) (*object.File, error) {
	f, ok := v.(*object.File)
	if !ok {
		return nil, fmt.Errorf("%s: argument must be a file handle, got %s", name, v.GetType())
	}
	return f, nil
}

func fileClose(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("fclose", 1, len(args))
	}
	f, err := asFile("fclose", args[0])
	if err != nil {
		return createError("%v", err)
	}
	if err := f.Handle.Close(); err != nil {
		return createError("fclose: %v", err)
	}
	return &object.Nil{}, nil
}

func fileRead(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("fread", 2, len(args))
	}
	f, err := asFile("fread", args[0])
	if err != nil {
		return createError("%v", err)
	}
	n, ok := args[1].(*object.Number)
	if !ok {
		return argTypeError("fread", 1, object.NumberType, args[1].GetType())
	}
	buf := make([]byte, int(n.Value))
	read, readErr := f.Handle.Read(buf)
	if readErr != nil && read == 0 {
		return rt.Alloc(&object.String{Value: ""}), nil
	}
	return rt.Alloc(&object.String{Value: string(buf[:read])}), nil
}

func fileWrite(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("fwrite", 2, len(args))
	}
	f, err := asFile("fwrite", args[0])
	if err != nil {
		return createError("%v", err)
	}
	n, werr := f.Handle.WriteString(args[1].ToString())
	if werr != nil {
		return createError("fwrite: %v", werr)
	}
	return &object.Number{Value: float64(n)}, nil
}

func fileSeek(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("fseek", 2, len(args))
	}
	f, err := asFile("fseek", args[0])
	if err != nil {
		return createError("%v", err)
	}
	off, ok := args[1].(*object.Number)
	if !ok {
		return argTypeError("fseek", 1, object.NumberType, args[1].GetType())
	}
	pos, serr := f.Handle.Seek(int64(off.Value), 0)
	if serr != nil {
		return createError("fseek: %v", serr)
	}
	return &object.Number{Value: float64(pos)}, nil
}

func fileTell(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("ftell", 1, len(args))
	}
	f, err := asFile("ftell", args[0])
	if err != nil {
		return createError("%v", err)
	}
	pos, serr := f.Handle.Seek(0, 1)
	if serr != nil {
		return createError("ftell: %v", serr)
	}
	return &object.Number{Value: float64(pos)}, nil
}
