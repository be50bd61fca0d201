/*
Package stdlib implements Mirrow's fixed built-in module registry
(spec.md §6: "A fixed registry is exposed to import"). Each file in this
package contributes one module — IO, Math, String, Array, Json, Config,
the exact names compiler.moduleRegistry validates import statements
against — grounded directly in the host project's std/*.go layout: one
file per concern, a package-level slice of named callbacks, and an
init() that wires the slice into a registry. Here the registry is built
explicitly by Registry() rather than through init()-time global state,
since vm.New needs a fresh map.Members per *vm.VM rather than one shared
mutable slice.
*/
package stdlib

import "github.com/mirrow-lang/mirrow/vm"

// Registry returns the fixed built-in module set, keyed by the same
// names the compiler accepts in an import statement.
func Registry() map[string]*vm.Module {
	return map[string]*vm.Module{
		"IO":     ioModule(),
		"Math":   mathModule(),
		"String": stringModule(),
		"Array":  arrayModule(),
		"Json":   jsonModule(),
		"Config": configModule(),
	}
}
