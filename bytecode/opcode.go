/*
Package bytecode defines Mirrow's compiled program representation: the
opcode registry, instructions, the constant pool, and function entries —
the `BytecodeProgram {constants[], opcode_table(name→id), instructions[]}`
tuple from spec.md §3.

Each Instruction carries whichever operand fields its opcode needs (a
constant-pool index, a jump target, a variable/field name, an argument
count) rather than a single untyped operand slot — simpler to compile
and to read back in a debug trace than packing everything into one int,
and there is no byte-level encoding to economize here since this is not
a portable serialization format, only an in-process representation
consumed by the vm package in the same run.
*/
package bytecode

import "github.com/mirrow-lang/mirrow/internal/object"

// Opcode identifies an instruction's operation.
type Opcode int

const (
	OpLoadConst Opcode = iota
	OpLoadLocal
	OpStoreLocal
	OpAssignLocal
	OpLoadModuleRef
	OpLoadModuleMember
	OpPop
	OpDup

	OpNeg
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr

	OpMakeArray
	OpMakeMap
	OpMakeSet
	OpMakeEnum
	OpIndexAccess
	OpIndexSet
	OpSlice
	OpRange
	OpArrayAppend

	OpCall
	OpReturn
	OpMakeClosure

	OpJump
	OpJumpIfFalse

	OpPushScope
	OpPopScope
	OpMatchStructTest
	OpMatchExhausted
)

// opcodeNames is the opcode table spec.md requires: addressable by name
// for diagnostics (e.g. a --debug trace), keyed internally by the
// integer Opcode id used everywhere else.
var opcodeNames = map[Opcode]string{
	OpLoadConst:        "load_const",
	OpLoadLocal:        "load_local",
	OpStoreLocal:       "store_local",
	OpAssignLocal:      "assign_local",
	OpLoadModuleRef:    "load_module_ref",
	OpLoadModuleMember: "load_module_member",
	OpPop:              "pop",
	OpDup:              "dup",
	OpNeg:              "neg",
	OpNot:              "not",
	OpAdd:              "add",
	OpSub:              "sub",
	OpMul:              "mul",
	OpDiv:              "div",
	OpMod:              "mod",
	OpEq:               "eq",
	OpNe:               "ne",
	OpLt:               "lt",
	OpGt:               "gt",
	OpLe:               "le",
	OpGe:               "ge",
	OpAnd:              "and",
	OpOr:               "or",
	OpMakeArray:        "make_array",
	OpMakeMap:          "make_map",
	OpMakeSet:          "make_set",
	OpMakeEnum:         "make_enum",
	OpIndexAccess:      "index_access",
	OpIndexSet:         "index_set",
	OpSlice:            "slice",
	OpRange:            "range",
	OpArrayAppend:      "array_append",
	OpCall:             "call",
	OpReturn:           "return",
	OpMakeClosure:      "make_closure",
	OpJump:             "jump",
	OpJumpIfFalse:      "jump_if_false",
	OpPushScope:        "push_scope",
	OpPopScope:         "pop_scope",
	OpMatchStructTest:  "match_struct_test",
	OpMatchExhausted:   "match_exhausted",
}

// Name returns an opcode's mnemonic, or "unknown" if id isn't in the
// table — the table itself is the single source of truth the testable
// property in spec.md §8 refers to ("every instruction's opcode id is
// present in the opcode table").
func (op Opcode) Name() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unknown"
}

// GetOpcode looks an opcode up by its mnemonic, mirroring spec.md §3's
// `get_opcode("index_access")` diagnostic API.
func GetOpcode(name string) (Opcode, bool) {
	for id, n := range opcodeNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// Instruction is one step of compiled bytecode. Which fields are
// meaningful depends on Op; see the compiler's emit helpers for the
// exact shape each opcode expects.
type Instruction struct {
	Op      Opcode
	Int     int      // load_const index, jump target, call argc, make_* count
	Str     string   // variable/module/field name
	Str2    string   // second name operand (load_module_member's member)
	Names   []string // match_struct_test's required field names
	Line    int
}

// Function is one compiled function body: its parameter names and its
// own instruction stream. Mirrow gives every function (including the
// implicit top-level program) its own instruction slice and its own
// frame-local program counter, rather than one flat globally addressed
// stream — simpler to reason about and matches spec.md §4.4's framing
// of a frame as owning `code_ptr`.
type Function struct {
	Name   string
	Params []string
	body   []Instruction
}

func (f *Function) SetBody(instrs []Instruction) { f.body = instrs }
func (f *Function) Body() []Instruction          { return f.body }

// Program is a fully compiled Mirrow unit: deduplicated constants, the
// set of user-defined functions (for forward reference / hoisting, per
// spec.md §4.3), the implicit top-level "main" function, and the set of
// module names successfully imported (recorded so the vm can validate
// `PropertyAccess` targets are real modules without re-deriving that
// from the AST).
type Program struct {
	Constants []object.Value
	Functions map[string]*Function
	Main      *Function
	Modules   map[string]bool
}

func NewProgram() *Program {
	return &Program{
		Functions: make(map[string]*Function),
		Modules:   make(map[string]bool),
	}
}
