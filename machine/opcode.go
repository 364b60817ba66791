package machine

import (
	"fmt"
	"strings"
)

// Operation is the operation selected by the low two digits of an
// instruction word.
type Operation int

const (
	OP_ADD        = Operation(1)  // add
	OP_MULTIPLY   = Operation(2)  // mul
	OP_INPUT      = Operation(3)  // in
	OP_OUTPUT     = Operation(4)  // out
	OP_JUMP_TRUE  = Operation(5)  // jnz
	OP_JUMP_FALSE = Operation(6)  // jz
	OP_LESS_THAN  = Operation(7)  // lt
	OP_EQUALS     = Operation(8)  // eq
	OP_ADJUST_BP  = Operation(9)  // arb
	OP_HALT       = Operation(99) // hlt
)

// operationInfo is the mnemonic and operand count of each operation.
var operationInfo = map[Operation]struct {
	name     string
	operands int
}{
	OP_ADD:        {"add", 3},
	OP_MULTIPLY:   {"mul", 3},
	OP_INPUT:      {"in", 1},
	OP_OUTPUT:     {"out", 1},
	OP_JUMP_TRUE:  {"jnz", 2},
	OP_JUMP_FALSE: {"jz", 2},
	OP_LESS_THAN:  {"lt", 3},
	OP_EQUALS:     {"eq", 3},
	OP_ADJUST_BP:  {"arb", 1},
	OP_HALT:       {"hlt", 0},
}

// Valid returns true if op is a known operation.
func (op Operation) Valid() bool {
	_, ok := operationInfo[op]
	return ok
}

// Operands returns the number of operands that follow the instruction word.
func (op Operation) Operands() int {
	return operationInfo[op].operands
}

// Target returns the index of the operand written by the operation,
// or -1 if the operation writes no memory.
func (op Operation) Target() int {
	switch op {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUALS:
		return 2
	case OP_INPUT:
		return 0
	}
	return -1
}

// String returns the assembler mnemonic of the operation.
func (op Operation) String() string {
	info, ok := operationInfo[op]
	if !ok {
		return fmt.Sprintf("Operation(%d)", int(op))
	}
	return info.name
}

// Mode is an operand addressing mode.
type Mode int

const (
	MODE_ABSOLUTE  = Mode(0) // Operand is an address.
	MODE_IMMEDIATE = Mode(1) // Operand is the value.
	MODE_RELATIVE  = Mode(2) // Operand is an offset from the base pointer.
)

// Valid returns true if mode is a known addressing mode.
func (mode Mode) Valid() bool {
	return mode >= MODE_ABSOLUTE && mode <= MODE_RELATIVE
}

// String returns the assembler prefix of the addressing mode.
func (mode Mode) String() string {
	switch mode {
	case MODE_ABSOLUTE:
		return ""
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "@"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// Operand is a raw operand value and its addressing mode.
type Operand struct {
	Mode  Mode
	Value int64
}

// String returns the assembler representation of the operand.
func (arg Operand) String() string {
	return fmt.Sprintf("%v%d", arg.Mode, arg.Value)
}

// Opcode is a decoded instruction.
type Opcode struct {
	Operation Operation
	Operands  [3]Operand
}

// MakeWord encodes an operation and operand modes into an instruction word.
func MakeWord(op Operation, modes ...Mode) (word int64) {
	word = int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}
	return
}

// DecodeWord splits an instruction word into its operation and the modes of
// its operands. Mode digits beyond the operation's operand count are ignored.
func DecodeWord(word int64) (op Operation, modes [3]Mode, err error) {
	if word < 0 {
		err = ErrNegativeOpcode
		return
	}

	op = Operation(word % 100)
	if !op.Valid() {
		err = ErrInvalidOperation
		return
	}

	digits := word / 100
	for n := range op.Operands() {
		mode := Mode(digits % 10)
		if !mode.Valid() {
			err = errOperandJoin(n, ErrInvalidMode)
			return
		}
		modes[n] = mode
		digits /= 10
	}

	return
}

// Args returns the operands used by the operation.
func (code Opcode) Args() []Operand {
	return code.Operands[:code.Operation.Operands()]
}

// Word returns the instruction word that encodes the opcode.
func (code Opcode) Word() int64 {
	modes := make([]Mode, 0, 3)
	for _, arg := range code.Args() {
		modes = append(modes, arg.Mode)
	}
	return MakeWord(code.Operation, modes...)
}

// Codes returns the memory cells that encode the opcode.
func (code Opcode) Codes() (codes []int64) {
	codes = append(codes, code.Word())
	for _, arg := range code.Args() {
		codes = append(codes, arg.Value)
	}
	return
}

// String returns the assembly language representation of this instruction.
func (code Opcode) String() string {
	args := code.Args()
	if len(args) == 0 {
		return code.Operation.String()
	}

	words := make([]string, len(args))
	for n, arg := range args {
		words[n] = arg.String()
	}

	return code.Operation.String() + " " + strings.Join(words, ", ")
}
