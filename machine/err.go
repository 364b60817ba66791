package machine

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrNegativeOpcode        = errors.New(f("negative opcode"))
	ErrInvalidOperation      = errors.New(f("invalid opcode operation"))
	ErrInvalidMode           = errors.New(f("invalid addressing mode"))
	ErrNegativeAddress       = errors.New(f("negative address"))
	ErrInvalidStoreMode      = errors.New(f("invalid store addressing mode"))
	ErrDidNotRunToCompletion = errors.New(f("did not run to completion"))
	ErrMemoryLimit           = errors.New(f("memory limit exceeded"))

	// Instruction execution context
	ErrOperand1 = errors.New(f("operand 1"))
	ErrOperand2 = errors.New(f("operand 2"))
	ErrOperand3 = errors.New(f("operand 3"))

	// Program format errors
	ErrProgramEmpty  = errors.New(f("program empty"))
	ErrProgramSyntax = errors.New(f("program syntax"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrMnemonic        = errors.New(f("mnemonic invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrOperandMissing  = errors.New(f("operand missing"))
)

// errOperand is the context error for each operand position.
var errOperand = [3]error{ErrOperand1, ErrOperand2, ErrOperand3}

// ErrFault reports the location of an execution error.
type ErrFault struct {
	Pc   int64 // Program counter of the faulting instruction.
	Word int64 // Instruction word at Pc, if it could be read.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("pc %d (%d) %v", err.Pc, err.Word, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrProgramToken indicates a malformed program token.
type ErrProgramToken struct {
	Index int
	Token string
}

func (err ErrProgramToken) Error() string {
	return f("token %d '%v' is not an integer", err.Index, err.Token)
}

func (err ErrProgramToken) Is(target error) bool {
	return target == ErrProgramSyntax
}

// ErrSyntax indicates the source line of an assembler error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrLabelMissing indicates a reference to an undefined label.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrParseExpression indicates an expression that did not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("'%v' is not a valid expression", string(err))
}
