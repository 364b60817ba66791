package machine

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/io"
)

// Status is the outcome of a machine step or run.
type Status int

const (
	STATUS_RUNNING = Status(0) // running
	STATUS_BLOCKED = Status(1) // blocked on input
	STATUS_HALTED  = Status(2) // halted
)

// String returns the name of the status.
func (status Status) String() string {
	switch status {
	case STATUS_RUNNING:
		return "running"
	case STATUS_BLOCKED:
		return "blocked on input"
	case STATUS_HALTED:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", int(status))
}

// Machine is the execution context of a single Intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory // Program and data memory.
	Pc     int64  // Program counter.
	Bp     int64  // Base pointer for relative addressing.

	Input  *io.Queue // Input queue, possibly shared.
	Output *io.Queue // Output queue, possibly shared.

	Ticks int // Completed instruction counter.
}

// NewMachine creates a machine running a copy of tape, with new empty
// input and output queues.
func NewMachine(tape []int64) (m *Machine) {
	return NewMachineIO(tape, nil, nil)
}

// NewMachineIO creates a machine running a copy of tape, connected to the
// given queues. A nil queue is replaced by a new empty queue.
func NewMachineIO(tape []int64, input, output *io.Queue) (m *Machine) {
	if input == nil {
		input = io.NewQueue()
	}
	if output == nil {
		output = io.NewQueue()
	}

	m = &Machine{
		Input:  input,
		Output: output,
	}
	m.Memory.Load(tape)

	return
}

// Reset reloads the machine with a copy of tape and clears its registers.
// The queues are left untouched.
func (m *Machine) Reset(tape []int64) {
	m.Memory.Load(tape)
	m.Pc = 0
	m.Bp = 0
	m.Ticks = 0
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	code := "----"
	if c, ok := m.peekCode(); ok {
		code = c.String()
	}

	var in, out int
	if m.Input != nil {
		in = m.Input.Len()
	}
	if m.Output != nil {
		out = m.Output.Len()
	}

	text += fmt.Sprintf("% 5s: %d\n", "pc", m.Pc)
	text += fmt.Sprintf("% 5s: %d\n", "bp", m.Bp)
	text += fmt.Sprintf("% 5s: %d\n", "mem", m.Memory.Len())
	text += fmt.Sprintf("% 5s: %d\n", "in", in)
	text += fmt.Sprintf("% 5s: %d\n", "out", out)
	text += fmt.Sprintf("% 5s: %v\n", "code", code)

	return
}

// peekCode decodes the instruction at Pc without modifying the machine.
func (m *Machine) peekCode() (code Opcode, ok bool) {
	cell := func(addr int64) (value int64, ok bool) {
		if addr < 0 || addr >= int64(m.Memory.Len()) {
			return
		}
		return m.Memory.Data[addr], true
	}

	word, ok := cell(m.Pc)
	if !ok {
		return
	}

	op, modes, err := DecodeWord(word)
	if err != nil {
		ok = false
		return
	}

	code.Operation = op
	for n := range op.Operands() {
		var value int64
		value, ok = cell(m.Pc + 1 + int64(n))
		if !ok {
			return
		}
		code.Operands[n] = Operand{Mode: modes[n], Value: value}
	}

	return
}

// errOperandJoin attaches the operand position to an error.
func errOperandJoin(n int, err error) error {
	return errors.Join(errOperand[n], err)
}

// fetch reads the cell at Pc, and advances Pc.
func (m *Machine) fetch() (value int64, err error) {
	value, err = m.Memory.Read(m.Pc)
	if err != nil {
		return
	}

	m.Pc++
	return
}

// FetchCode decodes the instruction at Pc, advancing Pc past the
// instruction word and its operands.
func (m *Machine) FetchCode() (code Opcode, err error) {
	word, err := m.fetch()
	if err != nil {
		return
	}

	op, modes, err := DecodeWord(word)
	if err != nil {
		return
	}

	code.Operation = op
	for n := range op.Operands() {
		var value int64
		value, err = m.fetch()
		if err != nil {
			err = errOperandJoin(n, err)
			return
		}
		code.Operands[n] = Operand{Mode: modes[n], Value: value}
	}

	return
}

// Tick executes a single instruction.
//
// If the instruction cannot complete, either because it is an Input with
// nothing queued or because it is a Halt, Pc and memory are restored to
// their state before the tick, so the same instruction is seen again by
// the next tick.
func (m *Machine) Tick() (status Status, err error) {
	if m.Input == nil {
		m.Input = io.NewQueue()
	}
	if m.Output == nil {
		m.Output = io.NewQueue()
	}

	start := m.Pc
	size := m.Memory.Len()

	defer func() {
		if err != nil {
			fault := &ErrFault{Pc: start, Err: err}
			if start >= 0 && start < int64(m.Memory.Len()) {
				fault.Word = m.Memory.Data[start]
			}
			err = fault
		}
	}()

	code, err := m.FetchCode()
	if err != nil {
		return
	}

	if m.Verbose {
		log.Debugf("%04d: %v", start, code)
	}

	status, err = m.Execute(code)
	if err != nil {
		return
	}

	if status != STATUS_RUNNING {
		m.Pc = start
		m.Memory.truncate(size)
		if m.Verbose {
			log.Debugf("%04d: %v", start, status)
		}
		return
	}

	m.Ticks++

	return
}

// Execute executes a single decoded instruction. Pc must already be
// advanced past the instruction.
func (m *Machine) Execute(code Opcode) (status Status, err error) {
	args := code.Operands

	switch code.Operation {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUALS:
		var a, b int64
		a, err = m.load(0, args[0])
		if err != nil {
			return
		}
		b, err = m.load(1, args[1])
		if err != nil {
			return
		}
		var value int64
		switch code.Operation {
		case OP_ADD:
			value = a + b
		case OP_MULTIPLY:
			value = a * b
		case OP_LESS_THAN:
			value = boolValue(a < b)
		case OP_EQUALS:
			value = boolValue(a == b)
		}
		err = m.store(2, args[2], value)
	case OP_INPUT:
		value, ok := m.Input.Pop()
		if !ok {
			status = STATUS_BLOCKED
			return
		}
		err = m.store(0, args[0], value)
	case OP_OUTPUT:
		var value int64
		value, err = m.load(0, args[0])
		if err != nil {
			return
		}
		m.Output.Push(value)
	case OP_JUMP_TRUE, OP_JUMP_FALSE:
		var cond, dest int64
		cond, err = m.load(0, args[0])
		if err != nil {
			return
		}
		dest, err = m.load(1, args[1])
		if err != nil {
			return
		}
		if (cond != 0) != (code.Operation == OP_JUMP_TRUE) {
			// Not taken.
			return
		}
		_, err = m.Memory.Verify(dest)
		if err != nil {
			err = errOperandJoin(1, err)
			return
		}
		m.Pc = dest
	case OP_ADJUST_BP:
		var delta int64
		delta, err = m.load(0, args[0])
		if err != nil {
			return
		}
		bp := m.Bp + delta
		_, err = m.Memory.Verify(bp)
		if err != nil {
			err = errOperandJoin(0, err)
			return
		}
		m.Bp = bp
	case OP_HALT:
		status = STATUS_HALTED
	default:
		err = ErrInvalidOperation
	}

	return
}

// load resolves the value of operand n.
func (m *Machine) load(n int, arg Operand) (value int64, err error) {
	switch arg.Mode {
	case MODE_IMMEDIATE:
		value = arg.Value
		return
	case MODE_ABSOLUTE:
		value, err = m.Memory.Read(arg.Value)
	case MODE_RELATIVE:
		value, err = m.Memory.Read(m.Bp + arg.Value)
	default:
		err = ErrInvalidMode
	}

	if err != nil {
		err = errOperandJoin(n, err)
	}

	return
}

// target resolves the address written by operand n.
func (m *Machine) target(n int, arg Operand) (addr int64, err error) {
	switch arg.Mode {
	case MODE_ABSOLUTE:
		addr = arg.Value
	case MODE_RELATIVE:
		addr = m.Bp + arg.Value
	case MODE_IMMEDIATE:
		err = ErrInvalidStoreMode
	default:
		err = ErrInvalidMode
	}

	if err == nil {
		_, err = m.Memory.Verify(addr)
	}

	if err != nil {
		err = errOperandJoin(n, err)
	}

	return
}

// store writes value to the address of operand n.
func (m *Machine) store(n int, arg Operand, value int64) (err error) {
	addr, err := m.target(n, arg)
	if err != nil {
		return
	}

	return m.Memory.Write(addr, value)
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Run executes instructions until the machine blocks on input or halts.
func (m *Machine) Run() (status Status, err error) {
	for {
		status, err = m.Tick()
		if err != nil || status != STATUS_RUNNING {
			return
		}
	}
}

// RunFor executes at most limit instructions, returning the status and the
// number of instructions completed. STATUS_RUNNING is returned when the
// limit is reached first.
func (m *Machine) RunFor(limit int) (status Status, count int, err error) {
	for count < limit {
		status, err = m.Tick()
		if err != nil || status != STATUS_RUNNING {
			return
		}
		count++
	}

	return
}

// RunToCompletion executes the machine until it halts. A machine that
// blocks on input fails with ErrDidNotRunToCompletion.
func (m *Machine) RunToCompletion() (err error) {
	status, err := m.Run()
	if err != nil {
		return
	}

	if status != STATUS_HALTED {
		err = ErrDidNotRunToCompletion
	}

	return
}
