// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/machine"
)

// Emulator state. A single machine connected to a text tape.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the machine simulation.
	Program          *machine.Program // Reference to the currently running program listing.

	Tape        io.Tape // Tape IO channel.
	MemoryLimit int     // Memory limit in cells, 0 for unlimited.
	MaxSteps    int     // Instruction limit, 0 for unlimited.
	Prompt      func()  // If set, called before each line of input is read.
}

// NewEmulator creates a new emulator for a program listing.
func NewEmulator(prog *machine.Program) (emu *Emulator) {
	emu = &Emulator{
		Program: prog,
	}
	emu.Reset()

	return
}

// Reset the machine to the start of the program.
func (emu *Emulator) Reset() {
	emu.Machine = machine.NewMachine(emu.Program.Tape())
	emu.Machine.Memory.Limit = emu.MemoryLimit
}

// LineNo returns the listing line number for an address, or 0 if no
// statement generated it.
func (emu *Emulator) LineNo(pc int64) int {
	dbg := emu.Program.Debug(pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick runs the machine until it halts or needs input, writes its output
// to the tape, and then reads one line of input. Done is set once the
// machine has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	m := emu.Machine
	m.Verbose = emu.Verbose
	m.Memory.Limit = emu.MemoryLimit

	defer func() {
		if err != nil {
			pc := m.Pc
			var fault *machine.ErrFault
			if errors.As(err, &fault) {
				pc = fault.Pc
			}
			err = &ErrRuntime{LineNo: emu.LineNo(pc), Err: err}
		}
	}()

	var status machine.Status
	if emu.MaxSteps > 0 {
		status, _, err = m.RunFor(emu.MaxSteps - m.Ticks)
	} else {
		status, err = m.Run()
	}

	send_err := emu.Tape.Send(m.Output)
	if err != nil {
		return
	}
	if send_err != nil {
		err = send_err
		return
	}

	switch status {
	case machine.STATUS_HALTED:
		done = true
		return
	case machine.STATUS_RUNNING:
		err = ErrStepLimit
		return
	}

	if emu.Prompt != nil {
		emu.Prompt()
	}

	count, err := emu.Tape.Receive(m.Input)
	if errors.Is(err, stdio.EOF) {
		err = ErrInputExhausted
	}
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Debugf("emulator: %d values received", count)
	}

	return
}

// Run ticks the emulator until the machine halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
