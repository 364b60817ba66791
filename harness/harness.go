// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package harness connects machines through shared queues and schedules
// them.
//
// Machines never block a thread: a machine that needs more input returns
// STATUS_BLOCKED. A Harness steps each of its machines in turn, so any
// number of machines can be interleaved on a single goroutine. Chain and
// Network build the common topologies on top of it.
package harness

import (
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/machine"
)

// Harness is a round-robin scheduler for a set of machines.
type Harness struct {
	Verbose  bool // If set, enables verbose logging.
	MaxSteps int  // Instruction limit of each machine, or 0 for unlimited.

	Machines []*machine.Machine // Scheduled machines, in round-robin order.
	Status   []machine.Status   // Last status of each machine.
}

// Add appends a machine to the harness, and returns its index.
func (h *Harness) Add(m *machine.Machine) (index int) {
	index = len(h.Machines)
	h.Machines = append(h.Machines, m)
	h.Status = append(h.Status, machine.STATUS_RUNNING)

	return
}

// Halted returns true if every machine has halted.
func (h *Harness) Halted() bool {
	for _, status := range h.Status {
		if status != machine.STATUS_HALTED {
			return false
		}
	}

	return true
}

// Step runs a single machine until it blocks or halts, and returns the
// number of instructions it completed. Halted machines are not run again.
// A machine that reaches MaxSteps fails with ErrStepLimit.
func (h *Harness) Step(index int) (ticks int, err error) {
	if h.Status[index] == machine.STATUS_HALTED {
		return
	}

	m := h.Machines[index]
	m.Verbose = h.Verbose

	before := m.Ticks
	var status machine.Status
	if h.MaxSteps > 0 {
		status, _, err = m.RunFor(h.MaxSteps - m.Ticks)
		if err == nil && status == machine.STATUS_RUNNING {
			err = ErrStepLimit
		}
	} else {
		status, err = m.Run()
	}
	ticks = m.Ticks - before
	if err != nil {
		err = &ErrMachine{Index: index, Err: err}
		return
	}

	if h.Verbose && status != h.Status[index] {
		log.Debugf("harness: machine %d %v", index, status)
	}

	h.Status[index] = status

	return
}

// Round steps every machine once, in order. Progress is true if any
// machine completed an instruction.
func (h *Harness) Round() (progress bool, err error) {
	for index := range h.Machines {
		var ticks int
		ticks, err = h.Step(index)
		if err != nil {
			return
		}
		if ticks > 0 {
			progress = true
		}
	}

	return
}

// Run executes rounds until every machine has halted. If a round completes
// without any machine making progress, the machines are waiting on each
// other and ErrDeadlock is returned.
func (h *Harness) Run() (err error) {
	for !h.Halted() {
		var progress bool
		progress, err = h.Round()
		if err != nil {
			return
		}
		if !progress && !h.Halted() {
			err = ErrDeadlock
			return
		}
	}

	return
}
