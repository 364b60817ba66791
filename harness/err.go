package harness

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Harness errors
	ErrDeadlock   = errors.New(f("deadlock"))
	ErrNoOutput   = errors.New(f("no output"))
	ErrChainEmpty = errors.New(f("chain empty"))
	ErrStepLimit  = errors.New(f("step limit reached"))
)

// ErrMachine indicates which machine of a harness failed.
type ErrMachine struct {
	Index int
	Err   error
}

func (err *ErrMachine) Error() string {
	return f("machine %d %v", err.Index, err.Err)
}

func (err *ErrMachine) Unwrap() error {
	return err.Err
}

// ErrAddress indicates a packet sent to an unknown network address.
type ErrAddress int64

func (err ErrAddress) Error() string {
	return f("address %d unknown", int64(err))
}
