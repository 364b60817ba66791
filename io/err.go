package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrTapeInput  = errors.New(f("tape has no input"))
	ErrTapeOutput = errors.New(f("tape has no output"))
)

// ErrTapeValue indicates a tape input word that is not an integer.
type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("'%v' is not an integer", string(err))
}
