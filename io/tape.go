package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ASCII_MAX is the largest value a Tape in Ascii mode prints as a character.
const ASCII_MAX = 127

// Tape converts between line-oriented text and machine integers.
//
// In numeric mode each input line holds integers separated by commas or
// white space, and each output value is written on its own line. In Ascii
// mode each input line is queued as its characters followed by a newline
// (10), and output values in 0..ASCII_MAX are written as characters.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	scanner *bufio.Scanner
}

// Receive reads one line of input and pushes its values onto q.
// Returns the number of values queued, or io.EOF when the input is exhausted.
func (tc *Tape) Receive(q *Queue) (count int, err error) {
	if tc.Input == nil {
		err = ErrTapeInput
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line := tc.scanner.Text()

	var values []int64
	if tc.Ascii {
		for _, ch := range line {
			values = append(values, int64(ch))
		}
		values = append(values, '\n')
	} else {
		words := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, word := range words {
			var value int64
			value, err = strconv.ParseInt(word, 10, 64)
			if err != nil {
				err = ErrTapeValue(word)
				return
			}
			values = append(values, value)
		}
	}

	q.Push(values...)
	count = len(values)

	return
}

// Send drains q and writes its values to the output.
func (tc *Tape) Send(q *Queue) (err error) {
	if tc.Output == nil {
		err = ErrTapeOutput
		return
	}

	w := bufio.NewWriter(tc.Output)
	defer func() {
		ferr := w.Flush()
		if err == nil {
			err = ferr
		}
	}()

	for _, value := range q.Drain() {
		if tc.Ascii && value >= 0 && value <= ASCII_MAX {
			err = w.WriteByte(byte(value))
		} else {
			_, err = fmt.Fprintf(w, "%d\n", value)
		}
		if err != nil {
			return
		}
	}

	return
}
