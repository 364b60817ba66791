package io

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1, -2 3\n\n42\n")}
	q := NewQueue()

	count, err := tape.Receive(q)
	assert.NoError(err)
	assert.Equal(3, count)

	count, err = tape.Receive(q)
	assert.NoError(err)
	assert.Equal(0, count)

	count, err = tape.Receive(q)
	assert.NoError(err)
	assert.Equal(1, count)

	_, err = tape.Receive(q)
	assert.Equal(io.EOF, err)

	assert.Equal([]int64{1, -2, 3, 42}, q.Drain())
}

func TestTape_Receive_Ascii(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("Hi\n"), Ascii: true}
	q := NewQueue()

	count, err := tape.Receive(q)
	assert.NoError(err)
	assert.Equal(3, count)
	assert.Equal([]int64{'H', 'i', '\n'}, q.Drain())
}

func TestTape_Receive_Invalid(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1,x,3\n")}
	q := NewQueue()

	_, err := tape.Receive(q)
	assert.Equal(ErrTapeValue("x"), err)
	assert.True(q.Empty())
}

func TestTape_Receive_NoInput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	_, err := tape.Receive(NewQueue())
	assert.Equal(ErrTapeInput, err)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out}

	q := NewQueue(1, -2, 300)
	assert.NoError(tape.Send(q))
	assert.Equal("1\n-2\n300\n", out.String())
	assert.True(q.Empty())
}

func TestTape_Send_Ascii(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out, Ascii: true}

	q := NewQueue('o', 'k', '\n', 19349)
	assert.NoError(tape.Send(q))
	assert.Equal("ok\n19349\n", out.String())
}

func TestTape_Send_NoOutput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	assert.Equal(ErrTapeOutput, tape.Send(NewQueue(1)))
}
