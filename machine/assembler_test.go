package machine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program []string) (prog *Program) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))
	assert.Nil(prog.Tape())
}

func TestAssemblerEcho(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; echo input plus one",
		".equ ONE 1",
		"",
		"loop: in value",
		"      add value, #ONE, value  ; increment",
		"      out value",
		"      jnz #1, #loop",
		"value: .data 0",
	}

	prog := assemble(t, program)

	expected := []int64{3, 11, 1001, 11, 1, 11, 4, 11, 1105, 1, 0, 0}
	assert.Equal(expected, prog.Tape())
	assert.Equal(int64(0), prog.Label["loop"])
	assert.Equal(int64(11), prog.Label["value"])

	dbg := prog.Debug(4)
	if assert.NotNil(dbg.Statement) {
		assert.Equal(5, dbg.LineNo)
		assert.Equal("add", dbg.Words[0])
		assert.Equal(2, dbg.Index)
	}

	dbg = prog.Debug(12)
	assert.Nil(dbg.Statement)

	m := NewMachine(prog.Tape())
	m.Input.Push(41)
	status, err := m.Run()
	assert.NoError(err)
	assert.Equal(STATUS_BLOCKED, status)
	assert.Equal([]int64{42}, m.Output.Drain())
}

func TestAssemblerExpressions(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ SIZE 2*8+1",
		".equ LAST SIZE - 1",
		"start: out #ord(\"A\")",
		"       out #0x10",
		"       arb #BASE + SIZE",
		"       out @-1",
		"       hlt",
		"data:  .data SIZE, start+1, -5, LAST",
	}

	asm := &Assembler{}
	asm.Predefine("BASE", "100")

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []int64{
		104, 65,
		104, 16,
		109, 117,
		204, -1,
		99,
		17, 1, -5, 16,
	}
	assert.Equal(expected, prog.Tape())
	assert.Equal(int64(9), prog.Label["data"])
	assert.Equal("2*8+1", asm.Equate["SIZE"])
	assert.Equal("100", asm.Equate["BASE"])
}

func TestAssemblerRelative(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"      arb #stack",
		"      in @0",
		"      mul @0, #3, @1",
		"      out @1",
		"      hlt",
		"stack:",
	}

	prog := assemble(t, program)
	assert.Equal([]int64{109, 11, 203, 0, 21202, 0, 3, 1, 204, 1, 99}, prog.Tape())
	assert.Equal(int64(11), prog.Label["stack"])

	m := NewMachine(prog.Tape())
	m.Input.Push(14)
	assert.NoError(m.RunToCompletion())
	assert.Equal([]int64{42}, m.Output.Drain())
}

func TestAssemblerDisassemble(t *testing.T) {
	assert := assert.New(t)

	tape := []int64{1002, 4, 3, 4, 21101, -2, 7, 0, 1105, 1, 0, 203, 5, 99}

	m := NewMachine(tape)
	var lines []string
	for m.Pc < int64(len(tape)) {
		code, err := m.FetchCode()
		assert.NoError(err)
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, code.String())
	}

	assert.Equal([]string{
		"mul 4, #3, 4",
		"add #-2, #7, @0",
		"jnz #1, #0",
		"in @5",
		"hlt",
	}, lines)

	prog := assemble(t, lines)
	assert.Equal(tape, prog.Tape())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		lineno  int
	}){
		{"label-dup", []string{"a: hlt", "a: hlt"}, ErrLabelDuplicate, 2},
		{"label-equ", []string{".equ a 1", "a: hlt"}, ErrLabelDuplicate, 2},
		{"label-invalid", []string{"1a: hlt"}, ErrLabelInvalid, 1},
		{"equ-dup", []string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate, 2},
		{"equ-syntax", []string{".equ A"}, ErrEquateSyntax, 1},
		{"mnemonic", []string{"hlt", "jmp 0"}, ErrMnemonic, 2},
		{"operand-count", []string{"add 1, 2"}, ErrOperandCount, 1},
		{"operand-missing", []string{"add 1, , 2"}, ErrOperandMissing, 1},
		{"data-empty", []string{".data"}, ErrOperandMissing, 1},
		{"store-immediate", []string{"hlt", "add 1, 2, #3"}, ErrInvalidStoreMode, 2},
		{"input-immediate", []string{"in #3"}, ErrInvalidStoreMode, 1},
		{"label-missing", []string{"hlt", "", "out nowhere"}, ErrLabelMissing("nowhere"), 3},
		{"expression", []string{"out 1+"}, ErrParseExpression("1+"), 1},
		{"expression-type", []string{"out \"x\" * 2"}, ErrParseExpression("\"x\" * 2"), 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.name, err)

		var syn ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}
}
