package machine

import (
	"slices"
	"strconv"
)

// Disassemble builds a program listing from a memory image. Each decodable
// instruction becomes one statement; any other cell becomes a .data
// statement. Statement line numbers count from 1, and reassembling the
// listing gives back the image.
func Disassemble(tape []int64) (prog *Program) {
	prog = &Program{
		Label: map[string]int64{},
	}

	size := int64(len(tape))

	m := &Machine{}
	m.Memory.Load(tape)

	for m.Pc < size {
		addr := m.Pc
		st := Statement{
			LineNo: len(prog.Statements) + 1,
			Addr:   addr,
		}

		code, err := m.FetchCode()
		if err == nil && m.Pc <= size && canAssemble(code, tape[addr]) {
			st.Words = []string{code.Operation.String()}
			for _, arg := range code.Args() {
				st.Words = append(st.Words, arg.String())
			}
			st.Line = code.String()
		} else {
			m.Pc = addr + 1
			value := strconv.FormatInt(tape[addr], 10)
			st.Words = []string{".data", value}
			st.Line = ".data " + value
		}

		st.Codes = slices.Clone(tape[addr:m.Pc])
		prog.Statements = append(prog.Statements, st)
	}

	return
}

// canAssemble returns true if the assembler text of code encodes back to word.
func canAssemble(code Opcode, word int64) bool {
	if code.Word() != word {
		return false
	}

	target := code.Operation.Target()
	if target >= 0 && code.Operands[target].Mode == MODE_IMMEDIATE {
		return false
	}

	return true
}
