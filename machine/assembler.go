// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"bufio"
	"errors"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Statement is a line of assembled code with its source location and
// generated memory cells.
type Statement struct {
	LineNo int      // Source line number.
	Line   string   // Source line, without comments.
	Addr   int64    // Address of the first generated cell.
	Words  []string // Mnemonic or directive, followed by operand text.
	Codes  []int64  // Generated memory cells.
}

// Program is an assembled program listing.
type Program struct {
	Statements []Statement
	Label      map[string]int64
}

// Debug is the statement that generated a memory cell.
type Debug struct {
	*Statement
	Index int // Index of the cell within the statement.
}

// Debug returns the statement that generated the cell at addr.
// The Statement is nil if no statement covers addr.
func (prog *Program) Debug(addr int64) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+int64(len(st.Codes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(addr - st.Addr),
			}
			break
		}
	}

	return
}

// Tape returns the program's memory image.
func (prog *Program) Tape() (tape []int64) {
	for _, st := range prog.Statements {
		tape = append(tape, st.Codes...)
	}

	return
}

// mnemonicMap maps mnemonics to operations.
var mnemonicMap = func() map[string]Operation {
	mnemonics := make(map[string]Operation, len(operationInfo))
	for op, info := range operationInfo {
		mnemonics[info.name] = op
	}
	return mnemonics
}()

// prefixMap maps operand prefixes to addressing modes.
var prefixMap = map[byte]Mode{
	'#': MODE_IMMEDIATE,
	'@': MODE_RELATIVE,
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Assembler is a two pass assembler for Intcode.
//
// Each source line has the form:
//
//	[label:]... mnemonic operand, operand, ...
//
// where ';' starts a comment. Operands are absolute addresses, unless
// prefixed by '#' for immediate values or '@' for base pointer relative
// offsets. Operand values are expressions, evaluated with Starlark, that
// may refer to labels and equates. Directives are:
//
//	.equ NAME expression   ; Define an equate.
//	.data expression, ...  ; Emit literal cells.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label  map[string]int64  // Map of labels to addresses.
	Equate map[string]string // Map of equates to their expressions.

	predefine  map[string]string
	equates    []string // Equates in order of definition.
	statements []Statement
}

// Predefine defines an equate available to every program.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// currentAddr returns the address of the next generated cell.
func (asm *Assembler) currentAddr() int64 {
	if len(asm.statements) == 0 {
		return 0
	}

	last := asm.statements[len(asm.statements)-1]

	return last.Addr + int64(len(last.Codes))
}

// splitOperands splits comma separated operand text.
func splitOperands(text string) (args []string, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	for _, arg := range strings.Split(text, ",") {
		arg = strings.TrimSpace(arg)
		if len(arg) == 0 {
			err = ErrOperandMissing
			return
		}
		args = append(args, arg)
	}

	return
}

// parseLine lays out a single source line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	for {
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasSuffix(fields[0], ":") {
			break
		}
		label := strings.TrimSuffix(fields[0], ":")
		if !identifierRe.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, is_label := asm.Label[label]
		_, is_equate := asm.Equate[label]
		if is_label || is_equate {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentAddr()
		line = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	}

	if len(line) == 0 {
		return
	}

	word, rest, _ := strings.Cut(line, " ")
	word, rest = strings.TrimSpace(word), strings.TrimSpace(rest)

	if word == ".equ" {
		name, expr, ok := strings.Cut(rest, " ")
		expr = strings.TrimSpace(expr)
		if !ok || len(expr) == 0 || !identifierRe.MatchString(name) {
			err = ErrEquateSyntax
			return
		}
		_, is_label := asm.Label[name]
		_, is_equate := asm.Equate[name]
		if is_label || is_equate {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = expr
		asm.equates = append(asm.equates, name)
		return
	}

	args, err := splitOperands(rest)
	if err != nil {
		return
	}

	var size int
	if word == ".data" {
		if len(args) == 0 {
			err = ErrOperandMissing
			return
		}
		size = len(args)
	} else {
		op, ok := mnemonicMap[word]
		if !ok {
			err = ErrMnemonic
			return
		}
		if len(args) != op.Operands() {
			err = ErrOperandCount
			return
		}
		size = 1 + len(args)
	}

	asm.statements = append(asm.statements, Statement{
		LineNo: lineno,
		Line:   line,
		Addr:   asm.currentAddr(),
		Words:  append([]string{word}, args...),
		Codes:  make([]int64, size),
	})

	return
}

// eval evaluates an operand expression.
func (asm *Assembler) eval(expr string, env starlark.StringDict) (value int64, err error) {
	value, err = strconv.ParseInt(expr, 0, 64)
	if err == nil {
		return
	}
	err = nil

	if identifierRe.MatchString(expr) {
		val, ok := env[expr]
		if !ok {
			err = ErrLabelMissing(expr)
			return
		}
		var i starlark.Int
		i, ok = val.(starlark.Int)
		if ok {
			value, ok = i.Int64()
		}
		if !ok {
			err = ErrParseExpression(expr)
		}
		return
	}

	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, env)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = rc.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// emit evaluates the operands of a statement into its memory cells.
func (asm *Assembler) emit(st *Statement, env starlark.StringDict) (err error) {
	word, args := st.Words[0], st.Words[1:]

	if word == ".data" {
		for n, arg := range args {
			st.Codes[n], err = asm.eval(arg, env)
			if err != nil {
				return
			}
		}
		return
	}

	code := Opcode{Operation: mnemonicMap[word]}
	for n, arg := range args {
		mode, ok := prefixMap[arg[0]]
		if ok {
			arg = strings.TrimSpace(arg[1:])
		}
		if mode == MODE_IMMEDIATE && n == code.Operation.Target() {
			err = errOperandJoin(n, ErrInvalidStoreMode)
			return
		}
		var value int64
		value, err = asm.eval(arg, env)
		if err != nil {
			err = errOperandJoin(n, err)
			return
		}
		code.Operands[n] = Operand{Mode: mode, Value: value}
	}

	copy(st.Codes, code.Codes())

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int64)
	asm.Equate = maps.Clone(asm.predefine)
	if asm.Equate == nil {
		asm.Equate = make(map[string]string)
	}
	asm.equates = asm.equates[:0]
	for name := range asm.predefine {
		asm.equates = append(asm.equates, name)
	}
	asm.statements = nil

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Debugf("%v: %v", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	env := starlark.StringDict{}
	for label, addr := range asm.Label {
		env[label] = starlark.MakeInt64(addr)
	}

	lineno, line = 0, ""
	for _, name := range asm.equates {
		var value int64
		value, err = asm.eval(asm.Equate[name], env)
		if err != nil {
			line = ".equ " + name + " " + asm.Equate[name]
			return
		}
		env[name] = starlark.MakeInt64(value)
	}

	for n := range asm.statements {
		st := &asm.statements[n]
		err = asm.emit(st, env)
		if err != nil {
			lineno, line = st.LineNo, st.Line
			return
		}
	}

	prog = &Program{
		Statements: asm.statements,
		Label:      maps.Clone(asm.Label),
	}

	return
}
