package machine

import (
	"io"
	"strconv"
	"strings"
)

// ParseProgram parses a program of comma separated decimal integers.
//
// Surrounding white space is ignored. Every token must be an optional '-'
// followed by decimal digits; a single bad token fails the whole program.
func ParseProgram(text string) (tape []int64, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrProgramEmpty
		return
	}

	tokens := strings.Split(text, ",")
	tape = make([]int64, 0, len(tokens))
	for n, token := range tokens {
		var value int64
		value, err = parseToken(token)
		if err != nil {
			tape = nil
			err = ErrProgramToken{Index: n, Token: token}
			return
		}
		tape = append(tape, value)
	}

	return
}

// parseToken parses a single signed decimal integer.
func parseToken(token string) (value int64, err error) {
	digits := strings.TrimPrefix(token, "-")
	if len(digits) == 0 {
		err = ErrProgramSyntax
		return
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			err = ErrProgramSyntax
			return
		}
	}

	return strconv.ParseInt(token, 10, 64)
}

// ReadProgram reads and parses a program from a reader.
func ReadProgram(input io.Reader) (tape []int64, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return ParseProgram(string(data))
}

// FormatProgram formats a tape in the program text format.
func FormatProgram(tape []int64) string {
	words := make([]string, len(tape))
	for n, value := range tape {
		words[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(words, ",")
}
