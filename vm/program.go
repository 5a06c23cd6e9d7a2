package vm

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Program is an immutable Intcode program image.
type Program []int64

// Parse reads a program image of comma and/or newline delimited
// base-10 integers. Blank tokens are ignored.
func Parse(r io.Reader) (prog Program, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lineno int
	for scanner.Scan() {
		lineno++
		for _, token := range strings.Split(scanner.Text(), ",") {
			token = strings.TrimSpace(token)
			if len(token) == 0 {
				continue
			}
			var value int64
			value, err = strconv.ParseInt(token, 10, 64)
			if err != nil {
				err = ErrSyntax{LineNo: lineno, Token: token, Err: ErrParseNumber}
				return
			}
			prog = append(prog, value)
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if len(prog) == 0 {
		err = ErrProgramEmpty
		return
	}

	return
}

// ParseString parses a program image held in a string.
func ParseString(text string) (prog Program, err error) {
	return Parse(strings.NewReader(text))
}

// Clone returns an independent copy of the program.
func (prog Program) Clone() Program {
	return slices.Clone(prog)
}

// String returns the program in its comma delimited form.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, value := range prog {
		words[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(words, ",")
}
