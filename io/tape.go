package io

import (
	"fmt"
	"io"
	"iter"
)

// Tape connects an ASCII speaking program to byte streams.
// Each byte read from Input is one value. Values in the byte range are
// written to Output as bytes; any other value is written as a decimal
// line, which is how ASCII programs report their final answer.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive returns an iterator that yields the bytes of the input stream.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil {
			return
		}
		for {
			var one [1]byte
			n, err := tc.Input.Read(one[:])
			if n == 0 {
				if err != nil {
					return
				}
				continue
			}
			if !yield(int64(one[0])) {
				return
			}
		}
	}
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelFull
		return
	}

	if value >= 0 && value <= 0xff {
		_, err = tc.Output.Write([]byte{byte(value)})
	} else {
		_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	}

	return
}
