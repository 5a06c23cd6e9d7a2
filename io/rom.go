package io

import (
	"iter"
)

// Rom is a read-only list of values, such as phase settings or a
// scripted sequence of inputs.
type Rom struct {
	Data      []int64
	ReadIndex int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts reading from the first value.
func (rc *Rom) Rewind() {
	rc.ReadIndex = 0
}

// Receive yields the unread values in order.
func (rc *Rom) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for rc.ReadIndex < len(rc.Data) {
			value := rc.Data[rc.ReadIndex]
			rc.ReadIndex++
			if !yield(value) {
				return
			}
		}
	}
}

// Send is not possible on a Rom.
func (rc *Rom) Send(value int64) error {
	return ErrChannelFull
}
