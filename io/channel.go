// Package io provides the I/O channels an Intcode machine is driven from.
// It includes a fixed list of values (Rom), a bounded FIFO queue used to
// link machines together (Temporary), and an ASCII byte stream (Tape).
package io

import (
	"iter"
)

// Channel defines the interface for all Intcode I/O channels.
// Channels carry whole machine words in order.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields, and consumes, values from
	// the channel.
	Receive() iter.Seq[int64]
	// Send writes a single value to the channel.
	Send(value int64) error
}

// Next consumes a single value from the channel.
func Next(ch Channel) (value int64, ok bool) {
	for value = range ch.Receive() {
		ok = true
		break
	}

	return
}
