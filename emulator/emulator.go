// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"log"

	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/vm"
)

const (
	OUTPUTS_CAPACITY = 1 << 16 // Most values collected by Outputs.
)

// Emulator state. Machine + IO channels.
type Emulator struct {
	Verbose     bool // If set, enables verbose logging.
	*vm.Machine      // Reference to the machine simulation.

	Input  io.Channel // Source of OP_IN values.
	Output io.Channel // Sink of OP_OUT values.
}

// NewEmulator creates a new emulator for a program, reading from
// an empty Rom and writing to a Temporary that holds at most
// io.TEMP_DEFAULT_CAPACITY values.
func NewEmulator(program []int64) (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.New(program),
		Input:   &io.Rom{},
		Output:  &io.Temporary{},
	}

	return
}

// Reset the machine and its channels.
func (emu *Emulator) Reset() {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()

	emu.Input.Rewind()
	emu.Output.Rewind()
}

// Tick performs a single step of the machine, routing its input and
// output through the channels.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	ip := emu.Machine.Ip
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	out, err := emu.Machine.Resume()
	if err != nil {
		return
	}

	// Input is only read once the machine waits on an OP_IN.
	if out.Kind == vm.OUTPUT_SUSPENDED {
		value, ok := io.Next(emu.Input)
		if !ok {
			err = ErrInputExhausted
			return
		}
		if emu.Verbose {
			log.Printf("emulator: input %d", value)
		}
		out, err = emu.Machine.Step(value)
		if err != nil {
			return
		}
	}

	switch out.Kind {
	case vm.OUTPUT_PRODUCED:
		if emu.Verbose {
			log.Printf("emulator: output %d", out.Value)
		}
		err = emu.Output.Send(out.Value)
	case vm.OUTPUT_HALTED:
		if emu.Verbose {
			log.Printf("emulator: halted after %d ticks", emu.Machine.Ticks)
		}
		done = true
	}

	return
}

// Run ticks the emulator until the machine halts or the context is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// Outputs runs program to completion with the given inputs, and returns
// every value it produced.
func Outputs(ctx context.Context, program []int64, inputs ...int64) (outputs []int64, err error) {
	emu := NewEmulator(program)
	emu.Input = &io.Rom{Data: inputs}
	output := &io.Temporary{Capacity: OUTPUTS_CAPACITY}
	emu.Output = output

	err = emu.Run(ctx)
	if err != nil {
		return
	}

	outputs = output.Values()

	return
}
