// Package pipeline chains Intcode machines output-to-input.
//
// A Feedback ring runs one machine per stage, each seeded with its own
// phase value. Stages are driven round-robin in a single goroutine: each
// runs until it needs input that has not been produced yet, and then the
// next stage gets its turn. The ring stops when the final stage halts.
package pipeline

import (
	"context"
	"errors"
	"log"

	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoStages = errors.New(f("no stages"))
	ErrNoSignal = errors.New(f("no signal"))
	ErrStalled  = errors.New(f("stalled"))
)

// ErrStage locates the failing stage of a pipeline.
type ErrStage struct {
	Stage int
	Err   error
}

func (err *ErrStage) Error() string {
	return f("stage %d %v", err.Stage, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}

// tap is a link that remembers the last value sent through it.
type tap struct {
	io.Temporary
	last    int64
	hasLast bool
}

func (tp *tap) Send(value int64) (err error) {
	err = tp.Temporary.Send(value)
	if err == nil {
		tp.last = value
		tp.hasLast = true
	}
	return
}

// Feedback is a ring of machines, the output of each stage feeding the
// input of the next, and the last stage feeding the first.
type Feedback struct {
	Verbose bool // If set, enables verbose logging.

	Stages []*emulator.Emulator

	links []*tap
}

// NewFeedback creates one stage per phase, each running a copy of program.
func NewFeedback(program []int64, phases []int64) (fb *Feedback, err error) {
	if len(phases) == 0 {
		err = ErrNoStages
		return
	}

	fb = &Feedback{}
	for range phases {
		fb.links = append(fb.links, &tap{})
	}

	for n, phase := range phases {
		emu := emulator.NewEmulator(program)
		emu.Input = fb.links[n]
		emu.Output = fb.links[(n+1)%len(phases)]
		err = fb.links[n].Send(phase)
		if err != nil {
			return
		}
		fb.Stages = append(fb.Stages, emu)
	}

	return
}

// Run injects signal into the first stage and drives the ring until the
// final stage halts. It returns the last value the final stage produced.
func (fb *Feedback) Run(ctx context.Context, signal int64) (result int64, err error) {
	err = fb.links[0].Send(signal)
	if err != nil {
		return
	}

	last := len(fb.Stages) - 1
	final := fb.links[(last+1)%len(fb.links)]

	// Only values produced by the final stage count.
	final.hasLast = false

	for !fb.Stages[last].Halted() {
		var progress bool
		for n, emu := range fb.Stages {
			var ticked bool
			ticked, err = fb.drive(ctx, emu)
			if err != nil {
				err = &ErrStage{Stage: n, Err: err}
				return
			}
			progress = progress || ticked
		}

		if !progress {
			err = ErrStalled
			return
		}
	}

	if !final.hasLast {
		err = ErrNoSignal
		return
	}

	result = final.last

	if fb.Verbose {
		log.Printf("pipeline: signal %d", result)
	}

	return
}

// drive runs one stage until it halts or waits for input.
func (fb *Feedback) drive(ctx context.Context, emu *emulator.Emulator) (progress bool, err error) {
	emu.Verbose = fb.Verbose

	for !emu.Halted() {
		err = ctx.Err()
		if err != nil {
			return
		}

		_, err = emu.Tick()
		if errors.Is(err, emulator.ErrInputExhausted) {
			err = nil
			return
		}
		if err != nil {
			return
		}
		progress = true
	}

	return
}

// Serial runs one machine per phase in order, without feedback, each
// receiving its phase and then the previous stage's last output.
func Serial(ctx context.Context, program []int64, phases []int64, signal int64) (result int64, err error) {
	if len(phases) == 0 {
		err = ErrNoStages
		return
	}

	result = signal
	for n, phase := range phases {
		var outputs []int64
		outputs, err = emulator.Outputs(ctx, program, phase, result)
		if err == nil && len(outputs) == 0 {
			err = ErrNoSignal
		}
		if err != nil {
			err = &ErrStage{Stage: n, Err: err}
			return
		}
		result = outputs[len(outputs)-1]
	}

	return
}

// MaxSignal tries every ordering of phases, and returns the highest
// signal with the ordering that produced it.
func MaxSignal(ctx context.Context, program []int64, phases []int64, feedback bool) (best int64, order []int64, err error) {
	if len(phases) == 0 {
		err = ErrNoStages
		return
	}

	for perm := range internal.Permutations(phases) {
		var signal int64
		if feedback {
			var fb *Feedback
			fb, err = NewFeedback(program, perm)
			if err != nil {
				return
			}
			signal, err = fb.Run(ctx, 0)
		} else {
			signal, err = Serial(ctx, program, perm, 0)
		}
		if err != nil {
			return
		}

		if order == nil || signal > best {
			best = signal
			order = perm
		}
	}

	return
}
