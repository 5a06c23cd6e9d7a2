// Package control drives an Intcode machine from a sense-decide-act loop.
//
// The machine runs until it needs input. Its outputs so far are handed to
// the Controller's Act, the Controller then senses the world and decides
// on the next input, and the machine resumes. The loop ends when the
// machine halts or the Controller asks to stop.
package control

import (
	"context"
	"errors"
	"log"

	"github.com/ezrec/intcode/translate"
	"github.com/ezrec/intcode/vm"
)

var f = translate.From

var (
	// ErrStop may be returned by a Controller to end the loop early.
	ErrStop = errors.New(f("stop"))
)

// Controller is the world model attached to a machine.
type Controller interface {
	// Sense returns the next input for the machine.
	Sense() (input int64, err error)
	// Act applies a batch of machine outputs to the world.
	Act(outputs []int64) (err error)
}

// Driver runs a machine under a Controller.
type Driver struct {
	Verbose bool // If set, enables verbose logging.

	// Group is the number of outputs handed to each Act. If zero, Act
	// receives every output produced between two inputs.
	Group int
}

// Drive runs the machine under ctrl until it halts, ctrl returns ErrStop,
// or the context is done.
func (drv *Driver) Drive(ctx context.Context, m *vm.Machine, ctrl Controller) (err error) {
	err = drv.drive(ctx, m, ctrl)
	if errors.Is(err, ErrStop) {
		if drv.Verbose {
			log.Printf("control: stopped at ip %d", m.Ip)
		}
		err = nil
	}

	return
}

func (drv *Driver) drive(ctx context.Context, m *vm.Machine, ctrl Controller) (err error) {
	var batch []int64
	flush := func() (err error) {
		if len(batch) == 0 {
			return
		}
		err = ctrl.Act(batch)
		batch = nil
		return
	}

	var input int64
	var pending bool
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var out vm.Output
		if pending {
			out, err = m.Step(input)
		} else {
			out, err = m.Resume()
		}
		if err != nil {
			return
		}

		if out.Consumed {
			pending = false
		}

		switch out.Kind {
		case vm.OUTPUT_PRODUCED:
			batch = append(batch, out.Value)
			if drv.Group > 0 && len(batch) == drv.Group {
				err = flush()
				if err != nil {
					return
				}
			}
		case vm.OUTPUT_SUSPENDED:
			err = flush()
			if err != nil {
				return
			}
			input, err = ctrl.Sense()
			if err != nil {
				return
			}
			if drv.Verbose {
				log.Printf("control: input %d", input)
			}
			pending = true
		case vm.OUTPUT_HALTED:
			err = flush()
			if drv.Verbose {
				log.Printf("control: halted after %d ticks", m.Ticks)
			}
			return
		}
	}
}

// Drive runs the machine under ctrl, handing Act every output produced
// between two inputs.
func Drive(ctx context.Context, m *vm.Machine, ctrl Controller) error {
	drv := &Driver{}
	return drv.Drive(ctx, m, ctrl)
}
