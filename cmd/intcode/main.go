// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/intcode/control"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/pipeline"
	"github.com/ezrec/intcode/vm"
)

// printer writes each output value on its own line.
type printer struct{}

func (pr *printer) Rewind() {}

func (pr *printer) Receive() iter.Seq[int64] {
	return func(yield func(int64) bool) {}
}

func (pr *printer) Send(value int64) (err error) {
	_, err = fmt.Println(value)
	return
}

// values parses a comma separated list of integers.
func values(text string) (list vm.Program, err error) {
	if len(text) == 0 {
		return
	}

	return vm.ParseString(text)
}

func runPhases(ctx context.Context, prog vm.Program, phases vm.Program, serial bool, search bool, verbose bool) (err error) {
	if search {
		best, order, err := pipeline.MaxSignal(ctx, prog, phases, !serial)
		if err != nil {
			return err
		}
		fmt.Printf("%d (%v)\n", best, vm.Program(order))
		return nil
	}

	var result int64
	if serial {
		result, err = pipeline.Serial(ctx, prog, phases, 0)
	} else {
		var fb *pipeline.Feedback
		fb, err = pipeline.NewFeedback(prog, phases)
		if err != nil {
			return
		}
		fb.Verbose = verbose
		result, err = fb.Run(ctx, 0)
	}
	if err != nil {
		return
	}

	fmt.Println(result)

	return
}

func runScript(ctx context.Context, prog vm.Program, script string, group int, verbose bool) (err error) {
	ctrl, err := control.LoadScript(script, nil)
	if err != nil {
		return
	}

	m := vm.New(prog)
	m.Verbose = verbose

	drv := &control.Driver{Verbose: verbose, Group: group}
	err = drv.Drive(ctx, m, ctrl)
	if err != nil {
		return
	}

	for _, key := range ctrl.State.Keys() {
		value, _, _ := ctrl.State.Get(key)
		fmt.Printf("%v: %v\n", key, value)
	}

	return
}

func main() {
	var program string
	var inputs string
	var ascii bool
	var phases string
	var serial bool
	var search bool
	var script string
	var group int
	var verbose bool

	flag.StringVar(&program, "p", "", "Intcode program image to run, optionally gzip or zstd compressed")
	flag.StringVar(&inputs, "i", "", "Comma separated input values")
	flag.BoolVar(&ascii, "a", false, "ASCII mode, stdin and stdout as a tape")
	flag.StringVar(&phases, "phases", "", "Amplifier phases, one stage per phase")
	flag.BoolVar(&serial, "serial", false, "Run the amplifier stages once, in series, instead of as a feedback ring")
	flag.BoolVar(&search, "search", false, "Search all orderings of -phases for the best signal")
	flag.StringVar(&script, "script", "", "Starlark controller script")
	flag.IntVar(&group, "group", 0, "Outputs per controller act, 0 to act only on input")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(program) == 0 {
		log.Fatalf("%v: -p is required", os.Args[0])
	}

	prog, err := vm.Load(program)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	if verbose {
		log.Printf("intcode: %v: %d words, blake3 %x", program, len(prog), prog.Digest())
	}

	input_list, err := values(inputs)
	if err != nil {
		log.Fatalf("-i: %v", err)
	}

	phase_list, err := values(phases)
	if err != nil {
		log.Fatalf("-phases: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case len(phase_list) != 0:
		err = runPhases(ctx, prog, phase_list, serial, search, verbose)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	case len(script) != 0:
		err = runScript(ctx, prog, script, group, verbose)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	default:
		emu := emulator.NewEmulator(prog)
		emu.Verbose = verbose

		if ascii {
			emu.Input = &io.Tape{Input: os.Stdin}
			emu.Output = &io.Tape{Output: os.Stdout}
		} else {
			emu.Input = &io.Rom{Data: input_list}
			emu.Output = &printer{}
		}

		err = emu.Run(ctx)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	}
}
