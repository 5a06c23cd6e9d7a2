// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"
	"fmt"
	"log"
)

// Status is the run state of a machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_RUNNING = Status(0) // running
	STATUS_HALTED  = Status(1) // halted
)

// OutputKind is the reason a Step returned to its caller.
type OutputKind int

//go:generate go tool stringer -linecomment -type=OutputKind
const (
	OUTPUT_PRODUCED  = OutputKind(0) // produced
	OUTPUT_SUSPENDED = OutputKind(1) // suspended
	OUTPUT_HALTED    = OutputKind(2) // halted
)

// Output is the result of a Step.
type Output struct {
	Kind     OutputKind // Why the machine returned control.
	Value    int64      // Produced value, if Kind is OUTPUT_PRODUCED.
	Consumed bool       // Set if the input of this Step was written to memory.
}

// String returns the output as "produced(42)", "suspended" or "halted".
func (out Output) String() string {
	if out.Kind == OUTPUT_PRODUCED {
		return fmt.Sprintf("%v(%d)", out.Kind, out.Value)
	}

	return out.Kind.String()
}

// Machine is the resumable state of an Intcode program.
type Machine struct {
	Verbose bool // Set to enable instruction tracing.

	Memory       Memory // Program tape.
	Ip           int64  // Current instruction pointer.
	RelativeBase int64  // Base of MODE_RELATIVE addresses.
	Status       Status // Run state.

	Ticks int // Instructions executed since reset.

	image Program
}

// New creates a machine running a copy of program.
func New(program []int64) (m *Machine) {
	m = &Machine{
		image: Program(program).Clone(),
	}

	m.Reset()

	return
}

// Reset the machine to the freshly loaded program image.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.Memory = NewMemory(m.image, HEADROOM)
	m.Ip = 0
	m.RelativeBase = 0
	m.Status = STATUS_RUNNING
	m.Ticks = 0
}

// Clone returns an independent copy of the machine and its memory.
func (m *Machine) Clone() (clone *Machine) {
	clone = &Machine{}
	*clone = *m
	clone.Memory = m.Memory.Clone()

	return
}

// Halted returns true once the machine has executed OP_HALT.
func (m *Machine) Halted() bool {
	return m.Status == STATUS_HALTED
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{"ip", "base", "status", "len", "ticks", "inst"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%06d", m.Ip)
		case "base":
			strval = fmt.Sprintf("%06d", m.RelativeBase)
		case "status":
			strval = m.Status.String()
		case "len":
			strval = fmt.Sprintf("%d", m.Memory.Len())
		case "ticks":
			strval = fmt.Sprintf("%d", m.Ticks)
		case "inst":
			inst, err := m.Fetch()
			if err != nil {
				strval = "------"
			} else {
				strval = inst.String()
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Value resolves an operand parameter to its value.
func (m *Machine) Value(param int64, mode Mode) (value int64, err error) {
	switch mode {
	case MODE_POSITION:
		value, err = m.Memory.Read(param)
	case MODE_IMMEDIATE:
		value = param
	case MODE_RELATIVE:
		value, err = m.Memory.Read(param + m.RelativeBase)
	default:
		err = ErrMode(mode)
	}

	return
}

// Address resolves a destination parameter to a writable address.
func (m *Machine) Address(param int64, mode Mode) (address int64, err error) {
	if !mode.Writable() {
		if mode == MODE_IMMEDIATE {
			err = ErrImmediateWriteTarget
		} else {
			err = ErrMode(mode)
		}
		return
	}

	address = param
	if mode == MODE_RELATIVE {
		address += m.RelativeBase
	}

	if address < 0 {
		err = ErrAddress(address)
	}

	return
}

// Fetch decodes the instruction at the instruction pointer.
func (m *Machine) Fetch() (inst Instruction, err error) {
	word, err := m.Memory.Read(m.Ip)
	if err != nil {
		err = errors.Join(&ErrInstruction{Ip: m.Ip}, err)
		return
	}

	inst, err = Decode(word)
	if err != nil {
		err = errors.Join(&ErrInstruction{Ip: m.Ip, Word: word}, err)
		return
	}

	return
}

// Execute executes a single decoded instruction, and returns the
// value of an OP_OUT. OP_IN stores input.
func (m *Machine) Execute(inst Instruction, input int64) (output int64, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(&ErrInstruction{Ip: m.Ip, Word: inst.Word}, err)
		}
	}()

	if m.Verbose {
		log.Printf("vm: %06d: %v", m.Ip, inst)
	}

	params := make([]int64, inst.Opcode.Params())
	for n := range params {
		params[n], err = m.Memory.Read(m.Ip + 1 + int64(n))
		if err != nil {
			return
		}
	}

	next_ip := m.Ip + 1 + int64(len(params))

	switch inst.Opcode {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b, dst int64
		a, err = m.Value(params[0], inst.Mode(0))
		if err != nil {
			return
		}
		b, err = m.Value(params[1], inst.Mode(1))
		if err != nil {
			return
		}
		dst, err = m.Address(params[2], inst.Mode(2))
		if err != nil {
			return
		}
		err = m.Memory.Write(doAlu(inst.Opcode, a, b), dst)
		if err != nil {
			return
		}
	case OP_IN:
		var dst int64
		dst, err = m.Address(params[0], inst.Mode(0))
		if err != nil {
			return
		}
		err = m.Memory.Write(input, dst)
		if err != nil {
			return
		}
	case OP_OUT:
		output, err = m.Value(params[0], inst.Mode(0))
		if err != nil {
			return
		}
	case OP_JT, OP_JF:
		var cond, target int64
		cond, err = m.Value(params[0], inst.Mode(0))
		if err != nil {
			return
		}
		target, err = m.Value(params[1], inst.Mode(1))
		if err != nil {
			return
		}
		if (cond != 0) == (inst.Opcode == OP_JT) {
			if target < 0 {
				err = ErrAddress(target)
				return
			}
			next_ip = target
		}
	case OP_ARB:
		var offset int64
		offset, err = m.Value(params[0], inst.Mode(0))
		if err != nil {
			return
		}
		m.RelativeBase += offset
	case OP_HALT:
		m.Status = STATUS_HALTED
		// The instruction pointer stays on the halt.
		next_ip = m.Ip
	default:
		err = ErrUnknownOpcode
		return
	}

	m.Ip = next_ip
	m.Ticks++

	return
}

// doAlu computes the result of the three operand opcodes.
func doAlu(op Opcode, a int64, b int64) (result int64) {
	switch op {
	case OP_ADD:
		result = a + b
	case OP_MUL:
		result = a * b
	case OP_LT:
		if a < b {
			result = 1
		}
	case OP_EQ:
		if a == b {
			result = 1
		}
	}

	return
}

// Step runs the machine until it produces an output, needs a second
// input, or halts. The input is consumed by the first OP_IN reached.
func (m *Machine) Step(input int64) (out Output, err error) {
	return m.run(&input)
}

// Resume runs the machine like Step, but with no input available: the
// first OP_IN reached suspends the machine.
func (m *Machine) Resume() (out Output, err error) {
	return m.run(nil)
}

func (m *Machine) run(input *int64) (out Output, err error) {
	if m.Status == STATUS_HALTED {
		out.Kind = OUTPUT_HALTED
		return
	}

	for {
		var inst Instruction
		inst, err = m.Fetch()
		if err != nil {
			return
		}

		var value int64
		if inst.Opcode == OP_IN {
			if input == nil {
				out.Kind = OUTPUT_SUSPENDED
				return
			}
			value = *input
			input = nil
		}

		value, err = m.Execute(inst, value)
		if err != nil {
			return
		}

		switch inst.Opcode {
		case OP_IN:
			out.Consumed = true
		case OP_OUT:
			out.Kind = OUTPUT_PRODUCED
			out.Value = value
			return
		case OP_HALT:
			out.Kind = OUTPUT_HALTED
			return
		}
	}
}
