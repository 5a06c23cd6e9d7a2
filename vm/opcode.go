package vm

import (
	"fmt"
	"strings"
)

// Opcode is the instruction selector held in the two low decimal digits
// of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD  = Opcode(1)  // add
	OP_MUL  = Opcode(2)  // mul
	OP_IN   = Opcode(3)  // in
	OP_OUT  = Opcode(4)  // out
	OP_JT   = Opcode(5)  // jt
	OP_JF   = Opcode(6)  // jf
	OP_LT   = Opcode(7)  // lt
	OP_EQ   = Opcode(8)  // eq
	OP_ARB  = Opcode(9)  // arb
	OP_HALT = Opcode(99) // halt
)

var _opcode_params = map[Opcode]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_IN:   1,
	OP_OUT:  1,
	OP_JT:   2,
	OP_JF:   2,
	OP_LT:   3,
	OP_EQ:   3,
	OP_ARB:  1,
	OP_HALT: 0,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = _opcode_params[op]
	return
}

// Params returns the number of parameters following the opcode.
func (op Opcode) Params() int {
	return _opcode_params[op]
}

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Writable returns true if the mode can address a write destination.
func (mode Mode) Writable() bool {
	return mode == MODE_POSITION || mode == MODE_RELATIVE
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word   int64  // Raw instruction word.
	Opcode Opcode // Decoded opcode.
	Modes  []Mode // Parameter modes, parameter 0 first.
}

// Decode splits an instruction word into its opcode and parameter modes.
func Decode(word int64) (inst Instruction, err error) {
	inst.Word = word

	if word < 0 {
		err = ErrUnknownOpcode
		return
	}

	inst.Opcode = Opcode(word % 100)

	for digits := word / 100; digits > 0; digits /= 10 {
		mode := Mode(digits % 10)
		switch mode {
		case MODE_POSITION, MODE_IMMEDIATE, MODE_RELATIVE:
			inst.Modes = append(inst.Modes, mode)
		default:
			err = ErrMode(mode)
			return
		}
	}

	if !inst.Opcode.Valid() {
		err = ErrUnknownOpcode
		return
	}

	return
}

// Mode returns the addressing mode of parameter n.
func (inst Instruction) Mode(n int) Mode {
	if n < len(inst.Modes) {
		return inst.Modes[n]
	}

	return MODE_POSITION
}

// String returns a trace form of the instruction, ie "add.imm.pos.pos".
func (inst Instruction) String() string {
	parts := []string{inst.Opcode.String()}
	for n := range inst.Opcode.Params() {
		parts = append(parts, inst.Mode(n).String())
	}

	return fmt.Sprintf("%v (%d)", strings.Join(parts, "."), inst.Word)
}
