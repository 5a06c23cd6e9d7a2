package vm

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrNegativeAddress      = errors.New(f("negative address"))
	ErrUnrecognizedMode     = errors.New(f("unrecognized mode"))
	ErrImmediateWriteTarget = errors.New(f("immediate write target"))
	ErrUnknownOpcode        = errors.New(f("unknown opcode"))
	ErrMemoryLimit          = errors.New(f("memory limit exceeded"))

	// Program image errors
	ErrParseNumber  = errors.New(f("not a number"))
	ErrProgramEmpty = errors.New(f("program empty"))
	ErrDecompress   = errors.New(f("corrupt compressed image"))
)

// ErrAddress reports the offending address of an ErrNegativeAddress.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %d", int64(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrNegativeAddress
}

// ErrLimit reports the offending address of an ErrMemoryLimit.
type ErrLimit int64

func (el ErrLimit) Error() string {
	return f("address %d", int64(el))
}

func (el ErrLimit) Unwrap() error {
	return ErrMemoryLimit
}

// ErrMode reports the offending digit of an ErrUnrecognizedMode.
type ErrMode int64

func (em ErrMode) Error() string {
	return f("mode %d", int64(em))
}

func (em ErrMode) Unwrap() error {
	return ErrUnrecognizedMode
}

// ErrInstruction locates a failed instruction.
type ErrInstruction struct {
	Ip   int64
	Word int64
}

func (err *ErrInstruction) Error() string {
	return f("ip %d instruction %d", err.Ip, err.Word)
}

func (err *ErrInstruction) Is(target error) (ok bool) {
	_, ok = target.(*ErrInstruction)
	return
}

// ErrSyntax locates a malformed token in a program image.
type ErrSyntax struct {
	LineNo int
	Token  string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Token, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
