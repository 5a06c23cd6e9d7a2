// Package vm implements the Intcode virtual machine.
//
// A Machine holds a growable tape of signed 64-bit integers, an instruction
// pointer, and a relative base register. Instructions carry a two digit
// opcode and one addressing mode digit per parameter (position, immediate
// or relative).
//
// Execution is cooperative: Step runs until the program produces a value,
// asks for more input than the single value supplied, or halts, and then
// returns to the caller with the machine ready to be resumed. Drivers use
// this to run a machine as a batch job, as one stage of a feedback ring,
// or as the brain of a reactive controller.
package vm
