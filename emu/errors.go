// Package emu provides functional CHIP-8 emulation.
package emu

import "github.com/pkg/errors"

// Load-time errors. These are returned to the caller and leave the program
// region of memory untouched.
var (
	// ErrRomTooLarge is returned when a program exceeds MaxProgramSize.
	ErrRomTooLarge = errors.New("rom too large")

	// ErrRomReadIncomplete is returned when fewer bytes than expected could be
	// read from a program source.
	ErrRomReadIncomplete = errors.New("rom read incomplete")
)

// Runtime anomalies. Step absorbs these: the instruction is dropped or
// abandoned, the program counter advances, and the error is only reported
// through logging, Stats and StepResult.Err.
var (
	// ErrStackOverflow is reported when CALL finds the stack full.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is reported when RET finds the stack empty.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMemoryBounds is reported when an access falls outside memory.
	ErrMemoryBounds = errors.New("memory bounds violation")

	// ErrUnimplementedOpcode is reported for words outside the instruction set.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
)

// ErrInstructionLimit is returned by Step once the limit configured with
// WithMaxInstructions has been reached. Nothing is executed in that case.
var ErrInstructionLimit = errors.New("max instructions reached")
