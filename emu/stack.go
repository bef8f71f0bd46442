// Package emu provides functional CHIP-8 emulation.
package emu

import "github.com/pkg/errors"

// StackDepth is the number of return addresses the call stack holds.
const StackDepth = 16

// Stack is the fixed-size call stack of return addresses.
type Stack struct {
	slots [StackDepth]uint16
	sp    int
}

// Push stores a return address. A full stack is left unchanged.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= StackDepth {
		return errors.Wrapf(ErrStackOverflow, "push of 0x%03X at depth %d", addr, s.sp)
	}
	s.slots[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, errors.Wrap(ErrStackUnderflow, "pop from empty stack")
	}
	s.sp--
	return s.slots[s.sp], nil
}

// Depth returns the number of addresses on the stack.
func (s *Stack) Depth() int {
	return s.sp
}

// Peek returns the address at slot i counted from the bottom.
func (s *Stack) Peek(i int) (uint16, bool) {
	if i < 0 || i >= s.sp {
		return 0, false
	}
	return s.slots[i], true
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.slots = [StackDepth]uint16{}
	s.sp = 0
}
