// Package emu provides functional CHIP-8 emulation.
package emu

// BranchUnit implements CHIP-8 control transfer operations.
type BranchUnit struct {
	regFile *RegFile
	stack   *Stack
}

// NewBranchUnit creates a new BranchUnit connected to the given register
// file and call stack.
func NewBranchUnit(regFile *RegFile, stack *Stack) *BranchUnit {
	return &BranchUnit{regFile: regFile, stack: stack}
}

// JP jumps to addr.
func (b *BranchUnit) JP(addr uint16) {
	b.regFile.PC = addr
}

// JPV0 jumps to addr + V0.
func (b *BranchUnit) JPV0(addr uint16) {
	b.regFile.PC = addr + uint16(b.regFile.V[0])
}

// CALL pushes the address of the next instruction and jumps to addr.
// On a full stack the call is dropped and execution continues with the next
// instruction.
func (b *BranchUnit) CALL(addr uint16) error {
	if err := b.stack.Push(b.regFile.PC + 2); err != nil {
		b.regFile.Advance()
		return err
	}
	b.regFile.PC = addr
	return nil
}

// RET pops the return address into PC. On an empty stack the return is
// dropped and execution continues with the next instruction.
func (b *BranchUnit) RET() error {
	addr, err := b.stack.Pop()
	if err != nil {
		b.regFile.Advance()
		return err
	}
	b.regFile.PC = addr
	return nil
}

// SkipIf advances PC by 4 when cond holds and by 2 otherwise.
func (b *BranchUnit) SkipIf(cond bool) {
	if cond {
		b.regFile.PC += 4
		return
	}
	b.regFile.Advance()
}
