// Package emu provides functional CHIP-8 emulation.
package emu

// FlagReg is the index of VF, the carry/borrow/collision flag register.
const FlagReg = 0xF

// RegFile represents the CHIP-8 register file.
// It contains 16 general-purpose 8-bit registers (V0-VF),
// the index register (I), and the program counter (PC).
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	// V[0xF] doubles as the flag register.
	V [16]uint8

	// I is the index register.
	I uint16

	// PC is the program counter.
	PC uint16
}

// ReadReg reads a register value. Only the low nibble of reg is used.
func (r *RegFile) ReadReg(reg uint8) uint8 {
	return r.V[reg&0xF]
}

// WriteReg writes a value to a register. Only the low nibble of reg is used.
func (r *RegFile) WriteReg(reg uint8, value uint8) {
	r.V[reg&0xF] = value
}

// SetFlag writes 1 or 0 to VF.
func (r *RegFile) SetFlag(set bool) {
	if set {
		r.V[FlagReg] = 1
		return
	}
	r.V[FlagReg] = 0
}

// Flag returns VF.
func (r *RegFile) Flag() uint8 {
	return r.V[FlagReg]
}

// Advance moves the program counter past the current instruction.
func (r *RegFile) Advance() {
	r.PC += 2
}
