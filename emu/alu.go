// Package emu provides functional CHIP-8 emulation.
package emu

// ALU implements CHIP-8 arithmetic and logic operations.
//
// Operations that set VF compute the flag from the operand values before
// anything is written, store the flag, and then store the result. When the
// destination is VF itself the result therefore wins over the flag.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LDImm performs Vx = nn.
func (a *ALU) LDImm(x, nn uint8) {
	a.regFile.WriteReg(x, nn)
}

// ADDImm performs Vx = Vx + nn, wrapping mod 256. VF is not touched.
func (a *ALU) ADDImm(x, nn uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)+nn)
}

// LD performs Vx = Vy.
func (a *ALU) LD(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(y))
}

// OR performs Vx = Vx | Vy.
func (a *ALU) OR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)|a.regFile.ReadReg(y))
}

// AND performs Vx = Vx & Vy.
func (a *ALU) AND(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)&a.regFile.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy.
func (a *ALU) XOR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)^a.regFile.ReadReg(y))
}

// ADD performs Vx = Vx + Vy with VF = 1 on carry out of bit 7.
func (a *ALU) ADD(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)
	sum := uint16(op1) + uint16(op2)

	a.regFile.SetFlag(sum > 0xFF)
	a.regFile.WriteReg(x, uint8(sum))
}

// SUB performs Vx = Vx - Vy with VF = 1 when no borrow occurs (Vx >= Vy).
func (a *ALU) SUB(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.SetFlag(op1 >= op2)
	a.regFile.WriteReg(x, op1-op2)
}

// SUBN performs Vx = Vy - Vx with VF = 1 when no borrow occurs (Vy >= Vx).
func (a *ALU) SUBN(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.SetFlag(op2 >= op1)
	a.regFile.WriteReg(x, op2-op1)
}

// SHR performs Vx = Vx >> 1 with VF = the bit shifted out.
func (a *ALU) SHR(x uint8) {
	op := a.regFile.ReadReg(x)

	a.regFile.SetFlag(op&0x01 != 0)
	a.regFile.WriteReg(x, op>>1)
}

// SHL performs Vx = Vx << 1 with VF = the bit shifted out.
func (a *ALU) SHL(x uint8) {
	op := a.regFile.ReadReg(x)

	a.regFile.SetFlag(op&0x80 != 0)
	a.regFile.WriteReg(x, op<<1)
}

// RND performs Vx = random & nn.
func (a *ALU) RND(x, nn uint8, rng *RNG) {
	a.regFile.WriteReg(x, rng.Byte()&nn)
}
