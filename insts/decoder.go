// Package insts provides CHIP-8 instruction definitions and decoding.
package insts

// Op represents a CHIP-8 operation.
type Op uint8

// CHIP-8 operations. The comment on each names the encoding it is decoded from.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpSYS        // 0nnn
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xnn
	OpSNEImm     // 4xnn
	OpSEReg      // 5xy0
	OpLDImm      // 6xnn
	OpADDImm     // 7xnn
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxnn
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	// NumOps is the number of defined operations, OpUnknown included.
	NumOps
)

// Format represents the operand layout of an instruction word.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatNone           // no operands (CLS, RET)
	FormatAddr           // nnn
	FormatRegImm         // x, nn
	FormatRegReg         // x, y
	FormatReg            // x
	FormatSprite         // x, y, n
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Operand layout

	Word uint16 // Raw instruction word

	X   uint8  // Register index in bits 8-11
	Y   uint8  // Register index in bits 4-7
	N   uint8  // Low nibble
	NN  uint8  // Low byte
	NNN uint16 // Low 12 bits
}

// Decoder decodes CHIP-8 machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit instruction word. All operand fields are extracted
// regardless of the operation so callers can rely on them being populated.
func (d *Decoder) Decode(word uint16) Instruction {
	inst := Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		Word:   word,
		X:      uint8(word>>8) & 0xF,
		Y:      uint8(word>>4) & 0xF,
		N:      uint8(word) & 0xF,
		NN:     uint8(word),
		NNN:    word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		d.decodeSystem(&inst)
	case 0x1:
		inst.Op, inst.Format = OpJP, FormatAddr
	case 0x2:
		inst.Op, inst.Format = OpCALL, FormatAddr
	case 0x3:
		inst.Op, inst.Format = OpSEImm, FormatRegImm
	case 0x4:
		inst.Op, inst.Format = OpSNEImm, FormatRegImm
	case 0x5:
		if inst.N == 0 {
			inst.Op, inst.Format = OpSEReg, FormatRegReg
		}
	case 0x6:
		inst.Op, inst.Format = OpLDImm, FormatRegImm
	case 0x7:
		inst.Op, inst.Format = OpADDImm, FormatRegImm
	case 0x8:
		d.decodeALU(&inst)
	case 0x9:
		if inst.N == 0 {
			inst.Op, inst.Format = OpSNEReg, FormatRegReg
		}
	case 0xA:
		inst.Op, inst.Format = OpLDI, FormatAddr
	case 0xB:
		inst.Op, inst.Format = OpJPV0, FormatAddr
	case 0xC:
		inst.Op, inst.Format = OpRND, FormatRegImm
	case 0xD:
		inst.Op, inst.Format = OpDRW, FormatSprite
	case 0xE:
		d.decodeKey(&inst)
	case 0xF:
		d.decodeMisc(&inst)
	}

	return inst
}

// decodeSystem decodes the 0nnn family.
func (d *Decoder) decodeSystem(inst *Instruction) {
	switch inst.Word {
	case 0x00E0:
		inst.Op, inst.Format = OpCLS, FormatNone
	case 0x00EE:
		inst.Op, inst.Format = OpRET, FormatNone
	default:
		inst.Op, inst.Format = OpSYS, FormatAddr
	}
}

// decodeALU decodes the 8xyN register-register family.
func (d *Decoder) decodeALU(inst *Instruction) {
	inst.Format = FormatRegReg

	switch inst.N {
	case 0x0:
		inst.Op = OpLDReg
	case 0x1:
		inst.Op = OpOR
	case 0x2:
		inst.Op = OpAND
	case 0x3:
		inst.Op = OpXOR
	case 0x4:
		inst.Op = OpADDReg
	case 0x5:
		inst.Op = OpSUB
	case 0x6:
		inst.Op = OpSHR
	case 0x7:
		inst.Op = OpSUBN
	case 0xE:
		inst.Op = OpSHL
	default:
		inst.Format = FormatUnknown
	}
}

// decodeKey decodes the ExNN keypad family.
func (d *Decoder) decodeKey(inst *Instruction) {
	switch inst.NN {
	case 0x9E:
		inst.Op, inst.Format = OpSKP, FormatReg
	case 0xA1:
		inst.Op, inst.Format = OpSKNP, FormatReg
	}
}

// decodeMisc decodes the FxNN timer, index and memory family.
func (d *Decoder) decodeMisc(inst *Instruction) {
	inst.Format = FormatReg

	switch inst.NN {
	case 0x07:
		inst.Op = OpLDVxDT
	case 0x0A:
		inst.Op = OpLDVxK
	case 0x15:
		inst.Op = OpLDDTVx
	case 0x18:
		inst.Op = OpLDSTVx
	case 0x1E:
		inst.Op = OpADDI
	case 0x29:
		inst.Op = OpLDF
	case 0x33:
		inst.Op = OpLDB
	case 0x55:
		inst.Op = OpLDIVx
	case 0x65:
		inst.Op = OpLDVxI
	default:
		inst.Format = FormatUnknown
	}
}
