package insts

import "fmt"

var mnemonics = [NumOps]string{
	OpUnknown: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpSYS:     "SYS",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

// Mnemonic returns the assembly mnemonic of the operation.
func (op Op) Mnemonic() string {
	if op >= NumOps {
		return mnemonics[OpUnknown]
	}
	return mnemonics[op]
}

// String implements fmt.Stringer.
func (op Op) String() string {
	return op.Mnemonic()
}

// Operands formats the operand list of the instruction in the conventional
// CHIP-8 assembly syntax, e.g. "V0, $0A" or "I, $2F0".
func (i Instruction) Operands() string {
	switch i.Op {
	case OpCLS, OpRET:
		return ""
	case OpSYS, OpJP, OpCALL:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm, OpRND:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg,
		OpSUB, OpSHR, OpSUBN, OpSHL:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpLDI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpJPV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, %d", i.X, i.Y, i.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", i.X)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpADDI:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLDF:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLDB:
		return fmt.Sprintf("B, V%X", i.X)
	case OpLDIVx:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLDVxI:
		return fmt.Sprintf("V%X, [I]", i.X)
	default:
		return fmt.Sprintf("$%04X", i.Word)
	}
}

// String returns the instruction in assembly syntax. Unknown words are
// rendered as a data directive.
func (i Instruction) String() string {
	if i.Op == OpUnknown {
		return fmt.Sprintf("DW $%04X", i.Word)
	}

	operands := i.Operands()
	if operands == "" {
		return i.Op.Mnemonic()
	}
	return i.Op.Mnemonic() + " " + operands
}

// IsJump reports whether the instruction unconditionally transfers control
// without saving a return address.
func (i Instruction) IsJump() bool {
	return i.Op == OpJP || i.Op == OpJPV0
}

// IsSkip reports whether the instruction may skip the following instruction.
func (i Instruction) IsSkip() bool {
	switch i.Op {
	case OpSEImm, OpSNEImm, OpSEReg, OpSNEReg, OpSKP, OpSKNP:
		return true
	}
	return false
}
