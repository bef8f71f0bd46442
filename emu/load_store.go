// Package emu provides functional CHIP-8 emulation.
package emu

// LoadStoreUnit implements the CHIP-8 multi-byte memory operations addressed
// by the index register. An access that leaves memory abandons the operation
// at that byte; bytes already transferred stay transferred.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// StoreBCD writes the hundreds, tens and units digits of Vx to
// mem[I], mem[I+1] and mem[I+2].
func (lsu *LoadStoreUnit) StoreBCD(x uint8) error {
	value := lsu.regFile.ReadReg(x)
	digits := [3]uint8{value / 100, (value / 10) % 10, value % 10}
	base := int(lsu.regFile.I)

	for i, d := range digits {
		if err := lsu.memory.Write8(base+i, d); err != nil {
			return err
		}
	}
	return nil
}

// StoreRegisters writes V0..Vx to mem[I..I+x]. I is left unchanged.
func (lsu *LoadStoreUnit) StoreRegisters(x uint8) error {
	base := int(lsu.regFile.I)

	for i := 0; i <= int(x&0xF); i++ {
		if err := lsu.memory.Write8(base+i, lsu.regFile.V[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadRegisters reads mem[I..I+x] into V0..Vx. I is left unchanged.
func (lsu *LoadStoreUnit) LoadRegisters(x uint8) error {
	base := int(lsu.regFile.I)

	for i := 0; i <= int(x&0xF); i++ {
		value, err := lsu.memory.Read8(base + i)
		if err != nil {
			return err
		}
		lsu.regFile.V[i] = value
	}
	return nil
}

// LoadSprite fetches n sprite rows starting at I. When the rows run past the
// end of memory it returns the rows that are in bounds together with the
// bounds error.
func (lsu *LoadStoreUnit) LoadSprite(n uint8) ([]byte, error) {
	base := int(lsu.regFile.I)
	rows := make([]byte, 0, n)

	for i := 0; i < int(n); i++ {
		line, err := lsu.memory.Read8(base + i)
		if err != nil {
			return rows, err
		}
		rows = append(rows, line)
	}
	return rows, nil
}
