// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Memory layout constants.
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 4096

	// ProgramStart is the address programs are loaded at and start from.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits above ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart

	// FontStart is the address of the first font glyph.
	FontStart = 0x000
)

// Memory is the flat 4 KiB byte-addressable memory of the machine.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory creates a zeroed memory with the font table installed.
func NewMemory() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the memory and writes the font table at FontStart.
func (m *Memory) Reset() {
	m.data = [MemorySize]byte{}
	copy(m.data[FontStart:], FontSet[:])
}

func checkRange(addr, n int) error {
	if addr < 0 || n < 0 || addr+n > MemorySize {
		return errors.Wrapf(ErrMemoryBounds, "access of %d bytes at 0x%X", n, addr)
	}
	return nil
}

// Read8 reads the byte at addr.
func (m *Memory) Read8(addr int) (byte, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// Write8 writes a byte at addr.
func (m *Memory) Write8(addr int, value byte) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}
	m.data[addr] = value
	return nil
}

// Read16 reads a big-endian 16-bit word at addr. This is the byte order of
// the instruction stream.
func (m *Memory) Read16(addr int) (uint16, error) {
	if err := checkRange(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

// Slice returns a copy of n bytes starting at addr.
func (m *Memory) Slice(addr, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[addr:addr+n])
	return out, nil
}

// LoadProgram copies program verbatim to ProgramStart. Programs larger than
// MaxProgramSize are rejected and memory is left unmodified.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return errors.Wrapf(ErrRomTooLarge, "%d bytes > %d bytes available",
			len(program), MaxProgramSize)
	}
	copy(m.data[ProgramStart:], program)
	return nil
}

// Dump writes a hex dump of length bytes starting at start, sixteen bytes
// per row, each row prefixed with its address.
func (m *Memory) Dump(w io.Writer, start, length int) error {
	if err := checkRange(start, length); err != nil {
		return err
	}

	for row := 0; row < length; row += 16 {
		if _, err := fmt.Fprintf(w, "0x%03X:", start+row); err != nil {
			return err
		}
		for col := 0; col < 16 && row+col < length; col++ {
			if _, err := fmt.Fprintf(w, " %02X", m.data[start+row+col]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
