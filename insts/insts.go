// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package implements decoding of 16-bit big-endian instruction words
// into structured instruction representations. Every word maps to exactly
// one Op; words outside the instruction set decode to OpUnknown (or OpSYS for
// the legacy 0nnn machine-code calls).
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x8014) // ADD V0, V1
//	fmt.Printf("Op: %v, X: %d, Y: %d\n", inst.Op, inst.X, inst.Y)
package insts
