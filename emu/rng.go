// Package emu provides functional CHIP-8 emulation.
package emu

// Linear-congruential generator constants (glibc style).
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 0x7FFFFFFF
)

// RNG is the pseudo-random source consumed by the RND instruction.
type RNG struct {
	seed uint32
}

// NewRNG creates a generator with the given seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{seed: seed}
}

// Seed reseeds the generator.
func (r *RNG) Seed(seed uint32) {
	r.seed = seed
}

// State returns the current seed value.
func (r *RNG) State() uint32 {
	return r.seed
}

// Byte advances the generator and returns the low byte of the new state.
func (r *RNG) Byte() uint8 {
	r.seed = uint32((uint64(r.seed)*lcgMultiplier + lcgIncrement) % lcgModulus)
	return uint8(r.seed & 0xFF)
}
