// Package emu provides functional CHIP-8 emulation.
package emu

// TimerHz is the logical rate timers are decremented at.
const TimerHz = 60

// Timers holds the delay and sound countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer by one. It reports whether the sound
// timer reached zero on this tick.
func (t *Timers) Tick() (soundExpired bool) {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
		soundExpired = t.Sound == 0
	}
	return soundExpired
}

// SoundActive reports whether the tone should be playing.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}

// Reset zeroes both timers.
func (t *Timers) Reset() {
	t.Delay = 0
	t.Sound = 0
}
