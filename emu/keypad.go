// Package emu provides functional CHIP-8 emulation.
package emu

// NumKeys is the number of keys on the hexadecimal keypad.
const NumKeys = 16

// Keypad holds the pressed state of keys 0x0-0xF. It is written by the input
// collaborator and only read by the emulator.
type Keypad struct {
	keys [NumKeys]bool
}

// Set records the state of key. Only the low nibble of key is used.
func (k *Keypad) Set(key uint8, pressed bool) {
	k.keys[key&0xF] = pressed
}

// Press marks key as held down.
func (k *Keypad) Press(key uint8) {
	k.Set(key, true)
}

// Release marks key as up.
func (k *Keypad) Release(key uint8) {
	k.Set(key, false)
}

// Pressed reports whether key is held down.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0xF]
}

// FirstPressed returns the lowest pressed key index.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.keys = [NumKeys]bool{}
}
