package term

import "github.com/sarchlab/c8sim/timing/core"

// DefaultKeymap maps the left block of a QWERTY keyboard onto the 4x4 hex
// keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Control keys.
const (
	keyEscape = 0x1B
	keyCtrlR  = 0x12
)

// translate maps a byte read from the terminal to a core event.
func translate(keymap map[byte]uint8, b byte) (core.Event, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	if key, ok := keymap[b]; ok {
		return core.Event{Kind: core.EventKeyDown, Key: key}, true
	}

	switch b {
	case '+', '=':
		return core.Event{Kind: core.EventFaster}, true
	case '-', '_':
		return core.Event{Kind: core.EventSlower}, true
	case keyCtrlR:
		return core.Event{Kind: core.EventReset}, true
	case keyEscape:
		return core.Event{Kind: core.EventQuit}, true
	}
	return core.Event{}, false
}
