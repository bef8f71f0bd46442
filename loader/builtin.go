package loader

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownBuiltin is returned when no builtin program has the requested name.
var ErrUnknownBuiltin = errors.New("unknown builtin program")

// words encodes 16-bit instruction words big-endian.
func words(ws ...uint16) []byte {
	out := make([]byte, 0, 2*len(ws))
	for _, w := range ws {
		out = append(out, byte(w>>8), byte(w))
	}
	return out
}

// builtins are small programs that run when no ROM file is available.
var builtins = map[string][]byte{
	// Clears the screen, adds 2 and 3 into V1 and spins.
	"demo": words(
		0x00E0, // CLS
		0x6102, // LD V1, $02
		0x6203, // LD V2, $03
		0x8124, // ADD V1, V2
		0x1200, // JP $200
	),

	// Alternates tone and silence with slowly growing durations.
	"beep": words(
		0x600A, // LD V0, $0A      tone length
		0x610F, // LD V1, $0F      silence length
		0x6200, // LD V2, $00
		0x3200, // SE V2, $00      $206: main loop
		0x1210, // JP $210
		0xF018, // LD ST, V0
		0x7001, // ADD V0, $01
		0x6300, // LD V3, $00      $20E
		0xF315, // LD DT, V3
		0xF307, // LD V3, DT
		0x4300, // SNE V3, $00
		0x120E, // JP $20E
		0xF118, // LD ST, V1
		0x7101, // ADD V1, $01
		0x6300, // LD V3, $00      $21A
		0xF315, // LD DT, V3
		0xF307, // LD V3, DT
		0x4300, // SNE V3, $00
		0x121A, // JP $21A
		0x8203, // XOR V2, V0
		0x1206, // JP $206
	),
}

// DefaultBuiltin is the program used when no ROM is given.
const DefaultBuiltin = "demo"

// Builtin returns a copy of the named builtin program.
func Builtin(name string) (*Program, error) {
	data, ok := builtins[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBuiltin, "%q", name)
	}
	return FromBytes(name, data)
}

// BuiltinNames lists the builtin program names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
