package main

import (
	"fmt"
	"io"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
)

// dumpRows is the number of 16-byte memory rows printed after the
// program start.
const dumpRows = 3

// printReport writes the register state, statistics, a memory dump of the
// program start and the framebuffer.
func printReport(w io.Writer, e *emu.Emulator, prog *loader.Program) error {
	r := e.RegFile()
	stats := e.Stats()

	_, _ = fmt.Fprintf(w, "Program: %s\n", prog.Name)
	_, _ = fmt.Fprintf(w, "Instructions executed: %d\n", stats.Instructions)
	_, _ = fmt.Fprintf(w, "PC: 0x%03X  I: 0x%03X  SP: %d\n", r.PC, r.I, e.Stack().Depth())
	_, _ = fmt.Fprintf(w, "DT: %d  ST: %d\n", e.Timers().Delay, e.Timers().Sound)

	_, _ = fmt.Fprintln(w, "Registers:")
	for i, v := range r.V {
		if v != 0 || i == emu.FlagReg {
			_, _ = fmt.Fprintf(w, "  V%X = 0x%02X (%d)\n", i, v, v)
		}
	}

	_, _ = fmt.Fprintln(w, "Statistics:")
	_, _ = fmt.Fprintf(w, "  Draws:              %d\n", stats.Draws)
	_, _ = fmt.Fprintf(w, "  Timer ticks:        %d\n", stats.TimerTicks)
	_, _ = fmt.Fprintf(w, "  Key waits:          %d\n", stats.KeyWaits)
	_, _ = fmt.Fprintf(w, "  Stack overflows:    %d\n", stats.StackOverflows)
	_, _ = fmt.Fprintf(w, "  Stack underflows:   %d\n", stats.StackUnderflows)
	_, _ = fmt.Fprintf(w, "  Bounds violations:  %d\n", stats.BoundsViolations)
	_, _ = fmt.Fprintf(w, "  Unknown opcodes:    %d\n", stats.UnknownOpcodes)

	_, _ = fmt.Fprintln(w, "Memory:")
	if err := e.Memory().Dump(w, emu.ProgramStart, dumpRows*16); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, "Display:")
	_, err := io.WriteString(w, e.Display().String())
	return err
}
