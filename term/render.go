// Package term provides terminal collaborators for the driving loop: a
// block-character renderer, a bell tone and keyboard input.
package term

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/sarchlab/c8sim/emu"
)

// ANSI control sequences.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Half-block glyphs, indexed by top<<1 | bottom.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// Renderer draws the framebuffer with half-block characters, two pixel rows
// per text line.
type Renderer struct {
	w       *bufio.Writer
	started bool
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriter(w)}
}

// Render redraws the whole frame from the top-left corner.
func (r *Renderer) Render(display *emu.Display) error {
	if !r.started {
		r.started = true
		_, _ = r.w.WriteString(clearScreen + hideCursor)
	}
	_, _ = r.w.WriteString(cursorHome)

	for y := 0; y < emu.DisplayHeight; y += 2 {
		for x := 0; x < emu.DisplayWidth; x++ {
			idx := 0
			if display.Pixel(x, y) {
				idx |= 2
			}
			if display.Pixel(x, y+1) {
				idx |= 1
			}
			_, _ = r.w.WriteString(halfBlocks[idx])
		}
		_, _ = r.w.WriteString("\r\n")
	}

	if err := r.w.Flush(); err != nil {
		return errors.Wrap(err, "writing frame")
	}
	return nil
}

// Close restores the cursor.
func (r *Renderer) Close() error {
	if !r.started {
		return nil
	}
	_, _ = r.w.WriteString(showCursor)
	return r.w.Flush()
}

// Bell sounds the terminal bell each time the tone switches on. Terminals
// have no sustained tone, so switching off is silent.
type Bell struct {
	w     io.Writer
	rings uint64
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// SetTone rings the bell on a rising edge.
func (b *Bell) SetTone(on bool) {
	if !on {
		return
	}
	b.rings++
	_, _ = io.WriteString(b.w, "\a")
}

// Rings returns how often the bell rang.
func (b *Bell) Rings() uint64 {
	return b.rings
}
