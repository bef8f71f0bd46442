// Package emu provides functional CHIP-8 emulation.
package emu

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome framebuffer. Each row is packed into a
// uint64 with the leftmost pixel in the most significant bit. Pixels change
// only through XOR sprite draws and Clear.
type Display struct {
	rows  [DisplayHeight]uint64
	dirty bool
}

// Reset clears every pixel and marks the display dirty so the first frame is
// always painted.
func (d *Display) Reset() {
	d.rows = [DisplayHeight]uint64{}
	d.dirty = true
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.rows = [DisplayHeight]uint64{}
	d.dirty = true
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	x = wrap(x, DisplayWidth)
	y = wrap(y, DisplayHeight)
	return d.rows[y]&(1<<(DisplayWidth-1-x)) != 0
}

// Row returns the packed pixels of row y.
func (d *Display) Row(y int) uint64 {
	return d.rows[wrap(y, DisplayHeight)]
}

// Rows returns a copy of the framebuffer.
func (d *Display) Rows() [DisplayHeight]uint64 {
	return d.rows
}

// DrawRow XORs the eight bits of line into row y starting at column x,
// wrapping horizontally. It reports whether any lit pixel was turned off.
func (d *Display) DrawRow(x, y int, line byte) bool {
	y = wrap(y, DisplayHeight)
	collision := false

	for bit := 0; bit < 8; bit++ {
		if line&(0x80>>bit) == 0 {
			continue
		}
		mask := uint64(1) << (DisplayWidth - 1 - wrap(x+bit, DisplayWidth))
		if d.rows[y]&mask != 0 {
			collision = true
		}
		d.rows[y] ^= mask
	}

	d.dirty = true
	return collision
}

// DrawSprite XORs sprite rows onto the display at (x, y) with wraparound on
// both axes. It reports whether any lit pixel was turned off.
func (d *Display) DrawSprite(x, y int, sprite []byte) bool {
	collision := false
	for i, line := range sprite {
		if d.DrawRow(x, y+i, line) {
			collision = true
		}
	}
	d.dirty = true
	return collision
}

// Dirty reports whether the framebuffer changed since the last flush.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty is called by the renderer after it flushed a frame.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// String renders the framebuffer as text, '#' for lit pixels.
func (d *Display) String() string {
	buf := make([]byte, 0, (DisplayWidth+1)*DisplayHeight)
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if d.Pixel(x, y) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
