package emu_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("Display", func() {
	var display *emu.Display

	BeforeEach(func() {
		display = &emu.Display{}
		display.Reset()
		display.ClearDirty()
	})

	It("should map the most significant sprite bit to the leftmost pixel", func() {
		display.DrawRow(10, 4, 0x81)

		Expect(display.Pixel(10, 4)).To(BeTrue())
		Expect(display.Pixel(11, 4)).To(BeFalse())
		Expect(display.Pixel(17, 4)).To(BeTrue())
		Expect(display.Dirty()).To(BeTrue())
	})

	It("should report collisions and erase on redraw", func() {
		sprite := []byte{0xF0, 0x90, 0xF0}

		Expect(display.DrawSprite(3, 3, sprite)).To(BeFalse())
		Expect(display.DrawSprite(3, 3, sprite)).To(BeTrue())

		for y := 0; y < emu.DisplayHeight; y++ {
			Expect(display.Row(y)).To(BeZero())
		}
	})

	It("should not report a collision for disjoint sprites", func() {
		Expect(display.DrawRow(0, 0, 0xF0)).To(BeFalse())
		Expect(display.DrawRow(0, 0, 0x0F)).To(BeFalse())
		Expect(display.Row(0)).To(Equal(uint64(0xFF) << 56))
	})

	It("should wrap pixels horizontally and vertically", func() {
		display.DrawSprite(62, 31, []byte{0xF0, 0x80})

		Expect(display.Pixel(62, 31)).To(BeTrue())
		Expect(display.Pixel(63, 31)).To(BeTrue())
		Expect(display.Pixel(0, 31)).To(BeTrue())
		Expect(display.Pixel(1, 31)).To(BeTrue())
		Expect(display.Pixel(62, 0)).To(BeTrue())
	})

	It("should clear all pixels and mark dirty", func() {
		display.DrawRow(0, 0, 0xFF)
		display.ClearDirty()

		display.Clear()

		Expect(display.Row(0)).To(BeZero())
		Expect(display.Dirty()).To(BeTrue())
	})

	It("should render as text rows", func() {
		display.DrawRow(0, 0, 0xC0)

		lines := strings.Split(strings.TrimSuffix(display.String(), "\n"), "\n")

		Expect(lines).To(HaveLen(emu.DisplayHeight))
		Expect(lines[0]).To(HavePrefix("##."))
		Expect(lines[1]).To(Equal(strings.Repeat(".", emu.DisplayWidth)))
	})
})

var _ = Describe("Keypad", func() {
	It("should report the lowest pressed key first", func() {
		keypad := &emu.Keypad{}
		keypad.Press(0xB)
		keypad.Press(0x4)

		key, ok := keypad.FirstPressed()

		Expect(ok).To(BeTrue())
		Expect(key).To(Equal(uint8(0x4)))
	})

	It("should use only the low nibble of the key index", func() {
		keypad := &emu.Keypad{}
		keypad.Press(0x13)
		Expect(keypad.Pressed(0x3)).To(BeTrue())

		keypad.Release(0x3)
		_, ok := keypad.FirstPressed()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Timers", func() {
	It("should count down to zero and stop", func() {
		timers := &emu.Timers{Delay: 2, Sound: 1}

		Expect(timers.Tick()).To(BeTrue())
		Expect(timers.Delay).To(Equal(uint8(1)))
		Expect(timers.SoundActive()).To(BeFalse())

		Expect(timers.Tick()).To(BeFalse())
		Expect(timers.Tick()).To(BeFalse())
		Expect(timers.Delay).To(BeZero())
		Expect(timers.Sound).To(BeZero())
	})
})
