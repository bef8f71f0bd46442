package emu_test

import (
	"bytes"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory()
	})

	It("should hold the font at the bottom of memory", func() {
		data, err := mem.Slice(emu.FontStart, len(emu.FontSet))
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal(emu.FontSet[:]))
	})

	It("should read 16-bit words big-endian", func() {
		Expect(mem.Write8(0x300, 0xAB)).To(Succeed())
		Expect(mem.Write8(0x301, 0xCD)).To(Succeed())

		word, err := mem.Read16(0x300)
		Expect(err).NotTo(HaveOccurred())
		Expect(word).To(Equal(uint16(0xABCD)))
	})

	It("should reject accesses past the end", func() {
		_, err := mem.Read8(emu.MemorySize)
		Expect(errors.Is(err, emu.ErrMemoryBounds)).To(BeTrue())

		Expect(errors.Is(mem.Write8(emu.MemorySize, 1), emu.ErrMemoryBounds)).To(BeTrue())

		_, err = mem.Read16(emu.MemorySize - 1)
		Expect(errors.Is(err, emu.ErrMemoryBounds)).To(BeTrue())
	})

	It("should accept the last byte", func() {
		Expect(mem.Write8(emu.MemorySize-1, 0x5A)).To(Succeed())
		Expect(mem.Read8(emu.MemorySize - 1)).To(Equal(byte(0x5A)))
	})

	Describe("LoadProgram", func() {
		It("should copy the program to the program start", func() {
			Expect(mem.LoadProgram([]byte{0x12, 0x34})).To(Succeed())
			Expect(mem.Read16(emu.ProgramStart)).To(Equal(uint16(0x1234)))
		})

		It("should accept a program filling all available memory", func() {
			program := bytes.Repeat([]byte{0xEE}, emu.MaxProgramSize)
			Expect(mem.LoadProgram(program)).To(Succeed())
			Expect(mem.Read8(emu.MemorySize - 1)).To(Equal(byte(0xEE)))
		})

		It("should reject an oversized program without touching memory", func() {
			program := bytes.Repeat([]byte{0xEE}, emu.MaxProgramSize+1)

			err := mem.LoadProgram(program)

			Expect(errors.Is(err, emu.ErrRomTooLarge)).To(BeTrue())
			Expect(mem.Read8(emu.ProgramStart)).To(Equal(byte(0)))
		})
	})

	Describe("Reset", func() {
		It("should zero memory and reinstall the font", func() {
			Expect(mem.Write8(0x000, 0x00)).To(Succeed())
			Expect(mem.Write8(0x400, 0x99)).To(Succeed())

			mem.Reset()

			Expect(mem.Read8(0x000)).To(Equal(emu.FontSet[0]))
			Expect(mem.Read8(0x400)).To(Equal(byte(0)))
		})
	})

	Describe("Dump", func() {
		It("should print 16 bytes per row with the row address", func() {
			Expect(mem.LoadProgram([]byte{0x00, 0xE0, 0x12, 0x00})).To(Succeed())

			var buf bytes.Buffer
			Expect(mem.Dump(&buf, emu.ProgramStart, 20)).To(Succeed())

			Expect(buf.String()).To(Equal(
				"0x200: 00 E0 12 00 00 00 00 00 00 00 00 00 00 00 00 00\n" +
					"0x210: 00 00 00 00\n"))
		})

		It("should refuse ranges outside memory", func() {
			var buf bytes.Buffer
			err := mem.Dump(&buf, emu.MemorySize-4, 8)
			Expect(errors.Is(err, emu.ErrMemoryBounds)).To(BeTrue())
		})
	})
})
