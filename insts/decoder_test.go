package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	It("should have a Decoder type", func() {
		Expect(decoder).ToNot(BeNil())
	})

	Describe("operand extraction", func() {
		// DRW VA, VB, 5 -> 0xDAB5
		It("should extract x, y and n", func() {
			inst := decoder.Decode(0xDAB5)

			Expect(inst.Op).To(Equal(insts.OpDRW))
			Expect(inst.Format).To(Equal(insts.FormatSprite))
			Expect(inst.X).To(Equal(uint8(0xA)))
			Expect(inst.Y).To(Equal(uint8(0xB)))
			Expect(inst.N).To(Equal(uint8(5)))
			Expect(inst.Word).To(Equal(uint16(0xDAB5)))
		})

		// LD V3, $7F -> 0x637F
		It("should extract the low byte", func() {
			inst := decoder.Decode(0x637F)

			Expect(inst.Op).To(Equal(insts.OpLDImm))
			Expect(inst.X).To(Equal(uint8(3)))
			Expect(inst.NN).To(Equal(uint8(0x7F)))
		})

		// CALL $ABC -> 0x2ABC
		It("should extract the 12-bit address", func() {
			inst := decoder.Decode(0x2ABC)

			Expect(inst.Op).To(Equal(insts.OpCALL))
			Expect(inst.Format).To(Equal(insts.FormatAddr))
			Expect(inst.NNN).To(Equal(uint16(0xABC)))
		})
	})

	DescribeTable("operation classification",
		func(word uint16, op insts.Op) {
			Expect(decoder.Decode(word).Op).To(Equal(op))
		},
		Entry("CLS", uint16(0x00E0), insts.OpCLS),
		Entry("RET", uint16(0x00EE), insts.OpRET),
		Entry("SYS", uint16(0x0123), insts.OpSYS),
		Entry("JP", uint16(0x1200), insts.OpJP),
		Entry("CALL", uint16(0x2300), insts.OpCALL),
		Entry("SE Vx, byte", uint16(0x3A12), insts.OpSEImm),
		Entry("SNE Vx, byte", uint16(0x4A12), insts.OpSNEImm),
		Entry("SE Vx, Vy", uint16(0x5AB0), insts.OpSEReg),
		Entry("LD Vx, byte", uint16(0x6A12), insts.OpLDImm),
		Entry("ADD Vx, byte", uint16(0x7A12), insts.OpADDImm),
		Entry("LD Vx, Vy", uint16(0x8AB0), insts.OpLDReg),
		Entry("OR", uint16(0x8AB1), insts.OpOR),
		Entry("AND", uint16(0x8AB2), insts.OpAND),
		Entry("XOR", uint16(0x8AB3), insts.OpXOR),
		Entry("ADD Vx, Vy", uint16(0x8AB4), insts.OpADDReg),
		Entry("SUB", uint16(0x8AB5), insts.OpSUB),
		Entry("SHR", uint16(0x8AB6), insts.OpSHR),
		Entry("SUBN", uint16(0x8AB7), insts.OpSUBN),
		Entry("SHL", uint16(0x8ABE), insts.OpSHL),
		Entry("SNE Vx, Vy", uint16(0x9AB0), insts.OpSNEReg),
		Entry("LD I", uint16(0xA2F0), insts.OpLDI),
		Entry("JP V0", uint16(0xB300), insts.OpJPV0),
		Entry("RND", uint16(0xC0FF), insts.OpRND),
		Entry("DRW", uint16(0xD015), insts.OpDRW),
		Entry("SKP", uint16(0xE19E), insts.OpSKP),
		Entry("SKNP", uint16(0xE1A1), insts.OpSKNP),
		Entry("LD Vx, DT", uint16(0xF107), insts.OpLDVxDT),
		Entry("LD Vx, K", uint16(0xF10A), insts.OpLDVxK),
		Entry("LD DT, Vx", uint16(0xF115), insts.OpLDDTVx),
		Entry("LD ST, Vx", uint16(0xF118), insts.OpLDSTVx),
		Entry("ADD I, Vx", uint16(0xF11E), insts.OpADDI),
		Entry("LD F, Vx", uint16(0xF129), insts.OpLDF),
		Entry("LD B, Vx", uint16(0xF133), insts.OpLDB),
		Entry("LD [I], Vx", uint16(0xF155), insts.OpLDIVx),
		Entry("LD Vx, [I]", uint16(0xF165), insts.OpLDVxI),
	)

	DescribeTable("unrecognized words",
		func(word uint16) {
			inst := decoder.Decode(word)
			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Format).To(Equal(insts.FormatUnknown))
		},
		Entry("5xy with non-zero low nibble", uint16(0x5AB1)),
		Entry("9xy with non-zero low nibble", uint16(0x9AB7)),
		Entry("8xy8", uint16(0x8AB8)),
		Entry("8xyF", uint16(0x8ABF)),
		Entry("Ex00", uint16(0xE100)),
		Entry("FxFF", uint16(0xF1FF)),
	)

	It("should decode every word to a defined operation", func() {
		for w := 0; w <= 0xFFFF; w++ {
			inst := decoder.Decode(uint16(w))
			Expect(inst.Op).To(BeNumerically("<", insts.NumOps))
		}
	})
})
