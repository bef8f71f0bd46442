package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
)

var _ = Describe("Disassembly", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	DescribeTable("String",
		func(word uint16, text string) {
			Expect(decoder.Decode(word).String()).To(Equal(text))
		},
		Entry("CLS", uint16(0x00E0), "CLS"),
		Entry("RET", uint16(0x00EE), "RET"),
		Entry("JP", uint16(0x1200), "JP $200"),
		Entry("JP V0", uint16(0xB2A0), "JP V0, $2A0"),
		Entry("LD Vx, byte", uint16(0x600A), "LD V0, $0A"),
		Entry("ADD Vx, Vy", uint16(0x8014), "ADD V0, V1"),
		Entry("LD I", uint16(0xA2F0), "LD I, $2F0"),
		Entry("DRW", uint16(0xD125), "DRW V1, V2, 5"),
		Entry("SKP", uint16(0xE39E), "SKP V3"),
		Entry("LD Vx, K", uint16(0xF40A), "LD V4, K"),
		Entry("LD B, Vx", uint16(0xF533), "LD B, V5"),
		Entry("LD [I], Vx", uint16(0xFF55), "LD [I], VF"),
		Entry("unknown", uint16(0xFFFF), "DW $FFFF"),
	)

	It("should classify control flow", func() {
		Expect(decoder.Decode(0x1200).IsJump()).To(BeTrue())
		Expect(decoder.Decode(0xB200).IsJump()).To(BeTrue())
		Expect(decoder.Decode(0x2200).IsJump()).To(BeFalse())
		Expect(decoder.Decode(0x3A00).IsSkip()).To(BeTrue())
		Expect(decoder.Decode(0xE0A1).IsSkip()).To(BeTrue())
		Expect(decoder.Decode(0x6000).IsSkip()).To(BeFalse())
	})

	It("should fall back to the unknown mnemonic for out-of-range ops", func() {
		Expect(insts.Op(200).Mnemonic()).To(Equal("???"))
		Expect(insts.OpDRW.String()).To(Equal("DRW"))
	})
})
