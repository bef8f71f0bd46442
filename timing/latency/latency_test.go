package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/timing/latency"
)

var _ = Describe("Latency", func() {
	var (
		table   *latency.Table
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		table = latency.NewTable()
		decoder = insts.NewDecoder()
	})

	DescribeTable("instruction costs",
		func(word uint16, cycles uint64) {
			Expect(table.GetLatency(decoder.Decode(word))).To(Equal(cycles))
		},
		Entry("LD Vx, nn", uint16(0x6A12), uint64(1)),
		Entry("ADD Vx, Vy", uint16(0x8124), uint64(1)),
		Entry("JP", uint16(0x1234), uint64(1)),
		Entry("SE Vx, nn", uint16(0x3012), uint64(1)),
		Entry("CALL", uint16(0x2300), uint64(2)),
		Entry("RET", uint16(0x00EE), uint64(2)),
		Entry("CLS", uint16(0x00E0), uint64(24)),
		Entry("DRW with 5 rows", uint16(0xD125), uint64(14)),
		Entry("DRW with 0 rows", uint16(0xD120), uint64(4)),
		Entry("LD B, Vx", uint16(0xF133), uint64(6)),
		Entry("LD [I], V3", uint16(0xF355), uint64(8)),
		Entry("LD VF, [I]", uint16(0xFF65), uint64(32)),
		Entry("SKP", uint16(0xE09E), uint64(1)),
		Entry("unknown", uint16(0xFFFF), uint64(1)),
	)

	Describe("classification", func() {
		It("should classify memory operations", func() {
			Expect(table.IsMemoryOp(decoder.Decode(0xF055))).To(BeTrue())
			Expect(table.IsMemoryOp(decoder.Decode(0xD011))).To(BeTrue())
			Expect(table.IsMemoryOp(decoder.Decode(0x6000))).To(BeFalse())
		})

		It("should classify branches and skips", func() {
			Expect(table.IsBranchOp(decoder.Decode(0xB200))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.Decode(0x9120))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.Decode(0xA200))).To(BeFalse())
		})
	})

	Describe("TimingConfig", func() {
		It("should validate the defaults", func() {
			Expect(latency.DefaultTimingConfig().Validate()).To(Succeed())
		})

		It("should reject zero latencies", func() {
			config := latency.DefaultTimingConfig()
			config.ClearLatency = 0
			Expect(config.Validate()).To(MatchError(ContainSubstring("clear_latency")))
		})

		It("should clone independently", func() {
			config := latency.DefaultTimingConfig()
			clone := config.Clone()
			clone.ALULatency = 9
			Expect(config.ALULatency).To(Equal(uint64(1)))
		})

		It("should save and load a config", func() {
			tempDir, err := os.MkdirTemp("", "latency-config")
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = os.RemoveAll(tempDir) }()

			config := latency.DefaultTimingConfig()
			config.DrawRowLatency = 7
			path := filepath.Join(tempDir, "timing.json")
			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(config))
		})

		It("should keep defaults for missing fields", func() {
			tempDir, err := os.MkdirTemp("", "latency-config")
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = os.RemoveAll(tempDir) }()

			path := filepath.Join(tempDir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"clear_latency": 40}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ClearLatency).To(Equal(uint64(40)))
			Expect(loaded.ALULatency).To(Equal(uint64(1)))
		})

		It("should fail on a missing file", func() {
			_, err := latency.LoadConfig("/nonexistent/timing.json")
			Expect(err).To(HaveOccurred())
		})
	})
})
