package loader_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
)

var _ = Describe("ROM Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "rom-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		It("should read the whole image", func() {
			path := filepath.Join(tempDir, "test.ch8")
			Expect(os.WriteFile(path, []byte{0x00, 0xE0, 0x12, 0x00}, 0o644)).To(Succeed())

			prog, err := loader.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Name).To(Equal("test.ch8"))
			Expect(prog.Data).To(Equal([]byte{0x00, 0xE0, 0x12, 0x00}))
			Expect(prog.End()).To(Equal(uint16(0x204)))
		})

		It("should accept an image filling the program area", func() {
			path := filepath.Join(tempDir, "full.ch8")
			Expect(os.WriteFile(path, make([]byte, emu.MaxProgramSize), 0o644)).To(Succeed())

			prog, err := loader.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Size()).To(Equal(emu.MaxProgramSize))
		})

		It("should reject an oversized image", func() {
			path := filepath.Join(tempDir, "big.ch8")
			Expect(os.WriteFile(path, make([]byte, emu.MaxProgramSize+1), 0o644)).To(Succeed())

			_, err := loader.Load(path)

			Expect(errors.Is(err, emu.ErrRomTooLarge)).To(BeTrue())
		})

		It("should fail on a missing file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.ch8"))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})

		It("should round trip through Save", func() {
			prog, err := loader.Builtin("demo")
			Expect(err).NotTo(HaveOccurred())

			path := filepath.Join(tempDir, "demo.ch8")
			Expect(prog.Save(path)).To(Succeed())

			loaded, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Data).To(Equal(prog.Data))
		})
	})

	Describe("LoadReader", func() {
		It("should report a short read", func() {
			_, err := loader.LoadReader(bytes.NewReader([]byte{0x12}), 4)
			Expect(errors.Is(err, emu.ErrRomReadIncomplete)).To(BeTrue())
		})

		It("should load an empty image", func() {
			prog, err := loader.LoadReader(bytes.NewReader(nil), 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Size()).To(BeZero())
		})
	})

	Describe("Builtin", func() {
		It("should provide the demo program", func() {
			prog, err := loader.Builtin(loader.DefaultBuiltin)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Data).To(Equal([]byte{
				0x00, 0xE0, 0x61, 0x02, 0x62, 0x03, 0x81, 0x24, 0x12, 0x00,
			}))
		})

		It("should list builtins in order", func() {
			Expect(loader.BuiltinNames()).To(Equal([]string{"beep", "demo"}))
		})

		It("should reject unknown names", func() {
			_, err := loader.Builtin("nope")
			Expect(errors.Is(err, loader.ErrUnknownBuiltin)).To(BeTrue())
		})

		It("should return independent copies", func() {
			a, _ := loader.Builtin("demo")
			a.Data[0] = 0xFF

			b, _ := loader.Builtin("demo")
			Expect(b.Data[0]).To(Equal(byte(0x00)))
		})

		It("should run the demo to V1 = 5", func() {
			prog, _ := loader.Builtin("demo")
			e := emu.NewEmulator(emu.WithSeed(1))
			Expect(e.LoadROM(prog.Data)).To(Succeed())

			e.RunSteps(4)

			Expect(e.RegFile().V[1]).To(Equal(uint8(5)))
			Expect(e.RegFile().PC).To(Equal(uint16(0x208)))
		})

		It("should make the beep program sound", func() {
			prog, _ := loader.Builtin("beep")
			e := emu.NewEmulator(emu.WithSeed(1))
			Expect(e.LoadROM(prog.Data)).To(Succeed())

			e.RunSteps(6)

			Expect(e.SoundActive()).To(BeTrue())
			Expect(e.Stats().Anomalies()).To(BeZero())
		})
	})
})
