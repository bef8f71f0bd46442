package core_test

import (
	"context"
	"time"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/core"
	"github.com/sarchlab/c8sim/timing/pacing"
)

type fakeRenderer struct {
	frames int
	last   string
	err    error
}

func (r *fakeRenderer) Render(d *emu.Display) error {
	r.frames++
	r.last = d.String()
	return r.err
}

type fakeAudio struct {
	changes []bool
}

func (a *fakeAudio) SetTone(on bool) {
	a.changes = append(a.changes, on)
}

type fakeInput struct {
	pending []core.Event
	err     error
}

func (in *fakeInput) Poll() ([]core.Event, error) {
	events := in.pending
	in.pending = nil
	return events, in.err
}

var _ = Describe("Core", func() {
	var (
		e        *emu.Emulator
		config   *pacing.Config
		renderer *fakeRenderer
		audio    *fakeAudio
		input    *fakeInput
		c        *core.Core
	)

	// JP $200
	spin := []byte{0x12, 0x00}

	BeforeEach(func() {
		e = emu.NewEmulator(emu.WithSeed(1))
		config = pacing.DefaultConfig()
		config.InstructionsPerSecond = 600
		renderer = &fakeRenderer{}
		audio = &fakeAudio{}
		input = &fakeInput{}

		var err error
		c, err = core.NewCore(e, config,
			core.WithRenderer(renderer),
			core.WithAudio(audio),
			core.WithInput(input))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should reject an invalid config", func() {
		config.TimerHz = 0
		_, err := core.NewCore(e, config)
		Expect(err).To(HaveOccurred())
	})

	It("should run the instruction rate and tick timers at 60 Hz", func() {
		Expect(e.LoadROM(spin)).To(Succeed())
		e.Timers().Delay = 200

		Expect(c.Advance(100 * time.Millisecond)).To(Succeed())

		Expect(c.Stats().Instructions).To(Equal(uint64(60)))
		Expect(c.Stats().TimerTicks).To(Equal(uint64(6)))
		Expect(e.Timers().Delay).To(Equal(uint8(194)))
	})

	It("should carry fractional budgets between calls", func() {
		Expect(e.LoadROM(spin)).To(Succeed())

		for i := 0; i < 4; i++ {
			Expect(c.Advance(5 * time.Millisecond)).To(Succeed())
		}

		// 600/s over 20ms and 60 Hz over 20ms
		Expect(c.Stats().Instructions).To(BeNumerically("~", 12, 1))
		Expect(c.Stats().TimerTicks).To(BeNumerically("~", 1, 1))
	})

	It("should cap catch-up after a long stall", func() {
		Expect(e.LoadROM(spin)).To(Succeed())

		Expect(c.Advance(10 * time.Second)).To(Succeed())

		Expect(c.Stats().Instructions).To(Equal(uint64(150)))
		Expect(c.Stats().TimerTicks).To(Equal(uint64(15)))
	})

	It("should present only changed frames", func() {
		Expect(e.LoadROM(spin)).To(Succeed())

		Expect(c.Advance(10 * time.Millisecond)).To(Succeed())
		Expect(renderer.frames).To(Equal(1))

		Expect(c.Advance(10 * time.Millisecond)).To(Succeed())
		Expect(renderer.frames).To(Equal(1))
	})

	It("should render drawn sprites", func() {
		// LD F, V0; DRW V0, V0, 5; JP $204
		Expect(e.LoadROM([]byte{0xF0, 0x29, 0xD0, 0x05, 0x12, 0x04})).To(Succeed())

		Expect(c.Advance(100 * time.Millisecond)).To(Succeed())

		Expect(renderer.last).To(HavePrefix("####."))
		Expect(c.Stats().Frames).To(Equal(uint64(1)))
	})

	It("should gate the tone on the sound timer", func() {
		// LD V0, $02; LD ST, V0; JP $204
		Expect(e.LoadROM([]byte{0x60, 0x02, 0xF0, 0x18, 0x12, 0x04})).To(Succeed())

		Expect(c.Advance(10 * time.Millisecond)).To(Succeed())
		Expect(audio.changes).To(Equal([]bool{true}))

		Expect(c.Advance(50 * time.Millisecond)).To(Succeed())
		Expect(audio.changes).To(Equal([]bool{true, false}))
	})

	It("should forward key events to the keypad", func() {
		// LD V3, K; JP $202
		Expect(e.LoadROM([]byte{0xF3, 0x0A, 0x12, 0x02})).To(Succeed())

		Expect(c.Advance(20 * time.Millisecond)).To(Succeed())
		Expect(e.WaitingForKey()).To(BeTrue())

		input.pending = []core.Event{{Kind: core.EventKeyDown, Key: 0xC}}
		Expect(c.Advance(20 * time.Millisecond)).To(Succeed())
		Expect(e.RegFile().V[3]).To(Equal(uint8(0xC)))

		input.pending = []core.Event{{Kind: core.EventKeyUp, Key: 0xC}}
		Expect(c.Advance(time.Millisecond)).To(Succeed())
		Expect(e.Keypad().Pressed(0xC)).To(BeFalse())
	})

	It("should adjust the speed within bounds", func() {
		input.pending = []core.Event{
			{Kind: core.EventFaster},
			{Kind: core.EventFaster},
			{Kind: core.EventSlower},
		}

		Expect(c.Advance(0)).To(Succeed())

		Expect(c.Config().InstructionsPerSecond).To(Equal(uint64(700)))
		Expect(c.Stats().SpeedChanges).To(Equal(uint64(3)))
		Expect(config.InstructionsPerSecond).To(Equal(uint64(600)))
	})

	It("should reload the program on reset", func() {
		var err error
		c, err = core.NewCore(e, config, core.WithInput(input), core.WithProgram(spin))
		Expect(err).NotTo(HaveOccurred())
		Expect(e.LoadROM(spin)).To(Succeed())
		e.RegFile().V[1] = 9

		input.pending = []core.Event{{Kind: core.EventReset}}
		Expect(c.Advance(0)).To(Succeed())

		Expect(e.RegFile().V[1]).To(BeZero())
		Expect(e.Memory().Read16(emu.ProgramStart)).To(Equal(uint16(0x1200)))
	})

	It("should stop on a quit event", func() {
		Expect(e.LoadROM(spin)).To(Succeed())
		input.pending = []core.Event{{Kind: core.EventQuit}}

		Expect(c.Advance(100 * time.Millisecond)).To(Succeed())

		Expect(c.Quit()).To(BeTrue())
		Expect(c.Stats().Instructions).To(BeZero())
	})

	It("should surface renderer and input failures", func() {
		renderer.err = errors.New("broken pipe")
		Expect(c.Advance(0)).To(MatchError(ContainSubstring("broken pipe")))

		input.err = errors.New("closed")
		Expect(c.Advance(0)).To(MatchError(ContainSubstring("closed")))
	})

	Describe("Run", func() {
		It("should return when the context is cancelled", func() {
			Expect(e.LoadROM(spin)).To(Succeed())
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			Expect(c.Run(ctx)).To(Succeed())
			Expect(c.Stats().Instructions).To(BeNumerically(">", 0))
		})

		It("should return after a quit event", func() {
			input.pending = []core.Event{{Kind: core.EventQuit}}

			done := make(chan error, 1)
			go func() { done <- c.Run(context.Background()) }()

			Eventually(done, time.Second).Should(Receive(BeNil()))
		})
	})
})
