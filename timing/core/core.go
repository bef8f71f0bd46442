// Package core provides the real-time driving loop around an emulator.
// It converts elapsed wall time into instruction steps and 60 Hz timer
// ticks, forwards input to the keypad, and presents the framebuffer and
// tone state to external collaborators.
package core

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/pacing"
)

// Renderer presents the framebuffer.
type Renderer interface {
	Render(display *emu.Display) error
}

// Audio switches the tone on and off.
type Audio interface {
	SetTone(on bool)
}

// EventKind identifies an input event.
type EventKind uint8

const (
	// EventKeyDown presses Key.
	EventKeyDown EventKind = iota
	// EventKeyUp releases Key.
	EventKeyUp
	// EventFaster raises the instruction rate by one speed step.
	EventFaster
	// EventSlower lowers the instruction rate by one speed step.
	EventSlower
	// EventReset restarts the loaded program.
	EventReset
	// EventQuit stops the loop.
	EventQuit
)

// Event is a single input event.
type Event struct {
	Kind EventKind
	Key  uint8
}

// Input delivers pending input events.
type Input interface {
	Poll() ([]Event, error)
}

// Stats holds driving loop statistics.
type Stats struct {
	// Frames is the number of framebuffer presentations.
	Frames uint64
	// Instructions is the number of instructions stepped by the loop.
	Instructions uint64
	// TimerTicks is the number of timer ticks issued.
	TimerTicks uint64
	// SpeedChanges counts applied Faster/Slower events.
	SpeedChanges uint64
}

// Core drives an Emulator in real time.
type Core struct {
	emulator *emu.Emulator
	config   *pacing.Config
	program  []byte

	renderer Renderer
	audio    Audio
	input    Input
	logger   *log.Logger

	// Fractional instruction and tick budgets carried between wake-ups.
	instBudget  float64
	timerBudget float64

	toneOn bool
	quit   bool
	stats  Stats
}

// Option configures a Core.
type Option func(*Core)

// WithRenderer sets the framebuffer sink.
func WithRenderer(r Renderer) Option {
	return func(c *Core) { c.renderer = r }
}

// WithAudio sets the tone sink.
func WithAudio(a Audio) Option {
	return func(c *Core) { c.audio = a }
}

// WithInput sets the input source.
func WithInput(in Input) Option {
	return func(c *Core) { c.input = in }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Core) { c.logger = logger }
}

// WithProgram sets the ROM reloaded on EventReset.
func WithProgram(program []byte) Option {
	return func(c *Core) { c.program = program }
}

// NewCore creates a Core driving e with the given pacing configuration.
func NewCore(e *emu.Emulator, config *pacing.Config, opts ...Option) (*Core, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pacing config")
	}

	c := &Core{
		emulator: e,
		config:   config.Clone(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		c.logger = log.NewWithConfig(cfg)
	}

	return c, nil
}

// Emulator returns the driven emulator.
func (c *Core) Emulator() *emu.Emulator {
	return c.emulator
}

// Config returns a copy of the current pacing configuration.
func (c *Core) Config() *pacing.Config {
	return c.config.Clone()
}

// Stats returns the loop statistics.
func (c *Core) Stats() Stats {
	return c.stats
}

// Quit reports whether an EventQuit was received.
func (c *Core) Quit() bool {
	return c.quit
}

// Run advances the machine once per frame period until ctx is done or a
// quit event arrives. A cancelled context is not an error.
func (c *Core) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.config.FramePeriod())
	defer ticker.Stop()
	defer c.setTone(false)

	last := time.Now()
	if err := c.present(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now

			if err := c.Advance(elapsed); err != nil {
				return err
			}
			if c.quit {
				return nil
			}
		}
	}
}

// Advance accounts for elapsed wall time: it applies pending input, runs the
// instructions and timer ticks that became due, updates the tone and
// presents the framebuffer when it changed. Elapsed time beyond the
// configured catch-up limit is dropped.
func (c *Core) Advance(elapsed time.Duration) error {
	if err := c.pollInput(); err != nil {
		return err
	}
	if c.quit {
		return nil
	}

	if limit := c.config.MaxCatchUp(); elapsed > limit {
		c.logger.Debug("Dropping wall time",
			log.String("elapsed", elapsed.String()),
			log.String("limit", limit.String()))
		elapsed = limit
	}

	seconds := elapsed.Seconds()
	c.instBudget += seconds * float64(c.config.InstructionsPerSecond)
	c.timerBudget += seconds * float64(c.config.TimerHz)

	steps := uint64(c.instBudget)
	ticks := uint64(c.timerBudget)
	c.instBudget -= float64(steps)
	c.timerBudget -= float64(ticks)

	c.run(steps, ticks)
	c.setTone(c.emulator.SoundActive())

	return c.present()
}

// run interleaves steps instructions with ticks timer ticks so that the
// timers advance at even points of the instruction stream.
func (c *Core) run(steps, ticks uint64) {
	done := uint64(0)
	for t := uint64(1); t <= ticks; t++ {
		target := steps * t / ticks
		c.step(target - done)
		done = target
		c.emulator.TickTimers()
		c.stats.TimerTicks++
	}
	c.step(steps - done)
}

func (c *Core) step(n uint64) {
	before := c.emulator.InstructionCount()
	c.emulator.RunSteps(n)
	c.stats.Instructions += c.emulator.InstructionCount() - before
}

func (c *Core) pollInput() error {
	if c.input == nil {
		return nil
	}

	events, err := c.input.Poll()
	if err != nil {
		return errors.Wrap(err, "polling input")
	}

	for _, ev := range events {
		c.apply(ev)
	}
	return nil
}

func (c *Core) apply(ev Event) {
	keypad := c.emulator.Keypad()

	switch ev.Kind {
	case EventKeyDown:
		keypad.Press(ev.Key)
	case EventKeyUp:
		keypad.Release(ev.Key)
	case EventFaster:
		c.setSpeed(c.config.Faster())
	case EventSlower:
		c.setSpeed(c.config.Slower())
	case EventReset:
		c.reset()
	case EventQuit:
		c.quit = true
	}
}

func (c *Core) setSpeed(config *pacing.Config) {
	if config.InstructionsPerSecond == c.config.InstructionsPerSecond {
		return
	}
	c.config = config
	c.stats.SpeedChanges++
	c.logger.Info("Speed changed",
		log.Int("instructions_per_second", int(config.InstructionsPerSecond)))
}

func (c *Core) reset() {
	c.emulator.Reset()
	if c.program != nil {
		if err := c.emulator.LoadROM(c.program); err != nil {
			c.logger.Error("Reloading program failed", log.Err(err))
		}
	}
	c.instBudget = 0
	c.timerBudget = 0
	c.logger.Info("Machine reset")
}

func (c *Core) setTone(on bool) {
	if on == c.toneOn {
		return
	}
	c.toneOn = on
	if c.audio != nil {
		c.audio.SetTone(on)
	}
}

func (c *Core) present() error {
	display := c.emulator.Display()
	if !display.Dirty() {
		return nil
	}
	display.ClearDirty()
	c.stats.Frames++

	if c.renderer == nil {
		return nil
	}
	if err := c.renderer.Render(display); err != nil {
		return errors.Wrap(err, "rendering frame")
	}
	return nil
}
