// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"github.com/sarchlab/c8sim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Drew is true if the instruction changed the framebuffer and set the
	// draw flag (CLS or DRW).
	Drew bool

	// Waiting is true if the instruction is LD Vx, K and no key was pressed.
	// PC is left on the instruction so the next Step polls the keypad again.
	Waiting bool

	// Err is set if a runtime anomaly occurred. The machine keeps running;
	// the value is for telemetry only.
	Err error
}

// Stats holds execution counters.
type Stats struct {
	Instructions     uint64
	Draws            uint64
	TimerTicks       uint64
	KeyWaits         uint64
	StackOverflows   uint64
	StackUnderflows  uint64
	BoundsViolations uint64
	UnknownOpcodes   uint64
}

// Anomalies returns the total number of runtime anomalies.
func (s Stats) Anomalies() uint64 {
	return s.StackOverflows + s.StackUnderflows + s.BoundsViolations + s.UnknownOpcodes
}

// AccessObserver is notified of instruction fetches and of stores made by
// the multi-byte store instructions.
type AccessObserver interface {
	Fetched(addr uint16)
	Stored(addr uint16, n int)
}

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	stack   *Stack
	display *Display
	keypad  *Keypad
	timers  *Timers
	rng     *RNG
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	logger     *log.Logger
	trace      bool
	seedSource func() uint32
	observer   AccessObserver

	// Execution state
	waitingForKey   bool
	stats           Stats
	maxInstructions uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger anomalies and traces are written to.
func WithLogger(logger *log.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithTrace enables a debug-level log entry for every executed instruction.
func WithTrace(enabled bool) EmulatorOption {
	return func(e *Emulator) {
		e.trace = enabled
	}
}

// WithSeed makes every Reset seed the random source with seed.
func WithSeed(seed uint32) EmulatorOption {
	return func(e *Emulator) {
		e.seedSource = func() uint32 { return seed }
	}
}

// WithSeedSource sets the function Reset obtains its random seed from.
func WithSeedSource(source func() uint32) EmulatorOption {
	return func(e *Emulator) {
		e.seedSource = source
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithAccessObserver attaches an observer for fetches and stores.
func WithAccessObserver(observer AccessObserver) EmulatorOption {
	return func(e *Emulator) {
		e.observer = observer
	}
}

// NewEmulator creates a new CHIP-8 emulator in its reset state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}
	memory := NewMemory()
	stack := &Stack{}

	e := &Emulator{
		regFile:    regFile,
		memory:     memory,
		stack:      stack,
		display:    &Display{},
		keypad:     &Keypad{},
		timers:     &Timers{},
		rng:        NewRNG(0),
		decoder:    insts.NewDecoder(),
		seedSource: wallClockSeed,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = defaultLogger()
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.branchUnit = NewBranchUnit(regFile, stack)

	e.Reset()

	return e
}

func defaultLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return log.NewWithConfig(cfg)
}

func wallClockSeed() uint32 {
	return uint32(time.Now().UnixNano())
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Stack returns the emulator's call stack.
func (e *Emulator) Stack() *Stack {
	return e.stack
}

// Display returns the emulator's framebuffer.
func (e *Emulator) Display() *Display {
	return e.display
}

// Keypad returns the emulator's key matrix.
func (e *Emulator) Keypad() *Keypad {
	return e.keypad
}

// Timers returns the emulator's delay and sound timers.
func (e *Emulator) Timers() *Timers {
	return e.timers
}

// RNG returns the emulator's random source.
func (e *Emulator) RNG() *RNG {
	return e.rng
}

// Stats returns a copy of the execution counters.
func (e *Emulator) Stats() Stats {
	return e.stats
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.stats.Instructions
}

// WaitingForKey reports whether the last step suspended on LD Vx, K.
func (e *Emulator) WaitingForKey() bool {
	return e.waitingForKey
}

// SoundActive reports whether the tone should be playing.
func (e *Emulator) SoundActive() bool {
	return e.timers.SoundActive()
}

// Reset returns the machine to its power-on state and reseeds the random
// source from the configured seed source.
func (e *Emulator) Reset() {
	e.ResetWithSeed(e.seedSource())
}

// ResetWithSeed returns the machine to its power-on state and seeds the
// random source with seed.
func (e *Emulator) ResetWithSeed(seed uint32) {
	*e.regFile = RegFile{PC: ProgramStart}
	e.memory.Reset()
	e.stack.Reset()
	e.display.Reset()
	e.keypad.Reset()
	e.timers.Reset()
	e.rng.Seed(seed)

	e.waitingForKey = false
	e.stats = Stats{}
}

// LoadROM copies a program to ProgramStart. Oversized programs are rejected
// and the machine state is left as it was.
func (e *Emulator) LoadROM(program []byte) error {
	if err := e.memory.LoadProgram(program); err != nil {
		return err
	}

	e.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("start", uint16(ProgramStart)),
		log.Hex("end", uint16(ProgramStart+len(program))))

	return nil
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.stats.Instructions >= e.maxInstructions {
		return StepResult{Err: ErrInstructionLimit}
	}

	pc := e.regFile.PC
	if e.observer != nil {
		e.observer.Fetched(pc)
	}

	// 1. Fetch: Read 2 bytes at PC, big-endian
	word, err := e.memory.Read16(int(pc))
	if err != nil {
		e.stats.Instructions++
		e.regFile.Advance()
		return e.anomaly(errors.Wrap(err, "fetch"), pc, 0)
	}

	// 2. Decode
	inst := e.decoder.Decode(word)

	if e.trace {
		e.logger.Debug("exec",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("inst", inst.String()))
	}

	// 3. Execute
	result := e.execute(inst)

	e.stats.Instructions++

	if result.Err != nil {
		return e.anomaly(result.Err, pc, word)
	}

	return result
}

// RunSteps executes up to n instructions and reports whether any of them
// drew to the framebuffer. It stops early when the instruction limit is hit.
func (e *Emulator) RunSteps(n uint64) (drew bool) {
	for i := uint64(0); i < n; i++ {
		result := e.Step()
		if errors.Is(result.Err, ErrInstructionLimit) {
			break
		}
		drew = drew || result.Drew
	}
	return drew
}

// TickTimers decrements the delay and sound timers. It must be called at the
// logical rate of TimerHz regardless of how often Step is called.
func (e *Emulator) TickTimers() {
	e.stats.TimerTicks++

	if e.timers.Tick() {
		e.logger.Debug("Beep finished")
	}
}

// anomaly logs and counts a runtime anomaly and returns it as telemetry.
func (e *Emulator) anomaly(err error, pc, word uint16) StepResult {
	switch {
	case errors.Is(err, ErrStackOverflow):
		e.stats.StackOverflows++
	case errors.Is(err, ErrStackUnderflow):
		e.stats.StackUnderflows++
	case errors.Is(err, ErrMemoryBounds):
		e.stats.BoundsViolations++
	case errors.Is(err, ErrUnimplementedOpcode):
		e.stats.UnknownOpcodes++
	}

	e.logger.Warn("Runtime anomaly",
		log.Hex("pc", pc),
		log.Hex("opcode", word),
		log.Err(err))

	return StepResult{Err: err}
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(inst insts.Instruction) StepResult {
	r := e.regFile
	e.waitingForKey = false

	switch inst.Op {
	case insts.OpCLS:
		e.display.Clear()
		e.stats.Draws++
		r.Advance()
		return StepResult{Drew: true}

	case insts.OpRET:
		return StepResult{Err: e.branchUnit.RET()}

	case insts.OpSYS:
		// Machine-code routines of the original interpreters are ignored.
		r.Advance()

	case insts.OpJP:
		e.branchUnit.JP(inst.NNN)

	case insts.OpCALL:
		return StepResult{Err: e.branchUnit.CALL(inst.NNN)}

	case insts.OpSEImm:
		e.branchUnit.SkipIf(r.ReadReg(inst.X) == inst.NN)

	case insts.OpSNEImm:
		e.branchUnit.SkipIf(r.ReadReg(inst.X) != inst.NN)

	case insts.OpSEReg:
		e.branchUnit.SkipIf(r.ReadReg(inst.X) == r.ReadReg(inst.Y))

	case insts.OpSNEReg:
		e.branchUnit.SkipIf(r.ReadReg(inst.X) != r.ReadReg(inst.Y))

	case insts.OpLDImm:
		e.alu.LDImm(inst.X, inst.NN)
		r.Advance()

	case insts.OpADDImm:
		e.alu.ADDImm(inst.X, inst.NN)
		r.Advance()

	case insts.OpLDReg:
		e.alu.LD(inst.X, inst.Y)
		r.Advance()

	case insts.OpOR:
		e.alu.OR(inst.X, inst.Y)
		r.Advance()

	case insts.OpAND:
		e.alu.AND(inst.X, inst.Y)
		r.Advance()

	case insts.OpXOR:
		e.alu.XOR(inst.X, inst.Y)
		r.Advance()

	case insts.OpADDReg:
		e.alu.ADD(inst.X, inst.Y)
		r.Advance()

	case insts.OpSUB:
		e.alu.SUB(inst.X, inst.Y)
		r.Advance()

	case insts.OpSHR:
		e.alu.SHR(inst.X)
		r.Advance()

	case insts.OpSUBN:
		e.alu.SUBN(inst.X, inst.Y)
		r.Advance()

	case insts.OpSHL:
		e.alu.SHL(inst.X)
		r.Advance()

	case insts.OpLDI:
		r.I = inst.NNN
		r.Advance()

	case insts.OpJPV0:
		e.branchUnit.JPV0(inst.NNN)

	case insts.OpRND:
		e.alu.RND(inst.X, inst.NN, e.rng)
		r.Advance()

	case insts.OpDRW:
		return e.executeDraw(inst)

	case insts.OpSKP:
		e.branchUnit.SkipIf(e.keypad.Pressed(r.ReadReg(inst.X)))

	case insts.OpSKNP:
		e.branchUnit.SkipIf(!e.keypad.Pressed(r.ReadReg(inst.X)))

	case insts.OpLDVxDT:
		r.WriteReg(inst.X, e.timers.Delay)
		r.Advance()

	case insts.OpLDVxK:
		return e.executeWaitKey(inst)

	case insts.OpLDDTVx:
		e.timers.Delay = r.ReadReg(inst.X)
		r.Advance()

	case insts.OpLDSTVx:
		e.timers.Sound = r.ReadReg(inst.X)
		r.Advance()

	case insts.OpADDI:
		r.I += uint16(r.ReadReg(inst.X))
		r.Advance()

	case insts.OpLDF:
		r.I = FontAddress(r.ReadReg(inst.X))
		r.Advance()

	case insts.OpLDB:
		err := e.lsu.StoreBCD(inst.X)
		e.notifyStore(3)
		r.Advance()
		return StepResult{Err: err}

	case insts.OpLDIVx:
		err := e.lsu.StoreRegisters(inst.X)
		e.notifyStore(int(inst.X&0xF) + 1)
		r.Advance()
		return StepResult{Err: err}

	case insts.OpLDVxI:
		err := e.lsu.LoadRegisters(inst.X)
		r.Advance()
		return StepResult{Err: err}

	case insts.OpUnknown:
		r.Advance()
		return StepResult{
			Err: errors.Wrapf(ErrUnimplementedOpcode, "word 0x%04X", inst.Word),
		}

	default:
		r.Advance()
		return StepResult{
			Err: errors.Wrapf(ErrUnimplementedOpcode, "op %d", inst.Op),
		}
	}

	return StepResult{}
}

func (e *Emulator) notifyStore(n int) {
	if e.observer != nil {
		e.observer.Stored(e.regFile.I, n)
	}
}

// executeDraw executes DRW Vx, Vy, n. Rows that lie past the end of memory
// abandon the draw after the in-bounds rows were drawn.
func (e *Emulator) executeDraw(inst insts.Instruction) StepResult {
	r := e.regFile
	x := int(r.ReadReg(inst.X))
	y := int(r.ReadReg(inst.Y))

	sprite, err := e.lsu.LoadSprite(inst.N)
	collision := e.display.DrawSprite(x, y, sprite)
	r.SetFlag(collision)

	e.stats.Draws++
	r.Advance()

	return StepResult{Drew: true, Err: err}
}

// executeWaitKey executes LD Vx, K. Without a pressed key PC stays put and
// the step reports Waiting.
func (e *Emulator) executeWaitKey(inst insts.Instruction) StepResult {
	key, ok := e.keypad.FirstPressed()
	if !ok {
		e.waitingForKey = true
		e.stats.KeyWaits++
		return StepResult{Waiting: true}
	}

	e.regFile.WriteReg(inst.X, key)
	e.regFile.Advance()
	return StepResult{}
}
