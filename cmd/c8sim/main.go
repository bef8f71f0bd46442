// Package main provides the entry point for c8sim.
// c8sim runs CHIP-8 programs in a terminal or headless.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/term"
	"github.com/sarchlab/c8sim/timing/core"
	"github.com/sarchlab/c8sim/timing/pacing"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type options struct {
	configPath  string
	ips         uint64
	seed        uint64
	steps       uint64
	builtin     string
	debug       bool
	quiet       bool
	trace       bool
	verbose     bool
	showVersion bool
	romPath     string
}

func parseFlags(args []string) (options, *flag.FlagSet, error) {
	var opts options

	flags := flag.NewFlagSet("c8sim", flag.ContinueOnError)
	flags.StringVar(&opts.configPath, "config", "", "Path to pacing configuration JSON file")
	flags.Uint64Var(&opts.ips, "ips", 0, "Instructions per second (overrides config)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 uses the clock)")
	flags.Uint64Var(&opts.steps, "steps", 0, "Run headless for this many instructions and print a report")
	flags.StringVar(&opts.builtin, "builtin", loader.DefaultBuiltin, "Builtin program used when no ROM is given")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.quiet, "quiet", false, "Only log errors")
	flags.BoolVar(&opts.trace, "trace", false, "Log every executed instruction (needs -debug)")
	flags.BoolVar(&opts.verbose, "v", false, "Verbose output")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	if err := flags.Parse(args); err != nil {
		return opts, flags, err
	}
	if flags.NArg() > 1 {
		return opts, flags, fmt.Errorf("expected at most one ROM path, got %d", flags.NArg())
	}
	opts.romPath = flags.Arg(0)

	return opts, flags, nil
}

// CreateLogger returns a logger at debug level with debug set, at error
// level with quiet set, and at the default level otherwise.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	opts, flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: c8sim [options] [program.ch8]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	if opts.showVersion {
		fmt.Printf("c8sim version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := CreateLogger(opts.debug, opts.quiet)
	if err := run(opts, logger); err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func run(opts options, logger *log.Logger) error {
	config, err := loadPacing(opts)
	if err != nil {
		return err
	}

	prog, err := selectProgram(logger, opts.romPath, opts.builtin)
	if err != nil {
		return err
	}

	emuOpts := []emu.EmulatorOption{
		emu.WithLogger(logger),
		emu.WithTrace(opts.trace),
	}
	if opts.seed != 0 {
		emuOpts = append(emuOpts, emu.WithSeed(uint32(opts.seed)))
	}
	if opts.steps > 0 {
		emuOpts = append(emuOpts, emu.WithMaxInstructions(opts.steps))
	}

	emulator := emu.NewEmulator(emuOpts...)
	if err := emulator.LoadROM(prog.Data); err != nil {
		return err
	}

	if opts.verbose {
		fmt.Printf("Loaded: %s (%d bytes)\n", prog.Name, prog.Size())
		fmt.Printf("Program area: 0x%03X-0x%03X\n", emu.ProgramStart, prog.End())
		fmt.Printf("Rate: %d instructions/s\n", config.InstructionsPerSecond)
	}

	if opts.steps > 0 {
		return runHeadless(os.Stdout, emulator, config, logger, opts.steps, prog)
	}
	return runInteractive(emulator, config, logger, prog)
}

func loadPacing(opts options) (*pacing.Config, error) {
	config := pacing.DefaultConfig()
	if opts.configPath != "" {
		var err error
		config, err = pacing.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}
	if opts.ips != 0 {
		config.InstructionsPerSecond = opts.ips
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// selectProgram loads romPath, falling back to the named builtin program
// when no path is given or the ROM cannot be loaded.
func selectProgram(logger *log.Logger, romPath, builtin string) (*loader.Program, error) {
	if romPath != "" {
		prog, err := loader.Load(romPath)
		if err == nil {
			logger.Info("ROM loaded",
				log.String("file", romPath),
				log.Int("size", prog.Size()))
			return prog, nil
		}
		logger.Error("Loading ROM failed, using builtin program",
			log.String("file", romPath),
			log.String("builtin", builtin),
			log.Err(err))
	}
	return loader.Builtin(builtin)
}

// runHeadless advances the machine in simulated real time until the
// instruction limit is reached, then prints the machine state.
func runHeadless(w io.Writer, e *emu.Emulator, config *pacing.Config, logger *log.Logger,
	steps uint64, prog *loader.Program) error {

	c, err := core.NewCore(e, config, core.WithLogger(logger))
	if err != nil {
		return err
	}

	period := config.FramePeriod()
	for e.InstructionCount() < steps {
		if err := c.Advance(period); err != nil {
			return err
		}
	}

	return printReport(w, e, prog)
}

func runInteractive(e *emu.Emulator, config *pacing.Config, logger *log.Logger,
	prog *loader.Program) error {

	ctx := app.Context()

	raw, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		logger.Warn("Keyboard input unavailable", log.Err(err))
	} else {
		defer func() { _ = raw.Restore() }()
	}

	renderer := term.NewRenderer(os.Stdout)
	defer func() { _ = renderer.Close() }()

	coreOpts := []core.Option{
		core.WithLogger(logger),
		core.WithRenderer(renderer),
		core.WithAudio(term.NewBell(os.Stdout)),
		core.WithProgram(prog.Data),
	}
	if raw != nil {
		input := term.NewInput()
		input.Start(os.Stdin)
		coreOpts = append(coreOpts, core.WithInput(input))
	}

	c, err := core.NewCore(e, config, coreOpts...)
	if err != nil {
		return err
	}

	if err := c.Run(ctx); err != nil {
		return err
	}

	stats := e.Stats()
	logger.Info("Stopped",
		log.Int("instructions", int(stats.Instructions)),
		log.Int("frames", int(c.Stats().Frames)),
		log.Int("anomalies", int(stats.Anomalies())))
	return nil
}
