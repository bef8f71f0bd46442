// Package main provides a profiling wrapper for c8sim to identify performance bottlenecks.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/timing/cache"
)

var (
	fetchCache  = flag.Bool("fcache", false, "Model the instruction fetch cache while running")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Uint64("max-instr", 10_000_000, "max instructions to execute")
	perTick     = flag.Uint64("per-tick", 12, "instructions between timer ticks")
	builtin     = flag.String("builtin", loader.DefaultBuiltin, "builtin program used when no ROM is given")
)

func main() {
	flag.Parse()

	if *instruction == 0 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] [program.ch8]\n")
		fmt.Fprintf(os.Stderr, "\n-max-instr must be positive\n")
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	var prog *loader.Program
	var err error
	if flag.NArg() > 0 {
		prog, err = loader.Load(flag.Arg(0))
	} else {
		prog, err = loader.Builtin(*builtin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s (%d bytes)\n", prog.Name, prog.Size())

	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	start := time.Now()
	stats, fetch, err := runProfile(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Instructions executed: %d\n", stats.Instructions)
	fmt.Printf("Draws: %d\n", stats.Draws)
	fmt.Printf("Anomalies: %d\n", stats.Anomalies())
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if stats.Instructions > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(stats.Instructions)/elapsed.Seconds())
	}
	if *fetchCache {
		fmt.Printf("Fetch hit rate: %.2f%%\n", fetch.HitRate()*100)
	}
}

// runProfile runs the program as fast as possible until the instruction
// limit, ticking the timers at a fixed instruction interval.
func runProfile(prog *loader.Program) (emu.Stats, cache.Statistics, error) {
	opts := []emu.EmulatorOption{
		emu.WithSeed(1),
		emu.WithMaxInstructions(*instruction),
	}

	var profiler *cache.FetchProfiler
	if *fetchCache {
		c, err := cache.New(cache.DefaultFetchConfig())
		if err != nil {
			return emu.Stats{}, cache.Statistics{}, err
		}
		profiler = cache.NewFetchProfiler(c)
		opts = append(opts, emu.WithAccessObserver(profiler))
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadROM(prog.Data); err != nil {
		return emu.Stats{}, cache.Statistics{}, err
	}

	batch := *perTick
	if batch == 0 {
		batch = *instruction
	}
	for emulator.InstructionCount() < *instruction {
		emulator.RunSteps(batch)
		emulator.TickTimers()
	}

	var fetch cache.Statistics
	if profiler != nil {
		fetch = profiler.Stats()
	}
	return emulator.Stats(), fetch, nil
}
