// Package benchmarks provides benchmark infrastructure for measuring the
// emulator's throughput and the modeled cost of CHIP-8 programs.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/latency"
)

// Version is reported in JSON output. The benchmark command overrides it.
var Version = "dev"

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the modeled cost: instruction latencies plus
	// fetch cache latencies when the fetch cache is enabled
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of executed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// Draws is the number of CLS and DRW instructions
	Draws uint64 `json:"draws"`

	// MemoryOps is the number of instructions accessing memory at I
	MemoryOps uint64 `json:"memory_ops"`

	// Branches is the number of jumps, calls, returns and skips
	Branches uint64 `json:"branches"`

	// TimerTicks is the number of 60 Hz timer ticks issued
	TimerTicks uint64 `json:"timer_ticks"`

	// Anomalies is the number of runtime anomalies
	Anomalies uint64 `json:"anomalies"`

	// FetchHits/Misses (if the fetch cache is enabled)
	FetchHits   uint64 `json:"fetch_hits,omitempty"`
	FetchMisses uint64 `json:"fetch_misses,omitempty"`

	// Halted is true if the program reached its halt loop
	Halted bool `json:"halted"`

	// ExitCode is V0 when the program halted
	ExitCode uint8 `json:"exit_code"`

	// Passed is true if the program halted with the expected exit code
	Passed bool `json:"passed"`

	// WallTime is the actual time taken to run the benchmark
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the emulator state (e.g., initialize registers, memory)
	Setup func(e *emu.Emulator)

	// Program is the CHIP-8 machine code to execute. It halts by jumping
	// to its own address.
	Program []byte

	// ExpectedExit is the expected value of V0 at halt (for validation)
	ExpectedExit uint8
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableFetchCache enables instruction fetch cache modeling
	EnableFetchCache bool

	// FetchCache is the fetch cache geometry
	FetchCache cache.Config

	// Timing holds the instruction cost model
	Timing *latency.TimingConfig

	// InstructionsPerTick is the number of instructions between two timer
	// ticks, emulating a 60 Hz timer at a fixed instruction rate
	InstructionsPerTick uint64

	// MaxInstructions stops a benchmark that does not halt
	MaxInstructions uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableFetchCache:    true,
		FetchCache:          cache.DefaultFetchConfig(),
		Timing:              latency.DefaultTimingConfig(),
		InstructionsPerTick: 12, // ~700 instructions per second
		MaxInstructions:     1_000_000,
		Output:              os.Stdout,
		Verbose:             false,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	opts := []emu.EmulatorOption{emu.WithSeed(1)}

	var profiler *cache.FetchProfiler
	if h.config.EnableFetchCache {
		c, err := cache.New(h.config.FetchCache)
		if err == nil {
			profiler = cache.NewFetchProfiler(c)
			opts = append(opts, emu.WithAccessObserver(profiler))
		} else if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "fetch cache disabled: %v\n", err)
		}
	}

	e := emu.NewEmulator(opts...)
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	if err := e.LoadROM(bench.Program); err != nil {
		if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "%s: %v\n", bench.Name, err)
		}
		return result
	}

	// Run setup if provided
	if bench.Setup != nil {
		bench.Setup(e)
	}

	table := latency.NewTableWithConfig(h.config.Timing)
	decoder := insts.NewDecoder()

	start := time.Now()
	for result.InstructionsRetired < h.config.MaxInstructions {
		pc := e.RegFile().PC
		word, err := e.Memory().Read16(int(pc))
		inst := decoder.Decode(word)
		if err == nil && inst.Op == insts.OpJP && inst.NNN == pc {
			result.Halted = true
			break
		}

		result.SimulatedCycles += table.GetLatency(inst)
		if table.IsMemoryOp(inst) {
			result.MemoryOps++
		}
		if table.IsBranchOp(inst) {
			result.Branches++
		}

		e.Step()
		result.InstructionsRetired++

		if h.config.InstructionsPerTick > 0 &&
			result.InstructionsRetired%h.config.InstructionsPerTick == 0 {
			e.TickTimers()
		}
	}
	result.WallTime = time.Since(start)

	stats := e.Stats()
	result.Draws = stats.Draws
	result.TimerTicks = stats.TimerTicks
	result.Anomalies = stats.Anomalies()
	result.ExitCode = e.RegFile().V[0]
	result.Passed = result.Halted && result.ExitCode == bench.ExpectedExit

	if profiler != nil {
		fetch := profiler.Stats()
		result.FetchHits = fetch.Hits
		result.FetchMisses = fetch.Misses
		result.SimulatedCycles += profiler.FetchCycles()
	}

	if result.InstructionsRetired > 0 {
		result.CPI = float64(result.SimulatedCycles) / float64(result.InstructionsRetired)
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== c8sim Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Halted: %v (V0 = %d)\n", r.Halted, r.ExitCode)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Cost ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  Draws:                %d\n", r.Draws)
		_, _ = fmt.Fprintf(h.config.Output, "  Memory Ops:           %d\n", r.MemoryOps)
		_, _ = fmt.Fprintf(h.config.Output, "  Branches:             %d\n", r.Branches)
		_, _ = fmt.Fprintf(h.config.Output, "  Timer Ticks:          %d\n", r.TimerTicks)
		if r.Anomalies > 0 {
			_, _ = fmt.Fprintf(h.config.Output, "  Anomalies:            %d\n", r.Anomalies)
		}

		if r.FetchHits > 0 || r.FetchMisses > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Fetch Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:   %d\n", r.FetchHits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses: %d\n", r.FetchMisses)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,draws,memory_ops,branches,timer_ticks,anomalies,fetch_hits,fetch_misses,halted,exit_code")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d,%d,%d,%d,%t,%d\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.Draws,
			r.MemoryOps,
			r.Branches,
			r.TimerTicks,
			r.Anomalies,
			r.FetchHits,
			r.FetchMisses,
			r.Halted,
			r.ExitCode,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// Version of the simulator
	Version string `json:"version"`

	// Config describes the benchmark configuration
	Config BenchmarkConfig `json:"config"`
}

// BenchmarkConfig describes the harness configuration used.
type BenchmarkConfig struct {
	FetchCacheEnabled   bool                  `json:"fetch_cache_enabled"`
	InstructionsPerTick uint64                `json:"instructions_per_tick"`
	Timing              *latency.TimingConfig `json:"timing"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageCPI is the average cycles per instruction
	AverageCPI float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	// Calculate summary statistics
	var totalCycles, totalInstructions uint64
	var totalWallTime time.Duration
	for _, r := range results {
		totalCycles += r.SimulatedCycles
		totalInstructions += r.InstructionsRetired
		totalWallTime += r.WallTime
	}

	avgCPI := float64(0)
	if totalInstructions > 0 {
		avgCPI = float64(totalCycles) / float64(totalInstructions)
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
			Config: BenchmarkConfig{
				FetchCacheEnabled:   h.config.EnableFetchCache,
				InstructionsPerTick: h.config.InstructionsPerTick,
				Timing:              h.config.Timing,
			},
		},
		Results: results,
		Summary: ReportSummary{
			TotalBenchmarks:   len(results),
			TotalCycles:       totalCycles,
			TotalInstructions: totalInstructions,
			AverageCPI:        avgCPI,
			TotalWallTime:     totalWallTime,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
