// Command benchmark runs the c8sim timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results in JSON format
//	-no-fcache  Disable instruction fetch cache modeling
//	-timing     Path to a timing configuration JSON file
//	-core       Run only the core benchmark subset
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/c8sim/benchmarks"
	"github.com/sarchlab/c8sim/timing/latency"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	noFetchCache := flag.Bool("no-fcache", false, "Disable instruction fetch cache modeling")
	timingPath := flag.String("timing", "", "Path to timing configuration JSON file")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	perTick := flag.Uint64("per-tick", 0, "Instructions between timer ticks (0 keeps the default)")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.EnableFetchCache = !*noFetchCache
	config.Output = os.Stdout
	if *perTick != 0 {
		config.InstructionsPerTick = *perTick
	}
	if *timingPath != "" {
		timing, err := latency.LoadConfig(*timingPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
			os.Exit(1)
		}
		config.Timing = timing
	}

	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("c8sim Timing Benchmark Harness")
		fmt.Println("==============================")
		fmt.Printf("Fetch cache: %v\n", config.EnableFetchCache)
		fmt.Printf("Instructions per timer tick: %d\n", config.InstructionsPerTick)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if !r.Passed {
			os.Exit(2)
		}
	}
}
