// Validate decoder coverage and allocation behaviour over the full 16-bit
// instruction space.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sarchlab/c8sim/insts"
)

const wordSpace = 1 << 16

func main() {
	decoder := insts.NewDecoder()

	// Coverage: every word decodes, and the decoded fields agree with the raw
	// word for every known operation.
	var counts [insts.NumOps]int
	mismatches := 0
	for w := 0; w < wordSpace; w++ {
		word := uint16(w)
		inst := decoder.Decode(word)
		counts[inst.Op]++

		if inst.Word != word ||
			inst.X != uint8(word>>8&0xF) ||
			inst.Y != uint8(word>>4&0xF) ||
			inst.N != uint8(word&0xF) ||
			inst.NN != uint8(word) ||
			inst.NNN != word&0xFFF {
			mismatches++
		}
	}

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.Decode(0xD125)
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 20
	for i := 0; i < iterations; i++ {
		for w := 0; w < wordSpace; w++ {
			decoder.Decode(uint16(w))
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * wordSpace
	allocations := m2.Mallocs - m1.Mallocs

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	for op := insts.Op(0); op < insts.NumOps; op++ {
		fmt.Printf("  %-4s %-6d\n", op, counts[op])
	}
	fmt.Printf("Field mismatches: %d\n", mismatches)
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))

	if mismatches > 0 {
		fmt.Printf("\nFAIL: decoded fields disagree with the instruction word\n")
		os.Exit(1)
	}
	if float64(allocations)/float64(totalDecodes) >= 0.1 {
		fmt.Printf("\nWARNING: high allocation rate detected\n")
	}
}
