// Package main provides the entry point for c8sim.
// c8sim is a CHIP-8 virtual machine with a terminal front end and a
// cycle-cost timing model built on Akita caches.
//
// For the full CLI, use: go run ./cmd/c8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("c8sim - CHIP-8 Virtual Machine")
	fmt.Println("")
	fmt.Println("Usage: c8sim [options] [program.ch8]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -steps     Run headless for N instructions and print the machine state")
	fmt.Println("  -config    Path to pacing configuration JSON file")
	fmt.Println("  -ips       Instructions per second")
	fmt.Println("  -seed      Random seed")
	fmt.Println("")
	fmt.Println("Keys: 1234/QWER/ASDF/ZXCV map to the hex keypad, +/- change speed,")
	fmt.Println("Ctrl-R resets, Esc quits.")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/c8sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/c8sim' instead.")
	}
}
