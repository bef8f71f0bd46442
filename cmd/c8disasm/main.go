// Package main provides c8disasm, a listing tool for CHIP-8 programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/loader"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	hexDump := flag.Bool("hex", false, "Print a hex dump instead of a listing")
	builtin := flag.String("builtin", "", "Disassemble a builtin program")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("c8disasm version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	var prog *loader.Program
	var err error
	switch {
	case *builtin != "":
		prog, err = loader.Builtin(*builtin)
	case flag.NArg() == 1:
		prog, err = loader.Load(flag.Arg(0))
	default:
		fmt.Fprintf(os.Stderr, "Usage: c8disasm [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *hexDump {
		err = dump(os.Stdout, prog)
	} else {
		err = listing(os.Stdout, prog)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// listing writes one line per instruction word: address, raw word and
// disassembly. A trailing odd byte is printed as data.
func listing(w io.Writer, prog *loader.Program) error {
	decoder := insts.NewDecoder()
	data := prog.Data

	for off := 0; off+1 < len(data); off += 2 {
		word := uint16(data[off])<<8 | uint16(data[off+1])
		inst := decoder.Decode(word)
		if _, err := fmt.Fprintf(w, "%03X: %04X  %s\n", emu.ProgramStart+off, word, inst); err != nil {
			return err
		}
	}

	if len(data)%2 == 1 {
		off := len(data) - 1
		if _, err := fmt.Fprintf(w, "%03X: %02X    DB $%02X\n", emu.ProgramStart+off, data[off], data[off]); err != nil {
			return err
		}
	}
	return nil
}

// dump writes the program as it appears in memory.
func dump(w io.Writer, prog *loader.Program) error {
	memory := emu.NewMemory()
	if err := memory.LoadProgram(prog.Data); err != nil {
		return err
	}
	if prog.Size() == 0 {
		return nil
	}
	return memory.Dump(w, emu.ProgramStart, prog.Size())
}
