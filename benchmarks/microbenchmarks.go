package benchmarks

import "github.com/sarchlab/c8sim/emu"

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark targets a specific instruction class.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		countLoop(),
		functionCalls(),
		spriteDraw(),
		memoryBCD(),
		mixedOperations(),
		timerWait(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 core benchmarks for quick
// validation: a loop, subroutine calls and sprite drawing.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countLoop(),
		functionCalls(),
		spriteDraw(),
	}
}

// 1. Arithmetic Sequential - ADD immediate rotating over five registers
func arithmeticSequential() Benchmark {
	words := make([]uint16, 0, 21)
	for i := 0; i < 20; i++ {
		words = append(words, EncodeADDImm(uint8(i%5), 1))
	}
	words = append(words, EncodeHalt(emu.ProgramStart+2*20))

	return Benchmark{
		Name:         "arithmetic_sequential",
		Description:  "20 ADD immediates over V0..V4 - measures ALU dispatch",
		Program:      BuildProgram(words...),
		ExpectedExit: 4, // V0 = 0 + 4*1
	}
}

// 2. Dependency Chain - repeated ADD immediate on V0
func dependencyChain() Benchmark {
	words := make([]uint16, 0, 21)
	for i := 0; i < 20; i++ {
		words = append(words, EncodeADDImm(0, 1))
	}
	words = append(words, EncodeHalt(emu.ProgramStart+2*20))

	return Benchmark{
		Name:         "dependency_chain",
		Description:  "20 dependent ADDs (V0 = V0 + 1)",
		Program:      BuildProgram(words...),
		ExpectedExit: 20,
	}
}

// 3. Count Loop - SE/JP loop counting V0 to 100
func countLoop() Benchmark {
	return Benchmark{
		Name:        "count_loop",
		Description: "Counts V0 to 100 with a skip/jump loop - measures branches",
		Program: BuildProgram(
			EncodeLDImm(0, 0),   // 200
			EncodeADDImm(0, 1),  // 202
			EncodeSEImm(0, 100), // 204
			EncodeJP(0x202),     // 206
			EncodeHalt(0x208),   // 208
		),
		ExpectedExit: 100,
	}
}

// 4. Function Calls - CALL/RET in a loop
func functionCalls() Benchmark {
	return Benchmark{
		Name:        "function_calls",
		Description: "10 calls of a subroutine adding 2 to V0 - measures CALL/RET",
		Program: BuildProgram(
			EncodeLDImm(0, 0),  // 200
			EncodeLDImm(1, 0),  // 202
			EncodeCALL(0x210),  // 204
			EncodeADDImm(1, 1), // 206
			EncodeSEImm(1, 10), // 208
			EncodeJP(0x204),    // 20A
			EncodeHalt(0x20C),  // 20C
			0x0000,             // 20E
			EncodeADDImm(0, 2), // 210
			EncodeRET(),        // 212
		),
		ExpectedExit: 20,
	}
}

// 5. Sprite Draw - all 16 font glyphs across the top row
func spriteDraw() Benchmark {
	return Benchmark{
		Name:        "sprite_draw",
		Description: "Draws the 16 font glyphs - measures DRW",
		Program: BuildProgram(
			EncodeLDImm(0, 0),    // 200 digit
			EncodeLDImm(1, 0),    // 202 x
			EncodeLDImm(2, 0),    // 204 y
			EncodeLDF(0),         // 206
			EncodeDRW(1, 2, 5),   // 208
			EncodeADDImm(1, 4),   // 20A
			EncodeADDImm(0, 1),   // 20C
			EncodeSEImm(0, 0x10), // 20E
			EncodeJP(0x206),      // 210
			EncodeHalt(0x212),    // 212
		),
		ExpectedExit: 16,
	}
}

// 6. Memory BCD - BCD conversion and register loads
func memoryBCD() Benchmark {
	return Benchmark{
		Name:        "memory_bcd",
		Description: "50 BCD conversions read back into V0..V2 - measures memory ops",
		Program: BuildProgram(
			EncodeLDI(0x300),   // 200
			EncodeLDImm(5, 0),  // 202
			EncodeBCD(5),       // 204
			EncodeLoadRegs(2),  // 206
			EncodeADDImm(5, 1), // 208
			EncodeSEImm(5, 50), // 20A
			EncodeJP(0x204),    // 20C
			EncodeLDReg(0, 2),  // 20E units digit of 49
			EncodeHalt(0x210),  // 210
		),
		ExpectedExit: 9,
	}
}

// 7. Mixed Operations - the 8xy_ ALU group
func mixedOperations() Benchmark {
	return Benchmark{
		Name:        "mixed_operations",
		Description: "ADD, SUB, shifts and logic on V0/V1",
		Program: BuildProgram(
			EncodeLDImm(0, 3),    // V0 = 3
			EncodeLDImm(1, 5),    // V1 = 5
			EncodeALU(0, 1, 0x4), // V0 = 8
			EncodeALU(0, 1, 0x5), // V0 = 3
			EncodeALU(0, 0, 0x6), // V0 = 1
			EncodeALU(0, 0, 0xE), // V0 = 2
			EncodeALU(0, 1, 0x2), // V0 = 0
			EncodeALU(0, 1, 0x1), // V0 = 5
			EncodeALU(0, 1, 0x3), // V0 = 0
			EncodeADDImm(0, 7),   // V0 = 7
			EncodeHalt(0x214),
		),
		ExpectedExit: 7,
	}
}

// 8. Timer Wait - busy-waits on the delay timer
func timerWait() Benchmark {
	return Benchmark{
		Name:        "timer_wait",
		Description: "Sets DT = 5 and polls it to zero - measures timer reads",
		Program: BuildProgram(
			EncodeLDImm(0, 5), // 200
			0xF015,            // 202 LD DT, V0
			0xF107,            // 204 LD V1, DT
			EncodeSEImm(1, 0), // 206
			EncodeJP(0x204),   // 208
			EncodeHalt(0x20A), // 20A
		),
		ExpectedExit: 5,
	}
}

// BuildProgram assembles instruction words into a big-endian byte slice.
func BuildProgram(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

// Instruction encoding helpers

// EncodeJP encodes JP addr.
func EncodeJP(addr uint16) uint16 { return 0x1000 | addr&0xFFF }

// EncodeHalt encodes a jump to its own address, which the harness treats
// as the end of the program.
func EncodeHalt(addr uint16) uint16 { return EncodeJP(addr) }

// EncodeCALL encodes CALL addr.
func EncodeCALL(addr uint16) uint16 { return 0x2000 | addr&0xFFF }

// EncodeRET encodes RET.
func EncodeRET() uint16 { return 0x00EE }

// EncodeSEImm encodes SE Vx, nn.
func EncodeSEImm(x, nn uint8) uint16 { return 0x3000 | uint16(x&0xF)<<8 | uint16(nn) }

// EncodeLDImm encodes LD Vx, nn.
func EncodeLDImm(x, nn uint8) uint16 { return 0x6000 | uint16(x&0xF)<<8 | uint16(nn) }

// EncodeADDImm encodes ADD Vx, nn.
func EncodeADDImm(x, nn uint8) uint16 { return 0x7000 | uint16(x&0xF)<<8 | uint16(nn) }

// EncodeALU encodes the 8xyN register-register group.
func EncodeALU(x, y, n uint8) uint16 {
	return 0x8000 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeLDReg encodes LD Vx, Vy.
func EncodeLDReg(x, y uint8) uint16 { return EncodeALU(x, y, 0x0) }

// EncodeLDI encodes LD I, addr.
func EncodeLDI(addr uint16) uint16 { return 0xA000 | addr&0xFFF }

// EncodeDRW encodes DRW Vx, Vy, n.
func EncodeDRW(x, y, n uint8) uint16 {
	return 0xD000 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeLDF encodes LD F, Vx.
func EncodeLDF(x uint8) uint16 { return 0xF029 | uint16(x&0xF)<<8 }

// EncodeBCD encodes LD B, Vx.
func EncodeBCD(x uint8) uint16 { return 0xF033 | uint16(x&0xF)<<8 }

// EncodeStoreRegs encodes LD [I], Vx.
func EncodeStoreRegs(x uint8) uint16 { return 0xF055 | uint16(x&0xF)<<8 }

// EncodeLoadRegs encodes LD Vx, [I].
func EncodeLoadRegs(x uint8) uint16 { return 0xF065 | uint16(x&0xF)<<8 }
