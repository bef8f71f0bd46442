// Package latency provides an instruction cost model used to estimate the
// cycles a program consumes.
//
// The cost values can be configured via TimingConfig.
package latency

import (
	"github.com/sarchlab/c8sim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the cost in cycles for the given instruction.
func (t *Table) GetLatency(inst insts.Instruction) uint64 {
	switch inst.Op {
	case insts.OpCLS:
		return t.config.ClearLatency

	case insts.OpDRW:
		return t.config.DrawBaseLatency + uint64(inst.N)*t.config.DrawRowLatency

	case insts.OpCALL, insts.OpRET:
		return t.config.CallLatency

	case insts.OpLDB:
		return 3 * t.config.MemoryLatency

	case insts.OpLDIVx, insts.OpLDVxI:
		return uint64(inst.X&0xF+1) * t.config.MemoryLatency

	case insts.OpSKP, insts.OpSKNP, insts.OpLDVxK,
		insts.OpLDVxDT, insts.OpLDDTVx, insts.OpLDSTVx:
		return t.config.IOLatency

	default:
		if t.IsBranchOp(inst) {
			return t.config.BranchLatency
		}
		return t.config.ALULatency
	}
}

// IsMemoryOp returns true if the instruction reads or writes memory at I.
func (t *Table) IsMemoryOp(inst insts.Instruction) bool {
	switch inst.Op {
	case insts.OpLDB, insts.OpLDIVx, insts.OpLDVxI, insts.OpDRW:
		return true
	default:
		return false
	}
}

// IsBranchOp returns true if the instruction may change control flow.
func (t *Table) IsBranchOp(inst insts.Instruction) bool {
	switch inst.Op {
	case insts.OpJP, insts.OpJPV0, insts.OpCALL, insts.OpRET:
		return true
	default:
		return inst.IsSkip()
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
