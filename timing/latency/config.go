package latency

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// TimingConfig holds cycle costs for the instruction classes of the
// machine. Values approximate an interpreter running on an 8-bit host and
// can be tuned per profile.
type TimingConfig struct {
	// ALULatency is the cost of register loads and arithmetic/logic
	// operations (6xnn, 7xnn, 8xy_, Annn, Cxnn). Default: 1 cycle.
	ALULatency uint64 `json:"alu_latency"`

	// BranchLatency is the cost of jumps and conditional skips. Default: 1 cycle.
	BranchLatency uint64 `json:"branch_latency"`

	// CallLatency is the cost of CALL and RET, which also touch the
	// stack. Default: 2 cycles.
	CallLatency uint64 `json:"call_latency"`

	// MemoryLatency is the cost per byte moved by Fx33, Fx55 and Fx65.
	// Default: 2 cycles.
	MemoryLatency uint64 `json:"memory_latency"`

	// DrawBaseLatency is the fixed cost of a DRW instruction. Default: 4 cycles.
	DrawBaseLatency uint64 `json:"draw_base_latency"`

	// DrawRowLatency is the additional cost per sprite row. Default: 2 cycles.
	DrawRowLatency uint64 `json:"draw_row_latency"`

	// ClearLatency is the cost of clearing the framebuffer. Default: 24 cycles.
	ClearLatency uint64 `json:"clear_latency"`

	// IOLatency is the cost of keypad and timer register access. Default: 1 cycle.
	IOLatency uint64 `json:"io_latency"`
}

// DefaultTimingConfig returns a TimingConfig with default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ALULatency:      1,
		BranchLatency:   1,
		CallLatency:     2,
		MemoryLatency:   2,
		DrawBaseLatency: 4,
		DrawRowLatency:  2,
		ClearLatency:    24,
		IOLatency:       1,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read timing config file")
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse timing config")
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize timing config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write timing config file")
	}

	return nil
}

// Validate checks that all latency values are valid (> 0).
func (c *TimingConfig) Validate() error {
	checks := []struct {
		name  string
		value uint64
	}{
		{"alu_latency", c.ALULatency},
		{"branch_latency", c.BranchLatency},
		{"call_latency", c.CallLatency},
		{"memory_latency", c.MemoryLatency},
		{"draw_base_latency", c.DrawBaseLatency},
		{"clear_latency", c.ClearLatency},
		{"io_latency", c.IOLatency},
	}

	for _, check := range checks {
		if check.value == 0 {
			return errors.Errorf("%s must be > 0", check.name)
		}
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
