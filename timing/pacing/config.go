// Package pacing holds the configuration of the real-time driving loop.
package pacing

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the rates the driving loop runs the machine at.
type Config struct {
	// InstructionsPerSecond is the target instruction rate. Default: 700.
	InstructionsPerSecond uint64 `json:"instructions_per_second"`

	// TimerHz is the rate the delay and sound timers count down at.
	// Default: 60.
	TimerHz uint64 `json:"timer_hz"`

	// FrameHz is the rate the loop wakes up to run instructions, poll input
	// and present the framebuffer. Default: 60.
	FrameHz uint64 `json:"frame_hz"`

	// MinInstructionsPerSecond and MaxInstructionsPerSecond bound speed
	// adjustments. Defaults: 60 and 5000.
	MinInstructionsPerSecond uint64 `json:"min_instructions_per_second"`
	MaxInstructionsPerSecond uint64 `json:"max_instructions_per_second"`

	// SpeedStep is the change applied by Faster and Slower. Default: 100.
	SpeedStep uint64 `json:"speed_step"`

	// MaxCatchUpMs caps how much wall time a single wake-up may account for,
	// so a stalled host does not trigger a burst of instructions.
	// Default: 250.
	MaxCatchUpMs uint64 `json:"max_catch_up_ms"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		InstructionsPerSecond:    700,
		TimerHz:                  60,
		FrameHz:                  60,
		MinInstructionsPerSecond: 60,
		MaxInstructionsPerSecond: 5000,
		SpeedStep:                100,
		MaxCatchUpMs:             250,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pacing config file")
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse pacing config")
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize pacing config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write pacing config file")
	}

	return nil
}

// Validate checks that the rates are positive and consistent.
func (c *Config) Validate() error {
	if c.TimerHz == 0 {
		return errors.New("timer_hz must be > 0")
	}
	if c.FrameHz == 0 {
		return errors.New("frame_hz must be > 0")
	}
	if c.MinInstructionsPerSecond == 0 {
		return errors.New("min_instructions_per_second must be > 0")
	}
	if c.MinInstructionsPerSecond > c.MaxInstructionsPerSecond {
		return errors.New("min_instructions_per_second must be <= max_instructions_per_second")
	}
	if c.InstructionsPerSecond < c.MinInstructionsPerSecond ||
		c.InstructionsPerSecond > c.MaxInstructionsPerSecond {
		return errors.Errorf("instructions_per_second %d outside [%d, %d]",
			c.InstructionsPerSecond, c.MinInstructionsPerSecond, c.MaxInstructionsPerSecond)
	}
	if c.MaxCatchUpMs == 0 {
		return errors.New("max_catch_up_ms must be > 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Faster returns a copy running SpeedStep instructions per second faster,
// clamped to the maximum.
func (c *Config) Faster() *Config {
	clone := c.Clone()
	clone.InstructionsPerSecond += c.SpeedStep
	if clone.InstructionsPerSecond > c.MaxInstructionsPerSecond {
		clone.InstructionsPerSecond = c.MaxInstructionsPerSecond
	}
	return clone
}

// Slower returns a copy running SpeedStep instructions per second slower,
// clamped to the minimum.
func (c *Config) Slower() *Config {
	clone := c.Clone()
	if clone.InstructionsPerSecond < c.MinInstructionsPerSecond+c.SpeedStep {
		clone.InstructionsPerSecond = c.MinInstructionsPerSecond
	} else {
		clone.InstructionsPerSecond -= c.SpeedStep
	}
	return clone
}

// FramePeriod returns the wall time between two wake-ups of the loop.
func (c *Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.FrameHz)
}

// MaxCatchUp returns MaxCatchUpMs as a duration.
func (c *Config) MaxCatchUp() time.Duration {
	return time.Duration(c.MaxCatchUpMs) * time.Millisecond
}
