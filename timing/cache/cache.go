// Package cache models an instruction-fetch cache in front of the machine's
// memory using Akita cache components. It holds tags only and is used to
// measure how local a program's fetch stream is.
package cache

import (
	"github.com/pkg/errors"
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/c8sim/emu"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int
	// Associativity (number of ways)
	Associativity int
	// BlockSize in bytes (cache line size)
	BlockSize int
	// HitLatency in cycles
	HitLatency uint64
	// MissLatency in cycles
	MissLatency uint64
}

// DefaultFetchConfig returns a small fetch cache: 256 B, 2-way, 16 B lines.
func DefaultFetchConfig() Config {
	return Config{
		Size:          256,
		Associativity: 2,
		BlockSize:     16,
		HitLatency:    1,
		MissLatency:   8,
	}
}

// Validate checks that the geometry describes at least one whole set.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Associativity <= 0 || c.BlockSize <= 0 {
		return errors.New("cache size, associativity and block size must be > 0")
	}
	if c.Size%(c.Associativity*c.BlockSize) != 0 {
		return errors.Errorf("cache size %d is not a multiple of %d-way x %d B",
			c.Size, c.Associativity, c.BlockSize)
	}
	if c.BlockSize > emu.MemorySize {
		return errors.Errorf("block size %d exceeds memory size", c.BlockSize)
	}
	return nil
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Latency is the number of cycles this access takes.
	Latency uint64
	// Evicted is true if a valid block was replaced.
	Evicted bool
	// EvictedAddr is the address of the evicted block (if Evicted is true).
	EvictedAddr uint16
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Accesses      uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
}

// HitRate returns the fraction of accesses that hit, or 0 without accesses.
func (s Statistics) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

// Cache is a tag-only set-associative cache with LRU replacement.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics
}

// New creates a new cache with the given configuration.
func New(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	numSets := config.Size / (config.Associativity * config.BlockSize)

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}, nil
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockAddr(addr uint16) uint64 {
	return (uint64(addr) / uint64(c.config.BlockSize)) * uint64(c.config.BlockSize)
}

// Access looks up the line holding addr and allocates it on a miss.
func (c *Cache) Access(addr uint16) AccessResult {
	c.stats.Accesses++

	blockAddr := c.blockAddr(addr)
	block := c.directory.Lookup(0, blockAddr)

	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return AccessResult{Hit: true, Latency: c.config.HitLatency}
	}

	c.stats.Misses++
	return c.allocate(blockAddr)
}

func (c *Cache) allocate(blockAddr uint64) AccessResult {
	result := AccessResult{Latency: c.config.MissLatency}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = uint16(victim.Tag)
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	return result
}

// Invalidate drops the line holding addr, e.g. after a store into code.
func (c *Cache) Invalidate(addr uint16) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		c.stats.Invalidations++
	}
}

// Reset invalidates all cache lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
