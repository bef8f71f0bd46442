package cache

import "github.com/sarchlab/c8sim/emu"

// FetchProfiler feeds an emulator's fetch stream into a Cache. Stores into
// cached lines invalidate them so self-modifying code is refetched.
type FetchProfiler struct {
	cache  *Cache
	cycles uint64
}

var _ emu.AccessObserver = (*FetchProfiler)(nil)

// NewFetchProfiler creates a profiler backed by c.
func NewFetchProfiler(c *Cache) *FetchProfiler {
	return &FetchProfiler{cache: c}
}

// Fetched records an instruction fetch at addr.
func (p *FetchProfiler) Fetched(addr uint16) {
	p.cycles += p.cache.Access(addr).Latency
}

// Stored invalidates every line overlapping [addr, addr+n).
func (p *FetchProfiler) Stored(addr uint16, n int) {
	block := p.cache.config.BlockSize
	first := int(addr) / block * block
	for a := first; a < int(addr)+n; a += block {
		p.cache.Invalidate(uint16(a))
	}
}

// Stats returns the statistics of the underlying cache.
func (p *FetchProfiler) Stats() Statistics {
	return p.cache.Stats()
}

// FetchCycles returns the accumulated fetch latency.
func (p *FetchProfiler) FetchCycles() uint64 {
	return p.cycles
}
