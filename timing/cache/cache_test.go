package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/timing/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		// 2 sets, 2 ways, 16B lines
		var err error
		c, err = cache.New(cache.Config{
			Size:          64,
			Associativity: 2,
			BlockSize:     16,
			HitLatency:    1,
			MissLatency:   8,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should miss on a cold cache", func() {
		result := c.Access(0x200)

		Expect(result.Hit).To(BeFalse())
		Expect(result.Latency).To(Equal(uint64(8)))
		Expect(c.Stats().Misses).To(Equal(uint64(1)))
	})

	It("should hit within the same line", func() {
		c.Access(0x200)

		result := c.Access(0x20E)

		Expect(result.Hit).To(BeTrue())
		Expect(result.Latency).To(Equal(uint64(1)))
		Expect(c.Stats().HitRate()).To(BeNumerically("~", 0.5))
	})

	It("should report a zero hit rate without accesses", func() {
		Expect(c.Stats().HitRate()).To(BeZero())
	})

	It("should evict when a set overflows", func() {
		// 0x200, 0x220 and 0x240 map to the same set.
		c.Access(0x200)
		c.Access(0x220)
		result := c.Access(0x240)

		Expect(result.Evicted).To(BeTrue())
		Expect(c.Stats().Evictions).To(Equal(uint64(1)))
	})

	It("should miss after invalidation", func() {
		c.Access(0x300)
		c.Invalidate(0x304)

		Expect(c.Access(0x300).Hit).To(BeFalse())
		Expect(c.Stats().Invalidations).To(Equal(uint64(1)))
	})

	It("should clear state on reset", func() {
		c.Access(0x300)
		c.Reset()

		Expect(c.Stats().Accesses).To(BeZero())
		Expect(c.Access(0x300).Hit).To(BeFalse())
	})

	It("should reject an invalid geometry", func() {
		_, err := cache.New(cache.Config{Size: 100, Associativity: 2, BlockSize: 16})
		Expect(err).To(HaveOccurred())

		_, err = cache.New(cache.Config{})
		Expect(err).To(HaveOccurred())
	})

	It("should accept the default configuration", func() {
		Expect(cache.DefaultFetchConfig().Validate()).To(Succeed())
	})
})
