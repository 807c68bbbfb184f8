package orbit

import "math/rand/v2"

// LayoutCache memoizes placements keyed by item count. Catalog edits that
// keep the count return the same placements, so nodes do not jump; only a
// count change (or a new radius) regenerates.
type LayoutCache struct {
	radius     float64
	ranges     Ranges
	rng        *rand.Rand
	count      int
	placements []Placement
	valid      bool
	generation int
}

// NewLayoutCache creates a cache. A zero seed draws a random one.
func NewLayoutCache(radius float64, ranges Ranges, seed uint64) *LayoutCache {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &LayoutCache{
		radius: radius,
		ranges: ranges,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Placements returns the layout for count items.
func (c *LayoutCache) Placements(count int) []Placement {
	if c.valid && c.count == count {
		return c.placements
	}
	c.placements = Generate(count, c.radius, c.ranges, c.rng)
	c.count = count
	c.valid = true
	c.generation++
	return c.placements
}

// SetRadius changes the layout radius and invalidates the cache.
func (c *LayoutCache) SetRadius(radius float64) {
	if radius == c.radius {
		return
	}
	c.radius = radius
	c.valid = false
}

// Radius returns the layout radius.
func (c *LayoutCache) Radius() float64 { return c.radius }

// Generation counts how many times the layout has been computed.
func (c *LayoutCache) Generation() int { return c.generation }
