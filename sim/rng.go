package sim

import "math/rand"

// SeededRNG is the single source of randomness for one race lineage.
// Every draw the engine makes comes from this one stream, in an order
// that depends only on the state being advanced, so two runs with the
// same seed and the same command sequence replay bit-for-bit.
//
// Thread-safety: NOT thread-safe. One SeededRNG belongs to exactly one
// race; concurrent races each own their own instance.
type SeededRNG struct {
	seed int64
	src  *rand.Rand
}

// NewSeededRNG creates a SeededRNG from a seed value.
func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this stream was created from.
func (r *SeededRNG) Seed() int64 {
	return r.seed
}

// Float returns the next float in [0.0, 1.0).
func (r *SeededRNG) Float() float64 {
	return r.src.Float64()
}

// Uniform returns the next float in [a, b).
func (r *SeededRNG) Uniform(a, b float64) float64 {
	return a + (b-a)*r.src.Float64()
}

// RandInt returns the next int in [a, b] inclusive.
func (r *SeededRNG) RandInt(a, b int) int {
	return a + r.src.Intn(b-a+1)
}

// Chance returns true with the given probability.
func (r *SeededRNG) Chance(probability float64) bool {
	return r.src.Float64() < probability
}

// Choice returns an index in [0, n). Callers index their own slice;
// keeping the draw by length avoids generic plumbing in the hot path.
func (r *SeededRNG) Choice(n int) int {
	return r.src.Intn(n)
}
