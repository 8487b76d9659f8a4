package game

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Rand is the deterministic random stream for one advancement call.
//
// Every formula in the engine draws from a single Rand in a fixed order;
// given the same seed and the same inputs, two runs of AdvanceTurn produce
// identical results. Consumers must never reorder draws between runs.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a stream seeded with an explicit seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// TurnRand derives the stream for one (gameID, turn) pair. If the state
// carries an explicit RNGSeed it is folded in, so test fixtures can pin a
// campaign's entire future.
func TurnRand(gameID string, turn int, seed int64) *Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d:%d", gameID, turn, seed)
	return NewRand(int64(h.Sum64()))
}

// Float64 draws the next float in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Range draws a float in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// IntBetween draws an int in [lo, hi] inclusive.
func (r *Rand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Intn(hi-lo+1)
}
