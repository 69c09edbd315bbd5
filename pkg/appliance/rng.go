package appliance

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// randomVariation reproduces the original model's random_variation helper:
// norm * uniform(1-variability, 1+variability). Critically it must accept a
// *negative* variability — duty-cycle construction calls this with the
// bounds deliberately reversed (variability negated); the draw is then
// still uniform over the same range — so this is implemented as a direct
// formula rather than via distuv.Uniform, which panics when Min > Max. See
// DESIGN.md for the preserved-behavior decision on this.
func randomVariation(rng *rand.Rand, variability, norm float64) float64 {
	lo := 1 - variability
	hi := 1 + variability
	return norm * (lo + (hi-lo)*rng.Float64())
}

// uniformInt draws an integer uniformly from [lo, hi), matching
// random.randint semantics used throughout the original model (inclusive
// of both ends there; callers pass hi+1 when they want an inclusive upper
// bound).
func uniformInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo)
}

// uniformFloat draws a float uniformly from [lo, hi]. Reversed bounds are
// swapped, the way Python's random.uniform(a, b) accepts a > b.
func uniformFloat(rng *rand.Rand, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + (hi-lo)*rng.Float64()
}

// normalDraw draws from a Normal(mu, sigma) distribution using gonum's
// distuv rather than a hand-rolled Box-Muller implementation, seeded from
// the same explicit *rand.Rand every other draw in this package uses.
func normalDraw(rng *rand.Rand, mu, sigma float64) float64 {
	if sigma <= 0 {
		return mu
	}
	n := distuv.Normal{Mu: mu, Sigma: sigma, Src: rngSource{rng}}
	return n.Rand()
}

// clampInt clamps v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

// rngSource adapts math/rand/v2's *rand.Rand to gonum's rand.Source
// interface (Uint64 plus Seed), so every statistical draw in this
// package threads through the one explicit PRNG handle the pipeline seeds,
// instead of gonum reaching for its own global source.
type rngSource struct {
	rng *rand.Rand
}

func (s rngSource) Uint64() uint64 { return s.rng.Uint64() }

// Seed is a no-op: rngSource never owns the PRNG state, only borrows it,
// so there is nothing to (re-)seed. It exists purely to satisfy
// golang.org/x/exp/rand.Source, which distuv.Normal.Src requires.
func (s rngSource) Seed(uint64) {}
