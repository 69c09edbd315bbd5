package capacity

import "math/rand/v2"

// Bounds is a closed interval the search clips candidates into.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) clip(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// DefaultBounds matches the original optimizer's search space: up to
// 1000 kW of PV, 5000 kWh of battery, and 1000 kW of diesel.
var DefaultBounds = [3]Bounds{
	{Min: 0, Max: 1000},
	{Min: 0, Max: 5000},
	{Min: 0, Max: 1000},
}

// EvolutionParams tunes the differential evolution search; DefaultEvolutionParams
// reproduces optimize_capacity's call into differential_evolution.
type EvolutionParams struct {
	Bounds        [3]Bounds
	Mutation      float64
	Recombination float64
	PopSize       int
	MaxIter       int
	Tolerance     float64
}

// DefaultEvolutionParams are the parameters optimize_capacity passes to
// differential_evolution: population 15, up to 5000 generations, a tight
// 1e-7 convergence tolerance.
var DefaultEvolutionParams = EvolutionParams{
	Bounds:        DefaultBounds,
	Mutation:      0.5,
	Recombination: 0.7,
	PopSize:       15,
	MaxIter:       5000,
	Tolerance:     1e-7,
}

type candidate [3]float64

// DifferentialEvolution runs a classic DE/rand/1/bin search minimizing
// objective over params.Bounds, seeded entirely from rng so two runs with
// the same seed and inputs produce bitwise-identical results — no package
// global PRNG is ever touched. It mirrors the original model's
// differential_evolution: random init population, per-generation mutation
// via three distinct donor vectors, binomial crossover, greedy selection,
// and an early break once the population's best/worst score gap falls
// under Tolerance.
func DifferentialEvolution(rng *rand.Rand, params EvolutionParams, objective func(Plant) float64) (Plant, float64) {
	pop := make([]candidate, params.PopSize)
	scores := make([]float64, params.PopSize)
	for i := range pop {
		for d := 0; d < 3; d++ {
			b := params.Bounds[d]
			pop[i][d] = b.Min + (b.Max-b.Min)*rng.Float64()
		}
		scores[i] = objective(toPlant(pop[i]))
	}

	for iter := 0; iter < params.MaxIter; iter++ {
		best, worst := scores[0], scores[0]
		for _, s := range scores {
			if s < best {
				best = s
			}
			if s > worst {
				worst = s
			}
		}
		if absFloat(worst-best) < params.Tolerance {
			break
		}

		for i := range pop {
			a, b, c := pickThreeDistinct(rng, len(pop), i)
			var mutant candidate
			for d := 0; d < 3; d++ {
				mutant[d] = pop[a][d] + params.Mutation*(pop[b][d]-pop[c][d])
			}

			var trial candidate
			for d := 0; d < 3; d++ {
				if rng.Float64() < params.Recombination {
					trial[d] = mutant[d]
				} else {
					trial[d] = pop[i][d]
				}
				trial[d] = params.Bounds[d].clip(trial[d])
			}

			trialScore := objective(toPlant(trial))
			if trialScore < scores[i] {
				pop[i] = trial
				scores[i] = trialScore
			}
		}
	}

	bestIdx := 0
	for i, s := range scores {
		if s < scores[bestIdx] {
			bestIdx = i
		}
	}
	return toPlant(pop[bestIdx]), scores[bestIdx]
}

func toPlant(c candidate) Plant {
	return Plant{PVKW: c[0], BatteryKWh: c[1], DieselKW: c[2]}
}

func pickThreeDistinct(rng *rand.Rand, n, exclude int) (int, int, int) {
	pick := func(avoid ...int) int {
		for {
			v := rng.IntN(n)
			ok := true
			for _, a := range avoid {
				if v == a {
					ok = false
					break
				}
			}
			if ok {
				return v
			}
		}
	}
	a := pick(exclude)
	b := pick(exclude, a)
	c := pick(exclude, a, b)
	return a, b, c
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// OptimizeCapacity runs the full search and returns the best Plant found
// along with its dispatch trace, the Go equivalent of optimize_capacity.
func OptimizeCapacity(rng *rand.Rand, load, pvFactor []float64) (Plant, DispatchTrace) {
	plant, _ := DifferentialEvolution(rng, DefaultEvolutionParams, func(p Plant) float64 {
		return ConstrainedCost(p, load, pvFactor)
	})
	return plant, plant.Simulate(load, pvFactor)
}
