package capacity

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestDifferentialEvolutionMinimizesSphere(t *testing.T) {
	objective := func(p Plant) float64 {
		dx, dy, dz := p.PVKW-10, p.BatteryKWh-500, p.DieselKW-50
		return dx*dx + dy*dy + dz*dz
	}
	params := EvolutionParams{
		Bounds:        DefaultBounds,
		Mutation:      0.5,
		Recombination: 0.7,
		PopSize:       15,
		MaxIter:       500,
		Tolerance:     1e-7,
	}

	plant, score := DifferentialEvolution(testRNG(7), params, objective)
	assert.InDelta(t, 10, plant.PVKW, 50)
	assert.InDelta(t, 500, plant.BatteryKWh, 250)
	assert.InDelta(t, 50, plant.DieselKW, 50)
	assert.Less(t, score, objective(Plant{}))
}

func TestDifferentialEvolutionRespectsBounds(t *testing.T) {
	objective := func(p Plant) float64 { return -(p.PVKW + p.BatteryKWh + p.DieselKW) }
	plant, _ := DifferentialEvolution(testRNG(3), DefaultEvolutionParams, objective)

	assert.GreaterOrEqual(t, plant.PVKW, DefaultBounds[0].Min)
	assert.LessOrEqual(t, plant.PVKW, DefaultBounds[0].Max)
	assert.GreaterOrEqual(t, plant.BatteryKWh, DefaultBounds[1].Min)
	assert.LessOrEqual(t, plant.BatteryKWh, DefaultBounds[1].Max)
	assert.GreaterOrEqual(t, plant.DieselKW, DefaultBounds[2].Min)
	assert.LessOrEqual(t, plant.DieselKW, DefaultBounds[2].Max)
}

func TestDifferentialEvolutionDeterministicUnderSeed(t *testing.T) {
	objective := func(p Plant) float64 {
		dx, dy, dz := p.PVKW-3, p.BatteryKWh-900, p.DieselKW-4
		return dx*dx + dy*dy + dz*dz
	}

	plantA, scoreA := DifferentialEvolution(testRNG(42), DefaultEvolutionParams, objective)
	plantB, scoreB := DifferentialEvolution(testRNG(42), DefaultEvolutionParams, objective)

	assert.Equal(t, plantA, plantB)
	assert.Equal(t, scoreA, scoreB)
}

func TestOptimizeCapacityConstantLoadNoPVPrefersDiesel(t *testing.T) {
	load := flatSeries(24, 1)
	pvFactor := flatSeries(24, 0)

	plant, trace := OptimizeCapacity(testRNG(1), load, pvFactor)

	require.NotNil(t, trace.ELoad)
	assert.GreaterOrEqual(t, DemandConstraint(trace), -1e-3)
	assert.Greater(t, plant.DieselKW, 0.0)
}

func TestOptimizeCapacityFlatPVMatchingLoadMeetsDemand(t *testing.T) {
	load := flatSeries(24, 1)
	pvFactor := flatSeries(24, 1)

	_, trace := OptimizeCapacity(testRNG(5), load, pvFactor)
	assert.GreaterOrEqual(t, DemandConstraint(trace), -1e-3)
}
