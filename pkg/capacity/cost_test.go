package capacity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatSeries(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestConstrainedCostInfeasibleReturnsInf(t *testing.T) {
	load := flatSeries(24, 10)
	pvFactor := flatSeries(24, 0)
	plant := Plant{PVKW: 0, BatteryKWh: 0, DieselKW: 0}

	cost := ConstrainedCost(plant, load, pvFactor)
	assert.True(t, math.IsInf(cost, 1))
}

func TestConstrainedCostFeasibleIsFinitePositive(t *testing.T) {
	load := flatSeries(24, 1)
	pvFactor := flatSeries(24, 0)
	plant := Plant{PVKW: 0, BatteryKWh: 0, DieselKW: 2}

	cost := ConstrainedCost(plant, load, pvFactor)
	assert.False(t, math.IsInf(cost, 1))
	assert.Greater(t, cost, 0.0)
}

func TestCostIncludesAllThreeCapitalComponents(t *testing.T) {
	load := flatSeries(24, 1)
	pvFactor := flatSeries(24, 1)
	zero := Plant{}
	withCapacity := Plant{PVKW: 10, BatteryKWh: 10, DieselKW: 10}

	zeroTrace := zero.Simulate(load, pvFactor)
	withTrace := withCapacity.Simulate(load, pvFactor)

	assert.Greater(t, Cost(withCapacity, withTrace), Cost(zero, zeroTrace))
}

func TestCostDieselOnlyPlantBurnsFuelForWholeLoad(t *testing.T) {
	load := flatSeries(24, 5)
	pvFactor := flatSeries(24, 0)
	plant := Plant{PVKW: 0, BatteryKWh: 0, DieselKW: 5}

	trace := plant.Simulate(load, pvFactor)
	var dieselEnergy float64
	for _, v := range trace.EDiesel {
		dieselEnergy += v
	}
	assert.InDelta(t, 24*5, dieselEnergy, 1e-6)
	assert.Greater(t, Cost(plant, trace), 0.0)
}
