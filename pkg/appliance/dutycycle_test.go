package appliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOneCycleHasBothPhases(t *testing.T) {
	rng := testRNG(20)
	c := buildOneCycle(rng, 0.1, DutyCycle{Power1: 200, Share1: 0.3, Power2: 50, Share2: 0.7})
	require.NotEmpty(t, c)

	var sawPower1, sawPower2 bool
	for _, v := range c {
		if v == 200 {
			sawPower1 = true
		}
		if v == 50 {
			sawPower2 = true
		}
	}
	assert.True(t, sawPower1)
	assert.True(t, sawPower2)
}

func TestResolvedCycleAtWrapsAround(t *testing.T) {
	c := resolvedCycle{1, 2, 3}
	assert.Equal(t, 1.0, c.at(0))
	assert.Equal(t, 3.0, c.at(2))
	assert.Equal(t, 1.0, c.at(3))
	assert.Equal(t, 2.0, c.at(4))
}

func TestResolvedCycleAtEmpty(t *testing.T) {
	var c resolvedCycle
	assert.Zero(t, c.at(0))
}

func TestBuildCyclesNoneConfigured(t *testing.T) {
	p := Params{}
	assert.Nil(t, buildCycles(testRNG(21), p))
}

func TestBuildCyclesResolvesEveryPhase(t *testing.T) {
	p := Params{
		RandomWindowVariability: 0.05,
		DutyCycles: []DutyCycle{
			{Power1: 100, Share1: 0.5, Power2: 10, Share2: 0.5},
			{Power1: 120, Share1: 0.4, Power2: 12, Share2: 0.6},
		},
	}
	cycles := buildCycles(testRNG(22), p)
	assert.Len(t, cycles, 2)
	for _, c := range cycles {
		assert.NotEmpty(t, c)
	}
}

func TestDutyCycleEligibleWithNoWindowsConfiguredAlwaysMatches(t *testing.T) {
	dc := DutyCycle{Power1: 100, Power2: 10}
	assert.True(t, dc.eligible(0, 10))
	assert.True(t, dc.eligible(1000, 1010))
}

func TestDutyCycleEligibleChecksCW1AndCW2(t *testing.T) {
	dc := DutyCycle{CW1: Window{Start: 60, End: 120}, CW2: Window{Start: 600, End: 660}}
	assert.True(t, dc.eligible(90, 100))
	assert.True(t, dc.eligible(630, 640))
	assert.False(t, dc.eligible(300, 310))
}

func TestSelectDutyCycleReturnsFirstEligibleCycle(t *testing.T) {
	p := Params{DutyCycles: []DutyCycle{
		{CW1: Window{Start: 0, End: 100}},
		{CW1: Window{Start: 200, End: 300}},
	}}
	idx, ok := p.selectDutyCycle(220, 230)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSelectDutyCycleNoneEligibleFails(t *testing.T) {
	p := Params{DutyCycles: []DutyCycle{
		{CW1: Window{Start: 0, End: 100}},
	}}
	_, ok := p.selectDutyCycle(500, 510)
	assert.False(t, ok)
}
