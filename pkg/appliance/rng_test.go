package appliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomVariationToleratesReversedBounds(t *testing.T) {
	rng := testRNG(10)
	// A positive variability must stay within norm*(1-v, 1+v).
	for i := 0; i < 100; i++ {
		v := randomVariation(rng, 0.2, 10)
		assert.GreaterOrEqual(t, v, 8.0)
		assert.LessOrEqual(t, v, 12.0)
	}

	// Reversed (negative) variability must not panic and must still land
	// in the symmetric range around norm, matching Python's
	// random.uniform(a, b) tolerating a > b.
	for i := 0; i < 100; i++ {
		v := randomVariation(rng, -0.2, 10)
		assert.GreaterOrEqual(t, v, 8.0)
		assert.LessOrEqual(t, v, 12.0)
	}
}

func TestUniformIntBounds(t *testing.T) {
	rng := testRNG(11)
	for i := 0; i < 200; i++ {
		v := uniformInt(rng, 5, 10)
		assert.GreaterOrEqual(t, v, 5)
		assert.Less(t, v, 10)
	}
	assert.Equal(t, 7, uniformInt(rng, 7, 7))
}

func TestUniformFloatBounds(t *testing.T) {
	rng := testRNG(12)
	for i := 0; i < 200; i++ {
		v := uniformFloat(rng, 1.0, 2.0)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 2.0)
	}
}

func TestNormalDrawZeroSigmaReturnsMean(t *testing.T) {
	rng := testRNG(13)
	assert.Equal(t, 5.0, normalDraw(rng, 5.0, 0))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 10))
	assert.Equal(t, 10, clampInt(15, 0, 10))
	assert.Equal(t, 5, clampInt(5, 0, 10))
}
