package appliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveSpanSplitsContainingSpan(t *testing.T) {
	spots := []span{{0, 100}}
	out := removeSpan(spots, 40, 10)
	assert.Equal(t, []span{{0, 40}, {50, 100}}, out)
}

func TestRemoveSpanConsumesWholeSpan(t *testing.T) {
	spots := []span{{0, 100}}
	out := removeSpan(spots, 0, 100)
	assert.Empty(t, out)
}

func TestRemoveSpanLeavesUnrelatedSpansUntouched(t *testing.T) {
	spots := []span{{0, 10}, {100, 200}}
	out := removeSpan(spots, 120, 10)
	assert.Equal(t, []span{{0, 10}, {100, 120}, {130, 200}}, out)
}

func TestTotalFreeFiltersByMinLength(t *testing.T) {
	spots := []span{{0, 5}, {10, 40}}
	assert.Equal(t, 30, totalFree(spots, 10))
	assert.Equal(t, 35, totalFree(spots, 5))
}
