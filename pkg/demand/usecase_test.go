package demand

import (
	"math/rand/v2"
	"testing"

	"github.com/plansize/plansize/pkg/appliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func lightingParams() appliance.Params {
	return appliance.Params{
		Name:            "lighting",
		Number:          4,
		PowerWatts:      []float64{7},
		Windows:         [3]appliance.Window{{1080, 1440}, {0, 360}},
		FuncTimeMinutes: 120,
		OccasionalUse:   1,
		Flat:            true,
	}
}

func TestUserMaximumProfileScalesByNumUsers(t *testing.T) {
	u := User{Appliances: []appliance.Params{lightingParams()}, NumUsers: 3}
	prof, err := u.MaximumProfile(0)
	require.NoError(t, err)

	var total float64
	for _, v := range prof {
		total += v
	}
	assert.Greater(t, total, 0.0)
	// 4 lamps * 7 W over 720 window minutes, times 3 users.
	assert.InDelta(t, 3*28.0*720, total, 1e-6)
}

func TestPeakTimeRangeReturnsNonEmptyWindow(t *testing.T) {
	uc := UseCase{Users: []User{{Appliances: []appliance.Params{lightingParams()}, NumUsers: 1}}}
	win, err := uc.PeakTimeRange(testRNG(1), 0)
	require.NoError(t, err)
	// Lighting's windows (1080-1440 and 0-360) form the maximum plateau;
	// the enlargement around the sampled peak time is at least one minute,
	// so the window is never empty.
	assert.Greater(t, win.End, win.Start)
}

func TestPeakTimeRangeNoAppliancesReturnsZeroWindow(t *testing.T) {
	uc := UseCase{Users: []User{{NumUsers: 1}}}
	win, err := uc.PeakTimeRange(testRNG(2), 0)
	require.NoError(t, err)
	assert.Equal(t, appliance.PeakWindow{}, win)
}

func TestGenerateDailyLoadProfilesSumsAcrossUsers(t *testing.T) {
	uc := UseCase{Users: []User{
		{Appliances: []appliance.Params{lightingParams()}, NumUsers: 1},
		{Appliances: []appliance.Params{lightingParams()}, NumUsers: 1},
	}}
	var skippedCount int
	prof := uc.GenerateDailyLoadProfiles(testRNG(3), 0, appliance.Weekday, appliance.PeakWindow{}, func(name string, err error) {
		skippedCount++
	})

	var total float64
	for _, v := range prof {
		total += v
	}
	assert.Greater(t, total, 0.0)
	assert.Zero(t, skippedCount)
}
