package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/plansize/plansize/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWeather is a deterministic stand-in for a real PV/heating provider,
// exercising the same Provider boundary renewableninja.Provider and
// clearsky.Provider implement.
type fakeWeather struct {
	pv      float64
	cooling float64
	calls   int
}

func (f *fakeWeather) PVOutput(_ context.Context, _, _ float64, start, end time.Time) ([]float64, error) {
	f.calls++
	hours := int(end.Sub(start).Hours()) + 24
	out := make([]float64, hours)
	for i := range out {
		out[i] = f.pv
	}
	return out, nil
}

func (f *fakeWeather) HeatingDemand(_ context.Context, _, _ float64, start, end time.Time) ([]float64, error) {
	days := int(end.Sub(start).Hours()/24) + 1
	out := make([]float64, days)
	for i := range out {
		out[i] = f.cooling
	}
	return out, nil
}

func TestRunProducesHourlyArraysOfExpectedLength(t *testing.T) {
	p, err := New(&fakeWeather{pv: 0.5, cooling: 1})
	require.NoError(t, err)

	res, err := p.Run(context.Background(), Request{
		Lat: 21.9, Lon: 95.9, Households: 3, NumDays: 2,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:      1,
	})
	require.NoError(t, err)

	wantLen := 24 * 2
	assert.Len(t, res.ELoad, wantLen)
	assert.Len(t, res.EPV, wantLen)
	assert.Len(t, res.EBatt, wantLen)
	assert.Len(t, res.EDiesel, wantLen)
	assert.Len(t, res.CBatt, wantLen)
}

func TestRunRejectsNonPositiveHouseholdsOrDays(t *testing.T) {
	p, err := New(&fakeWeather{pv: 0.5, cooling: 1})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), Request{Households: 0, NumDays: 1, StartDate: time.Now()})
	assert.Error(t, err)

	_, err = p.Run(context.Background(), Request{Households: 1, NumDays: 0, StartDate: time.Now()})
	assert.Error(t, err)
}

func TestRunIsDeterministicUnderSameSeed(t *testing.T) {
	req := Request{
		Lat: 21.9, Lon: 95.9, Households: 2, NumDays: 1,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}

	p1, err := New(&fakeWeather{pv: 0.3, cooling: 0.8})
	require.NoError(t, err)
	res1, err := p1.Run(context.Background(), req)
	require.NoError(t, err)

	p2, err := New(&fakeWeather{pv: 0.3, cooling: 0.8})
	require.NoError(t, err)
	res2, err := p2.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, res1, res2)
}

func TestRunMemoizesWeatherFetchesViaCache(t *testing.T) {
	fw := &fakeWeather{pv: 0.4, cooling: 1}
	p, err := New(fw)
	require.NoError(t, err)
	p.Cache = cache.NewMemory()

	req := Request{
		Lat: 10, Lon: 10, Households: 1, NumDays: 1,
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Seed:      2,
	}

	_, err = p.Run(context.Background(), req)
	require.NoError(t, err)
	firstCalls := fw.calls

	_, err = p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, firstCalls, fw.calls, "second run with identical key range should hit the cache, not refetch")
}
