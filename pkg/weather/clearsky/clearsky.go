// Package clearsky implements weather.Provider with an offline synthetic
// PV/demand model derived from sun-position geometry instead of a real
// weather API, for local development and tests without network access. It
// is a distinct, explicitly-selected provider — never a silent fallback
// when the real provider fails, since ExternalFetchFailed must stay fatal
// at the boundary (spec.md §7).
package clearsky

import (
	"context"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Provider derives an hourly PV capacity factor from the sun's altitude
// above the horizon at each hour (clear-sky, no cloud or aerosol model),
// and a flat cooling-demand index.
type Provider struct {
	// FlatCoolingIndex is returned for every day's HeatingDemand call; the
	// offline provider has no real temperature data to derive seasonality
	// from.
	FlatCoolingIndex float64
}

// New returns a Provider with a reasonable default cooling index.
func New() *Provider {
	return &Provider{FlatCoolingIndex: 0.5}
}

// PVOutput returns sun-altitude-derived capacity factors for every hour of
// every day from start through end, inclusive.
func (p *Provider) PVOutput(_ context.Context, lat, lon float64, start, end time.Time) ([]float64, error) {
	var out []float64
	last := end.AddDate(0, 0, 1)
	for t := start; t.Before(last); t = t.Add(time.Hour) {
		pos := suncalc.GetPosition(t, lat, lon)
		altitude := pos.Altitude // radians above horizon
		if altitude < 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Sin(altitude))
	}
	return out, nil
}

// HeatingDemand returns FlatCoolingIndex for every day in [start, end].
func (p *Provider) HeatingDemand(_ context.Context, _, _ float64, start, end time.Time) ([]float64, error) {
	var out []float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, p.FlatCoolingIndex)
	}
	return out, nil
}
