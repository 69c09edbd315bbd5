// Package weather defines the external PV-output and heating/cooling
// demand data boundary the pipeline depends on, plus the registry of
// concrete providers that implement it. Nothing in this package models
// real solar physics or weather — that's explicitly out of scope (see
// SPEC_FULL.md §1) — it only adapts whatever a real provider returns into
// the shape the rest of this module consumes.
package weather

import (
	"context"
	"time"
)

// Provider is the external data boundary for PV generation and
// heating/cooling demand, mirroring the original model's get_pv_output and
// get_heating_demand calls. Implementations may hit a real HTTP API
// (renewableninja) or synthesize offline data (clearsky); either way,
// ExternalFetchFailed propagates to the caller as a plain error — this
// package performs no retries (spec.md §7).
type Provider interface {
	// PVOutput returns a per-kW PV capacity factor for every hour of every
	// day from start through end, inclusive (24 values per day).
	PVOutput(ctx context.Context, lat, lon float64, start, end time.Time) ([]float64, error)

	// HeatingDemand returns a daily cooling-demand index for every day in
	// [start, end]. Values are not capped here; demand.BuildSettlementDemand
	// caps them at 1.
	HeatingDemand(ctx context.Context, lat, lon float64, start, end time.Time) ([]float64, error)
}
