// Package pipeline wires the demand generator, weather adapters, and
// capacity optimizer into the single entry point external callers use —
// the Go equivalent of the original FastAPI handler's run() function,
// minus the HTTP facade itself (explicitly out of scope; see SPEC_FULL.md
// §1).
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plansize/plansize/pkg/cache"
	"github.com/plansize/plansize/pkg/capacity"
	"github.com/plansize/plansize/pkg/demand"
	"github.com/plansize/plansize/pkg/hydro"
	"github.com/plansize/plansize/pkg/log"
	"github.com/plansize/plansize/pkg/weather"
)

// Request is the pipeline's single public input, matching spec.md §6's
// entry signature: lat/lon/households/num_days/start_date, plus an
// explicit Seed — the one PRNG seed the whole run is threaded from (see
// SPEC_FULL.md §4, replacing the original's global mutable random state).
type Request struct {
	Lat        float64
	Lon        float64
	Households int
	NumDays    int
	StartDate  time.Time
	Seed       uint64
}

// Result is the pipeline's output: the optimized plant sizing plus its
// hourly dispatch trace and input series.
type Result struct {
	Capacity capacity.Plant `json:"capacity"`
	EPV      []float64      `json:"ePV"`
	EBatt    []float64      `json:"eBatt"`
	EDiesel  []float64      `json:"eDiesel"`
	CBatt    []float64      `json:"cBatt"`
	ELoad    []float64      `json:"eLoad"`
	EHydro   []float64      `json:"eHydro,omitempty"`
}

// Pipeline holds the external dependencies a Run needs: a weather
// provider (PV output + cooling demand) and a cache memoizing its
// responses, both injected rather than constructed internally so tests
// can swap in fakes. An optional HydroFlow lookup adds a hydro series to
// the result; without one, EHydro is simply omitted, since the real
// river-flow history table is external reference data this module never
// owns (see SPEC_FULL.md §4.8).
type Pipeline struct {
	Weather   weather.Provider
	Cache     cache.Store
	Table     demand.Table
	HydroFlow hydro.FlowLookup
}

// New builds a Pipeline with an in-memory cache and the embedded default
// appliance table, suitable for tests and simple callers. Production
// wiring (cmd/plansize) instead calls weather.ConfiguredDefault() and
// cache.Configured() directly.
func New(w weather.Provider) (*Pipeline, error) {
	table, err := demand.DefaultTable()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Pipeline{Weather: w, Cache: cache.NewMemory(), Table: table}, nil
}

// Run executes one full sizing pass: builds the settlement's load series,
// fetches (and memoizes) PV output and cooling demand, optionally expands
// the nearest hydro station's flow, and searches for the least-cost plant
// via differential evolution.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if req.Households <= 0 {
		return Result{}, fmt.Errorf("pipeline: households must be positive, got %d", req.Households)
	}
	if req.NumDays <= 0 {
		return Result{}, fmt.Errorf("pipeline: num_days must be positive, got %d", req.NumDays)
	}

	rng := rand.New(rand.NewPCG(req.Seed, req.Seed^0x9e3779b97f4a7c15))

	end := req.StartDate.AddDate(0, 0, req.NumDays-1)
	comparableStart := demand.ComparableDate(req.StartDate)
	comparableEnd := demand.ComparableDate(end)

	coolingDaily, err := p.fetchHeatingDemand(ctx, req.Lat, req.Lon, comparableStart, comparableEnd)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}
	coolingByDate := make(map[string]float64, len(coolingDaily))
	for i, v := range coolingDaily {
		d := comparableStart.AddDate(0, 0, i)
		coolingByDate[d.Format("2006-01-02")] = v
	}
	coolingIndex := func(date time.Time) float64 {
		key := demand.ComparableDate(date).Format("2006-01-02")
		if v, ok := coolingByDate[key]; ok {
			return v
		}
		return 1
	}

	eLoad, skipped, err := demand.BuildSettlementDemand(rng, p.Table, req.Households, req.StartDate, req.NumDays, coolingIndex)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}
	for _, s := range skipped {
		log.Ctx(ctx).WarnContext(ctx, "appliance skipped for day",
			"appliance", s.Name, "day", s.Day, "error", s.Err)
	}

	pvFactor, err := p.fetchPVOutput(ctx, req.Lat, req.Lon, req.StartDate, end)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}
	if len(pvFactor) > len(eLoad) {
		pvFactor = pvFactor[:len(eLoad)]
	}
	for len(pvFactor) < len(eLoad) {
		pvFactor = append(pvFactor, 0)
	}

	plant, trace := capacity.OptimizeCapacity(rng, eLoad, pvFactor)

	result := Result{
		Capacity: plant,
		EPV:      trace.EPV,
		EBatt:    trace.EBattery,
		EDiesel:  trace.EDiesel,
		CBatt:    trace.CBattery,
		ELoad:    trace.ELoad,
	}

	if p.HydroFlow != nil {
		station := hydro.Nearest(req.Lat, req.Lon)
		dailyNorms := make([]float64, 0, req.NumDays)
		for i := 0; i < req.NumDays; i++ {
			day := req.StartDate.AddDate(0, 0, i)
			key := demand.ComparableDate(day).Format("2006-01-02")
			if v, ok := p.HydroFlow(station.Number, key); ok {
				dailyNorms = append(dailyNorms, v)
			} else {
				dailyNorms = append(dailyNorms, 0)
			}
		}
		result.EHydro = hydro.ExpandDaily(dailyNorms)
	}

	return result, nil
}
