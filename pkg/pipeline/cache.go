package pipeline

import (
	"context"
	"fmt"
	"time"
)

// cacheKey builds a memoization key for an external fetch, scoped by
// kind+location+date range so distinct runs against the same site reuse
// each other's fetches, per spec.md §5's memoization requirement. The key
// does not name the weather provider that served the data.
func cacheKey(kind string, lat, lon float64, start, end time.Time) string {
	return fmt.Sprintf("%s:%.4f:%.4f:%s:%s", kind, lat, lon, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (p *Pipeline) fetchPVOutput(ctx context.Context, lat, lon float64, start, end time.Time) ([]float64, error) {
	key := cacheKey("pv", lat, lon, start, end)
	var cached []float64
	if p.Cache != nil {
		if ok, err := p.Cache.Get(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	values, err := p.Weather.PVOutput(ctx, lat, lon, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch pv output: %w", err)
	}
	if p.Cache != nil {
		_ = p.Cache.Put(ctx, key, values)
	}
	return values, nil
}

func (p *Pipeline) fetchHeatingDemand(ctx context.Context, lat, lon float64, start, end time.Time) ([]float64, error) {
	key := cacheKey("heating", lat, lon, start, end)
	var cached []float64
	if p.Cache != nil {
		if ok, err := p.Cache.Get(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	values, err := p.Weather.HeatingDemand(ctx, lat, lon, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch heating demand: %w", err)
	}
	if p.Cache != nil {
		_ = p.Cache.Put(ctx, key, values)
	}
	return values, nil
}
