// Command seed generates a synthetic household/appliance demand fixture
// for local development and tests, without hitting any external weather
// API. It's the offline counterpart to cmd/plansize: same demand.Table
// and BuildSettlementDemand call, but PV/cooling data comes from the
// clearsky provider instead of Renewable Ninja.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/plansize/plansize/pkg/demand"
	"github.com/plansize/plansize/pkg/weather/clearsky"
)

type fixture struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Households int       `json:"households"`
	NumDays    int       `json:"numDays"`
	ELoad      []float64 `json:"eLoad"`
	EPV        []float64 `json:"ePV"`
}

func main() {
	latFlag := lflag.String("lat", "21.9", "Site latitude")
	lonFlag := lflag.String("lon", "95.9", "Site longitude")
	householdsFlag := lflag.String("households", "20", "Number of households")
	numDaysFlag := lflag.String("num-days", "3", "Number of days to simulate")
	seedFlag := lflag.String("seed", "1", "PRNG seed")
	out := lflag.String("out", "", "Output file path; empty means stdout")

	var lat, lon float64
	var households, numDays, seed int
	lflag.Do(func() {
		var err error
		if lat, err = strconv.ParseFloat(*latFlag, 64); err != nil {
			panic(fmt.Errorf("invalid -lat %q: %w", *latFlag, err))
		}
		if lon, err = strconv.ParseFloat(*lonFlag, 64); err != nil {
			panic(fmt.Errorf("invalid -lon %q: %w", *lonFlag, err))
		}
		if households, err = strconv.Atoi(*householdsFlag); err != nil {
			panic(fmt.Errorf("invalid -households %q: %w", *householdsFlag, err))
		}
		if numDays, err = strconv.Atoi(*numDaysFlag); err != nil {
			panic(fmt.Errorf("invalid -num-days %q: %w", *numDaysFlag, err))
		}
		if seed, err = strconv.Atoi(*seedFlag); err != nil {
			panic(fmt.Errorf("invalid -seed %q: %w", *seedFlag, err))
		}
	})

	lflag.Configure()

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	table, err := demand.DefaultTable()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load appliance table:", err)
		os.Exit(1)
	}

	start := time.Now().Truncate(24 * time.Hour)
	sky := clearsky.New()

	cooling := func(d time.Time) float64 {
		vals, err := sky.HeatingDemand(ctx, lat, lon, d, d)
		if err != nil || len(vals) == 0 {
			return 1
		}
		return vals[0]
	}

	eLoad, skipped, err := demand.BuildSettlementDemand(rng, table, households, start, numDays, cooling)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build settlement demand:", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "skipped appliance %q on day %d: %v\n", s.Name, s.Day, s.Err)
	}

	ePV, err := sky.PVOutput(ctx, lat, lon, start, start.AddDate(0, 0, numDays-1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to derive pv output:", err)
		os.Exit(1)
	}

	fx := fixture{
		Lat:        lat,
		Lon:        lon,
		Households: households,
		NumDays:    numDays,
		ELoad:      eLoad,
		EPV:        ePV,
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to create output file:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to write fixture:", err)
		os.Exit(1)
	}
}
