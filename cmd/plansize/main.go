// Command plansize runs the capacity sizing pipeline once and prints the
// result as JSON. It is explicitly not an HTTP facade — that's out of
// scope (see SPEC_FULL.md §1) — just a thin wrapper the way
// cmd/raterudder wraps the teacher's server package.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/levenlabs/go-lflag"
	"github.com/levenlabs/go-llog"
	"github.com/plansize/plansize/pkg/cache"
	"github.com/plansize/plansize/pkg/demand"
	"github.com/plansize/plansize/pkg/log"
	"github.com/plansize/plansize/pkg/pipeline"
	"github.com/plansize/plansize/pkg/weather"
)

func main() {
	// Load RENEWABLES_NINJA_API_TOKEN and friends from a .env file if
	// present, mirroring the original's load_dotenv() call. A missing
	// .env isn't fatal — flags and the real environment still work.
	_ = godotenv.Load()

	latFlag := lflag.String("lat", "0", "Site latitude")
	lonFlag := lflag.String("lon", "0", "Site longitude")
	householdsFlag := lflag.String("households", "50", "Number of households in the settlement")
	numDaysFlag := lflag.String("num-days", "7", "Number of days to simulate")
	startDate := lflag.String("start-date", "", "Start date (YYYY-MM-DD), defaults to today")
	seedFlag := lflag.String("seed", "1", "PRNG seed; same seed + inputs reproduce the same result")
	cacheProvider := lflag.String("cache-provider", "memory", "External fetch cache (available: memory, firestore)")

	w := weather.ConfiguredDefault()

	var fsCache *cache.Firestore
	if *cacheProvider == "firestore" {
		fsCache = cache.Configured()
	}

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

	var level slog.Level
	switch llog.GetLevel() {
	case llog.DebugLevel:
		level = slog.LevelDebug
	case llog.InfoLevel:
		level = slog.LevelInfo
	case llog.WarnLevel:
		level = slog.LevelWarn
	case llog.ErrorLevel:
		level = slog.LevelError
	default:
		panic(fmt.Errorf("unknown log level: %s", llog.GetLevel().String()))
	}
	log.SetDefaultLogLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	table, err := demand.DefaultTable()
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to load appliance table", "error", err)
		os.Exit(1)
	}

	var store cache.Store = cache.NewMemory()
	if fsCache != nil {
		if err := fsCache.Init(ctx); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to init firestore cache", "error", err)
			os.Exit(1)
		}
		defer fsCache.Close()
		store = fsCache
	}

	start := time.Now()
	if *startDate != "" {
		parsed, err := time.Parse("2006-01-02", *startDate)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "invalid start-date", "error", err)
			os.Exit(1)
		}
		start = parsed
	}

	p := &pipeline.Pipeline{Weather: w, Cache: store, Table: table}
	result, err := p.Run(ctx, pipeline.Request{
		Lat:        lat,
		Lon:        lon,
		Households: households,
		NumDays:    numDays,
		StartDate:  start,
		Seed:       uint64(seed),
	})
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "pipeline run failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to encode result", "error", err)
		os.Exit(1)
	}
}
