package demand

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/plansize/plansize/pkg/appliance"
)

// SkippedAppliance records a single appliance-day that came back with
// ErrInsufficientWindow (or another non-fatal DailyProfile error) so the
// caller can log it without aborting the whole settlement build, matching
// spec.md §7's InsufficientWindow handling.
type SkippedAppliance struct {
	Household int
	Day       int
	Name      string
	Err       error
}

// CoolingIndex returns the seasonal cooling-demand scaling factor in
// effect for date (BuildSettlementDemand caps values above 1 to 1), used to de-rate
// seasonal appliances like air conditioners and fans the same way the
// original model multiplies their power by min(cooling_demand, 1).
type CoolingIndex func(date time.Time) float64

// BuildSettlementDemand is the Go port of build_settlement_demand: it
// Bernoulli-samples which appliances each household owns (once, up front —
// ownership doesn't change day to day, only behavior does), then for each
// day builds a fresh UseCase reflecting that day's seasonal scaling and
// draws a minute profile, returning the settlement's total hourly demand
// in kWh across the whole horizon.
func BuildSettlementDemand(
	rng *rand.Rand,
	table Table,
	households int,
	dateStart time.Time,
	numDays int,
	cooling CoolingIndex,
) ([]float64, []SkippedAppliance, error) {
	ownership := sampleOwnership(rng, table, households)
	dates := DateRange(dateStart, numDays)

	hourly := make([]float64, 0, numDays*24)
	var skipped []SkippedAppliance
	var peak appliance.PeakWindow
	havePeak := false

	for day, date := range dates {
		dayType := GetDayType(date)
		coolingFactor := 1.0
		if cooling != nil {
			coolingFactor = cooling(date)
			if coolingFactor > 1 {
				coolingFactor = 1
			}
		}

		uc, err := buildDayUseCase(table, ownership, coolingFactor)
		if err != nil {
			return nil, nil, err
		}

		if !havePeak {
			peak, err = uc.PeakTimeRange(rng, 0)
			if err != nil {
				return nil, nil, err
			}
			havePeak = true
		}

		onSkipped := func(name string, err error) {
			skipped = append(skipped, SkippedAppliance{Household: -1, Day: day, Name: name, Err: err})
		}
		profile := uc.GenerateDailyLoadProfiles(rng, 0, dayType, peak, onSkipped)
		hourly = append(hourly, minuteProfileToHourlyKWh(profile)...)
	}

	return hourly, skipped, nil
}

// sampleOwnership Bernoulli-samples, per household and per occurrence
// table entry, whether that household owns the appliance at all. Names
// are visited in sorted order rather than Go's randomized map-iteration
// order, so the PRNG draws (and therefore every downstream result) are
// reproducible for a given seed, per spec.md §5.
func sampleOwnership(rng *rand.Rand, table Table, households int) [][]string {
	names := make([]string, 0, len(table.Occurrence))
	for name := range table.Occurrence {
		names = append(names, name)
	}
	sort.Strings(names)

	owned := make([][]string, households)
	for h := 0; h < households; h++ {
		for _, name := range names {
			if rng.Float64() < table.Occurrence[name] {
				owned[h] = append(owned[h], name)
			}
		}
	}
	return owned
}

func buildDayUseCase(table Table, ownership [][]string, coolingFactor float64) (UseCase, error) {
	users := make([]User, len(ownership))
	for h, names := range ownership {
		var u User
		u.NumUsers = 1
		u.PreferenceIndex = (h % 2) + 1
		for _, name := range names {
			defs, err := table.Expand(name)
			if err != nil {
				return UseCase{}, err
			}
			seasonal := table.Seasonal[name]
			for _, d := range defs {
				if seasonal {
					scaled := make([]float64, len(d.PowerWatts))
					for i, w := range d.PowerWatts {
						scaled[i] = w * coolingFactor
					}
					d.PowerWatts = scaled
				}
				u.Appliances = append(u.Appliances, d)
			}
		}
		users[h] = u
	}
	return UseCase{Users: users}, nil
}

// minuteProfileToHourlyKWh bins a 1440-minute watt profile into 24 hourly
// kWh figures: sum of watts across the hour's 60 minutes, averaged over
// the hour and converted from W to kW.
func minuteProfileToHourlyKWh(profile [appliance.MinutesPerDay]float64) []float64 {
	hours := make([]float64, 24)
	for h := 0; h < 24; h++ {
		sum := 0.0
		for m := h * 60; m < (h+1)*60; m++ {
			sum += profile[m]
		}
		hours[h] = sum / 60 / 1000
	}
	return hours
}
