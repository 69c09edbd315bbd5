package demand

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plansize/plansize/pkg/appliance"
	"gonum.org/v1/gonum/stat/distuv"
)

// peakWindowEnlargeFactor scales how far the sampled peak time can widen
// into a window, mirroring the original model's peak_enlarge constant.
const peakWindowEnlargeFactor = 0.35

// User is one household: a fixed set of appliances it owns (each itself a
// value-typed appliance.Params — no shared mutable appliance state between
// households) plus how many identical copies of it NumUsers stands for
// (each copy draws its own daily profile) and its taste "preference
// index", used to gate preference-locked appliances like a radio.
type User struct {
	Appliances      []appliance.Params `json:"appliances"`
	NumUsers        int                `json:"numUsers"`
	PreferenceIndex int                `json:"preferenceIndex"`
}

// MaximumProfile returns the user's theoretical upper-bound minute profile
// for day, summed across every appliance and scaled by NumUsers, used only
// to calibrate the household's peak time window.
func (u User) MaximumProfile(day int) ([appliance.MinutesPerDay]float64, error) {
	var total [appliance.MinutesPerDay]float64
	for _, a := range u.Appliances {
		prof, err := a.MaximumProfile(day)
		if err != nil {
			return total, err
		}
		for i, v := range prof {
			total[i] += v
		}
	}
	for i := range total {
		total[i] *= float64(u.NumUsers)
	}
	return total, nil
}

// UseCase is a settlement: every household sharing the same calibrated
// peak-demand window for the run.
type UseCase struct {
	Users []User `json:"users"`
}

// PeakTimeRange calibrates the household-wide peak demand window for day,
// summing every user's maximum profile, finding where it peaks, and
// sampling a randomized window around that peak the same way the original
// model's calc_peak_time_range does: a normally distributed peak time
// centered on the theoretical peak, then randomly enlarged.
func (uc UseCase) PeakTimeRange(rng *rand.Rand, day int) (appliance.PeakWindow, error) {
	var total [appliance.MinutesPerDay]float64
	for _, u := range uc.Users {
		prof, err := u.MaximumProfile(day)
		if err != nil {
			return appliance.PeakWindow{}, fmt.Errorf("demand: peak time range: %w", err)
		}
		for i, v := range prof {
			total[i] += v
		}
	}

	maxVal := total[0]
	for _, v := range total {
		if v > maxVal {
			maxVal = v
		}
	}
	first, last := -1, -1
	for i, v := range total {
		if v == maxVal {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return appliance.PeakWindow{}, nil
	}

	mu := float64(first+last) / 2
	sigma := float64(last-first) / 3
	peakTime := int(math.Round(normalDrawUseCase(rng, mu, sigma)))

	enlargeSample := normalDrawUseCase(rng, float64(peakTime), peakWindowEnlargeFactor*float64(peakTime))
	enlarge := int(math.Round(math.Abs(float64(peakTime) - enlargeSample)))
	if enlarge < 1 {
		enlarge = 1
	}

	return appliance.PeakWindow{Start: peakTime - enlarge, End: peakTime + enlarge}, nil
}

// GenerateDailyLoadProfiles returns the settlement's total minute-resolution
// demand (in watts) for day, summing every user's appliances' daily
// profiles, drawn afresh for each of the user's NumUsers copies.
// InsufficientWindow failures for individual appliances are
// reported to the caller for logging and otherwise treated as a zero
// contribution for that appliance-day, not a fatal error for the run.
func (uc UseCase) GenerateDailyLoadProfiles(rng *rand.Rand, day int, dayType appliance.DayType, peak appliance.PeakWindow, onSkipped func(applianceName string, err error)) [appliance.MinutesPerDay]float64 {
	var total [appliance.MinutesPerDay]float64
	for _, u := range uc.Users {
		for n := 0; n < u.NumUsers; n++ {
			for _, a := range u.Appliances {
				prof, err := a.DailyProfile(rng, day, dayType, u.PreferenceIndex, peak)
				if err != nil {
					if onSkipped != nil {
						onSkipped(a.Name, err)
					}
					continue
				}
				for i, v := range prof {
					total[i] += v
				}
			}
		}
	}
	return total
}

// source adapts math/rand/v2's *rand.Rand to gonum's rand.Source interface
// so distuv draws here thread through the same explicit PRNG handle every
// other stochastic call in the pipeline uses.
type source struct{ rng *rand.Rand }

func (s source) Uint64() uint64 { return s.rng.Uint64() }

// Seed is a no-op: source never owns the PRNG state, only borrows it, so
// there is nothing to (re-)seed. It exists purely to satisfy
// golang.org/x/exp/rand.Source, which distuv.Normal.Src requires.
func (s source) Seed(uint64) {}

func normalDrawUseCase(rng *rand.Rand, mu, sigma float64) float64 {
	if sigma <= 0 {
		return mu
	}
	n := distuv.Normal{Mu: mu, Sigma: sigma, Src: source{rng}}
	return n.Rand()
}
