// Package appliance models a single household appliance's stochastic
// energy-use behavior, ported from a RAMP-style minute-resolution load
// generator. Every type here is a plain value — no dynamically-keyed
// dictionaries and no mutable back-references to a parent user or use
// case, so a Params can be shared (read-only) across every user and day
// that owns one.
package appliance

import "fmt"

// MinutesPerDay is the resolution the whole package operates at: one
// sample per minute across a 24 hour day.
const MinutesPerDay = 1440

// DayType distinguishes weekday from weekend demand, the only calendar
// awareness this package has.
type DayType int

const (
	Weekday DayType = 0
	Weekend DayType = 1
)

// Window is an inclusive-exclusive range of minutes-of-day, e.g. {420, 540}
// is 07:00-09:00. A zero-width window ({0,0}) means "not used".
type Window struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

func (w Window) width() int { return w.End - w.Start }
func (w Window) empty() bool { return w.End <= w.Start }

// DutyCycle describes a two-phase on/off power pattern used in place of a
// flat power draw for appliances like refrigerators or water pumps:
// Power1 is held for a Share1 fraction of the cycle, Power2 for the rest.
// CW1/CW2 are the cycle's two eligibility windows (cw_i1/cw_i2 per the
// source model): a switch-on event may only use this cycle if it overlaps
// one of them. An empty window (the zero value) means "no time
// constraint configured" — the cycle is eligible for any event. Every
// appliance in the shipped table configures at most one duty cycle and
// never sets these, so multi-cycle selection only becomes reachable once
// an appliance definition configures more than one DutyCycle with
// distinct CW1/CW2 windows.
type DutyCycle struct {
	Power1 float64 `yaml:"power1" json:"power1"`
	Share1 float64 `yaml:"share1" json:"share1"`
	Power2 float64 `yaml:"power2" json:"power2"`
	Share2 float64 `yaml:"share2" json:"share2"`
	CW1    Window  `yaml:"cw1" json:"cw1"`
	CW2    Window  `yaml:"cw2" json:"cw2"`
}

// Params is the static, value-typed definition of one appliance belonging
// to a user's appliance set. It never changes once loaded and is safe to
// share across users, days, and goroutines (though this package issues no
// goroutines itself — see the concurrency notes in the pipeline package).
type Params struct {
	// Name identifies the appliance for logging and alias expansion, e.g.
	// "refrigerator" or "air conditioner".
	Name string `yaml:"name" json:"name"`

	// Number of physical units of this appliance a single user owns.
	Number int `yaml:"number" json:"number"`

	// PowerWatts is the appliance's power draw, in watts, one entry per
	// simulated day. A single entry means the power is constant across
	// every day and is broadcast by NormalizedPower.
	PowerWatts []float64 `yaml:"power_watts" json:"powerWatts"`

	// Windows bounds the minutes-of-day the appliance may switch on.
	// Window 3 is optional; an empty Window (Start==End==0) disables it.
	Windows [3]Window `yaml:"windows" json:"windows"`

	// RandomWindowVariability jitters each window's edges by up to this
	// fraction of the window's width, independently per day.
	RandomWindowVariability float64 `yaml:"random_window_variability" json:"randomWindowVariability"`

	// FuncTimeMinutes is the appliance's average total minutes of use per
	// day; FuncCycleMinutes is the minimum contiguous run length a single
	// switch-on event may have.
	FuncTimeMinutes  int `yaml:"func_time_minutes" json:"funcTimeMinutes"`
	FuncCycleMinutes int `yaml:"func_cycle_minutes" json:"funcCycleMinutes"`

	// TimeFractionRandomVariability jitters FuncTimeMinutes per day.
	TimeFractionRandomVariability float64 `yaml:"time_fraction_random_variability" json:"timeFractionRandomVariability"`

	// OccasionalUse is the probability, per day, that the appliance is
	// used at all. 1.0 means it's used every day.
	OccasionalUse float64 `yaml:"occasional_use" json:"occasionalUse"`

	// Flat appliances (e.g. lighting) draw Number*PowerWatts for the
	// entirety of every randomized window, with no further switch-on
	// search and no thermal jitter.
	Flat bool `yaml:"flat" json:"flat"`

	// Fixed appliances (e.g. a fixed refrigerator compressor) always have
	// every unit switched on simultaneously; coincidence sampling is
	// skipped.
	Fixed bool `yaml:"fixed" json:"fixed"`

	// DutyCycles holds up to three duty-cycle phases; len(DutyCycles)
	// duty cycles are in effect (0 means the appliance draws flat power
	// per switch-on event instead of cycling).
	DutyCycles []DutyCycle `yaml:"duty_cycles" json:"dutyCycles"`

	// ThermalPowerVariance jitters switch-on event power and duty-cycle
	// power levels by this fraction, simulating thermostat behavior.
	ThermalPowerVariance float64 `yaml:"thermal_power_variance" json:"thermalPowerVariance"`

	// ContinuousDutyCycle, if true, truncates a switch-on event's duty
	// cycle pattern to DutyCycleDuration minutes when the event is
	// longer; if the event is shorter, the pattern is used as-is (not
	// padded) — see the open question this preserves in DESIGN.md.
	ContinuousDutyCycle bool `yaml:"continuous_duty_cycle" json:"continuousDutyCycle"`
	DutyCycleDuration   int  `yaml:"duty_cycle_duration" json:"dutyCycleDuration"`

	// WeekdayWeekend restricts the appliance to one DayType; nil means no
	// restriction (used on both weekdays and weekends).
	WeekdayWeekend *DayType `yaml:"weekday_weekend,omitempty" json:"weekdayWeekend,omitempty"`

	// PreferenceIndex, when non-zero, must match the owning user's
	// preference index for the appliance to be used that day at all
	// (models per-household taste variation for appliances like radios).
	PreferenceIndex int `yaml:"preference_index" json:"preferenceIndex"`
}

// switchOnParameters are the fixed coincidence-sampling shape parameters
// from the original model; they aren't appliance-specific so they live as
// package constants rather than per-appliance fields.
const (
	peakCoincidenceMu    = 0.5
	peakCoincidenceSigma = 0.5
	offPeakFactor        = 0.5
)

// Validate checks that the appliance's windows can possibly contain its
// functioning time, matching the load-time check the original model makes
// before ever drawing a random number. A failure here is the
// InvalidAppliance error kind: fatal at load, never during simulation.
func (p Params) Validate() error {
	total := 0
	for _, w := range p.Windows {
		if w.empty() {
			continue
		}
		if w.Start < 0 || w.End > MinutesPerDay || w.Start > w.End {
			return fmt.Errorf("%w: appliance %q has an out-of-range window %v", ErrInvalidWindows, p.Name, w)
		}
		total += w.width()
	}
	if total < p.FuncTimeMinutes {
		return fmt.Errorf("%w: appliance %q windows total %d minutes, less than func_time %d",
			ErrInvalidWindows, p.Name, total, p.FuncTimeMinutes)
	}
	if p.FuncCycleMinutes > p.FuncTimeMinutes && p.FuncTimeMinutes > 0 {
		return fmt.Errorf("%w: appliance %q func_cycle %d exceeds func_time %d",
			ErrInvalidWindows, p.Name, p.FuncCycleMinutes, p.FuncTimeMinutes)
	}
	if len(p.DutyCycles) > 3 {
		return fmt.Errorf("%w: appliance %q declares %d duty cycles, max 3", ErrInvalidWindows, p.Name, len(p.DutyCycles))
	}
	return nil
}

// NormalizedPower returns the appliance's power draw for day index day
// (0-based). If PowerWatts has a single entry, it's broadcast across every
// day, matching the original's check_power_values behavior for constant
// power appliances. A multi-entry PowerWatts shorter than day+1 is an
// error: the original raises ValueError rather than guessing.
func (p Params) NormalizedPower(day int) (float64, error) {
	if len(p.PowerWatts) == 0 {
		return 0, fmt.Errorf("%w: appliance %q", ErrNoPowerSamples, p.Name)
	}
	if len(p.PowerWatts) == 1 {
		return p.PowerWatts[0], nil
	}
	if day >= len(p.PowerWatts) {
		return 0, fmt.Errorf("%w: appliance %q has %d power samples, need day %d", ErrNoPowerSamples, p.Name, len(p.PowerWatts), day)
	}
	return p.PowerWatts[day], nil
}

// MaximumProfile returns a theoretical, non-random upper bound on the
// appliance's minute-by-minute draw for the day, used only to calibrate
// the settlement's peak time window (see demand.UseCase.PeakTimeRange): 1 over the
// union of the appliance's declared windows, scaled by Number*power —
// matching the original's daily_use * mean(power) * number over the
// windows, with no additional func_time-derived weighting.
func (p Params) MaximumProfile(day int) ([MinutesPerDay]float64, error) {
	var profile [MinutesPerDay]float64
	power, err := p.NormalizedPower(day)
	if err != nil {
		return profile, err
	}
	val := power * float64(p.Number)
	for _, w := range p.Windows {
		if w.empty() {
			continue
		}
		for m := w.Start; m < w.End; m++ {
			profile[m] = val
		}
	}
	return profile, nil
}
