package appliance

import "math/rand/v2"

// resolvedCycle is one day's concrete realization of a DutyCycle: a
// sequence of per-minute power levels in watts (per unit, before the
// coincidence factor) that repeats for as long as a switch-on event lasts.
// Building it once per cycle per day mirrors the original model drawing
// random_cycle1/2/3 once at the start of generate_load_profile rather than
// re-rolling on every switch-on event.
type resolvedCycle []float64

// buildCycles resolves every configured DutyCycle into one resolvedCycle,
// jittering each phase's power level by ThermalPowerVariance and both
// phases' durations via randomVariation with the sign of the variability
// flipped — duty_cycle(var=-var, ...) in the original, preserved here
// rather than "fixed" because random_variation's reversed bounds are
// deliberate (see DESIGN.md).
func buildCycles(rng *rand.Rand, p Params) []resolvedCycle {
	if len(p.DutyCycles) == 0 {
		return nil
	}
	cycles := make([]resolvedCycle, len(p.DutyCycles))
	for i, dc := range p.DutyCycles {
		dc.Power1 = randomVariation(rng, p.ThermalPowerVariance, dc.Power1)
		dc.Power2 = randomVariation(rng, p.ThermalPowerVariance, dc.Power2)
		cycles[i] = buildOneCycle(rng, p.RandomWindowVariability, dc)
	}
	// If exactly 3 duty cycles are configured, each cycle's two phases are
	// swapped with probability 0.5, so its second phase may come first.
	if len(cycles) == 3 {
		for i, c := range cycles {
			if rng.Float64() < 0.5 {
				split := 1
				for split < len(c) && c[split] == c[0] {
					split++
				}
				cycles[i] = append(append(resolvedCycle{}, c[split:]...), c[:split]...)
			}
		}
	}
	return cycles
}

func buildOneCycle(rng *rand.Rand, windowVariability float64, dc DutyCycle) resolvedCycle {
	t1 := roundToInt(randomVariation(rng, -windowVariability, dc.Share1*100))
	t2 := roundToInt(randomVariation(rng, -windowVariability, dc.Share2*100))
	if t1 < 1 {
		t1 = 1
	}
	if t2 < 1 {
		t2 = 1
	}
	out := make(resolvedCycle, 0, t1+t2)
	for i := 0; i < t1; i++ {
		out = append(out, dc.Power1)
	}
	for i := 0; i < t2; i++ {
		out = append(out, dc.Power2)
	}
	return out
}

// at returns the cycle's power level for the minute-th sample into a
// switch-on event, wrapping around if the event outlasts one cycle period.
func (c resolvedCycle) at(minute int) float64 {
	if len(c) == 0 {
		return 0
	}
	return c[minute%len(c)]
}

// windowOverlaps reports whether [start, end) overlaps w, using the same
// overlap test as PeakWindow.overlaps: not (entirely before OR entirely
// after). An empty w never overlaps anything.
func windowOverlaps(w Window, start, end int) bool {
	if w.empty() {
		return false
	}
	return !((start < w.Start && end < w.Start) || (start > w.End && end > w.End))
}

// eligible reports whether dc may be used for a switch-on event spanning
// [start, end). A DutyCycle with no CW1/CW2 configured has no time
// constraint and is always eligible.
func (dc DutyCycle) eligible(start, end int) bool {
	if dc.CW1.empty() && dc.CW2.empty() {
		return true
	}
	return windowOverlaps(dc.CW1, start, end) || windowOverlaps(dc.CW2, start, end)
}

// selectDutyCycle picks the configured duty cycle (by index into
// Params.DutyCycles) whose CW1/CW2 window overlaps [start, end), matching
// spec's "pick the cycle whose window pair overlaps the event range"
// rule. ok is false if DutyCycles is empty or none of them are eligible —
// the caller must re-draw the event rather than default to one.
func (p Params) selectDutyCycle(start, end int) (idx int, ok bool) {
	for i, dc := range p.DutyCycles {
		if dc.eligible(start, end) {
			return i, true
		}
	}
	return 0, false
}
