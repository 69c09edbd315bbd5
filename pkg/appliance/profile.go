package appliance

import (
	"math"
	"math/rand/v2"
)

// maxSwitchOnAttempts bounds the retry loop that replaces the original
// model's unbounded recursion in rand_switch_on_window: when a candidate
// switch-on event doesn't land inside any configured duty-cycle window, the
// original re-calls itself indefinitely. A bounded loop can't stack
// overflow on a pathological appliance table.
const maxSwitchOnAttempts = 32

// PeakWindow is the household-wide peak time range calibrated once per run
// by demand.UseCase.PeakTimeRange and reused for every simulated day.
type PeakWindow struct {
	Start, End int
}

func (w PeakWindow) overlaps(start, end int) bool {
	if w.Start == 0 && w.End == 0 {
		return false
	}
	// range_within_window's overlap test, negated: NOT (entirely before OR entirely after).
	return !((start < w.Start && end < w.Start) || (start > w.End && end > w.End))
}

// DailyProfile draws one simulated day's minute-resolution power profile
// for a single appliance, threading every random draw through rng. An
// appliance that doesn't run today (gated off, wrong day type, wrong
// preference, or zero functioning time) returns an all-zero profile and a
// nil error — that's a legitimate outcome, not ErrInsufficientWindow.
func (p Params) DailyProfile(rng *rand.Rand, day int, dayType DayType, userPreferenceIndex int, peak PeakWindow) ([MinutesPerDay]float64, error) {
	var profile [MinutesPerDay]float64

	if p.OccasionalUse < 1 && rng.Float64() > p.OccasionalUse {
		return profile, nil
	}
	if p.PreferenceIndex != 0 && p.PreferenceIndex != userPreferenceIndex {
		return profile, nil
	}
	if p.WeekdayWeekend != nil && *p.WeekdayWeekend != dayType {
		return profile, nil
	}
	if p.FuncTimeMinutes == 0 {
		return profile, nil
	}

	power, err := p.NormalizedPower(day)
	if err != nil {
		return profile, err
	}

	var windows [3]Window
	for i, w := range p.Windows {
		if w.empty() {
			continue
		}
		windows[i] = p.calcRandWindow(rng, w)
	}

	randTime, err := p.randTotalTimeOfUse(rng, windows)
	if err != nil {
		return profile, err
	}
	if randTime == 0 {
		return profile, nil
	}

	if p.Flat {
		for _, w := range windows {
			if w.empty() {
				continue
			}
			for m := w.Start; m < w.End; m++ {
				profile[m] = power * float64(p.Number)
			}
		}
		return profile, nil
	}

	cycles := buildCycles(rng, p)

	var freeSpots []span
	for _, w := range windows {
		if w.empty() {
			continue
		}
		freeSpots = append(freeSpots, span{w.Start, w.End})
	}

	totalTime := 0
	for totalTime <= randTime {
		if totalFree(freeSpots, p.FuncCycleMinutes) == 0 {
			break
		}
		ev, cycleIdx, hasCycle, err := p.randSwitchOnWindow(rng, freeSpots, randTime-totalTime)
		if err != nil {
			break
		}
		length := ev.len()
		if totalTime+length > randTime {
			length = randTime - totalTime
		}
		insidePeak := peak.overlaps(ev.start, ev.start+length)
		coincidence := p.calcCoincidentSwitchOn(rng, insidePeak)
		p.writeEvent(&profile, cycles, cycleIdx, hasCycle, ev.start, length, coincidence, power, rng)

		freeSpots = removeSpan(freeSpots, ev.start, ev.len())
		totalTime += length
	}

	if totalTime == 0 {
		return profile, ErrInsufficientWindow
	}
	return profile, nil
}

// calcRandWindow jitters a window's edges by up to randomWindowVariability
// of its width, clipped back into [0, MinutesPerDay].
func (p Params) calcRandWindow(rng *rand.Rand, w Window) Window {
	v := int(p.RandomWindowVariability * float64(w.width()))
	start := clampInt(uniformInt(rng, w.Start-v, w.Start+v+1), 0, MinutesPerDay)
	end := clampInt(uniformInt(rng, w.End-v, w.End+v+1), 0, MinutesPerDay)
	if end < start {
		start, end = end, start
	}
	return Window{Start: start, End: end}
}

// randTotalTimeOfUse draws the day's actual total minutes of use, jittered
// around FuncTimeMinutes but bounded by the randomized windows' combined
// width and floored at FuncCycleMinutes.
func (p Params) randTotalTimeOfUse(rng *rand.Rand, windows [3]Window) (int, error) {
	variation := randomVariation(rng, p.TimeFractionRandomVariability, 1)
	randTime := roundToInt(uniformFloat(rng, float64(p.FuncTimeMinutes), float64(p.FuncTimeMinutes)*variation))
	if randTime < p.FuncCycleMinutes {
		randTime = p.FuncCycleMinutes
	}

	total := 0
	for _, w := range windows {
		total += w.width()
	}
	cap := int(0.99 * float64(total))
	if randTime > cap {
		randTime = cap
	}
	if randTime < p.FuncCycleMinutes {
		return 0, ErrInsufficientWindow
	}
	return randTime, nil
}

// randSwitchOnWindow picks one valid switch-on event: a uniformly chosen
// start minute among every free spot long enough to host FuncCycleMinutes,
// with a duration bounded by remaining time-of-use and by the spot's
// remaining length. If duty cycles are configured, the event must land in
// one of their CW1/CW2 windows — selectDutyCycle reports which cycle, if
// any — or the draw is retried, up to maxSwitchOnAttempts times, the
// bounded replacement for the original's unbounded recursive re-draw on a
// duty-cycle miss. cycleIdx/hasCycle are meaningless when hasCycle is
// false (no duty cycles configured at all).
func (p Params) randSwitchOnWindow(rng *rand.Rand, freeSpots []span, remaining int) (ev span, cycleIdx int, hasCycle bool, err error) {
	for attempt := 0; attempt < maxSwitchOnAttempts; attempt++ {
		candidate, ok := p.drawOneSwitchOn(rng, freeSpots, remaining)
		if !ok {
			return span{}, 0, false, ErrInsufficientWindow
		}
		if len(p.DutyCycles) == 0 {
			return candidate, 0, false, nil
		}
		if idx, sel := p.selectDutyCycle(candidate.start, candidate.start+candidate.len()); sel {
			return candidate, idx, true, nil
		}
	}
	return span{}, 0, false, ErrInsufficientWindow
}

func (p Params) drawOneSwitchOn(rng *rand.Rand, freeSpots []span, remaining int) (span, bool) {
	var candidates []span
	for _, s := range freeSpots {
		if s.len() >= p.FuncCycleMinutes {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return span{}, false
	}
	// Weighted pick proportional to each candidate's width, then a
	// uniform start within it, matching indexes_choice covering every
	// valid start position in the original.
	total := 0
	for _, s := range candidates {
		total += s.len() - p.FuncCycleMinutes + 1
	}
	if total <= 0 {
		return span{}, false
	}
	pick := rng.IntN(total)
	var chosen span
	for _, s := range candidates {
		width := s.len() - p.FuncCycleMinutes + 1
		if pick < width {
			chosen = span{start: s.start + pick, stop: s.stop}
			break
		}
		pick -= width
	}

	largest := chosen.len()
	if remaining < largest {
		largest = remaining
	}
	var duration int
	switch {
	case largest > p.FuncCycleMinutes:
		duration = uniformInt(rng, p.FuncCycleMinutes, largest+1)
	case largest == p.FuncCycleMinutes:
		duration = p.FuncCycleMinutes
	default:
		return span{}, false
	}
	return span{start: chosen.start, stop: chosen.start + duration}, true
}

// calcCoincidentSwitchOn decides how many of the appliance's Number units
// turn on together for this event.
func (p Params) calcCoincidentSwitchOn(rng *rand.Rand, insidePeak bool) int {
	if p.Fixed {
		return p.Number
	}
	n := float64(p.Number)
	if insidePeak {
		mu := n * peakCoincidenceMu
		sigma := peakCoincidenceSigma * n * peakCoincidenceMu
		c := int(math.Ceil(normalDraw(rng, mu, sigma)))
		if c < 1 {
			c = 1
		}
		if c > p.Number {
			c = p.Number
		}
		return c
	}
	prob := uniformFloat(rng, 0, (n-offPeakFactor)/n)
	for i := p.Number; i >= 1; i-- {
		if prob >= float64(i-1)/n {
			return i
		}
	}
	return 1
}

// writeEvent writes one switch-on event's power into the daily profile.
// When hasCycle is true (randSwitchOnWindow matched this event to
// cycles[cycleIdx] via its CW1/CW2 window), it samples that cycle's power
// shape, truncating it to DutyCycleDuration when ContinuousDutyCycle is
// set and the event outlasts it — the original never pads a *shorter*
// event, a deliberately preserved quirk documented in DESIGN.md. Otherwise
// it jitters a flat thermal power draw.
func (p Params) writeEvent(profile *[MinutesPerDay]float64, cycles []resolvedCycle, cycleIdx int, hasCycle bool, start, length int, coincidence int, power float64, rng *rand.Rand) {
	limit := length
	if hasCycle && p.ContinuousDutyCycle && limit > p.DutyCycleDuration {
		limit = p.DutyCycleDuration
	}
	if hasCycle {
		c := cycles[cycleIdx]
		for i := 0; i < limit; i++ {
			m := start + i
			if m >= MinutesPerDay {
				break
			}
			profile[m] = c.at(i) * float64(coincidence)
		}
		return
	}
	for i := 0; i < limit; i++ {
		m := start + i
		if m >= MinutesPerDay {
			break
		}
		profile[m] = randomVariation(rng, p.ThermalPowerVariance, float64(coincidence)*power)
	}
}
