package demand

import (
	"time"

	"github.com/plansize/plansize/pkg/appliance"
)

// comparableDateOffsetDays is the original model's "comparable date" rule:
// subtract this many days to land on the same weekday one year prior
// (364 = 52*7) rather than a true calendar year (365), so seasonal
// weather/demand lookups line up by day-of-week instead of by date. This
// is one of spec.md's flagged open questions — possibly an off-by-one
// against the intended "same date last year" semantics — preserved as-is
// per the decision recorded in DESIGN.md.
const comparableDateOffsetDays = 364

// ComparableDate returns the date used to look up a year-ago weather/demand
// sample for date.
func ComparableDate(date time.Time) time.Time {
	return date.AddDate(0, 0, -comparableDateOffsetDays)
}

// GetDayType returns Weekend for Saturday/Sunday and Weekday otherwise.
func GetDayType(date time.Time) appliance.DayType {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return appliance.Weekend
	default:
		return appliance.Weekday
	}
}

// DateRange returns numDays consecutive dates starting at start.
func DateRange(start time.Time, numDays int) []time.Time {
	dates := make([]time.Time, numDays)
	for i := 0; i < numDays; i++ {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}
