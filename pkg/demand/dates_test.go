package demand

import (
	"testing"
	"time"

	"github.com/plansize/plansize/pkg/appliance"
	"github.com/stretchr/testify/assert"
)

func TestComparableDateOffset(t *testing.T) {
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	got := ComparableDate(date)
	assert.Equal(t, date.AddDate(0, 0, -364), got)
	// The 364-day offset keeps the weekday aligned, unlike a true 365-day
	// "one year ago" would for most years.
	assert.Equal(t, date.Weekday(), got.Weekday())
}

func TestGetDayType(t *testing.T) {
	saturday := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, appliance.Weekend, GetDayType(saturday))
	assert.Equal(t, appliance.Weekday, GetDayType(monday))
}

func TestDateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := DateRange(start, 3)
	assert.Len(t, dates, 3)
	assert.Equal(t, start, dates[0])
	assert.Equal(t, start.AddDate(0, 0, 2), dates[2])
}
