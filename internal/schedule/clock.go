package schedule

import (
	"time"

	"radcon-schedule/internal/catalog"
)

// Clock defines an interface for getting the current time.
// This allows us to inject a fake time during unit tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual server system time.
type RealClock struct{}

func (c RealClock) Now() time.Time {
	return time.Now()
}

// MockClock implements Clock for testing specific scenarios.
// e.g., "Pretend it is Saturday at 23:59:59"
type MockClock struct {
	MockTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.MockTime
}

// EventDates maps each convention day to its calendar date (YYYY-MM-DD).
type EventDates map[catalog.Day]string

// DefaultEventDates are the RadCon 9B dates.
var DefaultEventDates = EventDates{
	catalog.Friday:   "2026-02-13",
	catalog.Saturday: "2026-02-14",
	catalog.Sunday:   "2026-02-15",
}

// DefaultDay picks the tab to open: today's day while the convention runs,
// friday before or after it.
func DefaultDay(clock Clock, dates EventDates) catalog.Day {
	today := clock.Now().Format("2006-01-02")
	for _, d := range catalog.Days {
		if dates[d] == today {
			return d
		}
	}
	return catalog.Friday
}

// NewEventDates builds the date table, keeping the default for any empty date.
func NewEventDates(friday, saturday, sunday string) EventDates {
	dates := EventDates{}
	for d, v := range map[catalog.Day]string{catalog.Friday: friday, catalog.Saturday: saturday, catalog.Sunday: sunday} {
		if v == "" {
			v = DefaultEventDates[d]
		}
		dates[d] = v
	}
	return dates
}
