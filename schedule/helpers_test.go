package schedule

import (
	"testing"
	"time"
)

// fullWeek returns raw input for a week open every day with the given
// periods. Individual tests override days as needed.
func fullWeek(periods ...PeriodInput) []DayInput {
	days := make([]DayInput, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = DayInput{Weekday: wd, IsOpen: true, Periods: periods}
	}
	return days
}

func mustNormalize(t *testing.T, days []DayInput, policy Policy) *Schedule {
	t.Helper()
	s, err := Normalize(days, policy)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return s
}

func defaultPolicy() Policy {
	return Policy{
		Enabled:           true,
		Immediate:         true,
		Scheduled:         true,
		Pickup:            true,
		MinAdvanceHours:   0,
		MaxAdvanceDays:    7,
		UseOperatingHours: true,
	}
}

// at builds an instant on the given date at "HH:MM".
func at(t *testing.T, date, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse(DateLayout+" "+TimeLayout, date+" "+clock)
	if err != nil {
		t.Fatalf("bad test instant %s %s: %v", date, clock, err)
	}
	return ts
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
