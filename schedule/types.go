// Package schedule implements the store availability and scheduling engine:
// weekly operating hours with calendar-date exceptions, enumeration of
// bookable future slots under advance-booking bounds, and delivery fee
// resolution. Every function in this package is a pure computation over its
// arguments; persistence and transport live in the surrounding packages.
package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for exception keys and slots.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock format accepted for period boundaries.
const TimeLayout = "15:04"

// Minute is a time of day expressed as minutes since midnight (0..1439).
type Minute int

// ParseTimeOfDay parses a 24h "HH:MM" string into minutes since midnight.
func ParseTimeOfDay(s string) (Minute, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: must be HH:MM", s)
	}
	return Minute(t.Hour()*60 + t.Minute()), nil
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Period is a single open interval within one day. Close is strictly after
// Open; overnight-spanning periods are not representable.
type Period struct {
	Open  Minute `json:"open"`
	Close Minute `json:"close"`
}

// Contains reports whether the given time of day falls inside the period.
// Both boundaries are inclusive: a store opening at 09:00 is open at
// exactly 09:00 and still open at exactly its close time.
func (p Period) Contains(t Minute) bool {
	return p.Open <= t && t <= p.Close
}

// Day is the operating pattern for one weekday.
type Day struct {
	IsOpen  bool
	Periods []Period
}

// Week holds one Day per weekday, indexed by time.Weekday (Sunday = 0).
type Week [7]Day

// Policy carries the delivery and scheduling bounds for a store.
type Policy struct {
	Enabled           bool
	Immediate         bool
	Scheduled         bool
	Pickup            bool
	MinAdvanceHours   int
	MaxAdvanceDays    int
	UseOperatingHours bool
}

// Schedule is the canonical, normalized form of a store's weekly operating
// hours plus its delivery policy. Obtain one through Normalize; the other
// operations in this package reject schedules that bypassed it.
type Schedule struct {
	Week   Week
	Policy Policy
}

// Exception is a calendar-date override. When an exception exists for a
// date it fully replaces the weekday pattern for that date; it is never
// merged with it.
type Exception struct {
	Date    string // DateLayout
	Closed  bool
	Periods []Period
}

// Availability is the result of an openness check at one instant.
type Availability struct {
	Open         bool
	ActivePeriod *Period
}

// Slot is one concrete bookable fulfillment window.
type Slot struct {
	Date    string `json:"date"`
	Period  Period `json:"period"`
	IsToday bool   `json:"is_today"`
}

// DayInput is one raw weekday entry as supplied by the configuration flow.
type DayInput struct {
	Weekday time.Weekday
	IsOpen  bool
	Periods []PeriodInput
}

// PeriodInput is a raw open interval with "HH:MM" boundaries.
type PeriodInput struct {
	Open  string
	Close string
}

// ExceptionInput is a raw calendar-date override.
type ExceptionInput struct {
	Date    string
	Closed  bool
	Periods []PeriodInput
}
