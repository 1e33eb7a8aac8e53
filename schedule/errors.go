package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInstant is returned when an instant cannot be decomposed
	// into a calendar date and time of day.
	ErrInvalidInstant = errors.New("invalid instant")

	// ErrMalformedSchedule is returned when a schedule that bypassed the
	// normalizer is passed to a resolver. Normal callers never see it.
	ErrMalformedSchedule = errors.New("malformed schedule")
)

// ValidationKind identifies which normalizer rule a raw configuration broke.
type ValidationKind string

const (
	MissingWeekday       ValidationKind = "missing_weekday"
	DuplicateWeekday     ValidationKind = "duplicate_weekday"
	InvalidPeriodOrder   ValidationKind = "invalid_period_order"
	OverlappingPeriods   ValidationKind = "overlapping_periods"
	NegativeAdvanceBound ValidationKind = "negative_advance_bound"
	InvalidDate          ValidationKind = "invalid_date"
	DuplicateDate        ValidationKind = "duplicate_date"
)

// ValidationError describes a structural problem in a raw schedule
// configuration, pointing at the offending day and period index so the
// configuration UI can highlight the exact field.
type ValidationError struct {
	Kind    ValidationKind
	Weekday time.Weekday
	Date    string
	Index   int // period index within the day, -1 when not applicable
	Message string
}

func (e *ValidationError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Date, e.Message)
	}
	return fmt.Sprintf("%s on %s: %s", e.Kind, e.Weekday, e.Message)
}

// Reason classifies why a checkout decision came back ineligible. An empty
// reason means the request is eligible.
type Reason string

const (
	ReasonZoneUnavailable Reason = "zone_unavailable"
	ReasonStoreClosed     Reason = "store_closed"
	ReasonSlotUnavailable Reason = "slot_unavailable"
)
