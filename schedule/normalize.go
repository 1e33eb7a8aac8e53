package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Normalize validates a raw weekly configuration and produces the canonical
// Schedule the resolvers operate on. It is a pure function: it never reads
// or writes persisted state, and the configuration-update flow runs it
// before accepting an aggregate.
//
// Rules enforced:
//   - all 7 weekdays present, each exactly once (no implicit defaulting)
//   - every period has close > open
//   - periods within a day must not overlap; they are sorted by open time
//     and rejected on overlap rather than silently merged
//   - advance bounds are non-negative; MaxAdvanceDays = 0 means "today only"
func Normalize(days []DayInput, policy Policy) (*Schedule, error) {
	var week Week
	seen := [7]bool{}

	for _, d := range days {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return nil, &ValidationError{
				Kind:    MissingWeekday,
				Weekday: d.Weekday,
				Index:   -1,
				Message: fmt.Sprintf("unknown weekday %d", d.Weekday),
			}
		}
		if seen[d.Weekday] {
			return nil, &ValidationError{
				Kind:    DuplicateWeekday,
				Weekday: d.Weekday,
				Index:   -1,
				Message: "weekday listed more than once",
			}
		}
		seen[d.Weekday] = true

		periods, verr := normalizePeriods(d.Periods)
		if verr != nil {
			verr.Weekday = d.Weekday
			return nil, verr
		}
		if !d.IsOpen {
			periods = nil
		}
		week[d.Weekday] = Day{IsOpen: d.IsOpen && len(periods) > 0, Periods: periods}
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !seen[wd] {
			return nil, &ValidationError{
				Kind:    MissingWeekday,
				Weekday: wd,
				Index:   -1,
				Message: "weekday missing from configuration",
			}
		}
	}

	if policy.MinAdvanceHours < 0 {
		return nil, &ValidationError{
			Kind:    NegativeAdvanceBound,
			Index:   -1,
			Message: fmt.Sprintf("min_advance_hours must be non-negative, got %d", policy.MinAdvanceHours),
		}
	}
	if policy.MaxAdvanceDays < 0 {
		return nil, &ValidationError{
			Kind:    NegativeAdvanceBound,
			Index:   -1,
			Message: fmt.Sprintf("max_advance_days must be non-negative, got %d", policy.MaxAdvanceDays),
		}
	}

	return &Schedule{Week: week, Policy: policy}, nil
}

// NormalizeExceptions validates raw calendar-date overrides with the same
// period rules as Normalize and rejects duplicate dates.
func NormalizeExceptions(raw []ExceptionInput) ([]Exception, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]Exception, 0, len(raw))

	for _, e := range raw {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return nil, &ValidationError{
				Kind:    InvalidDate,
				Date:    e.Date,
				Index:   -1,
				Message: "date must be YYYY-MM-DD",
			}
		}
		if seen[e.Date] {
			return nil, &ValidationError{
				Kind:    DuplicateDate,
				Date:    e.Date,
				Index:   -1,
				Message: "at most one exception per date",
			}
		}
		seen[e.Date] = true

		periods, verr := normalizePeriods(e.Periods)
		if verr != nil {
			verr.Date = e.Date
			return nil, verr
		}
		if e.Closed {
			periods = nil
		}
		out = append(out, Exception{Date: e.Date, Closed: e.Closed, Periods: periods})
	}

	return out, nil
}

func normalizePeriods(raw []PeriodInput) ([]Period, *ValidationError) {
	if len(raw) == 0 {
		return nil, nil
	}

	periods := make([]Period, 0, len(raw))
	for i, p := range raw {
		open, err := ParseTimeOfDay(p.Open)
		if err != nil {
			return nil, &ValidationError{Kind: InvalidPeriodOrder, Index: i, Message: err.Error()}
		}
		close, err := ParseTimeOfDay(p.Close)
		if err != nil {
			return nil, &ValidationError{Kind: InvalidPeriodOrder, Index: i, Message: err.Error()}
		}
		if close <= open {
			return nil, &ValidationError{
				Kind:    InvalidPeriodOrder,
				Index:   i,
				Message: fmt.Sprintf("close time %s must be after open time %s", close, open),
			}
		}
		periods = append(periods, Period{Open: open, Close: close})
	}

	sort.Slice(periods, func(i, j int) bool { return periods[i].Open < periods[j].Open })

	for i := 1; i < len(periods); i++ {
		if periods[i].Open < periods[i-1].Close {
			return nil, &ValidationError{
				Kind:  OverlappingPeriods,
				Index: i,
				Message: fmt.Sprintf("period %s-%s overlaps %s-%s",
					periods[i].Open, periods[i].Close, periods[i-1].Open, periods[i-1].Close),
			}
		}
	}

	return periods, nil
}

// check verifies that a schedule could only have come from Normalize.
// Resolvers call it before trusting the week; normal callers never trip it.
func (s *Schedule) check() error {
	if s == nil {
		return ErrMalformedSchedule
	}
	for _, d := range s.Week {
		for i, p := range d.Periods {
			if p.Close <= p.Open || p.Open < 0 || p.Close > 24*60 {
				return ErrMalformedSchedule
			}
			if i > 0 && p.Open < d.Periods[i-1].Close {
				return ErrMalformedSchedule
			}
		}
	}
	if s.Policy.MinAdvanceHours < 0 || s.Policy.MaxAdvanceDays < 0 {
		return ErrMalformedSchedule
	}
	return nil
}
