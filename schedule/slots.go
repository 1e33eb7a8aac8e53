package schedule

import "time"

// allDay is the synthetic period used when a store schedules deliveries
// without consulting its operating hours.
var allDay = Period{Open: 0, Close: 23*60 + 59}

// NextSlots enumerates the future fulfillable windows starting at the
// given instant, walking forward one calendar day at a time for up to
// Policy.MaxAdvanceDays days past today (day 0). For today only, periods
// whose close time falls before from + Policy.MinAdvanceHours are dropped
// whole; a period is kept in full when any part of it remains reachable —
// the advance-notice floor filters periods, it never truncates them.
//
// A non-positive limit means "no cap"; the advance horizon still bounds
// the walk. The result is strictly chronological and re-invoking with the
// same arguments reproduces the same sequence.
//
// Whether scheduled ordering is offered at all (Policy.Scheduled) is the
// caller's decision; the enumerator computes slots regardless so it stays
// composable with override paths that bypass operating hours.
func NextSlots(s *Schedule, exceptions []Exception, from time.Time, limit int) ([]Slot, error) {
	if from.IsZero() {
		return nil, ErrInvalidInstant
	}
	if err := s.check(); err != nil {
		return nil, err
	}

	floor := from.Add(time.Duration(s.Policy.MinAdvanceHours) * time.Hour)
	slots := []Slot{}

	for offset := 0; offset <= s.Policy.MaxAdvanceDays; offset++ {
		day := from.AddDate(0, 0, offset)

		var periods []Period
		if s.Policy.UseOperatingHours {
			closed, ps := resolveDay(s, exceptions, day)
			if closed {
				continue
			}
			periods = ps
		} else {
			periods = []Period{allDay}
		}

		for _, p := range periods {
			if offset == 0 && closeInstant(day, p).Before(floor) {
				continue
			}
			slots = append(slots, Slot{
				Date:    day.Format(DateLayout),
				Period:  p,
				IsToday: offset == 0,
			})
			if limit > 0 && len(slots) == limit {
				return slots, nil
			}
		}
	}

	return slots, nil
}

func closeInstant(day time.Time, p Period) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), int(p.Close)/60, int(p.Close)%60, 0, 0, day.Location())
}
