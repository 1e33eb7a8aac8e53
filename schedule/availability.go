package schedule

import "time"

// IsOpenAt reports whether the store is open at the given instant and which
// operating period is active. The instant is interpreted as store-local
// wall clock; no timezone conversion is performed. A calendar-date
// exception, when present, fully replaces the weekday pattern for that
// date — the weekday pattern is not consulted at all.
//
// Deterministic: two calls with identical inputs always agree, so the
// checkout flow and the storefront display can never disagree about
// openness for the same snapshot.
func IsOpenAt(s *Schedule, exceptions []Exception, at time.Time) (Availability, error) {
	if at.IsZero() {
		return Availability{}, ErrInvalidInstant
	}
	if err := s.check(); err != nil {
		return Availability{}, err
	}

	closed, periods := resolveDay(s, exceptions, at)
	if closed {
		return Availability{Open: false}, nil
	}

	tod := Minute(at.Hour()*60 + at.Minute())
	for i := range periods {
		if periods[i].Contains(tod) {
			p := periods[i]
			return Availability{Open: true, ActivePeriod: &p}, nil
		}
	}
	return Availability{Open: false}, nil
}

// resolveDay returns the applicable periods for the instant's calendar
// date: the exception for that exact date when one exists, the weekday
// pattern otherwise.
func resolveDay(s *Schedule, exceptions []Exception, at time.Time) (closed bool, periods []Period) {
	date := at.Format(DateLayout)
	for i := range exceptions {
		if exceptions[i].Date == date {
			if exceptions[i].Closed || len(exceptions[i].Periods) == 0 {
				return true, nil
			}
			return false, exceptions[i].Periods
		}
	}

	day := s.Week[at.Weekday()]
	if !day.IsOpen || len(day.Periods) == 0 {
		return true, nil
	}
	return false, day.Periods
}
