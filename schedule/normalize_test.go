package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeFullWeek(t *testing.T) {
	s := mustNormalize(t, fullWeek(PeriodInput{Open: "09:00", Close: "22:00"}), defaultPolicy())

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := s.Week[wd]
		if !day.IsOpen || len(day.Periods) != 1 {
			t.Fatalf("%s: expected one open period, got %+v", wd, day)
		}
		if day.Periods[0].Open != 9*60 || day.Periods[0].Close != 22*60 {
			t.Errorf("%s: wrong period %+v", wd, day.Periods[0])
		}
	}
}

func TestNormalizeMissingWeekdayRejected(t *testing.T) {
	days := fullWeek(PeriodInput{Open: "09:00", Close: "22:00"})
	days = days[:6] // drop Saturday

	_, err := Normalize(days, defaultPolicy())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != MissingWeekday || verr.Weekday != time.Saturday {
		t.Errorf("expected MissingWeekday for Saturday, got %+v", verr)
	}
}

func TestNormalizeDuplicateWeekdayRejected(t *testing.T) {
	days := fullWeek(PeriodInput{Open: "09:00", Close: "22:00"})
	days = append(days, DayInput{Weekday: time.Monday, IsOpen: true})

	_, err := Normalize(days, defaultPolicy())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != DuplicateWeekday {
		t.Errorf("expected DuplicateWeekday, got %v", err)
	}
}

func TestNormalizeCloseBeforeOpenRejected(t *testing.T) {
	days := fullWeek(PeriodInput{Open: "09:00", Close: "22:00"})
	days[time.Wednesday].Periods = []PeriodInput{
		{Open: "09:00", Close: "12:00"},
		{Open: "20:00", Close: "02:00"}, // overnight unsupported
	}

	_, err := Normalize(days, defaultPolicy())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != InvalidPeriodOrder || verr.Weekday != time.Wednesday || verr.Index != 1 {
		t.Errorf("expected InvalidPeriodOrder on Wednesday index 1, got %+v", verr)
	}
}

func TestNormalizeOverlappingPeriodsRejected(t *testing.T) {
	days := fullWeek(
		PeriodInput{Open: "09:00", Close: "14:00"},
		PeriodInput{Open: "13:00", Close: "22:00"},
	)

	_, err := Normalize(days, defaultPolicy())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != OverlappingPeriods {
		t.Errorf("expected OverlappingPeriods, got %v", err)
	}
}

func TestNormalizeSortsPeriodsAndAllowsBackToBack(t *testing.T) {
	days := fullWeek(
		PeriodInput{Open: "18:00", Close: "22:00"},
		PeriodInput{Open: "09:00", Close: "12:00"},
		PeriodInput{Open: "12:00", Close: "14:00"}, // touching boundary is not overlap
	)

	s := mustNormalize(t, days, defaultPolicy())
	got := s.Week[time.Monday].Periods
	if len(got) != 3 {
		t.Fatalf("expected 3 periods, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Open < got[i-1].Open {
			t.Errorf("periods not sorted: %+v", got)
		}
	}
}

func TestNormalizeNegativeAdvanceBoundsRejected(t *testing.T) {
	for _, p := range []Policy{
		{MinAdvanceHours: -1, MaxAdvanceDays: 7},
		{MinAdvanceHours: 2, MaxAdvanceDays: -3},
	} {
		_, err := Normalize(fullWeek(PeriodInput{Open: "09:00", Close: "22:00"}), p)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Kind != NegativeAdvanceBound {
			t.Errorf("policy %+v: expected NegativeAdvanceBound, got %v", p, err)
		}
	}
}

func TestNormalizeZeroMaxAdvanceDaysIsValid(t *testing.T) {
	p := defaultPolicy()
	p.MaxAdvanceDays = 0 // today only

	s := mustNormalize(t, fullWeek(PeriodInput{Open: "09:00", Close: "22:00"}), p)
	if s.Policy.MaxAdvanceDays != 0 {
		t.Errorf("expected MaxAdvanceDays 0, got %d", s.Policy.MaxAdvanceDays)
	}
}

func TestNormalizeInvalidTimeStringRejected(t *testing.T) {
	days := fullWeek(PeriodInput{Open: "9am", Close: "22:00"})
	_, err := Normalize(days, defaultPolicy())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != InvalidPeriodOrder {
		t.Errorf("expected InvalidPeriodOrder for bad time string, got %v", err)
	}
}

func TestNormalizeClosedDayDropsPeriods(t *testing.T) {
	days := fullWeek(PeriodInput{Open: "09:00", Close: "22:00"})
	days[time.Sunday].IsOpen = false

	s := mustNormalize(t, days, defaultPolicy())
	if s.Week[time.Sunday].IsOpen || len(s.Week[time.Sunday].Periods) != 0 {
		t.Errorf("expected Sunday closed with no periods, got %+v", s.Week[time.Sunday])
	}
}

func TestNormalizeExceptions(t *testing.T) {
	out, err := NormalizeExceptions([]ExceptionInput{
		{Date: "2026-12-25", Closed: true},
		{Date: "2026-12-31", Periods: []PeriodInput{{Open: "10:00", Close: "16:00"}}},
	})
	if err != nil {
		t.Fatalf("NormalizeExceptions failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 exceptions, got %d", len(out))
	}
	if !out[0].Closed || len(out[0].Periods) != 0 {
		t.Errorf("expected closed exception, got %+v", out[0])
	}
	if out[1].Periods[0].Open != 10*60 {
		t.Errorf("wrong exception period: %+v", out[1])
	}
}

func TestNormalizeExceptionsDuplicateDateRejected(t *testing.T) {
	_, err := NormalizeExceptions([]ExceptionInput{
		{Date: "2026-12-25", Closed: true},
		{Date: "2026-12-25", Periods: []PeriodInput{{Open: "10:00", Close: "16:00"}}},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != DuplicateDate {
		t.Errorf("expected DuplicateDate, got %v", err)
	}
}

func TestNormalizeExceptionsBadDateRejected(t *testing.T) {
	_, err := NormalizeExceptions([]ExceptionInput{{Date: "25/12/2026", Closed: true}})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != InvalidDate {
		t.Errorf("expected InvalidDate, got %v", err)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	m, err := ParseTimeOfDay("22:45")
	if err != nil || m != 22*60+45 {
		t.Errorf("expected 1365, got %d (%v)", m, err)
	}
	if m.String() != "22:45" {
		t.Errorf("round trip failed: %s", m)
	}
	if _, err := ParseTimeOfDay("24:00"); err == nil {
		t.Error("expected error for 24:00")
	}
}
