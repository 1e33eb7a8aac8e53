package handlers

import (
	"fmt"
	"time"

	"github.com/edgarmtz-git/multt-sub003/models"
	"github.com/edgarmtz-git/multt-sub003/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadScheduleSnapshot reads a store's persisted schedule configuration and
// runs it back through the normalizer into the engine's canonical form.
// The engine only ever sees one consistent snapshot per request; callers
// needing strict consistency re-resolve right before committing an order.
func loadScheduleSnapshot(db *gorm.DB, storeID uuid.UUID) (*schedule.Schedule, []schedule.Exception, error) {
	var days []models.ScheduleDay
	if err := db.Preload("Periods", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Where("store_id = ?", storeID).Order("day_of_week").Find(&days).Error; err != nil {
		return nil, nil, err
	}
	if len(days) == 0 {
		return nil, nil, gorm.ErrRecordNotFound
	}

	var policy models.DeliveryPolicy
	if err := db.Where("store_id = ?", storeID).First(&policy).Error; err != nil {
		return nil, nil, err
	}

	dayInputs := make([]schedule.DayInput, 0, len(days))
	for _, d := range days {
		in := schedule.DayInput{
			Weekday: time.Weekday(d.DayOfWeek),
			IsOpen:  d.IsOpen,
		}
		for _, p := range d.Periods {
			in.Periods = append(in.Periods, schedule.PeriodInput{Open: p.OpenTime, Close: p.CloseTime})
		}
		dayInputs = append(dayInputs, in)
	}

	canonical, err := schedule.Normalize(dayInputs, schedule.Policy{
		Enabled:           policy.Enabled,
		Immediate:         policy.Immediate,
		Scheduled:         policy.Scheduled,
		Pickup:            policy.Pickup,
		MinAdvanceHours:   policy.MinAdvanceHours,
		MaxAdvanceDays:    policy.MaxAdvanceDays,
		UseOperatingHours: policy.UseOperatingHours,
	})
	if err != nil {
		// Persisted configuration that fails normalization means the write
		// path was bypassed; surface it rather than guessing.
		return nil, nil, fmt.Errorf("persisted schedule failed normalization: %w", err)
	}

	var rows []models.ScheduleException
	if err := db.Preload("Periods", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Where("store_id = ?", storeID).Order("date").Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	inputs := make([]schedule.ExceptionInput, 0, len(rows))
	for _, e := range rows {
		in := schedule.ExceptionInput{Date: e.Date, Closed: e.Closed}
		for _, p := range e.Periods {
			in.Periods = append(in.Periods, schedule.PeriodInput{Open: p.OpenTime, Close: p.CloseTime})
		}
		inputs = append(inputs, in)
	}

	exceptions, err := schedule.NormalizeExceptions(inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("persisted exceptions failed normalization: %w", err)
	}

	return canonical, exceptions, nil
}

// engineZone converts a persisted delivery zone into the engine's snapshot
// form, selecting the fee scheme for the zone's pricing variant.
func engineZone(z *models.DeliveryZone) (schedule.Zone, error) {
	var scheme schedule.FeeScheme
	switch z.ZoneType {
	case models.ZoneTypeFixed:
		scheme = schedule.FixedFee{Price: z.FixedPrice, FreeThreshold: z.FreeDeliveryThreshold}
	default:
		return schedule.Zone{}, fmt.Errorf("unknown zone type %q", z.ZoneType)
	}

	return schedule.Zone{
		ID:            z.ID.String(),
		Active:        z.IsActive,
		Scheme:        scheme,
		EstimatedTime: z.EstimatedTime,
	}, nil
}

// parseInstant accepts RFC3339 or a bare store-local "2006-01-02T15:04".
// An empty value means "now".
func parseInstant(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02T15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: must be RFC3339 or YYYY-MM-DDTHH:MM", raw)
	}
	return ts, nil
}

// periodJSON renders an engine period with wall-clock boundaries.
func periodJSON(p schedule.Period) map[string]string {
	return map[string]string{
		"open":  p.Open.String(),
		"close": p.Close.String(),
	}
}
