package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleDay is one weekday entry of a store's weekly operating pattern.
// A store always has exactly 7 rows, written wholesale on every schedule
// update; the engine's normalizer rejects partial weeks before they reach
// the database.
type ScheduleDay struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StoreID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	DayOfWeek int              `gorm:"not null" json:"day_of_week"` // 0=Sunday, 6=Saturday
	IsOpen    bool             `gorm:"default:false" json:"is_open"`
	Periods   []SchedulePeriod `gorm:"foreignKey:ScheduleDayID" json:"periods"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (d *ScheduleDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// SchedulePeriod is a single open interval within a ScheduleDay.
type SchedulePeriod struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScheduleDayID uuid.UUID `gorm:"type:uuid;not null;index" json:"schedule_day_id"`
	OpenTime      string    `gorm:"not null" json:"open_time"`  // HH:MM
	CloseTime     string    `gorm:"not null" json:"close_time"` // HH:MM
	Position      int       `gorm:"default:0" json:"position"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *SchedulePeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DeliveryPolicy holds a store's fulfillment switches and advance-booking
// bounds. One row per store, replaced together with the weekly pattern.
type DeliveryPolicy struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StoreID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"store_id"`
	Enabled           bool      `gorm:"default:true" json:"enabled"`
	Immediate         bool      `gorm:"default:true" json:"immediate"`
	Scheduled         bool      `gorm:"default:false" json:"scheduled"`
	Pickup            bool      `gorm:"default:false" json:"pickup"`
	MinAdvanceHours   int       `gorm:"default:0" json:"min_advance_hours"`
	MaxAdvanceDays    int       `gorm:"default:0" json:"max_advance_days"`
	UseOperatingHours bool      `gorm:"default:true" json:"use_operating_hours"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *DeliveryPolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
