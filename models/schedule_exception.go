package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleException overrides the weekly pattern for one exact calendar
// date. When present it fully replaces that date's weekday entry: either
// the store is closed for the day or the exception's own periods apply.
type ScheduleException struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StoreID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_store_exception_date,unique" json:"store_id"`
	Date      string            `gorm:"not null;index:idx_store_exception_date,unique" json:"date"` // YYYY-MM-DD
	Closed    bool              `gorm:"default:false" json:"closed"`
	Reason    string            `json:"reason"` // e.g. "public holiday"
	Periods   []ExceptionPeriod `gorm:"foreignKey:ExceptionID" json:"periods"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (e *ScheduleException) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type ExceptionPeriod struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExceptionID uuid.UUID `gorm:"type:uuid;not null;index" json:"exception_id"`
	OpenTime    string    `gorm:"not null" json:"open_time"`  // HH:MM
	CloseTime   string    `gorm:"not null" json:"close_time"` // HH:MM
	Position    int       `gorm:"default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *ExceptionPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
