package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ZoneTypeFixed is the only zone pricing variant today. The set is closed;
// adding a distance-based variant means a new FeeScheme implementation in
// the schedule package plus a new constant here.
const ZoneTypeFixed = "fixed"

// AllowedZoneTypes is the set of valid values for DeliveryZone.ZoneType.
var AllowedZoneTypes = map[string]bool{
	ZoneTypeFixed: true,
}

type DeliveryZone struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StoreID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name                  string         `gorm:"not null" json:"name"`
	ZoneType              string         `gorm:"not null;default:'fixed'" json:"zone_type"`
	FixedPrice            float64        `gorm:"not null;default:0" json:"fixed_price"`
	FreeDeliveryThreshold *float64       `json:"free_delivery_threshold,omitempty"`
	EstimatedTime         *int           `json:"estimated_time,omitempty"` // minutes
	SortOrder             int            `gorm:"default:0" json:"sort_order"` // display priority only
	IsActive              bool           `gorm:"default:true" json:"is_active"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (z *DeliveryZone) BeforeCreate(tx *gorm.DB) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return nil
}
