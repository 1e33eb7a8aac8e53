package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null" json:"owner_id"`
	Owner     User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Timezone  string         `gorm:"default:'UTC'" json:"timezone"` // informational; instants arrive store-local
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	Days      []ScheduleDay  `gorm:"foreignKey:StoreID" json:"schedule_days,omitempty"`
	Policy    *DeliveryPolicy `gorm:"foreignKey:StoreID" json:"delivery_policy,omitempty"`
	Zones     []DeliveryZone `gorm:"foreignKey:StoreID" json:"zones,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
