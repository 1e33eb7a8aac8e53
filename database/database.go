package database

import (
	"log"
	"os"
	"time"

	"github.com/edgarmtz-git/multt-sub003/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=multt_store port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.ScheduleDay{},
		&models.SchedulePeriod{},
		&models.DeliveryPolicy{},
		&models.ScheduleException{},
		&models.ExceptionPeriod{},
		&models.DeliveryZone{},
	)
}

func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@multt.local"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// CreateDefaultStore seeds a demo store owned by the default admin, with a
// full week of operating hours, a delivery policy and one fixed-price
// zone, so a fresh install answers availability queries immediately.
func CreateDefaultStore(db *gorm.DB) error {
	var count int64
	db.Model(&models.Store{}).Count(&count)
	if count > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("role = ?", "admin").First(&admin).Error; err != nil {
		// No admin yet; nothing to own the store
		return nil
	}

	store := models.Store{
		Name:     "Multt Main Store",
		Slug:     "main",
		OwnerID:  admin.ID,
		IsActive: true,
	}
	if err := db.Create(&store).Error; err != nil {
		return err
	}

	// Monday through Saturday 09:00-21:00, closed Sunday.
	for dow := 0; dow <= 6; dow++ {
		day := models.ScheduleDay{
			StoreID:   store.ID,
			DayOfWeek: dow,
			IsOpen:    dow != 0,
		}
		if err := db.Create(&day).Error; err != nil {
			return err
		}
		if day.IsOpen {
			period := models.SchedulePeriod{
				ScheduleDayID: day.ID,
				OpenTime:      "09:00",
				CloseTime:     "21:00",
			}
			if err := db.Create(&period).Error; err != nil {
				return err
			}
		}
	}

	policy := models.DeliveryPolicy{
		StoreID:           store.ID,
		Enabled:           true,
		Immediate:         true,
		Scheduled:         true,
		Pickup:            true,
		MinAdvanceHours:   1,
		MaxAdvanceDays:    7,
		UseOperatingHours: true,
	}
	if err := db.Create(&policy).Error; err != nil {
		return err
	}

	threshold := 50.0
	eta := 45
	zone := models.DeliveryZone{
		StoreID:               store.ID,
		Name:                  "City centre",
		ZoneType:              models.ZoneTypeFixed,
		FixedPrice:            4.99,
		FreeDeliveryThreshold: &threshold,
		EstimatedTime:         &eta,
		IsActive:              true,
	}
	if err := db.Create(&zone).Error; err != nil {
		return err
	}

	log.Printf("Default store created: %s (seeded %s)", store.Slug, time.Now().Format("2006-01-02"))
	return nil
}
