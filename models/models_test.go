package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"name" TEXT, "role" TEXT DEFAULT 'customer', "store_id" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "stores" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "slug" TEXT NOT NULL UNIQUE,
			"owner_id" TEXT NOT NULL, "timezone" TEXT DEFAULT 'UTC', "is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "schedule_days" (
			"id" TEXT PRIMARY KEY, "store_id" TEXT NOT NULL, "day_of_week" INTEGER NOT NULL,
			"is_open" INTEGER DEFAULT 0, "created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "schedule_periods" (
			"id" TEXT PRIMARY KEY, "schedule_day_id" TEXT NOT NULL,
			"open_time" TEXT NOT NULL, "close_time" TEXT NOT NULL,
			"position" INTEGER DEFAULT 0, "created_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "delivery_policies" (
			"id" TEXT PRIMARY KEY, "store_id" TEXT NOT NULL UNIQUE,
			"enabled" INTEGER DEFAULT 1, "immediate" INTEGER DEFAULT 1, "scheduled" INTEGER DEFAULT 0,
			"pickup" INTEGER DEFAULT 0, "min_advance_hours" INTEGER DEFAULT 0,
			"max_advance_days" INTEGER DEFAULT 0, "use_operating_hours" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "schedule_exceptions" (
			"id" TEXT PRIMARY KEY, "store_id" TEXT NOT NULL, "date" TEXT NOT NULL,
			"closed" INTEGER DEFAULT 0, "reason" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_store_exception_date ON "schedule_exceptions"("store_id","date")`,
		`CREATE TABLE IF NOT EXISTS "exception_periods" (
			"id" TEXT PRIMARY KEY, "exception_id" TEXT NOT NULL,
			"open_time" TEXT NOT NULL, "close_time" TEXT NOT NULL,
			"position" INTEGER DEFAULT 0, "created_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "delivery_zones" (
			"id" TEXT PRIMARY KEY, "store_id" TEXT NOT NULL, "name" TEXT NOT NULL,
			"zone_type" TEXT NOT NULL DEFAULT 'fixed', "fixed_price" REAL NOT NULL DEFAULT 0,
			"free_delivery_threshold" REAL, "estimated_time" INTEGER,
			"sort_order" INTEGER DEFAULT 0, "is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func seedOwnerAndStore(t *testing.T, db *gorm.DB) Store {
	t.Helper()
	owner := User{ID: uuid.New(), Email: "owner-" + uuid.New().String()[:8] + "@test.com", Password: "hash"}
	db.Create(&owner)
	store := Store{ID: uuid.New(), Name: "S", Slug: "s-" + uuid.New().String()[:8], OwnerID: owner.ID}
	db.Create(&store)
	return store
}

// ==================== BeforeCreate Hook Tests ====================

func TestUserBeforeCreateGeneratesUUID(t *testing.T) {
	db := setupTestDB(t)
	user := User{Email: "test@test.com", Password: "hash", Name: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestUserBeforeCreatePreservesUUID(t *testing.T) {
	db := setupTestDB(t)
	existingID := uuid.New()
	user := User{ID: existingID, Email: "preserve@test.com", Password: "hash", Name: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID != existingID {
		t.Error("UUID should have been preserved")
	}
}

func TestStoreBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	owner := User{ID: uuid.New(), Email: "owner@test.com", Password: "hash"}
	db.Create(&owner)
	store := Store{Name: "Corner Shop", Slug: "corner-shop", OwnerID: owner.ID}
	db.Create(&store)
	if store.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestScheduleDayBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	day := ScheduleDay{StoreID: store.ID, DayOfWeek: 1, IsOpen: true}
	db.Create(&day)
	if day.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestSchedulePeriodBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	day := ScheduleDay{ID: uuid.New(), StoreID: store.ID, DayOfWeek: 1, IsOpen: true}
	db.Create(&day)
	period := SchedulePeriod{ScheduleDayID: day.ID, OpenTime: "09:00", CloseTime: "21:00"}
	db.Create(&period)
	if period.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestDeliveryPolicyBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	policy := DeliveryPolicy{StoreID: store.ID, Enabled: true}
	db.Create(&policy)
	if policy.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestScheduleExceptionBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	exc := ScheduleException{StoreID: store.ID, Date: "2026-12-25", Closed: true}
	db.Create(&exc)
	if exc.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestExceptionPeriodBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	exc := ScheduleException{ID: uuid.New(), StoreID: store.ID, Date: "2026-12-24"}
	db.Create(&exc)
	period := ExceptionPeriod{ExceptionID: exc.ID, OpenTime: "09:00", CloseTime: "14:00"}
	db.Create(&period)
	if period.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestDeliveryZoneBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	zone := DeliveryZone{StoreID: store.ID, Name: "Zone", ZoneType: ZoneTypeFixed, FixedPrice: 4.99}
	db.Create(&zone)
	if zone.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

// ==================== Constraint Tests ====================

func TestScheduleExceptionUniquePerStoreDate(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	first := ScheduleException{ID: uuid.New(), StoreID: store.ID, Date: "2026-12-25", Closed: true}
	if err := db.Create(&first).Error; err != nil {
		t.Fatal(err)
	}
	dup := ScheduleException{ID: uuid.New(), StoreID: store.ID, Date: "2026-12-25"}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("expected unique constraint violation for duplicate store+date")
	}
}

func TestDeliveryZoneSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	store := seedOwnerAndStore(t, db)
	zone := DeliveryZone{ID: uuid.New(), StoreID: store.ID, Name: "Zone", ZoneType: ZoneTypeFixed}
	db.Create(&zone)
	db.Delete(&zone)

	var visible int64
	db.Model(&DeliveryZone{}).Where("store_id = ?", store.ID).Count(&visible)
	if visible != 0 {
		t.Error("soft-deleted zone should be hidden from the default scope")
	}

	var total int64
	db.Unscoped().Model(&DeliveryZone{}).Where("store_id = ?", store.ID).Count(&total)
	if total != 1 {
		t.Error("soft-deleted zone row should still exist")
	}
}

func TestAllowedZoneTypes(t *testing.T) {
	if !AllowedZoneTypes[ZoneTypeFixed] {
		t.Error("fixed must be an allowed zone type")
	}
	if AllowedZoneTypes["radius"] {
		t.Error("radius is not a known zone type")
	}
}
