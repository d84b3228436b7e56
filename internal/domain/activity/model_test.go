package activity

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&Log{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestRecordWritesEntry(t *testing.T) {
	db := openTestDB(t)

	Record(db, Log{
		UserID:      7,
		Action:      ActionBookAppointment,
		EntityType:  "appointment",
		EntityID:    12,
		Description: "Reservó la cita abc-123",
		IPAddress:   "203.0.113.9",
	})

	var got Log
	if err := db.First(&got).Error; err != nil {
		t.Fatalf("expected an entry: %v", err)
	}
	if got.UserID != 7 || got.Action != ActionBookAppointment || got.EntityID != 12 {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at should be stamped")
	}
}
