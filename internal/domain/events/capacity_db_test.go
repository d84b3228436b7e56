package events

import (
	"errors"
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
	if err := db.AutoMigrate(&Event{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func reloadEvent(t *testing.T, db *gorm.DB, id uint) *Event {
	t.Helper()
	var event Event
	if err := db.First(&event, id).Error; err != nil {
		t.Fatalf("failed to reload event: %v", err)
	}
	return &event
}

func TestTakeSpotEnforcesCapacity(t *testing.T) {
	db := openTestDB(t)
	event := Event{Slug: "capped", Title: "Capped", Capacity: 2, PublishStatus: PublishStatusPublished}
	if err := db.Create(&event).Error; err != nil {
		t.Fatal(err)
	}

	if err := TakeSpot(db, event.ID); err != nil {
		t.Fatalf("first spot should succeed: %v", err)
	}
	if err := TakeSpot(db, event.ID); err != nil {
		t.Fatalf("second spot should succeed: %v", err)
	}
	if err := TakeSpot(db, event.ID); !errors.Is(err, ErrEventFull) {
		t.Fatalf("full event should reject, got %v", err)
	}

	got := reloadEvent(t, db, event.ID)
	if got.RegisteredCount != 2 {
		t.Fatalf("rejected take must not mutate the counter, got %d", got.RegisteredCount)
	}
	if !got.IsFull() {
		t.Fatal("event at capacity should report full")
	}
}

func TestTakeSpotUnlimitedCapacity(t *testing.T) {
	db := openTestDB(t)
	event := Event{Slug: "open", Title: "Open", Capacity: 0}
	if err := db.Create(&event).Error; err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := TakeSpot(db, event.ID); err != nil {
			t.Fatalf("unlimited event should always accept, got %v on take %d", err, i+1)
		}
	}
	if got := reloadEvent(t, db, event.ID); got.RegisteredCount != 5 {
		t.Fatalf("expected 5 registrations, got %d", got.RegisteredCount)
	}
}

func TestReleaseSpotRestoresOneAndFloorsAtZero(t *testing.T) {
	db := openTestDB(t)
	event := Event{Slug: "release", Title: "Release", Capacity: 2}
	if err := db.Create(&event).Error; err != nil {
		t.Fatal(err)
	}

	if err := TakeSpot(db, event.ID); err != nil {
		t.Fatal(err)
	}
	if err := TakeSpot(db, event.ID); err != nil {
		t.Fatal(err)
	}

	if err := ReleaseSpot(db, event.ID); err != nil {
		t.Fatalf("release should succeed: %v", err)
	}
	got := reloadEvent(t, db, event.ID)
	if got.RegisteredCount != 1 {
		t.Fatalf("expected 1 after release, got %d", got.RegisteredCount)
	}

	// A freed spot can be taken again.
	if err := TakeSpot(db, event.ID); err != nil {
		t.Fatalf("freed spot should be bookable, got %v", err)
	}

	if err := ReleaseSpot(db, event.ID); err != nil {
		t.Fatal(err)
	}
	if err := ReleaseSpot(db, event.ID); err != nil {
		t.Fatal(err)
	}
	if err := ReleaseSpot(db, event.ID); err != nil {
		t.Fatalf("release at zero should be a no-op, got %v", err)
	}
	if got := reloadEvent(t, db, event.ID); got.RegisteredCount != 0 {
		t.Fatalf("counter must never go negative, got %d", got.RegisteredCount)
	}
}
