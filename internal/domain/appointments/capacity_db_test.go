package appointments

import (
	"errors"
	"testing"
	"time"

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
	if err := db.AutoMigrate(&AppointmentSlot{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createSlot(t *testing.T, db *gorm.DB, capacity int) *AppointmentSlot {
	t.Helper()
	slot := AppointmentSlot{
		AppointmentTypeID: 1,
		AdvisorID:         1,
		StartDatetime:     time.Now().UTC().Add(48 * time.Hour),
		EndDatetime:       time.Now().UTC().Add(49 * time.Hour),
		Capacity:          capacity,
		IsAvailable:       true,
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}
	return &slot
}

func reloadSlot(t *testing.T, db *gorm.DB, id uint) *AppointmentSlot {
	t.Helper()
	var slot AppointmentSlot
	if err := db.First(&slot, id).Error; err != nil {
		t.Fatalf("failed to reload slot: %v", err)
	}
	return &slot
}

func TestReserveSeatFlipsAvailabilityAtCapacity(t *testing.T) {
	db := openTestDB(t)
	slot := createSlot(t, db, 2)

	if err := ReserveSeat(db, slot.ID); err != nil {
		t.Fatalf("first reserve should succeed: %v", err)
	}
	got := reloadSlot(t, db, slot.ID)
	if got.ReservedSeats != 1 || !got.IsAvailable {
		t.Fatalf("after first reserve: seats=%d available=%v", got.ReservedSeats, got.IsAvailable)
	}

	if err := ReserveSeat(db, slot.ID); err != nil {
		t.Fatalf("second reserve should succeed: %v", err)
	}
	got = reloadSlot(t, db, slot.ID)
	if got.ReservedSeats != 2 || got.IsAvailable {
		t.Fatalf("last seat should flip availability: seats=%d available=%v", got.ReservedSeats, got.IsAvailable)
	}

	if err := ReserveSeat(db, slot.ID); !errors.Is(err, ErrSlotFull) {
		t.Fatalf("full slot should reject the reserve, got %v", err)
	}
	got = reloadSlot(t, db, slot.ID)
	if got.ReservedSeats != 2 {
		t.Fatalf("rejected reserve must not mutate seats, got %d", got.ReservedSeats)
	}
}

func TestReserveSeatSingleSeatSlot(t *testing.T) {
	db := openTestDB(t)
	slot := createSlot(t, db, 1)

	if err := ReserveSeat(db, slot.ID); err != nil {
		t.Fatalf("reserve should succeed: %v", err)
	}
	got := reloadSlot(t, db, slot.ID)
	if got.ReservedSeats != 1 || got.IsAvailable {
		t.Fatalf("single-seat slot should close on first booking: seats=%d available=%v", got.ReservedSeats, got.IsAvailable)
	}
}

func TestReleaseSeatRestoresAvailability(t *testing.T) {
	db := openTestDB(t)
	slot := createSlot(t, db, 2)

	if err := ReserveSeat(db, slot.ID); err != nil {
		t.Fatal(err)
	}
	if err := ReserveSeat(db, slot.ID); err != nil {
		t.Fatal(err)
	}

	if err := ReleaseSeat(db, slot.ID); err != nil {
		t.Fatalf("release should succeed: %v", err)
	}
	got := reloadSlot(t, db, slot.ID)
	if got.ReservedSeats != 1 || !got.IsAvailable {
		t.Fatalf("release should restore one seat and reopen: seats=%d available=%v", got.ReservedSeats, got.IsAvailable)
	}
}

func TestReleaseSeatFloorsAtZero(t *testing.T) {
	db := openTestDB(t)
	slot := createSlot(t, db, 2)

	if err := ReleaseSeat(db, slot.ID); err != nil {
		t.Fatalf("release on empty slot should be a no-op, got %v", err)
	}
	got := reloadSlot(t, db, slot.ID)
	if got.ReservedSeats != 0 {
		t.Fatalf("seats must never go negative, got %d", got.ReservedSeats)
	}
}
