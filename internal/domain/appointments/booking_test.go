package appointments

import (
	"errors"
	"testing"
	"time"
)

var bookingNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestCanCancelWithEnoughNotice(t *testing.T) {
	a := &Appointment{Status: StatusConfirmed, StartDatetime: bookingNow.Add(48 * time.Hour)}
	if err := CanCancel(a, false, bookingNow); err != nil {
		t.Fatalf("expected cancellable, got %v", err)
	}
}

func TestCanCancelWindowClosed(t *testing.T) {
	a := &Appointment{Status: StatusConfirmed, StartDatetime: bookingNow.Add(6 * time.Hour)}
	err := CanCancel(a, false, bookingNow)
	if !errors.Is(err, ErrCancelWindowClosed) {
		t.Fatalf("expected ErrCancelWindowClosed, got %v", err)
	}

	// Admins are not held to the lead-time floor.
	if err := CanCancel(a, true, bookingNow); err != nil {
		t.Fatalf("admin should bypass the window, got %v", err)
	}
}

func TestCanCancelAlreadyStarted(t *testing.T) {
	a := &Appointment{Status: StatusConfirmed, StartDatetime: bookingNow.Add(-time.Minute)}
	if err := CanCancel(a, false, bookingNow); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	// Not even admins can cancel something already underway.
	if err := CanCancel(a, true, bookingNow); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted for admin, got %v", err)
	}
}

func TestCanCancelAlreadyCancelled(t *testing.T) {
	a := &Appointment{Status: StatusCancelled, StartDatetime: bookingNow.Add(48 * time.Hour)}
	if err := CanCancel(a, false, bookingNow); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestCanCancelExactlyAtLeadTime(t *testing.T) {
	a := &Appointment{Status: StatusPending, StartDatetime: bookingNow.Add(SelfCancelLeadTime)}
	if err := CanCancel(a, false, bookingNow); err != nil {
		t.Fatalf("exactly at the lead-time floor should still be allowed, got %v", err)
	}
}

func TestRemainingSeats(t *testing.T) {
	s := AppointmentSlot{Capacity: 3, ReservedSeats: 1}
	if got := s.RemainingSeats(); got != 2 {
		t.Fatalf("expected 2 remaining, got %d", got)
	}

	over := AppointmentSlot{Capacity: 2, ReservedSeats: 5}
	if got := over.RemainingSeats(); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
}

func TestTypeDuration(t *testing.T) {
	short := AppointmentType{DurationMinutes: 30}
	if short.Duration() != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", short.Duration())
	}

	unset := AppointmentType{}
	if unset.Duration() != time.Hour {
		t.Fatalf("unset duration should default to an hour, got %v", unset.Duration())
	}
}
