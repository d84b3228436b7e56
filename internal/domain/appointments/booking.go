package appointments

import (
	"errors"
	"fmt"
	"time"

	"membership-app/internal/domain/pricing"

	"gorm.io/gorm"
)

// SelfCancelLeadTime is the minimum notice members must give to cancel their
// own appointment. Admin cancellation has no floor.
const SelfCancelLeadTime = 12 * time.Hour

var (
	ErrSlotFull           = errors.New("slot has no remaining seats")
	ErrAlreadyCancelled   = errors.New("appointment is already cancelled")
	ErrAlreadyStarted     = errors.New("appointment has already started")
	ErrCancelWindowClosed = errors.New("cancellation window has closed")
)

// CanCancel decides whether an appointment may be cancelled at now. The
// status and start-time checks apply to everyone; only non-admin callers are
// held to the lead-time floor.
func CanCancel(a *Appointment, isAdmin bool, now time.Time) error {
	if a.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !a.StartDatetime.After(now) {
		return ErrAlreadyStarted
	}
	if !isAdmin && a.StartDatetime.Sub(now) < SelfCancelLeadTime {
		return ErrCancelWindowClosed
	}
	return nil
}

// QuoteFor prices the appointment type for the given tier using its ranked
// discounts.
func QuoteFor(db *gorm.DB, typeID uint, basePrice float64, tier *string) (pricing.Quote, error) {
	var joins []AppointmentTypeDiscount
	err := db.
		Preload("Discount").
		Where("appointment_type_id = ?", typeID).
		Order("priority ASC").
		Find(&joins).Error
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("failed to load appointment discounts: %w", err)
	}

	ranked := make([]pricing.Discount, 0, len(joins))
	for _, j := range joins {
		ranked = append(ranked, j.Discount)
	}
	return pricing.QuoteFor(basePrice, tier, ranked, time.Now().UTC()), nil
}

// ReserveSeat takes one seat from the slot. The check and the increment run
// in a single conditional UPDATE, so concurrent bookings of the last seat
// cannot both succeed; IsAvailable is derived from the counters in the same
// statement.
func ReserveSeat(db *gorm.DB, slotID uint) error {
	res := db.Model(&AppointmentSlot{}).
		Where("id = ? AND is_available = ? AND reserved_seats < capacity", slotID, true).
		UpdateColumns(map[string]interface{}{
			"reserved_seats": gorm.Expr("reserved_seats + 1"),
			"is_available":   gorm.Expr("reserved_seats + 1 < capacity"),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to reserve seat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSlotFull
	}
	return nil
}

// ReleaseSeat returns one seat to the slot, floored at zero, recomputing
// IsAvailable from the counters instead of forcing it.
func ReleaseSeat(db *gorm.DB, slotID uint) error {
	res := db.Model(&AppointmentSlot{}).
		Where("id = ? AND reserved_seats > 0", slotID).
		UpdateColumns(map[string]interface{}{
			"reserved_seats": gorm.Expr("reserved_seats - 1"),
			"is_available":   gorm.Expr("reserved_seats - 1 < capacity"),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to release seat: %w", res.Error)
	}
	return nil
}
