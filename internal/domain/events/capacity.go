package events

import (
	"errors"
	"fmt"
	"time"

	"membership-app/internal/domain/pricing"

	"gorm.io/gorm"
)

var ErrEventFull = errors.New("event is at capacity")

// QuoteFor loads the event's discounts ranked by join priority and prices the
// event for the given tier.
func QuoteFor(db *gorm.DB, eventID uint, basePrice float64, tier *string) (pricing.Quote, error) {
	var joins []EventDiscount
	err := db.
		Preload("Discount").
		Where("event_id = ?", eventID).
		Order("priority ASC").
		Find(&joins).Error
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("failed to load event discounts: %w", err)
	}

	ranked := make([]pricing.Discount, 0, len(joins))
	for _, j := range joins {
		ranked = append(ranked, j.Discount)
	}
	return pricing.QuoteFor(basePrice, tier, ranked, time.Now().UTC()), nil
}

// TakeSpot increments the registered counter only while capacity remains, in
// a single conditional UPDATE so two concurrent registrations cannot both
// claim the last spot.
func TakeSpot(db *gorm.DB, eventID uint) error {
	res := db.Model(&Event{}).
		Where("id = ? AND (capacity = 0 OR registered_count < capacity)", eventID).
		UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to take event spot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEventFull
	}
	return nil
}

// ReleaseSpot decrements the registered counter, floored at zero.
func ReleaseSpot(db *gorm.DB, eventID uint) error {
	res := db.Model(&Event{}).
		Where("id = ? AND registered_count > 0", eventID).
		UpdateColumn("registered_count", gorm.Expr("registered_count - 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to release event spot: %w", res.Error)
	}
	return nil
}
