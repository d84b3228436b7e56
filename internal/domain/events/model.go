package events

import (
	"time"

	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/users"
)

const (
	PublishStatusDraft     = "draft"
	PublishStatusPublished = "published"
	PublishStatusArchived  = "archived"
)

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"not null;uniqueIndex:idx_events_slug"`
	Title       string `gorm:"not null"`
	Summary     string
	Description string
	Category    string
	Format      string
	Tags        string
	Location    string
	Country     string
	IsVirtual   bool `gorm:"default:true"`

	Currency  string  `gorm:"type:varchar(3);default:'USD'"`
	BasePrice float64 `gorm:"default:0"`

	// Capacity 0 means unlimited. RegisteredCount is denormalized and only
	// ever mutated through TakeSpot/ReleaseSpot.
	Capacity        int `gorm:"default:0"`
	RegisteredCount int `gorm:"default:0"`

	StartDate            *time.Time
	EndDate              *time.Time
	RegistrationDeadline *time.Time

	HasCertificate          bool
	CertificateInstructions string

	PublishStatus string `gorm:"type:varchar(20);default:'draft'"`
	Featured      bool   `gorm:"default:false"`

	Discounts []EventDiscount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDiscount attaches a discount to an event; Priority ranks competing
// rules, lowest number first.
type EventDiscount struct {
	ID         uint `gorm:"primaryKey"`
	EventID    uint `gorm:"not null;index"`
	DiscountID uint `gorm:"not null"`
	Discount   pricing.Discount
	Priority   int `gorm:"default:1"`
}

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

type EventRegistration struct {
	ID        uint `gorm:"primaryKey"`
	EventID   uint `gorm:"not null;index:idx_event_registrations_event_user"`
	Event     Event
	UserID    uint `gorm:"not null;index:idx_event_registrations_event_user"`
	User      users.User
	Reference string `gorm:"uniqueIndex:idx_event_registrations_reference"`

	MembershipType  *string `gorm:"type:varchar(50)"`
	BasePrice       float64 `gorm:"default:0"`
	FinalPrice      float64 `gorm:"default:0"`
	DiscountApplied float64 `gorm:"default:0"`

	Status    string `gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull reports whether the event has a capacity and it is exhausted.
func (e *Event) IsFull() bool {
	return e.Capacity > 0 && e.RegisteredCount >= e.Capacity
}

// SpotsLeft returns the remaining capacity; ok is false for unlimited events.
func (e *Event) SpotsLeft() (int, bool) {
	if e.Capacity <= 0 {
		return 0, false
	}
	left := e.Capacity - e.RegisteredCount
	if left < 0 {
		left = 0
	}
	return left, true
}

// InitialRegistrationStatus auto-confirms free registrations; priced ones
// wait for payment or admin confirmation.
func InitialRegistrationStatus(finalPrice float64) string {
	if finalPrice == 0 {
		return RegistrationStatusConfirmed
	}
	return RegistrationStatusPending
}
