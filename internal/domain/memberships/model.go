package memberships

import (
	"time"

	"membership-app/internal/domain/users"
)

// Membership is the legacy paid-tier record. Newer payments create a
// Subscription instead; Membership rows only survive for old accounts.
type Membership struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"not null;index"`
	User           users.User
	MembershipType string `gorm:"type:varchar(50);not null"`
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool    `gorm:"default:true"`
	PaymentStatus  string  `gorm:"type:varchar(20);default:'pending'"`
	Amount         float64 `gorm:"not null"`
	CreatedAt      time.Time
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

type Subscription struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"not null;index"`
	User           users.User
	PaymentID      uint   `gorm:"not null"`
	MembershipType string `gorm:"type:varchar(50);not null"`
	Status         string `gorm:"type:varchar(20);default:'active'"`
	StartDate      time.Time
	EndDate        time.Time
	AutoRenew      bool `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCurrent reports whether the subscription still grants access at now.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && !now.After(s.EndDate)
}

type Benefit struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	Description    string
	MembershipType string `gorm:"type:varchar(50);not null"`
	IsActive       bool   `gorm:"default:true"`
}
