package billing

import (
	"time"

	"membership-app/internal/domain/users"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

type Payment struct {
	ID                    uint `gorm:"primaryKey"`
	UserID                uint `gorm:"not null;index"`
	User                  users.User
	StripePaymentIntentID string `gorm:"not null;uniqueIndex"`
	AmountCents           int64  `gorm:"not null"`
	Currency              string `gorm:"type:varchar(3);default:'usd'"`
	Status                string `gorm:"type:varchar(20);default:'pending'"`
	MembershipType        string `gorm:"type:varchar(50);not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
