package pricing

import (
	"time"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Discount is a configured price adjustment. It may be scoped to a membership
// tier and to a validity window; join rows on events and appointment types
// carry the priority used to rank multiple attached discounts.
type Discount struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	Description    string
	DiscountType   string  `gorm:"type:varchar(20);not null"`
	Value          float64 `gorm:"default:0"`
	MembershipTier *string `gorm:"type:varchar(50)"`
	IsIncluded     bool    `gorm:"default:false"`
	PriceOverride  *float64
	ValidFrom      *time.Time
	ValidUntil     *time.Time

	// MaxUses nil means unlimited. CurrentUses is only mutated through
	// IncrementUse.
	MaxUses     *int
	CurrentUses int `gorm:"default:0"`

	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo reports whether the discount is usable by the given tier at now.
// An empty tier scope means the discount applies to every paid tier.
func (d *Discount) AppliesTo(tier string, now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.MembershipTier != nil && *d.MembershipTier != "" && *d.MembershipTier != tier {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	if d.MaxUses != nil && d.CurrentUses >= *d.MaxUses {
		return false
	}
	return true
}
