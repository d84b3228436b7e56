package memberships

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	SourceSubscription = "subscription"
	SourceMembership   = "membership"
)

// ActiveMembership is the currently valid paid tier of a user, regardless of
// whether it came from a Subscription or a legacy Membership row.
type ActiveMembership struct {
	Tier      string
	Source    string
	RecordID  uint
	StartDate time.Time
	EndDate   time.Time
}

// PickActive prefers a current subscription over a legacy membership. When a
// user somehow holds several active subscriptions, the latest-expiring one
// wins, so the result is deterministic.
func PickActive(subs []Subscription, legacy []Membership, now time.Time) *ActiveMembership {
	var best *Subscription
	for i := range subs {
		s := &subs[i]
		if !s.IsCurrent(now) {
			continue
		}
		if best == nil || s.EndDate.After(best.EndDate) {
			best = s
		}
	}
	if best != nil {
		return &ActiveMembership{
			Tier:      best.MembershipType,
			Source:    SourceSubscription,
			RecordID:  best.ID,
			StartDate: best.StartDate,
			EndDate:   best.EndDate,
		}
	}

	for i := range legacy {
		m := &legacy[i]
		if !m.IsActive {
			continue
		}
		return &ActiveMembership{
			Tier:      m.MembershipType,
			Source:    SourceMembership,
			RecordID:  m.ID,
			StartDate: m.StartDate,
			EndDate:   m.EndDate,
		}
	}

	return nil
}

// ResolveActive returns the user's valid paid tier, or nil when the user has
// none. Callers must treat nil as "no paid tier" and degrade access.
func ResolveActive(db *gorm.DB, userID uint) (*ActiveMembership, error) {
	now := time.Now().UTC()

	var subs []Subscription
	err := db.
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, SubscriptionStatusActive, now).
		Order("end_date DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	var legacy []Membership
	err = db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&legacy).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load legacy memberships: %w", err)
	}

	return PickActive(subs, legacy, now), nil
}
