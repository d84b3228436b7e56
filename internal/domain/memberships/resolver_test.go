package memberships

import (
	"testing"
	"time"
)

var resolverNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestPickActivePrefersSubscription(t *testing.T) {
	subs := []Subscription{
		{ID: 1, MembershipType: TierPremium, Status: SubscriptionStatusActive, EndDate: resolverNow.AddDate(0, 6, 0)},
	}
	legacy := []Membership{
		{ID: 9, MembershipType: TierBasic, IsActive: true, EndDate: resolverNow.AddDate(1, 0, 0)},
	}

	active := PickActive(subs, legacy, resolverNow)
	if active == nil {
		t.Fatal("expected an active membership")
	}
	if active.Source != SourceSubscription || active.Tier != TierPremium {
		t.Fatalf("subscription should win over legacy membership: %+v", active)
	}
}

func TestPickActiveLatestExpiringWins(t *testing.T) {
	subs := []Subscription{
		{ID: 1, MembershipType: TierBasic, Status: SubscriptionStatusActive, EndDate: resolverNow.AddDate(0, 1, 0)},
		{ID: 2, MembershipType: TierEnterprise, Status: SubscriptionStatusActive, EndDate: resolverNow.AddDate(0, 11, 0)},
		{ID: 3, MembershipType: TierPremium, Status: SubscriptionStatusActive, EndDate: resolverNow.AddDate(0, 5, 0)},
	}

	active := PickActive(subs, nil, resolverNow)
	if active == nil || active.RecordID != 2 {
		t.Fatalf("expected the latest-expiring subscription, got %+v", active)
	}
}

func TestPickActiveIgnoresExpiredAndCancelled(t *testing.T) {
	subs := []Subscription{
		{ID: 1, MembershipType: TierPremium, Status: SubscriptionStatusActive, EndDate: resolverNow.AddDate(0, 0, -1)},
		{ID: 2, MembershipType: TierPremium, Status: SubscriptionStatusCancelled, EndDate: resolverNow.AddDate(0, 6, 0)},
	}

	if active := PickActive(subs, nil, resolverNow); active != nil {
		t.Fatalf("expected no active membership, got %+v", active)
	}
}

func TestPickActiveFallsBackToLegacy(t *testing.T) {
	legacy := []Membership{
		{ID: 4, MembershipType: TierBasic, IsActive: false},
		{ID: 5, MembershipType: TierEnterprise, IsActive: true},
	}

	active := PickActive(nil, legacy, resolverNow)
	if active == nil || active.Source != SourceMembership || active.RecordID != 5 {
		t.Fatalf("expected the active legacy membership, got %+v", active)
	}
}

func TestPickActiveNone(t *testing.T) {
	if active := PickActive(nil, nil, resolverNow); active != nil {
		t.Fatalf("expected nil, got %+v", active)
	}
}

func TestSubscriptionIsCurrent(t *testing.T) {
	sub := Subscription{Status: SubscriptionStatusActive, EndDate: resolverNow}
	if !sub.IsCurrent(resolverNow) {
		t.Fatal("subscription ending exactly now should still be current")
	}
	if sub.IsCurrent(resolverNow.Add(time.Second)) {
		t.Fatal("subscription past its end date should not be current")
	}

	sub.Status = SubscriptionStatusExpired
	if sub.IsCurrent(resolverNow.Add(-time.Hour)) {
		t.Fatal("non-active status should never be current")
	}
}

func TestCheckoutAmountCents(t *testing.T) {
	cases := []struct {
		tier   string
		amount int64
		ok     bool
	}{
		{TierBasic, 7500, true},
		{TierPremium, 15000, true},
		{TierEnterprise, 30000, true},
		{"gold", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		amount, ok := CheckoutAmountCents(tc.tier)
		if amount != tc.amount || ok != tc.ok {
			t.Fatalf("CheckoutAmountCents(%q) = %d, %v; want %d, %v", tc.tier, amount, ok, tc.amount, tc.ok)
		}
	}
}
