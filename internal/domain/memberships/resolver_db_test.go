package memberships

import (
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
	if err := db.AutoMigrate(&Subscription{}, &Membership{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestResolveActiveFindsCurrentSubscription(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()

	subs := []Subscription{
		{UserID: 1, PaymentID: 1, MembershipType: TierBasic, Status: SubscriptionStatusActive, StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(0, 0, -1)},
		{UserID: 1, PaymentID: 2, MembershipType: TierPremium, Status: SubscriptionStatusActive, StartDate: now, EndDate: now.AddDate(0, 6, 0)},
		{UserID: 1, PaymentID: 3, MembershipType: TierEnterprise, Status: SubscriptionStatusCancelled, StartDate: now, EndDate: now.AddDate(1, 0, 0)},
		{UserID: 2, PaymentID: 4, MembershipType: TierEnterprise, Status: SubscriptionStatusActive, StartDate: now, EndDate: now.AddDate(1, 0, 0)},
	}
	for i := range subs {
		if err := db.Create(&subs[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	active, err := ResolveActive(db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active == nil || active.Tier != TierPremium || active.Source != SourceSubscription {
		t.Fatalf("expected the current premium subscription, got %+v", active)
	}
}

func TestResolveActiveLegacyFallback(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()

	legacy := Membership{UserID: 3, MembershipType: TierBasic, IsActive: true, StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(1, 0, 0), Amount: 75}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatal(err)
	}

	active, err := ResolveActive(db, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active == nil || active.Source != SourceMembership || active.Tier != TierBasic {
		t.Fatalf("expected the legacy membership, got %+v", active)
	}
}

func TestResolveActiveNone(t *testing.T) {
	db := openTestDB(t)

	active, err := ResolveActive(db, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected nil for a user with nothing, got %+v", active)
	}
}
