package pricing

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestApplyPercentage(t *testing.T) {
	d := &Discount{DiscountType: DiscountTypePercentage, Value: 20, IsActive: true}
	q := Apply(100, d)
	if q.FinalPrice != 80 {
		t.Fatalf("expected final price 80, got %v", q.FinalPrice)
	}
	if q.DiscountApplied != 20 {
		t.Fatalf("expected discount 20, got %v", q.DiscountApplied)
	}
}

func TestApplyFixedNeverNegative(t *testing.T) {
	d := &Discount{DiscountType: DiscountTypeFixed, Value: 150, IsActive: true}
	q := Apply(100, d)
	if q.FinalPrice != 0 {
		t.Fatalf("expected final price floored at 0, got %v", q.FinalPrice)
	}
	if q.DiscountApplied != 100 {
		t.Fatalf("expected discount capped at base price, got %v", q.DiscountApplied)
	}
}

func TestApplyIncludedBeatsOverride(t *testing.T) {
	d := &Discount{IsIncluded: true, PriceOverride: floatPtr(50), IsActive: true}
	q := Apply(100, d)
	if q.FinalPrice != 0 {
		t.Fatalf("included discount should make it free, got %v", q.FinalPrice)
	}
}

func TestApplyOverride(t *testing.T) {
	d := &Discount{PriceOverride: floatPtr(25), DiscountType: DiscountTypePercentage, Value: 10, IsActive: true}
	q := Apply(100, d)
	if q.FinalPrice != 25 {
		t.Fatalf("override should win over percentage, got %v", q.FinalPrice)
	}
}

func TestApplyNilDiscount(t *testing.T) {
	q := Apply(100, nil)
	if q.FinalPrice != 100 || q.DiscountApplied != 0 {
		t.Fatalf("nil discount should leave price untouched: %+v", q)
	}
}

func TestQuoteForNilTier(t *testing.T) {
	ranked := []Discount{{DiscountType: DiscountTypePercentage, Value: 50, IsActive: true}}
	q := QuoteFor(100, nil, ranked, testNow)
	if q.FinalPrice != 100 {
		t.Fatalf("no tier should get base price, got %v", q.FinalPrice)
	}
}

func TestQuoteForPicksFirstApplicable(t *testing.T) {
	ranked := []Discount{
		{DiscountType: DiscountTypePercentage, Value: 10, MembershipTier: strPtr("enterprise"), IsActive: true},
		{DiscountType: DiscountTypePercentage, Value: 30, MembershipTier: strPtr("premium"), IsActive: true},
		{DiscountType: DiscountTypePercentage, Value: 50, MembershipTier: strPtr("premium"), IsActive: true},
	}
	q := QuoteFor(100, strPtr("premium"), ranked, testNow)
	if q.FinalPrice != 70 {
		t.Fatalf("expected the higher-priority premium rule (30%%), got final %v", q.FinalPrice)
	}
}

func TestQuoteForNoMatchingRule(t *testing.T) {
	ranked := []Discount{
		{DiscountType: DiscountTypePercentage, Value: 10, MembershipTier: strPtr("enterprise"), IsActive: true},
	}
	q := QuoteFor(100, strPtr("basic"), ranked, testNow)
	if q.FinalPrice != 100 {
		t.Fatalf("tier with no rule should pay base price, got %v", q.FinalPrice)
	}
}

func TestAppliesToValidityWindow(t *testing.T) {
	d := Discount{
		DiscountType: DiscountTypePercentage,
		Value:        10,
		IsActive:     true,
		ValidFrom:    timePtr(testNow.Add(1 * time.Hour)),
	}
	if d.AppliesTo("basic", testNow) {
		t.Fatal("discount should not apply before valid_from")
	}

	d.ValidFrom = timePtr(testNow.Add(-2 * time.Hour))
	d.ValidUntil = timePtr(testNow.Add(-1 * time.Hour))
	if d.AppliesTo("basic", testNow) {
		t.Fatal("discount should not apply after valid_until")
	}

	d.ValidUntil = timePtr(testNow.Add(1 * time.Hour))
	if !d.AppliesTo("basic", testNow) {
		t.Fatal("discount should apply inside its window")
	}
}

func TestAppliesToInactive(t *testing.T) {
	d := Discount{DiscountType: DiscountTypePercentage, Value: 10, IsActive: false}
	if d.AppliesTo("basic", testNow) {
		t.Fatal("inactive discount should never apply")
	}
}

func TestAppliesToUsageCap(t *testing.T) {
	maxUses := 3
	d := Discount{DiscountType: DiscountTypePercentage, Value: 10, IsActive: true, MaxUses: &maxUses}

	d.CurrentUses = 2
	if !d.AppliesTo("basic", testNow) {
		t.Fatal("discount under its cap should apply")
	}

	d.CurrentUses = 3
	if d.AppliesTo("basic", testNow) {
		t.Fatal("discount at its cap should stop applying")
	}

	d.MaxUses = nil
	d.CurrentUses = 1000
	if !d.AppliesTo("basic", testNow) {
		t.Fatal("uncapped discount should apply regardless of uses")
	}
}

func TestAppliesToUnscopedTier(t *testing.T) {
	d := Discount{DiscountType: DiscountTypeFixed, Value: 5, IsActive: true}
	if !d.AppliesTo("enterprise", testNow) {
		t.Fatal("discount without tier scope should apply to any paid tier")
	}
}
