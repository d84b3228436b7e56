package pricing

import "time"

// Quote is the price computed for one (service, tier) pair. Prices are
// snapshotted onto the booking/registration row at creation time and never
// recomputed afterwards.
type Quote struct {
	BasePrice       float64   `json:"base_price"`
	FinalPrice      float64   `json:"final_price"`
	DiscountApplied float64   `json:"discount_applied"`
	Discount        *Discount `json:"-"`
}

// Apply computes the final price for a base price under a single discount.
// Rule order: included beats override beats percentage beats fixed. The
// result is never negative.
func Apply(basePrice float64, d *Discount) Quote {
	q := Quote{BasePrice: basePrice, FinalPrice: basePrice}
	if d == nil {
		return q
	}

	final := basePrice
	switch {
	case d.IsIncluded:
		final = 0
	case d.PriceOverride != nil:
		final = *d.PriceOverride
	case d.DiscountType == DiscountTypePercentage:
		final = basePrice * (1 - d.Value/100)
	case d.DiscountType == DiscountTypeFixed:
		final = basePrice - d.Value
	default:
		return q
	}

	if final < 0 {
		final = 0
	}

	q.FinalPrice = final
	q.DiscountApplied = basePrice - final
	q.Discount = d
	return q
}

// QuoteFor picks the first applicable discount from ranked (already ordered
// by ascending join priority) and applies it. A nil tier gets the base price
// untouched; so does a tier with no matching rule.
func QuoteFor(basePrice float64, tier *string, ranked []Discount, now time.Time) Quote {
	if tier == nil || *tier == "" {
		return Apply(basePrice, nil)
	}
	for i := range ranked {
		if ranked[i].AppliesTo(*tier, now) {
			return Apply(basePrice, &ranked[i])
		}
	}
	return Apply(basePrice, nil)
}
