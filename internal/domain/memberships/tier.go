package memberships

// Tier constants (single source of truth)
const (
	TierBasic      = "basic"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

// CheckoutAmountCents returns the fixed checkout price for a tier, in cents.
func CheckoutAmountCents(tier string) (int64, bool) {
	switch tier {
	case TierBasic:
		return 7500, true
	case TierPremium:
		return 15000, true
	case TierEnterprise:
		return 30000, true
	}
	return 0, false
}

func IsValidTier(tier string) bool {
	_, ok := CheckoutAmountCents(tier)
	return ok
}
