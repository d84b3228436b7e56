package notify

import (
	"strings"
	"testing"
	"time"

	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/users"
)

func TestBackoffGrowsLinearly(t *testing.T) {
	m := &Mailer{retryDelay: 2 * time.Second}
	if m.Backoff(1) != 2*time.Second {
		t.Fatalf("expected 2s after first attempt, got %v", m.Backoff(1))
	}
	if m.Backoff(2) != 4*time.Second {
		t.Fatalf("expected 4s after second attempt, got %v", m.Backoff(2))
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("short string should pass through, got %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello" {
		t.Fatalf("expected 5-byte cap, got %q", got)
	}
	if got := Truncate("", 5); got != "" {
		t.Fatalf("empty string should stay empty, got %q", got)
	}
}

func TestWelcomeEmail(t *testing.T) {
	user := &users.User{FirstName: "Ana", Email: "ana@example.com"}
	subject, html := WelcomeEmail(user)
	if subject == "" {
		t.Fatal("expected a subject")
	}
	if !strings.Contains(html, "Ana") {
		t.Fatal("welcome email should address the user by name")
	}
	if !strings.Contains(html, "<html>") {
		t.Fatal("welcome email should be a full HTML document")
	}
}

func TestPaymentConfirmationEmail(t *testing.T) {
	user := &users.User{FirstName: "Luis"}
	payment := &billing.Payment{
		MembershipType: memberships.TierPremium,
		AmountCents:    15000,
		CreatedAt:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	sub := &memberships.Subscription{
		MembershipType: memberships.TierPremium,
		EndDate:        time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	_, html := PaymentConfirmationEmail(user, payment, sub)
	if !strings.Contains(html, "$150.00") {
		t.Fatalf("expected the amount in dollars, got: %s", html)
	}
	if !strings.Contains(html, "15/03/2027") {
		t.Fatal("expected the subscription end date")
	}
}

func TestMembershipExpiringEmail(t *testing.T) {
	user := &users.User{FirstName: "Eva"}
	sub := &memberships.Subscription{
		MembershipType: memberships.TierBasic,
		EndDate:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	subject, html := MembershipExpiringEmail(user, sub, 7)
	if !strings.Contains(subject, "7") {
		t.Fatalf("subject should carry the days left, got %q", subject)
	}
	if !strings.Contains(html, "01/04/2026") {
		t.Fatal("body should carry the expiry date")
	}
}
