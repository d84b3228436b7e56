package auth

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"abc12345", true},
		{"longenough1", true},
		{"short1", false},
		{"onlyletters", false},
		{"12345678", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isPasswordStrong(tc.password); got != tc.want {
			t.Fatalf("isPasswordStrong(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestIsEmailValid(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.domain.org"}
	for _, email := range valid {
		if !isEmailValid(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "no-at.example.com", "user@", "@example.com", "user@example"}
	for _, email := range invalid {
		if isEmailValid(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}
