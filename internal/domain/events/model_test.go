package events

import "testing"

func TestInitialRegistrationStatus(t *testing.T) {
	if got := InitialRegistrationStatus(0); got != RegistrationStatusConfirmed {
		t.Fatalf("free registration should auto-confirm, got %q", got)
	}
	if got := InitialRegistrationStatus(25.50); got != RegistrationStatusPending {
		t.Fatalf("priced registration should stay pending, got %q", got)
	}
}

func TestIsFull(t *testing.T) {
	unlimited := Event{Capacity: 0, RegisteredCount: 5000}
	if unlimited.IsFull() {
		t.Fatal("unlimited event should never be full")
	}

	full := Event{Capacity: 10, RegisteredCount: 10}
	if !full.IsFull() {
		t.Fatal("event at capacity should be full")
	}

	open := Event{Capacity: 10, RegisteredCount: 9}
	if open.IsFull() {
		t.Fatal("event under capacity should not be full")
	}
}

func TestSpotsLeft(t *testing.T) {
	e := Event{Capacity: 10, RegisteredCount: 7}
	left, ok := e.SpotsLeft()
	if !ok || left != 3 {
		t.Fatalf("expected 3 spots, got %d (ok=%v)", left, ok)
	}

	unlimited := Event{Capacity: 0}
	if _, ok := unlimited.SpotsLeft(); ok {
		t.Fatal("unlimited event should report no spot count")
	}

	oversold := Event{Capacity: 5, RegisteredCount: 8}
	if left, _ := oversold.SpotsLeft(); left != 0 {
		t.Fatalf("oversold event should floor at 0, got %d", left)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Taller de Escritura Académica", "taller-de-escritura-acad-mica"},
		{"Go 101: Intro", "go-101-intro"},
		{"  spaced   out  ", "spaced-out"},
		{"ALLCAPS", "allcaps"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyEmptyTitleFallsBack(t *testing.T) {
	got := Slugify("¡¡¡")
	if got == "" {
		t.Fatal("empty slug should fall back to a generated one")
	}
}
