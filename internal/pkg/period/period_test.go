package period

import (
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	valid := []string{"2025-01", "2025-09", "2025-12", "1999-10"}
	for _, p := range valid {
		if !IsValid(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "2025-13", "2025-00", "2025-1", "25-01", "2025/01", "2025-01-15", "abcd-ef"}
	for _, p := range invalid {
		if IsValid(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestLexicographicOrderIsChronological(t *testing.T) {
	if !("2024-12" < "2025-01") {
		t.Fatal("expected 2024-12 < 2025-01")
	}
	if !("2025-09" < "2025-10") {
		t.Fatal("expected 2025-09 < 2025-10")
	}
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2025, time.October, 31, 23, 59, 0, 0, time.UTC)
	if got := FromTime(ts); got != "2025-10" {
		t.Fatalf("expected 2025-10, got %s", got)
	}
}

func TestPreviousStepsBackWholeMonths(t *testing.T) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for monthsAgo := 0; monthsAgo <= 14; monthsAgo++ {
		want := first.AddDate(0, -monthsAgo, 0).Format(Layout)
		if got := Previous(monthsAgo); got != want {
			t.Fatalf("Previous(%d): expected %s, got %s", monthsAgo, want, got)
		}
	}
}
