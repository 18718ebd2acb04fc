package helpers

import (
	"testing"
	"time"
)

func TestTodayFormat(t *testing.T) {
	today := Today()
	if _, err := time.ParseInLocation("2006-01-02", today, time.Local); err != nil {
		t.Fatalf("Today() = %q is not YYYY-MM-DD: %v", today, err)
	}
}

func TestParseLocalDate(t *testing.T) {
	parsed, err := ParseLocalDate("2025-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.January || parsed.Day() != 15 {
		t.Errorf("unexpected date: %v", parsed)
	}
	if parsed.Hour() != 12 || parsed.Minute() != 0 {
		t.Errorf("expected local noon, got %v", parsed)
	}
	if parsed.Location() != time.Local {
		t.Errorf("expected local timezone, got %v", parsed.Location())
	}
}

func TestParseLocalDateRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "15/01/2025", "2025-1-5", "not-a-date"} {
		if _, err := ParseLocalDate(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestNoonAnchor(t *testing.T) {
	late := time.Date(2025, time.March, 3, 23, 45, 0, 0, time.Local)
	early := time.Date(2025, time.March, 3, 0, 10, 0, 0, time.Local)

	if got := NoonAnchor(late); got.Hour() != 12 || got.Day() != 3 {
		t.Errorf("unexpected anchor for late instant: %v", got)
	}
	if !NoonAnchor(late).Equal(NoonAnchor(early)) {
		t.Error("instants on the same calendar day must share an anchor")
	}
}

func TestNoonAnchorWithinStoredWindow(t *testing.T) {
	// a window stored via ParseLocalDate must contain the anchor of any
	// instant on its boundary days
	start, _ := ParseLocalDate("2025-01-01")
	end, _ := ParseLocalDate("2025-01-31")

	lastDay := time.Date(2025, time.January, 31, 23, 59, 0, 0, time.Local)
	anchor := NoonAnchor(lastDay)
	if anchor.Before(start) || anchor.After(end) {
		t.Errorf("anchor %v should fall inside [%v, %v]", anchor, start, end)
	}
}
