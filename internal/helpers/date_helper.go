package helpers

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Today returns the current calendar date as YYYY-MM-DD in local time.
// Coupon windows are calendar-date based, so date ordering checks compare
// these strings directly.
func Today() string {
	return time.Now().Format(dateLayout)
}

// ParseLocalDate converts a YYYY-MM-DD string to an instant pinned at
// local noon. Anchoring at midday keeps the stored date from shifting a
// day when it crosses timezone boundaries.
func ParseLocalDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return parsed.Add(12 * time.Hour), nil
}

// NoonAnchor pins the given instant's calendar date to local midday.
// All validity-window comparisons use this anchor so a coupon is
// classified the same way for its entire last day.
func NoonAnchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
