package payperiod

import (
	"regexp"
	"time"
)

// Pay periods are fixed 14-day buckets anchored at a known Sunday midnight UTC.
// The anchor never moves; every date, past or future, maps to exactly one bucket.
var anchor = time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)

const periodDays = 14

var idPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Period struct {
	Start time.Time
	End   time.Time
	ID    string
}

// Resolve maps a date to the bi-weekly pay period containing it.
// The input is truncated to its UTC calendar day first, so any clock
// time within the same UTC day resolves to the same period.
func Resolve(t time.Time) Period {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	daysSinceAnchor := int(day.Sub(anchor) / (24 * time.Hour))
	idx := floorDiv(daysSinceAnchor, periodDays)

	start := anchor.AddDate(0, 0, idx*periodDays)
	return Period{
		Start: start,
		End:   start.AddDate(0, 0, periodDays-1),
		ID:    start.Format("2006-01-02"),
	}
}

// ValidID reports whether s has the YYYY-MM-DD shape Resolve produces.
func ValidID(s string) bool {
	if !idPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ResolveID maps a period id back to its full period. The id does not have
// to be bucket-aligned; any date inside the bucket resolves the same way.
func ResolveID(id string) (Period, bool) {
	t, err := time.Parse("2006-01-02", id)
	if err != nil {
		return Period{}, false
	}
	return Resolve(t), true
}

// floorDiv divides rounding toward negative infinity, so dates before the
// anchor land in the correct signed bucket instead of straddling zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
