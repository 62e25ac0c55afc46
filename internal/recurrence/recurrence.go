package recurrence

import (
	"sort"
	"time"
)

type Frequency string

const (
	FreqWeekly       Frequency = "Weekly"
	FreqBiWeekly     Frequency = "Bi-Weekly"
	FreqMonthly      Frequency = "Monthly"
	FreqCustomWeekly Frequency = "CustomWeekly"
)

var recurring = []Frequency{FreqWeekly, FreqBiWeekly, FreqMonthly, FreqCustomWeekly}

// RecurringFrequencies returns the frequencies the generator schedules for.
func RecurringFrequencies() []string {
	out := make([]string, len(recurring))
	for i, f := range recurring {
		out[i] = string(f)
	}
	return out
}

func Known(f Frequency) bool {
	for _, r := range recurring {
		if f == r {
			return true
		}
	}
	return false
}

// Next computes the due date following current under the given frequency rule.
// serviceDays (0=Sunday..6=Saturday) is only consulted for CustomWeekly.
// The second return value is true when the rule could not be applied as
// specified and a fallback was used instead (empty serviceDays, unknown
// frequency); callers should log it but keep going.
func Next(current time.Time, freq Frequency, serviceDays []int) (time.Time, bool) {
	switch freq {
	case FreqWeekly:
		return current.AddDate(0, 0, 7), false
	case FreqBiWeekly:
		return current.AddDate(0, 0, 14), false
	case FreqMonthly:
		return addMonthClamped(current), false
	case FreqCustomWeekly:
		if len(serviceDays) == 0 {
			return current.AddDate(0, 0, 7), true
		}
		return current.AddDate(0, 0, daysToNext(int(current.Weekday()), serviceDays)), false
	default:
		return addMonthClamped(current), true
	}
}

// daysToNext finds the smallest listed weekday strictly after today, wrapping
// to the first listed day of the following week when none remains.
func daysToNext(today int, serviceDays []int) int {
	days := append([]int(nil), serviceDays...)
	sort.Ints(days)
	for _, d := range days {
		if d > today {
			return d - today
		}
	}
	return (7 - today) + days[0]
}

// addMonthClamped advances one calendar month, clamping to the last day of
// the target month instead of letting the overflow spill into the next one
// (Jan 31 -> Feb 28, not Mar 3).
func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	lastDay := time.Date(y, m+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m+1, d, hh, mm, ss, t.Nanosecond(), t.Location())
}
