package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNext_Weekly(t *testing.T) {
	// +7 days regardless of weekday.
	for i := 0; i < 7; i++ {
		cur := day(2025, time.April, 13+i)
		next, fellBack := Next(cur, FreqWeekly, nil)
		assert.False(t, fellBack)
		assert.Equal(t, cur.AddDate(0, 0, 7), next)
	}
}

func TestNext_BiWeekly(t *testing.T) {
	next, fellBack := Next(day(2025, time.April, 13), FreqBiWeekly, nil)
	assert.False(t, fellBack)
	assert.Equal(t, day(2025, time.April, 27), next)
}

func TestNext_Monthly(t *testing.T) {
	next, _ := Next(day(2025, time.April, 15), FreqMonthly, nil)
	assert.Equal(t, day(2025, time.May, 15), next)
}

func TestNext_MonthlyClampsToShorterMonth(t *testing.T) {
	next, _ := Next(day(2025, time.January, 31), FreqMonthly, nil)
	assert.Equal(t, day(2025, time.February, 28), next)

	// Leap year.
	next, _ = Next(day(2024, time.January, 31), FreqMonthly, nil)
	assert.Equal(t, day(2024, time.February, 29), next)

	next, _ = Next(day(2025, time.March, 31), FreqMonthly, nil)
	assert.Equal(t, day(2025, time.April, 30), next)
}

func TestNext_CustomWeekly_LaterThisWeek(t *testing.T) {
	// 2025-04-17 is a Thursday (weekday 4); {Mon,Wed,Fri} -> Friday, +1 day.
	next, fellBack := Next(day(2025, time.April, 17), FreqCustomWeekly, []int{1, 3, 5})
	assert.False(t, fellBack)
	assert.Equal(t, day(2025, time.April, 18), next)
}

func TestNext_CustomWeekly_WrapsToNextWeek(t *testing.T) {
	// 2025-04-19 is a Saturday (weekday 6); wraps to Monday: (7-6)+1 = 2 days.
	next, fellBack := Next(day(2025, time.April, 19), FreqCustomWeekly, []int{1, 3, 5})
	assert.False(t, fellBack)
	assert.Equal(t, day(2025, time.April, 21), next)
}

func TestNext_CustomWeekly_UnsortedDays(t *testing.T) {
	next, _ := Next(day(2025, time.April, 19), FreqCustomWeekly, []int{5, 1, 3})
	assert.Equal(t, day(2025, time.April, 21), next)
}

func TestNext_CustomWeekly_EmptyDaysFallsBack(t *testing.T) {
	next, fellBack := Next(day(2025, time.April, 17), FreqCustomWeekly, nil)
	assert.True(t, fellBack)
	assert.Equal(t, day(2025, time.April, 24), next)
}

func TestNext_UnknownFrequencyFallsBack(t *testing.T) {
	next, fellBack := Next(day(2025, time.April, 17), Frequency("Fortnightly"), nil)
	assert.True(t, fellBack)
	assert.Equal(t, day(2025, time.May, 17), next)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(FreqWeekly))
	assert.True(t, Known(FreqCustomWeekly))
	assert.False(t, Known(Frequency("OneTime")))
	assert.False(t, Known(Frequency("")))
}
