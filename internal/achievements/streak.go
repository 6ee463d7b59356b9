package achievements

import (
	"sort"
	"time"

	"github.com/julianstephens/plop/internal/models"
)

// Day is a calendar day expressed as a count of days since 1970-01-01.
// Consecutive calendar days always differ by exactly 1, including across
// DST changes.
type Day int64

// DayOf truncates t to its calendar day in loc
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return Day(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DistinctDays collapses the history into unique calendar days, sorted
// newest first.
func DistinctDays(history []models.Log, loc *time.Location) []Day {
	seen := make(map[Day]struct{}, len(history))
	days := make([]Day, 0, len(history))
	for _, l := range history {
		d := DayOf(l.Date, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}

// HasStreak scans days (distinct, newest first) and reports whether any run
// of length consecutive days exists. The running count resets on any gap
// other than exactly one day.
func HasStreak(days []Day, length int) bool {
	if length <= 1 {
		return len(days) >= length
	}
	if len(days) < length {
		return false
	}
	run := 0
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] == 1 {
			run++
		} else {
			run = 0
		}
		if run >= length-1 {
			return true
		}
	}
	return false
}

// LongestStreak returns the longest run of consecutive days
func LongestStreak(days []Day) int {
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}

// CurrentStreak returns the run that ends today, or yesterday if nothing has
// been logged yet today.
func CurrentStreak(days []Day, today Day) int {
	if len(days) == 0 {
		return 0
	}
	if today-days[0] > 1 || days[0] > today {
		return 0
	}
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] != 1 {
			break
		}
		run++
	}
	return run
}
