package service

import (
	"time"

	"anoa.com/learnquest/internal/entity"
)

const dateLayout = "2006-01-02"

// FormatDate renders a streak date the way the date column stores it.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}

// ClaimedToday reports whether the streak was completed on or after today's UTC midnight.
func ClaimedToday(streak *entity.Streak, startOfDay time.Time) bool {
	if streak == nil || streak.LastCompletedDate == nil {
		return false
	}
	return !streak.LastCompletedDate.Before(startOfDay)
}

// NextStreak applies a claim made on day today (UTC midnight). It returns false
// when the streak was already claimed today. A claim the day after the last one
// extends the streak; any longer gap restarts it at 1.
func NextStreak(current entity.Streak, today time.Time) (entity.Streak, bool) {
	if ClaimedToday(&current, today) {
		return current, false
	}

	next := current
	yesterday := today.AddDate(0, 0, -1)
	if current.LastCompletedDate != nil && !current.LastCompletedDate.Before(yesterday) {
		next.CurrentStreak = current.CurrentStreak + 1
	} else {
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	day := today
	next.LastCompletedDate = &day

	return next, true
}
