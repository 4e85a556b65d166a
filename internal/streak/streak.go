// Package streak derives streak and heatmap values from daily logs. Streaks
// are always computed, never stored.
package streak

import (
	"time"

	"github.com/emberhabits/ember/internal/dateutil"
	"github.com/emberhabits/ember/internal/models"
)

// IndexLogs builds a date-keyed lookup from a log list. Input may be sparse
// and in any order; on duplicate dates the later entry wins.
func IndexLogs(logs []models.DailyLog) map[string]models.DailyLog {
	idx := make(map[string]models.DailyLog, len(logs))
	for _, l := range logs {
		idx[l.Date] = l
	}
	return idx
}

// Calculate returns the current consecutive-day streak as of today. A day
// counts when its log has at least one completed habit. The walk stops at
// the first empty day, except that an incomplete today does not break a
// streak that has not started yet: it is skipped and the walk continues at
// yesterday. With zero active habits the streak is defined as 0.
func Calculate(logs []models.DailyLog, habitCount int, today string) int {
	if habitCount == 0 {
		return 0
	}
	start, err := dateutil.ParseDate(today)
	if err != nil {
		return 0
	}

	idx := IndexLogs(logs)
	streak := 0
	cur := start

	for {
		date := dateutil.FormatDate(cur)
		if idx[date].CompletedCount() > 0 {
			streak++
		} else {
			if streak == 0 && date == today {
				// Today is still in progress; check yesterday instead.
				cur = cur.AddDate(0, 0, -1)
				continue
			}
			break
		}
		cur = cur.AddDate(0, 0, -1)
	}

	return streak
}

// CalculateAt is Calculate with an explicit reference time, useful when the
// caller already resolved the user's timezone.
func CalculateAt(logs []models.DailyLog, habitCount int, now time.Time) int {
	return Calculate(logs, habitCount, dateutil.FormatDate(now))
}
