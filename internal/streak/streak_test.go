package streak

import (
	"testing"
	"time"

	"github.com/emberhabits/ember/internal/dateutil"
	"github.com/emberhabits/ember/internal/models"
)

func logFor(date string, ids ...string) models.DailyLog {
	return models.DailyLog{
		ID:                "u1_" + date,
		UserID:            "u1",
		Date:              date,
		CompletedHabitIDs: ids,
	}
}

// consecutiveLogs builds logs for the k days ending at end, each with one
// completion.
func consecutiveLogs(end time.Time, k int) []models.DailyLog {
	var logs []models.DailyLog
	for i := 0; i < k; i++ {
		logs = append(logs, logFor(dateutil.FormatDate(end.AddDate(0, 0, -i)), "h1"))
	}
	return logs
}

func TestCalculate(t *testing.T) {
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	today := dateutil.FormatDate(end)
	yesterday := dateutil.FormatDate(end.AddDate(0, 0, -1))
	twoAgo := dateutil.FormatDate(end.AddDate(0, 0, -2))

	tests := []struct {
		name       string
		logs       []models.DailyLog
		habitCount int
		want       int
	}{
		{
			name:       "no logs",
			logs:       nil,
			habitCount: 2,
			want:       0,
		},
		{
			name:       "zero habits means zero streak regardless of logs",
			logs:       consecutiveLogs(end, 10),
			habitCount: 0,
			want:       0,
		},
		{
			name:       "today only",
			logs:       []models.DailyLog{logFor(today, "h1")},
			habitCount: 2,
			want:       1,
		},
		{
			name:       "incomplete today does not break yesterday's streak",
			logs:       []models.DailyLog{logFor(yesterday, "h1"), logFor(twoAgo, "h2")},
			habitCount: 2,
			want:       2,
		},
		{
			name: "incomplete today is not skipped once the streak started",
			logs: []models.DailyLog{
				logFor(today, "h1"),
				// gap at yesterday
				logFor(twoAgo, "h1"),
			},
			habitCount: 2,
			want:       1,
		},
		{
			name:       "five consecutive days ending today",
			logs:       consecutiveLogs(end, 5),
			habitCount: 2,
			want:       5,
		},
		{
			name: "gap bounds the streak",
			logs: append(consecutiveLogs(end, 3),
				// D-3 empty, D-4 completed: must not count
				logFor(dateutil.FormatDate(end.AddDate(0, 0, -4)), "h1")),
			habitCount: 2,
			want:       3,
		},
		{
			name: "empty completed set counts as a gap",
			logs: []models.DailyLog{
				logFor(today, "h1"),
				logFor(yesterday),
				logFor(twoAgo, "h1"),
			},
			habitCount: 2,
			want:       1,
		},
		{
			name:       "stale streak broken two days ago",
			logs:       []models.DailyLog{logFor(twoAgo, "h1")},
			habitCount: 2,
			want:       0,
		},
		{
			name:       "order of input logs is irrelevant",
			logs:       []models.DailyLog{logFor(twoAgo, "h1"), logFor(today, "h1"), logFor(yesterday, "h1")},
			habitCount: 2,
			want:       3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(tt.logs, tt.habitCount, today); got != tt.want {
				t.Errorf("Calculate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateExactGapProperty(t *testing.T) {
	// k consecutive completed days D..D-(k-1) with a gap at D-k must give
	// exactly k, for a spread of k values.
	end := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	today := dateutil.FormatDate(end)

	for _, k := range []int{1, 2, 7, 30, 100} {
		logs := consecutiveLogs(end, k)
		if got := Calculate(logs, 3, today); got != k {
			t.Errorf("Calculate() with %d consecutive days = %d, want %d", k, got, k)
		}
	}
}

func TestCalculateAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	logs := consecutiveLogs(now, 2)
	if got := CalculateAt(logs, 1, now); got != 2 {
		t.Errorf("CalculateAt() = %d, want 2", got)
	}
}
