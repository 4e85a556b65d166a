package models

import (
	"fmt"
	"slices"
)

// DailyLog records which habits were completed on a given date for a given
// user. One log exists per (user, date); CompletedHabitIDs is a duplicate-
// free set whose order carries no meaning.
type DailyLog struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	Date              string   `json:"date"` // YYYY-MM-DD format
	CompletedHabitIDs []string `json:"completed_habit_ids"`
}

// LogID derives the natural document key for a user's log on a date.
func LogID(userID, date string) string {
	return fmt.Sprintf("%s_%s", userID, date)
}

// NewDailyLog returns an empty log for the given user and date.
func NewDailyLog(userID, date string) DailyLog {
	return DailyLog{
		ID:     LogID(userID, date),
		UserID: userID,
		Date:   date,
	}
}

// Completed reports whether the habit is checked off in this log.
func (l DailyLog) Completed(habitID string) bool {
	return slices.Contains(l.CompletedHabitIDs, habitID)
}

// CompletedCount returns the number of habits checked off in this log.
func (l DailyLog) CompletedCount() int {
	return len(l.CompletedHabitIDs)
}

// Toggle flips the completion state of a habit and returns the resulting
// state. Toggling twice restores the original set.
func (l *DailyLog) Toggle(habitID string) bool {
	if i := slices.Index(l.CompletedHabitIDs, habitID); i >= 0 {
		l.CompletedHabitIDs = slices.Delete(l.CompletedHabitIDs, i, i+1)
		return false
	}
	l.CompletedHabitIDs = append(l.CompletedHabitIDs, habitID)
	return true
}

// AllCompleted reports whether every given habit is checked off. An empty
// habit list never counts as fully completed.
func (l DailyLog) AllCompleted(habits []Habit) bool {
	if len(habits) == 0 {
		return false
	}
	for _, h := range habits {
		if !l.Completed(h.ID) {
			return false
		}
	}
	return true
}
