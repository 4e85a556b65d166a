package models

import "fmt"

// ReminderTime is the locally persisted time-of-day for the daily reminder.
// It is independent of server state.
type ReminderTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String renders the time in HH:MM form.
func (r ReminderTime) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}
