package models

import "time"

// Habit represents a recurring daily practice to track. At most
// constants.MaxActiveHabits non-archived habits may exist per user; the
// limit is enforced at creation, not here.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
	Archived  bool      `json:"archived"`
}
