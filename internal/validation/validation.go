package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/emberhabits/ember/internal/constants"
)

// HabitTitle checks that a habit title is present and within the length cap.
// Length is measured in characters, not bytes, so emoji-heavy titles count
// the way users expect.
func HabitTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if utf8.RuneCountInString(title) > constants.MaxHabitTitleLen {
		return fmt.Errorf("habit title cannot exceed %d characters", constants.MaxHabitTitleLen)
	}
	return nil
}

// HabitEmoji checks that an emoji was chosen.
func HabitEmoji(emoji string) error {
	if strings.TrimSpace(emoji) == "" {
		return fmt.Errorf("pick an emoji for the habit")
	}
	return nil
}

// HabitLimit checks the active-habit cap before a new habit is added.
func HabitLimit(activeCount int) error {
	if activeCount >= constants.MaxActiveHabits {
		return fmt.Errorf("you can track at most %d habits, archive one first", constants.MaxActiveHabits)
	}
	return nil
}

// Email does a shape check only. Real verification happens when the
// address is used, not here.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Contains(email, " ") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// Password enforces the minimum length rule.
func Password(password string) error {
	if len(password) < constants.MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", constants.MinPasswordLen)
	}
	return nil
}

// PasswordConfirmation checks the retyped password matches.
func PasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// ReminderTime checks a wall-clock reminder time.
func ReminderTime(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute must be between 0 and 59")
	}
	return nil
}
