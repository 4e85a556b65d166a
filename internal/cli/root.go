package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emberhabits/ember/internal/app"
	"github.com/emberhabits/ember/internal/auth"
	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/kvstore"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/storage"
)

type Context struct {
	Store   storage.Provider
	KV      *kvstore.Store
	Service *app.Service

	// Config is the resolved database path or connection string.
	Config string
}

// RequireUser resolves the signed-in user and turns auth errors into
// actionable messages.
func (c *Context) RequireUser() (models.User, error) {
	user, err := c.Service.RequireUser()
	if err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) {
			return models.User{}, fmt.Errorf("not signed in. Run 'ember account login' or 'ember account signup' first")
		}
		if errors.Is(err, auth.ErrSessionExpired) {
			return models.User{}, fmt.Errorf("your session has expired. Run 'ember account login' to sign in again")
		}
		return models.User{}, err
	}
	return user, nil
}

// ParseReminderTime parses "HH:MM" into a reminder time.
func ParseReminderTime(s string) (models.ReminderTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return models.ReminderTime{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return models.ReminderTime{}, fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return models.ReminderTime{}, fmt.Errorf("invalid minute %q", parts[1])
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return models.ReminderTime{}, fmt.Errorf("time %q out of range", s)
	}
	return models.ReminderTime{Hour: hour, Minute: minute}, nil
}

// ResolveHabit finds a habit among the user's active ones by ID, ID prefix
// or exact title, so commands can take a human-friendly reference.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	habits, err := c.Service.ActiveHabits()
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, h := range habits {
		if h.ID == ref || strings.EqualFold(h.Title, ref) {
			return h, nil
		}
		if strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matching %q. Run 'ember habit list' to see your habits", ref)
	default:
		return models.Habit{}, fmt.Errorf("%q is ambiguous, matches %d habits", ref, len(matches))
	}
}

// ShortID returns the display prefix of a habit ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// MaxHabitsReached reports whether the active-habit cap is hit, for
// friendlier messaging before prompting for details.
func MaxHabitsReached(count int) bool {
	return count >= constants.MaxActiveHabits
}
