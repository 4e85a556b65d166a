// Package app holds the application state shared by the CLI commands and
// the TUI: the signed-in user, their habits, today's log, and the reminder
// and milestone machinery that reacts to changes. One Service instance per
// process.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emberhabits/ember/internal/auth"
	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/dateutil"
	"github.com/emberhabits/ember/internal/kvstore"
	"github.com/emberhabits/ember/internal/logger"
	"github.com/emberhabits/ember/internal/milestone"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/reminder"
	"github.com/emberhabits/ember/internal/storage"
	"github.com/emberhabits/ember/internal/streak"
	"github.com/emberhabits/ember/internal/validation"
)

// Service wires the collaborators together and exposes the operations the
// frontends call. Methods that need a signed-in user resolve one lazily.
type Service struct {
	Store   storage.Provider
	KV      *kvstore.Store
	Auth    auth.Provider
	Planner *reminder.Planner

	detector *milestone.Detector
	user     *models.User
}

// New builds a Service over the given collaborators.
func New(store storage.Provider, kv *kvstore.Store, authp auth.Provider, sched reminder.Scheduler) *Service {
	return &Service{
		Store:    store,
		KV:       kv,
		Auth:     authp,
		Planner:  reminder.NewPlanner(sched),
		detector: milestone.New(kv),
	}
}

// RequireUser returns the signed-in user, caching it for the process
// lifetime. auth.ErrNotSignedIn and auth.ErrSessionExpired pass through
// for the frontends to translate into prompts.
func (s *Service) RequireUser() (models.User, error) {
	if s.user != nil {
		return *s.user, nil
	}
	user, err := s.Auth.CurrentUser()
	if err != nil {
		return models.User{}, err
	}
	s.user = &user
	return user, nil
}

// ForgetUser drops the cached user, e.g. after sign-out.
func (s *Service) ForgetUser() {
	s.user = nil
}

// Timezone returns the configured IANA timezone name, defaulting to the
// system's local zone.
func (s *Service) Timezone() string {
	tz, err := s.KV.Get(constants.KeyTimezone)
	if err != nil {
		return constants.DefaultTimezone
	}
	if !dateutil.ValidateTimezone(tz) {
		logger.Warn("Stored timezone is invalid, using default", "timezone", tz)
		return constants.DefaultTimezone
	}
	return tz
}

// SetTimezone validates and persists the timezone.
func (s *Service) SetTimezone(tz string) error {
	if !dateutil.ValidateTimezone(tz) {
		return fmt.Errorf("unknown timezone %q", tz)
	}
	return s.KV.Set(constants.KeyTimezone, tz)
}

// Today returns today's date string in the configured timezone.
func (s *Service) Today() string {
	today, err := dateutil.Today(s.Timezone())
	if err != nil {
		return dateutil.FormatDate(time.Now())
	}
	return today
}

// ReminderTime returns the configured reminder time-of-day.
func (s *Service) ReminderTime() models.ReminderTime {
	return reminder.LoadTime(s.KV)
}

// SetReminderTime validates, persists and reschedules the reminder.
func (s *Service) SetReminderTime(rt models.ReminderTime) error {
	if err := validation.ReminderTime(rt.Hour, rt.Minute); err != nil {
		return err
	}
	if err := reminder.SaveTime(s.KV, rt); err != nil {
		return fmt.Errorf("failed to save reminder time: %w", err)
	}
	return s.SyncReminders()
}

// ActiveHabits lists the signed-in user's non-archived habits.
func (s *Service) ActiveHabits() ([]models.Habit, error) {
	user, err := s.RequireUser()
	if err != nil {
		return nil, err
	}
	return s.Store.GetActiveHabits(user.ID)
}

// CreateHabit validates and adds a habit, enforcing the active-habit cap.
func (s *Service) CreateHabit(title, emoji string) (models.Habit, error) {
	user, err := s.RequireUser()
	if err != nil {
		return models.Habit{}, err
	}
	if err := validation.HabitTitle(title); err != nil {
		return models.Habit{}, err
	}
	if err := validation.HabitEmoji(emoji); err != nil {
		return models.Habit{}, err
	}
	count, err := s.Store.CountActiveHabits(user.ID)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to count habits: %w", err)
	}
	if err := validation.HabitLimit(count); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     title,
		Emoji:     emoji,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.AddHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to add habit: %w", err)
	}
	logger.Info("Habit created", "title", title)

	if err := s.SyncReminders(); err != nil {
		logger.Warn("Failed to sync reminders after habit change", "error", err)
	}
	return habit, nil
}

// EditHabit updates title and emoji in place.
func (s *Service) EditHabit(id, title, emoji string) (models.Habit, error) {
	if err := validation.HabitTitle(title); err != nil {
		return models.Habit{}, err
	}
	if err := validation.HabitEmoji(emoji); err != nil {
		return models.Habit{}, err
	}
	habit, err := s.ownedHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	habit.Title = title
	habit.Emoji = emoji
	if err := s.Store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// ArchiveHabit soft-deletes a habit. Its history stays and keeps counting
// toward past heatmap cells; it stops counting toward today.
func (s *Service) ArchiveHabit(id string) error {
	habit, err := s.ownedHabit(id)
	if err != nil {
		return err
	}
	if err := s.Store.ArchiveHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	logger.Info("Habit archived", "title", habit.Title)

	if err := s.SyncReminders(); err != nil {
		logger.Warn("Failed to sync reminders after habit change", "error", err)
	}
	return nil
}

// TodayLog returns today's log, or a fresh empty one when none exists yet.
func (s *Service) TodayLog() (models.DailyLog, error) {
	user, err := s.RequireUser()
	if err != nil {
		return models.DailyLog{}, err
	}
	today := s.Today()
	log, err := s.Store.GetDailyLog(user.ID, today)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewDailyLog(user.ID, today), nil
		}
		return models.DailyLog{}, fmt.Errorf("failed to load today's log: %w", err)
	}
	return log, nil
}

// ToggleResult is what a completion toggle produced.
type ToggleResult struct {
	Log       models.DailyLog
	Completed bool
	Streak    int
	Milestone *milestone.Event
}

// ToggleHabit flips a habit's completion for today and runs the follow-on
// effects: reminder re-sync, and on the rising edge of a fully completed
// day, milestone detection.
func (s *Service) ToggleHabit(habitID string) (ToggleResult, error) {
	habits, err := s.ActiveHabits()
	if err != nil {
		return ToggleResult{}, err
	}
	log, err := s.TodayLog()
	if err != nil {
		return ToggleResult{}, err
	}

	wasAllDone := log.AllCompleted(habits)
	completed := log.Toggle(habitID)
	if err := s.Store.PutDailyLog(log); err != nil {
		return ToggleResult{}, fmt.Errorf("failed to save today's log: %w", err)
	}

	res := ToggleResult{Log: log, Completed: completed}

	if err := s.Planner.Sync(habits, log, s.ReminderTime()); err != nil {
		logger.Warn("Failed to sync reminders after toggle", "error", err)
	}

	lookback, err := s.lookbackLogs()
	if err != nil {
		return res, fmt.Errorf("failed to load streak history: %w", err)
	}
	res.Streak = s.streakWith(lookback, log, len(habits))

	if !wasAllDone && log.AllCompleted(habits) {
		event, err := s.detector.Check(lookback, log, len(habits), s.Today())
		if err != nil {
			logger.Warn("Milestone check failed", "error", err)
		} else {
			res.Milestone = event
		}
	}
	return res, nil
}

// Streak computes the current streak from stored history plus today's log.
func (s *Service) Streak() (int, error) {
	habits, err := s.ActiveHabits()
	if err != nil {
		return 0, err
	}
	log, err := s.TodayLog()
	if err != nil {
		return 0, err
	}
	lookback, err := s.lookbackLogs()
	if err != nil {
		return 0, err
	}
	return s.streakWith(lookback, log, len(habits)), nil
}

// Heatmap returns the 16-week completion grid ending today.
func (s *Service) Heatmap() ([][]streak.Cell, error) {
	user, err := s.RequireUser()
	if err != nil {
		return nil, err
	}
	habits, err := s.ActiveHabits()
	if err != nil {
		return nil, err
	}
	now, err := dateutil.NowInTimezone(s.Timezone())
	if err != nil {
		now = time.Now()
	}

	start := dateutil.DaysAgo(now, streak.HeatmapDays-1)
	logs, err := s.Store.GetDailyLogsForRange(user.ID, start, s.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to load heatmap history: %w", err)
	}

	// The stored copy of today may be stale relative to an in-session
	// toggle, so overlay the live log.
	today, err := s.TodayLog()
	if err != nil {
		return nil, err
	}
	merged := make([]models.DailyLog, 0, len(logs)+1)
	for _, l := range logs {
		if l.Date != today.Date {
			merged = append(merged, l)
		}
	}
	merged = append(merged, today)

	return streak.Window(now, merged, len(habits)), nil
}

// SyncReminders re-derives the notification schedule from the current
// habits and today's log.
func (s *Service) SyncReminders() error {
	habits, err := s.ActiveHabits()
	if err != nil {
		return err
	}
	log, err := s.TodayLog()
	if err != nil {
		return err
	}
	return s.Planner.Sync(habits, log, s.ReminderTime())
}

// SignOut disarms reminders, destroys the session and drops cached state.
func (s *Service) SignOut() error {
	if err := s.Planner.Disarm(); err != nil {
		logger.Warn("Failed to disarm reminders on sign-out", "error", err)
	}
	if err := s.Auth.SignOut(); err != nil {
		return err
	}
	s.ForgetUser()
	return nil
}

// DeleteAccount disarms reminders and wipes the account.
func (s *Service) DeleteAccount(password string) error {
	if err := s.Planner.Disarm(); err != nil {
		logger.Warn("Failed to disarm reminders on account deletion", "error", err)
	}
	if err := s.Auth.DeleteAccount(password); err != nil {
		return err
	}
	s.ForgetUser()
	return nil
}

func (s *Service) ownedHabit(id string) (models.Habit, error) {
	user, err := s.RequireUser()
	if err != nil {
		return models.Habit{}, err
	}
	habit, err := s.Store.GetHabit(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("habit %q not found", id)
		}
		return models.Habit{}, fmt.Errorf("failed to load habit: %w", err)
	}
	if habit.UserID != user.ID {
		return models.Habit{}, fmt.Errorf("habit %q not found", id)
	}
	return habit, nil
}

// lookbackLogs loads the history window used by streak and milestone
// computation.
func (s *Service) lookbackLogs() ([]models.DailyLog, error) {
	user, err := s.RequireUser()
	if err != nil {
		return nil, err
	}
	now, err := dateutil.NowInTimezone(s.Timezone())
	if err != nil {
		now = time.Now()
	}
	start := dateutil.DaysAgo(now, constants.MilestoneLookbackDays)
	return s.Store.GetDailyLogsForRange(user.ID, start, s.Today())
}

func (s *Service) streakWith(lookback []models.DailyLog, todayLog models.DailyLog, habitCount int) int {
	today := s.Today()
	merged := make([]models.DailyLog, 0, len(lookback)+1)
	for _, l := range lookback {
		if l.Date != today {
			merged = append(merged, l)
		}
	}
	merged = append(merged, todayLog)
	return streak.Calculate(merged, habitCount, today)
}
