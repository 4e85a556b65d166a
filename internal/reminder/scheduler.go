// Package reminder decides when the daily reminder notification should be
// re-armed, suspended for today, or re-queued, and issues the corresponding
// cancel/schedule calls against an OS-level scheduler. Delivery itself is
// the scheduler implementation's concern.
package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/kvstore"
	"github.com/emberhabits/ember/internal/logger"
	"github.com/emberhabits/ember/internal/models"
)

// State of the reminder machine.
type State string

const (
	// RecurringActive means the daily notification fires every day at the
	// configured time.
	RecurringActive State = "recurring_active"
	// TodaySuspended means today's instance is cancelled and one-shot
	// notifications are queued for the next days instead.
	TodaySuspended State = "today_suspended"
)

// Content is the fixed payload of a reminder notification.
type Content struct {
	Title string
	Body  string
}

// DefaultContent is the payload used for every reminder.
var DefaultContent = Content{
	Title: constants.ReminderTitle,
	Body:  constants.ReminderBody,
}

// Scheduler is the OS notification collaborator: schedule/cancel by string
// identifier with either a daily-recurring or an absolute one-shot trigger.
// No notification may exist unless permission was granted beforehand.
type Scheduler interface {
	ScheduleDaily(id string, content Content, hour, minute int) error
	ScheduleAt(id string, content Content, at time.Time) error
	Cancel(id string) error
	PermissionGranted() bool
}

// Planner drives the reminder state machine. All calls run on the event
// loop; Planner does no locking of its own.
type Planner struct {
	sched Scheduler
	state State
	now   func() time.Time
}

// NewPlanner returns a planner in the recurring state.
func NewPlanner(sched Scheduler) *Planner {
	return &Planner{sched: sched, state: RecurringActive, now: time.Now}
}

// State returns the current machine state.
func (p *Planner) State() State {
	return p.state
}

// Sync re-derives the schedule from the current completion picture: when
// every active habit is completed for today, the recurring reminder is
// suspended and one-shots are queued for the next days; otherwise the
// recurring reminder is (re-)armed. Reminder-time changes go through the
// same path, which cancels everything first, so both cases re-enter the
// correct state. Without permission nothing is scheduled.
func (p *Planner) Sync(habits []models.Habit, todayLog models.DailyLog, at models.ReminderTime) error {
	if !p.sched.PermissionGranted() {
		logger.Debug("Notification permission not granted, skipping reminder sync")
		return nil
	}

	if err := p.cancelAll(); err != nil {
		return err
	}

	if todayLog.AllCompleted(habits) {
		if err := p.queueFuture(at); err != nil {
			return err
		}
		p.state = TodaySuspended
		logger.Debug("Reminder suspended for today", "queued", constants.FutureReminderDays)
		return nil
	}

	if err := p.sched.ScheduleDaily(constants.ReminderNotificationID, DefaultContent, at.Hour, at.Minute); err != nil {
		return fmt.Errorf("failed to schedule daily reminder: %w", err)
	}
	p.state = RecurringActive
	logger.Debug("Recurring reminder armed", "at", at.String())
	return nil
}

// Disarm cancels every reminder, recurring and queued, e.g. on sign-out.
func (p *Planner) Disarm() error {
	if err := p.cancelAll(); err != nil {
		return err
	}
	p.state = RecurringActive
	return nil
}

func (p *Planner) cancelAll() error {
	if err := p.sched.Cancel(constants.ReminderNotificationID); err != nil {
		return fmt.Errorf("failed to cancel recurring reminder: %w", err)
	}
	for i := 1; i <= constants.FutureReminderDays; i++ {
		if err := p.sched.Cancel(futureID(i)); err != nil {
			return fmt.Errorf("failed to cancel future reminder %d: %w", i, err)
		}
	}
	return nil
}

// queueFuture schedules one-shot reminders on the next calendar days at the
// configured time-of-day, so the user still hears from us on future days
// even if the app never runs again.
func (p *Planner) queueFuture(at models.ReminderTime) error {
	now := p.now()
	for i := 1; i <= constants.FutureReminderDays; i++ {
		day := now.AddDate(0, 0, i)
		fire := time.Date(day.Year(), day.Month(), day.Day(), at.Hour, at.Minute, 0, 0, now.Location())
		if err := p.sched.ScheduleAt(futureID(i), DefaultContent, fire); err != nil {
			return fmt.Errorf("failed to queue future reminder %d: %w", i, err)
		}
	}
	return nil
}

func futureID(i int) string {
	return fmt.Sprintf("%s%d", constants.FutureReminderPrefix, i)
}

// LoadTime reads the persisted reminder time, falling back to the default
// when none is stored or the stored value is unreadable.
func LoadTime(kv *kvstore.Store) models.ReminderTime {
	def := models.ReminderTime{Hour: constants.DefaultReminderHour, Minute: constants.DefaultReminderMinute}

	raw, err := kv.Get(constants.KeyReminderTime)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn("Failed to read reminder time", "error", err)
		}
		return def
	}

	var rt models.ReminderTime
	if err := json.Unmarshal([]byte(raw), &rt); err != nil {
		logger.Warn("Stored reminder time is malformed, using default", "error", err)
		return def
	}
	return rt
}

// SaveTime persists the reminder time locally.
func SaveTime(kv *kvstore.Store, rt models.ReminderTime) error {
	raw, err := json.Marshal(rt)
	if err != nil {
		return err
	}
	return kv.Set(constants.KeyReminderTime, string(raw))
}
