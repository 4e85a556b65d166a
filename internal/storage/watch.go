package storage

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"time"

	"github.com/emberhabits/ember/internal/logger"
	"github.com/emberhabits/ember/internal/models"
)

// DefaultWatchInterval is the poll period for live subscriptions.
const DefaultWatchInterval = 2 * time.Second

// HabitsSnapshot is one delivery from a habits subscription. Version
// increments on every change so consumers can discard stale reads.
type HabitsSnapshot struct {
	Habits  []models.Habit
	Version uint64
	At      time.Time
}

// LogSnapshot is one delivery from a daily-log subscription. A zero-value
// log with Exists=false means no document for that date yet.
type LogSnapshot struct {
	Log     models.DailyLog
	Exists  bool
	Version uint64
	At      time.Time
}

// CancelFunc stops a subscription and releases its goroutine.
type CancelFunc func()

// WatchHabits delivers the user's active habit list whenever it changes,
// starting with an immediate snapshot. The channel closes after cancel.
func WatchHabits(p Provider, userID string, interval time.Duration) (<-chan HabitsSnapshot, CancelFunc) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan HabitsSnapshot, 1)

	go func() {
		defer close(out)

		var version uint64
		var last []models.Habit
		first := true

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			habits, err := p.GetActiveHabits(userID)
			if err != nil {
				logger.Warn("Habit subscription poll failed", "error", err)
			} else if first || !reflect.DeepEqual(habits, last) {
				version++
				last = habits
				first = false
				select {
				case out <- HabitsSnapshot{Habits: habits, Version: version, At: time.Now()}:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, CancelFunc(cancel)
}

// WatchDailyLog delivers the user's log for a fixed date whenever it
// changes, starting with an immediate snapshot.
func WatchDailyLog(p Provider, userID, date string, interval time.Duration) (<-chan LogSnapshot, CancelFunc) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan LogSnapshot, 1)

	go func() {
		defer close(out)

		var version uint64
		var last models.DailyLog
		lastExists := false
		first := true

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			log, err := p.GetDailyLog(userID, date)
			exists := true
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					exists = false
					log = models.DailyLog{}
				} else {
					logger.Warn("Daily log subscription poll failed", "error", err)
					exists = lastExists
					log = last
				}
			}

			if first || exists != lastExists || !reflect.DeepEqual(log, last) {
				version++
				last = log
				lastExists = exists
				first = false
				select {
				case out <- LogSnapshot{Log: log, Exists: exists, Version: version, At: time.Now()}:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, CancelFunc(cancel)
}
