// Package milestone fires a one-time celebration when the streak crosses a
// fixed threshold. De-duplication is durable across restarts via local
// key-value flags, not the document store.
package milestone

import (
	"fmt"
	"slices"

	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/logger"
	"github.com/emberhabits/ember/internal/models"
	"github.com/emberhabits/ember/internal/streak"
)

// Flags is the persistence needed for de-duplication, satisfied by
// *kvstore.Store.
type Flags interface {
	Has(key string) bool
	Set(key, value string) error
}

// Event is a celebration to surface to the user. Rendering is the caller's
// concern.
type Event struct {
	Threshold int
	Streak    int
	Date      string // YYYY-MM-DD
}

// Detector watches the live streak value on rising edges of "all habits
// completed today".
type Detector struct {
	flags Flags
}

func New(flags Flags) *Detector {
	return &Detector{flags: flags}
}

func flagKey(threshold int, date string) string {
	return fmt.Sprintf("milestone_%d_%s", threshold, date)
}

// Check recomputes the streak from the lookback logs merged with the live
// today log and reports whether a not-yet-celebrated threshold was reached.
// It returns (nil, nil) when there is nothing to celebrate. At most one
// event fires per threshold per calendar day, across restarts. Callers
// invoke it only on the rising edge of a fully completed day.
func (d *Detector) Check(lookback []models.DailyLog, todayLog models.DailyLog, habitCount int, today string) (*Event, error) {
	merged := make([]models.DailyLog, 0, len(lookback)+1)
	for _, l := range lookback {
		if l.Date != today {
			merged = append(merged, l)
		}
	}
	merged = append(merged, todayLog)

	current := streak.Calculate(merged, habitCount, today)
	if !slices.Contains(constants.MilestoneThresholds, current) {
		return nil, nil
	}

	key := flagKey(current, today)
	if d.flags.Has(key) {
		return nil, nil
	}
	if err := d.flags.Set(key, "1"); err != nil {
		return nil, fmt.Errorf("failed to record milestone flag: %w", err)
	}

	logger.Info("Milestone reached", "streak", current, "date", today)
	return &Event{Threshold: current, Streak: current, Date: today}, nil
}
