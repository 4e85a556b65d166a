package system

import (
	"fmt"

	"github.com/emberhabits/ember/internal/cli"
	"github.com/emberhabits/ember/internal/reminder"
)

// NotifyCmd delivers the daily reminder through the tray when any habit is
// still open. Scheduled runners invoke it; users normally never do.
type NotifyCmd struct {
	DryRun bool `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Service.RequireUser(); err != nil {
		// Nobody signed in on this machine, nothing to remind about.
		return nil
	}

	habits, err := ctx.Service.ActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		if c.DryRun {
			fmt.Println("No habits configured, nothing to send.")
		}
		return nil
	}

	log, err := ctx.Service.TodayLog()
	if err != nil {
		return err
	}
	if log.AllCompleted(habits) {
		if c.DryRun {
			fmt.Println("All habits completed today, nothing to send.")
		}
		return nil
	}

	msg := fmt.Sprintf("%s %s", reminder.DefaultContent.Title, reminder.DefaultContent.Body)
	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}

	tray := reminder.NewTrayScheduler()
	if !tray.PermissionGranted() {
		return fmt.Errorf("notification tray is not running")
	}
	if err := tray.Notify(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
