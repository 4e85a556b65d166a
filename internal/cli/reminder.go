package cli

import (
	"fmt"

	"github.com/emberhabits/ember/internal/reminder"
)

type ReminderCmd struct {
	Show ReminderShowCmd `cmd:"" help:"Show the reminder schedule."`
	Set  ReminderSetCmd  `cmd:"" help:"Set the daily reminder time."`
	Test ReminderTestCmd `cmd:"" help:"Send a test notification."`
}

type ReminderShowCmd struct{}

func (c *ReminderShowCmd) Run(ctx *Context) error {
	rt := ctx.Service.ReminderTime()
	fmt.Printf("Daily reminder at %s\n", rt.String())

	switch ctx.Service.Planner.State() {
	case reminder.TodaySuspended:
		fmt.Println("Today's reminder is suspended: all habits are done.")
	default:
		fmt.Println("The reminder fires if any habit is still open.")
	}
	return nil
}

type ReminderSetCmd struct {
	Time string `arg:"" help:"Time of day, HH:MM (24-hour)."`
}

func (c *ReminderSetCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	rt, err := ParseReminderTime(c.Time)
	if err != nil {
		return err
	}
	if err := ctx.Service.SetReminderTime(rt); err != nil {
		return err
	}
	fmt.Printf("✓ Daily reminder set to %s\n", rt.String())
	return nil
}

type ReminderTestCmd struct{}

func (c *ReminderTestCmd) Run(ctx *Context) error {
	tray := reminder.NewTrayScheduler()
	if !tray.PermissionGranted() {
		return fmt.Errorf("notification tray is not running, cannot deliver a test notification")
	}
	if err := tray.Notify("Test notification from ember"); err != nil {
		return fmt.Errorf("failed to send test notification: %w", err)
	}
	fmt.Println("✓ Test notification sent")
	return nil
}
