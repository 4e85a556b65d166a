package cli

import (
	"fmt"
)

type LogCmd struct {
	Toggle LogToggleCmd `cmd:"" help:"Toggle a habit's completion for today."`
	Today  LogTodayCmd  `cmd:"" help:"Show today's completion status."`
}

type LogToggleCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or title."`
}

func (c *LogToggleCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	res, err := ctx.Service.ToggleHabit(habit.ID)
	if err != nil {
		return err
	}

	if res.Completed {
		fmt.Printf("✓ %s %s completed\n", habit.Emoji, habit.Title)
	} else {
		fmt.Printf("○ %s %s unchecked\n", habit.Emoji, habit.Title)
	}

	habits, err := ctx.Service.ActiveHabits()
	if err != nil {
		return err
	}
	if res.Log.AllCompleted(habits) {
		fmt.Printf("All habits done for today! Current streak: %d day(s) 🔥\n", res.Streak)
	}
	if res.Milestone != nil {
		fmt.Printf("\n🎉 Milestone reached: %d-day streak!\n", res.Milestone.Threshold)
	}
	return nil
}

type LogTodayCmd struct{}

func (c *LogTodayCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	habits, err := ctx.Service.ActiveHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'ember habit add'.")
		return nil
	}

	log, err := ctx.Service.TodayLog()
	if err != nil {
		return err
	}

	fmt.Printf("Today (%s):\n", log.Date)
	for _, h := range habits {
		mark := "○"
		if log.Completed(h.ID) {
			mark = "●"
		}
		fmt.Printf("  %s %s %s\n", mark, h.Emoji, h.Title)
	}
	fmt.Printf("\n%d of %d completed\n", log.CompletedCount(), len(habits))
	return nil
}
