package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/emberhabits/ember/internal/constants"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List your habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit's title or emoji."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit, freeing a slot."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Remove a habit (soft delete, history kept)."`
}

type HabitAddCmd struct {
	Title string `arg:"" optional:"" help:"Habit title."`
	Emoji string `help:"Emoji shown next to the habit." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	habits, err := ctx.Service.ActiveHabits()
	if err != nil {
		return err
	}
	if MaxHabitsReached(len(habits)) {
		return fmt.Errorf("you already track %d habits, the maximum. Archive one first", constants.MaxActiveHabits)
	}

	title := c.Title
	if title == "" {
		if err := huh.NewInput().Title("Habit title").CharLimit(constants.MaxHabitTitleLen).Value(&title).Run(); err != nil {
			return err
		}
	}
	emoji := c.Emoji
	if emoji == "" {
		if err := huh.NewInput().Title("Emoji").Placeholder("🔥").Value(&emoji).Run(); err != nil {
			return err
		}
	}

	habit, err := ctx.Service.CreateHabit(title, emoji)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added %s %s\n", habit.Emoji, habit.Title)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
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

	for _, h := range habits {
		mark := "○"
		if log.Completed(h.ID) {
			mark = "●"
		}
		fmt.Printf("%s %s %s  (%s)\n", mark, h.Emoji, h.Title, ShortID(h.ID))
	}
	fmt.Printf("\n%d of %d habit slots used\n", len(habits), constants.MaxActiveHabits)
	return nil
}

type HabitEditCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or title."`
	Title string `help:"New title."`
	Emoji string `help:"New emoji."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	title := c.Title
	emoji := c.Emoji
	if title == "" && emoji == "" {
		title = habit.Title
		emoji = habit.Emoji
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Title").CharLimit(constants.MaxHabitTitleLen).Value(&title),
			huh.NewInput().Title("Emoji").Value(&emoji),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}
	if title == "" {
		title = habit.Title
	}
	if emoji == "" {
		emoji = habit.Emoji
	}

	updated, err := ctx.Service.EditHabit(habit.ID, title, emoji)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated %s %s\n", updated.Emoji, updated.Title)
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or title."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Service.ArchiveHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Archived %s %s. Its history is kept.\n", habit.Emoji, habit.Title)
	return nil
}

// HabitDeleteCmd soft-archives like archive; the distinct command exists so
// users reaching for "delete" land somewhere sensible.
type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID, ID prefix, or title."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Service.ArchiveHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Removed %s %s. Past completions still count in your history.\n", habit.Emoji, habit.Title)
	return nil
}
