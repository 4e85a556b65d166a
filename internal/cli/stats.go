package cli

import (
	"fmt"

	"github.com/emberhabits/ember/internal/streak"
	"github.com/emberhabits/ember/internal/tui"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	current, err := ctx.Service.Streak()
	if err != nil {
		return err
	}

	switch current {
	case 0:
		fmt.Println("No current streak. Complete all of today's habits to start one.")
	case 1:
		fmt.Println("🔥 1-day streak")
	default:
		fmt.Printf("🔥 %d-day streak\n", current)
	}
	fmt.Println()

	weeks, err := ctx.Service.Heatmap()
	if err != nil {
		return err
	}
	fmt.Printf("Last %d weeks:\n\n", streak.HeatmapWeeks)
	fmt.Println(tui.RenderHeatmap(weeks))
	return nil
}
