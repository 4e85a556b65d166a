package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emberhabits/ember/internal/cli"
	"github.com/emberhabits/ember/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	// Re-derive the notification schedule on startup so a day rollover or
	// external change is reflected before the user interacts.
	if err := ctx.Service.SyncReminders(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to sync reminders: %v\n", err)
	}

	p := tea.NewProgram(tui.NewModel(ctx.Service), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
