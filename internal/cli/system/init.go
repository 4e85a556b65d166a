package system

import (
	"fmt"
	"os"

	"github.com/emberhabits/ember/internal/cli"
	"github.com/emberhabits/ember/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if storage.IsPostgresURL(ctx.Config) {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Config
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ember storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Create an account with 'ember account signup' to start tracking.")
	return nil
}
