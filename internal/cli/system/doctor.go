package system

import (
	"fmt"

	"github.com/emberhabits/ember/internal/cli"
	"github.com/emberhabits/ember/internal/constants"
	"github.com/emberhabits/ember/internal/dateutil"
	"github.com/emberhabits/ember/internal/keyring"
	"github.com/emberhabits/ember/internal/reminder"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: DB reachable and schema current
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database: OK\n")
	}

	// Check 2: OS keyring
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: UNAVAILABLE\n")
		fmt.Printf("   Sessions cannot be stored; you will have to log in every run.\n")
	}

	// Check 3: Timezone setting
	tz, err := ctx.KV.Get(constants.KeyTimezone)
	if err != nil {
		fmt.Printf("✓ Timezone: OK (system default)\n")
	} else if dateutil.ValidateTimezone(tz) {
		fmt.Printf("✓ Timezone: OK (%s)\n", tz)
	} else {
		fmt.Printf("❌ Timezone: FAIL\n")
		fmt.Printf("   Stored timezone %q is not a valid IANA name\n", tz)
		hasError = true
	}

	// Check 4: Notification tray
	if reminder.NewTrayScheduler().PermissionGranted() {
		fmt.Printf("✓ Notification tray: OK\n")
	} else {
		fmt.Printf("⚠ Notification tray: NOT RUNNING\n")
		fmt.Printf("   Reminders will not be delivered until ember-tray is started.\n")
	}

	// Check 5: Habit data integrity for the signed-in user
	if user, err := ctx.Service.RequireUser(); err != nil {
		fmt.Printf("⊘ Habit integrity: SKIPPED (not signed in)\n")
	} else {
		count, err := ctx.Store.CountActiveHabits(user.ID)
		switch {
		case err != nil:
			fmt.Printf("❌ Habit integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		case count > constants.MaxActiveHabits:
			fmt.Printf("❌ Habit integrity: FAIL\n")
			fmt.Printf("   %d active habits exceed the limit of %d\n", count, constants.MaxActiveHabits)
			hasError = true
		default:
			fmt.Printf("✓ Habit integrity: OK (%d active)\n", count)
		}
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
