package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/emberhabits/ember/internal/auth"
	"github.com/emberhabits/ember/internal/validation"
)

type AccountCmd struct {
	Signup        AccountSignupCmd        `cmd:"" help:"Create an account."`
	Login         AccountLoginCmd         `cmd:"" help:"Sign in."`
	Logout        AccountLogoutCmd        `cmd:"" help:"Sign out on this device."`
	ResetPassword AccountResetPasswordCmd `cmd:"" name:"reset-password" help:"Change your password."`
	Delete        AccountDeleteCmd        `cmd:"" help:"Permanently delete your account and all data."`
	Whoami        AccountWhoamiCmd        `cmd:"" help:"Show the signed-in account."`
}

func promptPassword(title string, value *string) error {
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(value).
		Run()
}

type AccountSignupCmd struct {
	Email string `arg:"" optional:"" help:"Email address."`
}

func (c *AccountSignupCmd) Run(ctx *Context) error {
	email := c.Email
	if email == "" {
		if err := huh.NewInput().Title("Email").Value(&email).Run(); err != nil {
			return err
		}
	}
	if err := validation.Email(email); err != nil {
		return err
	}

	var password, confirmation string
	if err := promptPassword("Password", &password); err != nil {
		return err
	}
	if err := validation.Password(password); err != nil {
		return err
	}
	if err := promptPassword("Confirm password", &confirmation); err != nil {
		return err
	}
	if err := validation.PasswordConfirmation(password, confirmation); err != nil {
		return err
	}

	user, err := ctx.Service.Auth.SignUp(email, password)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Account created for %s\n", user.Email)
	fmt.Println("  Add your first habit with 'ember habit add'")
	return nil
}

type AccountLoginCmd struct {
	Email string `arg:"" optional:"" help:"Email address."`
}

func (c *AccountLoginCmd) Run(ctx *Context) error {
	email := c.Email
	if email == "" {
		if err := huh.NewInput().Title("Email").Value(&email).Run(); err != nil {
			return err
		}
	}

	var password string
	if err := promptPassword("Password", &password); err != nil {
		return err
	}

	user, err := ctx.Service.Auth.SignIn(email, password)
	if err != nil {
		return err
	}
	ctx.Service.ForgetUser()

	fmt.Printf("✓ Signed in as %s\n", user.Email)
	return nil
}

type AccountLogoutCmd struct{}

func (c *AccountLogoutCmd) Run(ctx *Context) error {
	if err := ctx.Service.SignOut(); err != nil {
		return err
	}
	fmt.Println("✓ Signed out")
	return nil
}

type AccountResetPasswordCmd struct{}

func (c *AccountResetPasswordCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	var oldPassword, newPassword, confirmation string
	if err := promptPassword("Current password", &oldPassword); err != nil {
		return err
	}
	if err := promptPassword("New password", &newPassword); err != nil {
		return err
	}
	if err := validation.Password(newPassword); err != nil {
		return err
	}
	if err := promptPassword("Confirm new password", &confirmation); err != nil {
		return err
	}
	if err := validation.PasswordConfirmation(newPassword, confirmation); err != nil {
		return err
	}

	if err := ctx.Service.Auth.ResetPassword(oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Println("✓ Password updated. Other devices have been signed out.")
	return nil
}

type AccountDeleteCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *AccountDeleteCmd) Run(ctx *Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete the account %s?", user.Email)).
			Description("All habits and history will be permanently removed. This cannot be undone.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	var password string
	if err := promptPassword("Password", &password); err != nil {
		return err
	}

	if err := ctx.Service.DeleteAccount(password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fmt.Errorf("password incorrect, account not deleted")
		}
		return err
	}
	fmt.Println("✓ Account deleted")
	return nil
}

type AccountWhoamiCmd struct{}

func (c *AccountWhoamiCmd) Run(ctx *Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	fmt.Printf("%s (member since %s)\n", user.Email, user.CreatedAt.Format("2006-01-02"))
	return nil
}
