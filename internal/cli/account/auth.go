package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/auth"
	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/utils"
)

type LoginCmd struct {
	Email    string `help:"Log in with an email address." xor:"identity" required:""`
	Phone    string `help:"Log in with an 11-digit mobile number." xor:"identity" required:""`
	Password string `help:"Password (format check only)." required:""`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	method, id := auth.MethodEmail, c.Email
	if c.Phone != "" {
		method, id = auth.MethodPhone, c.Phone
	}

	user, err := ctx.Auth().Login(ctx.Context(), method, id, c.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	ctx.Printf("✓ Logged in as %s (%s)\n", user.Username, user.ID)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Auth().Logout(ctx.Context()); err != nil {
		return err
	}
	ctx.Println("✓ Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if errors.Is(err, auth.ErrNotLoggedIn) {
		ctx.Println("Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Printf("%s%s\n", user.Username, nameplateSuffix(user.SelectedAchievementID))
	ctx.Printf("  ID:          %s\n", user.ID)
	switch {
	case user.Email != "":
		ctx.Printf("  Email:       %s\n", user.Email)
	case user.Phone != "":
		ctx.Printf("  Phone:       %s\n", user.Phone)
	}
	ctx.Printf("  Last active: %s\n", utils.FormatLastActive(user.LastActive, ctx.Now()))
	return nil
}
