package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/achievements"
	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/utils"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" default:"1" help:"Show your profile and stats."`
	Edit ProfileEditCmd `cmd:"" help:"Change your username or avatar."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	stats, err := ctx.Tracker().Stats(ctx.Context(), user.ID)
	if err != nil {
		return err
	}

	ctx.Printf("%s%s\n", user.Username, nameplateSuffix(user.SelectedAchievementID))
	ctx.Printf("  Avatar:         %s\n", truncate(user.Avatar, 60))
	ctx.Printf("  Joined:         %s\n", user.CreatedAt.In(ctx.Location()).Format("2006-01-02"))
	ctx.Printf("  Last active:    %s\n", utils.FormatLastActive(user.LastActive, ctx.Now()))
	ctx.Printf("  Friends:        %d\n", len(user.Friends))
	ctx.Printf("  Logs:           %d\n", stats.TotalLogs)
	ctx.Printf("  Weekly score:   %d\n", user.WeeklyScore)
	if stats.TotalLogs > 0 {
		ctx.Printf("  Average score:  %d\n", stats.AverageScore)
		ctx.Printf("  Best score:     %d\n", stats.BestScore)
	}
	ctx.Printf("  Current streak: %d day(s)\n", stats.CurrentStreak)
	ctx.Printf("  Longest streak: %d day(s)\n", stats.LongestStreak)
	ctx.Printf("  Achievements:   %d/%d\n", len(user.Achievements), len(achievements.Catalog()))
	return nil
}

type ProfileEditCmd struct {
	Username     string `help:"New display name."`
	Avatar       string `help:"Avatar image URL." xor:"avatar"`
	AvatarFile   string `help:"Image file to use as avatar." type:"existingfile" xor:"avatar"`
	RandomAvatar bool   `help:"Pick a random placeholder avatar." xor:"avatar"`
}

func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	username := user.Username
	if c.Username != "" {
		username = c.Username
	}

	var avatar string
	switch {
	case c.Avatar != "":
		avatar = c.Avatar
	case c.AvatarFile != "":
		avatar, err = profile.AvatarFromFile(c.AvatarFile)
		if err != nil {
			return err
		}
	case c.RandomAvatar:
		avatar = profile.RandomAvatar()
	}

	if username == user.Username && avatar == "" {
		return errors.New("nothing to change, pass --username or an avatar flag")
	}

	updated, err := ctx.Profile().Update(ctx.Context(), user.ID, username, avatar)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	ctx.Printf("✓ Profile updated: %s\n", updated.Username)
	if avatar != "" {
		ctx.Printf("  Avatar: %s\n", truncate(updated.Avatar, 60))
	}
	return nil
}

func nameplateSuffix(id string) string {
	if id == "" {
		return ""
	}
	def, ok := achievements.Lookup(achievements.ID(id))
	if !ok {
		return ""
	}
	return fmt.Sprintf("  [%s %s]", def.Icon, def.Title)
}

// truncate keeps data URLs from flooding the terminal
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
