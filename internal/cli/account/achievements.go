package account

import (
	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/profile"
)

type AchievementsCmd struct {
	List  AchievementListCmd  `cmd:"" default:"1" help:"Show every achievement and which you have earned."`
	Equip AchievementEquipCmd `cmd:"" help:"Toggle an earned achievement as your nameplate."`
}

type AchievementListCmd struct{}

func (c *AchievementListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	for _, b := range profile.Badges(user) {
		mark := "🔒"
		if b.Earned {
			mark = b.Icon
		}
		equipped := ""
		if b.Equipped {
			equipped = "  (equipped)"
		}
		ctx.Printf("%s  %-12s %s%s\n", mark, b.ID, b.Title, equipped)
		ctx.Printf("    %s\n", b.Description)
	}
	return nil
}

type AchievementEquipCmd struct {
	ID string `arg:"" help:"Achievement ID, e.g. first_drop."`
}

func (c *AchievementEquipCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	updated, err := ctx.Profile().SelectNameplate(ctx.Context(), user.ID, c.ID)
	if err != nil {
		return err
	}
	if updated.SelectedAchievementID == "" {
		ctx.Printf("✓ Removed nameplate %s\n", c.ID)
		return nil
	}
	ctx.Printf("✓ Equipped nameplate%s\n", nameplateSuffix(updated.SelectedAchievementID))
	return nil
}
