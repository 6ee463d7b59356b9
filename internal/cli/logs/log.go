package logs

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
	"github.com/julianstephens/plop/internal/tracker"
	"github.com/julianstephens/plop/internal/utils"
)

type LogCmd struct {
	Texture  int    `help:"Bristol texture class (1-7)." required:""`
	Effort   int    `help:"Effort from 1 (walk in the park) to 10 (fighting demons)." default:"1"`
	Color    string `help:"Brown, Light, Green, Red or Black." default:"Brown"`
	Duration string `help:"Time on the throne, MM:SS or seconds." default:"0"`
	At       string `help:"When it happened, RFC3339 or YYYY-MM-DD. Defaults to now."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	color, err := models.ParseColor(c.Color)
	if err != nil {
		return err
	}
	seconds, err := models.ParseDuration(c.Duration)
	if err != nil {
		return err
	}
	obs := tracker.Observation{
		TextureClass:    c.Texture,
		Effort:          c.Effort,
		Color:           color,
		DurationSeconds: seconds,
	}
	if c.At != "" {
		obs.At, err = utils.ParseTimestamp(c.At, ctx.Location())
		if err != nil {
			return err
		}
	}

	outcome, err := ctx.Tracker().Record(ctx.Context(), user.ID, obs)
	switch {
	case errors.Is(err, tracker.ErrProfileNotUpdated):
		ctx.Printf("⚠ %v\n", err)
		ctx.Println("  Achievements will catch up on your next log.")
	case err != nil:
		return fmt.Errorf("failed to record log: %w", err)
	}

	b := outcome.Breakdown
	bristol := models.Bristol(outcome.Log.TextureClass)
	ctx.Printf("✓ Logged %s %s in %s\n", bristol.Emoji, bristol.Label, outcome.Log.Duration())
	ctx.Printf("  Score: %d (%s)\n", outcome.Log.Score, scoring.BandFor(outcome.Log.Score))
	ctx.Printf("  Texture %d + Effort %d + Color %d\n", b.Texture, b.Effort, b.Color)
	for _, def := range outcome.NewlyUnlocked {
		ctx.Printf("%s Achievement unlocked: %s (%s)\n", def.Icon, def.Title, def.Description)
	}
	return nil
}
