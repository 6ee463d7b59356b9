package settings

import (
	"fmt"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used for calendar days, or Local."`
	Notifications *bool   `help:"Enable or disable unlock notifications." negatable:""`
	WeeklyWindow  *int    `help:"Number of recent logs summed for the weekly score."`
	ChartWindow   *int    `help:"Number of recent logs shown on the history chart."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Printf("  Weekly Window:         %d logs\n", settings.WeeklyWindow)
		ctx.Printf("  Chart Window:          %d logs\n", settings.ChartWindow)
		ctx.Println("\nNotification Settings:")
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		if ctx.Timezone != "" {
			ctx.Printf("\nTimezone overridden by environment: %s\n", ctx.Timezone)
		}
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
		updated = true
	}
	if c.WeeklyWindow != nil {
		if *c.WeeklyWindow <= 0 {
			return fmt.Errorf("weekly window must be positive")
		}
		settings.WeeklyWindow = *c.WeeklyWindow
		updated = true
	}
	if c.ChartWindow != nil {
		if *c.ChartWindow <= 0 {
			return fmt.Errorf("chart window must be positive")
		}
		settings.ChartWindow = *c.ChartWindow
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Store.SaveSettings(ctx.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
