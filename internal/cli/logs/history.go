package logs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
)

type HistoryCmd struct {
	List    HistoryListCmd    `cmd:"" default:"1" help:"List recorded logs, newest first."`
	Chart   HistoryChartCmd   `cmd:"" help:"Bar chart of recent scores."`
	Clear   HistoryClearCmd   `cmd:"" help:"Clear your history. Achievements are kept."`
	Restore HistoryRestoreCmd `cmd:"" help:"Restore a cleared history."`
}

var bandColors = map[scoring.Band]lipgloss.Color{
	scoring.BandGood: lipgloss.Color("#22C55E"),
	scoring.BandFair: lipgloss.Color("#EAB308"),
	scoring.BandPoor: lipgloss.Color("#EF4444"),
}

type HistoryListCmd struct {
	Limit int `help:"Show at most this many logs (0 for all)." default:"20"`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	history, err := ctx.Tracker().History(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		ctx.Println("No logs yet. Record one with 'plop log'.")
		return nil
	}

	if c.Limit > 0 && len(history) > c.Limit {
		history = history[:c.Limit]
	}
	loc := ctx.Location()
	for _, l := range history {
		bristol := models.Bristol(l.TextureClass)
		score := lipgloss.NewStyle().Foreground(bandColors[scoring.BandFor(l.Score)]).Render(fmt.Sprintf("%3d", l.Score))
		ctx.Printf("%s  %s  %s %-13s  %s  %-6s  effort %d\n",
			l.Date.In(loc).Format("2006-01-02 15:04"), score, bristol.Emoji, bristol.Label, l.Duration(), l.Color, l.Effort)
	}
	return nil
}

type HistoryChartCmd struct{}

const chartWidth = 40

func (c *HistoryChartCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	bars, err := ctx.Tracker().ChartData(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		ctx.Println("No data to chart yet.")
		return nil
	}

	for _, b := range bars {
		width := b.Score * chartWidth / 100
		bar := lipgloss.NewStyle().Foreground(bandColors[b.Band]).Render(strings.Repeat("█", width))
		ctx.Printf("%s │%s %d\n", b.Label, bar, b.Score)
	}
	return nil
}

type HistoryClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HistoryClearCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm("Clear your whole history? Achievements will be kept.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	n, err := ctx.Tracker().ClearHistory(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Cleared %d log(s). Undo with 'plop history restore'.\n", n)
	return nil
}

type HistoryRestoreCmd struct{}

func (c *HistoryRestoreCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	n, err := ctx.Tracker().RestoreHistory(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		ctx.Println("Nothing to restore.")
		return nil
	}
	ctx.Printf("✓ Restored %d log(s)\n", n)
	return nil
}
