package social

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/leaderboard"
)

type LeaderboardCmd struct{}

var (
	meStyle = lipgloss.NewStyle().Bold(true)
	medals  = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}
)

func (c *LeaderboardCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	entries, err := leaderboard.Load(ctx.Context(), ctx.Store, me.ID, ctx.Now())
	if err != nil {
		return err
	}

	ctx.Println("🏆 Weekly Leaderboard")
	ctx.Println(leaderboard.Summary(len(entries) - 1))
	ctx.Println()
	for _, e := range entries {
		rank, ok := medals[e.Rank]
		if !ok {
			rank = "#" + strconv.Itoa(e.Rank)
		}
		name := e.Username
		if e.Nameplate != nil {
			name += " " + e.Nameplate.Icon
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(4).Render(rank),
			lipgloss.NewStyle().Width(22).Render(name),
			lipgloss.NewStyle().Width(6).Align(lipgloss.Right).Render(strconv.Itoa(e.Score)),
			"  ", e.LastActive,
		)
		if e.IsMe {
			line = meStyle.Render(line + "  (you)")
		}
		ctx.Println(line)
	}
	return nil
}
