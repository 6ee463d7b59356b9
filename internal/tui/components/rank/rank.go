package rank

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/leaderboard"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	meStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236"))
	medals     = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}
)

type Model struct {
	entries []leaderboard.Entry
	width   int
	height  int
}

func New() Model {
	return Model{}
}

func (m *Model) SetEntries(entries []leaderboard.Entry) {
	m.entries = entries
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return "\n  Log in to see the leaderboard."
	}

	lines := []string{
		titleStyle.Render("🏆 Weekly Leaderboard"),
		mutedStyle.Render(leaderboard.Summary(len(m.entries) - 1)),
		"",
	}
	for _, e := range m.entries {
		rank, ok := medals[e.Rank]
		if !ok {
			rank = fmt.Sprintf("#%d", e.Rank)
		}
		name := e.Username
		if e.IsMe {
			name += " (You)"
		}
		if e.Nameplate != nil {
			name += " " + e.Nameplate.Icon
		}
		row := fmt.Sprintf("%-4s %-26s %5d  %-8s %s", rank, name, e.Score, e.LastActive,
			mutedStyle.Render(fmt.Sprintf("%d logs", e.TotalLogs)))
		if e.IsMe {
			row = meStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
