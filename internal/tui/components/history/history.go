package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
	"github.com/julianstephens/plop/internal/tracker"
)

type ClearHistoryMsg struct{}

type RestoreHistoryMsg struct{}

// chartHeight is the number of rows the tallest bar spans
const chartHeight = 6

var (
	BandColors = map[scoring.Band]lipgloss.Color{
		scoring.BandGood: lipgloss.Color("#22C55E"),
		scoring.BandFair: lipgloss.Color("#EAB308"),
		scoring.BandPoor: lipgloss.Color("#EF4444"),
	}
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	chartStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type Item struct {
	Log models.Log
	loc *time.Location
}

func (i Item) Title() string {
	b := models.Bristol(i.Log.TextureClass)
	return fmt.Sprintf("%s %s  ·  %d", b.Emoji, b.Label, i.Log.Score)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s  ·  %s  ·  %s  ·  %s",
		i.Log.Date.In(i.loc).Format("Mon Jan 2 15:04"), i.Log.Duration(), i.Log.Color, scoring.EffortLabel(i.Log.Effort))
}

func (i Item) FilterValue() string { return models.Bristol(i.Log.TextureClass).Label }

type KeyMap struct {
	Clear   key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore history"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	bars   []tracker.Bar
	width  int
	height int
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Clear, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Clear, keys.Restore}
	}
	return Model{list: l, keys: keys}
}

// SetLogs replaces the newest-first history and the chart bars
func (m *Model) SetLogs(logs []models.Log, bars []tracker.Bar, loc *time.Location) {
	items := make([]list.Item, len(logs))
	for i, l := range logs {
		items[i] = Item{Log: l, loc: loc}
	}
	m.list.SetItems(items)
	m.bars = bars
}

// Filtering reports whether the list filter has focus
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Clear):
			if len(m.list.Items()) > 0 {
				return m, func() tea.Msg { return ClearHistoryMsg{} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Restore):
			return m, func() tea.Msg { return RestoreHistoryMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No logs yet.\n  Time a visit on the Track tab, or press 'r' to restore a cleared history."
	}
	return lipgloss.JoinVertical(lipgloss.Left, Chart(m.bars), m.list.View())
}

// Chart draws bars bottom-up, one column per log, oldest on the left
func Chart(bars []tracker.Bar) string {
	if len(bars) == 0 {
		return ""
	}
	rows := make([]string, 0, chartHeight+2)
	for row := chartHeight; row >= 1; row-- {
		var b strings.Builder
		for _, bar := range bars {
			cell := "    "
			if bar.Score*chartHeight >= row*100 || (row == 1 && bar.Score > 0) {
				cell = lipgloss.NewStyle().Foreground(BandColors[bar.Band]).Render(" ██ ")
			}
			b.WriteString(cell)
		}
		rows = append(rows, b.String())
	}

	var scores, labels strings.Builder
	for _, bar := range bars {
		scores.WriteString(fmt.Sprintf("%4d", bar.Score))
		labels.WriteString(fmt.Sprintf(" %-3s", bar.Label))
	}
	rows = append(rows, mutedStyle.Render(scores.String()), labels.String())
	return chartStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-chartHeight-4, 3))
}
