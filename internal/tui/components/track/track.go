package track

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
	"github.com/julianstephens/plop/internal/tracker"
)

// FinishedMsg asks the parent to collect the observation for a finished session
type FinishedMsg struct {
	Seconds   int
	StartedAt time.Time
}

type KeyMap struct {
	Toggle key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/finish"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel timer"),
		),
	}
}

var (
	timerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")).Padding(1, 4).Border(lipgloss.RoundedBorder())
	startStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#22C55E")).Padding(0, 3)
	finishStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("#EF4444")).Padding(0, 3)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).MarginTop(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	session   *tracker.Session
	stopwatch stopwatch.Model
	keys      KeyMap
	last      *tracker.Outcome
	width     int
	height    int
}

func New(now func() time.Time) Model {
	return Model{
		session:   tracker.NewSession(now),
		stopwatch: stopwatch.NewWithInterval(time.Second),
		keys:      DefaultKeyMap(),
	}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Timing reports whether a session is running
func (m Model) Timing() bool {
	return m.session.State() == tracker.SessionTiming
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m.toggle()
		case key.Matches(msg, m.keys.Cancel) && m.Timing():
			m.session.Reset()
			return m, tea.Batch(m.stopwatch.Stop(), m.stopwatch.Reset())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.stopwatch, cmd = m.stopwatch.Update(msg)
	return m, cmd
}

func (m Model) toggle() (Model, tea.Cmd) {
	switch m.session.State() {
	case tracker.SessionIdle:
		if err := m.session.Start(); err != nil {
			return m, nil
		}
		m.last = nil
		return m, tea.Batch(m.stopwatch.Reset(), m.stopwatch.Start())
	case tracker.SessionTiming:
		if err := m.session.Finish(); err != nil {
			return m, nil
		}
		finished := FinishedMsg{Seconds: m.session.DurationSeconds(), StartedAt: m.session.StartedAt()}
		return m, tea.Batch(m.stopwatch.Stop(), func() tea.Msg { return finished })
	}
	return m, nil
}

// Done clears the finished session and shows the saved outcome, if any
func (m *Model) Done(outcome *tracker.Outcome) {
	m.session.Reset()
	m.last = outcome
}

func (m Model) View() string {
	timer := timerStyle.Render(models.FormatDuration(m.session.DurationSeconds()))

	var button string
	switch m.session.State() {
	case tracker.SessionTiming:
		button = finishStyle.Render("FINISH")
	case tracker.SessionStopped:
		button = mutedStyle.Render("Saving…")
	default:
		button = startStyle.Render("START")
	}

	sections := []string{timer, "", button}
	if m.last != nil {
		sections = append(sections, m.viewOutcome(*m.last))
	} else if m.session.State() == tracker.SessionIdle {
		sections = append(sections, "", mutedStyle.Render("Press space when you sit down."))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m Model) viewOutcome(o tracker.Outcome) string {
	bristol := models.Bristol(o.Log.TextureClass)
	lines := []string{
		fmt.Sprintf("%s %s in %s", bristol.Emoji, bristol.Label, o.Log.Duration()),
		fmt.Sprintf("Score %d (%s)", o.Log.Score, scoring.BandFor(o.Log.Score)),
		mutedStyle.Render(fmt.Sprintf("texture %d + effort %d + color %d", o.Breakdown.Texture, o.Breakdown.Effort, o.Breakdown.Color)),
	}
	for _, def := range o.NewlyUnlocked {
		lines = append(lines, fmt.Sprintf("%s Unlocked: %s", def.Icon, def.Title))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
