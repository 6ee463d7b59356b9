package me

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/tracker"
)

// EquipMsg toggles the nameplate for an earned badge
type EquipMsg struct {
	ID string
}

type EditProfileMsg struct{}

type LogoutMsg struct{}

type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Equip  key.Binding
	Edit   key.Binding
	Logout key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev badge"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next badge"),
		),
		Equip: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "equip nameplate"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "log out"),
		),
	}
}

var (
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	badgeStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(18).Align(lipgloss.Center)
	lockedStyle   = badgeStyle.BorderForeground(lipgloss.Color("238")).Foreground(lipgloss.Color("240"))
	earnedStyle   = badgeStyle.BorderForeground(lipgloss.Color("#F59E0B"))
	equippedStyle = badgeStyle.BorderForeground(lipgloss.Color("#22C55E")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type Model struct {
	user   models.User
	stats  tracker.Stats
	badges []profile.Badge
	cursor int
	keys   KeyMap
	width  int
	height int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetUser(user models.User, stats tracker.Stats) {
	m.user = user
	m.stats = stats
	m.badges = profile.Badges(user)
	m.cursor = min(m.cursor, max(len(m.badges)-1, 0))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	msg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.badges)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Equip):
		if m.cursor < len(m.badges) && m.badges[m.cursor].Earned {
			id := string(m.badges[m.cursor].ID)
			return m, func() tea.Msg { return EquipMsg{ID: id} }
		}
	case key.Matches(msg, m.keys.Edit):
		return m, func() tea.Msg { return EditProfileMsg{} }
	case key.Matches(msg, m.keys.Logout):
		return m, func() tea.Msg { return LogoutMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	if m.user.ID == "" {
		return "\n  Not logged in."
	}

	header := nameStyle.Render(m.user.Username)
	for _, b := range m.badges {
		if b.Equipped {
			header += "  " + b.Icon + " " + b.Title
		}
	}
	contact := m.user.Email
	if contact == "" {
		contact = m.user.Phone
	}

	stats := []string{
		fmt.Sprintf("Logs %d", m.stats.TotalLogs),
		fmt.Sprintf("Avg %d", m.stats.AverageScore),
		fmt.Sprintf("Best %d", m.stats.BestScore),
		fmt.Sprintf("Streak %d (best %d)", m.stats.CurrentStreak, m.stats.LongestStreak),
		fmt.Sprintf("Friends %d", len(m.user.Friends)),
	}

	cards := make([]string, len(m.badges))
	for i, b := range m.badges {
		style := lockedStyle
		icon := "🔒"
		switch {
		case b.Equipped:
			style, icon = equippedStyle, b.Icon
		case b.Earned:
			style, icon = earnedStyle, b.Icon
		}
		card := style.Render(icon + "\n" + b.Title + "\n" + mutedStyle.Render(b.Description))
		if i == m.cursor {
			card = lipgloss.JoinVertical(lipgloss.Center, card, cursorStyle.Render("▲"))
		}
		cards[i] = card
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		mutedStyle.Render(contact+"  ·  "+m.user.ID),
		"",
		strings.Join(stats, "  ·  "),
		"",
		"Achievements",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
