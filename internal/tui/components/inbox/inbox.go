package inbox

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/utils"
)

type AcceptMsg struct {
	ID string
}

type DeclineMsg struct {
	ID string
}

type CloseMsg struct{}

type Item struct {
	Notification models.Notification
	now          time.Time
}

func (i Item) Title() string {
	return fmt.Sprintf("%s wants to be your friend", i.Notification.FromUsername)
}

func (i Item) Description() string {
	return utils.FormatLastActive(i.Notification.Date, i.now)
}

func (i Item) FilterValue() string { return i.Notification.FromUsername }

type KeyMap struct {
	Accept  key.Binding
	Decline key.Binding
	Close   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept"),
		),
		Decline: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "decline"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "i"),
			key.WithHelp("esc", "close"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Inbox"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Accept, keys.Decline, keys.Close}
	}
	return Model{list: l, keys: keys}
}

func (m *Model) SetNotifications(ns []models.Notification, now time.Time) {
	items := make([]list.Item, len(ns))
	for i, n := range ns {
		items[i] = Item{Notification: n, now: now}
	}
	m.list.SetItems(items)
}

func (m Model) Count() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Close):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.Accept):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AcceptMsg{ID: i.Notification.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Decline):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeclineMsg{ID: i.Notification.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No new notifications\n\n  Press esc to close."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
