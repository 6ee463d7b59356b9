package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/plop/internal/auth"
	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/leaderboard"
	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/social"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/tracker"
	"github.com/julianstephens/plop/internal/tui/components/history"
	"github.com/julianstephens/plop/internal/tui/components/inbox"
	"github.com/julianstephens/plop/internal/tui/components/me"
	"github.com/julianstephens/plop/internal/tui/components/rank"
	"github.com/julianstephens/plop/internal/tui/components/track"
)

type Model struct {
	ctx     context.Context
	store   storage.Provider
	tracker *tracker.Service
	social  *social.Service
	profile *profile.Service
	auth    *auth.Service
	loc     *time.Location
	now     func() time.Time

	state     constants.SessionState
	prevState constants.SessionState
	keys      KeyMap
	help      help.Model

	track   track.Model
	history history.Model
	rank    rank.Model
	me      me.Model
	inbox   inbox.Model

	form        *huh.Form
	logForm     *LogFormModel
	profileForm *ProfileFormModel
	loginForm   *LoginFormModel
	finished    track.FinishedMsg

	user     models.User
	status   string
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel builds the app around store. The login form is shown when no
// user is signed in.
func NewModel(store storage.Provider, trk *tracker.Service, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	m := Model{
		ctx:     context.Background(),
		store:   store,
		tracker: trk,
		social:  social.New(store),
		profile: profile.New(store),
		auth:    auth.New(store),
		loc:     loc,
		now:     time.Now,
		state:   constants.StateTracker,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		track:   track.New(time.Now),
		history: history.New(0, 0),
		rank:    rank.New(),
		me:      me.New(),
		inbox:   inbox.New(0, 0),
	}

	user, err := m.auth.Current(m.ctx)
	if err != nil {
		if !errors.Is(err, auth.ErrNotLoggedIn) {
			logger.Error("Failed to load current user", "error", err)
		}
		m.openLoginForm()
		return m
	}
	m.user = user
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m Model) loggedIn() bool {
	return m.user.ID != ""
}

// refresh reloads every view from the store for the current user
func (m *Model) refresh() {
	if !m.loggedIn() {
		return
	}
	if user, err := m.store.GetUser(m.ctx, m.user.ID); err == nil {
		m.user = user
	} else {
		m.setError(err)
		return
	}

	logs, err := m.tracker.History(m.ctx, m.user.ID)
	if err != nil {
		m.setError(err)
	}
	bars, err := m.tracker.ChartData(m.ctx, m.user.ID)
	if err != nil {
		m.setError(err)
	}
	m.history.SetLogs(logs, bars, m.loc)

	stats, err := m.tracker.Stats(m.ctx, m.user.ID)
	if err != nil {
		m.setError(err)
	}
	m.me.SetUser(m.user, stats)

	entries, err := leaderboard.Load(m.ctx, m.store, m.user.ID, m.now())
	if err != nil {
		m.setError(err)
	}
	m.rank.SetEntries(entries)

	notifications, err := m.social.Inbox(m.ctx, m.user.ID)
	if err != nil {
		m.setError(err)
	}
	m.inbox.SetNotifications(notifications, m.now())
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.err = nil
}

func (m *Model) setError(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.err = err
	m.status = ""
}

func (m *Model) openForm(state constants.SessionState, form *huh.Form) tea.Cmd {
	if state != m.state {
		m.prevState = m.state
	}
	m.state = state
	m.form = form
	return form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = m.prevState
}

func (m *Model) openLoginForm() tea.Cmd {
	m.loginForm = &LoginFormModel{Method: auth.MethodEmail}
	m.prevState = constants.StateTracker
	m.state = constants.StateLogin
	m.form = NewLoginForm(m.loginForm)
	return m.form.Init()
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateTracker:
		k := m.track.Keys()
		return append([]key.Binding{k.Toggle, k.Cancel}, m.keys.ShortHelp()...)
	case constants.StateProfile:
		k := m.me.Keys()
		return append([]key.Binding{k.Equip, k.Edit, k.Logout}, m.keys.ShortHelp()...)
	case constants.StateConfirmClear:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	switch m.state {
	case constants.StateTracker:
		k := m.track.Keys()
		return append([][]key.Binding{{k.Toggle, k.Cancel}}, m.keys.FullHelp()...)
	case constants.StateProfile:
		k := m.me.Keys()
		return append([][]key.Binding{{k.Left, k.Right, k.Equip}, {k.Edit, k.Logout}}, m.keys.FullHelp()...)
	}
	return m.keys.FullHelp()
}
