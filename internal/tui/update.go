package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/plop/internal/constants"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/tracker"
	"github.com/julianstephens/plop/internal/tui/components/history"
	"github.com/julianstephens/plop/internal/tui/components/inbox"
	"github.com/julianstephens/plop/internal/tui/components/me"
	"github.com/julianstephens/plop/internal/tui/components/track"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := msg.Height - 6
		m.track.SetSize(msg.Width, h)
		m.history.SetSize(msg.Width, h)
		m.rank.SetSize(msg.Width, h)
		m.me.SetSize(msg.Width, h)
		m.inbox.SetSize(msg.Width, h)
		return m, nil

	case track.FinishedMsg:
		m.finished = msg
		m.logForm = &LogFormModel{Effort: 1, Texture: 4, Color: models.ColorBrown}
		return m, m.openForm(constants.StateLogForm, NewLogForm(m.logForm))

	case history.ClearHistoryMsg:
		m.prevState = m.state
		m.state = constants.StateConfirmClear
		return m, nil

	case history.RestoreHistoryMsg:
		n, err := m.tracker.RestoreHistory(m.ctx, m.user.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Restored %d log(s)", n))
		return m, nil

	case me.EquipMsg:
		user, err := m.profile.SelectNameplate(m.ctx, m.user.ID, msg.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		if user.SelectedAchievementID == "" {
			m.setStatus("Nameplate removed")
		} else {
			m.setStatus("Nameplate equipped")
		}
		return m, nil

	case me.EditProfileMsg:
		m.profileForm = &ProfileFormModel{Username: m.user.Username, Avatar: m.user.Avatar}
		return m, m.openForm(constants.StateEditProfile, NewProfileForm(m.profileForm))

	case me.LogoutMsg:
		if err := m.auth.Logout(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.user = models.User{}
		m.status = ""
		return m, m.openLoginForm()

	case inbox.AcceptMsg:
		friend, err := m.social.Accept(m.ctx, m.user.ID, msg.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("You and %s are now friends", friend.Username))
		return m, nil

	case inbox.DeclineMsg:
		if err := m.social.Decline(m.ctx, m.user.ID, msg.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setStatus("Request declined")
		return m, nil

	case inbox.CloseMsg:
		m.state = m.prevState
		return m, nil
	}

	switch m.state {
	case constants.StateLogForm, constants.StateEditProfile, constants.StateLogin:
		return m.updateForm(msg)
	case constants.StateConfirmClear:
		return m.updateConfirmClear(msg)
	case constants.StateInbox:
		keyMsg, ok := msg.(tea.KeyMsg)
		if !ok {
			return m, m.tick(msg)
		}
		if keyMsg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.inbox, cmd = m.inbox.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.history.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.Inbox):
			m.prevState = m.state
			m.state = constants.StateInbox
			return m, nil
		}
	}

	// The stopwatch keeps ticking on every tab
	var cmds []tea.Cmd
	var cmd tea.Cmd
	_, isKey := msg.(tea.KeyMsg)
	if !isKey || m.state == constants.StateTracker {
		m.track, cmd = m.track.Update(msg)
		cmds = append(cmds, cmd)
	}
	if isKey {
		switch m.state {
		case constants.StateHistory:
			m.history, cmd = m.history.Update(msg)
			cmds = append(cmds, cmd)
		case constants.StateLeaderboard:
			m.rank, cmd = m.rank.Update(msg)
			cmds = append(cmds, cmd)
		case constants.StateProfile:
			m.me, cmd = m.me.Update(msg)
			cmds = append(cmds, cmd)
		}
	} else if m.state == constants.StateHistory {
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.form.State = huh.StateAborted
			return m.afterForm(nil)
		}
	}

	tickCmd := m.tick(msg)
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.afterForm(tea.Batch(tickCmd, cmd))
}

// tick keeps the stopwatch running while an overlay has focus
func (m *Model) tick(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		return nil
	}
	var cmd tea.Cmd
	m.track, cmd = m.track.Update(msg)
	return cmd
}

func (m Model) afterForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateLogForm:
			m.saveLog()
		case constants.StateEditProfile:
			if !m.saveProfile() {
				m.form.State = huh.StateNormal
				return m, cmd
			}
		case constants.StateLogin:
			if !m.login() {
				return m, m.openLoginForm()
			}
		}
		m.closeForm()
		return m, nil

	case huh.StateAborted:
		switch m.state {
		case constants.StateLogForm:
			m.track.Done(nil)
			m.setStatus("Log discarded")
		case constants.StateLogin:
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) saveLog() {
	outcome, err := m.tracker.Record(m.ctx, m.user.ID, tracker.Observation{
		TextureClass:    m.logForm.Texture,
		Effort:          m.logForm.Effort,
		Color:           m.logForm.Color,
		DurationSeconds: m.finished.Seconds,
		At:              m.finished.StartedAt,
	})
	switch {
	case errors.Is(err, tracker.ErrProfileNotUpdated):
		m.track.Done(&outcome)
		m.refresh()
		m.setError(err)
		return
	case err != nil:
		m.track.Done(nil)
		m.setError(err)
		return
	}
	m.track.Done(&outcome)
	m.refresh()
	m.setStatus(fmt.Sprintf("Logged! Score %d", outcome.Log.Score))
}

func (m *Model) saveProfile() bool {
	avatar := m.profileForm.Avatar
	if m.profileForm.RandomAvatar {
		avatar = profile.RandomAvatar()
	}
	if _, err := m.profile.Update(m.ctx, m.user.ID, m.profileForm.Username, avatar); err != nil {
		m.setError(err)
		return false
	}
	m.refresh()
	m.setStatus("Profile updated")
	return true
}

func (m *Model) login() bool {
	user, err := m.auth.Login(m.ctx, m.loginForm.Method, m.loginForm.Identifier, m.loginForm.Password)
	if err != nil {
		m.setError(err)
		return false
	}
	m.user = user
	m.refresh()
	m.setStatus("Welcome, " + user.Username)
	return true
}

func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.tick(msg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		n, err := m.tracker.ClearHistory(m.ctx, m.user.ID)
		m.state = m.prevState
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Cleared %d log(s). Press 'r' to restore.", n))
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = m.prevState
	}
	return m, nil
}
