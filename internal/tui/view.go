package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plop/internal/constants"
)

var tabTitles = [constants.TabCount]string{"Track", "History", "Rank", "Me"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateTracker:
		content = docStyle.Render(m.track.View())
	case constants.StateHistory:
		content = docStyle.Render(m.history.View())
	case constants.StateLeaderboard:
		content = docStyle.Render(m.rank.View())
	case constants.StateProfile:
		content = docStyle.Render(m.me.View())
	case constants.StateInbox:
		content = docStyle.Render(m.inbox.View())
	case constants.StateLogForm, constants.StateEditProfile, constants.StateLogin:
		content = docStyle.Render(m.viewForm())
	case constants.StateConfirmClear:
		content = m.viewConfirmClear()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	if m.state == constants.StateLogin {
		return activeTabStyle.Render("💩 " + constants.AppName)
	}
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	inboxTab := "Inbox"
	if m.state == constants.StateInbox {
		inboxTab = activeTabStyle.Render(inboxTab)
	} else {
		inboxTab = inactiveTabStyle.Render(inboxTab)
	}
	tabs = append(tabs, inboxTab)
	if n := m.inbox.Count(); n > 0 {
		tabs = append(tabs, badgeStyle.Render(fmt.Sprintf("%d", n)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	switch m.state {
	case constants.StateLogForm:
		return lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("How did it go? (%ds)", m.finished.Seconds),
			"",
			m.form.View(),
		)
	case constants.StateLogin:
		return lipgloss.JoinVertical(lipgloss.Left,
			"Log in to start tracking",
			"",
			m.form.View(),
		)
	}
	return m.form.View()
}

func (m Model) viewConfirmClear() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Clear your whole history?"),
			"Achievements you have earned are kept.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
