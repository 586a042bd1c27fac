package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

const (
	loginUsername = iota
	loginPassword
	numLoginFields
)

type loginResultMsg struct {
	err error
}

type loginModel struct {
	session    *session.Session
	fields     [numLoginFields]string
	focus      int
	submitting bool
	err        string
}

func newLoginModel(s *session.Session) loginModel {
	return loginModel{session: s}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = client.Message(msg.err, "Login failed")
			m.fields[loginPassword] = ""
			m.focus = loginPassword
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m loginModel) handleKey(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		m.focus = cycleIndex(m.focus, 1, numLoginFields)
	case "enter":
		if m.focus == loginUsername {
			m.focus = loginPassword
			return m, nil
		}
		return m.submit()
	default:
		m.err = ""
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	creds := domain.Credentials{
		Username: strings.TrimSpace(m.fields[loginUsername]),
		Password: m.fields[loginPassword],
	}
	if err := creds.Validate(); err != nil {
		m.err = "Please fill in all required fields"
		return m, nil
	}

	m.submitting = true
	m.err = ""
	s := m.session
	return m, func() tea.Msg {
		return loginResultMsg{err: s.Login(context.Background(), creds)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("Sign in to order from your favourite restaurants.") + "\n\n")

	renderForm(&b, []formField{
		{label: "username", value: m.fields[loginUsername]},
		{label: "password", value: m.fields[loginPassword], secret: true},
	}, m.focus)

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err))
	}
	return b.String()
}
