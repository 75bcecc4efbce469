package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/route"
)

const (
	signupName = iota
	signupEmail
	signupPassword
	numSignupFields
)

type signupModel struct {
	auth   *auth.Controller
	fields [numSignupFields]field
	focus  int
	busy   bool
	err    string
}

func newSignupModel(c *auth.Controller) signupModel {
	m := signupModel{auth: c}
	m.fields[signupName] = field{label: "name", placeholder: "Your name"}
	m.fields[signupEmail] = field{label: "email", placeholder: "you@example.com"}
	m.fields[signupPassword] = field{label: "password", placeholder: "password", masked: true}
	return m
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, navigate(route.Dashboard)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			if m.focus < signupPassword {
				m.focus++
				return m, nil
			}
			return m.submit()
		case "tab", "down":
			m.focus = (m.focus + 1) % numSignupFields
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + numSignupFields) % numSignupFields
		case "esc":
			return m, navigate(route.Login)
		default:
			f := &m.fields[m.focus]
			f.value = editRune(f.value, msg.String())
		}
	}
	return m, nil
}

func (m signupModel) submit() (signupModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[signupName].value)
	email := strings.TrimSpace(m.fields[signupEmail].value)
	password := m.fields[signupPassword].value
	if name == "" || email == "" || password == "" {
		m.err = "All fields are required"
		return m, nil
	}
	m.err = ""
	m.busy = true
	c := m.auth
	return m, func() tea.Msg {
		return authResultMsg{err: c.Signup(context.Background(), name, email, password)}
	}
}

func (m signupModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Create an account") + "\n\n")
	for i := range m.fields {
		b.WriteString(m.fields[i].render(i == m.focus) + "\n")
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString(" " + dimStyle.Render("Creating account...") + "\n")
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m signupModel) help() string {
	return helpBar("enter", "next/submit", "tab", "next", "esc", "back to sign in", "ctrl+c", "quit")
}
