package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/route"
)

const (
	loginEmail = iota
	loginPassword
	numLoginFields
)

// msgOAuthFailed is shown when the login view is reached through a failed Google callback.
const msgOAuthFailed = "Google sign-in failed. Please try again."

// authResultMsg carries the outcome of a login or signup request.
type authResultMsg struct {
	err error
}

// googleStartMsg asks the App to begin the browser sign-in.
type googleStartMsg struct{}

// navigateMsg asks the App to change route.
type navigateMsg struct {
	path string
}

type loginModel struct {
	auth    *auth.Controller
	fields  [numLoginFields]field
	focus   int
	busy    bool
	waiting bool // browser sign-in in progress
	err     string
	notice  string
}

func newLoginModel(c *auth.Controller, notice string) loginModel {
	m := loginModel{auth: c, notice: notice}
	m.fields[loginEmail] = field{label: "email", placeholder: "you@example.com"}
	m.fields[loginPassword] = field{label: "password", placeholder: "password", masked: true}
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		return m, navigate(route.Dashboard)

	case tea.KeyMsg:
		if m.busy || m.waiting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.focus == loginEmail && m.fields[loginPassword].value == "" {
			m.focus = loginPassword
			return m, nil
		}
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "ctrl+n":
		return m, navigate(route.Signup)
	case "ctrl+g":
		m.err = ""
		m.notice = ""
		m.waiting = true
		return m, func() tea.Msg { return googleStartMsg{} }
	default:
		f := &m.fields[m.focus]
		f.value = editRune(f.value, msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[loginEmail].value)
	password := m.fields[loginPassword].value
	if email == "" || password == "" {
		m.err = "Email and password are required"
		return m, nil
	}
	m.err = ""
	m.notice = ""
	m.busy = true
	c := m.auth
	return m, func() tea.Msg {
		return authResultMsg{err: c.Login(context.Background(), email, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Sign in") + "\n\n")
	for i := range m.fields {
		b.WriteString(m.fields[i].render(i == m.focus) + "\n")
	}
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(" " + dimStyle.Render("Signing in...") + "\n")
	case m.waiting:
		b.WriteString(" " + dimStyle.Render("Waiting for Google sign-in in your browser...") + "\n")
		b.WriteString(" " + metaStyle.Render("If no browser opened, quit and run: postdesk login --google") + "\n")
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	if m.notice != "" {
		b.WriteString(" " + noticeStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m loginModel) help() string {
	return helpBar("enter", "sign in", "tab", "next", "ctrl+n", "sign up", "ctrl+g", "google", "ctrl+c", "quit")
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}
