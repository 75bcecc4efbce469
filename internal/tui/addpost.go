package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/postdesk/internal/posts"
	"github.com/naveenspark/postdesk/pkg/domain"
)

const (
	addTitle = iota
	addContent
	numAddFields
)

const (
	successTTL = 2 * time.Second
	errorTTL   = 5 * time.Second
)

type postCreatedMsg struct {
	post *domain.Post
	err  error
}

// clearAddStatusMsg expires a status line; seq guards against clearing a newer one.
type clearAddStatusMsg struct {
	seq int
}

type addPostModel struct {
	store   *posts.Store
	fields  [numAddFields]field
	focus   int
	focused bool // typing into the form; esc releases the keyboard for navigation
	busy    bool
	success string
	err     string
	seq     int
}

func newAddPostModel(s *posts.Store) addPostModel {
	m := addPostModel{store: s, focused: true}
	m.fields[addTitle] = field{label: "title", placeholder: "Enter post title (minimum 3 characters)"}
	m.fields[addContent] = field{label: "content", placeholder: "Enter post content (minimum 12 characters)", multiline: true}
	return m
}

func (m addPostModel) Update(msg tea.Msg) (addPostModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postCreatedMsg:
		m.busy = false
		if msg.err != nil {
			return m.setError(posts.CreateMessage(msg.err))
		}
		m.fields[addTitle].value = ""
		m.fields[addContent].value = ""
		m.focus = addTitle
		m.err = ""
		m.success = posts.MsgCreated
		m.seq++
		return m, clearAfter(successTTL, m.seq)

	case clearAddStatusMsg:
		if msg.seq == m.seq {
			m.success = ""
			m.err = ""
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			switch msg.String() {
			case "enter", "i":
				m.focused = true
			}
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m addPostModel) updateKeys(msg tea.KeyMsg) (addPostModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "esc":
		m.focused = false
	case "tab", "shift+tab":
		m.focus = (m.focus + 1) % numAddFields
	case "enter":
		if m.focus == addContent {
			m.fields[addContent].value = editRune(m.fields[addContent].value, "\n")
		} else {
			m.focus = addContent
		}
	default:
		if m.busy {
			return m, nil
		}
		f := &m.fields[m.focus]
		f.value = editRune(f.value, msg.String())
	}
	return m, nil
}

func (m addPostModel) submit() (addPostModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	title := m.fields[addTitle].value
	content := m.fields[addContent].value
	if err := domain.ValidateNewPost(title, content); err != nil {
		return m.setError(posts.CreateMessage(err))
	}
	m.busy = true
	m.err = ""
	m.success = ""
	s := m.store
	return m, func() tea.Msg {
		p, err := s.Create(context.Background(), title, content)
		return postCreatedMsg{post: p, err: err}
	}
}

func (m addPostModel) setError(text string) (addPostModel, tea.Cmd) {
	m.err = text
	m.success = ""
	m.seq++
	return m, clearAfter(errorTTL, m.seq)
}

func clearAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearAddStatusMsg{seq: seq} })
}

func (m addPostModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Create New Post") + "\n\n")
	for i := range m.fields {
		b.WriteString(m.fields[i].render(m.focused && i == m.focus) + "\n")
	}
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(" " + dimStyle.Render("Creating...") + "\n")
	case m.success != "":
		b.WriteString(" " + successStyle.Render(m.success) + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m addPostModel) help() string {
	if !m.focused {
		return helpBar("enter", "edit form", "1/2", "tabs", "ctrl+l", "logout", "q", "quit")
	}
	return helpBar("tab", "next", "ctrl+s", "create post", "esc", "nav")
}
