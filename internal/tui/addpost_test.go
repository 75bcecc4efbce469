package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"

	"github.com/naveenspark/postdesk/internal/mocks"
	"github.com/naveenspark/postdesk/internal/posts"
	"github.com/naveenspark/postdesk/pkg/client"
	"github.com/naveenspark/postdesk/pkg/domain"
)

func newTestAddPost(t *testing.T) (addPostModel, *mocks.MockPostsAPI) {
	t.Helper()
	api := mocks.NewMockPostsAPI(gomock.NewController(t))
	return newAddPostModel(posts.NewStore(api, quietLogger())), api
}

func typeInto(m addPostModel, s string) addPostModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestAddPostShortTitleRejectedWithoutRequest(t *testing.T) {
	// No expectations: a request would fail the test.
	m, _ := newTestAddPost(t)
	m = typeInto(m, "ab")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "plenty of content")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.busy {
		t.Error("invalid post must not start a request")
	}
	if cmd == nil {
		t.Fatal("expected an error-expiry timer")
	}
	if !strings.Contains(m.View(), "Title must be at least 3 characters long") {
		t.Errorf("view = %q", m.View())
	}
}

func TestAddPostCreatesAtMinimumLengths(t *testing.T) {
	m, api := newTestAddPost(t)
	api.EXPECT().CreatePost(gomock.Any(), client.PostInput{Title: "abc", Content: "twelve chars"}).
		Return(&domain.Post{ID: 1}, nil).Times(1)

	m = typeInto(m, "abc")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // to content
	m = typeInto(m, "twelve chars")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.busy {
		t.Fatal("expected request in flight")
	}
	if !strings.Contains(m.View(), "Creating...") {
		t.Error("expected in-flight indicator")
	}

	// A second submit while in flight is ignored.
	if _, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); again != nil {
		t.Error("submit should be disabled while in flight")
	}

	m, clear := m.Update(cmd())
	if m.busy {
		t.Error("busy not cleared")
	}
	if !strings.Contains(m.View(), posts.MsgCreated) {
		t.Errorf("view = %q, want success message", m.View())
	}
	if m.fields[addTitle].value != "" || m.fields[addContent].value != "" {
		t.Error("form not cleared")
	}
	if clear == nil {
		t.Fatal("expected success-expiry timer")
	}

	m, _ = m.Update(clearAddStatusMsg{seq: m.seq})
	if m.success != "" {
		t.Error("success message not cleared")
	}
}

func TestAddPostServerValidationDetails(t *testing.T) {
	m, api := newTestAddPost(t)
	api.EXPECT().CreatePost(gomock.Any(), gomock.Any()).
		Return(nil, &client.HTTPError{StatusCode: 400, Details: []string{"Title already used"}})

	m = typeInto(m, "Title")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "Content long enough")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(cmd())

	if !strings.Contains(m.View(), "Validation error: Title already used") {
		t.Errorf("view = %q", m.View())
	}
}

func TestAddPostStaleClearIgnored(t *testing.T) {
	m, _ := newTestAddPost(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}) // empty title error, seq 1
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}) // again, seq 2
	m, _ = m.Update(clearAddStatusMsg{seq: 1})
	if m.err != "Title is required" {
		t.Errorf("err = %q, stale timer cleared a newer message", m.err)
	}
	m, _ = m.Update(clearAddStatusMsg{seq: 2})
	if m.err != "" {
		t.Error("current timer did not clear")
	}
}

func TestAddPostEscReleasesKeyboard(t *testing.T) {
	m, _ := newTestAddPost(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.focused {
		t.Fatal("esc should release the form")
	}
	m = typeInto(m, "x")
	if m.fields[addTitle].value != "" {
		t.Error("typing while released should not edit")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.focused {
		t.Error("enter should refocus the form")
	}
}

func TestAddPostContentAcceptsNewlines(t *testing.T) {
	m, _ := newTestAddPost(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "one")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeInto(m, "two")
	if got := m.fields[addContent].value; got != "one\ntwo" {
		t.Errorf("content = %q", got)
	}
}
