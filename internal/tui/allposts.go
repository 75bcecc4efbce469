package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/postdesk/internal/posts"
	"github.com/naveenspark/postdesk/pkg/domain"
)

type postsLoadedMsg struct{ err error }
type postUpdatedMsg struct{ err error }
type postDeletedMsg struct {
	id  int64
	err error
}
type copyResultMsg struct{ err error }

// postsEventMsg relays a collection event from the store subscription.
type postsEventMsg struct {
	event posts.Event
}

const (
	editTitle = iota
	editContent
	numEditFields
)

type allPostsModel struct {
	store     *posts.Store
	all       []domain.Post
	listing   posts.Listing
	cursor    int // index within the visible page
	loading   bool
	err       string
	statusMsg string
	searching bool
	detail    *domain.Post // open read view

	editing   *domain.Post
	edit      [numEditFields]field
	editFocus int
	saving    bool

	confirm  *domain.Post // pending delete
	deleting bool
	width   int
	height  int
}

func newAllPostsModel(s *posts.Store) allPostsModel {
	return allPostsModel{store: s, loading: true, listing: posts.Listing{Page: 1}}
}

// Init fetches the collection, as on every visit to the tab.
func (m allPostsModel) Init() tea.Cmd {
	return m.refresh()
}

func (m allPostsModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return postsLoadedMsg{err: s.Refresh(context.Background())}
	}
}

func (m allPostsModel) isEditing() bool {
	return m.searching || m.editing != nil || m.confirm != nil
}

func (m allPostsModel) Update(msg tea.Msg) (allPostsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case postsLoadedMsg:
		m.loading = false
		m.all = m.store.Posts()
		if msg.err != nil {
			m.err = posts.MsgFetchFailed
		} else {
			m.err = ""
		}
		m.clampCursor()
		return m, nil

	case postsEventMsg:
		switch msg.event {
		case posts.EventCreated:
			m.loading = true
			return m, m.refresh()
		case posts.EventRefreshed:
			m.all = m.store.Posts()
			m.clampCursor()
		}
		return m, nil

	case postUpdatedMsg:
		m.saving = false
		if msg.err != nil && !errors.Is(msg.err, posts.ErrRefresh) {
			m.err = posts.UpdateMessage(msg.err)
			return m, nil
		}
		// The PUT went through; a failed refetch is reported on the list.
		m.err = posts.UpdateMessage(msg.err)
		m.editing = nil
		m.detail = nil
		m.all = m.store.Posts()
		m.clampCursor()
		return m, nil

	case postDeletedMsg:
		m.deleting = false
		if msg.err != nil {
			m.err = posts.DeleteMessage(msg.err)
			m.all = m.store.Posts()
			m.clampCursor()
			return m, nil
		}
		m.err = ""
		m.all = m.store.Posts()
		m.listing.ClampAfterDelete(m.all)
		if m.detail != nil && m.detail.ID == msg.id {
			m.detail = nil
		}
		m.clampCursor()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.editing != nil:
			return m.updateEdit(msg)
		case m.searching:
			return m.updateSearch(msg)
		case m.detail != nil:
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m allPostsModel) updateSearch(msg tea.KeyMsg) (allPostsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
	case "esc":
		m.searching = false
		m.listing.SetTerm("")
		m.cursor = 0
	default:
		term := editRune(m.listing.Term, msg.String())
		if term != m.listing.Term {
			m.listing.SetTerm(term)
			m.cursor = 0
		}
	}
	return m, nil
}

func (m allPostsModel) updateList(msg tea.KeyMsg) (allPostsModel, tea.Cmd) {
	visible := m.listing.Visible(m.all)
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l", "]", "right":
		if m.listing.Next(m.all) {
			m.cursor = 0
		}
	case "h", "[", "left":
		if m.listing.Prev() {
			m.cursor = 0
		}
	case "/":
		m.searching = true
	case "esc":
		if m.listing.Term != "" {
			m.listing.SetTerm("")
			m.cursor = 0
		}
	case "enter":
		if p, ok := m.selected(); ok {
			m.detail = &p
		}
	case "e":
		if p, ok := m.selected(); ok {
			m.startEdit(p)
		}
	case "d":
		if p, ok := m.selected(); ok && !m.deleting {
			m.confirm = &p
		}
	case "c":
		if p, ok := m.selected(); ok {
			return m, copyCmd(p.Content)
		}
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.refresh()
	}
	return m, nil
}

func (m allPostsModel) updateDetail(msg tea.KeyMsg) (allPostsModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.detail = nil
	case "e":
		m.startEdit(*m.detail)
	case "d":
		if !m.deleting {
			p := *m.detail
			m.confirm = &p
		}
	case "c":
		return m, copyCmd(m.detail.Content)
	}
	return m, nil
}

func (m *allPostsModel) startEdit(p domain.Post) {
	m.editing = &p
	m.editFocus = editTitle
	m.edit[editTitle] = field{label: "title", value: p.Title}
	m.edit[editContent] = field{label: "content", value: p.Content, multiline: true}
}

func (m allPostsModel) updateEdit(msg tea.KeyMsg) (allPostsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.editing = nil
		m.edit = [numEditFields]field{}
	case "ctrl+s":
		id := m.editing.ID
		title, content := m.edit[editTitle].value, m.edit[editContent].value
		m.saving = true
		s := m.store
		return m, func() tea.Msg {
			return postUpdatedMsg{err: s.Update(context.Background(), id, title, content)}
		}
	case "tab", "shift+tab":
		m.editFocus = (m.editFocus + 1) % numEditFields
	case "enter":
		if m.editFocus == editTitle {
			m.editFocus = editContent
		} else {
			m.edit[editContent].value = editRune(m.edit[editContent].value, "\n")
		}
	default:
		f := &m.edit[m.editFocus]
		f.value = editRune(f.value, msg.String())
	}
	return m, nil
}

func (m allPostsModel) updateConfirm(msg tea.KeyMsg) (allPostsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirm.ID
		m.confirm = nil
		m.deleting = true
		s := m.store
		return m, func() tea.Msg {
			return postDeletedMsg{id: id, err: s.Delete(context.Background(), id)}
		}
	case "n", "N", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m allPostsModel) selected() (domain.Post, bool) {
	visible := m.listing.Visible(m.all)
	if m.cursor < 0 || m.cursor >= len(visible) {
		return domain.Post{}, false
	}
	return visible[m.cursor], true
}

func (m *allPostsModel) clampCursor() {
	n := len(m.listing.Visible(m.all))
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboard.WriteAll(text)}
	}
}

func (m allPostsModel) View() string {
	switch {
	case m.editing != nil:
		return m.viewEdit()
	case m.detail != nil:
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(fmt.Sprintf("All Posts (%d)", len(m.all))) + "\n")

	term := m.listing.Term
	switch {
	case m.searching:
		b.WriteString(" " + searchStyle.Render("/ ") + term + accentStyle.Render(cursorGlyph) + "\n")
	case term != "":
		b.WriteString(" " + searchStyle.Render("/ ") + dimStyle.Render(term) + "\n")
	default:
		b.WriteString(" " + inputPlaceholderStyle.Render("/ Search The Posts") + "\n")
	}

	filtered := m.listing.Filtered(m.all)
	if term != "" {
		n := len(filtered)
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("Found %d %s matching %q", n, plural(n, "post"), term)) + "\n")
	}
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("Loading posts...") + "\n")
	case len(filtered) == 0 && term != "":
		b.WriteString(" " + dimStyle.Render("No posts found matching your search. Try a different term.") + "\n")
	case len(filtered) == 0:
		b.WriteString(" " + dimStyle.Render("No posts found. Create your first post!") + "\n")
	default:
		width := m.width - 6
		if width < 30 {
			width = 70
		}
		for i, p := range m.listing.Visible(m.all) {
			marker := "  "
			title := normalStyle.Render(p.Title)
			if i == m.cursor {
				marker = accentStyle.Render("> ")
				title = selectedStyle.Render(p.Title)
			}
			b.WriteString(" " + marker + title + "\n")
			b.WriteString("    " + dimStyle.Render(truncStr(oneLine(p.Content), width)) + "\n")
			b.WriteString("    " + metaStyle.Render(fmt.Sprintf("ID: %d  User: %d", p.ID, p.UserID)) + "\n")
		}
		if total := m.listing.TotalPages(m.all); total > 1 {
			b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d", m.listing.Current(), total)) + "\n")
		}
	}

	if m.deleting {
		b.WriteString("\n " + dimStyle.Render("Deleting...") + "\n")
	}
	if m.confirm != nil {
		b.WriteString("\n " + noticeStyle.Render(fmt.Sprintf("Are you sure you want to delete this post? %q (y/n)", truncStr(m.confirm.Title, 40))) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + successStyle.Render(m.statusMsg) + "\n")
	}
	return truncateToHeight(b.String(), m.height)
}

func (m allPostsModel) viewDetail() string {
	p := m.detail
	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("<- back (esc)") + "\n")
	b.WriteString(" " + titleStyle.Render(p.Title) + "\n")
	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("ID: %d  User: %d", p.ID, p.UserID)) + "\n\n")
	for _, line := range wrapLines(p.Content, m.width-4) {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}
	if m.err != "" {
		b.WriteString("\n " + errorStyle.Render(m.err) + "\n")
	}
	if m.confirm != nil {
		b.WriteString("\n " + noticeStyle.Render("Are you sure you want to delete this post? (y/n)") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + successStyle.Render(m.statusMsg) + "\n")
	}
	return truncateToHeight(b.String(), m.height)
}

func (m allPostsModel) viewEdit() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(fmt.Sprintf("Edit Post #%d", m.editing.ID)) + "\n\n")
	for i := range m.edit {
		b.WriteString(m.edit[i].render(i == m.editFocus) + "\n")
	}
	b.WriteString("\n")
	if m.saving {
		b.WriteString(" " + dimStyle.Render("Saving...") + "\n")
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m allPostsModel) help() string {
	switch {
	case m.confirm != nil:
		return helpBar("y", "delete", "n", "cancel")
	case m.editing != nil:
		return helpBar("tab", "next", "ctrl+s", "save", "esc", "cancel")
	case m.searching:
		return helpBar("type", "filter", "enter", "done", "esc", "clear")
	case m.detail != nil:
		return helpBar("e", "edit", "d", "delete", "c", "copy", "esc", "back")
	}
	return helpBar("j/k", "nav", "h/l", "page", "/", "search", "enter", "read", "e", "edit", "d", "delete", "r", "refresh", "1/2", "tabs", "ctrl+l", "logout", "q", "quit")
}
