package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/posts"
)

// bridge turns controller and store subscriptions into Bubbletea messages.
// Session changes coalesce into a single pending signal since the App reads
// the current state when it handles one.
type bridge struct {
	session chan struct{}
	events  chan posts.Event
	done    chan struct{}
	cancels []func()
}

func newBridge(c *auth.Controller, s *posts.Store) *bridge {
	b := &bridge{
		session: make(chan struct{}, 1),
		events:  make(chan posts.Event, 32),
		done:    make(chan struct{}),
	}
	if c != nil {
		b.cancels = append(b.cancels, c.Subscribe(func(auth.State) {
			select {
			case b.session <- struct{}{}:
			default:
			}
		}))
	}
	if s != nil {
		b.cancels = append(b.cancels, s.Subscribe(func(e posts.Event) {
			select {
			case b.events <- e:
			default:
			}
		}))
	}
	return b
}

func (b *bridge) waitSession() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.session:
			return sessionChangedMsg{}
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) waitPosts() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-b.events:
			return postsEventMsg{event: e}
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) close() {
	select {
	case <-b.done:
		return
	default:
	}
	for _, cancel := range b.cancels {
		cancel()
	}
	close(b.done)
}
