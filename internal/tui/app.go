package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/posts"
	"github.com/naveenspark/postdesk/internal/route"
)

type screen int

const (
	screenLoading screen = iota
	screenLogin
	screenSignup
	screenCallback
	screenDashboard
)

// GoogleSignIn runs the browser leg of a Google login and returns the callback URL.
type GoogleSignIn interface {
	Authorize(ctx context.Context) (string, error)
}

// CallbackHandler turns a callback URL into a session and names the next route.
type CallbackHandler interface {
	Handle(ctx context.Context, callbackURL string) string
}

// Options wires the App to the session and post collection.
type Options struct {
	Auth     *auth.Controller
	Posts    *posts.Store
	Google   GoogleSignIn    // optional
	Callback CallbackHandler // required when Google is set
	// StartPath is the first route requested. Defaults to "/".
	StartPath string
	// Restore runs session restore on Init. Off when the caller already restored.
	Restore bool
	Logger  *slog.Logger
}

type restoredMsg struct{}

type sessionChangedMsg struct{}

type googleAuthorizedMsg struct {
	callbackURL string
	err         error
}

type callbackDoneMsg struct {
	target string
}

// App is the root Bubbletea model.
type App struct {
	auth     *auth.Controller
	posts    *posts.Store
	google   GoogleSignIn
	callback CallbackHandler
	logger   *slog.Logger
	bridge   *bridge
	restore  bool

	path     string
	screen   screen
	login    loginModel
	signup   signupModel
	addPost  addPostModel
	allPosts allPostsModel
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates the TUI. Call Close when the program exits.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.StartPath
	if start == "" {
		start = route.Root
	}
	return App{
		auth:     opts.Auth,
		posts:    opts.Posts,
		google:   opts.Google,
		callback: opts.Callback,
		logger:   logger,
		bridge:   newBridge(opts.Auth, opts.Posts),
		restore:  opts.Restore,
		path:     route.Resolve(start),
		screen:   screenLoading,
		login:    newLoginModel(opts.Auth, ""),
		signup:   newSignupModel(opts.Auth),
		addPost:  newAddPostModel(opts.Posts),
		allPosts: newAllPostsModel(opts.Posts),
	}
}

// Close drops the session and collection subscriptions.
func (a App) Close() {
	a.bridge.close()
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), a.bridge.waitSession(), a.bridge.waitPosts()}
	if a.restore {
		c := a.auth
		cmds = append(cmds, func() tea.Msg {
			c.Restore(context.Background())
			return restoredMsg{}
		})
	} else {
		cmds = append(cmds, func() tea.Msg { return restoredMsg{} })
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(2) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.allPosts, _ = a.allPosts.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case restoredMsg:
		return a.navigate(a.path)

	case sessionChangedMsg:
		var cmd tea.Cmd
		a, cmd = a.reroute()
		return a, tea.Batch(cmd, a.bridge.waitSession())

	case postsEventMsg:
		var cmd tea.Cmd
		if a.screen == screenDashboard && route.Path(a.path) == route.AllPosts {
			a.allPosts, cmd = a.allPosts.Update(msg)
		}
		return a, tea.Batch(cmd, a.bridge.waitPosts())

	case navigateMsg:
		return a.navigate(msg.path)

	case googleStartMsg:
		if a.google == nil || a.callback == nil {
			a.login.waiting = false
			a.login.err = "Google sign-in is not available"
			return a, nil
		}
		g := a.google
		return a, func() tea.Msg {
			u, err := g.Authorize(context.Background())
			return googleAuthorizedMsg{callbackURL: u, err: err}
		}

	case googleAuthorizedMsg:
		a.login.waiting = false
		if msg.err != nil {
			a.logger.Warn("google sign-in", "error", msg.err)
			return a.navigate(route.LoginOAuthFailed)
		}
		a.path = route.AuthCallback
		a.screen = screenCallback
		h, u := a.callback, msg.callbackURL
		return a, func() tea.Msg {
			return callbackDoneMsg{target: h.Handle(context.Background(), u)}
		}

	case callbackDoneMsg:
		return a.navigate(msg.target)

	case authResultMsg:
		var cmd tea.Cmd
		switch a.screen {
		case screenLogin:
			a.login, cmd = a.login.Update(msg)
		case screenSignup:
			a.signup, cmd = a.signup.Update(msg)
		}
		return a, cmd

	case postCreatedMsg, clearAddStatusMsg:
		var cmd tea.Cmd
		a.addPost, cmd = a.addPost.Update(msg)
		return a, cmd

	case postsLoadedMsg, postUpdatedMsg, postDeletedMsg, copyResultMsg:
		var cmd tea.Cmd
		a.allPosts, cmd = a.allPosts.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
	case screenSignup:
		a.signup, cmd = a.signup.Update(msg)
	case screenDashboard:
		return a.updateDashboardKeys(msg)
	}
	return a, cmd
}

func (a App) updateDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+l" {
		if err := a.auth.Logout(); err != nil {
			a.logger.Warn("logout", "error", err)
		}
		return a.navigate(route.Login)
	}

	onAll := route.Path(a.path) == route.AllPosts
	if !a.isEditing() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "1":
			if onAll {
				return a.navigate(route.AddPost)
			}
			return a, nil
		case "2":
			if !onAll {
				return a.navigate(route.AllPosts)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	if onAll {
		a.allPosts, cmd = a.allPosts.Update(msg)
	} else {
		a.addPost, cmd = a.addPost.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	if route.Path(a.path) == route.AllPosts {
		return a.allPosts.isEditing()
	}
	return a.addPost.focused
}

// navigate resolves p, applies the guard and switches screens.
func (a App) navigate(p string) (App, tea.Cmd) {
	p = route.Resolve(p)
	st := a.auth.State()
	d := route.Guard(st, p)
	switch d.Action {
	case route.Loading:
		a.path = p
		a.screen = screenLoading
		return a, nil
	case route.Redirect:
		p = route.Resolve(d.Target)
	}

	prevPath, prevScreen := a.path, a.screen
	a.path = p
	switch route.Path(p) {
	case route.Login:
		notice := st.Notice
		if route.Query(p, "error") == "oauth_failed" {
			notice = msgOAuthFailed
		}
		a.screen = screenLogin
		a.login = newLoginModel(a.auth, notice)
	case route.Signup:
		a.screen = screenSignup
		a.signup = newSignupModel(a.auth)
	case route.AuthCallback:
		a.screen = screenCallback
	case route.AddPost:
		if prevScreen != screenDashboard {
			a.addPost = newAddPostModel(a.posts)
		}
		a.screen = screenDashboard
	case route.AllPosts:
		a.screen = screenDashboard
		if prevScreen != screenDashboard || prevPath != route.AllPosts {
			a.allPosts = newAllPostsModel(a.posts)
			a.allPosts.width = a.width
			a.allPosts.height = a.height - 5
			return a, a.allPosts.Init()
		}
	}
	return a, nil
}

// reroute re-applies the guard after a session change.
func (a App) reroute() (App, tea.Cmd) {
	if a.screen == screenLoading || route.Protected(a.path) {
		if d := route.Guard(a.auth.State(), a.path); d.Action == route.Render && a.screen == screenDashboard {
			return a, nil
		}
		return a.navigate(a.path)
	}
	if a.screen == screenLogin {
		if n := a.auth.State().Notice; n != "" {
			a.login.notice = n
		}
	}
	return a, nil
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := center(logo, a.width) + "\n"

	var body, help string
	switch a.screen {
	case screenLoading:
		body = "\n " + dimStyle.Render("Loading...")
		help = helpBar("ctrl+c", "quit")
	case screenLogin:
		body = a.login.View()
		help = a.login.help()
	case screenSignup:
		body = a.signup.View()
		help = a.signup.help()
	case screenCallback:
		body = "\n " + dimStyle.Render("Completing authentication...")
		help = helpBar("ctrl+c", "quit")
	case screenDashboard:
		body = a.dashboardView()
		if route.Path(a.path) == route.AllPosts {
			help = a.allPosts.help()
		} else {
			help = a.addPost.help()
		}
	}

	// Chrome budget: header(2) + help(1)
	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
	return fmt.Sprintf("%s\n%s\n%s", header, body, help)
}

func (a App) dashboardView() string {
	var b strings.Builder

	title := titleStyle.Render("Posts Dashboard")
	if name := a.auth.State().User.DisplayName(); name != "" {
		title += "  " + dimStyle.Render("Welcome, "+name)
	}
	b.WriteString(" " + title + "\n")

	tabs := []struct {
		key, name, path string
	}{
		{"1", "Add New Post", route.AddPost},
		{"2", "All Posts", route.AllPosts},
	}
	var tabBar []string
	for _, t := range tabs {
		if route.Path(a.path) == t.path {
			tabBar = append(tabBar, accentStyle.Render(t.key)+" "+selectedStyle.Underline(true).Render(t.name))
		} else {
			tabBar = append(tabBar, metaStyle.Render(t.key)+" "+dimStyle.Render(t.name))
		}
	}
	b.WriteString(" " + strings.Join(tabBar, "   ") + "\n\n")

	if route.Path(a.path) == route.AllPosts {
		b.WriteString(a.allPosts.View())
	} else {
		b.WriteString(a.addPost.View())
	}
	return b.String()
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
