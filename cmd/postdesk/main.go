package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/browser"
	"github.com/naveenspark/postdesk/internal/config"
	"github.com/naveenspark/postdesk/internal/logger"
	"github.com/naveenspark/postdesk/internal/oauth"
	"github.com/naveenspark/postdesk/internal/posts"
	"github.com/naveenspark/postdesk/internal/route"
	"github.com/naveenspark/postdesk/internal/session"
	"github.com/naveenspark/postdesk/internal/tui"
	"github.com/naveenspark/postdesk/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(out, "postdesk "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(out)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	l, closer, err := logger.Init(cfg.Environment, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	a := newApp(cfg, l, out)
	if len(args) == 0 {
		return a.runTUI(tui.Options{Restore: true})
	}
	switch args[0] {
	case "login":
		return a.runLogin(ctx, args[1:])
	case "logout":
		return a.runLogout()
	case "posts":
		return a.runPosts(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q (see postdesk help)", args[0])
	}
}

// app holds the wired session, API and stores for one invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer

	tokens *session.FileStore
	api    *client.Client
	auth   *auth.Controller
	posts  *posts.Store
}

func newApp(cfg config.Config, l *slog.Logger, out io.Writer) *app {
	tokens := session.NewFileStore(cfg.TokenFile, cfg.Token)
	api := client.New(cfg.APIURL, tokens,
		client.WithTimeout(cfg.HTTP.Timeout),
		client.WithLogger(l),
	)
	ctrl := auth.NewController(api, tokens, l)
	api.SetUnauthorizedHandler(ctrl.Invalidate)

	return &app{
		cfg:    cfg,
		logger: l,
		out:    out,
		tokens: tokens,
		api:    api,
		auth:   ctrl,
		posts:  posts.NewStore(api, l),
	}
}

func (a *app) flow(prompt func(string)) *oauth.Flow {
	return &oauth.Flow{
		Auth:    a.api,
		Addr:    a.cfg.OAuth.CallbackAddr,
		Timeout: a.cfg.OAuth.Timeout,
		Open:    browser.Open,
		Prompt:  prompt,
		Logger:  a.logger,
	}
}

func (a *app) callback() *oauth.Handler {
	return &oauth.Handler{
		Store:       a.tokens,
		Profiles:    a.api,
		Sessions:    a.auth,
		SettleDelay: a.cfg.OAuth.SettleDelay,
		Logger:      a.logger,
	}
}

func (a *app) runTUI(opts tui.Options) error {
	// The terminal is owned by the UI, so a consent URL that cannot be
	// opened goes to the clipboard instead of stdout.
	opts.Auth = a.auth
	opts.Posts = a.posts
	opts.Google = a.flow(func(url string) {
		if err := clipboard.WriteAll(url); err != nil {
			a.logger.Warn("copy consent url", "error", err)
		}
	})
	opts.Callback = a.callback()
	opts.Logger = a.logger

	app := tui.NewApp(opts)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin signs in with Google from the command line and then opens the
// dashboard. Password sign-in lives in the interactive login view.
func (a *app) runLogin(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "--google" {
		return a.runTUI(tui.Options{Restore: true, StartPath: route.Login})
	}

	fmt.Fprintln(a.out, "Opening browser to authenticate...")
	callbackURL, err := a.flow(func(url string) {
		fmt.Fprintf(a.out, "Could not open browser. Visit this URL manually:\n  %s\n", url)
	}).Authorize(ctx)
	if err != nil {
		return fmt.Errorf("google sign-in: %w", err)
	}
	if next := a.callback().Handle(ctx, callbackURL); next != route.Dashboard {
		return errors.New("google sign-in failed, please try again")
	}

	st := a.auth.State()
	fmt.Fprintf(a.out, "Authenticated as %s\n\n", st.User.DisplayName())
	return a.runTUI(tui.Options{StartPath: route.Dashboard})
}

func (a *app) runLogout() error {
	if tok, err := a.tokens.Load(); err == nil && tok == "" {
		fmt.Fprintln(a.out, "Already logged out.")
		return nil
	}
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
