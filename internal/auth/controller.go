// Package auth owns the session lifecycle: restoring it at startup, logging
// in and out, and reacting to the API rejecting the token.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/naveenspark/postdesk/internal/session"
	"github.com/naveenspark/postdesk/pkg/client"
	"github.com/naveenspark/postdesk/pkg/domain"
)

// API is the slice of the posts API the controller needs.
type API interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Signup(ctx context.Context, name, email, password string) (*domain.Session, error)
	GetCurrentUser(ctx context.Context) (*domain.User, error)
}

// ErrInvalidToken is returned when a token fails the local structure and expiry check.
var ErrInvalidToken = errors.New("invalid or expired token")

// NoticeExpired is shown after the API rejects the session token.
const NoticeExpired = "Your session has expired. Please log in again."

// Error is a login or signup failure carrying the message to show the user.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Controller is the single owner of session state.
type Controller struct {
	api    API
	store  session.Store
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// NewController returns a controller in the restoring phase.
func NewController(api API, store session.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:    api,
		store:  store,
		logger: logger,
		state:  State{Phase: PhaseRestoring},
		subs:   make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every state change. The returned func
// removes the subscription.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Restore settles the startup phase from the stored token. A missing,
// malformed or expired token, or a failed profile fetch, leaves the session
// unauthenticated with storage purged.
func (c *Controller) Restore(ctx context.Context) State {
	tok, err := c.store.Load()
	if err != nil {
		c.logger.Warn("read stored token", "error", err)
	}
	if tok == "" || !session.TokenValid(tok) {
		c.logger.Info("no valid stored session")
		c.purge()
		return c.set(State{Phase: PhaseUnauthenticated})
	}

	user, err := c.api.GetCurrentUser(ctx)
	if err != nil {
		c.logger.Warn("restore session: profile fetch failed", "error", err)
		c.purge()
		return c.set(State{Phase: PhaseUnauthenticated})
	}
	c.logger.Info("session restored", "user_id", user.ID)
	return c.set(State{Phase: PhaseAuthenticated, Token: tok, User: user})
}

// Login authenticates with email and password.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	prev := c.setBusy(true)
	sess, err := c.api.Login(ctx, email, password)
	if err == nil {
		err = c.finalize(sess)
	}
	if err != nil {
		c.logger.Warn("login failed", "error", err)
		c.set(prev)
		return &Error{Message: client.Message(err, "Login failed"), Err: err}
	}
	return nil
}

// Signup registers a new account and logs into it.
func (c *Controller) Signup(ctx context.Context, name, email, password string) error {
	prev := c.setBusy(true)
	sess, err := c.api.Signup(ctx, name, email, password)
	if err == nil {
		err = c.finalize(sess)
	}
	if err != nil {
		c.logger.Warn("signup failed", "error", err)
		c.set(prev)
		return &Error{Message: client.Message(err, "Signup failed"), Err: err}
	}
	return nil
}

// Finalize installs an already obtained token and profile as the session,
// persisting the token.
func (c *Controller) Finalize(token string, user *domain.User) error {
	return c.finalize(&domain.Session{Token: token, User: user})
}

func (c *Controller) finalize(sess *domain.Session) error {
	if sess == nil || !session.TokenValid(sess.Token) {
		return ErrInvalidToken
	}
	if err := c.store.Save(sess.Token); err != nil {
		return err
	}
	c.logger.Info("session established")
	c.set(State{Phase: PhaseAuthenticated, Token: sess.Token, User: sess.User})
	return nil
}

// Logout ends the session in memory and in storage.
func (c *Controller) Logout() error {
	c.logger.Info("logout")
	err := c.store.Clear()
	c.set(State{Phase: PhaseUnauthenticated})
	return err
}

// Invalidate ends the session after the API rejected the token. It is meant
// to be installed as the API client's unauthorized handler.
//
// Only a settled, authenticated session can expire. A 401 from /login or
// /signup means bad credentials, and Restore settles a rejected token itself.
func (c *Controller) Invalidate() {
	if st := c.State(); st.Phase != PhaseAuthenticated || st.Busy {
		return
	}
	c.purge()
	c.logger.Info("session invalidated by api")
	c.set(State{Phase: PhaseUnauthenticated, Notice: NoticeExpired})
}

func (c *Controller) purge() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("clear stored token", "error", err)
	}
}

func (c *Controller) setBusy(busy bool) State {
	c.mu.Lock()
	prev := c.state
	c.mu.Unlock()
	next := prev
	next.Busy = busy
	c.set(next)
	prev.Busy = false
	return prev
}

// set replaces the state and notifies subscribers outside the lock.
func (c *Controller) set(s State) State {
	c.mu.Lock()
	c.state = s
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
	return s
}
