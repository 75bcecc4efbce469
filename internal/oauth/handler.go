// Package oauth completes a Google sign-in: it receives the provider redirect
// on a loopback listener and turns the token it carries into a session.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/naveenspark/postdesk/internal/route"
	"github.com/naveenspark/postdesk/internal/session"
	"github.com/naveenspark/postdesk/pkg/domain"
)

// DefaultSettleDelay is the pause before the callback URL is read.
const DefaultSettleDelay = 100 * time.Millisecond

var (
	errNoToken      = errors.New("callback carried no token")
	errInvalidToken = errors.New("callback token is malformed or expired")
)

// ProfileFetcher loads the profile for the stored token.
type ProfileFetcher interface {
	GetCurrentUser(ctx context.Context) (*domain.User, error)
}

// Finalizer installs a token and profile as the live session.
type Finalizer interface {
	Finalize(token string, user *domain.User) error
}

// Handler turns a provider redirect into a session.
type Handler struct {
	Store       session.Store
	Profiles    ProfileFetcher
	Sessions    Finalizer
	SettleDelay time.Duration
	Logger      *slog.Logger
}

// Handle processes callbackURL and returns where to navigate next: the
// dashboard on success, the login view with an oauth_failed error otherwise.
// The callback view is never kept in history, so the result replaces it.
func (h *Handler) Handle(ctx context.Context, callbackURL string) string {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := h.complete(ctx, callbackURL); err != nil {
		logger.Warn("oauth callback failed", "error", err)
		return route.LoginOAuthFailed
	}
	logger.Info("oauth callback completed")
	return route.Dashboard
}

func (h *Handler) complete(ctx context.Context, callbackURL string) error {
	if h.SettleDelay > 0 {
		t := time.NewTimer(h.SettleDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	token, err := tokenParam(callbackURL)
	if err != nil {
		return err
	}
	if !session.TokenValid(token) {
		return errInvalidToken
	}

	if err := h.Store.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	user, err := h.Profiles.GetCurrentUser(ctx)
	if err == nil {
		err = h.Sessions.Finalize(token, user)
	}
	if err != nil {
		if clearErr := h.Store.Clear(); clearErr != nil {
			err = errors.Join(err, clearErr)
		}
		return fmt.Errorf("finalize session: %w", err)
	}
	return nil
}

func tokenParam(callbackURL string) (string, error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", fmt.Errorf("parse callback url: %w", err)
	}
	token := strings.TrimSpace(u.Query().Get("token"))
	if token == "" {
		return "", errNoToken
	}
	return token, nil
}
