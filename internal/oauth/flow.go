package oauth

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTimeout bounds how long Authorize waits for the browser round trip.
const DefaultTimeout = 2 * time.Minute

// URLBuilder produces the provider consent URL for a redirect URI.
type URLBuilder interface {
	GoogleAuthURL(redirectURI string) string
}

// Flow runs the browser leg of a Google sign-in.
type Flow struct {
	Auth    URLBuilder
	Addr    string
	Timeout time.Duration
	// Open launches the consent page. When nil or failing, Prompt is called instead.
	Open   func(url string) error
	Prompt func(url string)
	Logger *slog.Logger
}

// Authorize opens the consent page and blocks until the provider redirects
// back, returning the callback URL for Handler.Handle.
func (f *Flow) Authorize(ctx context.Context) (string, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := NewListener(f.Addr, logger)
	redirect, err := l.Start()
	if err != nil {
		return "", err
	}
	authURL := f.Auth.GoogleAuthURL(redirect)
	logger.Info("starting google sign-in", "redirect_uri", redirect)

	opened := false
	if f.Open != nil {
		if err := f.Open(authURL); err != nil {
			logger.Warn("open browser", "error", err)
		} else {
			opened = true
		}
	}
	if !opened && f.Prompt != nil {
		f.Prompt(authURL)
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return l.Wait(ctx)
}
