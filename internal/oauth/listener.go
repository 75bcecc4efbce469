package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/postdesk/internal/route"
)

// DefaultCallbackAddr binds an ephemeral loopback port.
const DefaultCallbackAddr = "127.0.0.1:0"

// Listener is a one-shot loopback server receiving the provider redirect.
type Listener struct {
	addr   string
	state  string
	logger *slog.Logger

	ln     net.Listener
	srv    *http.Server
	result chan string
}

// NewListener returns a listener for addr. An empty addr means DefaultCallbackAddr.
func NewListener(addr string, logger *slog.Logger) *Listener {
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		addr:   addr,
		state:  uuid.NewString(),
		logger: logger,
		result: make(chan string, 1),
	}
}

// Start binds the socket and returns the redirect URI to hand to the API.
func (l *Listener) Start() (string, error) {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return "", fmt.Errorf("start callback listener: %w", err)
	}
	l.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc(route.AuthCallback, l.handleCallback)
	l.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	return l.RedirectURI(), nil
}

// RedirectURI is the callback address the provider should redirect to. It
// carries the listener's state value, which the callback must echo back.
func (l *Listener) RedirectURI() string {
	if l.ln == nil {
		return ""
	}
	return "http://" + l.ln.Addr().String() + route.AuthCallback + "?" + url.Values{"state": {l.state}}.Encode()
}

// State is the value a genuine callback carries in its state parameter.
func (l *Listener) State() string {
	return l.state
}

// Wait serves until the first callback arrives or ctx ends, then shuts the
// server down. It returns the full callback URL including its query.
func (l *Listener) Wait(ctx context.Context) (string, error) {
	if l.srv == nil {
		return "", errors.New("callback listener not started")
	}

	var callbackURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := l.srv.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("callback server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			l.srv.Shutdown(shutCtx) //nolint:errcheck
		}()
		select {
		case u := <-l.result:
			callbackURL = u
			return nil
		case <-gctx.Done():
			return fmt.Errorf("no callback received: %w", gctx.Err())
		}
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return callbackURL, nil
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Query().Get("state") != l.state {
		l.logger.Warn("oauth callback state mismatch")
		http.Error(w, "invalid state", http.StatusForbidden)
		return
	}
	u := "http://" + r.Host + r.URL.RequestURI()
	select {
	case l.result <- u:
		l.logger.Debug("oauth callback received", "path", r.URL.Path)
	default:
		// A callback was already taken.
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, callbackHTML) //nolint:errcheck
}

const callbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Postdesk</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{
  background:#0f1115;color:#e4e4ec;
  font-family:'JetBrains Mono','SF Mono','Consolas',monospace;
  height:100vh;display:flex;align-items:center;justify-content:center;
}
.card{text-align:center}
.logo{font-size:24px;font-weight:700;letter-spacing:6px;color:#60a5fa;margin-bottom:20px}
.msg{font-size:14px;color:#34d474;font-weight:600;margin-bottom:8px}
.sub{font-size:12px;color:#6b7280}
</style>
</head>
<body>
<div class="card">
  <div class="logo">POSTDESK</div>
  <div class="msg">Completing authentication...</div>
  <div class="sub">You can close this tab and return to your terminal.</div>
</div>
</body>
</html>
`
