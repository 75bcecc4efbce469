// Package route maps view paths to what should be shown for a given session.
package route

import (
	"net/url"
	"strings"

	"github.com/naveenspark/postdesk/internal/auth"
)

const (
	Root         = "/"
	Login        = "/login"
	Signup       = "/signup"
	Dashboard    = "/dashboard"
	AddPost      = "/dashboard/add-post"
	AllPosts     = "/dashboard/all-posts"
	AuthCallback = "/auth/google/callback"

	// LoginOAuthFailed is where a failed Google callback lands.
	LoginOAuthFailed = Login + "?error=oauth_failed"
)

// Action is what the caller should do with the requested path.
type Action int

const (
	// Render shows the requested view.
	Render Action = iota
	// Loading shows a placeholder until the session settles.
	Loading
	// Redirect replaces the current path with Decision.Target.
	Redirect
)

// Decision is the outcome of Guard.
type Decision struct {
	Action Action
	Target string
}

// Path strips any query string.
func Path(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		return p[:i]
	}
	return p
}

// Query returns the value of key in p's query string, if any.
func Query(p, key string) string {
	i := strings.IndexByte(p, '?')
	if i < 0 {
		return ""
	}
	q, err := url.ParseQuery(p[i+1:])
	if err != nil {
		return ""
	}
	return q.Get(key)
}

// Resolve applies the fixed redirects: the root and the bare dashboard both
// land on the add-post tab. Unknown paths resolve to the dashboard.
func Resolve(p string) string {
	switch Path(p) {
	case Root, Dashboard:
		return AddPost
	case Login, Signup, AddPost, AllPosts, AuthCallback:
		return p
	default:
		return AddPost
	}
}

// Protected reports whether p requires an authenticated session.
func Protected(p string) bool {
	path := Path(p)
	return path == Dashboard || strings.HasPrefix(path, Dashboard+"/")
}

// Guard decides how to treat a navigation to p given the session state.
// Unprotected paths always render. Protected paths wait while the session is
// loading and send unauthenticated users to the login view.
func Guard(st auth.State, p string) Decision {
	if !Protected(p) {
		return Decision{Action: Render, Target: p}
	}
	if st.IsLoading() {
		return Decision{Action: Loading}
	}
	if !st.IsAuthenticated() {
		return Decision{Action: Redirect, Target: Login}
	}
	return Decision{Action: Render, Target: p}
}
