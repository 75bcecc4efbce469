package route

import (
	"testing"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/pkg/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{Root, AddPost},
		{Dashboard, AddPost},
		{AddPost, AddPost},
		{AllPosts, AllPosts},
		{Login, Login},
		{LoginOAuthFailed, LoginOAuthFailed},
		{Signup, Signup},
		{AuthCallback + "?token=abc", AuthCallback + "?token=abc"},
		{"/nowhere", AddPost},
	}
	for _, tt := range tests {
		if got := Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProtected(t *testing.T) {
	for _, p := range []string{Dashboard, AddPost, AllPosts} {
		if !Protected(p) {
			t.Errorf("Protected(%q) = false", p)
		}
	}
	for _, p := range []string{Root, Login, LoginOAuthFailed, Signup, AuthCallback, "/dashboardx"} {
		if Protected(p) {
			t.Errorf("Protected(%q) = true", p)
		}
	}
}

func TestQuery(t *testing.T) {
	if got := Query(LoginOAuthFailed, "error"); got != "oauth_failed" {
		t.Errorf("Query error = %q", got)
	}
	if got := Query("/x?a=1&token=t0k", "token"); got != "t0k" {
		t.Errorf("Query token = %q", got)
	}
	if got := Query("/login?error=oauth%20failed&next=%2Fdashboard", "next"); got != "/dashboard" {
		t.Errorf("Query decoded = %q", got)
	}
	if got := Query("/login?error=a+b", "error"); got != "a b" {
		t.Errorf("Query plus = %q", got)
	}
	if got := Query("/login?error=%zz", "error"); got != "" {
		t.Errorf("Query malformed = %q", got)
	}
	if got := Query(Login, "error"); got != "" {
		t.Errorf("Query without query string = %q", got)
	}
	if got := Path(LoginOAuthFailed); got != Login {
		t.Errorf("Path = %q", got)
	}
}

func TestGuard(t *testing.T) {
	authed := auth.State{Phase: auth.PhaseAuthenticated, Token: "t", User: &domain.User{ID: 1}}
	tests := []struct {
		name  string
		state auth.State
		path  string
		want  Decision
	}{
		{"restoring protected", auth.State{Phase: auth.PhaseRestoring}, AllPosts, Decision{Action: Loading}},
		{"busy protected", auth.State{Phase: auth.PhaseUnauthenticated, Busy: true}, AddPost, Decision{Action: Loading}},
		{"anonymous protected", auth.State{Phase: auth.PhaseUnauthenticated}, AllPosts, Decision{Action: Redirect, Target: Login}},
		{"authenticated protected", authed, AllPosts, Decision{Action: Render, Target: AllPosts}},
		{"anonymous public", auth.State{Phase: auth.PhaseUnauthenticated}, Signup, Decision{Action: Render, Target: Signup}},
		{"restoring public", auth.State{Phase: auth.PhaseRestoring}, Login, Decision{Action: Render, Target: Login}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guard(tt.state, tt.path); got != tt.want {
				t.Errorf("Guard = %+v, want %+v", got, tt.want)
			}
		})
	}
}
