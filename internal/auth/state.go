package auth

import "github.com/naveenspark/postdesk/pkg/domain"

// Phase is where the session lifecycle currently stands.
type Phase int

const (
	// PhaseRestoring is the startup phase, before the stored token has been checked.
	PhaseRestoring Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseRestoring:
		return "restoring"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session. Subscribers receive copies.
type State struct {
	Phase Phase
	Token string
	User  *domain.User
	// Busy is set while a login or signup request is in flight.
	Busy bool
	// Notice explains why the session ended when it was not the user's choice.
	Notice string
}

// IsLoading reports whether the session is not yet settled.
func (s State) IsLoading() bool {
	return s.Phase == PhaseRestoring || s.Busy
}

// IsAuthenticated reports whether a usable token is held.
func (s State) IsAuthenticated() bool {
	return s.Phase == PhaseAuthenticated
}
