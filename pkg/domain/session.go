package domain

// Session is a bearer token paired with the account it was issued for.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
