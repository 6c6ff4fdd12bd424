package domain

import "time"

// Credential is the bearer token of the current session with the expiry
// decoded from its payload.
type Credential struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Persistent bool      `json:"-"`
}

// IsZero reports whether no token is held.
func (c Credential) IsZero() bool {
	return c.Token == ""
}
