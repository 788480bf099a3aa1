package models

import "time"

// Session is a persisted opaque bearer credential. Deployments that
// configure a signing secret use stateless signed tokens instead, and this
// collection stays empty; the two mechanisms are mutually exclusive.
type Session struct {
	Meta
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) OwnerID() string { return s.UserID }

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
