package models

import (
	"time"
)

// Session represents a database backed browser session
type Session struct {
	Token     string    `json:"-" db:"token"`
	AccountID string    `json:"account_id" db:"account_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsExpired reports whether the session is no longer valid at the given time
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionUser is the user part of a SessionView
type SessionUser struct {
	Nickname  string `json:"nickname"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// SessionView is the session object exposed to the browser and passed
// through the session callback.
type SessionView struct {
	User    SessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
}

// NewSessionView builds the browser facing view of a session
func NewSessionView(sess *Session, account *Account) SessionView {
	return SessionView{
		User: SessionUser{
			Nickname:  account.Nickname,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Email:     account.Email,
		},
		Expires: sess.ExpiresAt.UTC(),
	}
}
