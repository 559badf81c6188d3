package models

import "time"

// Auth event outcomes
const (
	AuthOutcomeSignIn  = "sign_in"
	AuthOutcomeFailed  = "sign_in_failed"
	AuthOutcomeSignOut = "sign_out"
)

// AuthEvent represents a single sign-in or sign-out attempt
type AuthEvent struct {
	ID         int64
	Timestamp  time.Time
	ProviderID string
	Email      string
	Outcome    string
	State      AuthState
	Error      string
	UserAgent  string
	IPAddress  string
}
