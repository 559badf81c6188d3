package models

// AuthState is the progress of a single sign-in attempt
type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateAuthorizationRequested
	StateCallbackReceived
	StateTokenExchanged
	StateProfileResolved
	StateSessionEstablished
	StateFailed
)

var authStateNames = map[AuthState]string{
	StateUnauthenticated:        "unauthenticated",
	StateAuthorizationRequested: "authorization_requested",
	StateCallbackReceived:       "callback_received",
	StateTokenExchanged:         "token_exchanged",
	StateProfileResolved:        "profile_resolved",
	StateSessionEstablished:     "session_established",
	StateFailed:                 "failed",
}

// String returns the state name used in logs and audit records
func (s AuthState) String() string {
	if name, ok := authStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible
func (s AuthState) IsTerminal() bool {
	return s == StateSessionEstablished || s == StateFailed
}

// CanTransition reports whether moving from s to next is allowed.
// Every non-terminal state may fail; otherwise states advance one step at a time.
func (s AuthState) CanTransition(next AuthState) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	return next == s+1
}

// ParseAuthState maps a stored state name back to its AuthState
func ParseAuthState(name string) AuthState {
	for state, n := range authStateNames {
		if n == name {
			return state
		}
	}
	return StateUnauthenticated
}
