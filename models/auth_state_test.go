package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthStateHappyPath(t *testing.T) {
	path := []AuthState{
		StateUnauthenticated,
		StateAuthorizationRequested,
		StateCallbackReceived,
		StateTokenExchanged,
		StateProfileResolved,
		StateSessionEstablished,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransition(path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestAuthStateRejectsSkips(t *testing.T) {
	assert.False(t, StateCallbackReceived.CanTransition(StateProfileResolved))
	assert.False(t, StateTokenExchanged.CanTransition(StateCallbackReceived))
}

func TestAuthStateTerminal(t *testing.T) {
	assert.True(t, StateSessionEstablished.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StateFailed.CanTransition(StateSessionEstablished))
	assert.False(t, StateSessionEstablished.CanTransition(StateFailed))

	for _, s := range []AuthState{StateUnauthenticated, StateCallbackReceived, StateProfileResolved} {
		assert.True(t, s.CanTransition(StateFailed), "%s should be able to fail", s)
	}
}

func TestAuthStateNames(t *testing.T) {
	assert.Equal(t, "token_exchanged", StateTokenExchanged.String())
	assert.Equal(t, "unknown", AuthState(42).String())
	assert.Equal(t, StateProfileResolved, ParseAuthState("profile_resolved"))
	assert.Equal(t, StateUnauthenticated, ParseAuthState("nope"))
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sess := Session{ExpiresAt: now}

	assert.True(t, sess.IsExpired(now))
	assert.True(t, sess.IsExpired(now.Add(time.Second)))
	assert.False(t, sess.IsExpired(now.Add(-time.Second)))
}

func TestNewSessionView(t *testing.T) {
	expires := time.Date(2026, 2, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600))
	account := &Account{Nickname: "jd", FirstName: "Jane", LastName: "Doe", Email: "jane@example.edu"}

	view := NewSessionView(&Session{ExpiresAt: expires}, account)

	assert.Equal(t, SessionUser{Nickname: "jd", FirstName: "Jane", LastName: "Doe", Email: "jane@example.edu"}, view.User)
	assert.Equal(t, time.UTC, view.Expires.Location())
	assert.True(t, expires.Equal(view.Expires))
}
