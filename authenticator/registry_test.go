package authenticator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOIDCProvider(t *testing.T, id string) *OIDCProvider {
	t.Helper()
	p, err := NewOIDCProvider(OIDCConfig{
		ID:           id,
		Issuer:       "https://" + id + ".example.org",
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		CallbackURL:  "http://localhost:8080/auth/callback/" + id,
	}, nil)
	require.NoError(t, err)
	return p
}

func TestRegistry(t *testing.T) {
	surf := newTestOIDCProvider(t, "surfconext")
	other := newTestOIDCProvider(t, "eduid")

	reg, err := NewRegistry(surf, other)
	require.NoError(t, err)

	got, err := reg.Get("eduid")
	require.NoError(t, err)
	assert.Same(t, other, got)

	def, ok := reg.Default()
	require.True(t, ok)
	assert.Same(t, surf, def)

	assert.Equal(t, []string{"eduid", "surfconext"}, reg.IDs())
	require.Len(t, reg.All(), 2)
	assert.Equal(t, "surfconext", reg.All()[0].ID())
}

func TestRegistryUnknownProvider(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	_, err = reg.Get("github")
	assert.True(t, errors.Is(err, ErrUnknownProvider))

	_, ok := reg.Default()
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(newTestOIDCProvider(t, "surfconext"), newTestOIDCProvider(t, "surfconext"))
	assert.Error(t, err)
}
