package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"AUTH_SECRET":              "secret",
		"SURFCONEXT_ISSUER":        "https://connect.test.surfconext.nl/",
		"SURFCONEXT_CLIENT_ID":     "catalog",
		"SURFCONEXT_CLIENT_SECRET": "shh",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(validEnv()))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, "catalog.db", cfg.DatabasePath)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 720*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, 24*time.Hour, cfg.SessionUpdateAge)

	assert.Equal(t, ProviderConfig{
		Issuer:                            "https://connect.test.surfconext.nl",
		WellKnown:                         "https://connect.test.surfconext.nl/.well-known/openid-configuration",
		ClientID:                          "catalog",
		ClientSecret:                      "shh",
		AllowDangerousEmailAccountLinking: true,
	}, cfg.SurfConext)

	assert.Equal(t, "http://localhost:8080/auth/callback/surfconext", cfg.CallbackURL("surfconext"))
}

func TestFromEnvDeployURLOverridesClientID(t *testing.T) {
	env := validEnv()
	env["DEPLOY_PRIME_URL"] = "https://deploy-preview-12--catalog.netlify.app"

	cfg, err := FromEnv(lookup(env))
	require.NoError(t, err)

	assert.Equal(t, "https://deploy-preview-12--catalog.netlify.app", cfg.SurfConext.ClientID)
}

func TestFromEnvWellKnownOverride(t *testing.T) {
	env := validEnv()
	env["SURFCONEXT_WELL_KNOWN"] = "https://connect.test.surfconext.nl/oidc/.well-known/openid-configuration"

	cfg, err := FromEnv(lookup(env))
	require.NoError(t, err)

	assert.Equal(t, "https://connect.test.surfconext.nl/oidc/.well-known/openid-configuration", cfg.SurfConext.WellKnown)
	assert.Equal(t, "https://connect.test.surfconext.nl", cfg.SurfConext.Issuer)
}

func TestFromEnvDebugFlag(t *testing.T) {
	for value, want := range map[string]bool{"": false, "false": false, "0": false, "true": true, "1": true, "yes": true} {
		env := validEnv()
		env["DEBUG"] = value

		cfg, err := FromEnv(lookup(env))
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Debug, "DEBUG=%q", value)
	}
}

func TestFromEnvReportsAllMissingSettings(t *testing.T) {
	_, err := FromEnv(lookup(map[string]string{}))
	require.Error(t, err)

	for _, name := range []string{"AUTH_SECRET", "SURFCONEXT_ISSUER", "SURFCONEXT_CLIENT_ID", "SURFCONEXT_CLIENT_SECRET"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestFromEnvInvalidDurations(t *testing.T) {
	env := validEnv()
	env["AUTH_HTTP_TIMEOUT"] = "soon"
	env["SESSION_MAX_AGE"] = "-1h"

	_, err := FromEnv(lookup(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_HTTP_TIMEOUT")
	assert.Contains(t, err.Error(), "SESSION_MAX_AGE")
}

func TestValidateUpdateAge(t *testing.T) {
	env := validEnv()
	env["SESSION_MAX_AGE"] = "1h"
	env["SESSION_UPDATE_AGE"] = "2h"

	_, err := FromEnv(lookup(env))
	assert.Error(t, err)
}
