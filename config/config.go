package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// Defaults applied when the matching variable is unset
const (
	DefaultPort             = "8080"
	DefaultDatabasePath     = "catalog.db"
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultSessionMaxAge    = 30 * 24 * time.Hour
	DefaultSessionUpdateAge = 24 * time.Hour
)

// ProviderConfig holds the identity provider settings. It is built once at
// startup and never modified afterwards.
type ProviderConfig struct {
	Issuer                            string
	WellKnown                         string
	ClientID                          string
	ClientSecret                      string
	AllowDangerousEmailAccountLinking bool
}

// Config holds the process wide configuration
type Config struct {
	Port             string
	AppURL           string
	DatabasePath     string
	AuthSecret       string
	Debug            bool
	UseHTTPS         bool
	HTTPTimeout      time.Duration
	SessionMaxAge    time.Duration
	SessionUpdateAge time.Duration
	SurfConext       ProviderConfig
}

// CallbackURL returns the redirect URI registered for a provider
func (c *Config) CallbackURL(providerID string) string {
	return strings.TrimSuffix(c.AppURL, "/") + "/auth/callback/" + providerID
}

// Load reads an optional .env file and builds the configuration from the
// process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates the configuration from a variable lookup
func FromEnv(getenv func(string) string) (*Config, error) {
	var result error

	cfg := &Config{
		Port:         getenv("PORT"),
		AppURL:       getenv("APP_URL"),
		DatabasePath: getenv("DATABASE_PATH"),
		AuthSecret:   getenv("AUTH_SECRET"),
		Debug:        parseFlag(getenv("DEBUG")),
		UseHTTPS:     parseFlag(getenv("USE_HTTPS")),
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:" + cfg.Port
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}

	durations := []struct {
		name   string
		target *time.Duration
		def    time.Duration
	}{
		{"AUTH_HTTP_TIMEOUT", &cfg.HTTPTimeout, DefaultHTTPTimeout},
		{"SESSION_MAX_AGE", &cfg.SessionMaxAge, DefaultSessionMaxAge},
		{"SESSION_UPDATE_AGE", &cfg.SessionUpdateAge, DefaultSessionUpdateAge},
	}
	for _, d := range durations {
		v, err := parseDuration(getenv(d.name), d.def)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", d.name, err))
		}
		*d.target = v
	}

	issuer := strings.TrimSuffix(getenv("SURFCONEXT_ISSUER"), "/")
	clientID := getenv("SURFCONEXT_CLIENT_ID")
	// deploy previews register their URL as the client id
	if deployURL := getenv("DEPLOY_PRIME_URL"); deployURL != "" {
		clientID = deployURL
	}
	wellKnown := getenv("SURFCONEXT_WELL_KNOWN")
	if wellKnown == "" {
		wellKnown = issuer + "/.well-known/openid-configuration"
	}
	cfg.SurfConext = ProviderConfig{
		Issuer:                            issuer,
		WellKnown:                         wellKnown,
		ClientID:                          clientID,
		ClientSecret:                      getenv("SURFCONEXT_CLIENT_SECRET"),
		AllowDangerousEmailAccountLinking: true,
	}

	if err := cfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if result != nil {
		return nil, result
	}
	return cfg, nil
}

// Validate reports every missing required setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	required := []struct {
		name  string
		value string
	}{
		{"AUTH_SECRET", c.AuthSecret},
		{"SURFCONEXT_ISSUER", c.SurfConext.Issuer},
		{"SURFCONEXT_CLIENT_ID", c.SurfConext.ClientID},
		{"SURFCONEXT_CLIENT_SECRET", c.SurfConext.ClientSecret},
	}
	for _, r := range required {
		if r.value == "" {
			result = multierror.Append(result, fmt.Errorf("%s is required", r.name))
		}
	}

	if c.SessionUpdateAge > c.SessionMaxAge {
		result = multierror.Append(result, errors.New("SESSION_UPDATE_AGE must not exceed SESSION_MAX_AGE"))
	}

	return result.ErrorOrNil()
}

func parseFlag(v string) bool {
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		// any other non-empty value enables the flag
		return true
	}
	return b
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, err
	}
	if d <= 0 {
		return def, fmt.Errorf("must be positive, got %s", v)
	}
	return d, nil
}
