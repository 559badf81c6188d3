package authenticator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/coursecatalog/catalog/models"
)

// OIDCConfig holds the configuration of an OpenID Connect provider
type OIDCConfig struct {
	ID           string
	Name         string
	Issuer       string
	WellKnown    string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Scopes       []string

	// AllowDangerousEmailAccountLinking lets a sign-in attach to an existing
	// account with the same email that was created through another provider.
	AllowDangerousEmailAccountLinking bool

	// HTTPClient is used for discovery, token exchange and userinfo calls
	HTTPClient *http.Client
}

// WellKnownURL derives the discovery document location from an issuer
func WellKnownURL(issuer string) string {
	return strings.TrimSuffix(issuer, "/") + "/.well-known/openid-configuration"
}

var _ Provider = (*OIDCProvider)(nil)

// OIDCProvider implements the Provider interface for OpenID Connect.
// Discovery happens on first use and is cached only once it succeeds.
type OIDCProvider struct {
	cfg     OIDCConfig
	client  *http.Client
	fetcher *UserInfoFetcher
	logger  hclog.Logger

	mu       sync.Mutex
	provider *oidc.Provider
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewOIDCProvider creates a new OpenID Connect provider with the given configuration
func NewOIDCProvider(cfg OIDCConfig, logger hclog.Logger) (*OIDCProvider, error) {
	const op = "authenticator.NewOIDCProvider"

	// Validate required configuration
	switch {
	case cfg.ID == "":
		return nil, &AuthConfigurationError{Op: op, Msg: "provider id is required"}
	case cfg.Issuer == "":
		return nil, &AuthConfigurationError{Op: op, Msg: "issuer is required"}
	case cfg.ClientID == "":
		return nil, &AuthConfigurationError{Op: op, Msg: "client ID is required"}
	case cfg.ClientSecret == "":
		return nil, &AuthConfigurationError{Op: op, Msg: "client secret is required"}
	case cfg.CallbackURL == "":
		return nil, &AuthConfigurationError{Op: op, Msg: "callback URL is required"}
	}

	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	if cfg.WellKnown == "" {
		cfg.WellKnown = WellKnownURL(cfg.Issuer)
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := cfg.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = DefaultUserInfoTimeout
	}

	return &OIDCProvider{
		cfg:     cfg,
		client:  client,
		fetcher: NewUserInfoFetcher(cfg.Issuer, client),
		logger:  logger.Named(cfg.ID),
	}, nil
}

// ID returns the provider id used in routes and account links
func (p *OIDCProvider) ID() string { return p.cfg.ID }

// Name returns the display name
func (p *OIDCProvider) Name() string { return p.cfg.Name }

// Type returns the protocol type
func (p *OIDCProvider) Type() string { return ProviderTypeOIDC }

// Issuer returns the configured issuer URL
func (p *OIDCProvider) Issuer() string { return p.cfg.Issuer }

// WellKnown returns the discovery document URL
func (p *OIDCProvider) WellKnown() string { return p.cfg.WellKnown }

// AllowDangerousEmailAccountLinking reports the account linking policy
func (p *OIDCProvider) AllowDangerousEmailAccountLinking() bool {
	return p.cfg.AllowDangerousEmailAccountLinking
}

func (p *OIDCProvider) discover() (*oauth2.Config, *oidc.IDTokenVerifier, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider != nil {
		return &p.config, p.verifier, nil
	}

	p.logger.Debug("fetching discovery document", "url", p.cfg.WellKnown)

	// The remote key set keeps this context for later JWKS refreshes, so it
	// must outlive the request that triggered discovery.
	provider, err := p.newOIDCProvider(oidc.ClientContext(context.Background(), p.client))
	if err != nil {
		return nil, nil, err
	}

	p.provider = provider
	p.config = oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURL:  p.cfg.CallbackURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       p.cfg.Scopes,
	}
	p.verifier = provider.Verifier(&oidc.Config{ClientID: p.cfg.ClientID})

	return &p.config, p.verifier, nil
}

// AuthCodeURL returns the authorization URL carrying state, nonce and the
// S256 PKCE challenge
func (p *OIDCProvider) AuthCodeURL(_ context.Context, req AuthRequest) (string, error) {
	conf, _, err := p.discover()
	if err != nil {
		return "", err
	}
	if req.State == "" || req.Nonce == "" || req.CodeVerifier == "" {
		return "", &AuthConfigurationError{Op: "authenticator.AuthCodeURL", Msg: "state, nonce and code verifier are required"}
	}

	return conf.AuthCodeURL(
		req.State,
		oidc.Nonce(req.Nonce),
		oauth2.S256ChallengeOption(req.CodeVerifier),
	), nil
}

// ExchangeCode exchanges an authorization code for tokens and verifies the ID token
func (p *OIDCProvider) ExchangeCode(ctx context.Context, code string, req AuthRequest) (*Token, error) {
	const op = "authenticator.ExchangeCode"

	if code == "" {
		return nil, &UpstreamIdentityError{Op: op, Err: errors.New("callback carried no authorization code")}
	}

	conf, verifier, err := p.discover()
	if err != nil {
		return nil, err
	}

	oauth2Token, err := conf.Exchange(
		oidc.ClientContext(ctx, p.client),
		code,
		oauth2.VerifierOption(req.CodeVerifier),
	)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &UpstreamIdentityError{Op: op, StatusCode: retrieveErr.Response.StatusCode, Err: err}
		}
		return nil, &UpstreamIdentityError{Op: op, Err: err}
	}

	// Convert oauth2.Token to our Token type
	token := &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry,
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, &UpstreamIdentityError{Op: op, Err: errors.New("no id_token in token response")}
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, &UpstreamIdentityError{Op: op, Err: err}
	}
	if idToken.Nonce != req.Nonce {
		return nil, &UpstreamIdentityError{Op: op, Err: errors.New("id_token nonce mismatch")}
	}
	token.IDToken = rawIDToken

	p.logger.Debug("token exchanged", "subject", idToken.Subject, "expiry", token.Expiry)

	return token, nil
}

// ResolveProfile fetches the userinfo claims for the access token and maps
// them onto the canonical profile
func (p *OIDCProvider) ResolveProfile(ctx context.Context, token *Token) (*models.Profile, error) {
	if token == nil {
		return nil, &AuthConfigurationError{Op: "authenticator.ResolveProfile", Msg: "no token set provided"}
	}

	raw, err := p.fetcher.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	profile := MapClaims(raw)
	return &profile, nil
}
