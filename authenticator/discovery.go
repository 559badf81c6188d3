package authenticator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

const maxDiscoveryBytes = 1 << 20

// discoveryDocument is the subset of the provider metadata go-oidc needs
type discoveryDocument struct {
	Issuer      string   `json:"issuer"`
	AuthURL     string   `json:"authorization_endpoint"`
	TokenURL    string   `json:"token_endpoint"`
	JWKSURL     string   `json:"jwks_uri"`
	UserInfoURL string   `json:"userinfo_endpoint"`
	Algorithms  []string `json:"id_token_signing_alg_values_supported"`
}

// newOIDCProvider discovers the provider. The default location goes through
// oidc.NewProvider; a custom WellKnown URL is fetched here and handed to
// oidc.ProviderConfig with the same issuer check.
func (p *OIDCProvider) newOIDCProvider(ctx context.Context) (*oidc.Provider, error) {
	const op = "authenticator.discover"

	if p.cfg.WellKnown == WellKnownURL(p.cfg.Issuer) {
		provider, err := oidc.NewProvider(ctx, p.cfg.Issuer)
		if err != nil {
			return nil, &UpstreamIdentityError{Op: op, Err: err}
		}
		return provider, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.WellKnown, nil)
	if err != nil {
		return nil, &AuthConfigurationError{Op: op, Msg: fmt.Sprintf("invalid well-known URL %q: %v", p.cfg.WellKnown, err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &UpstreamIdentityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDiscoveryBytes))
		return nil, &UpstreamIdentityError{Op: op, StatusCode: resp.StatusCode}
	}

	var doc discoveryDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDiscoveryBytes)).Decode(&doc); err != nil {
		return nil, &UpstreamIdentityError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode discovery document: %w", err)}
	}
	if strings.TrimSuffix(doc.Issuer, "/") != strings.TrimSuffix(p.cfg.Issuer, "/") {
		return nil, &UpstreamIdentityError{Op: op, Err: fmt.Errorf("issuer mismatch: expected %q got %q", p.cfg.Issuer, doc.Issuer)}
	}

	config := oidc.ProviderConfig{
		IssuerURL:   doc.Issuer,
		AuthURL:     doc.AuthURL,
		TokenURL:    doc.TokenURL,
		JWKSURL:     doc.JWKSURL,
		UserInfoURL: doc.UserInfoURL,
		Algorithms:  doc.Algorithms,
	}
	return config.NewProvider(ctx), nil
}
