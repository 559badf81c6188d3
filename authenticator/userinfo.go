package authenticator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultUserInfoTimeout bounds a single userinfo request
const DefaultUserInfoTimeout = 30 * time.Second

// maxUserInfoBytes caps the size of a userinfo response body
const maxUserInfoBytes = 1 << 20

// UserInfoFetcher calls the provider's userinfo endpoint. The endpoint is
// derived from the issuer instead of the discovery document because the
// federation serves the richer claim set there.
type UserInfoFetcher struct {
	endpoint string
	client   *http.Client
}

// NewUserInfoFetcher creates a fetcher for ${issuer}/oidc/userinfo. A nil
// client gets a pooled client limited to DefaultUserInfoTimeout.
func NewUserInfoFetcher(issuer string, client *http.Client) *UserInfoFetcher {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = DefaultUserInfoTimeout
	}
	return &UserInfoFetcher{
		endpoint: strings.TrimSuffix(issuer, "/") + "/oidc/userinfo",
		client:   client,
	}
}

// Endpoint returns the userinfo URL used by the fetcher
func (f *UserInfoFetcher) Endpoint() string {
	return f.endpoint
}

// FetchUserInfo retrieves the authenticated user's claims. It performs exactly
// one request and never retries.
func (f *UserInfoFetcher) FetchUserInfo(ctx context.Context, accessToken string) (RawClaims, error) {
	const op = "authenticator.FetchUserInfo"

	if accessToken == "" {
		return nil, &AuthConfigurationError{Op: op, Msg: "no access token provided"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, &AuthConfigurationError{Op: op, Msg: fmt.Sprintf("invalid userinfo endpoint %q: %v", f.endpoint, err)}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &UpstreamIdentityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the pooled connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxUserInfoBytes))
		return nil, &UpstreamIdentityError{Op: op, StatusCode: resp.StatusCode}
	}

	var claims RawClaims
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBytes)).Decode(&claims); err != nil {
		return nil, &UpstreamIdentityError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode userinfo: %w", err)}
	}
	if claims == nil {
		claims = RawClaims{}
	}

	return claims, nil
}
