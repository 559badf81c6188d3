package authenticator

import (
	"context"
	"time"

	"github.com/coursecatalog/catalog/models"
)

// ProviderTypeOIDC is the protocol type of OpenID Connect providers
const ProviderTypeOIDC = "oidc"

// Token represents the token set returned by the code exchange
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       time.Time
}

// RawClaims represents the provider specific claims returned by the userinfo endpoint
type RawClaims map[string]interface{}

// AuthRequest carries the per attempt secrets generated at sign-in
type AuthRequest struct {
	State        string
	Nonce        string
	CodeVerifier string
}

// Provider interface abstracts identity provider operations.
// Implementations resolve identity facts only; account and session
// decisions belong to the caller.
type Provider interface {
	ID() string
	Name() string
	Type() string
	AllowDangerousEmailAccountLinking() bool
	AuthCodeURL(ctx context.Context, req AuthRequest) (string, error)
	ExchangeCode(ctx context.Context, code string, req AuthRequest) (*Token, error)
	ResolveProfile(ctx context.Context, token *Token) (*models.Profile, error)
}
