package cookies

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie names
const (
	SessionCookieName = "catalog.session-token"
	FlowCookieName    = "catalog.auth-flow"
	CSRFCookieName    = "catalog.csrf-token"
)

// CSRFField is the form field carrying the double submitted CSRF token
const CSRFField = "csrfToken"

const (
	// FlowTTL bounds how long a sign-in attempt may take at the identity provider
	FlowTTL = 10 * time.Minute
	// CSRFTTL is the lifetime of an issued CSRF token
	CSRFTTL = 24 * time.Hour
)

const issuer = "catalog"

// ErrInvalidCookie is returned for cookies that fail signature, audience or expiry checks
var ErrInvalidCookie = errors.New("invalid cookie")

// FlowClaims carries the per attempt secrets between sign-in and callback
type FlowClaims struct {
	Provider     string `json:"provider"`
	State        string `json:"state"`
	Nonce        string `json:"nonce"`
	CodeVerifier string `json:"code_verifier"`
	CallbackURL  string `json:"callback_url,omitempty"`
	jwt.RegisteredClaims
}

// SessionClaims references a database session
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Signer signs and verifies cookie values with the application secret
type Signer struct {
	key    []byte
	secure bool
	now    func() time.Time
}

// NewSigner creates a signer for AUTH_SECRET. Secure marks issued cookies as
// HTTPS only.
func NewSigner(secret string, secure bool) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("cookie signing secret is required")
	}
	return &Signer{key: []byte(secret), secure: secure, now: time.Now}, nil
}

func (s *Signer) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign cookie: %w", err)
	}
	return signed, nil
}

func (s *Signer) parse(value, audience string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	return nil
}

func (s *Signer) registered(audience, subject string, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
}

// SetFlow issues the sign-in flow cookie
func (s *Signer) SetFlow(w http.ResponseWriter, flow FlowClaims) error {
	expiresAt := s.now().Add(FlowTTL)
	flow.RegisteredClaims = s.registered(FlowCookieName, flow.Provider, expiresAt)

	value, err := s.sign(flow)
	if err != nil {
		return err
	}
	s.setCookie(w, FlowCookieName, value, expiresAt)
	return nil
}

// ReadFlow verifies and returns the sign-in flow cookie
func (s *Signer) ReadFlow(r *http.Request) (*FlowClaims, error) {
	cookie, err := r.Cookie(FlowCookieName)
	if err != nil {
		return nil, fmt.Errorf("%w: flow cookie missing", ErrInvalidCookie)
	}

	var flow FlowClaims
	if err := s.parse(cookie.Value, FlowCookieName, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// SetSession issues the session cookie for a database session token
func (s *Signer) SetSession(w http.ResponseWriter, token string, expiresAt time.Time) error {
	claims := SessionClaims{RegisteredClaims: s.registered(SessionCookieName, token, expiresAt)}

	value, err := s.sign(claims)
	if err != nil {
		return err
	}
	s.setCookie(w, SessionCookieName, value, expiresAt)
	return nil
}

// ReadSession verifies the session cookie and returns the session token
func (s *Signer) ReadSession(r *http.Request) (string, error) {
	claims, err := s.ReadSessionClaims(r)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ReadSessionClaims verifies the session cookie and returns its claims. The
// session token is the subject.
func (s *Signer) ReadSessionClaims(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("%w: session cookie missing", ErrInvalidCookie)
	}

	var claims SessionClaims
	if err := s.parse(cookie.Value, SessionCookieName, &claims); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: session cookie has no token", ErrInvalidCookie)
	}
	return &claims, nil
}

// CSRFToken returns the token of a valid CSRF cookie, issuing a new cookie
// when the request carries none
func (s *Signer) CSRFToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if token, err := s.readCSRF(r); err == nil {
		return token, nil
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	expiresAt := s.now().Add(CSRFTTL)
	value, err := s.sign(s.registered(CSRFCookieName, token, expiresAt))
	if err != nil {
		return "", err
	}
	s.setCookie(w, CSRFCookieName, value, expiresAt)
	return token, nil
}

// VerifyCSRF checks that the submitted csrfToken form value matches the CSRF cookie
func (s *Signer) VerifyCSRF(r *http.Request) error {
	token, err := s.readCSRF(r)
	if err != nil {
		return err
	}
	submitted := r.PostFormValue(CSRFField)
	if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
		return fmt.Errorf("%w: csrf token mismatch", ErrInvalidCookie)
	}
	return nil
}

func (s *Signer) readCSRF(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return "", fmt.Errorf("%w: csrf cookie missing", ErrInvalidCookie)
	}

	var claims jwt.RegisteredClaims
	if err := s.parse(cookie.Value, CSRFCookieName, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: csrf cookie has no token", ErrInvalidCookie)
	}
	return claims.Subject, nil
}

// Clear removes a cookie from the client
func (s *Signer) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Signer) setCookie(w http.ResponseWriter, name, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		// Lax keeps the cookie on the top level redirect back from the provider
		SameSite: http.SameSiteLaxMode,
	})
}
