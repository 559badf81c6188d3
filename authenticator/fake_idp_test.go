package authenticator

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "catalog-client"
	testClientSecret = "catalog-secret"
	testKeyID        = "test-key"
)

// fakeIdP is a minimal OpenID Connect provider serving discovery, JWKS,
// token and the federation's userinfo endpoint.
type fakeIdP struct {
	server *httptest.Server
	key    *rsa.PrivateKey

	mu                sync.Mutex
	nonce             string
	accessToken       string
	userInfo          map[string]interface{}
	userInfoStatus    int
	tokenStatus       int
	discoveryFailures int
	userInfoCalls     int
	discoveryCalls    int
	lastAuthorization string
	lastCodeVerifier  string
	lastDiscoveryPath string
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &fakeIdP{
		key:         key,
		accessToken: "tok-1",
		userInfo: map[string]interface{}{
			"nickname":    "jd",
			"given_name":  "Jane",
			"family_name": "Doe",
			"email":       "jane@example.edu",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", f.handleDiscovery)
	mux.HandleFunc("/federation/openid-configuration", f.handleDiscovery)
	mux.HandleFunc("/jwks", f.handleJWKS)
	mux.HandleFunc("/token", f.handleToken)
	mux.HandleFunc("/oidc/userinfo", f.handleUserInfo)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeIdP) issuer() string {
	return f.server.URL
}

func (f *fakeIdP) set(fn func(f *fakeIdP)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// idpStats is a point in time copy of what the fake observed
type idpStats struct {
	userInfoCalls     int
	discoveryCalls    int
	lastAuthorization string
	lastCodeVerifier  string
	lastDiscoveryPath string
}

func (f *fakeIdP) snapshot() idpStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return idpStats{
		userInfoCalls:     f.userInfoCalls,
		discoveryCalls:    f.discoveryCalls,
		lastAuthorization: f.lastAuthorization,
		lastCodeVerifier:  f.lastCodeVerifier,
		lastDiscoveryPath: f.lastDiscoveryPath,
	}
}

func (f *fakeIdP) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.discoveryCalls++
	f.lastDiscoveryPath = r.URL.Path
	fail := f.discoveryFailures > 0
	if fail {
		f.discoveryFailures--
	}
	f.mu.Unlock()

	if fail {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"issuer":                                f.issuer(),
		"authorization_endpoint":                f.issuer() + "/authorize",
		"token_endpoint":                        f.issuer() + "/token",
		"jwks_uri":                              f.issuer() + "/jwks",
		"userinfo_endpoint":                     f.issuer() + "/userinfo",
		"id_token_signing_alg_values_supported": []string{"RS256"},
	})
}

func (f *fakeIdP) handleJWKS(w http.ResponseWriter, r *http.Request) {
	pub := f.key.PublicKey
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKeyID,
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
}

func (f *fakeIdP) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.lastCodeVerifier = r.PostForm.Get("code_verifier")
	status := f.tokenStatus
	nonce := f.nonce
	accessToken := f.accessToken
	f.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]string{"error": "invalid_grant"})
		return
	}

	now := time.Now()
	idToken := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   f.issuer(),
		"sub":   "user-1",
		"aud":   testClientID,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"nonce": nonce,
	})
	idToken.Header["kid"] = testKeyID
	signed, err := idToken.SignedString(f.key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
		"id_token":     signed,
	})
}

func (f *fakeIdP) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.userInfoCalls++
	f.lastAuthorization = r.Header.Get("Authorization")
	status := f.userInfoStatus
	body := f.userInfo
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, "userinfo failed", status)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
