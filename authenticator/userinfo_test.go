package authenticator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchUserInfo_SendsBearerAndReturnsBody(t *testing.T) {
	idp := newFakeIdP(t)
	idp.set(func(f *fakeIdP) {
		f.userInfo = map[string]interface{}{
			"nickname":       "jd",
			"given_name":     "Jane",
			"family_name":    "Doe",
			"email":          "jane@example.edu",
			"schac_home_org": "example.edu",
		}
	})

	fetcher := NewUserInfoFetcher(idp.issuer(), nil)
	claims, err := fetcher.FetchUserInfo(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, RawClaims{
		"nickname":       "jd",
		"given_name":     "Jane",
		"family_name":    "Doe",
		"email":          "jane@example.edu",
		"schac_home_org": "example.edu",
	}, claims)

	snap := idp.snapshot()
	assert.Equal(t, 1, snap.userInfoCalls)
	assert.Equal(t, "Bearer tok-1", snap.lastAuthorization)
}

func TestFetchUserInfo_EndpointDerivedFromIssuer(t *testing.T) {
	assert.Equal(t, "https://connect.example.org/oidc/userinfo",
		NewUserInfoFetcher("https://connect.example.org/", nil).Endpoint())
	assert.Equal(t, "https://connect.example.org/oidc/userinfo",
		NewUserInfoFetcher("https://connect.example.org", nil).Endpoint())
}

func TestFetchUserInfo_MissingTokenMakesNoCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	claims, err := NewUserInfoFetcher(server.URL, nil).FetchUserInfo(context.Background(), "")

	assert.Nil(t, claims)
	assert.True(t, IsAuthConfigurationError(err), "expected AuthConfigurationError, got %v", err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetchUserInfo_NonSuccessStatus(t *testing.T) {
	idp := newFakeIdP(t)
	idp.set(func(f *fakeIdP) { f.userInfoStatus = http.StatusInternalServerError })

	_, err := NewUserInfoFetcher(idp.issuer(), nil).FetchUserInfo(context.Background(), "tok-1")

	var upstream *UpstreamIdentityError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Equal(t, 1, idp.snapshot().userInfoCalls, "no retry expected")
}

func TestFetchUserInfo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	issuer := server.URL
	server.Close()

	_, err := NewUserInfoFetcher(issuer, nil).FetchUserInfo(context.Background(), "tok-1")

	assert.True(t, IsUpstreamIdentityError(err), "expected UpstreamIdentityError, got %v", err)
}

func TestFetchUserInfo_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	_, err := NewUserInfoFetcher(server.URL, nil).FetchUserInfo(context.Background(), "tok-1")

	var upstream *UpstreamIdentityError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusOK, upstream.StatusCode)
}

func TestFetchUserInfo_HonoursClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := &http.Client{Timeout: 50 * time.Millisecond}
	_, err := NewUserInfoFetcher(server.URL, client).FetchUserInfo(context.Background(), "tok-1")

	assert.True(t, IsUpstreamIdentityError(err), "expected UpstreamIdentityError, got %v", err)
}
