package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/coursecatalog/catalog/authenticator"
	"github.com/coursecatalog/catalog/cookies"
	"github.com/coursecatalog/catalog/models"
	"github.com/coursecatalog/catalog/services"
	"github.com/coursecatalog/catalog/userctx"
)

// SessionCallbackParams is handed to the session callback
type SessionCallbackParams struct {
	Session models.SessionView
}

// SessionCallback may augment the session before it reaches the browser
type SessionCallback func(params SessionCallbackParams) models.SessionView

// PassThroughSession logs the session and returns it unchanged
func PassThroughSession(logger hclog.Logger) SessionCallback {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return func(params SessionCallbackParams) models.SessionView {
		logger.Debug("session callback", "session", params.Session)
		return params.Session
	}
}

// AuthConfig wires the collaborators of the auth controller
type AuthConfig struct {
	Providers       *authenticator.Registry
	Sessions        services.SessionService
	Signer          *cookies.Signer
	BaseURL         string
	SessionCallback SessionCallback
	Logger          hclog.Logger
}

// AuthController runs the OIDC authorization code flow
type AuthController struct {
	providers *authenticator.Registry
	sessions  services.SessionService
	signer    *cookies.Signer
	baseURL   string
	callback  SessionCallback
	logger    hclog.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(cfg AuthConfig) *AuthController {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("auth")

	callback := cfg.SessionCallback
	if callback == nil {
		callback = PassThroughSession(logger)
	}

	return &AuthController{
		providers: cfg.Providers,
		sessions:  cfg.Sessions,
		signer:    cfg.Signer,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		callback:  callback,
		logger:    logger,
	}
}

// Handle returns the router serving every /auth endpoint
func (ac *AuthController) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/signin/{provider}", ac.SignIn)
	r.Post("/signin/{provider}", ac.SignIn)
	r.Get("/callback/{provider}", ac.Callback)
	r.Post("/callback/{provider}", ac.Callback)
	r.Get("/signout", ac.SignOutConfirm)
	r.Post("/signout", ac.SignOut)
	r.Get("/csrf", ac.CSRF)
	r.Get("/session", ac.Session)
	r.Get("/providers", ac.Providers)
	r.Get("/error", ac.Error)
	return r
}

// SignIn redirects the browser to the provider's authorization endpoint
func (ac *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "provider")
	a := ac.newAttempt(providerID, models.StateUnauthenticated)

	p, err := ac.providers.Get(providerID)
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}
	if r.Method == http.MethodPost {
		if err := ac.signer.VerifyCSRF(r); err != nil {
			ac.fail(w, r, a, fmt.Errorf("%w: %v", errMissingCSRF, err))
			return
		}
	}

	state, err := generateRandomState()
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}
	nonce, err := generateRandomState()
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}
	req := authenticator.AuthRequest{
		State:        state,
		Nonce:        nonce,
		CodeVerifier: oauth2.GenerateVerifier(),
	}

	authURL, err := p.AuthCodeURL(r.Context(), req)
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}

	err = ac.signer.SetFlow(w, cookies.FlowClaims{
		Provider:     providerID,
		State:        req.State,
		Nonce:        req.Nonce,
		CodeVerifier: req.CodeVerifier,
		CallbackURL:  ac.safeCallbackURL(r.FormValue("callbackUrl")),
	})
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}

	a.advance(models.StateAuthorizationRequested)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback completes the flow when the provider redirects back
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID := chi.URLParam(r, "provider")
	a := ac.newAttempt(providerID, models.StateAuthorizationRequested)

	p, err := ac.providers.Get(providerID)
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}

	// the flow cookie is single use whatever the outcome
	flow, err := ac.signer.ReadFlow(r)
	ac.signer.Clear(w, cookies.FlowCookieName)
	if err != nil {
		ac.fail(w, r, a, fmt.Errorf("%w: %v", errInvalidState, err))
		return
	}
	if flow.Provider != providerID || r.FormValue("state") != flow.State {
		ac.fail(w, r, a, errInvalidState)
		return
	}
	a.advance(models.StateCallbackReceived)

	if code := r.FormValue("error"); code != "" {
		ac.fail(w, r, a, &providerError{Code: code, Description: r.FormValue("error_description")})
		return
	}

	req := authenticator.AuthRequest{State: flow.State, Nonce: flow.Nonce, CodeVerifier: flow.CodeVerifier}
	token, err := p.ExchangeCode(ctx, r.FormValue("code"), req)
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}
	a.advance(models.StateTokenExchanged)

	profile, err := p.ResolveProfile(ctx, token)
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}
	a.email = profile.Email
	a.advance(models.StateProfileResolved)

	// an unreadable cookie simply means there is no session to refresh
	currentToken, _ := ac.signer.ReadSession(r)

	session, account, err := ac.sessions.EstablishSession(ctx, services.EstablishRequest{
		ProviderID:   p.ID(),
		AllowLinking: p.AllowDangerousEmailAccountLinking(),
		Profile:      *profile,
		CurrentToken: currentToken,
	})
	if err != nil {
		ac.fail(w, r, a, err)
		return
	}

	if err := ac.signer.SetSession(w, session.Token, session.ExpiresAt); err != nil {
		if invErr := ac.sessions.InvalidateSession(ctx, session.Token); invErr != nil {
			ac.logger.Error("failed to roll back session", "error", invErr)
		}
		ac.fail(w, r, a, err)
		return
	}
	a.advance(models.StateSessionEstablished)

	a.logger.Info("signed in", "account_id", account.ID)
	ac.record(r, a, models.AuthOutcomeSignIn, nil)

	target := flow.CallbackURL
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// signOutConfirmation tells the browser how to complete a sign-out
type signOutConfirmation struct {
	CSRFToken string `json:"csrfToken"`
	Action    string `json:"action"`
	Method    string `json:"method"`
}

// SignOutConfirm handles GET /auth/signout. It changes nothing and returns
// the CSRF token the sign-out POST has to carry.
func (ac *AuthController) SignOutConfirm(w http.ResponseWriter, r *http.Request) {
	token, err := ac.signer.CSRFToken(w, r)
	if err != nil {
		ac.logger.Error("failed to issue csrf token", "error", err)
		writeAuthError(w, http.StatusInternalServerError, errKindDefault, errorKindMessage[errKindDefault])
		return
	}
	writeJSON(w, http.StatusOK, signOutConfirmation{CSRFToken: token, Action: "/auth/signout", Method: http.MethodPost})
}

// SignOut handles POST /auth/signout: invalidates the current session and
// clears the session cookie
func (ac *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	a := ac.newAttempt("", models.StateUnauthenticated)
	if userctx.IsAuthenticated(r.Context()) {
		a.email = userctx.GetUserEmail(r.Context())
	}

	if err := ac.signer.VerifyCSRF(r); err != nil {
		ac.logger.Warn("sign-out rejected", "error", err)
		ac.record(r, a, models.AuthOutcomeFailed, fmt.Errorf("sign out: %w: %v", errMissingCSRF, err))
		writeAuthError(w, http.StatusForbidden, errKindMissingCSRF, errorKindMessage[errKindMissingCSRF])
		return
	}

	token := ""
	if session := userctx.GetSession(r.Context()); session != nil {
		token = session.Token
	} else if t, err := ac.signer.ReadSession(r); err == nil {
		token = t
	}

	if token != "" {
		if err := ac.sessions.InvalidateSession(r.Context(), token); err != nil {
			ac.logger.Error("failed to invalidate session", "error", err)
			writeAuthError(w, http.StatusInternalServerError, errKindDefault, "Failed to sign out")
			return
		}
	}
	ac.signer.Clear(w, cookies.SessionCookieName)
	ac.record(r, a, models.AuthOutcomeSignOut, nil)

	http.Redirect(w, r, ac.safeCallbackURL(r.FormValue("callbackUrl")), http.StatusSeeOther)
}

// CSRF handles GET /auth/csrf and returns the double submit token
func (ac *AuthController) CSRF(w http.ResponseWriter, r *http.Request) {
	token, err := ac.signer.CSRFToken(w, r)
	if err != nil {
		ac.logger.Error("failed to issue csrf token", "error", err)
		writeAuthError(w, http.StatusInternalServerError, errKindDefault, errorKindMessage[errKindDefault])
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{cookies.CSRFField: token})
}

// Session returns the current session as shaped by the session callback
func (ac *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	session := userctx.GetSession(r.Context())
	account := userctx.GetAccount(r.Context())
	if session == nil || account == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	view := ac.callback(SessionCallbackParams{Session: models.NewSessionView(session, account)})
	writeJSON(w, http.StatusOK, view)
}

// providerInfo describes a provider to the browser
type providerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	SignInURL   string `json:"signinUrl"`
	CallbackURL string `json:"callbackUrl"`
}

// Providers lists the registered providers keyed by id
func (ac *AuthController) Providers(w http.ResponseWriter, r *http.Request) {
	list := make(map[string]providerInfo)
	for _, p := range ac.providers.All() {
		list[p.ID()] = providerInfo{
			ID:          p.ID(),
			Name:        p.Name(),
			Type:        p.Type(),
			SignInURL:   ac.baseURL + "/auth/signin/" + p.ID(),
			CallbackURL: ac.baseURL + "/auth/callback/" + p.ID(),
		}
	}
	writeJSON(w, http.StatusOK, list)
}

// Error renders the authentication error for ?error=<kind>
func (ac *AuthController) Error(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("error")
	status, ok := errorKindStatus[kind]
	if !ok {
		kind = errKindDefault
		status = http.StatusInternalServerError
	}
	writeAuthError(w, status, kind, errorKindMessage[kind])
}

// attempt tracks one sign-in attempt through the flow states
type attempt struct {
	providerID string
	email      string
	state      models.AuthState
	logger     hclog.Logger
}

func (ac *AuthController) newAttempt(providerID string, state models.AuthState) *attempt {
	return &attempt{
		providerID: providerID,
		state:      state,
		logger:     ac.logger.With("provider", providerID),
	}
}

func (a *attempt) advance(next models.AuthState) {
	if !a.state.CanTransition(next) {
		a.logger.Warn("unexpected sign-in transition", "from", a.state.String(), "to", next.String())
	}
	a.logger.Debug("sign-in state", "from", a.state.String(), "to", next.String())
	a.state = next
}

// fail moves the attempt to Failed and writes the error response
func (ac *AuthController) fail(w http.ResponseWriter, r *http.Request, a *attempt, err error) {
	reached := a.state
	a.advance(models.StateFailed)

	status, kind := classifyError(err)
	a.logger.Error("sign-in failed", "state", reached.String(), "kind", kind, "error", err)
	ac.record(r, a, models.AuthOutcomeFailed, fmt.Errorf("%s: %w", reached, err))

	writeAuthError(w, status, kind, errorKindMessage[kind])
}

func (ac *AuthController) record(r *http.Request, a *attempt, outcome string, cause error) {
	event := &models.AuthEvent{
		ProviderID: a.providerID,
		Email:      a.email,
		Outcome:    outcome,
		State:      a.state,
		UserAgent:  r.UserAgent(),
		IPAddress:  getIPAddress(r),
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	if err := ac.sessions.RecordEvent(r.Context(), event); err != nil {
		ac.logger.Error("failed to record auth event", "error", err)
	}
}

// safeCallbackURL keeps post sign-in redirects on this site
func (ac *AuthController) safeCallbackURL(raw string) string {
	if ac.baseURL != "" && strings.HasPrefix(raw, ac.baseURL+"/") {
		raw = strings.TrimPrefix(raw, ac.baseURL)
	}
	if !isLocalPath(raw) {
		return "/"
	}
	return raw
}

// isLocalPath reports whether raw is a path on this host. Browsers drop
// tabs and newlines from Location, so any control character is refused.
func isLocalPath(raw string) bool {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return false
	}
	for _, c := range raw {
		if c < 0x20 || c == 0x7f || c == '\\' {
			return false
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.User == nil && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//")
}

// generateRandomState generates a random value for state and nonce parameters
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

var (
	errInvalidState = errors.New("invalid or missing sign-in state")
	errMissingCSRF  = errors.New("missing or invalid csrf token")
)

// providerError is an error reported by the provider on the callback
type providerError struct {
	Code        string
	Description string
}

func (e *providerError) Error() string {
	if e.Description == "" {
		return "provider returned error: " + e.Code
	}
	return fmt.Sprintf("provider returned error: %s: %s", e.Code, e.Description)
}
