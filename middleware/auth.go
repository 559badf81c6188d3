package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/coursecatalog/catalog/cookies"
	"github.com/coursecatalog/catalog/services"
	"github.com/coursecatalog/catalog/userctx"
)

// LoadSession validates the session cookie and, when it references a live
// session, stores the session and account in the request context. Invalid or
// stale cookies are cleared and the request continues anonymously. When the
// session expiry was extended the cookie is re-issued with the new expiry.
func LoadSession(signer *cookies.Signer, sessions services.SessionService, logger hclog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(cookies.SessionCookieName); err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := signer.ReadSessionClaims(r)
			if err != nil {
				logger.Debug("discarding session cookie", "error", err)
				signer.Clear(w, cookies.SessionCookieName)
				next.ServeHTTP(w, r)
				return
			}

			session, account, err := sessions.GetSession(r.Context(), claims.Subject)
			if errors.Is(err, services.ErrSessionNotFound) {
				signer.Clear(w, cookies.SessionCookieName)
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				logger.Error("failed to load session", "error", err)
				http.Error(w, "Failed to load session", http.StatusInternalServerError)
				return
			}

			// GetSession slides the expiry forward; the cookie has to follow
			if session.ExpiresAt.Truncate(time.Second).After(claims.ExpiresAt.Time) {
				if err := signer.SetSession(w, session.Token, session.ExpiresAt); err != nil {
					logger.Warn("failed to refresh session cookie", "error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(userctx.SetSession(r.Context(), session, account)))
		})
	}
}

// RequireAuth ensures the user is authenticated.
// Anonymous users are sent to signInPath with the current path as callbackUrl.
func RequireAuth(signInPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !userctx.IsAuthenticated(r.Context()) {
				target := signInPath + "?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
