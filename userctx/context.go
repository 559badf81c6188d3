package userctx

import (
	"context"

	"github.com/coursecatalog/catalog/models"
)

// Context key type
type contextKey string

const (
	sessionKey contextKey = "session"
	accountKey contextKey = "account"
)

// SetSession adds the authenticated session and its account to the context
func SetSession(ctx context.Context, session *models.Session, account *models.Account) context.Context {
	ctx = context.WithValue(ctx, sessionKey, session)
	return context.WithValue(ctx, accountKey, account)
}

// GetSession retrieves the session from the context, nil when anonymous
func GetSession(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionKey).(*models.Session)
	return session
}

// GetAccount retrieves the signed-in account from the context, nil when anonymous
func GetAccount(ctx context.Context) *models.Account {
	account, _ := ctx.Value(accountKey).(*models.Account)
	return account
}

// GetUserEmail retrieves the signed-in user's email
func GetUserEmail(ctx context.Context) string {
	if account := GetAccount(ctx); account != nil {
		return account.Email
	}
	return "anonymous"
}

// IsAuthenticated reports whether the request carries a live session
func IsAuthenticated(ctx context.Context) bool {
	return GetSession(ctx) != nil
}
