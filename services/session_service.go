package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/coursecatalog/catalog/authenticator"
	"github.com/coursecatalog/catalog/models"
	"github.com/coursecatalog/catalog/repositories"
)

var (
	// ErrAccountLinkingConflict is returned when an email already belongs to an
	// account of another provider and the provider does not allow linking
	ErrAccountLinkingConflict = errors.New("email is already linked to another provider")

	// ErrSessionNotFound is returned for unknown or expired session tokens
	ErrSessionNotFound = errors.New("session not found")
)

// SessionOptions controls session lifetimes
type SessionOptions struct {
	// MaxAge is how long a session stays valid after creation or refresh
	MaxAge time.Duration
	// UpdateAge is how often an active session has its expiry extended
	UpdateAge time.Duration
	// Now overrides the clock, used by tests
	Now func() time.Time
}

// EstablishRequest describes a successful profile resolution
type EstablishRequest struct {
	ProviderID   string
	AllowLinking bool
	Profile      models.Profile
	// CurrentToken is the session the browser already holds, if any
	CurrentToken string
}

// SessionService is the account and session persistence used by the
// sign-in flow
type SessionService interface {
	UpsertAccount(ctx context.Context, providerID string, allowLinking bool, profile models.Profile) (string, error)
	CreateSession(ctx context.Context, accountID string) (*models.Session, error)
	RefreshSession(ctx context.Context, token string) (*models.Session, error)
	InvalidateSession(ctx context.Context, token string) error
	EstablishSession(ctx context.Context, req EstablishRequest) (*models.Session, *models.Account, error)
	GetSession(ctx context.Context, token string) (*models.Session, *models.Account, error)
	PurgeExpired(ctx context.Context) (int64, error)
	RecordEvent(ctx context.Context, event *models.AuthEvent) error
}

// sessionService implements SessionService interface
type sessionService struct {
	repos  *repositories.Repositories
	opts   SessionOptions
	logger hclog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repos *repositories.Repositories, opts SessionOptions, logger hclog.Logger) SessionService {
	if opts.MaxAge <= 0 {
		opts.MaxAge = 30 * 24 * time.Hour
	}
	if opts.UpdateAge <= 0 || opts.UpdateAge > opts.MaxAge {
		opts.UpdateAge = opts.MaxAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &sessionService{repos: repos, opts: opts, logger: logger.Named("sessions")}
}

// now returns the current time at the precision stored in the database
func (s *sessionService) now() time.Time {
	return s.opts.Now().UTC().Truncate(time.Second)
}

// UpsertAccount creates or updates the account identified by the profile email
func (s *sessionService) UpsertAccount(ctx context.Context, providerID string, allowLinking bool, profile models.Profile) (string, error) {
	var accountID string
	err := s.repos.WithTx(ctx, func(tx *repositories.Repositories) error {
		account, err := s.upsertAccount(ctx, tx, providerID, allowLinking, profile)
		if err != nil {
			return err
		}
		accountID = account.ID
		return nil
	})
	return accountID, err
}

func (s *sessionService) upsertAccount(ctx context.Context, tx *repositories.Repositories, providerID string, allowLinking bool, profile models.Profile) (*models.Account, error) {
	if profile.Email == "" {
		return nil, &authenticator.AuthConfigurationError{Op: "services.UpsertAccount", Msg: "profile has no email"}
	}
	if providerID == "" {
		return nil, &authenticator.AuthConfigurationError{Op: "services.UpsertAccount", Msg: "provider id is required"}
	}

	now := s.now()

	account, err := tx.Accounts.GetByEmail(ctx, profile.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		account = &models.Account{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
		account.ApplyProfile(profile)
		if err := tx.Accounts.Create(ctx, account); err != nil {
			return nil, err
		}
		if err := tx.Accounts.LinkProvider(ctx, account.ID, providerID, now); err != nil {
			return nil, err
		}
		s.logger.Info("account created", "account_id", account.ID, "provider", providerID)
		return account, nil
	}
	if err != nil {
		return nil, err
	}

	providers, err := tx.Accounts.ListProviders(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if !contains(providers, providerID) {
		if !allowLinking {
			return nil, fmt.Errorf("%w: %s", ErrAccountLinkingConflict, providerID)
		}
		if err := tx.Accounts.LinkProvider(ctx, account.ID, providerID, now); err != nil {
			return nil, err
		}
		s.logger.Info("provider linked to existing account", "account_id", account.ID, "provider", providerID)
	}

	account.ApplyProfile(profile)
	account.UpdatedAt = now
	if err := tx.Accounts.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// CreateSession starts a new session for the account
func (s *sessionService) CreateSession(ctx context.Context, accountID string) (*models.Session, error) {
	return s.createSession(ctx, s.repos, accountID)
}

func (s *sessionService) createSession(ctx context.Context, repos *repositories.Repositories, accountID string) (*models.Session, error) {
	now := s.now()
	session := &models.Session{
		Token:     uuid.NewString(),
		AccountID: accountID,
		ExpiresAt: now.Add(s.opts.MaxAge),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repos.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RefreshSession pushes the expiry of a live session forward by MaxAge
func (s *sessionService) RefreshSession(ctx context.Context, token string) (*models.Session, error) {
	return s.refreshSession(ctx, s.repos, token)
}

func (s *sessionService) refreshSession(ctx context.Context, repos *repositories.Repositories, token string) (*models.Session, error) {
	session, err := s.liveSession(ctx, repos, token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session.ExpiresAt = now.Add(s.opts.MaxAge)
	session.UpdatedAt = now
	if err := repos.Sessions.UpdateExpiry(ctx, session.Token, session.ExpiresAt, session.UpdatedAt); err != nil {
		return nil, err
	}
	return session, nil
}

// InvalidateSession deletes the session; unknown tokens are ignored
func (s *sessionService) InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repos.Sessions.Delete(ctx, token)
}

// EstablishSession upserts the account and creates or refreshes its session in
// one transaction, so a failure leaves no partial records behind
func (s *sessionService) EstablishSession(ctx context.Context, req EstablishRequest) (*models.Session, *models.Account, error) {
	var (
		session *models.Session
		account *models.Account
	)

	err := s.repos.WithTx(ctx, func(tx *repositories.Repositories) error {
		var err error
		account, err = s.upsertAccount(ctx, tx, req.ProviderID, req.AllowLinking, req.Profile)
		if err != nil {
			return err
		}

		if req.CurrentToken != "" {
			current, err := s.liveSession(ctx, tx, req.CurrentToken)
			switch {
			case err == nil && current.AccountID == account.ID:
				session, err = s.refreshSession(ctx, tx, current.Token)
				return err
			case err == nil:
				// a different user signed in on this browser
				if err := tx.Sessions.Delete(ctx, current.Token); err != nil {
					return err
				}
			case !errors.Is(err, ErrSessionNotFound):
				return err
			}
		}

		session, err = s.createSession(ctx, tx, account.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return session, account, nil
}

// GetSession returns the live session and its account. Expired sessions are
// removed; sessions last updated more than UpdateAge ago are extended.
func (s *sessionService) GetSession(ctx context.Context, token string) (*models.Session, *models.Account, error) {
	session, err := s.liveSession(ctx, s.repos, token)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.repos.Accounts.GetByID(ctx, session.AccountID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if now.Sub(session.UpdatedAt) >= s.opts.UpdateAge {
		session.ExpiresAt = now.Add(s.opts.MaxAge)
		session.UpdatedAt = now
		if err := s.repos.Sessions.UpdateExpiry(ctx, session.Token, session.ExpiresAt, session.UpdatedAt); err != nil {
			return nil, nil, err
		}
	}

	return session, account, nil
}

func (s *sessionService) liveSession(ctx context.Context, repos *repositories.Repositories, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := repos.Sessions.GetByToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired(s.now()) {
		if err := repos.Sessions.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// PurgeExpired removes all expired sessions
func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.repos.Sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Debug("purged expired sessions", "count", removed)
	}
	return removed, nil
}

// RecordEvent stores a sign-in or sign-out audit event
func (s *sessionService) RecordEvent(ctx context.Context, event *models.AuthEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	return s.repos.AuthEvents.Create(ctx, event)
}

// contains checks if a string slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
