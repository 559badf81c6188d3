package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursecatalog/catalog/models"
)

// SessionRepository interface defines session database operations
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	UpdateExpiry(ctx context.Context, token string, expiresAt, updatedAt time.Time) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
}

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db DBTX) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (token, account_id, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.Token,
		session.AccountID,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByToken retrieves a session by its token, expired or not
func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT token, account_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE token = ?
	`

	var session models.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.AccountID,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// UpdateExpiry moves the expiry of a session
func (r *sessionRepository) UpdateExpiry(ctx context.Context, token string, expiresAt, updatedAt time.Time) error {
	query := `UPDATE sessions SET expires_at = ?, updated_at = ? WHERE token = ?`

	result, err := r.db.ExecContext(ctx, query, expiresAt, updatedAt, token)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that expired at or before now
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the number of stored sessions
func (r *sessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
