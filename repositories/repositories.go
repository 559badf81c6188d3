package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repositories struct holds all repository interfaces
type Repositories struct {
	Accounts   AccountRepository
	Sessions   SessionRepository
	AuthEvents AuthEventRepository

	db *sql.DB
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	r := newRepositories(db)
	r.db = db
	return r
}

func newRepositories(db DBTX) *Repositories {
	return &Repositories{
		Accounts:   NewAccountRepository(db),
		Sessions:   NewSessionRepository(db),
		AuthEvents: NewAuthEventRepository(db),
	}
}

// WithTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithTx(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.db == nil {
		return errors.New("repositories: transaction already in progress")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
