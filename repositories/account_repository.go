package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursecatalog/catalog/models"
)

// AccountRepository interface defines account database operations
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdateProfile(ctx context.Context, account *models.Account) error
	LinkProvider(ctx context.Context, accountID, providerID string, linkedAt time.Time) error
	ListProviders(ctx context.Context, accountID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, email, nickname, first_name, last_name, created_at, updated_at`

// GetByID retrieves an account by its id
func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves an account by its email address
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *accountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Nickname,
		&account.FirstName,
		&account.LastName,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &account, nil
}

// Create inserts a new account
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, nickname, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Nickname,
		account.FirstName,
		account.LastName,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// UpdateProfile overwrites the profile columns of an existing account
func (r *accountRepository) UpdateProfile(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET nickname = ?, first_name = ?, last_name = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		account.Nickname,
		account.FirstName,
		account.LastName,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
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

// LinkProvider records that the account signed in through providerID. Linking
// an already linked provider is a no-op.
func (r *accountRepository) LinkProvider(ctx context.Context, accountID, providerID string, linkedAt time.Time) error {
	query := `
		INSERT OR IGNORE INTO account_providers (account_id, provider_id, linked_at)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, accountID, providerID, linkedAt); err != nil {
		return fmt.Errorf("failed to link provider %s: %w", providerID, err)
	}
	return nil
}

// ListProviders returns the provider ids linked to the account
func (r *accountRepository) ListProviders(ctx context.Context, accountID string) ([]string, error) {
	query := `SELECT provider_id FROM account_providers WHERE account_id = ? ORDER BY provider_id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account providers: %w", err)
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var providerID string
		if err := rows.Scan(&providerID); err != nil {
			return nil, fmt.Errorf("failed to scan account provider: %w", err)
		}
		providers = append(providers, providerID)
	}

	return providers, rows.Err()
}

// Count returns the number of accounts
func (r *accountRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
