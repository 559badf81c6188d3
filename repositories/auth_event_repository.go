package repositories

import (
	"context"
	"fmt"

	"github.com/coursecatalog/catalog/models"
)

// AuthEventRepository handles sign-in audit persistence
type AuthEventRepository interface {
	Create(ctx context.Context, event *models.AuthEvent) error
	ListRecent(ctx context.Context, limit int) ([]models.AuthEvent, error)
}

type authEventRepository struct {
	db DBTX
}

// NewAuthEventRepository creates a new auth event repository
func NewAuthEventRepository(db DBTX) AuthEventRepository {
	return &authEventRepository{db: db}
}

// Create inserts a new auth event
func (r *authEventRepository) Create(ctx context.Context, event *models.AuthEvent) error {
	query := `
		INSERT INTO auth_events (timestamp, provider_id, email, outcome, state, error, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Timestamp,
		event.ProviderID,
		event.Email,
		event.Outcome,
		event.State.String(),
		event.Error,
		event.UserAgent,
		event.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get auth event id: %w", err)
	}
	event.ID = id
	return nil
}

// ListRecent returns the newest events first
func (r *authEventRepository) ListRecent(ctx context.Context, limit int) ([]models.AuthEvent, error) {
	query := `
		SELECT id, timestamp, provider_id, email, outcome, state, error, user_agent, ip_address
		FROM auth_events
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query auth events: %w", err)
	}
	defer rows.Close()

	var events []models.AuthEvent
	for rows.Next() {
		var event models.AuthEvent
		var state string
		err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.ProviderID,
			&event.Email,
			&event.Outcome,
			&state,
			&event.Error,
			&event.UserAgent,
			&event.IPAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auth event: %w", err)
		}
		event.State = models.ParseAuthState(state)
		events = append(events, event)
	}

	return events, rows.Err()
}
