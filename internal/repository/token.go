package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"transportmarket/internal/domain"
)

// TokenRepo represents push token repository. The dispatcher is the only
// writer besides the external registration flow, and only to delete.
type TokenRepo struct{ db *pgxpool.Pool }

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(db *pgxpool.Pool) *TokenRepo { return &TokenRepo{db: db} }

// Get - returns the live token for a user, or nil when none is registered.
func (r *TokenRepo) Get(ctx context.Context, userID string) (*domain.DeviceToken, error) {
	var t domain.DeviceToken
	err := r.db.QueryRow(ctx,
		`SELECT user_id, token, updated_at FROM push_tokens WHERE user_id=$1`, userID,
	).Scan(&t.UserID, &t.Token, &t.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get push token for %q: %w", userID, err)
	}
	return &t, nil
}

// Upsert registers or replaces the user's token. One live token per user.
func (r *TokenRepo) Upsert(ctx context.Context, userID, token string, now time.Time) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO push_tokens (user_id, token, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE
        SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at
    `, userID, token, now)
	if err != nil {
		return fmt.Errorf("upsert push token for %q: %w", userID, err)
	}
	return nil
}

// Delete removes the user's token record.
func (r *TokenRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM push_tokens WHERE user_id=$1`, userID)
	if err != nil {
		return fmt.Errorf("delete push token for %q: %w", userID, err)
	}
	return nil
}
