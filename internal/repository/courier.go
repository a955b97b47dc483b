package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"transportmarket/internal/domain"
)

// CourierRepo represents courier profile repository. The administrative
// verification workflow owns the verified/suspended flags; this core mostly
// reads them.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns courier profile by its ID.
func (r *CourierRepo) Get(ctx context.Context, id string) (*domain.CourierProfile, error) {
	var c domain.CourierProfile
	err := r.db.QueryRow(ctx,
		`SELECT id, name, verified, suspended FROM courier_profiles WHERE id=$1`, id,
	).Scan(&c.ID, &c.Name, &c.Verified, &c.Suspended)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier profile %q: %w", id, err)
	}
	return &c, nil
}

// Upsert - creates or replaces a courier profile record.
func (r *CourierRepo) Upsert(ctx context.Context, c *domain.CourierProfile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO courier_profiles (id, name, verified, suspended)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name,
            verified = EXCLUDED.verified,
            suspended = EXCLUDED.suspended
    `, c.ID, c.Name, c.Verified, c.Suspended)
	if err != nil {
		return fmt.Errorf("upsert courier profile %q: %w", c.ID, err)
	}
	return nil
}
