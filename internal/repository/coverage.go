package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"transportmarket/internal/domain"
)

// CoverageRepo represents coverage zone repository.
type CoverageRepo struct{ db *pgxpool.Pool }

// NewCoverageRepo creates a new CoverageRepo.
func NewCoverageRepo(db *pgxpool.Pool) *CoverageRepo { return &CoverageRepo{db: db} }

// CouriersByCountries returns the distinct courier identities holding a zone
// entry in any of the given countries. Matching is country-granularity by
// policy: declared region/city narrowing is stored but not consulted here.
func (r *CoverageRepo) CouriersByCountries(ctx context.Context, countries []string) ([]string, error) {
	if len(countries) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT courier_id FROM coverage_zones WHERE country = ANY($1)`,
		countries)
	if err != nil {
		return nil, fmt.Errorf("couriers by countries: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ListZones returns the zone entries declared by a courier, ordered by id.
func (r *CoverageRepo) ListZones(ctx context.Context, courierID string) ([]domain.CoverageZone, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, courier_id, country, region, city
        FROM coverage_zones WHERE courier_id = $1 ORDER BY id
    `, courierID)
	if err != nil {
		return nil, fmt.Errorf("list zones for %q: %w", courierID, err)
	}
	defer rows.Close()

	var out []domain.CoverageZone
	for rows.Next() {
		var z domain.CoverageZone
		if err := rows.Scan(&z.ID, &z.CourierID, &z.Country, &z.Region, &z.City); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

// AddZone - creates a new coverage zone entry.
func (r *CoverageRepo) AddZone(ctx context.Context, z *domain.CoverageZone) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO coverage_zones (courier_id, country, region, city)
        VALUES ($1, $2, $3, $4) RETURNING id
    `, z.CourierID, z.Country, z.Region, z.City).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add zone: %w", err)
	}
	return id, nil
}

// DeleteZone removes a zone entry owned by the courier and returns true if a
// row was affected.
func (r *CoverageRepo) DeleteZone(ctx context.Context, courierID string, zoneID int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM coverage_zones WHERE id = $1 AND courier_id = $2`,
		zoneID, courierID)
	if err != nil {
		return false, fmt.Errorf("delete zone %d: %w", zoneID, err)
	}
	return ct.RowsAffected() > 0, nil
}
