package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"transportmarket/internal/apperr"
	"transportmarket/internal/domain"
)

const orderColumns = `id, order_number, client_id, service_type,
        pickup_country, pickup_region, pickup_city,
        delivery_country, delivery_region, delivery_city,
        status, courier_id, offerer_policy, cap_policy, details,
        archived, archived_at, created_at`

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var (
		o       domain.Order
		details []byte
	)
	err := row.Scan(
		&o.ID, &o.Number, &o.ClientID, &o.ServiceType,
		&o.Pickup.Country, &o.Pickup.Region, &o.Pickup.City,
		&o.Delivery.Country, &o.Delivery.Region, &o.Delivery.City,
		&o.Status, &o.CourierID, &o.OffererPolicy, &o.CapPolicy, &details,
		&o.Archived, &o.ArchivedAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.Details); err != nil {
			return nil, fmt.Errorf("decode order details: %w", err)
		}
	}
	return &o, nil
}

// Get - returns order by its ID.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}

// Create - creates a new order and notifies the order change channel.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	details, err := json.Marshal(o.Details)
	if err != nil {
		return fmt.Errorf("encode order details: %w", err)
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO orders (`+orderColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    `,
		o.ID, o.Number, o.ClientID, o.ServiceType,
		o.Pickup.Country, o.Pickup.Region, o.Pickup.City,
		o.Delivery.Country, o.Delivery.Region, o.Delivery.City,
		o.Status, o.CourierID, o.OffererPolicy, o.CapPolicy, details,
		o.Archived, o.ArchivedAt, o.CreatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create order: %w", err)
	}
	r.notify(ctx, ChannelOrders, o.ID)
	return nil
}

// SetStatus moves the order from one status to another. The update only
// lands when the stored status still equals from, so a writer racing on a
// stale read gets false instead of rewinding the lifecycle.
func (r *OrderRepo) SetStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE orders SET status=$2 WHERE id=$1 AND status=$3`,
		id, string(to), string(from))
	if err != nil {
		return false, fmt.Errorf("set order %q status: %w", id, err)
	}
	if ct.RowsAffected() > 0 {
		r.notify(ctx, ChannelOrders, id)
	}
	return ct.RowsAffected() > 0, nil
}

// Assign sets the courier on an unassigned new order and moves it to the
// assigned status. Returns false when the order is missing, already assigned
// or no longer in the new state.
func (r *OrderRepo) Assign(ctx context.Context, id, courierID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET courier_id = $2, status = $3
        WHERE id = $1 AND courier_id IS NULL AND status = $4
    `, id, courierID, string(domain.StatusAssigned), string(domain.StatusNew))
	if err != nil {
		return false, fmt.Errorf("assign order %q: %w", id, err)
	}
	if ct.RowsAffected() > 0 {
		r.notify(ctx, ChannelOrders, id)
	}
	return ct.RowsAffected() > 0, nil
}

// Archive flags an order as archived at the given time.
func (r *OrderRepo) Archive(ctx context.Context, id string, at time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET archived = TRUE, archived_at = $2
        WHERE id = $1 AND archived = FALSE
    `, id, at)
	if err != nil {
		return false, fmt.Errorf("archive order %q: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// PurgeArchivedBefore hard-deletes archived orders whose archival timestamp
// is older than the cutoff, together with their messages, and returns the
// number of purged orders.
func (r *OrderRepo) PurgeArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	_, err := r.db.Exec(ctx, `
        DELETE FROM messages
        WHERE order_id IN (
            SELECT id FROM orders WHERE archived = TRUE AND archived_at < $1
        )
    `, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge archived order messages: %w", err)
	}
	ct, err := r.db.Exec(ctx,
		`DELETE FROM orders WHERE archived = TRUE AND archived_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge archived orders: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *OrderRepo) notify(ctx context.Context, channel, payload string) {
	// best effort; listeners reconcile from the store anyway
	_, _ = r.db.Exec(ctx, `SELECT pg_notify($1, $2)`, channel, payload)
}
