package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"transportmarket/internal/apperr"
	"transportmarket/internal/domain"
)

const messageColumns = `id, order_id, client_id, courier_id, sender_id, sender_role, body, read, created_at`

// MessageRepo represents message repository. The log is append-mostly: the
// only mutation after creation is flipping the read flag.
type MessageRepo struct{ db *pgxpool.Pool }

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *pgxpool.Pool) *MessageRepo { return &MessageRepo{db: db} }

// Get - returns message by its ID.
func (r *MessageRepo) Get(ctx context.Context, id string) (*domain.Message, error) {
	var m domain.Message
	err := r.db.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id=$1`, id,
	).Scan(&m.ID, &m.OrderID, &m.ClientID, &m.CourierID,
		&m.SenderID, &m.SenderRole, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message %q: %w", id, err)
	}
	return &m, nil
}

// Insert appends a message and notifies the message change channel.
func (r *MessageRepo) Insert(ctx context.Context, m *domain.Message) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO messages (`+messageColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, m.ID, m.OrderID, m.ClientID, m.CourierID,
		m.SenderID, m.SenderRole, m.Body, m.Read, m.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert message: %w", err)
	}
	// best effort; listeners reconcile from the store anyway
	_, _ = r.db.Exec(ctx, `SELECT pg_notify($1, $2)`, ChannelMessages, m.ID)
	return nil
}

// DistinctCourierSenders counts the distinct courier identities that have
// ever sent a message on the order. This is the order's offer count.
func (r *MessageRepo) DistinctCourierSenders(ctx context.Context, orderID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(DISTINCT courier_id)
        FROM messages
        WHERE order_id = $1 AND sender_role = $2
    `, orderID, string(domain.RoleCourier)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count distinct courier senders for %q: %w", orderID, err)
	}
	return n, nil
}

// CourierHasMessaged reports whether the courier already sent any message on
// the order.
func (r *MessageRepo) CourierHasMessaged(ctx context.Context, orderID, courierID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM messages
            WHERE order_id = $1 AND courier_id = $2 AND sender_role = $3
        )
    `, orderID, courierID, string(domain.RoleCourier)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("courier has messaged on %q: %w", orderID, err)
	}
	return exists, nil
}

// ListByParticipant returns all messages where the user is either side of
// the conversation, oldest first.
func (r *MessageRepo) ListByParticipant(ctx context.Context, userID string) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+messageColumns+`
        FROM messages
        WHERE client_id = $1 OR courier_id = $1
        ORDER BY created_at, id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages for %q: %w", userID, err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.ClientID, &m.CourierID,
			&m.SenderID, &m.SenderRole, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag. Only the non-sender party may flip it, which
// the WHERE clause enforces. Returns true if a row was affected.
func (r *MessageRepo) MarkRead(ctx context.Context, id, readerID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE messages
        SET read = TRUE
        WHERE id = $1
          AND sender_id <> $2
          AND (client_id = $2 OR courier_id = $2)
    `, id, readerID)
	if err != nil {
		return false, fmt.Errorf("mark message %q read: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
