package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification channels used by the repositories and the change feed.
const (
	ChannelOrders   = "orders_changed"
	ChannelMessages = "messages_changed"
)

// NotifyFunc receives one change notification: the channel it arrived on and
// the record identifier carried in the payload.
type NotifyFunc func(channel, payload string)

// ChangeFeed bridges Postgres LISTEN/NOTIFY into an in-process callback.
// It holds one dedicated connection; the read paths subscribe through the
// stream hub fed by this callback.
type ChangeFeed struct {
	db       *pgxpool.Pool
	channels []string
	fn       NotifyFunc
}

// NewChangeFeed creates a feed listening on the given channels.
func NewChangeFeed(db *pgxpool.Pool, channels []string, fn NotifyFunc) *ChangeFeed {
	return &ChangeFeed{db: db, channels: channels, fn: fn}
}

// Run listens until the context is canceled. Connection failures are retried
// with a flat delay; notifications are delivered through the callback.
func (f *ChangeFeed) Run(ctx context.Context) error {
	for {
		if err := f.listenOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
		}
	}
}

func (f *ChangeFeed) listenOnce(ctx context.Context) error {
	conn, err := f.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	for _, ch := range f.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+sanitizeChannel(ch)); err != nil {
			return fmt.Errorf("listen %s: %w", ch, err)
		}
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if f.fn != nil {
			f.fn(n.Channel, n.Payload)
		}
	}
}

// sanitizeChannel keeps only identifier characters; channel names come from
// the package constants, this guards against future call sites.
func sanitizeChannel(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			out = append(out, c)
		}
	}
	return string(out)
}
