package dispatch

import (
	"context"
	"sync"
	"time"

	"transportmarket/internal/gateway/push"
	"transportmarket/internal/logx"
)

// Metrics bundles the optional dispatch counters. Nil counters are skipped.
type Metrics struct {
	Sent        counter
	Failed      counter
	Invalidated counter
}

// Dispatcher delivers push notifications best-effort. A recipient without a
// registered token is a logged no-op; a permanently invalid token is deleted
// so future notifications skip the recipient until re-registration; any other
// failure is logged and the token kept. There is no retry, and failures never
// propagate to the flow that triggered the notification.
type Dispatcher struct {
	tokens           tokenRepository
	pusher           pusher
	operationTimeout time.Duration
	logger           logx.Logger
	metrics          Metrics
}

// NewDispatcher creates and configures a Dispatcher.
func NewDispatcher(tokens tokenRepository, p pusher, timeout time.Duration, logger logx.Logger, m Metrics) *Dispatcher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Dispatcher{
		tokens:           tokens,
		pusher:           p,
		operationTimeout: timeout,
		logger:           logger,
		metrics:          m,
	}
}

// Notify delivers one notification to one recipient. It never returns an
// error; every failure mode is handled here.
func (d *Dispatcher) Notify(ctx context.Context, recipientID, title, body string, data map[string]string) {
	ctx, cancel := context.WithTimeout(ctx, d.operationTimeout)
	defer cancel()

	tok, err := d.tokens.Get(ctx, recipientID)
	if err != nil {
		d.count(d.metrics.Failed)
		d.logger.Error("push token lookup failed",
			logx.String("recipient_id", recipientID),
			logx.Any("err", err),
		)
		return
	}
	if tok == nil {
		d.logger.Debug("no push token registered, skipping",
			logx.String("recipient_id", recipientID),
		)
		return
	}

	err = d.pusher.Send(ctx, push.Notification{
		Token: tok.Token,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err == nil {
		d.count(d.metrics.Sent)
		return
	}

	if push.IsInvalidToken(err) {
		// self-healing cleanup: the courier re-registers through the
		// re-engagement flow
		if delErr := d.tokens.Delete(ctx, recipientID); delErr != nil {
			d.logger.Error("stale push token delete failed",
				logx.String("recipient_id", recipientID),
				logx.Any("err", delErr),
			)
		} else {
			d.count(d.metrics.Invalidated)
			d.logger.Info("stale push token deleted",
				logx.String("recipient_id", recipientID),
			)
		}
		return
	}

	d.count(d.metrics.Failed)
	d.logger.Warn("push delivery failed",
		logx.String("recipient_id", recipientID),
		logx.Any("err", err),
	)
}

// Fanout notifies every recipient concurrently and returns once all attempts
// settled. One recipient's failure never blocks or fails the others.
func (d *Dispatcher) Fanout(ctx context.Context, recipientIDs []string, title, body string, data map[string]string) {
	var wg sync.WaitGroup
	for _, id := range recipientIDs {
		wg.Add(1)
		go func(recipientID string) {
			defer wg.Done()
			d.Notify(ctx, recipientID, title, body, data)
		}(id)
	}
	wg.Wait()
}

func (d *Dispatcher) count(c counter) {
	if c != nil {
		c.Inc()
	}
}
