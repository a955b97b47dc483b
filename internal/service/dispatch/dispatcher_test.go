package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transportmarket/internal/domain"
	"transportmarket/internal/gateway/push"
	"transportmarket/internal/service/dispatch"
	testlog "transportmarket/internal/testutil"
)

type stubTokens struct {
	mu      sync.Mutex
	tokens  map[string]string
	getErr  error
	deleted []string
}

func (s *stubTokens) Get(_ context.Context, userID string) (*domain.DeviceToken, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[userID]
	if !ok {
		return nil, nil
	}
	return &domain.DeviceToken{UserID: userID, Token: tok}, nil
}

func (s *stubTokens) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, userID)
	delete(s.tokens, userID)
	return nil
}

type stubPusher struct {
	mu   sync.Mutex
	sent []push.Notification
	fn   func(push.Notification) error
}

func (s *stubPusher) Send(_ context.Context, n push.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn != nil {
		if err := s.fn(n); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, n)
	return nil
}

type countingCounter struct {
	mu sync.Mutex
	n  int
}

func (c *countingCounter) Inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingCounter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newDispatcher(tokens *stubTokens, p *stubPusher, m dispatch.Metrics) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(tokens, p, time.Second, testlog.New().Logger(), m)
}

func TestDispatcher_Notify_Delivers(t *testing.T) {
	t.Parallel()

	tokens := &stubTokens{tokens: map[string]string{"courier-1": "tok-1"}}
	pusher := &stubPusher{}
	sent := &countingCounter{}

	d := newDispatcher(tokens, pusher, dispatch.Metrics{Sent: sent})
	d.Notify(context.Background(), "courier-1", "title", "body", map[string]string{"k": "v"})

	require.Len(t, pusher.sent, 1)
	require.Equal(t, "tok-1", pusher.sent[0].Token)
	require.Equal(t, 1, sent.value())
}

func TestDispatcher_Notify_NoTokenIsNoop(t *testing.T) {
	t.Parallel()

	tokens := &stubTokens{tokens: map[string]string{}}
	pusher := &stubPusher{}
	failed := &countingCounter{}

	d := newDispatcher(tokens, pusher, dispatch.Metrics{Failed: failed})
	d.Notify(context.Background(), "courier-1", "title", "body", nil)

	require.Empty(t, pusher.sent)
	require.Zero(t, failed.value())
}

func TestDispatcher_Notify_InvalidTokenDeletesRecord(t *testing.T) {
	t.Parallel()

	tokens := &stubTokens{tokens: map[string]string{"courier-1": "stale"}}
	pusher := &stubPusher{fn: func(push.Notification) error {
		return push.ErrInvalidToken
	}}
	invalidated := &countingCounter{}

	d := newDispatcher(tokens, pusher, dispatch.Metrics{Invalidated: invalidated})
	d.Notify(context.Background(), "courier-1", "title", "body", nil)

	require.Equal(t, []string{"courier-1"}, tokens.deleted)
	require.Equal(t, 1, invalidated.value())

	// subsequent notification is a silent skip until re-registration
	d.Notify(context.Background(), "courier-1", "title", "body", nil)
	require.Len(t, tokens.deleted, 1)
}

func TestDispatcher_Notify_TransientFailureKeepsToken(t *testing.T) {
	t.Parallel()

	tokens := &stubTokens{tokens: map[string]string{"courier-1": "tok-1"}}
	pusher := &stubPusher{fn: func(push.Notification) error {
		return errors.New("503 from push service")
	}}
	failed := &countingCounter{}

	d := newDispatcher(tokens, pusher, dispatch.Metrics{Failed: failed})
	d.Notify(context.Background(), "courier-1", "title", "body", nil)

	require.Empty(t, tokens.deleted)
	require.Equal(t, 1, failed.value())
}

func TestDispatcher_Fanout_SiblingIsolation(t *testing.T) {
	t.Parallel()

	tokens := &stubTokens{tokens: map[string]string{
		"c1": "tok-1",
		"c2": "bad",
		"c3": "tok-3",
	}}
	pusher := &stubPusher{fn: func(n push.Notification) error {
		if n.Token == "bad" {
			return push.ErrInvalidToken
		}
		return nil
	}}
	sent := &countingCounter{}

	d := newDispatcher(tokens, pusher, dispatch.Metrics{Sent: sent})
	d.Fanout(context.Background(), []string{"c1", "c2", "c3"}, "title", "body", nil)

	require.Equal(t, 2, sent.value())
	require.Equal(t, []string{"c2"}, tokens.deleted)
}
