//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"transportmarket/internal/apperr"
	"transportmarket/internal/domain"
	"transportmarket/internal/repository"
)

type MessageRepositorySuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *repository.MessageRepo
}

func (s *MessageRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewMessageRepo(tcPool)
}

func (s *MessageRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE messages`)
	s.Require().NoError(err)
}

func (s *MessageRepositorySuite) insert(id, orderID, clientID, courierID, senderID string, role domain.SenderRole, at time.Time) {
	s.Require().NoError(s.repo.Insert(context.Background(), &domain.Message{
		ID:         id,
		OrderID:    orderID,
		ClientID:   clientID,
		CourierID:  courierID,
		SenderID:   senderID,
		SenderRole: role,
		Body:       "body of " + id,
		CreatedAt:  at,
	}))
}

func (s *MessageRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	s.insert("msg-1", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, at)

	got, err := s.repo.Get(ctx, "msg-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal("order-1", got.OrderID)
	s.Equal("client-1", got.ClientID)
	s.Equal("courier-1", got.CourierID)
	s.Equal("courier-1", got.SenderID)
	s.Equal(domain.RoleCourier, got.SenderRole)
	s.Equal("body of msg-1", got.Body)
	s.False(got.Read)
	s.WithinDuration(at, got.CreatedAt, time.Second)
}

func (s *MessageRepositorySuite) TestInsert_Duplicate() {
	at := time.Now().UTC()
	s.insert("msg-1", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, at)

	err := s.repo.Insert(context.Background(), &domain.Message{
		ID: "msg-1", OrderID: "order-1", ClientID: "client-1",
		CourierID: "courier-1", SenderID: "courier-1",
		SenderRole: domain.RoleCourier, Body: "again", CreatedAt: at,
	})
	s.ErrorIs(err, apperr.ErrConflict)
}

func (s *MessageRepositorySuite) TestGetNotFound() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Require().Nil(got)
}

func (s *MessageRepositorySuite) TestDistinctCourierSenders() {
	ctx := context.Background()
	at := time.Now().UTC()

	// two couriers, one of them twice, plus a client reply
	s.insert("msg-1", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, at)
	s.insert("msg-2", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, at.Add(time.Second))
	s.insert("msg-3", "order-1", "client-1", "courier-2", "courier-2", domain.RoleCourier, at.Add(2*time.Second))
	s.insert("msg-4", "order-1", "client-1", "courier-1", "client-1", domain.RoleClient, at.Add(3*time.Second))
	s.insert("msg-5", "order-2", "client-1", "courier-3", "courier-3", domain.RoleCourier, at)

	n, err := s.repo.DistinctCourierSenders(ctx, "order-1")
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *MessageRepositorySuite) TestCourierHasMessaged() {
	ctx := context.Background()
	at := time.Now().UTC()

	s.insert("msg-1", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, at)
	s.insert("msg-2", "order-1", "client-1", "courier-2", "client-1", domain.RoleClient, at)

	has, err := s.repo.CourierHasMessaged(ctx, "order-1", "courier-1")
	s.Require().NoError(err)
	s.True(has)

	has, err = s.repo.CourierHasMessaged(ctx, "order-1", "courier-2")
	s.Require().NoError(err)
	s.False(has, "a client message must not count as the courier's offer")
}

func (s *MessageRepositorySuite) TestListByParticipant() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	s.insert("msg-2", "order-1", "client-1", "courier-1", "client-1", domain.RoleClient, at.Add(time.Second))
	s.insert("msg-1", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, at)
	s.insert("msg-3", "", "client-1", "", "admin-1", domain.RoleAdmin, at.Add(2*time.Second))
	s.insert("msg-4", "order-2", "client-2", "courier-2", "courier-2", domain.RoleCourier, at)

	list, err := s.repo.ListByParticipant(ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(list, 3)

	var ids []string
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	s.Equal([]string{"msg-1", "msg-2", "msg-3"}, ids, "oldest first")
}

func (s *MessageRepositorySuite) TestMarkRead() {
	ctx := context.Background()
	s.insert("msg-1", "order-1", "client-1", "courier-1", "courier-1", domain.RoleCourier, time.Now().UTC())

	ok, err := s.repo.MarkRead(ctx, "msg-1", "courier-1")
	s.Require().NoError(err)
	s.False(ok, "the sender must not mark their own message read")

	ok, err = s.repo.MarkRead(ctx, "msg-1", "client-2")
	s.Require().NoError(err)
	s.False(ok, "an outsider must not mark the message read")

	ok, err = s.repo.MarkRead(ctx, "msg-1", "client-1")
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, "msg-1")
	s.Require().NoError(err)
	s.True(got.Read)
}

func (s *MessageRepositorySuite) TestListByParticipant_ManyRows() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 5; i++ {
		s.insert(fmt.Sprintf("msg-%d", i), "order-1", "client-1", "courier-1",
			"courier-1", domain.RoleCourier, at.Add(time.Duration(i)*time.Second))
	}

	list, err := s.repo.ListByParticipant(ctx, "courier-1")
	s.Require().NoError(err)
	s.Len(list, 5)
}

func TestMessageRepositorySuite(t *testing.T) {
	suite.Run(t, new(MessageRepositorySuite))
}
