package handlers

import (
	"context"
	"time"

	"transportmarket/internal/domain"
	"transportmarket/internal/service/orders"
	"transportmarket/internal/service/threads"
)

type orderUsecase interface {
	Create(ctx context.Context, in orders.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Transition(ctx context.Context, id string, next domain.OrderStatus) error
	Assign(ctx context.Context, id, courierID string) error
	Dismiss(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
}

type gateUsecase interface {
	SubmitCourierMessage(ctx context.Context, orderID, courierID, text string) (*domain.Message, error)
	SubmitClientMessage(ctx context.Context, orderID, clientID, courierID, text string) (*domain.Message, error)
	SubmitAdminMessage(ctx context.Context, recipientID, adminID, text string) (*domain.Message, error)
	MarkRead(ctx context.Context, messageID, readerID string) error
}

type threadUsecase interface {
	Summarize(ctx context.Context, userID string) ([]threads.Summary, error)
}

type zoneRegistry interface {
	ListZones(ctx context.Context, courierID string) ([]domain.CoverageZone, error)
	AddZone(ctx context.Context, z *domain.CoverageZone) (int64, error)
	DeleteZone(ctx context.Context, courierID string, zoneID int64) (bool, error)
}

type tokenRegistry interface {
	Upsert(ctx context.Context, userID, token string, now time.Time) error
}
