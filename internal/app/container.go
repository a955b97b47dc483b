package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"transportmarket/internal/config"
	"transportmarket/internal/gateway/push"
	"transportmarket/internal/http/handlers"
	"transportmarket/internal/http/middleware/ratelimit"
	"transportmarket/internal/http/router"
	"transportmarket/internal/jobs"
	"transportmarket/internal/logx"
	"transportmarket/internal/repository"
	"transportmarket/internal/service/dispatch"
	"transportmarket/internal/service/gate"
	"transportmarket/internal/service/matching"
	"transportmarket/internal/service/orders"
	"transportmarket/internal/service/threads"
	"transportmarket/internal/stream"
	"transportmarket/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		newMetricsSet,
		func() *stream.Hub { return stream.NewHub(0) },
		func(cfg *config.Config) time.Duration { return cfg.OperationTimeout },
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewCourierRepo,
		repository.NewMessageRepo,
		repository.NewTokenRepo,
		repository.NewCoverageRepo,
		func(cfg *config.Config) *push.Client {
			return push.NewClient(cfg.Push.BaseURL, cfg.Push.APIKey, cfg.Push.Timeout)
		},
		func(repo *repository.CoverageRepo, timeout time.Duration) *matching.Matcher {
			return matching.NewMatcher(repo, timeout)
		},
		func(tokens *repository.TokenRepo, client *push.Client, timeout time.Duration, logger logx.Logger, m *metricsSet) *dispatch.Dispatcher {
			return dispatch.NewDispatcher(tokens, client, timeout, logger, dispatch.Metrics{
				Sent:        m.NotificationsSent,
				Failed:      m.NotificationsFail,
				Invalidated: m.TokensInvalidated,
			})
		},
		func(
			ordersRepo *repository.OrderRepo,
			messages *repository.MessageRepo,
			matcher *matching.Matcher,
			dispatcher *dispatch.Dispatcher,
			logger logx.Logger,
			m *metricsSet,
		) *orders.Processor {
			return orders.NewProcessor(ordersRepo, messages, matcher, dispatcher, logger, m.MatchedCouriers)
		},
		NewAsyncSink,
		newEventSink,
		func(repo *repository.OrderRepo, sink orders.EventSink, timeout time.Duration, logger logx.Logger) *orders.Service {
			return orders.NewService(repo, sink, timeout, logger)
		},
		func(
			ordersRepo *repository.OrderRepo,
			profiles *repository.CourierRepo,
			messages *repository.MessageRepo,
			sink orders.EventSink,
			timeout time.Duration,
			logger logx.Logger,
			m *metricsSet,
		) *gate.Service {
			return gate.NewService(ordersRepo, profiles, messages, sink, timeout, logger, m.GateRejections)
		},
		func(messages *repository.MessageRepo, timeout time.Duration) *threads.Aggregator {
			return threads.NewAggregator(messages, timeout)
		},
		func(repo *repository.OrderRepo, cfg *config.Config, logger logx.Logger, m *metricsSet) *jobs.Sweeper {
			return jobs.NewSweeper(repo, cfg.Retention.Days, cfg.Retention.SweepSchedule, logger, m.ArchivedPurged)
		},
		newChangeFeed,
	)
}

// newEventSink picks the producer side of the event pipeline. With Kafka
// configured, creation events go to the topic the worker consumes; otherwise
// they drain through the in-process sink. The returned producer is nil in
// the in-process case; the runner closes it when present.
func newEventSink(cfg *config.Config, async *AsyncSink) (orders.EventSink, *kafka.Producer, error) {
	p, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return async, nil, nil
	}
	return p, p, nil
}

// streamTopic maps a Postgres notification channel onto a hub topic.
func streamTopic(channel string) string {
	switch channel {
	case repository.ChannelOrders:
		return "orders"
	case repository.ChannelMessages:
		return "messages"
	default:
		return ""
	}
}

func newChangeFeed(pool *pgxpool.Pool, hub *stream.Hub) *repository.ChangeFeed {
	channels := []string{repository.ChannelOrders, repository.ChannelMessages}
	return repository.NewChangeFeed(pool, channels, func(channel, payload string) {
		if topic := streamTopic(channel); topic != "" {
			hub.Publish(topic, payload)
		}
	})
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(uc *orders.Service, logger logx.Logger) *handlers.OrderHandler {
			return handlers.NewOrderHandler(uc, logger)
		},
		func(uc *gate.Service, logger logx.Logger) *handlers.MessageHandler {
			return handlers.NewMessageHandler(uc, logger)
		},
		func(uc *threads.Aggregator, logger logx.Logger) *handlers.ThreadHandler {
			return handlers.NewThreadHandler(uc, logger)
		},
		func(zones *repository.CoverageRepo, tokens *repository.TokenRepo, logger logx.Logger) *handlers.CourierHandler {
			return handlers.NewCourierHandler(zones, tokens, logger)
		},
		handlers.NewStreamHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(
			logger logx.Logger,
			base *handlers.Handlers,
			ordersH *handlers.OrderHandler,
			messagesH *handlers.MessageHandler,
			threadsH *handlers.ThreadHandler,
			couriersH *handlers.CourierHandler,
			streamsH *handlers.StreamHandler,
			rl *ratelimit.Middleware,
		) http.Handler {
			return router.New(router.Deps{
				Logger:    logger,
				Base:      base,
				Orders:    ordersH,
				Messages:  messagesH,
				Threads:   threadsH,
				Couriers:  couriersH,
				Streams:   streamsH,
				RateLimit: rl,
			})
		},
		serverProvider,
	)
}
