package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"transportmarket/internal/config"
	"transportmarket/internal/http/pprofserver"
	"transportmarket/internal/jobs"
	"transportmarket/internal/logx"
	"transportmarket/internal/repository"
	"transportmarket/internal/transport/kafka"
)

// MustRun starts the HTTP server and background components using the
// provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		server *http.Server,
		ctx context.Context,
		cfg *config.Config,
		pool *pgxpool.Pool,
		logger logx.Logger,
		sink *AsyncSink,
		producer *kafka.Producer,
		sweeper *jobs.Sweeper,
		feed *repository.ChangeFeed,
	) error {
		sink.Start(ctx)
		if err := sweeper.Start(); err != nil {
			return err
		}
		go runChangeFeed(ctx, feed, logger)
		startPprof(cfg.Pprof, logger)
		startServer(server, logger)

		waitForShutdown(ctx, logger)
		gracefulShutdown(server, logger, 15*time.Second)
		sweeper.Stop()
		sink.Stop()
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", logx.Any("err", err))
		}
		closeResources(pool, server, logger)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("service-market listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprof(cfg config.Pprof, logger logx.Logger) {
	if cfg.Addr == "" {
		return
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", cfg.Addr))
		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.User, Pass: cfg.Pass}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Any("err", err))
		}
	}()
}

func runChangeFeed(ctx context.Context, feed *repository.ChangeFeed, logger logx.Logger) {
	if err := feed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("change feed stopped", logx.Any("err", err))
	}
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-market")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(pool *pgxpool.Pool, server *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Any("err", err))
	}
	pool.Close()
}
