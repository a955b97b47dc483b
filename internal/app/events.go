package app

import (
	"context"
	"sync"

	"transportmarket/internal/logx"
	"transportmarket/internal/service/orders"
)

// AsyncSink decouples record creation from the notification pipeline inside
// one process: Emit enqueues and returns immediately, a single worker
// goroutine drains into the processor. When the buffer is full the event is
// dropped rather than blocking the creating request; the pipeline is
// best-effort end to end.
type AsyncSink struct {
	ch        chan orders.Event
	processor *orders.Processor
	logger    logx.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

const defaultSinkBuffer = 256

// NewAsyncSink creates a sink feeding the given processor.
func NewAsyncSink(p *orders.Processor, logger logx.Logger) *AsyncSink {
	return &AsyncSink{
		ch:        make(chan orders.Event, defaultSinkBuffer),
		processor: p,
		logger:    logger.With(logx.String("component", "event_sink")),
		done:      make(chan struct{}),
	}
}

// Start launches the drain loop. Safe to call once; events emitted before
// Start sit in the buffer.
func (s *AsyncSink) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.loop(ctx)
	})
}

// Emit enqueues an event without blocking the caller.
func (s *AsyncSink) Emit(_ context.Context, e orders.Event) {
	select {
	case s.ch <- e:
	default:
		s.logger.Warn("event dropped, sink buffer full",
			logx.String("type", e.Type),
			logx.String("order_id", e.OrderID),
		)
	}
}

// Stop waits for the drain loop to exit. Pending events are processed only if
// the loop context is still live; call cancel after Stop for a hard exit.
func (s *AsyncSink) Stop() {
	s.stopOnce.Do(func() { close(s.ch) })
	<-s.done
}

func (s *AsyncSink) loop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-s.ch:
			if !ok {
				return
			}
			if err := s.processor.Handle(ctx, e); err != nil {
				s.logger.Error("event processing failed",
					logx.String("type", e.Type),
					logx.String("order_id", e.OrderID),
					logx.Any("err", err),
				)
			}
		}
	}
}
