package async

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rosterservice/internal/domain"
)

// AsyncEventBus drains domain events onto a worker pool so publishers
// never block on event delivery.
type AsyncEventBus struct {
	pool *WorkerPool
	log  *zap.Logger
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		pool: NewWorkerPool(ctx, poolSize, 2*time.Second, log),
		log:  log,
	}
}

func (b *AsyncEventBus) Publish(ctx context.Context, e domain.Event) {
	b.pool.Submit(func(_ context.Context) {
		b.log.Info("domain_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
	})
}

func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
