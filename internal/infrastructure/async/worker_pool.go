package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed number of goroutines. Each
// task gets a bounded context so a stuck task cannot wedge a worker past
// the timeout, and panics are contained per task.
type WorkerPool struct {
	tasks   chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	log     *zap.Logger
}

func NewWorkerPool(parent context.Context, size int, timeout time.Duration, log *zap.Logger) *WorkerPool {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:   make(chan Task),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		log:     log,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}

			taskCtx, cancel := context.WithTimeout(p.ctx, p.timeout)
			func() {
				defer func() {
					if r := recover(); r != nil {
						p.log.Error("task panicked", zap.Any("panic", r))
					}
				}()
				task(taskCtx)
			}()
			cancel()
		}
	}
}

func (p *WorkerPool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
		return
	case p.tasks <- task:
	}
}

func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.tasks)
	p.wg.Wait()
}
