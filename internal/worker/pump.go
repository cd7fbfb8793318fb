// Package worker runs webhook work off the request path. The platform
// redelivers events that are not acked within a few seconds, so
// handlers ack immediately and hand the real work to the pump.
package worker

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/fomo-ops/fomobot/internal/config"
)

// Job is one unit of webhook work. The context passed in is the
// pump's run context, not the originating request's: the request is
// long acked by the time a job runs.
type Job func(ctx context.Context)

// Pump fans jobs out to a fixed pool of workers over a bounded queue.
// When the queue is full new jobs are dropped; the platform will
// redeliver the event.
type Pump struct {
	jobs   chan Job
	count  int
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewPump(cfg config.WorkerConfig, logger *slog.Logger) *Pump {
	return &Pump{
		jobs:   make(chan Job, cfg.QueueSize),
		count:  cfg.Count,
		logger: logger,
	}
}

// Start launches the workers and blocks until ctx is canceled and any
// in-flight jobs have finished. Jobs still queued at cancellation are
// dropped.
func (p *Pump) Start(ctx context.Context) {
	p.logger.Info("event pump started", "workers", p.count, "queue_size", cap(p.jobs))

	p.wg.Add(p.count)
	for i := 0; i < p.count; i++ {
		go p.run(ctx, i)
	}

	p.wg.Wait()
	p.logger.Info("event pump stopped")
}

func (p *Pump) run(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("pump worker stopping", "worker", id)
			return
		case job := <-p.jobs:
			p.invoke(ctx, job)
		}
	}
}

// invoke shields the pool from panicking jobs.
func (p *Pump) invoke(ctx context.Context, job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("job panicked",
				"panic", rec,
				"stack", string(debug.Stack()),
			)
		}
	}()

	job(ctx)
}

// Enqueue hands a job to the pool without blocking. It reports false
// when the queue is full.
func (p *Pump) Enqueue(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		p.logger.Warn("job queue full, dropping job")
		return false
	}
}
