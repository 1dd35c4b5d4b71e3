// Package worker provides a bounded background task pool.
// Tasks submitted here run decoupled from the HTTP request that spawned
// them: the caller returns immediately and the task settles on its own.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of background work. Tasks receive the pool's base
// context, not the context of the request that submitted them.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed number of goroutines fed by a bounded queue.
type Pool struct {
	tasks  chan Task
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewPool creates a pool with the given number of workers and queue capacity.
func NewPool(workers, queueSize int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	p := &Pool{
		tasks:  make(chan Task, queueSize),
		group:  group,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}

	for i := 0; i < workers; i++ {
		group.Go(p.run)
	}

	return p
}

func (p *Pool) run() error {
	for task := range p.tasks {
		p.execute(task)
	}
	return nil
}

// execute runs a single task, converting panics into logged errors so a
// misbehaving task never takes down the worker goroutine.
func (p *Pool) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("background task panicked", slog.Any("panic", r))
		}
	}()
	task(p.ctx)
}

// Submit queues a task for execution. Blocks while the queue is full;
// returns an error once the pool has been shut down.
func (p *Pool) Submit(task Task) error {
	select {
	case <-p.ctx.Done():
		return fmt.Errorf("worker pool is shut down")
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops accepting work and waits for queued tasks to drain, or
// for ctx to expire. Tasks still running when ctx expires are abandoned.
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.tasks)

	done := make(chan error, 1)
	go func() {
		done <- p.group.Wait()
	}()

	select {
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	case err := <-done:
		p.cancel()
		return err
	}
}
