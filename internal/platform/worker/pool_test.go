package worker_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPool_RunsSubmittedTasks(t *testing.T) {
	pool := worker.NewPool(2, 8, discardLogger())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		err := pool.Submit(func(ctx context.Context) {
			ran.Add(1)
		})
		if err != nil {
			t.Fatalf("unexpected submit error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	if got := ran.Load(); got != 5 {
		t.Errorf("expected 5 tasks to run, got %d", got)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := worker.NewPool(1, 1, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	if err := pool.Submit(func(ctx context.Context) {}); err == nil {
		t.Error("expected Submit to fail after shutdown")
	}
}

func TestPool_RecoverFromPanic(t *testing.T) {
	pool := worker.NewPool(1, 2, discardLogger())

	var ran atomic.Bool
	pool.Submit(func(ctx context.Context) {
		panic("task exploded")
	})
	pool.Submit(func(ctx context.Context) {
		ran.Store(true)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	if !ran.Load() {
		t.Error("expected the worker to survive a panicking task")
	}
}
