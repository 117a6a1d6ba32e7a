package swarm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestEngineRunsAllTasks(t *testing.T) {
	e := NewEngine(4)
	e.Start(context.Background())

	var ran int64
	for i := 0; i < 100; i++ {
		e.Submit(func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}
	e.Stop()

	if got := atomic.LoadInt64(&ran); got != 100 {
		t.Fatalf("ran %d tasks, want 100", got)
	}
	stats := e.GetStats()
	if stats.TasksCompleted != 100 {
		t.Errorf("TasksCompleted = %d, want 100", stats.TasksCompleted)
	}
	if stats.TasksFailed != 0 {
		t.Errorf("TasksFailed = %d, want 0", stats.TasksFailed)
	}
	if stats.ActiveWorkers != 0 {
		t.Errorf("ActiveWorkers = %d after Stop, want 0", stats.ActiveWorkers)
	}
}

func TestEngineCountsFailures(t *testing.T) {
	e := NewEngine(2)
	e.Start(context.Background())

	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		e.Submit(func(ctx context.Context) error {
			if i%2 == 0 {
				return boom
			}
			return nil
		})
	}
	e.Stop()

	stats := e.GetStats()
	if stats.TasksCompleted != 10 {
		t.Errorf("TasksCompleted = %d, want 10", stats.TasksCompleted)
	}
	if stats.TasksFailed != 5 {
		t.Errorf("TasksFailed = %d, want 5", stats.TasksFailed)
	}
}

func TestCancelledContextStillRunsQueuedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewEngine(2)
	e.Start(ctx)
	cancel()

	var ran int64
	for i := 0; i < 50; i++ {
		e.Submit(func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return ctx.Err()
		})
	}
	e.Stop()

	if got := atomic.LoadInt64(&ran); got != 50 {
		t.Fatalf("ran %d tasks, want all 50 despite cancellation", got)
	}
	if stats := e.GetStats(); stats.TasksFailed != 50 {
		t.Errorf("TasksFailed = %d, want 50", stats.TasksFailed)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	e := NewEngine(2)
	e.Start(context.Background())
	e.Stop()
	e.Stop()
}

func TestEngineClampsWorkerCount(t *testing.T) {
	e := NewEngine(0)
	if e.workers != 1 {
		t.Fatalf("workers = %d, want 1", e.workers)
	}
}
