// Package swarm runs extraction and comparison tasks on a bounded
// worker pool. Page extraction is CPU-bound and local, so the pool size
// is fixed up front instead of adapting to feedback.
package swarm

import (
	"context"
	"sync"
)

// Task represents a unit of work for the pool.
type Task func(ctx context.Context) error

// Engine manages the worker pool.
type Engine struct {
	workers  int
	tasks    chan Task
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	stats Stats
}

// Stats holds runtime statistics for the engine.
type Stats struct {
	ActiveWorkers  int
	Workers        int
	TasksCompleted int64
	TasksFailed    int64
}

// NewEngine creates a pool with the given number of workers. Sizes
// below one are clamped to one.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		workers: workers,
		tasks:   make(chan Task, 256),
		quit:    make(chan struct{}),
	}
}

// Start spawns the workers.
func (e *Engine) Start(ctx context.Context) {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(ctx)
	}
}

// Submit adds a task to the queue. Blocks when the queue is full.
func (e *Engine) Submit(t Task) {
	e.tasks <- t
}

// Stop closes the queue and waits for in-flight tasks to finish.
// Submit must not be called after Stop. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.quit) })
	e.wg.Wait()
}

// GetStats returns a snapshot of the pool counters.
func (e *Engine) GetStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.Workers = e.workers
	return s
}

func (e *Engine) worker(ctx context.Context) {
	e.mu.Lock()
	e.stats.ActiveWorkers++
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.stats.ActiveWorkers--
		e.mu.Unlock()
		e.wg.Done()
	}()

	// Workers keep consuming until Stop so every submitted task runs
	// exactly once. Cancellation is observed by the tasks themselves,
	// which fail fast on a done context.
	for {
		select {
		case <-e.quit:
			// Drain what is already queued before exiting.
			for {
				select {
				case task := <-e.tasks:
					e.run(ctx, task)
				default:
					return
				}
			}
		case task := <-e.tasks:
			e.run(ctx, task)
		}
	}
}

func (e *Engine) run(ctx context.Context, task Task) {
	err := task(ctx)

	e.mu.Lock()
	e.stats.TasksCompleted++
	if err != nil {
		e.stats.TasksFailed++
	}
	e.mu.Unlock()
}
