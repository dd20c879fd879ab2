package workers

import (
	"context"
	"sync"
)

// Workers tracks the running workers of a client session.
type Workers struct {
	mu      sync.Mutex
	workers []Worker
}

func NewWorkers() *Workers {
	return &Workers{}
}

// Go starts w and keeps it until StopAll.
func (w *Workers) Go(ctx context.Context, worker Worker) {
	worker.Start(ctx)

	w.mu.Lock()
	w.workers = append(w.workers, worker)
	w.mu.Unlock()
}

// StopAll stops every tracked worker in start order and forgets them.
func (w *Workers) StopAll() {
	w.mu.Lock()
	running := w.workers
	w.workers = nil
	w.mu.Unlock()

	for _, worker := range running {
		worker.Stop()
	}
}

// Len returns the number of tracked workers.
func (w *Workers) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.workers)
}
