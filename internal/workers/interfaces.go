// Package workers provides abstractions for managing and running
// background workers in the client.
// It defines the Worker interface and a Workers aggregate that stops every
// registered worker in one call when the session ends.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker's goroutine and returns immediately; the worker
// exits when ctx is cancelled or Stop is called. Stop blocks until the
// goroutine has exited and is a no-op on an idle worker.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc; wg sync.WaitGroup }
//
//	func (w *MyWorker) Start(ctx context.Context) { /* go loop(ctx) */ }
//	func (w *MyWorker) Stop()                     { w.cancel(); w.wg.Wait() }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
