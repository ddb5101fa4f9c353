// Package workers provides abstractions for managing and running
// background workers of the sync agent.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations spawn their own goroutines and keep
// them alive until ctx is cancelled or Stop is called. Stop blocks until the
// worker has finished its current unit of work.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go process(ctx)
//	}
//
//	func (w *MyWorker) Stop() {}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
