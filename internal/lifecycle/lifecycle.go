// Package lifecycle coordinates application startup and shutdown across
// subsystems.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether startup has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks startup hooks, shutdown hooks, and a root context that
// is cancelled when shutdown begins.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	ready    atomic.Bool
	startup  []func()
	shutdown sync.WaitGroup
	mu       sync.Mutex
}

// New creates a Coordinator with an active root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the root context. It is cancelled when Shutdown is called.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether WaitForStartup has completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a function to run during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// OnShutdown launches fn in a goroutine tracked by Shutdown. Shutdown
// functions should block on Context().Done() before cleaning up.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Add(1)
	go func() {
		defer c.shutdown.Done()
		fn()
	}()
}

// WaitForStartup runs all registered startup functions concurrently, waits
// for them to complete, and marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	startup := c.startup
	c.startup = nil
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, fn := range startup {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()

	c.ready.Store(true)
}

// Shutdown cancels the root context and waits for all shutdown functions to
// finish, returning an error if they do not complete within timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
