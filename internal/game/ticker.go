package game

import (
	"context"
	"time"
)

// Start launches the background decay ticker. It runs until ctx is canceled
// or Stop is called. Calling Start on a running engine is a no-op.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.tickCancel != nil {
		e.mu.Unlock()
		return
	}
	cancel := make(chan struct{})
	done := make(chan struct{})
	e.tickCancel = cancel
	e.tickDone = done
	interval := e.tune.DecayInterval()
	e.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-cancel:
				return
			case <-ticker.C:
				e.DecayTick()
			}
		}
	}()
}

// Stop tears the decay ticker down and waits for it to exit. Safe to call
// more than once or on a never-started engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.tickCancel
	done := e.tickDone
	e.tickCancel = nil
	e.tickDone = nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	close(cancel)
	<-done
}
