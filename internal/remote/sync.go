package remote

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"rabbitcare/internal/game"
)

// Saver is the slice of the game engine the coordinator needs.
type Saver interface {
	Snapshot() game.State
	ReplaceState(game.State)
}

// Coordinator pushes local state to the remote save service on a debounce:
// at most one push per interval, only when something changed, and never two
// pushes in flight at once. Intermediate states between eligible ticks are
// not individually synced; the newest snapshot wins.
type Coordinator struct {
	client   *Client
	engine   Saver
	clock    game.Clock
	interval time.Duration
	logger   *log.Logger

	mu       sync.Mutex
	dirty    bool
	inFlight bool
	lastSync time.Time

	cancel chan struct{}
	done   chan struct{}
}

// CoordinatorOptions configures a Coordinator.
type CoordinatorOptions struct {
	Client   *Client
	Engine   Saver
	Clock    game.Clock
	Interval time.Duration
	Logger   *log.Logger
}

func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Coordinator{
		client:   opts.Client,
		engine:   opts.Engine,
		clock:    opts.Clock,
		interval: opts.Interval,
		logger:   opts.Logger,
	}
}

// Notify marks the state dirty. Wired as the engine's OnChange hook; it
// never blocks and never performs network work itself.
func (c *Coordinator) Notify() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// Reconcile pulls the remote snapshot and replaces the local state when the
// remote save is strictly newer than the last local interaction. Called once
// at startup before the sync loop begins.
func (c *Coordinator) Reconcile(ctx context.Context) bool {
	remote, ok := c.client.Load(ctx)
	if !ok {
		return false
	}

	local := c.engine.Snapshot()
	if remote.LastSaveTime <= local.LastInteraction {
		return false
	}

	c.logger.Info("remote save is newer, replacing local state",
		"remote", remote.LastSaveTime, "local", local.LastInteraction)
	c.engine.ReplaceState(remote)

	// The replace marks us dirty again; the remote copy is already current.
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
	return true
}

// SyncNow pushes the current snapshot immediately if one is due and none is
// in flight. Returns true when a push happened and succeeded.
func (c *Coordinator) SyncNow(ctx context.Context) bool {
	now := c.clock.Now()

	c.mu.Lock()
	if !c.dirty || c.inFlight || now.Sub(c.lastSync) < c.interval {
		c.mu.Unlock()
		return false
	}
	c.inFlight = true
	c.dirty = false
	c.mu.Unlock()

	st := c.engine.Snapshot()
	ok := c.client.Save(ctx, st)

	c.mu.Lock()
	c.inFlight = false
	if ok {
		c.lastSync = now
	} else {
		// Failed push: stay dirty so the next eligible tick retries.
		c.dirty = true
	}
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("remote sync failed, will retry")
	}
	return ok
}

// Flush pushes unconditionally, ignoring the debounce window. Used on
// shutdown so the last session state is not lost.
func (c *Coordinator) Flush(ctx context.Context) bool {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return true
	}
	c.dirty = false
	c.mu.Unlock()

	ok := c.client.Save(ctx, c.engine.Snapshot())
	if !ok {
		c.mu.Lock()
		c.dirty = true
		c.mu.Unlock()
	}
	return ok
}

// Start launches the periodic sync loop. No-op when already running.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	c.cancel = make(chan struct{})
	c.done = make(chan struct{})
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-cancel:
				return
			case <-ticker.C:
				c.SyncNow(ctx)
			}
		}
	}()
}

// Stop tears the sync loop down and waits for it to exit. Idempotent.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	close(cancel)
	<-done
}
