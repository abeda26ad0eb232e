package hub

import (
	"context"
	"errors"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/session"
	"github.com/blockvale/classic/world"
)

// tickInterval is the fixed 50ms period spec.md section 4.D mandates.
const tickInterval = 50 * time.Millisecond

// Run starts the accept loop and the tick scheduler as one cancellable
// group (spec.md section 5's "accept task" + "ticker task"), grounded on
// the teacher's ticker.tickLoop (server/world/tick.go) generalized from a
// per-World goroutine to these two top-level tasks. Run blocks until ctx is
// canceled, the listener fails, or the stop flag is observed by the ticker.
func (h *Hub) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return h.acceptLoop(gctx, ln) })
	group.Go(func() error {
		err := h.tickLoop(gctx)
		// Closing the listener ends acceptLoop too, so Run returns once the
		// ticker has observed the stop flag.
		ln.Close()
		return err
	})

	go func() {
		<-gctx.Done()
		ln.Close()
	}()

	err = group.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (h *Hub) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go session.Run(ctx, nc, h, h.Log)
	}
}

func (h *Hub) tickLoop(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.tickCount++
			if h.runTick() {
				return nil
			}
		}
	}
}

// runTick executes spec.md section 4.F's tick-scheduler body under the
// lock, returning true if the server should stop.
func (h *Hub) runTick() (stop bool) {
	h.Lock()
	defer h.Unlock()

	packets := world.Tick(h.World, h.tickCount)
	h.BroadcastMany(packets)

	h.maybeSave()

	if h.stop {
		h.Broadcast(protocol.DisconnectPlayer{Reason: "Server is stopping!"})
		return true
	}
	return false
}

// maybeSave persists the world asynchronously when requested or when the
// configured auto-save interval has elapsed, collapsing concurrent saves
// with singleflight the way SPEC_FULL.md's DOMAIN STACK table assigns it.
func (h *Hub) maybeSave() {
	due := h.saveNow
	if h.Config.AutoSaveMinutes > 0 && time.Since(h.lastAutoSave) >= time.Duration(h.Config.AutoSaveMinutes)*time.Minute {
		due = true
	}
	if !due || h.Store == nil {
		return
	}
	h.saveNow = false
	h.lastAutoSave = time.Now()

	snapshot := h.World.Snapshot()
	go func() {
		_, err, _ := h.saveGroup.Do(h.LevelPath, func() (any, error) {
			return nil, h.Store.Save(snapshot, h.LevelPath)
		})
		if err != nil {
			h.Log.Error("world save failed", "err", err)
		}
	}()
}
