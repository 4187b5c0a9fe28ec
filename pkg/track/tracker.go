// Package track implements the object identity tracker: a periodic loop
// that polls the pointer, resolves the UI object beneath it, and turns
// identity changes into synthetic enter/leave events for the dispatch
// core.
package track

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/handler"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// Dispatcher is the routing surface the tracker feeds. The handler
// registry satisfies it.
type Dispatcher interface {
	HandleObjectEvent(ctx *effect.Context, event string, obj ui.Object, params effect.Params)
	GlobalTick(ctx *effect.Context, state filter.GlobalState)
}

// DefaultPeriod balances responsiveness against CPU cost; it bounds
// transition latency, not correctness.
const DefaultPeriod = 10 * time.Millisecond

// Config tunes the tracker loop.
type Config struct {
	Period time.Duration
}

// Tracker polls pointer position and object identity. It is the only
// writer of the position and current-object fields; each has its own
// lock, and no lock is ever held across a resolver call or an event
// dispatch.
type Tracker struct {
	cfg      Config
	pointer  ui.PointerSource
	resolver ui.PointResolver
	screen   ui.ScreenInfo
	dispatch Dispatcher
	effects  *effect.Context
	log      *slog.Logger

	posMu sync.Mutex
	pos   ui.Point

	objMu    sync.Mutex
	identity ui.Identity
	object   ui.Object
}

// New creates a tracker. effects is the context handed to every fired
// effect.
func New(cfg Config, pointer ui.PointerSource, resolver ui.PointResolver, screen ui.ScreenInfo, dispatch Dispatcher, effects *effect.Context, logger *slog.Logger) *Tracker {
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		cfg:      cfg,
		pointer:  pointer,
		resolver: resolver,
		screen:   screen,
		dispatch: dispatch,
		effects:  effects,
		log:      logger,
	}
}

// Position returns the last sampled pointer position.
func (t *Tracker) Position() ui.Point {
	t.posMu.Lock()
	defer t.posMu.Unlock()
	return t.pos
}

// Current returns the identity and object under the pointer as of the
// last poll. The identity is zero when no object is resolved.
func (t *Tracker) Current() (ui.Identity, ui.Object) {
	t.objMu.Lock()
	defer t.objMu.Unlock()
	return t.identity, t.object
}

// PointerPosition implements filter.GlobalState.
func (t *Tracker) PointerPosition() ui.Point { return t.Position() }

// ScreenSize implements filter.GlobalState.
func (t *Tracker) ScreenSize() (int, int) { return t.screen.Size() }

// Run executes the tracking loop until ctx is cancelled. The loop exits
// within one period of cancellation.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Cycle()
		}
	}
}

// Cycle performs one poll: sample position, resolve the object beneath
// it, emit leave/enter on identity change, then run the global tick.
func (t *Tracker) Cycle() {
	pos, err := t.pointer.Position()
	if err != nil {
		// Pointer unreadable this cycle; keep the last position and
		// still give global handlers their tick.
		t.log.Debug("pointer sample failed", "err", err)
		t.dispatch.GlobalTick(t.effects, t)
		return
	}

	t.posMu.Lock()
	t.pos = pos
	t.posMu.Unlock()

	// Resolution failure or no addressable object both read as
	// Unoccupied: a leave fires with no matching enter until a real
	// object resolves.
	obj, err := t.resolver.ObjectAt(pos.X, pos.Y)
	if err != nil {
		t.log.Debug("object resolution failed", "err", err)
		obj = nil
	}
	// Dispatch through a snapshot so the later leave still carries the
	// identity the element had when it was entered, even if the host
	// destroys it mid-hover.
	snap := ui.NewSnapshot(obj)
	newID := ui.IdentityOf(snap)

	t.objMu.Lock()
	prevID := t.identity
	prevObj := t.object
	t.objMu.Unlock()

	if newID != prevID {
		// Leave strictly before enter so two handlers are never
		// simultaneously entered across a transition.
		if !prevID.IsZero() {
			t.dispatch.HandleObjectEvent(t.effects, handler.EventLeave, prevObj, nil)
		}
		if !newID.IsZero() {
			t.dispatch.HandleObjectEvent(t.effects, handler.EventEnter, snap, nil)
		}

		t.objMu.Lock()
		t.identity = newID
		t.object = snap
		t.objMu.Unlock()
	}

	t.dispatch.GlobalTick(t.effects, t)
}
