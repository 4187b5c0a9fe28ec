// Package handler owns the event handling object model: object and
// global handlers pairing a filter with event-to-effect bindings, and
// the registry that routes live events through them.
package handler

import (
	"github.com/google/uuid"

	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// EventHandler is the capability the registry routes object events
// through. GraphicHandler wraps ObjectHandler to hook enter/leave.
type EventHandler interface {
	// ID identifies the handler, used to key capture region ownership.
	ID() uuid.UUID

	// Matches evaluates the handler's filter against the subject.
	Matches(obj ui.Object) bool

	// HandleEvent applies the effect bound to event, if any. Unbound
	// events are a silent no-op. Effect failures are logged, never
	// propagated.
	HandleEvent(ctx *effect.Context, event string, obj ui.Object, params effect.Params)
}

// ObjectHandler pairs an object filter with an event-to-effect map.
// Handlers are built once at startup and read-only afterwards.
type ObjectHandler struct {
	id      uuid.UUID
	filter  filter.ObjectFilter
	effects map[string]effect.Effect
}

// NewObjectHandler creates a handler. A nil filter accepts all objects.
func NewObjectHandler(f filter.ObjectFilter, effects map[string]effect.Effect) *ObjectHandler {
	if f == nil {
		f = filter.AcceptAll{}
	}
	if effects == nil {
		effects = map[string]effect.Effect{}
	}
	return &ObjectHandler{
		id:      uuid.New(),
		filter:  f,
		effects: effects,
	}
}

func (h *ObjectHandler) ID() uuid.UUID { return h.id }

func (h *ObjectHandler) Matches(obj ui.Object) bool {
	return h.filter.Matches(obj)
}

// Effect returns the effect bound to event, if any.
func (h *ObjectHandler) Effect(event string) (effect.Effect, bool) {
	e, ok := h.effects[event]
	return e, ok
}

func (h *ObjectHandler) HandleEvent(ctx *effect.Context, event string, obj ui.Object, params effect.Params) {
	e, ok := h.effects[event]
	if !ok {
		return
	}
	if err := e.Apply(ctx, obj, params); err != nil {
		ctx.Logger().Error("effect failed", "event", event, "handler", h.id, "err", err)
	}
}

// CheckFunc is a global handler's periodic check. It runs once per
// tracking cycle while the handler's filter matches and may fire named
// events through the tick.
type CheckFunc func(t *Tick)

// Tick is the context handed to a global handler's periodic check.
type Tick struct {
	// State is the engine's shared state snapshot surface.
	State filter.GlobalState

	ctx     *effect.Context
	handler *GlobalHandler
}

// Trigger fires a named event on the owning handler. Events with no
// bound effect are silent no-ops.
func (t *Tick) Trigger(event string, params effect.Params) {
	t.handler.trigger(t.ctx, event, params)
}

// GlobalHandler pairs a global filter with effects plus a periodic check
// invoked once per tracking cycle.
type GlobalHandler struct {
	id      uuid.UUID
	filter  filter.GlobalFilter
	effects map[string]effect.Effect
	check   CheckFunc
}

// NewGlobalHandler creates a global handler. A nil filter is always
// active; a nil check only fires events pushed from outside.
func NewGlobalHandler(f filter.GlobalFilter, effects map[string]effect.Effect, check CheckFunc) *GlobalHandler {
	if f == nil {
		f = filter.AcceptAll{}
	}
	if effects == nil {
		effects = map[string]effect.Effect{}
	}
	return &GlobalHandler{
		id:      uuid.New(),
		filter:  f,
		effects: effects,
		check:   check,
	}
}

func (h *GlobalHandler) ID() uuid.UUID { return h.id }

// Active evaluates the handler's filter against global state.
func (h *GlobalHandler) Active(state filter.GlobalState) bool {
	return h.filter.MatchesGlobal(state)
}

func (h *GlobalHandler) trigger(ctx *effect.Context, event string, params effect.Params) {
	e, ok := h.effects[event]
	if !ok {
		return
	}
	if err := e.Apply(ctx, nil, params); err != nil {
		ctx.Logger().Error("effect failed", "event", event, "handler", h.id, "err", err)
	}
}

// RunCheck invokes the periodic check with a fresh tick.
func (h *GlobalHandler) RunCheck(ctx *effect.Context, state filter.GlobalState) {
	if h.check == nil {
		return
	}
	h.check(&Tick{State: state, ctx: ctx, handler: h})
}
