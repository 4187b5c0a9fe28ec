package handler

import (
	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// Registry owns the ordered handler collections and routes events
// through them. Handlers are registered during startup and the registry
// is read-only once the loops start, so routing takes no locks.
//
// Order is significant: handlers are evaluated in registration order
// and every matching handler fires. There is no short-circuit.
type Registry struct {
	object []EventHandler
	global []*GlobalHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddObjectHandler appends an object-scoped handler.
func (r *Registry) AddObjectHandler(h EventHandler) {
	r.object = append(r.object, h)
}

// AddGlobalHandler appends a global handler.
func (r *Registry) AddGlobalHandler(h *GlobalHandler) {
	r.global = append(r.global, h)
}

// ObjectHandlers returns the registered object handlers in order.
func (r *Registry) ObjectHandlers() []EventHandler { return r.object }

// GlobalHandlers returns the registered global handlers in order.
func (r *Registry) GlobalHandlers() []*GlobalHandler { return r.global }

// HandleObjectEvent routes a named event for a UI object: every handler
// whose filter matches the object fires its bound effect, in
// registration order. Callers must get control back promptly; effects
// queue hardware commands rather than waiting on the device.
func (r *Registry) HandleObjectEvent(ctx *effect.Context, event string, obj ui.Object, params effect.Params) {
	for _, h := range r.object {
		if h.Matches(obj) {
			h.HandleEvent(ctx, event, obj, params)
		}
	}
}

// GlobalTick runs every active global handler's periodic check. Invoked
// once per tracking cycle.
func (r *Registry) GlobalTick(ctx *effect.Context, state filter.GlobalState) {
	for _, h := range r.global {
		if h.Active(state) {
			h.RunCheck(ctx, state)
		}
	}
}
