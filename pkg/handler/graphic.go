package handler

import (
	"github.com/google/uuid"

	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// CaptureRegistrar is the capture pipeline surface graphic handlers
// register their regions with.
type CaptureRegistrar interface {
	AddRegion(owner uuid.UUID, rect ui.Rect)
	RemoveRegion(owner uuid.UUID)
}

// GraphicHandler extends ObjectHandler for image-bearing objects: on
// enter it registers the object's rectangle as an active capture region
// with the elevation pipeline, on leave it deregisters it. Bound
// effects still fire for both events.
type GraphicHandler struct {
	*ObjectHandler
	captures CaptureRegistrar
}

// NewGraphicHandler creates a graphic handler. A nil filter defaults to
// the graphic filter rather than accept-all.
func NewGraphicHandler(f filter.ObjectFilter, effects map[string]effect.Effect, captures CaptureRegistrar) *GraphicHandler {
	if f == nil {
		f = filter.Graphic{}
	}
	return &GraphicHandler{
		ObjectHandler: NewObjectHandler(f, effects),
		captures:      captures,
	}
}

func (h *GraphicHandler) HandleEvent(ctx *effect.Context, event string, obj ui.Object, params effect.Params) {
	switch event {
	case EventEnter:
		if h.captures != nil && obj != nil {
			loc, err := obj.Location()
			if err != nil || !loc.Valid() {
				// No usable rectangle: skip capture, and skip the
				// bound effect too since no feedback can follow.
				return
			}
			h.captures.AddRegion(h.ID(), loc)
		}
	case EventLeave:
		if h.captures != nil {
			h.captures.RemoveRegion(h.ID())
		}
	}
	h.ObjectHandler.HandleEvent(ctx, event, obj, params)
}
