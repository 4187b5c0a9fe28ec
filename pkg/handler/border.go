package handler

import (
	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
)

// NewScreenBorderHandler builds the global handler that watches for the
// pointer reaching the desktop edge. It fires border_enter once when
// the pointer touches any edge and border_leave once when it moves back
// inside, giving continuous vibration feedback at the screen limits.
func NewScreenBorderHandler(f filter.GlobalFilter, effects map[string]effect.Effect) *GlobalHandler {
	onBorder := false
	check := func(t *Tick) {
		pos := t.State.PointerPosition()
		w, h := t.State.ScreenSize()
		atEdge := pos.X <= 0 || pos.X >= w-1 || pos.Y <= 0 || pos.Y >= h-1

		if atEdge == onBorder {
			return
		}
		if atEdge {
			t.Trigger(EventBorderEnter, nil)
		} else {
			t.Trigger(EventBorderLeave, nil)
		}
		onBorder = atEdge
	}
	return NewGlobalHandler(f, effects, check)
}
