package effect

import "github.com/touchpoint-hw/go-touchpoint/pkg/ui"

// Combo executes child effects strictly in order. A failing child is
// logged and the remaining children still run, so a dropped vibration
// never blocks a following elevation command. Combo itself never
// reports failure.
type Combo struct {
	Effects []Effect
}

// NewCombo builds a sequential effect from the given children.
func NewCombo(effects ...Effect) *Combo {
	return &Combo{Effects: effects}
}

func (c *Combo) Apply(ctx *Context, obj ui.Object, params Params) error {
	for i, child := range c.Effects {
		if err := child.Apply(ctx, obj, params); err != nil {
			ctx.Logger().Error("effect failed", "index", i, "err", err)
		}
	}
	return nil
}
