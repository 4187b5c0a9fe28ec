package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// syntheticDesktop is a scripted desktop: one window, one graphic with
// a horizontal intensity gradient, and a pointer that sweeps across
// them. It implements every collaborator the engine needs.
type syntheticDesktop struct {
	*ui.FakeDesktop
	graphic *ui.FakeObject
}

func newSyntheticDesktop() *syntheticDesktop {
	d := &syntheticDesktop{FakeDesktop: ui.NewFakeDesktop(1920, 1080)}

	d.Place(&ui.FakeObject{
		Handle: 0x1000,
		Nm:     "Demo Window",
		Rl:     ui.RoleWindow,
		Loc:    ui.Rect{Left: 100, Top: 100, Right: 1400, Bottom: 900},
	})
	d.graphic = &ui.FakeObject{
		Handle: 0x1000,
		Child:  3,
		Nm:     "Gradient",
		Rl:     ui.RoleGraphic,
		Loc:    ui.Rect{Left: 400, Top: 300, Right: 1000, Bottom: 700},
	}
	d.Place(d.graphic)
	return d
}

// Grab renders the gradient for the requested rectangle so the depth
// pipeline has real pixels to work with.
func (d *syntheticDesktop) Grab(rect ui.Rect) ([]byte, error) {
	w, h := rect.Width(), rect.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	span := d.graphic.Loc.Width()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			abs := rect.Left + x - d.graphic.Loc.Left
			v := uint8(255 * abs / span)
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sweep moves the pointer left to right through the graphic, then jumps
// back to the desktop edge and repeats.
func (d *syntheticDesktop) sweep(ctx context.Context, step time.Duration) {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	x, y := 0, 500
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			x += 8
			if x >= d.W {
				x = 0
			}
			d.MoveTo(x, y)
		}
	}
}
