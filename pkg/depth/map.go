// Package depth implements the screen-capture-to-elevation pipeline:
// captured pixels become a normalized depth map that is sampled at the
// pointer position to drive the device's elevation pin.
package depth

import (
	"errors"

	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// ErrBadDimensions is returned when map dimensions and data disagree.
var ErrBadDimensions = errors.New("depth: dimensions do not match data length")

// Map is a normalized grayscale intensity grid in [0,1] with the same
// pixel dimensions as its source region. Higher values are more
// elevated for the lifetime of the map. Maps are immutable once built;
// each capture cycle replaces the previous map rather than mutating it.
type Map struct {
	w, h   int
	values []float64 // row-major
}

// NewMap builds a map from row-major values.
func NewMap(w, h int, values []float64) (*Map, error) {
	if w <= 0 || h <= 0 || len(values) != w*h {
		return nil, ErrBadDimensions
	}
	return &Map{w: w, h: h, values: values}, nil
}

// Uniform builds a map where every cell holds v. Used in tests and
// calibration.
func Uniform(w, h int, v float64) *Map {
	values := make([]float64, w*h)
	for i := range values {
		values[i] = v
	}
	m, _ := NewMap(w, h, values)
	return m
}

// Size returns the grid dimensions.
func (m *Map) Size() (w, h int) { return m.w, m.h }

// At returns the intensity at grid cell (x, y), clamping out-of-range
// coordinates to the nearest edge cell.
func (m *Map) At(x, y int) float64 {
	x = clampInt(x, 0, m.w-1)
	y = clampInt(y, 0, m.h-1)
	return m.values[y*m.w+x]
}

// SampleAt maps an absolute screen point to the map's grid, assuming
// the map covers region, and returns the nearest-cell intensity.
// Points outside the region clamp to the region edge.
func (m *Map) SampleAt(region ui.Rect, p ui.Point) float64 {
	if !region.Valid() {
		return 0
	}
	gx := (p.X - region.Left) * m.w / region.Width()
	gy := (p.Y - region.Top) * m.h / region.Height()
	return m.At(gx, gy)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
