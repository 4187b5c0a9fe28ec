package depth

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// FromEncodedImage is a pure-Go Converter for hosts built without
// OpenCV. It decodes with the standard image codecs and applies a box
// blur in place of the Gaussian pass. Output differs slightly from
// FromEncoded near strong edges but is within calibration tolerance.
func FromEncodedImage(encoded []byte, opts ConvertOptions) (*Map, error) {
	img, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return FromImage(img, opts)
}

// FromImage converts a decoded image into a depth map.
func FromImage(img image.Image, opts ConvertOptions) (*Map, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrBadDimensions
	}

	values := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// ITU-R BT.601 luma on 16-bit channel values.
			luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 65535.0
			values[y*w+x] = luma
		}
	}

	if opts.KernelSize > 1 {
		values = boxBlur(values, w, h, opts.KernelSize/2)
	}
	if opts.Invert {
		for i, v := range values {
			values[i] = 1.0 - v
		}
	}
	return NewMap(w, h, values)
}

// boxBlur averages each cell over a (2r+1)^2 window clamped at edges.
func boxBlur(src []float64, w, h, r int) []float64 {
	out := make([]float64, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			var n int
			for dy := -r; dy <= r; dy++ {
				yy := clampInt(y+dy, 0, h-1)
				for dx := -r; dx <= r; dx++ {
					xx := clampInt(x+dx, 0, w-1)
					sum += src[yy*w+xx]
					n++
				}
			}
			out[y*w+x] = sum / float64(n)
		}
	}
	return out
}
