package depth

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ConvertOptions tune the captured-frame to depth-map conversion.
type ConvertOptions struct {
	// KernelSize is the Gaussian blur kernel suppressing sensor and
	// compression noise. Must be odd; 0 disables the blur.
	KernelSize int

	// Invert flips intensity so dark pixels read as elevated.
	Invert bool
}

// DefaultConvertOptions matches the original device calibration.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{KernelSize: 7}
}

// Converter turns an encoded captured frame into a depth map.
type Converter func(encoded []byte, opts ConvertOptions) (*Map, error)

// FromEncoded decodes a captured JPEG/PNG frame with OpenCV, converts
// to grayscale, blurs, and normalizes intensities to [0,1].
func FromEncoded(encoded []byte, opts ConvertOptions) (*Map, error) {
	img, err := gocv.IMDecode(encoded, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("decode frame: empty image")
	}
	return FromMat(img, opts)
}

// FromMat converts a BGR Mat into a depth map.
func FromMat(img gocv.Mat, opts ConvertOptions) (*Map, error) {
	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	if opts.KernelSize > 1 {
		blurred := gocv.NewMat()
		gocv.GaussianBlur(gray, &blurred, image.Pt(opts.KernelSize, opts.KernelSize), 0, 0, gocv.BorderDefault)
		gray.Close()
		gray = blurred
	}
	defer gray.Close()

	w, h := gray.Cols(), gray.Rows()
	values := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(gray.GetUCharAt(y, x)) / 255.0
			if opts.Invert {
				v = 1.0 - v
			}
			values[y*w+x] = v
		}
	}
	return NewMap(w, h, values)
}
