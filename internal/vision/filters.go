// Package vision captures video frames with OpenCV and applies the booth
// filters to them.
package vision

import (
	"fmt"
	"image"

	"photobooth/internal/filter"

	"gocv.io/x/gocv"
)

// Apply returns a new Mat holding src with kind applied. The caller owns
// the result and must Close it. src must be 8-bit BGR.
func Apply(src gocv.Mat, kind filter.Kind, p filter.Params) (gocv.Mat, error) {
	dst := gocv.NewMat()
	switch kind {
	case filter.Opaque:
		src.CopyTo(&dst)

	case filter.Invert:
		gocv.BitwiseNot(src, &dst)

	case filter.Blur:
		// Kernel size 0 lets OpenCV derive it from sigma
		sigma := float64(p.BlurRadius)
		gocv.GaussianBlur(src, &dst, image.Point{}, sigma, sigma, gocv.BorderDefault)

	case filter.Posterize:
		table := PosterizeLUT(p.PosterizeLevels)
		lut, err := gocv.NewMatFromBytes(1, 256, gocv.MatTypeCV8U, table[:])
		if err != nil {
			dst.Close()
			return gocv.Mat{}, fmt.Errorf("posterize table: %w", err)
		}
		defer lut.Close()
		gocv.LUT(src, lut, &dst)

	case filter.Gray:
		gray := gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
		gocv.CvtColor(gray, &dst, gocv.ColorGrayToBGR)

	default:
		dst.Close()
		return gocv.Mat{}, fmt.Errorf("unknown filter %v", kind)
	}
	return dst, nil
}

// PosterizeLUT returns the lookup table as a byte slice for OpenCV.
func PosterizeLUT(levels int) []byte {
	t := filter.PosterizeTable(levels)
	return t[:]
}

// ApplyImage filters a Go image through OpenCV.
func ApplyImage(img image.Image, kind filter.Kind, p filter.Params) (*image.RGBA, error) {
	src := imageToMat(img)
	defer src.Close()

	dst, err := Apply(src, kind, p)
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	return matToImage(dst)
}

// conform resizes src to size and mirrors it when asked. It returns a new Mat.
func conform(src gocv.Mat, size image.Point, mirror bool) gocv.Mat {
	out := gocv.NewMat()
	if src.Cols() != size.X || src.Rows() != size.Y {
		gocv.Resize(src, &out, size, 0, 0, gocv.InterpolationArea)
	} else {
		src.CopyTo(&out)
	}
	if mirror {
		flipped := gocv.NewMat()
		gocv.Flip(out, &flipped, 1)
		out.Close()
		out = flipped
	}
	return out
}
