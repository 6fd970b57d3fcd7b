package autostretch

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling kernel used to scale rendered rasters.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[string]Interpolation{
	"nearest":  InterpolationNearest,
	"bilinear": InterpolationBilinear,
	"bicubic":  InterpolationBicubic,
	"mitchell": InterpolationMitchellNetravali,
	"lanczos2": InterpolationLanczos2,
	"lanczos3": InterpolationLanczos3,
}

// ParseInterpolation converts a kernel name (nearest, bilinear, bicubic, mitchell,
// lanczos2, lanczos3) to Interpolation.
func ParseInterpolation(s string) (Interpolation, error) {
	if i, ok := interpolationNames[strings.ToLower(s)]; ok {
		return i, nil
	}
	return InterpolationNearest, fmt.Errorf("unknown interpolation %q", s)
}

func (i Interpolation) kernel() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// FitRaster scales img down to fit into maxWidth x maxHeight, preserving aspect ratio.
// Images that already fit are returned unchanged.
func FitRaster(img image.Image, maxWidth, maxHeight uint, interp Interpolation) image.Image {
	b := img.Bounds()
	if uint(b.Dx()) <= maxWidth && uint(b.Dy()) <= maxHeight {
		return img
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, interp.kernel())
}

// ScaleRaster resizes img to exactly width x height. A zero dimension is derived
// from the other one preserving aspect ratio.
func ScaleRaster(img image.Image, width, height uint, interp Interpolation) image.Image {
	return resize.Resize(width, height, img, interp.kernel())
}

// ParseSize parses a "WxH" dimension string.
func ParseSize(s string) (width, height uint, err error) {
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("parse size %q: dimensions must be positive", s)
	}
	return width, height, nil
}
