package autostretch

import "math"

const truncSlack = 1e-3

// mtfKernel applies one channel's tone curve to raw samples.
// All divisions of the transfer function except one are folded into k1 and k2.
type mtfKernel[T Sample] struct {
	shadows    T // native units
	highlights T // native units
	midtones   float32
	k1         float32
	k2         float32
}

func newMTFKernel[T Sample](p ChannelStretchParams, inputRange int) mtfKernel[T] {
	maxInput := maxInputFor(inputRange)

	hsRangeFactor := float32(1)
	if p.Highlights != p.Shadows {
		hsRangeFactor = 1 / (p.Highlights - p.Shadows)
	}

	return mtfKernel[T]{
		shadows:    nativeLevel[T](p.Shadows, maxInput),
		highlights: nativeLevel[T](p.Highlights, maxInput),
		midtones:   p.Midtones,
		k1:         (p.Midtones - 1) * hsRangeFactor * maxOutput / maxInput,
		k2:         (2*p.Midtones - 1) * hsRangeFactor / maxInput,
	}
}

// nativeLevel converts a normalized level to the sample scale, truncating.
func nativeLevel[T Sample](level, maxInput float32) T {
	return T(clamp01(level) * maxInput)
}

func (k mtfKernel[T]) apply(v T) uint8 {
	if v < k.shadows {
		return 0
	}
	if v >= k.highlights {
		return maxOutput
	}

	d := float32(v - k.shadows)
	if d == 0 {
		return 0
	}
	if k.midtones == 0 {
		// MTF(0, x) is 1 for every x > 0.
		return maxOutput
	}

	// Results that should land on an integer may come out a few ulps below it.
	out := (d*k.k1)/(d*k.k2-k.midtones) + truncSlack
	switch {
	case math.IsNaN(float64(out)) || out < 0:
		return 0
	case out >= maxOutput:
		return maxOutput
	}

	return uint8(out)
}

// ApplyMTF maps one raw sample to a display value in [0,255] with the given curve.
// It is a convenience for single values, Stretcher precomputes the curve once per render.
func ApplyMTF[T Sample](v T, inputRange int, p ChannelStretchParams) uint8 {
	return newMTFKernel[T](p, inputRange).apply(v)
}
