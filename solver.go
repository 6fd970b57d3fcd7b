package autostretch

import (
	"fmt"
	"strings"
)

// MTF evaluates the midtones transfer function with midtones balance m at normalized input x.
func MTF(m, x float32) float32 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return ((m - 1) * x) / ((2*m-1)*x - m)
}

// MidtonesFor returns the midtones balance m for which MTF(m, x) equals y.
func MidtonesFor(x, y float32) float32 {
	switch {
	case x == 0:
		return 0
	case x == y:
		return 0.5
	case x == 1:
		return 1
	}
	return ((y - 1) * x) / ((2*y-1)*x - y)
}

// SolverOptions controls how channel statistics are turned into a tone curve.
type SolverOptions struct {
	// TargetBackground is the normalized output level the median is mapped to.
	TargetBackground float32
	// ClipSigma is the distance from the median, in estimated standard deviations,
	// at which shadows (or highlights for bright images) are clipped.
	ClipSigma float32
	// Linear disables the statistical stretch, every channel gets IdentityParams.
	Linear bool
}

// DefaultSolverOptions returns the options of PresetNormal.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		TargetBackground: defaultTargetBackground,
		ClipSigma:        defaultClipSigma,
	}
}

// SolveChannel derives a tone curve from the median and median absolute deviation
// of a channel, given in raw sample units, using DefaultSolverOptions.
func SolveChannel(median, mad float32, inputRange int) ChannelStretchParams {
	return DefaultSolverOptions().Solve(median, mad, inputRange)
}

// Solve derives a tone curve from the median and median absolute deviation
// of a channel, given in raw sample units.
func (o SolverOptions) Solve(median, mad float32, inputRange int) ChannelStretchParams {
	if o.Linear {
		return IdentityParams()
	}

	maxInput := maxInputFor(inputRange)
	normalizedMedian := median / maxInput
	madn := madToSigma * mad / maxInput
	upperHalf := normalizedMedian > 0.5

	p := IdentityParams()
	if madn != 0 {
		if upperHalf {
			p.Highlights = clamp01(normalizedMedian + o.ClipSigma*madn)
		} else {
			p.Shadows = clamp01(normalizedMedian - o.ClipSigma*madn)
		}
	}

	if upperHalf {
		p.Midtones = MidtonesFor(o.TargetBackground, p.Highlights-normalizedMedian)
	} else {
		p.Midtones = MidtonesFor(normalizedMedian-p.Shadows, o.TargetBackground)
	}

	return p
}

func computeParamsMono[T Sample](buf []T, pixels int, inputRange int, o SolverOptions) ImageStretchParams {
	stride := SampleStride(pixels)
	med, mad := channelStatistics(buf, 0, stride, pixels/stride)

	return ImageStretchParams{
		GreyRed: o.Solve(float32(med), float32(mad), inputRange),
		Green:   IdentityParams(),
		Blue:    IdentityParams(),
	}
}

func computeParamsRGB[T Sample](buf []T, pixels int, inputRange int, o SolverOptions) ImageStretchParams {
	stride := SampleStride(pixels)
	count := pixels / stride

	var res [3]ChannelStretchParams
	for c := range res {
		med, mad := channelStatistics(buf, c, stride*3, count)
		res[c] = o.Solve(float32(med), float32(mad), inputRange)
	}

	return ImageStretchParams{GreyRed: res[0], Green: res[1], Blue: res[2]}
}

// computeParamsRGBUnbalanced solves the reference channel only and shares its curve.
func computeParamsRGBUnbalanced[T Sample](buf []T, pixels int, inputRange int, ref Channel, o SolverOptions) ImageStretchParams {
	stride := SampleStride(pixels)
	med, mad := channelStatistics(buf, int(ref), stride*3, pixels/stride)
	p := o.Solve(float32(med), float32(mad), inputRange)

	return ImageStretchParams{GreyRed: p, Green: p, Blue: p}
}

// Preset selects the strength of the automatic stretch.
type Preset int

const (
	PresetNormal Preset = iota
	PresetNone
	PresetSlight
	PresetModerate
	PresetHard
)

var presetNames = []struct {
	p    Preset
	name string
}{
	{PresetNone, "none"},
	{PresetSlight, "slight"},
	{PresetModerate, "moderate"},
	{PresetNormal, "normal"},
	{PresetHard, "hard"},
}

func (p Preset) String() string {
	for _, pn := range presetNames {
		if pn.p == p {
			return pn.name
		}
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// ParsePreset converts a preset name to Preset.
func ParsePreset(s string) (Preset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, pn := range presetNames {
		if pn.name == s {
			return pn.p, nil
		}
	}
	return PresetNormal, fmt.Errorf("unknown stretch preset %q", s)
}

// SolverOptions returns the solver configuration of the preset.
func (p Preset) SolverOptions() SolverOptions {
	o := DefaultSolverOptions()
	switch p {
	case PresetNone:
		o.Linear = true
	case PresetSlight:
		o.TargetBackground = 0.10
	case PresetModerate:
		o.TargetBackground = 0.15
	case PresetHard:
		o.TargetBackground = 0.40
	}
	return o
}
