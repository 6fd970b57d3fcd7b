package autostretch

import (
	"errors"
	"fmt"
)

// PixelFormat identifies the layout of a raw sample buffer.
type PixelFormat int

const (
	FormatUnspecified PixelFormat = iota
	FormatMono8
	FormatMono16
	FormatRGB24
	FormatRGB48
)

var formatNames = map[PixelFormat]string{
	FormatMono8:  "mono8",
	FormatMono16: "mono16",
	FormatRGB24:  "rgb24",
	FormatRGB48:  "rgb48",
}

func (f PixelFormat) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// Supported reports whether the format can be processed.
func (f PixelFormat) Supported() bool {
	_, ok := formatNames[f]
	return ok
}

// Channels returns the number of interleaved channels, 0 for unsupported formats.
func (f PixelFormat) Channels() int {
	switch f {
	case FormatMono8, FormatMono16:
		return 1
	case FormatRGB24, FormatRGB48:
		return 3
	default:
		return 0
	}
}

// SampleBytes returns the width of a single channel sample, 0 for unsupported formats.
func (f PixelFormat) SampleBytes() int {
	switch f {
	case FormatMono8, FormatRGB24:
		return 1
	case FormatMono16, FormatRGB48:
		return 2
	default:
		return 0
	}
}

// InputRange returns the assumed number of representable input values.
// It is a fixed property of the format, not derived from pixel content.
func (f PixelFormat) InputRange() int {
	switch f {
	case FormatMono8, FormatRGB24:
		return 256
	case FormatMono16, FormatRGB48:
		return 64 * 1024
	default:
		return 0
	}
}

// Channel selects one channel of an interleaved RGB buffer.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel converts a channel name (red, green, blue or r, g, b) to Channel.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	default:
		return 0, fmt.Errorf("unknown channel %q", s)
	}
}

// ChannelStretchParams describes the tone curve of one channel in normalized [0,1] input space.
type ChannelStretchParams struct {
	Shadows    float32 `json:"shadows"`
	Highlights float32 `json:"highlights"`
	Midtones   float32 `json:"midtones"`

	// Reserved for output range remapping, currently always 0 and 1.
	ShadowsExpansion    float32 `json:"shadowsExpansion"`
	HighlightsExpansion float32 `json:"highlightsExpansion"`
}

// IdentityParams returns a linear curve that maps the full input range onto the full output range.
func IdentityParams() ChannelStretchParams {
	return ChannelStretchParams{
		Shadows:             0,
		Highlights:          1,
		Midtones:            0.5,
		ShadowsExpansion:    0,
		HighlightsExpansion: 1,
	}
}

// ImageStretchParams holds the tone curves of a whole image.
//
// For mono images only GreyRed is used. When RefChannel is set, its curve is
// applied to all three color components instead of each channel's own curve.
type ImageStretchParams struct {
	GreyRed    ChannelStretchParams  `json:"greyRed"`
	Green      ChannelStretchParams  `json:"green"`
	Blue       ChannelStretchParams  `json:"blue"`
	RefChannel *ChannelStretchParams `json:"refChannel,omitempty"`
}

// Channel returns the curve of the given channel, ignoring RefChannel.
func (p ImageStretchParams) Channel(c Channel) ChannelStretchParams {
	switch c {
	case Green:
		return p.Green
	case Blue:
		return p.Blue
	default:
		return p.GreyRed
	}
}

// clone returns a copy of p that shares no memory with it.
func (p ImageStretchParams) clone() ImageStretchParams {
	if p.RefChannel != nil {
		ref := *p.RefChannel
		p.RefChannel = &ref
	}
	return p
}

// effective returns the curves actually used for red, green and blue.
func (p ImageStretchParams) effective() [3]ChannelStretchParams {
	if p.RefChannel != nil {
		return [3]ChannelStretchParams{*p.RefChannel, *p.RefChannel, *p.RefChannel}
	}
	return [3]ChannelStretchParams{p.GreyRed, p.Green, p.Blue}
}

var (
	// ErrUnsupportedFormat is returned for pixel formats other than Mono8, Mono16, RGB24 and RGB48.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrInvalidGeometry is returned for non-positive image dimensions.
	ErrInvalidGeometry = errors.New("invalid image dimensions")
	// ErrBufferSize is returned when a raw buffer is too short for the image geometry.
	ErrBufferSize = errors.New("raw buffer too short")
	// ErrRasterSize is returned when the output raster does not match the sampled geometry.
	ErrRasterSize = errors.New("output raster size mismatch")
	// ErrInvalidSampling is returned for a sampling stride below 1.
	ErrInvalidSampling = errors.New("invalid sampling stride")
)
