package autostretch

import (
	"encoding/binary"
	"fmt"
	"image"
)

// Options configures a Stretcher.
type Options struct {
	// ByteOrder of 16-bit samples in raw buffers, binary.LittleEndian by default.
	ByteOrder binary.ByteOrder
	// Preset selects the stretch strength used by ComputeParams and ComputeParamsUnbalanced.
	Preset Preset
}

// StretchOptions controls a single render.
type StretchOptions struct {
	// Params replaces the stored parameters before rendering when not nil.
	// The Stretcher keeps a copy, later changes to *Params have no effect.
	Params *ImageStretchParams
	// Yield is called once per output row before the row is rendered, so that
	// a host scheduler can make progress during large renders. A non-nil error
	// aborts the render, rows before the failing one are already written to dst.
	Yield func(row int) error
}

// Stretcher renders raw frames of a fixed geometry and pixel format.
//
// A Stretcher is not safe for concurrent use. If the same Stretcher needs to be
// used from multiple goroutines, callers must provide their own synchronisation.
type Stretcher struct {
	width      int
	height     int
	format     PixelFormat
	inputRange int
	order      binary.ByteOrder
	solver     SolverOptions
	params     ImageStretchParams
}

// New creates a Stretcher for frames of width x height pixels in the given format.
// Stored parameters start as the identity curve on every channel.
func New(width, height int, format PixelFormat, opts ...func(o *Options)) (*Stretcher, error) {
	if !format.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}

	opt := Options{
		ByteOrder: binary.LittleEndian,
		Preset:    PresetNormal,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.ByteOrder == nil {
		opt.ByteOrder = binary.LittleEndian
	}

	return &Stretcher{
		width:      width,
		height:     height,
		format:     format,
		inputRange: format.InputRange(),
		order:      opt.ByteOrder,
		solver:     opt.Preset.SolverOptions(),
		params: ImageStretchParams{
			GreyRed: IdentityParams(),
			Green:   IdentityParams(),
			Blue:    IdentityParams(),
		},
	}, nil
}

// Width returns the frame width in pixels.
func (s *Stretcher) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *Stretcher) Height() int { return s.height }

// Format returns the pixel format of raw frames.
func (s *Stretcher) Format() PixelFormat { return s.format }

// InputRange returns the assumed number of representable input values.
func (s *Stretcher) InputRange() int { return s.inputRange }

// Params returns a copy of the parameters used by Stretch when none are given.
func (s *Stretcher) Params() ImageStretchParams { return s.params.clone() }

// SetParams replaces the stored parameters with a copy of p.
func (s *Stretcher) SetParams(p ImageStretchParams) { s.params = p.clone() }

// RasterSize returns the dimensions of the output raster for a sampling stride.
func (s *Stretcher) RasterSize(sampling int) (width, height int) {
	return ceilDiv(s.width, sampling), ceilDiv(s.height, sampling)
}

// NewRaster allocates an output raster for a width x height frame rendered with sampling stride.
func NewRaster(width, height, sampling int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, ceilDiv(width, sampling), ceilDiv(height, sampling)))
}

func (s *Stretcher) pixels() int {
	return s.width * s.height
}

func (s *Stretcher) checkBuffer(buf []byte) error {
	need := s.pixels() * s.format.Channels() * s.format.SampleBytes()
	if len(buf) < need {
		return fmt.Errorf("%w: got %d bytes, need %d for %dx%d %s",
			ErrBufferSize, len(buf), need, s.width, s.height, s.format)
	}
	return nil
}

// samples16 decodes 16-bit samples of buf.
func (s *Stretcher) samples16(buf []byte) []uint16 {
	n := s.pixels() * s.format.Channels()
	out := make([]uint16, n)
	for i := range out {
		out[i] = s.order.Uint16(buf[2*i:])
	}
	return out
}

// ComputeParams estimates per-channel tone curves from a raw frame and stores them.
// RGB channels are solved independently.
func (s *Stretcher) ComputeParams(buf []byte) (ImageStretchParams, error) {
	if err := s.checkBuffer(buf); err != nil {
		return ImageStretchParams{}, err
	}

	var p ImageStretchParams
	switch s.format {
	case FormatMono8:
		p = computeParamsMono(buf, s.pixels(), s.inputRange, s.solver)
	case FormatMono16:
		p = computeParamsMono(s.samples16(buf), s.pixels(), s.inputRange, s.solver)
	case FormatRGB24:
		p = computeParamsRGB(buf, s.pixels(), s.inputRange, s.solver)
	case FormatRGB48:
		p = computeParamsRGB(s.samples16(buf), s.pixels(), s.inputRange, s.solver)
	default:
		return ImageStretchParams{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.format)
	}

	s.params = p

	return p, nil
}

// ComputeParamsUnbalanced estimates a single tone curve from the reference channel of
// an RGB frame and stores it for all three channels. Mono frames behave as in ComputeParams.
func (s *Stretcher) ComputeParamsUnbalanced(buf []byte, ref Channel) (ImageStretchParams, error) {
	if s.format.Channels() == 1 {
		return s.ComputeParams(buf)
	}
	if ref < Red || ref > Blue {
		return ImageStretchParams{}, fmt.Errorf("invalid reference channel %s", ref)
	}
	if err := s.checkBuffer(buf); err != nil {
		return ImageStretchParams{}, err
	}

	var p ImageStretchParams
	switch s.format {
	case FormatRGB24:
		p = computeParamsRGBUnbalanced(buf, s.pixels(), s.inputRange, ref, s.solver)
	case FormatRGB48:
		p = computeParamsRGBUnbalanced(s.samples16(buf), s.pixels(), s.inputRange, ref, s.solver)
	default:
		return ImageStretchParams{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.format)
	}

	s.params = p

	return p, nil
}

// Stretch renders a raw frame into dst, visiting every sampling-th pixel of every
// sampling-th row. The bounds of dst must be exactly those returned by RasterSize.
//
// Stretch writes dst in place. When Yield aborts the render, output rows before
// the aborted one hold the new image and the remaining rows keep their previous content.
func (s *Stretcher) Stretch(buf []byte, dst *image.RGBA, sampling int, opts ...func(o *StretchOptions)) error {
	if sampling < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSampling, sampling)
	}
	if err := s.checkBuffer(buf); err != nil {
		return err
	}
	w, h := s.RasterSize(sampling)
	if dst == nil {
		return fmt.Errorf("%w: nil raster", ErrRasterSize)
	}
	if b := dst.Bounds(); b.Dx() != w || b.Dy() != h {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrRasterSize, b.Dx(), b.Dy(), w, h)
	}

	var opt StretchOptions
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Params != nil {
		s.params = opt.Params.clone()
	}

	r := render{
		width:      s.width,
		height:     s.height,
		sampling:   sampling,
		inputRange: s.inputRange,
		dst:        dst,
		yield:      opt.Yield,
	}

	switch s.format {
	case FormatMono8:
		return renderMono(r, buf, s.params.GreyRed)
	case FormatMono16:
		return renderMono(r, s.samples16(buf), s.params.GreyRed)
	case FormatRGB24:
		return renderRGB(r, buf, s.params.effective())
	case FormatRGB48:
		return renderRGB(r, s.samples16(buf), s.params.effective())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.format)
	}
}
