package autostretch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder.

	_ "golang.org/x/image/tiff" // Register TIFF decoder.
)

// RawImage is a raw frame as delivered by an acquisition client: a contiguous,
// row-major, channel-interleaved sample buffer. 16-bit samples are little-endian.
type RawImage struct {
	Width  int
	Height int
	Format PixelFormat
	Pix    []byte
}

// Stretcher creates a Stretcher matching the frame geometry and format.
func (r *RawImage) Stretcher(opts ...func(o *Options)) (*Stretcher, error) {
	return New(r.Width, r.Height, r.Format, opts...)
}

// DecodeRaw decodes a PNG or TIFF file into a RawImage. 8-bit and 16-bit grayscale
// images become Mono8 and Mono16 frames, 16-bit color images become RGB48 and
// anything else is converted to RGB24.
func DecodeRaw(data []byte) (*RawImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return RawFromImage(img)
}

// RawFromImage converts a decoded image into a RawImage.
func RawFromImage(img image.Image) (*RawImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.New("invalid image dimensions")
	}
	out := &RawImage{Width: w, Height: h}

	switch src := img.(type) {
	case *image.Gray:
		out.Format = FormatMono8
		out.Pix = make([]byte, w*h)
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
	case *image.Gray16:
		out.Format = FormatMono16
		out.Pix = make([]byte, w*h*2)
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < w; x++ {
				v := binary.BigEndian.Uint16(src.Pix[off+2*x:])
				binary.LittleEndian.PutUint16(out.Pix[(y*w+x)*2:], v)
			}
		}
	case *image.RGBA64, *image.NRGBA64:
		out.Format = FormatRGB48
		out.Pix = make([]byte, w*h*6)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				i := (y*w + x) * 6
				binary.LittleEndian.PutUint16(out.Pix[i:], c.R)
				binary.LittleEndian.PutUint16(out.Pix[i+2:], c.G)
				binary.LittleEndian.PutUint16(out.Pix[i+4:], c.B)
			}
		}
	default:
		out.Format = FormatRGB24
		out.Pix = make([]byte, w*h*3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := (y*w + x) * 3
				out.Pix[i] = c.R
				out.Pix[i+1] = c.G
				out.Pix[i+2] = c.B
			}
		}
	}

	return out, nil
}
