package autostretch

import (
	"fmt"
	"image"
)

// render describes one pass over a frame.
type render struct {
	width      int
	height     int
	sampling   int
	inputRange int
	dst        *image.RGBA
	yield      func(row int) error
}

// row returns the destination pixels of output row y.
func (r render) row(y int) []uint8 {
	b := r.dst.Bounds()
	off := r.dst.PixOffset(b.Min.X, b.Min.Y+y)
	return r.dst.Pix[off : off+4*b.Dx()]
}

func (r render) pause(row int) error {
	if r.yield == nil {
		return nil
	}
	if err := r.yield(row); err != nil {
		return fmt.Errorf("render interrupted at row %d: %w", row, err)
	}
	return nil
}

func renderMono[T Sample](r render, src []T, p ChannelStretchParams) error {
	k := newMTFKernel[T](p, r.inputRange)

	for y, yOut := 0, 0; y < r.height; y, yOut = y+r.sampling, yOut+1 {
		if err := r.pause(yOut); err != nil {
			return err
		}

		line := src[y*r.width : (y+1)*r.width]
		out := r.row(yOut)
		for x, o := 0, 0; x < r.width; x, o = x+r.sampling, o+4 {
			v := k.apply(line[x])
			out[o] = v
			out[o+1] = v
			out[o+2] = v
			out[o+3] = 0xFF
		}
	}

	return nil
}

func renderRGB[T Sample](r render, src []T, p [3]ChannelStretchParams) error {
	kr := newMTFKernel[T](p[0], r.inputRange)
	kg := newMTFKernel[T](p[1], r.inputRange)
	kb := newMTFKernel[T](p[2], r.inputRange)

	for y, yOut := 0, 0; y < r.height; y, yOut = y+r.sampling, yOut+1 {
		if err := r.pause(yOut); err != nil {
			return err
		}

		line := src[y*r.width*3 : (y+1)*r.width*3]
		out := r.row(yOut)
		for x, o := 0, 0; x < r.width; x, o = x+r.sampling, o+4 {
			i := x * 3
			out[o] = kr.apply(line[i])
			out[o+1] = kg.apply(line[i+1])
			out[o+2] = kb.apply(line[i+2])
			out[o+3] = 0xFF
		}
	}

	return nil
}
