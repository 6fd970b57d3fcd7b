package autostretch

import "testing"

var curveCases = []ChannelStretchParams{
	IdentityParams(),
	{Shadows: 0.1, Highlights: 0.9, Midtones: 0.2, HighlightsExpansion: 1},
	{Shadows: 0.02, Highlights: 1, Midtones: 0.05, HighlightsExpansion: 1},
	{Shadows: 0, Highlights: 0.6, Midtones: 0.8, HighlightsExpansion: 1},
	{Shadows: 0.3, Highlights: 0.3, Midtones: 0.5, HighlightsExpansion: 1},
	{Shadows: 0.1, Highlights: 1, Midtones: 0, HighlightsExpansion: 1},
	{Shadows: 0.1, Highlights: 1, Midtones: 1, HighlightsExpansion: 1},
}

func TestMTFKernelMonotonic16(t *testing.T) {
	for _, p := range curveCases {
		k := newMTFKernel[uint16](p, 65536)
		var prev uint8
		for v := 0; v <= 65535; v++ {
			out := k.apply(uint16(v))
			if out < prev {
				t.Fatalf("%+v: output decreases at %d: %d < %d", p, v, out, prev)
			}
			prev = out
		}
	}
}

func TestMTFKernelMonotonic8(t *testing.T) {
	for _, p := range curveCases {
		k := newMTFKernel[uint8](p, 256)
		var prev uint8
		for v := 0; v <= 255; v++ {
			out := k.apply(uint8(v))
			if out < prev {
				t.Fatalf("%+v: output decreases at %d: %d < %d", p, v, out, prev)
			}
			prev = out
		}
	}
}

func TestMTFKernelClipping(t *testing.T) {
	p := ChannelStretchParams{Shadows: 0.25, Highlights: 0.75, Midtones: 0.3, HighlightsExpansion: 1}
	k := newMTFKernel[uint16](p, 65536)

	const shadows, highlights uint16 = 16383, 49151 // 0.25 and 0.75 of 65535, truncated
	if k.shadows != shadows || k.highlights != highlights {
		t.Fatalf("native levels %d/%d, want %d/%d", k.shadows, k.highlights, shadows, highlights)
	}

	for _, v := range []uint16{0, 1, shadows - 1} {
		if got := k.apply(v); got != 0 {
			t.Errorf("apply(%d) = %d, want 0", v, got)
		}
	}
	for _, v := range []uint16{highlights, highlights + 1, 65535} {
		if got := k.apply(v); got != 255 {
			t.Errorf("apply(%d) = %d, want 255", v, got)
		}
	}
	if got := k.apply(shadows); got != 0 {
		t.Errorf("apply(shadows) = %d, want 0", got)
	}
}

func TestMTFKernelMatchesTransferFunction(t *testing.T) {
	p := ChannelStretchParams{Shadows: 0.1, Highlights: 0.9, Midtones: 0.2, HighlightsExpansion: 1}
	k := newMTFKernel[uint16](p, 65536)

	for _, v := range []uint16{7000, 10000, 20000, 40000, 58000} {
		x := (float32(v) - float32(k.shadows)) / (65535 * (p.Highlights - p.Shadows))
		want := int(MTF(p.Midtones, x) * 255)
		got := int(k.apply(v))
		if got < want-1 || got > want+1 {
			t.Errorf("apply(%d) = %d, want %d±1", v, got, want)
		}
	}
}

func TestMTFKernelIdentity8(t *testing.T) {
	k := newMTFKernel[uint8](IdentityParams(), 256)
	for v := 0; v <= 255; v++ {
		if got := k.apply(uint8(v)); int(got) != v {
			t.Fatalf("identity apply(%d) = %d", v, got)
		}
	}
}

func TestMTFKernelDegenerateRange(t *testing.T) {
	p := ChannelStretchParams{Shadows: 0.5, Highlights: 0.5, Midtones: 0.5, HighlightsExpansion: 1}
	k := newMTFKernel[uint8](p, 256)
	if got := k.apply(126); got != 0 {
		t.Errorf("apply(126) = %d, want 0", got)
	}
	if got := k.apply(127); got != 255 {
		t.Errorf("apply(127) = %d, want 255", got)
	}
}

func TestApplyMTF(t *testing.T) {
	p := ChannelStretchParams{Shadows: 0.1, Highlights: 0.9, Midtones: 0.2, HighlightsExpansion: 1}
	if got, want := ApplyMTF(uint16(30000), 65536, p), newMTFKernel[uint16](p, 65536).apply(30000); got != want {
		t.Fatalf("ApplyMTF = %d, want %d", got, want)
	}
}

func TestMTFKernelZeroMidtones(t *testing.T) {
	p := ChannelStretchParams{Shadows: 0, Highlights: 1, Midtones: 0, HighlightsExpansion: 1}

	k8 := newMTFKernel[uint8](p, 256)
	if got := k8.apply(0); got != 0 {
		t.Errorf("apply(0) = %d, want 0", got)
	}
	for v := 1; v <= 255; v++ {
		if got := k8.apply(uint8(v)); got != 255 {
			t.Fatalf("uint8 apply(%d) = %d, want 255", v, got)
		}
	}

	k16 := newMTFKernel[uint16](p, 65536)
	for _, v := range []uint16{1, 2, 255, 1000, 65534, 65535} {
		if got := k16.apply(v); got != 255 {
			t.Errorf("uint16 apply(%d) = %d, want 255", v, got)
		}
	}
}

func TestMTFKernelExactLevels(t *testing.T) {
	// Every 257th 16-bit level maps exactly onto an 8-bit level under the identity curve.
	k := newMTFKernel[uint16](IdentityParams(), 65536)
	for v := 0; v <= 255; v++ {
		if got := k.apply(uint16(v * 257)); int(got) != v {
			t.Fatalf("apply(%d) = %d, want %d", v*257, got, v)
		}
	}
}
