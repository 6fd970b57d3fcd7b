package autostretch

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestMTF(t *testing.T) {
	tests := []struct {
		m, x, want float32
	}{
		{0.5, 0.3, 0.3},
		{0.5, 0.0, 0.0},
		{0.25, 1.0, 1.0},
		{0.25, 0.25, 0.5},
		{0.75, 0.75, 0.5},
		{1, 0.5, 0},
		{0, 0.5, 1},
	}
	for _, tt := range tests {
		if got := MTF(tt.m, tt.x); !near(got, tt.want, 1e-6) {
			t.Errorf("MTF(%v, %v) = %v, want %v", tt.m, tt.x, got, tt.want)
		}
	}
}

func TestMidtonesForInvertsMTF(t *testing.T) {
	for _, x := range []float32{0.01, 0.05, 0.1, 0.3, 0.6, 0.9} {
		for _, y := range []float32{0.1, 0.25, 0.4, 0.8} {
			m := MidtonesFor(x, y)
			if got := MTF(m, x); !near(got, y, 1e-5) {
				t.Errorf("MTF(MidtonesFor(%v, %v), %v) = %v", x, y, x, got)
			}
		}
	}
}

func TestMidtonesForSpecialCases(t *testing.T) {
	if got := MidtonesFor(0, 0.25); got != 0 {
		t.Errorf("x=0: got %v, want 0", got)
	}
	if got := MidtonesFor(0.25, 0.25); got != 0.5 {
		t.Errorf("x=y: got %v, want 0.5", got)
	}
	if got := MidtonesFor(1, 0.25); got != 1 {
		t.Errorf("x=1: got %v, want 1", got)
	}
}

func TestSolveChannelDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		median   float32
		midtones float32
	}{
		{"black", 0, 0},
		{"at target", 63.75, 0.5},
		{"white", 255, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SolveChannel(tt.median, 0, 256)
			want := ChannelStretchParams{
				Shadows:             0,
				Highlights:          1,
				Midtones:            tt.midtones,
				HighlightsExpansion: 1,
			}
			if diff := cmp.Diff(want, p); diff != "" {
				t.Fatalf("unexpected params (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSolveChannelLowerHalfClipsShadows(t *testing.T) {
	const median, mad = 50, 5
	p := SolveChannel(median, mad, 256)

	nm := float32(median) / 255
	madn := float32(1.4826*mad) / 255
	if !near(p.Shadows, nm-2.8*madn, 1e-6) {
		t.Errorf("shadows = %v, want %v", p.Shadows, nm-2.8*madn)
	}
	if p.Highlights != 1 {
		t.Errorf("highlights = %v, want 1", p.Highlights)
	}
	// the median lands on the target background
	if got := MTF(p.Midtones, nm-p.Shadows); !near(got, 0.25, 1e-5) {
		t.Errorf("MTF at median = %v, want 0.25", got)
	}
	if p.ShadowsExpansion != 0 || p.HighlightsExpansion != 1 {
		t.Errorf("unexpected expansion %v %v", p.ShadowsExpansion, p.HighlightsExpansion)
	}
}

func TestSolveChannelUpperHalfClipsHighlights(t *testing.T) {
	const median, mad = 50000, 1000
	p := SolveChannel(median, mad, 65536)

	nm := float32(median) / 65535
	madn := float32(1.4826*mad) / 65535
	if !near(p.Highlights, nm+2.8*madn, 1e-6) {
		t.Errorf("highlights = %v, want %v", p.Highlights, nm+2.8*madn)
	}
	if p.Shadows != 0 {
		t.Errorf("shadows = %v, want 0", p.Shadows)
	}
	if want := MidtonesFor(0.25, p.Highlights-nm); p.Midtones != want {
		t.Errorf("midtones = %v, want %v", p.Midtones, want)
	}
}

func TestSolveChannelClampsShadows(t *testing.T) {
	// a very noisy dark channel would put shadows below zero
	p := SolveChannel(10, 200, 256)
	if p.Shadows != 0 {
		t.Fatalf("shadows = %v, want 0", p.Shadows)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range []string{"none", "slight", "moderate", "normal", "hard"} {
		p, err := ParsePreset(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.String() != name {
			t.Errorf("round trip %q: got %q", name, p.String())
		}
	}
	if _, err := ParsePreset("extreme"); err == nil {
		t.Error("expected error for unknown preset")
	}

	if diff := cmp.Diff(IdentityParams(), PresetNone.SolverOptions().Solve(50, 5, 256)); diff != "" {
		t.Errorf("PresetNone must be linear (-want +got):\n%s", diff)
	}

	// a stronger preset brightens the median more
	var prev float32
	for _, p := range []Preset{PresetSlight, PresetModerate, PresetNormal, PresetHard} {
		cp := p.SolverOptions().Solve(50, 5, 256)
		level := MTF(cp.Midtones, 50.0/255-cp.Shadows)
		if level <= prev {
			t.Errorf("%s: median level %v not above %v", p, level, prev)
		}
		prev = level
	}
}
