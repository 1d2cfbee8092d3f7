package particle

import (
	"testing"

	"therm-ca/internal/material"
)

func TestHeatColorHitsAnchorsExactly(t *testing.T) {
	cases := []struct {
		tempC float64
		want  uint32
	}{
		{-273, 0xFF000032},
		{0, 0xFF0A64C8},
		{100, 0xFF00C896},
		{500, 0xFFE6D200},
		{1000, 0xFFFF6400},
		{3000, 0xFFFF1E00},
		{10000, 0xFFFFFFFF},
	}
	for _, c := range cases {
		if got := HeatColorARGB(c.tempC); got != c.want {
			t.Errorf("HeatColorARGB(%.0f) = %08X, want %08X", c.tempC, got, c.want)
		}
	}
}

func TestHeatColorClampsOutOfRange(t *testing.T) {
	if got := HeatColorARGB(-5000); got != 0xFF000032 {
		t.Errorf("below range: %08X", got)
	}
	if got := HeatColorARGB(50000); got != 0xFFFFFFFF {
		t.Errorf("above range: %08X", got)
	}
}

func TestHeatColorInterpolatesBetweenAnchors(t *testing.T) {
	// Midpoint of the 0..100 span: each channel halfway, rounded.
	want := uint32(0xFF)<<24 | uint32(0x05)<<16 | uint32(0x96)<<8 | uint32(0xAF)
	if got := HeatColorARGB(50); got != want {
		t.Errorf("HeatColorARGB(50) = %08X, want %08X", got, want)
	}
}

func TestRenderMaterialsUsesTableColors(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1)
	w.SetCell(1, 1, material.Sand)
	w.SetCell(2, 2, material.Water)

	buf := make([]uint32, 16)
	w.RenderMaterialsTo(buf)

	if buf[w.index(1, 1)] != material.Lookup(material.Sand).ColorARGB {
		t.Error("sand cell rendered with wrong color")
	}
	if buf[w.index(2, 2)] != material.Lookup(material.Water).ColorARGB {
		t.Error("water cell rendered with wrong color")
	}
	if buf[w.index(0, 0)] != material.Lookup(material.Air).ColorARGB {
		t.Error("air cell rendered with wrong color")
	}
}

func TestRenderIgnoresShortBuffer(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1)
	short := make([]uint32, 3)
	w.RenderMaterialsTo(short)
	w.RenderTemperatureHeatmapTo(short)
	for i, v := range short {
		if v != 0 {
			t.Fatalf("short buffer written at %d", i)
		}
	}
}

func TestFrameIsStableAcrossCalls(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1)
	a := w.Frame()
	b := w.Frame()
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("frame length %d, want 16", len(a))
	}
	if &a[0] != &b[0] {
		t.Error("Frame must reuse its cached buffer")
	}
}
