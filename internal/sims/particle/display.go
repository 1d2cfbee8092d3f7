package particle

import (
	"therm-ca/internal/material"
	"therm-ca/internal/thermo"
)

// RenderMaterialsTo fills buf with one packed 0xAARRGGBB value per cell
// from the material table. Buffers shorter than width*height are ignored.
func (w *World) RenderMaterialsTo(buf []uint32) {
	if len(buf) < len(w.ids) {
		return
	}
	for i, id := range w.ids {
		buf[i] = material.Lookup(id).ColorARGB
	}
}

// RenderTemperatureHeatmapTo fills buf with a heat-gradient view of the
// derived temperatures. Buffers shorter than width*height are ignored.
func (w *World) RenderTemperatureHeatmapTo(buf []uint32) {
	if len(buf) < len(w.ids) {
		return
	}
	w.snapshotTemps()
	for i := range w.ids {
		buf[i] = HeatColorARGB(w.temps[i])
	}
}

// Frame renders the material view into an internally cached buffer,
// satisfying the core.Sim contract.
func (w *World) Frame() []uint32 {
	if len(w.frame) != len(w.ids) {
		w.frame = make([]uint32, len(w.ids))
	}
	w.RenderMaterialsTo(w.frame)
	return w.frame
}

type heatAnchor struct {
	tempC float64
	argb  uint32
}

// heatAnchors is the fixed multi-anchor temperature gradient; colors are
// interpolated per channel, alpha included.
var heatAnchors = []heatAnchor{
	{-273, 0xFF000032},
	{0, 0xFF0A64C8},
	{100, 0xFF00C896},
	{500, 0xFFE6D200},
	{1000, 0xFFFF6400},
	{3000, 0xFFFF1E00},
	{10000, 0xFFFFFFFF},
}

// HeatColorARGB maps a temperature to its gradient color.
func HeatColorARGB(tempC float64) uint32 {
	t := thermo.ClampTempC(tempC)
	if t <= heatAnchors[0].tempC {
		return heatAnchors[0].argb
	}
	last := len(heatAnchors) - 1
	if t >= heatAnchors[last].tempC {
		return heatAnchors[last].argb
	}
	for i := 1; i <= last; i++ {
		if t > heatAnchors[i].tempC {
			continue
		}
		lo, hi := heatAnchors[i-1], heatAnchors[i]
		f := (t - lo.tempC) / (hi.tempC - lo.tempC)
		return lerpARGB(lo.argb, hi.argb, f)
	}
	return heatAnchors[last].argb
}

func lerpARGB(a, b uint32, f float64) uint32 {
	if f <= 0 {
		return a
	}
	if f >= 1 {
		return b
	}
	var out uint32
	for shift := 0; shift < 32; shift += 8 {
		ca := float64((a >> shift) & 0xFF)
		cb := float64((b >> shift) & 0xFF)
		out |= uint32(ca+(cb-ca)*f+0.5) << shift
	}
	return out
}
