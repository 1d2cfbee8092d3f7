//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"therm-ca/internal/core"
	"therm-ca/internal/material"
	"therm-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type heatmapProvider interface {
	RenderTemperatureHeatmapTo(buf []uint32)
}

type cellProbe interface {
	MaterialAt(x, y int) material.Material
	TemperatureCAt(x, y int) float64
	PressurePaAt(x, y int) float64
}

const keyHelp = "space pause  n step  r/s reset  tab brush  [ ] radius  h heatmap  f1 info  q quit"

// Overlay draws the temperature heatmap, the hovered-cell readout and the
// key help on top of the material view.
type Overlay struct {
	sim   core.Sim
	scale int

	showHeat bool
	showInfo bool

	img   *ebiten.Image
	buf   []byte
	frame []uint32
}

// NewOverlay constructs an overlay bound to the simulation view.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showInfo: true}
}

// HeatmapVisible reports whether the heatmap layer is currently toggled on.
func (o *Overlay) HeatmapVisible() bool { return o != nil && o.showHeat }

// Update handles overlay key toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.showInfo = !o.showInfo
	}
}

// Draw renders the overlay layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showHeat {
		o.drawHeatmap(screen)
	}
	if o.showInfo {
		o.drawInfo(screen)
	}
}

func (o *Overlay) drawHeatmap(screen *ebiten.Image) {
	provider, ok := o.sim.(heatmapProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if total <= 0 {
		return
	}
	if o.img == nil || o.img.Bounds().Dx() != size.W || o.img.Bounds().Dy() != size.H {
		o.img = ebiten.NewImage(size.W, size.H)
		o.buf = make([]byte, 4*total)
		o.frame = make([]uint32, total)
	}

	provider.RenderTemperatureHeatmapTo(o.frame)
	render.FillRGBA(o.buf, o.frame)
	o.img.ReplacePixels(o.buf)

	op := &ebiten.DrawImageOptions{}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.img, op)
}

// drawInfo paints the key help along the bottom edge and, when the cursor is
// over the grid, the hovered cell's material, temperature and pressure.
func (o *Overlay) drawInfo(screen *ebiten.Image) {
	face := basicfont.Face7x13
	size := o.sim.Size()
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	height := size.H * scale
	fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	text.Draw(screen, keyHelp, face, 4, height-4, fg)

	probe, ok := o.sim.(cellProbe)
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= size.W*scale || my >= height {
		return
	}
	cx, cy := mx/scale, my/scale
	mat := probe.MaterialAt(cx, cy)
	readout := fmt.Sprintf("(%d,%d) %s  %.1f C  %.0f Pa",
		cx, cy, mat.Name, probe.TemperatureCAt(cx, cy), probe.PressurePaAt(cx, cy))
	text.Draw(screen, readout, face, 4, 14, fg)
}
