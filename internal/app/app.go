//go:build ebiten

package app

import (
	"time"

	"therm-ca/internal/core"
	"therm-ca/internal/material"
	"therm-ca/internal/render"
	"therm-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type brushSim interface {
	PaintCircle(cx, cy, radius int, id material.ID)
	PaintTemperatureCircle(cx, cy, radius int, tempC float64)
}

const (
	heatBrushTempC = 1200
	coldBrushTempC = -150

	minBrushRadius = 0
	maxBrushRadius = 16
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.FramePainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64

	brushIndex  int
	brushRadius int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:         sim,
		painter:     render.NewFramePainter(size.W, size.H),
		overlay:     ui.NewOverlay(sim, scale),
		hud:         ui.NewHUD(sim, hudWidth),
		scale:       scale,
		hudWidth:    hudWidth,
		seed:        seed,
		brushRadius: 3,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.brushIndex = (g.brushIndex + 1) % len(material.Palette())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && g.brushRadius > minBrushRadius {
		g.brushRadius--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && g.brushRadius < maxBrushRadius {
		g.brushRadius++
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.sim.Size().W * g.scale)
	}
	g.handleBrush()

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// handleBrush paints into the world while a mouse button is held: left lays
// down the selected material, right applies the heat gun, shift+right the
// cold gun.
func (g *Game) handleBrush() {
	brush, ok := g.sim.(brushSim)
	if !ok {
		return
	}
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}

	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		return
	}
	cx, cy := mx/g.scale, my/g.scale

	if left {
		brush.PaintCircle(cx, cy, g.brushRadius, material.Palette()[g.brushIndex])
		return
	}
	temp := float64(heatBrushTempC)
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		temp = coldBrushTempC
	}
	brush.PaintTemperatureCircle(cx, cy, g.brushRadius, temp)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Frame(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
