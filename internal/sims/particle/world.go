// Package particle implements a falling-sand style material world with an
// energy-based heat model. Every cell carries a material id plus scalar
// thermodynamic state (energy, mass, pressure); each Step runs one movement
// pass followed by one thermodynamics pass.
//
// Coordinates: (0,0) is top-left, x grows right, y grows down, so gravity
// pulls toward +y.
package particle

import (
	"errors"

	"github.com/sirupsen/logrus"

	"therm-ca/internal/core"
	"therm-ca/internal/material"
	"therm-ca/internal/thermo"
)

// ErrInvalidDimension reports a non-positive world width or height.
var ErrInvalidDimension = errors.New("width and height must be > 0")

// World owns the per-cell state arrays and orchestrates the tick update.
type World struct {
	cfg Config

	w, h int

	ids []material.ID
	// energy is double buffered so the conduction pass can apply all pair
	// fluxes atomically at the end of the pass.
	energy   *core.PingPong
	mass     []float64
	pressure []float64

	// movedStamp / gasFlowStamp hold the last tick id in which a cell took
	// part in a swap / gas transfer, so a cell acts at most once per tick.
	movedStamp   []int
	gasFlowStamp []int
	tickID       int

	// temps is the per-substep temperature snapshot scratch.
	temps []float64

	rng *core.RNG

	ambientTempC      float64
	ambientPressurePa float64

	frame []uint32

	log logrus.FieldLogger
}

// New constructs a world of the given dimensions with an otherwise default
// configuration. All cells start as air at ambient conditions.
func New(width, height int, seed int64) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Seed = seed
	return NewWithConfig(cfg)
}

// NewWithConfig constructs a world from the provided configuration.
func NewWithConfig(cfg Config) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidDimension
	}
	total := cfg.Width * cfg.Height
	w := &World{
		cfg:               cfg,
		w:                 cfg.Width,
		h:                 cfg.Height,
		ids:               make([]material.ID, total),
		energy:            core.NewPingPong(total),
		mass:              make([]float64, total),
		pressure:          make([]float64, total),
		movedStamp:        make([]int, total),
		gasFlowStamp:      make([]int, total),
		temps:             make([]float64, total),
		rng:               core.NewRNG(cfg.Seed),
		ambientTempC:      thermo.ClampTempC(cfg.AmbientTempC),
		ambientPressurePa: cfg.AmbientPressurePa,
	}
	if w.ambientPressurePa < thermo.MinPressurePa {
		w.ambientPressurePa = thermo.MinPressurePa
	}
	w.Clear()
	return w, nil
}

// SetLogger injects a structured logger. A nil logger disables engine
// logging; the engine never touches global logging state.
func (w *World) SetLogger(l logrus.FieldLogger) { w.log = l }

// Name returns the simulation identifier.
func (w *World) Name() string { return "particle" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Width reports the grid width in cells.
func (w *World) Width() int { return w.w }

// Height reports the grid height in cells.
func (w *World) Height() int { return w.h }

// Tick reports the current tick id.
func (w *World) Tick() int { return w.tickID }

// InBounds reports whether (x, y) lies inside the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.w && y >= 0 && y < w.h
}

func (w *World) index(x, y int) int { return y*w.w + x }

// Reseed replaces the random stream without touching the grid.
func (w *World) Reseed(seed int64) { w.rng.Reseed(seed) }

// Reset rebuilds the initial world deterministically: cleared grid, bedrock
// border, and, when enabled, the procedural terrain scenario.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Reseed(effective)
	w.Clear()
	w.FillBorder(material.Bedrock)
	if w.cfg.Terrain.Enabled {
		w.generateTerrain(effective)
	}
	if w.log != nil {
		w.log.WithFields(logrus.Fields{
			"seed":    effective,
			"width":   w.w,
			"height":  w.h,
			"terrain": w.cfg.Terrain.Enabled,
		}).Info("world reset")
	}
}

// Step advances the simulation by one tick: movement first, then the
// thermodynamics pass over the post-movement grid.
func (w *World) Step() {
	w.tickID++
	w.movementPass()
	w.thermoPass()
}

// MaterialAt returns the material at (x, y). Out-of-bounds coordinates
// resolve to the bedrock boundary material.
func (w *World) MaterialAt(x, y int) material.Material {
	if !w.InBounds(x, y) {
		return material.Lookup(material.Bedrock)
	}
	return material.Lookup(w.ids[w.index(x, y)])
}

// TemperatureCAt returns the derived temperature at (x, y). Out-of-bounds
// coordinates report the ambient temperature.
func (w *World) TemperatureCAt(x, y int) float64 {
	if !w.InBounds(x, y) {
		return w.ambientTempC
	}
	i := w.index(x, y)
	mat := material.Lookup(w.ids[i])
	return thermo.TemperatureC(mat, w.energy.Front()[i], w.mass[i], w.pressure[i])
}

// PressurePaAt returns the last computed pressure at (x, y). Out-of-bounds
// coordinates report the ambient pressure.
func (w *World) PressurePaAt(x, y int) float64 {
	if !w.InBounds(x, y) {
		return w.ambientPressurePa
	}
	return w.pressure[w.index(x, y)]
}

// AmbientTemperatureC reports the ambient reservoir temperature.
func (w *World) AmbientTemperatureC() float64 { return w.ambientTempC }

// AmbientPressurePa reports the ambient reservoir pressure.
func (w *World) AmbientPressurePa() float64 { return w.ambientPressurePa }

// SetAmbientTemperatureC retargets the ambient reservoir and re-derives all
// current air cells against it.
func (w *World) SetAmbientTemperatureC(tempC float64) {
	w.ambientTempC = thermo.ClampTempC(tempC)
	w.rederiveAir()
}

// SetAmbientPressurePa retargets the ambient pressure and re-derives all
// current air cells against it.
func (w *World) SetAmbientPressurePa(pressurePa float64) {
	if pressurePa < thermo.MinPressurePa {
		pressurePa = thermo.MinPressurePa
	}
	w.ambientPressurePa = pressurePa
	w.rederiveAir()
}

// SetCell instantly sets the material at (x, y), discarding thermodynamic
// history: energy resets to the ambient temperature for that material and
// mass is recomputed (ideal-gas law for gases, density for condensed).
func (w *World) SetCell(x, y int, id material.ID) {
	if !w.InBounds(x, y) {
		return
	}
	w.setCellIndex(w.index(x, y), material.Lookup(id))
}

// SetTemperatureC rewrites the energy of (x, y) to match the given
// temperature and immediately re-derives the cell's phase.
func (w *World) SetTemperatureC(x, y int, tempC float64) {
	if !w.InBounds(x, y) {
		return
	}
	w.applyTemperature(w.index(x, y), tempC)
}

// Clear fills the whole grid with air at ambient conditions.
func (w *World) Clear() {
	airMass, airEnergy := w.ambientAirState()
	e := w.energy.Front()
	for i := range w.ids {
		w.ids[i] = material.Air
		e[i] = airEnergy
		w.mass[i] = airMass
		w.pressure[i] = w.ambientPressurePa
	}
}

// FillBorder sets the outer ring of the grid to the given material, leaving
// the interior untouched.
func (w *World) FillBorder(id material.ID) {
	mat := material.Lookup(id)
	for x := 0; x < w.w; x++ {
		w.setCellIndex(w.index(x, 0), mat)
		w.setCellIndex(w.index(x, w.h-1), mat)
	}
	for y := 0; y < w.h; y++ {
		w.setCellIndex(w.index(0, y), mat)
		w.setCellIndex(w.index(w.w-1, y), mat)
	}
}

// PaintCircle paints a filled disc of the material. Out-of-range
// coordinates clamp to the grid; a negative radius is a no-op.
func (w *World) PaintCircle(cx, cy, radius int, id material.ID) {
	mat := material.Lookup(id)
	w.paintDisc(cx, cy, radius, func(i int) {
		w.setCellIndex(i, mat)
	})
}

// PaintCircleWithTemperature paints a disc at an explicit temperature; the
// stored material follows from the phase the energy lands in.
func (w *World) PaintCircleWithTemperature(cx, cy, radius int, id material.ID, tempC float64) {
	mat := material.Lookup(id)
	w.paintDisc(cx, cy, radius, func(i int) {
		w.setCellIndex(i, mat)
		w.applyTemperature(i, tempC)
	})
}

// PaintTemperatureCircle edits only temperature inside the disc; each
// cell's material is kept and its phase re-derived.
func (w *World) PaintTemperatureCircle(cx, cy, radius int, tempC float64) {
	w.paintDisc(cx, cy, radius, func(i int) {
		w.applyTemperature(i, tempC)
	})
}

func (w *World) paintDisc(cx, cy, radius int, apply func(i int)) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	minX := clampInt(cx-radius, 0, w.w-1)
	maxX := clampInt(cx+radius, 0, w.w-1)
	minY := clampInt(cy-radius, 0, w.h-1)
	maxY := clampInt(cy+radius, 0, w.h-1)

	for y := minY; y <= maxY; y++ {
		dy := y - cy
		dy2 := dy * dy
		for x := minX; x <= maxX; x++ {
			dx := x - cx
			if dx*dx+dy2 <= r2 {
				apply(w.index(x, y))
			}
		}
	}
}

func (w *World) setCellIndex(i int, mat material.Material) {
	w.ids[i] = mat.ID
	w.pressure[i] = w.ambientPressurePa
	if mat.Phase == material.Gas {
		w.mass[i] = thermo.MassForPressure(mat, w.ambientPressurePa, w.ambientTempC)
	} else {
		w.mass[i] = mat.DensityKgM3 * thermo.CellVolumeM3
	}
	w.energy.Front()[i] = thermo.EnergyForTemperature(mat, w.ambientTempC, w.mass[i], w.pressure[i])
}

func (w *World) applyTemperature(i int, tempC float64) {
	mat := material.Lookup(w.ids[i])
	e := thermo.EnergyForTemperature(mat, tempC, w.mass[i], w.pressure[i])
	w.energy.Front()[i] = e
	w.ids[i] = thermo.UpdatePhase(mat, e, w.mass[i], w.pressure[i]).ID
}

// ambientAirState returns the mass and energy of one air cell in
// equilibrium with the ambient reservoir.
func (w *World) ambientAirState() (massKg, energyJ float64) {
	air := material.Lookup(material.Air)
	massKg = thermo.MassForPressure(air, w.ambientPressurePa, w.ambientTempC)
	energyJ = thermo.EnergyForTemperature(air, w.ambientTempC, massKg, w.ambientPressurePa)
	return massKg, energyJ
}

func (w *World) rederiveAir() {
	airMass, airEnergy := w.ambientAirState()
	e := w.energy.Front()
	for i, id := range w.ids {
		if id != material.Air {
			continue
		}
		e[i] = airEnergy
		w.mass[i] = airMass
		w.pressure[i] = w.ambientPressurePa
	}
}

// Stats is an aggregate snapshot used by metrics and the sweep tools.
type Stats struct {
	Tick         int
	TotalEnergyJ float64
	TotalMassKg  float64
	SolidCells   int
	LiquidCells  int
	GasCells     int

	// VaporCells counts gas cells other than plain air.
	VaporCells int
}

// Stats sums energy and mass over the grid and counts cells per phase.
func (w *World) Stats() Stats {
	s := Stats{Tick: w.tickID}
	e := w.energy.Front()
	for i, id := range w.ids {
		s.TotalEnergyJ += e[i]
		s.TotalMassKg += w.mass[i]
		switch material.Lookup(id).Phase {
		case material.Solid:
			s.SolidCells++
		case material.Liquid:
			s.LiquidCells++
		case material.Gas:
			s.GasCells++
			if id != material.Air {
				s.VaporCells++
			}
		}
	}
	return s
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func init() {
	core.Register("particle", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		world, err := NewWithConfig(c)
		if err != nil {
			// FromMap only accepts positive dimensions.
			panic(err)
		}
		return world
	})
}
