package particle

import (
	"math"

	"github.com/sirupsen/logrus"

	"therm-ca/internal/material"
	"therm-ca/internal/thermo"
)

// thermoPass runs the heat model over the post-movement grid. The sub-step
// order follows the reference behavior: pressure, conduction, ambient
// coupling, radiation, phase update, boiling venting, gas diffusion. Note
// that radiation running before the phase update makes venting sensitive to
// this exact ordering; treat it as behavioral fidelity, not physics.
func (w *World) thermoPass() {
	dt := w.cfg.Params.TickSeconds
	w.recomputePressure()
	w.conduct(dt)
	w.coupleAmbient(dt)
	w.radiate(dt)
	w.reevaluatePhases()
	w.ventBoiling()
	w.diffuseGas()
}

// snapshotTemps derives a consistent temperature view of the whole grid so
// a sub-step never mixes pre- and post-update temperatures.
func (w *World) snapshotTemps() {
	e := w.energy.Front()
	for i, id := range w.ids {
		mat := material.Lookup(id)
		w.temps[i] = thermo.TemperatureC(mat, e[i], w.mass[i], w.pressure[i])
	}
}

// recomputePressure refreshes the pressure field: ideal-gas pressure for
// gas cells, hydrostatic accumulation down condensed columns starting from
// the ambient baseline. A gas cell resets the column baseline.
func (w *World) recomputePressure() {
	w.snapshotTemps()
	scale := w.cfg.Params.PressureScale
	for x := 0; x < w.w; x++ {
		column := w.ambientPressurePa
		for y := 0; y < w.h; y++ {
			i := w.index(x, y)
			mat := material.Lookup(w.ids[i])
			if mat.Phase == material.Gas {
				w.pressure[i] = thermo.PressureForMass(mat, w.mass[i], w.temps[i])
				column = w.ambientPressurePa
				continue
			}
			column += w.mass[i] * thermo.GravityMS2 / thermo.CellFaceAreaM2 * scale
			if column > thermo.MaxPressurePa {
				column = thermo.MaxPressurePa
			}
			w.pressure[i] = column
		}
	}
}

// conduct exchanges energy between horizontally and vertically adjacent
// cells. Fluxes are computed against the start-of-pass snapshot and applied
// into the back buffer, then the buffers swap, so the scan order cannot
// bias the result.
func (w *World) conduct(dt float64) {
	w.snapshotTemps()
	w.energy.StageBack()
	next := w.energy.Back()

	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := w.index(x, y)
			if x+1 < w.w {
				w.conductPair(next, i, i+1, dt)
			}
			if y+1 < w.h {
				w.conductPair(next, i, i+w.w, dt)
			}
		}
	}
	w.energy.Swap()
}

func (w *World) conductPair(next []float64, a, b int, dt float64) {
	ma := material.Lookup(w.ids[a])
	mb := material.Lookup(w.ids[b])
	k1, k2 := ma.ConductivityWMK, mb.ConductivityWMK
	if k1 <= 0 || k2 <= 0 {
		return
	}
	dT := w.temps[a] - w.temps[b]
	if dT == 0 {
		return
	}
	// Effective conductivity of the contact is the harmonic mean.
	keff := 2 * k1 * k2 / (k1 + k2)
	q := keff * thermo.CellSizeM * math.Abs(dT) * dt

	// Never push a pair past equalization in a single tick.
	ca := w.mass[a] * ma.SpecificHeatJKgK
	cb := w.mass[b] * mb.SpecificHeatJKgK
	cMin := ca
	if cb < cMin {
		cMin = cb
	}
	if cap := 0.5 * math.Abs(dT) * cMin; q > cap {
		q = cap
	}

	hot, cold := a, b
	if dT < 0 {
		hot, cold = b, a
	}
	if q > next[hot] {
		q = next[hot]
	}
	next[hot] -= q
	next[cold] += q
}

// coupleAmbient relaxes every air cell toward the ambient reservoir. Air is
// an open boundary: its mass and pressure snap back to ambient values, and
// its energy decays exponentially toward the ambient target.
func (w *World) coupleAmbient(dt float64) {
	rate := w.cfg.Params.AmbientCouplingRate
	if rate <= 0 {
		return
	}
	factor := 1 - math.Exp(-rate*dt)
	airMass, airEnergy := w.ambientAirState()
	e := w.energy.Front()
	for i, id := range w.ids {
		if id != material.Air {
			continue
		}
		e[i] += (airEnergy - e[i]) * factor
		w.mass[i] = airMass
		w.pressure[i] = w.ambientPressurePa
	}
}

// radiate applies Stefan-Boltzmann cooling to hot condensed cells in
// proportion to how many of their four axis neighbors are gas. A cell fully
// enclosed by condensed matter has no exposed face and does not radiate.
func (w *World) radiate(dt float64) {
	scale := w.cfg.Params.RadiationScale
	if scale <= 0 {
		return
	}
	w.snapshotTemps()
	ambK := w.ambientTempC + 273.15
	ambK4 := ambK * ambK * ambK * ambK
	e := w.energy.Front()

	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := w.index(x, y)
			mat := material.Lookup(w.ids[i])
			if mat.Phase == material.Gas || mat.Emissivity <= 0 {
				continue
			}
			t := w.temps[i]
			if t < thermo.RadiationVisibleStartC || t <= w.ambientTempC {
				continue
			}
			exposed := w.exposedFaces(x, y)
			if exposed == 0 {
				continue
			}
			tK := t + 273.15
			tK4 := tK * tK * tK * tK
			q := mat.Emissivity * thermo.StefanBoltzmann * thermo.CellFaceAreaM2 *
				float64(exposed) * (tK4 - ambK4) * dt * scale
			e[i] -= q
			if e[i] < 0 {
				e[i] = 0
			}
		}
	}
}

func (w *World) exposedFaces(x, y int) int {
	exposed := 0
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nx, ny := x+d[0], y+d[1]
		if !w.InBounds(nx, ny) {
			continue
		}
		if material.Lookup(w.ids[w.index(nx, ny)]).Phase == material.Gas {
			exposed++
		}
	}
	return exposed
}

// reevaluatePhases recomputes every non-phase-locked cell's identity from
// its energy band. Air never changes identity here.
func (w *World) reevaluatePhases() {
	e := w.energy.Front()
	for i, id := range w.ids {
		if id == material.Air {
			continue
		}
		mat := material.Lookup(id)
		next := thermo.UpdatePhase(mat, e[i], w.mass[i], w.pressure[i])
		if next.ID != id {
			w.ids[i] = next.ID
		}
	}
}

// ventBoiling moves mass out of boiling liquids. The enthalpy model alone
// would let a liquid sit on the boiling plateau forever; in an open system
// the excess energy has to carry mass away as vapor.
func (w *World) ventBoiling() {
	e := w.energy.Front()
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := w.index(x, y)
			mat := material.Lookup(w.ids[i])
			if mat.Phase != material.Liquid || mat.PhaseLocked {
				continue
			}
			m := w.mass[i]
			if m <= 0 {
				continue
			}
			th := thermo.ThresholdsFor(mat.Family, m, w.pressure[i])
			excess := e[i] - th.BoilStart
			if excess <= 0 {
				continue
			}

			dm := excess / thermo.LatentVaporJKg(mat.Family)
			if maxDm := w.cfg.Params.VentMaxFraction * m; dm > maxDm {
				dm = maxDm
			}
			if dm <= 0 {
				continue
			}

			target := w.ventTarget(x, y, mat.Family)
			if target >= 0 {
				share := e[i] * dm / m
				w.mass[i] -= dm
				e[i] -= share
				if w.ids[target] == material.Air {
					w.ids[target] = material.GasOf(mat.Family).ID
				}
				w.mass[target] += dm
				e[target] += share
				w.gasFlowStamp[target] = w.tickID
			}

			full := mat.DensityKgM3 * thermo.CellVolumeM3
			if w.mass[i] < w.cfg.Params.VentMinMassFraction*full {
				w.ids[i] = material.GasOf(mat.Family).ID
				if w.log != nil {
					w.log.WithFields(logrus.Fields{
						"x": x, "y": y, "family": mat.Family.String(),
					}).Debug("liquid fully vented to vapor")
				}
			}
		}
	}
}

// ventTarget picks the first adjacent cell (left, right, up, down) that can
// receive vapor of the family: plain air or the family's own gas.
func (w *World) ventTarget(x, y int, f material.Family) int {
	vapor := material.GasOf(f).ID
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nx, ny := x+d[0], y+d[1]
		if !w.InBounds(nx, ny) {
			continue
		}
		n := w.index(nx, ny)
		if w.ids[n] == material.Air || w.ids[n] == vapor {
			return n
		}
	}
	return -1
}

// diffuseGas moves mass between gas cells down pressure differentials. A
// cell transfers at most once per tick and a receiver is flagged so it does
// not immediately re-flow.
func (w *World) diffuseGas() {
	threshold := w.cfg.Params.GasFlowThresholdPa
	maxFrac := w.cfg.Params.GasFlowMaxFraction
	e := w.energy.Front()

	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := w.index(x, y)
			mat := material.Lookup(w.ids[i])
			if mat.Phase != material.Gas || mat.ID == material.Air {
				continue
			}
			if w.gasFlowStamp[i] == w.tickID {
				continue
			}
			m := w.mass[i]
			if m <= 0 {
				w.revertToAir(i)
				continue
			}

			vapor := material.GasOf(mat.Family).ID
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nx, ny := x+d[0], y+d[1]
				if !w.InBounds(nx, ny) {
					continue
				}
				n := w.index(nx, ny)
				if w.ids[n] != material.Air && w.ids[n] != vapor {
					continue
				}
				dp := w.pressure[i] - w.pressure[n]
				if dp <= threshold {
					continue
				}

				frac := dp / w.pressure[i]
				if frac > maxFrac {
					frac = maxFrac
				}
				dm := m * frac
				if dm <= 0 {
					continue
				}
				share := e[i] * dm / m

				w.mass[i] -= dm
				e[i] -= share
				if w.ids[n] == material.Air {
					w.ids[n] = vapor
				}
				w.mass[n] += dm
				e[n] += share

				// Refresh local pressures so cells later in the scan see
				// the post-transfer state.
				w.pressure[i] = thermo.PressureForMass(mat,
					w.mass[i], thermo.TemperatureC(mat, e[i], w.mass[i], w.pressure[i]))
				nm := material.Lookup(w.ids[n])
				w.pressure[n] = thermo.PressureForMass(nm,
					w.mass[n], thermo.TemperatureC(nm, e[n], w.mass[n], w.pressure[n]))

				w.gasFlowStamp[i] = w.tickID
				w.gasFlowStamp[n] = w.tickID
				break
			}

			if w.mass[i] < w.cfg.Params.GasMinMassKg {
				w.revertToAir(i)
			}
		}
	}
}

func (w *World) revertToAir(i int) {
	airMass, airEnergy := w.ambientAirState()
	w.ids[i] = material.Air
	w.mass[i] = airMass
	w.energy.Front()[i] = airEnergy
	w.pressure[i] = w.ambientPressurePa
}
