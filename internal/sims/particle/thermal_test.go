package particle

import (
	"math"
	"testing"

	"therm-ca/internal/material"
	"therm-ca/internal/thermo"
)

func totalEnergy(w *World) float64 {
	sum := 0.0
	for _, v := range w.energy.Front() {
		sum += v
	}
	return sum
}

func totalMass(w *World) float64 {
	sum := 0.0
	for _, v := range w.mass {
		sum += v
	}
	return sum
}

func TestConductionPullsPairTowardEqual(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			w.SetCell(x, y, material.Stone)
		}
	}
	w.SetTemperatureC(1, 1, 500)

	hotBefore := w.TemperatureCAt(1, 1)
	coldBefore := w.TemperatureCAt(2, 1)
	w.recomputePressure()
	w.conduct(w.cfg.Params.TickSeconds)

	if got := w.TemperatureCAt(1, 1); got >= hotBefore {
		t.Fatalf("hot cell did not cool: %.3f -> %.3f", hotBefore, got)
	}
	if got := w.TemperatureCAt(2, 1); got <= coldBefore {
		t.Fatalf("neighbor did not warm: %.3f -> %.3f", coldBefore, got)
	}
}

func TestConductionConservesTotalEnergy(t *testing.T) {
	w := newTestWorld(t, 6, 6, 1)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			w.SetCell(x, y, material.Stone)
		}
	}
	w.SetTemperatureC(2, 2, 900)
	w.SetTemperatureC(4, 4, -50)

	before := totalEnergy(w)
	w.recomputePressure()
	for i := 0; i < 20; i++ {
		w.conduct(w.cfg.Params.TickSeconds)
	}
	after := totalEnergy(w)

	if rel := math.Abs(after-before) / before; rel > 1e-9 {
		t.Fatalf("conduction leaked energy: %.9g -> %.9g", before, after)
	}
}

func TestConductionNeverOvershootsEqualization(t *testing.T) {
	w := newTestWorld(t, 4, 3, 1)
	w.SetCell(1, 1, material.Stone)
	w.SetCell(2, 1, material.Stone)
	w.SetTemperatureC(1, 1, 100)
	w.SetTemperatureC(2, 1, 0)

	w.recomputePressure()
	for i := 0; i < 500; i++ {
		w.conduct(w.cfg.Params.TickSeconds)
		if w.TemperatureCAt(1, 1) < w.TemperatureCAt(2, 1)-1e-6 {
			t.Fatalf("pair crossed over at iteration %d: %.4f vs %.4f",
				i, w.TemperatureCAt(1, 1), w.TemperatureCAt(2, 1))
		}
	}
}

func TestAmbientCouplingRelaxesAir(t *testing.T) {
	w := newTestWorld(t, 4, 4, 1)
	w.SetTemperatureC(2, 2, 200)

	prev := w.TemperatureCAt(2, 2)
	for i := 0; i < 300; i++ {
		w.coupleAmbient(w.cfg.Params.TickSeconds)
		cur := w.TemperatureCAt(2, 2)
		if cur > prev+1e-9 {
			t.Fatalf("air moved away from ambient at iteration %d", i)
		}
		prev = cur
	}
	if math.Abs(prev-w.AmbientTemperatureC()) > 0.5 {
		t.Fatalf("air did not relax to ambient, still at %.2f", prev)
	}
	i := w.index(2, 2)
	if w.pressure[i] != w.AmbientPressurePa() {
		t.Fatal("coupled air must sit at ambient pressure")
	}
}

func TestRadiationCoolsExposedHotCell(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	w.SetCell(2, 2, material.Stone)
	w.SetTemperatureC(2, 2, 1200)

	before := w.TemperatureCAt(2, 2)
	w.recomputePressure()
	w.radiate(w.cfg.Params.TickSeconds)

	if got := w.TemperatureCAt(2, 2); got >= before {
		t.Fatalf("exposed hot stone did not radiate: %.2f -> %.2f", before, got)
	}
}

func TestRadiationSkipsEnclosedCell(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		w.SetCell(2+d[0], 2+d[1], material.Stone)
	}
	w.SetCell(2, 2, material.Stone)
	w.SetTemperatureC(2, 2, 1200)

	i := w.index(2, 2)
	before := w.energy.Front()[i]
	w.recomputePressure()
	w.radiate(w.cfg.Params.TickSeconds)

	if got := w.energy.Front()[i]; got != before {
		t.Fatalf("enclosed cell lost %.6g J to radiation", before-got)
	}
}

func TestRadiationSkipsWarmCells(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	w.SetCell(2, 2, material.Stone)
	w.SetTemperatureC(2, 2, thermo.RadiationVisibleStartC-50)

	i := w.index(2, 2)
	before := w.energy.Front()[i]
	w.recomputePressure()
	w.radiate(w.cfg.Params.TickSeconds)

	if got := w.energy.Front()[i]; got != before {
		t.Fatal("cell below the visible-glow threshold must not radiate")
	}
}

func TestVentingMovesMassIntoSteamAndConserves(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	w.SetCell(2, 2, material.Water)
	i := w.index(2, 2)

	// Push the cell past the boiling plateau start so there is excess
	// enthalpy to carry mass away.
	th := thermo.ThresholdsFor(material.FamilyWater, w.mass[i], w.pressure[i])
	w.energy.Front()[i] = th.BoilStart + 1000

	massBefore := totalMass(w)
	energyBefore := totalEnergy(w)
	liquidMassBefore := w.mass[i]

	w.tickID++
	w.ventBoiling()

	if w.mass[i] >= liquidMassBefore {
		t.Fatal("boiling liquid did not lose mass")
	}
	if got := w.MaterialAt(1, 2).ID; got != material.Steam {
		t.Fatalf("vent target is %q, want steam", material.Lookup(got).Name)
	}
	if math.Abs(totalMass(w)-massBefore) > 1e-15 {
		t.Fatalf("venting changed total mass: %.15g -> %.15g", massBefore, totalMass(w))
	}
	if math.Abs(totalEnergy(w)-energyBefore) > 1e-6 {
		t.Fatalf("venting changed total energy: %.9g -> %.9g", energyBefore, totalEnergy(w))
	}
	if w.gasFlowStamp[w.index(1, 2)] != w.tickID {
		t.Fatal("vent receiver was not stamped against same-tick diffusion")
	}
}

func TestVentingFlashesNearlyEmptyLiquid(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	w.SetCell(2, 2, material.Water)
	i := w.index(2, 2)

	mat := material.Lookup(material.Water)
	w.mass[i] = 0.02 * mat.DensityKgM3 * thermo.CellVolumeM3
	th := thermo.ThresholdsFor(material.FamilyWater, w.mass[i], w.pressure[i])
	w.energy.Front()[i] = th.BoilStart + th.BoilStart*0.01

	w.tickID++
	w.ventBoiling()

	if got := w.ids[i]; got != material.Steam {
		t.Fatalf("depleted liquid is %q, want steam", material.Lookup(got).Name)
	}
}

func TestGasDiffusionFollowsPressureAndConserves(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	w.SetCell(2, 2, material.Steam)
	i := w.index(2, 2)
	w.mass[i] *= 10
	w.recomputePressure()

	massBefore := totalMass(w)
	energyBefore := totalEnergy(w)

	w.tickID++
	w.diffuseGas()

	n := w.index(1, 2)
	if got := w.ids[n]; got != material.Steam {
		t.Fatalf("receiver is %q, want steam", material.Lookup(got).Name)
	}
	if w.pressure[i] <= w.pressure[n]-w.cfg.Params.GasFlowThresholdPa {
		t.Fatal("transfer inverted the pressure gradient")
	}
	if math.Abs(totalMass(w)-massBefore) > 1e-15 {
		t.Fatalf("diffusion changed total mass: %.15g -> %.15g", massBefore, totalMass(w))
	}
	if math.Abs(totalEnergy(w)-energyBefore) > 1e-6 {
		t.Fatalf("diffusion changed total energy: %.9g -> %.9g", energyBefore, totalEnergy(w))
	}
	if w.gasFlowStamp[i] != w.tickID || w.gasFlowStamp[n] != w.tickID {
		t.Fatal("both ends of the transfer must carry the tick stamp")
	}

	// Same tick, second pass: the stamps block any further flow.
	srcMass := w.mass[i]
	w.diffuseGas()
	if w.mass[i] != srcMass {
		t.Fatal("stamped cell flowed twice in one tick")
	}
}

func TestDepletedGasRevertsToAir(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	w.SetCell(2, 2, material.Steam)
	i := w.index(2, 2)
	w.mass[i] = w.cfg.Params.GasMinMassKg / 10
	w.recomputePressure()

	w.tickID++
	w.diffuseGas()

	if w.ids[i] != material.Air {
		t.Fatal("depleted vapor must revert to air")
	}
	airMass, _ := w.ambientAirState()
	if w.mass[i] != airMass {
		t.Fatalf("reverted cell mass %.6g, want ambient air mass %.6g", w.mass[i], airMass)
	}
	if w.pressure[i] != w.AmbientPressurePa() {
		t.Fatal("reverted cell must sit at ambient pressure")
	}
}

func TestHydrostaticPressureGrowsWithDepth(t *testing.T) {
	w := newTestWorld(t, 4, 8, 1)
	for y := 1; y < 7; y++ {
		w.SetCell(2, y, material.Water)
	}
	w.recomputePressure()

	perCell := material.Lookup(material.Water).DensityKgM3 * thermo.CellVolumeM3 *
		thermo.GravityMS2 / thermo.CellFaceAreaM2 * w.cfg.Params.PressureScale
	want := w.AmbientPressurePa()
	for y := 1; y < 7; y++ {
		want += perCell
		got := w.PressurePaAt(2, y)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("depth %d: pressure %.3f, want %.3f", y, got, want)
		}
	}
}

func TestGasColumnResetsHydrostaticBaseline(t *testing.T) {
	w := newTestWorld(t, 4, 10, 1)
	for y := 1; y < 4; y++ {
		w.SetCell(2, y, material.Water)
	}
	// Air gap at y=4..5, second pool below.
	for y := 6; y < 9; y++ {
		w.SetCell(2, y, material.Water)
	}
	w.recomputePressure()

	topOfLower := w.PressurePaAt(2, 6)
	bottomOfUpper := w.PressurePaAt(2, 3)
	if topOfLower >= bottomOfUpper {
		t.Fatalf("air gap did not reset the column: %.1f >= %.1f", topOfLower, bottomOfUpper)
	}
}
