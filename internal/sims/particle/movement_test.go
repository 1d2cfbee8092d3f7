package particle

import (
	"math"
	"slices"
	"testing"

	"therm-ca/internal/material"
)

func TestSandFallsIntoAir(t *testing.T) {
	w := newTestWorld(t, 5, 5, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 1, material.Sand)

	w.Step()

	if got := w.MaterialAt(2, 1).ID; got != material.Air {
		t.Fatalf("origin cell is %q, want air", material.Lookup(got).Name)
	}
	if got := w.MaterialAt(2, 2).ID; got != material.Sand {
		t.Fatalf("cell below is %q, want sand", material.Lookup(got).Name)
	}
}

func TestWaterFallsIntoAir(t *testing.T) {
	w := newTestWorld(t, 5, 5, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 1, material.Water)

	w.Step()

	if got := w.MaterialAt(2, 1).ID; got != material.Air {
		t.Fatalf("origin cell is %q, want air", material.Lookup(got).Name)
	}
	if got := w.MaterialAt(2, 2).ID; got != material.Water {
		t.Fatalf("cell below is %q, want water", material.Lookup(got).Name)
	}
}

func TestSandSinksBelowWater(t *testing.T) {
	w := newTestWorld(t, 5, 5, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 1, material.Sand)
	w.SetCell(2, 2, material.Water)

	w.Step()

	if got := w.MaterialAt(2, 1).ID; got != material.Water {
		t.Fatalf("upper cell is %q, want water", material.Lookup(got).Name)
	}
	if got := w.MaterialAt(2, 2).ID; got != material.Sand {
		t.Fatalf("lower cell is %q, want sand", material.Lookup(got).Name)
	}
}

func TestIceFloatsOnWater(t *testing.T) {
	w := newTestWorld(t, 6, 6, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 2, material.Water)
	w.SetCell(2, 3, material.Ice)
	w.SetTemperatureC(2, 3, -10)

	w.Step()

	if got := w.MaterialAt(2, 2).ID; got != material.Ice {
		t.Fatalf("upper cell is %q, want ice", material.Lookup(got).Name)
	}
	if got := w.MaterialAt(2, 3).ID; got != material.Water {
		t.Fatalf("lower cell is %q, want water", material.Lookup(got).Name)
	}
}

func TestSteamRisesThroughAir(t *testing.T) {
	w := newTestWorld(t, 6, 6, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 3, material.Steam)
	w.SetTemperatureC(2, 3, 150)

	w.Step()

	if got := w.MaterialAt(2, 2).ID; got != material.Steam {
		t.Fatalf("cell above is %q, want steam", material.Lookup(got).Name)
	}
}

func TestWaterSpreadsSideways(t *testing.T) {
	w := newTestWorld(t, 5, 5, 42)
	w.FillBorder(material.Bedrock)
	for x := 1; x < 4; x++ {
		w.SetCell(x, 3, material.Stone)
	}
	w.SetCell(2, 2, material.Water)

	w.Step()

	left := w.MaterialAt(1, 2).ID == material.Water
	right := w.MaterialAt(3, 2).ID == material.Water
	if left == right {
		t.Fatalf("water must spread to exactly one side, left=%v right=%v", left, right)
	}
	if w.MaterialAt(2, 2).ID != material.Air {
		t.Fatal("origin cell must be empty after spreading")
	}
}

func TestSwapConservesEnergyAndMass(t *testing.T) {
	w := newTestWorld(t, 5, 5, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 1, material.Sand)
	w.SetCell(2, 2, material.Water)
	w.SetTemperatureC(2, 2, 80)

	a, b := w.index(2, 1), w.index(2, 2)
	e := w.energy.Front()
	energyBefore := e[a] + e[b]
	massBefore := w.mass[a] + w.mass[b]

	// Run the movement pass in isolation so the heat model does not touch
	// the scalars being compared.
	w.tickID++
	w.movementPass()

	e = w.energy.Front()
	if math.Abs((e[a]+e[b])-energyBefore) > 1e-12 {
		t.Fatalf("energy changed across swap: %.15g -> %.15g", energyBefore, e[a]+e[b])
	}
	if math.Abs((w.mass[a]+w.mass[b])-massBefore) > 1e-18 {
		t.Fatalf("mass changed across swap: %.15g -> %.15g", massBefore, w.mass[a]+w.mass[b])
	}
	if w.MaterialAt(2, 2).ID != material.Sand {
		t.Fatal("sand did not sink during isolated movement pass")
	}
}

func TestMovedCellsActOncePerTick(t *testing.T) {
	w := newTestWorld(t, 5, 7, 42)
	w.FillBorder(material.Bedrock)
	w.SetCell(2, 1, material.Sand)

	w.Step()

	// One tick, one row: the grain must not have tunneled further down.
	if got := w.MaterialAt(2, 2).ID; got != material.Sand {
		t.Fatalf("sand at unexpected position, (2,2) holds %q", material.Lookup(got).Name)
	}
	for y := 3; y < 6; y++ {
		if w.MaterialAt(2, y).ID == material.Sand {
			t.Fatalf("sand fell %d rows in a single tick", y-1)
		}
	}
}

func TestStepIsDeterministicForSeed(t *testing.T) {
	build := func(seed int64) *World {
		w := newTestWorld(t, 24, 24, seed)
		w.FillBorder(material.Bedrock)
		w.PaintCircle(12, 5, 3, material.Sand)
		w.PaintCircle(8, 10, 2, material.Water)
		return w
	}

	a := build(7)
	b := build(7)
	for i := 0; i < 50; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.ids, b.ids) {
		t.Fatal("two worlds with the same seed diverged")
	}

	c := build(8)
	for i := 0; i < 50; i++ {
		c.Step()
	}
	if slices.Equal(a.ids, c.ids) {
		t.Fatal("different seeds produced identical runs; rng is not wired")
	}
}
