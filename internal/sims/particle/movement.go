package particle

import "therm-ca/internal/material"

// movementPass runs the gravity automaton. Rows are scanned bottom-up so a
// cell cannot fall through several rows in one tick; the x direction
// alternates per row, starting from a random side each tick to avoid a
// systematic lateral bias. The outer ring is excluded from the scan, so
// neighbor reads inside the pass never leave the grid.
func (w *World) movementPass() {
	leftToRight := w.rng.Bool()
	for y := w.h - 2; y >= 1; y-- {
		if leftToRight {
			for x := 1; x < w.w-1; x++ {
				w.updateCell(x, y)
			}
		} else {
			for x := w.w - 2; x >= 1; x-- {
				w.updateCell(x, y)
			}
		}
		leftToRight = !leftToRight
	}
}

func (w *World) updateCell(x, y int) {
	idx := w.index(x, y)
	if w.movedStamp[idx] == w.tickID {
		return
	}
	mat := material.Lookup(w.ids[idx])
	if mat.Immobile || mat.ID == material.Air {
		return
	}
	switch mat.Phase {
	case material.Solid:
		w.moveSolid(idx, mat)
	case material.Liquid:
		w.moveLiquid(idx)
	case material.Gas:
		w.moveGas(idx)
	}
}

// canSolidSink reports whether a granular solid may displace the target:
// any gas, or a liquid it is strictly denser than. The density comparison
// is what makes ice float on water while sand sinks through it.
func canSolidSink(self, target material.Material) bool {
	if target.Immobile {
		return false
	}
	switch target.Phase {
	case material.Gas:
		return true
	case material.Liquid:
		return self.DensityKgM3 > target.DensityKgM3
	default:
		return false
	}
}

func (w *World) moveSolid(idx int, mat material.Material) {
	// Buoyancy: a solid lighter than the liquid directly above it rises.
	aboveIdx := idx - w.w
	above := material.Lookup(w.ids[aboveIdx])
	if above.Phase == material.Liquid && !above.Immobile &&
		above.DensityKgM3 > mat.DensityKgM3 {
		w.swap(idx, aboveIdx)
		return
	}

	belowIdx := idx + w.w
	if canSolidSink(mat, material.Lookup(w.ids[belowIdx])) {
		w.swap(idx, belowIdx)
		return
	}

	downLeft := belowIdx - 1
	downRight := belowIdx + 1
	first, second := downLeft, downRight
	if !w.rng.Bool() {
		first, second = downRight, downLeft
	}
	if canSolidSink(mat, material.Lookup(w.ids[first])) {
		w.swap(idx, first)
	} else if canSolidSink(mat, material.Lookup(w.ids[second])) {
		w.swap(idx, second)
	}
}

func isGas(m material.Material) bool {
	return m.Phase == material.Gas
}

func (w *World) moveLiquid(idx int) {
	// A granular solid directly above pins the liquid in place; without
	// this rule sand appears to float while the liquid slips away.
	above := material.Lookup(w.ids[idx-w.w])
	if above.Phase == material.Solid && !above.Immobile {
		return
	}

	belowIdx := idx + w.w
	if isGas(material.Lookup(w.ids[belowIdx])) {
		w.swap(idx, belowIdx)
		return
	}

	downLeft := belowIdx - 1
	downRight := belowIdx + 1
	first, second := downLeft, downRight
	if !w.rng.Bool() {
		first, second = downRight, downLeft
	}
	if isGas(material.Lookup(w.ids[first])) {
		w.swap(idx, first)
		return
	}
	if isGas(material.Lookup(w.ids[second])) {
		w.swap(idx, second)
		return
	}

	// Spread sideways one cell per tick; this bounds the lateral flow rate.
	left, right := idx-1, idx+1
	first, second = left, right
	if !w.rng.Bool() {
		first, second = right, left
	}
	if isGas(material.Lookup(w.ids[first])) {
		w.swap(idx, first)
	} else if isGas(material.Lookup(w.ids[second])) {
		w.swap(idx, second)
	}
}

// moveGas applies to the non-air gases (steam, vapors): they rise and
// spread through plain air only.
func (w *World) moveGas(idx int) {
	aboveIdx := idx - w.w
	if w.ids[aboveIdx] == material.Air {
		w.swap(idx, aboveIdx)
		return
	}

	upLeft := aboveIdx - 1
	upRight := aboveIdx + 1
	first, second := upLeft, upRight
	if !w.rng.Bool() {
		first, second = upRight, upLeft
	}
	if w.ids[first] == material.Air {
		w.swap(idx, first)
		return
	}
	if w.ids[second] == material.Air {
		w.swap(idx, second)
		return
	}

	left, right := idx-1, idx+1
	first, second = left, right
	if !w.rng.Bool() {
		first, second = right, left
	}
	if w.ids[first] == material.Air {
		w.swap(idx, first)
	} else if w.ids[second] == material.Air {
		w.swap(idx, second)
	}
}

// swap exchanges the full cell state of a and b: identity and its
// thermodynamic scalars always travel together. Both cells are stamped so
// neither acts again this tick.
func (w *World) swap(a, b int) {
	w.ids[a], w.ids[b] = w.ids[b], w.ids[a]
	e := w.energy.Front()
	e[a], e[b] = e[b], e[a]
	w.mass[a], w.mass[b] = w.mass[b], w.mass[a]
	w.pressure[a], w.pressure[b] = w.pressure[b], w.pressure[a]
	w.movedStamp[a] = w.tickID
	w.movedStamp[b] = w.tickID
}
