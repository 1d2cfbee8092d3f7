// Package thermo holds the pure conversion math between temperature, stored
// energy, mass, and pressure, plus the phase decision rules.
//
// Each cell stores an energy value in Joules, measured from absolute zero.
// Temperature is derived from energy through a piecewise-linear enthalpy
// model with latent-heat plateaus for melting and boiling, so latent heat
// falls out of the model instead of being a special case.
//
// Intentional simplifications for a cellular sandbox:
//   - no volume expansion when vaporizing (a cell stays one cell)
//   - specific heat and conductivity are constants per phase
//   - only the water family has a pressure-dependent boiling point
package thermo

import (
	"math"

	"therm-ca/internal/material"
)

// Family phase-change parameters. Water values are typical at 1 atm; sand
// and rock are game approximations.
type familyParams struct {
	meltC        float64
	boilC        float64
	latentFusion float64
	latentVapor  float64
}

var families = [...]familyParams{
	material.FamilyAir: {
		meltC: math.Inf(1), boilC: math.Inf(1),
	},
	material.FamilyWater: {
		meltC: 0, boilC: 100,
		latentFusion: 333_550, latentVapor: 2_256_000,
	},
	material.FamilySand: {
		meltC: 1550, boilC: 2230,
		latentFusion: 156_000, latentVapor: 10_000_000,
	},
	material.FamilyRock: {
		meltC: 1250, boilC: 3000,
		latentFusion: 400_000, latentVapor: 5_000_000,
	},
}

// ClampTempC limits a temperature to the supported range.
func ClampTempC(tempC float64) float64 {
	if tempC < MinTempC {
		return MinTempC
	}
	if tempC > MaxTempC {
		return MaxTempC
	}
	return tempC
}

// MeltPointC returns the melting point of the family.
func MeltPointC(f material.Family) float64 {
	return families[familyIndex(f)].meltC
}

// BoilPointC returns the boiling point of the family at the given local
// pressure. Only the water family is pressure dependent, via an idealized
// Clausius-Clapeyron relation clamped to the supported range. Sand and rock
// boil points are fixed: their vapor regimes are far outside the pressure
// band the sandbox produces.
func BoilPointC(f material.Family, pressurePa float64) float64 {
	p := families[familyIndex(f)]
	if f != material.FamilyWater {
		return p.boilC
	}

	pr := pressurePa
	if pr < MinPressurePa {
		pr = MinPressurePa
	}
	if pr > MaxPressurePa {
		pr = MaxPressurePa
	}

	// 1/T = 1/T_ref - (R_vapor/L_vapor) * ln(P/P_ref)
	rv := material.Lookup(material.Steam).GasConstantJKgK
	tRefK := p.boilC + kelvinOffset
	invT := 1/tRefK - (rv/p.latentVapor)*math.Log(pr/DefaultAmbientPressurePa)
	if invT <= 0 {
		return MaxTempC
	}
	boilC := ClampTempC(1/invT - kelvinOffset)
	if boilC < p.meltC+0.01 {
		boilC = p.meltC + 0.01
	}
	return boilC
}

// LatentFusionJKg returns the heat of fusion for the family.
func LatentFusionJKg(f material.Family) float64 {
	return families[familyIndex(f)].latentFusion
}

// LatentVaporJKg returns the heat of vaporization for the family.
func LatentVaporJKg(f material.Family) float64 {
	return families[familyIndex(f)].latentVapor
}

// Thresholds are the energy band edges of the enthalpy model for one cell,
// given its mass and local pressure.
type Thresholds struct {
	MeltC float64
	BoilC float64

	// MeltStart..MeltEnd is the melting plateau, BoilStart..BoilEnd the
	// boiling plateau. Energies are measured from absolute zero.
	MeltStart float64
	MeltEnd   float64
	BoilStart float64
	BoilEnd   float64
}

// ThresholdsFor computes the energy band edges for a family at the given
// cell mass and pressure.
func ThresholdsFor(f material.Family, massKg, pressurePa float64) Thresholds {
	tm := MeltPointC(f)
	tb := BoilPointC(f, pressurePa)

	cpSolid := material.SolidOf(f).SpecificHeatJKgK
	cpLiquid := material.LiquidOf(f).SpecificHeatJKgK

	t := Thresholds{MeltC: tm, BoilC: tb}
	t.MeltStart = massKg * cpSolid * (tm + kelvinOffset)
	t.MeltEnd = t.MeltStart + massKg*LatentFusionJKg(f)
	t.BoilStart = t.MeltEnd + massKg*cpLiquid*(tb-tm)
	t.BoilEnd = t.BoilStart + massKg*LatentVaporJKg(f)
	return t
}

// EnergyForTemperature converts a temperature to stored energy for a cell of
// the given material, mass and pressure.
//
// On a plateau boundary the energy is biased to match the material's current
// phase, so painting at exactly the melt point does not flip phase:
//   - at the melt point, a solid resolves to the start of the melt plateau,
//     anything else to its end
//   - at the boil point, a gas resolves to the end of the boil plateau,
//     anything else to its start
func EnergyForTemperature(mat material.Material, tempC, massKg, pressurePa float64) float64 {
	tempC = ClampTempC(tempC)

	if mat.Family == material.FamilyAir {
		cp := material.Lookup(material.Air).SpecificHeatJKgK
		return massKg * cp * (tempC + kelvinOffset)
	}

	th := ThresholdsFor(mat.Family, massKg, pressurePa)
	cpSolid := material.SolidOf(mat.Family).SpecificHeatJKgK
	cpLiquid := material.LiquidOf(mat.Family).SpecificHeatJKgK
	cpGas := material.GasOf(mat.Family).SpecificHeatJKgK

	switch {
	case tempC < th.MeltC:
		return massKg * cpSolid * (tempC + kelvinOffset)
	case tempC > th.BoilC:
		return th.BoilEnd + massKg*cpGas*(tempC-th.BoilC)
	case tempC > th.MeltC && tempC < th.BoilC:
		return th.MeltEnd + massKg*cpLiquid*(tempC-th.MeltC)
	case tempC == th.MeltC:
		if mat.Phase == material.Solid {
			return th.MeltStart
		}
		return th.MeltEnd
	default: // tempC == th.BoilC
		if mat.Phase == material.Gas {
			return th.BoilEnd
		}
		return th.BoilStart
	}
}

// TemperatureC converts stored energy to temperature. Inside a plateau the
// temperature is pinned at the transition point.
func TemperatureC(mat material.Material, energyJ, massKg, pressurePa float64) float64 {
	if mat.Family == material.FamilyAir {
		denom := massKg * material.Lookup(material.Air).SpecificHeatJKgK
		if denom <= 0 {
			return MinTempC
		}
		return ClampTempC(energyJ/denom - kelvinOffset)
	}

	th := ThresholdsFor(mat.Family, massKg, pressurePa)
	cpSolid := material.SolidOf(mat.Family).SpecificHeatJKgK
	cpLiquid := material.LiquidOf(mat.Family).SpecificHeatJKgK
	cpGas := material.GasOf(mat.Family).SpecificHeatJKgK

	var t float64
	switch {
	case energyJ < th.MeltStart:
		denom := massKg * cpSolid
		if denom <= 0 {
			t = MinTempC
		} else {
			t = energyJ/denom - kelvinOffset
		}
	case energyJ < th.MeltEnd:
		t = th.MeltC
	case energyJ < th.BoilStart:
		denom := massKg * cpLiquid
		if denom <= 0 {
			t = th.MeltC
		} else {
			t = th.MeltC + (energyJ-th.MeltEnd)/denom
		}
	case energyJ < th.BoilEnd:
		t = th.BoilC
	default:
		denom := massKg * cpGas
		if denom <= 0 {
			t = th.BoilC
		} else {
			t = th.BoilC + (energyJ-th.BoilEnd)/denom
		}
	}
	return ClampTempC(t)
}

// UpdatePhase returns the family variant whose energy band contains the
// cell's energy. Phase-locked materials and air keep their identity.
//
// Inside a plateau the current phase is sticky: a melting solid stays solid
// until the plateau ends, a freezing liquid stays liquid until its start.
// A cell that lands mid-plateau from the wrong phase (after a swap brought
// foreign state) snaps to the nearer side.
func UpdatePhase(mat material.Material, energyJ, massKg, pressurePa float64) material.Material {
	if mat.PhaseLocked || mat.Family == material.FamilyAir {
		return mat
	}

	th := ThresholdsFor(mat.Family, massKg, pressurePa)
	solid := material.SolidOf(mat.Family)
	liquid := material.LiquidOf(mat.Family)
	gas := material.GasOf(mat.Family)

	switch {
	case energyJ <= th.MeltStart:
		return solid
	case energyJ >= th.BoilEnd:
		return gas
	case energyJ >= th.MeltEnd && energyJ <= th.BoilStart:
		return liquid
	case energyJ < th.MeltEnd: // inside the melt plateau
		if mat.ID == solid.ID || mat.ID == liquid.ID {
			return mat
		}
		if energyJ < (th.MeltStart+th.MeltEnd)/2 {
			return solid
		}
		return liquid
	default: // inside the boil plateau
		if mat.ID == liquid.ID || mat.ID == gas.ID {
			return mat
		}
		if energyJ < (th.BoilStart+th.BoilEnd)/2 {
			return liquid
		}
		return gas
	}
}

// MassForPressure solves pV = mRT for the mass of a gas cell. Condensed
// matter falls back to its fixed density mass.
func MassForPressure(mat material.Material, pressurePa, tempC float64) float64 {
	if mat.GasConstantJKgK <= 0 {
		return mat.DensityKgM3 * CellVolumeM3
	}
	tK := ClampTempC(tempC) + kelvinOffset
	if tK < 0.1 {
		tK = 0.1
	}
	p := pressurePa
	if p < MinPressurePa {
		p = MinPressurePa
	}
	m := p * CellVolumeM3 / (mat.GasConstantJKgK * tK)
	if m <= 0 {
		m = math.SmallestNonzeroFloat64
	}
	return m
}

// PressureForMass solves pV = mRT for the pressure of a gas cell, clamped
// to [MinPressurePa, MaxPressurePa].
func PressureForMass(mat material.Material, massKg, tempC float64) float64 {
	if mat.GasConstantJKgK <= 0 || massKg <= 0 {
		return MinPressurePa
	}
	tK := ClampTempC(tempC) + kelvinOffset
	if tK < 0.1 {
		tK = 0.1
	}
	p := massKg * mat.GasConstantJKgK * tK / CellVolumeM3
	if p < MinPressurePa {
		return MinPressurePa
	}
	if p > MaxPressurePa {
		return MaxPressurePa
	}
	return p
}

func familyIndex(f material.Family) int {
	if int(f) >= len(families) {
		return int(material.FamilyAir)
	}
	return int(f)
}
