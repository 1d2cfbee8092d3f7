package material

import "fmt"

// ID identifies one element variant. The grid stores only the ID (a byte)
// per cell; everything else is looked up in the static table.
type ID uint8

// Family groups the solid/liquid/gas variants of one substance, so the
// thermodynamics can change a cell's identity without losing its substance.
type Family uint8

// Phase is the thermodynamic phase of a variant. Powders count as SOLID.
type Phase uint8

const (
	FamilyAir Family = iota
	FamilyWater
	FamilySand
	FamilyRock

	familyCount = 4
)

const (
	Solid Phase = iota
	Liquid
	Gas
)

// Element ids. They must stay dense over [0, maxID]; the init check below
// enforces it.
const (
	// Air is the background medium. It is a real thermodynamic gas so hot
	// cells can heat it and it can act as a cooling sink.
	Air ID = iota
	Stone
	Sand
	Water
	// Bedrock is the immobile, phase-locked containment material.
	Bedrock
	Ice
	Steam
	MoltenSilica
	SilicaVapor
	MoltenRock
	RockVapor

	maxID = RockVapor
)

// Material is one immutable element definition.
type Material struct {
	ID        ID
	Name      string
	ColorARGB uint32
	Family    Family
	Phase     Phase

	// Immobile elements never participate in movement. They can still
	// change phase unless PhaseLocked is also set.
	Immobile bool
	// PhaseLocked elements never change identity regardless of energy.
	PhaseLocked bool

	DensityKgM3      float64
	SpecificHeatJKgK float64
	ConductivityWMK  float64
	// Emissivity in [0,1]; only condensed matter radiates.
	Emissivity float64
	// GasConstantJKgK is the specific ideal-gas constant. Zero for
	// condensed matter.
	GasConstantJKgK float64
}

var table = [maxID + 1]Material{
	Air: {
		ID: Air, Name: "Air", ColorARGB: 0xFF000000,
		Family: FamilyAir, Phase: Gas,
		DensityKgM3: 1.225, SpecificHeatJKgK: 1005, ConductivityWMK: 0.024,
		GasConstantJKgK: 287.05,
	},
	Stone: {
		ID: Stone, Name: "Stone", ColorARGB: 0xFF6B6B6B,
		Family: FamilyRock, Phase: Solid, Immobile: true,
		DensityKgM3: 2700, SpecificHeatJKgK: 790, ConductivityWMK: 2.8,
		Emissivity: 0.90,
	},
	Sand: {
		ID: Sand, Name: "Sand", ColorARGB: 0xFFE1C16E,
		Family: FamilySand, Phase: Solid,
		DensityKgM3: 1600, SpecificHeatJKgK: 830, ConductivityWMK: 0.27,
		Emissivity: 0.85,
	},
	Water: {
		ID: Water, Name: "Water", ColorARGB: 0xFF3D8BFF,
		Family: FamilyWater, Phase: Liquid,
		DensityKgM3: 1000, SpecificHeatJKgK: 4182, ConductivityWMK: 0.6,
		Emissivity: 0.96,
	},
	Bedrock: {
		ID: Bedrock, Name: "Bedrock", ColorARGB: 0xFF4A4A4A,
		Family: FamilyRock, Phase: Solid, Immobile: true, PhaseLocked: true,
		DensityKgM3: 2700, SpecificHeatJKgK: 790, ConductivityWMK: 2.8,
		Emissivity: 0.90,
	},
	Ice: {
		ID: Ice, Name: "Ice", ColorARGB: 0xFFD8F0FF,
		Family: FamilyWater, Phase: Solid,
		DensityKgM3: 917, SpecificHeatJKgK: 2050, ConductivityWMK: 2.22,
		Emissivity: 0.97,
	},
	Steam: {
		ID: Steam, Name: "Steam", ColorARGB: 0xFFCCCCCC,
		Family: FamilyWater, Phase: Gas,
		DensityKgM3: 0.6, SpecificHeatJKgK: 2010, ConductivityWMK: 0.025,
		GasConstantJKgK: 461.5,
	},
	MoltenSilica: {
		ID: MoltenSilica, Name: "Molten Silica", ColorARGB: 0xFFFF9A2E,
		Family: FamilySand, Phase: Liquid,
		DensityKgM3: 2200, SpecificHeatJKgK: 1000, ConductivityWMK: 1.5,
		Emissivity: 0.92,
	},
	SilicaVapor: {
		ID: SilicaVapor, Name: "Silica Vapor", ColorARGB: 0xFFBFA6FF,
		Family: FamilySand, Phase: Gas,
		DensityKgM3: 1.0, SpecificHeatJKgK: 1200, ConductivityWMK: 0.03,
		GasConstantJKgK: 138.4,
	},
	MoltenRock: {
		ID: MoltenRock, Name: "Molten Rock", ColorARGB: 0xFFFF3B1F,
		Family: FamilyRock, Phase: Liquid,
		DensityKgM3: 2600, SpecificHeatJKgK: 1200, ConductivityWMK: 1.5,
		Emissivity: 0.95,
	},
	RockVapor: {
		ID: RockVapor, Name: "Rock Vapor", ColorARGB: 0xFFFF66CC,
		Family: FamilyRock, Phase: Gas,
		DensityKgM3: 1.2, SpecificHeatJKgK: 1300, ConductivityWMK: 0.04,
		GasConstantJKgK: 120,
	},
}

// Lookup resolves an id to its definition. Unknown ids fall back to Air
// instead of failing, so a corrupted cell renders as background rather than
// crashing a tick.
func Lookup(id ID) Material {
	if int(id) >= len(table) {
		return table[Air]
	}
	return table[id]
}

// Count reports the number of registered element variants.
func Count() int { return len(table) }

// Palette lists the materials a user may paint directly. Phase-derived
// variants (ice, steam, molten forms) are reachable only via temperature.
func Palette() []ID {
	return []ID{Stone, Sand, Water}
}

func (f Family) String() string {
	switch f {
	case FamilyAir:
		return "air"
	case FamilyWater:
		return "water"
	case FamilySand:
		return "sand"
	case FamilyRock:
		return "rock"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}

func (p Phase) String() string {
	switch p {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

func init() {
	for i := range table {
		if table[i].Name == "" {
			panic(fmt.Sprintf("material table has a hole at id %d", i))
		}
		if table[i].ID != ID(i) {
			panic(fmt.Sprintf("material %q registered under id %d but declares %d",
				table[i].Name, i, table[i].ID))
		}
	}
}
