package material

// familyPhases maps each family to its canonical (solid, liquid, gas)
// variant ids. AIR collapses to itself: it has no transitions below the
// simulated limits.
var familyPhases = [familyCount][3]ID{
	FamilyAir:   {Air, Air, Air},
	FamilyWater: {Ice, Water, Steam},
	FamilySand:  {Sand, MoltenSilica, SilicaVapor},
	FamilyRock:  {Stone, MoltenRock, RockVapor},
}

// SolidOf returns the solid variant of the family.
func SolidOf(f Family) Material {
	return Lookup(familyPhases[familyIndex(f)][0])
}

// LiquidOf returns the liquid variant of the family.
func LiquidOf(f Family) Material {
	return Lookup(familyPhases[familyIndex(f)][1])
}

// GasOf returns the gas variant of the family.
func GasOf(f Family) Material {
	return Lookup(familyPhases[familyIndex(f)][2])
}

// VariantOf returns the family variant matching the requested phase.
func VariantOf(f Family, p Phase) Material {
	switch p {
	case Liquid:
		return LiquidOf(f)
	case Gas:
		return GasOf(f)
	default:
		return SolidOf(f)
	}
}

func familyIndex(f Family) int {
	if int(f) >= familyCount {
		return int(FamilyAir)
	}
	return int(f)
}
