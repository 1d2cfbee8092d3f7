package material

import "testing"

func TestTableIsDense(t *testing.T) {
	if Count() != int(maxID)+1 {
		t.Fatalf("table has %d entries, want %d", Count(), int(maxID)+1)
	}
	for i := 0; i < Count(); i++ {
		m := Lookup(ID(i))
		if m.ID != ID(i) {
			t.Fatalf("Lookup(%d) returned id %d", i, m.ID)
		}
		if m.Name == "" {
			t.Fatalf("Lookup(%d) returned empty name", i)
		}
	}
}

func TestLookupUnknownFallsBackToAir(t *testing.T) {
	m := Lookup(ID(200))
	if m.ID != Air {
		t.Fatalf("unknown id resolved to %q, want Air", m.Name)
	}
}

func TestPaletteExcludesDerivedPhases(t *testing.T) {
	derived := map[ID]bool{
		Ice: true, Steam: true, MoltenSilica: true,
		SilicaVapor: true, MoltenRock: true, RockVapor: true,
		Bedrock: true, Air: true,
	}
	for _, id := range Palette() {
		if derived[id] {
			t.Fatalf("palette offers %q, which must only be reachable via temperature", Lookup(id).Name)
		}
	}
	if len(Palette()) == 0 {
		t.Fatal("palette is empty")
	}
}

func TestFamilyPhaseMapIsTotal(t *testing.T) {
	for _, f := range []Family{FamilyAir, FamilyWater, FamilySand, FamilyRock} {
		s, l, g := SolidOf(f), LiquidOf(f), GasOf(f)
		if f == FamilyAir {
			if s.ID != Air || l.ID != Air || g.ID != Air {
				t.Fatal("air family must collapse to itself")
			}
			continue
		}
		if s.Phase != Solid || l.Phase != Liquid || g.Phase != Gas {
			t.Fatalf("family %v variants have wrong phases: %v/%v/%v", f, s.Phase, l.Phase, g.Phase)
		}
		if s.Family != f || l.Family != f || g.Family != f {
			t.Fatalf("family %v variants point at foreign families", f)
		}
	}
}

func TestVariantOf(t *testing.T) {
	if got := VariantOf(FamilyWater, Gas); got.ID != Steam {
		t.Fatalf("VariantOf(water, gas) = %q", got.Name)
	}
	if got := VariantOf(FamilyRock, Liquid); got.ID != MoltenRock {
		t.Fatalf("VariantOf(rock, liquid) = %q", got.Name)
	}
	if got := VariantOf(FamilySand, Solid); got.ID != Sand {
		t.Fatalf("VariantOf(sand, solid) = %q", got.Name)
	}
}

func TestGasConstantsOnlyOnGases(t *testing.T) {
	for i := 0; i < Count(); i++ {
		m := Lookup(ID(i))
		if m.Phase == Gas && m.GasConstantJKgK <= 0 {
			t.Fatalf("%q is a gas without a gas constant", m.Name)
		}
		if m.Phase != Gas && m.GasConstantJKgK != 0 {
			t.Fatalf("%q is condensed but carries a gas constant", m.Name)
		}
	}
}
