package thermo

// Global constants for the temperature and heat model.
const (
	// MinTempC is the minimum supported temperature (approx. absolute zero).
	MinTempC = -273.0
	// MaxTempC is the maximum supported temperature (design constraint).
	MaxTempC = 10000.0

	// CellSizeM is the cell edge length used by the heat model. A smaller
	// cell equalizes temperature faster: mass scales with dx^3 while the
	// conduction contact scales with dx.
	CellSizeM      = 0.001
	CellVolumeM3   = CellSizeM * CellSizeM * CellSizeM
	CellFaceAreaM2 = CellSizeM * CellSizeM

	// Default ambient conditions.
	DefaultAmbientTempC      = 20.0
	DefaultAmbientPressurePa = 101325.0

	// GravityMS2 feeds the hydrostatic pressure accumulation.
	GravityMS2 = 9.81

	// StefanBoltzmann (W/m^2/K^4).
	StefanBoltzmann = 5.670374419e-8

	// RadiationVisibleStartC is the approximate start of visible red heat;
	// cells below it do not radiate.
	RadiationVisibleStartC = 700.0

	// RadiationScale of 1.0 is the physically raw magnitude for the chosen
	// cell size; tunable for gameplay.
	RadiationScale = 1.0

	// PressureScale amplifies hydrostatic deltas. With 1 mm cells and a
	// world ~200 cells tall the physical delta is tiny; ~50 makes Tb(P)
	// visibly depth dependent. 1.0 is strictly physical.
	PressureScale = 50.0

	// MinPressurePa floors gas pressure so ratios stay well defined.
	MinPressurePa = 1.0
	// MaxPressurePa caps runaway pressures from pathological states.
	MaxPressurePa = 1e9

	kelvinOffset = 273.15
)
