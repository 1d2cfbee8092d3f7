package particle

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"therm-ca/internal/thermo"
)

// Params holds the tunable knobs of the thermodynamics pass.
type Params struct {
	// TickSeconds is the simulated duration of one tick.
	TickSeconds float64 `yaml:"tick_seconds"`

	// AmbientCouplingRate is the per-second exponential relaxation rate of
	// air cells toward the ambient reservoir.
	AmbientCouplingRate float64 `yaml:"ambient_coupling_rate"`

	// RadiationScale multiplies the Stefan-Boltzmann loss of hot cells.
	RadiationScale float64 `yaml:"radiation_scale"`

	// PressureScale amplifies hydrostatic pressure accumulation.
	PressureScale float64 `yaml:"pressure_scale"`

	// VentMaxFraction bounds how much of a boiling cell's mass may
	// vaporize in one tick.
	VentMaxFraction float64 `yaml:"vent_max_fraction"`

	// VentMinMassFraction: a boiling liquid below this fraction of a full
	// cell mass flashes entirely to vapor.
	VentMinMassFraction float64 `yaml:"vent_min_mass_fraction"`

	// GasFlowThresholdPa is the pressure differential needed before gas
	// mass flows into a neighbor.
	GasFlowThresholdPa float64 `yaml:"gas_flow_threshold_pa"`

	// GasFlowMaxFraction caps the mass fraction transferred per flow.
	GasFlowMaxFraction float64 `yaml:"gas_flow_max_fraction"`

	// GasMinMassKg: a gas cell below this mass reverts to plain air.
	GasMinMassKg float64 `yaml:"gas_min_mass_kg"`
}

// TerrainParams controls the procedural scenario built by Reset.
type TerrainParams struct {
	Enabled bool `yaml:"enabled"`

	// SurfaceLevel is the fraction of the world height where the stone
	// surface sits on average.
	SurfaceLevel float64 `yaml:"surface_level"`
	// ReliefAmplitude is the fraction of the world height the surface may
	// deviate from SurfaceLevel.
	ReliefAmplitude float64 `yaml:"relief_amplitude"`
	// SandDepth is the maximum dune depth in cells on top of the stone.
	SandDepth int `yaml:"sand_depth"`
	// WaterPools fills surface depressions with water.
	WaterPools bool `yaml:"water_pools"`

	NoiseAlpha   float64 `yaml:"noise_alpha"`
	NoiseBeta    float64 `yaml:"noise_beta"`
	NoiseOctaves int32   `yaml:"noise_octaves"`
	NoiseScale   float64 `yaml:"noise_scale"`
}

// Config controls the particle world dimensions and tuning.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`

	AmbientTempC      float64 `yaml:"ambient_temp_c"`
	AmbientPressurePa float64 `yaml:"ambient_pressure_pa"`

	Params  Params        `yaml:"params"`
	Terrain TerrainParams `yaml:"terrain"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:             320,
		Height:            200,
		Seed:              1337,
		AmbientTempC:      thermo.DefaultAmbientTempC,
		AmbientPressurePa: thermo.DefaultAmbientPressurePa,
		Params: Params{
			TickSeconds:         1.0 / 60.0,
			AmbientCouplingRate: 1.5,
			RadiationScale:      thermo.RadiationScale,
			PressureScale:       thermo.PressureScale,
			VentMaxFraction:     0.05,
			VentMinMassFraction: 0.05,
			GasFlowThresholdPa:  250,
			GasFlowMaxFraction:  0.25,
			GasMinMassKg:        1e-12,
		},
		Terrain: TerrainParams{
			Enabled:         true,
			SurfaceLevel:    0.65,
			ReliefAmplitude: 0.15,
			SandDepth:       4,
			WaterPools:      true,
			NoiseAlpha:      2,
			NoiseBeta:       2,
			NoiseOctaves:    3,
			NoiseScale:      0.02,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["ambient_temp_c"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.AmbientTempC = thermo.ClampTempC(parsed)
		}
	}
	if v, ok := cfg["ambient_pressure_pa"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.AmbientPressurePa = parsed
		}
	}
	if v, ok := cfg["terrain"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Terrain.Enabled = parsed
		}
	}
	if v, ok := cfg["radiation_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.RadiationScale = parsed
		}
	}
	if v, ok := cfg["pressure_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.PressureScale = parsed
		}
	}
	if v, ok := cfg["coupling_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.AmbientCouplingRate = parsed
		}
	}
	return c
}

// ParseYAML overlays a YAML document onto the default configuration.
func ParseYAML(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return Config{}, fmt.Errorf("parse config: %w", ErrInvalidDimension)
	}
	return c, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseYAML(data)
}
