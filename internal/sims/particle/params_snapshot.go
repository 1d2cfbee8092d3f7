package particle

import (
	"strconv"

	"therm-ca/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Ambient",
			Params: []core.Parameter{
				floatParam("ambient_temp_c", "Ambient temp (C)", w.ambientTempC),
				floatParam("ambient_pressure_pa", "Ambient pressure (Pa)", w.ambientPressurePa),
			},
		},
		{
			Name: "Heat",
			Params: []core.Parameter{
				floatParam("coupling_rate", "Air coupling rate", params.AmbientCouplingRate),
				floatParam("radiation_scale", "Radiation scale", params.RadiationScale),
				floatParam("pressure_scale", "Pressure scale", params.PressureScale),
			},
		},
		{
			Name: "Boiling",
			Params: []core.Parameter{
				floatParam("vent_max_fraction", "Vent max fraction", params.VentMaxFraction),
				floatParam("vent_min_mass_fraction", "Vent min mass fraction", params.VentMinMassFraction),
				floatParam("gas_flow_threshold_pa", "Gas flow threshold (Pa)", params.GasFlowThresholdPa),
				floatParam("gas_flow_max_fraction", "Gas flow max fraction", params.GasFlowMaxFraction),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the knobs the HUD may adjust at runtime.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key: "ambient_temp_c", Label: "Ambient temp (C)", Type: core.ParamTypeFloat,
			Step: 10, Min: -273, Max: 10000, HasMin: true, HasMax: true,
		},
		{
			Key: "coupling_rate", Label: "Air coupling rate", Type: core.ParamTypeFloat,
			Step: 0.25, Min: 0, Max: 20, HasMin: true, HasMax: true,
		},
		{
			Key: "radiation_scale", Label: "Radiation scale", Type: core.ParamTypeFloat,
			Step: 0.25, Min: 0, Max: 10, HasMin: true, HasMax: true,
		},
		{
			Key: "pressure_scale", Label: "Pressure scale", Type: core.ParamTypeFloat,
			Step: 5, Min: 0, Max: 500, HasMin: true, HasMax: true,
		},
	}
}

// SetFloatParameter updates a runtime-tunable parameter by key.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "ambient_temp_c":
		w.SetAmbientTemperatureC(value)
	case "ambient_pressure_pa":
		if value <= 0 {
			return false
		}
		w.SetAmbientPressurePa(value)
	case "coupling_rate":
		if value < 0 {
			return false
		}
		w.cfg.Params.AmbientCouplingRate = value
	case "radiation_scale":
		if value < 0 {
			return false
		}
		w.cfg.Params.RadiationScale = value
	case "pressure_scale":
		if value < 0 {
			return false
		}
		w.cfg.Params.PressureScale = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
