// Package config collects every router tunable named in spec.md §6.4
// into one RouterConfig, loadable from YAML. Every other constructor in
// the module also accepts its relevant fields via functional options
// (mirroring the teacher's GraphOption/dijkstra.Option layering), so
// RouterConfig is a convenience aggregate, not the only entry point.
package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

// RouterConfig aggregates every tunable of spec.md §6.4.
type RouterConfig struct {
	WallResolutionU float64 `yaml:"wall_resolution_u"`
	WallResolutionV float64 `yaml:"wall_resolution_v"`
	FloorResolution float64 `yaml:"floor_resolution"`

	StudSpacing    float64 `yaml:"stud_spacing"`
	StudWidth      float64 `yaml:"stud_width"`
	PlateThickness float64 `yaml:"plate_thickness"`

	DefaultClearance float64 `yaml:"default_clearance"`

	StudPenetrationCost float64 `yaml:"stud_penetration_cost"`
	JoistSolidCost      float64 `yaml:"joist_solid_cost"`
	JoistWebCost        float64 `yaml:"joist_web_cost"`
	WallToFloorCost     float64 `yaml:"wall_to_floor_cost"`
	WallToWallCost      float64 `yaml:"wall_to_wall_cost"`

	MaxCandidatesPerConnector int `yaml:"max_candidates_per_connector"`

	SanitarySlopePerFoot    float64 `yaml:"sanitary_slope_per_foot"`
	SanitaryMinSlopePerFoot float64 `yaml:"sanitary_min_slope_per_foot"`

	Cat6LengthLimit   float64 `yaml:"cat6_length_limit"`
	ToiletMinCapacity float64 `yaml:"toilet_min_capacity"`

	// PerTradeClearance opts into trade_config.py's richer per-trade
	// clearance map (SPEC_FULL.md §12 item 1) instead of the flat
	// DefaultClearance for every segment pair.
	PerTradeClearance bool `yaml:"per_trade_clearance"`
}

// DefaultRouterConfig returns every tunable at its spec.md §6.4 default.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		WallResolutionU: 0.333,
		WallResolutionV: 0.5,
		FloorResolution: 1.0,

		StudSpacing:    1.333,
		StudWidth:      0.125,
		PlateThickness: 0.125,

		DefaultClearance: 0.0417,

		StudPenetrationCost: 5.0,
		JoistSolidCost:      8.0,
		JoistWebCost:        3.0,
		WallToFloorCost:     2.0,
		WallToWallCost:      1.5,

		MaxCandidatesPerConnector: 5,

		SanitarySlopePerFoot:    0.0208,
		SanitaryMinSlopePerFoot: 0.0104,

		Cat6LengthLimit:   300,
		ToiletMinCapacity: 0.25,
	}
}

// LoadRouterConfig decodes a RouterConfig from YAML, starting from
// DefaultRouterConfig so an input document may specify only the fields
// it wants to override.
func LoadRouterConfig(r io.Reader) (RouterConfig, error) {
	cfg := DefaultRouterConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return RouterConfig{}, err
	}

	return cfg, nil
}
