package orchestrator

import "strings"

// Trade classifies a system type into the broad trade category used for
// per-trade clearance lookups (spec.md §3.4; SPEC_FULL.md §12 item 1).
type Trade string

// Recognized trades.
const (
	TradePlumbing       Trade = "plumbing"
	TradeElectrical     Trade = "electrical"
	TradeHVAC           Trade = "hvac"
	TradeFireProtection Trade = "fire_protection"
)

var plumbingSystems = map[string]struct{}{
	"sanitary": {}, "sanitary_drain": {}, "drain": {}, "vent": {}, "sanitary_vent": {},
	"supply": {}, "dhw": {}, "dcw": {},
	"domestic_hot_water": {}, "domestic_cold_water": {},
	"hot_water": {}, "cold_water": {},
}

var electricalSystems = map[string]struct{}{
	"power": {}, "electrical": {}, "data": {}, "network": {}, "low_voltage": {}, "lighting": {},
}

var fireProtectionSystems = map[string]struct{}{
	"fire_sprinkler": {}, "fire_standpipe": {},
}

// ClassifyTrade returns the trade bucket for systemType, grounded on
// oahs_router.py's _get_trade, with a dedicated fire-protection bucket
// carved out per SPEC_FULL.md §12 item 1 (the Python source folded fire
// protection into its plumbing/electrical/else split; spec.md's GLOSSARY
// names fire protection as its own trade). Anything unrecognized falls
// to hvac, the original's catch-all bucket.
func ClassifyTrade(systemType string) Trade {
	s := strings.ToLower(systemType)

	if _, ok := fireProtectionSystems[s]; ok {
		return TradeFireProtection
	}
	if _, ok := plumbingSystems[s]; ok {
		return TradePlumbing
	}
	if _, ok := electricalSystems[s]; ok {
		return TradeElectrical
	}
	return TradeHVAC
}

// tradeClearances is the per-trade clearance map of SPEC_FULL.md §12
// item 1, in feet, used instead of config.RouterConfig.DefaultClearance
// when a caller opts in via RouterConfig.PerTradeClearance.
var tradeClearances = map[Trade]float64{
	TradePlumbing:       0.25,
	TradeHVAC:           0.5,
	TradeFireProtection: 0.167,
	TradeElectrical:     0.125,
}

// ClearanceFor returns the per-trade clearance for t.
func ClearanceFor(t Trade) float64 {
	return tradeClearances[t]
}

// pipeDiameterEstimates is the default per-system pipe/conduit diameter
// table, in feet, grounded on oahs_router.py's _estimate_pipe_diameter
// and extended with HVAC and fire-protection rows (SPEC_FULL.md §12
// item 1).
var pipeDiameterEstimates = map[string]float64{
	"sanitary": 0.333, "sanitary_drain": 0.333, "drain": 0.333,
	"vent": 0.167, "sanitary_vent": 0.167,
	"supply": 0.0625, "dhw": 0.0625, "dcw": 0.0625,
	"power": 0.0833, "electrical": 0.0833,
	"data": 0.0625, "network": 0.0625, "low_voltage": 0.0625,
	"lighting":   0.0625,
	"supply_air": 0.667, "return_air": 0.667, "exhaust": 0.5,
	"fire_sprinkler": 0.0833, "fire_standpipe": 0.333,
}

// defaultPipeDiameterEstimate is returned for any system type absent
// from pipeDiameterEstimates (the Python source's own fallback of 1"
// conduit).
const defaultPipeDiameterEstimate = 0.0833

// EstimatePipeDiameter returns the default diameter estimate (feet) for
// systemType.
func EstimatePipeDiameter(systemType string) float64 {
	if d, ok := pipeDiameterEstimates[strings.ToLower(systemType)]; ok {
		return d
	}
	return defaultPipeDiameterEstimate
}
