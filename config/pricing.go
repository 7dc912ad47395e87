package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ModelPricing holds the reference price for an equipment model at its
// baseline year.
type ModelPricing struct {
	BasePrice     float64 `json:"base_price"`
	YearReference int     `json:"year_reference"`
}

// PricingConfig is the static reference data the valuation calculator runs
// against. It is read-only after startup; tests inject synthetic tables.
type PricingConfig struct {
	// Valuation "now". Fixed so identical input always prices identically,
	// overridable through the JSON config when the baseline moves.
	ReferenceYear int `json:"reference_year"`

	// Oldest manufacturing year accepted
	MinYear int `json:"min_year"`

	Models               map[string]ModelPricing `json:"models"`
	ConditionMultipliers map[string]float64      `json:"condition_multipliers"`

	MetroLocations []string `json:"metro_locations"`
	RuralLocations []string `json:"rural_locations"`

	MetroAdjustmentPct float64 `json:"metro_adjustment_pct"`
	RuralAdjustmentPct float64 `json:"rural_adjustment_pct"`

	DepreciationPctPerYear float64 `json:"depreciation_pct_per_year"`
	MaxDepreciationPct     float64 `json:"max_depreciation_pct"`

	WearRatePerHour float64 `json:"wear_rate_per_hour"`
	// Upper bound on the wear deduction as a share of the depreciated price
	MaxWearShare float64 `json:"max_wear_share"`
}

// conditionOrder fixes the display order of conditions (best to worst)
var conditionOrder = []string{"excellent", "good", "average", "poor", "breakdown"}

// DefaultPricingConfig returns the built-in pricing tables
func DefaultPricingConfig() *PricingConfig {
	return &PricingConfig{
		ReferenceYear: 2024,
		MinYear:       2000,
		Models: map[string]ModelPricing{
			"JCB 3DX":               {BasePrice: 450000, YearReference: 2024},
			"Tata Hitachi EX 200LC": {BasePrice: 2250000, YearReference: 2024},
			"CAT 424 Backhoe":       {BasePrice: 3400000, YearReference: 2024},
		},
		ConditionMultipliers: map[string]float64{
			"excellent": 1.0,
			"good":      0.85,
			"average":   0.70,
			"poor":      0.55,
			"breakdown": 0.30,
		},
		MetroLocations:         []string{"Delhi", "Mumbai", "Bangalore", "Haryana", "Pune", "Chennai"},
		RuralLocations:         []string{"Bihar", "Jharkhand", "Odisha", "Chhattisgarh"},
		MetroAdjustmentPct:     10,
		RuralAdjustmentPct:     -8,
		DepreciationPctPerYear: 10,
		MaxDepreciationPct:     85,
		WearRatePerHour:        50,
		MaxWearShare:           0.3,
	}
}

// LoadPricingConfig reads a JSON pricing file and applies it on top of the
// defaults, so partial overrides only need the fields they change.
func LoadPricingConfig(path string) (*PricingConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %v", err)
	}

	cfg := DefaultPricingConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %v", err)
	}

	return cfg, nil
}

// ModelNames returns the configured model names in alphabetical order
func (c *PricingConfig) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for name := range c.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConditionNames returns the configured conditions, best first
func (c *PricingConfig) ConditionNames() []string {
	names := make([]string, 0, len(c.ConditionMultipliers))
	for _, name := range conditionOrder {
		if _, ok := c.ConditionMultipliers[name]; ok {
			names = append(names, name)
		}
	}

	// Synthetic tables may carry conditions outside the canonical set
	var extra []string
	for name := range c.ConditionMultipliers {
		if !containsString(conditionOrder, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// SupportedLocations returns the locations with a non-zero adjustment
func (c *PricingConfig) SupportedLocations() []string {
	locations := make([]string, 0, len(c.MetroLocations)+len(c.RuralLocations))
	locations = append(locations, c.MetroLocations...)
	locations = append(locations, c.RuralLocations...)
	return locations
}

// LocationAdjustmentPct classifies a location into metro, rural or other and
// returns the corresponding percentage. Matching is case-sensitive and
// unmatched locations get 0, not an error.
func (c *PricingConfig) LocationAdjustmentPct(location string) float64 {
	if containsString(c.MetroLocations, location) {
		return c.MetroAdjustmentPct
	}
	if containsString(c.RuralLocations, location) {
		return c.RuralAdjustmentPct
	}
	return 0
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
