package valuation

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"equipvalue/server/config"
	"equipvalue/server/internal/models"
)

// Confidence scoring constants. Penalties subtract independently from the
// base and the result is floored, never special-cased.
const (
	baseConfidence       = 0.95
	minConfidence        = 0.50
	missingHoursPenalty  = 0.10
	highHoursPenalty     = 0.05
	highHoursThreshold   = 12000
	missingSerialPenalty = 0.05
	breakdownPenalty     = 0.15
)

// conditionBreakdown is the condition name that carries its own confidence penalty
const conditionBreakdown = "breakdown"

// ValidationError is a client-caused, deterministic rejection of a request.
// Status is the HTTP status the transport layer should answer with.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// Calculate prices an equipment unit against the given reference tables.
// It is pure and deterministic: no I/O, no clock, no shared state, so it is
// safe to call concurrently. Validation fails fast, first violation wins.
//
// The steps compound in order: age depreciation on the base price, hour wear
// on the depreciated price, condition multiplier on the worn price, location
// percentage on the condition-adjusted price. Intermediate math is unrounded;
// currency figures are rounded to whole units only when the result is built.
func Calculate(req models.ValuationRequest, cfg *config.PricingConfig) (*models.ValuationResult, error) {
	model, ok := cfg.Models[req.Model]
	if !ok {
		return nil, newValidationError("Unknown model: %s", req.Model)
	}
	if req.Year < cfg.MinYear || req.Year > cfg.ReferenceYear {
		return nil, newValidationError("Year out of range: %d (expected %d-%d)", req.Year, cfg.MinYear, cfg.ReferenceYear)
	}
	multiplier, ok := cfg.ConditionMultipliers[req.Condition]
	if !ok {
		return nil, newValidationError("Unknown condition: %s", req.Condition)
	}

	basePrice := model.BasePrice

	ageYears := cfg.ReferenceYear - req.Year
	depreciationPct := math.Min(float64(ageYears)*cfg.DepreciationPctPerYear, cfg.MaxDepreciationPct)
	ageDeduction := basePrice * depreciationPct / 100
	priceAfterAge := basePrice - ageDeduction

	rawWear := req.Hours * cfg.WearRatePerHour
	hourDeduction := math.Min(rawWear, priceAfterAge*cfg.MaxWearShare)
	priceAfterHours := priceAfterAge - hourDeduction

	priceAfterCondition := priceAfterHours * multiplier
	conditionDelta := priceAfterCondition - priceAfterHours

	locationPct := cfg.LocationAdjustmentPct(req.Location)
	locationDelta := priceAfterCondition * locationPct / 100
	finalPrice := priceAfterCondition + locationDelta

	confidence := baseConfidence
	if req.Hours == 0 {
		confidence -= missingHoursPenalty
	}
	if req.Hours > highHoursThreshold {
		confidence -= highHoursPenalty
	}
	if strings.TrimSpace(req.SerialNumber) == "" {
		confidence -= missingSerialPenalty
	}
	if req.Condition == conditionBreakdown {
		confidence -= breakdownPenalty
	}
	confidence = math.Max(confidence, minConfidence)
	confidence = math.Round(confidence*100) / 100

	notes := []string{
		fmt.Sprintf("Base price for %s: ₹%.0f", req.Model, basePrice),
		fmt.Sprintf("Age depreciation: %d years at %.0f%%/year = %.0f%% (-₹%.0f)", ageYears, cfg.DepreciationPctPerYear, depreciationPct, ageDeduction),
		fmt.Sprintf("Usage wear: %.0f hours at ₹%.0f/hour (-₹%.0f)", req.Hours, cfg.WearRatePerHour, hourDeduction),
		fmt.Sprintf("Condition %s: %.0f%% of value retained", req.Condition, multiplier*100),
		fmt.Sprintf("Location %s: %+.0f%% market adjustment", req.Location, locationPct),
		fmt.Sprintf("Confidence: %.0f%%", confidence*100),
	}

	return &models.ValuationResult{
		Input: req,
		Breakdown: models.PriceBreakdown{
			BasePrice:           math.Round(basePrice),
			AgeDepreciation:     math.Round(-ageDeduction),
			HourBasedDeduction:  math.Round(-hourDeduction),
			ConditionAdjustment: math.Round(conditionDelta),
			LocationAdjustment:  math.Round(locationDelta),
		},
		FinalPrice:      math.Round(finalPrice),
		ConfidenceScore: confidence,
		PricingNotes:    notes,
	}, nil
}
