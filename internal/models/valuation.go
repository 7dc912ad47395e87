package models

import "time"

// ValuationRequest is the caller-supplied description of an equipment unit
type ValuationRequest struct {
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Condition    string  `json:"condition"`
	Location     string  `json:"location"`
	Hours        float64 `json:"hours"`
	SerialNumber string  `json:"serialNumber"`
}

// PriceBreakdown itemizes the pricing steps. BasePrice is the reference
// value; the other four are signed deltas (deductions negative), which sum
// to FinalPrice - BasePrice before rounding.
type PriceBreakdown struct {
	BasePrice           float64 `json:"basePrice"`
	AgeDepreciation     float64 `json:"ageDepreciation"`
	HourBasedDeduction  float64 `json:"hourBasedDeduction"`
	ConditionAdjustment float64 `json:"conditionAdjustment"`
	LocationAdjustment  float64 `json:"locationAdjustment"`
}

// ValuationResult is the full priced response for a single request
type ValuationResult struct {
	Input           ValuationRequest `json:"input"`
	Breakdown       PriceBreakdown   `json:"breakdown"`
	FinalPrice      float64          `json:"finalPrice"`
	ConfidenceScore float64          `json:"confidenceScore"`
	PricingNotes    []string         `json:"pricingNotes"`

	// Assigned by the store after the fact; absent when persistence fails
	ValuationID *int64 `json:"valuationId,omitempty"`
}

// ValuationRecord is the persisted, append-only form of a valuation
type ValuationRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Model           string    `gorm:"index" json:"model"`
	Year            int       `json:"year"`
	Condition       string    `json:"condition"`
	Location        string    `json:"location"`
	Hours           float64   `json:"hours"`
	SerialNumber    string    `json:"serial_number"`
	FinalPrice      float64   `json:"final_price"`
	ConfidenceScore float64   `json:"confidence_score"`
	Breakdown       string    `json:"breakdown"`     // JSON-encoded PriceBreakdown
	PricingNotes    string    `json:"pricing_notes"` // JSON-encoded note list
	CreatedAt       time.Time `json:"created_at"`
}

// TableName sets the table name for GORM
func (ValuationRecord) TableName() string {
	return "valuations"
}

// ValuationStats summarizes the persisted valuations
type ValuationStats struct {
	TotalValuations   int     `json:"total_valuations"`
	AverageFinalPrice float64 `json:"average_final_price"`
	MinFinalPrice     float64 `json:"min_final_price"`
	MaxFinalPrice     float64 `json:"max_final_price"`
	AverageConfidence float64 `json:"average_confidence"`
}
