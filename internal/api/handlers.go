package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"equipvalue/server/config"
	"equipvalue/server/internal/models"
	"equipvalue/server/internal/valuation"
)

// ValuationStore is the persistence collaborator. Insert failures are
// tolerated by the handler: the priced result still goes back to the client,
// just without an id.
type ValuationStore interface {
	InsertValuation(ctx context.Context, record *models.ValuationRecord) (int64, error)
	GetRecentValuations(limit int) ([]models.ValuationRecord, error)
	GetValuationStats() (models.ValuationStats, error)
}

type Handler struct {
	store   ValuationStore
	pricing *config.PricingConfig
	logger  *logrus.Logger
}

// EstimateRequest is the wire form of a valuation request. Pointers
// distinguish absent required fields from zero values.
type EstimateRequest struct {
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	Condition    *string  `json:"condition"`
	Location     *string  `json:"location"`
	Hours        *float64 `json:"hours"`
	SerialNumber *string  `json:"serialNumber"`
}

func NewHandler(store ValuationStore, pricing *config.PricingConfig, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	if pricing == nil {
		pricing = config.DefaultPricingConfig()
	}

	return &Handler{
		store:   store,
		pricing: pricing,
		logger:  logger,
	}
}

// EstimateValuation prices an equipment unit and persists the result
func (h *Handler) EstimateValuation(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse estimate request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var missing []string
	if req.Model == nil {
		missing = append(missing, "model")
	}
	if req.Year == nil {
		missing = append(missing, "year")
	}
	if req.Condition == nil {
		missing = append(missing, "condition")
	}
	if req.Location == nil {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: " + strings.Join(missing, ", "),
		})
		return
	}

	input := models.ValuationRequest{
		Model:     *req.Model,
		Year:      *req.Year,
		Condition: *req.Condition,
		Location:  *req.Location,
	}
	if req.Hours != nil {
		input.Hours = *req.Hours
	}
	if req.SerialNumber != nil {
		input.SerialNumber = *req.SerialNumber
	}

	result, err := valuation.Calculate(input, h.pricing)
	if err != nil {
		var verr *valuation.ValidationError
		if errors.As(err, &verr) {
			c.JSON(verr.Status, gin.H{"error": verr.Message})
			return
		}
		h.logger.WithError(err).Error("Valuation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Persistence is best-effort: a store failure is logged and the priced
	// result is returned without an id.
	if id, err := h.persistResult(c.Request.Context(), result); err != nil {
		h.logger.WithError(err).WithField("model", input.Model).Error("Failed to persist valuation")
	} else {
		result.ValuationID = &id
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  http.StatusOK,
		"data":    result,
	})
}

func (h *Handler) persistResult(ctx context.Context, result *models.ValuationResult) (int64, error) {
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return 0, err
	}
	notes, err := json.Marshal(result.PricingNotes)
	if err != nil {
		return 0, err
	}

	record := &models.ValuationRecord{
		Model:           result.Input.Model,
		Year:            result.Input.Year,
		Condition:       result.Input.Condition,
		Location:        result.Input.Location,
		Hours:           result.Input.Hours,
		SerialNumber:    result.Input.SerialNumber,
		FinalPrice:      result.FinalPrice,
		ConfidenceScore: result.ConfidenceScore,
		Breakdown:       string(breakdown),
		PricingNotes:    string(notes),
	}

	return h.store.InsertValuation(ctx, record)
}

// HealthCheck reports service liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetModels returns the static reference lists clients can choose from
func (h *Handler) GetModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"models":     h.pricing.ModelNames(),
		"conditions": h.pricing.ConditionNames(),
		"locations":  h.pricing.SupportedLocations(),
	})
}

// GetRecentValuations returns the most recently persisted valuations
func (h *Handler) GetRecentValuations(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}

	records, err := h.store.GetRecentValuations(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get recent valuations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recent valuations"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetValuationStats returns aggregate statistics over persisted valuations
func (h *Handler) GetValuationStats(c *gin.Context) {
	stats, err := h.store.GetValuationStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get valuation stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get valuation stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
