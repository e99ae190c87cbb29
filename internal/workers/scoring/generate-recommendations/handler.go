// internal/workers/scoring/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"time"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
)

const (
	TaskType = "generate-recommendations"
)

// FallbackRecommendation is returned alone when no category crosses the threshold.
const FallbackRecommendation = "Continue current protective practices and stay informed about environmental health"

// fallbackLabel is the metrics label for the fallback advisory.
const fallbackLabel = "fallback"

// advisories is the closed category table. Other categories never yield advice.
var advisories = map[string]string{
	"Water Quality & Use":                 "Consider professional water testing and install appropriate filtration systems",
	"Air Quality (indoor/outdoor, VOCs)":  "Improve ventilation and consider air purification systems",
	"Mold & Moisture":                     "Address moisture issues and consider professional mold inspection",
	"Chemical Exposures (cleaners, etc.)": "Switch to safer household products and improve ventilation during use",
	"Heavy Metals":                        "Consider heavy metal testing and reduce exposure sources",
}

// Advisory returns the fixed advisory for a category.
func Advisory(category string) (string, bool) {
	text, ok := advisories[category]
	return text, ok
}

// Generate lists advisories for categories above 50%, in category order.
func Generate(scores *models.CategoryScores) []string {
	return GenerateWithThreshold(scores, DefaultThreshold)
}

// GenerateWithThreshold is Generate with a configurable cut-off.
func GenerateWithThreshold(scores *models.CategoryScores, threshold float64) []string {
	recommendations, _ := generate(scores, threshold)
	return recommendations
}

func generate(scores *models.CategoryScores, threshold float64) ([]string, []TriggeredAdvice) {
	var triggered []TriggeredAdvice

	scores.Each(func(name string, score *models.CategoryScore) {
		pct := score.Percentage()
		if pct <= threshold {
			return
		}
		text, ok := advisories[name]
		if !ok {
			return
		}
		triggered = append(triggered, TriggeredAdvice{
			Category:       name,
			Percentage:     pct,
			Recommendation: text,
		})
	})

	if len(triggered) == 0 {
		return []string{FallbackRecommendation}, nil
	}

	recommendations := make([]string, len(triggered))
	for i, advice := range triggered {
		recommendations[i] = advice.Recommendation
	}
	return recommendations, triggered
}

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	start := time.Now()

	recommendations, triggered := generate(input.Scores, h.config.Threshold)

	if len(triggered) == 0 {
		metrics.Recommendations.WithLabelValues(fallbackLabel).Inc()
	}
	for _, advice := range triggered {
		metrics.Recommendations.WithLabelValues(advice.Category).Inc()
	}

	metrics.TaskRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.TaskRunDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Info("recommendations generated", map[string]interface{}{
		"count":     len(recommendations),
		"triggered": len(triggered),
		"threshold": h.config.Threshold,
	})

	return &Output{Recommendations: recommendations, Triggered: triggered}, nil
}
