// internal/workers/scoring/apply-demographic-multipliers/handler.go
package applydemographicmultipliers

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
)

const (
	TaskType = "apply-demographic-multipliers"
)

const (
	TypeHoursAtHome = "Hours at Home"
	TypeChildren    = "Children in Home"
	TypePregnancy   = "Pregnancy/Conception"
)

// Demographic question ids read from the demographic section.
const (
	QuestionHoursAtHome      = "hours_at_home"
	QuestionChildrenCount    = "children_count"
	QuestionPregnancyStatus  = "pregnancy_status"
	QuestionTryingToConceive = "trying_to_conceive"
)

const (
	hoursBaseline     = 8.0
	hoursSpan         = 16.0
	hoursCap          = 2.0
	perChildIncrement = 0.5
	pregnancyFactor   = 2.0
)

// IndoorCategories are the categories scaled by time spent at home.
var IndoorCategories = []string{
	"Air Quality (indoor/outdoor, VOCs)",
	"Mold & Moisture",
	"Chemical Exposures (cleaners, etc.)",
}

// HoursMultiplier is 1 + (hours-8)/16 capped at 2. There is no lower
// bound, so fewer than 8 hours discounts the indoor categories.
func HoursMultiplier(hours float64) float64 {
	return math.Min(1+(hours-hoursBaseline)/hoursSpan, hoursCap)
}

// ChildrenMultiplier is 1 + 0.5 per child.
func ChildrenMultiplier(count float64) float64 {
	return 1 + count*perChildIncrement
}

// Adjust scales category scores in place by the household multipliers and
// returns the same map. Rules run in order (hours at home, children,
// pregnancy) and compound. MaxScore is never scaled.
func Adjust(scores *models.CategoryScores, responses models.Responses) *models.CategoryScores {
	adjust(scores, responses)
	return scores
}

func adjust(scores *models.CategoryScores, responses models.Responses) []models.MultiplierEvent {
	if scores == nil {
		return nil
	}
	var applied []models.MultiplierEvent

	if hours, ok := responses.Number(models.DemographicSection, QuestionHoursAtHome); ok && hours > 0 {
		event := models.MultiplierEvent{
			Type:   TypeHoursAtHome,
			Value:  HoursMultiplier(hours),
			Reason: fmt.Sprintf("%s hours per day at home", formatNumber(hours)),
		}
		for _, name := range IndoorCategories {
			if score, ok := scores.Get(name); ok {
				apply(score, event)
			}
		}
		applied = append(applied, event)
	}

	if children, ok := responses.Number(models.DemographicSection, QuestionChildrenCount); ok && children > 0 {
		event := models.MultiplierEvent{
			Type:   TypeChildren,
			Value:  ChildrenMultiplier(children),
			Reason: fmt.Sprintf("%s children under 18 in home", formatNumber(children)),
		}
		scores.Each(func(_ string, score *models.CategoryScore) { apply(score, event) })
		applied = append(applied, event)
	}

	pregnant, _ := responses.String(models.DemographicSection, QuestionPregnancyStatus)
	conceiving, _ := responses.String(models.DemographicSection, QuestionTryingToConceive)
	if pregnant == "Yes" || conceiving == "Yes" {
		reason := "Trying to conceive"
		if pregnant == "Yes" {
			reason = "Currently pregnant"
		}
		event := models.MultiplierEvent{
			Type:   TypePregnancy,
			Value:  pregnancyFactor,
			Reason: reason,
		}
		scores.Each(func(_ string, score *models.CategoryScore) { apply(score, event) })
		applied = append(applied, event)
	}

	return applied
}

func apply(score *models.CategoryScore, event models.MultiplierEvent) {
	score.Score *= event.Value
	score.Multipliers = append(score.Multipliers, event)
}

// formatNumber prints whole numbers without a fraction.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
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

	applied := adjust(input.Scores, input.Responses)
	if applied == nil {
		applied = []models.MultiplierEvent{}
	}

	for _, event := range applied {
		metrics.MultiplierEvents.WithLabelValues(event.Type).Inc()
		h.logger.Debug("demographic multiplier applied", map[string]interface{}{
			"type":   event.Type,
			"value":  event.Value,
			"reason": event.Reason,
		})
	}

	metrics.TaskRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.TaskRunDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Info("demographic multipliers applied", map[string]interface{}{
		"count": len(applied),
	})

	return &Output{Scores: input.Scores, Applied: applied}, nil
}
