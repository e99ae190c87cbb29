// internal/workers/scoring/build-risk-profile/handler.go
package buildriskprofile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/common/observability"
	"envhealth-risk/internal/models"
	applydemographicmultipliers "envhealth-risk/internal/workers/scoring/apply-demographic-multipliers"
	calculateriskscores "envhealth-risk/internal/workers/scoring/calculate-risk-scores"
	generaterecommendations "envhealth-risk/internal/workers/scoring/generate-recommendations"
	resolvesurveyplan "envhealth-risk/internal/workers/survey/resolve-survey-plan"
	"envhealth-risk/pkg/survey"
)

const (
	TaskType = "build-risk-profile"
)

// Handler runs scorer, adjuster and generator over one response set.
type Handler struct {
	config  *Config
	catalog *survey.Catalog
	obs     *observability.Observability
	logger  logger.Logger

	sources     *resolvesurveyplan.Handler
	scorer      *calculateriskscores.Handler
	adjuster    *applydemographicmultipliers.Handler
	recommender *generaterecommendations.Handler
}

func NewHandler(config *Config, catalog *survey.Catalog, obs *observability.Observability, log logger.Logger) *Handler {
	planConfig := resolvesurveyplan.LoadConfig()
	planConfig.DefaultSource = config.DefaultSource

	recommendConfig := generaterecommendations.LoadConfig()
	recommendConfig.Threshold = config.RecommendationThreshold

	return &Handler{
		config:      config,
		catalog:     catalog,
		obs:         obs,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sources:     resolvesurveyplan.NewHandler(planConfig, catalog, log),
		scorer:      calculateriskscores.NewHandler(calculateriskscores.LoadConfig(), catalog, log),
		adjuster:    applydemographicmultipliers.NewHandler(applydemographicmultipliers.LoadConfig(), log),
		recommender: generaterecommendations.NewHandler(recommendConfig, log),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	ctx, span := h.obs.StartSpan(ctx, TaskType)
	defer span.End()

	requested := input.Source
	if requested == "" {
		requested = h.config.DefaultSource
	}
	source := h.sources.ResolveSource(requested)
	span.SetAttributes(attribute.String("source", source.Name))

	scored, err := h.runScorer(ctx, input.Responses)
	if err != nil {
		return nil, err
	}

	adjusted, err := h.runAdjuster(ctx, scored.Scores, input.Responses)
	if err != nil {
		return nil, err
	}

	recommended, err := h.runRecommender(ctx, adjusted.Scores)
	if err != nil {
		return nil, err
	}

	out := &Output{
		ProfileID:       uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		Source:          source,
		Scores:          adjusted.Scores,
		Summary:         h.summarize(adjusted.Scores),
		Multipliers:     adjusted.Applied,
		Recommendations: recommended.Recommendations,
		Report:          scored.Report,
	}

	duration := time.Since(start)
	metrics.TaskRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.TaskRunDuration.WithLabelValues(TaskType).Observe(duration.Seconds())
	h.obs.RecordProfileBuilt(ctx, source.Name)
	h.obs.RecordProfileDuration(ctx, duration, source.Name)

	h.logger.Info("risk profile built", map[string]interface{}{
		"profileId":       out.ProfileID,
		"source":          source.Name,
		"recommendations": len(out.Recommendations),
		"durationMs":      duration.Milliseconds(),
	})

	return out, nil
}

func (h *Handler) runScorer(ctx context.Context, responses models.Responses) (*calculateriskscores.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := h.obs.StartSpan(ctx, calculateriskscores.TaskType)
	defer span.End()

	out, err := h.scorer.Execute(ctx, &calculateriskscores.Input{Responses: responses})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("answers.scored", out.Report.Scored),
		attribute.Int("answers.ignored", len(out.Report.Ignored)),
	)
	return out, nil
}

func (h *Handler) runAdjuster(ctx context.Context, scores *models.CategoryScores, responses models.Responses) (*applydemographicmultipliers.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := h.obs.StartSpan(ctx, applydemographicmultipliers.TaskType)
	defer span.End()

	out, err := h.adjuster.Execute(ctx, &applydemographicmultipliers.Input{Scores: scores, Responses: responses})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("multipliers.applied", len(out.Applied)))
	return out, nil
}

func (h *Handler) runRecommender(ctx context.Context, scores *models.CategoryScores) (*generaterecommendations.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := h.obs.StartSpan(ctx, generaterecommendations.TaskType)
	defer span.End()

	out, err := h.recommender.Execute(ctx, &generaterecommendations.Input{Scores: scores})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("recommendations", len(out.Recommendations)))
	return out, nil
}

func (h *Handler) summarize(scores *models.CategoryScores) []CategorySummary {
	summary := make([]CategorySummary, 0, scores.Len())
	scores.Each(func(name string, score *models.CategoryScore) {
		entry := CategorySummary{
			Category:   name,
			Score:      score.Score,
			MaxScore:   score.MaxScore,
			Percentage: score.Percentage(),
		}
		if info, ok := h.catalog.CategoryInfo(name); ok {
			entry.Color = info.Color
			entry.Description = info.Description
		}
		summary = append(summary, entry)
	})
	return summary
}
