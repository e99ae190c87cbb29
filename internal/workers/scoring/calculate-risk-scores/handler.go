// internal/workers/scoring/calculate-risk-scores/handler.go
package calculateriskscores

import (
	"context"
	"sort"
	"time"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
	"envhealth-risk/pkg/survey"
)

const (
	TaskType = "calculate-risk-scores"
)

// Score builds fresh per-category totals for one response set.
func Score(catalog *survey.Catalog, responses models.Responses) *models.CategoryScores {
	scores, _ := ScoreWithReport(catalog, responses)
	return scores
}

// ScoreWithReport is Score plus an account of the answers left unscored.
//
// Every category tagged anywhere in the catalog is present in the result.
// Sections are walked in catalog order. Only questions with scoring and at
// least one category are considered; unanswered ones are skipped outright.
func ScoreWithReport(catalog *survey.Catalog, responses models.Responses) (*models.CategoryScores, Report) {
	scores := models.NewCategoryScores(catalog.CategoryNames())
	var report Report

	for id := range responses {
		if _, ok := catalog.Section(id); !ok {
			report.UnknownSections = append(report.UnknownSections, id)
		}
	}
	sort.Strings(report.UnknownSections)

	for _, section := range catalog.Sections() {
		if _, ok := responses.Section(section.ID); !ok {
			continue
		}

		for _, q := range section.Questions {
			if !q.Scored() {
				continue
			}
			answer, ok := responses.Lookup(section.ID, q.ID)
			if !ok {
				continue
			}

			contribution, ceiling, reason := scoreAnswer(q, answer)
			if reason != "" {
				report.Ignored = append(report.Ignored, IgnoredAnswer{
					SectionID:  section.ID,
					QuestionID: q.ID,
					Response:   answer,
					Reason:     reason,
				})
				continue
			}

			multiplier := q.EffectiveMultiplier()
			final := contribution * multiplier
			scaledMax := ceiling * multiplier

			for _, category := range q.Categories {
				entry := scores.Ensure(category)
				entry.Score += final
				entry.MaxScore += scaledMax
				entry.Contributions = append(entry.Contributions, models.Contribution{
					ID:           q.ID,
					Text:         q.Text,
					Response:     answer,
					Score:        final,
					Intervention: q.Intervention,
					Notes:        q.Notes,
				})
			}
			report.Scored++
		}
	}

	return scores, report
}

// scoreAnswer returns the raw contribution and the question maximum, or a
// reason when the answer cannot be scored.
func scoreAnswer(q survey.Question, answer interface{}) (float64, float64, string) {
	switch q.Type {
	case survey.QuestionTypeSingleChoice:
		choice, ok := answer.(string)
		if !ok {
			return 0, 0, ReasonOptionNotFound
		}
		idx := q.OptionIndex(choice)
		if idx < 0 {
			return 0, 0, ReasonOptionNotFound
		}
		if idx >= len(q.Scoring) {
			return 0, q.MaxScoring(), ""
		}
		return q.Scoring[idx], q.MaxScoring(), ""

	case survey.QuestionTypeNumeric:
		n, err := models.ParseNumber(answer)
		if err != nil {
			return 0, 0, ReasonNotANumber
		}
		if n > 0 {
			return 1, 1, ""
		}
		return 0, 1, ""

	default:
		return 0, 0, ReasonFreeText
	}
}

type Handler struct {
	config  *Config
	catalog *survey.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, catalog *survey.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: catalog,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	start := time.Now()

	scores, report := ScoreWithReport(h.catalog, input.Responses)

	if len(report.UnknownSections) > 0 {
		h.logger.Debug("ignoring response sections not in catalog", map[string]interface{}{
			"sections": report.UnknownSections,
		})
	}
	for _, ignored := range report.Ignored {
		metrics.IgnoredAnswers.WithLabelValues(ignored.Reason).Inc()
		h.logger.Debug("answer not scored", map[string]interface{}{
			"section":  ignored.SectionID,
			"question": ignored.QuestionID,
			"reason":   ignored.Reason,
		})
	}
	scores.Each(func(name string, score *models.CategoryScore) {
		if n := len(score.Contributions); n > 0 {
			metrics.CategoryContributions.WithLabelValues(name).Add(float64(n))
		}
	})

	metrics.TaskRunsCompleted.WithLabelValues(TaskType).Inc()
	metrics.TaskRunDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())

	h.logger.Info("risk scores calculated", map[string]interface{}{
		"categories": scores.Len(),
		"scored":     report.Scored,
		"ignored":    len(report.Ignored),
	})

	return &Output{Scores: scores, Report: report}, nil
}
