// internal/workers/survey/resolve-survey-plan/handler.go
package resolvesurveyplan

import (
	"context"

	"envhealth-risk/internal/common/logger"
	"envhealth-risk/internal/common/metrics"
	"envhealth-risk/internal/models"
	evaluatecondition "envhealth-risk/internal/workers/survey/evaluate-condition"
	"envhealth-risk/pkg/survey"
)

const (
	TaskType = "resolve-survey-plan"
)

// ResolveSource returns the named source configuration or, with FellBack
// set, the general one.
func ResolveSource(catalog *survey.Catalog, name string) survey.ResolvedSource {
	return catalog.ResolveSource(name)
}

// Plan lists the sections and questions a respondent from source should
// see, in order. Sections are dropped when the source suppresses them or
// a skip rule whose condition parses evaluates true. A question with
// dependsOn is kept only when its sibling answer equals dependsOnValue.
func Plan(catalog *survey.Catalog, source string, responses models.Responses) *Output {
	resolved := catalog.ResolveSource(source)
	out := &Output{
		Source:   resolved,
		Sections: []PlannedSection{},
	}

	skipped := make(map[string]bool, len(resolved.SkipSections))
	for _, id := range resolved.SkipSections {
		skipped[id] = true
	}

	for _, rule := range catalog.Config().ConditionalRules.SkipRules {
		cond, err := evaluatecondition.ParseCondition(rule.Condition)
		if err != nil {
			out.IgnoredRules = append(out.IgnoredRules, rule.Condition)
			continue
		}
		if !cond.Evaluate(responses) {
			continue
		}
		for _, id := range rule.SkipSections {
			if !skipped[id] {
				skipped[id] = true
				out.RuleSkipped = append(out.RuleSkipped, id)
			}
		}
	}

	seen := make(map[string]bool, len(resolved.Order))
	for _, id := range resolved.Order {
		if skipped[id] || seen[id] {
			continue
		}
		seen[id] = true

		section, ok := catalog.Section(id)
		if !ok {
			continue
		}
		out.Sections = append(out.Sections, PlannedSection{
			ID:          section.ID,
			Title:       section.Title,
			QuestionIDs: visibleQuestions(section, responses),
		})
	}

	return out
}

func visibleQuestions(section survey.Section, responses models.Responses) []string {
	ids := make([]string, 0, len(section.Questions))
	for _, q := range section.Questions {
		if q.DependsOn != "" {
			answer, ok := responses.String(section.ID, q.DependsOn)
			if !ok || answer != q.DependsOnValue {
				continue
			}
		}
		ids = append(ids, q.ID)
	}
	return ids
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
	source := input.Source
	if source == "" {
		source = h.config.DefaultSource
	}

	out := Plan(h.catalog, source, input.Responses)
	h.logFallback(out.Source)

	for _, cond := range out.IgnoredRules {
		h.logger.Warn("skip rule condition not evaluable, rule ignored", map[string]interface{}{
			"condition": cond,
		})
	}

	h.logger.Info("survey plan resolved", map[string]interface{}{
		"source":      out.Source.Name,
		"sections":    len(out.Sections),
		"ruleSkipped": out.RuleSkipped,
	})

	return out, nil
}

// ResolveSource is ResolveSource with the fallback logged and counted.
func (h *Handler) ResolveSource(name string) survey.ResolvedSource {
	resolved := ResolveSource(h.catalog, name)
	h.logFallback(resolved)
	return resolved
}

func (h *Handler) logFallback(resolved survey.ResolvedSource) {
	if !resolved.FellBack {
		return
	}
	metrics.SourceFallbacks.Inc()
	h.logger.Warn("unknown source, using general configuration", map[string]interface{}{
		"requested": resolved.Requested,
		"source":    resolved.Name,
	})
}
