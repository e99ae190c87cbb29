// internal/workers/survey/resolve-survey-plan/models.go
package resolvesurveyplan

import (
	"envhealth-risk/internal/models"
	"envhealth-risk/pkg/survey"
)

type Input struct {
	Source    string           `json:"source"`
	Responses models.Responses `json:"responses,omitempty"`
}

type Output struct {
	Source   survey.ResolvedSource `json:"source"`
	Sections []PlannedSection      `json:"sections"`

	// RuleSkipped lists sections removed by a matching skip rule.
	RuleSkipped []string `json:"ruleSkipped,omitempty"`

	// IgnoredRules holds skip rule conditions the evaluator cannot parse.
	IgnoredRules []string `json:"ignoredRules,omitempty"`
}

type PlannedSection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	QuestionIDs []string `json:"questionIds"`
}
