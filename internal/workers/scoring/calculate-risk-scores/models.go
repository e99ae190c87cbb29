// internal/workers/scoring/calculate-risk-scores/models.go
package calculateriskscores

import "envhealth-risk/internal/models"

type Input struct {
	Responses models.Responses `json:"responses"`
}

type Output struct {
	Scores *models.CategoryScores `json:"scores"`
	Report Report                 `json:"report"`
}

// Report describes answers the scorer could not use.
type Report struct {
	Scored          int             `json:"scored"`
	Ignored         []IgnoredAnswer `json:"ignored,omitempty"`
	UnknownSections []string        `json:"unknownSections,omitempty"`
}

type IgnoredAnswer struct {
	SectionID  string      `json:"sectionId"`
	QuestionID string      `json:"questionId"`
	Response   interface{} `json:"response"`
	Reason     string      `json:"reason"`
}

const (
	ReasonOptionNotFound = "option_not_found"
	ReasonNotANumber     = "not_a_number"
	ReasonFreeText       = "free_text"
)
