// internal/workers/scoring/build-risk-profile/models.go
package buildriskprofile

import (
	"time"

	"envhealth-risk/internal/models"
	calculateriskscores "envhealth-risk/internal/workers/scoring/calculate-risk-scores"
	"envhealth-risk/pkg/survey"
)

type Input struct {
	Responses models.Responses `json:"responses"`
	Source    string           `json:"source,omitempty"`
}

// Output is a complete risk profile for one response set.
type Output struct {
	ProfileID       string                     `json:"profileId"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
	Source          survey.ResolvedSource      `json:"source"`
	Scores          *models.CategoryScores     `json:"scores"`
	Summary         []CategorySummary          `json:"summary"`
	Multipliers     []models.MultiplierEvent   `json:"multipliers"`
	Recommendations []string                   `json:"recommendations"`
	Report          calculateriskscores.Report `json:"report"`
}

// CategorySummary joins a category's final totals with its display metadata.
type CategorySummary struct {
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"maxScore"`
	Percentage  float64 `json:"percentage"`
	Color       string  `json:"color,omitempty"`
	Description string  `json:"description,omitempty"`
}
