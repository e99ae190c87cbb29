// internal/workers/scoring/generate-recommendations/models.go
package generaterecommendations

import "envhealth-risk/internal/models"

type Input struct {
	Scores *models.CategoryScores `json:"scores"`
}

type Output struct {
	Recommendations []string          `json:"recommendations"`
	Triggered       []TriggeredAdvice `json:"triggered,omitempty"`
}

// TriggeredAdvice is a category whose percentage produced an advisory.
type TriggeredAdvice struct {
	Category       string  `json:"category"`
	Percentage     float64 `json:"percentage"`
	Recommendation string  `json:"recommendation"`
}
