// internal/workers/scoring/apply-demographic-multipliers/models.go
package applydemographicmultipliers

import "envhealth-risk/internal/models"

type Input struct {
	Scores    *models.CategoryScores `json:"scores"`
	Responses models.Responses       `json:"responses"`
}

type Output struct {
	Scores  *models.CategoryScores   `json:"scores"`
	Applied []models.MultiplierEvent `json:"applied"`
}
