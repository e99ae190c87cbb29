// internal/workers/survey/evaluate-condition/models.go
package evaluatecondition

import "envhealth-risk/internal/models"

type Input struct {
	Condition string           `json:"condition"`
	Responses models.Responses `json:"responses"`
}

type Output struct {
	Result    bool `json:"result"`
	Malformed bool `json:"malformed,omitempty"`
}
