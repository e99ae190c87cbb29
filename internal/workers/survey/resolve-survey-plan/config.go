// internal/workers/survey/resolve-survey-plan/config.go
package resolvesurveyplan

import "envhealth-risk/pkg/survey"

type Config struct {
	// DefaultSource is used when the input names no source.
	DefaultSource string
}

func LoadConfig() *Config {
	return &Config{
		DefaultSource: survey.DefaultSource,
	}
}
