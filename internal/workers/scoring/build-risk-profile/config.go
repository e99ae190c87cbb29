// internal/workers/scoring/build-risk-profile/config.go
package buildriskprofile

import (
	"time"

	"envhealth-risk/internal/common/config"
	generaterecommendations "envhealth-risk/internal/workers/scoring/generate-recommendations"
	"envhealth-risk/pkg/survey"
)

type Config struct {
	Timeout                 time.Duration
	DefaultSource           string
	RecommendationThreshold float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                 10 * time.Second,
		DefaultSource:           survey.DefaultSource,
		RecommendationThreshold: generaterecommendations.DefaultThreshold,
	}
}

// FromAppConfig takes the survey settings from the application config.
func FromAppConfig(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg == nil {
		return c
	}
	if cfg.Survey.DefaultSource != "" {
		c.DefaultSource = cfg.Survey.DefaultSource
	}
	if cfg.Survey.RecommendationThreshold > 0 {
		c.RecommendationThreshold = cfg.Survey.RecommendationThreshold
	}
	return c
}
