// internal/workers/scoring/calculate-risk-scores/config.go
package calculateriskscores

// Config is kept for the uniform worker shape; scoring has no tunables.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
