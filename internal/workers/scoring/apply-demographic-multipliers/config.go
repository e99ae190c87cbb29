// internal/workers/scoring/apply-demographic-multipliers/config.go
package applydemographicmultipliers

// Config is kept for the uniform worker shape; the multipliers are fixed.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
