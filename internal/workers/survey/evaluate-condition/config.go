// internal/workers/survey/evaluate-condition/config.go
package evaluatecondition

// Config is kept for the uniform worker shape; evaluation has no tunables.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
