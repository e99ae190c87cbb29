// internal/workers/scoring/generate-recommendations/config.go
package generaterecommendations

// DefaultThreshold is the category percentage an advisory must exceed.
const DefaultThreshold = 50.0

type Config struct {
	Threshold float64
}

func LoadConfig() *Config {
	return &Config{
		Threshold: DefaultThreshold,
	}
}
