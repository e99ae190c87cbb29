// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Survey  SurveyConfig  `mapstructure:"survey"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// SurveyConfig points the engine at its catalog files. Empty paths select
// the catalog embedded in pkg/survey.
type SurveyConfig struct {
	QuestionsPath string `mapstructure:"questions_path"`
	ConfigPath    string `mapstructure:"config_path"`
	DefaultSource string `mapstructure:"default_source"`

	// RecommendationThreshold is the category percentage an advisory must exceed.
	RecommendationThreshold float64 `mapstructure:"recommendation_threshold"`
}

// UsesEmbeddedCatalog reports whether neither catalog path was set.
func (s SurveyConfig) UsesEmbeddedCatalog() bool {
	return s.QuestionsPath == "" && s.ConfigPath == ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}
