package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: risk-report
logging:
  level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "risk-report", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "general", cfg.Survey.DefaultSource)
	assert.Equal(t, 50.0, cfg.Survey.RecommendationThreshold)
	assert.Equal(t, "risk-report", cfg.Metrics.ServiceName)
	assert.True(t, cfg.Survey.UsesEmbeddedCatalog())
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("RISK_DATA_DIR", "/srv/survey")
	path := writeConfig(t, `
survey:
  questions_path: ${RISK_DATA_DIR}/questions.yaml
  config_path: ${RISK_DATA_DIR}/survey_config.yaml
  default_source: high_risk
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/survey/questions.yaml", cfg.Survey.QuestionsPath)
	assert.Equal(t, "/srv/survey/survey_config.yaml", cfg.Survey.ConfigPath)
	assert.Equal(t, "high_risk", cfg.Survey.DefaultSource)
	assert.False(t, cfg.Survey.UsesEmbeddedCatalog())
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("LOGGING_LEVEL", "warn")
	path := writeConfig(t, "logging:\n  level: debug\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "half a catalog",
			body: "survey:\n  questions_path: q.yaml\n",
			want: "must be set together",
		},
		{
			name: "unknown level",
			body: "logging:\n  level: chatty\n",
			want: "logging.level",
		},
		{
			name: "threshold out of range",
			body: "survey:\n  recommendation_threshold: 150\n",
			want: "recommendation_threshold",
		},
		{
			name: "unknown format",
			body: "logging:\n  format: xml\n",
			want: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, validateConfig(cfg))
	assert.Equal(t, "general", cfg.Survey.DefaultSource)
}
