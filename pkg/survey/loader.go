package survey

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "envhealth-risk/internal/common/errors"
	"envhealth-risk/internal/common/validation"
)

const (
	embeddedQuestionsPath = "data/questions.yaml"
	embeddedConfigPath    = "data/survey_config.yaml"
)

//go:embed data/questions.yaml data/survey_config.yaml
var dataFS embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, loaded once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadEmbedded()
	})
	return defaultCatalog, defaultErr
}

// LoadEmbedded parses the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	questions, err := dataFS.ReadFile(embeddedQuestionsPath)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(embeddedQuestionsPath, err)
	}
	cfg, err := dataFS.ReadFile(embeddedConfigPath)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(embeddedConfigPath, err)
	}
	return Parse(questions, cfg)
}

// LoadFiles parses a catalog from disk.
func LoadFiles(questionsPath, configPath string) (*Catalog, error) {
	questions, err := os.ReadFile(questionsPath)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(questionsPath, err)
	}
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(configPath, err)
	}
	return Parse(questions, cfg)
}

// Parse decodes both YAML documents, validates them against their JSON
// schemas and builds the catalog.
func Parse(questionsYAML, configYAML []byte) (*Catalog, error) {
	var doc QuestionsDocument
	if err := decodeValidated("questions", questionsYAML, questionsDocumentSchema, &doc); err != nil {
		return nil, err
	}

	var cfg SurveyConfig
	if err := decodeValidated("survey config", configYAML, surveyConfigSchema, &cfg); err != nil {
		return nil, err
	}

	return NewCatalog(doc, cfg)
}

func decodeValidated(name string, data []byte, schema string, out interface{}) error {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return apperrors.NewCatalogLoadFailedError(name, err)
	}
	if generic == nil {
		return apperrors.NewCatalogInvalidError(fmt.Sprintf("%s: document is empty", name))
	}

	result, err := validation.ValidateDocument(schema, generic)
	if err != nil {
		return apperrors.NewCatalogLoadFailedError(name, err)
	}
	if !result.Valid {
		return apperrors.NewCatalogInvalidError(fmt.Sprintf("%s: %s", name, strings.Join(result.GetErrorMessages(), "; "))).
			WithMetadata("errors", result.Errors)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return apperrors.NewCatalogLoadFailedError(name, err)
	}
	return nil
}
