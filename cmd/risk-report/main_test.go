package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "envhealth-risk/internal/common/errors"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDecodeResponses(t *testing.T) {
	responses, err := decodeResponses(strings.NewReader(`{
		"demographic": {"hours_at_home": 12, "pregnancy_status": "No", "occupation": null},
		"mold": {"visible_mold": "Yes"}
	}`))
	require.NoError(t, err)

	hours, ok := responses.Number("demographic", "hours_at_home")
	assert.True(t, ok)
	assert.Equal(t, 12.0, hours)

	_, ok = responses.Lookup("demographic", "occupation")
	assert.False(t, ok)
}

func TestDecodeResponses_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"mold": `},
		{"top level array", `[1, 2]`},
		{"answers not an object", `{"mold": "Yes"}`},
		{"boolean answer", `{"mold": {"visible_mold": true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeResponses(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeResponsesInvalid), err.Error())
		})
	}
}

func TestRun_Profile(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")
	var out bytes.Buffer

	err := run([]string{"-config", cfgPath, "-source", "high_risk"},
		strings.NewReader(`{"mold": {"visible_mold": "Yes", "water_leak": "Yes"}}`), &out)
	require.NoError(t, err)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &profile))
	assert.NotEmpty(t, profile["profileId"])
	assert.Equal(t, "high_risk", profile["source"].(map[string]interface{})["name"])
	assert.Len(t, profile["recommendations"], 1)
}

func TestRun_Plan(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")
	responsesPath := writeFile(t, "responses.json", `{"demographic": {"health_conditions": "Yes"}}`)
	var out bytes.Buffer

	err := run([]string{"-config", cfgPath, "-responses", responsesPath, "-source", "basic_screening", "-plan"}, nil, &out)
	require.NoError(t, err)

	var plan map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &plan))
	assert.Len(t, plan["sections"], 3)
}

func TestRun_MissingResponsesFile(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")

	err := run([]string{"-config", cfgPath, "-responses", filepath.Join(t.TempDir(), "absent.json")}, nil, &bytes.Buffer{})
	assert.Error(t, err)
}
