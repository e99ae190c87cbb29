package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "calculate-risk-scores"})

	log.Debug("debug line", nil)
	log.Warn("condition malformed", map[string]interface{}{"condition": "a.b.c"})
	log.WithError(errors.New("boom")).Error("failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	ctx := entries[1].ContextMap()
	assert.Equal(t, "calculate-risk-scores", ctx["taskType"])
	assert.Equal(t, "a.b.c", ctx["condition"])

	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestNew_FallsBackForFormats(t *testing.T) {
	assert.NotNil(t, New("info", "json"))
	assert.NotNil(t, New("debug", "console"))
	assert.NotNil(t, NewStructured("warn", "json"))
	assert.NotNil(t, NewNoOpLogger())
}
